package models

import (
	"time"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:60;not null;uniqueIndex"`
	LastName  string `gorm:"size:60;not null;uniqueIndex"`
	Email     string `gorm:"size:60;not null;uniqueIndex"`
}

type Book struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:60;not null;uniqueIndex:idx_book_author_name_release"`
	Author      string    `gorm:"size:60;not null;uniqueIndex:idx_book_author_name_release"`
	ReleaseDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_book_author_name_release"`
}

type Shop struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:60;not null;uniqueIndex"`
	Address string `gorm:"size:200;not null;uniqueIndex"`
}

type Order struct {
	ID      uint      `gorm:"primaryKey"`
	RegDate time.Time `gorm:"type:date;not null"`
	UserID  uint      `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID"`
}

type OrderItem struct {
	ID           uint `gorm:"primaryKey"`
	OrderID      uint `gorm:"not null;index"`
	BookID       uint `gorm:"not null"`
	ShopID       uint `gorm:"not null"`
	BookQuantity int  `gorm:"not null;check:book_quantity > 0"`

	Order Order `gorm:"foreignKey:OrderID"`
	Book  Book  `gorm:"foreignKey:BookID"`
	Shop  Shop  `gorm:"foreignKey:ShopID"`
}
