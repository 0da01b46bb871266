package store

import (
	"errors"
	"time"

	"bookstore/pkg/apierr"
	"bookstore/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence gateway. It translates storage-level constraint
// violations into domain errors; no raw gorm error escapes it.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AddUser(firstName, lastName, email string) (uint, error) {
	user := models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, apierr.AlreadyExists("User")
		}
		return 0, apierr.Internal()
	}
	return user.ID, nil
}

func (s *Store) GetUser(id uint) (models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apierr.NotFound("User", id)
		}
		return models.User{}, apierr.Internal()
	}
	return user, nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, apierr.Internal()
	}
	return users, nil
}

func (s *Store) AddBook(name, author string, releaseDate time.Time) (uint, error) {
	book := models.Book{
		Name:        name,
		Author:      author,
		ReleaseDate: releaseDate,
	}
	if err := s.db.Create(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, apierr.AlreadyExists("Book")
		}
		return 0, apierr.Internal()
	}
	return book.ID, nil
}

func (s *Store) GetBook(id uint) (models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Book{}, apierr.NotFound("Book", id)
		}
		return models.Book{}, apierr.Internal()
	}
	return book, nil
}

func (s *Store) ListBooks() ([]models.Book, error) {
	var books []models.Book
	if err := s.db.Find(&books).Error; err != nil {
		return nil, apierr.Internal()
	}
	return books, nil
}

func (s *Store) AddShop(name, address string) (uint, error) {
	shop := models.Shop{
		Name:    name,
		Address: address,
	}
	if err := s.db.Create(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, apierr.AlreadyExists("Shop")
		}
		return 0, apierr.Internal()
	}
	return shop.ID, nil
}

func (s *Store) GetShop(id uint) (models.Shop, error) {
	var shop models.Shop
	if err := s.db.First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Shop{}, apierr.NotFound("Shop", id)
		}
		return models.Shop{}, apierr.Internal()
	}
	return shop, nil
}

func (s *Store) ListShops() ([]models.Shop, error) {
	var shops []models.Shop
	if err := s.db.Find(&shops).Error; err != nil {
		return nil, apierr.Internal()
	}
	return shops, nil
}

func (s *Store) ListOrders(userID uint, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Where("user_id = ?", userID).
		Order("reg_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, apierr.Internal()
	}
	return orders, nil
}

// OrderItemDetail is an order line denormalized with its book and shop.
type OrderItemDetail struct {
	BookName     string
	Author       string
	ReleaseDate  time.Time
	ShopName     string
	Address      string
	BookQuantity int
}

// ListOrderItems distinguishes a missing order (not found) from an existing
// order whose requested page is empty (empty result).
func (s *Store) ListOrderItems(orderID uint, limit, offset int) ([]OrderItemDetail, error) {
	var order models.Order
	if err := s.db.Select("id").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("Order", orderID)
		}
		return nil, apierr.Internal()
	}

	var items []OrderItemDetail
	err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN books ON books.id = order_items.book_id").
		Joins("JOIN shops ON shops.id = order_items.shop_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.shop_id DESC, order_items.book_id DESC").
		Limit(limit).
		Offset(offset).
		Select("books.name AS book_name, books.author AS author, books.release_date AS release_date, " +
			"shops.name AS shop_name, shops.address AS address, order_items.book_quantity AS book_quantity").
		Scan(&items).Error
	if err != nil {
		return nil, apierr.Internal()
	}
	return items, nil
}

type NewOrderItem struct {
	BookID       uint
	ShopID       uint
	BookQuantity int
}

// AddOrder creates the order and all of its items in one transaction. Any
// failure, including a bad user/book/shop reference, rolls back everything.
func (s *Store) AddOrder(userID uint, items []NewOrderItem) (uint, error) {
	order := models.Order{
		RegDate: time.Now().UTC().Truncate(24 * time.Hour),
		UserID:  userID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}
		rows := make([]models.OrderItem, len(items))
		for i, item := range items {
			rows[i] = models.OrderItem{
				OrderID:      order.ID,
				BookID:       item.BookID,
				ShopID:       item.ShopID,
				BookQuantity: item.BookQuantity,
			}
		}
		return tx.Omit(clause.Associations).Create(&rows).Error
	})
	if err != nil {
		return 0, apierr.CannotAddOrder()
	}
	return order.ID, nil
}
