package main

import (
	"bookstore/pkg/database"
	"bookstore/pkg/models"
	"bookstore/pkg/store"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	db      *gorm.DB
	gateway *store.Store
)

func main() {
	log.Println("Starting bookstore service...")

	db = database.InitBookstoreDB()
	gateway = store.New(db)

	seedTestData()

	server := setupRouter()

	port := getEnv("SERVICE_PORT", "8080")
	log.Printf("Bookstore service starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func setupRouter() *gin.Engine {
	server := gin.Default()
	server.Use(requestID(), requestLog(), errorHandler())

	shop := server.Group("/store")
	{
		shop.GET("/", getIndex)

		shop.GET("/users", getUsers)
		shop.POST("/users", addUser)
		shop.GET("/users/:user_id", getUser)
		shop.GET("/users/:user_id/orders", getUserOrders)
		shop.POST("/users/:user_id/orders", addOrder)

		shop.GET("/orders/:order_id", getOrderDetails)

		shop.GET("/shops", getShops)
		shop.POST("/shops", addShop)
		shop.GET("/shops/:shop_id", getShop)

		shop.GET("/books", getBooks)
		shop.POST("/books", addBook)
		shop.GET("/books/:book_id", getBook)
	}

	server.GET("/manage/health", healthCheck)

	return server
}

func seedTestData() {
	books := []models.Book{
		{Name: "Dune", Author: "Frank Herbert", ReleaseDate: time.Date(1965, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "The Hobbit", Author: "J. R. R. Tolkien", ReleaseDate: time.Date(1937, 9, 21, 0, 0, 0, 0, time.UTC)},
	}
	for _, book := range books {
		var existing models.Book
		if err := db.Where("name = ? AND author = ?", book.Name, book.Author).First(&existing).Error; err != nil {
			if err := db.Create(&book).Error; err != nil {
				log.Printf("Failed to create book %s: %v", book.Name, err)
			}
		}
	}

	shops := []models.Shop{
		{Name: "Central Bookstore", Address: "123 Main St"},
		{Name: "North Bookstore", Address: "456 North Ave"},
	}
	for _, shop := range shops {
		var existing models.Shop
		if err := db.Where("name = ?", shop.Name).First(&existing).Error; err != nil {
			if err := db.Create(&shop).Error; err != nil {
				log.Printf("Failed to create shop %s: %v", shop.Name, err)
			}
		}
	}
	log.Println("Bookstore test data seeded")
}

func healthCheck(ctx *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"details": "Bookstore service is active",
	})
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
