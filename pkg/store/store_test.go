package store

import (
	"net/http"
	"testing"
	"time"

	"bookstore/pkg/apierr"
	"bookstore/pkg/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect test database")
	}
	// A second connection to :memory: would be a fresh empty database.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	db.Exec("PRAGMA foreign_keys = ON")
	db.AutoMigrate(&models.User{}, &models.Book{}, &models.Shop{}, &models.Order{}, &models.OrderItem{})
	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAddUserGetUserRoundTrip(t *testing.T) {
	gateway := New(setupTestDB())

	id, err := gateway.AddUser("John", "Doe", "john@example.com")
	assert.NoError(t, err)
	assert.NotZero(t, id)

	user, err := gateway.GetUser(id)
	assert.NoError(t, err)
	assert.Equal(t, "John", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestAddUserDuplicateEmail(t *testing.T) {
	db := setupTestDB()
	gateway := New(db)

	_, err := gateway.AddUser("John", "Doe", "john@example.com")
	assert.NoError(t, err)

	_, err = gateway.AddUser("Jane", "Smith", "john@example.com")
	assert.Error(t, err)

	var domainErr *apierr.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.Code)
	assert.Equal(t, "User already exists", domainErr.Text)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetUserNotFound(t *testing.T) {
	gateway := New(setupTestDB())

	_, err := gateway.GetUser(999)
	assert.Error(t, err)

	var domainErr *apierr.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.Code)
	assert.Equal(t, "User 999 not found", domainErr.Text)
}

func TestListUsers(t *testing.T) {
	gateway := New(setupTestDB())

	_, err := gateway.AddUser("John", "Doe", "john@example.com")
	assert.NoError(t, err)
	_, err = gateway.AddUser("Jane", "Smith", "jane@example.com")
	assert.NoError(t, err)

	users, err := gateway.ListUsers()
	assert.NoError(t, err)
	assert.Equal(t, 2, len(users))
}

func TestAddBookDuplicateComposite(t *testing.T) {
	db := setupTestDB()
	gateway := New(db)

	release := date(1965, 6, 1)
	_, err := gateway.AddBook("Dune", "Frank Herbert", release)
	assert.NoError(t, err)

	// Same author and name with another release date is a different book.
	_, err = gateway.AddBook("Dune", "Frank Herbert", date(1966, 1, 1))
	assert.NoError(t, err)

	_, err = gateway.AddBook("Dune", "Frank Herbert", release)
	assert.Error(t, err)

	var domainErr *apierr.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.Code)
	assert.Equal(t, "Book already exists", domainErr.Text)

	var count int64
	db.Model(&models.Book{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAddShopDuplicateAddress(t *testing.T) {
	gateway := New(setupTestDB())

	_, err := gateway.AddShop("Central Bookstore", "123 Main St")
	assert.NoError(t, err)

	_, err = gateway.AddShop("Another Bookstore", "123 Main St")
	assert.Error(t, err)

	var domainErr *apierr.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Shop already exists", domainErr.Text)
}

func TestListOrdersNewestFirstPaginated(t *testing.T) {
	db := setupTestDB()
	gateway := New(db)

	userID, err := gateway.AddUser("John", "Doe", "john@example.com")
	assert.NoError(t, err)

	dates := []time.Time{date(2024, 1, 1), date(2024, 3, 1), date(2024, 2, 1)}
	for _, regDate := range dates {
		assert.NoError(t, db.Create(&models.Order{RegDate: regDate, UserID: userID}).Error)
	}

	orders, err := gateway.ListOrders(userID, 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(orders))
	assert.Equal(t, date(2024, 3, 1).Format("2006-01-02"), orders[0].RegDate.Format("2006-01-02"))
	assert.Equal(t, date(2024, 2, 1).Format("2006-01-02"), orders[1].RegDate.Format("2006-01-02"))

	orders, err = gateway.ListOrders(userID, 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(orders))
	assert.Equal(t, date(2024, 1, 1).Format("2006-01-02"), orders[0].RegDate.Format("2006-01-02"))
}

func TestListOrdersNoOrders(t *testing.T) {
	gateway := New(setupTestDB())

	orders, err := gateway.ListOrders(42, 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(orders))
}

func TestAddOrderCreatesOrderWithItems(t *testing.T) {
	db := setupTestDB()
	gateway := New(db)

	userID, _ := gateway.AddUser("John", "Doe", "john@example.com")
	bookID, _ := gateway.AddBook("Dune", "Frank Herbert", date(1965, 6, 1))
	shopID, _ := gateway.AddShop("Central Bookstore", "123 Main St")

	orderID, err := gateway.AddOrder(userID, []NewOrderItem{
		{BookID: bookID, ShopID: shopID, BookQuantity: 2},
	})
	assert.NoError(t, err)
	assert.NotZero(t, orderID)

	var order models.Order
	assert.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), order.RegDate.Format("2006-01-02"))

	var count int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddOrderUnknownUser(t *testing.T) {
	db := setupTestDB()
	gateway := New(db)

	bookID, _ := gateway.AddBook("Dune", "Frank Herbert", date(1965, 6, 1))
	shopID, _ := gateway.AddShop("Central Bookstore", "123 Main St")

	_, err := gateway.AddOrder(999, []NewOrderItem{
		{BookID: bookID, ShopID: shopID, BookQuantity: 1},
	})
	assert.Error(t, err)

	var domainErr *apierr.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.Code)
	assert.Equal(t, "Can not add order", domainErr.Text)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAddOrderRollsBackOnFailingItem(t *testing.T) {
	db := setupTestDB()
	gateway := New(db)

	userID, _ := gateway.AddUser("John", "Doe", "john@example.com")
	bookID, _ := gateway.AddBook("Dune", "Frank Herbert", date(1965, 6, 1))
	shopID, _ := gateway.AddShop("Central Bookstore", "123 Main St")

	// Third item references a book that does not exist, so the whole
	// transaction must roll back.
	_, err := gateway.AddOrder(userID, []NewOrderItem{
		{BookID: bookID, ShopID: shopID, BookQuantity: 1},
		{BookID: bookID, ShopID: shopID, BookQuantity: 2},
		{BookID: 999, ShopID: shopID, BookQuantity: 3},
	})
	assert.Error(t, err)

	var domainErr *apierr.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Can not add order", domainErr.Text)

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)
}

func TestListOrderItemsJoinAndOrdering(t *testing.T) {
	db := setupTestDB()
	gateway := New(db)

	userID, _ := gateway.AddUser("John", "Doe", "john@example.com")
	duneID, _ := gateway.AddBook("Dune", "Frank Herbert", date(1965, 6, 1))
	hobbitID, _ := gateway.AddBook("The Hobbit", "J. R. R. Tolkien", date(1937, 9, 21))
	centralID, _ := gateway.AddShop("Central Bookstore", "123 Main St")
	northID, _ := gateway.AddShop("North Bookstore", "456 North Ave")

	orderID, err := gateway.AddOrder(userID, []NewOrderItem{
		{BookID: duneID, ShopID: centralID, BookQuantity: 1},
		{BookID: hobbitID, ShopID: northID, BookQuantity: 2},
		{BookID: duneID, ShopID: northID, BookQuantity: 3},
	})
	assert.NoError(t, err)

	items, err := gateway.ListOrderItems(orderID, 100, 0)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(items))

	// shop_id descending, then book_id descending.
	assert.Equal(t, "The Hobbit", items[0].BookName)
	assert.Equal(t, "North Bookstore", items[0].ShopName)
	assert.Equal(t, "Dune", items[1].BookName)
	assert.Equal(t, "North Bookstore", items[1].ShopName)
	assert.Equal(t, "Dune", items[2].BookName)
	assert.Equal(t, "Central Bookstore", items[2].ShopName)

	assert.Equal(t, "Frank Herbert", items[1].Author)
	assert.Equal(t, "456 North Ave", items[0].Address)
	assert.Equal(t, 2, items[0].BookQuantity)
	assert.Equal(t, "1937-09-21", items[0].ReleaseDate.Format("2006-01-02"))
}

func TestListOrderItemsNotFoundVsEmptyPage(t *testing.T) {
	db := setupTestDB()
	gateway := New(db)

	userID, _ := gateway.AddUser("John", "Doe", "john@example.com")
	bookID, _ := gateway.AddBook("Dune", "Frank Herbert", date(1965, 6, 1))
	shopID, _ := gateway.AddShop("Central Bookstore", "123 Main St")
	orderID, _ := gateway.AddOrder(userID, []NewOrderItem{
		{BookID: bookID, ShopID: shopID, BookQuantity: 1},
	})

	// Unknown order id is a not-found error.
	_, err := gateway.ListOrderItems(999, 100, 0)
	assert.Error(t, err)
	var domainErr *apierr.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.Code)
	assert.Equal(t, "Order 999 not found", domainErr.Text)

	// An existing order whose requested page is empty is not an error.
	items, err := gateway.ListOrderItems(orderID, 100, 50)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(items))
}
