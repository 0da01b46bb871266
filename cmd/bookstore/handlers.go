package main

import (
	"bookstore/pkg/envelope"
	"bookstore/pkg/schema"
	"bookstore/pkg/store"
	"strconv"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, data any) {
	env := envelope.Wrap(data, nil)
	c.JSON(env.Code, env)
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, schema.NotAnInteger(name)
	}
	return uint(id), nil
}

func getIndex(c *gin.Context) {
	respondOK(c, gin.H{
		"users":  "/store/users",
		"orders": "/store/users/:user_id/orders",
		"shops":  "/store/shops",
		"books":  "/store/books",
	})
}

func getUsers(c *gin.Context) {
	users, err := gateway.ListUsers()
	if err != nil {
		c.Error(err)
		return
	}
	items := make([]gin.H, len(users))
	for i, user := range users {
		items[i] = gin.H{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
		}
	}
	respondOK(c, gin.H{"users": items})
}

func addUser(c *gin.Context) {
	var request schema.AddUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.Error(schema.InvalidBody())
		return
	}
	if err := request.Validate(); err != nil {
		c.Error(err)
		return
	}
	id, err := gateway.AddUser(*request.FirstName, *request.LastName, *request.Email)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{"user_id": id})
}

func getUser(c *gin.Context) {
	id, err := pathID(c, "user_id")
	if err != nil {
		c.Error(err)
		return
	}
	user, err := gateway.GetUser(id)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
	})
}

func getUserOrders(c *gin.Context) {
	id, err := pathID(c, "user_id")
	if err != nil {
		c.Error(err)
		return
	}
	paging, err := schema.ParseLimitOffset(c.Query("limit"), c.Query("offset"))
	if err != nil {
		c.Error(err)
		return
	}
	orders, err := gateway.ListOrders(id, paging.Limit, paging.Offset)
	if err != nil {
		c.Error(err)
		return
	}
	items := make([]gin.H, len(orders))
	for i, order := range orders {
		items[i] = gin.H{
			"id":       order.ID,
			"reg_date": order.RegDate.Format(schema.DateLayout),
			"user_id":  order.UserID,
		}
	}
	respondOK(c, gin.H{"orders": items})
}

func addOrder(c *gin.Context) {
	id, err := pathID(c, "user_id")
	if err != nil {
		c.Error(err)
		return
	}
	var request schema.AddOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.Error(schema.InvalidBody())
		return
	}
	if err := request.Validate(); err != nil {
		c.Error(err)
		return
	}
	items := make([]store.NewOrderItem, len(request.OrderItems))
	for i, item := range request.OrderItems {
		items[i] = store.NewOrderItem{
			BookID:       *item.BookID,
			ShopID:       *item.ShopID,
			BookQuantity: *item.BookQuantity,
		}
	}
	orderID, err := gateway.AddOrder(id, items)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{"order_id": orderID})
}

func getOrderDetails(c *gin.Context) {
	id, err := pathID(c, "order_id")
	if err != nil {
		c.Error(err)
		return
	}
	paging, err := schema.ParseLimitOffset(c.Query("limit"), c.Query("offset"))
	if err != nil {
		c.Error(err)
		return
	}
	items, err := gateway.ListOrderItems(id, paging.Limit, paging.Offset)
	if err != nil {
		c.Error(err)
		return
	}
	rows := make([]gin.H, len(items))
	for i, item := range items {
		rows[i] = gin.H{
			"book_name":     item.BookName,
			"author":        item.Author,
			"release_date":  item.ReleaseDate.Format(schema.DateLayout),
			"shop_name":     item.ShopName,
			"address":       item.Address,
			"book_quantity": item.BookQuantity,
		}
	}
	respondOK(c, gin.H{"order_id": id, "order_items": rows})
}

func getShops(c *gin.Context) {
	shops, err := gateway.ListShops()
	if err != nil {
		c.Error(err)
		return
	}
	items := make([]gin.H, len(shops))
	for i, shop := range shops {
		items[i] = gin.H{
			"id":      shop.ID,
			"name":    shop.Name,
			"address": shop.Address,
		}
	}
	respondOK(c, gin.H{"shops": items})
}

func addShop(c *gin.Context) {
	var request schema.AddShopRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.Error(schema.InvalidBody())
		return
	}
	if err := request.Validate(); err != nil {
		c.Error(err)
		return
	}
	id, err := gateway.AddShop(*request.Name, *request.Address)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{"shop_id": id})
}

func getShop(c *gin.Context) {
	id, err := pathID(c, "shop_id")
	if err != nil {
		c.Error(err)
		return
	}
	shop, err := gateway.GetShop(id)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{
		"id":      shop.ID,
		"name":    shop.Name,
		"address": shop.Address,
	})
}

func getBooks(c *gin.Context) {
	books, err := gateway.ListBooks()
	if err != nil {
		c.Error(err)
		return
	}
	items := make([]gin.H, len(books))
	for i, book := range books {
		items[i] = gin.H{
			"id":           book.ID,
			"name":         book.Name,
			"author":       book.Author,
			"release_date": book.ReleaseDate.Format(schema.DateLayout),
		}
	}
	respondOK(c, gin.H{"books": items})
}

func addBook(c *gin.Context) {
	var request schema.AddBookRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.Error(schema.InvalidBody())
		return
	}
	if err := request.Validate(); err != nil {
		c.Error(err)
		return
	}
	id, err := gateway.AddBook(*request.Name, *request.Author, request.Released())
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{"book_id": id})
}

func getBook(c *gin.Context) {
	id, err := pathID(c, "book_id")
	if err != nil {
		c.Error(err)
		return
	}
	book, err := gateway.GetBook(id)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{
		"id":           book.ID,
		"name":         book.Name,
		"author":       book.Author,
		"release_date": book.ReleaseDate.Format(schema.DateLayout),
	})
}
