package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"klubnika/database"
	"klubnika/models"
	"klubnika/pricing"
)

// The cart lives on the user document as a snapshot of storefront
// items; checkout freezes it into an order and clears it.

func GetCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ctx, cancel := reqCtx(5 * time.Second)
	defer cancel()

	user, err := loadUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := gin.H{"items": user.Cart}
	orderType := c.DefaultQuery("orderType", models.OrderTypeDelivery)
	if quote, err := pricing.Calculate(user.Cart, orderType); err == nil {
		resp["quote"] = quote
	}
	c.JSON(http.StatusOK, resp)
}

func AddToCart(c *gin.Context) {
	var body struct {
		Title    string `json:"title" binding:"required"`
		Price    string `json:"price" binding:"required"`
		Image    string `json:"image"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ctx, cancel := reqCtx(5 * time.Second)
	defer cancel()

	var product models.Product
	err := database.ProductCollection.FindOne(ctx, bson.M{"name": cleanItemTitle(body.Title)}).Decode(&product)
	if err == nil && !product.IsInStock {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item is sold out: " + body.Title})
		return
	}

	user, err := loadUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	cart := user.Cart
	merged := false
	for i := range cart {
		if cart[i].Title == body.Title {
			cart[i].Quantity += body.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart = append(cart, models.OrderLine{
			Title:    body.Title,
			Price:    body.Price,
			Image:    body.Image,
			Quantity: body.Quantity,
		})
	}

	if _, err := database.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": cart}},
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "items": cart})
}

func UpdateCartItem(c *gin.Context) {
	title := c.Param("title")

	var body struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || *body.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ctx, cancel := reqCtx(5 * time.Second)
	defer cancel()

	user, err := loadUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	cart := make([]models.OrderLine, 0, len(user.Cart))
	found := false
	for _, item := range user.Cart {
		if item.Title == title {
			found = true
			if *body.Quantity == 0 {
				continue
			}
			item.Quantity = *body.Quantity
		}
		cart = append(cart, item)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}

	if _, err := database.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": cart}},
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "items": cart})
}

func ClearCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ctx, cancel := reqCtx(5 * time.Second)
	defer cancel()

	clearCart(ctx, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
