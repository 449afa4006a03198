package controllers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"klubnika/database"
	"klubnika/invoice"
	"klubnika/models"
	"klubnika/notify"
	"klubnika/payment"
	"klubnika/pricing"
	"klubnika/realtime"
)

type PaymentController struct {
	Gateway       Gateway
	Mailer        *notify.Mailer
	SMS           *notify.SMSClient
	Dispatch      *notify.Dispatcher
	Hub           *realtime.Hub
	KeySecret     string
	PublicBaseURL string
}

// CreateOrder prices the caller's cart and opens a gateway order for
// the online payment flow. Nothing is persisted yet; the order
// materializes in VerifyPayment.
func (p *PaymentController) CreateOrder(c *gin.Context) {
	var body struct {
		OrderType string `json:"orderType"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	user, err := loadUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if len(user.Cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty."})
		return
	}

	if soldOut := soldOutItems(ctx, user.Cart); len(soldOut) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items sold out: " + strings.Join(soldOut, ", ")})
		return
	}

	quote, err := pricing.Calculate(user.Cart, body.OrderType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total amount calculated."})
		return
	}

	receipt := "rcpt_" + uuid.NewString()
	order, err := p.Gateway.CreateOrder(ctx, int64(math.Round(quote.Total*100)), receipt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error creating order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// VerifyPayment checks the gateway callback signature and payment
// status, then materializes the order from the cart snapshot. Keyed by
// payment id: a duplicate verification call returns the order already
// created for that payment.
func (p *PaymentController) VerifyPayment(c *gin.Context) {
	var body struct {
		GatewayOrderID  string         `json:"gatewayOrderId"`
		PaymentID       string         `json:"paymentId"`
		Signature       string         `json:"signature"`
		DeliveryAddress string         `json:"deliveryAddress"`
		DeliveryCoords  *models.Coords `json:"deliveryCoords"`
		OrderType       string         `json:"orderType"`
		TableNumber     string         `json:"tableNumber"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := payment.VerifySignature(body.GatewayOrderID, body.PaymentID, body.Signature, p.KeySecret); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid signature."})
		return
	}

	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	pay, err := p.Gateway.FetchPayment(ctx, body.PaymentID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Failed to fetch payment"})
		return
	}
	if pay.Status != "captured" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment not captured"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	user, err := loadUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// retry-safe: one order per captured payment
	var existing models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"paymentId": body.PaymentID}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order already created", "orderId": existing.ID.Hex()})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	if len(user.Cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty."})
		return
	}

	orderType := body.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDelivery
	}

	quote, err := pricing.Calculate(user.Cart, orderType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total amount calculated."})
		return
	}

	amountPaid := float64(pay.Amount) / 100

	order := models.Order{
		ID:             primitive.NewObjectID(),
		UserID:         user.ID,
		Items:          user.Cart,
		SubTotal:       quote.SubTotal,
		GSTAmount:      quote.GSTAmount,
		DeliveryCharge: quote.DeliveryCharge,
		TotalAmount:    amountPaid,
		Status:         models.StatusPending,
		OrderType:      orderType,
		PaymentID:      pay.ID,
		GatewayOrderID: body.GatewayOrderID,
		PaymentMethod:  payment.MethodLabel(pay),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if orderType == models.OrderTypeDineIn {
		order.TableNumber = body.TableNumber
	} else {
		order.DeliveryAddress = body.DeliveryAddress
		order.DeliveryCoords = body.DeliveryCoords
	}

	if _, err := database.OrderCollection.InsertOne(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	clearCart(ctx, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order created successfully",
		"orderId": order.ID.Hex(),
	})

	p.notifyNewOrder(order, user, true)
}

// CreateCashOrder places a pay-at-counter or cash-on-delivery order
// straight from the cart.
func (p *PaymentController) CreateCashOrder(c *gin.Context) {
	var body struct {
		OrderType       string         `json:"orderType"`
		TableNumber     string         `json:"tableNumber"`
		DeliveryAddress string         `json:"deliveryAddress"`
		DeliveryCoords  *models.Coords `json:"deliveryCoords"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	user, err := loadUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if len(user.Cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty."})
		return
	}

	orderType := body.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDelivery
	}

	quote, err := pricing.Calculate(user.Cart, orderType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total amount calculated."})
		return
	}

	paymentMethod := "Cash"
	switch orderType {
	case models.OrderTypeDineIn:
		paymentMethod = "Pay at Counter (Cash)"
	case models.OrderTypeDelivery:
		paymentMethod = "Cash on Delivery"
	}

	order := models.Order{
		ID:             primitive.NewObjectID(),
		UserID:         user.ID,
		Items:          user.Cart,
		SubTotal:       quote.SubTotal,
		GSTAmount:      quote.GSTAmount,
		DeliveryCharge: quote.DeliveryCharge,
		TotalAmount:    quote.Total,
		Status:         models.StatusPending,
		OrderType:      orderType,
		PaymentMethod:  paymentMethod,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if orderType == models.OrderTypeDineIn {
		order.TableNumber = body.TableNumber
	} else {
		order.DeliveryAddress = body.DeliveryAddress
		order.DeliveryCoords = body.DeliveryCoords
	}

	if _, err := database.OrderCollection.InsertOne(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	clearCart(ctx, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orderId": order.ID.Hex(),
		"message": "Order placed successfully!",
	})

	p.notifyNewOrder(order, user, false)
}

// notifyNewOrder queues the post-commit side effects: admin socket
// event, bill SMS (online payments only) and the confirmation email
// with the PDF invoice attached.
func (p *PaymentController) notifyNewOrder(order models.Order, user *models.User, paid bool) {
	p.Dispatch.Enqueue("socket.newOrder", func(ctx context.Context) error {
		p.Hub.Emit(realtime.AdminRoom, realtime.EventNewOrder, order)
		return nil
	})

	if paid {
		invoiceLink := p.PublicBaseURL + "/api/orders"
		p.Dispatch.Enqueue("sms.bill", func(ctx context.Context) error {
			return p.SMS.SendBill(ctx, user.Mobile, order.TotalAmount, order.ShortID(), invoiceLink)
		})
	}

	p.Dispatch.Enqueue("email.orderPlaced", func(ctx context.Context) error {
		var subject, text, html string
		if paid {
			subject, text, html = notify.OrderConfirmedEmail(&order, user.Name)
		} else {
			subject, text, html = notify.OrderPlacedEmail(&order, user.Name)
		}

		pdfBuf, err := invoice.Render(&order, user)
		if err != nil {
			// still send the email, just without the attachment
			return p.Mailer.Send(user.Email, subject, text, html)
		}
		return p.Mailer.Send(user.Email, subject, text, html, notify.Attachment{
			Filename:    invoice.Filename(&order),
			Content:     pdfBuf,
			ContentType: "application/pdf",
		})
	})
}

func clearCart(ctx context.Context, userID primitive.ObjectID) {
	_, _ = database.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": []models.OrderLine{}}},
	)
}

func soldOutItems(ctx context.Context, cart []models.OrderLine) []string {
	titles := map[string]struct{}{}
	for _, item := range cart {
		titles[cleanItemTitle(item.Title)] = struct{}{}
	}
	unique := make([]string, 0, len(titles))
	for t := range titles {
		unique = append(unique, t)
	}

	cursor, err := database.ProductCollection.Find(ctx, bson.M{"name": bson.M{"$in": unique}})
	if err != nil {
		return nil
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil
	}

	stock := map[string]bool{}
	for _, prod := range products {
		stock[prod.Name] = prod.IsInStock
	}

	var soldOut []string
	for _, item := range cart {
		if inStock, known := stock[cleanItemTitle(item.Title)]; known && !inStock {
			soldOut = append(soldOut, item.Title)
		}
	}
	return soldOut
}
