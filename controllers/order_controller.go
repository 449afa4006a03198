package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"klubnika/database"
	"klubnika/invoice"
	"klubnika/models"
	"klubnika/notify"
	"klubnika/payment"
	"klubnika/realtime"
)

type OrderController struct {
	Gateway       Gateway
	Mailer        *notify.Mailer
	SMS           *notify.SMSClient
	Dispatch      *notify.Dispatcher
	Hub           *realtime.Hub
	Log           *slog.Logger
	PublicBaseURL string
}

// GetAllOrders serves the admin order dashboard. With
// ?type=invoice&order_id= it instead streams that order's PDF invoice,
// which is the link customers get by SMS; owners may fetch their own
// invoice, admins anyone's.
func (o *OrderController) GetAllOrders(c *gin.Context) {
	if c.Query("type") == "invoice" && c.Query("order_id") != "" {
		o.serveInvoice(c, c.Query("order_id"))
		return
	}

	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin only."})
		return
	}

	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	resp := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, orderWithUser(ctx, order))
	}
	c.JSON(http.StatusOK, resp)
}

func (o *OrderController) GetMyOrders(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus advances an order one step along the fulfillment flow
// and fires the matching notifications. Cancellation has its own
// endpoint so refunds are never skipped.
func (o *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !models.IsValidStatus(body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	order, err := loadOrder(ctx, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if body.Status == models.StatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Use the cancel endpoint to cancel an order"})
		return
	}
	if err := models.CanAdvance(order.Status, body.Status); err != nil {
		if errors.Is(err, models.ErrAlreadyFinalized) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already finalized."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot change status from " + order.Status + " to " + body.Status,
		})
		return
	}

	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": body.Status, "updatedAt": time.Now()}}

	var updated models.Order
	err = database.OrderCollection.FindOneAndUpdate(ctx, bson.M{"_id": orderID}, update, updateOpts).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	user, err := loadUser(ctx, updated.UserID)
	if err != nil {
		o.Log.Error("order user missing, skipping notifications", "orderId", updated.ID.Hex())
		c.JSON(http.StatusOK, updated)
		return
	}

	c.JSON(http.StatusOK, updated)

	o.notifyStatusChange(updated, user)
}

// Cancel cancels an order, refunding online payments in full. A failed
// refund is logged but never blocks the cancellation.
func (o *OrderController) Cancel(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	order, err := loadOrder(ctx, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	admin := isAdmin(c)
	if !admin {
		userID, ok := callerID(c)
		if !ok || order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
			return
		}
	}

	if err := models.CanCancel(order.Status, admin); err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyFinalized):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already finalized."})
		case errors.Is(err, models.ErrNotCancellable):
			c.JSON(http.StatusForbidden, gin.H{"error": "Order cannot be cancelled at this stage."})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	if attempted, err := payment.RefundOnCancel(ctx, o.Gateway, order, body.Reason); attempted && err != nil {
		o.Log.Error("refund failed, order will still be cancelled",
			"orderId", order.ID.Hex(), "paymentId", order.PaymentID, "error", err)
	}

	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": models.StatusCancelled, "updatedAt": time.Now()}}

	var updated models.Order
	err = database.OrderCollection.FindOneAndUpdate(ctx, bson.M{"_id": orderID}, update, updateOpts).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled and refund initiated",
		"order":   updated,
	})

	user, err := loadUser(ctx, updated.UserID)
	if err != nil {
		return
	}

	o.emitStatusUpdate(updated)
	reason := body.Reason
	o.Dispatch.Enqueue("email.cancelled", func(ctx context.Context) error {
		subject, text, html := notify.CancelledEmail(&updated, user.Name, reason)
		return o.Mailer.Send(user.Email, subject, text, html)
	})
}

// DownloadInvoice streams the PDF invoice for one order.
func (o *OrderController) DownloadInvoice(c *gin.Context) {
	o.serveInvoice(c, c.Param("id"))
}

func (o *OrderController) serveInvoice(c *gin.Context, rawID string) {
	orderID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	order, err := loadOrder(ctx, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !isAdmin(c) {
		userID, ok := callerID(c)
		if !ok || order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
			return
		}
	}

	user, err := loadUser(ctx, order.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	buf, err := invoice.Render(order, user)
	if err != nil {
		o.Log.Error("invoice render failed", "orderId", order.ID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating invoice"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+invoice.Filename(order))
	c.Data(http.StatusOK, "application/pdf", buf)
}

// emitStatusUpdate pushes the order to the owner's channel and the
// admin broadcast.
func (o *OrderController) emitStatusUpdate(order models.Order) {
	o.Dispatch.Enqueue("socket.orderStatusUpdate", func(ctx context.Context) error {
		o.Hub.Emit(order.UserID.Hex(), realtime.EventOrderStatusUpdate, order)
		o.Hub.Emit(realtime.AdminRoom, realtime.EventOrderStatusUpdate, order)
		return nil
	})
}

func (o *OrderController) notifyStatusChange(order models.Order, user *models.User) {
	o.emitStatusUpdate(order)

	trackingLink := o.PublicBaseURL + "/my-orders"
	ratingsLink := o.PublicBaseURL + "/ratings"

	switch {
	case order.Status == models.StatusDelivered:
		o.Dispatch.Enqueue("sms.delivered", func(ctx context.Context) error {
			return o.SMS.SendDelivered(ctx, user.Mobile, order.ShortID(), ratingsLink)
		})
		o.Dispatch.Enqueue("email.delivered", func(ctx context.Context) error {
			subject, text, html := notify.DeliveredEmail(&order, user.Name)
			return o.Mailer.Send(user.Email, subject, text, html)
		})
	case order.Status != models.StatusPending:
		o.Dispatch.Enqueue("sms.statusUpdate", func(ctx context.Context) error {
			return o.SMS.SendStatusUpdate(ctx, user.Mobile, order.ShortID(), order.Status, trackingLink)
		})
		o.Dispatch.Enqueue("email.statusUpdate", func(ctx context.Context) error {
			subject, text, html := notify.StatusUpdateEmail(&order, user.Name, trackingLink)
			return o.Mailer.Send(user.Email, subject, text, html)
		})
	}
}

func orderWithUser(ctx context.Context, order models.Order) gin.H {
	return gin.H{
		"id":              order.ID.Hex(),
		"user":            userSummary(ctx, order.UserID),
		"items":           order.Items,
		"subTotal":        order.SubTotal,
		"gstAmount":       order.GSTAmount,
		"deliveryCharge":  order.DeliveryCharge,
		"totalAmount":     order.TotalAmount,
		"status":          order.Status,
		"orderType":       order.OrderType,
		"tableNumber":     order.TableNumber,
		"deliveryAddress": order.DeliveryAddress,
		"paymentMethod":   order.PaymentMethod,
		"createdAt":       order.CreatedAt,
		"updatedAt":       order.UpdatedAt,
	}
}
