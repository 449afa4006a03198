package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"klubnika/database"
	"klubnika/models"
	"klubnika/payment"
)

// Gateway is what the payment and order controllers need from the
// Razorpay client.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*payment.GatewayOrder, error)
	FetchPayment(ctx context.Context, paymentID string) (*payment.Payment, error)
	RefundPayment(ctx context.Context, paymentID string, amountPaise int64, notes map[string]string) (*payment.Refund, error)
}

func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, _ := c.Get("userId")
	hex, _ := raw.(string)
	id, err := primitive.ObjectIDFromHex(hex)
	return id, err == nil
}

func isAdmin(c *gin.Context) bool {
	v, _ := c.Get("isAdmin")
	admin, _ := v.(bool)
	return admin
}

func loadUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func loadOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := database.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// cleanItemTitle collapses customized variants back to the base menu
// item for stock lookups, e.g. "Extra Cheese (Margherita)".
func cleanItemTitle(title string) string {
	if strings.HasPrefix(title, "Extra Cheese (") {
		return "Extra Cheese"
	}
	return title
}

func reqCtx(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// userSummary is the populated user block embedded in admin order
// listings and reports.
func userSummary(ctx context.Context, id primitive.ObjectID) gin.H {
	user, err := loadUser(ctx, id)
	if err != nil {
		return gin.H{"name": "Guest", "email": "", "mobile": "N/A"}
	}
	return gin.H{"name": user.Name, "email": user.Email, "mobile": user.Mobile}
}
