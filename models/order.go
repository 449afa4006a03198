package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending        = "Pending"
	StatusConfirmed      = "Confirmed"
	StatusPreparing      = "Preparing"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

const (
	OrderTypeDelivery = "Delivery"
	OrderTypeDineIn   = "Dine-in"
)

// OrderLine is one cart entry frozen into the order at checkout time.
// Price keeps the storefront display string.
type OrderLine struct {
	Title    string `bson:"title" json:"title"`
	Price    string `bson:"price" json:"price"`
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

type Coords struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Order struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Items  []OrderLine        `bson:"items" json:"items"`

	SubTotal       float64 `bson:"subTotal" json:"subTotal"`
	GSTAmount      float64 `bson:"gstAmount" json:"gstAmount"`
	DeliveryCharge float64 `bson:"deliveryCharge" json:"deliveryCharge"`
	TotalAmount    float64 `bson:"totalAmount" json:"totalAmount"`

	Status    string `bson:"status" json:"status"`
	OrderType string `bson:"orderType" json:"orderType"`

	TableNumber     string  `bson:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	DeliveryAddress string  `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	DeliveryCoords  *Coords `bson:"deliveryCoords,omitempty" json:"deliveryCoords,omitempty"`

	PaymentID      string `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	GatewayOrderID string `bson:"gatewayOrderId,omitempty" json:"gatewayOrderId,omitempty"`
	PaymentMethod  string `bson:"paymentMethod" json:"paymentMethod"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ShortID is the customer-facing order reference used in SMS and email.
func (o *Order) ShortID() string {
	hex := o.ID.Hex()
	if len(hex) > 6 {
		hex = hex[len(hex)-6:]
	}
	return strings.ToUpper(hex)
}
