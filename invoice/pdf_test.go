package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"klubnika/models"
)

func sampleOrder() (*models.Order, *models.User) {
	order := &models.Order{
		ID: primitive.NewObjectID(),
		Items: []models.OrderLine{
			{Title: "Cold Coffee", Price: "150", Quantity: 2},
			{Title: "A very long item name that should get truncated nicely", Price: "75", Quantity: 1},
		},
		SubTotal:       375,
		GSTAmount:      18.75,
		DeliveryCharge: 20,
		TotalAmount:    413.75,
		OrderType:      models.OrderTypeDelivery,
		DeliveryAddress: "42 Lake Road, Kolkata",
		CreatedAt:       time.Date(2025, 6, 14, 12, 30, 0, 0, time.UTC),
	}
	user := &models.User{Name: "Asha", Mobile: "+919900112233"}
	return order, user
}

func TestRenderProducesPDF(t *testing.T) {
	order, user := sampleOrder()

	buf, err := Render(order, user)
	require.NoError(t, err)

	assert.NotEmpty(t, buf)
	assert.Equal(t, "%PDF", string(buf[:4]))
}

func TestRenderLegacyOrderWithoutBreakdown(t *testing.T) {
	order, user := sampleOrder()
	order.SubTotal = 0
	order.GSTAmount = 0
	order.DeliveryCharge = 0
	order.TotalAmount = 420

	buf, err := Render(order, user)
	require.NoError(t, err)
	assert.NotEmpty(t, buf)
}

func TestFilename(t *testing.T) {
	order, _ := sampleOrder()
	assert.Equal(t, "invoice-"+order.ID.Hex()+".pdf", Filename(order))
}
