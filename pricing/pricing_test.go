package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klubnika/models"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"₹149":      149,
		"Rs. 20.50": 20.50,
		"120":       120,
		"":          0,
		"free":      0,
		"₹ 1,250":   1250,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePrice(raw), "raw=%q", raw)
	}
}

func TestCalculateDeliveryUnderThreshold(t *testing.T) {
	items := []models.OrderLine{
		{Title: "Cold Coffee", Price: "₹150", Quantity: 2},
		{Title: "Garlic Bread", Price: "₹75", Quantity: 2},
	}
	q, err := Calculate(items, models.OrderTypeDelivery)
	require.NoError(t, err)

	assert.Equal(t, 450.0, q.SubTotal)
	assert.Equal(t, 22.50, q.GSTAmount)
	assert.Equal(t, 20.0, q.DeliveryCharge)
	assert.Equal(t, 492.50, q.Total)
}

func TestCalculateFreeDeliveryAboveThreshold(t *testing.T) {
	items := []models.OrderLine{
		{Title: "Party Platter", Price: "₹600", Quantity: 1},
	}
	q, err := Calculate(items, models.OrderTypeDelivery)
	require.NoError(t, err)

	assert.Equal(t, 600.0, q.SubTotal)
	assert.Equal(t, 30.0, q.GSTAmount)
	assert.Equal(t, 0.0, q.DeliveryCharge)
	assert.Equal(t, 630.0, q.Total)
}

func TestCalculateDineInNeverChargesDelivery(t *testing.T) {
	items := []models.OrderLine{
		{Title: "Espresso", Price: "₹99", Quantity: 1},
	}
	q, err := Calculate(items, models.OrderTypeDineIn)
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.DeliveryCharge)
}

func TestCalculateIdentities(t *testing.T) {
	carts := [][]models.OrderLine{
		{{Price: "₹49", Quantity: 1}},
		{{Price: "₹149", Quantity: 3}, {Price: "₹99.50", Quantity: 2}},
		{{Price: "₹500", Quantity: 1}},
		{{Price: "₹1", Quantity: 499}},
	}
	for _, items := range carts {
		for _, orderType := range []string{models.OrderTypeDelivery, models.OrderTypeDineIn} {
			q, err := Calculate(items, orderType)
			require.NoError(t, err)

			assert.Equal(t, Round2(q.SubTotal*0.05), q.GSTAmount)
			assert.InDelta(t, q.SubTotal+q.GSTAmount+q.DeliveryCharge, q.Total, 0.001)

			if orderType == models.OrderTypeDelivery && q.SubTotal < 500 {
				assert.Equal(t, 20.0, q.DeliveryCharge)
			} else {
				assert.Equal(t, 0.0, q.DeliveryCharge)
			}
		}
	}
}

func TestCalculateRejectsEmptyCart(t *testing.T) {
	_, err := Calculate(nil, models.OrderTypeDelivery)
	assert.ErrorIs(t, err, ErrInvalidTotal)
}

func TestCalculateRejectsAllZeroPrices(t *testing.T) {
	items := []models.OrderLine{
		{Title: "Mystery", Price: "n/a", Quantity: 2},
	}
	_, err := Calculate(items, models.OrderTypeDineIn)
	assert.ErrorIs(t, err, ErrInvalidTotal)
}
