// Package pricing computes the checkout breakdown: subtotal, 5% GST,
// delivery charge and grand total. It is pure; callers persist the
// result on the order.
package pricing

import (
	"errors"
	"math"
	"regexp"
	"strconv"

	"klubnika/models"
)

const (
	gstRate           = 0.05
	deliveryCharge    = 20
	freeDeliveryAbove = 500
)

var ErrInvalidTotal = errors.New("invalid total amount calculated")

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParsePrice turns a storefront display price ("₹149", "Rs. 20.50")
// into a number. Malformed or empty prices parse as 0.
func ParsePrice(raw string) float64 {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

type Quote struct {
	SubTotal       float64 `json:"subTotal"`
	GSTAmount      float64 `json:"gstAmount"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	Total          float64 `json:"total"`
}

// Round2 rounds half away from zero to two decimals, matching how the
// stored financial fields are kept.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate prices a cart. Delivery orders under the free-delivery
// threshold carry a flat charge. An empty or all-zero cart yields a
// non-positive total and is rejected.
func Calculate(items []models.OrderLine, orderType string) (Quote, error) {
	var q Quote
	for _, item := range items {
		q.SubTotal += ParsePrice(item.Price) * float64(item.Quantity)
	}

	q.GSTAmount = Round2(q.SubTotal * gstRate)
	if orderType == models.OrderTypeDelivery && q.SubTotal < freeDeliveryAbove {
		q.DeliveryCharge = deliveryCharge
	}
	q.Total = q.SubTotal + q.GSTAmount + q.DeliveryCharge

	if math.IsNaN(q.Total) || math.IsInf(q.Total, 0) || q.Total <= 0 {
		return Quote{}, ErrInvalidTotal
	}
	return q, nil
}
