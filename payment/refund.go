package payment

import (
	"context"
	"math"

	"klubnika/models"
)

type Refunder interface {
	RefundPayment(ctx context.Context, paymentID string, amountPaise int64, notes map[string]string) (*Refund, error)
}

// RefundOnCancel issues a full refund when the cancelled order was paid
// online. Cash orders carry no payment reference and are skipped.
// Returns whether a refund was attempted; the caller logs any error and
// still marks the order cancelled.
func RefundOnCancel(ctx context.Context, r Refunder, o *models.Order, reason string) (bool, error) {
	if o.PaymentID == "" {
		return false, nil
	}
	if reason == "" {
		reason = "Customer/Admin requested cancellation"
	}
	notes := map[string]string{
		"reason":   reason,
		"order_id": o.ID.Hex(),
	}
	_, err := r.RefundPayment(ctx, o.PaymentID, int64(math.Round(o.TotalAmount*100)), notes)
	return true, err
}
