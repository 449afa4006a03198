package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"klubnika/models"
)

type fakeRefunder struct {
	calls  int
	lastID string
	amount int64
	notes  map[string]string
	err    error
}

func (f *fakeRefunder) RefundPayment(_ context.Context, paymentID string, amountPaise int64, notes map[string]string) (*Refund, error) {
	f.calls++
	f.lastID = paymentID
	f.amount = amountPaise
	f.notes = notes
	if f.err != nil {
		return nil, f.err
	}
	return &Refund{ID: "rfnd_1", Amount: amountPaise, Status: "processed"}, nil
}

func TestRefundOnCancelPaidOrder(t *testing.T) {
	f := &fakeRefunder{}
	order := &models.Order{
		ID:          primitive.NewObjectID(),
		PaymentID:   "pay_abc",
		TotalAmount: 492.50,
	}

	attempted, err := RefundOnCancel(context.Background(), f, order, "changed my mind")
	require.NoError(t, err)

	assert.True(t, attempted)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "pay_abc", f.lastID)
	assert.Equal(t, int64(49250), f.amount)
	assert.Equal(t, "changed my mind", f.notes["reason"])
	assert.Equal(t, order.ID.Hex(), f.notes["order_id"])
}

func TestRefundOnCancelCashOrder(t *testing.T) {
	f := &fakeRefunder{}
	order := &models.Order{ID: primitive.NewObjectID(), TotalAmount: 240}

	attempted, err := RefundOnCancel(context.Background(), f, order, "")
	require.NoError(t, err)

	assert.False(t, attempted)
	assert.Equal(t, 0, f.calls)
}

func TestRefundOnCancelDefaultsReason(t *testing.T) {
	f := &fakeRefunder{}
	order := &models.Order{ID: primitive.NewObjectID(), PaymentID: "pay_x", TotalAmount: 100}

	_, err := RefundOnCancel(context.Background(), f, order, "")
	require.NoError(t, err)
	assert.Equal(t, "Customer/Admin requested cancellation", f.notes["reason"])
}

func TestRefundOnCancelSurfacesGatewayError(t *testing.T) {
	f := &fakeRefunder{err: errors.New("gateway down")}
	order := &models.Order{ID: primitive.NewObjectID(), PaymentID: "pay_x", TotalAmount: 100}

	attempted, err := RefundOnCancel(context.Background(), f, order, "")
	assert.True(t, attempted)
	assert.Error(t, err)
}
