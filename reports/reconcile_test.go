package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"klubnika/models"
)

func TestReconcileMissingSubtotalSmallDelivery(t *testing.T) {
	// (520-20)/1.05 = 476.19 < 500, so the order must have carried the
	// delivery charge
	o := models.Order{
		TotalAmount: 520,
		OrderType:   models.OrderTypeDelivery,
	}
	f := Reconcile(o)

	assert.Equal(t, 20.0, f.DeliveryCharge)
	assert.InDelta(t, 476.19, f.SubTotal, 0.01)
	assert.InDelta(t, 23.81, f.GSTAmount, 0.01)
	assert.Equal(t, 520.0, f.Total)
}

func TestReconcileMissingSubtotalFreeDelivery(t *testing.T) {
	o := models.Order{
		TotalAmount: 630,
		OrderType:   models.OrderTypeDelivery,
	}
	f := Reconcile(o)

	assert.Equal(t, 0.0, f.DeliveryCharge)
	assert.Equal(t, 600.0, f.SubTotal)
	assert.Equal(t, 30.0, f.GSTAmount)
}

func TestReconcileDineInNeverAssumesDelivery(t *testing.T) {
	o := models.Order{
		TotalAmount: 210,
		OrderType:   models.OrderTypeDineIn,
	}
	f := Reconcile(o)

	assert.Equal(t, 0.0, f.DeliveryCharge)
	assert.Equal(t, 200.0, f.SubTotal)
	assert.Equal(t, 10.0, f.GSTAmount)
}

func TestReconcileCompleteOrderPassesThrough(t *testing.T) {
	o := models.Order{
		SubTotal:       450,
		GSTAmount:      22.50,
		DeliveryCharge: 20,
		TotalAmount:    492.50,
		OrderType:      models.OrderTypeDelivery,
	}
	f := Reconcile(o)

	assert.Equal(t, 450.0, f.SubTotal)
	assert.Equal(t, 22.50, f.GSTAmount)
	assert.Equal(t, 20.0, f.DeliveryCharge)
	assert.Equal(t, 492.50, f.Total)
}

func TestReconcileRecoversDeliveryFromGap(t *testing.T) {
	// subtotal and GST recorded but the 20 delivery charge was not
	o := models.Order{
		SubTotal:    450,
		GSTAmount:   22.50,
		TotalAmount: 492.50,
		OrderType:   models.OrderTypeDelivery,
	}
	f := Reconcile(o)
	assert.Equal(t, 20.0, f.DeliveryCharge)
}

func TestReconcileNoGapMeansNoDelivery(t *testing.T) {
	o := models.Order{
		SubTotal:    600,
		GSTAmount:   30,
		TotalAmount: 630,
		OrderType:   models.OrderTypeDelivery,
	}
	f := Reconcile(o)
	assert.Equal(t, 0.0, f.DeliveryCharge)
}
