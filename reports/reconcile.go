// Package reports recovers financial breakdowns for monthly sales
// exports. Orders created before the subTotal/gstAmount/deliveryCharge
// fields existed only carry a grand total; the reconciler back-computes
// plausible values for display. It never writes anything back.
package reports

import (
	"math"

	"klubnika/models"
)

type Financials struct {
	SubTotal       float64 `json:"subTotal"`
	GSTAmount      float64 `json:"gstAmount"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	Total          float64 `json:"total"`
}

// Reconcile fills missing fields from the grand total. The heuristic
// runs in order: assume the delivery charge from the order type and the
// free-delivery threshold, back out the subtotal at 5% GST, then take
// GST as the remaining gap. A residual gap of roughly 20 on legacy
// orders is treated as an unrecorded delivery charge.
func Reconcile(o models.Order) Financials {
	f := Financials{
		SubTotal:       o.SubTotal,
		GSTAmount:      o.GSTAmount,
		DeliveryCharge: o.DeliveryCharge,
		Total:          o.TotalAmount,
	}

	haveDelivery := f.DeliveryCharge != 0

	if f.SubTotal <= 0 {
		assumed := 0.0
		if o.OrderType == models.OrderTypeDelivery && (f.Total-20)/1.05 < 500 {
			assumed = 20
		}
		f.DeliveryCharge = assumed
		haveDelivery = true
		f.SubTotal = (f.Total - assumed) / 1.05
	}

	if f.GSTAmount <= 0 {
		f.GSTAmount = f.Total - f.SubTotal - f.DeliveryCharge
	}

	if !haveDelivery {
		gap := f.Total - f.SubTotal - f.GSTAmount
		if math.Abs(gap-20) < 1 {
			f.DeliveryCharge = 20
		} else {
			f.DeliveryCharge = 0
		}
	}

	f.SubTotal = round2(f.SubTotal)
	f.GSTAmount = round2(f.GSTAmount)
	f.DeliveryCharge = round2(f.DeliveryCharge)
	f.Total = round2(f.Total)
	return f
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
