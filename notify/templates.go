package notify

import (
	"fmt"
	"strings"

	"klubnika/models"
)

func itemRows(items []models.OrderLine) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, `<tr>
  <td style="padding:10px;border-bottom:1px solid #eee;">%s</td>
  <td style="padding:10px;border-bottom:1px solid #eee;text-align:center;">%d</td>
  <td style="padding:10px;border-bottom:1px solid #eee;text-align:right;">₹%s</td>
</tr>`, item.Title, item.Quantity, item.Price)
	}
	return b.String()
}

func deliveryLine(charge float64) string {
	if charge > 0 {
		return fmt.Sprintf("Delivery: ₹%.2f", charge)
	}
	return "Delivery: FREE"
}

// OrderConfirmedEmail is sent after a verified online payment, with the
// PDF invoice attached.
func OrderConfirmedEmail(o *models.Order, userName string) (subject, text, html string) {
	shortID := o.ShortID()
	subject = fmt.Sprintf("Total Amount Paid #%s", shortID)
	text = fmt.Sprintf("Your order for ₹%.2f is confirmed.", o.TotalAmount)
	html = fmt.Sprintf(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto;border:1px solid #e5e7eb;border-radius:8px;overflow:hidden;">
  <div style="background-color:#f43f5e;padding:40px 20px;text-align:center;">
    <h1 style="color:#fff;margin:0;">Order Confirmed!</h1>
    <p style="color:#ffe4e6;">Thanks for dining with Klubnika</p>
  </div>
  <div style="padding:40px 30px;">
    <p>Hi <strong>%s</strong>,</p>
    <p><strong>Order ID:</strong> #%s<br/><strong>Transaction ID:</strong> %s</p>
    <table style="width:100%%;border-collapse:collapse;">%s</table>
    <div style="border-top:2px solid #e5e7eb;padding-top:15px;text-align:right;">
      <p>Subtotal: ₹%.2f</p>
      <p>GST (5%%): ₹%.2f</p>
      <p>%s</p>
      <h2 style="color:#f43f5e;">Total: ₹%.2f</h2>
      <p style="font-size:11px;color:#ef4444;font-style:italic;">* Note: Delivery charge may change based on the distance.</p>
    </div>
  </div>
</div>`,
		userName, shortID, o.PaymentID, itemRows(o.Items),
		o.SubTotal, o.GSTAmount, deliveryLine(o.DeliveryCharge), o.TotalAmount)
	return subject, text, html
}

// OrderPlacedEmail covers the cash / pay-at-counter path.
func OrderPlacedEmail(o *models.Order, userName string) (subject, text, html string) {
	shortID := o.ShortID()
	subject = fmt.Sprintf("Order Placed #%s (%s)", shortID, o.PaymentMethod)
	text = fmt.Sprintf("Your order #%s is placed successfully.", shortID)
	html = fmt.Sprintf(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto;border:1px solid #e5e7eb;border-radius:8px;overflow:hidden;">
  <div style="background-color:#f43f5e;padding:40px 20px;text-align:center;">
    <h1 style="color:#fff;margin:0;">Order Received!</h1>
    <p style="color:#ffe4e6;">%s</p>
  </div>
  <div style="padding:40px 30px;">
    <p>Hi <strong>%s</strong>,</p>
    <p><strong>Order ID:</strong> #%s<br/><strong>Payment:</strong> %s</p>
    <table style="width:100%%;border-collapse:collapse;">%s</table>
    <div style="border-top:2px solid #e5e7eb;padding-top:15px;text-align:right;">
      <p>Subtotal: ₹%.2f</p>
      <p>GST (5%%): ₹%.2f</p>
      <p>%s</p>
      <h2 style="color:#f43f5e;">Total: ₹%.2f</h2>
    </div>
  </div>
</div>`,
		o.PaymentMethod, userName, shortID, o.PaymentMethod, itemRows(o.Items),
		o.SubTotal, o.GSTAmount, deliveryLine(o.DeliveryCharge), o.TotalAmount)
	return subject, text, html
}

func StatusUpdateEmail(o *models.Order, userName, trackingLink string) (subject, text, html string) {
	shortID := o.ShortID()
	subject = fmt.Sprintf("Order Update: %s #%s", o.Status, shortID)
	text = fmt.Sprintf("Order status: %s", o.Status)
	html = fmt.Sprintf(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto;border:1px solid #ddd;border-radius:8px;overflow:hidden;">
  <div style="background-color:#f43f5e;padding:20px;text-align:center;color:#fff;"><h2>Order Status Update</h2></div>
  <div style="padding:30px;">
    <p>Hi %s,</p>
    <p>Your order <strong>#%s</strong> is currently:</p>
    <h2 style="color:#f43f5e;text-align:center;">%s</h2>
    <p style="text-align:center;"><a href="%s" style="color:#f43f5e;font-weight:bold;">Track your order here</a></p>
  </div>
</div>`, userName, shortID, o.Status, trackingLink)
	return subject, text, html
}

func DeliveredEmail(o *models.Order, userName string) (subject, text, html string) {
	shortID := o.ShortID()
	subject = fmt.Sprintf("Order Delivered! #%s", shortID)
	text = "Your order has been delivered."
	html = fmt.Sprintf(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto;border:1px solid #ddd;border-radius:8px;overflow:hidden;">
  <div style="background-color:#10b981;padding:30px;text-align:center;color:#fff;"><h1>Order Delivered!</h1><p>Bon Appétit!</p></div>
  <div style="padding:30px;">
    <p>Hi %s,</p>
    <p>Your order <strong>#%s</strong> has been successfully delivered.</p>
    <p>We hope you enjoy your meal. We would love to hear your feedback!</p>
  </div>
</div>`, userName, shortID)
	return subject, text, html
}

func CancelledEmail(o *models.Order, userName, reason string) (subject, text, html string) {
	shortID := o.ShortID()
	if reason == "" {
		reason = "Request by user/admin"
	}
	subject = fmt.Sprintf("Order Cancelled #%s - Refund Initiated", shortID)
	text = "Your order has been cancelled and refund initiated."
	html = fmt.Sprintf(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto;border:1px solid #ddd;border-radius:8px;overflow:hidden;">
  <div style="background-color:#ef4444;padding:30px;text-align:center;color:#fff;"><h1>Order Cancelled</h1><p>Refund Initiated</p></div>
  <div style="padding:30px;">
    <p>Hi %s,</p>
    <p>Your order <strong>#%s</strong> has been cancelled.</p>
    <p><strong>Refund Amount:</strong> ₹%.2f</p>
    <p><strong>Reason:</strong> %s</p>
    <p>We hope to serve you again soon!</p>
  </div>
</div>`, userName, shortID, o.TotalAmount, reason)
	return subject, text, html
}
