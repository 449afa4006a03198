// Package payment talks to the Razorpay gateway: checkout signature
// verification, order creation, payment lookup and refunds.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrPaymentNotCaptured = errors.New("payment not captured")
)

// VerifySignature checks the checkout callback signature: HMAC-SHA256
// over "orderID|paymentID" with the key secret, hex encoded.
func VerifySignature(orderID, paymentID, signature, secret string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// MethodLabel turns the gateway's payment method fields into the
// human-readable string stored on the order.
func MethodLabel(p *Payment) string {
	switch p.Method {
	case "wallet":
		return fmt.Sprintf("Wallet (%s)", p.Wallet)
	case "emi":
		return "Pay Later / EMI"
	case "card":
		return fmt.Sprintf("%s Card", p.Card.Network)
	case "upi":
		return fmt.Sprintf("UPI (%s)", p.VPA)
	}
	return p.Method
}
