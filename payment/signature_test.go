package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testOrderID   = "order_MkQxzW7sA2bLp9"
	testPaymentID = "pay_NcR8vT4yB6dKm1"
	testSecret    = "test_key_secret"

	// HMAC-SHA256(testSecret, testOrderID|testPaymentID)
	testSignature = "6a014c917d2a21bcf6289f019bb700fccd286563b31a5fa2da73a6f8a5c40eb3"
)

func TestVerifySignatureKnownVector(t *testing.T) {
	assert.NoError(t, VerifySignature(testOrderID, testPaymentID, testSignature, testSecret))
}

func TestVerifySignatureRejectsMutations(t *testing.T) {
	for i := 0; i < len(testSignature); i++ {
		mutated := []byte(testSignature)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		err := VerifySignature(testOrderID, testPaymentID, string(mutated), testSecret)
		assert.ErrorIs(t, err, ErrInvalidSignature, "mutation at index %d", i)
	}
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	err := VerifySignature(testOrderID, testPaymentID, testSignature, "another_secret")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignatureRejectsSwappedIDs(t *testing.T) {
	err := VerifySignature(testPaymentID, testOrderID, testSignature, testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestMethodLabel(t *testing.T) {
	wallet := &Payment{Method: "wallet", Wallet: "paytm"}
	assert.Equal(t, "Wallet (paytm)", MethodLabel(wallet))

	card := &Payment{Method: "card"}
	card.Card.Network = "Visa"
	assert.Equal(t, "Visa Card", MethodLabel(card))

	upi := &Payment{Method: "upi", VPA: "user@oksbi"}
	assert.Equal(t, "UPI (user@oksbi)", MethodLabel(upi))

	emi := &Payment{Method: "emi"}
	assert.Equal(t, "Pay Later / EMI", MethodLabel(emi))

	netbanking := &Payment{Method: "netbanking"}
	assert.Equal(t, "netbanking", MethodLabel(netbanking))
}
