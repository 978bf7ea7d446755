package billing

import (
	"fmt"
	"time"
)

// Premium subscription price: 99 INR in paise.
const OrderAmountPaise = 9900

// Order mirrors the shape of a payment gateway's order object. Nothing is
// persisted; the descriptor only exists in the response to the caller.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// NewDemoOrder builds a pending order for the premium subscription. The real
// gateway integration is stubbed out; in production this object would come
// from the provider's orders API.
func NewDemoOrder(userID string) Order {
	return Order{
		ID:       fmt.Sprintf("order_%d", time.Now().UnixMilli()),
		Amount:   OrderAmountPaise,
		Currency: "INR",
		Receipt:  "receipt_" + userID,
		Status:   "created",
	}
}
