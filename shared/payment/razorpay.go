// Package payment wraps the Razorpay provider: order creation on checkout
// and signature verification on the payment callback.
package payment

import (
	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the subset of the provider's order entity returned to the client,
// which needs it to open the payment widget.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// OrderProvider creates payment orders with the external payment provider.
type OrderProvider interface {
	CreateOrder(amount int64, currency, receipt string) (*Order, error)
}

type razorpayProvider struct {
	client *razorpay.Client
}

// NewRazorpayProvider creates an OrderProvider backed by the Razorpay API.
func NewRazorpayProvider(key, secret string) OrderProvider {
	return &razorpayProvider{client: razorpay.NewClient(key, secret)}
}

func (p *razorpayProvider) CreateOrder(amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := p.client.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}

	order := &Order{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}

	return order, nil
}
