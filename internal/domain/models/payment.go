package models

// GatewayOrder mirrors the order object created with the payment gateway.
// Amount is in minor units, as the gateway requires.
type GatewayOrder struct {
	OrderID     string `json:"order_id"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
}
