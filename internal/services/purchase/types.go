package purchase

import "time"

// PurchaseInput is one checkout attempt. PaymentToken is single-use by
// provider convention: a failed attempt needs a fresh token.
type PurchaseInput struct {
	DealID        uint   `json:"deal_id"`
	PaymentToken  string `json:"payment_token"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
}

// Config carries the orchestrator's operating parameters.
type Config struct {
	CommissionRatePercent float64
	Currency              string
	ProviderTimeout       time.Duration
}
