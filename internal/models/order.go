package models

import "time"

// Purchase order statuses
const (
	OrderSucceeded = "succeeded"
	OrderFailed    = "failed"
)

// PurchaseOrder is one row of the append-only purchase ledger. A row is
// written for every attempt that reached the provider, succeeded or not,
// and is never updated afterwards. Amounts are minor units; the
// commission rate is snapshotted in basis points so later rate changes
// cannot rewrite history. CommissionCents + PayoutCents always equals
// AmountCents.
type PurchaseOrder struct {
	ID                uint      `gorm:"primarykey" json:"-"`
	OrderID           string    `gorm:"uniqueIndex;not null" json:"order_id"`
	DealID            uint      `gorm:"index;not null" json:"deal_id"`
	MerchantID        string    `gorm:"index;not null" json:"merchant_id"`
	CustomerEmail     string    `gorm:"not null" json:"customer_email"`
	CustomerName      string    `json:"customer_name"`
	AmountCents       int64     `gorm:"not null" json:"amount_cents"`
	CommissionCents   int64     `gorm:"not null" json:"commission_cents"`
	PayoutCents       int64     `gorm:"not null" json:"payout_cents"`
	CommissionRateBps int64     `gorm:"not null" json:"commission_rate_bps"`
	Currency          string    `gorm:"default:'usd'" json:"currency"`
	ExternalChargeID  string    `json:"external_charge_id,omitempty"`
	Status            string    `gorm:"index;not null" json:"status"`
	FailureReason     string    `json:"failure_reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
