package purchase

import (
	"context"

	"campusbites/internal/models"
	"campusbites/internal/services/payment"
)

// Catalog is the deal lookup the orchestrator needs; the catalog itself
// is an external collaborator.
type Catalog interface {
	Get(ctx context.Context, id uint) (*models.Deal, error)
}

// MerchantRegistry gates payout routing. WithEligibleAccount must hold
// the merchant's read lock for the duration of fn so eligibility and
// the charge form one logical unit.
type MerchantRegistry interface {
	WithEligibleAccount(ctx context.Context, merchantID string, fn func(externalAccountID string) error) error
}

// Charger is the slice of the payment provider a purchase touches.
type Charger interface {
	CreateAuthorization(ctx context.Context, cardToken string) (string, error)
	ChargeWithTransfer(ctx context.Context, in payment.ChargeInput) (*payment.ChargeResult, error)
}
