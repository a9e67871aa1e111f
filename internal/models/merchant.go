package models

import "time"

// Onboarding states for a merchant account. Transitions are
// unregistered -> pending_onboarding -> active, with a failed branch
// out of pending_onboarding that permits re-entry. No transition
// skips a state.
const (
	OnboardingUnregistered = "unregistered"
	OnboardingPending      = "pending_onboarding"
	OnboardingActive       = "active"
	OnboardingFailed       = "failed"
)

// MerchantAccount is a restaurant partner's payout account record.
// StripeAccountID stays empty until onboarding completes; only an
// active account with an external id may receive payouts.
type MerchantAccount struct {
	ID                  uint      `gorm:"primarykey" json:"-"`
	MerchantID          string    `gorm:"uniqueIndex;not null" json:"merchant_id"`
	Email               string    `gorm:"not null" json:"email"`
	DisplayName         string    `gorm:"not null" json:"display_name"`
	StripeAccountID     string    `json:"stripe_account_id,omitempty"`
	OnboardingState     string    `gorm:"default:'unregistered'" json:"onboarding_state"`
	OnboardingSessionID string    `json:"-"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// EligibleForPayout reports whether purchases may be routed to this account.
func (m *MerchantAccount) EligibleForPayout() bool {
	return m.OnboardingState == OnboardingActive && m.StripeAccountID != ""
}
