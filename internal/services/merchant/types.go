package merchant

import "time"

// RegisterInput creates a new merchant account in the unregistered state.
type RegisterInput struct {
	MerchantID  string `json:"merchant_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// OnboardingHandle is what a merchant's browser needs to enter hosted
// onboarding: the session link plus the two callbacks the provider will
// redirect to.
type OnboardingHandle struct {
	SessionID  string    `json:"session_id"`
	URL        string    `json:"url"`
	RefreshURL string    `json:"refresh_url"`
	ReturnURL  string    `json:"return_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// OnboardingResult is the outcome of the return callback. When the
// provider reports the account is not fully verified, Complete is false
// and RetryURL carries a fresh session link.
type OnboardingResult struct {
	Complete bool   `json:"complete"`
	State    string `json:"state"`
	RetryURL string `json:"retry_url,omitempty"`
}

// AccountOverview combines the local registry record with the
// provider's live verification flags for the status endpoint.
type AccountOverview struct {
	MerchantID       string `json:"merchant_id"`
	DisplayName      string `json:"display_name"`
	OnboardingState  string `json:"onboarding_state"`
	Eligible         bool   `json:"eligible_for_payouts"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
}
