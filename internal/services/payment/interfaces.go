// Package payment is the boundary to the external payment authorization
// provider. The rest of the application only sees the Provider interface
// and the typed errors; raw provider payloads never leak past it.
package payment

import (
	"context"
	"time"
)

// ChargeInput describes one atomic charge-with-transfer instruction:
// charge the authorization for the gross amount, retain the application
// fee on the platform and transfer the remainder to the destination
// account. Splitting this into a charge followed by a separate transfer
// would reintroduce partial failure, so the provider must support it as
// a single call.
type ChargeInput struct {
	AuthorizationID      string
	AmountCents          int64
	Currency             string
	ApplicationFeeCents  int64
	DestinationAccountID string
	ReceiptEmail         string
	Metadata             map[string]string
}

// ChargeResult carries the provider's charge identifier.
type ChargeResult struct {
	ChargeID string
}

// OnboardingSession is a hosted onboarding link for a merchant's browser.
type OnboardingSession struct {
	SessionID string
	URL       string
	ExpiresAt time.Time
}

// AccountStatus reports a connected account's verification flags. A
// merchant is fully onboarded only when all three are set.
type AccountStatus struct {
	PayoutsEnabled   bool
	ChargesEnabled   bool
	DetailsSubmitted bool
}

// Provider is the payment authorization provider contract.
type Provider interface {
	// CreateAuthorization turns a single-use card token into an
	// authorization id chargeable exactly once.
	CreateAuthorization(ctx context.Context, cardToken string) (string, error)

	// ChargeWithTransfer submits one atomic charge + fee + transfer
	// instruction. Partial success is impossible from this side.
	ChargeWithTransfer(ctx context.Context, in ChargeInput) (*ChargeResult, error)

	// CreateAccount provisions an external payout account for a merchant.
	CreateAccount(ctx context.Context, merchantID, email, displayName string) (string, error)

	// CreateOnboardingSession issues a hosted onboarding link with the
	// given refresh and return callbacks.
	CreateOnboardingSession(ctx context.Context, accountID, refreshURL, returnURL string) (*OnboardingSession, error)

	// GetAccountStatus fetches the account's verification flags.
	GetAccountStatus(ctx context.Context, accountID string) (*AccountStatus, error)

	// CreateLoginLink issues a dashboard login link for an onboarded account.
	CreateLoginLink(ctx context.Context, accountID string) (string, error)
}
