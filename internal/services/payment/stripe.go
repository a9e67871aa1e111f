package payment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// StripeProvider implements Provider on top of Stripe Connect. Charges
// are destination charges on the platform account: the PaymentIntent
// carries the application fee and the transfer destination, so the
// split settles atomically inside Stripe.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider builds a provider with its own API client. Every
// HTTP call is bounded by timeout; expiry surfaces as a timeout
// ProviderError rather than hanging a purchase.
func NewStripeProvider(secretKey string, timeout time.Duration) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, stripe.NewBackends(&http.Client{Timeout: timeout}))
	return &StripeProvider{api: api}
}

func (p *StripeProvider) CreateAuthorization(ctx context.Context, cardToken string) (string, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Token: stripe.String(cardToken),
		},
	}
	params.Context = ctx

	pm, err := p.api.PaymentMethods.New(params)
	if err != nil {
		return "", wrapStripeErr(err)
	}
	return pm.ID, nil
}

func (p *StripeProvider) ChargeWithTransfer(ctx context.Context, in ChargeInput) (*ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		PaymentMethod:        stripe.String(in.AuthorizationID),
		Amount:               stripe.Int64(in.AmountCents),
		Currency:             stripe.String(in.Currency),
		ConfirmationMethod:   stripe.String(string(stripe.PaymentIntentConfirmationMethodManual)),
		Confirm:              stripe.Bool(true),
		ApplicationFeeAmount: stripe.Int64(in.ApplicationFeeCents),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(in.DestinationAccountID),
		},
	}
	if in.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(in.ReceiptEmail)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return &ChargeResult{ChargeID: pi.ID}, nil
}

func (p *StripeProvider) CreateAccount(ctx context.Context, merchantID, email, displayName string) (string, error) {
	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
		BusinessType: stripe.String("company"),
		BusinessProfile: &stripe.AccountBusinessProfileParams{
			Name:               stripe.String(displayName),
			ProductDescription: stripe.String("Restaurant deals for students"),
		},
	}
	params.AddMetadata("merchant_id", merchantID)
	params.Context = ctx

	acct, err := p.api.Account.New(params)
	if err != nil {
		return "", wrapStripeErr(err)
	}
	return acct.ID, nil
}

func (p *StripeProvider) CreateOnboardingSession(ctx context.Context, accountID, refreshURL, returnURL string) (*OnboardingSession, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := p.api.AccountLinks.New(params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	// Account links carry no identifier of their own, so the session id
	// is minted here for tracking.
	return &OnboardingSession{
		SessionID: "obs_" + uuid.NewString(),
		URL:       link.URL,
		ExpiresAt: time.Unix(link.ExpiresAt, 0),
	}, nil
}

func (p *StripeProvider) GetAccountStatus(ctx context.Context, accountID string) (*AccountStatus, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx

	acct, err := p.api.Account.GetByID(accountID, params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return &AccountStatus{
		PayoutsEnabled:   acct.PayoutsEnabled,
		ChargesEnabled:   acct.ChargesEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}, nil
}

func (p *StripeProvider) CreateLoginLink(ctx context.Context, accountID string) (string, error) {
	params := &stripe.LoginLinkParams{
		Account: stripe.String(accountID),
	}
	params.Context = ctx

	link, err := p.api.LoginLinks.New(params)
	if err != nil {
		return "", wrapStripeErr(err)
	}
	return link.URL, nil
}

// wrapStripeErr maps a raw Stripe error onto the provider error
// taxonomy. Card errors are terminal declines; connection and server
// errors are retryable with a fresh token.
func wrapStripeErr(err error) *ProviderError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderError{Code: CodeTimeout, Message: "request timed out", err: err}
	}

	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		switch sErr.Type {
		case stripe.ErrorTypeCard:
			msg := sErr.Msg
			if sErr.DeclineCode != "" {
				msg = string(sErr.DeclineCode)
			}
			return &ProviderError{Code: CodeDeclined, Message: msg, err: err}
		case stripe.ErrorTypeAPIConnection, stripe.ErrorTypeAPI, stripe.ErrorTypeRateLimit:
			return &ProviderError{Code: CodeUnavailable, Message: sErr.Msg, err: err}
		default:
			return &ProviderError{Code: CodeInvalid, Message: sErr.Msg, err: err}
		}
	}

	return &ProviderError{Code: CodeUnavailable, Message: err.Error(), err: err}
}
