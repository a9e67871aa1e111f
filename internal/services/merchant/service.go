// Package merchant is the merchant account registry and onboarding
// workflow. It owns the unregistered -> pending_onboarding -> active
// state machine and is the only place allowed to move an account
// between states; everything else asks it for payout eligibility.
package merchant

import (
	"context"
	"errors"
	"fmt"
	"log"

	"campusbites/internal/models"
	"campusbites/internal/repositories"
	"campusbites/internal/services/payment"
)

type Service struct {
	repo     repositories.MerchantAccountRepository
	provider payment.Provider
	baseURL  string
	locks    lockManager
}

func NewService(repo repositories.MerchantAccountRepository, provider payment.Provider, baseURL string) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		baseURL:  baseURL,
	}
}

// Register creates a merchant account in the unregistered state. The
// external payout account is not provisioned until onboarding begins.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.MerchantAccount, error) {
	if input.MerchantID == "" || input.Email == "" || input.DisplayName == "" {
		return nil, fmt.Errorf("%w: merchant_id, email and display_name are required", ErrInvalidInput)
	}

	if _, err := s.repo.GetByMerchantID(ctx, input.MerchantID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repositories.ErrMerchantNotFound) {
		return nil, err
	}

	account := &models.MerchantAccount{
		MerchantID:      input.MerchantID,
		Email:           input.Email,
		DisplayName:     input.DisplayName,
		OnboardingState: models.OnboardingUnregistered,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	log.Printf("Registered merchant %s (%s)", account.MerchantID, account.DisplayName)
	return account, nil
}

// BeginOnboarding moves the account into pending_onboarding and returns
// a hosted onboarding handle. Re-entering from pending_onboarding is
// idempotent: the stored external account is reused and only the
// session link is reissued, so a merchant can never end up with two
// payout accounts.
func (s *Service) BeginOnboarding(ctx context.Context, merchantID string) (*OnboardingHandle, error) {
	mu := s.locks.get(merchantID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.getAccount(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	switch account.OnboardingState {
	case models.OnboardingUnregistered, models.OnboardingFailed, models.OnboardingPending:
	default:
		return nil, fmt.Errorf("%w: cannot begin onboarding from %s", ErrInvalidTransition, account.OnboardingState)
	}

	if account.StripeAccountID == "" {
		accountID, err := s.provider.CreateAccount(ctx, account.MerchantID, account.Email, account.DisplayName)
		if err != nil {
			return nil, err
		}
		account.StripeAccountID = accountID
		log.Printf("Created external account %s for merchant %s", accountID, merchantID)
	}

	handle, err := s.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}

	account.OnboardingState = models.OnboardingPending
	account.OnboardingSessionID = handle.SessionID
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	return handle, nil
}

// CompleteOnboarding is the return callback from hosted onboarding. It
// asks the provider whether the account is fully verified; if so the
// account goes active, otherwise it stays pending and the result
// carries a fresh retry link.
func (s *Service) CompleteOnboarding(ctx context.Context, merchantID string) (*OnboardingResult, error) {
	mu := s.locks.get(merchantID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.getAccount(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	// The callback may be replayed after activation.
	if account.OnboardingState == models.OnboardingActive {
		return &OnboardingResult{Complete: true, State: account.OnboardingState}, nil
	}
	if account.OnboardingState != models.OnboardingPending {
		return nil, fmt.Errorf("%w: onboarding return in state %s", ErrInvalidTransition, account.OnboardingState)
	}

	status, err := s.provider.GetAccountStatus(ctx, account.StripeAccountID)
	if err != nil {
		return nil, err
	}

	if status.PayoutsEnabled && status.ChargesEnabled && status.DetailsSubmitted {
		account.OnboardingState = models.OnboardingActive
		if err := s.repo.Update(ctx, account); err != nil {
			return nil, err
		}
		log.Printf("Merchant %s is active, payouts enabled on %s", merchantID, account.StripeAccountID)
		return &OnboardingResult{Complete: true, State: account.OnboardingState}, nil
	}

	handle, err := s.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}
	account.OnboardingSessionID = handle.SessionID
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	return &OnboardingResult{Complete: false, State: account.OnboardingState, RetryURL: handle.URL}, nil
}

// RefreshOnboarding reissues a session link after the previous one
// expired. The state does not change.
func (s *Service) RefreshOnboarding(ctx context.Context, merchantID string) (*OnboardingHandle, error) {
	mu := s.locks.get(merchantID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.getAccount(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if account.OnboardingState != models.OnboardingPending {
		return nil, fmt.Errorf("%w: onboarding refresh in state %s", ErrInvalidTransition, account.OnboardingState)
	}

	handle, err := s.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}
	account.OnboardingSessionID = handle.SessionID
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	return handle, nil
}

// MarkActive transitions pending_onboarding -> active and records the
// external payout account id.
func (s *Service) MarkActive(ctx context.Context, merchantID, externalAccountID string) error {
	mu := s.locks.get(merchantID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.getAccount(ctx, merchantID)
	if err != nil {
		return err
	}
	if account.OnboardingState != models.OnboardingPending {
		return fmt.Errorf("%w: cannot activate from %s", ErrInvalidTransition, account.OnboardingState)
	}

	account.StripeAccountID = externalAccountID
	account.OnboardingState = models.OnboardingActive
	return s.repo.Update(ctx, account)
}

// MarkFailed transitions pending_onboarding -> failed. The account
// record survives and BeginOnboarding may be called again.
func (s *Service) MarkFailed(ctx context.Context, merchantID string) error {
	mu := s.locks.get(merchantID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.getAccount(ctx, merchantID)
	if err != nil {
		return err
	}
	if account.OnboardingState != models.OnboardingPending {
		return fmt.Errorf("%w: cannot fail from %s", ErrInvalidTransition, account.OnboardingState)
	}

	account.OnboardingState = models.OnboardingFailed
	return s.repo.Update(ctx, account)
}

// Deactivate pulls an active merchant out of rotation. It takes the
// same write lock purchases read-hold, so it cannot interleave with an
// in-flight charge: either the charge committed first or the purchase
// sees the merchant as ineligible.
func (s *Service) Deactivate(ctx context.Context, merchantID string) error {
	mu := s.locks.get(merchantID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.getAccount(ctx, merchantID)
	if err != nil {
		return err
	}
	if account.OnboardingState != models.OnboardingActive {
		return fmt.Errorf("%w: cannot deactivate from %s", ErrInvalidTransition, account.OnboardingState)
	}

	account.OnboardingState = models.OnboardingFailed
	log.Printf("Merchant %s deactivated", merchantID)
	return s.repo.Update(ctx, account)
}

// IsEligibleForPayout reports whether purchases may currently be routed
// to the merchant: active state with an external account present.
func (s *Service) IsEligibleForPayout(ctx context.Context, merchantID string) (bool, error) {
	mu := s.locks.get(merchantID)
	mu.RLock()
	defer mu.RUnlock()

	account, err := s.getAccount(ctx, merchantID)
	if err != nil {
		return false, err
	}
	return account.EligibleForPayout(), nil
}

// ResolveExternalAccount returns the external payout account id for an
// eligible merchant.
func (s *Service) ResolveExternalAccount(ctx context.Context, merchantID string) (string, error) {
	mu := s.locks.get(merchantID)
	mu.RLock()
	defer mu.RUnlock()

	return s.resolveEligible(ctx, merchantID)
}

// WithEligibleAccount runs fn with the merchant's external account id
// while holding the merchant read lock, so eligibility cannot be
// revoked between the check and whatever fn does with the account.
// The purchase orchestrator wraps the charge call in this.
func (s *Service) WithEligibleAccount(ctx context.Context, merchantID string, fn func(externalAccountID string) error) error {
	mu := s.locks.get(merchantID)
	mu.RLock()
	defer mu.RUnlock()

	accountID, err := s.resolveEligible(ctx, merchantID)
	if err != nil {
		return err
	}
	return fn(accountID)
}

// DashboardLink issues an express dashboard login link for an
// onboarded merchant.
func (s *Service) DashboardLink(ctx context.Context, merchantID string) (string, error) {
	accountID, err := s.ResolveExternalAccount(ctx, merchantID)
	if err != nil {
		return "", err
	}
	return s.provider.CreateLoginLink(ctx, accountID)
}

// Overview combines the registry record with the provider's live
// verification flags.
func (s *Service) Overview(ctx context.Context, merchantID string) (*AccountOverview, error) {
	account, err := s.getAccount(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	overview := &AccountOverview{
		MerchantID:      account.MerchantID,
		DisplayName:     account.DisplayName,
		OnboardingState: account.OnboardingState,
		Eligible:        account.EligibleForPayout(),
	}

	if account.StripeAccountID != "" {
		status, err := s.provider.GetAccountStatus(ctx, account.StripeAccountID)
		if err != nil {
			return nil, err
		}
		overview.PayoutsEnabled = status.PayoutsEnabled
		overview.ChargesEnabled = status.ChargesEnabled
		overview.DetailsSubmitted = status.DetailsSubmitted
	}

	return overview, nil
}

// GetAccount returns the registry record for a merchant.
func (s *Service) GetAccount(ctx context.Context, merchantID string) (*models.MerchantAccount, error) {
	return s.getAccount(ctx, merchantID)
}

func (s *Service) getAccount(ctx context.Context, merchantID string) (*models.MerchantAccount, error) {
	account, err := s.repo.GetByMerchantID(ctx, merchantID)
	if err != nil {
		if errors.Is(err, repositories.ErrMerchantNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *Service) resolveEligible(ctx context.Context, merchantID string) (string, error) {
	account, err := s.getAccount(ctx, merchantID)
	if err != nil {
		return "", err
	}
	if !account.EligibleForPayout() {
		return "", fmt.Errorf("%w: merchant %s is %s", ErrNotEligible, merchantID, account.OnboardingState)
	}
	return account.StripeAccountID, nil
}

func (s *Service) issueSession(ctx context.Context, account *models.MerchantAccount) (*OnboardingHandle, error) {
	refreshURL := fmt.Sprintf("%s/api/merchants/%s/onboarding/refresh", s.baseURL, account.MerchantID)
	returnURL := fmt.Sprintf("%s/api/merchants/%s/onboarding/complete", s.baseURL, account.MerchantID)

	session, err := s.provider.CreateOnboardingSession(ctx, account.StripeAccountID, refreshURL, returnURL)
	if err != nil {
		return nil, err
	}

	return &OnboardingHandle{
		SessionID:  session.SessionID,
		URL:        session.URL,
		RefreshURL: refreshURL,
		ReturnURL:  returnURL,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}
