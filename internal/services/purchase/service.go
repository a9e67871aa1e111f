// Package purchase orchestrates checkout: deal resolution, the
// merchant eligibility gate, the commission split and the single
// atomic charge-with-transfer call, then the append-only ledger write.
package purchase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"campusbites/internal/models"
	"campusbites/internal/repositories"
	"campusbites/internal/services/deal"
	"campusbites/internal/services/merchant"
	"campusbites/internal/services/money"
	"campusbites/internal/services/payment"

	"github.com/google/uuid"
)

type Service struct {
	catalog   Catalog
	merchants MerchantRegistry
	provider  Charger
	orders    repositories.PurchaseOrderRepository
	cfg       Config
}

func NewService(catalog Catalog, merchants MerchantRegistry, provider Charger, orders repositories.PurchaseOrderRepository, cfg Config) *Service {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.ProviderTimeout == 0 {
		cfg.ProviderTimeout = 15 * time.Second
	}
	return &Service{
		catalog:   catalog,
		merchants: merchants,
		provider:  provider,
		orders:    orders,
		cfg:       cfg,
	}
}

// Purchase runs one checkout attempt end to end. Failures before any
// money movement (unknown or expired deal, ineligible merchant) leave
// no trace; once the provider is called, the attempt is recorded as a
// succeeded or failed ledger row either way. There are no automatic
// retries: tokens are single-use, so the caller re-invokes with a
// fresh one.
func (s *Service) Purchase(ctx context.Context, input PurchaseInput) (*models.PurchaseOrder, error) {
	if input.DealID == 0 || input.PaymentToken == "" || input.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: deal_id, payment_token and customer_email are required", ErrInvalidInput)
	}

	d, err := s.catalog.Get(ctx, input.DealID)
	if err != nil {
		if errors.Is(err, deal.ErrNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	if d.Expired(time.Now()) {
		return nil, ErrDealExpired
	}

	commission, payout, err := money.Split(d.PriceCents, s.cfg.CommissionRatePercent)
	if err != nil {
		return nil, err
	}

	order := &models.PurchaseOrder{
		OrderID:           "order_" + uuid.NewString(),
		DealID:            d.ID,
		MerchantID:        d.MerchantID,
		CustomerEmail:     input.CustomerEmail,
		CustomerName:      input.CustomerName,
		AmountCents:       d.PriceCents,
		CommissionCents:   commission,
		PayoutCents:       payout,
		CommissionRateBps: money.RateToBps(s.cfg.CommissionRatePercent),
		Currency:          s.cfg.Currency,
	}

	// The eligibility check and the provider calls run as one unit
	// under the merchant's read lock: a concurrent deactivation cannot
	// slip in between them.
	var chargeErr error
	err = s.merchants.WithEligibleAccount(ctx, d.MerchantID, func(externalAccountID string) error {
		chargeErr = s.charge(ctx, order, input, externalAccountID)
		return nil
	})
	if err != nil {
		if errors.Is(err, merchant.ErrNotEligible) || errors.Is(err, merchant.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrMerchantNotEligible, err)
		}
		return nil, err
	}

	if chargeErr != nil {
		order.Status = models.OrderFailed
		order.FailureReason = failureReason(chargeErr)
		if persistErr := s.orders.Create(ctx, order); persistErr != nil {
			log.Printf("failed to record failed purchase %s: %v", order.OrderID, persistErr)
		}
		return nil, chargeErr
	}

	order.Status = models.OrderSucceeded
	if err := s.orders.Create(ctx, order); err != nil {
		// The charge committed at the provider; the ledger write must
		// not be silently lost.
		log.Printf("CRITICAL: charge %s succeeded but order %s was not recorded: %v",
			order.ExternalChargeID, order.OrderID, err)
		return nil, fmt.Errorf("recording purchase order: %w", err)
	}

	log.Printf("Purchase %s: deal %d, gross %d, commission %d, payout %d to %s",
		order.OrderID, order.DealID, order.AmountCents, order.CommissionCents, order.PayoutCents, order.MerchantID)
	return order, nil
}

// charge turns the card token into an authorization and submits the
// single charge + application-fee + transfer instruction. Both calls
// share one deadline; expiry surfaces as a timeout provider error with
// no partial state on our side.
func (s *Service) charge(ctx context.Context, order *models.PurchaseOrder, input PurchaseInput, externalAccountID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()

	authID, err := s.provider.CreateAuthorization(ctx, input.PaymentToken)
	if err != nil {
		return wrapProviderErr(ctx, err)
	}

	result, err := s.provider.ChargeWithTransfer(ctx, payment.ChargeInput{
		AuthorizationID:      authID,
		AmountCents:          order.AmountCents,
		Currency:             order.Currency,
		ApplicationFeeCents:  order.CommissionCents,
		DestinationAccountID: externalAccountID,
		ReceiptEmail:         input.CustomerEmail,
		Metadata: map[string]string{
			"order_id":    order.OrderID,
			"deal_id":     fmt.Sprint(order.DealID),
			"merchant_id": order.MerchantID,
		},
	})
	if err != nil {
		return wrapProviderErr(ctx, err)
	}

	order.ExternalChargeID = result.ChargeID
	return nil
}

// wrapProviderErr guarantees every provider-originated failure carries
// a machine-readable reason code, even when the implementation returned
// a bare error or the shared deadline expired first.
func wrapProviderErr(ctx context.Context, err error) error {
	var pErr *payment.ProviderError
	if errors.As(err, &pErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return &payment.ProviderError{Code: payment.CodeTimeout, Message: "provider call timed out"}
	}
	return &payment.ProviderError{Code: payment.CodeUnavailable, Message: err.Error()}
}

func failureReason(err error) string {
	var pErr *payment.ProviderError
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return err.Error()
}
