package purchase

import (
	"context"
	"sync"
	"testing"
	"time"

	"campusbites/internal/models"
	"campusbites/internal/repositories"
	"campusbites/internal/services/deal"
	"campusbites/internal/services/merchant"
	"campusbites/internal/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Get(ctx context.Context, id uint) (*models.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deal), args.Error(1)
}

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) WithEligibleAccount(ctx context.Context, merchantID string, fn func(string) error) error {
	args := m.Called(ctx, merchantID)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(args.String(1))
}

type MockCharger struct {
	mock.Mock
}

func (m *MockCharger) CreateAuthorization(ctx context.Context, cardToken string) (string, error) {
	args := m.Called(ctx, cardToken)
	return args.String(0), args.Error(1)
}

func (m *MockCharger) ChargeWithTransfer(ctx context.Context, in payment.ChargeInput) (*payment.ChargeResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ChargeResult), args.Error(1)
}

// fakeOrderRepo records every appended ledger row.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []models.PurchaseOrder
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, *order)
	return nil
}

func (r *fakeOrderRepo) GetByOrderID(_ context.Context, orderID string) (*models.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].OrderID == orderID {
			return &r.orders[i], nil
		}
	}
	return nil, repositories.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByMerchant(_ context.Context, merchantID string) ([]models.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PurchaseOrder
	for _, o := range r.orders {
		if o.MerchantID == merchantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

func burgerDeal() *models.Deal {
	return &models.Deal{
		ID:         1,
		MerchantID: "rest_123",
		Restaurant: "Campus Grill",
		Category:   models.CategoryFood,
		ValueCents: 1499,
		PriceCents: 899,
		Expires:    time.Now().AddDate(0, 1, 0),
	}
}

func validInput() PurchaseInput {
	return PurchaseInput{
		DealID:        1,
		PaymentToken:  "tok_visa",
		CustomerEmail: "student@example.edu",
		CustomerName:  "Jamie Lee",
	}
}

func newTestService(catalog Catalog, registry MerchantRegistry, charger Charger, orders repositories.PurchaseOrderRepository) *Service {
	return NewService(catalog, registry, charger, orders, Config{
		CommissionRatePercent: 15,
		ProviderTimeout:       time.Second,
	})
}

func TestPurchaseSucceeds(t *testing.T) {
	catalog := new(MockCatalog)
	registry := new(MockRegistry)
	charger := new(MockCharger)
	orders := &fakeOrderRepo{}
	svc := newTestService(catalog, registry, charger, orders)

	catalog.On("Get", mock.Anything, uint(1)).Return(burgerDeal(), nil)
	registry.On("WithEligibleAccount", mock.Anything, "rest_123").Return(nil, "acct_123456789")
	charger.On("CreateAuthorization", mock.Anything, "tok_visa").Return("pm_1", nil)
	charger.On("ChargeWithTransfer", mock.Anything, mock.MatchedBy(func(in payment.ChargeInput) bool {
		return in.AuthorizationID == "pm_1" &&
			in.AmountCents == 899 &&
			in.ApplicationFeeCents == 135 &&
			in.DestinationAccountID == "acct_123456789" &&
			in.Currency == "usd"
	})).Return(&payment.ChargeResult{ChargeID: "pi_1"}, nil)

	order, err := svc.Purchase(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, models.OrderSucceeded, order.Status)
	assert.Equal(t, int64(899), order.AmountCents)
	assert.Equal(t, int64(135), order.CommissionCents)
	assert.Equal(t, int64(764), order.PayoutCents)
	assert.Equal(t, order.AmountCents, order.CommissionCents+order.PayoutCents)
	assert.Equal(t, int64(1500), order.CommissionRateBps)
	assert.Equal(t, "pi_1", order.ExternalChargeID)
	assert.Contains(t, order.OrderID, "order_")

	persisted, err := orders.GetByOrderID(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderSucceeded, persisted.Status)

	charger.AssertExpectations(t)
}

func TestPurchaseDealNotFound(t *testing.T) {
	catalog := new(MockCatalog)
	registry := new(MockRegistry)
	charger := new(MockCharger)
	orders := &fakeOrderRepo{}
	svc := newTestService(catalog, registry, charger, orders)

	catalog.On("Get", mock.Anything, uint(1)).Return(nil, deal.ErrNotFound)

	_, err := svc.Purchase(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrDealNotFound)
	assert.Zero(t, orders.count())
	registry.AssertNotCalled(t, "WithEligibleAccount", mock.Anything, mock.Anything)
}

func TestPurchaseExpiredDeal(t *testing.T) {
	catalog := new(MockCatalog)
	registry := new(MockRegistry)
	charger := new(MockCharger)
	orders := &fakeOrderRepo{}
	svc := newTestService(catalog, registry, charger, orders)

	expired := burgerDeal()
	expired.Expires = time.Now().AddDate(0, 0, -1)
	catalog.On("Get", mock.Anything, uint(1)).Return(expired, nil)

	_, err := svc.Purchase(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrDealExpired)

	// An expired deal leaves no ledger row and never touches the
	// registry or the provider.
	assert.Zero(t, orders.count())
	registry.AssertNotCalled(t, "WithEligibleAccount", mock.Anything, mock.Anything)
	charger.AssertNotCalled(t, "CreateAuthorization", mock.Anything, mock.Anything)
}

func TestPurchaseMerchantNotEligible(t *testing.T) {
	catalog := new(MockCatalog)
	registry := new(MockRegistry)
	charger := new(MockCharger)
	orders := &fakeOrderRepo{}
	svc := newTestService(catalog, registry, charger, orders)

	catalog.On("Get", mock.Anything, uint(1)).Return(burgerDeal(), nil)
	registry.On("WithEligibleAccount", mock.Anything, "rest_123").
		Return(merchant.ErrNotEligible, "")

	_, err := svc.Purchase(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrMerchantNotEligible)

	// Rejected before any money movement: no provider call, no order.
	assert.Zero(t, orders.count())
	charger.AssertNotCalled(t, "CreateAuthorization", mock.Anything, mock.Anything)
	charger.AssertNotCalled(t, "ChargeWithTransfer", mock.Anything, mock.Anything)
}

func TestPurchaseDeclined(t *testing.T) {
	catalog := new(MockCatalog)
	registry := new(MockRegistry)
	charger := new(MockCharger)
	orders := &fakeOrderRepo{}
	svc := newTestService(catalog, registry, charger, orders)

	catalog.On("Get", mock.Anything, uint(1)).Return(burgerDeal(), nil)
	registry.On("WithEligibleAccount", mock.Anything, "rest_123").Return(nil, "acct_123456789")
	charger.On("CreateAuthorization", mock.Anything, "tok_visa").Return("pm_1", nil)
	charger.On("ChargeWithTransfer", mock.Anything, mock.Anything).
		Return(nil, &payment.ProviderError{Code: payment.CodeDeclined, Message: "insufficient_funds"})

	_, err := svc.Purchase(context.Background(), validInput())
	var pErr *payment.ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, payment.CodeDeclined, pErr.Code)
	assert.False(t, pErr.Retryable())

	// The failed attempt is still recorded for audit.
	require.Equal(t, 1, orders.count())
	recorded, err := orders.ListByMerchant(context.Background(), "rest_123")
	require.NoError(t, err)
	assert.Equal(t, models.OrderFailed, recorded[0].Status)
	assert.Equal(t, payment.CodeDeclined, recorded[0].FailureReason)
	assert.Empty(t, recorded[0].ExternalChargeID)
}

func TestPurchaseProviderTimeout(t *testing.T) {
	catalog := new(MockCatalog)
	registry := new(MockRegistry)
	charger := new(MockCharger)
	orders := &fakeOrderRepo{}
	svc := newTestService(catalog, registry, charger, orders)

	catalog.On("Get", mock.Anything, uint(1)).Return(burgerDeal(), nil)
	registry.On("WithEligibleAccount", mock.Anything, "rest_123").Return(nil, "acct_123456789")
	charger.On("CreateAuthorization", mock.Anything, "tok_visa").Return("pm_1", nil)
	charger.On("ChargeWithTransfer", mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded)

	_, err := svc.Purchase(context.Background(), validInput())
	var pErr *payment.ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, payment.CodeTimeout, pErr.Code)
	assert.True(t, pErr.Retryable())

	require.Equal(t, 1, orders.count())
	recorded, _ := orders.ListByMerchant(context.Background(), "rest_123")
	assert.Equal(t, models.OrderFailed, recorded[0].Status)
	assert.Equal(t, payment.CodeTimeout, recorded[0].FailureReason)
}

func TestPurchaseInvalidInput(t *testing.T) {
	svc := newTestService(new(MockCatalog), new(MockRegistry), new(MockCharger), &fakeOrderRepo{})

	_, err := svc.Purchase(context.Background(), PurchaseInput{DealID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
