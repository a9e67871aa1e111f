package repositories

import (
	"context"
	"errors"

	"campusbites/internal/models"

	"gorm.io/gorm"
)

var ErrMerchantNotFound = errors.New("merchant account not found")

// MerchantAccountRepository persists merchant onboarding records. State
// transition rules live in the merchant service; the repository only
// stores what it is told.
type MerchantAccountRepository interface {
	GetByMerchantID(ctx context.Context, merchantID string) (*models.MerchantAccount, error)
	Create(ctx context.Context, account *models.MerchantAccount) error
	Update(ctx context.Context, account *models.MerchantAccount) error
}

type merchantAccountRepository struct {
	db *gorm.DB
}

func NewMerchantAccountRepository(db *gorm.DB) MerchantAccountRepository {
	return &merchantAccountRepository{db: db}
}

func (r *merchantAccountRepository) GetByMerchantID(ctx context.Context, merchantID string) (*models.MerchantAccount, error) {
	var account models.MerchantAccount
	if err := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *merchantAccountRepository) Create(ctx context.Context, account *models.MerchantAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *merchantAccountRepository) Update(ctx context.Context, account *models.MerchantAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}
