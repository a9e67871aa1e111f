package repositories

import (
	"context"
	"errors"

	"campusbites/internal/models"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("purchase order not found")

// PurchaseOrderRepository is the append-only purchase ledger. There is
// deliberately no update or delete: every attempt that reached the
// provider leaves exactly one immutable row.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *models.PurchaseOrder) error
	GetByOrderID(ctx context.Context, orderID string) (*models.PurchaseOrder, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]models.PurchaseOrder, error)
}

type purchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order *models.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *purchaseOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *purchaseOrderRepository) ListByMerchant(ctx context.Context, merchantID string) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
