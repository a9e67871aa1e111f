package repositories

import (
	"context"
	"errors"
	"log"
	"strings"

	"campusbites/internal/models"
	"campusbites/internal/repositories/cache"

	"gorm.io/gorm"
)

var ErrDealNotFound = errors.New("deal not found")

// DealRepository is the read-only deal catalog lookup. Deals are
// immutable after listing, so the only write path is the seed command.
type DealRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Deal, error)
	List(ctx context.Context, category, search string) ([]models.Deal, error)
	Create(deal *models.Deal) error
}

type dealRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewDealRepository(db *gorm.DB, cacheSvc *cache.CacheService) DealRepository {
	return &dealRepository{
		db:    db,
		cache: cacheSvc,
	}
}

func (r *dealRepository) GetByID(ctx context.Context, id uint) (*models.Deal, error) {
	var deal models.Deal

	if r.cache != nil {
		key := r.cache.GenerateKey("deal", "id", id)
		if hit, err := r.cache.Get(ctx, key, &deal); err == nil && hit {
			return &deal, nil
		}
	}

	if err := r.db.WithContext(ctx).First(&deal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		key := r.cache.GenerateKey("deal", "id", id)
		if err := r.cache.Set(ctx, key, &deal); err != nil {
			log.Printf("failed to cache deal %d: %v", id, err)
		}
	}

	return &deal, nil
}

func (r *dealRepository) List(ctx context.Context, category, search string) ([]models.Deal, error) {
	query := r.db.WithContext(ctx).Model(&models.Deal{})

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(restaurant) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var deals []models.Deal
	if err := query.Order("popular DESC, id ASC").Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *dealRepository) Create(deal *models.Deal) error {
	return r.db.Create(deal).Error
}
