// Package deal exposes the read-only deal catalog.
package deal

import (
	"context"
	"errors"
	"math"

	"campusbites/internal/models"
	"campusbites/internal/repositories"
)

var ErrNotFound = errors.New("deal not found")

// Savings is the discount breakdown shown on deal detail pages.
type Savings struct {
	AmountCents int64 `json:"amount_cents"`
	Percent     int   `json:"percent"`
}

type Service struct {
	repo repositories.DealRepository
}

func NewService(repo repositories.DealRepository) *Service {
	return &Service{repo: repo}
}

// Get returns a deal by id regardless of expiry; expired deals remain
// viewable, only checkout rejects them.
func (s *Service) Get(ctx context.Context, id uint) (*models.Deal, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDealNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// List returns deals filtered by category and a free-text search over
// restaurant name and description.
func (s *Service) List(ctx context.Context, category, search string) ([]models.Deal, error) {
	return s.repo.List(ctx, category, search)
}

// ComputeSavings reports how much a deal saves against face value.
func ComputeSavings(d *models.Deal) Savings {
	amount := d.ValueCents - d.PriceCents
	var percent int
	if d.ValueCents > 0 {
		percent = int(math.Round(float64(amount) / float64(d.ValueCents) * 100))
	}
	return Savings{AmountCents: amount, Percent: percent}
}
