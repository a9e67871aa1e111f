package handlers

import (
	"errors"

	"campusbites/internal/models"
	"campusbites/internal/services/deal"
	"campusbites/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type DealHandler struct {
	dealService *deal.Service
}

func NewDealHandler(dealSvc *deal.Service) *DealHandler {
	return &DealHandler{dealService: dealSvc}
}

// ListDeals returns the catalog, optionally filtered by ?category= and
// a free-text ?q= over restaurant and description.
func (h *DealHandler) ListDeals(c *fiber.Ctx) error {
	category := c.Query("category")
	switch category {
	case "", models.CategoryFood, models.CategoryDrinks, models.CategoryEntertainment:
	default:
		return response.BadRequest(c, "Unknown category")
	}

	deals, err := h.dealService.List(c.Context(), category, c.Query("q"))
	if err != nil {
		return response.ServerError(c, "Failed to load deals")
	}

	return response.Success(c, "Deals retrieved", fiber.Map{
		"deals": deals,
		"count": len(deals),
	})
}

// GetDeal returns one deal with its savings breakdown.
func (h *DealHandler) GetDeal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid deal id")
	}

	d, err := h.dealService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, deal.ErrNotFound) {
			return response.NotFound(c, "Deal not found")
		}
		return response.ServerError(c, "Failed to load deal")
	}

	return response.Success(c, "Deal retrieved", fiber.Map{
		"deal":    d,
		"savings": deal.ComputeSavings(d),
	})
}
