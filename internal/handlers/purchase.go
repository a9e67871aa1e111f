package handlers

import (
	"campusbites/internal/services/purchase"
	"campusbites/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	purchaseService *purchase.Service
}

func NewPurchaseHandler(purchaseSvc *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseSvc}
}

// Checkout charges the customer for a deal and splits the amount
// between the platform and the restaurant. A declined or failed
// attempt needs a fresh payment token.
func (h *PurchaseHandler) Checkout(c *fiber.Ctx) error {
	var input purchase.PurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	order, err := h.purchaseService.Purchase(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Purchase complete", fiber.Map{
		"order": order,
	})
}
