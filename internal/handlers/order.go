package handlers

import (
	"errors"

	"campusbites/internal/models"
	"campusbites/internal/repositories"
	"campusbites/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderRepo repositories.PurchaseOrderRepository
}

func NewOrderHandler(orderRepo repositories.PurchaseOrderRepository) *OrderHandler {
	return &OrderHandler{orderRepo: orderRepo}
}

// GetOrder backs the order confirmation page.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByOrderID(c.Context(), c.Params("order_id"))
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return response.NotFound(c, "Order not found")
		}
		return response.ServerError(c, "Failed to load order")
	}

	return response.Success(c, "Order retrieved", fiber.Map{
		"order": order,
	})
}

// ListMerchantOrders backs the restaurant dashboard's sales view.
func (h *OrderHandler) ListMerchantOrders(c *fiber.Ctx) error {
	orders, err := h.orderRepo.ListByMerchant(c.Context(), c.Params("id"))
	if err != nil {
		return response.ServerError(c, "Failed to load orders")
	}

	var grossCents, payoutCents int64
	for _, o := range orders {
		if o.Status == models.OrderSucceeded {
			grossCents += o.AmountCents
			payoutCents += o.PayoutCents
		}
	}

	return response.Success(c, "Orders retrieved", fiber.Map{
		"orders":       orders,
		"count":        len(orders),
		"gross_cents":  grossCents,
		"payout_cents": payoutCents,
	})
}
