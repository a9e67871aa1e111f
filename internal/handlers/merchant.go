package handlers

import (
	"campusbites/internal/services/merchant"
	"campusbites/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type MerchantHandler struct {
	merchantService *merchant.Service
}

func NewMerchantHandler(merchantSvc *merchant.Service) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantSvc}
}

// Register creates a merchant account; onboarding starts separately.
func (h *MerchantHandler) Register(c *fiber.Ctx) error {
	var input merchant.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	account, err := h.merchantService.Register(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Merchant registered", fiber.Map{
		"merchant": account,
	})
}

// BeginOnboarding returns a hosted onboarding link for the merchant's
// browser. Calling it again while pending reissues the link.
func (h *MerchantHandler) BeginOnboarding(c *fiber.Ctx) error {
	handle, err := h.merchantService.BeginOnboarding(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Onboarding session created", fiber.Map{
		"onboarding": handle,
	})
}

// CompleteOnboarding is the provider's return callback.
func (h *MerchantHandler) CompleteOnboarding(c *fiber.Ctx) error {
	result, err := h.merchantService.CompleteOnboarding(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	msg := "Onboarding complete"
	if !result.Complete {
		msg = "Onboarding incomplete, retry link issued"
	}
	return response.Success(c, msg, fiber.Map{
		"result": result,
	})
}

// RefreshOnboarding is the provider's refresh callback for expired
// session links.
func (h *MerchantHandler) RefreshOnboarding(c *fiber.Ctx) error {
	handle, err := h.merchantService.RefreshOnboarding(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Onboarding session refreshed", fiber.Map{
		"onboarding": handle,
	})
}

// Status reports onboarding state plus the provider's live flags.
func (h *MerchantHandler) Status(c *fiber.Ctx) error {
	overview, err := h.merchantService.Overview(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Merchant status", fiber.Map{
		"merchant": overview,
	})
}

// DashboardLink returns an express dashboard login link.
func (h *MerchantHandler) DashboardLink(c *fiber.Ctx) error {
	url, err := h.merchantService.DashboardLink(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Dashboard link created", fiber.Map{
		"url": url,
	})
}
