package handlers

import (
	"errors"

	"campusbites/internal/services/merchant"
	"campusbites/internal/services/payment"
	"campusbites/internal/services/purchase"
	"campusbites/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses. Provider errors
// expose only their reason code, never the raw provider payload.
func respondError(c *fiber.Ctx, err error) error {
	var pErr *payment.ProviderError
	if errors.As(err, &pErr) {
		switch pErr.Code {
		case payment.CodeDeclined:
			return response.PaymentRequired(c, "Payment was declined: "+pErr.Message)
		case payment.CodeTimeout, payment.CodeUnavailable:
			return response.ServiceUnavailable(c, "Payment provider is unavailable, please retry with a new payment method")
		default:
			return response.BadRequest(c, "Payment could not be processed: "+pErr.Message)
		}
	}

	switch {
	case errors.Is(err, merchant.ErrNotFound):
		return response.NotFound(c, "Merchant account not found")
	case errors.Is(err, merchant.ErrAlreadyRegistered):
		return response.Conflict(c, "Merchant is already registered")
	case errors.Is(err, merchant.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, merchant.ErrNotEligible):
		return response.Conflict(c, "Merchant has not completed onboarding")
	case errors.Is(err, merchant.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, purchase.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, purchase.ErrDealNotFound):
		return response.NotFound(c, "Deal not found")
	case errors.Is(err, purchase.ErrDealExpired):
		return response.Gone(c, "This deal has expired")
	case errors.Is(err, purchase.ErrMerchantNotEligible):
		return response.Conflict(c, "This restaurant cannot accept payments yet")
	default:
		return response.ServerError(c, "Something went wrong")
	}
}
