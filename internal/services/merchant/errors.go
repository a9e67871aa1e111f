package merchant

import "errors"

var (
	ErrAlreadyRegistered    = errors.New("merchant is already registered")
	ErrNotFound             = errors.New("merchant account not found")
	ErrInvalidTransition    = errors.New("invalid onboarding state transition")
	ErrNotEligible          = errors.New("merchant is not eligible for payouts")
	ErrOnboardingIncomplete = errors.New("onboarding is not complete")
	ErrInvalidInput         = errors.New("invalid merchant input")
)
