package purchase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid purchase input")
	ErrDealNotFound        = errors.New("deal not found")
	ErrDealExpired         = errors.New("deal has expired")
	ErrMerchantNotEligible = errors.New("merchant has not completed onboarding")
)
