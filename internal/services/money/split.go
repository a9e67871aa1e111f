// Package money computes the marketplace commission split. All
// arithmetic is on integer minor units; no currency value ever passes
// through a float.
package money

import (
	"errors"
	"math"
)

var (
	ErrInvalidAmount = errors.New("amount must be a non-negative number of minor units")
	ErrInvalidRate   = errors.New("commission rate must be between 0 and 100 percent")
)

// Split divides a gross amount into the platform commission and the
// merchant payout. The commission is rounded half-up at cent
// precision; the payout is the remainder, never rounded on its own,
// so commission + payout == gross holds exactly for every rate in
// [0,100] including both endpoints.
//
// The rate is accepted as a percentage and converted once to basis
// points, so fractional rates like 2.5% stay exact.
func Split(grossCents int64, ratePercent float64) (commissionCents, payoutCents int64, err error) {
	if grossCents < 0 {
		return 0, 0, ErrInvalidAmount
	}
	if math.IsNaN(ratePercent) || ratePercent < 0 || ratePercent > 100 {
		return 0, 0, ErrInvalidRate
	}

	rateBps := RateToBps(ratePercent)
	commissionCents = (grossCents*rateBps + 5000) / 10000
	payoutCents = grossCents - commissionCents
	return commissionCents, payoutCents, nil
}

// RateToBps converts a percentage rate to basis points, the integer
// form snapshotted onto purchase orders.
func RateToBps(ratePercent float64) int64 {
	return int64(math.Round(ratePercent * 100))
}
