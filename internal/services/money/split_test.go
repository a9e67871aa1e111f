package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name           string
		gross          int64
		rate           float64
		wantCommission int64
		wantPayout     int64
	}{
		{
			name:           "deal price 8.99 at 15 percent rounds half-up",
			gross:          899,
			rate:           15,
			wantCommission: 135, // 134.85 rounded up
			wantPayout:     764,
		},
		{
			name:           "zero rate keeps everything with the merchant",
			gross:          899,
			rate:           0,
			wantCommission: 0,
			wantPayout:     899,
		},
		{
			name:           "full rate keeps everything on the platform",
			gross:          899,
			rate:           100,
			wantCommission: 899,
			wantPayout:     0,
		},
		{
			name:           "zero gross",
			gross:          0,
			rate:           15,
			wantCommission: 0,
			wantPayout:     0,
		},
		{
			name:           "exact half rounds up",
			gross:          1000,
			rate:           12.25, // 122.50
			wantCommission: 123,
			wantPayout:     877,
		},
		{
			name:           "fractional basis-point rate",
			gross:          10000,
			rate:           2.9,
			wantCommission: 290,
			wantPayout:     9710,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commission, payout, err := Split(tt.gross, tt.rate)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCommission, commission)
			assert.Equal(t, tt.wantPayout, payout)
			assert.Equal(t, tt.gross, commission+payout)
		})
	}
}

func TestSplitInvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		gross   int64
		rate    float64
		wantErr error
	}{
		{"negative gross", -1, 15, ErrInvalidAmount},
		{"negative rate", 100, -0.01, ErrInvalidRate},
		{"rate above 100", 100, 100.01, ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Split(tt.gross, tt.rate)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// The ledger invariant must hold for every amount and rate, not just
// the fixtures above: commission + payout == gross, both non-negative.
func TestSplitConservation(t *testing.T) {
	for gross := int64(0); gross <= 1_000_000; gross += 37 {
		for rate := float64(0); rate <= 100; rate += 2.5 {
			commission, payout, err := Split(gross, rate)
			if !assert.NoError(t, err) {
				t.FailNow()
			}
			if commission+payout != gross || commission < 0 || payout < 0 {
				t.Fatalf("split(%d, %v) = (%d, %d): invariant violated", gross, rate, commission, payout)
			}
		}
	}
}

func TestRateToBps(t *testing.T) {
	assert.Equal(t, int64(1500), RateToBps(15))
	assert.Equal(t, int64(290), RateToBps(2.9))
	assert.Equal(t, int64(0), RateToBps(0))
	assert.Equal(t, int64(10000), RateToBps(100))
}
