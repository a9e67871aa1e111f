package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v72"
)

func TestWrapStripeErr(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantCode      string
		wantRetryable bool
	}{
		{
			name:          "card error becomes a terminal decline",
			err:           &stripe.Error{Type: stripe.ErrorTypeCard, Msg: "Your card was declined."},
			wantCode:      CodeDeclined,
			wantRetryable: false,
		},
		{
			name:          "connection error is retryable",
			err:           &stripe.Error{Type: stripe.ErrorTypeAPIConnection, Msg: "connection reset"},
			wantCode:      CodeUnavailable,
			wantRetryable: true,
		},
		{
			name:          "server error is retryable",
			err:           &stripe.Error{Type: stripe.ErrorTypeAPI, Msg: "internal error"},
			wantCode:      CodeUnavailable,
			wantRetryable: true,
		},
		{
			name:          "rate limit is retryable",
			err:           &stripe.Error{Type: stripe.ErrorTypeRateLimit, Msg: "too many requests"},
			wantCode:      CodeUnavailable,
			wantRetryable: true,
		},
		{
			name:          "invalid request is a caller bug",
			err:           &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Msg: "no such account"},
			wantCode:      CodeInvalid,
			wantRetryable: false,
		},
		{
			name:          "deadline expiry surfaces as timeout",
			err:           fmt.Errorf("request failed: %w", context.DeadlineExceeded),
			wantCode:      CodeTimeout,
			wantRetryable: true,
		},
		{
			name:          "unknown error defaults to unavailable",
			err:           errors.New("dial tcp: connection refused"),
			wantCode:      CodeUnavailable,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pErr := wrapStripeErr(tt.err)
			assert.Equal(t, tt.wantCode, pErr.Code)
			assert.Equal(t, tt.wantRetryable, pErr.Retryable())
			assert.ErrorIs(t, pErr, tt.err, "original error must stay unwrappable")
		})
	}
}

func TestWrapStripeErrDeclineCode(t *testing.T) {
	pErr := wrapStripeErr(&stripe.Error{
		Type:        stripe.ErrorTypeCard,
		Msg:         "Your card was declined.",
		DeclineCode: "insufficient_funds",
	})
	assert.Equal(t, CodeDeclined, pErr.Code)
	assert.Equal(t, "insufficient_funds", pErr.Message)
}
