package payment

import "fmt"

// Machine-readable reason codes carried on every provider error. Callers
// use these to decide retry vs. abort: unavailable and timeout are
// retryable with a fresh authorization token, declined and invalid are
// terminal for the attempt.
const (
	CodeDeclined    = "declined"
	CodeUnavailable = "unavailable"
	CodeTimeout     = "timeout"
	CodeInvalid     = "invalid"
)

// ProviderError wraps any failure originating at the payment provider.
type ProviderError struct {
	Code    string
	Message string
	err     error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment provider: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("payment provider: %s", e.Code)
}

func (e *ProviderError) Unwrap() error {
	return e.err
}

// Retryable reports whether a fresh attempt (with a new single-use
// token) may succeed.
func (e *ProviderError) Retryable() bool {
	return e.Code == CodeUnavailable || e.Code == CodeTimeout
}
