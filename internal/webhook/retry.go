package webhook

import (
	"math"
	"math/rand/v2"
	"net/http"
	"time"
)

// backoff returns the delay before retry number attempt (1-based):
// InitialDelay * Multiplier^(attempt-1), capped at MaxDelay, with ±10% jitter.
func (r *RetryConfig) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(r.InitialDelay) * math.Pow(r.Multiplier, float64(attempt-1))
	if r.MaxDelay > 0 && delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}

	jitter := delay * 0.1
	return time.Duration(delay + (rand.Float64()*2-1)*jitter)
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
