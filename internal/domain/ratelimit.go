package domain

import (
	"fmt"
	"time"
)

// RateLimitError carries the retry-after hint alongside the ErrRateLimited
// kind so the HTTP layer can surface it as a Retry-After header.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrMsgRateLimited, e.RetryAfter)
}

// Unwrap makes errors.Is(err, ErrRateLimited) hold.
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
