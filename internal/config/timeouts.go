package config

import (
	"context"
	"time"
)

// Remote call timeouts. Failed calls are surfaced to the caller, never retried.
const (
	// Sheet read timeout (column A scan for the next free row)
	SheetReadTimeout = 30 * time.Second

	// Sheet write timeout (one batched update per creature)
	SheetWriteTimeout = 30 * time.Second

	// OAuth token endpoint exchange timeout
	TokenExchangeTimeout = 30 * time.Second
)

// TimeoutConfig bounds each kind of remote call.
type TimeoutConfig struct {
	SheetRead     time.Duration
	SheetWrite    time.Duration
	TokenExchange time.Duration
}

// DefaultTimeoutConfig provides sensible defaults
var DefaultTimeoutConfig = TimeoutConfig{
	SheetRead:     SheetReadTimeout,
	SheetWrite:    SheetWriteTimeout,
	TokenExchange: TokenExchangeTimeout,
}

// WithTimeout derives a context bounded by d. A non-positive d leaves ctx
// unbounded.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
