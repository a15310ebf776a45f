package utils

import (
	"context"
	"time"
)

const DefaultQueryTimeout = 5 * time.Second

// WithQueryTimeout bounds a store query with the configured timeout so no
// catalog operation can hang its caller. A non-positive value falls back to
// the default.
func WithQueryTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	return context.WithTimeout(ctx, timeout)
}
