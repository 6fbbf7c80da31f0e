package utils

import (
	"context"
	"time"
)

const DefaultStoreTimeout = 5 * time.Second

// WithStoreTimeout bounds a store round-trip so a stalled backend cannot hold
// a request open indefinitely.
func WithStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultStoreTimeout)
}
