package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// It creates a background context (preserving the logger) and handles errors
// and panics. Gateway event callbacks must not block, so every event handler
// runs through here.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
