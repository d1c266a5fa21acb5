// recover.go provides the Recover helper for standalone panic capture.
// Use it in goroutines or other code outside the httpware middleware.

package sentry

import (
	"context"
	"fmt"
)

// Recover captures an in-flight panic as a fatal event and returns the
// recovered value. It does NOT re-panic; reporting failures are logged to the
// client's diagnostics and never surfaced.
//
// It must be deferred directly, so the runtime treats its recover() as called
// by a deferred function:
//
//	func worker(ctx context.Context) {
//	    defer sentry.Recover(ctx, client)
//	    // code that might panic
//	}
//
// When the context carries a per-request builder, its accumulated tags and
// breadcrumbs are included in the report.
func Recover(ctx context.Context, client *Client) any {
	r := recover()
	if r == nil {
		return nil
	}

	b, ok := BuilderFromContext(ctx)
	if !ok {
		b = client.NewEventBuilder()
	}
	b.Level = LevelFatal
	b.SetException(recoveredError(r))

	if _, err := client.Capture(ctx, b); err != nil {
		client.logger.Err(err).Msg("failed to report recovered panic")
	}
	return r
}

// recoveredError normalizes a recovered panic value into an error.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
