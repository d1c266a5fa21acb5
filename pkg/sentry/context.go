// context.go propagates the per-request event builder through
// context.Context.

package sentry

import "context"

// Unexported key type to avoid collisions.
type builderKey struct{}

// WithBuilder returns a context carrying the builder. The request
// interception middleware stores one builder per request under this key so
// handlers can attach tags and breadcrumbs to a capture they did not start.
func WithBuilder(ctx context.Context, b *EventBuilder) context.Context {
	return context.WithValue(ctx, builderKey{}, b)
}

// BuilderFromContext extracts the per-request builder. Returns false when the
// context does not carry one.
func BuilderFromContext(ctx context.Context) (*EventBuilder, bool) {
	b, ok := ctx.Value(builderKey{}).(*EventBuilder)
	return b, ok && b != nil
}
