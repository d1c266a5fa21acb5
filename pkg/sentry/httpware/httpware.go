// Package httpware intercepts unhandled request panics and reports them
// without altering the request's outcome.
//
// The middleware seeds every request with its own event builder, stored in
// the request context, so handlers can attach tags and breadcrumbs through
// sentry.BuilderFromContext. When a handler panics, the panic is reported
// with culprit "{METHOD} {route}" and then re-raised: the original failure
// always keeps propagating, and reporting failures are logged and swallowed.
package httpware

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"

	"github.com/andrzejpindor/sentrygo/pkg/sentry"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	logger *zerolog.Logger
}

// WithLogger overrides the logger used for swallowed reporting failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = &logger
	}
}

// Capture returns middleware reporting unhandled panics through client.
func Capture(client *sentry.Client, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "sentry-httpware").Logger()
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			builder := client.NewEventBuilder()
			r = r.WithContext(sentry.WithBuilder(r.Context(), builder))

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				builder.Culprit = culprit(r)
				builder.Level = sentry.LevelFatal
				builder.SetException(panicError(rec))
				if _, err := client.Capture(r.Context(), builder); err != nil {
					logger.Err(err).Str("culprit", builder.Culprit).Msg("failed to report request panic")
				}
				// Re-raise so the server's own recovery sees the original
				// failure unaltered.
				panic(rec)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// culprit names the failing request as "METHOD path". The chi route pattern
// is preferred over the raw path so events group by handler rather than by
// URL parameter values.
func culprit(r *http.Request) string {
	path := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			path = pattern
		}
	}
	return r.Method + " " + path
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", rec)
}
