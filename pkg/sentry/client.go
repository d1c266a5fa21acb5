// client.go provides the Client: configuration, validation, and the capture
// entry points.

package sentry

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Version is this library's release version, reported in the default SDK
// identity.
const Version = "1.0.0"

const sdkName = "sentrygo"

// Client captures events and hands them to its transport. Construct one per
// process and share it; captures are independent and safe to run
// concurrently.
type Client struct {
	dsn       *DSN
	sdk       SDKInfo
	defaults  EventDefaults
	transport Transport
	scrubber  *Scrubber
	logger    zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	dsn         string
	sampleRate  float64
	defaults    EventDefaults
	sdk         SDKInfo
	transport   Transport
	send        SendFunc
	httpTimeout time.Duration
	scrubber    *Scrubber
	logger      *zerolog.Logger
}

// WithDSN sets the endpoint credential string. An empty DSN produces a
// disabled client: every capture is a silent no-op returning an empty
// identifier.
func WithDSN(dsn string) ClientOption {
	return func(c *clientConfig) {
		c.dsn = dsn
	}
}

// WithSampleRate sets the fraction of captured events that are transmitted.
// Must lie in [0, 1]; the default is 1.
func WithSampleRate(rate float64) ClientOption {
	return func(c *clientConfig) {
		c.sampleRate = rate
	}
}

// WithDefaults sets the process-wide field values merged into every new
// builder.
func WithDefaults(defaults EventDefaults) ClientOption {
	return func(c *clientConfig) {
		c.defaults = defaults
	}
}

// WithSDKInfo overrides the SDK identity attached to events and transport
// headers. Integrations wrapping this library set their own name here.
func WithSDKInfo(sdk SDKInfo) ClientOption {
	return func(c *clientConfig) {
		c.sdk = sdk
	}
}

// WithTransport replaces the transport entirely. Overrides WithSendFunc and
// WithHTTPRequestTimeout.
func WithTransport(transport Transport) ClientOption {
	return func(c *clientConfig) {
		c.transport = transport
	}
}

// WithSendFunc injects the HTTP exchange function used by the standard
// transport.
func WithSendFunc(send SendFunc) ClientOption {
	return func(c *clientConfig) {
		c.send = send
	}
}

// WithHTTPRequestTimeout sets the request timeout of the standard transport's
// HTTP client.
func WithHTTPRequestTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.httpTimeout = d
	}
}

// WithScrubber enables sensitive-data redaction with a custom configuration.
func WithScrubber(cfg ScrubberConfig) ClientOption {
	return func(c *clientConfig) {
		c.scrubber = NewScrubber(cfg)
	}
}

// WithDefaultScrubbing enables redaction with production-safe defaults.
func WithDefaultScrubbing() ClientOption {
	return func(c *clientConfig) {
		c.scrubber = NewScrubber(DefaultScrubberConfig())
	}
}

// WithLogger sets the logger used for the client's own diagnostics (it is
// never used for reported events).
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = &logger
	}
}

// NewClient creates a Client. Configuration errors fail fast:
// *InvalidDSNError for a malformed credential, *InvalidSampleRateError for a
// rate outside [0, 1].
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{sampleRate: 1}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.sampleRate < 0 || cfg.sampleRate > 1 {
		return nil, &InvalidSampleRateError{Rate: cfg.sampleRate}
	}

	dsn, err := ParseDSN(cfg.dsn)
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", sdkName).Logger()
	if cfg.logger != nil {
		logger = *cfg.logger
	}
	if dsn == nil {
		// One-time notice so operators notice misconfiguration; a disabled
		// client is intentional in some environments and not an error.
		logger.Warn().Msg("no DSN configured, capture calls will be discarded")
	}

	sdk := cfg.sdk
	if sdk == (SDKInfo{}) {
		sdk = SDKInfo{Name: sdkName, Version: Version}
	}

	transport := cfg.transport
	if transport == nil {
		var topts []TransportOption
		if cfg.send != nil {
			topts = append(topts, WithSend(cfg.send))
		}
		if cfg.httpTimeout > 0 {
			topts = append(topts, WithHTTPTimeout(cfg.httpTimeout))
		}
		transport = NewHTTPTransport(dsn, sdk, cfg.sampleRate, topts...)
	}

	return &Client{
		dsn:       dsn,
		sdk:       sdk,
		defaults:  cfg.defaults,
		transport: transport,
		scrubber:  cfg.scrubber,
		logger:    logger,
	}, nil
}

// Enabled reports whether the client has a credential and will attempt
// delivery.
func (c *Client) Enabled() bool {
	return c.dsn != nil
}

// NewEventBuilder returns a fresh builder seeded with the client's defaults.
// One builder per capture attempt.
func (c *Client) NewEventBuilder() *EventBuilder {
	return NewEventBuilder(c.sdk, c.defaults)
}

// CaptureEvent scrubs (when configured) and sends a frozen event, returning
// the identifier acknowledged by the server. The identifier is empty when the
// client is disabled or the event was sampled out.
func (c *Client) CaptureEvent(ctx context.Context, event *Event) (string, error) {
	if c.scrubber != nil {
		c.scrubber.ScrubEvent(event)
	}
	return c.transport.Send(ctx, event)
}

// Capture freezes the builder and sends the result. It blocks until the
// network exchange completes and propagates transport failures to the caller.
func (c *Client) Capture(ctx context.Context, b *EventBuilder) (string, error) {
	return c.CaptureEvent(ctx, b.Build())
}

// CaptureException reports err with its full cause chain. A nil err is a
// no-op.
func (c *Client) CaptureException(ctx context.Context, err error) (string, error) {
	if err == nil {
		return "", nil
	}
	b := c.NewEventBuilder()
	b.SetException(err)
	return c.Capture(ctx, b)
}

// CaptureMessage reports a plain message at info level (unless the defaults
// say otherwise).
func (c *Client) CaptureMessage(ctx context.Context, message string, params ...any) (string, error) {
	b := c.NewEventBuilder()
	b.SetMessage(message, params...)
	return c.Capture(ctx, b)
}
