// transport.go serializes, compresses, authenticates, and delivers events.

package sentry

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// protocolVersion is the Sentry protocol version announced in the auth
// header.
const protocolVersion = "7"

const defaultHTTPTimeout = 30 * time.Second

// SendFunc performs a single HTTP exchange. Injecting one lets callers share
// a connection pool or wrap delivery with retries; the default uses one
// http.Client reused across all captures.
type SendFunc func(req *http.Request) (*http.Response, error)

// Transport delivers frozen events to the ingestion endpoint.
type Transport interface {
	// Send delivers one event and returns the identifier acknowledged by the
	// server. It returns "" without a network call when the credential is
	// absent (disabled mode) or when the sampling draw skips the event.
	Send(ctx context.Context, event *Event) (string, error)
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*transportConfig)

type transportConfig struct {
	send      SendFunc
	timeout   time.Duration
	randFloat func() float64
}

// WithSend sets the function used for the HTTP exchange.
func WithSend(send SendFunc) TransportOption {
	return func(c *transportConfig) {
		c.send = send
	}
}

// WithHTTPTimeout sets the request timeout of the default HTTP client. It has
// no effect when a custom send function is injected.
func WithHTTPTimeout(d time.Duration) TransportOption {
	return func(c *transportConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// withRandFloat overrides the sampling draw. Tests only.
func withRandFloat(fn func() float64) TransportOption {
	return func(c *transportConfig) {
		c.randFloat = fn
	}
}

// HTTPTransport posts gzip-compressed JSON events to the DSN's store URL.
// It is safe for concurrent use; all captures share one HTTP client.
type HTTPTransport struct {
	dsn        *DSN
	sdk        SDKInfo
	sampleRate float64
	send       SendFunc
	randFloat  func() float64
}

// NewHTTPTransport creates the standard transport. A nil dsn yields a
// disabled transport whose Send is a no-op. sampleRate must already be
// validated to [0, 1] by the caller.
func NewHTTPTransport(dsn *DSN, sdk SDKInfo, sampleRate float64, opts ...TransportOption) *HTTPTransport {
	cfg := &transportConfig{
		timeout:   defaultHTTPTimeout,
		randFloat: rand.Float64,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.send == nil {
		client := &http.Client{Timeout: cfg.timeout}
		cfg.send = client.Do
	}

	return &HTTPTransport{
		dsn:        dsn,
		sdk:        sdk,
		sampleRate: sampleRate,
		send:       cfg.send,
		randFloat:  cfg.randFloat,
	}
}

// Send implements Transport. Exactly one request is issued per accepted
// event; there is no retry or buffering here. A non-200 response yields
// *TransportError carrying the status and any X-Sentry-Error detail.
func (t *HTTPTransport) Send(ctx context.Context, event *Event) (string, error) {
	if t.dsn == nil {
		return "", nil
	}
	if t.sampleRate < 1 && t.randFloat() >= t.sampleRate {
		return "", nil
	}

	body, err := encodeEvent(event)
	if err != nil {
		return "", fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.dsn.StoreURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("User-Agent", t.sdk.String())
	req.Header.Set("X-Sentry-Auth", authHeader(event.Timestamp, t.dsn, t.sdk.String()))

	resp, err := t.send(req)
	if err != nil {
		return "", fmt.Errorf("send event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{
			StatusCode: resp.StatusCode,
			Detail:     resp.Header.Get("X-Sentry-Error"),
		}
	}

	var ack struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return ack.ID, nil
}

// encodeEvent renders the event as gzip-compressed JSON.
func encodeEvent(event *Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// authHeader assembles the X-Sentry-Auth value. The timestamp is the event's
// own capture instant, not the wall clock at send time.
func authHeader(timestamp int64, dsn *DSN, client string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sentry sentry_version=%s,sentry_timestamp=%d,sentry_key=%s",
		protocolVersion, timestamp, dsn.PublicKey)
	if dsn.SecretKey != "" {
		fmt.Fprintf(&sb, ",sentry_secret=%s", dsn.SecretKey)
	}
	fmt.Fprintf(&sb, ",sentry_client=%s", client)
	return sb.String()
}

// NoopTransport discards every event. Useful in tests and for explicitly
// disabling delivery.
type NoopTransport struct{}

// Send discards the event and returns an empty identifier.
func (NoopTransport) Send(ctx context.Context, event *Event) (string, error) {
	return "", nil
}
