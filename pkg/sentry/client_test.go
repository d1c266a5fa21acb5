package sentry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
)

// recordingTransport captures frozen events for verification in tests.
type recordingTransport struct {
	events []*Event
	id     string
	err    error
}

func (t *recordingTransport) Send(ctx context.Context, event *Event) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	t.events = append(t.events, event)
	return t.id, nil
}

func quietLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestNewClientRejectsInvalidSampleRate(t *testing.T) {
	for _, rate := range []float64{-0.1, 1.5, 2} {
		_, err := NewClient(WithSampleRate(rate), WithLogger(quietLogger()))
		if err == nil {
			t.Errorf("NewClient(rate=%v) succeeded, want error", rate)
			continue
		}
		var rateErr *InvalidSampleRateError
		if !errors.As(err, &rateErr) {
			t.Errorf("error type = %T, want *InvalidSampleRateError", err)
		} else if rateErr.Rate != rate {
			t.Errorf("Rate = %v, want %v", rateErr.Rate, rate)
		}
	}
}

func TestNewClientRejectsInvalidDSN(t *testing.T) {
	_, err := NewClient(WithDSN("bad-uri"), WithLogger(quietLogger()))
	if err == nil {
		t.Fatal("NewClient with malformed DSN succeeded, want error")
	}
	var dsnErr *InvalidDSNError
	if !errors.As(err, &dsnErr) {
		t.Errorf("error type = %T, want *InvalidDSNError", err)
	}
}

func TestDisabledClientCapturesAreNoOps(t *testing.T) {
	var calls int
	send := func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("must not be called")
	}

	client, err := NewClient(WithSendFunc(send), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if client.Enabled() {
		t.Error("client without DSN reports Enabled() = true")
	}

	ctx := context.Background()
	id, err := client.CaptureException(ctx, errors.New("boom"))
	if err != nil || id != "" {
		t.Errorf("CaptureException = (%q, %v), want (\"\", nil)", id, err)
	}
	id, err = client.CaptureMessage(ctx, "hello")
	if err != nil || id != "" {
		t.Errorf("CaptureMessage = (%q, %v), want (\"\", nil)", id, err)
	}
	if calls != 0 {
		t.Errorf("disabled client issued %d network calls, want 0", calls)
	}
}

func TestCaptureExceptionSendsEvent(t *testing.T) {
	transport := &recordingTransport{id: "abc123"}
	client, err := NewClient(
		WithDSN("https://pub@host/42"),
		WithTransport(transport),
		WithDefaults(EventDefaults{Environment: "test"}),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	id, err := client.CaptureException(context.Background(), errors.New("boom"))
	if err != nil {
		t.Fatalf("CaptureException returned error: %v", err)
	}
	if id != "abc123" {
		t.Errorf("id = %q, want %q", id, "abc123")
	}
	if len(transport.events) != 1 {
		t.Fatalf("transport received %d events, want 1", len(transport.events))
	}

	event := transport.events[0]
	if len(event.Exception) != 1 {
		t.Errorf("Exception length = %d, want 1", len(event.Exception))
	}
	if event.Level != LevelError {
		t.Errorf("Level = %q, want %q", event.Level, LevelError)
	}
	if event.Environment != "test" {
		t.Errorf("Environment = %q, want defaults merged", event.Environment)
	}
	if event.SDK.Name != sdkName {
		t.Errorf("SDK.Name = %q, want %q", event.SDK.Name, sdkName)
	}
}

func TestCaptureExceptionNilIsNoOp(t *testing.T) {
	transport := &recordingTransport{id: "abc123"}
	client, err := NewClient(WithDSN("https://pub@host/42"), WithTransport(transport), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	id, err := client.CaptureException(context.Background(), nil)
	if err != nil || id != "" {
		t.Errorf("CaptureException(nil) = (%q, %v), want (\"\", nil)", id, err)
	}
	if len(transport.events) != 0 {
		t.Errorf("transport received %d events, want 0", len(transport.events))
	}
}

func TestCaptureTransportFailurePropagates(t *testing.T) {
	transport := &recordingTransport{err: &TransportError{StatusCode: 400, Detail: "rate limited"}}
	client, err := NewClient(WithDSN("https://pub@host/42"), WithTransport(transport), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = client.CaptureMessage(context.Background(), "hello")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
}

func TestClientAppliesScrubbingBeforeTransport(t *testing.T) {
	transport := &recordingTransport{id: "abc123"}
	client, err := NewClient(
		WithDSN("https://pub@host/42"),
		WithTransport(transport),
		WithDefaultScrubbing(),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = client.CaptureMessage(context.Background(), "login failed: password=hunter2")
	if err != nil {
		t.Fatalf("CaptureMessage returned error: %v", err)
	}

	got := transport.events[0].Message.Message
	if got == "login failed: password=hunter2" {
		t.Errorf("message was not scrubbed: %q", got)
	}
}

func TestClientCustomSDKInfo(t *testing.T) {
	transport := &recordingTransport{}
	client, err := NewClient(
		WithDSN("https://pub@host/42"),
		WithTransport(transport),
		WithSDKInfo(SDKInfo{Name: "myapp-integration", Version: "2.1.0"}),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := client.CaptureMessage(context.Background(), "hi"); err != nil {
		t.Fatalf("CaptureMessage returned error: %v", err)
	}
	if got := transport.events[0].SDK.String(); got != "myapp-integration/2.1.0" {
		t.Errorf("SDK identity = %q, want %q", got, "myapp-integration/2.1.0")
	}
}
