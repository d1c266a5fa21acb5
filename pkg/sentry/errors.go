// errors.go defines the error taxonomy raised by construction and transport.

package sentry

import "fmt"

// InvalidDSNError reports a malformed or incomplete DSN string. It is raised
// at client construction and is fatal to that client instance.
type InvalidDSNError struct {
	DSN    string
	Reason string
}

func (e *InvalidDSNError) Error() string {
	return fmt.Sprintf("invalid DSN %q: %s", e.DSN, e.Reason)
}

// InvalidSampleRateError reports a sample rate outside [0, 1]. It is raised
// at client construction.
type InvalidSampleRateError struct {
	Rate float64
}

func (e *InvalidSampleRateError) Error() string {
	return fmt.Sprintf("sample rate %v is outside [0, 1]", e.Rate)
}

// TransportError reports a non-success response from the ingestion endpoint.
// Detail carries the server's diagnostic text from the X-Sentry-Error header,
// when present.
type TransportError struct {
	StatusCode int
	Detail     string
}

func (e *TransportError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("event rejected with status %d", e.StatusCode)
	}
	return fmt.Sprintf("event rejected with status %d: %s", e.StatusCode, e.Detail)
}
