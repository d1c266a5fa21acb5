// Package sentry provides a lightweight client for reporting errors and
// messages to a Sentry-compatible ingestion endpoint.
//
// The client turns an in-process error or message into a structured event,
// decides whether to transmit it (sampling), serializes and gzip-compresses
// it, authenticates the request, and posts it to the endpoint's store API.
// Delivery is synchronous and fire-and-once: there is no queue and no retry
// in the core, and failures are surfaced to the caller.
//
// # Core Components
//
//   - Event: the frozen wire-format report with severity, exception chain,
//     breadcrumbs, tags, and contexts
//   - EventBuilder: the mutable per-capture accumulator that defaults and
//     freezes an Event; owns exception-chain flattening and stack capture
//   - DSN: the parsed endpoint credential; an empty DSN yields a disabled
//     client whose captures are silent no-ops
//   - Transport: gzip+JSON delivery over a shared HTTP client with an
//     injectable send function
//   - Scrubber: optional redaction of sensitive data applied before send
//
// # Quick Start
//
//	client, err := sentry.NewClient(
//	    sentry.WithDSN("https://publickey@o0.ingest.example.com/42"),
//	    sentry.WithDefaults(sentry.EventDefaults{Environment: "production"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := client.CaptureException(ctx, err); err != nil {
//	    log.Printf("report failed: %v", err)
//	}
//
// For HTTP servers, the httpware subpackage seeds every request with its own
// builder and reports unhandled panics without altering the request outcome.
//
// # Design Principles
//
//   - Reporting never replaces the real failure: adapter boundaries log and
//     swallow transport errors, direct captures surface them
//   - One builder per capture attempt; builders are never shared across
//     concurrent captures
//   - Configuration errors (bad DSN, bad sample rate) fail fast at
//     construction
package sentry
