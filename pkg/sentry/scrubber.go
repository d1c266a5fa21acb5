// scrubber.go implements sensitive data redaction applied to events before
// transport.

package sentry

import (
	"regexp"
	"strings"
)

const redactedPlaceholder = "[REDACTED]"

// ScrubberConfig controls scrubbing behavior.
type ScrubberConfig struct {
	// SensitiveKeys contains additional key substrings redacted in tags,
	// extra payloads and breadcrumb data, on top of the built-in set.
	SensitiveKeys []string

	// MaxMessageSize is the maximum length for message and exception text
	// (default: 4096).
	MaxMessageSize int

	// MaxValueSize is the maximum length per tag or extra string value
	// (default: 1024).
	MaxValueSize int

	// ScrubMessages enables pattern scrubbing of free-form text (default:
	// true via DefaultScrubberConfig).
	ScrubMessages bool
}

// DefaultScrubberConfig returns production-safe defaults.
func DefaultScrubberConfig() ScrubberConfig {
	return ScrubberConfig{
		MaxMessageSize: 4096,
		MaxValueSize:   1024,
		ScrubMessages:  true,
	}
}

// Compiled patterns for free-form text scrubbing (compiled once at package
// init).
var messageScrubPatterns = []*regexp.Regexp{
	// API keys and tokens
	regexp.MustCompile(`(?i)(api[_-]?key|token)[=:\s]+['"]?[\w\-\.]+['"]?`),
	regexp.MustCompile(`(?i)(authorization|bearer)[=:\s]+['"]?[\w\-\.]+['"]?`),
	regexp.MustCompile(`(?i)sk-[a-zA-Z0-9_-]{20,}`),
	regexp.MustCompile(`(?i)ghp_[a-zA-Z0-9]{36}`),
	regexp.MustCompile(`(?i)xox[baprs]-[a-zA-Z0-9\-]{10,}`),
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]*\.eyJ[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]*`), // JWT

	// Credentials
	regexp.MustCompile(`(?i)password[=:\s]+['"]?[^\s'",]+['"]?`),
	regexp.MustCompile(`(?i)passwd[=:\s]+['"]?[^\s'",]+['"]?`),
	regexp.MustCompile(`(?i)secret[=:\s]+['"]?[^\s'",]+['"]?`),
	regexp.MustCompile(`(?i)credential[=:\s]+['"]?[^\s'",]+['"]?`),

	// PII
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),  // email
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),                               // SSN
	regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),          // credit card
}

// Built-in sensitive key substrings (case-insensitive match).
var sensitiveKeyPatterns = []string{
	"token",
	"key",
	"secret",
	"password",
	"credential",
	"auth",
	"passwd",
}

// Scrubber redacts sensitive data from events before they leave the process.
type Scrubber struct {
	cfg ScrubberConfig
}

// NewScrubber creates a scrubber with the given configuration.
func NewScrubber(cfg ScrubberConfig) *Scrubber {
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = 4096
	}
	if cfg.MaxValueSize <= 0 {
		cfg.MaxValueSize = 1024
	}
	return &Scrubber{cfg: cfg}
}

// ScrubEvent redacts the event in place: message text, exception values,
// tags, extra payloads, and breadcrumbs.
func (s *Scrubber) ScrubEvent(event *Event) {
	if event == nil {
		return
	}
	if event.Message != nil {
		event.Message.Message = s.ScrubMessage(event.Message.Message)
	}
	for i := range event.Exception {
		event.Exception[i].Value = s.ScrubMessage(event.Exception[i].Value)
	}
	event.Tags = s.scrubStringMap(event.Tags)
	event.Extra = s.scrubAnyMap(event.Extra)
	for i := range event.Breadcrumbs {
		event.Breadcrumbs[i].Message = s.ScrubMessage(event.Breadcrumbs[i].Message)
		event.Breadcrumbs[i].Data = s.scrubAnyMap(event.Breadcrumbs[i].Data)
	}
}

// ScrubMessage truncates free-form text and redacts sensitive patterns from
// it.
func (s *Scrubber) ScrubMessage(msg string) string {
	if msg == "" {
		return msg
	}
	if len(msg) > s.cfg.MaxMessageSize {
		msg = truncateWithMarker(msg, s.cfg.MaxMessageSize)
	}
	if !s.cfg.ScrubMessages {
		return msg
	}
	for _, pattern := range messageScrubPatterns {
		msg = pattern.ReplaceAllString(msg, redactedPlaceholder)
	}
	return msg
}

func (s *Scrubber) scrubStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for key, value := range m {
		if s.isSensitiveKey(key) {
			out[key] = redactedPlaceholder
			continue
		}
		if len(value) > s.cfg.MaxValueSize {
			value = truncateWithMarker(value, s.cfg.MaxValueSize)
		}
		out[key] = s.ScrubMessage(value)
	}
	return out
}

// scrubAnyMap recursively scrubs a free-form payload: sensitive keys redact
// the whole value, string values get pattern scrubbing, nested maps and
// slices recurse.
func (s *Scrubber) scrubAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for key, value := range m {
		if s.isSensitiveKey(key) {
			out[key] = redactedPlaceholder
			continue
		}
		out[key] = s.scrubValue(value)
	}
	return out
}

func (s *Scrubber) scrubValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return s.scrubAnyMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = s.scrubValue(item)
		}
		return out
	case string:
		return s.ScrubMessage(v)
	default:
		// Numbers, booleans, nil pass through.
		return v
	}
}

func (s *Scrubber) isSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	for _, pattern := range s.cfg.SensitiveKeys {
		if strings.Contains(keyLower, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// truncateWithMarker truncates a string and appends a truncation marker.
func truncateWithMarker(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	marker := "...[TRUNCATED]"
	if maxLen <= len(marker) {
		return marker[:maxLen]
	}
	return s[:maxLen-len(marker)] + marker
}
