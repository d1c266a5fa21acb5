// builder.go provides the mutable per-capture event accumulator.

package sentry

import (
	"encoding/hex"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// EventDefaults holds process-wide field values merged into every new
// builder. Configure once at startup; the client copies container fields into
// each builder so mutating a builder never touches the defaults.
type EventDefaults struct {
	Logger      string
	Level       Level
	ServerName  string
	Release     string
	Environment string
	Tags        map[string]string
	Modules     map[string]string
	Extra       map[string]any
	Contexts    map[string]any
}

// EventBuilder accumulates fields for a single capture attempt and freezes
// them into an Event. A builder is owned by one capturing call stack; it must
// not be shared across concurrent captures.
type EventBuilder struct {
	EventID     string
	Timestamp   time.Time
	Level       Level
	Logger      string
	Culprit     string
	ServerName  string
	Release     string
	Environment string
	Tags        map[string]string
	Modules     map[string]string
	Extra       map[string]any
	Fingerprint []string
	Message     *Message
	Exceptions  []Exception
	Breadcrumbs []Breadcrumb
	Contexts    map[string]any

	sdk SDKInfo
}

// NewEventBuilder seeds a builder with the given defaults. Prefer
// Client.NewEventBuilder, which supplies the client's SDK identity and
// configured defaults.
func NewEventBuilder(sdk SDKInfo, defaults EventDefaults) *EventBuilder {
	return &EventBuilder{
		Level:       defaults.Level,
		Logger:      defaults.Logger,
		ServerName:  defaults.ServerName,
		Release:     defaults.Release,
		Environment: defaults.Environment,
		Tags:        copyStringMap(defaults.Tags),
		Modules:     copyStringMap(defaults.Modules),
		Extra:       copyAnyMap(defaults.Extra),
		Contexts:    copyAnyMap(defaults.Contexts),
		sdk:         sdk,
	}
}

// SetMessage records a message template with optional parameters. The level
// defaults to info when still unset.
func (b *EventBuilder) SetMessage(template string, params ...any) {
	b.Message = &Message{Message: template, Params: params}
	if b.Level == "" {
		b.Level = LevelInfo
	}
}

// maxErrorDepth caps the cause-chain walk so a cyclic cause graph cannot
// produce an unbounded exception list.
const maxErrorDepth = 10

// SetException converts err and its cause chain into the builder's exception
// records, outermost error first, each nested cause appended after it. When
// still unset, the message defaults to err's text and the culprit to the
// innermost frame of the outermost error's stack. An error that does not
// carry its own stack gets the current call stack instead.
func (b *EventBuilder) SetException(err error) {
	if err == nil {
		return
	}

	chain := causeChain(err)
	records := make([]Exception, 0, len(chain))
	for _, cause := range chain {
		records = append(records, Exception{
			Module:     errModule(cause),
			Type:       errType(cause),
			Value:      cause.Error(),
			Stacktrace: stacktraceFromError(cause),
		})
	}
	if records[0].Stacktrace == nil {
		records[0].Stacktrace = captureStacktrace(1)
	}
	b.Exceptions = records

	if b.Message == nil {
		b.Message = &Message{Message: err.Error()}
	}
	if b.Culprit == "" {
		b.Culprit = culpritFromStacktrace(records[0].Stacktrace)
	}
}

// SetTag sets a single tag.
func (b *EventBuilder) SetTag(key, value string) {
	if b.Tags == nil {
		b.Tags = make(map[string]string)
	}
	b.Tags[key] = value
}

// SetExtra sets a single extra payload entry.
func (b *EventBuilder) SetExtra(key string, value any) {
	if b.Extra == nil {
		b.Extra = make(map[string]any)
	}
	b.Extra[key] = value
}

// AddBreadcrumb appends a trail entry, stamping it with the current time when
// its timestamp is zero.
func (b *EventBuilder) AddBreadcrumb(crumb Breadcrumb) {
	if crumb.Timestamp == 0 {
		crumb.Timestamp = time.Now().Unix()
	}
	b.Breadcrumbs = append(b.Breadcrumbs, crumb)
}

// Build freezes the builder's current values into an Event.
//
// A generated event ID or timestamp is written back to the builder, so
// building the same builder again reuses them. The level defaults to error
// when an exception chain is present, otherwise info. Container fields are
// copied on freeze: mutating the builder afterwards does not change the
// returned Event.
func (b *EventBuilder) Build() *Event {
	if b.EventID == "" {
		b.EventID = NewEventID()
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now().UTC()
	}

	level := b.Level
	if level == "" {
		if len(b.Exceptions) > 0 {
			level = LevelError
		} else {
			level = LevelInfo
		}
	}

	var message *Message
	if b.Message != nil {
		m := Message{Message: b.Message.Message}
		m.Params = append([]any(nil), b.Message.Params...)
		message = &m
	}

	return &Event{
		EventID:     b.EventID,
		Timestamp:   b.Timestamp.UTC().Unix(),
		Platform:    Platform,
		SDK:         b.sdk,
		Level:       level,
		Logger:      b.Logger,
		Culprit:     b.Culprit,
		ServerName:  b.ServerName,
		Release:     b.Release,
		Environment: b.Environment,
		Tags:        copyStringMap(b.Tags),
		Modules:     copyStringMap(b.Modules),
		Extra:       copyAnyMap(b.Extra),
		Fingerprint: append([]string(nil), b.Fingerprint...),
		Message:     message,
		Exception:   append([]Exception(nil), b.Exceptions...),
		Breadcrumbs: append([]Breadcrumb(nil), b.Breadcrumbs...),
		Contexts:    copyAnyMap(b.Contexts),
	}
}

// NewEventID returns a random event identifier: 32 lowercase hex digits with
// no separators.
func NewEventID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// causeChain walks err's cause chain, outermost error first. The walk is
// depth-capped, see maxErrorDepth.
func causeChain(err error) []error {
	chain := make([]error, 0, 4)
	for err != nil && len(chain) < maxErrorDepth {
		chain = append(chain, err)
		err = unwrapCause(err)
	}
	return chain
}

// unwrapCause follows the stdlib Unwrap convention, then the older
// pkg/errors Cause convention.
func unwrapCause(err error) error {
	switch e := err.(type) {
	case interface{ Unwrap() error }:
		return e.Unwrap()
	case interface{ Cause() error }:
		return e.Cause()
	}
	return nil
}

// errType reports the concrete type name of err, e.g. "*fs.PathError".
func errType(err error) string {
	return reflect.TypeOf(err).String()
}

// errModule reports the package path the error's type was declared in.
func errModule(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath()
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
