// event.go defines the frozen wire-format event model.

package sentry

// Level indicates the severity of an event.
type Level string

const (
	// LevelDebug is diagnostic output not normally worth reporting.
	LevelDebug Level = "debug"

	// LevelInfo is an informational message.
	LevelInfo Level = "info"

	// LevelWarning indicates a non-fatal issue that may need attention.
	LevelWarning Level = "warning"

	// LevelError indicates a recoverable error that caused an operation to fail.
	LevelError Level = "error"

	// LevelFatal indicates an unrecoverable error such as a panic.
	LevelFatal Level = "fatal"
)

// Platform is the fixed platform identifier attached to every event.
const Platform = "go"

// SDKInfo identifies the emitting library or integration. It is attached to
// every event and to the transport's User-Agent.
type SDKInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// String renders the identity as "name/version", the form used for the
// User-Agent header and the sentry_client auth field.
func (s SDKInfo) String() string {
	return s.Name + "/" + s.Version
}

// Frame is a single stack entry.
type Frame struct {
	// Function is the bare function or method name, without the package path.
	Function string `json:"function,omitempty"`

	// Module is the package path the function was declared in.
	Module string `json:"module,omitempty"`

	// Filename is the source file of the call.
	Filename string `json:"filename,omitempty"`

	// Lineno is the source line of the call, when known.
	Lineno int `json:"lineno,omitempty"`
}

// Stacktrace holds frames ordered outermost call first, so the failing call
// is the last frame.
type Stacktrace struct {
	Frames []Frame `json:"frames,omitempty"`
}

// Exception is one link of an event's causal error chain.
type Exception struct {
	// Module is the package path the error type was declared in.
	Module string `json:"module,omitempty"`

	// Type is the concrete error type name.
	Type string `json:"type"`

	// Value is the error message.
	Value string `json:"value"`

	// Stacktrace holds the frames recorded for this error, when available.
	Stacktrace *Stacktrace `json:"stacktrace,omitempty"`
}

// Message carries a message template with optional parameters.
type Message struct {
	Message string `json:"message"`
	Params  []any  `json:"params,omitempty"`
}

// Breadcrumb is a timestamped trail entry recorded before the event, for
// context.
type Breadcrumb struct {
	// Timestamp is Unix seconds; AddBreadcrumb fills it when zero.
	Timestamp int64 `json:"timestamp"`

	Type     string         `json:"type,omitempty"`
	Category string         `json:"category,omitempty"`
	Level    Level          `json:"level,omitempty"`
	Message  string         `json:"message,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Event is a single frozen report ready for transmission. Events are
// produced by EventBuilder.Build and never mutated afterwards; field names
// serialize in lower snake case, absent optional fields are omitted.
type Event struct {
	// EventID is 32 lowercase hex digits with no separators.
	EventID string `json:"event_id"`

	// Timestamp is the capture instant in Unix seconds (UTC). The transport
	// reuses it for the auth header.
	Timestamp int64 `json:"timestamp"`

	Platform    string            `json:"platform"`
	SDK         SDKInfo           `json:"sdk"`
	Level       Level             `json:"level,omitempty"`
	Logger      string            `json:"logger,omitempty"`
	Culprit     string            `json:"culprit,omitempty"`
	ServerName  string            `json:"server_name,omitempty"`
	Release     string            `json:"release,omitempty"`
	Environment string            `json:"environment,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Modules     map[string]string `json:"modules,omitempty"`
	Extra       map[string]any    `json:"extra,omitempty"`
	Fingerprint []string          `json:"fingerprint,omitempty"`
	Message     *Message          `json:"message,omitempty"`

	// Exception is the causal chain, outermost error first.
	Exception []Exception `json:"exception,omitempty"`

	Breadcrumbs []Breadcrumb   `json:"breadcrumbs,omitempty"`
	Contexts    map[string]any `json:"contexts,omitempty"`
}
