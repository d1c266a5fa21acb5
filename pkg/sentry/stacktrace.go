// stacktrace.go captures and converts stack frames for exception records.

package sentry

import (
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// sdkPackagePath is this library's own package path; frames inside it are
// noise and are dropped from captured traces.
const sdkPackagePath = "github.com/andrzejpindor/sentrygo/pkg/sentry"

const maxStackDepth = 64

// stackTracer is implemented by errors that record their own stack at
// creation time, such as those from github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// captureStacktrace collects the current goroutine's stack, skipping skip
// frames above the caller. Returns nil when nothing useful remains after
// filtering.
func captureStacktrace(skip int) *Stacktrace {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	return stacktraceFromPCs(pcs[:n])
}

// stacktraceFromError extracts the frames recorded on the error itself, if
// its producer attached any. Returns nil otherwise.
func stacktraceFromError(err error) *Stacktrace {
	st, ok := err.(stackTracer)
	if !ok {
		return nil
	}
	trace := st.StackTrace()
	pcs := make([]uintptr, 0, len(trace))
	for _, f := range trace {
		pcs = append(pcs, uintptr(f))
	}
	return stacktraceFromPCs(pcs)
}

// stacktraceFromPCs resolves program counters into frames. Runtime order is
// innermost call first; the wire format wants the outermost call first, so
// the resolved frames are reversed.
func stacktraceFromPCs(pcs []uintptr) *Stacktrace {
	iter := runtime.CallersFrames(pcs)
	var frames []Frame
	for {
		rf, more := iter.Next()
		if rf.Function != "" {
			frame := newFrame(rf)
			if !isInternalFrame(frame) {
				frames = append(frames, frame)
			}
		}
		if !more {
			break
		}
	}
	if len(frames) == 0 {
		return nil
	}
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}
	return &Stacktrace{Frames: frames}
}

func newFrame(rf runtime.Frame) Frame {
	module, function := splitQualifiedName(rf.Function)
	return Frame{
		Function: function,
		Module:   module,
		Filename: rf.File,
		Lineno:   rf.Line,
	}
}

// splitQualifiedName splits a symbol like "github.com/acme/pkg.(*T).Method"
// into the package path and the bare function name.
func splitQualifiedName(name string) (module, function string) {
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return "", name
	}
	dot += slash + 1
	return name[:dot], name[dot+1:]
}

// isInternalFrame reports whether a frame belongs to the runtime, the test
// harness, or this library itself. The library's own test files are kept so
// captures originating in them stay visible.
func isInternalFrame(f Frame) bool {
	if f.Module == "runtime" || f.Module == "testing" {
		return true
	}
	return strings.HasPrefix(f.Module, sdkPackagePath) &&
		!strings.HasSuffix(f.Filename, "_test.go")
}

// culpritFromStacktrace names the innermost retained call as
// "module.function". Frames are stored outermost first, so that is the last
// frame.
func culpritFromStacktrace(st *Stacktrace) string {
	if st == nil || len(st.Frames) == 0 {
		return ""
	}
	f := st.Frames[len(st.Frames)-1]
	if f.Module == "" {
		return f.Function
	}
	return f.Module + "." + f.Function
}
