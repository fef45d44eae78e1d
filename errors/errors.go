// Package errors provides the structured error type used by the async
// producer/consumer lowering pass and its surrounding tooling.
//
// Adapted from a WASM component-model SDK's errors package: same
// Phase/Kind/Builder shape, trimmed to the phases and kinds an IR
// lowering pass and its demo CLI actually raise.
package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred.
type Phase string

const (
	PhaseLower Phase = "lower" // async producer/consumer lowering pass
	PhaseCLI   Phase = "cli"   // cmd/lucidc argument handling
)

// Kind categorizes the error.
type Kind string

const (
	// Internal-invariant violations raised by the lowering pass
	// (spec.md §7). These never surface to an end user — they indicate a
	// bug in an earlier pass that fed this one a malformed tree.
	KindDuplicateProducer Kind = "duplicate_producer"
	KindInvalidAcquire    Kind = "invalid_acquire"
	KindStraySemaphore    Kind = "stray_semaphore"
	KindUnknownStage      Kind = "unknown_stage"

	// Generic kinds used outside the pass itself (CLI argument errors).
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
)

// Error is the structured error type used throughout the module.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field/node path.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value.
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Invariant creates a PhaseLower internal-invariant violation, naming the
// offending node kind in Path. The lowering pass never recovers from one
// of these; it always returns it up to the caller (spec.md §7).
func Invariant(kind Kind, nodeDesc, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseLower,
		Kind:   kind,
		Path:   []string{nodeDesc},
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Unsupported creates an unsupported-operation error.
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: what,
	}
}

// NotFound creates a not-found error.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
