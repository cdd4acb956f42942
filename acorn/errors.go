// Package acorn defines the object model, error taxonomy and capability-set
// dispatcher shared by the adfs and dfs backends.
package acorn

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the closed set of error conditions an Acorn filing system
// operation can fail with.
type Kind int

const (
	// KindIO wraps an underlying I/O error from the standard library.
	KindIO Kind = iota
	KindBadEof
	KindNotAcorn
	KindBrokenDir
	KindBadFsmap
	KindBug
	KindMapFull
	KindDirFull
	KindCorrupt
	KindNoSpace
	KindNotDir
	KindNotFound
	KindExists
	KindNameTooLong
	KindNotSupported
	KindInvalid
)

var kindText = map[Kind]string{
	KindIO:           "I/O error",
	KindBadEof:       "unexpected EOF on disc image",
	KindNotAcorn:     "not a recognised Acorn filing system",
	KindBrokenDir:    "broken directory",
	KindBadFsmap:     "bad free space map",
	KindBug:          "bug in Acorn FS utils",
	KindMapFull:      "free space map full",
	KindDirFull:      "directory full",
	KindCorrupt:      "filesystem is corrupt",
	KindNoSpace:      "no space left on device",
	KindNotDir:       "not a directory",
	KindNotFound:     "not found",
	KindExists:       "already exists",
	KindNameTooLong:  "name too long",
	KindNotSupported: "not supported",
	KindInvalid:      "invalid argument",
}

func (k Kind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return "unknown error"
}

// Error is the error type surfaced by every operation in this module. It
// carries a Kind (for programmatic dispatch via errors.Is) and an optional
// wrapped cause, following the teacher's use of github.com/pkg/errors for
// call-site context instead of ad-hoc string concatenation.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, acorn.Err(KindNotFound)) style comparisons: two
// *Error values match if their Kind matches, regardless of Cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Err constructs a bare sentinel error of the given kind, suitable for
// errors.Is comparisons.
func Err(k Kind) *Error {
	return &Error{Kind: k}
}

// Wrap attaches call-site context to an underlying error using
// github.com/pkg/errors, then tags it with Kind so callers can still test
// with errors.Is.
func Wrap(k Kind, cause error, msg string) error {
	if cause == nil {
		return &Error{Kind: k}
	}
	return &Error{Kind: k, Cause: errors.Wrap(cause, msg)}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(k Kind, cause error, format string, args ...interface{}) error {
	if cause == nil {
		return &Error{Kind: k}
	}
	return &Error{Kind: k, Cause: errors.Wrapf(cause, format, args...)}
}
