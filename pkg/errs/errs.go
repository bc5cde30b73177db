// Package errs implements the closed error taxonomy shared by every layer
// of mtpsync (spec.md §7). Every fallible call in the core and adapters
// ultimately returns (or wraps) one of these kinds so that cmd/mtpsync can
// map it to a process exit code.
package errs

import "fmt"

// Kind is a closed enumeration of the error categories defined in spec.md
// §7. Its zero value, KindOK, is not used as an error; it exists only so
// that a successful exit can be expressed with the same type if needed.
type Kind int

const (
	KindOK Kind = iota
	KindGeneric
	KindNoCommand
	KindNotImplemented
	KindNoSpace
	KindNoMemory
	KindDeviceError
	KindAlreadyExists
	KindRejected
	KindSyntax
	KindNoDevice
)

// String returns the taxonomy name of k, matching spec.md §7's table.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "OK"
	case KindGeneric:
		return "GENERIC"
	case KindNoCommand:
		return "NO_COMMAND"
	case KindNotImplemented:
		return "NOT_IMPLEMENTED"
	case KindNoSpace:
		return "NO_SPACE"
	case KindNoMemory:
		return "NO_MEMORY"
	case KindDeviceError:
		return "DEVICE_ERROR"
	case KindAlreadyExists:
		return "ALREADY_EXISTS"
	case KindRejected:
		return "REJECTED"
	case KindSyntax:
		return "SYNTAX"
	case KindNoDevice:
		return "NO_DEVICE"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the process exit code cmd/mtpsync should use for k. Each
// non-OK kind gets a distinct, stable code.
func (k Kind) ExitCode() int {
	switch k {
	case KindOK:
		return 0
	case KindGeneric:
		return 1
	case KindNoCommand:
		return 2
	case KindNotImplemented:
		return 3
	case KindNoSpace:
		return 4
	case KindNoMemory:
		return 5
	case KindDeviceError:
		return 6
	case KindAlreadyExists:
		return 7
	case KindRejected:
		return 8
	case KindSyntax:
		return 9
	case KindNoDevice:
		return 10
	default:
		return 1
	}
}

// Error pairs a Kind with an underlying cause. It implements Unwrap so that
// errors.Is/errors.As (and github.com/pkg/errors cause-chain walking) see
// through to the wrapped error.
type Error struct {
	Kind  Kind
	Cause error
}

// New constructs an Error of the given kind wrapping message as a plain
// error (no further cause).
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Cause: errorString(message)}
}

// Wrap constructs an Error of the given kind wrapping an existing error.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Cause.Error())
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error, and
// KindGeneric otherwise. A nil err returns KindOK.
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}
	var target *Error
	for {
		if e, ok := err.(*Error); ok {
			target = e
			break
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		next := unwrapper.Unwrap()
		if next == nil {
			break
		}
		err = next
	}
	if target != nil {
		return target.Kind
	}
	return KindGeneric
}

type errorString string

func (e errorString) Error() string { return string(e) }
