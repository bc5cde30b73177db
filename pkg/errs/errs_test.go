package errs

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestExitCodesAreDistinct(t *testing.T) {
	kinds := []Kind{
		KindOK, KindGeneric, KindNoCommand, KindNotImplemented, KindNoSpace,
		KindNoMemory, KindDeviceError, KindAlreadyExists, KindRejected,
		KindSyntax, KindNoDevice,
	}
	seen := make(map[int]Kind)
	for _, k := range kinds {
		if other, ok := seen[k.ExitCode()]; ok {
			t.Errorf("%s and %s share exit code %d", k, other, k.ExitCode())
		}
		seen[k.ExitCode()] = k
	}
}

func TestKindOfNil(t *testing.T) {
	if got := KindOf(nil); got != KindOK {
		t.Errorf("KindOf(nil) = %s, want OK", got)
	}
}

func TestKindOfDirect(t *testing.T) {
	err := New(KindNoSpace, "device full")
	if got := KindOf(err); got != KindNoSpace {
		t.Errorf("KindOf = %s, want NO_SPACE", got)
	}
}

func TestKindOfWrappedByPkgErrors(t *testing.T) {
	base := New(KindDeviceError, "enumeration failed")
	wrapped := pkgerrors.Wrap(base, "unable to list devices")
	if got := KindOf(wrapped); got != KindDeviceError {
		t.Errorf("KindOf = %s, want DEVICE_ERROR", got)
	}
}

func TestKindOfUnrecognizedDefaultsToGeneric(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindGeneric {
		t.Errorf("KindOf = %s, want GENERIC", got)
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Wrap(KindRejected, errors.New("user declined"))
	want := "REJECTED: user declined"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
