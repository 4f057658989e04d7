package radixerr

import (
	"strings"
	"testing"
)

func TestErrors_ErrorMethod(t *testing.T) {
	errs := []error{
		&InvalidParameterError{Field: "bits", Value: 0, Reason: "must be >= 1"},
		&CorrectnessViolationError{Kind: 1, Key: 7, Want: "a", Got: nil},
		&UnknownVariantError{Name: "bogus"},
	}

	for _, e := range errs {
		if e.Error() == "" {
			t.Errorf("Error() returned empty string for %T", e)
		}
	}
}

func TestWrap_NilIsNoop(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Fatal("Wrap(nil, ...) should return nil")
	}
}

func TestWrap_PreservesMessage(t *testing.T) {
	base := &InvalidParameterError{Field: "radix", Value: -1, Reason: "must be >= 1"}
	wrapped := Wrap(base, "constructing tree")
	if wrapped == nil {
		t.Fatal("Wrap(err, ...) should not return nil for a non-nil err")
	}
	if wrapped.Error() == "" {
		t.Fatal("wrapped error message should not be empty")
	}
	if msg := wrapped.Error(); !strings.Contains(msg, base.Error()) || !strings.Contains(msg, "constructing tree") {
		t.Fatalf("wrapped message %q should contain both %q and the context", msg, base.Error())
	}
}
