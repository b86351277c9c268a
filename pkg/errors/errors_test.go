package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/guard/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "argument_missing_error",
			code:    errors.ErrArgumentMissing,
			message: "pattern is required",
			wantStr: "[ARGUMENT_MISSING] pattern is required",
		},
		{
			name:    "invalid_pattern_error",
			code:    errors.ErrInvalidPattern,
			message: "unsupported pattern type int",
			wantStr: "[INVALID_PATTERN] unsupported pattern type int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrActionTemplate, "capture group %d not present in %q", 2, "lib/a.rb")
	want := `capture group 2 not present in "lib/a.rb"`
	if err.Message != want {
		t.Errorf("Newf() message = %q, want %q", err.Message, want)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrActionInvocation, "action failed")

		if err.Code != errors.ErrActionInvocation {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrActionInvocation)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[ACTION_INVOCATION] action failed: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrGuardfileInvalid, "bad watch entry").
		WithDetail("guard", "rspec").
		WithDetails(map[string]interface{}{"index": 2})

	if err.Details["guard"] != "rspec" {
		t.Errorf("WithDetail() guard = %v, want rspec", err.Details["guard"])
	}
	if err.Details["index"] != 2 {
		t.Errorf("WithDetails() index = %v, want 2", err.Details["index"])
	}
	if got := errors.GetErrorDetails(err); got["guard"] != "rspec" {
		t.Errorf("GetErrorDetails() = %v", got)
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrArgumentMissing, "error 1")
	err2 := errors.New(errors.ErrArgumentMissing, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !err1.Is(err2) {
		t.Error("Is() should return true for same code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
	if !stderrors.Is(fmt.Errorf("outer: %w", err1), err2) {
		t.Error("errors.Is() should work through fmt wrapping")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotFound, "x"), errors.ErrNotFound, true},
		{"different_code", errors.New(errors.ErrNotFound, "x"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrGuardfileParse, "bad"), errors.ErrGuardfileParse, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrListener, "x")); got != errors.ErrListener {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrListener)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrUnknown)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestCauses(t *testing.T) {
	rootCause := stderrors.New("EVIL")
	actionErr := errors.Wrap(rootCause, errors.ErrActionInvocation, "action failed")
	outer := errors.Wrap(actionErr, errors.ErrInternal, "batch")

	got := errors.Causes(outer)
	want := []string{
		"[INTERNAL] batch",
		"[ACTION_INVOCATION] action failed",
		"EVIL",
	}
	if len(got) != len(want) {
		t.Fatalf("Causes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Causes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if errors.Causes(nil) != nil {
		t.Error("Causes(nil) should be nil")
	}
}
