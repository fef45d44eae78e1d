package errors

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLower,
				Kind:   KindDuplicateProducer,
				Path:   []string{"Realize(f)"},
				Detail: "second produce node for stage",
			},
			contains: []string{"[lower]", "duplicate_producer", "Realize(f)", "second produce node"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLower,
				Kind:  KindStraySemaphore,
			},
			contains: []string{"[lower]", "stray_semaphore"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseCLI,
				Kind:   KindInvalidInput,
				Detail: "bad flag",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[cli]", "invalid_input", "bad flag", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLower,
		Kind:  KindInvalidAcquire,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseLower,
		Kind:  KindDuplicateProducer,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseLower, Kind: KindDuplicateProducer}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseCLI, Kind: KindDuplicateProducer}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseLower, Kind: KindStraySemaphore}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseLower, Kind: KindDuplicateProducer}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseLower, KindInvalidAcquire).
		Path("Acquire", "sem").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "Variable", "IntImm").
		Build()

	if err.Phase != PhaseLower {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseLower)
	}
	if err.Kind != KindInvalidAcquire {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidAcquire)
	}
	if len(err.Path) != 2 || err.Path[0] != "Acquire" || err.Path[1] != "sem" {
		t.Errorf("Path = %v, want [Acquire sem]", err.Path)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected Variable, got IntImm" {
		t.Errorf("Detail = %v, want 'expected Variable, got IntImm'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Invariant", func(t *testing.T) {
		err := Invariant(KindUnknownStage, "Realize(f)", "stage %q not found in env", "f")
		if err.Phase != PhaseLower {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseLower)
		}
		if err.Kind != KindUnknownStage {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnknownStage)
		}
		if !containsSubstring(err.Detail, `stage "f" not found`) {
			t.Errorf("Detail = %v, should name the stage", err.Detail)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseCLI, "interactive mode without a tty")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseCLI, "example", "nope")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseCLI, "missing -example flag")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseLower, KindInvalidAcquire, cause, "wrapped")
		if !errors.Is(err.Cause, cause) {
			t.Errorf("Cause = %v, want %v", err.Cause, cause)
		}
	})
}

func containsSubstring(s, substr string) bool {
	if substr == "" {
		return true
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
