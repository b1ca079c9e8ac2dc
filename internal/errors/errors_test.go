package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNewBigoError(t *testing.T) {
	cause := errors.New("underlying error")
	fixes := []FixAction{{Type: RunCommand, Command: "bigo init --force"}}
	drilldowns := []Drilldown{{Label: "Check", Query: "functions"}}

	err := NewBigoError(ConfigInvalid, "config file malformed", cause, fixes, drilldowns)

	if err.Code != ConfigInvalid {
		t.Errorf("Code = %v, want %v", err.Code, ConfigInvalid)
	}
	if err.Message != "config file malformed" {
		t.Errorf("Message = %q, want %q", err.Message, "config file malformed")
	}
	if len(err.SuggestedFixes) != 1 {
		t.Errorf("len(SuggestedFixes) = %d, want 1", len(err.SuggestedFixes))
	}
	if len(err.Drilldowns) != 1 {
		t.Errorf("len(Drilldowns) = %d, want 1", len(err.Drilldowns))
	}
}

func TestBigoError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      FileUnreadable,
			message:   "cannot open source file",
			cause:     errors.New("permission denied"),
			wantParts: []string{"FILE_UNREADABLE", "cannot open source file", "permission denied"},
		},
		{
			name:      "without cause",
			code:      SpanInvalid,
			message:   "start line after end line",
			cause:     nil,
			wantParts: []string{"SPAN_INVALID", "start line after end line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBigoError(tt.code, tt.message, tt.cause, nil, nil)
			got := err.Error()

			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestBigoError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewBigoError(InternalError, "something went wrong", cause, nil, nil)

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through BigoError")
	}

	errNoCause := NewBigoError(Timeout, "request timed out", nil, nil, nil)
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() on error without cause should return nil")
	}
}

func TestBigoError_WithDetails(t *testing.T) {
	err := NewBigoError(PolicyViolation, "budget exceeded", nil, nil, nil)
	details := map[string]int{"violations": 3}

	result := err.WithDetails(details)

	// WithDetails returns the same error for chaining
	if result != err {
		t.Error("WithDetails should return the same error for chaining")
	}
	if err.Details == nil {
		t.Error("Details should be set")
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		wantNil bool
	}{
		{ConfigInvalid, false},
		{LanguagesInvalid, false},
		{PolicyInvalid, false},
		{StoreUnavailable, false},
		{Unauthorized, false},
		{PolicyViolation, false},
		{SpanInvalid, true},
		{PathOutsideRepo, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			fixes := GetSuggestedFixes(tt.code)

			if tt.wantNil && fixes != nil {
				t.Errorf("GetSuggestedFixes(%v) = %v, want nil", tt.code, fixes)
			}
			if !tt.wantNil && len(fixes) == 0 {
				t.Errorf("GetSuggestedFixes(%v) returned no fixes", tt.code)
			}
		})
	}
}

func TestErrorCodesUnique(t *testing.T) {
	codes := []ErrorCode{
		FileUnreadable,
		PathOutsideRepo,
		SpanInvalid,
		ConfigInvalid,
		LanguagesInvalid,
		PolicyInvalid,
		PolicyViolation,
		StoreUnavailable,
		RecordNotFound,
		Unauthorized,
		Timeout,
		ExportFailed,
		InternalError,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("duplicate error code: %v", code)
		}
		seen[code] = true

		if string(code) == "" {
			t.Error("error code should not be empty")
		}
	}
}

func TestErrorActionsMap(t *testing.T) {
	for code, fixes := range ErrorActions {
		if len(fixes) == 0 {
			t.Errorf("ErrorActions[%v] has no fix actions", code)
		}
		for i, fix := range fixes {
			if fix.Type == "" {
				t.Errorf("ErrorActions[%v][%d].Type is empty", code, i)
			}
		}
	}
}
