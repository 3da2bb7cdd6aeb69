package errors

import (
	"errors"
	"testing"
)

// TestWrap tests wrapping plain and structured errors
func TestWrap(t *testing.T) {
	plain := errors.New("connection refused")
	wrapped := Wrap(plain, "failed to connect to database")

	appErr, ok := wrapped.(*AppError)
	if !ok {
		t.Fatal("Expected an AppError")
	}
	if appErr.Code != CodeInternalError {
		t.Errorf("Expected code %s, got %s", CodeInternalError, appErr.Code)
	}
	if appErr.Error() != "failed to connect to database: connection refused" {
		t.Errorf("Unexpected message: %s", appErr.Error())
	}
	if !errors.Is(wrapped, plain) {
		t.Error("Expected wrapped error to unwrap to the cause")
	}

	if Wrap(nil, "anything") != nil {
		t.Error("Expected Wrap(nil) to be nil")
	}
}

// TestWrap_PreservesCode tests that wrapping an AppError keeps its code
func TestWrap_PreservesCode(t *testing.T) {
	inner := DuplicateProject("my-proj")
	wrapped := Wrap(inner, "client creation failed")

	if GetCode(wrapped) != CodeDuplicateProject {
		t.Errorf("Expected code %s, got %s", CodeDuplicateProject, GetCode(wrapped))
	}
}

// TestWithCode tests attaching a code to an existing error
func TestWithCode(t *testing.T) {
	err := WithCode(CodeNoMatchingColumns, errors.New("no matching columns found in export"))
	if GetCode(err) != CodeNoMatchingColumns {
		t.Errorf("Expected code %s, got %s", CodeNoMatchingColumns, GetCode(err))
	}
	if WithCode(CodeNotFound, nil) != nil {
		t.Error("Expected WithCode(nil) to be nil")
	}
}

// TestGetCode tests code extraction for both error kinds
func TestGetCode(t *testing.T) {
	if code := GetCode(ValidationError("bad file")); code != CodeValidationError {
		t.Errorf("Expected %s, got %s", CodeValidationError, code)
	}
	if code := GetCode(errors.New("plain")); code != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN, got %s", code)
	}
}

// TestDuplicateProject tests the user-facing duplicate message
func TestDuplicateProject(t *testing.T) {
	err := DuplicateProject("acme-prod")
	expected := "A client with project ID 'acme-prod' already exists."
	if err.Message != expected {
		t.Errorf("Expected %q, got %q", expected, err.Message)
	}
}

// TestNotFound tests resource name interpolation
func TestNotFound(t *testing.T) {
	err := NotFound("Client with ID 42")
	if err.Message != "Client with ID 42 not found" {
		t.Errorf("Unexpected message: %s", err.Message)
	}
	if err.Code != CodeNotFound {
		t.Errorf("Expected code %s, got %s", CodeNotFound, err.Code)
	}
}
