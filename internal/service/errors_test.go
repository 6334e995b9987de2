package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	verr := &ValidationError{}
	if verr.Err() != nil {
		t.Fatal("empty ValidationError must report nil")
	}

	verr.Add("email", "must be a valid email address", "x")
	verr.Add("password", "must be at least 6 characters", nil)
	if got := verr.Error(); got != "validation failed: email: must be a valid email address; password: must be at least 6 characters" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := fmt.Errorf("signup: %w", verr.Err())
	got, ok := IsValidationError(wrapped)
	if !ok || len(got.Fields) != 2 {
		t.Fatalf("IsValidationError() = %v, %v", got, ok)
	}

	if _, ok := IsValidationError(errors.New("other")); ok {
		t.Error("plain error must not be a ValidationError")
	}
}
