package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIs_MatchesCode(t *testing.T) {
	t.Parallel()

	err := ErrUserNotFound()
	if !Is(err, "user_not_found") {
		t.Error("Is should match the error's code")
	}
	if Is(err, "user_already_exists") {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), "user_not_found") {
		t.Error("Is should not match a plain error")
	}
	if Is(nil, "user_not_found") {
		t.Error("Is should not match nil")
	}
}

func TestIs_SeesThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("login: %w", ErrInvalidCredentials())
	if !Is(wrapped, "invalid_credentials") {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
}

func TestError_UnwrapExposesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := ErrDBUnavailable(cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, should include the cause", err.Error())
	}
}

func TestError_MessageWithoutCause(t *testing.T) {
	t.Parallel()

	err := ErrTokenExpired()
	if got := err.Error(); got != "validation (token_expired): the token has expired" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWithMeta(t *testing.T) {
	t.Parallel()

	err := ErrInvalidField("email", "too long")
	if err.Meta["field"] != "email" || err.Meta["reason"] != "too long" {
		t.Errorf("Meta = %v", err.Meta)
	}
}
