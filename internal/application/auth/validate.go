package auth

import (
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 60

	// bcrypt only reads the first 72 bytes; longer inputs would be
	// silently truncated, so they are rejected outright.
	maxPasswordBytes = 72
)

// local@domain.tld: exactly one @, at least one dot after it.
var emailRx = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// EmailValid reports whether email has the local@domain.tld shape.
func EmailValid(email string) bool {
	return email != "" && emailRx.MatchString(email)
}

// PasswordValid reports whether password satisfies the length policy
// shared by registration and password reset. The 8..60 bounds count
// characters, not bytes, so multi-byte passwords are measured the way
// users perceive them.
func PasswordValid(password string) bool {
	if len(password) > maxPasswordBytes {
		return false
	}
	n := utf8.RuneCountInString(password)
	return n >= minPasswordLen && n <= maxPasswordLen
}

// newOpaqueToken returns a single-use token value: a random 128-bit
// identifier rendered as text.
func newOpaqueToken() string {
	return uuid.NewString()
}
