package domain

import "time"

// User is the sole persisted identity entity. Plaintext passwords never
// appear here; HashedPassword is always a bcrypt digest.
type User struct {
	ID                          int64
	Email                       string
	HashedPassword              string
	VerificationToken           *string
	VerificationTokenExpiration *time.Time
	VerifiedAt                  *time.Time
	ResetToken                  *string
	ResetTokenExpiration        *time.Time
	CreatedAt                   time.Time
}

// Verified reports whether the user's email address has been verified.
// VerifiedAt is set exactly once and never cleared.
func (u User) Verified() bool {
	return u.VerifiedAt != nil
}
