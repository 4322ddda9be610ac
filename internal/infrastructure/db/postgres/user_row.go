package postgres

import "time"

type userRow struct {
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
