package auth

import (
	"context"
	"time"

	"github.com/stormiq/signals-api/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.
Lookups return domain.ErrUserNotFound / ErrTokenInvalid on no match.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (domain.User, error)
	GetByResetToken(ctx context.Context, token string) (domain.User, error)

	// Create fails with domain.ErrUserAlreadyExists on the email
	// uniqueness constraint.
	Create(ctx context.Context, email, hashedPassword string) (domain.User, error)

	SetVerificationToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// MarkVerified sets verified_at and clears the verification token in a
	// single compare-and-clear update. It fails with domain.ErrTokenInvalid
	// when the token no longer matches (consumed by a concurrent request).
	MarkVerified(ctx context.Context, userID int64, token string) error

	SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// UpdatePassword replaces the password hash and clears the reset token
	// fields, conditional on the token still matching (compare-and-clear).
	UpdatePassword(ctx context.Context, userID int64, hashedPassword, resetToken string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by service + auth middleware.
*/
type TokenSigner interface {
	SignSession(identity string, ttl time.Duration) (string, error)
	VerifySession(token string) (identity string, err error)
}

/*
Notifier
--------
Out-of-band delivery of credential-lifecycle emails.
Best-effort from the service's perspective: delivery failures are
logged and swallowed, never surfaced to the caller.
*/
type Notifier interface {
	SendResetEmail(ctx context.Context, email, token string) error
	SendVerificationEmail(ctx context.Context, email, token string) error
}
