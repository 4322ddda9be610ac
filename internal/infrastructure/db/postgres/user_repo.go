package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stormiq/signals-api/internal/domain"
)

const userColumns = `id, email, hashed_password, verification_token, verification_token_expiration,
verified_at, reset_token, reset_token_expiration, created_at`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.HashedPassword,
		&ur.VerificationToken,
		&ur.VerificationTokenExpiration,
		&ur.VerifiedAt,
		&ur.ResetToken,
		&ur.ResetTokenExpiration,
		&ur.CreatedAt,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:                          ur.ID,
		Email:                       ur.Email,
		HashedPassword:              ur.HashedPassword,
		VerificationToken:           ur.VerificationToken,
		VerificationTokenExpiration: ur.VerificationTokenExpiration,
		VerifiedAt:                  ur.VerifiedAt,
		ResetToken:                  ur.ResetToken,
		ResetTokenExpiration:        ur.ResetTokenExpiration,
		CreatedAt:                   ur.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByVerificationToken(ctx context.Context, token string) (domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE verification_token = $1
LIMIT 1;
`
	return r.getByToken(ctx, q, token)
}

func (r *UserRepo) GetByResetToken(ctx context.Context, token string) (domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE reset_token = $1
LIMIT 1;
`
	return r.getByToken(ctx, q, token)
}

func (r *UserRepo) getByToken(ctx context.Context, query, token string) (domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return domain.User{}, domain.ErrTokenInvalid()
	}

	ur, err := scanUserRow(r.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrTokenInvalid()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, email, hashedPassword string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if hashedPassword == "" {
		return domain.User{}, domain.ErrMissingField("hashed_password")
	}

	const q = `
INSERT INTO users (email, hashed_password)
VALUES ($1, $2)
RETURNING ` + userColumns + `;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, email, hashedPassword))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrUserAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) SetVerificationToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	const q = `
UPDATE users
SET verification_token = $1,
    verification_token_expiration = $2
WHERE id = $3;
`
	return r.execExpectingRow(ctx, q, token, expiresAt, userID)
}

// MarkVerified consumes the verification token. The WHERE clause makes
// the read-check-clear race-safe: only one request can match the token,
// and verified_at is only ever set while still null.
func (r *UserRepo) MarkVerified(ctx context.Context, userID int64, token string) error {
	const q = `
UPDATE users
SET verified_at = NOW(),
    verification_token = NULL,
    verification_token_expiration = NULL
WHERE id = $1
  AND verification_token = $2
  AND verified_at IS NULL;
`
	res, err := r.db.ExecContext(ctx, q, userID, token)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	if n == 0 {
		return domain.ErrTokenInvalid()
	}
	return nil
}

func (r *UserRepo) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	const q = `
UPDATE users
SET reset_token = $1,
    reset_token_expiration = $2
WHERE id = $3;
`
	return r.execExpectingRow(ctx, q, token, expiresAt, userID)
}

// UpdatePassword replaces the hash and clears the reset token in one
// statement, conditional on the token still matching, so a consumed
// token cannot be replayed.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, hashedPassword, resetToken string) error {
	const q = `
UPDATE users
SET hashed_password = $1,
    reset_token = NULL,
    reset_token_expiration = NULL
WHERE id = $2
  AND reset_token = $3;
`
	res, err := r.db.ExecContext(ctx, q, hashedPassword, userID, resetToken)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	if n == 0 {
		return domain.ErrTokenInvalid()
	}
	return nil
}

func (r *UserRepo) execExpectingRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
