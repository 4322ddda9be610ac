package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormiq/signals-api/internal/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *UserRepo) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create mock database")

	return db, mock, NewUserRepo(db)
}

func userRows(id int64, email, hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "hashed_password", "verification_token", "verification_token_expiration",
		"verified_at", "reset_token", "reset_token_expiration", "created_at",
	}).AddRow(id, email, hash, nil, nil, nil, nil, nil, time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC))
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var de *domain.Error
	require.True(t, errors.As(err, &de), "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestUserRepo_GetByEmail_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("test@example.com").
		WillReturnRows(userRows(1, "test@example.com", "$2a$10$hash"))

	u, err := repo.GetByEmail(context.Background(), "  Test@Example.COM ")

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "test@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	requireCode(t, err, "user_not_found")
}

func TestUserRepo_GetByEmail_DatabaseError(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("test@example.com").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.GetByEmail(context.Background(), "test@example.com")
	requireCode(t, err, "db_unavailable")
}

func TestUserRepo_GetByVerificationToken_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE verification_token = \$1`).
		WithArgs("tok").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByVerificationToken(context.Background(), "tok")
	requireCode(t, err, "token_invalid")
}

func TestUserRepo_GetByResetToken_EmptyToken_NoQuery(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	_, err := repo.GetByResetToken(context.Background(), "   ")
	requireCode(t, err, "token_invalid")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(email, hashed_password\)`).
		WithArgs("new@example.com", "$2a$10$hash").
		WillReturnRows(userRows(7, "new@example.com", "$2a$10$hash"))

	u, err := repo.Create(context.Background(), "New@Example.com", "$2a$10$hash")

	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "new@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_UniqueViolation(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(email, hashed_password\)`).
		WithArgs("dup@example.com", "$2a$10$hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), "dup@example.com", "$2a$10$hash")
	requireCode(t, err, "user_already_exists")
}

func TestUserRepo_SetVerificationToken_UserMissing(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	expiresAt := time.Now().Add(time.Hour)
	mock.ExpectExec(`UPDATE users SET verification_token = \$1`).
		WithArgs("tok", expiresAt, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetVerificationToken(context.Background(), 42, "tok", expiresAt)
	requireCode(t, err, "user_not_found")
}

func TestUserRepo_MarkVerified_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET verified_at = NOW\(\)`).
		WithArgs(int64(1), "tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkVerified(context.Background(), 1, "tok"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_MarkVerified_TokenConsumed(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET verified_at = NOW\(\)`).
		WithArgs(int64(1), "tok").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkVerified(context.Background(), 1, "tok")
	requireCode(t, err, "token_invalid")
}

func TestUserRepo_UpdatePassword_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET hashed_password = \$1`).
		WithArgs("$2a$10$new", int64(1), "tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), 1, "$2a$10$new", "tok"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdatePassword_TokenConsumed(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET hashed_password = \$1`).
		WithArgs("$2a$10$new", int64(1), "tok").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), 1, "$2a$10$new", "tok")
	requireCode(t, err, "token_invalid")
}
