package auth

import (
	"context"

	"github.com/stormiq/signals-api/internal/domain"
	"github.com/stormiq/signals-api/internal/logger"
)

// InitPasswordReset issues a fresh single-use reset token for the
// account and asks the notifier to deliver it. Once the email is known
// to exist the call always succeeds: delivery failures are logged,
// never surfaced, so error responses don't leak delivery state.
func (s *Service) InitPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token := newOpaqueToken()
	expiresAt := s.now().Add(s.resetTokenTTL)

	if err := s.users.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return err
	}

	if err := s.notifier.SendResetEmail(ctx, user.Email, token); err != nil {
		logger.WithCtx(ctx).Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to send password reset email")
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password. The
// token is cleared in the same update that replaces the hash, so it
// cannot be replayed.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) (Result, error) {
	if token == "" {
		return Result{}, domain.ErrTokenMissing()
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		return Result{}, err
	}

	if user.ResetTokenExpiration == nil || user.ResetTokenExpiration.Before(s.now()) {
		return Result{}, domain.ErrTokenExpired()
	}

	if !PasswordValid(newPassword) {
		return Result{}, domain.ErrInvalidPassword()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return Result{}, domain.ErrHashFailed(err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash, token); err != nil {
		return Result{}, err
	}

	user.HashedPassword = hash
	user.ResetToken = nil
	user.ResetTokenExpiration = nil

	tok, err := s.issueSession(user.Email)
	if err != nil {
		return Result{}, err
	}
	return Result{SessionToken: tok, User: user}, nil
}
