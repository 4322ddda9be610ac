package auth

import (
	"context"
	"strings"

	"github.com/stormiq/signals-api/internal/domain"
	"github.com/stormiq/signals-api/internal/logger"
)

// Register creates a user account and signs it in. On success a
// verification token is issued and mailed out best-effort; an email
// delivery failure never fails the registration.
func (s *Service) Register(ctx context.Context, email, password string) (Result, error) {
	email = strings.TrimSpace(email)

	if !EmailValid(email) {
		return Result{}, domain.ErrInvalidEmail()
	}
	if !PasswordValid(password) {
		return Result{}, domain.ErrInvalidPassword()
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return Result{}, domain.ErrUserAlreadyExists()
	} else if !domain.Is(err, "user_not_found") {
		return Result{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Result{}, domain.ErrHashFailed(err)
	}

	// Two concurrent registrations race here; the store's uniqueness
	// constraint decides, surfaced as ErrUserAlreadyExists.
	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return Result{}, err
	}

	s.issueVerificationToken(ctx, user)

	tok, err := s.issueSession(user.Email)
	if err != nil {
		return Result{}, err
	}
	return Result{SessionToken: tok, User: user}, nil
}

// issueVerificationToken persists a fresh verification token and hands
// it to the notifier. Everything in here is best-effort.
func (s *Service) issueVerificationToken(ctx context.Context, user domain.User) {
	token := newOpaqueToken()
	expiresAt := s.now().Add(s.verifyTokenTTL)

	if err := s.users.SetVerificationToken(ctx, user.ID, token, expiresAt); err != nil {
		logger.WithCtx(ctx).Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to store verification token")
		return
	}

	if err := s.notifier.SendVerificationEmail(ctx, user.Email, token); err != nil {
		logger.WithCtx(ctx).Error().
			Err(err).
			Int64("user_id", user.ID).
			Msg("failed to send verification email")
	}
}
