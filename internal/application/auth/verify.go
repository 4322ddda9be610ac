package auth

import (
	"context"

	"github.com/stormiq/signals-api/internal/domain"
)

// Verify consumes an email verification token and marks the user
// verified. Invalid or expired tokens mutate nothing.
func (s *Service) Verify(ctx context.Context, token string) (Result, error) {
	if token == "" {
		return Result{}, domain.ErrTokenMissing()
	}

	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		return Result{}, err
	}

	if user.VerificationTokenExpiration == nil || user.VerificationTokenExpiration.Before(s.now()) {
		return Result{}, domain.ErrTokenExpired()
	}

	// Compare-and-clear: a concurrent request that consumed the token
	// first wins; this one surfaces as an invalid token.
	if err := s.users.MarkVerified(ctx, user.ID, token); err != nil {
		return Result{}, err
	}

	now := s.now()
	user.VerifiedAt = &now
	user.VerificationToken = nil
	user.VerificationTokenExpiration = nil

	tok, err := s.issueSession(user.Email)
	if err != nil {
		return Result{}, err
	}
	return Result{SessionToken: tok, User: user}, nil
}
