package auth

import (
	"context"
	"strings"

	"github.com/stormiq/signals-api/internal/domain"
)

// Login authenticates a user by email and password and issues a
// session token.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	email = strings.TrimSpace(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return Result{}, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return Result{}, domain.ErrInvalidCredentials()
	}

	if s.requireVerified && !user.Verified() {
		return Result{}, domain.ErrUserNotVerified()
	}

	tok, err := s.issueSession(user.Email)
	if err != nil {
		return Result{}, err
	}
	return Result{SessionToken: tok, User: user}, nil
}
