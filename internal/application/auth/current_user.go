package auth

import (
	"context"

	"github.com/stormiq/signals-api/internal/domain"
)

// CurrentUser resolves the identity claim of an already-validated
// session token to a user. It returns nil (not an error) when the
// claim is absent or resolves to nothing.
func (s *Service) CurrentUser(ctx context.Context, identity string) (*domain.User, error) {
	if identity == "" {
		return nil, nil
	}

	user, err := s.users.GetByEmail(ctx, identity)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
