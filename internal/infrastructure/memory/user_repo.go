package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/stormiq/signals-api/internal/domain"
)

// UserRepo is an in-memory auth.UserRepo for dev mode and tests.
type UserRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]domain.User
	byEmail map[string]int64
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		nextID:  1,
		byID:    make(map[int64]domain.User),
		byEmail: make(map[string]int64),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByVerificationToken(ctx context.Context, token string) (domain.User, error) {
	return r.findByToken(token, func(u domain.User) *string { return u.VerificationToken })
}

func (r *UserRepo) GetByResetToken(ctx context.Context, token string) (domain.User, error) {
	return r.findByToken(token, func(u domain.User) *string { return u.ResetToken })
}

func (r *UserRepo) findByToken(token string, field func(domain.User) *string) (domain.User, error) {
	if token == "" {
		return domain.User{}, domain.ErrTokenInvalid()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if t := field(u); t != nil && *t == token {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrTokenInvalid()
}

func (r *UserRepo) Create(ctx context.Context, email, hashedPassword string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return domain.User{}, domain.ErrUserAlreadyExists()
	}

	u := domain.User{
		ID:             r.nextID,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
	r.nextID++
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return u, nil
}

func (r *UserRepo) SetVerificationToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return r.update(userID, func(u *domain.User) error {
		u.VerificationToken = &token
		u.VerificationTokenExpiration = &expiresAt
		return nil
	})
}

func (r *UserRepo) MarkVerified(ctx context.Context, userID int64, token string) error {
	return r.update(userID, func(u *domain.User) error {
		if u.VerifiedAt != nil || u.VerificationToken == nil || *u.VerificationToken != token {
			return domain.ErrTokenInvalid()
		}
		now := time.Now()
		u.VerifiedAt = &now
		u.VerificationToken = nil
		u.VerificationTokenExpiration = nil
		return nil
	})
}

func (r *UserRepo) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return r.update(userID, func(u *domain.User) error {
		u.ResetToken = &token
		u.ResetTokenExpiration = &expiresAt
		return nil
	})
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, hashedPassword, resetToken string) error {
	return r.update(userID, func(u *domain.User) error {
		if u.ResetToken == nil || *u.ResetToken != resetToken {
			return domain.ErrTokenInvalid()
		}
		u.HashedPassword = hashedPassword
		u.ResetToken = nil
		u.ResetTokenExpiration = nil
		return nil
	})
}

func (r *UserRepo) update(userID int64, fn func(*domain.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	if err := fn(&u); err != nil {
		return err
	}
	r.byID[userID] = u
	return nil
}
