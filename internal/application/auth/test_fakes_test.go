package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stormiq/signals-api/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	nextID  int64
	byID    map[int64]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByEmailErr  error
	createErr      error
	setVerifyErr   error
	markVerifyErr  error
	setResetErr    error
	updatePwdErr   error

	// recorded calls
	verifyTokens []string
	resetTokens  []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[int64]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) add(u domain.User) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u
}

func (f *fakeUserRepo) store(u domain.User) {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByVerificationToken(ctx context.Context, token string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrTokenInvalid()
}

func (f *fakeUserRepo) GetByResetToken(ctx context.Context, token string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrTokenInvalid()
}

func (f *fakeUserRepo) Create(ctx context.Context, email, hashedPassword string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, ok := f.byEmail[email]; ok {
		return domain.User{}, domain.ErrUserAlreadyExists()
	}

	f.nextID++
	u := domain.User{
		ID:             f.nextID,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
	f.store(u)
	return u, nil
}

func (f *fakeUserRepo) SetVerificationToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setVerifyErr != nil {
		return f.setVerifyErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.VerificationToken = &token
	u.VerificationTokenExpiration = &expiresAt
	f.store(u)
	f.verifyTokens = append(f.verifyTokens, token)
	return nil
}

func (f *fakeUserRepo) MarkVerified(ctx context.Context, userID int64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.markVerifyErr != nil {
		return f.markVerifyErr
	}
	u, ok := f.byID[userID]
	if !ok || u.VerificationToken == nil || *u.VerificationToken != token || u.VerifiedAt != nil {
		return domain.ErrTokenInvalid()
	}
	now := time.Now()
	u.VerifiedAt = &now
	u.VerificationToken = nil
	u.VerificationTokenExpiration = nil
	f.store(u)
	return nil
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setResetErr != nil {
		return f.setResetErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.ResetToken = &token
	u.ResetTokenExpiration = &expiresAt
	f.store(u)
	f.resetTokens = append(f.resetTokens, token)
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID int64, hashedPassword, resetToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updatePwdErr != nil {
		return f.updatePwdErr
	}
	u, ok := f.byID[userID]
	if !ok || u.ResetToken == nil || *u.ResetToken != resetToken {
		return domain.ErrTokenInvalid()
	}
	u.HashedPassword = hashedPassword
	u.ResetToken = nil
	u.ResetTokenExpiration = nil
	f.store(u)
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type fakeSigner struct {
	signErr error
	signed  []string
}

func (f *fakeSigner) SignSession(identity string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signed = append(f.signed, identity)
	return "session:" + identity, nil
}

func (f *fakeSigner) VerifySession(token string) (string, error) {
	if len(token) > 8 && token[:8] == "session:" {
		return token[8:], nil
	}
	return "", domain.ErrSessionInvalid()
}

type fakeNotifier struct {
	resetErr  error
	verifyErr error

	resetSent  []string // tokens
	verifySent []string
}

func (f *fakeNotifier) SendResetEmail(ctx context.Context, email, token string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.resetSent = append(f.resetSent, token)
	return nil
}

func (f *fakeNotifier) SendVerificationEmail(ctx context.Context, email, token string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.verifySent = append(f.verifySent, token)
	return nil
}

/*
Service wiring helper
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakeNotifier) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	notifier := &fakeNotifier{}

	svc := NewService(users, hasher, signer, notifier, Config{})
	return svc, users, hasher, signer, notifier
}
