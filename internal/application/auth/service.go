package auth

import (
	"time"

	"github.com/stormiq/signals-api/internal/domain"
)

const (
	defaultSessionTTL     = 365 * 24 * time.Hour
	defaultVerifyTokenTTL = 7 * 24 * time.Hour
	defaultResetTokenTTL  = time.Hour
)

// Service implements the credential lifecycle: registration, login,
// email verification, password reset and session issuance. It is
// stateless between calls; all durable state lives behind UserRepo.
type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	signer   TokenSigner
	notifier Notifier

	sessionTTL     time.Duration
	verifyTokenTTL time.Duration
	resetTokenTTL  time.Duration

	// Login-time verification gating. The upstream behavior ships with
	// this off; it is an explicit switch rather than a dormant code path.
	requireVerified bool

	now func() time.Time
}

type Config struct {
	SessionTTL            time.Duration
	VerifyEmailTokenTTL   time.Duration
	PasswordResetTokenTTL time.Duration
	RequireVerifiedEmail  bool
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, notifier Notifier, cfg Config) *Service {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	verifyTTL := cfg.VerifyEmailTokenTTL
	if verifyTTL <= 0 {
		verifyTTL = defaultVerifyTokenTTL
	}
	resetTTL := cfg.PasswordResetTokenTTL
	if resetTTL <= 0 {
		resetTTL = defaultResetTokenTTL
	}

	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		notifier: notifier,

		sessionTTL:      sessionTTL,
		verifyTokenTTL:  verifyTTL,
		resetTokenTTL:   resetTTL,
		requireVerified: cfg.RequireVerifiedEmail,

		now: time.Now,
	}
}

// WithClock overrides the service clock. Used by tests to exercise
// token-expiry behavior deterministically.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Result is the common output of the operations that authenticate a
// user: a signed session token plus the affected user.
type Result struct {
	SessionToken string
	User         domain.User
}

// issueSession signs a long-lived session token bound to the user's
// email. Issuance is a pure function of the identity; no server-side
// session state is kept.
func (s *Service) issueSession(email string) (string, error) {
	tok, err := s.signer.SignSession(email, s.sessionTTL)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return tok, nil
}
