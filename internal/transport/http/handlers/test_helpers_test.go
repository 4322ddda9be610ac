package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stormiq/signals-api/internal/application/auth"
	"github.com/stormiq/signals-api/internal/application/signals"
	"github.com/stormiq/signals-api/internal/domain"
	"github.com/stormiq/signals-api/internal/infrastructure/memory"
	"github.com/stormiq/signals-api/internal/infrastructure/security"
	"github.com/stormiq/signals-api/internal/transport/http/middleware"
	"github.com/stormiq/signals-api/internal/transport/http/response"
	"github.com/stormiq/signals-api/internal/transport/http/router"
)

// stubSignalRepo backs the stocks routes in handler tests.
type stubSignalRepo struct {
	signals []domain.Signal
	stocks  []domain.Stock
	err     error
}

func (s *stubSignalRepo) Signals(ctx context.Context, windowMins int, tickers []string) ([]domain.Signal, error) {
	return s.signals, s.err
}

func (s *stubSignalRepo) TopByStrength(ctx context.Context, windowMins, limit int, ascending bool) ([]domain.Signal, error) {
	return s.signals, s.err
}

func (s *stubSignalRepo) Stocks(ctx context.Context) ([]domain.Stock, error) {
	return s.stocks, s.err
}

type testApp struct {
	handler http.Handler
	users   *memory.UserRepo
	repo    *stubSignalRepo
	signer  *security.JWTSigner
}

// newTestApp wires the full router against in-memory infrastructure.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := memory.NewUserRepo()
	repo := &stubSignalRepo{}
	hasher := security.NewBcryptHasher(4)
	signer := security.NewJWTSigner("test-secret", "stormiq-test")

	authSvc := auth.NewService(users, hasher, signer, memory.NewNoopNotifier(), auth.Config{
		VerifyEmailTokenTTL:   time.Hour,
		PasswordResetTokenTTL: time.Hour,
	})
	signalSvc := signals.NewService(repo)

	mux, err := router.New(router.Deps{
		Health:  NewHealthHandler(nil),
		Auth:    NewAuthHandler(authSvc),
		Signals: NewSignalsHandler(signalSvc),
		Admin:   NewAdminHandler(),
		AuthMW:  middleware.Auth(signer, response.WriteError),
		Extra:   []func(http.Handler) http.Handler{middleware.RequestID},
	})
	if err != nil {
		t.Fatalf("router.New: %v", err)
	}

	return &testApp{handler: mux, users: users, repo: repo, signer: signer}
}

func (a *testApp) do(t *testing.T, method, path, bearer string, body any) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec.Result()
}

func decodeEnvelope(t *testing.T, res *http.Response) (json.RawMessage, map[string]any) {
	t.Helper()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var env struct {
		Data json.RawMessage `json:"data"`
		Meta map[string]any  `json:"meta"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, raw)
	}
	return env.Data, env.Meta
}

func decodeErrorCode(t *testing.T, res *http.Response) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

// register creates an account and returns its session token.
func (a *testApp) register(t *testing.T, email, password string) string {
	t.Helper()

	res := a.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", res.StatusCode)
	}
	_, meta := decodeEnvelope(t, res)
	tok, _ := meta["access_token"].(string)
	if tok == "" {
		t.Fatal("register returned no access token")
	}
	return tok
}
