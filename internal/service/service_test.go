package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tipsplit/internal/auth"
	"github.com/mmynk/tipsplit/internal/middleware"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/storage/sqlite"
	"github.com/mmynk/tipsplit/pkg/api"
)

type testEnv struct {
	store  *sqlite.SQLiteStore
	url    string
	auth   *api.AuthClient
	roles  *api.SettingsClient[models.Role]
	phases *api.SettingsClient[models.Phase]
	calcs  *api.CalculationClient
	brand  *api.BrandingClient
}

// setupTestServer mounts every service behind the same interceptors the
// server uses, on a temp database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret-0123456789", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	required := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, api.AuthRegisterProcedure, api.AuthLoginProcedure, api.CalculationCalculateProcedure),
		middleware.LoggingInterceptor(),
	)
	optional := connect.WithInterceptors(middleware.OptionalAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(NewAuthService(authenticator, store, jwtManager, nil).Handler(required))
	mux.Handle(NewSettingsService(store, nil).Handler(required))
	mux.Handle(NewCalculationService(store, nil).Handler(required))
	mux.Handle(NewBrandingService(store, nil).Handler(optional))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		store:  store,
		url:    server.URL,
		auth:   api.NewAuthClient(http.DefaultClient, server.URL),
		roles:  api.NewSettingsClient[models.Role](http.DefaultClient, server.URL, api.ResourceRoles),
		phases: api.NewSettingsClient[models.Phase](http.DefaultClient, server.URL, api.ResourcePhases),
		calcs:  api.NewCalculationClient(http.DefaultClient, server.URL),
		brand:  api.NewBrandingClient(http.DefaultClient, server.URL),
	}
}

// register creates an account and returns its bearer token.
func (e *testEnv) register(t *testing.T, email, displayName string) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: displayName,
		Password:    "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", email, err)
	}
	return resp.Msg.Token
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Fatalf("expected code %v, got %v (%v)", want, connectErr.Code(), err)
	}
}
