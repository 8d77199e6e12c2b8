package service

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/auth"
	"github.com/mmynk/tipsplit/internal/middleware"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/storage/sqlite"
	"github.com/mmynk/tipsplit/pkg/api"
	"github.com/mmynk/tipsplit/pkg/logging"
)

func TestServicesLogToInjectedLogger(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "logs.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo)

	jwtManager := auth.NewJWTManager("test-secret-0123456789", time.Hour)
	interceptors := connect.WithInterceptors(middleware.RequireAuth(jwtManager, api.CalculationCalculateProcedure))

	mux := http.NewServeMux()
	mux.Handle(NewSettingsService(store, logger).Handler(interceptors))
	mux.Handle(NewCalculationService(store, logger).Handler(interceptors))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	token, err := jwtManager.Generate(&models.User{ID: "u1", Email: "u1@example.com"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	phases := api.NewSettingsClient[models.Phase](http.DefaultClient, server.URL, api.ResourcePhases)
	if _, err := phases.List(context.Background(), withToken(&api.ListRequest{}, token)); err != nil {
		t.Fatalf("ListPhases failed: %v", err)
	}
	calcs := api.NewCalculationClient(http.DefaultClient, server.URL)
	if _, err := calcs.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{Bill: 10, Tip: 10, People: 1})); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"List request received", "collection=phases", "Calculate request received"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in injected logger output: %q", want, out)
		}
	}
}
