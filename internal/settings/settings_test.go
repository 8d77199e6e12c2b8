package settings

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmynk/tipsplit/internal/loader"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/session"
	"github.com/mmynk/tipsplit/internal/storage"
	"github.com/mmynk/tipsplit/internal/storage/sqlite"
	"github.com/mmynk/tipsplit/pkg/logging"
)

func newStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seed(t *testing.T, store storage.DocumentWriter, collection string, fields ...map[string]any) []string {
	t.Helper()
	var ids []string
	for _, f := range fields {
		doc := &models.Document{Collection: collection, Fields: f}
		if err := store.Create(context.Background(), doc); err != nil {
			t.Fatalf("seed %s: %v", collection, err)
		}
		ids = append(ids, doc.ID)
	}
	return ids
}

var signedIn = session.NewStatic(&session.Identity{UserID: "u1", Email: "u1@example.com"})

func TestLoadersReturnStoreOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	phaseIDs := seed(t, store, models.CollectionPhases,
		map[string]any{"name": "Open", "order": 1.0},
		map[string]any{"name": "Lunch", "order": 2.0},
		map[string]any{"name": "Close", "order": 3.0},
	)
	positionIDs := seed(t, store, models.CollectionEmployeePositions,
		map[string]any{"name": "Server", "tipPoints": 1.0},
		map[string]any{"name": "Busser", "tipPoints": 0.5},
	)
	projectIDs := seed(t, store, models.CollectionProjects,
		map[string]any{"name": "Downtown", "active": true},
	)
	roleIDs := seed(t, store, models.CollectionRoles,
		map[string]any{"name": "Admin"},
		map[string]any{"name": "Viewer"},
	)

	phases := Phases.NewLoader(signedIn, store, nil).Load(ctx)
	positions := EmployeePositions.NewLoader(signedIn, store, nil).Load(ctx)
	projects := Projects.NewLoader(signedIn, store, nil).Load(ctx)
	roles := Roles.NewLoader(signedIn, store, nil).Load(ctx)

	checkIDs(t, "phases", phases.State, phases.Err, ids(phases.Entities, Phases.ID), phaseIDs)
	checkIDs(t, "positions", positions.State, positions.Err, ids(positions.Entities, EmployeePositions.ID), positionIDs)
	checkIDs(t, "projects", projects.State, projects.Err, ids(projects.Entities, Projects.ID), projectIDs)
	checkIDs(t, "roles", roles.State, roles.Err, ids(roles.Entities, Roles.ID), roleIDs)

	if phases.Entities[1].Name != "Lunch" || positions.Entities[1].TipPoints != 0.5 {
		t.Errorf("fields not decoded: %+v %+v", phases.Entities[1], positions.Entities[1])
	}
}

func TestRolesScenario(t *testing.T) {
	store := newStore(t)
	ids := seed(t, store, models.CollectionRoles,
		map[string]any{"name": "Admin"},
		map[string]any{"name": "Viewer"},
	)

	result := Roles.NewLoader(session.NewStatic(&session.Identity{UserID: "u1"}), store, nil).Load(context.Background())
	if result.State != loader.Ready {
		t.Fatalf("expected Ready, got %v", result.State)
	}

	manager := Roles.NewManager(result.Entities, store, nil)
	got := manager.Entities()
	want := []models.Role{{ID: ids[0], Name: "Admin"}, {ID: ids[1], Name: "Viewer"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d roles, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Name != want[i].Name {
			t.Errorf("role %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

type failingReader struct{ err error }

func (f failingReader) ListAll(context.Context, string) ([]models.Document, error) {
	return nil, f.err
}

func TestProjectsReadFailureScenario(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelDebug)
	cause := errors.New("dial tcp: connection refused")

	result := Projects.NewLoader(signedIn, failingReader{err: cause}, logger).Load(context.Background())

	if result.State != loader.Ready || len(result.Entities) != 0 {
		t.Fatalf("expected Ready([]), got %v with %d entities", result.State, len(result.Entities))
	}
	if !errors.Is(result.Err, cause) {
		t.Errorf("expected failure to carry the cause, got %v", result.Err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "connection refused") {
		t.Errorf("expected one log entry with the cause, got %q", lines)
	}
}

func TestManagerLifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	seed(t, store, models.CollectionPhases, map[string]any{"name": "Open", "order": 1.0})

	result := Phases.NewLoader(signedIn, store, nil).Load(ctx)
	manager := Phases.NewManager(result.Entities, store, nil)

	created, err := manager.Create(ctx, map[string]any{"name": "Close", "order": 9.0, "junk": "dropped"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.Order != 9 {
		t.Errorf("unexpected created phase: %+v", created)
	}

	stored, err := store.Get(ctx, models.CollectionPhases, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := stored.Fields["junk"]; ok {
		t.Error("unknown fields should not be stored")
	}

	updated, err := manager.Update(ctx, created.ID, map[string]any{"name": "Closing", "order": 10.0})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID || updated.Name != "Closing" {
		t.Errorf("unexpected updated phase: %+v", updated)
	}

	entities := manager.Entities()
	if len(entities) != 2 || entities[1].Name != "Closing" {
		t.Fatalf("unexpected managed list: %+v", entities)
	}

	if err := manager.Delete(ctx, entities[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := manager.Entities(); len(got) != 1 || got[0].ID != created.ID {
		t.Errorf("unexpected list after delete: %+v", got)
	}

	// A fresh loader sees the writes.
	reloaded := Phases.NewLoader(signedIn, store, nil).Load(ctx)
	if len(reloaded.Entities) != 1 || reloaded.Entities[0].Name != "Closing" {
		t.Errorf("unexpected reload: %+v", reloaded.Entities)
	}
}

func TestManagerValidation(t *testing.T) {
	store := newStore(t)
	manager := Roles.NewManager(nil, store, nil)
	ctx := context.Background()

	_, err := manager.Create(ctx, map[string]any{"permissions": []any{"a"}})
	var decodeErr *loader.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *loader.DecodeError, got %T: %v", err, err)
	}
	if decodeErr.Collection != models.CollectionRoles || decodeErr.Field != "name" {
		t.Errorf("unexpected decode error: %+v", decodeErr)
	}

	if _, err := manager.Update(ctx, "missing", map[string]any{"name": "Ghost"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := manager.Delete(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(manager.Entities()) != 0 {
		t.Errorf("failed writes should not change the list")
	}
}

func TestManagerRejectsOutOfRangeOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	manager := Phases.NewManager(nil, store, nil)

	_, err := manager.Create(ctx, map[string]any{"name": "Big", "order": 1e19})
	var decodeErr *loader.DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Field != "order" {
		t.Fatalf("expected order decode error, got %v", err)
	}

	docs, err := store.ListAll(ctx, models.CollectionPhases)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("out-of-range phase was stored: %+v", docs)
	}
}

func ids[T any](entities []T, id func(T) string) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = id(e)
	}
	return out
}

func checkIDs(t *testing.T, name string, state loader.State, err error, got, want []string) {
	t.Helper()
	if state != loader.Ready || err != nil {
		t.Errorf("%s: expected Ready without error, got %v / %v", name, state, err)
		return
	}
	if len(got) != len(want) {
		t.Errorf("%s: expected %d entities, got %d", name, len(want), len(got))
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: entity %d id %s, want %s", name, i, got[i], want[i])
		}
	}
}
