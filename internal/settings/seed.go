package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/tipsplit/internal/loader"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/session"
	"github.com/mmynk/tipsplit/internal/storage"
)

// Store is what seeding needs: read to check for existing data, write to fill it.
type Store interface {
	storage.DocumentReader
	storage.DocumentWriter
}

var (
	defaultPhases = []models.Phase{
		{Name: "Setup", Description: "Before doors open", Order: 1},
		{Name: "Service", Description: "Guests are seated", Order: 2},
		{Name: "Close", Description: "After last orders", Order: 3},
	}
	defaultPositions = []models.EmployeePosition{
		{Name: "Server", TipPoints: 10},
		{Name: "Bartender", TipPoints: 8},
		{Name: "Busser", TipPoints: 4},
		{Name: "Host", TipPoints: 3},
	}
	defaultRoles = []models.Role{
		{Name: "Admin", Permissions: []string{"settings:read", "settings:write"}},
		{Name: "Viewer", Permissions: []string{"settings:read"}},
	}
)

// SeedReport is the number of entities created per collection.
type SeedReport map[string]int

// SeedDefaults fills the phases, employee-positions and roles collections
// with starter data. A collection that already holds any document, valid or
// not, is left alone. Projects are site specific and never seeded.
func SeedDefaults(ctx context.Context, sessions session.Provider, store Store, logger *slog.Logger) (SeedReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	report := SeedReport{}

	if err := seedDomain(ctx, Phases, defaultPhases, sessions, store, logger, report); err != nil {
		return report, err
	}
	if err := seedDomain(ctx, EmployeePositions, defaultPositions, sessions, store, logger, report); err != nil {
		return report, err
	}
	if err := seedDomain(ctx, Roles, defaultRoles, sessions, store, logger, report); err != nil {
		return report, err
	}
	return report, nil
}

func seedDomain[T any](ctx context.Context, d Domain[T], defaults []T, sessions session.Provider, store Store, logger *slog.Logger, report SeedReport) error {
	result := d.NewLoader(sessions, store, logger).Load(ctx)
	switch {
	case result.State == loader.Unauthenticated:
		return loader.ErrUnauthenticated
	case result.State == loader.Canceled, result.Failed():
		return result.Err
	}

	if len(result.Entities) > 0 || len(result.Skipped) > 0 {
		logger.Info("Collection already populated, skipping", "collection", d.Collection, "count", len(result.Entities))
		return nil
	}

	m := d.NewManager(result.Entities, store, logger)
	for _, entity := range defaults {
		fields, err := toFields(entity)
		if err != nil {
			return err
		}
		if _, err := m.Create(ctx, fields); err != nil {
			return fmt.Errorf("failed to seed %s: %w", d.Collection, err)
		}
	}
	report[d.Collection] = len(m.Entities())
	logger.Info("Collection seeded", "collection", d.Collection, "count", report[d.Collection])
	return nil
}
