package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/session"
	"github.com/mmynk/tipsplit/internal/settings"
	"github.com/mmynk/tipsplit/internal/storage"
	"github.com/mmynk/tipsplit/pkg/api"
)

// SettingsService serves the four settings collections. Every List runs a
// fresh loader for the caller's session; writes go through a Manager.
type SettingsService struct {
	store  storage.DocumentStore
	logger *slog.Logger
}

// NewSettingsService creates a new SettingsService with the given storage backend.
func NewSettingsService(store storage.DocumentStore, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{store: store, logger: logger}
}

// Handler returns the mount path and handler for all settings procedures.
func (s *SettingsService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)

	mux := http.NewServeMux()
	registerResource(mux, s, settings.Phases, api.ResourcePhases, opts)
	registerResource(mux, s, settings.EmployeePositions, api.ResourcePositions, opts)
	registerResource(mux, s, settings.Projects, api.ResourceProjects, opts)
	registerResource(mux, s, settings.Roles, api.ResourceRoles, opts)
	return api.SettingsServicePath, mux
}

// resource adapts one settings domain to its five procedures.
type resource[T any] struct {
	svc    *SettingsService
	domain settings.Domain[T]
}

func registerResource[T any](mux *http.ServeMux, svc *SettingsService, domain settings.Domain[T], name string, opts []connect.HandlerOption) {
	r := &resource[T]{svc: svc, domain: domain}
	mux.Handle(api.SettingsProcedure("List", name), connect.NewUnaryHandler(api.SettingsProcedure("List", name), r.list, opts...))
	mux.Handle(api.SettingsProcedure("Create", name), connect.NewUnaryHandler(api.SettingsProcedure("Create", name), r.create, opts...))
	mux.Handle(api.SettingsProcedure("Update", name), connect.NewUnaryHandler(api.SettingsProcedure("Update", name), r.update, opts...))
	mux.Handle(api.SettingsProcedure("Delete", name), connect.NewUnaryHandler(api.SettingsProcedure("Delete", name), r.delete, opts...))
	mux.Handle(api.SettingsProcedure("Watch", name), connect.NewServerStreamHandler(api.SettingsProcedure("Watch", name), r.watch, opts...))
}

func (r *resource[T]) list(ctx context.Context, req *connect.Request[api.ListRequest]) (*connect.Response[api.ListResponse[T]], error) {
	r.svc.logger.Info("List request received", "collection", r.domain.Collection)

	result := r.domain.NewLoader(session.FromContext(ctx), r.svc.store, r.svc.logger).Load(ctx)
	if err := resultError(result); err != nil {
		return nil, err
	}

	r.svc.logger.Info("List successful",
		"collection", r.domain.Collection,
		"count", len(result.Entities),
		"skipped", len(result.Skipped),
	)

	return connect.NewResponse(&api.ListResponse[T]{
		Items:   result.Entities,
		Skipped: skippedDocuments(result.Skipped),
	}), nil
}

func (r *resource[T]) create(ctx context.Context, req *connect.Request[api.CreateRequest]) (*connect.Response[api.CreateResponse[T]], error) {
	r.svc.logger.Info("Create request received", "collection", r.domain.Collection, "fields_count", len(req.Msg.Fields))

	item, err := r.manager().Create(ctx, req.Msg.Fields)
	if err != nil {
		r.svc.logger.Error("Create failed", "collection", r.domain.Collection, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateResponse[T]{Item: item}), nil
}

func (r *resource[T]) update(ctx context.Context, req *connect.Request[api.UpdateRequest]) (*connect.Response[api.UpdateResponse[T]], error) {
	r.svc.logger.Info("Update request received", "collection", r.domain.Collection, "id", req.Msg.ID)

	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errIDRequired)
	}
	item, err := r.manager().Update(ctx, req.Msg.ID, req.Msg.Fields)
	if err != nil {
		r.svc.logger.Error("Update failed", "collection", r.domain.Collection, "id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateResponse[T]{Item: item}), nil
}

func (r *resource[T]) delete(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error) {
	r.svc.logger.Info("Delete request received", "collection", r.domain.Collection, "id", req.Msg.ID)

	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errIDRequired)
	}
	if err := r.manager().Delete(ctx, req.Msg.ID); err != nil {
		r.svc.logger.Error("Delete failed", "collection", r.domain.Collection, "id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteResponse{}), nil
}

func (r *resource[T]) watch(ctx context.Context, req *connect.Request[api.WatchRequest], stream *connect.ServerStream[api.WatchResponse[T]]) error {
	r.svc.logger.Info("Watch request received", "collection", r.domain.Collection)

	results, err := r.domain.NewLoader(session.FromContext(ctx), r.svc.store, r.svc.logger).Subscribe(ctx)
	if err != nil {
		return toConnectError(err)
	}

	for result := range results {
		if err := stream.Send(&api.WatchResponse[T]{
			Items:   result.Entities,
			Skipped: skippedDocuments(result.Skipped),
		}); err != nil {
			return err
		}
	}

	r.svc.logger.Info("Watch ended", "collection", r.domain.Collection)
	return nil
}

// manager returns a Manager for one write. Writes do not need the loaded
// list, so the manager starts empty.
func (r *resource[T]) manager() *settings.Manager[T] {
	return r.domain.NewManager(nil, r.svc.store, r.svc.logger)
}
