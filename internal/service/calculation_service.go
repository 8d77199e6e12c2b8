package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/calculator"
	"github.com/mmynk/tipsplit/internal/loader"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/session"
	"github.com/mmynk/tipsplit/internal/settings"
	"github.com/mmynk/tipsplit/internal/storage"
	"github.com/mmynk/tipsplit/pkg/api"
)

// CalculationService implements the CalculationService RPC interface.
type CalculationService struct {
	store  storage.DocumentStore
	logger *slog.Logger
	now    func() time.Time
}

// NewCalculationService creates a new CalculationService with the given storage backend.
func NewCalculationService(store storage.DocumentStore, logger *slog.Logger) *CalculationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalculationService{store: store, logger: logger, now: time.Now}
}

// Handler returns the mount path and handler for the calculation procedures.
func (s *CalculationService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(api.CalculationCalculateProcedure, connect.NewUnaryHandler(api.CalculationCalculateProcedure, s.Calculate, opts...))
	mux.Handle(api.CalculationSaveProcedure, connect.NewUnaryHandler(api.CalculationSaveProcedure, s.SaveCalculation, opts...))
	mux.Handle(api.CalculationListProcedure, connect.NewUnaryHandler(api.CalculationListProcedure, s.ListCalculations, opts...))
	mux.Handle(api.CalculationDeleteProcedure, connect.NewUnaryHandler(api.CalculationDeleteProcedure, s.DeleteCalculation, opts...))
	return api.CalculationServicePath, mux
}

// Calculate splits a bill without storing anything. Amounts are rounded to cents.
func (s *CalculationService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	s.logger.Info("Calculate request received",
		"bill", req.Msg.Bill,
		"tip", req.Msg.Tip,
		"people", req.Msg.People,
	)

	split, err := calculator.CalculateTip(req.Msg.Bill, req.Msg.Tip, req.Msg.People)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	return connect.NewResponse(&api.CalculateResponse{
		TipAmount:       calculator.Round2(split.TipAmount),
		TotalAmount:     calculator.Round2(split.TotalAmount),
		PerPersonAmount: calculator.Round2(split.PerPersonAmount),
	}), nil
}

// SaveCalculation computes the split and stores it for the caller.
func (s *CalculationService) SaveCalculation(ctx context.Context, req *connect.Request[api.SaveCalculationRequest]) (*connect.Response[api.SaveCalculationResponse], error) {
	identity := session.IdentityFromContext(ctx)
	if identity == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, loader.ErrUnauthenticated)
	}

	s.logger.Info("SaveCalculation request received", "name", req.Msg.Name, "user_id", identity.UserID)

	calc, err := calculator.NewSavedCalculation(identity.UserID, req.Msg.Name, req.Msg.Bill, req.Msg.Tip, req.Msg.People, s.now())
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	fields, err := settings.CalculationFields(calc)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	saved, err := s.manager().Create(ctx, fields)
	if err != nil {
		s.logger.Error("SaveCalculation failed", "user_id", identity.UserID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Calculation saved", "id", saved.ID, "user_id", identity.UserID)
	return connect.NewResponse(&api.SaveCalculationResponse{Calculation: toAPICalculation(saved)}), nil
}

// ListCalculations returns the caller's saved calculations, oldest first.
func (s *CalculationService) ListCalculations(ctx context.Context, req *connect.Request[api.ListCalculationsRequest]) (*connect.Response[api.ListCalculationsResponse], error) {
	result := settings.Calculations.NewLoader(session.FromContext(ctx), s.store, s.logger).Load(ctx)
	if err := resultError(result); err != nil {
		return nil, err
	}

	userID := session.IdentityFromContext(ctx).UserID
	calculations := make([]*api.Calculation, 0, len(result.Entities))
	for _, c := range result.Entities {
		if c.UserID == userID {
			calculations = append(calculations, toAPICalculation(c))
		}
	}

	s.logger.Info("ListCalculations successful", "user_id", userID, "count", len(calculations))
	return connect.NewResponse(&api.ListCalculationsResponse{Calculations: calculations}), nil
}

// DeleteCalculation removes one of the caller's calculations. Calculations
// owned by someone else are reported as not found.
func (s *CalculationService) DeleteCalculation(ctx context.Context, req *connect.Request[api.DeleteCalculationRequest]) (*connect.Response[api.DeleteCalculationResponse], error) {
	identity := session.IdentityFromContext(ctx)
	if identity == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, loader.ErrUnauthenticated)
	}
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errIDRequired)
	}

	s.logger.Info("DeleteCalculation request received", "id", req.Msg.ID, "user_id", identity.UserID)

	doc, err := s.store.Get(ctx, models.CollectionCalculations, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	// Malformed records can still be deleted by their owner.
	owner, _ := doc.Fields["userId"].(string)
	if owner != identity.UserID {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}

	if err := s.manager().Delete(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteCalculationResponse{}), nil
}

func (s *CalculationService) manager() *settings.Manager[models.SavedCalculation] {
	return settings.Calculations.NewManager(nil, s.store, s.logger)
}

func toAPICalculation(c models.SavedCalculation) *api.Calculation {
	return &api.Calculation{
		ID:              c.ID,
		Name:            c.Name,
		Bill:            c.Bill,
		Tip:             c.Tip,
		People:          c.People,
		TipAmount:       c.TipAmount,
		TotalAmount:     c.TotalAmount,
		PerPersonAmount: c.PerPersonAmount,
		CreatedAt:       c.CreatedAt,
	}
}
