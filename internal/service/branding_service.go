package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/auth"
	"github.com/mmynk/tipsplit/internal/branding"
	"github.com/mmynk/tipsplit/internal/session"
	"github.com/mmynk/tipsplit/pkg/api"
)

// BrandingService serves the static header. It is mounted behind optional
// auth so signed-in callers get a greeting.
type BrandingService struct {
	users  auth.UserStorage
	logger *slog.Logger
}

// NewBrandingService creates a BrandingService. users may be nil, in which
// case the greeting uses the token's email.
func NewBrandingService(users auth.UserStorage, logger *slog.Logger) *BrandingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrandingService{users: users, logger: logger}
}

// Handler returns the mount path and handler for the branding procedures.
func (s *BrandingService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(api.BrandingGetHeaderProcedure, connect.NewUnaryHandler(api.BrandingGetHeaderProcedure, s.GetHeader, opts...))
	return api.BrandingServicePath, mux
}

// GetHeader returns the branding payload.
func (s *BrandingService) GetHeader(ctx context.Context, req *connect.Request[api.GetHeaderRequest]) (*connect.Response[api.GetHeaderResponse], error) {
	identity := session.IdentityFromContext(ctx)

	var displayName string
	if identity != nil && s.users != nil {
		user, err := s.users.GetUserByID(ctx, identity.UserID)
		if err != nil {
			s.logger.Warn("Header user lookup failed", "user_id", identity.UserID, "error", err)
		} else {
			displayName = user.DisplayName
		}
	}

	h := branding.NewHeader(identity, displayName)
	return connect.NewResponse(&api.GetHeaderResponse{
		AppName:     h.AppName,
		Tagline:     h.Tagline,
		DisplayName: h.DisplayName,
	}), nil
}
