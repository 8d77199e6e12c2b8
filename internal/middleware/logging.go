package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/observability"
	"github.com/mmynk/tipsplit/internal/session"
)

// RPCLogger logs every unary call and server stream and records its
// outcome in the RPC metrics. It must run after the auth interceptor to
// see the user.
type RPCLogger struct{}

var _ connect.Interceptor = RPCLogger{}

// LoggingInterceptor returns the Connect interceptor that logs RPCs.
func LoggingInterceptor() RPCLogger {
	return RPCLogger{}
}

func (RPCLogger) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		logRPC(ctx, req.Spec().Procedure, "RPC", err, time.Since(start))
		return resp, err
	}
}

func (RPCLogger) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (RPCLogger) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		err := next(ctx, conn)
		logRPC(ctx, conn.Spec().Procedure, "Stream", err, time.Since(start))
		return err
	}
}

func logRPC(ctx context.Context, procedure, kind string, err error, elapsed time.Duration) {
	userID := userIDFrom(ctx)
	code := "ok"
	if err != nil {
		var connectErr *connect.Error
		if errors.As(err, &connectErr) {
			code = connectErr.Code().String()
			slog.Warn(kind+" error",
				"procedure", procedure,
				"code", connectErr.Code(),
				"error", connectErr.Message(),
				"user_id", userID,
				"duration_ms", elapsed.Milliseconds(),
			)
		} else {
			code = connect.CodeUnknown.String()
			slog.Error(kind+" error",
				"procedure", procedure,
				"error", err,
				"user_id", userID,
				"duration_ms", elapsed.Milliseconds(),
			)
		}
	} else {
		slog.Info(kind+" ok",
			"procedure", procedure,
			"user_id", userID,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
	observability.RecordRPC(procedure, code, elapsed)
}

func userIDFrom(ctx context.Context) string {
	if id := session.IdentityFromContext(ctx); id != nil {
		return id.UserID
	}
	return "" // pre-auth
}
