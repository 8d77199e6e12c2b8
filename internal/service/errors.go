package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/loader"
	"github.com/mmynk/tipsplit/internal/storage"
	"github.com/mmynk/tipsplit/pkg/api"
)

var errIDRequired = errors.New("id is required")

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) error {
	var decodeErr *loader.DecodeError
	var fetchErr *loader.FetchError
	switch {
	case errors.As(err, &decodeErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, loader.ErrUnauthenticated):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.As(err, &fetchErr):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// resultError turns a terminal loader result into an RPC error, or nil when
// the result can be returned to the caller.
func resultError[T any](result loader.Result[T]) error {
	switch result.State {
	case loader.Unauthenticated:
		return connect.NewError(connect.CodeUnauthenticated, loader.ErrUnauthenticated)
	case loader.Canceled:
		return toConnectError(result.Err)
	}
	if result.Failed() {
		return toConnectError(result.Err)
	}
	return nil
}

func skippedDocuments(skipped []*loader.DecodeError) []api.SkippedDocument {
	if len(skipped) == 0 {
		return nil
	}
	out := make([]api.SkippedDocument, len(skipped))
	for i, s := range skipped {
		out[i] = api.SkippedDocument{ID: s.DocumentID, Field: s.Field, Reason: s.Reason}
	}
	return out
}
