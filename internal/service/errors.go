package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/yolksters/internal/auth"
	"github.com/mmynk/yolksters/internal/middleware"
	"github.com/mmynk/yolksters/internal/storage"
)

// errStorageUnavailable hides storage details from callers.
var errStorageUnavailable = errors.New("storage unavailable")

// requireUser returns the authenticated user ID or an Unauthenticated error.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// storageError maps a repository failure to a Connect error. Missing rows are
// NotFound; everything else is logged and reported as Internal.
func storageError(logger *slog.Logger, op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	logger.Error("Storage failure", "op", op, "error", err)
	return connect.NewError(connect.CodeInternal, errStorageUnavailable)
}
