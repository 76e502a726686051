package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/yolksters/internal/metrics"
	"github.com/mmynk/yolksters/internal/middleware"
	"github.com/mmynk/yolksters/internal/storage"
	"github.com/mmynk/yolksters/internal/storage/sqlite"
	"github.com/mmynk/yolksters/pkg/api/apiconnect"
)

// discardLogger keeps test output quiet.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testAuthInterceptor returns a Connect interceptor that sets a test user ID in the context.
// The X-Test-User header overrides the default user "alice".
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			user := req.Header().Get("X-Test-User")
			if user == "" {
				user = "alice"
			}
			return next(middleware.WithUserID(ctx, user), req)
		}
	}
}

// asUser builds a request that the test interceptor attributes to user.
func asUser[T any](user string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("X-Test-User", user)
	return req
}

// setupShoppingServer creates a test server backed by a temporary SQLite database.
func setupShoppingServer(t *testing.T) (apiconnect.ShoppingListServiceClient, *sqlite.SQLiteStore, *metrics.Metrics) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := metrics.New()
	return serveShopping(t, store, m), store, m
}

// serveShopping mounts a ShoppingService over store on a test server.
func serveShopping(t *testing.T, store storage.Store, m *metrics.Metrics) apiconnect.ShoppingListServiceClient {
	t.Helper()

	svc := NewShoppingService(store, discardLogger(), m)
	path, handler := apiconnect.NewShoppingListServiceHandler(svc, connect.WithInterceptors(testAuthInterceptor()))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return apiconnect.NewShoppingListServiceClient(http.DefaultClient, server.URL)
}
