package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/yolksters/internal/auth"
	"github.com/mmynk/yolksters/internal/metrics"
	"github.com/mmynk/yolksters/internal/middleware"
	"github.com/mmynk/yolksters/internal/storage/sqlite"
	"github.com/mmynk/yolksters/pkg/api"
	"github.com/mmynk/yolksters/pkg/api/apiconnect"
)

type authTestEnv struct {
	auth     apiconnect.AuthServiceClient
	shopping apiconnect.ShoppingListServiceClient
	metrics  *metrics.Metrics
}

// setupAuthServer wires the real JWT interceptors the way the server does.
func setupAuthServer(t *testing.T) authTestEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret-at-least-16", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	logger := discardLogger()
	m := metrics.New()

	mux := http.NewServeMux()
	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, logger),
		middleware.Stack(logger, m, middleware.OptionalAuth(jwtManager)),
	)
	mux.Handle(authPath, authHandler)
	shoppingPath, shoppingHandler := apiconnect.NewShoppingListServiceHandler(
		NewShoppingService(store, logger, m),
		middleware.Stack(logger, m, middleware.RequireAuth(jwtManager)),
	)
	mux.Handle(shoppingPath, shoppingHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return authTestEnv{
		auth:     apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		shopping: apiconnect.NewShoppingListServiceClient(http.DefaultClient, server.URL),
		metrics:  m,
	}
}

func withToken[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthFlow(t *testing.T) {
	env := setupAuthServer(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.Token == "" || reg.Msg.User.ID == "" {
		t.Fatalf("Register returned %+v", reg.Msg)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "alice@example.com", DisplayName: "Again", Password: "password123",
		}))
		if connect.CodeOf(err) != connect.CodeAlreadyExists {
			t.Errorf("code = %v, want AlreadyExists", connect.CodeOf(err))
		}
	})

	t.Run("weak password and missing fields", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "bob@example.com", DisplayName: "Bob", Password: "short",
		}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("weak password code = %v, want InvalidArgument", connect.CodeOf(err))
		}
		_, err = env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "bob@example.com"}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("missing fields code = %v, want InvalidArgument", connect.CodeOf(err))
		}
	})

	t.Run("login", func(t *testing.T) {
		login, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com", Password: "password123"}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if login.Msg.User.ID != reg.Msg.User.ID {
			t.Errorf("Login user = %q, want %q", login.Msg.User.ID, reg.Msg.User.ID)
		}

		_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com", Password: "wrong-password"}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("wrong password code = %v, want Unauthenticated", connect.CodeOf(err))
		}
	})

	t.Run("current user", func(t *testing.T) {
		me, err := env.auth.GetCurrentUser(ctx, withToken(reg.Msg.Token, &api.GetCurrentUserRequest{}))
		if err != nil {
			t.Fatalf("GetCurrentUser failed: %v", err)
		}
		if me.Msg.User.DisplayName != "Alice" || me.Msg.User.Email != "alice@example.com" {
			t.Errorf("Unexpected user: %+v", me.Msg.User)
		}

		_, err = env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("anonymous code = %v, want Unauthenticated", connect.CodeOf(err))
		}
	})

	t.Run("shopping list requires a token", func(t *testing.T) {
		_, err := env.shopping.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("no token code = %v, want Unauthenticated", connect.CodeOf(err))
		}
		_, err = env.shopping.ListItems(ctx, withToken("garbage", &api.ListItemsRequest{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("bad token code = %v, want Unauthenticated", connect.CodeOf(err))
		}
		rejected := env.metrics.RPCRequests.WithLabelValues(apiconnect.ShoppingListServiceListItemsProcedure, "unauthenticated")
		if got := testutil.ToFloat64(rejected); got != 2 {
			t.Errorf("rejected ListItems counted %v times, want 2", got)
		}

		add, err := env.shopping.AddIngredients(ctx, withToken(reg.Msg.Token, &api.AddIngredientsRequest{Ingredients: []string{"1 cup rice"}}))
		if err != nil {
			t.Fatalf("AddIngredients with token failed: %v", err)
		}
		if add.Msg.Inserted != 1 {
			t.Errorf("Inserted = %d, want 1", add.Msg.Inserted)
		}
	})
}
