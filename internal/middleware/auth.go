// Package middleware provides Connect interceptors for authentication,
// logging and metrics.
package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/yolksters/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserIDKey is the context key for storing the authenticated user ID.
const UserIDKey contextKey = "user_id"

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// WithUserID returns a copy of ctx carrying the user ID. It also records the
// ID for interceptors running outside the one that authenticated the call.
func WithUserID(ctx context.Context, userID string) context.Context {
	if p, ok := ctx.Value(principalKey).(*principal); ok {
		p.userID = userID
	}
	return context.WithValue(ctx, UserIDKey, userID)
}

const principalKey contextKey = "principal"

// principal is filled in by WithUserID further down the chain.
type principal struct {
	userID string
}

// trackPrincipal returns a context whose eventual user ID can be read from
// the returned principal after the call completes.
func trackPrincipal(ctx context.Context) (context.Context, *principal) {
	p := &principal{userID: GetUserID(ctx)}
	return context.WithValue(ctx, principalKey, p), p
}

// RequireAuth returns an interceptor that rejects calls without a valid
// Bearer token and stores the token's user ID in the request context.
func RequireAuth(verifier auth.Verifier) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithUserID(ctx, userID), req)
		}
	}
}

// OptionalAuth returns an interceptor that stores the user ID when a valid
// token is present and lets every call through regardless.
func OptionalAuth(verifier auth.Verifier) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token, ok := bearerToken(req.Header().Get("Authorization")); ok {
				// Invalid tokens are ignored.
				if userID, err := verifier.Verify(token); err == nil {
					ctx = WithUserID(ctx, userID)
				}
			}
			return next(ctx, req)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
