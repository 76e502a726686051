package middleware

import (
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/yolksters/internal/metrics"
)

// Stack returns the interceptor option for a service. Logging and metrics
// wrap authn, so calls it rejects are logged and counted like any other.
func Stack(logger *slog.Logger, m *metrics.Metrics, authn connect.Interceptor) connect.Option {
	return connect.WithInterceptors(
		LoggingInterceptor(logger),
		MetricsInterceptor(m),
		authn,
	)
}
