package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/yolksters/internal/metrics"
)

// MetricsInterceptor returns a Connect interceptor that counts every RPC and
// records its latency, labelled by procedure and result code.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			procedure := req.Spec().Procedure
			m.RPCRequests.WithLabelValues(procedure, code).Inc()
			m.RPCDuration.WithLabelValues(procedure, code).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
