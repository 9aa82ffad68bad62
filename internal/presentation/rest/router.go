package rest

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
)

const tracerName = "github.com/skysatisfy/skysatisfy/internal/presentation/rest"

// RouteRegistrar is implemented by handlers that own a set of routes.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// NewRouter registers every handler's routes plus GET /metrics when a
// metrics handler is given, and wraps the mux with request ids, tracing,
// access logging and panic recovery.
func NewRouter(logger *slog.Logger, metrics http.Handler, handlers ...RouteRegistrar) http.Handler {
	mux := http.NewServeMux()
	for _, h := range handlers {
		h.RegisterRoutes(mux)
	}
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	return Chain(mux,
		RequestIDMiddleware(),
		TracingMiddleware(otel.Tracer(tracerName)),
		LoggingMiddleware(logger),
		RecoverMiddleware(logger),
	)
}
