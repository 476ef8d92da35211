package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasklist/internal/api"
	apiMiddleware "github.com/phrazzld/tasklist/internal/api/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
// The router is wrapped in an otelhttp handler so every request carries a span.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	api.NewTaskHandler(app.taskService, app.logger).Mount(r)
	api.NewUserHandler(app.userService, app.logger).Mount(r)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return otelhttp.NewHandler(r, "tasklist",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method
		}),
	)
}
