// Package router wires the HTTP routes of the tracking service.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dronetrack/internal/http/handlers"
)

// Deps holds everything the router mounts.
type Deps struct {
	Base     *handlers.Handlers
	Display  *handlers.DisplayHandler
	Route    *handlers.RouteHandler
	Dispatch *handlers.DispatchHandler
	Tracking *handlers.TrackingHandler

	// Observability wraps every route; RateLimit wraps only dispatch.
	Observability func(http.Handler) http.Handler
	RateLimit     func(http.Handler) http.Handler
	Metrics       http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if d.Observability != nil {
		r.Use(d.Observability)
	}

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	r.Route("/orders/{orderID}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(10 * time.Second))
			r.Get("/display", d.Display.Get)
			r.Get("/route", d.Route.Get)
			if d.RateLimit != nil {
				r.With(d.RateLimit).Post("/segments/{segmentIndex}/dispatch", d.Dispatch.Post)
			} else {
				r.Post("/segments/{segmentIndex}/dispatch", d.Dispatch.Post)
			}
		})
		if d.Tracking != nil {
			// The SSE stream stays open; no timeout middleware here.
			r.Get("/track", d.Tracking.Stream)
		}
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
