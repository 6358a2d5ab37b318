// Package kernel assembles the HTTP handler: global middleware, the
// operational endpoints, the live feed hub, and the API routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/bazaar/app/jobs"
	"github.com/shashiranjanraj/bazaar/app/resources"
	"github.com/shashiranjanraj/bazaar/app/routes"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/event"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/reqid"
	"github.com/shashiranjanraj/bazaar/pkg/router"
	"github.com/shashiranjanraj/bazaar/pkg/ws"
)

// HTTPKernel holds the assembled handler and the live feed hub.
type HTTPKernel struct {
	router *router.Router
	hub    *ws.Hub
}

// NewHTTPKernel builds the middleware stack and mounts all routes.
func NewHTTPKernel() *HTTPKernel {
	hub := ws.NewHub()
	go hub.Run()

	// Created posts flow to every live feed subscriber.
	event.Listen(services.EventPostCreated, func(payload interface{}) {
		if view, ok := payload.(resources.PostView); ok {
			hub.Publish(services.EventPostCreated, view)
		}
	})

	jobs.RegisterAll()

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery          — catches panics before they kill the goroutine
	//  3. Request ID        — inject unique ID before anything logs
	//  4. Logger            — logs request_id from context
	//  5. CORS              — set CORS headers
	//  6. Rate limiter      — reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Operational endpoints — no auth, no rate limit concerns at this volume.
	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	routes.RegisterAPI(r, hub)

	return &HTTPKernel{router: r, hub: hub}
}

// Handler returns the root http.Handler.
func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Hub exposes the live feed hub.
func (k *HTTPKernel) Hub() *ws.Hub { return k.hub }

// Routes lists every named route, for the route:list command.
func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }
