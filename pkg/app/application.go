package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"regionview/pkg/config"
	"regionview/pkg/contracts"
	apperrors "regionview/pkg/errors"
	httputil "regionview/pkg/http"
	"regionview/pkg/metrics"
	"regionview/pkg/middleware"
)

// Routes groups the handlers the server mounts. Health, assets and metrics
// get the minimal middleware stack; App handlers get the full one.
type Routes struct {
	Health contracts.Handler
	Assets contracts.Handler
	App    []contracts.Handler
	Route  middleware.RouteFunc
}

type Application struct {
	cfg         *config.Config
	metrics     *metrics.Collector
	server      *http.Server
	rateLimiter *middleware.ClientRateLimiter
	onShutdown  []func(context.Context) error
}

func NewApplication(cfg *config.Config, collector *metrics.Collector) *Application {
	return &Application{cfg: cfg, metrics: collector}
}

// OnShutdown registers a cleanup run after the server stops accepting
// requests, in registration order.
func (a *Application) OnShutdown(fn func(context.Context) error) {
	a.onShutdown = append(a.onShutdown, fn)
}

func (a *Application) SetApp(routes Routes, clientKey middleware.KeyExtractor) {
	mux := http.NewServeMux()

	minimal := a.minimalHandler(routes, routes.Health)
	mux.Handle("/health", minimal)
	mux.Handle("/ready", minimal)
	mux.Handle("/metrics", a.wrapMinimal(routes, a.metrics.Handler()))
	if routes.Assets != nil {
		mux.Handle("/assets/", a.minimalHandler(routes, routes.Assets))
	}
	mux.Handle("/", a.appHandler(routes, clientKey))

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// Handler exposes the configured server handler, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) minimalHandler(routes Routes, h contracts.Handler) http.Handler {
	router := httprouter.New()
	h.RegisterRoutes(router)
	return a.wrapMinimal(routes, router)
}

func (a *Application) wrapMinimal(routes Routes, h http.Handler) http.Handler {
	h = middleware.RequestMetrics(a.metrics, routes.Route)(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	return h
}

func (a *Application) appHandler(routes Routes, clientKey middleware.KeyExtractor) http.Handler {
	router := httprouter.New()
	for _, h := range routes.App {
		h.RegisterRoutes(router)
	}
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := httputil.WriteError(w, apperrors.NotFound("Route")); err != nil {
			a.cfg.Log.Error("failed to write error response", "handler", "NotFound", "operation", "WriteError", "error", err)
		}
	})

	a.rateLimiter = middleware.NewClientRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		clientKey,
		a.cfg.Log,
	)

	var appHTTPHandler http.Handler = router
	appHTTPHandler = middleware.RequestTimeout(a.cfg.RequestTimeout, a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.RateLimit(a.rateLimiter)(appHTTPHandler)
	appHTTPHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHTTPHandler)
	appHTTPHandler = middleware.RequestMetrics(a.metrics, routes.Route)(appHTTPHandler)
	appHTTPHandler = middleware.RequestLogging(a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.Recovery(a.cfg.Log)(appHTTPHandler)
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
	return appHTTPHandler
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig.String())
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.Log.Info("Stopping background workers...")
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	for _, fn := range a.onShutdown {
		if err := fn(ctx); err != nil {
			a.cfg.Log.Error("Shutdown hook failed", "error", err)
		}
	}
	a.cfg.Log.Info("Background workers stopped")

	a.cfg.Log.Info("Server stopped gracefully")
}
