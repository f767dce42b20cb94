package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hostelhub/internal/store"
	"hostelhub/pkg/config"
	"hostelhub/pkg/contracts"
	"hostelhub/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg     *config.Config
	server  *http.Server
	cleanup []func() error
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp builds the router and the middleware chain around the given
// domain handlers. Health endpoints bypass everything except recovery and
// request logging.
func (a *Application) SetApp(st store.Store, handlers ...contracts.Handler) {
	healthRouter := httprouter.New()
	NewHealthHandler(st, a.cfg.Log).RegisterRoutes(healthRouter)

	var healthHandler http.Handler = healthRouter
	healthHandler = middleware.RequestLogging(a.cfg.Log)(healthHandler)
	healthHandler = middleware.Recovery(a.cfg.Log)(healthHandler)

	appRouter := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(appRouter)
	}

	var appHandler http.Handler = appRouter
	appHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHandler)
	appHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHandler)
	appHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHandler)
	appHandler = middleware.RequestLogging(a.cfg.Log)(appHandler)
	appHandler = middleware.Recovery(a.cfg.Log)(appHandler)

	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler)
	mux.Handle("/ready", healthHandler)
	mux.Handle("/", appHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// OnShutdown registers a cleanup function to run during graceful shutdown.
func (a *Application) OnShutdown(fn func() error) {
	a.cleanup = append(a.cleanup, fn)
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
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
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

	for _, fn := range a.cleanup {
		if err := fn(); err != nil {
			a.cfg.Log.Error("Cleanup failed during shutdown", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
