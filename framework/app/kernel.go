package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-passform/form"
	"github.com/km-arc/go-passform/framework/config"
	"github.com/km-arc/go-passform/framework/container"
	"github.com/km-arc/go-passform/framework/metrics"
	"github.com/km-arc/go-passform/framework/providers"
	"github.com/km-arc/go-passform/framework/routing"
)

// Version is reported at startup.
const Version = "0.1.0"

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Application is the top-level application container. It embeds the
// Container and ProviderRegistry so callers can Bind/Register directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// Option customises the core providers before they register.
type Option func(*coreProviders)

type coreProviders struct {
	config  providers.ConfigServiceProvider
	logging providers.LoggingServiceProvider
}

// WithEnvFiles loads configuration from the given .env files.
func WithEnvFiles(files ...string) Option {
	return func(p *coreProviders) { p.config.EnvFiles = files }
}

// WithConfig uses cfg instead of reading the environment.
func WithConfig(cfg *config.Config) Option {
	return func(p *coreProviders) { p.config.Config = cfg }
}

// WithLogger uses logger instead of building one from config.
func WithLogger(logger *zap.Logger) Option {
	return func(p *coreProviders) { p.logging.Logger = logger }
}

// New creates the application and registers the framework providers.
func New(opts ...Option) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	core := &coreProviders{}
	for _, opt := range opts {
		opt(core)
	}

	registry.Register(&core.config)
	registry.Register(&core.logging)
	registry.Register(&providers.MetricsServiceProvider{})
	registry.Register(&providers.FormServiceProvider{})
	registry.Register(&providers.RoutingServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, container.Config)
}

func (a *Application) Logger() *zap.Logger {
	return container.Resolve[*zap.Logger](a.Container, container.Logger)
}

func (a *Application) Metrics() *metrics.Metrics {
	return container.Resolve[*metrics.Metrics](a.Container, container.Metrics)
}

func (a *Application) Forms() form.Store {
	return container.Resolve[form.Store](a.Container, container.Forms)
}

func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, container.Router)
}

// Handler boots the application if needed and returns its HTTP handler.
func (a *Application) Handler() http.Handler {
	if !a.Providers.Booted() {
		a.Boot()
	}
	return a.Router()
}

// Run serves HTTP on APP_PORT until ctx is cancelled, then drains in-flight
// requests.
func (a *Application) Run(ctx context.Context) error {
	handler := a.Handler()
	cfg := a.Config()
	logger := a.Logger()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", srv.Addr),
			zap.String("version", Version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
