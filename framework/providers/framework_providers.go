package providers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-passform/form"
	"github.com/km-arc/go-passform/framework/config"
	"github.com/km-arc/go-passform/framework/container"
	"github.com/km-arc/go-passform/framework/logging"
	"github.com/km-arc/go-passform/framework/metrics"
	"github.com/km-arc/go-passform/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env.
//
// Bound abstracts:
//   - container.Config → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
	Config   *config.Config // used as-is when set
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	if p.Config != nil {
		app.Instance(container.Config, p.Config)
		return
	}
	envFiles := p.EnvFiles
	app.Singleton(container.Config, func(c *container.Container) any {
		return config.Load(envFiles...)
	})
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the zap logger.
//
// Bound abstracts:
//   - container.Logger → *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger // used as-is when set
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	if p.Logger != nil {
		app.Instance(container.Logger, p.Logger)
		return
	}
	app.Singleton(container.Logger, func(c *container.Container) any {
		logger, err := logging.New(container.Resolve[*config.Config](c, container.Config))
		if err != nil {
			panic(fmt.Sprintf("providers: %v", err))
		}
		return logger
	})
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider registers the Prometheus collectors.
//
// Bound abstracts:
//   - container.Metrics → *metrics.Metrics
type MetricsServiceProvider struct {
	container.BaseProvider
}

func (p *MetricsServiceProvider) Register(app *container.Container) {
	app.Singleton(container.Metrics, func(c *container.Container) any {
		return metrics.New()
	})
}

// ── FormServiceProvider ───────────────────────────────────────────────────────

// FormServiceProvider registers the in-memory form session store.
//
// Bound abstracts:
//   - container.Forms → form.Store (*form.MemoryStore)
//
// Configuration keys read from "config":
//   - Form.TTL
type FormServiceProvider struct {
	container.BaseProvider
}

func (p *FormServiceProvider) Register(app *container.Container) {
	app.Singleton(container.Forms, func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, container.Config)
		return form.NewMemoryStore(cfg.Form.TTL)
	})
}

// Boot keeps the active-forms gauge in step with expirations and deletes.
func (p *FormServiceProvider) Boot(app *container.Container) {
	store, ok := container.Resolve[form.Store](app, container.Forms).(*form.MemoryStore)
	if !ok {
		return
	}
	m := container.Resolve[*metrics.Metrics](app, container.Metrics)
	logger := container.Resolve[*zap.Logger](app, container.Logger)

	store.OnEvicted(func(id string) {
		m.SetFormsActive(store.Count())
		logger.Debug("form evicted", zap.String("form_id", id))
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router with request logging,
// metrics and CORS applied, plus /healthz and /metrics.
//
// Bound abstracts:
//   - container.Router → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton(container.Router, func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, container.Config)
		logger := container.Resolve[*zap.Logger](c, container.Logger)
		m := container.Resolve[*metrics.Metrics](c, container.Metrics)

		r := routing.New(routing.Options{
			Middleware:     []func(http.Handler) http.Handler{logging.RequestLogger(logger), m.Middleware},
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		})
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"status":"ok"}}` + "\n"))
		})
		r.Handle("/metrics", m.Handler())
		return r
	})
}
