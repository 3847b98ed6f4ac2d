// Package app wires the passform HTTP API onto the framework router.
package app

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-passform/app/controllers"
	"github.com/km-arc/go-passform/form"
	"github.com/km-arc/go-passform/framework/container"
	"github.com/km-arc/go-passform/framework/metrics"
	"github.com/km-arc/go-passform/framework/routing"
)

// RouteServiceProvider mounts the /api/v1 routes once every binding exists.
type RouteServiceProvider struct {
	container.BaseProvider
}

func (p *RouteServiceProvider) Register(_ *container.Container) {}

func (p *RouteServiceProvider) Boot(app *container.Container) {
	r := container.Resolve[*routing.Router](app, container.Router)
	logger := container.Resolve[*zap.Logger](app, container.Logger)
	m := container.Resolve[*metrics.Metrics](app, container.Metrics)
	store := container.Resolve[form.Store](app, container.Forms)

	Routes(r,
		controllers.NewPasswordController(logger, m),
		controllers.NewFormController(store, logger, m),
	)
}

// Routes registers the API on r.
func Routes(r *routing.Router, pw *controllers.PasswordController, forms *controllers.FormController) {
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Prefix("/password", func(p *routing.Router) {
			p.Get("/requirements", pw.Requirements)
			p.Post("/validate", pw.Validate)
		})

		api.Prefix("/forms", func(f *routing.Router) {
			f.Post("/", forms.Store)
			f.Get("/{id}", forms.Show)
			f.Delete("/{id}", forms.Destroy)
			f.Put("/{id}/fields/{field}", forms.Capture)
			f.Post("/{id}/visibility", forms.ToggleVisibility)
			f.Post("/{id}/submit", forms.Submit)
		})
	})
}
