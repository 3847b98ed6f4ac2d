// Package container provides a small IoC container and the service provider
// lifecycle used to wire the application.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot() (safe to resolve everything after this)
//  4. Serve requests
//
// # Bindings
//
//	// Transient: new instance every Make()
//	c.Bind("clock", func(c *container.Container) any { return time.Now })
//
//	// Singleton: created once, reused
//	c.Singleton(container.Logger, func(c *container.Container) any {
//	    cfg := container.Resolve[*config.Config](c, container.Config)
//	    return must(logging.New(cfg))
//	})
//
//	// Pre-built value
//	c.Instance(container.Config, cfg)
//
//	// Alias
//	c.Alias(container.Forms, "store")
//
// # Resolving
//
//	raw := c.Make(container.Forms)
//	forms := container.Resolve[form.Store](c, container.Forms)
//
// # Service Providers
//
//	type FormServiceProvider struct{ container.BaseProvider }
//
//	func (p *FormServiceProvider) Register(app *container.Container) {
//	    app.Singleton(container.Forms, func(c *container.Container) any { ... })
//	}
//
//	func (p *FormServiceProvider) Boot(app *container.Container) {
//	    // safe to resolve other bindings here
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&FormServiceProvider{})
//	registry.Boot()
package container
