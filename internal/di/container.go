// Package di provides dependency injection configuration for stacks.
package di

import (
	"github.com/samber/do/v2"

	"github.com/mmcdole/stacks/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// Services are built lazily on first invoke.
func NewContainer(opts providers.Options) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, opts)
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideBridge)
	do.Provide(injector, providers.ProvideWatcher)

	// Application state
	do.Provide(injector, providers.ProvideState)
	do.Provide(injector, providers.ProvideDirectory)

	// Catalog
	do.Provide(injector, providers.ProvideCatalogClient)
	do.Provide(injector, providers.ProvideCatalogService)

	return injector
}
