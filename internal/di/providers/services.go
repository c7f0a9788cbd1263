package providers

import (
	"github.com/samber/do/v2"

	"github.com/mmcdole/stacks/internal/adapter"
	"github.com/mmcdole/stacks/internal/auth"
	"github.com/mmcdole/stacks/internal/catalog"
	"github.com/mmcdole/stacks/internal/state"
)

// StateHandle wraps the state container with its external-change
// subscription.
type StateHandle struct {
	*state.Container
	stopSync func()
}

// Shutdown implements do.Shutdownable.
func (h *StateHandle) Shutdown() error {
	h.stopSync()
	return nil
}

// ProvideState hydrates the application state container.
func ProvideState(i do.Injector) (*StateHandle, error) {
	log := do.MustInvoke[*LoggerHandle](i)
	bridge := do.MustInvoke[*BridgeHandle](i)

	c := state.New(bridge.Bridge, state.WithLogger(log.Logger))
	return &StateHandle{Container: c, stopSync: c.SyncExternalChanges()}, nil
}

// ProvideDirectory provides the demo login directory.
func ProvideDirectory(i do.Injector) (*auth.Directory, error) {
	log := do.MustInvoke[*LoggerHandle](i)
	return auth.NewDirectory(auth.DemoAccounts(), log.Logger)
}

// ProvideCatalogClient provides the Open Library client.
func ProvideCatalogClient(i do.Injector) (*catalog.Client, error) {
	cfg := do.MustInvoke[*adapter.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	return catalog.NewClient(catalog.ClientConfig{
		BaseURL:           cfg.Catalog.BaseURL,
		CoversURL:         cfg.Catalog.CoversURL,
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
	}, log.Logger), nil
}

// ProvideCatalogService provides the trending and catalog fetch service.
func ProvideCatalogService(i do.Injector) (*catalog.Service, error) {
	cfg := do.MustInvoke[*adapter.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)
	client := do.MustInvoke[*catalog.Client](i)

	return catalog.NewService(client, catalog.ServiceConfig{
		Subject:       cfg.Catalog.Subject,
		TrendingURL:   cfg.Catalog.TrendingURL,
		TrendingLimit: cfg.Catalog.TrendingLimit,
		CatalogLimit:  cfg.Catalog.CatalogLimit,
	}, log.Logger), nil
}
