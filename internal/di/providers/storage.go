package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/mmcdole/stacks/internal/adapter"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/store"
)

// BridgeHandle wraps the state bridge with shutdown capability.
type BridgeHandle struct {
	*store.Bridge
}

// Shutdown implements do.Shutdownable.
func (h *BridgeHandle) Shutdown() error {
	return h.Close()
}

// ProvideBridge opens the configured backend and wraps it in a Bridge.
func ProvideBridge(i do.Injector) (*BridgeHandle, error) {
	cfg := do.MustInvoke[*adapter.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	kv, err := store.Open(store.Backend(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	log.Info("State store opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	return &BridgeHandle{Bridge: store.NewBridge(kv, log.Logger)}, nil
}

// WatcherHandle wraps the storage watcher with its context. Watcher is nil
// when watching is disabled or the store is not file backed.
type WatcherHandle struct {
	*store.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *WatcherHandle) Shutdown() error {
	h.cancel()
	if h.Watcher == nil {
		return nil
	}
	return h.Watcher.Close()
}

// Active reports whether changes by other instances are being watched
func (h *WatcherHandle) Active() bool {
	return h.Watcher != nil
}

// ProvideWatcher starts watching the store for changes by other instances.
func ProvideWatcher(i do.Injector) (*WatcherHandle, error) {
	cfg := do.MustInvoke[*adapter.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)
	bridge := do.MustInvoke[*BridgeHandle](i)

	ctx, cancel := context.WithCancel(context.Background())
	handle := &WatcherHandle{cancel: cancel}

	fb, ok := bridge.Store().(domain.FileBacked)
	if !cfg.Storage.Watch || !ok {
		log.Debug("Storage watcher disabled", "backend", cfg.Storage.Backend)
		return handle, nil
	}

	w, err := store.NewWatcher(fb.Path(), cfg.Storage.SettleDelay, bridge.NotifyExternalChange, log.Logger)
	if err != nil {
		// Sync still happens on focus
		log.Warn("Storage watcher unavailable", "path", fb.Path(), "error", err)
		return handle, nil
	}
	w.Start(ctx)
	handle.Watcher = w

	log.Info("Storage watcher started", "path", fb.Path())
	return handle, nil
}
