package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/stacks/internal/catalog"
	"github.com/mmcdole/stacks/internal/state"
)

// fetchTimeout bounds a single catalog request
const fetchTimeout = 30 * time.Second

// FetchTrendingCmd loads the landing page's trending works
func FetchTrendingCmd(svc *catalog.Service, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return TrendingLoadedMsg{Gen: gen, Result: svc.Trending(ctx)}
	}
}

// FetchCatalogCmd loads the catalog page's works
func FetchCatalogCmd(svc *catalog.Service, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return CatalogLoadedMsg{Gen: gen, Result: svc.Catalog(ctx)}
	}
}

// WaitForSnapshotCmd blocks until the container publishes a snapshot.
// Returns nil when the channel is closed.
func WaitForSnapshotCmd(ch <-chan state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: s}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
