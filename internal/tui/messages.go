package tui

import (
	"github.com/mmcdole/stacks/internal/catalog"
	"github.com/mmcdole/stacks/internal/state"
)

// TrendingLoadedMsg is sent when the landing page's trending works arrive.
// Gen identifies the request so stale responses can be dropped.
type TrendingLoadedMsg struct {
	Gen    int
	Result catalog.Result
}

// CatalogLoadedMsg is sent when the catalog page's works arrive
type CatalogLoadedMsg struct {
	Gen    int
	Result catalog.Result
}

// SnapshotMsg carries a state snapshot published by the container
type SnapshotMsg struct {
	Snapshot state.Snapshot
}

// TickMsg drives the loading spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar if Seq is still current
type ClearStatusMsg struct {
	Seq int
}
