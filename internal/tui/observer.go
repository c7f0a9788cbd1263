package tui

import "github.com/mmcdole/stacks/internal/state"

// ChannelObserver adapts container notifications to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan state.Snapshot
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(size int) *ChannelObserver {
	return &ChannelObserver{ch: make(chan state.Snapshot, size)}
}

// OnSnapshot sends the snapshot to the channel. When the channel is full
// the oldest pending snapshot is replaced, so the view always catches up to
// the latest state.
func (o *ChannelObserver) OnSnapshot(s state.Snapshot) {
	for {
		select {
		case o.ch <- s:
			return
		default:
		}
		select {
		case <-o.ch:
		default:
		}
	}
}

// Snapshots returns the receive side of the channel
func (o *ChannelObserver) Snapshots() <-chan state.Snapshot {
	return o.ch
}
