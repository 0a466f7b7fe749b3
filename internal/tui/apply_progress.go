package tui

import (
	"sync"
)

// ApplyUpdateType names the kind of per-file progress update
type ApplyUpdateType string

const (
	ApplyUpdateAdded   ApplyUpdateType = "added"
	ApplyUpdateWritten ApplyUpdateType = "written"
	ApplyUpdateFailed  ApplyUpdateType = "failed"
)

// ApplyUpdate is one file operation reported while a merge plan is applied
type ApplyUpdate struct {
	Type       ApplyUpdateType
	Path       string
	Source     string // branch an added file came from
	Conflicted bool   // written file contains conflict markers
	Error      error
}

// ChannelApplyReporter implements apply.ProgressReporter using channels
type ChannelApplyReporter struct {
	updates chan ApplyUpdate
	once    sync.Once
}

// NewChannelApplyReporter creates a new channel-based progress reporter
func NewChannelApplyReporter() *ChannelApplyReporter {
	return &ChannelApplyReporter{
		updates: make(chan ApplyUpdate, 100),
	}
}

// Updates returns the channel for receiving updates
func (r *ChannelApplyReporter) Updates() <-chan ApplyUpdate {
	return r.updates
}

// Close closes the update channel (safe to call multiple times)
func (r *ChannelApplyReporter) Close() {
	r.once.Do(func() {
		close(r.updates)
	})
}

// FileAdded reports that a file was copied from a branch
func (r *ChannelApplyReporter) FileAdded(path string, source string) {
	r.updates <- ApplyUpdate{
		Type:   ApplyUpdateAdded,
		Path:   path,
		Source: source,
	}
}

// FileWritten reports that planned content was written
func (r *ChannelApplyReporter) FileWritten(path string, conflicted bool) {
	r.updates <- ApplyUpdate{
		Type:       ApplyUpdateWritten,
		Path:       path,
		Conflicted: conflicted,
	}
}

// FileFailed reports that a file operation failed
func (r *ChannelApplyReporter) FileFailed(path string, err error) {
	r.updates <- ApplyUpdate{
		Type:  ApplyUpdateFailed,
		Path:  path,
		Error: err,
	}
}
