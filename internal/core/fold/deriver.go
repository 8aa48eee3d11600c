package fold

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/utils"
)

// Proposal is a region set derived in the background for the buffer at
// Revision. It may only be installed while the buffer is still at that
// revision.
type Proposal struct {
	Revision uint64
	Regions  []Region
}

// Deriver re-derives regions off the editing goroutine. Requests are
// debounced and a newer request cancels any derivation still running, so
// only the latest content is ever proposed.
type Deriver struct {
	mode     Mode
	tabWidth int
	delay    time.Duration

	debouncer utils.Debouncer

	mu     sync.Mutex
	cancel context.CancelFunc
	latest *Proposal
	ready  chan struct{}
	closed bool
}

// NewDeriver creates a deriver using the given mode and debounce delay.
func NewDeriver(mode Mode, tabWidth int, delay time.Duration) *Deriver {
	return &Deriver{
		mode:     mode,
		tabWidth: tabWidth,
		delay:    delay,
		ready:    make(chan struct{}, 1),
	}
}

// Request schedules a derivation of content taken at revision.
func (d *Deriver) Request(content string, revision uint64) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	d.debouncer.Debounce(d.delay, func() {
		d.run(ctx, content, revision)
	})
}

func (d *Deriver) run(ctx context.Context, content string, revision uint64) {
	regions, err := derive(ctx, content, d.mode, d.tabWidth)
	if err != nil {
		logger.DebugTagf("fold", "Derivation for revision %d abandoned: %v", revision, err)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if ctx.Err() != nil || d.closed {
		return
	}
	d.latest = &Proposal{Revision: revision, Regions: regions}
	select {
	case d.ready <- struct{}{}:
	default:
	}
}

// Ready is signalled when a proposal becomes available.
func (d *Deriver) Ready() <-chan struct{} {
	return d.ready
}

// Poll takes the latest proposal, if any.
func (d *Deriver) Poll() (Proposal, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.latest == nil {
		return Proposal{}, false
	}
	p := *d.latest
	d.latest = nil
	return p, true
}

// Close cancels pending and running work. Later requests are ignored.
func (d *Deriver) Close() {
	d.debouncer.Stop()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.cancel != nil {
		d.cancel()
	}
	d.latest = nil
}

// Apply installs a proposal if it was derived from the current revision.
// A stale proposal is discarded and false is returned; the caller should
// request a new derivation.
func (m *Model) Apply(p Proposal, currentRevision uint64) bool {
	if p.Revision != currentRevision {
		logger.DebugTagf("fold", "Discarding stale proposal (revision %d, buffer at %d)", p.Revision, currentRevision)
		return false
	}
	m.install(p.Regions)
	return true
}
