package querycache

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSweepInterval is used when a Housekeeper is given no interval.
const DefaultSweepInterval = time.Minute

// Sweeper drops expired entries. MemoryStore implements it; Redis expires
// keys on its own.
type Sweeper interface {
	Sweep() int
}

// Housekeeper sweeps a store on a fixed interval so entries that are never
// read again do not pile up.
type Housekeeper struct {
	Store    Sweeper
	Logger   *slog.Logger
	Interval time.Duration

	once    sync.Once
	started atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewHousekeeper returns a stopped Housekeeper. A non-positive interval
// falls back to DefaultSweepInterval.
func NewHousekeeper(store Sweeper, logger *slog.Logger, interval time.Duration) *Housekeeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Housekeeper{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweep loop in the background. Call it at most once.
func (h *Housekeeper) Start() {
	h.started.Store(true)
	go h.run()
	h.Logger.Debug("query cache housekeeping started", "interval", h.Interval)
}

// Stop ends the loop and waits for a sweep in progress. It is safe to call
// more than once, and before Start.
func (h *Housekeeper) Stop() {
	h.once.Do(func() {
		close(h.stopCh)
		if h.started.Load() {
			<-h.doneCh
		}
	})
}

func (h *Housekeeper) run() {
	defer close(h.doneCh)

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := h.Store.Sweep(); n > 0 {
				h.Logger.Debug("swept expired query cache entries", "count", n)
			}
		case <-h.stopCh:
			return
		}
	}
}
