// Package engine owns per-display calibration state and schedules gamma
// table writes so that rapid requests coalesce into at most one hardware
// write per display per tick.
package engine

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/tintd/tintd/display"
	"github.com/tintd/tintd/gamma"
)

// DefaultPeriod is the apply cycle tick period.
const DefaultPeriod = 100 * time.Millisecond

// Adjustment is the target state for one display.
type Adjustment struct {
	Brightness float32 // [gamma.MinBrightness, 1]
	Filter     gamma.Filter
	Intensity  float32 // [0, 1]
}

// Default is the state of a display that has never been adjusted.
var Default = Adjustment{Brightness: 1, Filter: gamma.FilterNone, Intensity: 0}

// Engine computes and applies gamma tables for the displays of a single
// backend. It is safe for concurrent usage. All methods that touch hardware
// contain failures silently: one misbehaving display never affects others.
type Engine struct {
	backend display.Backend
	logger  *slog.Logger
	period  time.Duration

	mu          sync.Mutex
	baselines   map[display.ID]*gamma.Table
	pending     map[display.ID]Adjustment
	lastApplied map[display.ID]Adjustment
	running     bool
	stop        chan struct{}
}

// New creates an engine applying adjustments through backend and captures
// baselines for the currently connected displays. If logger is not nil, it
// is used for logs from this package. If period is zero, DefaultPeriod is
// used.
func New(backend display.Backend, period time.Duration, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	e := &Engine{
		backend:     backend,
		logger:      logger,
		period:      period,
		baselines:   make(map[display.ID]*gamma.Table),
		pending:     make(map[display.ID]Adjustment),
		lastApplied: make(map[display.ID]Adjustment),
	}
	e.CaptureBaselines()
	return e
}

// CaptureBaselines reads and stores the unmodified gamma table of every
// connected display that does not have one captured yet. Displays whose
// table cannot be read are excluded from future adjustments.
func (e *Engine) CaptureBaselines() {
	ids, err := e.backend.Displays()
	if err != nil {
		e.logger.Warn("failed to enumerate displays", "error", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range ids {
		if _, ok := e.baselines[id]; ok {
			continue
		}
		t, err := e.backend.ReadGamma(id)
		if err != nil {
			e.logger.Warn("failed to read gamma table, display excluded", "display", id, "error", err)
			continue
		}
		e.baselines[id] = t
		e.logger.Debug("captured baseline", "display", id, "size", t.Size())
	}
}

// Displays returns the displays with a captured baseline, sorted by name.
func (e *Engine) Displays() []display.ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]display.ID, 0, len(e.baselines))
	for id := range e.baselines {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Request records the desired adjustment for a display, overwriting any
// not-yet-applied request for it, and arms the apply cycle if it is idle.
// Brightness is clamped to [gamma.MinBrightness, 1] and intensity to [0, 1]
// before being stored. The adjustment is materialized by the next cycle
// tick, at most one period later.
func (e *Engine) Request(id display.ID, brightness float32, filter gamma.Filter, intensity float32) {
	adj := Adjustment{
		Brightness: gamma.Clamp(brightness, gamma.MinBrightness, 1),
		Filter:     filter,
		Intensity:  gamma.Clamp(intensity, 0, 1),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending[id] = adj
	if !e.running {
		e.running = true
		e.stop = make(chan struct{})
		go e.cycle(e.stop)
	}
}

// cycle runs the periodic apply loop until stopped. Idling out (a tick
// finding nothing pending) is decided inside tick, under the same lock as
// every state mutation, so a concurrent Request either lands before the
// emptiness check or observes running == false and re-arms the cycle.
func (e *Engine) cycle(stop chan struct{}) {
	ticker := time.NewTicker(e.period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if !e.tick(stop) {
				return
			}
		case <-stop:
			return
		}
	}
}

// tick runs one apply pass and reports whether the cycle should keep
// running.
func (e *Engine) tick(stop chan struct{}) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stop != stop {
		// A newer cycle took over after Close.
		return false
	}
	if len(e.pending) == 0 {
		e.running = false
		return false
	}
	e.applyLocked()
	return true
}

// applyLocked materializes every pending adjustment that differs from the
// display's last applied state, then clears the pending set.
func (e *Engine) applyLocked() {
	for id, adj := range e.pending {
		last, ok := e.lastApplied[id]
		if !ok {
			last = Default
		}
		if adj == last {
			continue
		}
		baseline, ok := e.baselines[id]
		if !ok {
			e.logger.Debug("no baseline, skipping write", "display", id)
			continue
		}
		t := gamma.Curve(baseline, adj.Brightness, adj.Filter, adj.Intensity)
		if err := e.backend.WriteGamma(id, t); err != nil {
			// Not rolled back: retry has no clear signal, and the next
			// request will simply try again with a fresh table.
			e.logger.Warn("failed to write gamma table", "display", id, "error", err)
		}
		e.lastApplied[id] = adj
	}
	clear(e.pending)
}

// Reset writes the display's exact captured baseline back to hardware and
// returns its state to the defaults. The write is immediate and bypasses
// the curve computation and the pending queue; any pending request for the
// display is discarded.
func (e *Engine) Reset(id display.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked(id)
}

// ResetAll resets every display with a captured baseline.
func (e *Engine) ResetAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id := range e.baselines {
		e.resetLocked(id)
	}
}

func (e *Engine) resetLocked(id display.ID) {
	delete(e.pending, id)
	if baseline, ok := e.baselines[id]; ok {
		if err := e.backend.WriteGamma(id, baseline); err != nil {
			e.logger.Warn("failed to restore baseline", "display", id, "error", err)
		}
	} else {
		e.logger.Debug("no baseline, skipping restore", "display", id)
	}
	e.lastApplied[id] = Default
}

// Refresh re-pushes the current adjustment of every adjusted display,
// recomputed from its baseline. Mode switches reset hardware gamma tables,
// so this runs after display change notifications.
func (e *Engine) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, adj := range e.lastApplied {
		if adj == Default {
			continue
		}
		baseline, ok := e.baselines[id]
		if !ok {
			continue
		}
		t := gamma.Curve(baseline, adj.Brightness, adj.Filter, adj.Intensity)
		if err := e.backend.WriteGamma(id, t); err != nil {
			e.logger.Warn("failed to refresh gamma table", "display", id, "error", err)
		}
	}
}

// State returns the display's last applied adjustment, or the defaults if
// it has never been adjusted.
func (e *Engine) State(id display.ID) Adjustment {
	e.mu.Lock()
	defer e.mu.Unlock()
	adj, ok := e.lastApplied[id]
	if !ok {
		return Default
	}
	adj.Brightness = gamma.Clamp(adj.Brightness, gamma.MinBrightness, 1)
	return adj
}

// Brightness returns the display's last applied brightness.
func (e *Engine) Brightness(id display.ID) float32 {
	return e.State(id).Brightness
}

// FilterColor returns the display's last applied filter.
func (e *Engine) FilterColor(id display.ID) gamma.Filter {
	return e.State(id).Filter
}

// FilterIntensity returns the display's last applied filter intensity.
func (e *Engine) FilterIntensity(id display.ID) float32 {
	return e.State(id).Intensity
}

// Close stops the apply cycle if it is running. It does not restore
// baselines; use ResetAll first to hand the displays back unmodified.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.running = false
		close(e.stop)
	}
}
