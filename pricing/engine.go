package pricing

import (
	"sync"
	"time"
)

const (
	// ViewWindow is the span within which repeated views accumulate.
	ViewWindow = 5 * time.Minute
	// StaleAfter is the idle span after which a view record is dropped
	// and its surge reverted.
	StaleAfter = 10 * time.Minute
	// SweepInterval is how often the background sweep runs.
	SweepInterval = 5 * time.Second

	surgeThreshold  = 3
	baseMultiplier  = 1.0
	surgeMultiplier = 1.1
)

type viewRecord struct {
	count      int
	lastViewed time.Time
}

// Event describes a multiplier transition for one flight.
type Event struct {
	FlightID   string  `json:"flightId"`
	Multiplier float64 `json:"priceMultiplier"`
}

// Engine tracks per-flight views within a session and derives a price
// multiplier: three views inside a five-minute window raise the
// multiplier to 1.1, and ten minutes without a view revert it. State is
// session-local and discarded with the engine.
type Engine struct {
	mu     sync.Mutex
	known  map[string]bool
	views  map[string]viewRecord
	surged map[string]bool

	now    func() time.Time
	notify func(Event)

	stopOnce sync.Once
	stop     chan struct{}
}

// NewEngine creates an engine for the given catalog. IDs not in the
// catalog are ignored by RecordView.
func NewEngine(flightIDs []string) *Engine {
	known := make(map[string]bool, len(flightIDs))
	for _, id := range flightIDs {
		known[id] = true
	}
	return &Engine{
		known:  known,
		views:  make(map[string]viewRecord),
		surged: make(map[string]bool),
		now:    time.Now,
		stop:   make(chan struct{}),
	}
}

// SetNotifier registers a callback invoked on every surge or decay
// transition. Call before Start.
func (e *Engine) SetNotifier(fn func(Event)) {
	e.notify = fn
}

// RecordView counts one view of the flight. Unknown IDs are a no-op.
// The view that brings the in-window count to three applies the surge;
// further views never stack it.
func (e *Engine) RecordView(flightID string) {
	e.mu.Lock()

	if !e.known[flightID] {
		e.mu.Unlock()
		return
	}

	now := e.now()
	rec, ok := e.views[flightID]
	if ok && now.Sub(rec.lastViewed) <= ViewWindow {
		rec.count++
	} else {
		rec.count = 1
	}
	rec.lastViewed = now
	e.views[flightID] = rec

	var fired *Event
	if rec.count >= surgeThreshold && !e.surged[flightID] {
		e.surged[flightID] = true
		fired = &Event{FlightID: flightID, Multiplier: surgeMultiplier}
	}
	e.mu.Unlock()

	if fired != nil && e.notify != nil {
		e.notify(*fired)
	}
}

// Multiplier returns the current multiplier for the flight (1.0 when no
// surge is active or the flight is unknown).
func (e *Engine) Multiplier(flightID string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.surged[flightID] {
		return surgeMultiplier
	}
	return baseMultiplier
}

// Sweep drops every view record idle for longer than StaleAfter and
// reverts its surge. This is the only decay path.
func (e *Engine) Sweep(now time.Time) {
	e.mu.Lock()

	var reverted []Event
	for id, rec := range e.views {
		if now.Sub(rec.lastViewed) <= StaleAfter {
			continue
		}
		delete(e.views, id)
		if e.surged[id] {
			delete(e.surged, id)
			reverted = append(reverted, Event{FlightID: id, Multiplier: baseMultiplier})
		}
	}
	e.mu.Unlock()

	if e.notify != nil {
		for _, ev := range reverted {
			e.notify(ev)
		}
	}
}

// Start runs the periodic sweep until Stop is called.
func (e *Engine) Start() {
	go func() {
		ticker := time.NewTicker(SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.Sweep(e.now())
			case <-e.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}
