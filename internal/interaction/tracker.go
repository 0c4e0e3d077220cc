package interaction

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

// #region record

// Record is one live transient interaction candidate with an absolute expiry
// deadline. At most one record exists at a time.
type Record struct {
	ID       statedef.ID
	Priority int
	Deadline time.Time
}

// #endregion record

// #region tracker

// Tracker holds the transient Interaction candidate. Expiry is a lazy
// comparison against the injected clock on every read; there is no background
// timer, so destroying a Tracker never leaves a dangling callback.
type Tracker struct {
	mu       sync.Mutex
	registry *statedef.Registry
	clock    clockwork.Clock
	rec      *Record
}

// NewTracker creates a tracker over the given registry.
// clock may be nil, in which case the real clock is used.
func NewTracker(reg *statedef.Registry, clock clockwork.Clock) *Tracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Tracker{registry: reg, clock: clock}
}

// #endregion tracker

// #region report

// Report stores a new interaction candidate with deadline now+ttl.
// The new candidate replaces an existing one only when its priority is >= the
// existing record's, or the existing record has already expired; a low-priority
// hover must not truncate a higher-priority click's display time.
// A ttl <= 0 is an immediate no-op. Returns whether the candidate was stored.
func (t *Tracker) Report(id statedef.ID, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	def, ok := t.registry.Lookup(id)
	if !ok || def.Category != statedef.CategoryInteraction {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if t.rec != nil && now.Before(t.rec.Deadline) && def.Priority < t.rec.Priority {
		return false
	}
	t.rec = &Record{ID: id, Priority: def.Priority, Deadline: now.Add(ttl)}
	return true
}

// #endregion report

// #region current

// Current returns the live candidate, evicting it first if expired.
func (t *Tracker) Current() (statedef.ID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rec == nil {
		return "", false
	}
	if !t.clock.Now().Before(t.rec.Deadline) {
		t.rec = nil
		return "", false
	}
	return t.rec.ID, true
}

// Clear drops any live candidate.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.rec = nil
	t.mu.Unlock()
}

// #endregion current
