package arbiter

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielpatrickdp/deskpet/internal/classify"
	"github.com/danielpatrickdp/deskpet/internal/interaction"
	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

// #region arbitrator

// Arbitrator resolves candidates from the four state categories into the one
// externally visible state. It is the single writer of the active state set:
// producers funnel through UpdateSystem / UpdateTime / SetSpecialDate /
// SetInteraction, which serialize on an internal mutex and apply the
// resolution algorithm atomically.
//
// The active set is never exposed by reference; consumers see only
// Current() and the emitted Events.
type Arbitrator struct {
	mu         sync.Mutex
	registry   *statedef.Registry
	classifier *classify.Classifier
	tracker    *interaction.Tracker
	clock      clockwork.Clock
	observer   Observer

	// active holds SpecialDate/System/Time candidates; the Interaction slot
	// is owned by the tracker, which enforces TTL and replacement rules.
	active          map[statedef.Category]candidate
	lastInteraction statedef.ID
	fallback        statedef.ID
	current         statedef.ID

	subscribers []func(Event)
}

// Option configures an Arbitrator.
type Option func(*Arbitrator)

// WithClock injects a clock; tests use a fake.
func WithClock(c clockwork.Clock) Option {
	return func(a *Arbitrator) { a.clock = c }
}

// WithObserver wires an arbitration observer (telemetry).
func WithObserver(o Observer) Option {
	return func(a *Arbitrator) { a.observer = o }
}

// WithFallback overrides the state reported when no category has a live
// candidate. Default is SYSTEM_IDLE.
func WithFallback(id statedef.ID) Option {
	return func(a *Arbitrator) { a.fallback = id }
}

// New creates an arbitrator in the SYSTEM_IDLE state.
// Registry and classifier misconfiguration has already been rejected by their
// constructors; New only checks wiring.
func New(reg *statedef.Registry, cls *classify.Classifier, opts ...Option) (*Arbitrator, error) {
	if reg == nil {
		return nil, fmt.Errorf("arbiter: nil registry")
	}
	if cls == nil {
		return nil, fmt.Errorf("arbiter: nil classifier")
	}
	a := &Arbitrator{
		registry:   reg,
		classifier: cls,
		clock:      clockwork.NewRealClock(),
		observer:   nopObserver{},
		active:     make(map[statedef.Category]candidate, len(statedef.Categories)),
		fallback:   statedef.SystemIdle,
	}
	for _, opt := range opts {
		opt(a)
	}
	if _, ok := reg.Lookup(a.fallback); !ok {
		return nil, fmt.Errorf("arbiter: fallback state %q not registered", a.fallback)
	}
	a.current = a.fallback
	a.tracker = interaction.NewTracker(reg, a.clock)
	return a, nil
}

// #endregion arbitrator

// #region subscribe

// Subscribe registers a change callback. Callbacks run synchronously, in
// registration order, from inside the update that caused the transition;
// they must be fast and must not call back into the Arbitrator.
func (a *Arbitrator) Subscribe(fn func(Event)) {
	a.mu.Lock()
	a.subscribers = append(a.subscribers, fn)
	a.mu.Unlock()
}

// #endregion subscribe

// #region update-system

// UpdateSystem classifies a fresh metrics snapshot into the System candidate
// and re-resolves. Returns whether the visible state changed.
func (a *Arbitrator) UpdateSystem(m classify.Metrics) bool {
	id := a.classifier.Classify(m)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.setCandidateLocked(statedef.CategorySystem, id)
	return a.resolveLocked()
}

// #endregion update-system

// #region update-time

// UpdateTime feeds a new Time candidate from the time provider.
func (a *Arbitrator) UpdateTime(id statedef.ID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.acceptLocked(id, statedef.CategoryTime) {
		return false
	}
	a.setCandidateLocked(statedef.CategoryTime, id)
	return a.resolveLocked()
}

// #endregion update-time

// #region special-date

// SetSpecialDate sets the SpecialDate candidate.
func (a *Arbitrator) SetSpecialDate(id statedef.ID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.acceptLocked(id, statedef.CategorySpecialDate) {
		return false
	}
	a.setCandidateLocked(statedef.CategorySpecialDate, id)
	return a.resolveLocked()
}

// ClearSpecialDate removes the SpecialDate candidate.
func (a *Arbitrator) ClearSpecialDate() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.active, statedef.CategorySpecialDate)
	return a.resolveLocked()
}

// #endregion special-date

// #region interaction

// SetInteraction feeds a transient Interaction candidate with expiry. The
// tracker evicts anything already expired before the new candidate is
// considered, so a fresh report always wins over an expired one.
func (a *Arbitrator) SetInteraction(id statedef.ID, ttl time.Duration) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	def, ok := a.registry.Lookup(id)
	if !ok || def.Category != statedef.CategoryInteraction {
		log.Printf("[ARB] unknown interaction state %q, ignoring", id)
		a.observer.UnknownStateRejected(id)
		return false
	}
	if a.tracker.Report(id, ttl) {
		a.observer.UpdateApplied(statedef.CategoryInteraction)
	}
	return a.resolveLocked()
}

// ClearInteraction drops any live Interaction candidate immediately.
func (a *Arbitrator) ClearInteraction() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracker.Clear()
	return a.resolveLocked()
}

// #endregion interaction

// #region current

// Current returns the externally visible state. It never blocks on I/O or
// timers; it performs the same lazy expiry resolution as the update entry
// points so a read never observes an expired interaction.
func (a *Arbitrator) Current() statedef.ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resolveLocked()
	return a.current
}

// #endregion current

// #region resolution

// acceptLocked validates an incoming id against the registry. Unknown or
// miscategorized ids are logged and ignored; the category's existing
// candidate is left untouched.
func (a *Arbitrator) acceptLocked(id statedef.ID, want statedef.Category) bool {
	def, ok := a.registry.Lookup(id)
	if !ok {
		log.Printf("[ARB] unknown state %q, ignoring", id)
		a.observer.UnknownStateRejected(id)
		return false
	}
	if def.Category != want {
		log.Printf("[ARB] state %q belongs to %s, not %s, ignoring", id, def.Category, want)
		a.observer.UnknownStateRejected(id)
		return false
	}
	return true
}

func (a *Arbitrator) setCandidateLocked(cat statedef.Category, id statedef.ID) {
	a.active[cat] = candidate{
		id:       id,
		priority: a.registry.Priority(id),
		at:       a.clock.Now(),
	}
	a.observer.UpdateApplied(cat)
}

// resolveLocked runs the resolution algorithm: evict expired interaction,
// walk categories in fixed precedence order, first live candidate wins,
// fall back when nothing is live. Emits exactly one event per real transition.
func (a *Arbitrator) resolveLocked() bool {
	var winner statedef.ID

	if id, ok := a.tracker.Current(); ok {
		winner = id
		a.lastInteraction = id
	} else {
		if a.lastInteraction != "" {
			a.observer.InteractionEvicted(a.lastInteraction)
			a.lastInteraction = ""
		}
		winner = a.firstLiveLocked()
	}

	if winner == a.current {
		return false
	}

	ev := Event{Previous: a.current, Current: winner, At: a.clock.Now()}
	a.current = winner
	a.observer.TransitionEmitted(ev)
	log.Printf("[ARB] %s -> %s", ev.Previous, ev.Current)
	for _, fn := range a.subscribers {
		fn(ev)
	}
	return true
}

// firstLiveLocked walks SpecialDate > System > Time.
func (a *Arbitrator) firstLiveLocked() statedef.ID {
	for _, cat := range statedef.Categories {
		if cat == statedef.CategoryInteraction {
			continue
		}
		if c, ok := a.active[cat]; ok {
			return c.id
		}
	}
	return a.fallback
}

// #endregion resolution
