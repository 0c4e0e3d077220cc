package arbiter

import (
	"time"

	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

// #region event

// Event is emitted exactly once per resolved transition, never for a
// recomputation that yields the same winner.
type Event struct {
	Previous statedef.ID `json:"previous"`
	Current  statedef.ID `json:"current"`
	At       time.Time   `json:"at"`
}

// #endregion event

// #region candidate

// candidate is one live entry in the active state set: at most one per
// category at any instant.
type candidate struct {
	id       statedef.ID
	priority int
	at       time.Time
}

// #endregion candidate

// #region observer

// Observer receives internal arbitration counters. All methods are called
// synchronously from inside the update path and must be cheap.
type Observer interface {
	UpdateApplied(cat statedef.Category)
	TransitionEmitted(ev Event)
	UnknownStateRejected(id statedef.ID)
	InteractionEvicted(id statedef.ID)
}

// nopObserver is the default when no observer is wired.
type nopObserver struct{}

func (nopObserver) UpdateApplied(statedef.Category)  {}
func (nopObserver) TransitionEmitted(Event)          {}
func (nopObserver) UnknownStateRejected(statedef.ID) {}
func (nopObserver) InteractionEvicted(statedef.ID)   {}

// #endregion observer
