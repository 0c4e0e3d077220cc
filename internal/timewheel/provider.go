// Package timewheel derives the Time and SpecialDate candidates from the
// wall clock. It is a producer: it pushes into the arbitrator and holds no
// arbitration state of its own.
package timewheel

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

// #region special-date

// SpecialDate marks one calendar day that overrides the normal time period.
type SpecialDate struct {
	Month time.Month  `yaml:"month"`
	Day   int         `yaml:"day"`
	State statedef.ID `yaml:"state"`
}

// DefaultSpecialDates returns the built-in calendar.
func DefaultSpecialDates() []SpecialDate {
	return []SpecialDate{
		{time.January, 1, statedef.NewYear},
	}
}

// #endregion special-date

// #region provider

// Provider computes time-period and special-date states.
type Provider struct {
	clock    clockwork.Clock
	specials []SpecialDate
}

// NewProvider creates a provider. clock may be nil for the real clock.
func NewProvider(specials []SpecialDate, clock clockwork.Clock) *Provider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Provider{clock: clock, specials: specials}
}

// #endregion provider

// #region period

// PeriodOf maps an instant to its time-period state:
// MORNING [5,11), NOON [11,13), AFTERNOON [13,17), EVENING [17,22),
// NIGHT otherwise.
func PeriodOf(t time.Time) statedef.ID {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return statedef.Morning
	case h >= 11 && h < 13:
		return statedef.Noon
	case h >= 13 && h < 17:
		return statedef.Afternoon
	case h >= 17 && h < 22:
		return statedef.Evening
	default:
		return statedef.Night
	}
}

// SpecialFor returns the special-date state for an instant, if any.
func (p *Provider) SpecialFor(t time.Time) (statedef.ID, bool) {
	for _, s := range p.specials {
		if t.Month() == s.Month && t.Day() == s.Day {
			return s.State, true
		}
	}
	return "", false
}

// #endregion period

// #region apply

// Target is the slice of the arbitrator the provider drives.
type Target interface {
	UpdateTime(id statedef.ID) bool
	SetSpecialDate(id statedef.ID) bool
	ClearSpecialDate() bool
}

// Apply pushes the current time period and special-date signal into the
// target. Called from the daemon scheduler on every tick.
func (p *Provider) Apply(target Target) {
	now := p.clock.Now()
	target.UpdateTime(PeriodOf(now))
	if id, ok := p.SpecialFor(now); ok {
		target.SetSpecialDate(id)
	} else {
		target.ClearSpecialDate()
	}
}

// #endregion apply
