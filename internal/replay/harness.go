// Package replay runs recorded input streams through a fresh arbitrator on a
// fake clock, entirely in memory. Used to reproduce flapping reports offline
// and to pin down arbitration semantics in CI.
package replay

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielpatrickdp/deskpet/internal/arbiter"
	"github.com/danielpatrickdp/deskpet/internal/classify"
	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

// #region result-types

// StepResult captures the outcome of one replayed step.
type StepResult struct {
	Index   int         `json:"index"`
	AtMS    int64       `json:"at_ms"`
	Kind    string      `json:"kind"`
	Changed bool        `json:"changed"`
	Current statedef.ID `json:"current"`
}

// Summary aggregates a replay run.
type Summary struct {
	Steps       int             `json:"steps"`
	Transitions int             `json:"transitions"`
	Final       statedef.ID     `json:"final"`
	Events      []arbiter.Event `json:"events"`
}

// Mismatch is one failed expectation.
type Mismatch struct {
	Step int         `json:"step"`
	Want statedef.ID `json:"want"`
	Got  statedef.ID `json:"got"`
}

// #endregion result-types

// #region run

// Run replays the fixture against a fresh arbitrator. Deterministic: same
// fixture, same results.
func Run(f *Fixture) ([]StepResult, Summary, error) {
	if err := f.Validate(); err != nil {
		return nil, Summary{}, err
	}

	reg, err := statedef.NewDefaultRegistry()
	if err != nil {
		return nil, Summary{}, err
	}
	th := classify.DefaultThresholds()
	if f.Thresholds != nil {
		th = *f.Thresholds
	}
	cls, err := classify.NewClassifier(th, reg)
	if err != nil {
		return nil, Summary{}, err
	}

	clock := clockwork.NewFakeClock()
	opts := []arbiter.Option{arbiter.WithClock(clock)}
	if f.Fallback != "" {
		opts = append(opts, arbiter.WithFallback(f.Fallback))
	}
	arb, err := arbiter.New(reg, cls, opts...)
	if err != nil {
		return nil, Summary{}, err
	}

	var events []arbiter.Event
	arb.Subscribe(func(ev arbiter.Event) { events = append(events, ev) })

	results := make([]StepResult, 0, len(f.Steps))
	var elapsed int64
	for i, s := range f.Steps {
		if d := s.AtMS - elapsed; d > 0 {
			clock.Advance(time.Duration(d) * time.Millisecond)
			elapsed = s.AtMS
		}

		var changed bool
		switch s.Kind {
		case KindSystem:
			changed = arb.UpdateSystem(*s.Metrics)
		case KindTime:
			changed = arb.UpdateTime(s.State)
		case KindSpecial:
			changed = arb.SetSpecialDate(s.State)
		case KindClearSpecial:
			changed = arb.ClearSpecialDate()
		case KindInteraction:
			changed = arb.SetInteraction(s.State, time.Duration(s.TTLMS)*time.Millisecond)
		case KindClearInteraction:
			changed = arb.ClearInteraction()
		case KindRead:
			// Current() below doubles as the read.
		default:
			return nil, Summary{}, fmt.Errorf("step %d: unknown kind %q", i, s.Kind)
		}

		results = append(results, StepResult{
			Index:   i,
			AtMS:    s.AtMS,
			Kind:    s.Kind,
			Changed: changed,
			Current: arb.Current(),
		})
	}

	summary := Summary{
		Steps:       len(f.Steps),
		Transitions: len(events),
		Final:       arb.Current(),
		Events:      events,
	}
	return results, summary, nil
}

// #endregion run

// #region verify

// Verify checks a run's results against the fixture's expectations.
func Verify(f *Fixture, results []StepResult) []Mismatch {
	var out []Mismatch
	for _, e := range f.Expected {
		if e.Step >= len(results) {
			out = append(out, Mismatch{Step: e.Step, Want: e.Current})
			continue
		}
		if got := results[e.Step].Current; got != e.Current {
			out = append(out, Mismatch{Step: e.Step, Want: e.Current, Got: got})
		}
	}
	return out
}

// #endregion verify
