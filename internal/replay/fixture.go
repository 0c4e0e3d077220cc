package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/deskpet/internal/classify"
	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

// #region fixture-types

// Step kinds accepted in a fixture.
const (
	KindSystem           = "system"
	KindTime             = "time"
	KindSpecial          = "special"
	KindClearSpecial     = "clear_special"
	KindInteraction      = "interaction"
	KindClearInteraction = "clear_interaction"
	KindRead             = "read"
)

// Step is one timed input to the arbitrator. AtMS is an offset from run
// start on the harness clock; steps must be listed in non-decreasing order.
type Step struct {
	AtMS    int64             `json:"at_ms"`
	Kind    string            `json:"kind"`
	Metrics *classify.Metrics `json:"metrics,omitempty"`
	State   statedef.ID       `json:"state,omitempty"`
	TTLMS   int64             `json:"ttl_ms,omitempty"`
}

// Expectation pins the visible state after a given step index.
type Expectation struct {
	Step    int         `json:"step"`
	Current statedef.ID `json:"current"`
}

// Fixture is the top-level JSON structure for a replay run.
type Fixture struct {
	Description string               `json:"description"`
	Thresholds  *classify.Thresholds `json:"thresholds,omitempty"`
	Fallback    statedef.ID          `json:"fallback,omitempty"`
	Steps       []Step               `json:"steps"`
	Expected    []Expectation        `json:"expected,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks step ordering and shape before a run starts.
func (f *Fixture) Validate() error {
	var prev int64
	for i, s := range f.Steps {
		if s.AtMS < prev {
			return fmt.Errorf("step %d: at_ms %d before previous step", i, s.AtMS)
		}
		prev = s.AtMS
		switch s.Kind {
		case KindSystem:
			if s.Metrics == nil {
				return fmt.Errorf("step %d: system step needs metrics", i)
			}
		case KindTime, KindSpecial:
			if s.State == "" {
				return fmt.Errorf("step %d: %s step needs a state", i, s.Kind)
			}
		case KindInteraction:
			if s.State == "" {
				return fmt.Errorf("step %d: interaction step needs a state", i)
			}
		case KindClearSpecial, KindClearInteraction, KindRead:
		default:
			return fmt.Errorf("step %d: unknown kind %q", i, s.Kind)
		}
	}
	for _, e := range f.Expected {
		if e.Step < 0 || e.Step >= len(f.Steps) {
			return fmt.Errorf("expectation references step %d of %d", e.Step, len(f.Steps))
		}
	}
	return nil
}

// #endregion fixture-loader
