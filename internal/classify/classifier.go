package classify

import (
	"fmt"

	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

// #region classifier

// Classifier converts a metrics snapshot into the single highest-priority
// system state candidate. Pure function of input + config; no side effects.
type Classifier struct {
	thresholds Thresholds
	registry   *statedef.Registry
}

// NewClassifier validates the thresholds and binds the priority registry.
func NewClassifier(th Thresholds, reg *statedef.Registry) (*Classifier, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("classifier: nil registry")
	}
	return &Classifier{thresholds: th, registry: reg}, nil
}

// Thresholds returns the active boundary set.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// #endregion classifier

// #region classify

// Classify evaluates all five metrics against the thresholds, producing zero
// or more candidate sub-states, and returns the highest-priority one.
// Out-of-range inputs are clamped to [0,100], not rejected: sensors may
// report transient nonsense.
func (c *Classifier) Classify(m Metrics) statedef.ID {
	cpu := clampPct(m.CPU)
	mem := clampPct(m.Memory)
	gpu := clampPct(m.GPU)
	disk := clampPct(m.Disk)
	net := clampPct(m.Network)

	var candidates []statedef.ID

	th := c.thresholds
	switch {
	case cpu >= th.CPU.Critical:
		candidates = append(candidates, statedef.CPUCritical)
	case cpu >= th.CPU.VeryHeavy:
		candidates = append(candidates, statedef.VeryHeavyLoad)
	case cpu >= th.CPU.Heavy:
		candidates = append(candidates, statedef.HeavyLoad)
	case cpu >= th.CPU.Moderate:
		candidates = append(candidates, statedef.ModerateLoad)
	case cpu >= th.CPU.Light:
		candidates = append(candidates, statedef.LightLoad)
	}

	switch {
	case mem >= th.Memory.Critical:
		candidates = append(candidates, statedef.MemoryCritical)
	case mem >= th.Memory.Warning:
		candidates = append(candidates, statedef.MemoryWarning)
	}

	switch {
	case gpu >= th.GPU.VeryBusy:
		candidates = append(candidates, statedef.GPUVeryBusy)
	case gpu >= th.GPU.Busy:
		candidates = append(candidates, statedef.GPUBusy)
	}

	switch {
	case disk >= th.Disk.VeryBusy:
		candidates = append(candidates, statedef.DiskVeryBusy)
	case disk >= th.Disk.Busy:
		candidates = append(candidates, statedef.DiskBusy)
	}

	switch {
	case net >= th.Network.VeryBusy:
		candidates = append(candidates, statedef.NetworkVeryBusy)
	case net >= th.Network.Busy:
		candidates = append(candidates, statedef.NetworkBusy)
	}

	if len(candidates) == 0 {
		return statedef.Idle
	}

	best := candidates[0]
	bestPri := c.registry.Priority(best)
	for _, id := range candidates[1:] {
		if p := c.registry.Priority(id); p > bestPri {
			best = id
			bestPri = p
		}
	}
	return best
}

// #endregion classify

// #region helpers

// clampPct restricts v to [0, 100].
func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// #endregion helpers
