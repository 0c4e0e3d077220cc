package classify

import "fmt"

// #region metrics

// Metrics is one already-sampled snapshot of host load, in percent.
// Sampling itself happens outside this package; see internal/source.
type Metrics struct {
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	GPU     float64 `json:"gpu"`
	Disk    float64 `json:"disk"`
	Network float64 `json:"network"`
}

// #endregion metrics

// #region thresholds

// Bands holds the ordered boundaries for one metric. Boundaries must be
// strictly increasing within the band; there is no disabled value.
type Bands struct {
	Light     float64 `yaml:"light"`
	Moderate  float64 `yaml:"moderate"`
	Heavy     float64 `yaml:"heavy"`
	VeryHeavy float64 `yaml:"very_heavy"`
	Critical  float64 `yaml:"critical"`
}

// Pair holds a two-level busy/very-busy boundary for gpu, disk, and network.
type Pair struct {
	Busy     float64 `yaml:"busy"`
	VeryBusy float64 `yaml:"very_busy"`
}

// MemBands holds the warning/critical boundaries for memory.
type MemBands struct {
	Warning  float64 `yaml:"warning"`
	Critical float64 `yaml:"critical"`
}

// Thresholds classifies raw metrics into discrete load levels.
// Construct via NewThresholds (or DefaultThresholds) so boundary ordering is
// checked once, up front.
type Thresholds struct {
	CPU     Bands    `yaml:"cpu"`
	Memory  MemBands `yaml:"memory"`
	GPU     Pair     `yaml:"gpu"`
	Disk    Pair     `yaml:"disk"`
	Network Pair     `yaml:"network"`
}

// DefaultThresholds returns the reference boundary set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPU:     Bands{Light: 25, Moderate: 40, Heavy: 60, VeryHeavy: 90, Critical: 97},
		Memory:  MemBands{Warning: 70, Critical: 90},
		GPU:     Pair{Busy: 60, VeryBusy: 85},
		Disk:    Pair{Busy: 50, VeryBusy: 80},
		Network: Pair{Busy: 50, VeryBusy: 80},
	}
}

// Validate rejects non-increasing boundaries. Misconfiguration is fatal at
// construction, never silently corrected.
func (t Thresholds) Validate() error {
	if err := strictlyIncreasing("cpu",
		t.CPU.Light, t.CPU.Moderate, t.CPU.Heavy, t.CPU.VeryHeavy, t.CPU.Critical); err != nil {
		return err
	}
	if err := strictlyIncreasing("memory", t.Memory.Warning, t.Memory.Critical); err != nil {
		return err
	}
	if err := strictlyIncreasing("gpu", t.GPU.Busy, t.GPU.VeryBusy); err != nil {
		return err
	}
	if err := strictlyIncreasing("disk", t.Disk.Busy, t.Disk.VeryBusy); err != nil {
		return err
	}
	if err := strictlyIncreasing("network", t.Network.Busy, t.Network.VeryBusy); err != nil {
		return err
	}
	return nil
}

func strictlyIncreasing(metric string, vals ...float64) error {
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			return fmt.Errorf("thresholds: %s boundaries must be strictly increasing (%.2f then %.2f)",
				metric, vals[i-1], vals[i])
		}
	}
	return nil
}

// #endregion thresholds
