package classify

import (
	"testing"

	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

func newClassifier(t *testing.T) *Classifier {
	t.Helper()
	reg, err := statedef.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	c, err := NewClassifier(DefaultThresholds(), reg)
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}
	return c
}

func TestClassifyCPUBands(t *testing.T) {
	c := newClassifier(t)

	cases := []struct {
		cpu  float64
		want statedef.ID
	}{
		{10, statedef.Idle},
		{25, statedef.LightLoad},
		{40, statedef.ModerateLoad},
		{59, statedef.ModerateLoad},
		{60, statedef.HeavyLoad},
		{80, statedef.HeavyLoad},
		{85, statedef.HeavyLoad},
		{90, statedef.VeryHeavyLoad},
		{97, statedef.CPUCritical},
		{100, statedef.CPUCritical},
	}
	for _, tc := range cases {
		got := c.Classify(Metrics{CPU: tc.cpu})
		if got != tc.want {
			t.Errorf("cpu=%.0f: expected %s, got %s", tc.cpu, tc.want, got)
		}
	}
}

func TestClassifyMonotonicInPriority(t *testing.T) {
	c := newClassifier(t)
	reg, _ := statedef.NewDefaultRegistry()

	prev := -1
	for cpu := 0.0; cpu <= 100; cpu++ {
		id := c.Classify(Metrics{CPU: cpu})
		pri := reg.Priority(id)
		if pri < prev {
			t.Fatalf("priority regressed at cpu=%.0f: %d -> %d (%s)", cpu, prev, pri, id)
		}
		prev = pri
	}
}

func TestClassifyHighestPriorityWinsAcrossMetrics(t *testing.T) {
	c := newClassifier(t)

	// Memory critical (120) outranks CPU critical (110).
	got := c.Classify(Metrics{CPU: 99, Memory: 95})
	if got != statedef.MemoryCritical {
		t.Fatalf("expected MEMORY_CRITICAL, got %s", got)
	}

	// GPU very busy (95) outranks heavy load (90).
	got = c.Classify(Metrics{CPU: 70, GPU: 90})
	if got != statedef.GPUVeryBusy {
		t.Fatalf("expected GPU_VERY_BUSY, got %s", got)
	}

	// Disk very busy (88) outranks network very busy (87).
	got = c.Classify(Metrics{Disk: 85, Network: 85})
	if got != statedef.DiskVeryBusy {
		t.Fatalf("expected DISK_VERY_BUSY, got %s", got)
	}
}

func TestClassifyIdleWhenNothingCrosses(t *testing.T) {
	c := newClassifier(t)
	got := c.Classify(Metrics{CPU: 5, Memory: 10, GPU: 0, Disk: 3, Network: 1})
	if got != statedef.Idle {
		t.Fatalf("expected IDLE, got %s", got)
	}
}

func TestClassifyClampsOutOfRange(t *testing.T) {
	c := newClassifier(t)

	// Negative readings clamp to 0 rather than erroring out.
	if got := c.Classify(Metrics{CPU: -12}); got != statedef.Idle {
		t.Errorf("negative cpu: expected IDLE, got %s", got)
	}
	// Over-100 readings clamp to 100.
	if got := c.Classify(Metrics{CPU: 480}); got != statedef.CPUCritical {
		t.Errorf("cpu=480: expected CPU_CRITICAL, got %s", got)
	}
}

func TestThresholdsRejectNonIncreasing(t *testing.T) {
	th := DefaultThresholds()
	th.CPU.Heavy = th.CPU.Moderate // equal is not strictly increasing
	if err := th.Validate(); err == nil {
		t.Fatal("non-increasing cpu boundaries should fail validation")
	}

	th = DefaultThresholds()
	th.Memory.Critical = th.Memory.Warning - 1
	if err := th.Validate(); err == nil {
		t.Fatal("inverted memory boundaries should fail validation")
	}

	reg, _ := statedef.NewDefaultRegistry()
	if _, err := NewClassifier(th, reg); err == nil {
		t.Fatal("classifier construction should surface threshold misconfiguration")
	}
}
