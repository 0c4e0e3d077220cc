package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/deskpet/internal/classify"
	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

func heavyMetrics() *classify.Metrics {
	return &classify.Metrics{CPU: 85, Memory: 40}
}

func TestRunEndToEnd(t *testing.T) {
	f := &Fixture{
		Description: "click overrides load, then expires",
		Steps: []Step{
			{AtMS: 0, Kind: KindSystem, Metrics: heavyMetrics()},
			{AtMS: 100, Kind: KindInteraction, State: statedef.TailClicked, TTLMS: 500},
			{AtMS: 700, Kind: KindSystem, Metrics: heavyMetrics()},
		},
	}

	results, summary, err := Run(f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Current != statedef.HeavyLoad {
		t.Errorf("step 0: expected HEAVY_LOAD, got %s", results[0].Current)
	}
	if results[1].Current != statedef.TailClicked {
		t.Errorf("step 1: expected TAIL_CLICKED, got %s", results[1].Current)
	}
	if results[2].Current != statedef.HeavyLoad {
		t.Errorf("step 2: expected revert to HEAVY_LOAD, got %s", results[2].Current)
	}
	if summary.Transitions != 3 {
		t.Errorf("expected 3 transitions, got %d", summary.Transitions)
	}
	if summary.Final != statedef.HeavyLoad {
		t.Errorf("expected final HEAVY_LOAD, got %s", summary.Final)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	f := &Fixture{
		Steps: []Step{
			{AtMS: 0, Kind: KindTime, State: statedef.Morning},
			{AtMS: 10, Kind: KindSpecial, State: statedef.Birthday},
			{AtMS: 20, Kind: KindInteraction, State: statedef.HeadClicked, TTLMS: 50},
			{AtMS: 100, Kind: KindRead},
			{AtMS: 110, Kind: KindClearSpecial},
		},
	}

	first, firstSummary, err := Run(f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, secondSummary, err := Run(f)
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	for i := range first {
		if first[i].Current != second[i].Current || first[i].Changed != second[i].Changed {
			t.Fatalf("step %d diverged between runs", i)
		}
	}
	if firstSummary.Transitions != secondSummary.Transitions {
		t.Fatal("transition counts diverged between runs")
	}
}

func TestReadStepObservesExpiry(t *testing.T) {
	f := &Fixture{
		Steps: []Step{
			{AtMS: 0, Kind: KindInteraction, State: statedef.HeadClicked, TTLMS: 800},
			{AtMS: 900, Kind: KindRead},
		},
	}
	results, _, err := Run(f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results[0].Current != statedef.HeadClicked {
		t.Errorf("step 0: expected HEAD_CLICKED, got %s", results[0].Current)
	}
	if results[1].Current != statedef.SystemIdle {
		t.Errorf("step 1: expected fallback after expiry, got %s", results[1].Current)
	}
}

func TestVerify(t *testing.T) {
	f := &Fixture{
		Steps: []Step{
			{AtMS: 0, Kind: KindSystem, Metrics: heavyMetrics()},
		},
		Expected: []Expectation{
			{Step: 0, Current: statedef.HeavyLoad},
		},
	}
	results, _, err := Run(f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if mismatches := Verify(f, results); len(mismatches) != 0 {
		t.Fatalf("expected clean verify, got %+v", mismatches)
	}

	f.Expected[0].Current = statedef.Idle
	mismatches := Verify(f, results)
	if len(mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(mismatches))
	}
	if mismatches[0].Got != statedef.HeavyLoad {
		t.Fatalf("mismatch should carry the actual state, got %s", mismatches[0].Got)
	}
}

func TestValidateRejectsBadFixtures(t *testing.T) {
	cases := []Fixture{
		{Steps: []Step{{AtMS: 100, Kind: KindRead}, {AtMS: 50, Kind: KindRead}}},
		{Steps: []Step{{Kind: KindSystem}}},
		{Steps: []Step{{Kind: KindTime}}},
		{Steps: []Step{{Kind: "nap"}}},
		{Steps: []Step{{Kind: KindRead}}, Expected: []Expectation{{Step: 7, Current: statedef.Idle}}},
	}
	for i, f := range cases {
		if err := f.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestLoadFixture(t *testing.T) {
	body := `{
  "description": "smoke",
  "steps": [
    {"at_ms": 0, "kind": "system", "metrics": {"cpu": 85}},
    {"at_ms": 100, "kind": "interaction", "state": "TAIL_CLICKED", "ttl_ms": 500}
  ],
  "expected": [
    {"step": 0, "current": "HEAVY_LOAD"},
    {"step": 1, "current": "TAIL_CLICKED"}
  ]
}`
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	results, _, err := Run(f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if mismatches := Verify(f, results); len(mismatches) != 0 {
		t.Fatalf("expected expectations to hold, got %+v", mismatches)
	}
}
