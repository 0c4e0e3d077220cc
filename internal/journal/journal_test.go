package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/deskpet/internal/arbiter"
	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "pet.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openJournal(t)

	base := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	events := []arbiter.Event{
		{Previous: statedef.SystemIdle, Current: statedef.HeavyLoad, At: base},
		{Previous: statedef.HeavyLoad, Current: statedef.TailClicked, At: base.Add(time.Second)},
		{Previous: statedef.TailClicked, Current: statedef.HeavyLoad, At: base.Add(2 * time.Second)},
	}
	for _, ev := range events {
		if err := j.Record(ev); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	rows, err := j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Newest first.
	if rows[0].Current != statedef.HeavyLoad || rows[0].Previous != statedef.TailClicked {
		t.Fatalf("unexpected newest row %s -> %s", rows[0].Previous, rows[0].Current)
	}
	if rows[0].EventID == "" {
		t.Fatal("event id should be assigned")
	}
	if !rows[0].CreatedAt.Equal(base.Add(2 * time.Second)) {
		t.Fatalf("timestamp mismatch: %v", rows[0].CreatedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	j := openJournal(t)

	base := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ev := arbiter.Event{
			Previous: statedef.Idle,
			Current:  statedef.HeavyLoad,
			At:       base.Add(time.Duration(i) * time.Second),
		}
		if err := j.Record(ev); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	rows, err := j.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(rows))
	}
}

func TestCountByState(t *testing.T) {
	j := openJournal(t)

	seq := []statedef.ID{statedef.HeavyLoad, statedef.TailClicked, statedef.HeavyLoad, statedef.Idle}
	prev := statedef.SystemIdle
	at := time.Now().UTC()
	for i, cur := range seq {
		ev := arbiter.Event{Previous: prev, Current: cur, At: at.Add(time.Duration(i) * time.Second)}
		if err := j.Record(ev); err != nil {
			t.Fatalf("record: %v", err)
		}
		prev = cur
	}

	counts, err := j.CountByState()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[statedef.HeavyLoad] != 2 {
		t.Errorf("expected HEAVY_LOAD entered twice, got %d", counts[statedef.HeavyLoad])
	}
	if counts[statedef.TailClicked] != 1 {
		t.Errorf("expected TAIL_CLICKED entered once, got %d", counts[statedef.TailClicked])
	}
}
