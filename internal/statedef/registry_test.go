package statedef

import "testing"

func TestDefaultRegistryBuilds(t *testing.T) {
	reg, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	if reg.Len() != len(DefaultDefs()) {
		t.Fatalf("expected %d defs, got %d", len(DefaultDefs()), reg.Len())
	}
}

func TestRegistryLookup(t *testing.T) {
	reg, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}

	d, ok := reg.Lookup(HeavyLoad)
	if !ok {
		t.Fatal("HEAVY_LOAD should be registered")
	}
	if d.Category != CategorySystem {
		t.Errorf("expected system category, got %s", d.Category)
	}
	if d.Priority != 90 {
		t.Errorf("expected priority 90, got %d", d.Priority)
	}

	if _, ok := reg.Lookup("NOT_A_STATE"); ok {
		t.Error("unregistered id should not resolve")
	}
}

func TestRegistryRejectsDuplicateAcrossCategories(t *testing.T) {
	_, err := NewRegistry([]Def{
		{HeavyLoad, CategorySystem, 90},
		{HeavyLoad, CategoryTime, 20},
	})
	if err == nil {
		t.Fatal("duplicate registration should fail construction")
	}
}

func TestRegistryRejectsUnknownCategory(t *testing.T) {
	_, err := NewRegistry([]Def{{"WEIRD", Category("weather"), 1}})
	if err == nil {
		t.Fatal("unknown category should fail construction")
	}
}

func TestRegistryRejectsEmpty(t *testing.T) {
	if _, err := NewRegistry(nil); err == nil {
		t.Fatal("empty def list should fail construction")
	}
	if _, err := NewRegistry([]Def{{"", CategorySystem, 1}}); err == nil {
		t.Fatal("empty id should fail construction")
	}
}

func TestCategoryPrecedenceOrder(t *testing.T) {
	want := []Category{CategoryInteraction, CategorySpecialDate, CategorySystem, CategoryTime}
	if len(Categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(Categories))
	}
	for i, c := range want {
		if Categories[i] != c {
			t.Errorf("precedence[%d]: expected %s, got %s", i, c, Categories[i])
		}
	}
}
