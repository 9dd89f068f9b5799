package builtin

import (
	"testing"

	"github.com/vovakirdan/delta-legacy/internal/registry"
)

func TestDelta(t *testing.T) {
	c, err := Delta()
	if err != nil {
		t.Fatalf("Delta() error: %v", err)
	}
	if c.StageCount() != 6 {
		t.Fatalf("StageCount() = %d, want 6", c.StageCount())
	}

	solutions := [][]string{
		{"moore", "king", "hamer", "moses"},
		{"integration", "titles", "points", "draft"},
		{"patton", "johnson", "muddy", "bbking"},
		{"moundBayou", "hospital", "pharmacy", "catfish"},
		{"integration1965", "lawsuit1965", "merger2016", "central2017"},
		{"historical", "educational", "economic", "cultural"},
	}
	for i, want := range solutions {
		got := c.Stages[i].Solution
		if len(got) != len(want) {
			t.Fatalf("stage %d solution = %v, want %v", i, got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("stage %d step %d = %q, want %q", i, j, got[j], want[j])
			}
		}
		if c.Stages[i].Hint == "" {
			t.Errorf("stage %d has no hint", i)
		}
	}

	if n := len(c.Stages[5].Features); n != 0 {
		t.Errorf("final stage has %d features, want 0", n)
	}
	for _, i := range []int{2, 5} {
		if c.Stages[i].CompleteDelayMS != 3000 {
			t.Errorf("stage %d complete delay = %d, want 3000", i, c.Stages[i].CompleteDelayMS)
		}
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(DefaultID) {
		t.Fatalf("catalog %q not registered", DefaultID)
	}

	c, err := registry.Create(DefaultID)
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != DefaultID {
		t.Errorf("ID = %q, want %q", c.ID, DefaultID)
	}

	found := false
	for _, info := range registry.List() {
		if info.ID == DefaultID {
			found = true
			if info.Stages != 6 {
				t.Errorf("info.Stages = %d, want 6", info.Stages)
			}
		}
	}
	if !found {
		t.Error("List() is missing the builtin catalog")
	}
}
