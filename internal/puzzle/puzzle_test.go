package puzzle

import (
	"reflect"
	"testing"
)

var solution = []string{"moore", "king", "hamer", "moses"}

func TestPickEvaluation(t *testing.T) {
	tests := []struct {
		name  string
		picks []string
		want  Verdict
	}{
		{"empty", nil, Incomplete},
		{"partial", []string{"moore", "king"}, Incomplete},
		{"three of four", []string{"moore", "king", "hamer"}, Incomplete},
		{"exact order", []string{"moore", "king", "hamer", "moses"}, Matched},
		{"swapped", []string{"king", "moore", "hamer", "moses"}, Mismatched},
		{"reversed", []string{"moses", "hamer", "king", "moore"}, Mismatched},
		{"unknown item", []string{"moore", "king", "hamer", "parks"}, Mismatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(solution, nil)
			for _, item := range tt.picks {
				p.Pick(item)
			}
			if got := p.Verdict(); got != tt.want {
				t.Errorf("Verdict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDuplicatePickIgnored(t *testing.T) {
	p := New(solution, nil)

	if res := p.Pick("moore"); !res.Accepted {
		t.Fatal("first pick should be accepted")
	}
	if res := p.Pick("moore"); res.Accepted {
		t.Error("duplicate pick should be ignored")
	}

	if got := p.Picks(); !reflect.DeepEqual(got, []string{"moore"}) {
		t.Errorf("Picks() = %v, want [moore]", got)
	}
}

func TestLockedAfterVerdict(t *testing.T) {
	p := New(solution, nil)
	for _, item := range []string{"king", "moore", "hamer", "moses"} {
		p.Pick(item)
	}
	if p.Verdict() != Mismatched {
		t.Fatalf("Verdict() = %v, want mismatched", p.Verdict())
	}

	res := p.Pick("parks")
	if res.Accepted {
		t.Error("pick after terminal verdict should be rejected")
	}
	if res.Verdict != Mismatched {
		t.Errorf("result verdict = %v, want mismatched", res.Verdict)
	}
	if len(p.Picks()) != len(solution) {
		t.Errorf("picks grew past N: %v", p.Picks())
	}
}

func TestReset(t *testing.T) {
	p := New(solution, nil)

	if p.Reset() {
		t.Error("Reset() on empty picks should report false")
	}

	p.Pick("moore")
	p.Pick("king")
	if !p.Reset() {
		t.Error("Reset() with picks should report true")
	}
	if len(p.Picks()) != 0 || p.Verdict() != Incomplete {
		t.Errorf("after reset: picks=%v verdict=%v", p.Picks(), p.Verdict())
	}

	// A cleared item can be picked again.
	if res := p.Pick("moore"); !res.Accepted {
		t.Error("pick after reset should be accepted")
	}
}

func TestResetUnlocksAfterMismatch(t *testing.T) {
	p := New(solution, nil)
	for _, item := range []string{"moses", "hamer", "king", "moore"} {
		p.Pick(item)
	}
	p.Reset()

	for _, item := range solution {
		p.Pick(item)
	}
	if p.Verdict() != Matched {
		t.Errorf("Verdict() = %v, want matched", p.Verdict())
	}
}

func TestPosition(t *testing.T) {
	p := New(solution, nil)
	p.Pick("hamer")
	p.Pick("moore")

	tests := map[string]int{"hamer": 1, "moore": 2, "king": 0, "moses": 0}
	for item, want := range tests {
		if got := p.Position(item); got != want {
			t.Errorf("Position(%q) = %d, want %d", item, got, want)
		}
		if got := p.Snapshot().Position(item); got != want {
			t.Errorf("Snapshot().Position(%q) = %d, want %d", item, got, want)
		}
	}
}

func TestFeatureUnlocks(t *testing.T) {
	features := []string{"Founded", "Hamer", "Records", "Voting"}
	p := New(solution, features)

	res := p.Pick("king")
	if !res.FeatureUnlocked || res.Feature != "Founded" {
		t.Errorf("first pick: unlocked=%t feature=%q", res.FeatureUnlocked, res.Feature)
	}
	p.Pick("king") // duplicate, no unlock
	p.Pick("moses")

	if got := p.UnlockedFeatures(); !reflect.DeepEqual(got, features[:2]) {
		t.Errorf("UnlockedFeatures() = %v, want %v", got, features[:2])
	}
}

func TestNoFeatures(t *testing.T) {
	p := New(solution, nil)
	res := p.Pick("moore")
	if res.FeatureUnlocked {
		t.Error("no features configured, nothing should unlock")
	}
	if got := p.UnlockedFeatures(); len(got) != 0 {
		t.Errorf("UnlockedFeatures() = %v, want empty", got)
	}
}

func TestPicksIsCopy(t *testing.T) {
	p := New(solution, nil)
	p.Pick("moore")

	picks := p.Picks()
	picks[0] = "tampered"

	if p.Position("moore") != 1 {
		t.Error("mutating Picks() result changed puzzle state")
	}
}
