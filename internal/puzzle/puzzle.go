// Package puzzle implements the sequence puzzle shared by every stage: the
// player picks items one at a time and the completed pick set is compared,
// in order, against the stage's correct sequence.
package puzzle

import (
	"github.com/zyedidia/generic/mapset"
)

// Verdict is the outcome of evaluating the current picks.
type Verdict int

const (
	Incomplete Verdict = iota
	Matched
	Mismatched
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case Incomplete:
		return "incomplete"
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

// Terminal reports whether the verdict ends the current pick set.
func (v Verdict) Terminal() bool {
	return v == Matched || v == Mismatched
}

// PickResult describes what a single pick did.
type PickResult struct {
	Accepted        bool
	Verdict         Verdict
	FeatureUnlocked bool   // The pick advanced the unlock-feature counter
	Feature         string // Name of the unlocked feature, if any
}

// Puzzle holds one stage's ephemeral pick state.
// The correct sequence and features are reference data and never change.
type Puzzle struct {
	solution []string
	features []string
	picks    []string
	picked   mapset.Set[string]
	verdict  Verdict
}

// New creates an empty puzzle for the given correct sequence.
// features are unlocked one per accepted pick, in order; it may be empty.
func New(solution, features []string) *Puzzle {
	p := &Puzzle{
		solution: append([]string(nil), solution...),
		features: append([]string(nil), features...),
	}
	p.clear()
	return p
}

func (p *Puzzle) clear() {
	p.picks = make([]string, 0, len(p.solution))
	p.picked = mapset.New[string]()
	p.verdict = Incomplete
}

// Size returns N, the length of the correct sequence.
func (p *Puzzle) Size() int {
	return len(p.solution)
}

// Pick appends item to the picks.
// Duplicates, and any pick after a terminal verdict, are ignored.
func (p *Puzzle) Pick(item string) PickResult {
	if p.verdict.Terminal() || p.picked.Has(item) || len(p.solution) == 0 {
		return PickResult{Verdict: p.verdict}
	}

	p.picks = append(p.picks, item)
	p.picked.Put(item)

	res := PickResult{Accepted: true}
	if idx := len(p.picks) - 1; idx < len(p.features) {
		res.FeatureUnlocked = true
		res.Feature = p.features[idx]
	}

	if len(p.picks) == len(p.solution) {
		p.verdict = evaluate(p.picks, p.solution)
	}
	res.Verdict = p.verdict
	return res
}

// Reset clears the picks. Returns false if there was nothing to clear.
func (p *Puzzle) Reset() bool {
	if len(p.picks) == 0 {
		return false
	}
	p.clear()
	return true
}

// Verdict returns the verdict for the current picks.
func (p *Puzzle) Verdict() Verdict {
	return p.verdict
}

// Picks returns a copy of the picks in selection order.
func (p *Puzzle) Picks() []string {
	return append([]string(nil), p.picks...)
}

// Position returns the 1-based selection order of item, or 0 if unpicked.
func (p *Puzzle) Position(item string) int {
	for i, id := range p.picks {
		if id == item {
			return i + 1
		}
	}
	return 0
}

// UnlockedFeatures returns the features unlocked by the current picks.
func (p *Puzzle) UnlockedFeatures() []string {
	n := min(len(p.picks), len(p.features))
	return append([]string(nil), p.features[:n]...)
}

// Features returns every feature, locked or not.
func (p *Puzzle) Features() []string {
	return append([]string(nil), p.features...)
}

// Snapshot is a read-only copy of the puzzle for rendering.
type Snapshot struct {
	Picks    []string
	Size     int
	Verdict  Verdict
	Unlocked []string
	Features []string
}

// Snapshot returns the current state for rendering.
func (p *Puzzle) Snapshot() Snapshot {
	return Snapshot{
		Picks:    p.Picks(),
		Size:     p.Size(),
		Verdict:  p.verdict,
		Unlocked: p.UnlockedFeatures(),
		Features: p.Features(),
	}
}

// Position returns the 1-based selection order of item, or 0 if unpicked.
func (s Snapshot) Position(item string) int {
	for i, id := range s.Picks {
		if id == item {
			return i + 1
		}
	}
	return 0
}

// evaluate compares a full pick set to the solution, order-sensitive.
func evaluate(picks, solution []string) Verdict {
	if len(picks) != len(solution) {
		return Incomplete
	}
	for i := range solution {
		if picks[i] != solution[i] {
			return Mismatched
		}
	}
	return Matched
}
