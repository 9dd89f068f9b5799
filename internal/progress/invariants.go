package progress

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a snapshot that violates the state model.
var ErrInvariant = errors.New("invariant violated")

// CheckInvariants verifies the relations every reachable snapshot satisfies.
func CheckInvariants(s GameState) error {
	if len(s.CompletedStages) != len(s.UnlockedRewards) {
		return fmt.Errorf("progress: %d completed stages but %d rewards: %w",
			len(s.CompletedStages), len(s.UnlockedRewards), ErrInvariant)
	}

	if s.CurrentStageIndex < 0 || s.CurrentStageIndex > s.stageCount {
		return fmt.Errorf("progress: stage index %d outside 0..%d: %w",
			s.CurrentStageIndex, s.stageCount, ErrInvariant)
	}

	// Stages complete in order, so the completed list is exactly 0..n-1.
	if len(s.CompletedStages) != s.CurrentStageIndex {
		return fmt.Errorf("progress: stage index %d with %d completed stages: %w",
			s.CurrentStageIndex, len(s.CompletedStages), ErrInvariant)
	}

	seen := make(map[StageID]bool, len(s.CompletedStages))
	for i, id := range s.CompletedStages {
		if seen[id] {
			return fmt.Errorf("progress: stage %d completed twice: %w", id, ErrInvariant)
		}
		seen[id] = true
		if int(id) != i {
			return fmt.Errorf("progress: stage %d completed at position %d: %w", id, i, ErrInvariant)
		}
	}

	if len(s.StageProgress) != s.stageCount {
		return fmt.Errorf("progress: %d progress entries for %d stages: %w",
			len(s.StageProgress), s.stageCount, ErrInvariant)
	}

	expectedScore := 0
	for id, p := range s.StageProgress {
		if p.Completed != seen[id] {
			return fmt.Errorf("progress: stage %d completed flag %t disagrees with completed list: %w",
				id, p.Completed, ErrInvariant)
		}
		if p.Attempts < 0 || p.Hints < 0 {
			return fmt.Errorf("progress: stage %d has negative counters: %w", id, ErrInvariant)
		}
		if p.Completed {
			// Attempts include the matched set once completed.
			expectedScore += Bonus(p.Attempts - 1)
		}
	}
	if s.TotalScore != expectedScore {
		return fmt.Errorf("progress: total score %d, bonuses sum to %d: %w",
			s.TotalScore, expectedScore, ErrInvariant)
	}

	if s.GameCompleted != (s.stageCount > 0 && len(s.CompletedStages) == s.stageCount) {
		return fmt.Errorf("progress: completion flag %t with %d/%d stages: %w",
			s.GameCompleted, len(s.CompletedStages), s.stageCount, ErrInvariant)
	}

	return nil
}
