// Package progress implements the progression state machine: which stage the
// player is on, what has been completed, scoring, and overall completion.
// Transitions are pure functions over immutable GameState snapshots.
package progress

import (
	"time"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
)

// StageID identifies a stage by its catalog index.
type StageID int

// Phase is the coarse lifecycle of a play-through.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseCompleted
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseInProgress:
		return "InProgress"
	case PhaseCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// StageProgress holds the per-stage counters.
type StageProgress struct {
	Completed bool
	Attempts  int // Evaluated pick sets, including the successful one once completed
	Hints     int
}

// GameState is a snapshot of a play-through.
// Snapshots are never mutated after creation; every transition builds a new one.
type GameState struct {
	CurrentStageIndex int
	CompletedStages   []StageID
	UnlockedRewards   []catalog.Reward
	TotalScore        int
	StageProgress     map[StageID]StageProgress
	SessionStartedAt  *time.Time
	GameCompleted     bool
	PlayerLabel       string

	stageCount int
}

// Initial returns the NotStarted snapshot for a catalog of stageCount stages.
func Initial(stageCount int) GameState {
	if stageCount < 0 {
		stageCount = 0
	}

	sp := make(map[StageID]StageProgress, stageCount)
	for i := 0; i < stageCount; i++ {
		sp[StageID(i)] = StageProgress{}
	}

	return GameState{
		CompletedStages: []StageID{},
		UnlockedRewards: []catalog.Reward{},
		StageProgress:   sp,
		stageCount:      stageCount,
	}
}

// StageCount returns the number of stages the state was initialized for.
func (s GameState) StageCount() int {
	return s.stageCount
}

// Phase derives the lifecycle phase from the snapshot.
func (s GameState) Phase() Phase {
	switch {
	case s.GameCompleted:
		return PhaseCompleted
	case s.SessionStartedAt != nil:
		return PhaseInProgress
	default:
		return PhaseNotStarted
	}
}

// Progress returns the stage progress for id and whether id is in the catalog.
func (s GameState) Progress(id StageID) (StageProgress, bool) {
	p, ok := s.StageProgress[id]
	return p, ok
}

// IsCompleted reports whether the stage is in CompletedStages.
func (s GameState) IsCompleted(id StageID) bool {
	for _, c := range s.CompletedStages {
		if c == id {
			return true
		}
	}
	return false
}

// Percent returns the share of completed stages in the range 0-100.
func (s GameState) Percent() int {
	if s.stageCount == 0 {
		return 0
	}
	return len(s.CompletedStages) * 100 / s.stageCount
}

// TotalAttempts sums attempts across all stages.
func (s GameState) TotalAttempts() int {
	total := 0
	for _, p := range s.StageProgress {
		total += p.Attempts
	}
	return total
}

// TotalHints sums hints across all stages.
func (s GameState) TotalHints() int {
	total := 0
	for _, p := range s.StageProgress {
		total += p.Hints
	}
	return total
}

// Clone returns a deep copy of the snapshot.
func (s GameState) Clone() GameState {
	c := s

	c.CompletedStages = make([]StageID, len(s.CompletedStages))
	copy(c.CompletedStages, s.CompletedStages)

	c.UnlockedRewards = make([]catalog.Reward, len(s.UnlockedRewards))
	copy(c.UnlockedRewards, s.UnlockedRewards)

	c.StageProgress = make(map[StageID]StageProgress, len(s.StageProgress))
	for k, v := range s.StageProgress {
		c.StageProgress[k] = v
	}

	if s.SessionStartedAt != nil {
		t := *s.SessionStartedAt
		c.SessionStartedAt = &t
	}

	return c
}
