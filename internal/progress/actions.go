package progress

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
)

// Rejection reasons. Reduce wraps these; match with errors.Is.
var (
	ErrBlankPlayer    = errors.New("player label is blank")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotInProgress  = errors.New("game is not in progress")
	ErrUnknownStage   = errors.New("unknown stage")
	ErrWrongStage     = errors.New("stage is not the current stage")
	ErrStageCompleted = errors.New("stage already completed")
)

// Action is a discrete input to the state machine.
type Action interface {
	action()
	String() string
}

// StartGame begins the play-through for a player.
type StartGame struct {
	PlayerLabel string
}

// CompleteStage records a matched pick set for StageID.
type CompleteStage struct {
	StageID StageID
	Reward  catalog.Reward
}

// IncrementAttempts records one evaluated, failed pick set.
type IncrementAttempts struct {
	StageID StageID
}

// UseHint records a hint request.
type UseHint struct {
	StageID StageID
}

// ResetGame returns to the initial snapshot.
type ResetGame struct{}

func (StartGame) action()         {}
func (CompleteStage) action()     {}
func (IncrementAttempts) action() {}
func (UseHint) action()           {}
func (ResetGame) action()         {}

func (StartGame) String() string { return "START_GAME" }
func (a CompleteStage) String() string { return fmt.Sprintf("COMPLETE_STAGE(%d)", a.StageID) }
func (a IncrementAttempts) String() string { return fmt.Sprintf("INCREMENT_ATTEMPTS(%d)", a.StageID) }
func (a UseHint) String() string { return fmt.Sprintf("USE_HINT(%d)", a.StageID) }
func (ResetGame) String() string { return "RESET_GAME" }

// Bonus returns the score awarded for a stage cleared after the given number
// of failed full-sequence attempts: 100 minus 10 per failure, floored at 50.
func Bonus(failed int) int {
	return max(100-failed*10, 50)
}

// Reduce applies a to s and returns the next snapshot.
// A rejected action returns s unchanged together with the reason.
func Reduce(s GameState, a Action, now time.Time) (GameState, error) {
	switch a := a.(type) {
	case StartGame:
		return startGame(s, a, now)
	case CompleteStage:
		return completeStage(s, a)
	case IncrementAttempts:
		return bumpCounter(s, a.StageID, a, func(p *StageProgress) { p.Attempts++ })
	case UseHint:
		return bumpCounter(s, a.StageID, a, func(p *StageProgress) { p.Hints++ })
	case ResetGame:
		return Initial(s.stageCount), nil
	default:
		return s, fmt.Errorf("progress: unsupported action %T", a)
	}
}

func startGame(s GameState, a StartGame, now time.Time) (GameState, error) {
	if s.Phase() != PhaseNotStarted {
		return s, fmt.Errorf("progress: %s: %w", a, ErrAlreadyStarted)
	}
	label := strings.TrimSpace(a.PlayerLabel)
	if label == "" {
		return s, fmt.Errorf("progress: %s: %w", a, ErrBlankPlayer)
	}

	next := s.Clone()
	started := now
	next.SessionStartedAt = &started
	next.PlayerLabel = label
	return next, nil
}

func completeStage(s GameState, a CompleteStage) (GameState, error) {
	if s.Phase() != PhaseInProgress {
		return s, fmt.Errorf("progress: %s: %w", a, ErrNotInProgress)
	}
	p, ok := s.StageProgress[a.StageID]
	if !ok {
		return s, fmt.Errorf("progress: %s: %w", a, ErrUnknownStage)
	}
	if p.Completed || s.IsCompleted(a.StageID) {
		return s, fmt.Errorf("progress: %s: %w", a, ErrStageCompleted)
	}
	if int(a.StageID) != s.CurrentStageIndex {
		return s, fmt.Errorf("progress: %s (current %d): %w", a, s.CurrentStageIndex, ErrWrongStage)
	}

	next := s.Clone()
	next.CompletedStages = append(next.CompletedStages, a.StageID)
	next.UnlockedRewards = append(next.UnlockedRewards, a.Reward)
	next.TotalScore += Bonus(p.Attempts)

	// The matched set is counted here, after scoring on prior failures.
	p.Completed = true
	p.Attempts++
	next.StageProgress[a.StageID] = p

	next.CurrentStageIndex++
	next.GameCompleted = len(next.CompletedStages) == next.stageCount
	return next, nil
}

func bumpCounter(s GameState, id StageID, a Action, bump func(*StageProgress)) (GameState, error) {
	if s.Phase() != PhaseInProgress {
		return s, fmt.Errorf("progress: %s: %w", a, ErrNotInProgress)
	}
	p, ok := s.StageProgress[id]
	if !ok {
		return s, fmt.Errorf("progress: %s: %w", a, ErrUnknownStage)
	}
	// Attempts on a cleared stage would no longer match the awarded bonus.
	if _, ok := a.(IncrementAttempts); ok && p.Completed {
		return s, fmt.Errorf("progress: %s: %w", a, ErrStageCompleted)
	}

	next := s.Clone()
	bump(&p)
	next.StageProgress[id] = p
	return next, nil
}
