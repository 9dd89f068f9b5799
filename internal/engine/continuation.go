package engine

import (
	"time"

	"github.com/vovakirdan/delta-legacy/internal/progress"
)

// ContinuationKind is the deferred consequence of a terminal verdict.
type ContinuationKind int

const (
	ClearPicks    ContinuationKind = iota // Mismatch: clear the picks
	CompleteStage                         // Match: dispatch COMPLETE_STAGE
)

// String returns a human-readable name for the kind.
func (k ContinuationKind) String() string {
	switch k {
	case ClearPicks:
		return "clear"
	case CompleteStage:
		return "complete"
	default:
		return "unknown"
	}
}

// Continuation is work the presentation layer runs after Delay by passing it
// back to Session.Resolve. It only takes effect while still current.
type Continuation struct {
	Kind       ContinuationKind
	StageID    progress.StageID
	Generation uint64
	Delay      time.Duration
}

func (s *Session) schedule(kind ContinuationKind, id progress.StageID, delay time.Duration) *Continuation {
	s.generation++
	c := &Continuation{
		Kind:       kind,
		StageID:    id,
		Generation: s.generation,
		Delay:      delay,
	}
	s.pending = c
	cp := *c
	return &cp
}

func (s *Session) cancelPending() {
	if s.pending != nil {
		s.logger.Debug("continuation cancelled", "kind", s.pending.Kind, "stage", s.pending.StageID)
	}
	s.pending = nil
	s.generation++
}

// Resolve runs c if it is still the pending continuation.
// It reports whether c applied; stale or repeated continuations are no-ops.
func (s *Session) Resolve(c Continuation) (progress.GameState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil || *s.pending != c {
		return s.store.State(), false, nil
	}
	s.pending = nil

	switch c.Kind {
	case ClearPicks:
		if s.puzzle != nil {
			s.puzzle.Reset()
		}
		return s.store.State(), true, nil

	case CompleteStage:
		stage, ok := s.cat.Stage(int(c.StageID))
		if !ok {
			return s.store.State(), false, ErrNotPlaying
		}
		st, err := s.dispatch(progress.CompleteStage{StageID: c.StageID, Reward: stage.Reward})
		if err != nil {
			return st, false, err
		}
		s.logger.Info("stage completed", "stage", c.StageID, "score", st.TotalScore)
		s.loadStage(st)
		if st.GameCompleted {
			s.finish(st)
		}
		return st, true, nil
	}
	return s.store.State(), false, nil
}

func (s *Session) finish(st progress.GameState) {
	at := s.now()
	s.finishedAt = &at
	sum := s.summary(st)
	s.logger.Info("game completed", "player", sum.PlayerLabel, "score", sum.Score, "rank", sum.Rank, "time", sum.ElapsedString())
	if s.onFinish != nil {
		s.onFinish(sum)
	}
}
