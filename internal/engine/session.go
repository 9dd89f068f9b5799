// Package engine drives a single play-through. A Session owns the progress
// store and the current stage's puzzle, turns picks into state-machine actions
// and returns delayed continuations for the presentation layer to schedule.
package engine

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
	"github.com/vovakirdan/delta-legacy/internal/feedback"
	"github.com/vovakirdan/delta-legacy/internal/progress"
	"github.com/vovakirdan/delta-legacy/internal/puzzle"
)

var (
	ErrNotPlaying        = errors.New("no stage in play")
	ErrUnknownItem       = errors.New("item is not part of the current stage")
	ErrCompletionPending = errors.New("stage completion is pending")
)

// Delays controls the pauses between a verdict and its consequence.
type Delays struct {
	Mismatch time.Duration // Before a wrong pick set is cleared
	Complete time.Duration // Before a matched stage is completed
}

// DefaultDelays are the standard pauses.
var DefaultDelays = Delays{
	Mismatch: 1500 * time.Millisecond,
	Complete: 2000 * time.Millisecond,
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier sets the feedback sink.
func WithNotifier(n feedback.Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the logger used for rejected actions.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDelays overrides the default pauses. Zero fields keep their default.
func WithDelays(d Delays) Option {
	return func(s *Session) {
		if d.Mismatch > 0 {
			s.delays.Mismatch = d.Mismatch
		}
		if d.Complete > 0 {
			s.delays.Complete = d.Complete
		}
	}
}

// OnFinish registers a callback invoked once when the last stage completes.
func OnFinish(fn func(progress.Summary)) Option {
	return func(s *Session) {
		s.onFinish = fn
	}
}

// PickOutcome is the result of Session.Pick.
type PickOutcome struct {
	puzzle.PickResult
	Next *Continuation // Scheduled consequence of a terminal verdict, if any
}

// Session is one player's play-through of a catalog. Safe for concurrent use.
type Session struct {
	mu sync.Mutex

	cat      catalog.Catalog
	store    *progress.Store
	puzzle   *puzzle.Puzzle
	notifier feedback.Notifier
	logger   *log.Logger
	delays   Delays
	now      func() time.Time
	onFinish func(progress.Summary)

	generation uint64
	pending    *Continuation
	finishedAt *time.Time
}

// NewSession creates a NotStarted session for cat.
func NewSession(cat catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		cat:      cat,
		notifier: feedback.Discard,
		logger:   log.New(io.Discard),
		delays:   DefaultDelays,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = progress.NewStore(cat.StageCount(), s.now)
	return s
}

// Catalog returns the catalog being played.
func (s *Session) Catalog() catalog.Catalog {
	return s.cat
}

// Start begins the play-through at the first stage.
func (s *Session) Start(label string) (progress.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.dispatch(progress.StartGame{PlayerLabel: label})
	if err != nil {
		return st, err
	}
	s.notifier.Notify(feedback.Click)
	s.logger.Info("game started", "player", st.PlayerLabel, "catalog", s.cat.ID)
	s.loadStage(st)
	return st, nil
}

// Pick selects item on the current stage.
func (s *Session) Pick(item string) (PickOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stage, ok := s.currentStage()
	if !ok || s.puzzle == nil {
		return PickOutcome{}, fmt.Errorf("engine: pick %q: %w", item, ErrNotPlaying)
	}
	if _, ok := stage.Item(item); !ok {
		s.logger.Warn("pick rejected", "stage", stage.ID, "item", item)
		return PickOutcome{}, fmt.Errorf("engine: pick %q: %w", item, ErrUnknownItem)
	}

	res := s.puzzle.Pick(item)
	out := PickOutcome{PickResult: res}
	if !res.Accepted {
		return out, nil
	}

	s.notifier.Notify(feedback.Click)
	if res.FeatureUnlocked {
		s.notifier.Notify(feedback.Success)
	}

	id := progress.StageID(stage.ID)
	switch res.Verdict {
	case puzzle.Mismatched:
		// The clear is scheduled first so a rejected count cannot leave the
		// puzzle stuck on a wrong sequence.
		out.Next = s.schedule(ClearPicks, id, s.delays.Mismatch)
		s.notifier.Notify(feedback.Error)
		if _, err := s.dispatch(progress.IncrementAttempts{StageID: id}); err != nil {
			return out, err
		}
	case puzzle.Matched:
		s.notifier.Notify(feedback.Unlock)
		delay := stage.CompleteDelay()
		if delay == 0 {
			delay = s.delays.Complete
		}
		out.Next = s.schedule(CompleteStage, id, delay)
	}
	return out, nil
}

// Hint records a hint request and returns the current stage's hint text.
func (s *Session) Hint() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stage, ok := s.currentStage()
	if !ok {
		return "", fmt.Errorf("engine: hint: %w", ErrNotPlaying)
	}
	if _, err := s.dispatch(progress.UseHint{StageID: progress.StageID(stage.ID)}); err != nil {
		return "", err
	}
	s.notifier.Notify(feedback.Click)
	return stage.Hint, nil
}

// ResetPuzzle clears the current picks. A pending mismatch clear is cancelled
// since its work is done here. Refused while a completion is pending.
func (s *Session) ResetPuzzle() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.puzzle == nil {
		return false, fmt.Errorf("engine: reset: %w", ErrNotPlaying)
	}
	if s.pending != nil && s.pending.Kind == CompleteStage {
		return false, fmt.Errorf("engine: reset: %w", ErrCompletionPending)
	}

	s.cancelPending()
	cleared := s.puzzle.Reset()
	s.notifier.Notify(feedback.Click)
	return cleared, nil
}

// Restart discards the play-through and returns to the NotStarted snapshot.
// Any pending continuation is cancelled.
func (s *Session) Restart() progress.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPending()
	s.puzzle = nil
	s.finishedAt = nil
	st, _ := s.dispatch(progress.ResetGame{})
	s.notifier.Notify(feedback.Click)
	s.logger.Info("game restarted")
	return st
}

// State returns the current snapshot.
func (s *Session) State() progress.GameState {
	return s.store.State()
}

// Puzzle returns the current stage's picks. The zero Snapshot means no stage
// is in play.
func (s *Session) Puzzle() puzzle.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.puzzle == nil {
		return puzzle.Snapshot{}
	}
	return s.puzzle.Snapshot()
}

// CurrentStage returns the stage in play.
func (s *Session) CurrentStage() (catalog.Stage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentStage()
}

// Pending returns the scheduled continuation, if any.
func (s *Session) Pending() (Continuation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return Continuation{}, false
	}
	return *s.pending, true
}

// Summary reports the run. Elapsed time stops when the last stage completes.
func (s *Session) Summary() progress.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.summary(s.store.State())
}

func (s *Session) summary(st progress.GameState) progress.Summary {
	at := s.now()
	if s.finishedAt != nil {
		at = *s.finishedAt
	}
	return progress.Summarize(st, at)
}

func (s *Session) currentStage() (catalog.Stage, bool) {
	st := s.store.State()
	if st.Phase() != progress.PhaseInProgress {
		return catalog.Stage{}, false
	}
	return s.cat.Stage(st.CurrentStageIndex)
}

// loadStage builds a fresh puzzle for the stage st points at.
func (s *Session) loadStage(st progress.GameState) {
	stage, ok := s.cat.Stage(st.CurrentStageIndex)
	if !ok || st.GameCompleted {
		s.puzzle = nil
		return
	}
	s.puzzle = puzzle.New(stage.Solution, stage.Features)
}

// dispatch applies a through the store, logging rejections and any snapshot
// that fails the invariant check.
func (s *Session) dispatch(a progress.Action) (progress.GameState, error) {
	st, err := s.store.Dispatch(a)
	if err != nil {
		s.logger.Warn("action rejected", "action", a.String(), "err", err)
		return st, err
	}
	if ierr := progress.CheckInvariants(st); ierr != nil {
		s.logger.Error("state check failed", "action", a.String(), "err", ierr)
	}
	s.logger.Debug("action applied", "action", a.String(), "stage", st.CurrentStageIndex, "score", st.TotalScore)
	return st, nil
}
