package progress

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
)

var t0 = time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

func mustReduce(t *testing.T, s GameState, a Action) GameState {
	t.Helper()
	next, err := Reduce(s, a, t0)
	if err != nil {
		t.Fatalf("Reduce(%s) error: %v", a, err)
	}
	if err := CheckInvariants(next); err != nil {
		t.Fatalf("after %s: %v", a, err)
	}
	return next
}

func reward(i int) catalog.Reward {
	return catalog.Reward{Title: "Reward", Fact: string(rune('A' + i))}
}

func TestBonus(t *testing.T) {
	tests := []struct {
		failed int
		want   int
	}{
		{0, 100},
		{1, 90},
		{3, 70},
		{5, 50},
		{6, 50},
		{20, 50},
	}
	for _, tt := range tests {
		if got := Bonus(tt.failed); got != tt.want {
			t.Errorf("Bonus(%d) = %d, want %d", tt.failed, got, tt.want)
		}
	}
}

func TestInitial(t *testing.T) {
	s := Initial(6)
	if err := CheckInvariants(s); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v", s.Phase())
	}
	if len(s.StageProgress) != 6 {
		t.Errorf("StageProgress has %d entries, want 6", len(s.StageProgress))
	}
	if s.CompletedStages == nil || s.UnlockedRewards == nil {
		t.Error("initial slices should be empty, not nil")
	}
	if Initial(-1).StageCount() != 0 {
		t.Error("negative stage count should clamp to 0")
	}
}

func TestStartGame(t *testing.T) {
	s := mustReduce(t, Initial(3), StartGame{PlayerLabel: "  Ada  "})

	if s.PlayerLabel != "Ada" {
		t.Errorf("PlayerLabel = %q, want trimmed", s.PlayerLabel)
	}
	if s.SessionStartedAt == nil || !s.SessionStartedAt.Equal(t0) {
		t.Errorf("SessionStartedAt = %v", s.SessionStartedAt)
	}
	if s.Phase() != PhaseInProgress {
		t.Errorf("Phase() = %v", s.Phase())
	}
}

func TestFullRun(t *testing.T) {
	s := mustReduce(t, Initial(3), StartGame{PlayerLabel: "Ada"})

	// Stage 0 cleared first try; stage 1 after two misses; stage 2 after seven.
	failures := []int{0, 2, 7}
	want := []int{100, 180, 230}
	for i, n := range failures {
		id := StageID(i)
		for j := 0; j < n; j++ {
			s = mustReduce(t, s, IncrementAttempts{StageID: id})
		}
		s = mustReduce(t, s, CompleteStage{StageID: id, Reward: reward(i)})

		if s.TotalScore != want[i] {
			t.Errorf("after stage %d score = %d, want %d", i, s.TotalScore, want[i])
		}
		if p, _ := s.Progress(id); p.Attempts != n+1 || !p.Completed {
			t.Errorf("stage %d progress = %+v", i, p)
		}
	}

	if !s.GameCompleted || s.Phase() != PhaseCompleted {
		t.Error("game should be completed")
	}
	if s.CurrentStageIndex != 3 {
		t.Errorf("CurrentStageIndex = %d, want 3", s.CurrentStageIndex)
	}
	if !reflect.DeepEqual(s.CompletedStages, []StageID{0, 1, 2}) {
		t.Errorf("CompletedStages = %v", s.CompletedStages)
	}
	if s.UnlockedRewards[1] != reward(1) {
		t.Errorf("rewards out of order: %v", s.UnlockedRewards)
	}
	if s.Percent() != 100 || s.TotalAttempts() != 12 {
		t.Errorf("Percent = %d, TotalAttempts = %d", s.Percent(), s.TotalAttempts())
	}
}

func TestRejections(t *testing.T) {
	fresh := Initial(3)
	started := mustReduce(t, fresh, StartGame{PlayerLabel: "Ada"})
	oneDone := mustReduce(t, started, CompleteStage{StageID: 0, Reward: reward(0)})

	finished := started
	for i := 0; i < 3; i++ {
		finished = mustReduce(t, finished, CompleteStage{StageID: StageID(i), Reward: reward(i)})
	}

	tests := []struct {
		name  string
		state GameState
		act   Action
		want  error
	}{
		{"blank label", fresh, StartGame{PlayerLabel: " \t"}, ErrBlankPlayer},
		{"start twice", started, StartGame{PlayerLabel: "Bea"}, ErrAlreadyStarted},
		{"start after finish", finished, StartGame{PlayerLabel: "Bea"}, ErrAlreadyStarted},
		{"complete before start", fresh, CompleteStage{StageID: 0}, ErrNotInProgress},
		{"complete after finish", finished, CompleteStage{StageID: 0}, ErrNotInProgress},
		{"complete unknown stage", started, CompleteStage{StageID: 9}, ErrUnknownStage},
		{"complete ahead", started, CompleteStage{StageID: 2}, ErrWrongStage},
		{"complete twice", oneDone, CompleteStage{StageID: 0}, ErrStageCompleted},
		{"attempt before start", fresh, IncrementAttempts{StageID: 0}, ErrNotInProgress},
		{"attempt unknown stage", started, IncrementAttempts{StageID: -1}, ErrUnknownStage},
		{"attempt after completion", oneDone, IncrementAttempts{StageID: 0}, ErrStageCompleted},
		{"hint before start", fresh, UseHint{StageID: 0}, ErrNotInProgress},
		{"hint after finish", finished, UseHint{StageID: 2}, ErrNotInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(tt.state, tt.act, t0)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !reflect.DeepEqual(got, tt.state) {
				t.Error("rejected action changed the state")
			}
		})
	}
}

func TestHintsDoNotScore(t *testing.T) {
	s := mustReduce(t, Initial(1), StartGame{PlayerLabel: "Ada"})
	s = mustReduce(t, s, UseHint{StageID: 0})
	s = mustReduce(t, s, UseHint{StageID: 0})
	s = mustReduce(t, s, CompleteStage{StageID: 0, Reward: reward(0)})

	if s.TotalScore != 100 {
		t.Errorf("TotalScore = %d, want 100", s.TotalScore)
	}
	if s.TotalHints() != 2 {
		t.Errorf("TotalHints() = %d, want 2", s.TotalHints())
	}
}

func TestResetGame(t *testing.T) {
	s := mustReduce(t, Initial(3), StartGame{PlayerLabel: "Ada"})
	s = mustReduce(t, s, IncrementAttempts{StageID: 0})
	s = mustReduce(t, s, CompleteStage{StageID: 0, Reward: reward(0)})

	got := mustReduce(t, s, ResetGame{})
	if !reflect.DeepEqual(got, Initial(3)) {
		t.Errorf("ResetGame = %+v, want initial", got)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := mustReduce(t, Initial(2), StartGame{PlayerLabel: "Ada"})
	before := s.Clone()

	mustReduce(t, s, IncrementAttempts{StageID: 0})
	mustReduce(t, s, CompleteStage{StageID: 0, Reward: reward(0)})

	if !reflect.DeepEqual(s, before) {
		t.Error("Reduce mutated its input snapshot")
	}
}

func TestCheckInvariantsDetectsCorruption(t *testing.T) {
	good := mustReduce(t, Initial(2), StartGame{PlayerLabel: "Ada"})
	good = mustReduce(t, good, CompleteStage{StageID: 0, Reward: reward(0)})

	tests := map[string]func(s *GameState){
		"score drift":       func(s *GameState) { s.TotalScore = 95 },
		"missing reward":    func(s *GameState) { s.UnlockedRewards = nil },
		"index ahead":       func(s *GameState) { s.CurrentStageIndex = 2 },
		"flag disagrees":    func(s *GameState) { s.StageProgress[1] = StageProgress{Completed: true} },
		"negative counter":  func(s *GameState) { s.StageProgress[1] = StageProgress{Hints: -1} },
		"premature finish":  func(s *GameState) { s.GameCompleted = true },
		"out of order list": func(s *GameState) { s.CompletedStages = []StageID{1} },
	}

	for name, corrupt := range tests {
		t.Run(name, func(t *testing.T) {
			s := good.Clone()
			corrupt(&s)
			if err := CheckInvariants(s); !errors.Is(err, ErrInvariant) {
				t.Errorf("CheckInvariants() = %v, want ErrInvariant", err)
			}
		})
	}
}

func TestStore(t *testing.T) {
	now := t0
	store := NewStore(2, func() time.Time { return now })

	if _, err := store.Dispatch(CompleteStage{StageID: 0}); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("Dispatch before start error = %v", err)
	}

	st, err := store.Dispatch(StartGame{PlayerLabel: "Ada"})
	if err != nil {
		t.Fatal(err)
	}
	if !st.SessionStartedAt.Equal(t0) {
		t.Errorf("SessionStartedAt = %v", st.SessionStartedAt)
	}

	// Snapshots handed out are copies.
	st.StageProgress[0] = StageProgress{Attempts: 99}
	st.CompletedStages = append(st.CompletedStages, 1)
	if p, _ := store.State().Progress(0); p.Attempts != 0 {
		t.Error("caller mutation leaked into the store")
	}
	if err := CheckInvariants(store.State()); err != nil {
		t.Error(err)
	}
}

func TestSummary(t *testing.T) {
	notStarted := Summarize(Initial(6), t0)
	if notStarted.ElapsedString() != "N/A" {
		t.Errorf("ElapsedString() = %q, want N/A", notStarted.ElapsedString())
	}
	if notStarted.Rank != RankCuriousExplorer {
		t.Errorf("Rank = %q", notStarted.Rank)
	}

	s := mustReduce(t, Initial(6), StartGame{PlayerLabel: "Ada"})
	sum := Summarize(s, t0.Add(4*time.Minute+7*time.Second))
	if sum.ElapsedString() != "4:07" {
		t.Errorf("ElapsedString() = %q, want 4:07", sum.ElapsedString())
	}
	if sum.PlayerLabel != "Ada" || sum.Stages != 6 {
		t.Errorf("Summary = %+v", sum)
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		score int
		want  Rank
	}{
		{600, RankLegendaryHistorian},
		{500, RankLegendaryHistorian},
		{499, RankMasterResearcher},
		{400, RankMasterResearcher},
		{300, RankSkilledDetective},
		{299, RankCuriousExplorer},
		{0, RankCuriousExplorer},
	}
	for _, tt := range tests {
		if got := Rate(tt.score); got != tt.want {
			t.Errorf("Rate(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := map[time.Duration]string{
		0:                           "0:00",
		59 * time.Second:            "0:59",
		61 * time.Second:            "1:01",
		75*time.Minute + time.Second: "75:01",
		-time.Second:                "0:00",
	}
	for d, want := range tests {
		if got := FormatElapsed(d); got != want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", d, got, want)
		}
	}
}
