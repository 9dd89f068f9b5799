package progress

import (
	"fmt"
	"time"
)

// Rank is the performance label shown when a play-through ends.
type Rank string

const (
	RankLegendaryHistorian Rank = "Legendary Historian"
	RankMasterResearcher   Rank = "Master Researcher"
	RankSkilledDetective   Rank = "Skilled Detective"
	RankCuriousExplorer    Rank = "Curious Explorer"
)

// Rate maps a total score to a rank.
func Rate(score int) Rank {
	switch {
	case score >= 500:
		return RankLegendaryHistorian
	case score >= 400:
		return RankMasterResearcher
	case score >= 300:
		return RankSkilledDetective
	default:
		return RankCuriousExplorer
	}
}

// Summary is the end-of-run report.
type Summary struct {
	PlayerLabel string
	Score       int
	Rank        Rank
	Elapsed     time.Duration
	Started     bool
	Stages      int
	Completed   int
	Attempts    int
	Hints       int
}

// ElapsedString formats the elapsed time as m:ss, or N/A if the run never started.
func (s Summary) ElapsedString() string {
	if !s.Started {
		return "N/A"
	}
	return FormatElapsed(s.Elapsed)
}

// Summarize builds the report for s as of now.
func Summarize(s GameState, now time.Time) Summary {
	sum := Summary{
		PlayerLabel: s.PlayerLabel,
		Score:       s.TotalScore,
		Rank:        Rate(s.TotalScore),
		Stages:      s.stageCount,
		Completed:   len(s.CompletedStages),
		Attempts:    s.TotalAttempts(),
		Hints:       s.TotalHints(),
	}
	if s.SessionStartedAt != nil {
		sum.Started = true
		sum.Elapsed = now.Sub(*s.SessionStartedAt)
		if sum.Elapsed < 0 {
			sum.Elapsed = 0
		}
	}
	return sum
}

// FormatElapsed renders d as minutes and zero-padded seconds.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
