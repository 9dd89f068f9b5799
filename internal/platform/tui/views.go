package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
	"github.com/vovakirdan/delta-legacy/internal/progress"
	"github.com/vovakirdan/delta-legacy/internal/puzzle"
)

// contentWidth is the usable width for panels.
func (m Model) contentWidth() int {
	w := m.width - 4
	if w <= 0 || w > 100 {
		w = 100
	}
	return w
}

func (m Model) viewHome() string {
	var b strings.Builder
	w := m.contentWidth()

	title := strings.ToUpper(m.cat.Title)
	if title == "" {
		title = "DELTA LEGACY"
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(subtleStyle.Render(fmt.Sprintf("%d stages of history to uncover", m.cat.StageCount())), m.width))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, s := range m.cat.Stages {
		fmt.Fprintf(&list, "%d. %s\n", i+1, fit(s.Title, w-8))
	}
	b.WriteString(panelStyle.Render(strings.TrimRight(list.String(), "\n")))
	b.WriteString("\n\n")

	b.WriteString("Who is playing?\n")
	b.WriteString(m.name.View())
	b.WriteString("\n")
	if m.lastErr != "" {
		b.WriteString(errorStyle.Render(m.lastErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("enter: begin  |  tab: leaderboard  |  esc: quit"))
	return b.String()
}

func (m Model) viewStage() string {
	stage, ok := m.session.CurrentStage()
	if !ok {
		return ""
	}
	st := m.session.State()
	snap := m.session.Puzzle()
	w := m.contentWidth()

	var b strings.Builder
	b.WriteString(m.header(st, stage))
	b.WriteString("\n\n")

	if stage.Setting != "" {
		b.WriteString(subtleStyle.Render(fit(stage.Setting, w)))
		b.WriteString("\n")
	}
	if stage.Description != "" {
		b.WriteString(wrap(stage.Description, w))
		b.WriteString("\n")
	}
	if stage.Prompt != "" {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(wrap(stage.Prompt, w)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	items := m.renderItems(stage, snap, w)
	side := m.renderFeatures(snap)
	if side != "" && m.width >= 90 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, items, "  ", side))
	} else {
		b.WriteString(items)
		if side != "" {
			b.WriteString("\n")
			b.WriteString(side)
		}
	}
	b.WriteString("\n")

	b.WriteString(m.renderVerdict(snap))
	b.WriteString("\n")

	if m.showHint && m.hint != "" {
		b.WriteString(panelStyle.Render("Hint\n" + wrap(m.hint, w-4)))
		b.WriteString("\n")
	}
	if m.lastErr != "" {
		b.WriteString(errorStyle.Render(m.lastErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// header shows stage, score, attempts and overall progress.
func (m Model) header(st progress.GameState, stage catalog.Stage) string {
	p, _ := st.Progress(progress.StageID(stage.ID))
	sum := m.session.Summary()

	left := titleStyle.Render(fmt.Sprintf("Stage %d/%d  %s", stage.ID+1, st.StageCount(), stage.Title))
	right := fmt.Sprintf("Score %d  |  Attempts %d  |  Hints %d  |  %s",
		st.TotalScore, p.Attempts, p.Hints, sum.ElapsedString())
	if m.mute.Muted() {
		right += "  |  muted"
	}

	lines := []string{
		left,
		subtleStyle.Render(right),
		progressBar(st.Percent(), 30),
	}
	if m.status != "" {
		lines = append(lines, successStyle.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderItems(stage catalog.Stage, snap puzzle.Snapshot, width int) string {
	var b strings.Builder
	labelWidth := min(width-12, 48)

	for i, it := range stage.Items {
		order := "   "
		if pos := snap.Position(it.ID); pos > 0 {
			order = fmt.Sprintf("[%d]", pos)
		}

		label := it.Name
		if it.Icon != "" {
			label = it.Icon + " " + label
		}
		if it.Detail != "" {
			label += " - " + it.Detail
		}
		line := fmt.Sprintf("%d %s %s", i+1, order, fit(label, labelWidth))

		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case snap.Position(it.ID) > 0:
			line = pickedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(subtleStyle.Render(fmt.Sprintf("%d of %d selected", len(snap.Picks), snap.Size)))
	return panelStyle.Render(b.String())
}

// renderFeatures lists features, locked ones greyed out.
func (m Model) renderFeatures(snap puzzle.Snapshot) string {
	if len(snap.Features) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Unlocked\n")
	for i, f := range snap.Features {
		if i < len(snap.Unlocked) {
			b.WriteString(successStyle.Render("+ " + fit(f, 36)))
		} else {
			b.WriteString(lockedStyle.Render("- locked"))
		}
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderVerdict(snap puzzle.Snapshot) string {
	switch snap.Verdict {
	case puzzle.Matched:
		return successStyle.Render("Correct sequence!")
	case puzzle.Mismatched:
		return errorStyle.Render("That order is not right. Clearing picks...")
	default:
		return ""
	}
}

func (m Model) viewComplete() string {
	st := m.session.State()
	sum := m.session.Summary()
	w := m.contentWidth()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("JOURNEY COMPLETE", m.width)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Player  %s\nScore   %d\nTime    %s\nRank    %s\nHints   %d\nTries   %d",
		sum.PlayerLabel, sum.Score, sum.ElapsedString(), sum.Rank, sum.Hints, sum.Attempts)
	b.WriteString(panelStyle.Render(stats))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Historical rewards"))
	b.WriteString("\n")
	for _, r := range st.UnlockedRewards {
		card := successStyle.Render(r.Title)
		if r.Fact != "" {
			card += "\n" + wrap(r.Fact, w-6)
		}
		b.WriteString(rewardStyle.Render(card))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("enter: play again  |  tab: leaderboard  |  q: quit"))
	return b.String()
}
