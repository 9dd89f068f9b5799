// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, key bindings, and screen flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/delta-legacy/internal/engine"
	"github.com/vovakirdan/delta-legacy/internal/feedback"
)

// TickMsg refreshes time-dependent parts of the view.
type TickMsg time.Time

// ContinuationMsg carries a scheduled continuation back to the model.
type ContinuationMsg engine.Continuation

// FeedbackMsg is a feedback event received from the session.
type FeedbackMsg feedback.Event

// tickCmd sends a TickMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// continueCmd delivers c once its delay has elapsed.
func continueCmd(c engine.Continuation) tea.Cmd {
	return tea.Tick(c.Delay, func(time.Time) tea.Msg {
		return ContinuationMsg(c)
	})
}

// listenFeedback waits for the next event on ch.
// Returns nil once the channel is closed.
func listenFeedback(ch *feedback.Channel) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-ch.Events():
			return FeedbackMsg(e)
		case <-ch.Done():
			return nil
		}
	}
}
