package tui

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
	"github.com/vovakirdan/delta-legacy/internal/config"
	"github.com/vovakirdan/delta-legacy/internal/engine"
	"github.com/vovakirdan/delta-legacy/internal/feedback"
	"github.com/vovakirdan/delta-legacy/internal/progress"
	"github.com/vovakirdan/delta-legacy/internal/registry"
	"github.com/vovakirdan/delta-legacy/internal/storage"
)

// screen is the page the model is showing.
type screen int

const (
	screenHome screen = iota
	screenStage
	screenComplete
	screenScores
)

// statusTTL is how long a feedback message stays on the status line.
const statusTTL = 2 * time.Second

// Options configures a game model.
type Options struct {
	Catalog  catalog.Catalog
	Store    *storage.Store // May be nil; runs are then not recorded
	Settings config.Settings
	Logger   *log.Logger
	Player   string    // Prefilled player label
	Bell     io.Writer // Terminal that receives BEL; nil disables the bell
	Width    int
	Height   int
}

// Model is the Bubble Tea model for a play-through: home, stages, completion
// and the leaderboard.
type Model struct {
	session *engine.Session
	events  *feedback.Channel
	mute    *feedback.Mute
	store   *storage.Store
	cat     catalog.Catalog
	logger  *log.Logger

	screen     screen
	prevScreen screen
	name       textinput.Model
	scores     ScoreboardModel
	keys       KeyMap
	help       help.Model

	cursor   int
	showHint bool
	hint     string
	status   string
	statusAt time.Time
	lastErr  string

	width    int
	height   int
	quitting bool
}

// NewModel creates the model and its session.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	events := feedback.NewChannel(feedback.DefaultBuffer)

	var bell feedback.Notifier = feedback.Discard
	if opts.Bell != nil && opts.Settings.Audio.Bell {
		bell = feedback.NewBell(opts.Bell)
	}
	mute := feedback.NewMute(bell, opts.Settings.Audio.Muted)

	store := opts.Store
	cat := opts.Catalog
	sessionOpts := []engine.Option{
		engine.WithNotifier(feedback.Multi{events, mute}),
		engine.WithLogger(logger.WithPrefix("engine")),
		engine.WithDelays(engine.Delays{
			Mismatch: opts.Settings.Pacing.MismatchDelay(),
			Complete: opts.Settings.Pacing.CompleteDelay(),
		}),
		engine.OnFinish(func(sum progress.Summary) {
			if store == nil {
				return
			}
			if _, err := store.SaveRun(storage.NewRun(cat.ID, sum, time.Now())); err != nil {
				logger.Error("could not save run", "error", err)
			}
		}),
	}

	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 32
	name.Width = 32
	name.SetValue(opts.Player)
	name.Focus()

	scores := NewScoreboardModel(store, opts.Width, opts.Height, extraCatalogs(cat)...)
	scores.embedded = true
	scores.Select(cat.ID)

	return Model{
		session: engine.NewSession(cat, sessionOpts...),
		events:  events,
		mute:    mute,
		store:   store,
		cat:     cat,
		logger:  logger,
		name:    name,
		scores:  scores,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   opts.Width,
		height:  opts.Height,
	}
}

// extraCatalogs returns cat's info when it was loaded from a file.
func extraCatalogs(cat catalog.Catalog) []registry.CatalogInfo {
	if cat.ID == "" || registry.Exists(cat.ID) {
		return nil
	}
	return []registry.CatalogInfo{{ID: cat.ID, Title: cat.Title, Stages: cat.StageCount()}}
}

// Session exposes the underlying session.
func (m Model) Session() *engine.Session {
	return m.session
}

// Init starts listening for feedback events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenFeedback(m.events), tickCmd(time.Second))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.scores, cmd = m.updateScores(msg)
		return m, cmd

	case TickMsg:
		if m.status != "" && time.Since(m.statusAt) > statusTTL {
			m.status = ""
		}
		return m, tickCmd(time.Second)

	case FeedbackMsg:
		m.flash(feedback.Event(msg))
		return m, listenFeedback(m.events)

	case ContinuationMsg:
		return m.resolve(engine.Continuation(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.screen {
		case screenHome:
			return m.updateHome(msg)
		case screenStage:
			return m.updateStage(msg)
		case screenComplete:
			return m.updateComplete(msg)
		case screenScores:
			return m.updateScoresScreen(msg)
		}
	}

	if m.screen == screenHome {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.events.Close()
	return m, tea.Quit
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.quit()
	case "tab":
		return m.openScores()
	case "enter":
		if _, err := m.session.Start(m.name.Value()); err != nil {
			m.lastErr = describe(err)
			return m, nil
		}
		m.lastErr = ""
		m.enterStage()
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	m.lastErr = ""
	return m, cmd
}

func (m Model) updateStage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	stage, ok := m.session.CurrentStage()
	if !ok {
		return m, nil
	}

	if idx, ok := digitIndex(msg); ok {
		if idx >= len(stage.Items) {
			return m, nil
		}
		m.cursor = idx
		return m.pick(stage.Items[idx].ID)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(stage.Items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Pick):
		if m.cursor < len(stage.Items) {
			return m.pick(stage.Items[m.cursor].ID)
		}

	case key.Matches(msg, m.keys.Hint):
		if m.showHint {
			m.showHint = false
			return m, nil
		}
		text, err := m.session.Hint()
		if err != nil {
			m.lastErr = describe(err)
			return m, nil
		}
		m.hint = text
		m.showHint = true

	case key.Matches(msg, m.keys.Reset):
		if _, err := m.session.ResetPuzzle(); err != nil {
			m.lastErr = describe(err)
			return m, nil
		}
		m.lastErr = ""

	case key.Matches(msg, m.keys.Mute):
		if m.mute.Toggle() {
			m.setStatus("Sound off")
		} else {
			m.setStatus("Sound on")
		}

	case key.Matches(msg, m.keys.Restart):
		m.restart()

	case key.Matches(msg, m.keys.Scores):
		return m.openScores()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) updateComplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "tab":
		return m.openScores()
	case "enter", "r", "ctrl+r":
		m.restart()
	}
	return m, nil
}

func (m Model) updateScoresScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scores, cmd := m.updateScores(msg)
	m.scores = scores
	if scores.IsQuitting() {
		m.events.Close()
		m.quitting = true
		return m, cmd
	}
	if scores.IsGoingBack() {
		m.scores.goingBack = false
		m.screen = m.prevScreen
		if m.screen == screenHome {
			m.name.Focus()
		}
	}
	return m, cmd
}

func (m Model) updateScores(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		return sb, cmd
	}
	return m.scores, cmd
}

func (m Model) openScores() (tea.Model, tea.Cmd) {
	m.prevScreen = m.screen
	m.screen = screenScores
	m.name.Blur()
	m.scores.Select(m.cat.ID)
	return m, nil
}

func (m Model) pick(itemID string) (tea.Model, tea.Cmd) {
	out, err := m.session.Pick(itemID)
	if err != nil {
		m.lastErr = describe(err)
		return m, nil
	}
	m.lastErr = ""
	if out.Next != nil {
		return m, continueCmd(*out.Next)
	}
	return m, nil
}

func (m Model) resolve(c engine.Continuation) (tea.Model, tea.Cmd) {
	st, applied, err := m.session.Resolve(c)
	if err != nil {
		m.lastErr = describe(err)
		return m, nil
	}
	if !applied || c.Kind != engine.CompleteStage {
		return m, nil
	}

	next := screenStage
	if st.GameCompleted {
		next = screenComplete
	}

	// Leave the leaderboard open; Back lands on the new screen.
	onScores := m.screen == screenScores
	m.enterStage()
	m.screen = next
	if onScores {
		m.prevScreen = next
		m.screen = screenScores
	}
	return m, nil
}

// enterStage resets per-stage view state.
func (m *Model) enterStage() {
	m.screen = screenStage
	m.cursor = 0
	m.showHint = false
	m.hint = ""
	m.name.Blur()
}

func (m *Model) restart() {
	m.session.Restart()
	m.screen = screenHome
	m.status = ""
	m.lastErr = ""
	m.name.Focus()
}

func (m *Model) flash(e feedback.Event) {
	switch e {
	case feedback.Success:
		m.setStatus("Feature unlocked!")
	case feedback.Error:
		m.setStatus("Not quite. The sequence will reset.")
	case feedback.Unlock:
		m.setStatus("Sequence correct! Stage solved.")
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusAt = time.Now()
}

// describe turns a session error into a player-facing message.
func describe(err error) string {
	switch {
	case errors.Is(err, progress.ErrBlankPlayer):
		return "Please enter a name to begin."
	case errors.Is(err, engine.ErrCompletionPending):
		return "Hold on, the stage is being completed."
	case errors.Is(err, engine.ErrUnknownItem):
		return "That item is not part of this stage."
	case errors.Is(err, engine.ErrNotPlaying):
		return "No stage is in play."
	default:
		return strings.TrimPrefix(err.Error(), "progress: ")
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenStage:
		return m.viewStage()
	case screenComplete:
		return m.viewComplete()
	case screenScores:
		return m.scores.View()
	default:
		return m.viewHome()
	}
}

// Run starts a local play session.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
