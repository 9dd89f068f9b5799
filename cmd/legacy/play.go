package main

import (
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/delta-legacy/internal/config"
	"github.com/vovakirdan/delta-legacy/internal/platform/tui"
	"github.com/vovakirdan/delta-legacy/internal/storage"
)

var (
	flagName  string
	flagPace  string
	flagMuted bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a play-through",
	Long: `Start a play-through of the selected catalog.

Controls:
  Up/Down, j/k  - Move the cursor
  Enter/Space   - Pick the highlighted item
  1-9           - Pick an item directly
  H             - Show or hide the stage hint
  R/Backspace   - Clear the current picks
  M             - Mute or unmute cues
  Ctrl+R        - Restart from the first stage
  Tab           - Leaderboard
  Q/Ctrl+C      - Quit

Pacing presets:
  relaxed   - Long pauses after each verdict
  standard  - Default pauses
  brisk     - Short pauses

Examples:
  legacy play
  legacy play --name Ada
  legacy play --pace brisk --mute
  legacy play --catalog ./my-stages.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (prefilled on the start screen)")
	playCmd.Flags().StringVar(&flagPace, "pace", "", "Pacing preset: relaxed, standard, brisk")
	playCmd.Flags().BoolVar(&flagMuted, "mute", false, "Start with cues muted")
}

func runPlay(cmd *cobra.Command, _ []string) {
	settings, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	if flagPace != "" {
		preset, err := config.ParsePace(flagPace)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyPace(&settings.Pacing, preset)
	}
	if flagMuted {
		settings.Audio.Muted = true
	}

	cat, err := resolveCatalog(settings)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(settings, "legacy", io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	// A missing database only disables the leaderboard
	store, err := storage.Open(settings.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	player := flagName
	if player == "" {
		if u, err := user.Current(); err == nil {
			player = u.Username
		}
	}

	logger.Info("starting play", "catalog", cat.ID, "stages", cat.StageCount(), "pace", settings.Pacing.Preset)

	err = tui.Run(tui.Options{
		Catalog:  cat,
		Store:    store,
		Settings: settings,
		Logger:   logger,
		Player:   player,
		Bell:     os.Stdout,
		Width:    width,
		Height:   height,
	})
	if err != nil {
		fail("%v", err)
	}
}
