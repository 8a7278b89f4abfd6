package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tui"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play a hot-seat game in the terminal.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Place the current player's mark
  1-9          - Place on a cell directly
  R            - Reset the game
  Q/Ctrl+C     - Quit`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write game logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) error {
	conf := initConfig()

	var out io.Writer = io.Discard
	if flagLogFile != "" {
		file, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer file.Close()
		out = file
	}

	logger := initLogger(out, conf)
	engine := tictactoe.NewEngine(conf.Players.First, conf.Players.Second)

	logger.Info("game started", "turn", engine.CurrentPlayer().Name)

	if err := tui.Run(engine, logger, tea.WithAltScreen()); err != nil {
		return fmt.Errorf("terminal game failed: %w", err)
	}

	return nil
}
