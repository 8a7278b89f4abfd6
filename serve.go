package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-hotseat/internal"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game in the browser",
	Long: `Start the HTTP server. Open http://localhost:<port>/ and play;
every browser session gets its own board.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", "", "HTTP port (overrides http-port from the config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	conf := initConfig()
	if flagPort != "" {
		conf.HTTPPort = flagPort
	}

	logger := initLogger(os.Stdout, conf)

	if err := app.RunApp(logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}
