package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/logger"
)

var flagConfig string

// main - is the entry point of the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Two players, one board",
	Long: `Hot-seat tic-tac-toe. Both players take turns on the same screen,
either in a browser (serve) or in the terminal (play).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.yml (default: ./config.yml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
}

// initialize config.
func initConfig() *config.Config {
	if flagConfig != "" {
		return config.MustLoad(flagConfig)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(w io.Writer, conf *config.Config) *slog.Logger {
	return logger.New(w, conf.LogLevel, conf.LogFormat)
}
