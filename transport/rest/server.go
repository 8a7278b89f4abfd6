package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the page, the JSON API and any extra handlers (the websocket endpoint) onto one mux.
func NewRouter(logger *slog.Logger, gameService gameService, extra map[string]http.Handler) http.Handler {
	handlers := NewHandlers(logger, gameService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", Ping(logger))
	mux.HandleFunc("GET /{$}", handlers.Index)
	mux.HandleFunc("GET /api/game", handlers.GetGame)
	mux.HandleFunc("POST /api/game/round", handlers.PlayRound)
	mux.HandleFunc("POST /api/game/reset", handlers.ResetGame)

	for pattern, handler := range extra {
		mux.Handle(pattern, handler)
	}

	return mux
}

// Start serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		// long lived websocket requests end with the application context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}
