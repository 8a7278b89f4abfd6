package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

// GameService runs one engine per browser session on top of a session store.
// Commands on the same session are applied one at a time.
type GameService interface {
	GetGame(ctx context.Context, sessionID string) (View, error)
	PlayRound(ctx context.Context, sessionID string, row, col int) (View, error)
	ResetGame(ctx context.Context, sessionID string) (View, error)
}

type sessionRepo interface {
	Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error
	GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger *slog.Logger

	sessionRepo  sessionRepo
	firstPlayer  string
	secondPlayer string
	locks        *sessionLocks
}

func NewGameService(logger *slog.Logger, sessionRepo sessionRepo, firstPlayer, secondPlayer string) GameService {
	return &gameService{
		logger:       logger.With("component", "game_service"),
		sessionRepo:  sessionRepo,
		firstPlayer:  firstPlayer,
		secondPlayer: secondPlayer,
		locks:        newSessionLocks(),
	}
}

func (that *gameService) GetGame(ctx context.Context, sessionID string) (View, error) {
	unlock := that.locks.lock(sessionID)
	defer unlock()

	engine, err := that.loadEngine(ctx, sessionID)
	if err != nil {
		return View{}, err
	}

	return NewView(engine), nil
}

func (that *gameService) PlayRound(ctx context.Context, sessionID string, row, col int) (View, error) {
	log := that.logger.With("method", "PlayRound", "session", sessionID)

	unlock := that.locks.lock(sessionID)
	defer unlock()

	engine, err := that.loadEngine(ctx, sessionID)
	if err != nil {
		return View{}, err
	}

	placed, err := engine.PlayRound(row, col)
	if err != nil {
		return View{}, fmt.Errorf("failed to play round: %w", err)
	}

	if !placed {
		log.Debug("round ignored", "row", row, "col", col, "status", engine.State().Status)
		return NewView(engine), nil
	}

	log.Debug("round played", "row", row, "col", col, "board", "\n"+engine.BoardString())
	log.Info(Announcement(engine))

	if err = that.sessionRepo.Save(ctx, sessionID, engine.Snapshot()); err != nil {
		return View{}, fmt.Errorf("failed to save game: %w", err)
	}

	return NewView(engine), nil
}

// ResetGame forgets the stored game; the next command on the session starts from an empty board.
func (that *gameService) ResetGame(ctx context.Context, sessionID string) (View, error) {
	log := that.logger.With("method", "ResetGame", "session", sessionID)

	unlock := that.locks.lock(sessionID)
	defer unlock()

	err := that.sessionRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		return View{}, fmt.Errorf("failed to delete game: %w", err)
	}

	engine := tictactoe.NewEngine(that.firstPlayer, that.secondPlayer)

	log.Info("game has been reset", "turn", engine.CurrentPlayer().Name)

	return NewView(engine), nil
}

// loadEngine restores the session's game, starting a new one when the session has none yet.
func (that *gameService) loadEngine(ctx context.Context, sessionID string) (*tictactoe.Engine, error) {
	log := that.logger.With("method", "loadEngine", "session", sessionID)

	snapshot, err := that.sessionRepo.GetByID(ctx, sessionID)
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return tictactoe.NewEngine(that.firstPlayer, that.secondPlayer), nil
	case errors.Is(err, apperror.ErrCorruptedSnapshot):
		log.Warn("discarding unreadable game", "error", err)
		return tictactoe.NewEngine(that.firstPlayer, that.secondPlayer), nil
	case err != nil:
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	engine, err := tictactoe.Restore(snapshot)
	if errors.Is(err, apperror.ErrCorruptedSnapshot) {
		log.Warn("discarding unreadable game", "error", err)
		return tictactoe.NewEngine(that.firstPlayer, that.secondPlayer), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return engine, nil
}
