package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error {
	args := that.Called(ctx, id, snapshot)
	return args.Error(0)
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(tictactoe.Snapshot), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestService() GameService {
	return NewGameService(discardLogger(), repository.NewMemorySessionRepository(time.Hour), "Faizan", "Muaz")
}

func TestGameService_GetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts a new game for an unknown session", func(t *testing.T) {
		// Given: a service with an empty store
		svc := newTestService()

		// When: the game is requested
		view, err := svc.GetGame(ctx, "session-1")

		// Then: a fresh game is returned
		require.NoError(t, err)
		assert.Equal(t, entity.StatusInProgress, view.Status)
		assert.Equal(t, "Faizan's turn.", view.Message)
		assert.False(t, view.GameOver)
		assert.Len(t, view.Cells, 9)
		for _, cell := range view.Cells {
			assert.False(t, cell.Disabled)
			assert.Empty(t, cell.Mark)
		}
	})

	t.Run("Returns error when the store fails", func(t *testing.T) {
		// Given: a store that is down
		repo := &mockSessionRepo{}
		repo.On("GetByID", mock.Anything, "session-1").Return(tictactoe.Snapshot{}, errRedisDown).Once()
		svc := NewGameService(discardLogger(), repo, "Faizan", "Muaz")

		// When: the game is requested
		_, err := svc.GetGame(ctx, "session-1")

		// Then: the store error is returned
		require.ErrorIs(t, err, errRedisDown)
		repo.AssertExpectations(t)
	})

	t.Run("Replaces a corrupted snapshot with a new game", func(t *testing.T) {
		// Given: a store holding an impossible snapshot
		corrupted := tictactoe.NewEngine("Faizan", "Muaz").Snapshot()
		corrupted.Status = "paused"

		repo := &mockSessionRepo{}
		repo.On("GetByID", mock.Anything, "session-1").Return(corrupted, nil).Once()
		svc := NewGameService(discardLogger(), repo, "Faizan", "Muaz")

		// When: the game is requested
		view, err := svc.GetGame(ctx, "session-1")

		// Then: a fresh game is returned
		require.NoError(t, err)
		assert.Equal(t, entity.StatusInProgress, view.Status)
	})

	t.Run("Replaces an unreadable stored game with a new game", func(t *testing.T) {
		// Given: a store that cannot decode the session
		repo := &mockSessionRepo{}
		repo.On("GetByID", mock.Anything, "session-1").
			Return(tictactoe.Snapshot{}, fmt.Errorf("%w: bad json", apperror.ErrCorruptedSnapshot)).Once()
		svc := NewGameService(discardLogger(), repo, "Faizan", "Muaz")

		// When: the game is requested
		view, err := svc.GetGame(ctx, "session-1")

		// Then: a fresh game is returned
		require.NoError(t, err)
		assert.Equal(t, "Faizan's turn.", view.Message)
		repo.AssertExpectations(t)
	})
}

func TestGameService_PlayRound(t *testing.T) {
	ctx := context.Background()

	t.Run("Places the mark and keeps it across calls", func(t *testing.T) {
		// Given: a new session
		svc := newTestService()

		// When: the first player plays the center
		view, err := svc.PlayRound(ctx, "session-1", 1, 1)

		// Then: the view shows X and the second player's turn
		require.NoError(t, err)
		assert.Equal(t, "X", view.Board[1][1])
		assert.True(t, view.Cells[4].Disabled)
		assert.Equal(t, "Muaz", view.CurrentPlayer.Name)
		assert.Equal(t, "Muaz's turn.", view.Message)

		// And: the game is remembered for the session
		view, err = svc.GetGame(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, "X", view.Board[1][1])
	})

	t.Run("Sessions do not share games", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.PlayRound(ctx, "session-1", 0, 0)
		require.NoError(t, err)

		view, err := svc.GetGame(ctx, "session-2")
		require.NoError(t, err)
		assert.Empty(t, view.Board[0][0])
	})

	t.Run("Win disables the board", func(t *testing.T) {
		// Given: a session where X is about to complete the top row
		svc := newTestService()
		for _, move := range [][2]int{{0, 0}, {1, 1}, {0, 1}, {1, 0}} {
			_, err := svc.PlayRound(ctx, "session-1", move[0], move[1])
			require.NoError(t, err)
		}

		// When: X completes the row
		view, err := svc.PlayRound(ctx, "session-1", 0, 2)

		// Then: the game is won and every cell is disabled
		require.NoError(t, err)
		assert.True(t, view.GameOver)
		assert.Equal(t, entity.StatusWon, view.Status)
		require.NotNil(t, view.Winner)
		assert.Equal(t, "Faizan", view.Winner.Name)
		assert.Equal(t, "Faizan wins!", view.Message)
		for _, cell := range view.Cells {
			assert.True(t, cell.Disabled)
		}
	})

	t.Run("Tie message", func(t *testing.T) {
		svc := newTestService()

		var view View
		var err error
		for _, move := range [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}, {2, 2}} {
			view, err = svc.PlayRound(ctx, "session-1", move[0], move[1])
			require.NoError(t, err)
		}

		assert.Equal(t, entity.StatusTied, view.Status)
		assert.Equal(t, "It's a tie!", view.Message)
		assert.Nil(t, view.Winner)
	})

	t.Run("Ignored round does not save", func(t *testing.T) {
		// Given: a stored game with X in the corner
		engine := tictactoe.NewEngine("Faizan", "Muaz")
		_, err := engine.PlayRound(0, 0)
		require.NoError(t, err)

		repo := &mockSessionRepo{}
		repo.On("GetByID", mock.Anything, "session-1").Return(engine.Snapshot(), nil).Once()
		svc := NewGameService(discardLogger(), repo, "Faizan", "Muaz")

		// When: the occupied corner is played
		view, err := svc.PlayRound(ctx, "session-1", 0, 0)

		// Then: nothing is saved and the turn stays with O
		require.NoError(t, err)
		assert.Equal(t, "Muaz", view.CurrentPlayer.Name)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid coordinate", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.PlayRound(ctx, "session-1", 3, 0)

		assert.ErrorIs(t, err, apperror.ErrInvalidCoordinate)
	})

	t.Run("Returns error when saving fails", func(t *testing.T) {
		repo := &mockSessionRepo{}
		repo.On("GetByID", mock.Anything, "session-1").
			Return(tictactoe.Snapshot{}, apperror.ErrSessionNotFound).Once()
		repo.On("Save", mock.Anything, "session-1", mock.AnythingOfType("tictactoe.Snapshot")).
			Return(errRedisDown).Once()
		svc := NewGameService(discardLogger(), repo, "Faizan", "Muaz")

		_, err := svc.PlayRound(ctx, "session-1", 0, 0)

		require.ErrorIs(t, err, errRedisDown)
		repo.AssertExpectations(t)
	})
}

func TestGameService_ResetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Clears a won game", func(t *testing.T) {
		// Given: a won game
		svc := newTestService()
		for _, move := range [][2]int{{0, 0}, {1, 1}, {0, 1}, {1, 0}, {0, 2}} {
			_, err := svc.PlayRound(ctx, "session-1", move[0], move[1])
			require.NoError(t, err)
		}

		// When: the game is reset
		view, err := svc.ResetGame(ctx, "session-1")

		// Then: the board is empty and the first player moves
		require.NoError(t, err)
		assert.Equal(t, [3][3]string{}, view.Board)
		assert.Equal(t, entity.StatusInProgress, view.Status)
		assert.Equal(t, "Faizan's turn.", view.Message)

		// And: the next request sees the fresh game
		view, err = svc.GetGame(ctx, "session-1")
		require.NoError(t, err)
		assert.False(t, view.GameOver)
		assert.Equal(t, [3][3]string{}, view.Board)
	})

	t.Run("Deletes the stored game instead of saving an empty one", func(t *testing.T) {
		repo := &mockSessionRepo{}
		repo.On("DeleteByID", mock.Anything, "session-1").Return(nil).Once()
		svc := NewGameService(discardLogger(), repo, "Faizan", "Muaz")

		view, err := svc.ResetGame(ctx, "session-1")

		require.NoError(t, err)
		assert.Equal(t, "Faizan's turn.", view.Message)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Session without a game", func(t *testing.T) {
		repo := &mockSessionRepo{}
		repo.On("DeleteByID", mock.Anything, "session-1").
			Return(fmt.Errorf("%w: session-1", apperror.ErrSessionNotFound)).Once()
		svc := NewGameService(discardLogger(), repo, "Faizan", "Muaz")

		view, err := svc.ResetGame(ctx, "session-1")

		require.NoError(t, err)
		assert.Equal(t, entity.StatusInProgress, view.Status)
	})

	t.Run("Returns error when the store fails", func(t *testing.T) {
		repo := &mockSessionRepo{}
		repo.On("DeleteByID", mock.Anything, "session-1").Return(errRedisDown).Once()
		svc := NewGameService(discardLogger(), repo, "Faizan", "Muaz")

		_, err := svc.ResetGame(ctx, "session-1")

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameService_SerializesSessionCommands(t *testing.T) {
	ctx := context.Background()

	// Given: a new session
	svc := newTestService()

	// When: nine different cells are played concurrently
	var wg sync.WaitGroup
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func(cell int) {
			defer wg.Done()
			_, err := svc.PlayRound(ctx, "session-1", cell/3, cell%3)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Then: no round was lost; the game ended and the marks alternate
	view, err := svc.GetGame(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, view.GameOver)

	var xCount, oCount int
	for _, cell := range view.Cells {
		switch cell.Mark {
		case "X":
			xCount++
		case "O":
			oCount++
		}
	}
	assert.Contains(t, []int{0, 1}, xCount-oCount)
}
