package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	DefaultFirstPlayer  = "Faizan"
	DefaultSecondPlayer = "Muaz"
)

// Engine runs a single game between two players. It is not safe for concurrent use;
// callers that share an engine must serialize access themselves.
type Engine struct {
	board   *Board
	players [2]entity.Player
	current int
	status  string
}

// NewEngine creates a game where firstName plays X and moves first, and secondName plays O.
func NewEngine(firstName, secondName string) *Engine {
	return &Engine{
		board: NewBoard(),
		players: [2]entity.Player{
			{Name: firstName, Mark: entity.MarkX},
			{Name: secondName, Mark: entity.MarkO},
		},
		status: entity.StatusInProgress,
	}
}

// Board returns a copy of the grid for rendering.
func (that *Engine) Board() entity.Grid {
	return that.board.Get()
}

// BoardString renders the grid as text.
func (that *Engine) BoardString() string {
	return that.board.String()
}

func (that *Engine) CurrentPlayer() entity.Player {
	return that.players[that.current]
}

func (that *Engine) Players() (entity.Player, entity.Player) {
	return that.players[0], that.players[1]
}

func (that *Engine) State() entity.State {
	state := entity.State{Status: that.status}
	if that.status == entity.StatusWon {
		winner := that.players[that.current]
		state.Winner = &winner
	}

	return state
}

func (that *Engine) GameOver() bool {
	return that.status != entity.StatusInProgress
}

// PlayRound places the current player's mark at (row, col) and advances the game.
// Rounds played after the game is over and rounds on occupied cells are ignored and report false.
func (that *Engine) PlayRound(row, col int) (bool, error) {
	if !entity.ValidCoordinate(row, col) {
		return false, fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCoordinate, row, col)
	}

	if that.GameOver() {
		return false, nil
	}

	mark := that.players[that.current].Mark

	placed, err := that.board.Place(row, col, mark)
	if err != nil {
		return false, fmt.Errorf("failed to place mark: %w", err)
	}

	if !placed {
		return false, nil
	}

	switch {
	case that.checkWin(row, col, mark):
		that.status = entity.StatusWon
	case that.board.Full():
		that.status = entity.StatusTied
	default:
		that.switchPlayer()
	}

	return true, nil
}

// Reset clears the board and hands the first move back to the first player.
func (that *Engine) Reset() {
	that.board.Reset()
	that.current = 0
	that.status = entity.StatusInProgress
}

func (that *Engine) switchPlayer() {
	that.current = 1 - that.current
}

// checkWin only inspects the lines through the cell that was just played;
// no other line can have been completed by this move.
func (that *Engine) checkWin(row, col int, mark entity.Cell) bool {
	cells := that.board.Get()

	rowWin, colWin := true, true
	for i := 0; i < entity.Size; i++ {
		rowWin = rowWin && cells[row][i] == mark
		colWin = colWin && cells[i][col] == mark
	}

	if rowWin || colWin {
		return true
	}

	if row == col {
		diagonal := true
		for i := 0; i < entity.Size; i++ {
			diagonal = diagonal && cells[i][i] == mark
		}
		if diagonal {
			return true
		}
	}

	if row+col == entity.Size-1 {
		antiDiagonal := true
		for i := 0; i < entity.Size; i++ {
			antiDiagonal = antiDiagonal && cells[i][entity.Size-1-i] == mark
		}
		if antiDiagonal {
			return true
		}
	}

	return false
}
