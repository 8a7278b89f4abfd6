package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

// Cell is the value of one board position.
type Cell string

const (
	Empty Cell = ""
	MarkX Cell = "X"
	MarkO Cell = "O"
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusTied       = "tied"
)

const Size = 3

// Grid is the 3x3 board, row-major.
type Grid [Size][Size]Cell

// State describes where the game is in its lifecycle. Winner is set only when Status is StatusWon.
type State struct {
	Status string  `json:"status"`
	Winner *Player `json:"winner,omitempty"`
}

func (that Cell) IsMark() bool {
	return that == MarkX || that == MarkO
}

func (that Cell) String() string {
	if that == Empty {
		return " "
	}
	return string(that)
}

// ParseCell accepts the serialized form of a cell, empty string included.
func ParseCell(value string) (Cell, error) {
	switch cell := Cell(value); cell {
	case Empty, MarkX, MarkO:
		return cell, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, value)
	}
}

func (that State) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that State) IsWon() bool {
	return that.Status == StatusWon
}

func (that State) IsTied() bool {
	return that.Status == StatusTied
}

// IsTerminal reports whether only a reset can move the game on.
func (that State) IsTerminal() bool {
	return that.IsWon() || that.IsTied()
}

// ValidCoordinate reports whether row and col address a cell on the board.
func ValidCoordinate(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}
