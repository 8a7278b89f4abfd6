package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const rowSeparator = "\n-------------\n"

// Board holds the 3x3 grid. It knows nothing about turns or winners.
type Board struct {
	cells entity.Grid
}

func NewBoard() *Board {
	return &Board{}
}

// Get returns a copy of the cells.
func (that *Board) Get() entity.Grid {
	return that.cells
}

// Place puts mark on an empty cell. It reports false without touching the board when the cell is taken.
func (that *Board) Place(row, col int, mark entity.Cell) (bool, error) {
	if !entity.ValidCoordinate(row, col) {
		return false, fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCoordinate, row, col)
	}

	if !mark.IsMark() {
		return false, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that.cells[row][col] != entity.Empty {
		return false, nil
	}

	that.cells[row][col] = mark

	return true, nil
}

func (that *Board) Reset() {
	that.cells = entity.Grid{}
}

// Full reports whether every cell carries a mark.
func (that *Board) Full() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == entity.Empty {
				return false
			}
		}
	}

	return true
}

// String renders the board the way it is printed to the log after every move.
func (that *Board) String() string {
	rows := make([]string, 0, entity.Size)
	for _, row := range that.cells {
		marks := make([]string, 0, entity.Size)
		for _, cell := range row {
			marks = append(marks, cell.String())
		}
		rows = append(rows, "| "+strings.Join(marks, " | ")+" |")
	}

	return strings.Join(rows, rowSeparator)
}
