package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Snapshot is the serializable form of an engine. It captures the live game only.
type Snapshot struct {
	Players [2]entity.Player `json:"players"`
	Board   entity.Grid      `json:"board"`
	Current entity.Cell      `json:"current"`
	Status  string           `json:"status"`
}

func (that *Engine) Snapshot() Snapshot {
	return Snapshot{
		Players: that.players,
		Board:   that.board.Get(),
		Current: that.players[that.current].Mark,
		Status:  that.status,
	}
}

// Restore rebuilds an engine from a snapshot, rejecting snapshots no sequence of rounds could produce.
// The status is worked out from the board and must agree with the stored one.
func Restore(snapshot Snapshot) (*Engine, error) {
	if snapshot.Players[0].Mark != entity.MarkX || snapshot.Players[1].Mark != entity.MarkO {
		return nil, fmt.Errorf("%w: player marks %q and %q", apperror.ErrCorruptedSnapshot,
			snapshot.Players[0].Mark, snapshot.Players[1].Mark)
	}

	engine := NewEngine(snapshot.Players[0].Name, snapshot.Players[1].Name)

	var xCount, oCount int
	for _, row := range snapshot.Board {
		for _, cell := range row {
			if _, err := entity.ParseCell(string(cell)); err != nil {
				return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptedSnapshot, err)
			}

			switch cell {
			case entity.MarkX:
				xCount++
			case entity.MarkO:
				oCount++
			}
		}
	}

	if xCount-oCount != 0 && xCount-oCount != 1 {
		return nil, fmt.Errorf("%w: %d X marks and %d O marks", apperror.ErrCorruptedSnapshot, xCount, oCount)
	}

	engine.board.cells = snapshot.Board

	// X has moved last when it holds one mark more than O.
	lastMover, nextMover := entity.MarkO, entity.MarkX
	if xCount > oCount {
		lastMover, nextMover = entity.MarkX, entity.MarkO
	}

	winner, err := lineWinner(snapshot.Board)
	if err != nil {
		return nil, err
	}

	status, current := entity.StatusInProgress, nextMover
	switch {
	case winner != entity.Empty:
		if winner != lastMover {
			return nil, fmt.Errorf("%w: %s completed a line but %s moved last",
				apperror.ErrCorruptedSnapshot, winner, lastMover)
		}
		status, current = entity.StatusWon, winner
	case engine.board.Full():
		status, current = entity.StatusTied, lastMover
	}

	if snapshot.Status != status {
		return nil, fmt.Errorf("%w: status %q, board says %q", apperror.ErrCorruptedSnapshot, snapshot.Status, status)
	}

	if snapshot.Current != current {
		return nil, fmt.Errorf("%w: current mark %q, board says %q", apperror.ErrCorruptedSnapshot, snapshot.Current, current)
	}

	if current == entity.MarkO {
		engine.current = 1
	}
	engine.status = status

	return engine, nil
}

// lineWinner returns the mark holding a complete line, or Empty. Both marks holding one is an error.
func lineWinner(grid entity.Grid) (entity.Cell, error) {
	winner := entity.Empty

	for _, line := range winningLines {
		mark := grid[line[0][0]][line[0][1]]
		if !mark.IsMark() || grid[line[1][0]][line[1][1]] != mark || grid[line[2][0]][line[2][1]] != mark {
			continue
		}

		if winner != entity.Empty && winner != mark {
			return entity.Empty, fmt.Errorf("%w: both X and O completed a line", apperror.ErrCorruptedSnapshot)
		}
		winner = mark
	}

	return winner, nil
}

var winningLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}
