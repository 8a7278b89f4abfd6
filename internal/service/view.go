package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const tieMessage = "It's a tie!"

// CellView is one button on the board.
type CellView struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Mark     string `json:"mark"`
	Disabled bool   `json:"disabled"`
}

// View is everything a UI needs to render the game after a command.
type View struct {
	Board         [entity.Size][entity.Size]string `json:"board"`
	Cells         []CellView                       `json:"cells"`
	CurrentPlayer entity.Player                    `json:"current_player"`
	Status        string                           `json:"status"`
	Winner        *entity.Player                   `json:"winner,omitempty"`
	GameOver      bool                             `json:"game_over"`
	Message       string                           `json:"message"`
}

func NewView(engine *tictactoe.Engine) View {
	grid := engine.Board()
	state := engine.State()
	gameOver := state.IsTerminal()

	view := View{
		Cells:         make([]CellView, 0, entity.Size*entity.Size),
		CurrentPlayer: engine.CurrentPlayer(),
		Status:        state.Status,
		Winner:        state.Winner,
		GameOver:      gameOver,
		Message:       Announcement(engine),
	}

	for row := range grid {
		for col, cell := range grid[row] {
			view.Board[row][col] = string(cell)
			view.Cells = append(view.Cells, CellView{
				Row:      row,
				Col:      col,
				Mark:     string(cell),
				Disabled: gameOver || cell != entity.Empty,
			})
		}
	}

	return view
}

// Announcement is the line shown under the board: whose turn it is, or how the game ended.
func Announcement(engine *tictactoe.Engine) string {
	state := engine.State()

	switch {
	case state.IsWon():
		return fmt.Sprintf("%s wins!", state.Winner.Name)
	case state.IsTied():
		return tieMessage
	default:
		return fmt.Sprintf("%s's turn.", engine.CurrentPlayer().Name)
	}
}
