package service

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewView(t *testing.T) {
	// Given: a game with X in the middle of the bottom row
	engine := tictactoe.NewEngine("Faizan", "Muaz")
	_, err := engine.PlayRound(2, 1)
	require.NoError(t, err)

	// When: the view is built
	view := NewView(engine)

	// Then: cells are row-major and only the marked one is disabled
	require.Len(t, view.Cells, 9)
	for i, cell := range view.Cells {
		assert.Equal(t, i/3, cell.Row)
		assert.Equal(t, i%3, cell.Col)
		assert.Equal(t, i == 7, cell.Disabled, "cell %d", i)
	}
	assert.Equal(t, "X", view.Cells[7].Mark)
	assert.Equal(t, "X", view.Board[2][1])
	assert.Equal(t, "Muaz's turn.", view.Message)
}

func TestAnnouncement(t *testing.T) {
	engine := tictactoe.NewEngine("Faizan", "Muaz")
	assert.Equal(t, "Faizan's turn.", Announcement(engine))

	for _, move := range [][2]int{{0, 0}, {1, 1}, {0, 1}, {1, 0}, {0, 2}} {
		_, err := engine.PlayRound(move[0], move[1])
		require.NoError(t, err)
	}
	assert.Equal(t, "Faizan wins!", Announcement(engine))
}
