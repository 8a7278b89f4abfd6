// Package tui runs a hot-seat game in the terminal: both players share the keyboard.
package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/service"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cellStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Border(lipgloss.RoundedBorder())
	cursorStyle = cellStyle.BorderForeground(lipgloss.Color("11"))
	markStyles  = map[entity.Cell]lipgloss.Style{
		entity.MarkX: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		entity.MarkO: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	}
	messageStyle = lipgloss.NewStyle().MarginTop(1)
	overStyle    = messageStyle.Foreground(lipgloss.Color("10")).Bold(true)
)

// Model is the Bubble Tea model for one game at the terminal.
type Model struct {
	engine    *tictactoe.Engine
	logger    *slog.Logger
	keys      keyMap
	help      help.Model
	cursorRow int
	cursorCol int
	quitting  bool
}

func NewModel(engine *tictactoe.Engine, logger *slog.Logger) Model {
	return Model{
		engine:    engine,
		logger:    logger.With("component", "tui"),
		keys:      defaultKeyMap(),
		help:      help.New(),
		cursorRow: 1,
		cursorCol: 1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursorRow = max(m.cursorRow-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursorRow = min(m.cursorRow+1, entity.Size-1)
	case key.Matches(msg, m.keys.Left):
		m.cursorCol = max(m.cursorCol-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursorCol = min(m.cursorCol+1, entity.Size-1)
	case key.Matches(msg, m.keys.Play):
		m.playRound(m.cursorRow, m.cursorCol)
	case key.Matches(msg, m.keys.Cell):
		index := int(msg.String()[0] - '1')
		m.cursorRow, m.cursorCol = index/entity.Size, index%entity.Size
		m.playRound(m.cursorRow, m.cursorCol)
	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
		m.logger.Info("game has been reset", "turn", m.engine.CurrentPlayer().Name)
	}

	return m, nil
}

func (m Model) playRound(row, col int) {
	placed, err := m.engine.PlayRound(row, col)
	if err != nil {
		m.logger.Error("failed to play round", "row", row, "col", col, "error", err)
		return
	}

	if !placed {
		return
	}

	m.logger.Debug("round played", "row", row, "col", col, "board", "\n"+m.engine.BoardString())
	m.logger.Info(service.Announcement(m.engine))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	first, second := m.engine.Players()
	b.WriteString(titleStyle.Render("Tic Tac Toe: " + first.Name + " (X) vs " + second.Name + " (O)"))
	b.WriteString("\n")

	grid := m.engine.Board()
	rows := make([]string, 0, entity.Size)
	for row := range grid {
		cells := make([]string, 0, entity.Size)
		for col, cell := range grid[row] {
			style := cellStyle
			if row == m.cursorRow && col == m.cursorCol && !m.engine.GameOver() {
				style = cursorStyle
			}

			mark := cell.String()
			if markStyle, ok := markStyles[cell]; ok {
				mark = markStyle.Render(mark)
			}
			cells = append(cells, style.Render(mark))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")

	announcement := service.Announcement(m.engine)
	if m.engine.GameOver() {
		b.WriteString(overStyle.Render(announcement + " Press r to play again."))
	} else {
		b.WriteString(messageStyle.Render(announcement))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// Run blocks until the players quit.
func Run(engine *tictactoe.Engine, logger *slog.Logger, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewModel(engine, logger), opts...).Run()
	return err
}
