package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 22
	maxRuns            = 100
)

var (
	boardTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardPanel    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up, Down   key.Binding
	Next, Prev key.Binding
	Back, Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Prev, k.Next}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next level")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev level")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best runs of one level at a time.
type ScoreboardModel struct {
	levels []LevelInfo
	cursor int
	store  *storage.Store
	runs   []storage.RunRecord
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard over levels, starting at the first.
func NewScoreboardModel(levels []LevelInfo, store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		levels: levels,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
	}
	m.resize(width, height)
	m.reload()
	return m
}

func (m *ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	dateW := 12
	avail := width - 4
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	if avail > 50 {
		dateW = min(avail-30, 20)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 6},
			{Title: "Time", Width: 8},
			{Title: "Mode", Width: 7},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-9, 3)),
		table.WithStyles(styles),
	)
	m.fillRows()
}

// reload fetches the runs of the selected level.
func (m *ScoreboardModel) reload() {
	m.runs = nil
	if m.store != nil && len(m.levels) > 0 {
		if runs, err := m.store.TopRuns(m.levels[m.cursor].ID, maxRuns); err == nil {
			m.runs = runs
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			runTime(r.Ticks),
			r.Difficulty,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// runTime formats a tick count at the default 60 ticks per second.
func runTime(ticks int) string {
	secs := ticks / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// moveLevel cycles the selected level by delta.
func (m *ScoreboardModel) moveLevel(delta int) {
	if n := len(m.levels); n > 0 {
		m.cursor = ((m.cursor+delta)%n + n) % n
		m.reload()
	}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveLevel(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.moveLevel(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "BEST RUNS"
	if len(m.levels) > 0 {
		title += " - " + m.levels[m.cursor].Title
	}

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", boardPanel.Render(m.board()))
	} else {
		body = centerText(m.tabs(), m.width) + "\n\n" + centerText(boardPanel.Render(m.board()), m.width)
	}

	return boardTitle.Render(centerText(title, m.width)) + "\n\n" +
		body + "\n" +
		boardDim.Render(m.help.View(m.keys))
}

func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Levels\n")
	b.WriteString(strings.Repeat("─", sidebarWidth-4) + "\n")
	for i, lvl := range m.levels {
		line := "  " + truncate(lvl.Title, sidebarWidth-6)
		if i == m.cursor {
			line = boardSelected.Render("> " + truncate(lvl.Title, sidebarWidth-6))
		}
		b.WriteString(line + "\n")
	}
	return boardPanel.Width(sidebarWidth).Render(b.String())
}

// tabs is the narrow-terminal level switcher.
func (m ScoreboardModel) tabs() string {
	if len(m.levels) == 0 {
		return ""
	}
	parts := make([]string, len(m.levels))
	for i, lvl := range m.levels {
		name := truncate(lvl.Title, 10)
		if i == m.cursor {
			parts[i] = boardSelected.Render("[" + name + "]")
		} else {
			parts[i] = boardDim.Render(" " + name + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.levels[m.cursor].Title)
	}
	return line
}

// board is the run table with a one-line summary above it.
func (m ScoreboardModel) board() string {
	if len(m.runs) == 0 {
		return boardDim.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nStomp an enemy to get on the board!")
	}
	total := 0
	for _, r := range m.runs {
		total += r.Score
	}
	summary := fmt.Sprintf("runs %d  best %d  avg %.1f",
		len(m.runs), m.runs[0].Score, float64(total)/float64(len(m.runs)))
	return boardDim.Render(summary) + "\n" + m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// IsGoingBack reports whether the user asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard until the user leaves. It reports
// whether they asked to go back to the menu.
func RunScoreboard(levels []LevelInfo, store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(levels, store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(ScoreboardModel); ok {
		return m.IsGoingBack(), nil
	}
	return false, nil
}
