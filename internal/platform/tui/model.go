package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Game is what the platform drives: pure logic behind a fixed-step loop.
// Games never see Bubble Tea; the platform maps keys to actions, runs the
// tick loop and renders the screen buffer.
type Game interface {
	// ID identifies the level. Runs are stored under it.
	ID() string

	// Title is the display name.
	Title() string

	// Reset initializes the game for the given screen and tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Settings tune how the model feeds input and records runs.
type Settings struct {
	HoldTicks     int    // Ticks a movement key stays held after its last press
	Difficulty    string // Stored with every run
	ScreenshotDir string // Empty disables ctrl+s
	Logger        *log.Logger
}

// Model is the Bubble Tea model for playing one level.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	settings   Settings
	keyMapper  *KeyMapper
	holds      *holdTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the run has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, store *storage.Store, cfg core.RuntimeConfig, settings Settings) Model {
	if settings.Logger == nil {
		settings.Logger = log.Default()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		settings:   settings,
		keyMapper:  NewKeyMapper(),
		holds:      newHoldTracker(settings.HoldTicks),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}
	if action == core.ActionNone {
		return m, nil
	}

	m.inputFrame.Set(action)
	if IsMovement(action) {
		m.holds.press(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.holds.apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.holds.reset()
		if !m.scoreSaved {
			m.saveRun()
			m.scoreSaved = true
		}
	} else {
		m.scoreSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the finished run. Runs without a single stomp are skipped.
func (m *Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	_, err := m.store.SaveRun(storage.RunRecord{
		LevelID:    m.game.ID(),
		Score:      m.gameState.Score,
		Ticks:      m.gameState.Ticks,
		Difficulty: m.settings.Difficulty,
	})
	if err != nil {
		m.settings.Logger.Warn("could not save run", "level", m.game.ID(), "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.settings.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.settings.ScreenshotDir, 0o755); err != nil {
		m.settings.Logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.settings.ScreenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.settings.Logger.Warn("could not save screenshot", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game until the player quits or goes back. It reports whether
// the player asked for the menu.
func Run(game Game, store *storage.Store, cfg core.RuntimeConfig, settings Settings) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, settings)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
