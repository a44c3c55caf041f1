// Package platformer wires the collision engine, a level and the platformer
// config into a terminal game the platform layer can drive.
package platformer

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Visual characters for rendering
const (
	SolidChar  = '█'
	PlayerChar = '@'
	EnemyLeft  = '<'
	EnemyRight = '>'
	HUDHeight  = 2
	CellWidth  = 2 // Terminal columns per tile
)

// Game is one level of the platformer.
type Game struct {
	level   levels.Level
	cfg     config.PlatformerConfig
	params  core.Params
	stage   *core.Stage
	session *core.Session
	log     *log.Logger

	best     int
	dt       float64
	runtime  platformcore.RuntimeConfig
	loadErr  error
	autoPlay bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger routes game and session events to l.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// WithBest seeds the best score shown in the HUD.
func WithBest(best int) Option {
	return func(g *Game) {
		g.best = best
	}
}

// WithAutoStart skips the title screen and starts a run on Reset.
func WithAutoStart() Option {
	return func(g *Game) {
		g.autoPlay = true
	}
}

// New creates a game for level with the given configuration.
func New(level levels.Level, cfg config.PlatformerConfig, opts ...Option) *Game {
	g := &Game{
		level:  level,
		cfg:    cfg,
		params: ParamsFromConfig(cfg),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	return g
}

// ParamsFromConfig maps the YAML configuration onto simulation parameters.
func ParamsFromConfig(cfg config.PlatformerConfig) core.Params {
	return core.Params{
		Gravity:         cfg.Physics.Gravity,
		MaxFallSpeed:    cfg.Physics.MaxFallSpeed,
		PlayerW:         cfg.Player.Width,
		PlayerH:         cfg.Player.Height,
		MoveSpeed:       cfg.Player.MoveSpeed,
		JumpSpeed:       cfg.Player.JumpSpeed,
		BounceFraction:  cfg.Player.BounceFraction,
		WrapPlayer:      cfg.Player.Wrap,
		EnemyW:          cfg.Enemy.Width,
		EnemyH:          cfg.Enemy.Height,
		EnemySpeed:      cfg.Enemy.Speed,
		WallProbeAhead:  cfg.Enemy.WallProbeAhead,
		LedgeProbeAhead: cfg.Enemy.LedgeProbeAhead,
		LedgeProbeBelow: cfg.Enemy.LedgeProbeBelow,
		StompTolerance:  cfg.Encounter.StompTolerance,
		EnemyStep:       cfg.Spawning.Step,
		MaxEnemies:      cfg.Spawning.MaxEnemies,
	}
}

// ID returns the level id. Scores are stored per level.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Err returns the error that kept the level from loading, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// Session returns the underlying run session, or nil if the level failed
// to load.
func (g *Game) Session() *core.Session {
	return g.session
}

// Reset builds the stage and starts a new session on the title screen.
// The best score carries over from the previous session.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	g.runtime = rc
	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.dt = min(1/float64(tickRate), g.cfg.Physics.MaxFrameTime)

	if g.session != nil {
		g.best = max(g.best, g.session.Best())
	}

	stage, err := g.level.Stage(g.cfg.Level.Layer, g.cfg.Level.SolidIDs, g.params)
	if err != nil {
		g.loadErr = err
		g.stage, g.session = nil, nil
		g.log.Error("cannot build level", "level", g.level.ID, "err", err)
		return
	}
	g.loadErr = nil
	g.stage = stage

	state := core.StateMainMenu
	if g.autoPlay {
		state = core.StatePlaying
	}
	g.session = core.NewSession(stage, g.params,
		core.WithLogger(g.log.With("level", g.level.ID)),
		core.WithBest(g.best),
		core.WithState(state),
	)
	g.log.Debug("level ready",
		"level", g.level.ID,
		"grid", fmt.Sprintf("%dx%d", stage.Grid.W, stage.Grid.H),
		"enemies", len(stage.EnemySpawns),
		"dt", g.dt,
	)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.session != nil {
		g.session.Step(in, g.dt)
	}
	return platformcore.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{GameOver: true}
	}
	st := platformcore.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.State() == core.StateGameOver,
		Paused:   g.session.State() == core.StatePaused,
	}
	if r := g.session.Run(); r != nil {
		st.Ticks = int(r.Tick)
	}
	return st
}

// Render draws the HUD, the visible part of the level and any overlay.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		drawCenteredMessage(dst, "LEVEL ERROR", g.loadErr.Error(), platformcore.ColorWarning)
		return
	}
	if g.session == nil {
		return
	}
	if dst.Width() < 20 || dst.Height() < HUDHeight+4 {
		dst.DrawText(0, 0, "Terminal too small")
		return
	}

	f := g.session.Frame()
	cam := g.camera(dst, f)
	g.drawTiles(dst, cam)
	if f.HasRun {
		for _, e := range f.Enemies {
			ch := EnemyRight
			if e.Facing < 0 {
				ch = EnemyLeft
			}
			g.drawActor(dst, cam, e.Rect, ch, platformcore.ColorEnemy)
		}
		g.drawActor(dst, cam, f.Player, PlayerChar, platformcore.ColorPlayer)
	}
	g.drawHUD(dst, f)

	switch f.State {
	case core.StateMainMenu:
		drawCenteredMessage(dst, g.level.Name, "Enter to start  |  arrows move, space jumps", platformcore.ColorTitle)
	case core.StatePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", platformcore.ColorTitle)
	case core.StateGameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", f.Score), platformcore.ColorWarning)
	}
}

// camera is the top-left tile of the viewport.
type camera struct {
	col, row   int
	cols, rows int
	offX, offY int // Screen offset when the level is smaller than the view
}

// camera follows the player, clamped to the level edges.
func (g *Game) camera(dst *platformcore.Screen, f core.Frame) camera {
	grid := g.stage.Grid
	c := camera{
		cols: dst.Width() / CellWidth,
		rows: dst.Height() - HUDHeight,
	}

	focus := g.stage.PlayerSpawn
	if f.HasRun {
		focus = f.Player.Pos()
	}
	c.col = follow(int(focus.X/grid.TileW), c.cols, grid.W)
	c.row = follow(int(focus.Y/grid.TileH), c.rows, grid.H)

	if grid.W < c.cols {
		c.offX = (c.cols - grid.W) / 2 * CellWidth
	}
	if grid.H < c.rows {
		c.offY = (c.rows - grid.H) / 2
	}
	return c
}

func follow(pos, view, total int) int {
	if total <= view {
		return 0
	}
	return min(max(pos-view/2, 0), total-view)
}

func (g *Game) drawTiles(dst *platformcore.Screen, c camera) {
	grid := g.stage.Grid
	for y := 0; y < c.rows; y++ {
		ty := c.row + y
		if ty >= grid.H {
			break
		}
		for x := 0; x < c.cols; x++ {
			tx := c.col + x
			if tx >= grid.W {
				break
			}
			if !grid.Solid(tx, ty) {
				continue
			}
			sx, sy := c.offX+x*CellWidth, c.offY+HUDHeight+y
			for i := range CellWidth {
				dst.SetColored(sx+i, sy, SolidChar, platformcore.ColorTile)
			}
		}
	}
}

// drawActor fills the terminal cells covered by r. Each cell is a tile high
// and half a tile wide, so horizontal motion shows at half-tile resolution.
func (g *Game) drawActor(dst *platformcore.Screen, c camera, r core.Rect, ch rune, color platformcore.Color) {
	grid := g.stage.Grid
	charW := grid.TileW / CellWidth
	x0 := int(math.Floor(r.X / charW))
	x1 := int(math.Ceil(r.Right()/charW)) - 1
	y0 := int(math.Floor(r.Y / grid.TileH))
	y1 := int(math.Ceil(r.Bottom()/grid.TileH)) - 1
	for y := y0; y <= y1; y++ {
		sy := c.offY + HUDHeight + y - c.row
		if sy < HUDHeight || sy >= dst.Height() {
			continue
		}
		for x := x0; x <= x1; x++ {
			sx := c.offX + x - c.col*CellWidth
			if sx < 0 || sx >= dst.Width() {
				continue
			}
			dst.SetColored(sx, sy, ch, color)
		}
	}
}

func (g *Game) drawHUD(dst *platformcore.Screen, f core.Frame) {
	left := fmt.Sprintf(" %s ", g.level.Name)
	dst.DrawTextColored(1, 0, left, platformcore.ColorHUD)

	right := fmt.Sprintf(" Score: %d  Best: %d  Enemies: %d ", f.Score, max(f.Best, g.best), len(f.Enemies))
	dst.DrawText(dst.Width()-len(right)-1, 0, right)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *platformcore.Screen, title, subtitle string, titleColor platformcore.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len([]rune(title)), len([]rune(subtitle)))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(platformcore.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(platformcore.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCenteredColored(boxY+1, title, titleColor)
	dst.DrawTextCentered(boxY+3, subtitle)
}
