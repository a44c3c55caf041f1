package core

import (
	"io"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
)

// RunState is the top-level state of a session.
type RunState int

const (
	StateMainMenu RunState = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s RunState) String() string {
	switch s {
	case StateMainMenu:
		return "MainMenu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Stage is the per-level data shared by every run: the grid, the player's
// start and the enemy spawn points. It is computed once per level load.
type Stage struct {
	Grid        *Grid
	PlayerSpawn Vec
	// Candidates are all standing positions found on the grid.
	Candidates []Vec
	// EnemySpawns is the thinned subset enemies start from.
	EnemySpawns []Vec
}

// NewStage locates spawn points on grid for the actor sizes in p.
func NewStage(grid *Grid, playerSpawn Vec, p Params) *Stage {
	candidates := FindSpawns(grid, p.EnemyW, p.EnemyH)
	return &Stage{
		Grid:        grid,
		PlayerSpawn: playerSpawn,
		Candidates:  candidates,
		EnemySpawns: PickSpawns(candidates, p.EnemyStep, p.MaxEnemies),
	}
}

// Run is everything that lives for exactly one attempt at a level.
type Run struct {
	World   *World
	Player  Player
	Enemies []Enemy
	Score   int
	Tick    uint64
}

// newRun builds a fresh world with the player and every enemy in place.
func newRun(st *Stage, p Params) *Run {
	w := NewWorld(st.Grid)
	edges := EdgeClamp
	if p.WrapPlayer {
		edges = EdgeOpen
	}
	r := &Run{
		World:  w,
		Player: Player{Handle: w.AddActor(st.PlayerSpawn, p.PlayerW, p.PlayerH, edges)},
	}
	r.Enemies = make([]Enemy, 0, len(st.EnemySpawns))
	for _, pos := range st.EnemySpawns {
		r.Enemies = append(r.Enemies, Enemy{
			Handle: w.AddActor(pos, p.EnemyW, p.EnemyH, EdgeClamp),
			Facing: 1,
			Alive:  true,
		})
	}
	return r
}

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session events to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithState sets the state the session starts in. Starting in StatePlaying
// begins a run immediately.
func WithState(state RunState) Option {
	return func(s *Session) {
		s.state = state
	}
}

// WithBest seeds the best score, for example from earlier sessions.
func WithBest(best int) Option {
	return func(s *Session) {
		s.best = max(best, 0)
	}
}

// Session drives runs of one stage through the run state machine.
// It is single-threaded: Step must not be called concurrently.
type Session struct {
	stage  *Stage
	params Params
	state  RunState
	run    *Run
	best   int
	log    *log.Logger
}

// NewSession creates a session in the main menu.
func NewSession(st *Stage, p Params, opts ...Option) *Session {
	s := &Session{
		stage:  st,
		params: p,
		state:  StateMainMenu,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if s.state == StatePlaying || s.state == StatePaused {
		s.run = newRun(st, p)
	}
	return s
}

// State returns the current run state.
func (s *Session) State() RunState {
	return s.state
}

// Score returns the score of the current run, or of the last one when no
// run is in progress.
func (s *Session) Score() int {
	if s.run == nil {
		return 0
	}
	return s.run.Score
}

// Best returns the highest score reached in this session.
func (s *Session) Best() int {
	return s.best
}

// Run returns the current run, or nil in the main menu.
func (s *Session) Run() *Run {
	return s.run
}

// Stage returns the stage the session plays.
func (s *Session) Stage() *Stage {
	return s.stage
}

// Params returns the simulation parameters.
func (s *Session) Params() Params {
	return s.params
}

// Step advances the session by one frame of dt seconds.
// A non-positive dt is ignored entirely.
func (s *Session) Step(in Input, dt float64) {
	if dt <= 0 {
		return
	}
	switch s.state {
	case StateMainMenu:
		s.stepMenu(in)
	case StatePlaying:
		s.stepPlaying(in, dt)
	case StatePaused:
		s.stepPaused(in)
	case StateGameOver:
		s.stepGameOver(in)
	}
}

func (s *Session) stepMenu(in Input) {
	if in.Pressed(platformcore.ActionConfirm) {
		s.startRun()
	}
}

func (s *Session) stepPaused(in Input) {
	if in.Pressed(platformcore.ActionPause) || in.Pressed(platformcore.ActionConfirm) {
		s.transition(StatePlaying)
	}
}

func (s *Session) stepGameOver(in Input) {
	if in.Pressed(platformcore.ActionRestart) || in.Pressed(platformcore.ActionConfirm) {
		s.startRun()
	}
}

func (s *Session) stepPlaying(in Input, dt float64) {
	if in.Pressed(platformcore.ActionPause) {
		s.transition(StatePaused)
		return
	}

	r := s.run
	p := s.params
	r.Tick++

	r.Player.Update(r.World, in, p, dt)
	for i := range r.Enemies {
		r.Enemies[i].Update(r.World, p, dt)
	}

	enc := ResolveEncounters(r.World, &r.Player, r.Enemies, p)
	if enc.Stomps > 0 {
		r.Score += enc.Stomps
		s.best = max(s.best, r.Score)
		s.log.Debug("stomp", "count", enc.Stomps, "score", r.Score, "tick", r.Tick)
	}
	r.Enemies = CompactEnemies(r.World, r.Enemies)

	if enc.Fatal {
		s.log.Debug("fatal contact", "enemy", enc.Killer, "score", r.Score, "tick", r.Tick)
		s.transition(StateGameOver)
	}
}

// startRun discards the current run and builds a new one.
func (s *Session) startRun() {
	s.run = newRun(s.stage, s.params)
	s.log.Debug("run reset", "enemies", len(s.run.Enemies), "spawn", s.stage.PlayerSpawn)
	s.transition(StatePlaying)
}

func (s *Session) transition(to RunState) {
	s.log.Debug("state change", "from", s.state, "to", to)
	s.state = to
}
