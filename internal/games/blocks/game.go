// Package blocks adapts the falling-block engine to the platform's Game
// interface: it turns host frames into fall ticks, input actions into
// moves and the grid into screen cells.
package blocks

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/geirtris/internal/config"
	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/games/blocks/engine"
	"github.com/vovakirdan/geirtris/internal/registry"
)

// Variant selects where new blocks appear.
type Variant string

const (
	VariantMidpoint Variant = "blocks"     // spawn row from config, midpoint by default
	VariantTop      Variant = "blocks_top" // spawn at row 0
)

var (
	settingsMu sync.RWMutex
	settings   *config.BlocksConfig
)

// Configure sets the configuration used by games reset afterwards.
// Without it games load config.LoadBlocks("") on reset.
func Configure(cfg config.BlocksConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = &cfg
}

func currentConfig() config.BlocksConfig {
	settingsMu.RLock()
	cfg := settings
	settingsMu.RUnlock()

	if cfg != nil {
		c := *cfg
		c.Shapes = append([]config.ShapeConfig(nil), cfg.Shapes...)
		return c
	}
	loaded, err := config.LoadBlocks("")
	if err != nil {
		return config.DefaultBlocksConfig()
	}
	return loaded
}

func init() {
	registry.Register(string(VariantMidpoint), func() registry.Game {
		return New(VariantMidpoint)
	})
	registry.Register(string(VariantTop), func() registry.Game {
		return New(VariantTop)
	})
}

// Game implements registry.Game for one player.
type Game struct {
	variant Variant
	rng     *rand.Rand
	runtime core.RuntimeConfig

	match   *engine.Match
	timer   *engine.FallTimer
	frame   time.Duration
	matchID string

	// Screen layout
	screenW  int
	screenH  int
	boardX   int
	boardY   int
	tooSmall bool

	paused bool
	over   bool
}

// New creates a game of the given variant. Call Reset before Step.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantTop {
		return "Geirtris (Top Spawn)"
	}
	return "Geirtris"
}

// Reset begins a new match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.frame = cfg.FrameDuration()
	g.paused = false
	g.over = false
	g.matchID = uuid.NewString()

	m, err := engine.NewMatch(g.matchConfig(cfg.Seed))
	if err != nil {
		// matchConfig only returns configurations that built a match.
		panic(err)
	}
	g.match = m
	g.timer = engine.NewFallTimer(m.TickPeriod())

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// matchConfig resolves the active configuration for this variant,
// falling back to the built-in default when it is not playable.
func (g *Game) matchConfig(seed int64) engine.MatchConfig {
	mc, err := g.variantConfig(currentConfig()).ToMatchConfig(seed)
	if err == nil {
		return mc
	}
	mc, err = g.variantConfig(config.DefaultBlocksConfig()).ToMatchConfig(seed)
	if err != nil {
		panic(err)
	}
	return mc
}

func (g *Game) variantConfig(cfg config.BlocksConfig) config.BlocksConfig {
	if g.variant == VariantTop {
		cfg.Grid.SpawnRow = "top"
		cfg.Grid.GameOverRow = "spawn"
	}
	return cfg
}

// Resize recomputes the layout for a new screen size. The match keeps running.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	if g.match == nil {
		return
	}

	bw, bh := g.boardSize()
	g.tooSmall = width < bw || height < hudHeight+bh
	g.boardX = (width - bw) / 2
	g.boardY = hudHeight
}

// Step advances the game by one host frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.match == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.over {
		cfg := g.runtime
		cfg.Seed = g.rng.Int63()
		g.Reset(cfg)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.over {
		g.paused = !g.paused
	}

	if g.over || g.paused || g.tooSmall || !g.match.IsActive() {
		return core.StepResult{State: g.State()}
	}

	g.applyInput(in)

	for n := g.timer.Advance(g.frame); n > 0 && g.match.IsActive(); n-- {
		g.match.Tick()
	}

	signal := g.match.TakeGameOver()
	if signal {
		g.over = true
	}
	return core.StepResult{State: g.State(), GameOverSignal: signal}
}

func (g *Game) applyInput(in core.InputFrame) {
	for range in.Count(core.ActionLeft) {
		g.match.MoveLeft()
	}
	for range in.Count(core.ActionRight) {
		g.match.MoveRight()
	}
	for range in.Count(core.ActionSoftDrop) {
		g.match.SoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		if res := g.match.HardDrop(); res.Locked {
			// Next spawn waits a full period.
			g.timer.Reset()
		}
	}
}

// End stops a running match, e.g. when the player leaves to the menu.
func (g *Game) End() {
	if g.match != nil {
		g.match.End()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{}
	}
	return core.GameState{
		Locked:    g.match.Locked(),
		Ticks:     g.match.Ticks(),
		GameOver:  g.over,
		Paused:    g.paused,
		MatchID:   g.matchID,
		EndReason: string(g.match.EndReason()),
	}
}

// Snapshot returns a copy of the grid for pixel frontends and tests.
func (g *Game) Snapshot() engine.Snapshot {
	if g.match == nil {
		return engine.Snapshot{}
	}
	return g.match.Snapshot()
}

// TickPeriod returns the fall interval of the current match.
func (g *Game) TickPeriod() time.Duration {
	if g.match == nil {
		return engine.DefaultTickPeriod
	}
	return g.match.TickPeriod()
}
