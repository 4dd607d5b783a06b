package engine

import (
	"fmt"
	"time"

	"github.com/vovakirdan/geirtris/internal/core"
)

// State is the fall scheduler state.
type State int

const (
	StateIdle     State = iota // No active block; the next tick spawns one
	StateFalling               // An active block advances each tick
	StateGameOver              // Terminal; ticks are ignored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFalling:
		return "falling"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EndReason records why a match stopped.
type EndReason string

const (
	EndNone      EndReason = ""
	EndToppedOut EndReason = core.EndReasonToppedOut // a lock left the game-over row occupied
	EndBlocked   EndReason = core.EndReasonBlocked   // a new block spawned onto locked cells
	EndStopped   EndReason = core.EndReasonEnded     // the host ended the match
)

// MatchConfig describes one match.
type MatchConfig struct {
	Width       int
	Height      int
	TickPeriod  time.Duration
	SpawnRow    RowRule // RowAuto means midpoint
	GameOverRow RowRule // RowAuto means the spawn row
	Shapes      []Shape // Empty means DefaultShapes
	Seed        int64
}

// TickResult reports what a tick or drop did.
type TickResult struct {
	Spawned  bool
	Moved    bool
	Locked   bool
	GameOver bool
	State    State
}

// Match is the aggregate root of one game: it exclusively owns the grid
// and at most one active block. All methods run on the host's update pass.
type Match struct {
	grid        *Grid
	active      *Block
	spawner     *Spawner
	state       State
	tickPeriod  time.Duration
	spawnRow    int
	gameOverRow int
	locked      int
	ticks       uint64
	reason      EndReason
	ended       bool
	signal      bool // one-shot game-over signal pending
}

// NewMatch validates the configuration and starts a match in StateIdle.
func NewMatch(cfg MatchConfig) (*Match, error) {
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	shapes := cfg.Shapes
	if len(shapes) == 0 {
		shapes = DefaultShapes()
	}

	spawnRow := cfg.SpawnRow.Resolve(cfg.Height)
	gameOverRow := spawnRow
	if !cfg.GameOverRow.IsAuto() {
		gameOverRow = cfg.GameOverRow.Resolve(cfg.Height)
	}

	if spawnRow < 0 || spawnRow >= cfg.Height {
		return nil, fmt.Errorf("%w: spawn row %d outside %d rows", ErrInvalidConfig, spawnRow, cfg.Height)
	}
	if gameOverRow < 0 || gameOverRow > spawnRow {
		return nil, fmt.Errorf("%w: game-over row %d must be between 0 and spawn row %d", ErrInvalidConfig, gameOverRow, spawnRow)
	}

	for _, s := range shapes {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if s.Width > cfg.Width {
			return nil, fmt.Errorf("%w: shape %q is %d wide, grid is %d", ErrInvalidConfig, s.Name, s.Width, cfg.Width)
		}
		if spawnRow+s.Height > cfg.Height {
			return nil, fmt.Errorf("%w: shape %q does not fit below spawn row %d", ErrInvalidConfig, s.Name, spawnRow)
		}
	}

	period := cfg.TickPeriod
	if period <= 0 {
		period = DefaultTickPeriod
	}

	return &Match{
		grid:        grid,
		spawner:     NewSpawner(shapes, cfg.Seed),
		state:       StateIdle,
		tickPeriod:  period,
		spawnRow:    spawnRow,
		gameOverRow: gameOverRow,
	}, nil
}

// Tick runs one fall-scheduler step.
//
// With no active block it spawns one. Otherwise the block is cleared,
// moved down a row and tested: a free position commits it there, an
// overlap rolls it back and locks it. The game-over row is checked
// after every fall step. A spawn tick skips that check, since a block
// spawned on the game-over row would otherwise end the match at once;
// a spawn onto locked cells ends it as EndBlocked instead.
func (m *Match) Tick() TickResult {
	if !m.IsActive() {
		return TickResult{State: m.state}
	}
	m.ticks++

	if m.active == nil {
		return m.spawn()
	}
	return m.fall()
}

// spawn places a new block. A block that lands on locked cells ends the match.
func (m *Match) spawn() TickResult {
	b := m.spawner.Spawn(m.grid.width, m.spawnRow)
	if Overlaps(b, m.grid) {
		m.finish(EndBlocked)
		return TickResult{GameOver: true, State: m.state}
	}

	Commit(b, m.grid)
	m.active = b
	m.state = StateFalling
	return TickResult{Spawned: true, State: m.state}
}

// fall runs one step and the game-over check.
func (m *Match) fall() TickResult {
	res := m.step()
	m.checkOver(&res)
	return res
}

// step moves the active block down one row or locks it in place.
func (m *Match) step() TickResult {
	b := m.active

	Clear(b, m.grid)
	b.Row++
	if !Overlaps(b, m.grid) {
		Commit(b, m.grid)
		return TickResult{Moved: true, State: m.state}
	}

	b.Row--
	Commit(b, m.grid)
	m.active = nil
	m.locked++
	m.state = StateIdle
	return TickResult{Locked: true, State: m.state}
}

func (m *Match) checkOver(res *TickResult) {
	if IsOver(m.grid, m.gameOverRow) {
		m.finish(EndToppedOut)
		res.GameOver = true
	}
	res.State = m.state
}

// finish moves the match into its terminal state and arms the game-over signal.
func (m *Match) finish(reason EndReason) {
	m.active = nil
	m.state = StateGameOver
	m.reason = reason
	m.signal = true
}

// MoveLeft shifts the active block one column left if the cells are free.
func (m *Match) MoveLeft() bool {
	return m.shift(-1)
}

// MoveRight shifts the active block one column right if the cells are free.
func (m *Match) MoveRight() bool {
	return m.shift(1)
}

func (m *Match) shift(dc int) bool {
	if !m.IsActive() || m.active == nil {
		return false
	}
	b := m.active

	Clear(b, m.grid)
	b.Col += dc
	if Overlaps(b, m.grid) {
		b.Col -= dc
		Commit(b, m.grid)
		return false
	}
	Commit(b, m.grid)
	return true
}

// SoftDrop runs one fall step immediately, outside the tick schedule.
func (m *Match) SoftDrop() TickResult {
	if !m.IsActive() || m.active == nil {
		return TickResult{State: m.state}
	}
	return m.fall()
}

// HardDrop moves the active block down until it locks.
func (m *Match) HardDrop() TickResult {
	if !m.IsActive() || m.active == nil {
		return TickResult{State: m.state}
	}

	var res TickResult
	for {
		step := m.step()
		res.Moved = res.Moved || step.Moved
		if step.Locked {
			res.Locked = true
			break
		}
	}
	m.checkOver(&res)
	return res
}

// End stops the match from outside. Later ticks are ignored.
func (m *Match) End() {
	if m.ended {
		return
	}
	m.ended = true
	m.active = nil
	if m.reason == EndNone {
		m.reason = EndStopped
	}
}

// TakeGameOver returns true once, on the first call after the match
// reached its game-over state.
func (m *Match) TakeGameOver() bool {
	if !m.signal {
		return false
	}
	m.signal = false
	return true
}

// IsActive reports whether the match still accepts ticks.
func (m *Match) IsActive() bool {
	return !m.ended && m.state != StateGameOver
}

// HasActiveBlock reports whether a block is currently falling.
func (m *Match) HasActiveBlock() bool {
	return m.active != nil
}

// ActiveBlock returns a copy of the falling block.
func (m *Match) ActiveBlock() (Block, bool) {
	if m.active == nil {
		return Block{}, false
	}
	return *m.active, true
}

// State returns the scheduler state.
func (m *Match) State() State {
	return m.state
}

// EndReason returns why the match stopped, or EndNone while it runs.
func (m *Match) EndReason() EndReason {
	return m.reason
}

// Locked returns the number of blocks locked so far.
func (m *Match) Locked() int {
	return m.locked
}

// Ticks returns the number of scheduler ticks processed.
func (m *Match) Ticks() uint64 {
	return m.ticks
}

// TickPeriod returns the configured fall interval.
func (m *Match) TickPeriod() time.Duration {
	return m.tickPeriod
}

// SpawnRow returns the resolved spawn row.
func (m *Match) SpawnRow() int {
	return m.spawnRow
}

// GameOverRow returns the resolved row watched by the game-over detector.
func (m *Match) GameOverRow() int {
	return m.gameOverRow
}

// Width returns the grid width.
func (m *Match) Width() int {
	return m.grid.width
}

// Height returns the grid height.
func (m *Match) Height() int {
	return m.grid.height
}
