package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/geirtris/internal/config"
	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/platform/record"
	"github.com/vovakirdan/geirtris/internal/registry"
	"github.com/vovakirdan/geirtris/internal/storage"
)

// GameModel is the Bubble Tea model for one running game. It is used
// directly by `play` and embedded in menu sessions, local or over SSH.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	recorder   *record.Recorder
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	shotDir    string
	tickID     uint64
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A nil store disables match history.
func NewGameModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   record.New(store, logger, game.ID()),
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		shotDir:    filepath.Join(config.AppDir(), "screenshots"),
		tickID:     newTickID(),
	}
}

// Init starts the match and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is filled on the first tick (value receiver).
	m.recorder.Start(m.game.State())
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("could not save screenshot", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when the match is not in play.
	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.leave()
		m.backToMenu = true
	}

	return m, nil
}

// leave ends an unfinished match so it is recorded as abandoned.
func (m *GameModel) leave() {
	st := m.game.State()
	if st.GameOver {
		return
	}
	if e, ok := m.game.(registry.Ender); ok {
		e.End()
		m.gameState = m.game.State()
		m.recorder.Finish(m.gameState)
	}
}

// handleResize keeps the match running when the game can relayout.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick runs one host frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.recorder.Observe(result)

	m.inputFrame.Clear()
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// saveScreenshot writes the plain-text screen to the screenshots directory.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the player quits or goes back.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, logger, cfg)

	p := tea.NewProgram(
		newStandalone(model),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// standalone quits the program when the game asks for the menu.
type standalone struct {
	GameModel
}

func newStandalone(m GameModel) standalone {
	return standalone{GameModel: m}
}

func (s standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		s.GameModel = gm
	}
	if s.BackToMenu() {
		return s, tea.Quit
	}
	return s, cmd
}
