// Package window runs a game in a desktop window. The grid is blitted
// into an ebiten image once per frame and scaled up on the GPU.
package window

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/games/blocks/engine"
	"github.com/vovakirdan/geirtris/internal/platform/record"
	"github.com/vovakirdan/geirtris/internal/platform/texture"
	"github.com/vovakirdan/geirtris/internal/registry"
	"github.com/vovakirdan/geirtris/internal/storage"
)

const hudPixels = 28

// Source is a game that exposes its grid.
type Source interface {
	registry.Game
	Snapshot() engine.Snapshot
}

// Options configures the window host.
type Options struct {
	Scale   int // Screen pixels per grid cell
	Runtime core.RuntimeConfig
	Store   *storage.Store
	Logger  *log.Logger
}

// Window implements ebiten.Game around a Source.
type Window struct {
	src      Source
	runtime  core.RuntimeConfig
	scale    int
	recorder *record.Recorder
	logger   *log.Logger

	grid   *ebiten.Image
	banner *ebiten.Image
	pixels []byte
	face   font.Face
	state  core.GameState
	width  int
	height int
}

// New prepares a window for src and starts its first match.
func New(src Source, opts Options) (*Window, error) {
	if opts.Scale <= 0 {
		opts.Scale = 16
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("window: parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    16,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("window: create font face: %w", err)
	}

	w := &Window{
		src:      src,
		runtime:  opts.Runtime,
		scale:    opts.Scale,
		recorder: record.New(opts.Store, opts.Logger, src.ID()),
		logger:   opts.Logger,
		face:     face,
	}
	w.reset(opts.Runtime.Seed)
	return w, nil
}

func (w *Window) reset(seed int64) {
	cfg := w.runtime
	cfg.Seed = seed
	// The terminal layout is unused here. A large character area keeps the
	// game from pausing itself as too small.
	cfg.ScreenW, cfg.ScreenH = 1<<12, 1<<12
	w.src.Reset(cfg)
	w.state = w.src.State()
	w.recorder.Start(w.state)

	snap := w.src.Snapshot()
	w.width, w.height = snap.Width, snap.Height
	w.grid = ebiten.NewImage(snap.Width, snap.Height)
}

// Update runs one host frame.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		w.leave()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && (w.state.GameOver || w.state.Paused) {
		w.leave()
		return ebiten.Termination
	}

	res := w.src.Step(readInput())
	w.state = res.State
	w.recorder.Observe(res)
	return nil
}

// leave stops an unfinished match and records it.
func (w *Window) leave() {
	if w.state.GameOver {
		return
	}
	if e, ok := w.src.(registry.Ender); ok {
		e.End()
		w.state = w.src.State()
		w.recorder.Finish(w.state)
	}
}

// readInput maps held and pressed keys to actions.
func readInput() core.InputFrame {
	in := core.NewInputFrame()
	if repeat(ebiten.KeyArrowLeft) || repeat(ebiten.KeyA) {
		in.Set(core.ActionLeft)
	}
	if repeat(ebiten.KeyArrowRight) || repeat(ebiten.KeyD) {
		in.Set(core.ActionRight)
	}
	if repeat(ebiten.KeyArrowDown) || repeat(ebiten.KeyS) {
		in.Set(core.ActionSoftDrop)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.Set(core.ActionHardDrop)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		in.Set(core.ActionRestart)
	}
	return in
}

// repeat fires on press and then every few frames while held.
func repeat(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 12 && d%4 == 0)
}

// Draw renders the grid and HUD.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	w.pixels = texture.Blit(w.src.Snapshot(), w.pixels)
	w.grid.WritePixels(w.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	op.GeoM.Translate(0, hudPixels)
	screen.DrawImage(w.grid, op)

	hud := fmt.Sprintf("Locked %d  Ticks %d", w.state.Locked, w.state.Ticks)
	text.Draw(screen, hud, w.face, 6, 20, colornames.White)

	switch {
	case w.state.GameOver:
		w.drawBanner(screen, "GAME OVER", "R restart  Esc quit")
	case w.state.Paused:
		w.drawBanner(screen, "PAUSED", "P continue  Esc quit")
	}
}

func (w *Window) drawBanner(screen *ebiten.Image, title, hint string) {
	sw, sh := w.Layout(0, 0)
	y := sh / 2
	if w.banner == nil || w.banner.Bounds().Dx() != sw {
		w.banner = ebiten.NewImage(sw, 48)
		w.banner.Fill(color.RGBA{A: 0xc0})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(y-28))
	screen.DrawImage(w.banner, op)

	text.Draw(screen, title, w.face, 8, y-8, colornames.Gold)
	text.Draw(screen, hint, w.face, 8, y+14, colornames.White)
}

// Layout returns the fixed logical screen size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width * w.scale, w.height*w.scale + hudPixels
}

// Run opens the window and blocks until it is closed.
func Run(src Source, opts Options) error {
	w, err := New(src, opts)
	if err != nil {
		return err
	}

	sw, sh := w.Layout(0, 0)
	ebiten.SetWindowSize(sw, sh)
	ebiten.SetWindowTitle(src.Title())
	if tps := w.runtime.TickRate; tps > 0 {
		ebiten.SetTPS(tps)
	}

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
