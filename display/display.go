// Package display presents a chime framebuffer in a desktop window using
// [Ebitengine] and maps keyboard keys to watch buttons. The core never
// imports this package; it is one driver for the presenter seam.
//
// Default key mapping: Backspace is Back, Up/Down arrows are Up/Down, and
// Enter is Select.
//
// [Ebitengine]: https://ebitengine.org
package display

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/strapkit/chime"
)

// Config controls the desktop window.
type Config struct {
	Title string

	// Scale is the integer pixel zoom. Zero means 3.
	Scale int

	// Keys overrides the button key mapping. A zero value uses the default.
	Keys KeyMap
}

// KeyMap assigns one keyboard key per watch button.
type KeyMap [chime.NumButtons]ebiten.Key

// DefaultKeys returns the standard mapping.
func DefaultKeys() KeyMap {
	var m KeyMap
	m[chime.ButtonBack] = ebiten.KeyBackspace
	m[chime.ButtonUp] = ebiten.KeyArrowUp
	m[chime.ButtonSelect] = ebiten.KeyEnter
	m[chime.ButtonDown] = ebiten.KeyArrowDown
	return m
}

type game struct {
	app  *chime.App
	keys KeyMap
	held [chime.NumButtons]bool

	screen *ebiten.Image
	rgba   []byte
	size   chime.GSize
}

// Run opens a window and drives the app until its window stack empties or
// the window is closed.
func Run(app *chime.App, cfg Config) error {
	if app == nil {
		return chime.ErrInvalidReference
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 3
	}
	keys := cfg.Keys
	if keys == (KeyMap{}) {
		keys = DefaultKeys()
	}

	size := app.ScreenBounds().Size
	g := &game{
		app:    app,
		keys:   keys,
		screen: ebiten.NewImage(int(size.W), int(size.H)),
		rgba:   make([]byte, int(size.W)*int(size.H)*4),
		size:   size,
	}
	app.SetPresenter(g.present)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(int(size.W)*scale, int(size.H)*scale)
	if err := ebiten.RunGame(g); err != nil && err != errAppExited {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

var errAppExited = fmt.Errorf("display: app exited")

func (g *game) Update() error {
	for b := chime.ButtonID(0); b < chime.NumButtons; b++ {
		down := ebiten.IsKeyPressed(g.keys[b])
		if down != g.held[b] {
			g.held[b] = down
			_ = g.app.PushButtonEvent(b, down)
		}
	}
	g.app.Tick(time.Now())
	if g.app.Exited() {
		return errAppExited
	}
	return nil
}

// present expands the 2-bit-per-channel framebuffer to RGBA and uploads it.
// Installed as the app's presenter, so it only runs on frames that rendered.
func (g *game) present(fb *chime.GBitmap) {
	i := 0
	for y := int16(0); y < g.size.H; y++ {
		for x := int16(0); x < g.size.W; x++ {
			c, _ := fb.Pixel(chime.Pt(x, y))
			r, gg, b, a := c.RGBA()
			g.rgba[i+0] = r
			g.rgba[i+1] = gg
			g.rgba[i+2] = b
			g.rgba[i+3] = a
			i += 4
		}
	}
	g.screen.WritePixels(g.rgba)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return int(g.size.W), int(g.size.H)
}
