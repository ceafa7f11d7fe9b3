package chime

// WindowHandlers are a window's lifecycle callbacks. All are optional.
//
//   - Load fires once, the first time the window is pushed onto the stack.
//   - Appear fires every time the window becomes the visible top window.
//   - Disappear fires every time the window stops being the top window.
//   - Unload fires once, when the window is destroyed after having loaded.
type WindowHandlers struct {
	Load      func(*Window)
	Appear    func(*Window)
	Disappear func(*Window)
	Unload    func(*Window)
}

// ClickConfigProvider installs a window's button handlers. It runs each time
// the window becomes the top window, receiving a fresh ClickConfig to
// subscribe handlers on. A window with no provider keeps the default
// behavior: back pops the window stack, other buttons do nothing.
type ClickConfigProvider func(config *ClickConfig, context any)

// Window is a full-screen container owning one root layer, a background
// color, and input routing configuration. Windows live on the App's window
// stack; only the top window is rendered and receives button input.
type Window struct {
	root       *Layer
	background GColor
	handlers   WindowHandlers

	clickProvider ClickConfigProvider
	clickContext  any

	app       *App // set while the window is on a stack
	loaded    bool
	onStack   bool
	destroyed bool
}

// NewWindow creates a window with a white background and an empty root
// layer. The root layer's frame is set to the screen bounds when the window
// is first pushed.
func NewWindow() *Window {
	w := &Window{background: GColorWhite}
	w.root = NewLayer(GRectZero)
	w.root.window = w
	return w
}

// RootLayer returns the window's root layer. Application layers are added
// as children of the root.
func (w *Window) RootLayer() *Layer { return w.root }

// SetBackgroundColor sets the color painted behind the root layer's content
// at the start of each render pass.
func (w *Window) SetBackgroundColor(c GColor) {
	if w.background == c {
		return
	}
	w.background = c
	w.root.MarkDirty()
}

// BackgroundColor returns the window's background color.
func (w *Window) BackgroundColor() GColor { return w.background }

// SetWindowHandlers sets the window's lifecycle callbacks.
func (w *Window) SetWindowHandlers(h WindowHandlers) { w.handlers = h }

// SetClickConfigProvider sets the callback that installs the window's button
// handlers, along with an opaque context passed through to it and, by
// default, to the click handlers themselves.
func (w *Window) SetClickConfigProvider(provider ClickConfigProvider, context any) {
	w.clickProvider = provider
	w.clickContext = context
	if w.onStack && w.app != nil && w.app.stack.Top() == w {
		w.app.installClickConfig(w)
	}
}

// OnStack reports whether the window is currently on a window stack.
func (w *Window) OnStack() bool { return w.onStack }

// MarkDirty requests a repaint of the whole window.
func (w *Window) MarkDirty() { w.root.MarkDirty() }

// Destroy destroys the window and its owned root layer subtree. Layers the
// application created and attached under the root are destroyed with it;
// layers previously detached are not. If the window is still on a stack it
// is removed first, without animation. Fires Unload if the window had
// loaded. Safe to call twice.
func (w *Window) Destroy() {
	if w == nil || w.destroyed {
		return
	}
	if w.onStack && w.app != nil {
		_ = w.app.stack.Remove(w, false)
	}
	if w.loaded && w.handlers.Unload != nil {
		w.handlers.Unload(w)
	}
	w.destroyed = true
	w.root.Destroy()
	w.root = nil
	w.clickProvider = nil
	w.clickContext = nil
	w.handlers = WindowHandlers{}
}

// Destroyed reports whether the window has been destroyed.
func (w *Window) Destroyed() bool { return w.destroyed }
