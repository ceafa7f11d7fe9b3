package chime

import "time"

// Default recognizer timings, used when a subscription passes zero.
const (
	defaultMultiClickTimeout = 300 * time.Millisecond
	defaultLongClickDelay    = 500 * time.Millisecond
	minRepeatInterval        = 30 * time.Millisecond
)

// ClickHandler responds to a recognized click pattern. The recognizer
// describes what fired (button, click count, repeating); context is the
// value installed with the subscription, the per-button override, or the
// window's click context, in that priority order.
type ClickHandler func(rec *ClickRecognizer, context any)

// singleConfig is a (a) single-click subscription, optionally repeating
// while the button is held.
type singleConfig struct {
	handler ClickHandler
	repeat  time.Duration // 0 = no repeat
}

// multiConfig is a (b) multi-click subscription.
type multiConfig struct {
	handler  ClickHandler
	min, max uint8
	timeout  time.Duration
	lastOnly bool
}

// longConfig is a (c) long-click subscription.
type longConfig struct {
	down, up ClickHandler
	delay    time.Duration
}

// rawConfig is a (d) raw down/up subscription.
type rawConfig struct {
	down, up   ClickHandler
	context    any
	hasContext bool
}

type buttonConfig struct {
	single *singleConfig
	multi  *multiConfig
	long   *longConfig
	raw    *rawConfig

	context    any
	hasContext bool
}

// ClickConfig is the per-window table of button subscriptions. A window's
// ClickConfigProvider receives a fresh ClickConfig each time the window
// becomes the top window and subscribes handlers on it.
//
// Per button, exactly one of single and repeating-single may be set (the
// later subscription replaces the earlier); long and raw may coexist with
// either. When a long-click handler is present, single-click repeat is
// suppressed so a held button resolves as a long click.
//
// The back button always pops the window stack on a plain click unless the
// window subscribes a single or multi handler for it; long and raw
// subscriptions on back are rejected.
type ClickConfig struct {
	entries [NumButtons]buttonConfig
	context any
}

func validButton(b ButtonID) bool { return b < NumButtons }

// SubscribeClick installs a single-click handler that fires on button press.
func (c *ClickConfig) SubscribeClick(button ButtonID, handler ClickHandler) error {
	return c.SubscribeRepeatingClick(button, 0, handler)
}

// SubscribeRepeatingClick installs a single-click handler that fires on
// press and then repeats at the given interval while the button stays held.
// Intervals below 30ms are clamped. Replaces any previous single-click
// subscription for the button.
func (c *ClickConfig) SubscribeRepeatingClick(button ButtonID, interval time.Duration, handler ClickHandler) error {
	if !validButton(button) || handler == nil {
		return ErrInvalidArgument
	}
	if interval != 0 && interval < minRepeatInterval {
		interval = minRepeatInterval
	}
	c.entries[button].single = &singleConfig{handler: handler, repeat: interval}
	return nil
}

// SubscribeMultiClick installs a multi-click handler. minClicks of zero is
// treated as 2, maxClicks of zero as minClicks, timeout of zero as 300ms.
// With lastClickOnly the handler fires once with the final count after the
// timeout (or immediately at maxClicks); otherwise it fires at every count
// from minClicks up as the clicks accumulate.
func (c *ClickConfig) SubscribeMultiClick(button ButtonID, minClicks, maxClicks uint8, timeout time.Duration, lastClickOnly bool, handler ClickHandler) error {
	if !validButton(button) || handler == nil {
		return ErrInvalidArgument
	}
	if minClicks == 0 {
		minClicks = 2
	}
	if maxClicks == 0 {
		maxClicks = minClicks
	}
	if maxClicks < minClicks {
		return ErrInvalidArgument
	}
	if timeout == 0 {
		timeout = defaultMultiClickTimeout
	}
	c.entries[button].multi = &multiConfig{
		handler: handler, min: minClicks, max: maxClicks,
		timeout: timeout, lastOnly: lastClickOnly,
	}
	return nil
}

// SubscribeLongClick installs down/up handlers for a press held at least
// delay (zero means 500ms). Either handler may be nil, not both. Rejected
// for the back button.
func (c *ClickConfig) SubscribeLongClick(button ButtonID, delay time.Duration, down, up ClickHandler) error {
	if !validButton(button) || (down == nil && up == nil) {
		return ErrInvalidArgument
	}
	if button == ButtonBack {
		return ErrInvalidArgument
	}
	if delay == 0 {
		delay = defaultLongClickDelay
	}
	c.entries[button].long = &longConfig{down: down, up: up, delay: delay}
	return nil
}

// SubscribeRawClick installs handlers for the raw press and release edges,
// with an optional context overriding the button's context for these
// handlers only. Rejected for the back button.
func (c *ClickConfig) SubscribeRawClick(button ButtonID, down, up ClickHandler, context any) error {
	if !validButton(button) || (down == nil && up == nil) {
		return ErrInvalidArgument
	}
	if button == ButtonBack {
		return ErrInvalidArgument
	}
	c.entries[button].raw = &rawConfig{down: down, up: up, context: context, hasContext: context != nil}
	return nil
}

// SetClickContext overrides the context passed to the button's handlers.
func (c *ClickConfig) SetClickContext(button ButtonID, context any) error {
	if !validButton(button) {
		return ErrInvalidArgument
	}
	c.entries[button].context = context
	c.entries[button].hasContext = true
	return nil
}

// --- Recognizer ---

// ClickRecognizer is the per-button state machine distinguishing single,
// multi, long, and raw click patterns. One recognizer exists per physical
// button; handlers receive the recognizer that fired.
type ClickRecognizer struct {
	button ButtonID
	app    *App
	cfg    *buttonConfig
	defCtx any

	isDown     bool
	pressAt    time.Time
	repeatAt   time.Time
	repeating  bool
	longFired  bool
	clickCount int
	lastEdgeAt time.Time
}

// ButtonID returns the button this recognizer tracks.
func (r *ClickRecognizer) ButtonID() ButtonID { return r.button }

// ClickCount returns the number of clicks counted for the firing pattern:
// 1 for a single click, the accumulated count for multi-clicks.
func (r *ClickRecognizer) ClickCount() int {
	if r.clickCount == 0 {
		return 1
	}
	return r.clickCount
}

// IsRepeating reports whether the current handler invocation came from the
// hold-to-repeat path rather than the initial press.
func (r *ClickRecognizer) IsRepeating() bool { return r.repeating }

// install binds the recognizer to a window's button configuration and
// resets in-flight state.
func (r *ClickRecognizer) install(cfg *buttonConfig, defaultContext any) {
	r.cfg = cfg
	r.defCtx = defaultContext
	r.reset()
}

func (r *ClickRecognizer) reset() {
	r.isDown = false
	r.repeating = false
	r.longFired = false
	r.clickCount = 0
	r.repeatAt = time.Time{}
}

// context resolves the value passed to non-raw handlers.
func (r *ClickRecognizer) context() any {
	if r.cfg != nil && r.cfg.hasContext {
		return r.cfg.context
	}
	return r.defCtx
}

// rawContext resolves the value passed to raw handlers.
func (r *ClickRecognizer) rawContext() any {
	if r.cfg != nil && r.cfg.raw != nil && r.cfg.raw.hasContext {
		return r.cfg.raw.context
	}
	return r.context()
}

// down handles a physical press edge at the given loop time.
func (r *ClickRecognizer) down(now time.Time) {
	if r.isDown {
		return
	}
	r.isDown = true
	r.pressAt = now
	r.lastEdgeAt = now
	r.longFired = false
	r.repeating = false

	cfg := r.cfg
	if cfg == nil {
		cfg = &buttonConfig{}
	}
	if cfg.raw != nil && cfg.raw.down != nil {
		cfg.raw.down(r, r.rawContext())
	}

	if cfg.single == nil && cfg.multi == nil {
		if r.button == ButtonBack {
			// Default back behavior: a plain click pops the window stack.
			r.app.stack.Pop(true)
		}
		return
	}

	if cfg.single != nil {
		cfg.single.handler(r, r.context())
		// A long-click subscription claims the held button, so repeat is
		// suppressed while one is present.
		if cfg.single.repeat > 0 && cfg.long == nil {
			r.repeatAt = now.Add(cfg.single.repeat)
		}
	}

	if cfg.multi != nil {
		r.clickCount++
		if !cfg.multi.lastOnly && r.clickCount >= int(cfg.multi.min) && r.clickCount <= int(cfg.multi.max) {
			cfg.multi.handler(r, r.context())
		}
		if r.clickCount >= int(cfg.multi.max) {
			if cfg.multi.lastOnly {
				cfg.multi.handler(r, r.context())
			}
			r.clickCount = 0
		}
	}
}

// up handles a physical release edge at the given loop time.
func (r *ClickRecognizer) up(now time.Time) {
	if !r.isDown {
		return
	}
	r.isDown = false
	r.lastEdgeAt = now
	r.repeatAt = time.Time{}
	r.repeating = false

	cfg := r.cfg
	if cfg == nil {
		return
	}
	if r.longFired {
		if cfg.long != nil && cfg.long.up != nil {
			cfg.long.up(r, r.context())
		}
		r.longFired = false
	}
	if cfg.raw != nil && cfg.raw.up != nil {
		cfg.raw.up(r, r.rawContext())
	}
}

// tick advances hold and timeout state to the given loop time.
func (r *ClickRecognizer) tick(now time.Time) {
	cfg := r.cfg
	if cfg == nil {
		return
	}

	if r.isDown {
		if cfg.long != nil && !r.longFired && now.Sub(r.pressAt) >= cfg.long.delay {
			r.longFired = true
			if cfg.long.down != nil {
				cfg.long.down(r, r.context())
			}
		}
		if !r.repeatAt.IsZero() && !now.Before(r.repeatAt) {
			r.repeating = true
			cfg.single.handler(r, r.context())
			r.repeatAt = r.repeatAt.Add(cfg.single.repeat)
			r.repeating = false
		}
		return
	}

	// Multi-click window: once the timeout lapses with no further press,
	// settle the accumulated count.
	if cfg.multi != nil && r.clickCount > 0 && now.Sub(r.lastEdgeAt) >= cfg.multi.timeout {
		if cfg.multi.lastOnly && r.clickCount >= int(cfg.multi.min) && r.clickCount <= int(cfg.multi.max) {
			cfg.multi.handler(r, r.context())
		}
		r.clickCount = 0
	}
}
