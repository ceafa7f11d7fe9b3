package chime

import (
	"time"
)

const (
	// defaultScreenW/H match the classic 144x168 watch display.
	defaultScreenW = 144
	defaultScreenH = 168

	defaultTaskQueueCap = 64
)

// AppConfig configures a new App.
type AppConfig struct {
	// ScreenSize is the framebuffer size. Zero means 144x168.
	ScreenSize GSize

	// TaskQueueCap bounds the PostTask queue. Zero means 64. A full queue
	// makes PostTask return ErrResourceExhausted instead of blocking.
	TaskQueueCap int

	// Debug enables destroyed-layer checks and per-frame timing stats.
	Debug bool
}

// App is the explicit application context: the window stack, the animation
// scheduler, the input recognizers, the frame clock, and the framebuffer.
// There is exactly one main loop; the compositor, animation driver, and
// input router run as sequential phases of one Tick. All methods except
// PostTask must be called from the goroutine driving Tick; App performs no
// locking because the loop is the sole owner of its state.
//
// External events (sensor readings, completed transfers) are delivered by
// posting a callback with PostTask; it runs at the start of the next tick,
// on the loop.
type App struct {
	fb    *GBitmap
	gctx  *GContext
	stack *WindowStack
	sched *Scheduler

	recognizers [NumButtons]ClickRecognizer

	tasks  chan func()
	timers []*AppTimer

	now         time.Time
	needsRender bool

	presenter   func(*GBitmap)
	exitHandler func()
	exited      bool

	debug bool
}

// New creates an App with an allocated framebuffer and empty window stack.
func New(cfg AppConfig) (*App, error) {
	size := cfg.ScreenSize
	if size.W == 0 && size.H == 0 {
		size = Sz(defaultScreenW, defaultScreenH)
	}
	fb, err := NewGBitmap(size)
	if err != nil {
		return nil, err
	}
	qcap := cfg.TaskQueueCap
	if qcap <= 0 {
		qcap = defaultTaskQueueCap
	}
	a := &App{
		fb:    fb,
		gctx:  newGContext(),
		tasks: make(chan func(), qcap),
		debug: cfg.Debug,
	}
	a.stack = &WindowStack{app: a}
	a.sched = newScheduler(a.requestRender)
	for b := range a.recognizers {
		a.recognizers[b].button = ButtonID(b)
		a.recognizers[b].app = a
	}
	globalDebug = cfg.Debug
	return a, nil
}

// ScreenBounds returns the framebuffer's rect at the origin.
func (a *App) ScreenBounds() GRect { return a.fb.Bounds() }

// Framebuffer returns the framebuffer the compositor paints into. The
// display driver reads it from the presenter hook; mutating it elsewhere
// gives undefined pixels for the current frame only.
func (a *App) Framebuffer() *GBitmap { return a.fb }

// WindowStack returns the app's window stack.
func (a *App) WindowStack() *WindowStack { return a.stack }

// Animations returns the app's animation scheduler.
func (a *App) Animations() *Scheduler { return a.sched }

// SetPresenter installs the display driver hook invoked with the
// framebuffer after each completed render pass.
func (a *App) SetPresenter(fn func(*GBitmap)) { a.presenter = fn }

// SetExitHandler installs the hook fired when the last window is popped.
func (a *App) SetExitHandler(fn func()) { a.exitHandler = fn }

// Exited reports whether the window stack has emptied.
func (a *App) Exited() bool { return a.exited }

// requestRender schedules a render pass for the next tick. Called from
// Layer.MarkDirty and the animation scheduler; never renders synchronously.
func (a *App) requestRender() { a.needsRender = true }

func (a *App) requestExit() {
	if a.exited {
		return
	}
	a.exited = true
	if a.exitHandler != nil {
		a.exitHandler()
	}
}

// PostTask queues fn to run at the start of the next tick, on the loop.
// This is the only App method safe to call from another goroutine.
// Returns ErrResourceExhausted when the queue is full.
func (a *App) PostTask(fn func()) error {
	if fn == nil {
		return ErrInvalidArgument
	}
	select {
	case a.tasks <- fn:
		return nil
	default:
		return ErrResourceExhausted
	}
}

// PushButtonEvent feeds a physical button edge (down=true for press) into
// the input router. Events are timestamped with the loop's current time.
func (a *App) PushButtonEvent(button ButtonID, down bool) error {
	if !validButton(button) {
		return ErrInvalidArgument
	}
	r := &a.recognizers[button]
	if down {
		r.down(a.now)
	} else {
		r.up(a.now)
	}
	return nil
}

// installClickConfig runs the window's click provider against a fresh
// config table and rebinds all recognizers to it.
func (a *App) installClickConfig(w *Window) {
	cfg := &ClickConfig{context: w.clickContext}
	if w.clickProvider != nil {
		w.clickProvider(cfg, w.clickContext)
	}
	for b := range a.recognizers {
		a.recognizers[b].install(&cfg.entries[b], w.clickContext)
	}
}

// resetRecognizers cancels in-flight button recognition.
func (a *App) resetRecognizers() {
	for b := range a.recognizers {
		a.recognizers[b].reset()
	}
}

// Tick runs one frame of the main loop at the given time: queued tasks,
// timers, input timeouts, animations, and, only when something is dirty,
// a render pass followed by the presenter hook. Drive it from a display
// vsync, a ticker, or directly in tests.
func (a *App) Tick(now time.Time) {
	a.now = now

	var stats frameStats
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}

	a.drainTasks()
	if a.debug {
		stats.tasks = time.Since(t0)
		t0 = time.Now()
	}

	a.fireTimers(now)
	for b := range a.recognizers {
		a.recognizers[b].tick(now)
	}
	if a.debug {
		stats.input = time.Since(t0)
		t0 = time.Now()
	}

	a.sched.Tick(now)
	if a.debug {
		stats.animations = time.Since(t0)
		t0 = time.Now()
	}

	if a.needsRender {
		a.needsRender = false
		a.renderPass()
		stats.rendered = true
		if a.presenter != nil {
			a.presenter(a.fb)
		}
	}
	if a.debug {
		stats.render = time.Since(t0)
		a.logFrameStats(stats)
	}
}

// drainTasks runs the callbacks queued since the previous tick. Tasks
// posted by a running task wait for the next tick, keeping each tick's
// work bounded.
func (a *App) drainTasks() {
	for n := len(a.tasks); n > 0; n-- {
		fn := <-a.tasks
		fn()
	}
}

// --- Timers ---

// AppTimer is a one-shot callback scheduled on the app loop.
type AppTimer struct {
	app       *App
	deadline  time.Time
	cb        func()
	fired     bool
	cancelled bool
}

// ScheduleTimer registers cb to run on the loop once d has elapsed,
// measured from the loop's current time.
func (a *App) ScheduleTimer(d time.Duration, cb func()) (*AppTimer, error) {
	if cb == nil || d < 0 {
		return nil, ErrInvalidArgument
	}
	base := a.now
	if base.IsZero() {
		base = time.Now()
	}
	t := &AppTimer{app: a, deadline: base.Add(d), cb: cb}
	a.timers = append(a.timers, t)
	return t, nil
}

// Reschedule moves a pending timer's deadline to d from the loop's current
// time. Returns ErrNotFound if the timer already fired or was cancelled.
func (t *AppTimer) Reschedule(d time.Duration) error {
	if t == nil {
		return ErrInvalidReference
	}
	if t.fired || t.cancelled {
		return ErrNotFound
	}
	if d < 0 {
		return ErrInvalidArgument
	}
	t.deadline = t.app.now.Add(d)
	return nil
}

// Cancel stops a pending timer. Cancelling a fired or cancelled timer is a
// no-op; the cancellation takes effect before Cancel returns.
func (t *AppTimer) Cancel() {
	if t == nil || t.fired {
		return
	}
	t.cancelled = true
}

// fireTimers runs every timer whose deadline has passed, earliest first.
// A timer callback may schedule new timers; those wait for the next tick
// if their deadline has already passed.
func (a *App) fireTimers(now time.Time) {
	if len(a.timers) == 0 {
		return
	}
	due := a.timers[:0:0] // nil unless something is due; avoids an alloc otherwise
	kept := a.timers[:0]
	for _, t := range a.timers {
		switch {
		case t.cancelled:
		case !t.deadline.After(now):
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(a.timers); i++ {
		a.timers[i] = nil
	}
	a.timers = kept
	for i := 1; i < len(due); i++ {
		// Insertion sort by deadline; due lists are tiny.
		t := due[i]
		j := i - 1
		for j >= 0 && due[j].deadline.After(t.deadline) {
			due[j+1] = due[j]
			j--
		}
		due[j+1] = t
	}
	for _, t := range due {
		t.fired = true
		t.cb()
	}
}
