package chime

import (
	"math"
	"time"
)

const (
	// DurationInfinite makes an animation run until unscheduled.
	DurationInfinite time.Duration = math.MaxInt64

	// PlayCountInfinite makes an animation loop until unscheduled.
	PlayCountInfinite uint32 = math.MaxUint32

	// defaultAnimationDuration applies when no duration is set.
	defaultAnimationDuration = 250 * time.Millisecond
)

// AnimationImplementation is the per-frame vtable of a leaf animation.
// Setup runs once when the animation is scheduled, Update once per
// progressed frame while running, and Teardown once when the animation is
// unscheduled, whether it finished naturally or was cancelled.
type AnimationImplementation struct {
	Setup    func(*Animation)
	Update   func(*Animation, AnimationProgress)
	Teardown func(*Animation)
}

// AnimationHandlers observe an animation's lifecycle. Started fires when the
// animation begins running (after its delay); Stopped fires exactly once
// when it stops, with finished reporting whether it ran to completion
// (true) or was unscheduled early (false).
type AnimationHandlers struct {
	Started func(*Animation)
	Stopped func(a *Animation, finished bool)
}

type animKind uint8

const (
	animLeaf animKind = iota
	animSequence
	animSpawn
)

// Animation is a time-driven task: either a leaf with an implementation
// vtable, or a composite (sequence/spawn) of child animations. Animations
// are configured while mutable, then scheduled on an App's Scheduler; once
// scheduled or nested in a composite they become immutable and setters
// return ErrImmutable.
type Animation struct {
	kind animKind

	impl     AnimationImplementation
	handlers AnimationHandlers
	context  any

	delay       time.Duration
	duration    time.Duration
	curve       AnimationCurve
	customCurve CurveFunc
	reversed    bool
	playCount   uint32

	children []*Animation
	nestedIn *Animation

	immutable bool
	destroyed bool

	// Run state, reset on every (re)schedule.
	sched        *Scheduler // non-nil while scheduled (root animations only)
	startAt      time.Time
	setupDone    bool
	activated    bool
	finalized    bool
	curPlay      int64
	lastProgress AnimationProgress
}

// NewAnimation creates a leaf animation with the given implementation.
// Defaults: 250ms duration, no delay, ease-in-out curve, one play.
func NewAnimation(impl AnimationImplementation) *Animation {
	return &Animation{
		impl:      impl,
		duration:  defaultAnimationDuration,
		curve:     CurveEaseInOut,
		playCount: 1,
	}
}

// --- Configuration ---

// checkMutable validates the animation for a setter call.
func (a *Animation) checkMutable() error {
	if a == nil || a.destroyed {
		return ErrInvalidReference
	}
	if a.immutable {
		return ErrImmutable
	}
	return nil
}

// SetDuration sets how long one play of the animation runs, excluding the
// delay. Use DurationInfinite to run until unscheduled. Composite durations
// derive from their children and cannot be set.
func (a *Animation) SetDuration(d time.Duration) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	if d < 0 || a.kind != animLeaf {
		return ErrInvalidArgument
	}
	a.duration = d
	return nil
}

// SetDelay sets the time to wait after scheduling before the animation runs.
func (a *Animation) SetDelay(d time.Duration) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	if d < 0 {
		return ErrInvalidArgument
	}
	a.delay = d
	return nil
}

// SetCurve selects a built-in easing curve.
func (a *Animation) SetCurve(c AnimationCurve) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	if c >= CurveCustom {
		return ErrInvalidArgument
	}
	a.curve = c
	return nil
}

// SetCustomCurve installs a custom curve function. Use CurveFromEase to
// adapt any gween easing function.
func (a *Animation) SetCustomCurve(fn CurveFunc) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	if fn == nil {
		return ErrInvalidArgument
	}
	a.curve = CurveCustom
	a.customCurve = fn
	return nil
}

// SetReverse makes the animation play backward in time.
func (a *Animation) SetReverse(reversed bool) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	a.reversed = reversed
	return nil
}

// SetPlayCount sets how many times the animation repeats. Zero is treated
// as one. Use PlayCountInfinite to loop until unscheduled.
func (a *Animation) SetPlayCount(n uint32) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	if n == 0 {
		n = 1
	}
	a.playCount = n
	return nil
}

// SetHandlers installs lifecycle observers and an opaque context value.
func (a *Animation) SetHandlers(h AnimationHandlers, context any) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	a.handlers = h
	a.context = context
	return nil
}

// SetImplementation replaces the animation's vtable.
func (a *Animation) SetImplementation(impl AnimationImplementation) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	if a.kind != animLeaf {
		return ErrInvalidArgument
	}
	a.impl = impl
	return nil
}

// Context returns the opaque value passed to SetHandlers.
func (a *Animation) Context() any { return a.context }

// Delay returns the configured delay.
func (a *Animation) Delay() time.Duration { return a.delay }

// Reversed reports whether the animation plays backward.
func (a *Animation) Reversed() bool { return a.reversed }

// PlayCount returns the configured play count.
func (a *Animation) PlayCount() uint32 { return a.playCount }

// Progress returns the progress passed to the most recent Update call.
func (a *Animation) Progress() AnimationProgress { return a.lastProgress }

// Duration returns the length of one play. For a sequence this is the sum
// of the children's effective durations; for a spawn, their maximum.
func (a *Animation) Duration() time.Duration { return a.playLen() }

// EffectiveDuration returns the total scheduled length: delay plus one play
// length times the play count. DurationInfinite when any part is infinite.
func (a *Animation) EffectiveDuration() time.Duration {
	pl := a.playLen()
	if pl == DurationInfinite || a.playCount == PlayCountInfinite {
		return DurationInfinite
	}
	return a.delay + pl*time.Duration(a.playCount)
}

// playLen returns the length of a single play, excluding delay.
func (a *Animation) playLen() time.Duration {
	switch a.kind {
	case animSequence:
		var sum time.Duration
		for _, c := range a.children {
			e := c.EffectiveDuration()
			if e == DurationInfinite {
				return DurationInfinite
			}
			sum += e
		}
		return sum
	case animSpawn:
		var longest time.Duration
		for _, c := range a.children {
			e := c.EffectiveDuration()
			if e == DurationInfinite {
				return DurationInfinite
			}
			if e > longest {
				longest = e
			}
		}
		return longest
	default:
		return a.duration
	}
}

// Scheduled reports whether the animation is currently scheduled.
func (a *Animation) Scheduled() bool { return a != nil && a.sched != nil }

// Elapsed returns the time since the animation was scheduled, and whether
// the animation is scheduled at all.
func (a *Animation) Elapsed() (time.Duration, bool) {
	if a.sched == nil {
		return 0, false
	}
	if a.startAt.IsZero() {
		return 0, true
	}
	return a.sched.now.Sub(a.startAt), true
}

// SetElapsed seeks a scheduled animation forward to the given elapsed time,
// taking effect on the next tick. Seeking backward is disallowed: elapsed
// time only moves forward.
func (a *Animation) SetElapsed(elapsed time.Duration) error {
	if a == nil || a.destroyed {
		return ErrInvalidReference
	}
	if a.sched == nil {
		return ErrNotFound
	}
	cur, _ := a.Elapsed()
	if elapsed < cur {
		return ErrInvalidArgument
	}
	base := a.sched.now
	if base.IsZero() {
		return ErrInvalidArgument
	}
	a.startAt = base.Add(-elapsed)
	return nil
}

// Destroy unschedules the animation if needed and marks it unusable.
// Nested animations are destroyed with their composite. Safe to call twice.
func (a *Animation) Destroy() {
	if a == nil || a.destroyed {
		return
	}
	if a.sched != nil {
		a.sched.Unschedule(a)
	}
	a.destroyed = true
	for _, c := range a.children {
		c.nestedIn = nil
		c.Destroy()
	}
	a.children = nil
	a.impl = AnimationImplementation{}
	a.handlers = AnimationHandlers{}
	a.context = nil
	a.customCurve = nil
}

// --- Scheduler ---

// Scheduler drives all scheduled animations from the app loop's tick. It is
// owned by an App and must only be used from the app's goroutine. Update
// callbacks may schedule and unschedule animations reentrantly; structural
// changes to the scheduled list are deferred to the end of the tick.
type Scheduler struct {
	now     time.Time
	anims   []*Animation
	ticking bool
	pending []*Animation // scheduled during a tick, appended afterwards
	dirty   func()       // app render-request hook
}

func newScheduler(onDirty func()) *Scheduler {
	return &Scheduler{dirty: onDirty}
}

// Schedule registers the animation with the per-frame driver. Setup runs
// immediately; the animation starts running once its delay elapses. If the
// animation is already scheduled it is first unscheduled (firing
// Stopped(false) and Teardown) and then restarted from the beginning.
// Nested animations cannot be scheduled directly.
func (s *Scheduler) Schedule(a *Animation) error {
	if a == nil || a.destroyed {
		return ErrInvalidReference
	}
	if a.nestedIn != nil {
		return ErrBusy
	}
	if a.sched != nil {
		a.sched.Unschedule(a)
	}
	resetRunState(a)
	a.sched = s
	a.immutable = true
	a.startAt = s.now // zero before the first tick; fixed up in Tick
	runSetup(a)
	if s.ticking {
		s.pending = append(s.pending, a)
	} else {
		s.anims = append(s.anims, a)
	}
	return nil
}

// Unschedule removes the animation from the driver. Safe to call on an
// animation that is not scheduled or already finished (no-op). On a running
// animation it fires Stopped(finished=false), then Teardown, synchronously
// before returning.
func (s *Scheduler) Unschedule(a *Animation) {
	if a == nil || a.sched != s {
		return
	}
	a.sched = nil
	finalize(a, false)
	s.remove(a)
}

// UnscheduleAll unschedules every animation, in scheduling order.
func (s *Scheduler) UnscheduleAll() {
	for _, a := range append([]*Animation(nil), s.anims...) {
		if a != nil && a.sched == s {
			s.Unschedule(a)
		}
	}
	for _, a := range append([]*Animation(nil), s.pending...) {
		if a != nil && a.sched == s {
			s.Unschedule(a)
		}
	}
}

// remove deletes a from the scheduled list. During a tick the entry is left
// in place (the loop skips it via the nil sched field) and compacted after.
func (s *Scheduler) remove(a *Animation) {
	if s.ticking {
		return
	}
	for i, x := range s.anims {
		if x == a {
			copy(s.anims[i:], s.anims[i+1:])
			s.anims[len(s.anims)-1] = nil
			s.anims = s.anims[:len(s.anims)-1]
			return
		}
	}
	for i, x := range s.pending {
		if x == a {
			copy(s.pending[i:], s.pending[i+1:])
			s.pending[len(s.pending)-1] = nil
			s.pending = s.pending[:len(s.pending)-1]
			return
		}
	}
}

// Tick advances every scheduled animation to the given time. Animations
// that finish naturally fire Stopped(finished=true) and Teardown and are
// unregistered. Any progressed animation requests a render, since update
// callbacks mutate layer state.
func (s *Scheduler) Tick(now time.Time) {
	s.now = now
	s.ticking = true
	progressed := false
	for _, a := range s.anims {
		if a == nil || a.sched != s {
			continue
		}
		if a.startAt.IsZero() {
			a.startAt = now
		}
		elapsed := now.Sub(a.startAt)
		if elapsed < a.delay {
			continue
		}
		progressed = true
		if finished := advance(a, elapsed); finished {
			a.sched = nil
		}
	}
	s.ticking = false

	// Apply deferred structural changes: drop unscheduled and finished
	// entries, then append animations scheduled during the tick.
	kept := s.anims[:0]
	for _, a := range s.anims {
		if a != nil && a.sched == s {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(s.anims); i++ {
		s.anims[i] = nil
	}
	s.anims = kept
	if len(s.pending) > 0 {
		s.anims = append(s.anims, s.pending...)
		for i := range s.pending {
			s.pending[i] = nil
		}
		s.pending = s.pending[:0]
	}

	if progressed && s.dirty != nil {
		s.dirty()
	}
}

// --- Advancement ---

// resetRunState clears the run latches of a and its subtree.
func resetRunState(a *Animation) {
	a.startAt = time.Time{}
	a.setupDone = false
	a.activated = false
	a.finalized = false
	a.curPlay = 0
	a.lastProgress = 0
	for _, c := range a.children {
		resetRunState(c)
	}
}

func runSetup(a *Animation) {
	if a.setupDone {
		return
	}
	a.setupDone = true
	if a.impl.Setup != nil {
		a.impl.Setup(a)
	}
}

// activate fires setup (if not already run) and the Started handler.
func activate(a *Animation) {
	if a.activated {
		return
	}
	a.activated = true
	runSetup(a)
	if a.handlers.Started != nil {
		a.handlers.Started(a)
	}
}

// finalize fires the Stopped handler and Teardown exactly once. Active
// children finalize before their composite.
func finalize(a *Animation, finished bool) {
	if a.finalized {
		return
	}
	a.finalized = true
	for _, c := range a.children {
		if c.activated && !c.finalized {
			finalize(c, finished)
		}
	}
	if a.handlers.Stopped != nil {
		a.handlers.Stopped(a, finished)
	}
	if a.setupDone && a.impl.Teardown != nil {
		a.impl.Teardown(a)
	}
}

// advance drives the animation to the given total elapsed time (including
// its delay). Returns true when the animation has finished and finalized.
func advance(a *Animation, elapsed time.Duration) bool {
	if a.finalized {
		return true
	}
	if elapsed < a.delay {
		return false
	}
	active := elapsed - a.delay
	activate(a)

	playLen := a.playLen()
	if playLen == DurationInfinite {
		a.driveWithin(active, playLen)
		return false
	}
	if playLen <= 0 {
		// Degenerate zero-length play: emit the terminal update and finish.
		a.driveWithin(0, 0)
		finalize(a, true)
		return true
	}

	var play int64
	var within time.Duration
	finishing := false
	if a.playCount == PlayCountInfinite {
		play = int64(active / playLen)
		within = active % playLen
	} else {
		total := playLen * time.Duration(a.playCount)
		if active >= total {
			play = int64(a.playCount) - 1
			within = playLen
			finishing = true
		} else {
			play = int64(active / playLen)
			within = active % playLen
		}
	}

	if play != a.curPlay {
		// A new pass begins. Forward playback closes out the previous pass's
		// children first so their terminal updates and handlers fire.
		if !a.reversed {
			for _, c := range a.children {
				if !c.finalized {
					advance(c, c.EffectiveDuration())
				}
			}
		}
		a.curPlay = play
		for _, c := range a.children {
			resetChildForReplay(c)
		}
	}

	if a.reversed {
		within = playLen - within
	}
	a.driveWithin(within, playLen)

	if finishing {
		finalize(a, true)
		return true
	}
	return false
}

// resetChildForReplay clears a child's per-play latches while keeping its
// setup state, so a looping composite re-runs children each pass.
func resetChildForReplay(a *Animation) {
	a.activated = false
	a.finalized = false
	a.curPlay = 0
	for _, c := range a.children {
		resetChildForReplay(c)
	}
}

// driveWithin delivers updates for a single play at time `within` since the
// play began (already direction-mapped for reversed animations).
func (a *Animation) driveWithin(within, playLen time.Duration) {
	switch a.kind {
	case animLeaf:
		var frac float64
		switch {
		case playLen == DurationInfinite:
			// No endpoint to normalize against; updates run at the floor
			// until the animation is unscheduled.
			frac = 0
		case playLen <= 0:
			frac = 1
		default:
			frac = float64(within) / float64(playLen)
		}
		progress := a.applyCurve(frac)
		a.lastProgress = progress
		if a.impl.Update != nil {
			a.impl.Update(a, progress)
		}
	case animSequence:
		a.driveSequence(within)
	case animSpawn:
		for _, c := range a.children {
			if !c.finalized {
				advance(c, within)
			}
		}
	}
}

// driveSequence drives the child whose slot of the timeline contains
// `within`, after closing out any earlier children the timeline has moved
// past. When the composite is reversed, children before the cursor are left
// open instead; their terminal handlers fire when the composite finalizes.
func (a *Animation) driveSequence(within time.Duration) {
	var cum time.Duration
	for _, c := range a.children {
		e := c.EffectiveDuration()
		if e == DurationInfinite {
			if within >= cum {
				advance(c, within-cum)
			}
			return
		}
		if within >= cum+e {
			if !a.reversed && !c.finalized {
				// Moved past this child in one step: run it to completion.
				advance(c, e)
			}
			cum += e
			continue
		}
		if within >= cum {
			advance(c, within-cum)
			return
		}
		// within < cum: reversed playback has not reached this child yet.
		return
	}
	// within landed at the very end of the timeline: close out the last child.
	// Reversed playback starts at the timeline end, so there the close-out
	// is deferred to composite finalization instead.
	if a.reversed {
		return
	}
	if n := len(a.children); n > 0 {
		if last := a.children[n-1]; !last.finalized {
			advance(last, last.EffectiveDuration())
		}
	}
}

// applyCurve maps a linear [0,1] fraction through the animation's curve.
func (a *Animation) applyCurve(frac float64) AnimationProgress {
	linear := AnimationProgress(frac*float64(AnimationNormalizedMax) + 0.5)
	if a.curve == CurveCustom && a.customCurve != nil {
		return a.customCurve(linear)
	}
	if int(a.curve) < numBuiltinCurves {
		return builtinCurves[a.curve](linear)
	}
	return linear
}
