package chime

// WindowStack is the ordered set of an App's windows. Only the top window is
// visible and receives input. A window may appear at most once on the stack.
//
// The animated flags on Pop and Remove are accepted for API compatibility
// with transition-capable displays; this compositor switches windows
// immediately either way.
type WindowStack struct {
	app     *App
	windows []*Window // windows[len-1] is the top
}

// Len returns the number of windows on the stack.
func (s *WindowStack) Len() int { return len(s.windows) }

// Top returns the visible window, or nil when the stack is empty.
func (s *WindowStack) Top() *Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// Contains reports whether w is anywhere on the stack.
func (s *WindowStack) Contains(w *Window) bool {
	for _, win := range s.windows {
		if win == w {
			return true
		}
	}
	return false
}

// Push places w on top of the stack and makes it the visible window.
// The previous top receives Disappear; w receives Load (first push only)
// then Appear, and its click configuration is installed.
// Returns ErrBusy if w is already on the stack and ErrInvalidReference for
// a nil or destroyed window.
func (s *WindowStack) Push(w *Window) error {
	if w == nil || w.destroyed {
		return ErrInvalidReference
	}
	if s.Contains(w) {
		return ErrBusy
	}
	if prev := s.Top(); prev != nil {
		s.disappear(prev)
	}
	s.windows = append(s.windows, w)
	w.app = s.app
	w.onStack = true
	if w.root.frame.IsEmpty() {
		// The root layer fills the screen unless the app sized it already.
		w.root.frame = s.app.ScreenBounds()
		w.root.bounds = RectFromSize(w.root.frame.Size)
	}
	if !w.loaded {
		w.loaded = true
		if w.handlers.Load != nil {
			w.handlers.Load(w)
		}
	}
	s.appear(w)
	return nil
}

// Pop removes and returns the top window, making the one below visible.
// Returns nil when the stack is empty. Popping the last window fires the
// App's exit handler.
func (s *WindowStack) Pop(animated bool) *Window {
	top := s.Top()
	if top == nil {
		return nil
	}
	_ = s.Remove(top, animated)
	return top
}

// Remove takes w off the stack wherever it sits. Removing the top window
// behaves like Pop; removing a covered window fires no visibility events,
// since it was not visible. Returns ErrNotFound if w is not on the stack.
func (s *WindowStack) Remove(w *Window, animated bool) error {
	_ = animated
	idx := -1
	for i, win := range s.windows {
		if win == w {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	wasTop := idx == len(s.windows)-1
	copy(s.windows[idx:], s.windows[idx+1:])
	s.windows[len(s.windows)-1] = nil
	s.windows = s.windows[:len(s.windows)-1]

	if wasTop {
		s.disappear(w)
	}
	w.onStack = false
	w.app = nil

	if wasTop {
		if next := s.Top(); next != nil {
			s.appear(next)
		} else {
			s.app.requestExit()
		}
	}
	return nil
}

// appear marks w visible: fires Appear, installs its click configuration,
// and schedules a full repaint.
func (s *WindowStack) appear(w *Window) {
	if w.handlers.Appear != nil {
		w.handlers.Appear(w)
	}
	s.app.installClickConfig(w)
	s.app.requestRender()
}

// disappear marks w no longer visible and cancels in-flight button
// recognition so a held button cannot fire into the next window.
func (s *WindowStack) disappear(w *Window) {
	if w.handlers.Disappear != nil {
		w.handlers.Disappear(w)
	}
	s.app.resetRecognizers()
}
