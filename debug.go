package chime

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently configured App debug flag so that
// layer operations without an App reference can still run checks. With a
// single main loop there is at most one live App.
var globalDebug bool

// SetDebugMode toggles destroyed-layer checks and per-tick timing stats.
func (a *App) SetDebugMode(enabled bool) {
	a.debug = enabled
	globalDebug = enabled
}

// frameStats holds per-tick phase timings. Only populated in debug mode.
type frameStats struct {
	tasks      time.Duration
	input      time.Duration
	animations time.Duration
	render     time.Duration
	rendered   bool
}

// logFrameStats prints tick phase timings to stderr.
func (a *App) logFrameStats(stats frameStats) {
	total := stats.tasks + stats.input + stats.animations + stats.render
	render := "skipped"
	if stats.rendered {
		render = stats.render.String()
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[chime] tasks: %v | input: %v | animations: %v | render: %s | total: %v\n",
		stats.tasks, stats.input, stats.animations, render, total)
}

// debugCheckDestroyed panics with a descriptive message when a destroyed
// layer is used in a tree operation. Only called in debug mode; in release
// mode callers turn the misuse into ErrInvalidReference or a no-op instead.
func debugCheckDestroyed(l *Layer, op string) {
	if l.destroyed {
		panic(fmt.Sprintf("chime debug: %s on destroyed layer %p", op, l))
	}
}

// debugCheckTreeDepth warns on stderr if layer depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(l *Layer) {
	depth := 0
	for p := l; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[chime] warning: layer depth %d exceeds %d\n",
			depth, debugMaxTreeDepth)
	}
}
