package chime

import "log"

// renderPass paints the top window into the framebuffer: background fill,
// then a depth-first pre-order walk of the layer tree. Parents paint before
// their children (background below content) and earlier siblings paint
// before later ones, so later siblings occlude where they overlap. Painter's
// algorithm; there is no z-buffer and no retained per-layer backing, so any
// dirty layer means the whole visible tree repaints.
func (a *App) renderPass() {
	w := a.stack.Top()
	if w == nil {
		return
	}
	g := a.gctx
	g.reset(a.fb)
	g.fillRectAbs(a.fb.Bounds(), w.background)
	renderLayerTree(w.root, g)
	clearDirty(w.root)
}

// renderLayerTree paints one layer and its subtree. Hidden layers are
// skipped entirely; a layer whose effective clip is empty is skipped along
// with its whole subtree, so render callbacks never run for fully clipped
// content.
func renderLayerTree(l *Layer, g *GContext) {
	if l.hidden || l.destroyed {
		return
	}

	// The layer's frame sits in the parent's content space; the context
	// origin currently marks that space's absolute (0,0).
	frameAbs := l.frame.Offset(g.origin.X, g.origin.Y)

	g.save()
	if l.clips {
		g.clipTo(frameAbs)
		if g.clip.IsEmpty() {
			g.restore()
			return
		}
	}
	// Local (0,0) is the frame's top-left shifted by the bounds origin, so
	// a bounds offset scrolls both the layer's own drawing and its children.
	g.setOrigin(frameAbs.Origin.Sub(l.bounds.Origin))

	if l.renderFunc != nil {
		invokeRender(l, g)
	}
	for _, child := range l.children {
		renderLayerTree(child, g)
	}
	g.restore()
}

// invokeRender runs a layer's render callback, isolating panics so one
// faulty layer cannot abort the frame or corrupt traversal state for its
// siblings. The context's save stack depth is restored on the way out.
func invokeRender(l *Layer, g *GContext) {
	depth := len(g.stack)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("chime: render callback panicked: %v", r)
			// Unwind any save() calls the callback left unbalanced.
			for len(g.stack) > depth {
				g.restore()
			}
		}
	}()
	l.renderFunc(l, g)
}

// clearDirty resets dirty flags across the whole tree after a pass,
// including hidden subtrees the pass skipped.
func clearDirty(l *Layer) {
	l.dirty = false
	for _, child := range l.children {
		clearDirty(child)
	}
}
