package chime

// RenderFunc draws a layer's content. It receives the layer being drawn and
// a GContext whose origin is translated to the layer's bounds origin and
// whose clip covers at most the layer's visible region. Drawing outside the
// clip is silently discarded.
//
// Render callbacks run on the app loop. A panicking callback is recovered,
// logged, and does not abort the frame; siblings still paint.
type RenderFunc func(layer *Layer, ctx *GContext)

// Layer is a node in the drawable tree. Each layer has a frame (its rect in
// the parent's coordinate space), bounds (its local coordinate space, which
// may be offset to scroll content), an ordered child list (last child paints
// on top), and an optional render callback.
//
// A layer exclusively owns its children for destruction purposes: Destroy
// cascades down the subtree. Detaching a layer with RemoveFromParent does
// NOT destroy it; the caller keeps ownership and must destroy it explicitly.
type Layer struct {
	frame  GRect
	bounds GRect
	hidden bool
	clips  bool

	parent   *Layer
	children []*Layer

	renderFunc RenderFunc
	userData   []byte

	// window is set only on a window's root layer.
	window *Window

	dirty     bool
	destroyed bool
}

// NewLayer creates a layer with the given frame. Bounds default to the
// frame's size at the origin; clipping is enabled and the layer is visible.
func NewLayer(frame GRect) *Layer {
	return &Layer{
		frame:  frame,
		bounds: RectFromSize(frame.Size),
		clips:  true,
	}
}

// NewLayerWithData creates a layer carrying a fixed-size opaque data block,
// retrievable with Data. Returns ErrInvalidArgument for a negative size.
func NewLayerWithData(frame GRect, dataSize int) (*Layer, error) {
	if dataSize < 0 {
		return nil, ErrInvalidArgument
	}
	l := NewLayer(frame)
	l.userData = make([]byte, dataSize)
	return l, nil
}

// Data returns the layer's user-data block, or nil if none was allocated.
func (l *Layer) Data() []byte { return l.userData }

// checkRef validates that a layer reference is usable.
func checkRef(l *Layer) error {
	if l == nil || l.destroyed {
		return ErrInvalidReference
	}
	return nil
}

// --- Tree manipulation ---

// AddChild appends child to this layer's children, on top of existing
// siblings. If child already has a parent (including this layer), it is
// detached first, so re-adding an existing child moves it to the front.
// Returns ErrInvalidReference for nil or destroyed layers and
// ErrInvalidArgument when the insertion would create a cycle.
func (l *Layer) AddChild(child *Layer) error {
	if err := checkRef(l); err != nil {
		return err
	}
	if err := checkRef(child); err != nil {
		return err
	}
	if isAncestor(child, l) {
		return ErrInvalidArgument
	}
	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = l
	l.children = append(l.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
	l.MarkDirty()
	return nil
}

// InsertBelowSibling repositions child so it paints immediately below
// sibling (earlier in paint order). The child joins sibling's parent,
// detaching from its current parent first. No-op if sibling has no parent.
func (l *Layer) InsertBelowSibling(sibling *Layer) error {
	return l.insertNearSibling(sibling, 0)
}

// InsertAboveSibling repositions child so it paints immediately above
// sibling (later in paint order). The child joins sibling's parent,
// detaching from its current parent first. No-op if sibling has no parent.
func (l *Layer) InsertAboveSibling(sibling *Layer) error {
	return l.insertNearSibling(sibling, 1)
}

func (l *Layer) insertNearSibling(sibling *Layer, offset int) error {
	if err := checkRef(l); err != nil {
		return err
	}
	if err := checkRef(sibling); err != nil {
		return err
	}
	if l == sibling {
		return ErrInvalidArgument
	}
	parent := sibling.parent
	if parent == nil {
		return nil
	}
	if isAncestor(l, parent) {
		return ErrInvalidArgument
	}
	if l.parent != nil {
		l.parent.detach(l)
	}
	idx := 0
	for i, c := range parent.children {
		if c == sibling {
			idx = i + offset
			break
		}
	}
	l.parent = parent
	parent.children = append(parent.children, nil)
	copy(parent.children[idx+1:], parent.children[idx:])
	parent.children[idx] = l
	parent.MarkDirty()
	return nil
}

// RemoveFromParent detaches this layer from its parent and marks the old
// parent's region dirty. The layer itself is not destroyed. No-op when the
// layer has no parent.
func (l *Layer) RemoveFromParent() {
	if l == nil || l.parent == nil {
		return
	}
	parent := l.parent
	parent.detach(l)
	l.parent = nil
	parent.MarkDirty()
}

// detach removes child from l.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (l *Layer) detach(child *Layer) {
	for i, c := range l.children {
		if c == child {
			copy(l.children[i:], l.children[i+1:])
			l.children[len(l.children)-1] = nil
			l.children = l.children[:len(l.children)-1]
			return
		}
	}
}

// Children returns the child list in paint order (first = bottom).
// The returned slice MUST NOT be mutated by the caller.
func (l *Layer) Children() []*Layer { return l.children }

// Parent returns the layer's parent, or nil when detached.
func (l *Layer) Parent() *Layer { return l.parent }

// isAncestor reports whether candidate is layer or one of its ancestors.
func isAncestor(candidate, layer *Layer) bool {
	for p := layer; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// --- Geometry ---

// Frame returns the layer's frame in the parent's coordinate space.
func (l *Layer) Frame() GRect { return l.frame }

// SetFrame changes the layer's frame. The bounds size is extended so it
// covers the new frame's size; bounds are never shrunk, so content laid out
// against the old bounds stays addressable when the frame shrinks again.
// Marks the layer dirty when the value changed.
func (l *Layer) SetFrame(frame GRect) error {
	if err := checkRef(l); err != nil {
		return err
	}
	if l.frame.Equal(frame) {
		return nil
	}
	l.frame = frame
	if l.bounds.Size.W < frame.Size.W {
		l.bounds.Size.W = frame.Size.W
	}
	if l.bounds.Size.H < frame.Size.H {
		l.bounds.Size.H = frame.Size.H
	}
	l.MarkDirty()
	if l.parent != nil {
		l.parent.MarkDirty()
	}
	return nil
}

// Bounds returns the layer's local coordinate space rect.
func (l *Layer) Bounds() GRect { return l.bounds }

// SetBounds changes the layer's bounds. Offsetting the bounds origin scrolls
// the layer's content and children. Marks the layer dirty when changed.
func (l *Layer) SetBounds(bounds GRect) error {
	if err := checkRef(l); err != nil {
		return err
	}
	if l.bounds.Equal(bounds) {
		return nil
	}
	l.bounds = bounds
	l.MarkDirty()
	return nil
}

// Hidden reports whether the layer is hidden.
func (l *Layer) Hidden() bool { return l.hidden }

// SetHidden hides or shows the layer and its subtree. A hidden layer is
// skipped entirely by the compositor. Unhiding marks the layer dirty so the
// next pass repaints it.
func (l *Layer) SetHidden(hidden bool) error {
	if err := checkRef(l); err != nil {
		return err
	}
	if l.hidden == hidden {
		return nil
	}
	l.hidden = hidden
	l.MarkDirty()
	if l.parent != nil {
		l.parent.MarkDirty()
	}
	return nil
}

// Clips reports whether drawing is clipped to the layer's frame.
func (l *Layer) Clips() bool { return l.clips }

// SetClips enables or disables clipping of the layer's subtree to its frame.
func (l *Layer) SetClips(clips bool) error {
	if err := checkRef(l); err != nil {
		return err
	}
	if l.clips == clips {
		return nil
	}
	l.clips = clips
	l.MarkDirty()
	return nil
}

// SetRenderFunc sets the layer's render callback and marks it dirty.
func (l *Layer) SetRenderFunc(fn RenderFunc) error {
	if err := checkRef(l); err != nil {
		return err
	}
	l.renderFunc = fn
	l.MarkDirty()
	return nil
}

// --- Dirty tracking ---

// MarkDirty requests a repaint of the layer on the next render pass.
// Idempotent within a frame: marking an already dirty layer is a no-op.
// Redraw is always deferred to the next scheduled pass, never synchronous.
func (l *Layer) MarkDirty() {
	if l == nil || l.destroyed {
		return
	}
	if globalDebug {
		debugCheckDestroyed(l, "MarkDirty")
	}
	if l.dirty {
		return
	}
	l.dirty = true
	if w := l.Window(); w != nil && w.app != nil {
		w.app.requestRender()
	}
}

// Window returns the window this layer is attached to, or nil when the
// layer's tree is not rooted in a window.
func (l *Layer) Window() *Window {
	for p := l; p != nil; p = p.parent {
		if p.window != nil {
			return p.window
		}
	}
	return nil
}

// --- Coordinate conversion ---

// contentOrigin returns the absolute framebuffer coordinate of the layer's
// local (0,0), accumulating frame origins and bounds offsets up the tree.
func (l *Layer) contentOrigin() GPoint {
	var o GPoint
	for p := l; p != nil; p = p.parent {
		o = o.Add(p.frame.Origin).Sub(p.bounds.Origin)
	}
	return o
}

// ConvertPointToScreen converts a point in the layer's local coordinate
// space to absolute screen coordinates.
func (l *Layer) ConvertPointToScreen(p GPoint) GPoint {
	return p.Add(l.contentOrigin())
}

// ConvertRectToScreen converts a rect in the layer's local coordinate space
// to absolute screen coordinates.
func (l *Layer) ConvertRectToScreen(r GRect) GRect {
	o := l.contentOrigin()
	return r.Offset(o.X, o.Y)
}

// absoluteFrame returns the layer's frame in absolute screen coordinates.
func (l *Layer) absoluteFrame() GRect {
	var o GPoint
	if l.parent != nil {
		o = l.parent.contentOrigin()
	}
	return l.frame.Offset(o.X, o.Y)
}

// --- Destruction ---

// Destroy detaches the layer from its parent, marks it destroyed, and
// recursively destroys all descendants. Further operations on a destroyed
// layer return ErrInvalidReference. Safe to call twice.
func (l *Layer) Destroy() {
	if l == nil || l.destroyed {
		return
	}
	l.RemoveFromParent()
	l.destroy()
}

func (l *Layer) destroy() {
	l.destroyed = true
	for _, child := range l.children {
		child.parent = nil
		child.destroy()
	}
	l.children = nil
	l.parent = nil
	l.renderFunc = nil
	l.userData = nil
	l.window = nil
}

// Destroyed reports whether the layer has been destroyed.
func (l *Layer) Destroyed() bool { return l.destroyed }
