package chime

import (
	"errors"
	"testing"
)

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewLayer(Rect(0, 0, 10, 10))
	child := NewLayer(Rect(1, 1, 4, 4))
	if err := parent.AddChild(child); err != nil {
		t.Fatal(err)
	}
	if child.Parent() != parent {
		t.Error("child.Parent should be parent")
	}
	if len(parent.Children()) != 1 || parent.Children()[0] != child {
		t.Error("child missing from parent's list")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewLayer(Rect(0, 0, 10, 10))
	p2 := NewLayer(Rect(0, 0, 10, 10))
	child := NewLayer(Rect(0, 0, 4, 4))

	p1.AddChild(child)
	p2.AddChild(child)

	if len(p1.Children()) != 0 {
		t.Error("p1 should have no children after reparent")
	}
	if child.Parent() != p2 {
		t.Error("child should be under p2")
	}
}

func TestAddChildMovesToFront(t *testing.T) {
	parent := NewLayer(Rect(0, 0, 10, 10))
	a := NewLayer(Rect(0, 0, 2, 2))
	b := NewLayer(Rect(0, 0, 2, 2))
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(a) // re-add moves to top of paint order

	kids := parent.Children()
	if kids[0] != b || kids[1] != a {
		t.Error("re-added child should paint on top")
	}
}

func TestAddChildRejectsCycle(t *testing.T) {
	parent := NewLayer(Rect(0, 0, 10, 10))
	child := NewLayer(Rect(0, 0, 4, 4))
	parent.AddChild(child)

	if err := child.AddChild(parent); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("cycle err = %v, want ErrInvalidArgument", err)
	}
	if err := parent.AddChild(parent); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("self-add err = %v, want ErrInvalidArgument", err)
	}
}

func TestInsertSiblings(t *testing.T) {
	parent := NewLayer(Rect(0, 0, 10, 10))
	a := NewLayer(Rect(0, 0, 2, 2))
	b := NewLayer(Rect(0, 0, 2, 2))
	c := NewLayer(Rect(0, 0, 2, 2))
	parent.AddChild(a)

	if err := b.InsertBelowSibling(a); err != nil {
		t.Fatal(err)
	}
	if err := c.InsertAboveSibling(a); err != nil {
		t.Fatal(err)
	}

	kids := parent.Children()
	if len(kids) != 3 || kids[0] != b || kids[1] != a || kids[2] != c {
		t.Errorf("paint order = %v, want [b a c]", kids)
	}
}

func TestInsertRelativeToSelfRejected(t *testing.T) {
	parent := NewLayer(Rect(0, 0, 10, 10))
	a := NewLayer(Rect(0, 0, 2, 2))
	b := NewLayer(Rect(0, 0, 2, 2))
	c := NewLayer(Rect(0, 0, 2, 2))
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	if err := b.InsertBelowSibling(b); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("insert below self err = %v, want ErrInvalidArgument", err)
	}
	if err := b.InsertAboveSibling(b); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("insert above self err = %v, want ErrInvalidArgument", err)
	}
	kids := parent.Children()
	if len(kids) != 3 || kids[0] != a || kids[1] != b || kids[2] != c {
		t.Errorf("paint order = %v, want unchanged [a b c]", kids)
	}
}

func TestInsertNearDetachedSiblingNoop(t *testing.T) {
	a := NewLayer(Rect(0, 0, 2, 2))
	b := NewLayer(Rect(0, 0, 2, 2))
	if err := b.InsertBelowSibling(a); err != nil {
		t.Fatal(err)
	}
	if b.Parent() != nil {
		t.Error("insert near a parentless sibling should be a no-op")
	}
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewLayer(Rect(0, 0, 10, 10))
	child := NewLayer(Rect(0, 0, 4, 4))
	parent.AddChild(child)

	child.RemoveFromParent()
	if child.Parent() != nil || len(parent.Children()) != 0 {
		t.Error("child should be detached")
	}
	if child.Destroyed() {
		t.Error("detaching must not destroy the layer")
	}

	// No-op when already detached.
	child.RemoveFromParent()
}

// --- Geometry ---

func TestSetFrameGrowsBoundsNeverShrinks(t *testing.T) {
	l := NewLayer(Rect(0, 0, 10, 10))
	if l.Bounds() != Rect(0, 0, 10, 10) {
		t.Fatalf("initial bounds = %v", l.Bounds())
	}

	l.SetFrame(Rect(0, 0, 20, 15))
	if l.Bounds().Size != Sz(20, 15) {
		t.Errorf("bounds after grow = %v, want 20x15", l.Bounds().Size)
	}

	l.SetFrame(Rect(0, 0, 5, 5))
	if l.Bounds().Size != Sz(20, 15) {
		t.Errorf("bounds after shrink = %v, want unchanged 20x15", l.Bounds().Size)
	}
}

func TestConvertPointToScreen(t *testing.T) {
	root := NewLayer(Rect(10, 10, 100, 100))
	child := NewLayer(Rect(5, 5, 50, 50))
	root.AddChild(child)

	if got := child.ConvertPointToScreen(Pt(1, 2)); got != Pt(16, 17) {
		t.Errorf("screen point = %v, want (16,17)", got)
	}
}

func TestConvertPointWithBoundsOffset(t *testing.T) {
	root := NewLayer(Rect(0, 0, 100, 100))
	child := NewLayer(Rect(10, 10, 50, 50))
	root.AddChild(child)

	// Scrolling the parent's bounds shifts the child's screen position.
	root.SetBounds(Rect(0, 20, 100, 100))
	if got := child.ConvertPointToScreen(Pt(0, 0)); got != Pt(10, -10) {
		t.Errorf("screen point after scroll = %v, want (10,-10)", got)
	}
}

func TestConvertRectToScreen(t *testing.T) {
	root := NewLayer(Rect(10, 0, 100, 100))
	child := NewLayer(Rect(0, 10, 50, 50))
	root.AddChild(child)

	got := child.ConvertRectToScreen(Rect(1, 1, 5, 5))
	if got != Rect(11, 11, 5, 5) {
		t.Errorf("screen rect = %v, want (11,11,5,5)", got)
	}
}

// --- Destruction ---

func TestDestroyCascades(t *testing.T) {
	parent := NewLayer(Rect(0, 0, 10, 10))
	child := NewLayer(Rect(0, 0, 4, 4))
	grandchild := NewLayer(Rect(0, 0, 2, 2))
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Destroy()

	if !child.Destroyed() || !grandchild.Destroyed() {
		t.Error("destroy should cascade to descendants")
	}
	if len(parent.Children()) != 0 {
		t.Error("destroyed child should be detached from parent")
	}
	if parent.Destroyed() {
		t.Error("parent must survive")
	}

	// Safe to call twice.
	child.Destroy()
}

func TestDetachedSubtreeSurvivesDestroy(t *testing.T) {
	parent := NewLayer(Rect(0, 0, 10, 10))
	child := NewLayer(Rect(0, 0, 4, 4))
	parent.AddChild(child)

	child.RemoveFromParent()
	parent.Destroy()

	if child.Destroyed() {
		t.Error("previously detached child must not be destroyed with old parent")
	}
}

func TestOperationsOnDestroyedLayer(t *testing.T) {
	l := NewLayer(Rect(0, 0, 10, 10))
	l.Destroy()

	if err := l.SetFrame(Rect(0, 0, 5, 5)); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("SetFrame err = %v, want ErrInvalidReference", err)
	}
	if err := l.AddChild(NewLayer(GRectZero)); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("AddChild err = %v, want ErrInvalidReference", err)
	}
	if err := NewLayer(Rect(0, 0, 4, 4)).AddChild(l); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("adding destroyed child err = %v, want ErrInvalidReference", err)
	}
	// Dirty marking on a destroyed layer is a silent no-op.
	l.MarkDirty()
}

// --- User data ---

func TestNewLayerWithData(t *testing.T) {
	l, err := NewLayerWithData(Rect(0, 0, 4, 4), 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Data()) != 16 {
		t.Errorf("data len = %d, want 16", len(l.Data()))
	}
	if _, err := NewLayerWithData(GRectZero, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative size err = %v, want ErrInvalidArgument", err)
	}
}
