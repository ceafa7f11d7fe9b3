package chime

// nestChildren validates and claims children for a composite. Each child
// must be usable, unscheduled, and not already nested; on success the
// children become immutable and owned by the composite.
func nestChildren(parent *Animation, children []*Animation) error {
	if len(children) == 0 {
		return ErrInvalidArgument
	}
	for i, c := range children {
		if c == nil || c.destroyed {
			return ErrInvalidReference
		}
		if c.sched != nil || c.nestedIn != nil {
			return ErrBusy
		}
		for _, prev := range children[:i] {
			if prev == c {
				return ErrBusy
			}
		}
	}
	for _, c := range children {
		c.nestedIn = parent
		c.immutable = true
	}
	parent.children = append([]*Animation(nil), children...)
	return nil
}

// NewSequence creates a composite animation that runs its children one
// after another, in order. Its duration is the sum of the children's
// effective durations (each including the child's own delay and play
// count). The children become immutable and are owned by the sequence:
// destroying the sequence destroys them.
//
// Children that are already scheduled or nested in another composite are
// rejected with ErrBusy.
func NewSequence(children ...*Animation) (*Animation, error) {
	seq := &Animation{kind: animSequence, playCount: 1, curve: CurveLinear}
	if err := nestChildren(seq, children); err != nil {
		return nil, err
	}
	return seq, nil
}

// NewSpawn creates a composite animation that starts all its children
// simultaneously. Its duration is the longest child's effective duration;
// a child that finishes early simply stops producing updates while its
// siblings continue. Ownership and immutability rules match NewSequence.
func NewSpawn(children ...*Animation) (*Animation, error) {
	sp := &Animation{kind: animSpawn, playCount: 1, curve: CurveLinear}
	if err := nestChildren(sp, children); err != nil {
		return nil, err
	}
	return sp, nil
}

// Children returns a composite's child animations in timeline order, or nil
// for a leaf animation. The returned slice MUST NOT be mutated.
func (a *Animation) Children() []*Animation { return a.children }

// IsComposite reports whether the animation is a sequence or spawn.
func (a *Animation) IsComposite() bool { return a.kind != animLeaf }
