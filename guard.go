package oops

// Block is one guarded scope opened by Oops.Enter.
//
//	b := o.Enter()
//	if !b.Active() {
//		return
//	}
//	defer b.Exit()
//	o = b.Oops()
type Block struct {
	oops   Oops
	site   *Site
	active bool
}

// Guard runs body only while the Context is Clear. The body receives the view
// one call deeper. When the body leaves by any path, panics included, and an
// incident is pending without a recorded location, the guard's location, tag
// and depth are stamped into it; inner guards therefore win over outer ones.
//
// Guard reports whether the body ran and left the Context Clear.
func (o Oops) Guard(body func(o Oops)) bool {
	b := o.enter()
	if !b.active {
		return false
	}
	defer b.Exit()

	body(b.oops)
	return !o.ctx.Query()
}

// Enter opens a guarded scope at the caller's location. When the Context is
// already Set the returned Block is inactive and the caller must skip its body.
func (o Oops) Enter() Block {
	return o.enter()
}

// enter must be called directly from an exported method.
func (o Oops) enter() Block {
	if o.ctx.Query() {
		return Block{oops: o}
	}

	inner := o.Step()
	b := Block{oops: inner, active: true}
	if !o.ctx.basic {
		file, line := caller(callerSkip)
		b.site = &Site{Owner: inner.owner, Tag: inner.tag, Depth: inner.depth, File: file, Line: line}
	}
	return b
}

// Active reports whether the body may run.
func (b Block) Active() bool {
	return b.active
}

// Oops returns the view for the body.
func (b Block) Oops() Oops {
	return b.oops
}

// Exit stamps the block's location into a pending incident that has none yet.
// It is a no-op for inactive blocks and for BasicSites contexts.
func (b Block) Exit() {
	if !b.active || b.site == nil {
		return
	}
	b.oops.ctx.Stamp(b.site)
}
