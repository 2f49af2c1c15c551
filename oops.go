package oops

import "slices"

// Oops is a view over a Context, passed by value down a call tree.
//
// Every view of one tree shares the same Context: an incident recorded
// through any of them is pending for all of them. A view adds the call-site
// data of its position: the table of its domain, its tag and its depth.
// The zero Oops is not usable; obtain one from Root or Context.Tag.
type Oops struct {
	ctx   *Context
	table Table
	tag   Tag
	depth Depth
	owner bool
}

// Root creates a Context for table and returns the owning view at depth 0.
func Root(table Table, opts ...Option) Oops {
	opts = append(slices.Clip(opts), UseTable(table))
	ctx := NewContext(opts...)
	return Oops{ctx: ctx, table: ctx.table, owner: true}
}

// Context returns the shared Context.
func (o Oops) Context() *Context {
	return o.ctx
}

// Tag returns a view stamping tag into the incidents it records.
func (o Oops) Tag(tag Tag) Oops {
	o.tag = tag
	o.owner = false
	return o
}

// WithTable returns a view recording incidents from another domain's table
// into the same Context.
func (o Oops) WithTable(t Table) Oops {
	if t == nil {
		t = DefaultTable
	}
	o.table = t
	o.owner = false
	return o
}

// Step returns the view one call deeper. Guards do this for their bodies.
func (o Oops) Step() Oops {
	o.depth = o.depth.inc()
	o.owner = false
	return o
}

func (o Oops) Depth() Depth {
	return o.depth
}

func (o Oops) Owner() bool {
	return o.owner
}

func (o Oops) Table() Table {
	return o.table
}

// Query reports whether an incident is pending on the shared Context.
func (o Oops) Query() bool {
	return o.ctx.Query()
}

func (o Oops) ID() ID {
	return o.ctx.ID()
}

// Raise records id from this view's table, tag and depth.
func (o Oops) Raise(id ID) error {
	return o.ctx.Set(id, o.table, o.site())
}

// Clear ends the pending incident and returns it.
func (o Oops) Clear() Info {
	return o.ctx.Clear()
}

// Print renders the pending incident as seen from the caller's location.
func (o Oops) Print() {
	o.ctx.Print(o.here())
}

func (o Oops) StepIn() {
	o.ctx.StepIn(o.here(), o.table)
}

func (o Oops) StepOut() {
	o.ctx.StepOut(o.here(), o.table)
}

func (o Oops) StepDo() {
	o.ctx.StepDo(o.here(), o.table)
}

func (o Oops) site() CallSite {
	if o.ctx.basic {
		return &BasicSite{Owner: o.owner, Tag: o.tag}
	}
	return &Site{Owner: o.owner, Tag: o.tag, Depth: o.depth}
}

// here must be called directly from an exported method.
func (o Oops) here() CallSite {
	if o.ctx.basic {
		return &BasicSite{Owner: o.owner, Tag: o.tag}
	}
	file, line := caller(callerSkip)
	s := &Site{Owner: o.owner, Tag: o.tag, Depth: o.depth}
	return s.Locate(file, line)
}
