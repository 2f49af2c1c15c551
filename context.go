package oops

import (
	"errors"
	"io"
	"log/slog"
)

// Context is the error state threaded through a call tree.
//
// A Context is either Clear (ID is 0) or Set. It must be shared by pointer or
// through views, never copied: a copy would fork the pending incident.
// A Context is not safe for concurrent use; callers sharing one across
// goroutines must synchronize themselves.
type Context struct {
	info    Info
	located bool

	table     Table
	policy    Policy
	printer   Printer
	tracer    Tracer
	out       io.Writer
	logger    *slog.Logger
	overwrite bool
	basic     bool
}

var (
	// ErrPending is returned when an incident is recorded while another is
	// still pending and overwriting is not allowed.
	ErrPending = errors.New("oops: incident already pending")

	// ErrZeroID is returned when recording an incident with id 0.
	ErrZeroID = errors.New("oops: id 0 is reserved for no error")
)

// NewContext creates a Clear context with the given options.
func NewContext(opts ...Option) *Context {
	c := &Context{}
	c.info.Context = newHandle()
	applyOptionsTo(c, opts)

	if c.table == nil {
		c.table = DefaultTable
	}
	if c.policy == nil {
		c.policy = &TextPolicy{Out: c.out}
	}
	if c.printer == nil {
		c.printer = &TextPrinter{Out: c.out}
	}
	if c.tracer == nil {
		c.tracer = &TextTracer{Out: c.out}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Handle returns the context's opaque identity.
func (c *Context) Handle() Handle {
	return c.info.Context
}

// Query reports whether an incident is pending.
func (c *Context) Query() bool {
	return c.info.ID != 0
}

func (c *Context) ID() ID {
	return c.info.ID
}

func (c *Context) Depth() Depth {
	return c.info.Depth
}

// Table returns the table of the pending incident, or nil when Clear.
func (c *Context) Table() Table {
	return c.info.Table
}

// Info returns a snapshot of the pending incident.
func (c *Context) Info() Info {
	return c.info
}

// What returns the pending incident's message, or "no oops" when Clear.
func (c *Context) What() string {
	if c.info.ID == 0 {
		return "no oops"
	}
	return c.info.Message()
}

// Located reports whether a location has been recorded for the pending incident.
func (c *Context) Located() bool {
	return c.Query() && c.located
}

// Set records an incident described by table and seen from site, then runs
// the policy. A *Site carrying a stamped location records it; otherwise the
// location is left for the enclosing guard to stamp.
func (c *Context) Set(id ID, table Table, site CallSite) error {
	if id == 0 {
		return ErrZeroID
	}
	if err := c.checkOverwrite(id); err != nil {
		return err
	}

	switch s := c.siteOrEmpty(site).(type) {
	case *BasicSite:
		c.info.set(id, table, 0, s.Tag, "", 0)
		c.located = false
	case *Site:
		if s.Stamped {
			c.info.set(id, table, s.Depth, s.Tag, s.File, s.Line)
		} else {
			c.info.set(id, table, s.Depth, s.Tag, "", 0)
		}
		c.located = s.Stamped
	}
	c.policy.React(c.info)
	return nil
}

// Adopt records a previously captured incident, typically one cleared from a
// child context, keeping its id, table, depth, tag and location. The
// context's own handle is kept. The policy runs as for Set.
func (c *Context) Adopt(info Info) error {
	if info.ID == 0 {
		return ErrZeroID
	}
	if err := c.checkOverwrite(info.ID); err != nil {
		return err
	}

	info.Context = c.info.Context
	c.info = info
	c.located = info.File != ""
	c.policy.React(c.info)
	return nil
}

// Clear ends the pending incident and returns it.
func (c *Context) Clear() Info {
	prev := c.info
	c.info.reset()
	c.located = false
	return prev
}

// Stamp records site as the location of the pending incident, unless the
// context is Clear or a location is already recorded. It reports whether it
// wrote anything.
func (c *Context) Stamp(site *Site) bool {
	if site == nil || !c.Query() || c.located {
		return false
	}
	c.info.set(c.info.ID, c.info.Table, site.Depth, site.Tag, site.File, site.Line)
	c.located = true
	site.Stamped = true
	return true
}

// Tag returns a depth-0 view over c that stamps tag into the incidents it records.
func (c *Context) Tag(tag Tag) Oops {
	return Oops{ctx: c, table: c.table, tag: tag}
}

// Print renders the pending incident as seen from site. It never mutates c.
func (c *Context) Print(site CallSite) {
	c.printer.Print(c.info, c.siteOrEmpty(site))
}

// StepIn reports entry into a traced step.
func (c *Context) StepIn(site CallSite, table Table) {
	c.tracer.StepIn(c.info, table, c.info.Context, c.siteOrEmpty(site))
}

// StepOut reports exit from a traced step.
func (c *Context) StepOut(site CallSite, table Table) {
	c.tracer.StepOut(c.info, table, c.info.Context, c.siteOrEmpty(site))
}

// StepDo reports work inside a traced step.
func (c *Context) StepDo(site CallSite, table Table) {
	c.tracer.StepDo(c.info, table, c.info.Context, c.siteOrEmpty(site))
}

func (c *Context) checkOverwrite(id ID) error {
	if !c.Query() || c.overwrite {
		return nil
	}
	c.logger.Error("oops: rejected incident while another is pending",
		slog.Any("pending", c.info),
		slog.Uint64("rejected_id", uint64(id)),
	)
	return ErrPending
}

func (c *Context) siteOrEmpty(site CallSite) CallSite {
	switch s := site.(type) {
	case *BasicSite:
		if s != nil {
			return s
		}
	case *Site:
		if s != nil {
			return s
		}
	}
	if c.basic {
		return &BasicSite{}
	}
	return &Site{}
}
