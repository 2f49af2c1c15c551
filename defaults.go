package oops

import (
	"fmt"
	"io"
	"os"
)

// ExitUnrecoverable is the process exit status used by Abort.
const ExitUnrecoverable = 134

type (
	// TextPolicy writes one line per unrecoverable or recoverable incident.
	// Unrecoverable incidents then call Abort.
	TextPolicy struct {
		Out   io.Writer
		Abort func(info Info)
	}

	// TextPrinter renders incidents with the oops[...] templates.
	TextPrinter struct {
		Out io.Writer
	}

	// TextTracer writes step_in, step_out and step_do lines. StepIn also
	// lists the table's descriptor chain.
	TextTracer struct {
		Out io.Writer
	}
)

var (
	_ Policy  = (*TextPolicy)(nil)
	_ Printer = (*TextPrinter)(nil)
	_ Tracer  = (*TextTracer)(nil)
)

// Abort terminates the process. There is no safe continuation after an
// unrecoverable incident.
func Abort(Info) {
	os.Exit(ExitUnrecoverable)
}

func (p *TextPolicy) React(info Info) {
	def := info.Descriptor()
	switch def.Category {
	case Unrecoverable:
		fmt.Fprintf(writerOr(p.Out), "policy assert unrecoverable oops = %d, %s\n", info.ID, def.Message)
		if p.Abort != nil {
			p.Abort(info)
			return
		}
		Abort(info)
	case Recoverable:
		fmt.Fprintf(writerOr(p.Out), "policy ignore recoverable oops = %d, %s\n", info.ID, def.Message)
	}
}

func (p *TextPrinter) Print(info Info, site CallSite) {
	w := writerOr(p.Out)
	switch s := site.(type) {
	case *BasicSite:
		if info.ID == 0 {
			fmt.Fprintf(w, "oops[tag-%d] = no oops\n", s.Tag)
			return
		}
		fmt.Fprintf(w, "oops[tag-%d] = %d, %s\n", s.Tag, info.ID, info.Message())
	case *Site:
		printSite(w, info, s)
	}
}

func printSite(w io.Writer, info Info, s *Site) {
	if info.ID == 0 {
		if s.Known() {
			fmt.Fprintf(w, "oops[%s:%d, tag-%d, depth-%d] = no oops\n", s.File, s.Line, s.Tag, s.Depth)
		} else {
			fmt.Fprintf(w, "oops[tag-%d, depth-%d] = no oops\n", s.Tag, s.Depth)
		}
		return
	}

	msg := info.Message()
	switch {
	case s.Known() && info.File != "":
		fmt.Fprintf(w, "oops[%s:%d, tag-%d, depth-%d] = %d, %s, %s:%d\n",
			s.File, s.Line, s.Tag, s.Depth, info.ID, msg, info.File, info.Line)
	case s.Known():
		fmt.Fprintf(w, "oops[%s:%d, tag-%d, depth-%d] = %d, %s\n",
			s.File, s.Line, s.Tag, s.Depth, info.ID, msg)
	case info.File != "":
		fmt.Fprintf(w, "oops[tag-%d, depth-%d] = %d, %s, %s:%d\n",
			s.Tag, s.Depth, info.ID, msg, info.File, info.Line)
	default:
		fmt.Fprintf(w, "oops[tag-%d, depth-%d] = %d, %s\n",
			s.Tag, s.Depth, info.ID, msg)
	}
}

func (t *TextTracer) StepIn(info Info, table Table, ctx Handle, site CallSite) {
	w := writerOr(t.Out)
	switch s := site.(type) {
	case *BasicSite:
		fmt.Fprintf(w, "step_in-> code = %d, data-%p, context = %v\n", info.ID, s, ctx)
	case *Site:
		fmt.Fprintf(w, "step_in-> code = %d, data-%p, depth = %d, context = %v\n", info.ID, s, s.Depth, ctx)
	}
	for id, def := range table.Chain() {
		fmt.Fprintf(w, "  -> has code = %d, %s\n", id, def.Message)
	}
}

func (t *TextTracer) StepOut(info Info, _ Table, ctx Handle, site CallSite) {
	traceStep(writerOr(t.Out), "step_out", info, ctx, site)
}

func (t *TextTracer) StepDo(info Info, _ Table, ctx Handle, site CallSite) {
	traceStep(writerOr(t.Out), "step_do", info, ctx, site)
}

func traceStep(w io.Writer, step string, info Info, ctx Handle, site CallSite) {
	switch s := site.(type) {
	case *BasicSite:
		fmt.Fprintf(w, "%s-> code = %d, data-%p, context = %v\n", step, info.ID, s, ctx)
	case *Site:
		if s.Known() {
			fmt.Fprintf(w, "%s-> code = %d, data-%p, depth = %d, context = %v, file = %s, line = %d\n",
				step, info.ID, s, s.Depth, ctx, s.File, s.Line)
			return
		}
		fmt.Fprintf(w, "%s-> code = %d, data-%p, depth = %d, context = %v\n", step, info.ID, s, s.Depth, ctx)
	}
}

func writerOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
