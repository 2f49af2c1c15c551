package oops

import (
	"io"
	"log/slog"
)

// UseTable sets the table of the views a Context hands out.
func UseTable(t Table) Option {
	return &tableOption{table: t}
}

// UsePolicy replaces the default TextPolicy.
func UsePolicy(p Policy) Option {
	return &policyOption{policy: p}
}

// UsePrinter replaces the default TextPrinter.
func UsePrinter(p Printer) Option {
	return &printerOption{printer: p}
}

// UseTracer replaces the default TextTracer.
func UseTracer(t Tracer) Option {
	return &tracerOption{tracer: t}
}

// Output redirects the default text hooks (default: os.Stdout).
func Output(w io.Writer) Option {
	return &outputOption{w: w}
}

// Logger sets the logger that receives misuse reports (default: slog.Default()).
func Logger(l *slog.Logger) Option {
	return &loggerOption{logger: l}
}

// AllowOverwrite lets Set and Adopt replace a pending incident instead of
// rejecting the write with ErrPending.
func AllowOverwrite() Option {
	return &overwriteOption{}
}

// BasicSites makes views record BasicSite data: tag only, no depth and no
// location stamping.
func BasicSites() Option {
	return &basicSitesOption{}
}

func applyOptionsTo(ctx *Context, opts []Option) {
	a := &optionApplier{ctx: ctx}
	for _, o := range opts {
		if o != nil {
			o.ApplyOption(a)
		}
	}
}
