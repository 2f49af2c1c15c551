package oops

import (
	"io"
	"log/slog"
)

type (
	// Option configures a Context at construction time.
	Option interface {
		// ApplyOption applies this option to the given applier.
		ApplyOption(a OptionApplier)
	}

	// OptionApplier provides methods for configuring a Context.
	OptionApplier interface {
		// SetTable sets the table used by views created from the Context.
		SetTable(t Table)
		// SetPolicy sets the hook run on every incident.
		SetPolicy(p Policy)
		// SetPrinter sets the hook run by Print.
		SetPrinter(p Printer)
		// SetTracer sets the hook run by the step operations.
		SetTracer(t Tracer)
		// SetOutput sets the sink of the default text hooks.
		SetOutput(w io.Writer)
		// SetLogger sets the logger receiving misuse reports.
		SetLogger(l *slog.Logger)
		// AllowOverwrite lets Set and Adopt replace a pending incident.
		AllowOverwrite()
		// UseBasicSites makes views record BasicSite data.
		UseBasicSites()
	}

	optionApplier struct {
		ctx *Context
	}

	tableOption struct {
		table Table
	}

	policyOption struct {
		policy Policy
	}

	printerOption struct {
		printer Printer
	}

	tracerOption struct {
		tracer Tracer
	}

	outputOption struct {
		w io.Writer
	}

	loggerOption struct {
		logger *slog.Logger
	}

	overwriteOption struct{}

	basicSitesOption struct{}
)

func (a *optionApplier) SetTable(t Table) {
	a.ctx.table = t
}

func (a *optionApplier) SetPolicy(p Policy) {
	a.ctx.policy = p
}

func (a *optionApplier) SetPrinter(p Printer) {
	a.ctx.printer = p
}

func (a *optionApplier) SetTracer(t Tracer) {
	a.ctx.tracer = t
}

func (a *optionApplier) SetOutput(w io.Writer) {
	a.ctx.out = w
}

func (a *optionApplier) SetLogger(l *slog.Logger) {
	a.ctx.logger = l
}

func (a *optionApplier) AllowOverwrite() {
	a.ctx.overwrite = true
}

func (a *optionApplier) UseBasicSites() {
	a.ctx.basic = true
}

func (o *tableOption) ApplyOption(a OptionApplier) {
	a.SetTable(o.table)
}

func (o *policyOption) ApplyOption(a OptionApplier) {
	a.SetPolicy(o.policy)
}

func (o *printerOption) ApplyOption(a OptionApplier) {
	a.SetPrinter(o.printer)
}

func (o *tracerOption) ApplyOption(a OptionApplier) {
	a.SetTracer(o.tracer)
}

func (o *outputOption) ApplyOption(a OptionApplier) {
	a.SetOutput(o.w)
}

func (o *loggerOption) ApplyOption(a OptionApplier) {
	a.SetLogger(o.logger)
}

func (o *overwriteOption) ApplyOption(a OptionApplier) {
	a.AllowOverwrite()
}

func (o *basicSitesOption) ApplyOption(a OptionApplier) {
	a.UseBasicSites()
}
