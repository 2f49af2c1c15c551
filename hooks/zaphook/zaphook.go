// Package zaphook provides oops hooks that log through go.uber.org/zap.
package zaphook

import (
	"github.com/kieme/oops"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	// Policy logs each incident at a level chosen by its category.
	// Unrecoverable incidents are logged with Fatal, so the logger's fatal
	// hook decides how the process ends.
	Policy struct {
		logger *zap.Logger
	}

	// Printer logs the incident as seen from a call site at Info level.
	Printer struct {
		logger *zap.Logger
	}

	// Tracer logs steps at Debug level.
	Tracer struct {
		logger *zap.Logger
	}

	infoMarshaler struct {
		info oops.Info
	}

	siteMarshaler struct {
		site oops.CallSite
	}

	chainMarshaler struct {
		table oops.Table
	}
)

var (
	_ oops.Policy  = (*Policy)(nil)
	_ oops.Printer = (*Printer)(nil)
	_ oops.Tracer  = (*Tracer)(nil)
)

// Info returns a Field that nests the incident under the "oops" key.
//
// The object contains id, message, category, tag and depth, plus file and
// line when a location is recorded. A clear incident has only id 0.
func Info(info oops.Info) zapcore.Field {
	return zap.Object("oops", infoMarshaler{info: info})
}

// InfoInline returns a Field that expands the incident at the top level.
func InfoInline(info oops.Info) zapcore.Field {
	return zap.Inline(infoMarshaler{info: info})
}

// Site returns a Field describing a call site under the "site" key.
func Site(site oops.CallSite) zapcore.Field {
	return zap.Object("site", siteMarshaler{site: site})
}

func NewPolicy(logger *zap.Logger) *Policy {
	return &Policy{logger: logger}
}

func NewPrinter(logger *zap.Logger) *Printer {
	return &Printer{logger: logger}
}

func NewTracer(logger *zap.Logger) *Tracer {
	return &Tracer{logger: logger}
}

func (p *Policy) React(info oops.Info) {
	switch info.Descriptor().Category {
	case oops.Unrecoverable:
		p.logger.Fatal("unrecoverable oops", Info(info))
	case oops.Recoverable:
		p.logger.Warn("recoverable oops", Info(info))
	default:
		p.logger.Debug("ignored oops", Info(info))
	}
}

func (p *Printer) Print(info oops.Info, site oops.CallSite) {
	p.logger.Info("oops", Info(info), Site(site))
}

func (t *Tracer) StepIn(info oops.Info, table oops.Table, ctx oops.Handle, site oops.CallSite) {
	t.logger.Debug("step_in",
		Info(info),
		Site(site),
		zap.Stringer("context", ctx),
		zap.Array("chain", chainMarshaler{table: table}),
	)
}

func (t *Tracer) StepOut(info oops.Info, _ oops.Table, ctx oops.Handle, site oops.CallSite) {
	t.logger.Debug("step_out", Info(info), Site(site), zap.Stringer("context", ctx))
}

func (t *Tracer) StepDo(info oops.Info, _ oops.Table, ctx oops.Handle, site oops.CallSite) {
	t.logger.Debug("step_do", Info(info), Site(site), zap.Stringer("context", ctx))
}

func (m infoMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint32("id", uint32(m.info.ID))
	if m.info.IsZero() {
		return nil
	}

	def := m.info.Descriptor()
	enc.AddString("message", def.Message)
	enc.AddString("category", def.Category.String())
	enc.AddUint16("tag", uint16(m.info.Tag))
	enc.AddUint16("depth", uint16(m.info.Depth))
	if m.info.File != "" {
		enc.AddString("file", m.info.File)
		enc.AddInt("line", m.info.Line)
	}
	if !def.Payload.IsZero() {
		enc.AddString("payload", def.Payload.String())
	}
	return nil
}

func (m siteMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	switch s := m.site.(type) {
	case *oops.BasicSite:
		enc.AddUint16("tag", uint16(s.Tag))
		enc.AddBool("owner", s.Owner)
	case *oops.Site:
		enc.AddUint16("tag", uint16(s.Tag))
		enc.AddUint16("depth", uint16(s.Depth))
		enc.AddBool("owner", s.Owner)
		if s.Known() {
			enc.AddString("file", s.File)
			enc.AddInt("line", s.Line)
		}
	}
	return nil
}

func (m chainMarshaler) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for id, def := range m.table.Chain() {
		_ = enc.AppendObject(zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
			enc.AddUint32("id", uint32(id))
			enc.AddString("message", def.Message)
			return nil
		}))
	}
	return nil
}
