// Package zerologhook provides oops hooks that log through github.com/rs/zerolog.
package zerologhook

import (
	"github.com/kieme/oops"
	"github.com/rs/zerolog"
)

type (
	// Policy logs each incident at a level chosen by its category. After an
	// unrecoverable incident is logged at fatal level it calls the abort
	// function, oops.Abort unless replaced.
	Policy struct {
		logger zerolog.Logger
		abort  func(oops.Info)
	}

	// Printer logs the incident as seen from a call site at info level.
	Printer struct {
		logger zerolog.Logger
	}

	// Tracer logs steps at debug level.
	Tracer struct {
		logger zerolog.Logger
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

	_ zerolog.LogObjectMarshaler = infoMarshaler{}
	_ zerolog.LogObjectMarshaler = siteMarshaler{}
	_ zerolog.LogArrayMarshaler  = chainMarshaler{}
)

// Info wraps an incident for Object() or EmbedObject().
//
//	logger.Warn().Object("oops", Info(ctx.Info())).Msg("pending")
func Info(info oops.Info) zerolog.LogObjectMarshaler {
	return infoMarshaler{info: info}
}

// Site wraps a call site for Object() or EmbedObject().
func Site(site oops.CallSite) zerolog.LogObjectMarshaler {
	return siteMarshaler{site: site}
}

// NewPolicy creates a Policy. A nil abort means oops.Abort.
func NewPolicy(logger zerolog.Logger, abort func(oops.Info)) *Policy {
	if abort == nil {
		abort = oops.Abort
	}
	return &Policy{logger: logger, abort: abort}
}

func NewPrinter(logger zerolog.Logger) *Printer {
	return &Printer{logger: logger}
}

func NewTracer(logger zerolog.Logger) *Tracer {
	return &Tracer{logger: logger}
}

func (p *Policy) React(info oops.Info) {
	switch info.Descriptor().Category {
	case oops.Unrecoverable:
		p.logger.WithLevel(zerolog.FatalLevel).Object("oops", Info(info)).Msg("unrecoverable oops")
		p.abort(info)
	case oops.Recoverable:
		p.logger.Warn().Object("oops", Info(info)).Msg("recoverable oops")
	default:
		p.logger.Debug().Object("oops", Info(info)).Msg("ignored oops")
	}
}

func (p *Printer) Print(info oops.Info, site oops.CallSite) {
	p.logger.Info().Object("oops", Info(info)).Object("site", Site(site)).Msg("oops")
}

func (t *Tracer) StepIn(info oops.Info, table oops.Table, ctx oops.Handle, site oops.CallSite) {
	t.logger.Debug().
		Object("oops", Info(info)).
		Object("site", Site(site)).
		Stringer("context", ctx).
		Array("chain", chainMarshaler{table: table}).
		Msg("step_in")
}

func (t *Tracer) StepOut(info oops.Info, _ oops.Table, ctx oops.Handle, site oops.CallSite) {
	t.logger.Debug().Object("oops", Info(info)).Object("site", Site(site)).Stringer("context", ctx).Msg("step_out")
}

func (t *Tracer) StepDo(info oops.Info, _ oops.Table, ctx oops.Handle, site oops.CallSite) {
	t.logger.Debug().Object("oops", Info(info)).Object("site", Site(site)).Stringer("context", ctx).Msg("step_do")
}

func (m infoMarshaler) MarshalZerologObject(e *zerolog.Event) {
	e.Uint32("id", uint32(m.info.ID))
	if m.info.IsZero() {
		return
	}

	def := m.info.Descriptor()
	e.Str("message", def.Message)
	e.Str("category", def.Category.String())
	e.Uint16("tag", uint16(m.info.Tag))
	e.Uint16("depth", uint16(m.info.Depth))
	if m.info.File != "" {
		e.Str("file", m.info.File)
		e.Int("line", m.info.Line)
	}
	if !def.Payload.IsZero() {
		e.Str("payload", def.Payload.String())
	}
}

func (m siteMarshaler) MarshalZerologObject(e *zerolog.Event) {
	switch s := m.site.(type) {
	case *oops.BasicSite:
		e.Uint16("tag", uint16(s.Tag))
		e.Bool("owner", s.Owner)
	case *oops.Site:
		e.Uint16("tag", uint16(s.Tag))
		e.Uint16("depth", uint16(s.Depth))
		e.Bool("owner", s.Owner)
		if s.Known() {
			e.Str("file", s.File)
			e.Int("line", s.Line)
		}
	}
}

func (m chainMarshaler) MarshalZerologArray(a *zerolog.Array) {
	for id, def := range m.table.Chain() {
		a.Dict(zerolog.Dict().Uint32("id", uint32(id)).Str("message", def.Message))
	}
}
