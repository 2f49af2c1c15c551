package oops

type (
	// Policy reacts to every incident recorded by a Context, synchronously,
	// before Set or Adopt returns.
	Policy interface {
		React(info Info)
	}

	// Printer renders the current incident, seen from site, to a diagnostic sink.
	Printer interface {
		Print(info Info, site CallSite)
	}

	// Tracer observes steps through a call tree. It must not mutate the Context.
	Tracer interface {
		StepIn(info Info, table Table, ctx Handle, site CallSite)
		StepOut(info Info, table Table, ctx Handle, site CallSite)
		StepDo(info Info, table Table, ctx Handle, site CallSite)
	}

	// PolicyFunc adapts a function to Policy.
	PolicyFunc func(info Info)

	// PrinterFunc adapts a function to Printer.
	PrinterFunc func(info Info, site CallSite)

	// NopTracer discards every step.
	NopTracer struct{}

	policies []Policy
)

var (
	_ Policy  = PolicyFunc(nil)
	_ Printer = PrinterFunc(nil)
	_ Tracer  = NopTracer{}
	_ Policy  = policies(nil)
)

func (f PolicyFunc) React(info Info) {
	f(info)
}

func (f PrinterFunc) Print(info Info, site CallSite) {
	f(info, site)
}

func (NopTracer) StepIn(Info, Table, Handle, CallSite)  {}
func (NopTracer) StepOut(Info, Table, Handle, CallSite) {}
func (NopTracer) StepDo(Info, Table, Handle, CallSite)  {}

// JoinPolicies returns a policy running ps in order. Nil entries are skipped.
func JoinPolicies(ps ...Policy) Policy {
	joined := make(policies, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			joined = append(joined, p)
		}
	}
	return joined
}

func (ps policies) React(info Info) {
	for _, p := range ps {
		p.React(info)
	}
}
