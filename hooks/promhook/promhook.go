// Package promhook counts oops incidents and trace steps with Prometheus.
package promhook

import (
	"strconv"

	"github.com/kieme/oops"
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "oops"

type (
	// Metrics holds the collectors shared by the Policy and Tracer decorators.
	Metrics struct {
		incidents *prom.CounterVec
		steps     *prom.CounterVec
	}

	policy struct {
		m    *Metrics
		next oops.Policy
	}

	tracer struct {
		m    *Metrics
		next oops.Tracer
	}
)

var (
	_ oops.Policy = (*policy)(nil)
	_ oops.Tracer = (*tracer)(nil)
)

// NewMetrics creates the collectors and registers them with reg. A nil reg
// creates a private registry.
func NewMetrics(reg prom.Registerer) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		incidents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_total",
			Help:      "Incidents recorded by category and id",
		}, []string{"category", "id"}),
		steps: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "trace_steps_total",
			Help:      "Trace steps by kind",
		}, []string{"step"}),
	}
	reg.MustRegister(m.incidents, m.steps)
	return m
}

// Policy counts each incident, then hands it to next. next may be nil.
func (m *Metrics) Policy(next oops.Policy) oops.Policy {
	return &policy{m: m, next: next}
}

// Tracer counts each step, then hands it to next. A nil next means
// oops.NopTracer.
func (m *Metrics) Tracer(next oops.Tracer) oops.Tracer {
	if next == nil {
		next = oops.NopTracer{}
	}
	return &tracer{m: m, next: next}
}

func (p *policy) React(info oops.Info) {
	p.m.incidents.WithLabelValues(
		info.Descriptor().Category.String(),
		strconv.FormatUint(uint64(info.ID), 10),
	).Inc()
	if p.next != nil {
		p.next.React(info)
	}
}

func (t *tracer) StepIn(info oops.Info, table oops.Table, ctx oops.Handle, site oops.CallSite) {
	t.m.steps.WithLabelValues("in").Inc()
	t.next.StepIn(info, table, ctx, site)
}

func (t *tracer) StepOut(info oops.Info, table oops.Table, ctx oops.Handle, site oops.CallSite) {
	t.m.steps.WithLabelValues("out").Inc()
	t.next.StepOut(info, table, ctx, site)
}

func (t *tracer) StepDo(info oops.Info, table oops.Table, ctx oops.Handle, site oops.CallSite) {
	t.m.steps.WithLabelValues("do").Inc()
	t.next.StepDo(info, table, ctx, site)
}
