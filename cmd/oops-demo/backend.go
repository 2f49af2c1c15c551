package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/kieme/oops"
	"github.com/kieme/oops/hooks/zaphook"
	"github.com/kieme/oops/hooks/zerologhook"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// hooks is the set of reactions a scenario's Context is built with.
type hooks struct {
	policy  oops.Policy
	printer oops.Printer
	tracer  oops.Tracer
	sync    func() error
}

func newHooks(w io.Writer, backend string) (hooks, error) {
	switch backend {
	case "", "text":
		return hooks{
			policy:  &oops.TextPolicy{Out: w},
			printer: &oops.TextPrinter{Out: w},
			tracer:  &oops.TextTracer{Out: w},
			sync:    func() error { return nil },
		}, nil
	case "zap":
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = ""
		logger := zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(w), zap.DebugLevel))
		return hooks{
			policy:  zaphook.NewPolicy(logger),
			printer: zaphook.NewPrinter(logger),
			tracer:  zaphook.NewTracer(logger),
			sync:    logger.Sync,
		}, nil
	case "zerolog":
		logger := zerolog.New(w).Level(zerolog.DebugLevel)
		return hooks{
			policy:  zerologhook.NewPolicy(logger, nil),
			printer: zerologhook.NewPrinter(logger),
			tracer:  zerologhook.NewTracer(logger),
			sync:    func() error { return nil },
		}, nil
	default:
		return hooks{}, fmt.Errorf("unknown backend %q", backend)
	}
}

func (h hooks) options() []oops.Option {
	return []oops.Option{
		oops.UsePolicy(h.policy),
		oops.UsePrinter(h.printer),
		oops.UseTracer(h.tracer),
	}
}

// writeCounters prints every gathered counter series, one per line.
func writeCounters(w io.Writer, g prom.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
