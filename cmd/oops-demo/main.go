// Command oops-demo walks through guarded call trees that record, locate,
// undo and print incidents.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/getsentry/sentry-go"
	"github.com/kieme/oops"
	"github.com/kieme/oops/hooks/promhook"
	"github.com/kieme/oops/hooks/sentryhook"
	"github.com/kieme/oops/tablefile"
	prom "github.com/prometheus/client_golang/prometheus"
)

// CLI is the demo's command line.
type CLI struct {
	Scenario  int    `short:"s" help:"Scenario to run, 1 to 3; 0 runs all." default:"0"`
	Backend   string `short:"b" help:"Hook backend: text, zap or zerolog." default:"text" enum:"text,zap,zerolog" env:"OOPS_BACKEND"`
	Table     string `short:"t" help:"YAML descriptor table replacing the built-in one." type:"path" env:"OOPS_TABLE"`
	Trace     bool   `help:"Trace steps around each scenario."`
	Metrics   bool   `help:"Print incident and step counters on exit."`
	SentryDSN string `name:"sentry-dsn" help:"Report incidents to this Sentry DSN." env:"SENTRY_DSN"`
	Verbose   bool   `short:"v" help:"Enable verbose logging."`
}

// Validate is called by kong after parsing.
func (c *CLI) Validate() error {
	if c.Scenario < 0 || c.Scenario >= len(scenarios) {
		return fmt.Errorf("scenario must be between 0 and %d, got %d", len(scenarios)-1, c.Scenario)
	}
	return nil
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("oops-demo"),
		kong.Description("Run the oops guarded call tree scenarios."),
		kong.UsageOnError(),
	}, opts...)
	return kong.New(cli, opts...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	kctx.FatalIfErrorf(run(os.Stdout, cli))
}

func run(w io.Writer, cli CLI) error {
	table := domainTable
	if cli.Table != "" {
		t, err := tablefile.LoadFile(cli.Table)
		if err != nil {
			return err
		}
		table = t
	}

	h, err := newHooks(w, cli.Backend)
	if err != nil {
		return err
	}
	defer func() { _ = h.sync() }()

	var reg *prom.Registry
	if cli.Metrics {
		reg = prom.NewRegistry()
		m := promhook.NewMetrics(reg)
		h.policy = m.Policy(h.policy)
		h.tracer = m.Tracer(h.tracer)
	}

	if cli.SentryDSN != "" {
		client, err := sentry.NewClient(sentry.ClientOptions{Dsn: cli.SentryDSN})
		if err != nil {
			return fmt.Errorf("failed to create Sentry client: %w", err)
		}
		hub := sentry.NewHub(client, sentry.NewScope())
		defer hub.Flush(sentryhook.DefaultFlushTimeout)
		h.policy = sentryhook.NewPolicy(hub, h.policy)
	}

	opts := append(h.options(), oops.Logger(slog.Default()))
	for i, sc := range scenarios {
		if sc == nil || (cli.Scenario != 0 && cli.Scenario != i) {
			continue
		}
		fmt.Fprintf(w, "# scenario %d\n", i)
		start := time.Now()
		runScenario(w, sc, table, cli.Trace, opts)
		slog.Debug("scenario finished", "scenario", i, "duration", time.Since(start))
	}

	if reg != nil {
		return writeCounters(w, reg)
	}
	return nil
}

func runScenario(w io.Writer, sc func(*scope, oops.Oops), table oops.Table, trace bool, opts []oops.Option) {
	s := &scope{w: w}
	defer s.close()

	o := oops.Root(table, opts...)
	if trace {
		o.StepIn()
		defer o.StepOut()
	}
	sc(s, o)
	if trace {
		o.StepDo()
	}
}
