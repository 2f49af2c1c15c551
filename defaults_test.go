package oops_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/kieme/oops"
)

func TestTextPrinter_Print(t *testing.T) {
	set := oops.Info{ID: E1, Table: testTable, File: "origin.go", Line: 5}
	noOrigin := oops.Info{ID: E1, Table: testTable}

	tests := []struct {
		name string
		info oops.Info
		site oops.CallSite
		want string
	}{
		{
			name: "basic clear",
			site: &oops.BasicSite{Tag: 2},
			want: "oops[tag-2] = no oops\n",
		},
		{
			name: "basic set",
			info: set,
			site: &oops.BasicSite{Tag: 2},
			want: "oops[tag-2] = 1, error 1\n",
		},
		{
			name: "extended clear with call site",
			site: &oops.Site{Tag: 1, Depth: 2, File: "site.go", Line: 9},
			want: "oops[site.go:9, tag-1, depth-2] = no oops\n",
		},
		{
			name: "extended clear without call site",
			site: &oops.Site{Tag: 1, Depth: 2},
			want: "oops[tag-1, depth-2] = no oops\n",
		},
		{
			name: "extended set with both files",
			info: set,
			site: &oops.Site{Tag: 1, Depth: 2, File: "site.go", Line: 9},
			want: "oops[site.go:9, tag-1, depth-2] = 1, error 1, origin.go:5\n",
		},
		{
			name: "extended set with call site only",
			info: noOrigin,
			site: &oops.Site{Tag: 1, Depth: 2, File: "site.go", Line: 9},
			want: "oops[site.go:9, tag-1, depth-2] = 1, error 1\n",
		},
		{
			name: "extended set with origin only",
			info: set,
			site: &oops.Site{Tag: 1, Depth: 2},
			want: "oops[tag-1, depth-2] = 1, error 1, origin.go:5\n",
		},
		{
			name: "extended set without files",
			info: noOrigin,
			site: &oops.Site{Tag: 1, Depth: 2},
			want: "oops[tag-1, depth-2] = 1, error 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := &oops.TextPrinter{Out: &buf}

			p.Print(tt.info, tt.site)

			if got := buf.String(); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTextPolicy_React(t *testing.T) {
	tbl := oops.NewTable(
		oops.Describe(oops.Ignore, "sentinel", 0),
		oops.Describe(oops.Unrecoverable, "broken", 0),
		oops.Describe(oops.Recoverable, "retry", 0),
		oops.Describe(oops.Ignore, "noise", 0),
	)

	tests := []struct {
		name      string
		id        oops.ID
		want      string
		wantAbort bool
	}{
		{name: "unrecoverable", id: 1, want: "policy assert unrecoverable oops = 1, broken\n", wantAbort: true},
		{name: "recoverable", id: 2, want: "policy ignore recoverable oops = 2, retry\n"},
		{name: "ignore", id: 3, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			aborted := false
			p := &oops.TextPolicy{Out: &buf, Abort: func(oops.Info) { aborted = true }}

			ctx := oops.NewContext(oops.UsePolicy(p))
			_ = ctx.Set(tt.id, tbl, nil)

			if got := buf.String(); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
			if aborted != tt.wantAbort {
				t.Errorf("want abort %v, got %v", tt.wantAbort, aborted)
			}
			if !ctx.Query() {
				t.Error("want the incident to stay pending after the policy")
			}
		})
	}
}

func TestTextTracer(t *testing.T) {
	info := oops.Info{ID: E2, Table: testTable}
	ctx := oops.NewContext().Handle()

	tests := []struct {
		name string
		step func(tr *oops.TextTracer, site oops.CallSite)
		site oops.CallSite
		want string
	}{
		{
			name: "step in basic",
			step: func(tr *oops.TextTracer, site oops.CallSite) { tr.StepIn(info, testTable, ctx, site) },
			site: &oops.BasicSite{},
			want: `^step_in-> code = 2, data-0x[0-9a-f]+, context = ` + ctx.String() + "\n" +
				"  -> has code = 1, error 1\n  -> has code = 2, error 2\n$",
		},
		{
			name: "step out with file",
			step: func(tr *oops.TextTracer, site oops.CallSite) { tr.StepOut(info, testTable, ctx, site) },
			site: &oops.Site{Depth: 4, File: "x.go", Line: 3},
			want: `^step_out-> code = 2, data-0x[0-9a-f]+, depth = 4, context = ` + ctx.String() + `, file = x\.go, line = 3` + "\n$",
		},
		{
			name: "step do without file",
			step: func(tr *oops.TextTracer, site oops.CallSite) { tr.StepDo(info, testTable, ctx, site) },
			site: &oops.Site{Depth: 4},
			want: `^step_do-> code = 2, data-0x[0-9a-f]+, depth = 4, context = ` + ctx.String() + "\n$",
		},
		{
			name: "step do basic",
			step: func(tr *oops.TextTracer, site oops.CallSite) { tr.StepDo(info, testTable, ctx, site) },
			site: &oops.BasicSite{},
			want: `^step_do-> code = 2, data-0x[0-9a-f]+, context = ` + ctx.String() + "\n$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.step(&oops.TextTracer{Out: &buf}, tt.site)

			if !regexp.MustCompile(tt.want).MatchString(buf.String()) {
				t.Errorf("want match %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestContext_StepsDoNotMutate(t *testing.T) {
	o, buf := newTestRoot(oops.UsePolicy(oops.JoinPolicies()))
	_ = o.Tag(3).Raise(E1)
	before := o.Context().Info()

	o.StepIn()
	o.StepDo()
	o.StepOut()
	o.Print()

	after := o.Context().Info()
	if before.ID != after.ID || before.Tag != after.Tag || before.File != after.File {
		t.Errorf("want steps to leave the context untouched, got %+v -> %+v", before, after)
	}
	if !regexp.MustCompile(`step_out-> code = 1, .*file = defaults_test\.go, line = \d+\n`).MatchString(buf.String()) {
		t.Errorf("want step_out to carry the caller location, got %q", buf.String())
	}
}

func TestJoinPolicies(t *testing.T) {
	var order []string
	p := oops.JoinPolicies(
		oops.PolicyFunc(func(oops.Info) { order = append(order, "a") }),
		nil,
		oops.PolicyFunc(func(oops.Info) { order = append(order, "b") }),
	)

	p.React(oops.Info{ID: E1})

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("want [a b], got %v", order)
	}
}
