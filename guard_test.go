package oops_test

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/kieme/oops"
)

func newTestRoot(opts ...oops.Option) (oops.Oops, *bytes.Buffer) {
	var buf bytes.Buffer
	opts = append([]oops.Option{oops.Output(&buf)}, opts...)
	return oops.Root(testTable, opts...), &buf
}

func TestOops_Guard(t *testing.T) {
	t.Run("runs the body while clear", func(t *testing.T) {
		o, _ := newTestRoot()
		ran := false

		ok := o.Guard(func(o oops.Oops) {
			ran = true
			if o.Depth() != 1 {
				t.Errorf("want body depth 1, got %d", o.Depth())
			}
			if o.Owner() {
				t.Error("want body view not to own the context")
			}
		})

		if !ran || !ok {
			t.Errorf("want body to run and leave clear, got ran=%v ok=%v", ran, ok)
		}
	})

	t.Run("skips siblings and ancestors after an incident", func(t *testing.T) {
		o, _ := newTestRoot()
		counter := 0

		outer := o.Guard(func(o oops.Oops) {
			counter++
			o.Guard(func(o oops.Oops) {
				counter++
				_ = o.Raise(E1)
			})
			o.Guard(func(o oops.Oops) { counter++ })
			o.Tag(3).Guard(func(o oops.Oops) { counter++ })
		})
		o.Guard(func(o oops.Oops) { counter++ })

		if outer {
			t.Error("want outer guard to report the incident")
		}
		if counter != 2 {
			t.Errorf("want counter frozen at 2, got %d", counter)
		}
		if o.ID() != E1 {
			t.Errorf("want id 1, got %d", o.ID())
		}

		o.Clear()
		o.Guard(func(o oops.Oops) { counter++ })
		if counter != 3 {
			t.Errorf("want guards to resume after clear, got %d", counter)
		}
	})

	t.Run("innermost location wins", func(t *testing.T) {
		o, _ := newTestRoot()
		var innerLine, middleLine int

		inner := func(o oops.Oops) {
			_, _, line, _ := runtime.Caller(0)
			innerLine = line + 1
			o.Guard(func(o oops.Oops) { _ = o.Raise(E2) })
		}
		middle := func(o oops.Oops) {
			_, _, line, _ := runtime.Caller(0)
			middleLine = line + 1
			o.Guard(func(o oops.Oops) { inner(o.Tag(9)) })
		}
		o.Guard(func(o oops.Oops) { middle(o) })

		info := o.Context().Info()
		if info.File != "guard_test.go" {
			t.Errorf("want file guard_test.go, got %q", info.File)
		}
		if info.Line != innerLine || info.Line == middleLine {
			t.Errorf("want inner line %d, got %d (middle %d)", innerLine, info.Line, middleLine)
		}
		if info.Depth != 3 || info.Tag != 9 {
			t.Errorf("want depth 3 tag 9, got depth %d tag %d", info.Depth, info.Tag)
		}
	})

	t.Run("stamps on panic", func(t *testing.T) {
		o, _ := newTestRoot()

		func() {
			defer func() {
				if r := recover(); r != "boom" {
					t.Errorf("want panic to propagate, got %v", r)
				}
			}()
			o.Tag(4).Guard(func(o oops.Oops) {
				_ = o.Raise(E1)
				panic("boom")
			})
		}()

		info := o.Context().Info()
		if !o.Context().Located() || info.File != "guard_test.go" || info.Tag != 4 {
			t.Errorf("want location stamped on the panic path, got %+v", info)
		}
	})

	t.Run("does not stamp a raise outside any guard", func(t *testing.T) {
		o, _ := newTestRoot()
		_ = o.Raise(E1)

		if o.Context().Located() || o.Context().Info().File != "" {
			t.Error("want no location")
		}
		if o.Context().Info().Depth != 0 {
			t.Errorf("want depth 0, got %d", o.Context().Info().Depth)
		}
	})

	t.Run("basic sites never stamp", func(t *testing.T) {
		o, buf := newTestRoot(oops.BasicSites())

		o.Guard(func(o oops.Oops) {
			o.Guard(func(o oops.Oops) { _ = o.Tag(6).Raise(E2) })
		})

		info := o.Context().Info()
		if info.File != "" || info.Depth != 0 || info.Tag != 6 {
			t.Errorf("want tag-only incident, got %+v", info)
		}

		o.Print()
		if got, want := buf.String(), "oops[tag-0] = 2, error 2\n"; got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	})
}

func TestOops_Enter(t *testing.T) {
	o, _ := newTestRoot()
	counter := 0

	step := func(o oops.Oops, id oops.ID) {
		b := o.Enter()
		if !b.Active() {
			return
		}
		defer b.Exit()
		o = b.Oops()

		counter++
		if id != 0 {
			_ = o.Raise(id)
		}
	}

	step(o.Tag(1), 0)
	step(o.Tag(2), E1)
	step(o.Tag(3), 0)

	if counter != 2 {
		t.Errorf("want 2 bodies run, got %d", counter)
	}
	info := o.Context().Info()
	if info.Tag != 2 || info.Depth != 1 || info.File != "guard_test.go" {
		t.Errorf("want tag 2 depth 1 stamped in guard_test.go, got %+v", info)
	}
}

func TestOops_Views(t *testing.T) {
	other := oops.NewTable(
		oops.Describe(oops.Ignore, "other undefined error", 1),
		oops.Describe(oops.Ignore, "other error 1", 0),
	)
	o, _ := newTestRoot()

	if !o.Owner() || o.Depth() != 0 {
		t.Error("want the root view to own the context at depth 0")
	}
	if o.Tag(5).Owner() || o.Step().Owner() || o.WithTable(other).Owner() {
		t.Error("want derived views not to own the context")
	}

	_ = o.WithTable(other).Raise(1)
	if got := o.Context().What(); got != "other error 1" {
		t.Errorf("want %q, got %q", "other error 1", got)
	}
	if o.Table()(1).Message != "error 1" {
		t.Error("want root view to keep its own table")
	}
	if o.Step().Step().Depth() != 2 {
		t.Errorf("want depth 2, got %d", o.Step().Step().Depth())
	}
}

func TestScenario_PrintDeepIncident(t *testing.T) {
	o, buf := newTestRoot(oops.UsePolicy(oops.JoinPolicies()))

	c := func(o oops.Oops) { _ = o.Tag(9).Raise(E2) }
	b := func(o oops.Oops) { c(o.Step()) }
	a := func(o oops.Oops) { b(o.Step()) }
	a(o.Step())

	info := o.Context().Info()
	if info.Depth != 3 || info.Tag != 9 || info.File != "" {
		t.Fatalf("want depth 3 tag 9 without file, got %+v", info)
	}

	o.Context().Print(&oops.Site{Tag: 9, Depth: 3})
	if got, want := buf.String(), "oops[tag-9, depth-3] = 2, error 2\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestScenario_TraceChain(t *testing.T) {
	o, buf := newTestRoot()
	ctx := o.Context()
	site := &oops.Site{Depth: 3}

	ctx.StepIn(site, testTable)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "step_in-> code = 0, data-0x") ||
		!strings.HasSuffix(lines[0], ", depth = 3, context = "+ctx.Handle().String()) {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "  -> has code = 1, error 1" {
		t.Errorf("want first chain line, got %q", lines[1])
	}
	if lines[2] != "  -> has code = 2, error 2" {
		t.Errorf("want second chain line, got %q", lines[2])
	}
}
