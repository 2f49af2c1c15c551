package main

import (
	"fmt"
	"io"

	"github.com/kieme/oops"
)

// Ids of the demo's main domain.
const (
	E1 oops.ID = iota + 1
	E2
	E3
	E4
)

// Ids of the "other" domain.
const (
	OtherE1 oops.ID = iota + 1
	OtherE2
)

var (
	domainTable = oops.NewTable(
		oops.Describe(oops.Ignore, "undefined error", E1),
		oops.Describe(oops.Ignore, "error 1", E2),
		oops.Describe(oops.Ignore, "error 2", E3),
		oops.Describe(oops.Ignore, "error 3", E4),
		oops.Describe(oops.Ignore, "error 4", 0),
	)

	otherTable = oops.NewTable(
		oops.Describe(oops.Ignore, "other undefined error", OtherE1),
		oops.Describe(oops.Ignore, "other error 1", OtherE2),
		oops.Describe(oops.Recoverable, "other error 2", 0),
	)
)

// scope tracks the components built during one scenario and tears them down
// in reverse order when it closes.
type scope struct {
	w    io.Writer
	live []string
}

func (s *scope) construct(name string) {
	fmt.Fprintf(s.w, "%s()\n", name)
}

func (s *scope) own(name string) {
	s.live = append(s.live, name)
}

func (s *scope) call(name string) {
	fmt.Fprintf(s.w, "%s()\n", name)
}

func (s *scope) close() {
	for i := len(s.live) - 1; i >= 0; i-- {
		fmt.Fprintf(s.w, "~%s()\n", s.live[i])
	}
	s.live = nil
}

// Components run their setup only while no incident is pending. They are
// owned, and later torn down, either way.

func buildA(s *scope, o oops.Oops) {
	o.Guard(func(oops.Oops) { s.construct("A") })
	s.own("A")
}

func buildD1(s *scope, o oops.Oops) {
	o.Guard(func(oops.Oops) { s.construct("D1") })
	s.own("D1")
}

// buildD2 records into the other domain's table.
func buildD2(s *scope, o oops.Oops) {
	o.WithTable(otherTable).Guard(func(oops.Oops) { s.construct("D2") })
	s.own("D2")
}

func buildB(s *scope, o oops.Oops) {
	buildA(s, o.Tag(1))
	buildD1(s, o.Tag(2))
	buildD2(s, o.Tag(3))
	o.Tag(4).Guard(func(oops.Oops) { s.construct("B") })
	s.own("B")
}

func buildC(s *scope, o oops.Oops) {
	buildD1(s, o)
	buildD2(s, o)
	o.Guard(func(oops.Oops) { s.construct("C") })
	s.own("C")
}

func foo(s *scope, o oops.Oops) {
	o.Guard(func(oops.Oops) { s.call("foo") })
}

func boo(s *scope, o oops.Oops) {
	o.Guard(func(oops.Oops) { s.call("boo") })
}

func coo(s *scope, o oops.Oops) {
	o.Guard(func(o oops.Oops) {
		s.call("coo")
		_ = o.Raise(E1)
	})
}

// scenarios are indexed by their number, starting at 1.
var scenarios = []func(s *scope, o oops.Oops){
	nil,
	func(s *scope, o oops.Oops) {
		buildB(s, o)
		handle(o)
	},
	func(s *scope, o oops.Oops) {
		buildC(s, o)
		handle(o)
	},
	func(s *scope, o oops.Oops) {
		buildC(s, o.Tag(1))
		foo(s, o.Tag(2))
		buildB(s, o.Tag(3))
		boo(s, o.Tag(4))
		coo(s, o.Tag(5))

		if !o.Query() {
			return
		}
		// Undo the work completed before the failing step.
		switch o.Context().Info().Tag {
		case 5:
			s.call("undo_boo")
			fallthrough
		case 4, 3:
			s.call("undo_foo")
		}
		handle(o)
	},
}

func handle(o oops.Oops) {
	if o.Query() {
		o.Print()
		o.Clear()
	}
}
