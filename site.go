package oops

import (
	"math"
	"path/filepath"
	"runtime"
)

type (
	// Tag is a caller-assigned number naming a call site within one call tree.
	Tag uint16

	// Depth counts guarded calls between a site and the root. It is
	// diagnostic only.
	Depth uint16

	// CallSite is the record a call site hands to a Context.
	// It is either a *BasicSite or a *Site.
	CallSite interface {
		callSite()
	}

	// BasicSite is the light call-site record: no depth, no location.
	BasicSite struct {
		Owner bool
		Mem   bool
		Tag   Tag
	}

	// Site is the extended call-site record.
	Site struct {
		Owner bool
		Mem   bool
		Tag   Tag
		Depth Depth
		// Stamped is set once File and Line hold a recorded location.
		Stamped bool
		Line    int
		File    string
	}
)

var (
	_ CallSite = (*BasicSite)(nil)
	_ CallSite = (*Site)(nil)
)

// callerSkip reaches the user code from inside caller: it skips caller, the
// internal helper and the exported method.
const callerSkip = 3

func (*BasicSite) callSite() {}

func (*Site) callSite() {}

// Locate records file and line into s and marks it stamped.
func (s *Site) Locate(file string, line int) *Site {
	s.File = file
	s.Line = line
	s.Stamped = file != ""
	return s
}

// Known reports whether s carries a file name.
func (s *Site) Known() bool {
	return s != nil && s.File != ""
}

func caller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", 0
	}
	return filepath.Base(file), line
}

func (d Depth) inc() Depth {
	if d == math.MaxUint16 {
		return d
	}
	return d + 1
}
