package oops

import (
	"iter"
	"maps"
	"slices"
)

// Table maps an id of one domain to its descriptor.
//
// A table must be total and deterministic: id 0 and every id outside the
// domain resolve to the sentinel descriptor at entry 0. It must not allocate
// or perform I/O, since it may be called on an aborting path.
type Table func(id ID) Descriptor

var defaultDescriptor = Descriptor{Category: Unrecoverable, Message: "unspecified oops"}

// DefaultTable describes every id as an unrecoverable "unspecified oops".
func DefaultTable(ID) Descriptor {
	return defaultDescriptor
}

// NewTable creates a dense table in which defs[i] describes id i.
// Ids past the end resolve to defs[0]. With no defs it behaves as DefaultTable.
func NewTable(defs ...Descriptor) Table {
	if len(defs) == 0 {
		return DefaultTable
	}
	defs = slices.Clone(defs)
	return func(id ID) Descriptor {
		if uint64(id) >= uint64(len(defs)) {
			return defs[0]
		}
		return defs[id]
	}
}

// SparseTable creates a table over the given ids.
// Unlisted ids, and id 0, resolve to sentinel; an entry for id 0 in defs is ignored.
func SparseTable(sentinel Descriptor, defs map[ID]Descriptor) Table {
	byID := maps.Clone(defs)
	delete(byID, 0)
	return func(id ID) Descriptor {
		if def, ok := byID[id]; ok {
			return def
		}
		return sentinel
	}
}

// Lookup resolves id. A nil table behaves as DefaultTable.
func (t Table) Lookup(id ID) Descriptor {
	if t == nil {
		return DefaultTable(id)
	}
	return t(id)
}

// Chain walks the descriptor chain starting at entry 0's Next link and ends at
// the first zero link. A link that revisits an id also ends the walk.
func (t Table) Chain() iter.Seq2[ID, Descriptor] {
	return func(yield func(ID, Descriptor) bool) {
		seen := make(map[ID]struct{})
		for id := t.Lookup(0).Next; id != 0; {
			if _, ok := seen[id]; ok {
				return
			}
			seen[id] = struct{}{}

			def := t.Lookup(id)
			if !yield(id, def) {
				return
			}
			id = def.Next
		}
	}
}
