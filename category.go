package oops

import (
	"fmt"
	"strings"
)

// Category is the advisory classification of a descriptor.
// Propagation never looks at it; only a Policy interprets it.
type Category uint8

const (
	// Unrecoverable marks a presumed invariant violation.
	Unrecoverable Category = iota
	// Recoverable marks an incident the caller is expected to handle and clear.
	Recoverable
	// Ignore marks an incident that needs no reaction from the policy.
	Ignore
)

// String returns the lower-case name of the category.
func (c Category) String() string {
	switch c {
	case Unrecoverable:
		return "unrecoverable"
	case Recoverable:
		return "recoverable"
	case Ignore:
		return "ignore"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// ParseCategory parses the name produced by Category.String, case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unrecoverable":
		return Unrecoverable, nil
	case "recoverable":
		return Recoverable, nil
	case "ignore":
		return Ignore, nil
	}
	return 0, fmt.Errorf("oops: unknown category %q", s)
}
