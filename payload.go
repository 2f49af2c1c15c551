package oops

import "fmt"

type (
	// PayloadKind discriminates the variant held by a Payload.
	PayloadKind uint8

	// Payload is the opaque, domain-specific value attached to a descriptor.
	// It holds at most one variant; Kind reports which.
	Payload struct {
		kind      PayloadKind
		u         uint64
		i         int64
		ptr       any
		str       string
		predicate func(ID) bool
		notify    func(ID)
	}
)

const (
	PayloadNone PayloadKind = iota
	PayloadUint
	PayloadInt
	PayloadPointer
	PayloadString
	PayloadPredicate
	PayloadNotify
)

var _ fmt.Stringer = Payload{}

// UintPayload holds an unsigned integer.
func UintPayload(v uint64) Payload {
	return Payload{kind: PayloadUint, u: v}
}

// IntPayload holds a signed integer.
func IntPayload(v int64) Payload {
	return Payload{kind: PayloadInt, i: v}
}

// PointerPayload holds an opaque reference. The package never dereferences it.
func PointerPayload(v any) Payload {
	return Payload{kind: PayloadPointer, ptr: v}
}

// StringPayload holds a string reference.
func StringPayload(v string) Payload {
	return Payload{kind: PayloadString, str: v}
}

// PredicatePayload holds a callback answering a yes/no question about an id.
func PredicatePayload(fn func(ID) bool) Payload {
	if fn == nil {
		return Payload{}
	}
	return Payload{kind: PayloadPredicate, predicate: fn}
}

// NotifyPayload holds a callback to be told about an id.
func NotifyPayload(fn func(ID)) Payload {
	if fn == nil {
		return Payload{}
	}
	return Payload{kind: PayloadNotify, notify: fn}
}

// Kind returns the held variant.
func (p Payload) Kind() PayloadKind {
	return p.kind
}

// IsZero reports whether the payload holds nothing.
func (p Payload) IsZero() bool {
	return p.kind == PayloadNone
}

func (p Payload) Uint() (uint64, bool) {
	return p.u, p.kind == PayloadUint
}

func (p Payload) Int() (int64, bool) {
	return p.i, p.kind == PayloadInt
}

func (p Payload) Pointer() (any, bool) {
	return p.ptr, p.kind == PayloadPointer
}

func (p Payload) Str() (string, bool) {
	return p.str, p.kind == PayloadString
}

func (p Payload) Predicate() (func(ID) bool, bool) {
	return p.predicate, p.kind == PayloadPredicate
}

func (p Payload) Notify() (func(ID), bool) {
	return p.notify, p.kind == PayloadNotify
}

// Value returns the held variant as an untyped value, or nil.
func (p Payload) Value() any {
	switch p.kind {
	case PayloadUint:
		return p.u
	case PayloadInt:
		return p.i
	case PayloadPointer:
		return p.ptr
	case PayloadString:
		return p.str
	case PayloadPredicate:
		return p.predicate
	case PayloadNotify:
		return p.notify
	default:
		return nil
	}
}

func (p Payload) String() string {
	switch p.kind {
	case PayloadNone:
		return "none"
	case PayloadUint:
		return fmt.Sprintf("uint(%d)", p.u)
	case PayloadInt:
		return fmt.Sprintf("int(%d)", p.i)
	case PayloadPointer:
		return fmt.Sprintf("pointer(%v)", p.ptr)
	case PayloadString:
		return fmt.Sprintf("string(%q)", p.str)
	case PayloadPredicate:
		return "predicate"
	case PayloadNotify:
		return "notify"
	default:
		return fmt.Sprintf("payload(%d)", uint8(p.kind))
	}
}

func (k PayloadKind) String() string {
	switch k {
	case PayloadNone:
		return "none"
	case PayloadUint:
		return "uint"
	case PayloadInt:
		return "int"
	case PayloadPointer:
		return "pointer"
	case PayloadString:
		return "string"
	case PayloadPredicate:
		return "predicate"
	case PayloadNotify:
		return "notify"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}
