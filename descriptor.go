package oops

// ID identifies an error within one table. ID 0 is reserved for "no error".
type ID uint32

// Descriptor describes one error identifier of a domain.
type Descriptor struct {
	// Category is consumed by policies only.
	Category Category
	// Message is constant text shared by every incident of this id.
	Message string
	// Next links to a related id for diagnostic walks. 0 ends the chain.
	Next ID
	// Payload is interpreted by the owning domain.
	Payload Payload
}

// Describe builds a descriptor without a payload.
func Describe(category Category, msg string, next ID) Descriptor {
	return Descriptor{Category: category, Message: msg, Next: next}
}

// WithPayload returns a copy of d carrying p.
func (d Descriptor) WithPayload(p Payload) Descriptor {
	d.Payload = p
	return d
}
