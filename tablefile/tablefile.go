// Package tablefile loads oops descriptor tables from YAML.
//
// A table file lists its entries:
//
//	entries:
//	  - id: 0
//	    category: ignore
//	    message: storage errors
//	    next: 1
//	  - id: 1
//	    category: recoverable
//	    message: disk full
//	    payload:
//	      uint: 28
//
// Entry 0 is the sentinel every unlisted id resolves to; when the file has no
// entry 0, oops.DefaultTable(0) is used.
package tablefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kieme/oops"
	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateID is returned when two entries declare the same id.
	ErrDuplicateID = errors.New("tablefile: duplicate id")
	// ErrUnknownNext is returned when a next link names an undeclared id.
	ErrUnknownNext = errors.New("tablefile: next names an undeclared id")
	// ErrPayload is returned when an entry sets more than one payload variant.
	ErrPayload = errors.New("tablefile: payload must set exactly one of uint, int, string")
)

type (
	document struct {
		Entries []entry `yaml:"entries"`
	}

	entry struct {
		ID       oops.ID  `yaml:"id"`
		Category string   `yaml:"category"`
		Message  string   `yaml:"message"`
		Next     oops.ID  `yaml:"next"`
		Payload  *payload `yaml:"payload"`
	}

	payload struct {
		Uint   *uint64 `yaml:"uint"`
		Int    *int64  `yaml:"int"`
		String *string `yaml:"string"`
	}
)

// LoadFile reads the table file at path.
func LoadFile(path string) (oops.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tablefile: failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load decodes a table document from r. Unknown keys are rejected. An empty
// document yields oops.DefaultTable.
func Load(r io.Reader) (oops.Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("tablefile: failed to decode: %w", err)
	}
	return build(doc.Entries)
}

func build(entries []entry) (oops.Table, error) {
	if len(entries) == 0 {
		return oops.DefaultTable, nil
	}

	defs := make(map[oops.ID]oops.Descriptor, len(entries))
	for _, e := range entries {
		if _, ok := defs[e.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
		def, err := e.descriptor()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", e.ID, err)
		}
		defs[e.ID] = def
	}

	for _, e := range entries {
		if e.Next == 0 {
			continue
		}
		if _, ok := defs[e.Next]; !ok {
			return nil, fmt.Errorf("entry %d: %w: %d", e.ID, ErrUnknownNext, e.Next)
		}
	}

	sentinel, ok := defs[0]
	if !ok {
		sentinel = oops.DefaultTable(0)
	}
	return oops.SparseTable(sentinel, defs), nil
}

func (e entry) descriptor() (oops.Descriptor, error) {
	cat := oops.Unrecoverable
	if e.Category != "" {
		var err error
		if cat, err = oops.ParseCategory(e.Category); err != nil {
			return oops.Descriptor{}, err
		}
	}

	def := oops.Describe(cat, e.Message, e.Next)
	if e.Payload != nil {
		p, err := e.Payload.value()
		if err != nil {
			return oops.Descriptor{}, err
		}
		def = def.WithPayload(p)
	}
	return def, nil
}

func (p payload) value() (oops.Payload, error) {
	var (
		out oops.Payload
		n   int
	)
	if p.Uint != nil {
		out, n = oops.UintPayload(*p.Uint), n+1
	}
	if p.Int != nil {
		out, n = oops.IntPayload(*p.Int), n+1
	}
	if p.String != nil {
		out, n = oops.StringPayload(*p.String), n+1
	}
	if n != 1 {
		return oops.Payload{}, ErrPayload
	}
	return out, nil
}
