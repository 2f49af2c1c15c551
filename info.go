package oops

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type (
	// Handle is the opaque identity of a Context, used by diagnostics only.
	Handle uuid.UUID

	// Info is a snapshot of one incident: what happened, where and how deep.
	// When ID is 0 the remaining fields carry no meaning.
	Info struct {
		Context Handle
		ID      ID
		Table   Table
		Depth   Depth
		Tag     Tag
		File    string
		Line    int
	}
)

var (
	_ slog.LogValuer = Info{}
	_ fmt.Stringer   = Info{}
	_ fmt.Stringer   = Handle{}
)

func newHandle() Handle {
	return Handle(uuid.New())
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return uuid.UUID(h) == uuid.Nil
}

// set replaces every incident field at once. The owning handle is kept.
func (i *Info) set(id ID, table Table, depth Depth, tag Tag, file string, line int) *Info {
	*i = Info{
		Context: i.Context,
		ID:      id,
		Table:   table,
		Depth:   depth,
		Tag:     tag,
		File:    file,
		Line:    line,
	}
	return i
}

func (i *Info) reset() *Info {
	return i.set(0, nil, 0, 0, "", 0)
}

// IsZero reports whether i describes no incident.
func (i Info) IsZero() bool {
	return i.ID == 0
}

// Descriptor resolves the incident's descriptor, or the zero Descriptor when
// there is no incident.
func (i Info) Descriptor() Descriptor {
	if i.ID == 0 {
		return Descriptor{}
	}
	return i.Table.Lookup(i.ID)
}

// Message returns the descriptor message, or "" when there is no incident.
func (i Info) Message() string {
	return i.Descriptor().Message
}

func (i Info) String() string {
	if i.ID == 0 {
		return "no oops"
	}
	if i.File == "" {
		return fmt.Sprintf("%d, %s", i.ID, i.Message())
	}
	return fmt.Sprintf("%d, %s, %s:%d", i.ID, i.Message(), i.File, i.Line)
}

func (i Info) LogValue() slog.Value {
	if i.ID == 0 {
		return slog.GroupValue(slog.Uint64("id", 0))
	}
	def := i.Descriptor()
	attrs := []slog.Attr{
		slog.Uint64("id", uint64(i.ID)),
		slog.String("message", def.Message),
		slog.String("category", def.Category.String()),
		slog.Int("tag", int(i.Tag)),
		slog.Int("depth", int(i.Depth)),
	}
	if i.File != "" {
		attrs = append(attrs, slog.String("file", i.File), slog.Int("line", i.Line))
	}
	return slog.GroupValue(attrs...)
}
