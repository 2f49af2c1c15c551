// Package sentryhook reports oops incidents to Sentry.
package sentryhook

import (
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/kieme/oops"
)

// DefaultFlushTimeout bounds the flush performed before an unrecoverable
// incident is handed to the next policy.
const DefaultFlushTimeout = 2 * time.Second

// Policy captures unrecoverable and recoverable incidents as Sentry messages,
// then delegates to the next policy. Ignore incidents are only delegated.
//
// Each event carries:
//   - level fatal for unrecoverable and warning for recoverable incidents
//   - tags oops.id, oops.category and oops.tag
//   - an "oops" context with the message, depth and recorded location
//   - a fingerprint grouping events by table message and id
type Policy struct {
	hub          *sentry.Hub
	next         oops.Policy
	flushTimeout time.Duration
}

var _ oops.Policy = (*Policy)(nil)

// NewPolicy creates a Policy reporting to hub, or to sentry.CurrentHub() when
// hub is nil. next may be nil.
func NewPolicy(hub *sentry.Hub, next oops.Policy) *Policy {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &Policy{hub: hub, next: next, flushTimeout: DefaultFlushTimeout}
}

// WithFlushTimeout returns a copy of p using d for the unrecoverable flush.
func (p *Policy) WithFlushTimeout(d time.Duration) *Policy {
	cp := *p
	cp.flushTimeout = d
	return &cp
}

func (p *Policy) React(info oops.Info) {
	def := info.Descriptor()
	if def.Category != oops.Ignore {
		p.capture(info, def)
		if def.Category == oops.Unrecoverable {
			p.hub.Flush(p.flushTimeout)
		}
	}
	if p.next != nil {
		p.next.React(info)
	}
}

func (p *Policy) capture(info oops.Info, def oops.Descriptor) {
	id := strconv.FormatUint(uint64(info.ID), 10)

	p.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(levelOf(def.Category))
		scope.SetTag("oops.id", id)
		scope.SetTag("oops.category", def.Category.String())
		scope.SetTag("oops.tag", strconv.Itoa(int(info.Tag)))
		scope.SetFingerprint([]string{"oops", def.Message, id})

		data := sentry.Context{
			"message": def.Message,
			"depth":   int(info.Depth),
			"context": info.Context.String(),
		}
		if info.File != "" {
			data["file"] = info.File
			data["line"] = info.Line
		}
		if !def.Payload.IsZero() {
			data["payload"] = def.Payload.String()
		}
		scope.SetContext("oops", data)

		p.hub.CaptureMessage(def.Message)
	})
}

func levelOf(c oops.Category) sentry.Level {
	if c == oops.Unrecoverable {
		return sentry.LevelFatal
	}
	return sentry.LevelWarning
}
