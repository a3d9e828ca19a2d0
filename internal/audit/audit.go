// Package audit records admin actions as structured log events, so a
// support engineer can reconstruct who changed what from the client side
// without backend access.
package audit

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"uniportal.org/internal/obs"
)

// Trail records admin actions. actor is evaluated per event so the trail
// always reflects the session at the time of the action.
type Trail struct {
	log   *zap.Logger
	actor func() string
}

// New builds a trail; actor returns the acting username or empty when no
// session exists.
func New(actor func() string) *Trail {
	return &Trail{log: obs.Logger(), actor: actor}
}

// WithLogger overrides the shared logger, for tests.
func (t *Trail) WithLogger(log *zap.Logger) *Trail {
	t.log = log
	return t
}

// Record writes one audit event. Empty event names are dropped.
func (t *Trail) Record(event string, fields ...zap.Field) {
	event = strings.TrimSpace(event)
	if event == "" {
		return
	}
	entry := make([]zap.Field, 0, len(fields)+3)
	entry = append(entry,
		zap.String("type", "audit"),
		zap.Time("ts", time.Now().UTC()),
	)
	if t.actor != nil {
		if actor := t.actor(); actor != "" {
			entry = append(entry, zap.String("actor", actor))
		}
	}
	entry = append(entry, fields...)
	t.log.Info(event, entry...)
}
