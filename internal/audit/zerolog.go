package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// ZerologSink forwards audit events to a zerolog logger, one structured log
// line per event. Success maps to info level, failure to warn.
type ZerologSink struct {
	logger zerolog.Logger
}

func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger}
}

func (s *ZerologSink) Emit(_ context.Context, event Event) {
	if s == nil {
		return
	}

	var entry *zerolog.Event
	if event.Success {
		entry = s.logger.Info()
	} else {
		entry = s.logger.Warn()
	}

	entry = entry.
		Time("timestamp", event.Timestamp).
		Str("event_type", event.EventType)
	if event.Subject != "" {
		entry = entry.Str("subject", event.Subject)
	}
	if event.Provider != "" {
		entry = entry.Str("provider", event.Provider)
	}
	if event.Status != 0 {
		entry = entry.Int("status", event.Status)
	}
	if event.Error != "" {
		entry = entry.Str("error", event.Error)
	}
	for k, v := range event.Metadata {
		entry = entry.Str(k, v)
	}

	entry.Msg("session event")
}
