package authkit

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/kairos-events/authkit/claims"
	internalaudit "github.com/kairos-events/authkit/internal/audit"
)

// Authority is a single granted role, exactly as the backend encodes it in
// the access-token payload. The first authority is the user's primary role
// by convention.
type Authority = claims.Authority

// LoginResult is returned by the operations that establish a session:
// Login, CompleteProviderLogin, and Refresh. Subject and Authorities come
// from the advisory decode of the access token and are empty when the
// token payload could not be decoded.
type LoginResult struct {
	Subject      string
	Authorities  []Authority
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Registration is the input for [Manager.Register].
type Registration struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// AuditEvent is a structured session-state record emitted by the Manager.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the Manager's dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// ZerologSink is an [AuditSink] that forwards events to a zerolog logger.
type ZerologSink = internalaudit.ZerologSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// NewZerologSink creates a [ZerologSink] that logs through logger.
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return internalaudit.NewZerologSink(logger)
}
