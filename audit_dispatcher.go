package authkit

import (
	"context"
	"time"

	internalaudit "github.com/kairos-events/authkit/internal/audit"
)

// Audit event types emitted by the Manager. The boundary layer can switch
// on these when turning events into logs or user-facing notices.
const (
	AuditLogin            = "login"
	AuditLoginFailure     = "login_failure"
	AuditLogout           = "logout"
	AuditSessionExpired   = "session_expired"
	AuditRegister         = "register"
	AuditPasswordReset    = "password_reset_request"
	AuditProviderLogin    = "provider_login"
	AuditProviderCallback = "provider_callback"
	AuditRefresh          = "refresh"
)

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *internalaudit.Dispatcher {
	return internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    !cfg.Disabled,
		BufferSize: cfg.BufferSize,
		DropIfFull: !cfg.BlockIfFull,
	}, sink)
}

func (m *Manager) emitAudit(ctx context.Context, event AuditEvent) {
	if m == nil || m.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	m.audit.Emit(ctx, event)
}

func (m *Manager) auditFailure(ctx context.Context, eventType, subject string, err error) {
	event := AuditEvent{
		EventType: eventType,
		Subject:   subject,
	}
	if err != nil {
		event.Error = err.Error()
	}
	m.emitAudit(ctx, event)
}

func (m *Manager) auditSuccess(ctx context.Context, eventType, subject string) {
	m.emitAudit(ctx, AuditEvent{
		EventType: eventType,
		Subject:   subject,
		Success:   true,
	})
}
