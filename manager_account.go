package authkit

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kairos-events/authkit/internal/rest"
)

// Register creates a new account. Pass-through to the backend: a 400 maps
// to [ErrRegistrationInvalid], anything else to [ErrServerUnavailable].
// No session state is touched either way.
func (m *Manager) Register(ctx context.Context, reg Registration) error {
	if m == nil || m.api == nil {
		return ErrManagerNotReady
	}

	err := m.api.Register(ctx, reg.FirstName, reg.LastName, reg.Username, reg.Email, reg.Password)
	if err != nil {
		classified := classifyFieldError(err, ErrRegistrationInvalid)
		m.metricInc(MetricRegisterFailure)
		m.auditFailure(ctx, AuditRegister, reg.Username, classified)
		return classified
	}

	m.metricInc(MetricRegisterSuccess)
	m.auditSuccess(ctx, AuditRegister, reg.Username)
	return nil
}

// ForgotPassword asks the backend to start password recovery for the given
// username or email. No session state is touched.
func (m *Manager) ForgotPassword(ctx context.Context, usernameOrEmail string) error {
	if m == nil || m.api == nil {
		return ErrManagerNotReady
	}

	if err := m.api.ForgotPassword(ctx, usernameOrEmail); err != nil {
		classified := classifyFieldError(err, ErrPasswordResetInvalid)
		m.metricInc(MetricPasswordResetFailure)
		m.auditFailure(ctx, AuditPasswordReset, usernameOrEmail, classified)
		return classified
	}

	m.metricInc(MetricPasswordResetRequest)
	m.auditSuccess(ctx, AuditPasswordReset, usernameOrEmail)
	return nil
}

// classifyFieldError maps a 400 to the endpoint-specific validation error
// and everything else to ErrServerUnavailable.
func classifyFieldError(err error, invalid error) error {
	var statusErr *rest.StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusBadRequest {
		return invalid
	}
	return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
}
