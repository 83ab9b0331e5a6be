package authkit

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kairos-events/authkit/internal/rest"
)

// Login authenticates against the credential endpoint and persists the
// returned token pair. The session expiry is computed from the decoded
// access-token claims, falling back to "no expiry" when the claim is
// missing.
//
// Failures are classified and never retried here: a 400 or 401 from the
// credential endpoint means [ErrInvalidCredentials]; every other failure,
// including network errors, means [ErrServerUnavailable]. Stored tokens
// are not touched on failure.
func (m *Manager) Login(ctx context.Context, usernameOrEmail, password string) (*LoginResult, error) {
	if m == nil || m.api == nil {
		return nil, ErrManagerNotReady
	}

	start := m.now()

	pair, err := m.api.Login(ctx, usernameOrEmail, password)
	if err != nil {
		classified := classifyLoginError(err)
		if errors.Is(classified, ErrInvalidCredentials) {
			m.metricInc(MetricLoginFailure)
		} else {
			m.metricInc(MetricLoginUnavailable)
		}
		m.auditFailure(ctx, AuditLoginFailure, usernameOrEmail, classified)
		return nil, classified
	}

	// A 2xx without both tokens is a broken flow, not a credential problem.
	if pair.Token == "" || pair.RefreshToken == "" {
		m.metricInc(MetricLoginFailure)
		m.auditFailure(ctx, AuditLoginFailure, usernameOrEmail, ErrAuthFlowIncomplete)
		return nil, ErrAuthFlowIncomplete
	}

	result, err := m.persistPair(ctx, pair)
	if err != nil {
		m.auditFailure(ctx, AuditLoginFailure, usernameOrEmail, err)
		return nil, err
	}

	m.metricInc(MetricLoginSuccess)
	if m.metrics != nil {
		m.metrics.Observe(MetricLoginLatency, m.now().Sub(start))
	}
	m.auditSuccess(ctx, AuditLogin, result.Subject)

	return result, nil
}

func classifyLoginError(err error) error {
	var statusErr *rest.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return ErrInvalidCredentials
		}
	}
	return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
}
