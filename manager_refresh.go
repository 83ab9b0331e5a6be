package authkit

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kairos-events/authkit/internal/rest"
)

// Refresh exchanges the stored refresh token for a new token pair and
// persists it. It is an explicit operation: no other Manager call performs
// a silent refresh on its own.
//
// A backend rejection (400/401) clears the local session and returns
// [ErrRefreshRejected]: the refresh token is dead, so keeping the triplet
// would only produce 401s. Transient failures leave the session
// untouched and return [ErrServerUnavailable].
func (m *Manager) Refresh(ctx context.Context) (*LoginResult, error) {
	if m == nil || m.api == nil {
		return nil, ErrManagerNotReady
	}

	tokens, err := m.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if tokens.RefreshToken == "" {
		return nil, ErrNoSession
	}

	pair, err := m.api.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		var statusErr *rest.StatusError
		if errors.As(err, &statusErr) &&
			(statusErr.Code == http.StatusBadRequest || statusErr.Code == http.StatusUnauthorized) {
			if logoutErr := m.Logout(ctx); logoutErr != nil {
				return nil, logoutErr
			}
			m.metricInc(MetricRefreshRejected)
			m.auditFailure(ctx, AuditRefresh, "", ErrRefreshRejected)
			return nil, ErrRefreshRejected
		}
		m.metricInc(MetricRefreshUnavailable)
		classified := fmt.Errorf("%w: %v", ErrServerUnavailable, err)
		m.auditFailure(ctx, AuditRefresh, "", classified)
		return nil, classified
	}

	result, err := m.persistPair(ctx, pair)
	if err != nil {
		m.auditFailure(ctx, AuditRefresh, "", err)
		return nil, err
	}

	m.metricInc(MetricRefreshSuccess)
	m.auditSuccess(ctx, AuditRefresh, result.Subject)

	return result, nil
}
