package authkit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kairos-events/authkit/claims"
	"github.com/kairos-events/authkit/internal/rest"
)

// IsAuthenticated reports whether a valid session exists: an access token
// is stored and its expiry, when present, is still in the future.
//
// A stored-but-expired token closes the session as a side effect before
// returning false, so an expired token never silently counts as
// authenticated on a later check. A store read failure reports false
// alongside the error, never true.
func (m *Manager) IsAuthenticated(ctx context.Context) (bool, error) {
	if m == nil || m.store == nil {
		return false, ErrManagerNotReady
	}

	tokens, err := m.store.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	if tokens.Empty() {
		return false, nil
	}

	if !tokens.ExpiresAt.IsZero() {
		deadline := m.now().Add(m.config.Tokens.ClockSkew)
		if !tokens.ExpiresAt.After(deadline) {
			if err := m.Logout(ctx); err != nil {
				return false, err
			}
			m.metricInc(MetricSessionExpired)
			m.emitAudit(ctx, AuditEvent{EventType: AuditSessionExpired})
			return false, nil
		}
	}

	return true, nil
}

// Roles returns the authorities decoded from the current access token.
// [ErrNoSession] when no token is stored; a decode failure wraps
// [ErrTokenDecode]; callers treating roles as optional can test either.
func (m *Manager) Roles(ctx context.Context) ([]Authority, error) {
	decoded, err := m.currentClaims(ctx)
	if err != nil {
		return nil, err
	}
	return decoded.Authorities, nil
}

// Subject returns the username decoded from the current access token.
func (m *Manager) Subject(ctx context.Context) (string, error) {
	decoded, err := m.currentClaims(ctx)
	if err != nil {
		return "", err
	}
	return decoded.Subject, nil
}

// AccessToken returns the stored bearer token, if any. It performs no
// expiry check: the interceptor attaches whatever is stored and lets the
// server be authoritative.
func (m *Manager) AccessToken(ctx context.Context) (string, bool) {
	if m == nil || m.store == nil {
		return "", false
	}
	tokens, err := m.store.Read(ctx)
	if err != nil || tokens.Empty() {
		return "", false
	}
	return tokens.AccessToken, true
}

// Logout clears the token store. Safe to call from any session state and
// any number of times.
func (m *Manager) Logout(ctx context.Context) error {
	if m == nil || m.store == nil {
		return ErrManagerNotReady
	}
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.metricInc(MetricLogout)
	m.auditSuccess(ctx, AuditLogout, "")
	return nil
}

// FetchRoles asks the backend for the authenticated user's role instead of
// decoding the local token. It backs the server-verified guard strategy;
// see guard.RoleFunc.
func (m *Manager) FetchRoles(ctx context.Context) ([]Authority, error) {
	if m == nil || m.api == nil {
		return nil, ErrManagerNotReady
	}

	token, ok := m.AccessToken(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	profile, err := m.api.CurrentUser(ctx, token)
	if err != nil {
		var statusErr *rest.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusUnauthorized {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	if profile.Role == "" {
		return nil, nil
	}

	role := profile.Role
	if !strings.HasPrefix(role, "ROLE_") {
		role = "ROLE_" + role
	}
	return []Authority{{Authority: role}}, nil
}

func (m *Manager) currentClaims(ctx context.Context) (*claims.Claims, error) {
	if m == nil || m.store == nil {
		return nil, ErrManagerNotReady
	}

	tokens, err := m.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if tokens.Empty() {
		return nil, ErrNoSession
	}

	decoded, err := claims.Decode(tokens.AccessToken)
	if err != nil {
		m.metricInc(MetricDecodeFailure)
		return nil, fmt.Errorf("%w: %v", ErrTokenDecode, err)
	}
	return decoded, nil
}
