package authkit

import (
	"context"
	"fmt"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/kairos-events/authkit/internal/rest"
)

// ProviderLoginURL starts a redirect-based third-party login: it resolves
// the provider's authorization endpoint (via OIDC discovery unless static
// endpoints are configured) and returns the URL the user agent should be
// sent to, along with the generated state parameter.
//
// Completion is handled separately by [Manager.CompleteProviderLogin] once
// the backend redirects back with tokens.
func (m *Manager) ProviderLoginURL(ctx context.Context, provider string) (string, string, error) {
	if m == nil || m.api == nil {
		return "", "", ErrManagerNotReady
	}

	p, ok := m.config.OAuth.Providers[provider]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrProviderUnknown, provider)
	}

	endpoint, err := m.providerEndpoint(ctx, provider, p)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}

	scopes := p.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	conf := &oauth2.Config{
		ClientID:    p.ClientID,
		RedirectURL: p.RedirectURL,
		Endpoint:    endpoint,
		Scopes:      scopes,
	}

	state := uuid.NewString()
	m.metricInc(MetricProviderLoginStarted)
	m.emitAudit(ctx, AuditEvent{EventType: AuditProviderLogin, Provider: provider, Success: true})

	return conf.AuthCodeURL(state), state, nil
}

// CompleteProviderLogin is the callback entry point of the third-party
// flow. The backend finishes the code exchange itself and redirects the
// user agent back carrying `token` and `refreshToken` query parameters;
// this persists them and returns the decoded result.
//
// Absence of either parameter is a fatal flow error: the stored session is
// left exactly as it was and [ErrAuthFlowIncomplete] is returned. The flow
// is never retried automatically.
func (m *Manager) CompleteProviderLogin(ctx context.Context, params url.Values) (*LoginResult, error) {
	if m == nil || m.store == nil {
		return nil, ErrManagerNotReady
	}

	token := params.Get("token")
	refreshToken := params.Get("refreshToken")
	if token == "" || refreshToken == "" {
		m.metricInc(MetricProviderLoginIncomplete)
		m.auditFailure(ctx, AuditProviderCallback, "", ErrAuthFlowIncomplete)
		return nil, ErrAuthFlowIncomplete
	}

	result, err := m.persistPair(ctx, rest.TokenPair{Token: token, RefreshToken: refreshToken})
	if err != nil {
		m.auditFailure(ctx, AuditProviderCallback, "", err)
		return nil, err
	}

	m.metricInc(MetricProviderLoginSuccess)
	m.auditSuccess(ctx, AuditProviderCallback, result.Subject)

	return result, nil
}

// SetTokens persists a token pair directly, bypassing the credential
// endpoint. Used by callback paths that already hold valid tokens.
func (m *Manager) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	if m == nil || m.store == nil {
		return ErrManagerNotReady
	}
	_, err := m.persistPair(ctx, rest.TokenPair{Token: accessToken, RefreshToken: refreshToken})
	return err
}

func (m *Manager) providerEndpoint(ctx context.Context, name string, p ProviderConfig) (oauth2.Endpoint, error) {
	if p.AuthURL != "" && p.TokenURL != "" {
		return oauth2.Endpoint{AuthURL: p.AuthURL, TokenURL: p.TokenURL}, nil
	}

	m.providerMu.Lock()
	defer m.providerMu.Unlock()

	if cached, ok := m.providers[name]; ok {
		return cached.Endpoint(), nil
	}

	discovered, err := oidc.NewProvider(ctx, p.IssuerURL)
	if err != nil {
		return oauth2.Endpoint{}, fmt.Errorf("discover provider %q: %w", name, err)
	}
	m.providers[name] = discovered

	return discovered.Endpoint(), nil
}
