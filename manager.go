package authkit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/kairos-events/authkit/claims"
	internalaudit "github.com/kairos-events/authkit/internal/audit"
	"github.com/kairos-events/authkit/internal/rest"
	"github.com/kairos-events/authkit/tokenstore"
)

// Manager is the client-side session core. It composes the token store and
// the claims decoder to answer "is there a valid session" and "what roles
// does the user hold", and executes the login, logout, refresh, and
// third-party login flows against the Kairos backend.
//
// The Manager is the sole writer of its token store. Writes issued by
// login, callback completion, refresh, and logout are applied before the
// operation returns, so an immediately following query observes the new
// state. Methods are safe for concurrent use.
type Manager struct {
	config  Config
	store   tokenstore.Store
	api     *rest.Client
	audit   *internalaudit.Dispatcher
	metrics *Metrics
	now     func() time.Time

	providerMu sync.Mutex
	providers  map[string]*oidc.Provider
}

func newManager(cfg Config, store tokenstore.Store, api *rest.Client) *Manager {
	return &Manager{
		config:    cfg,
		store:     store,
		api:       api,
		now:       time.Now,
		providers: make(map[string]*oidc.Provider),
	}
}

// Close flushes and stops the audit dispatcher. The Manager must not be
// used afterwards.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	if m.audit != nil {
		m.audit.Close()
	}
}

// Routes exposes the configured navigation destinations for wiring guards
// and interceptors.
func (m *Manager) Routes() RouteConfig {
	if m == nil {
		return RouteConfig{}
	}
	return m.config.Routes
}

// Metrics exposes the Manager's metric registry so guards, interceptors,
// and exporters can share it. Nil when metrics are disabled.
func (m *Manager) Metrics() *Metrics {
	if m == nil {
		return nil
	}
	return m.metrics
}

func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	if m == nil || m.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return m.metrics.Snapshot()
}

func (m *Manager) AuditDropped() uint64 {
	if m == nil || m.audit == nil {
		return 0
	}
	return m.audit.Dropped()
}

func (m *Manager) metricInc(id MetricID) {
	if m == nil {
		return
	}
	m.metrics.Inc(id)
}

// persistPair decodes the access token for subject/roles/expiry and writes
// the triplet in a single store call. A token whose payload cannot be
// decoded is still persisted, with no expiry and an empty subject. The
// server, not the advisory decode, is authoritative.
func (m *Manager) persistPair(ctx context.Context, pair rest.TokenPair) (*LoginResult, error) {
	result := &LoginResult{
		AccessToken:  pair.Token,
		RefreshToken: pair.RefreshToken,
	}

	if decoded, err := claims.Decode(pair.Token); err == nil {
		result.Subject = decoded.Subject
		result.Authorities = decoded.Authorities
		result.ExpiresAt = decoded.ExpiresAt
	} else {
		m.metricInc(MetricDecodeFailure)
	}

	err := m.store.Save(ctx, tokenstore.Tokens{
		AccessToken:  pair.Token,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    result.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("persist tokens: %w", err)
	}

	return result, nil
}
