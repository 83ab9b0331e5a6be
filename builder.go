package authkit

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/kairos-events/authkit/internal/rest"
	"github.com/kairos-events/authkit/tokenstore"
)

// Builder assembles a [Manager]. Configure it with the With* setters and
// call Build once; the zero configuration talks to nothing, so at minimum
// the API base URL must be provided via [Builder.WithConfig].
type Builder struct {
	config     Config
	store      tokenstore.Store
	redis      *redis.Client
	httpClient *http.Client
	auditSink  AuditSink

	built bool
}

func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the configuration. Zero-valued fields are filled
// from defaults during Build; auditing and metrics stay on unless their
// Disabled flags are set.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithTokenStore selects the persistence backend. Defaults to an
// in-memory store when neither this nor WithRedis is used.
func (b *Builder) WithTokenStore(store tokenstore.Store) *Builder {
	b.store = store
	return b
}

// WithRedis is a convenience for WithTokenStore(tokenstore.NewRedisStore(...))
// using [TokenConfig.RedisKey] as the hash key.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Disabled = !enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := applyDefaults(cloneConfig(b.config))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		if b.redis != nil {
			store = tokenstore.NewRedisStore(b.redis, cfg.Tokens.RedisKey)
		} else {
			store = tokenstore.NewMemoryStore()
		}
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.Timeout}
	}

	api, err := rest.New(cfg.API.BaseURL, httpClient, cfg.API.UserAgent)
	if err != nil {
		return nil, err
	}

	manager := newManager(cfg, store, api)
	manager.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	manager.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return manager, nil
}
