package authkit

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full configuration tree for a [Manager]. Zero values are
// filled with defaults during [Builder.Build]; Validate runs afterwards.
type Config struct {
	API     APIConfig
	Tokens  TokenConfig
	OAuth   OAuthConfig
	Routes  RouteConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// APIConfig locates the Kairos backend.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// TokenConfig tunes local session bookkeeping.
type TokenConfig struct {
	// ClockSkew shrinks the stored expiry when judging whether the session
	// is still authenticated, so a token about to expire at the server is
	// already treated as expired locally. Zero disables the margin.
	ClockSkew time.Duration
	// RedisKey overrides the hash key used by the Redis-backed store when
	// the Manager is built with [Builder.WithRedis].
	RedisKey string
}

// OAuthConfig declares the third-party login providers available to
// [Manager.ProviderLoginURL], keyed by provider name ("google",
// "keycloak", ...).
type OAuthConfig struct {
	Providers map[string]ProviderConfig
}

// ProviderConfig describes one third-party provider. Either IssuerURL
// (OIDC discovery) or the AuthURL/TokenURL pair must be set.
type ProviderConfig struct {
	IssuerURL   string
	AuthURL     string
	TokenURL    string
	ClientID    string
	RedirectURL string
	Scopes      []string
}

// RouteConfig names the navigation destinations referenced by the guard
// and the interceptor.
type RouteConfig struct {
	Landing         string
	Login           string
	Unauthenticated string
	Forbidden       string
	NotFound        string
}

// AuditConfig controls the async audit dispatcher. The zero value runs
// with auditing on: enablement is expressed as Disabled so that a caller
// handing [Builder.WithConfig] a sparse Config keeps the dispatcher.
type AuditConfig struct {
	Disabled   bool
	BufferSize int
	// BlockIfFull makes Emit wait for buffer space instead of dropping
	// the event and counting it.
	BlockIfFull bool
}

// MetricsConfig controls the in-process metrics system. As with
// [AuditConfig], the zero value runs with metrics on.
type MetricsConfig struct {
	Disabled                bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout:   15 * time.Second,
			UserAgent: "authkit",
		},
		Routes: RouteConfig{
			Landing:         "/home",
			Login:           "/login",
			Unauthenticated: "/401",
			Forbidden:       "/forbidden",
			NotFound:        "/not-found",
		},
		Audit: AuditConfig{
			BufferSize: 64,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.OAuth.Providers != nil {
		out.OAuth.Providers = make(map[string]ProviderConfig, len(cfg.OAuth.Providers))
		for name, p := range cfg.OAuth.Providers {
			if p.Scopes != nil {
				p.Scopes = append([]string(nil), p.Scopes...)
			}
			out.OAuth.Providers[name] = p
		}
	}
	return out
}

// applyDefaults fills zero-valued fields from defaultConfig so that a
// partially specified Config still validates.
func applyDefaults(cfg Config) Config {
	def := defaultConfig()
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = def.API.Timeout
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = def.API.UserAgent
	}
	if cfg.Routes.Landing == "" {
		cfg.Routes.Landing = def.Routes.Landing
	}
	if cfg.Routes.Login == "" {
		cfg.Routes.Login = def.Routes.Login
	}
	if cfg.Routes.Unauthenticated == "" {
		cfg.Routes.Unauthenticated = def.Routes.Unauthenticated
	}
	if cfg.Routes.Forbidden == "" {
		cfg.Routes.Forbidden = def.Routes.Forbidden
	}
	if cfg.Routes.NotFound == "" {
		cfg.Routes.NotFound = def.Routes.NotFound
	}
	if cfg.Audit.BufferSize == 0 {
		cfg.Audit.BufferSize = def.Audit.BufferSize
	}
	return cfg
}

// Validate checks the configuration tree for contradictions. Build calls
// it after defaulting; it is exported so callers can validate eagerly.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API.BaseURL is required")
	}
	if c.API.Timeout < 0 {
		return errors.New("API.Timeout must not be negative")
	}
	if c.Tokens.ClockSkew < 0 || c.Tokens.ClockSkew > 5*time.Minute {
		return errors.New("Tokens.ClockSkew must be between 0 and 5m")
	}
	if c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}

	for name, p := range c.OAuth.Providers {
		if p.ClientID == "" {
			return fmt.Errorf("provider %q: ClientID is required", name)
		}
		if p.RedirectURL == "" {
			return fmt.Errorf("provider %q: RedirectURL is required", name)
		}
		hasDiscovery := p.IssuerURL != ""
		hasStatic := p.AuthURL != "" && p.TokenURL != ""
		if !hasDiscovery && !hasStatic {
			return fmt.Errorf("provider %q: IssuerURL or AuthURL+TokenURL required", name)
		}
	}

	return nil
}
