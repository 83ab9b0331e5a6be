package intercept

import (
	"context"
	"net/http"

	authkit "github.com/kairos-events/authkit"
)

// Navigator receives the redirect side effects of intercepted responses.
// Implementations bridge to whatever view layer hosts the client.
type Navigator interface {
	Navigate(path string)
}

// FuncNavigator adapts a function to the Navigator interface.
type FuncNavigator func(path string)

func (f FuncNavigator) Navigate(path string) { f(path) }

// TokenSource yields the current access token, if any. The second return
// is false when no session exists; the request then goes out anonymous.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, bool)
}

// SessionEnder clears local session state after the server rejects it.
type SessionEnder interface {
	Logout(ctx context.Context) error
}

// Config assembles a Transport. Base defaults to
// http.DefaultTransport; zero-valued routes fall back to authkit's
// route defaults under [ForManager], or stay empty (no navigation) here.
type Config struct {
	Base      http.RoundTripper
	Tokens    TokenSource
	Session   SessionEnder
	Navigator Navigator
	Routes    authkit.RouteConfig
	Metrics   *authkit.Metrics
}

// Transport is the failure interceptor. Safe for concurrent use as long
// as its collaborators are.
type Transport struct {
	cfg Config
}

func New(cfg Config) *Transport {
	if cfg.Base == nil {
		cfg.Base = http.DefaultTransport
	}
	return &Transport{cfg: cfg}
}

// ForManager builds a Transport over a Manager using its configured
// routes and metrics, with nav receiving the redirect side effects.
func ForManager(m *authkit.Manager, nav Navigator, base http.RoundTripper) *Transport {
	return New(Config{
		Base:      base,
		Tokens:    m,
		Session:   m,
		Navigator: nav,
		Routes:    m.Routes(),
		Metrics:   m.Metrics(),
	})
}

// RoundTrip implements http.RoundTripper. Requests that already carry an
// Authorization header pass through with it intact.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.cfg.Tokens != nil && req.Header.Get("Authorization") == "" {
		if token, ok := t.cfg.Tokens.AccessToken(req.Context()); ok {
			// RoundTrippers must not mutate the caller's request.
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.cfg.Base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		t.cfg.Metrics.Inc(authkit.MetricInterceptUnauthorized)
		if t.cfg.Session != nil {
			_ = t.cfg.Session.Logout(req.Context())
		}
		t.navigate(t.cfg.Routes.Login)
	case http.StatusForbidden:
		t.cfg.Metrics.Inc(authkit.MetricInterceptForbidden)
		t.navigate(t.cfg.Routes.Forbidden)
	case http.StatusNotFound:
		t.cfg.Metrics.Inc(authkit.MetricInterceptNotFound)
		t.navigate(t.cfg.Routes.NotFound)
	}

	return resp, nil
}

func (t *Transport) navigate(path string) {
	if t.cfg.Navigator == nil || path == "" {
		return
	}
	t.cfg.Navigator.Navigate(path)
}
