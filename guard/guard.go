package guard

import (
	"context"

	authkit "github.com/kairos-events/authkit"
)

// Decision is the terminal outcome of one guard evaluation. A denied
// navigation is not retried by the guard; a later navigation attempt
// re-enters Check from scratch.
type Decision int

const (
	Allowed Decision = iota
	DeniedUnauthenticated
	DeniedForbidden
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case DeniedUnauthenticated:
		return "denied-unauthenticated"
	case DeniedForbidden:
		return "denied-forbidden"
	}
	return "unknown"
}

// Result carries the decision and, when denied, the destination the
// navigation layer should redirect to.
type Result struct {
	Decision Decision
	Redirect string
}

// Session is the slice of the authkit Manager the guard consumes. Logout
// is invoked on every denied-unauthenticated decision as an idempotent
// safety net, so a stored token the session layer cannot make sense of is
// cleared instead of trapping the user.
type Session interface {
	IsAuthenticated(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
}

// RoleSource supplies the user's current authorities for role-protected
// routes. Two strategies exist: decoding the local token
// ([authkit.Manager.Roles]) and asking the server
// ([authkit.Manager.FetchRoles]); pick one per deployment.
type RoleSource interface {
	Roles(ctx context.Context) ([]authkit.Authority, error)
}

// RoleFunc adapts a function to the RoleSource interface.
type RoleFunc func(ctx context.Context) ([]authkit.Authority, error)

func (f RoleFunc) Roles(ctx context.Context) ([]authkit.Authority, error) {
	return f(ctx)
}

// Config tunes a Guard. Zero-valued redirects fall back to the authkit
// route defaults when the Guard is built via [ForManager].
type Config struct {
	UnauthenticatedRedirect string
	ForbiddenRedirect       string
	Roles                   RoleSource
	Metrics                 *authkit.Metrics
}

// Guard is the predicate evaluated before entering a protected view. It
// fails closed: any internal error denies navigation and redirects to the
// unauthenticated destination.
type Guard struct {
	session Session
	cfg     Config
}

func New(session Session, cfg Config) *Guard {
	if cfg.UnauthenticatedRedirect == "" {
		cfg.UnauthenticatedRedirect = "/401"
	}
	if cfg.ForbiddenRedirect == "" {
		cfg.ForbiddenRedirect = "/forbidden"
	}
	return &Guard{session: session, cfg: cfg}
}

// ForManager builds a Guard over a Manager using its configured routes and
// metrics, decoding roles from the local token. Use [New] with a
// [RoleFunc] over [authkit.Manager.FetchRoles] for the server-backed
// strategy.
func ForManager(m *authkit.Manager) *Guard {
	routes := m.Routes()
	return New(m, Config{
		UnauthenticatedRedirect: routes.Unauthenticated,
		ForbiddenRedirect:       routes.Forbidden,
		Roles:                   RoleFunc(m.Roles),
		Metrics:                 m.Metrics(),
	})
}

// Check evaluates the guard for a route requiring any of requiredRoles.
// An empty requiredRoles means any authenticated user may pass; otherwise
// navigation is allowed iff the intersection of required and held roles is
// non-empty.
func (g *Guard) Check(ctx context.Context, requiredRoles []string) (result Result) {
	// Fail closed on anything unexpected, including panics from
	// collaborators: a guard must never propagate an error out to the
	// navigation layer, and never fail open.
	defer func() {
		if recover() == nil {
			return
		}
		// Best-effort logout; the collaborator that panicked may panic
		// again, and the denial must still come out.
		func() {
			defer func() { _ = recover() }()
			_ = g.session.Logout(ctx)
		}()
		result = Result{Decision: DeniedUnauthenticated, Redirect: g.cfg.UnauthenticatedRedirect}
	}()

	if g == nil {
		return Result{Decision: DeniedUnauthenticated, Redirect: "/401"}
	}
	if g.session == nil {
		return Result{Decision: DeniedUnauthenticated, Redirect: g.cfg.UnauthenticatedRedirect}
	}

	authenticated, err := g.session.IsAuthenticated(ctx)
	if err != nil || !authenticated {
		return g.denyUnauthenticated(ctx)
	}

	if len(requiredRoles) == 0 {
		g.cfg.Metrics.Inc(authkit.MetricGuardAllowed)
		return Result{Decision: Allowed}
	}

	roleSource := g.cfg.Roles
	if roleSource == nil {
		return g.denyUnauthenticated(ctx)
	}

	held, err := roleSource.Roles(ctx)
	if err != nil {
		return g.denyUnauthenticated(ctx)
	}

	for _, required := range requiredRoles {
		for _, authority := range held {
			if authority.Authority == required {
				g.cfg.Metrics.Inc(authkit.MetricGuardAllowed)
				return Result{Decision: Allowed}
			}
		}
	}

	g.cfg.Metrics.Inc(authkit.MetricGuardDeniedForbidden)
	return Result{Decision: DeniedForbidden, Redirect: g.cfg.ForbiddenRedirect}
}

// denyUnauthenticated is the fail-closed path: log the session out and
// send the user to the unauthenticated destination. Logout is idempotent,
// so running it on a session that is already gone costs nothing, and it
// clears stored state the session layer could not make sense of.
func (g *Guard) denyUnauthenticated(ctx context.Context) Result {
	_ = g.session.Logout(ctx)
	g.cfg.Metrics.Inc(authkit.MetricGuardDeniedUnauthenticated)
	return Result{Decision: DeniedUnauthenticated, Redirect: g.cfg.UnauthenticatedRedirect}
}
