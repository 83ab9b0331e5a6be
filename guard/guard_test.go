package guard

import (
	"context"
	"errors"
	"testing"

	authkit "github.com/kairos-events/authkit"
)

type fakeSession struct {
	authenticated bool
	err           error
	panics        bool
	loggedOut     bool
}

func (s *fakeSession) IsAuthenticated(context.Context) (bool, error) {
	if s.panics {
		panic("session backend gone")
	}
	return s.authenticated, s.err
}

func (s *fakeSession) Logout(context.Context) error {
	s.loggedOut = true
	return nil
}

func staticRoles(roles ...string) RoleSource {
	return RoleFunc(func(context.Context) ([]authkit.Authority, error) {
		out := make([]authkit.Authority, 0, len(roles))
		for _, r := range roles {
			out = append(out, authkit.Authority{Authority: r})
		}
		return out, nil
	})
}

func TestCheckDecisions(t *testing.T) {
	tests := []struct {
		name     string
		session  fakeSession
		roles    RoleSource
		required []string
		want     Decision
		redirect string
	}{
		{
			name:    "unauthenticated user is redirected",
			session: fakeSession{authenticated: false},
			want:    DeniedUnauthenticated,

			redirect: "/401",
		},
		{
			name:    "authenticated user passes role-free route",
			session: fakeSession{authenticated: true},
			want:    Allowed,
		},
		{
			name:     "matching role passes",
			session:  fakeSession{authenticated: true},
			roles:    staticRoles("ROLE_USER", "ROLE_ORGANIZER"),
			required: []string{"ROLE_ORGANIZER"},
			want:     Allowed,
		},
		{
			name:     "any overlap is enough",
			session:  fakeSession{authenticated: true},
			roles:    staticRoles("ROLE_USER"),
			required: []string{"ROLE_ADMIN", "ROLE_USER"},
			want:     Allowed,
		},
		{
			name:     "missing role is forbidden, not unauthenticated",
			session:  fakeSession{authenticated: true},
			roles:    staticRoles("ROLE_USER"),
			required: []string{"ROLE_ADMIN"},
			want:     DeniedForbidden,
			redirect: "/forbidden",
		},
		{
			name:     "session read error fails closed",
			session:  fakeSession{err: errors.New("store offline")},
			want:     DeniedUnauthenticated,
			redirect: "/401",
		},
		{
			name:     "role-protected route without a role source fails closed",
			session:  fakeSession{authenticated: true},
			required: []string{"ROLE_ADMIN"},
			want:     DeniedUnauthenticated,
			redirect: "/401",
		},
		{
			name:    "role source error fails closed",
			session: fakeSession{authenticated: true},
			roles: RoleFunc(func(context.Context) ([]authkit.Authority, error) {
				return nil, errors.New("profile service down")
			}),
			required: []string{"ROLE_ADMIN"},
			want:     DeniedUnauthenticated,
			redirect: "/401",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New(&tc.session, Config{Roles: tc.roles})
			got := g.Check(context.Background(), tc.required)
			if got.Decision != tc.want {
				t.Fatalf("decision = %v, want %v", got.Decision, tc.want)
			}
			if got.Redirect != tc.redirect {
				t.Fatalf("redirect = %q, want %q", got.Redirect, tc.redirect)
			}
			// Denied-unauthenticated always runs the logout safety net;
			// allowed and forbidden never touch the session.
			wantLogout := tc.want == DeniedUnauthenticated
			if tc.session.loggedOut != wantLogout {
				t.Fatalf("loggedOut = %v, want %v", tc.session.loggedOut, wantLogout)
			}
		})
	}
}

func TestCheckRecoversFromPanic(t *testing.T) {
	session := &fakeSession{panics: true}
	g := New(session, Config{})

	got := g.Check(context.Background(), nil)
	if got.Decision != DeniedUnauthenticated {
		t.Fatalf("decision = %v, want DeniedUnauthenticated", got.Decision)
	}
	if got.Redirect != "/401" {
		t.Fatalf("redirect = %q, want /401", got.Redirect)
	}
	if !session.loggedOut {
		t.Fatal("logout not attempted on panic path")
	}
}

func TestCheckCustomRedirects(t *testing.T) {
	g := New(&fakeSession{authenticated: true}, Config{
		UnauthenticatedRedirect: "/signin",
		ForbiddenRedirect:       "/denied",
		Roles:                   staticRoles("ROLE_USER"),
	})

	got := g.Check(context.Background(), []string{"ROLE_ADMIN"})
	if got.Redirect != "/denied" {
		t.Fatalf("redirect = %q, want /denied", got.Redirect)
	}
}

func TestCheckCountsDecisions(t *testing.T) {
	metrics := authkit.NewMetrics(authkit.MetricsConfig{})
	g := New(&fakeSession{authenticated: true}, Config{
		Roles:   staticRoles("ROLE_USER"),
		Metrics: metrics,
	})

	g.Check(context.Background(), nil)
	g.Check(context.Background(), []string{"ROLE_ADMIN"})

	snap := metrics.Snapshot()
	if snap.Counters[authkit.MetricGuardAllowed] != 1 {
		t.Fatalf("allowed counter = %d, want 1", snap.Counters[authkit.MetricGuardAllowed])
	}
	if snap.Counters[authkit.MetricGuardDeniedForbidden] != 1 {
		t.Fatalf("forbidden counter = %d, want 1", snap.Counters[authkit.MetricGuardDeniedForbidden])
	}
}

func TestCheckClearsUndecodableSession(t *testing.T) {
	manager, err := authkit.New().
		WithConfig(authkit.Config{API: authkit.APIConfig{BaseURL: "https://api.example.com"}}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer manager.Close()

	ctx := context.Background()
	// An undecodable token is persisted with no expiry, so on its own it
	// would count as authenticated forever while every role check fails.
	if err := manager.SetTokens(ctx, "not-a-jwt", "refresh-1"); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}

	got := ForManager(manager).Check(ctx, []string{"ROLE_ADMIN"})
	if got.Decision != DeniedUnauthenticated {
		t.Fatalf("decision = %v, want DeniedUnauthenticated", got.Decision)
	}

	// The denial's logout cleared the trap: the token is gone and the
	// next check starts from a clean, unauthenticated state.
	if _, ok := manager.AccessToken(ctx); ok {
		t.Fatal("undecodable token still stored after guard denial")
	}
	if ok, err := manager.IsAuthenticated(ctx); err != nil || ok {
		t.Fatalf("IsAuthenticated = %v, %v; want false after denial", ok, err)
	}
}
