package guard

import "net/http"

// Require wraps an http.Handler so the request only reaches it when the
// guard allows navigation. Denied requests receive a redirect to the
// guard's destination for that denial. Pass no roles to require only an
// authenticated session.
//
// This is the server-rendered counterpart of wiring Check into a client
// router; both run the same decision.
func (g *Guard) Require(next http.Handler, requiredRoles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := g.Check(r.Context(), requiredRoles)
		if result.Decision != Allowed {
			http.Redirect(w, r, result.Redirect, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
