// Package guard decides whether a navigation into a protected view may
// proceed. It is the route-guard layer of authkit: evaluated before a view
// is entered, it answers allowed / denied-unauthenticated /
// denied-forbidden and names the redirect destination for denials.
//
// # Decision order
//
// Authentication is checked first. Only an authenticated session with a
// non-empty role requirement triggers a role lookup, so the common
// "logged-in user opens a public-ish page" path costs one session read.
// A route passes a role check when the intersection of its required
// roles and the user's held authorities is non-empty.
//
// # Fail closed
//
// Any internal failure (session read error, role source error, token
// decode failure, even a panic in a collaborator) produces
// denied-unauthenticated, and the session is logged out first as an
// idempotent safety net. That logout is what keeps a stored token the
// decoder chokes on from becoming a trap: without it the session would
// read as authenticated forever while every role check fails. A guard
// that fails open is a guard that does not exist.
//
// # What this package must NOT do
//
// The guard never performs network login flows and never writes tokens;
// its only session mutation is the logout on denial. Role fetching
// belongs to whatever RoleSource the caller wires in.
package guard
