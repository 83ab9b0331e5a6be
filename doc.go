// Package authkit is the client-side authentication and session core for the
// Kairos event-ticketing platform. It owns token acquisition and storage,
// token expiry tracking, claims decoding, role-based authorization decisions,
// and the navigation/HTTP failure reactions that keep a client's session
// state consistent with the backend.
//
// The package is a thin client over the Kairos REST API: credential login,
// registration, password recovery, token refresh, and third-party provider
// login all translate into single backend calls with classified results.
//
// # Architecture boundaries
//
// authkit is the public surface. It exposes [Manager], [Builder], [Config],
// and value types (LoginResult, Registration, MetricsSnapshot). Storage
// backends live in tokenstore/, advisory token decoding in claims/, the
// navigation guard in guard/, and the HTTP failure interceptor in
// intercept/. Audit dispatch lives under internal/ and is re-exported here.
//
// The Manager is the sole writer of the token store. Guards, interceptors,
// and UI code read session state exclusively through Manager queries.
//
// # What this package must NOT do
//
//   - Verify token signatures. Decoding is advisory, for UX-level decisions
//     only; authorization is enforced by the backend on every request.
//   - Retry failed backend calls. Failures are classified and returned;
//     retry policy belongs to the caller.
//   - Log. Structured outcomes are reported through [AuditSink] and the
//     classified errors in errors.go; the boundary layer decides what to log.
package authkit
