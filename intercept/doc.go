// Package intercept wires session failure handling into outgoing HTTP
// traffic. Its Transport is a drop-in http.RoundTripper: it attaches the
// bearer token to each request and watches responses for the three status
// codes that demand a navigation side effect.
//
// # Status handling
//
//   - 401 Unauthorized: the session is dead server-side. Local session
//     state is cleared and the navigator is sent to the login route.
//   - 403 Forbidden: the session stays; the navigator goes to the
//     forbidden route.
//   - 404 Not Found: the navigator goes to the not-found route.
//
// The response is always handed back to the caller untouched, error
// statuses included. Side effects ride alongside the response, they never
// replace it, so callers keep full access to status and body for their
// own error handling.
//
// # What this package must NOT do
//
// The transport never retries, never refreshes tokens, and never buffers
// response bodies. Refresh is an explicit authkit.Manager operation.
package intercept
