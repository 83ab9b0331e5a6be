// Package tokenstore persists the client session triplet: access token,
// refresh token, and expiry timestamp.
//
// Three backends are provided. [MemoryStore] is process-local,
// [FileStore] keeps a single JSON document on disk (the browser
// localstorage analog), and [RedisStore] keeps one hash in Redis for
// deployments that share session state with sidecar tooling.
//
// The authkit Manager is the single writer of a Store; guards,
// interceptors, and UI code only read, and only through Manager queries.
package tokenstore
