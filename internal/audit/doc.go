// Package audit implements the asynchronous audit pipeline used by the
// authkit Manager in place of ambient logging: session-state transitions are
// emitted as structured events and forwarded to a configurable sink.
//
// # Architecture boundaries
//
// This package owns the event model, the sink implementations, and the
// buffered dispatcher. The root authkit package re-exports the public types;
// nothing here imports authkit or any sibling package.
package audit
