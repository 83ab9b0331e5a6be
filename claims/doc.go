// Package claims decodes Kairos access tokens into structured claims
// without verifying the signature.
//
// Verification is the issuer's responsibility; the client trusts
// transport-layer TLS and the backend at token-minting time. Decoded
// authorities drive UX-level decisions only; the backend re-checks
// authorization on every request.
//
// # What this package must NOT do
//
//   - Validate signatures, issuer, or audience.
//   - Perform I/O. Decode is a pure function of its input.
package claims
