// Package rest shapes requests against the Kairos authentication endpoints
// and classifies their outcomes. It owns no session state: the authkit
// Manager decides what a failed call means for the stored tokens.
package rest
