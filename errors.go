package authkit

import "errors"

var (
	// ErrInvalidCredentials is returned by Login when the backend rejects the
	// username/password pair (HTTP 400 or 401 at the credential endpoint).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrServerUnavailable classifies transient backend failures: network
	// errors and any status outside the invalid-credential range. Callers may
	// retry; the Manager never does.
	ErrServerUnavailable = errors.New("authentication server unavailable")
	// ErrNoSession is returned by queries that need a stored access token
	// when the store is empty.
	ErrNoSession = errors.New("no active session")
	// ErrTokenDecode wraps claims decode failures surfaced through Manager
	// queries.
	ErrTokenDecode = errors.New("token decode failed")
	// ErrAuthFlowIncomplete is returned by CompleteProviderLogin when the
	// callback is missing the token or refreshToken parameter. The stored
	// session is left untouched.
	ErrAuthFlowIncomplete = errors.New("provider login flow incomplete")
	// ErrRegistrationInvalid is returned by Register when the backend
	// rejects the submitted fields (HTTP 400).
	ErrRegistrationInvalid = errors.New("invalid registration fields")
	// ErrPasswordResetInvalid is returned by ForgotPassword when the backend
	// rejects the identifier (HTTP 400).
	ErrPasswordResetInvalid = errors.New("invalid password reset request")
	// ErrRefreshRejected is returned by Refresh when the backend refuses the
	// stored refresh token. The local session is cleared as a side effect.
	ErrRefreshRejected = errors.New("refresh token rejected")
	// ErrProviderUnknown is returned when a provider name has no entry in
	// [OAuthConfig.Providers].
	ErrProviderUnknown = errors.New("unknown login provider")
	// ErrManagerNotReady guards calls on a nil or unbuilt Manager.
	ErrManagerNotReady = errors.New("manager not initialized")
)
