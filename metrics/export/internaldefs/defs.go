package internaldefs

import (
	authkit "github.com/kairos-events/authkit"
)

// CounterDef binds a core metric ID to its exported name and help text.
type CounterDef struct {
	ID   authkit.MetricID
	Name string
	Help string
}

// HistogramDef binds a core histogram ID to its exported name and help
// text.
type HistogramDef struct {
	ID   authkit.MetricID
	Name string
	Help string
}

// CounterDefs is the single source of truth for exported counter names.
// Both exporters iterate it, so adding a metric here surfaces it
// everywhere.
var CounterDefs = []CounterDef{
	{ID: authkit.MetricLoginSuccess, Name: "authkit_login_success_total", Help: "Successful credential logins."},
	{ID: authkit.MetricLoginFailure, Name: "authkit_login_failure_total", Help: "Logins rejected for bad credentials."},
	{ID: authkit.MetricLoginUnavailable, Name: "authkit_login_unavailable_total", Help: "Logins that failed because the server was unreachable."},
	{ID: authkit.MetricProviderLoginStarted, Name: "authkit_provider_login_started_total", Help: "Provider login flows started."},
	{ID: authkit.MetricProviderLoginSuccess, Name: "authkit_provider_login_success_total", Help: "Provider callbacks that established a session."},
	{ID: authkit.MetricProviderLoginIncomplete, Name: "authkit_provider_login_incomplete_total", Help: "Provider callbacks missing token material."},
	{ID: authkit.MetricRefreshSuccess, Name: "authkit_refresh_success_total", Help: "Successful token refreshes."},
	{ID: authkit.MetricRefreshRejected, Name: "authkit_refresh_rejected_total", Help: "Refreshes rejected by the server."},
	{ID: authkit.MetricRefreshUnavailable, Name: "authkit_refresh_unavailable_total", Help: "Refreshes that failed because the server was unreachable."},
	{ID: authkit.MetricRegisterSuccess, Name: "authkit_register_success_total", Help: "Successful account registrations."},
	{ID: authkit.MetricRegisterFailure, Name: "authkit_register_failure_total", Help: "Registrations rejected by the server."},
	{ID: authkit.MetricPasswordResetRequest, Name: "authkit_password_reset_request_total", Help: "Password reset requests accepted."},
	{ID: authkit.MetricPasswordResetFailure, Name: "authkit_password_reset_failure_total", Help: "Password reset requests rejected."},
	{ID: authkit.MetricLogout, Name: "authkit_logout_total", Help: "Logout operations."},
	{ID: authkit.MetricSessionExpired, Name: "authkit_session_expired_total", Help: "Sessions cleared after local expiry."},
	{ID: authkit.MetricDecodeFailure, Name: "authkit_decode_failure_total", Help: "Access tokens that could not be decoded."},
	{ID: authkit.MetricGuardAllowed, Name: "authkit_guard_allowed_total", Help: "Guard checks that allowed navigation."},
	{ID: authkit.MetricGuardDeniedUnauthenticated, Name: "authkit_guard_denied_unauthenticated_total", Help: "Guard checks denied for missing authentication."},
	{ID: authkit.MetricGuardDeniedForbidden, Name: "authkit_guard_denied_forbidden_total", Help: "Guard checks denied for missing roles."},
	{ID: authkit.MetricInterceptUnauthorized, Name: "authkit_intercept_unauthorized_total", Help: "Intercepted 401 responses."},
	{ID: authkit.MetricInterceptForbidden, Name: "authkit_intercept_forbidden_total", Help: "Intercepted 403 responses."},
	{ID: authkit.MetricInterceptNotFound, Name: "authkit_intercept_not_found_total", Help: "Intercepted 404 responses."},
}

// HistogramDefs lists exported histograms. Only login latency carries one
// today.
var HistogramDefs = []HistogramDef{
	{ID: authkit.MetricLoginLatency, Name: "authkit_login_latency_ms", Help: "Login round-trip latency histogram, milliseconds."},
}

// HistogramBounds are the upper bounds of the core histogram buckets, in
// milliseconds, as Prometheus `le` label values.
var HistogramBounds = []string{
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"500",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds with characters legal in
// OpenTelemetry instrument names.
var HistogramBoundSuffix = []string{
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"500",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed core
// width so exporters can index it without bounds checks.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// both Prometheus and the OTel gauges expose.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
