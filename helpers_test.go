package authkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signedToken builds a real HS256 token shaped like the backend's: sub,
// exp, and the authorities claim.
func signedToken(t *testing.T, subject string, expiresAt time.Time, roles ...string) string {
	t.Helper()

	payload := jwt.MapClaims{"sub": subject}
	if !expiresAt.IsZero() {
		payload["exp"] = expiresAt.Unix()
	}
	if len(roles) > 0 {
		authorities := make([]map[string]string, 0, len(roles))
		for _, r := range roles {
			authorities = append(authorities, map[string]string{"authority": r})
		}
		payload["authorities"] = authorities
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// newTestManager builds a Manager against an httptest backend with
// latency histograms on and a synchronous-enough audit channel.
func newTestManager(t *testing.T, handler http.Handler) (*Manager, *ChannelSink) {
	t.Helper()

	server := newServer(t, handler)

	sink := NewChannelSink(64)
	manager, err := New().
		WithConfig(Config{API: APIConfig{BaseURL: server.URL}}).
		WithLatencyHistograms(true).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(manager.Close)

	return manager, sink
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}
}

// tokenHandler serves a login/refresh-shaped endpoint returning the given
// pair for any request.
func tokenHandler(t *testing.T, accessToken, refreshToken string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{
			"token":        accessToken,
			"refreshToken": refreshToken,
		})
	})
}

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

// waitForAudit drains the sink until an event of the wanted type shows up
// or the deadline hits. The dispatcher is async, so tests poll.
func waitForAudit(t *testing.T, sink *ChannelSink, eventType string) AuditEvent {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-sink.Events():
			if event.EventType == eventType {
				return event
			}
		case <-deadline:
			t.Fatalf("no %q audit event observed", eventType)
		}
	}
}
