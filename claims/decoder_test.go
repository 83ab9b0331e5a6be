package claims

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, payload jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeFullPayload(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token := signedToken(t, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
		"authorities": []map[string]string{
			{"authority": "ROLE_USER"},
			{"authority": "ROLE_ORGANIZER"},
		},
	})

	decoded, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Subject != "alice" {
		t.Fatalf("expected subject alice, got %q", decoded.Subject)
	}
	if len(decoded.Authorities) != 2 || decoded.Authorities[0].Authority != "ROLE_USER" {
		t.Fatalf("unexpected authorities: %+v", decoded.Authorities)
	}
	if decoded.ExpiresAt.Unix() != exp.Unix() {
		t.Fatalf("expected expiry %v, got %v", exp.Unix(), decoded.ExpiresAt.Unix())
	}
	if PrimaryRole(decoded) != "ROLE_USER" {
		t.Fatalf("expected primary role ROLE_USER, got %q", PrimaryRole(decoded))
	}
}

func TestDecodeMissingExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "bob"})

	decoded, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !decoded.ExpiresAt.IsZero() {
		t.Fatalf("expected zero expiry, got %v", decoded.ExpiresAt)
	}
	if PrimaryRole(decoded) != "" {
		t.Fatalf("expected no primary role, got %q", PrimaryRole(decoded))
	}
}

func TestDecodeDeterministic(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":         "carol",
		"authorities": []map[string]string{{"authority": "ROLE_ADMIN"}},
	})

	first, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	second, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if first.Subject != second.Subject || PrimaryRole(first) != PrimaryRole(second) {
		t.Fatal("decode is not deterministic")
	}
}

func TestDecodeFailures(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrEmptyToken},
		{"blank", "   ", ErrEmptyToken},
		{"one segment", "abcdef", ErrMalformedToken},
		{"two segments", "abc.def", ErrMalformedToken},
		{"bad payload base64", "eyJhbGciOiJIUzI1NiJ9.!!!.sig", ErrMalformedToken},
		{"payload not json", "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.sig", ErrMalformedToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := Decode(tc.token)
			if decoded != nil {
				t.Fatalf("expected nil claims, got %+v", decoded)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
