package claims

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrEmptyToken is returned when the token string is empty or blank.
	ErrEmptyToken = errors.New("empty token")
	// ErrMalformedToken is returned when the token is not three dot-separated
	// segments or its payload segment cannot be parsed.
	ErrMalformedToken = errors.New("malformed token")
)

// Authority is a single granted role as the backend encodes it in the
// access-token payload, e.g. {"authority": "ROLE_ADMIN"}.
type Authority struct {
	Authority string `json:"authority"`
}

// Claims is the advisory view of an access-token payload: subject,
// granted authorities, and the expiry/issue timestamps. Zero timestamps
// mean the corresponding claim was absent.
type Claims struct {
	Subject     string
	Authorities []Authority
	ExpiresAt   time.Time
	IssuedAt    time.Time
}

type tokenPayload struct {
	Authorities []Authority `json:"authorities"`
	jwt.RegisteredClaims
}

// Decode splits token into its structural parts, base64url-decodes the
// payload segment, and parses it into [Claims]. The signature segment is
// ignored: decoding is advisory only, used for UX and client-side
// authorization hints, never for trust establishment.
//
// Decode is pure and deterministic. Malformed input returns an error
// wrapping [ErrEmptyToken] or [ErrMalformedToken]; it never panics.
func Decode(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrEmptyToken
	}

	payload := &tokenPayload{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	decoded := &Claims{
		Subject:     payload.Subject,
		Authorities: payload.Authorities,
	}
	if payload.ExpiresAt != nil {
		decoded.ExpiresAt = payload.ExpiresAt.Time
	}
	if payload.IssuedAt != nil {
		decoded.IssuedAt = payload.IssuedAt.Time
	}

	return decoded, nil
}

// PrimaryRole returns the first authority, which the backend orders as the
// user's primary role. Empty string when the claims carry no authorities.
func PrimaryRole(c *Claims) string {
	if c == nil || len(c.Authorities) == 0 {
		return ""
	}
	return c.Authorities[0].Authority
}
