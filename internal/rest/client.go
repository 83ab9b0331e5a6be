package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StatusError reports a non-2xx backend response. The Manager classifies
// these by code; the body is carried for boundary-layer diagnostics.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// TokenPair is the credential-endpoint response shape.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Profile is the authenticated-user shape returned by GET /users/me,
// used by the server-backed role source.
type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type forgotPasswordRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Client is the thin HTTP client for the Kairos authentication endpoints.
// It performs no retries and no session mutation; it only shapes requests
// and classifies transport outcomes into [StatusError] values.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
}

func New(baseURL string, httpClient *http.Client, userAgent string) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q missing scheme or host", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: base, http: httpClient, userAgent: userAgent}, nil
}

func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{
		UsernameOrEmail: usernameOrEmail,
		Password:        password,
	}, &pair)
	return pair, err
}

func (c *Client) Register(ctx context.Context, firstName, lastName, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", registerRequest{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Email:     email,
		Password:  password,
	}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, usernameOrEmail string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", "", forgotPasswordRequest{
		UsernameOrEmail: usernameOrEmail,
	}, nil)
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/refresh", "", refreshRequest{
		RefreshToken: refreshToken,
	}, &pair)
	return pair, err
}

func (c *Client) CurrentUser(ctx context.Context, accessToken string) (Profile, error) {
	var profile Profile
	err := c.do(ctx, http.MethodGet, "/users/me", accessToken, nil, &profile)
	return profile, err
}

func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read a bounded amount so error bodies stay cheap.
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
