package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore persists the triplet as a single JSON document. The whole
// document is rewritten on every Save via a temp file and rename, so a
// reader never observes a torn triplet even if the process dies mid-write.
type FileStore struct {
	path string
}

type fileDocument struct {
	AccessToken  string `json:"auth_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenExpiry  string `json:"auth_token_expiry,omitempty"`
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("token file path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create token directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(_ context.Context, tokens Tokens) error {
	doc := fileDocument{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	if !tokens.ExpiresAt.IsZero() {
		doc.TokenExpiry = tokens.ExpiresAt.UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write token file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func (s *FileStore) Read(_ context.Context) (Tokens, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Tokens{}, nil
	}
	if err != nil {
		return Tokens{}, fmt.Errorf("read token file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Tokens{}, fmt.Errorf("decode token file: %w", err)
	}

	tokens := Tokens{
		AccessToken:  doc.AccessToken,
		RefreshToken: doc.RefreshToken,
	}
	if doc.TokenExpiry != "" {
		expiry, err := time.Parse(time.RFC3339, doc.TokenExpiry)
		if err != nil {
			return Tokens{}, fmt.Errorf("decode token expiry: %w", err)
		}
		tokens.ExpiresAt = expiry
	}
	return tokens, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear token file: %w", err)
	}
	return nil
}
