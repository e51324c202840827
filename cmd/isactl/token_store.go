package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".isactl-token"
	}
	return filepath.Join(dir, "isactl", "token")
}

// tokenStore keeps the access token of the last login in a private file.
type tokenStore struct {
	path string
}

func newTokenStore(path string) tokenStore {
	return tokenStore{path: path}
}

// Load returns the saved token, or "" when nobody is logged in.
func (s tokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s tokenStore) Save(token string) error {
	if token == "" {
		return s.Clear()
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s tokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
