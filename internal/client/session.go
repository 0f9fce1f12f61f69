package client

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// tokenFile persists the bearer token between invocations.
type tokenFile struct {
	path string
}

// Load returns the stored token. A missing file yields an empty token.
func (f tokenFile) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes token readable by the owner only.
func (f tokenFile) Save(token string) error {
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (f tokenFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
