package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const (
	credentialDirMode  = 0o700
	credentialFileMode = 0o600
)

// Store keeps one credential per file below root, e.g.
// ~/.gigpulse/credentials/gigpulse/openai.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), credentialDirMode); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(value)+"\n"), credentialFileMode); err != nil {
		return fmt.Errorf("write credential %q: %w", ref, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathFor(ref)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("credential %q: %w", ref, domain.ErrCredentialNotFound)
		}
		return "", fmt.Errorf("read credential %q: %w", ref, err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("credential %q is empty: %w", ref, domain.ErrCredentialNotFound)
	}
	return value, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credential %q: %w", ref, err)
	}

	return nil
}

func (s *Store) pathFor(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", errors.New("credential ref is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid credential ref %q", ref)
	}

	return filepath.Join(s.root, cleaned), nil
}
