package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/gigpulse/internal/adapters/credentials/file"
	passstore "github.com/bnema/gigpulse/internal/adapters/credentials/pass"
	"github.com/bnema/gigpulse/internal/ports"
)

// Store tries primary first and uses fallback whenever primary fails for a
// reason other than the caller giving up.
type Store struct {
	primary  ports.CredentialStore
	fallback ports.CredentialStore
}

var _ ports.CredentialStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary credential store is nil")
	errNilFallbackStore = errors.New("fallback credential store is nil")
)

func NewStore(primary ports.CredentialStore, fallback ports.CredentialStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.CredentialStore, fallback ports.CredentialStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewPassFirstWithFileFallback keeps credentials in pass when it is
// installed and in files below fileRoot otherwise.
func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	err := s.primary.Put(ctx, ref, value)
	if err == nil {
		return nil
	}
	if callerGaveUp(err) {
		return err
	}

	if fallbackErr := s.fallback.Put(ctx, ref, value); fallbackErr != nil {
		return fmt.Errorf("primary credential put failed: %w; fallback credential put failed: %w", err, fallbackErr)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	value, err := s.primary.Get(ctx, ref)
	if err == nil {
		return value, nil
	}
	if callerGaveUp(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, ref)
	if fallbackErr != nil {
		return "", fmt.Errorf("primary credential get failed: %w; fallback credential get failed: %w", err, fallbackErr)
	}
	return fallbackValue, nil
}

// Delete removes ref from both backends so a stale copy cannot resurface.
func (s *Store) Delete(ctx context.Context, ref string) error {
	primaryErr := s.primary.Delete(ctx, ref)
	if callerGaveUp(primaryErr) {
		return primaryErr
	}
	fallbackErr := s.fallback.Delete(ctx, ref)

	if primaryErr != nil && fallbackErr != nil {
		return fmt.Errorf("primary credential delete failed: %w; fallback credential delete failed: %w", primaryErr, fallbackErr)
	}
	return nil
}

func callerGaveUp(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
