package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const notInStoreMarker = "is not in the password store"

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store reads and writes credentials through the pass(1) password manager.
type Store struct {
	run runFunc
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPass}
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, strings.TrimSpace(value)+"\n", "insert", "--multiline", "--force", ref)
	if err != nil {
		return wrapError("put", ref, err, stderr)
	}

	return nil
}

// Get returns the first line of the entry; pass entries often carry notes below it.
func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", ref)
	if err != nil {
		return "", wrapError("get", ref, err, stderr)
	}

	first, _, _ := strings.Cut(stdout, "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return "", fmt.Errorf("pass get %q: %w", ref, domain.ErrCredentialNotFound)
	}

	return first, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "--force", ref)
	if err != nil && !strings.Contains(stderr, notInStoreMarker) {
		return wrapError("delete", ref, err, stderr)
	}

	return nil
}

func runPass(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func wrapError(op string, ref string, err error, stderr string) error {
	if strings.Contains(stderr, notInStoreMarker) {
		return fmt.Errorf("pass %s %q: %w", op, ref, domain.ErrCredentialNotFound)
	}
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, ref, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, ref, err, stderr)
}
