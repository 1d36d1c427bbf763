package ports

import "context"

// CredentialStore keeps provider API keys under a reference such as
// "gigpulse/openai".
type CredentialStore interface {
	Put(ctx context.Context, ref string, value string) error
	Get(ctx context.Context, ref string) (string, error)
	Delete(ctx context.Context, ref string) error
}
