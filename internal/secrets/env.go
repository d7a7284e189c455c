package secrets

import (
	"context"
	"fmt"
	"os"
)

// EnvStore reads secrets from environment variables, it cannot store them.
type EnvStore struct {
	vars   map[string]string
	lookup func(string) (string, bool)
}

// NewEnvStore maps secret keys to environment variable names.
func NewEnvStore(vars map[string]string) EnvStore {
	return EnvStore{vars: vars, lookup: os.LookupEnv}
}

func (s EnvStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, ok := s.vars[key]
	if !ok {
		return "", fmt.Errorf("secret %q: %w", key, ErrNotFound)
	}
	value, ok := s.lookup(name)
	if !ok || value == "" {
		return "", fmt.Errorf("secret %q: %w", key, ErrNotFound)
	}
	return value, nil
}

func (s EnvStore) Put(ctx context.Context, key, value string) error {
	return fmt.Errorf("store %q: %w", key, ErrReadOnly)
}

func (s EnvStore) Delete(ctx context.Context, key string) error {
	return fmt.Errorf("delete %q: %w", key, ErrReadOnly)
}
