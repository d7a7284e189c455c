package secrets

import (
	"context"
	"errors"
	"fmt"
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ChainStore reads from primary and falls back to fallback for secrets the
// primary does not have. Writes go to primary, deletes go to both.
type ChainStore struct {
	primary  Store
	fallback Store
}

func NewChainStore(primary, fallback Store) (*ChainStore, error) {
	if primary == nil {
		return nil, errors.New("primary secret store is nil")
	}
	if fallback == nil {
		return nil, errors.New("fallback secret store is nil")
	}
	return &ChainStore{primary: primary, fallback: fallback}, nil
}

func (s *ChainStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	return s.fallback.Get(ctx, key)
}

func (s *ChainStore) Put(ctx context.Context, key, value string) error {
	return s.primary.Put(ctx, key, value)
}

func (s *ChainStore) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	fallbackErr := s.fallback.Delete(ctx, key)
	if fallbackErr != nil &&
		!errors.Is(fallbackErr, ErrNotFound) &&
		!errors.Is(fallbackErr, ErrReadOnly) {
		return fmt.Errorf("fallback delete: %w", fallbackErr)
	}
	return nil
}
