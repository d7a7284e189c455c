package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"lazycf/internal/components/assert"
)

const (
	storeDirMode   = 0o700
	secretFileMode = 0o600
)

// FileStore keeps every secret in its own file, readable only by the user.
type FileStore struct {
	root string
	mu   sync.RWMutex
}

func NewFileStore(root string) *FileStore {
	assert.NotEmptyStr(root, "root")
	return &FileStore{root: filepath.Clean(root)}
}

func (s *FileStore) Put(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.MkdirAll(s.root, storeDirMode)
	if err != nil {
		return fmt.Errorf("create secret directory: %w", err)
	}
	err = os.WriteFile(path, []byte(value), secretFileMode)
	if err != nil {
		return fmt.Errorf("write secret %q: %w", key, err)
	}
	// WriteFile keeps the mode of a file that already existed
	return os.Chmod(path, secretFileMode)
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("secret %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read secret %q: %w", key, err)
	}
	return string(data), nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete secret %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}
	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) ||
		strings.HasPrefix(cleaned, "..") ||
		strings.ContainsRune(cleaned, filepath.Separator) ||
		cleaned == "." {
		return "", fmt.Errorf("invalid secret key %q", key)
	}
	return filepath.Join(s.root, cleaned), nil
}
