package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "secrets")
	store := NewFileStore(root)

	_, err := store.Get(ctx, "cf_handle")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "cf_handle", "tourist"))
	value, err := store.Get(ctx, "cf_handle")
	require.NoError(t, err)
	require.Equal(t, "tourist", value)

	info, err := os.Stat(filepath.Join(root, "cf_handle"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	dirInfo, err := os.Stat(root)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	require.NoError(t, store.Delete(ctx, "cf_handle"))
	require.NoError(t, store.Delete(ctx, "cf_handle"))
	_, err = store.Get(ctx, "cf_handle")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRejectsKeys(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())
	for _, key := range []string{"", " ", "../escape", "/etc/passwd", "nested/key", "."} {
		require.Error(t, store.Put(ctx, key, "v"), key)
	}
}

func TestFileStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileStore(t.TempDir()).Get(ctx, "cf_handle")
	require.ErrorIs(t, err, context.Canceled)
}

func TestEnvStore(t *testing.T) {
	ctx := context.Background()
	store := NewEnvStore(map[string]string{"cf_handle": "LAZYCF_HANDLE"})
	store.lookup = func(name string) (string, bool) {
		if name == "LAZYCF_HANDLE" {
			return "tourist", true
		}
		return "", false
	}

	value, err := store.Get(ctx, "cf_handle")
	require.NoError(t, err)
	require.Equal(t, "tourist", value)

	_, err = store.Get(ctx, "cf_password")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, store.Put(ctx, "cf_handle", "x"), ErrReadOnly)
	require.ErrorIs(t, store.Delete(ctx, "cf_handle"), ErrReadOnly)
}

func TestChainStore(t *testing.T) {
	ctx := context.Background()
	primary := NewMemoryStore()
	env := NewEnvStore(map[string]string{"cf_handle": "LAZYCF_HANDLE"})
	env.lookup = func(string) (string, bool) { return "from-env", true }

	store, err := NewChainStore(primary, env)
	require.NoError(t, err)

	value, err := store.Get(ctx, "cf_handle")
	require.NoError(t, err)
	require.Equal(t, "from-env", value)

	require.NoError(t, store.Put(ctx, "cf_handle", "from-file"))
	value, err = store.Get(ctx, "cf_handle")
	require.NoError(t, err)
	require.Equal(t, "from-file", value)

	require.NoError(t, store.Delete(ctx, "cf_handle"))
	_, err = primary.Get(ctx, "cf_handle")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "cf_password")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = NewChainStore(nil, env)
	require.Error(t, err)
}
