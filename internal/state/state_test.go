package state

import (
	"context"
	"path/filepath"
	"testing"

	"lazycf/internal/components/telemetry"
	configlibsql "lazycf/lib/configutil/libsql"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *Store {
	db, err := configlibsql.Config{File: path}.OpenDB()
	require.NoError(t, err)
	store, err := Open(context.Background(), db, telemetry.NewRecorder())
	require.NoError(t, err)
	return store
}

func TestGetUpdate(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	defer store.Close()

	_, found, err := store.Get(ctx, "cf_cookies")
	require.NoError(t, err)
	require.False(t, found)

	cookies := []string{"JSESSIONID=abc; Path=/", "39ce7=def; Path=/"}
	require.NoError(t, store.Update(ctx, "cf_cookies", cookies))
	value, found, err := store.Get(ctx, "cf_cookies")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, cookies, value)

	require.NoError(t, store.Update(ctx, "cf_cookies", []string{}))
	value, found, err = store.Get(ctx, "cf_cookies")
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, value)

	require.NoError(t, store.Update(ctx, "cf_cookies", nil))
	_, found, err = store.Get(ctx, "cf_cookies")
	require.NoError(t, err)
	require.False(t, found)
}

func TestPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	store := openTestStore(t, path)
	require.NoError(t, store.Update(ctx, "cf_cookies", []string{"a=1"}))
	require.NoError(t, store.Close())

	reopened := openTestStore(t, path)
	defer reopened.Close()
	value, found, err := reopened.Get(ctx, "cf_cookies")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"a=1"}, value)
}
