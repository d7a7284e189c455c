package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl   string `json:"base_url"`
	RateLimit int    `json:"rate_limit"`
	Verbose   bool   `json:"verbose"`
}

func TestReadConfigMergesLocalOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lazycf.json5"), []byte(`{
		// comments are allowed
		base_url: "https://codeforces.com",
		rate_limit: 2,
	}`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lazycf.local.json5"), []byte(`{
		base_url: "http://localhost:8080",
	}`), 0600))

	config, err := ReadConfig(filepath.Join(dir, "lazycf.json5"), testConfig{RateLimit: 5, Verbose: true})
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl:   "http://localhost:8080",
		RateLimit: 2,
		Verbose:   true,
	}, config)
}

func TestReadConfigMissing(t *testing.T) {
	defaults := testConfig{BaseUrl: "https://codeforces.com"}
	config, err := ReadConfig(filepath.Join(t.TempDir(), "lazycf.json5"), defaults)
	require.True(t, os.IsNotExist(err))
	require.Equal(t, defaults, config)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lazycf.json5"), []byte(`{ base_url: `), 0600))
	_, err := ReadConfig(filepath.Join(dir, "lazycf.json5"), testConfig{})
	require.Error(t, err)
	require.False(t, os.IsNotExist(err))
}
