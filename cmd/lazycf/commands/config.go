package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lazycf/internal/scrapers/codeforces"
	"lazycf/lib/configutil"
	configlibsql "lazycf/lib/configutil/libsql"
	libtelemetry "lazycf/lib/telemetry"
)

const configName = "lazycf.json5"

type Config struct {
	BaseUrl         string `json:"base_url"`
	DefaultLanguage string `json:"default_language"`
	// StateDb is either a local sqlite file or a remote libsql database.
	StateDb             configlibsql.Config `json:"state_db"`
	SecretsDir          string              `json:"secrets_dir"`
	RateLimit           float64             `json:"rate_limit"`
	VerdictDelaySeconds int                 `json:"verdict_delay_seconds"`
	// nil means on, a config file could not turn a default of true off
	ShowNotifications *bool               `json:"show_notifications"`
	Telemetry         libtelemetry.Config `json:"telemetry"`
}

func (c Config) notifications() bool {
	return c.ShowNotifications == nil || *c.ShowNotifications
}

func (c Config) verdictDelay() time.Duration {
	return time.Duration(c.VerdictDelaySeconds) * time.Second
}

func userDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".lazycf"
	}
	return filepath.Join(dir, "lazycf")
}

func defaultConfig(dataDir string) Config {
	return Config{
		BaseUrl:         codeforces.DefaultBaseUrl,
		DefaultLanguage: codeforces.LanguageCpp17,
		StateDb: configlibsql.Config{
			File: filepath.Join(dataDir, "state.db"),
		},
		SecretsDir:          filepath.Join(dataDir, "secrets"),
		RateLimit:           2,
		VerdictDelaySeconds: 5,
	}
}

// loadConfig reads an explicitly given config file, or else the first
// lazycf.json5 found walking up from the working directory, or else the one
// in the user config directory. Without any of them the defaults are used.
func loadConfig(explicit, dataDir string) (Config, error) {
	defaults := defaultConfig(dataDir)

	if explicit != "" {
		config, err := configutil.ReadConfig(explicit, defaults)
		if err != nil {
			return defaults, fmt.Errorf("read config %s: %w", explicit, err)
		}
		return config, nil
	}

	config, err := configutil.ReadRecursively(configName, defaults)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return defaults, fmt.Errorf("read config: %w", err)
	}

	config, err = configutil.ReadConfig(filepath.Join(dataDir, configName), defaults)
	if errors.Is(err, os.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return defaults, fmt.Errorf("read config: %w", err)
	}
	return config, nil
}
