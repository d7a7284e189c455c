package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

func readInto[T any](path string, out *T) (found bool, err error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	var parsed T
	err = json5.Unmarshal(contents, &parsed)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	err = mergo.Merge(out, parsed, mergo.WithOverride)
	if err != nil {
		return false, fmt.Errorf("merge %s: %w", path, err)
	}
	return true, nil
}

// ReadConfig reads a json5 configuration file on top of defaults. `name`
// should come with a file extension, it is lopped off to produce the name of
// the local override file. Files merged later take priority:
//
// 1. defaults
// 2. <name>.<ext>
// 3. <name>.local.<ext>
//
// Zero values in a file never override a value set earlier. If neither file
// exists, defaults are returned with an error satisfying os.IsNotExist.
func ReadConfig[T any](name string, defaults T) (T, error) {
	out := defaults

	dirname := filepath.Dir(name)
	prefixname, ext := splitExt(filepath.Base(name))

	foundDefault, err := readInto(name, &out)
	if err != nil {
		return defaults, err
	}

	localFilepath := filepath.Join(
		dirname,
		fmt.Sprintf("%s.local.%s", prefixname, ext),
	)
	foundLocal, err := readInto(localFilepath, &out)
	if err != nil {
		return defaults, err
	}
	if foundLocal {
		slog.Debug("merging config with local overrides", "local", localFilepath)
	}

	if !foundDefault && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig but it walks up from the working directory
// until the filesystem root to find a configuration file matching the name.
func ReadRecursively[T any](name string, defaults T) (T, error) {
	current, err := os.Getwd()
	if err != nil {
		return defaults, err
	}

	for {
		config, err := ReadConfig(filepath.Join(current, name), defaults)
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return defaults, err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return defaults, os.ErrNotExist
		}
		current = parent
	}
}
