package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/dots/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

var defaultDirMode os.FileMode = 0o700

// basePrefix is the base name of the executable with its extension removed.
// It names the configuration and cache subdirectories and prefixes
// environment variables. A dlv debug binary (__debug_binNNN) is renamed to
// [pkg.Name], and leading dots are dropped.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		if debugBin.MatchString(id) {
			return pkg.Name
		}

		if id = strings.TrimLeft(id, "."); id == "" {
			return pkg.Name
		}

		return id
	},
)

var (
	debugBin = regexp.MustCompile(`^__debug_bin\d*$`)
	nonIdent = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// envPrefix returns the prefix of environment variables that supply default
// flag values, e.g. DOTS_LOG_LEVEL for --log-level.
func envPrefix() string {
	return strings.ToUpper(nonIdent.ReplaceAllString(basePrefix(), "_")) + "_"
}

// userDir joins basePrefix to the directory returned by root. If root fails,
// it falls back to hidden below the home directory, then to the working
// directory.
func userDir(root func() (string, error), hidden string) string {
	dir, err := root()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, basePrefix())
}

var (
	configDir = sync.OnceValue(func() string { return userDir(os.UserConfigDir, ".config") })
	cacheDir  = sync.OnceValue(func() string { return userDir(os.UserCacheDir, ".cache") })
)

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
