// Package cmd implements the dots subcommands. Each command loads the
// manifest named by [WithManifest], runs one lazy argument list operation,
// and writes the result to the writer named by [WithOutput].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the TOML configuration file.
	ConfigIdentifier = "config"
)
