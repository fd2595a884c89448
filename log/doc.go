// Package log wraps [log/slog] with a small, value-typed [Logger] used
// throughout dots.
//
// A Logger is configured once with functional options and is safe for
// concurrent use. The zero Logger discards everything, so packages can hold
// one without checking whether the caller supplied it.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText))
//
//	logger.Trace("unpack", slog.Int("rows", 3))
//
// Besides the four [slog] levels the package defines [LevelTrace], used for
// per-operation records in the lazy and host packages.
//
// Context-unaware methods call their context-aware counterparts with the
// context returned by [DefaultContextProvider].
//
// The package-level functions ([Info], [Trace], ...) write through a default
// logger that [Config] reconfigures. The CLI calls Config once after parsing
// flags.
package log
