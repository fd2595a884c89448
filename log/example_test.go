package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/dots/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelTrace))

	logger.Trace("unpack", slog.Int("rows", 2))
	logger.With(slog.String("op", "force")).Info("done")

	// Output:
	// {"level":"TRACE","msg":"unpack","rows":2}
	// {"level":"INFO","msg":"done","op":"force"}
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept", slog.String("key", "value"))

	// Output:
	// level=WARN msg=kept key=value
}
