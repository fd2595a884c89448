// Package cli contains the command line interface for dots.
//
// # Usage
//
// Every command reads a YAML manifest describing environments and the
// arguments of a call, given with --manifest (or '-' for stdin):
//
//	dots -m call.yaml unpack --format=json
//	dots -m call.yaml rewrite expr 'x * 2' 'y'
//	dots -m call.yaml force 1 --record=calls.db
//	dots history calls.db 3
//
// The unpack command is the default when no command is named.
//
// # Configuration
//
// Flag defaults are read, in order, from environment variables named after
// the executable (e.g. DOTS_LOG_LEVEL), then from config.json and config.toml
// in the user configuration directory. The init command writes the current
// flag values to config.toml:
//
//	dots --log-level=debug init
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/dots/pprof)
package cli
