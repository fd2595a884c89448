// Package profile runs optional pprof profiling around a dots command.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	dots --pprof-mode cpu unpack -m call.yaml
//	go tool pprof -http=: "$XDG_CACHE_HOME/dots/pprof/cpu.pprof"
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op [Stopper]. Builds with the tag also register the net/http/pprof
// handlers on the default mux.
package profile
