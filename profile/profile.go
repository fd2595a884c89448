package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`

// Stopper stops a running profile and flushes it to disk.
type Stopper interface{ Stop() }

// Profiler selects a profiling mode and where its output goes.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Dir   string // output directory; empty uses the working directory
	Quiet bool   // suppress the profiler's own log lines
}

// Start begins profiling. The returned Stopper is always safe to call, even
// when profiling is disabled or Mode is unknown.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
