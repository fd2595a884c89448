package host

import "github.com/ardnew/dots/lazy"

// Predefined errors (sentinel values).
var (
	ErrUnknownEnv = lazy.NewError("unknown environment")
	ErrCompile    = lazy.NewError("expression compile failed")
	ErrEvaluate   = lazy.NewError("expression evaluation failed")
	ErrRecursive  = lazy.NewError("promise already under evaluation")
	ErrManifest   = lazy.NewError("invalid manifest")
)
