package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds     = errors.New("index out of range")
	ErrNoSession       = errors.New("no argument list loaded")
	ErrUnknownCommand  = errors.New("unknown command (try 'help')")
	ErrMissingArgument = errors.New("missing argument")
)
