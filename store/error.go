package store

import "github.com/ardnew/dots/lazy"

// Predefined errors (sentinel values).
var (
	ErrOpen     = lazy.NewError("open database")
	ErrQuery    = lazy.NewError("database query")
	ErrNotFound = lazy.NewError("snapshot not found")
	ErrDriver   = lazy.NewError("unsupported driver")
)
