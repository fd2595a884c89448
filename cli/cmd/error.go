package cmd

import (
	"github.com/ardnew/dots/lazy"
)

// Error represents a CLI command error with structured logging support.
type Error = lazy.Error

var (
	ErrNoManifest  = lazy.NewError("no manifest (use --manifest)")
	ErrIndex       = lazy.NewError("argument index out of range")
	ErrParseValue  = lazy.NewError("parse value")
	ErrFormat      = lazy.NewError("write output")
	ErrWriteConfig = lazy.NewError("write configuration file")
	ErrFileExists  = lazy.NewError("file exists (use --force to overwrite)")
)
