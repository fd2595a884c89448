// Package host is a small reference evaluator for lazy argument lists.
//
// It supplies what package lazy deliberately leaves out: concrete
// environments ([Env]), compiled expressions ([Expr], backed by expr-lang),
// forcing ([Force], [ForceAll]) and a YAML call manifest ([Manifest]) that
// describes environments and arguments in a file.
//
// Forcing follows the usual rules for promises. A forced promise returns
// its cached value. An unforced promise evaluates its code in its
// environment, caches the result and releases the environment. A chained
// promise forces the promise it defers to.
package host
