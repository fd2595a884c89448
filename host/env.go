package host

import (
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/ardnew/mung"
)

// Env is a named evaluation context: variable bindings plus an optional
// enclosing parent. Lookups fall back to the parent chain.
//
// Env implements [lazy.Env].
type Env struct {
	name   string
	parent *Env
	vars   map[string]any
}

// NewEnv returns an environment named name enclosed by parent, which may be
// nil. vars is copied.
func NewEnv(name string, parent *Env, vars map[string]any) *Env {
	return &Env{name: name, parent: parent, vars: maps.Clone(vars)}
}

// EnvName returns the environment name, or "" for a nil e.
func (e *Env) EnvName() string {
	if e == nil {
		return ""
	}

	return e.name
}

// Parent returns the enclosing environment, or nil.
func (e *Env) Parent() *Env { return e.parent }

// Define binds key to v in e itself.
func (e *Env) Define(key string, v any) {
	if e.vars == nil {
		e.vars = make(map[string]any)
	}

	e.vars[key] = v
}

// Lookup returns the innermost binding of key.
func (e *Env) Lookup(key string) (any, bool) {
	for ; e != nil; e = e.parent {
		if v, ok := e.vars[key]; ok {
			return v, true
		}
	}

	return nil, false
}

// Lineage returns the names of e and its ancestors, innermost first.
func (e *Env) Lineage() []string {
	var names []string
	for ; e != nil; e = e.parent {
		names = append(names, e.name)
	}

	return names
}

// Keys returns every visible variable name, sorted.
func (e *Env) Keys() []string {
	return slices.Sorted(maps.Keys(e.Scope()))
}

// Scope flattens e into the variable map an expression runs against:
// the builtins, then each ancestor from the outermost in, so inner
// bindings shadow outer ones.
func (e *Env) Scope() map[string]any {
	scope := maps.Clone(builtins())

	for _, env := range slices.Backward(e.chain()) {
		maps.Copy(scope, env.vars)
	}

	return scope
}

func (e *Env) chain() []*Env {
	var envs []*Env
	for ; e != nil; e = e.parent {
		envs = append(envs, e)
	}

	return envs
}

// builtins returns the bindings visible in every environment.
var builtins = sync.OnceValue(func() map[string]any {
	return map[string]any{
		"getenv": os.Getenv,
		// PATH-like string manipulation.
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
})

// Builtins returns the names bound in every environment, sorted.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins()))
}

func mungPrefix(key string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	key string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
