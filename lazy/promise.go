package lazy

import "reflect"

// Expr is an unevaluated expression. The package treats it as opaque data.
type Expr = any

// Value is the result of forcing a promise. The package treats it as opaque
// data.
type Value = any

// Env is a reference to an evaluation context owned by the host evaluator.
//
// A nil Env is the "none" sentinel: the promise holding it is considered
// forced for the purpose of chain resolution. A typed nil pointer (or other
// nil reference) inside a non-nil Env is also none. Promises only ever store Env
// references; they never mutate the context behind one.
type Env interface {
	EnvName() string
}

// IsNone reports whether env is the "none" environment.
func IsNone(env Env) bool {
	if env == nil {
		return true
	}

	switch v := reflect.ValueOf(env); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface:
		return v.IsNil()

	default:
		return false
	}
}

// none normalizes every form of the none environment to a nil interface.
func none(env Env) Env {
	if IsNone(env) {
		return nil
	}

	return env
}

// Code is the code slot of a promise: either a literal expression or a
// reference to another promise whose code is authoritative.
//
// A literal is always opaque, even when the literal value is itself a
// *Promise. Only [IndirectCode] forms a chain, so chains cannot cycle.
type Code struct {
	expr     Expr
	indirect *Promise
	chained  bool
}

// LiteralCode returns code holding the expression e.
func LiteralCode(e Expr) Code { return Code{expr: e} }

// IndirectCode returns code deferring to promise p.
func IndirectCode(p *Promise) Code { return Code{indirect: p, chained: true} }

// Promise returns the promise this code defers to, if it is indirect.
func (c Code) Promise() (*Promise, bool) { return c.indirect, c.chained }

// Expr returns the code as an expression. Indirect code yields the inner
// *Promise itself, which is what a host sees in the raw code slot.
func (c Code) Expr() Expr {
	if c.chained {
		return c.indirect
	}

	return c.expr
}

// IsIndirect reports whether the code defers to another promise.
func (c Code) IsIndirect() bool { return c.chained }

// Promise is a deferred computation: code, the environment the code must be
// evaluated in, and a cache slot for the forced value.
//
// The zero Promise is unusable; construct one with [NewPromise],
// [NewChained], or [NewForced].
type Promise struct {
	code  Code
	env   Env
	value Value
	bound bool
	seen  bool
}

// NewPromise returns an unforced promise that evaluates expr in env.
func NewPromise(expr Expr, env Env) *Promise {
	return &Promise{code: LiteralCode(expr), env: none(env)}
}

// NewChained returns an unforced promise whose code is the promise inner.
// Forcing it means forcing inner.
func NewChained(inner *Promise, env Env) *Promise {
	return &Promise{code: IndirectCode(inner), env: none(env)}
}

// NewForced returns a promise already forced to value. Its code is the
// value itself and its environment is none.
func NewForced(value Value) *Promise {
	return &Promise{
		code:  LiteralCode(value),
		value: value,
		bound: true,
	}
}

// Code returns the raw code slot.
func (p *Promise) Code() Code { return p.code }

// Env returns the environment, or nil if the promise has none.
func (p *Promise) Env() Env { return p.env }

// Value returns the cached value and whether the promise has been forced.
func (p *Promise) Value() (Value, bool) { return p.value, p.bound }

// Forced reports whether a value has been cached.
func (p *Promise) Forced() bool { return p.bound }

// Seen reports whether the host marked the promise as under evaluation.
func (p *Promise) Seen() bool { return p.seen }

// Cache records v as the forced value without releasing the environment.
func (p *Promise) Cache(v Value) {
	p.value = v
	p.bound = true
}

// Release drops the environment reference. The code becomes authoritative
// and will not be evaluated again.
func (p *Promise) Release() { p.env = nil }

// Deliver records v as the forced value and releases the environment, which
// is what ordinary forcing does.
func (p *Promise) Deliver(v Value) {
	p.Cache(v)
	p.Release()
	p.seen = false
}

// Enter marks the promise as under evaluation.
func (p *Promise) Enter() { p.seen = true }

// Leave clears the evaluation marker.
func (p *Promise) Leave() { p.seen = false }

// Resolve follows the chain of indirect code while the current promise still
// has an environment, and returns the terminal promise. Its env, code and
// cached value are authoritative for introspection.
func (p *Promise) Resolve() *Promise {
	for !IsNone(p.env) {
		inner, ok := p.code.Promise()
		if !ok || inner == nil {
			break
		}

		p = inner
	}

	return p
}

// Origin follows the chain of indirect code to its end, passing forced
// links, and returns the promise that holds the original literal code.
func (p *Promise) Origin() *Promise {
	for {
		inner, ok := p.code.Promise()
		if !ok || inner == nil {
			return p
		}

		p = inner
	}
}

// broken reports whether the Origin chain ends in indirect code that points
// nowhere.
func (p *Promise) broken() bool {
	for {
		inner, ok := p.code.Promise()
		if !ok {
			return false
		}

		if inner == nil {
			return true
		}

		p = inner
	}
}
