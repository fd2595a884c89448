package host

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/dots/lazy"
)

// Expr is a compiled expr-lang expression. It is the code a host promise
// carries.
type Expr struct {
	source  string
	program *vm.Program
}

// Compile compiles source. Variables are resolved when the expression runs,
// so the same Expr may be evaluated in any [Env].
func Compile(source string) (*Expr, error) {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ErrCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return &Expr{source: source, program: program}, nil
}

// CompileAll compiles every source in order and stops at the first error.
func CompileAll(sources ...string) ([]lazy.Expr, error) {
	exprs := make([]lazy.Expr, len(sources))

	for i, s := range sources {
		x, err := Compile(s)
		if err != nil {
			return nil, err
		}

		exprs[i] = x
	}

	return exprs, nil
}

// Source returns the expression text.
func (x *Expr) Source() string { return x.source }

// Deparse returns the expression text.
func (x *Expr) Deparse() string { return x.source }

func (x *Expr) String() string { return x.source }

// Eval runs the expression against the scope of env.
func (x *Expr) Eval(env *Env) (any, error) {
	out, err := vm.Run(x.program, env.Scope())
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).
			With(slog.String("source", x.source), slog.String("env", env.name))
	}

	return out, nil
}
