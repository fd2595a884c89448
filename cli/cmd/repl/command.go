package repl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardnew/dots/host"
	"github.com/ardnew/dots/lazy"
	"github.com/ardnew/dots/log"
)

// commandNames are the control-mode commands, in help order.
var commandNames = []string{
	"help", "show", "names", "force", "expr", "env", "envs", "use", "clear", "quit",
}

// commandAliases maps single-letter shorthands to commands.
var commandAliases = map[string]string{
	"h":    "help",
	"s":    "show",
	"n":    "names",
	"f":    "force",
	"x":    "expr",
	"e":    "env",
	"u":    "use",
	"c":    "clear",
	"q":    "quit",
	"exit": "quit",
}

func resolveCommand(name string) string {
	if full, ok := commandAliases[name]; ok {
		return full
	}

	return name
}

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help               Print this cruft
  show [PATTERN]     Unpack the argument list, optionally filtered by name
  names              Print the argument names
  force [N...]       Force arguments N (default: all), keeping environments
  expr N SOURCE      Replace the expression of argument N
  env NAME           Rebind every argument to environment NAME
  envs               List environments
  use NAME           Evaluate expressions in environment NAME
  clear              Clear screen
  quit               Exit REPL

Usage:
  Type an expression to evaluate it in the current environment
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inspector holds the state the REPL inspects: a session's argument list
// and the environment expressions are evaluated in.
type inspector struct {
	session *host.Session
	env     *host.Env
	logger  log.Logger
}

func newInspector(s *host.Session, logger log.Logger) *inspector {
	in := &inspector{session: s, logger: logger}

	if envs := s.Envs(); len(envs) > 0 {
		in.env = envs[len(envs)-1]
	} else {
		in.env = host.NewEnv("repl", nil, nil)
	}

	return in
}

func (in *inspector) lazyOptions() []lazy.Option {
	return []lazy.Option{lazy.WithLogger(in.logger)}
}

// scope returns the variables visible to expressions.
func (in *inspector) scope() map[string]any { return in.env.Scope() }

func (in *inspector) envNames() []string {
	envs := in.session.Envs()

	names := make([]string, len(envs))
	for i, env := range envs {
		names[i] = env.EnvName()
	}

	return names
}

func (in *inspector) argNames() []string {
	var names []string

	for _, e := range in.session.List.All() {
		if e.Name.IsSet() && e.Name.String() != "" {
			names = append(names, e.Name.String())
		}
	}

	return names
}

// eval evaluates src in the current environment and renders the result.
func (in *inspector) eval(src string) (string, error) {
	x, err := host.Compile(src)
	if err != nil {
		return "", err
	}

	v, err := x.Eval(in.env)
	if err != nil {
		return "", err
	}

	return lazy.DeparseValue(v), nil
}

// afterFields returns line without its first n whitespace-separated fields,
// splitting the way [strings.Fields] does.
func afterFields(line string, n int) string {
	s := strings.TrimSpace(line)

	for range n {
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			return ""
		}

		s = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	}

	return s
}

// exec runs a control-mode command line and returns its output.
func (in *inspector) exec(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	name, args := resolveCommand(fields[0]), fields[1:]

	in.logger.TraceContext(ctx, "repl exec command",
		slog.String("command", name),
		slog.Any("args", args),
	)

	switch name {
	case "help":
		return helpMessage(), nil

	case "show":
		return in.show(ctx, strings.Join(args, " "))

	case "names":
		return in.names()

	case "force":
		return in.force(ctx, args)

	case "expr":
		if len(args) < 2 {
			return "", ErrMissingArgument
		}

		// The source may contain spaces; take it verbatim from the line.
		return in.rewriteExpr(ctx, args[0], afterFields(line, 2))

	case "env":
		if len(args) != 1 {
			return "", ErrMissingArgument
		}

		return in.rewriteEnv(ctx, args[0])

	case "envs":
		return in.envs(), nil

	case "use":
		if len(args) != 1 {
			return "", ErrMissingArgument
		}

		env, err := in.session.Env(args[0])
		if err != nil {
			return "", err
		}

		in.env = env

		return "using " + lazy.DeparseValue(env), nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

func (in *inspector) show(ctx context.Context, pattern string) (string, error) {
	t, err := lazy.Unpack(in.session.List, in.lazyOptions()...)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	if err := t.Filter(pattern).Format(ctx, &b); err != nil {
		return "", err
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func (in *inspector) names() (string, error) {
	names, err := lazy.Names(in.session.List, in.lazyOptions()...)
	if err != nil {
		return "", err
	}

	if names == nil {
		return lazy.DeparseValue(nil), nil
	}

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = lazy.DeparseValue(name)
	}

	return strings.Join(quoted, " "), nil
}

// index parses a 1-based argument position.
func (in *inspector) index(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > in.session.List.Len() {
		return 0, fmt.Errorf("%w: %s", ErrOutOfBounds, arg)
	}

	return n - 1, nil
}

func (in *inspector) force(ctx context.Context, args []string) (string, error) {
	// Environments are kept so that forced arguments can still be rewritten.
	opts := []host.Option{host.WithLogger(in.logger), host.WithKeepEnv(true)}

	if len(args) == 0 {
		if _, err := host.ForceAll(ctx, in.session.List, opts...); err != nil {
			return "", err
		}

		return in.show(ctx, "")
	}

	for _, arg := range args {
		i, err := in.index(arg)
		if err != nil {
			return "", err
		}

		p, ok := in.session.List.Promise(i)
		if !ok {
			return "", lazy.ErrTypeMismatch.With(slog.Int("index", i))
		}

		if _, err := host.Force(ctx, p, opts...); err != nil {
			return "", err
		}
	}

	return in.show(ctx, "")
}

// rewriteExpr replaces the expression of argument arg, keeping every other
// argument's expression.
func (in *inspector) rewriteExpr(ctx context.Context, arg, src string) (string, error) {
	i, err := in.index(arg)
	if err != nil {
		return "", err
	}

	x, err := host.Compile(src)
	if err != nil {
		return "", err
	}

	l := in.session.List

	exprs := make([]lazy.Expr, l.Len())

	for j := range exprs {
		if p, ok := l.Promise(j); ok {
			exprs[j] = p.Origin().Code().Expr()
		}
	}

	exprs[i] = x

	out, err := lazy.MutateExprs(l, exprs, in.lazyOptions()...)
	if err != nil {
		return "", err
	}

	in.session.List = out

	return in.show(ctx, "")
}

// rewriteEnv rebinds every argument to the environment named name.
func (in *inspector) rewriteEnv(ctx context.Context, name string) (string, error) {
	env, err := in.session.Env(name)
	if err != nil {
		return "", err
	}

	envs := make([]lazy.Env, in.session.List.Len())
	for i := range envs {
		envs[i] = env
	}

	out, err := lazy.MutateEnvs(in.session.List, envs, in.lazyOptions()...)
	if err != nil {
		return "", err
	}

	in.session.List = out

	return in.show(ctx, "")
}

func (in *inspector) envs() string {
	var b strings.Builder

	for _, env := range in.session.Envs() {
		marker := "  "
		if env == in.env {
			marker = "* "
		}

		keys := slices.DeleteFunc(env.Keys(), func(k string) bool {
			return slices.Contains(host.Builtins(), k)
		})

		b.WriteString(marker + env.EnvName() + " " +
			hintStyle.Render(strings.Join(env.Lineage(), " < ")+
				" {"+strings.Join(keys, ", ")+"}") + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
