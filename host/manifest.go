package host

import (
	"context"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/dots/lazy"
)

// Manifest describes a call: the environments in scope and the arguments
// of a lazy argument list.
type Manifest struct {
	Envs []EnvSpec `yaml:"envs"`
	Args []ArgSpec `yaml:"args"`
}

// EnvSpec describes an environment. Parent names an environment declared
// earlier in the manifest.
type EnvSpec struct {
	Name   string         `yaml:"name"`
	Parent string         `yaml:"parent,omitempty"`
	Vars   map[string]any `yaml:"vars,omitempty"`
}

// ArgSpec describes one argument.
//
// Exactly one of Expr, Chain, or Value describes the code. An argument with
// Expr or Chain needs Env; an argument with neither is a promise already
// forced to Value. Force forces the promise while the manifest is built.
type ArgSpec struct {
	Name  string   `yaml:"name,omitempty"`
	Expr  string   `yaml:"expr,omitempty"`
	Chain *ArgSpec `yaml:"chain,omitempty"`
	Env   string   `yaml:"env,omitempty"`
	Value any      `yaml:"value,omitempty"`
	Force bool     `yaml:"force,omitempty"`
}

// ParseManifest decodes a YAML manifest. Unknown fields are rejected.
func ParseManifest(ctx context.Context, data []byte) (*Manifest, error) {
	var m Manifest

	if err := yaml.UnmarshalContext(ctx, data, &m, yaml.Strict()); err != nil {
		return nil, ErrManifest.Wrap(err)
	}

	return &m, nil
}

// LoadManifest reads and decodes the YAML manifest at path.
func LoadManifest(ctx context.Context, path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrManifest.Wrap(err).With(slog.String("path", path))
	}

	m, err := ParseManifest(ctx, data)
	if err != nil {
		return nil, lazy.WrapError(err).With(slog.String("path", path))
	}

	return m, nil
}

// Session is a built manifest: its environments by name and the argument
// list.
type Session struct {
	envs  map[string]*Env
	order []string
	List  *lazy.List
}

// Env returns the environment named name.
func (s *Session) Env(name string) (*Env, error) {
	env, ok := s.envs[name]
	if !ok {
		return nil, ErrUnknownEnv.With(slog.String("env", name))
	}

	return env, nil
}

// Envs returns the environments in declaration order.
func (s *Session) Envs() []*Env {
	envs := make([]*Env, len(s.order))
	for i, name := range s.order {
		envs[i] = s.envs[name]
	}

	return envs
}

// Build creates the environments and the argument list m describes,
// forcing the arguments marked Force.
func (m *Manifest) Build(ctx context.Context, opts ...Option) (*Session, error) {
	o := makeOptions(opts...)

	s := &Session{envs: make(map[string]*Env, len(m.Envs))}

	for i, spec := range m.Envs {
		if spec.Name == "" {
			return nil, ErrManifest.With(
				slog.Int("env", i),
				slog.String("reason", "missing name"),
			)
		}

		if _, dup := s.envs[spec.Name]; dup {
			return nil, ErrManifest.With(
				slog.String("env", spec.Name),
				slog.String("reason", "duplicate name"),
			)
		}

		var parent *Env

		if spec.Parent != "" {
			p, err := s.Env(spec.Parent)
			if err != nil {
				return nil, err
			}

			parent = p
		}

		s.envs[spec.Name] = NewEnv(spec.Name, parent, spec.Vars)
		s.order = append(s.order, spec.Name)
	}

	s.List = lazy.NewList()

	for i, spec := range m.Args {
		p, err := s.promise(ctx, &spec, &o)
		if err != nil {
			return nil, lazy.WrapError(err).With(slog.Int("arg", i))
		}

		name := lazy.Unnamed
		if spec.Name != "" {
			name = lazy.Named(spec.Name)
		}

		s.List.Append(name, p)
	}

	o.logger.TraceContext(ctx, "build manifest",
		slog.Int("envs", len(s.order)),
		slog.Int("args", s.List.Len()),
	)

	return s, nil
}

func (s *Session) promise(
	ctx context.Context,
	spec *ArgSpec,
	o *options,
) (*lazy.Promise, error) {
	var p *lazy.Promise

	switch {
	case spec.Expr != "" && spec.Chain != nil:
		return nil, ErrManifest.With(
			slog.String("reason", "expr and chain are exclusive"),
		)

	case spec.Expr == "" && spec.Chain == nil:
		if spec.Env != "" {
			return nil, ErrManifest.With(
				slog.String("reason", "env without expr or chain"),
			)
		}

		return lazy.NewForced(spec.Value), nil

	case spec.Value != nil:
		return nil, ErrManifest.With(
			slog.String("reason", "value with expr or chain"),
		)

	case spec.Env == "":
		return nil, ErrManifest.With(
			slog.String("reason", "expr or chain without env"),
		)
	}

	env, err := s.Env(spec.Env)
	if err != nil {
		return nil, err
	}

	if spec.Chain != nil {
		inner, err := s.promise(ctx, spec.Chain, o)
		if err != nil {
			return nil, err
		}

		p = lazy.NewChained(inner, env)
	} else {
		x, err := Compile(spec.Expr)
		if err != nil {
			return nil, err
		}

		p = lazy.NewPromise(x, env)
	}

	if spec.Force {
		if _, err := force(ctx, p, o); err != nil {
			return nil, err
		}
	}

	return p, nil
}
