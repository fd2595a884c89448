package repl

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/dots/host"
	"github.com/ardnew/dots/lazy"
	"github.com/ardnew/dots/log"
)

const manifest = `
envs:
  - name: global
    vars: {x: 1, opts: {depth: 3}}
  - name: caller
    parent: global
    vars: {y: 2}
args:
  - name: a
    expr: x + y
    env: caller
  - name: b
    chain: {expr: y, env: caller}
    env: global
`

func newTestInspector(t *testing.T) *inspector {
	t.Helper()

	m, err := host.ParseManifest(t.Context(), []byte(manifest))
	if err != nil {
		t.Fatal(err)
	}

	s, err := m.Build(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	return newInspector(s, log.Logger{})
}

func TestInspector_Eval(t *testing.T) {
	in := newTestInspector(t)

	if in.env.EnvName() != "caller" {
		t.Fatalf("default env = %s, want caller", in.env.EnvName())
	}

	tests := []struct {
		name    string
		src     string
		want    string
		wantErr error
	}{
		{"arithmetic", "x + y * 10", "21", nil},
		{"nested", "opts.depth", "3", nil},
		{"string", `"a" + "b"`, `"ab"`, nil},
		{"undefined", "nope", "NULL", nil},
		{"syntax", "x +", "", host.ErrCompile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := in.eval(tt.src)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("eval(%q) error = %v, want %v", tt.src, err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("eval(%q): %v", tt.src, err)
			}

			if got != tt.want {
				t.Errorf("eval(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestInspector_Use(t *testing.T) {
	in := newTestInspector(t)

	out, err := in.exec(t.Context(), "use global")
	if err != nil {
		t.Fatal(err)
	}

	if out != "using <environment: global>" {
		t.Errorf("use = %q", out)
	}

	if got, _ := in.eval("y"); got != "NULL" {
		t.Errorf("y in global = %s, want NULL", got)
	}

	if _, err := in.exec(t.Context(), "u nowhere"); !errors.Is(err, host.ErrUnknownEnv) {
		t.Errorf("use nowhere error = %v", err)
	}
}

func TestInspector_ShowAndNames(t *testing.T) {
	in := newTestInspector(t)

	out, err := in.exec(t.Context(), "show")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"x + y", "<environment: caller>", "NULL"} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}

	out, err = in.exec(t.Context(), "n")
	if err != nil {
		t.Fatal(err)
	}

	if out != `"a" "b"` {
		t.Errorf("names = %s", out)
	}
}

func TestInspector_Force(t *testing.T) {
	in := newTestInspector(t)

	out, err := in.exec(t.Context(), "force 1")
	if err != nil {
		t.Fatal(err)
	}

	p, _ := in.session.List.Promise(0)
	if v, ok := p.Value(); !ok || lazy.DeparseValue(v) != "3" {
		t.Errorf("a = %v (forced %t), want 3", v, ok)
	}

	if !strings.Contains(out, "3") {
		t.Errorf("force output missing value:\n%s", out)
	}

	if _, err := in.exec(t.Context(), "force 9"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("force 9 error = %v", err)
	}

	if _, err := in.exec(t.Context(), "f"); err != nil {
		t.Fatal(err)
	}

	p, _ = in.session.List.Promise(1)
	if v, ok := p.Value(); !ok || lazy.DeparseValue(v) != "2" {
		t.Errorf("b = %v (forced %t), want 2", v, ok)
	}
}

func TestInspector_RewriteExpr(t *testing.T) {
	in := newTestInspector(t)
	before := in.session.List

	out, err := in.exec(t.Context(), "expr 1 x * 100")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "x * 100") {
		t.Errorf("rewrite output missing expression:\n%s", out)
	}

	if in.session.List == before {
		t.Error("argument list not replaced")
	}

	if _, err := in.exec(t.Context(), "force"); err != nil {
		t.Fatal(err)
	}

	p, _ := in.session.List.Promise(0)
	if v, _ := p.Value(); lazy.DeparseValue(v) != "100" {
		t.Errorf("a = %v, want 100", v)
	}

	// Forcing keeps environments, so forced arguments remain rewritable and
	// keep their cached values.
	out, err = in.exec(t.Context(), "expr\t2\ty + 1")
	if err != nil {
		t.Fatalf("rewrite after force: %v", err)
	}

	if !strings.Contains(out, "y + 1") {
		t.Errorf("tab-separated rewrite missing expression:\n%s", out)
	}

	p, _ = in.session.List.Promise(1)
	if v, ok := p.Value(); !ok || lazy.DeparseValue(v) != "2" {
		t.Errorf("b = %v (forced %t), want cached 2", v, ok)
	}

	if _, err := in.exec(t.Context(), "expr 1"); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("expr without source error = %v", err)
	}
}

func TestInspector_RewriteEnv(t *testing.T) {
	in := newTestInspector(t)

	out, err := in.exec(t.Context(), "env global")
	if err != nil {
		t.Fatal(err)
	}

	if n := strings.Count(out, "<environment: global>"); n != 2 {
		t.Errorf("rebound %d arguments, want 2:\n%s", n, out)
	}

	if _, err := in.exec(t.Context(), "env"); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("env without name error = %v", err)
	}
}

func TestInspector_Envs(t *testing.T) {
	in := newTestInspector(t)

	out := in.envs()

	if !strings.Contains(out, "* caller") {
		t.Errorf("current env not marked:\n%s", out)
	}

	if strings.Contains(out, "getenv") {
		t.Errorf("builtins listed:\n%s", out)
	}
}

func TestInspector_UnknownCommand(t *testing.T) {
	in := newTestInspector(t)

	if _, err := in.exec(t.Context(), "bogus"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("error = %v, want %v", err, ErrUnknownCommand)
	}

	if out, err := in.exec(t.Context(), "   "); out != "" || err != nil {
		t.Errorf("blank line = %q, %v", out, err)
	}
}

func TestAfterFields(t *testing.T) {
	tests := []struct {
		line string
		n    int
		want string
	}{
		{"expr 1 x + y", 2, "x + y"},
		{"expr\t1\tx + y", 2, "x + y"},
		{"  expr   1  \t x  ", 2, "x"},
		{"expr 1", 2, ""},
		{"expr", 2, ""},
		{"show a b", 1, "a b"},
	}

	for _, tt := range tests {
		if got := afterFields(tt.line, tt.n); got != tt.want {
			t.Errorf("afterFields(%q, %d) = %q, want %q", tt.line, tt.n, got, tt.want)
		}
	}
}
