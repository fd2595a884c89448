package repl

import (
	"slices"
	"testing"

	"github.com/sahilm/fuzzy"
)

func TestWordBounds_ExprOperators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dot_separated", "bar.baz", 7, "baz", 4, 7},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_minus", "a-fo", 4, "fo", 2, 4},
		{"after_paren", "double(fo", 9, "fo", 7, 9},
		{"after_comma", "add(a, fo", 9, "fo", 7, 9},
		{"in_ternary", "x ? fo", 6, "fo", 4, 6},
		{"after_comparison", "a > fo", 6, "fo", 4, 6},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"cursor_past_end", "foo", 10, "foo", 0, 3},
		{"empty_after_dot", "mung.", 5, "", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentPath_WithOperators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top_level", "fo", 0, ""},
		{"simple_chain", "bar.baz.", 8, "bar.baz"},
		{"after_operator", "foo + bar.baz.", 14, "bar.baz"},
		{"after_paren", "(bar.baz.", 9, "bar.baz"},
		{"no_chain", "a + ", 4, ""},
		{"deep_chain", "a.b.c.", 6, "a.b.c"},
		{"after_equals", "x == a.b.", 9, "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parentPath(tt.input, tt.wordStart)
			if got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestExprCandidates(t *testing.T) {
	scope := map[string]any{
		"x":    1,
		"opts": map[string]any{"depth": 3, "wide": true},
		"mung": map[string]any{"prefix": nil},
	}

	top := exprCandidates(scope, "")
	for _, want := range []string{"x", "opts", "mung", "len", "filter"} {
		if !slices.Contains(top, want) {
			t.Errorf("top-level candidates missing %q", want)
		}
	}

	if got := exprCandidates(scope, "opts"); !slices.Equal(got, []string{"depth", "wide"}) {
		t.Errorf("opts members = %v", got)
	}

	if got := exprCandidates(scope, "x"); got != nil {
		t.Errorf("scalar members = %v, want none", got)
	}

	if got := exprCandidates(scope, "opts.depth.more"); got != nil {
		t.Errorf("deep scalar members = %v, want none", got)
	}

	if got := exprCandidates(scope, "missing"); got != nil {
		t.Errorf("missing members = %v, want none", got)
	}
}

func TestInspector_CommandCandidates(t *testing.T) {
	in := newTestInspector(t)

	if got := in.commandCandidates(nil, 0); !slices.Equal(got, commandNames) {
		t.Errorf("command names = %v", got)
	}

	if got := in.commandCandidates([]string{"u"}, 1); !slices.Equal(got, []string{"global", "caller"}) {
		t.Errorf("use operands = %v", got)
	}

	if got := in.commandCandidates([]string{"show"}, 1); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("show operands = %v", got)
	}

	if got := in.commandCandidates([]string{"names"}, 1); got != nil {
		t.Errorf("names operands = %v, want none", got)
	}
}

func TestIsFunction(t *testing.T) {
	scope := map[string]any{
		"getenv": func(string) string { return "" },
		"x":      1,
	}

	for name, want := range map[string]bool{
		"len":    true,
		"getenv": true,
		"x":      false,
		"nope":   false,
	} {
		if got := isFunction(name, scope); got != want {
			t.Errorf("isFunction(%q) = %t, want %t", name, got, want)
		}
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("a", []string{"alpha", "beta", "gamma", "delta"})

	if got := renderCandidateBar(nil, -1, false, 80, nil); got != "" {
		t.Errorf("no matches rendered %q", got)
	}

	if got := renderCandidateBar(matches, -1, false, 0, nil); got != "" {
		t.Errorf("zero width rendered %q", got)
	}

	full := renderCandidateBar(matches, -1, false, 80, nil)
	for _, m := range matches {
		if !containsPlain(full, m.Str) {
			t.Errorf("bar missing %q: %q", m.Str, full)
		}
	}

	narrow := renderCandidateBar(matches, -1, false, 12, nil)
	if !containsPlain(narrow, "...") {
		t.Errorf("narrow bar not ellipsized: %q", narrow)
	}
}
