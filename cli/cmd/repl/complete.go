package repl

import (
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"
)

// isWordBoundary reports whether r delimits a completion word: whitespace,
// the member-access dot, and expr-lang operators and punctuation.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';',
		'"', '\'', '`':
		return true
	}

	return false
}

// wordBounds returns the word under the cursor and its byte offsets in input.
// The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading up to the word starting
// at wordStart. For "x + a.b.c" and the word "c" it returns "a.b".
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.Trim(prefix[pos:], ".")
}

// exprCandidates returns the names that complete a member of parent in
// scope. The top level offers scope keys and expr-lang builtins.
func exprCandidates(scope map[string]any, parent string) []string {
	if parent == "" {
		names := slices.Sorted(maps.Keys(scope))

		return append(names, builtin.Names...)
	}

	var v any = scope

	for seg := range strings.SplitSeq(parent, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}

		if v, ok = m[seg]; !ok {
			return nil
		}
	}

	if m, ok := v.(map[string]any); ok {
		return slices.Sorted(maps.Keys(m))
	}

	return nil
}

// commandCandidates returns the completions for the word at position pos of
// a command line: command names first, then the operands a command takes.
func (in *inspector) commandCandidates(fields []string, pos int) []string {
	if pos == 0 {
		return commandNames
	}

	switch resolveCommand(fields[0]) {
	case "use", "env":
		return in.envNames()

	case "show", "force":
		return in.argNames()
	}

	return nil
}

// computeMatches returns the ranked candidates for the word under the
// cursor together with the word's offsets.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var candidates []string

	if m.mode == modeCtrl {
		if word == "" {
			return nil, wordStart, wordEnd
		}

		fields := strings.Fields(input[:wordStart])
		candidates = m.inspector.commandCandidates(fields, len(fields))
	} else {
		parent := parentPath(input, wordStart)
		candidates = exprCandidates(m.inspector.scope(), parent)

		// An empty word lists every member after a dot, and nothing at the
		// top level so the hint stays visible.
		if word == "" {
			if parent == "" {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar renders the matches on one line no wider than width,
// ending in an ellipsis when they do not all fit.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	scope map[string]any,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	room := width - lipgloss.Width(ellipsis)

	var b strings.Builder

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx, scope)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += len(sep)
		}

		if i > 0 && lipgloss.Width(b.String())+w > room {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted. Functions get a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool, scope map[string]any) string {
	base, bold := suggestionStyle, matchStyle
	if selected {
		base, bold = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(bold.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunction(match.Str, scope) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// isFunction reports whether name is an expr-lang builtin or a function in
// scope.
func isFunction(name string, scope map[string]any) bool {
	if _, ok := builtin.Index[name]; ok {
		return true
	}

	v, ok := scope[name]

	return ok && v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
