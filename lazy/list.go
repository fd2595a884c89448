package lazy

import (
	"fmt"
	"iter"
	"maps"
)

// Collection class tags understood by host-side dispatch.
const (
	// ClassDots tags a lazy argument list.
	ClassDots = "..."

	// ClassDeparse tags a table column whose cells need human-readable
	// rendering rather than raw value printing.
	ClassDeparse = "deparse"

	// ClassTable tags a row-oriented table.
	ClassTable = "data.frame"
)

// AttrClass is the attribute key holding a collection's class tag.
const AttrClass = "class"

// Name is the optional name of a list entry. The zero Name is [Unnamed],
// which is distinct from an explicit empty name.
type Name struct {
	s  string
	ok bool
}

// Unnamed is the name of an entry that has none.
var Unnamed Name

// Named returns the explicit name s.
func Named(s string) Name { return Name{s: s, ok: true} }

// nameOf returns Named(s) for a non-blank s, and Unnamed otherwise.
func nameOf(s string) Name {
	if s == "" {
		return Unnamed
	}

	return Named(s)
}

// IsSet reports whether the name was given explicitly.
func (n Name) IsSet() bool { return n.ok }

// String returns the name, or "" when unnamed.
func (n Name) String() string { return n.s }

// Entry is one argument of a [List]. Slot normally holds a *Promise, but a
// host may substitute a bare value; operations that need a promise reject
// such entries with [ErrTypeMismatch].
type Entry struct {
	Name Name
	Slot any
}

// Attrs holds collection-level attributes of a [List].
type Attrs map[string]any

// List is an ordered, optionally named collection of promises making up a
// variadic argument list.
//
// Operations in this package never modify a List in place, with the single
// documented exception of [PackLiteral].
type List struct {
	entries []Entry
	attrs   Attrs
}

// NewList returns a list tagged [ClassDots] holding the given entries.
// The entry slice is copied.
func NewList(entries ...Entry) *List {
	return &List{
		entries: append([]Entry(nil), entries...),
		attrs:   Attrs{AttrClass: ClassDots},
	}
}

// newListSize returns an empty list with room for n entries.
func newListSize(n int) *List {
	return &List{
		entries: make([]Entry, 0, n),
		attrs:   Attrs{AttrClass: ClassDots},
	}
}

// Append adds an entry holding promise p and returns the list.
func (l *List) Append(name Name, p *Promise) *List {
	l.entries = append(l.entries, Entry{Name: name, Slot: p})

	return l
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}

	return len(l.entries)
}

// At returns the entry at index i.
func (l *List) At(i int) Entry { return l.entries[i] }

// Promise returns the promise in the slot at index i, if the slot holds one.
func (l *List) Promise(i int) (*Promise, bool) {
	p, ok := l.entries[i].Slot.(*Promise)

	return p, ok && p != nil
}

// All returns an iterator over index/entry pairs.
func (l *List) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range l.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Named reports whether any entry has an explicit name.
func (l *List) Named() bool {
	for _, e := range l.entries {
		if e.Name.IsSet() {
			return true
		}
	}

	return false
}

// Attr returns the attribute stored under key.
func (l *List) Attr(key string) (any, bool) {
	v, ok := l.attrs[key]

	return v, ok
}

// SetAttr stores an attribute under key.
func (l *List) SetAttr(key string, v any) {
	if l.attrs == nil {
		l.attrs = Attrs{}
	}

	l.attrs[key] = v
}

// Attrs returns a copy of the collection attributes.
func (l *List) Attrs() Attrs { return maps.Clone(l.attrs) }

// Class returns the class tag of the list.
func (l *List) Class() string {
	s, _ := l.attrs[AttrClass].(string)

	return s
}

// kindOf names the kind of a slot value for error reports.
func kindOf(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"

	case *Promise:
		if x == nil {
			return "nil promise"
		}

		return "promise"

	case Env:
		if IsNone(x) {
			return "nil environment"
		}

		return "environment"

	case *List:
		return "..."

	default:
		return fmt.Sprintf("%T", v)
	}
}
