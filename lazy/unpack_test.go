package lazy

import (
	"errors"
	"slices"
	"testing"
)

func TestUnpack(t *testing.T) {
	global := testEnv("global")

	l := NewList().
		Append(Named("a"), NewPromise("x", global)).
		Append(Unnamed, NewForced(2)).
		Append(Named("c"), NewPromise("z", global))

	mustPromise(t, l, 2).Cache(3)

	tbl, err := Unpack(l)
	if err != nil {
		t.Fatal(err)
	}

	if tbl.Class() != ClassTable || tbl.Len() != 3 {
		t.Fatalf("class=%q len=%d", tbl.Class(), tbl.Len())
	}

	if want := []string{"a", "", "c"}; !slices.Equal(tbl.Name, want) || !slices.Equal(tbl.RowNames(), want) {
		t.Errorf("names=%v rownames=%v, want %v", tbl.Name, tbl.RowNames(), want)
	}

	tests := []struct {
		envir, expr, value any
	}{
		{global, "x", nil},
		{nil, 2, 2},
		{global, "z", 3},
	}

	for i, tt := range tests {
		r := tbl.Row(i)

		var envir any
		if r.Envir != nil {
			envir = r.Envir
		}

		if envir != tt.envir || r.Expr != tt.expr || r.Value != tt.value {
			t.Errorf("row %d = {%v %v %v}, want %v", i, envir, r.Expr, r.Value, tt)
		}
	}

	for _, col := range []Deparse{tbl.Envir, tbl.Expr, tbl.Value} {
		if col.Class() != ClassDeparse {
			t.Errorf("column class %q", col.Class())
		}
	}
}

func TestUnpack_LengthPreserved(t *testing.T) {
	for n := range 5 {
		l := NewList()
		for i := range n {
			l.Append(Unnamed, NewForced(i))
		}

		tbl, err := Unpack(l)
		if err != nil {
			t.Fatal(err)
		}

		if tbl.Len() != n || len(tbl.Envir) != n || len(tbl.Expr) != n || len(tbl.Value) != n {
			t.Errorf("n=%d: columns %d %d %d %d", n,
				tbl.Len(), len(tbl.Envir), len(tbl.Expr), len(tbl.Value))
		}
	}
}

func TestUnpack_Chain(t *testing.T) {
	caller := testEnv("caller")
	frame := testEnv("frame")

	inner := NewPromise("y", caller)
	outer := NewChained(inner, frame)

	l := NewList(Entry{Name: Named("p"), Slot: outer})

	tbl, err := Unpack(l)
	if err != nil {
		t.Fatal(err)
	}

	if tbl.Envir[0] != caller || tbl.Expr[0] != "y" || tbl.Value[0] != nil {
		t.Errorf("unforced chain row = {%v %v %v}", tbl.Envir[0], tbl.Expr[0], tbl.Value[0])
	}

	// A forced outer link hides the chain and reports its own state.
	outer.Deliver(9)

	tbl, err = Unpack(l)
	if err != nil {
		t.Fatal(err)
	}

	if tbl.Envir[0] != nil || tbl.Expr[0] != inner || tbl.Value[0] != 9 {
		t.Errorf("forced link row = {%v %v %v}", tbl.Envir[0], tbl.Expr[0], tbl.Value[0])
	}
}

func TestUnpack_DoesNotShareState(t *testing.T) {
	p := NewPromise("x", testEnv("g"))
	l := NewList(Entry{Name: Named("a"), Slot: p})

	tbl, err := Unpack(l)
	if err != nil {
		t.Fatal(err)
	}

	p.Deliver(1)

	if tbl.Value[0] != nil || tbl.Envir[0] == nil {
		t.Errorf("snapshot changed after forcing: %v %v", tbl.Envir[0], tbl.Value[0])
	}
}

func TestUnpack_Errors(t *testing.T) {
	tests := []struct {
		name string
		list *List
	}{
		{"nil list", nil},
		{"bare value", NewList(Entry{Slot: 42})},
		{"nil promise", NewList(Entry{Slot: (*Promise)(nil)})},
		{"broken chain", NewList(Entry{Slot: NewChained(nil, testEnv("e"))})},
		{"untagged", retagged(NewList(Entry{Slot: NewForced(1)}), "list")},
		{"class removed", retagged(NewList(Entry{Slot: NewForced(1)}), "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Unpack(tt.list)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("err = %v, want ErrTypeMismatch", err)
			}

			if tbl != nil {
				t.Error("partial table returned")
			}
		})
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		name string
		list *List
		want []string
	}{
		{
			name: "mixed",
			list: NewList(
				Entry{Name: Named("a"), Slot: NewForced(1)},
				Entry{Slot: NewForced(2)},
				Entry{Name: Named("c"), Slot: NewForced(3)},
			),
			want: []string{"a", "", "c"},
		},
		{
			name: "unnamed",
			list: NewList(Entry{Slot: NewForced(1)}, Entry{Slot: NewForced(2)}),
			want: nil,
		},
		{
			name: "empty",
			list: NewList(),
			want: nil,
		},
		{
			name: "explicit empty name",
			list: NewList(Entry{Name: Named(""), Slot: NewForced(1)}),
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Names(tt.list)
			if err != nil {
				t.Fatal(err)
			}

			if (got == nil) != (tt.want == nil) || !slices.Equal(got, tt.want) {
				t.Errorf("Names = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNames_Nil(t *testing.T) {
	if _, err := Names(nil); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestClassTagRequired(t *testing.T) {
	env := testEnv("e")
	untagged := func() *List {
		return retagged(NewList(Entry{Name: Named("a"), Slot: NewPromise("x", env)}), "list")
	}

	tests := []struct {
		name string
		call func(*List) error
	}{
		{"Unpack", func(l *List) error {
			_, err := Unpack(l)

			return err
		}},
		{"Names", func(l *List) error {
			_, err := Names(l)

			return err
		}},
		{"ToGeneric", func(l *List) error {
			_, err := ToGeneric(l)

			return err
		}},
		{"MutateExprs", func(l *List) error {
			_, err := MutateExprs(l, []Expr{"y"})

			return err
		}},
		{"MutateEnvs", func(l *List) error {
			_, err := MutateEnvs(l, []Env{env})

			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(untagged())
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("err = %v, want ErrTypeMismatch", err)
			}
		})
	}
}
