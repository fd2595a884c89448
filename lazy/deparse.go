package lazy

import (
	"fmt"
	"strconv"
)

// Deparser is implemented by values that know their own human-readable
// source form, such as host expressions.
type Deparser interface {
	Deparse() string
}

// DeparseValue renders v for display in a [Deparse] column.
func DeparseValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"

	case Deparser:
		return x.Deparse()

	case Env:
		if IsNone(x) {
			return "NULL"
		}

		return "<environment: " + x.EnvName() + ">"

	case *Promise:
		if x == nil {
			return "NULL"
		}

		return deparsePromise(x)

	case string:
		return strconv.Quote(x)

	case fmt.Stringer:
		return x.String()

	default:
		return fmt.Sprint(v)
	}
}

func deparsePromise(p *Promise) string {
	r := p.Resolve()

	state := "unforced"
	if r.bound {
		state = "forced"
	}

	return "<promise: " + state + " " + DeparseValue(r.code.Expr()) + ">"
}
