package lazy

import "testing"

// testEnv is a minimal host environment.
type testEnv string

func (e testEnv) EnvName() string { return string(e) }

// ptrEnv is a host environment used through a pointer, so it can be a typed
// nil inside a non-nil Env.
type ptrEnv struct{ name string }

func (e *ptrEnv) EnvName() string { return e.name }

// retagged returns l after replacing its class tag.
func retagged(l *List, class string) *List {
	l.SetAttr(AttrClass, class)

	return l
}

func mustPromise(t *testing.T, l *List, i int) *Promise {
	t.Helper()

	p, ok := l.Promise(i)
	if !ok {
		t.Fatalf("slot %d holds %T, want *Promise", i, l.At(i).Slot)
	}

	return p
}
