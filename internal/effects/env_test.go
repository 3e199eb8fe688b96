package effects

import (
	"testing"
)

func TestEnvBindAndLookup(t *testing.T) {
	base := NewEnv()
	failwith := MakeArrow(Pure, NewDescriptor("Failure"))

	env := base.Bind("Stdlib.failwith", failwith)

	got, ok := env.Lookup("Stdlib.failwith")
	if !ok {
		t.Fatalf("bound name not found")
	}
	if !got.Equal(failwith) {
		t.Errorf("Lookup = %s, want %s", got, failwith)
	}

	// The parent scope is untouched
	if base.Has("Stdlib.failwith") {
		t.Errorf("Bind must not mutate the receiver")
	}
}

func TestEnvShadowing(t *testing.T) {
	env := NewEnv().Bind("x", Pure)
	inner := env.Bind("x", MakeArrow(Pure, NewDescriptor("IO")))

	got, _ := inner.Lookup("x")
	if got.IsPure() {
		t.Errorf("inner binding should shadow outer")
	}

	outer, _ := env.Lookup("x")
	if !outer.IsPure() {
		t.Errorf("outer scope should keep its binding")
	}
}

func TestEnvSiblingScopes(t *testing.T) {
	// Two scopes extended from the same parent must not see each other.
	parent := NewEnv().Bind("shared", Pure)
	left := parent.Bind("l", Pure)
	right := parent.Bind("r", Pure)

	if left.Has("r") || right.Has("l") {
		t.Errorf("sibling scopes leaked into each other")
	}
	if !left.Has("shared") || !right.Has("shared") {
		t.Errorf("sibling scopes should both see the parent binding")
	}
}

func TestEnvBindAllPure(t *testing.T) {
	env := NewEnv().BindAllPure([]string{"a", "b"})
	for _, name := range []string{"a", "b"} {
		got, ok := env.Lookup(name)
		if !ok || !got.IsPure() {
			t.Errorf("%s should be bound to Pure", name)
		}
	}
	if env.Has("c") {
		t.Errorf("unbound name resolved")
	}
}

func TestEnvLookupMiss(t *testing.T) {
	if _, ok := NewEnv().Lookup("nope"); ok {
		t.Errorf("lookup on empty env should miss")
	}
}
