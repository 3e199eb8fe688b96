package ir

import (
	"testing"
)

func v(name string) *Var    { return &Var{Name: NewName(name)} }
func intc(text string) *Const {
	return &Const{Value: Constant{Kind: ConstInt, Text: text}}
}

func TestChildrenOrder(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want []string
	}{
		{
			name: "Apply Is Function Then Argument",
			expr: &Apply{Fn: v("f"), Arg: v("x")},
			want: []string{"f", "x"},
		},
		{
			name: "Let Is Value Then Body",
			expr: &Let{Name: NewName("a"), Value: v("x"), Body: v("y")},
			want: []string{"x", "y"},
		},
		{
			name: "If Is Cond Then Else",
			expr: &If{Cond: v("c"), Then: v("t"), Else: v("e")},
			want: []string{"c", "t", "e"},
		},
		{
			name: "Seq Is First Then Second",
			expr: &Seq{First: v("a"), Second: v("b")},
			want: []string{"a", "b"},
		},
		{
			name: "Match Is Scrutinee Then Arm Bodies",
			expr: &Match{
				Scrutinee: v("s"),
				Arms: []Arm{
					{Pattern: &PWildcard{}, Body: v("a")},
					{Pattern: &PWildcard{}, Body: v("b")},
				},
			},
			want: []string{"s", "a", "b"},
		},
		{
			name: "Function Is Body Then Continuation",
			expr: &Function{Name: NewName("f"), Body: v("bd"), In: v("in")},
			want: []string{"bd", "in"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kids := Children(tt.expr)
			if len(kids) != len(tt.want) {
				t.Fatalf("got %d children, want %d", len(kids), len(tt.want))
			}
			for i, k := range kids {
				if k.TokenLiteral() != tt.want[i] {
					t.Errorf("child %d = %s, want %s", i, k.TokenLiteral(), tt.want[i])
				}
			}
		})
	}
}

func TestCheckSurface(t *testing.T) {
	pure := &Apply{Fn: v("f"), Arg: intc("1")}
	if err := CheckSurface(pure); err != nil {
		t.Errorf("surface-only tree rejected: %s", err)
	}

	// A Bind buried inside a Let must be found.
	tainted := &Let{
		Name:  NewName("a"),
		Value: &Bind{Value: v("e"), Name: NewName("x"), Body: v("x")},
		Body:  v("a"),
	}
	if err := CheckSurface(tainted); err == nil {
		t.Errorf("tree containing a monadic node passed CheckSurface")
	}

	lifted := &Tuple{Elements: []Expr{&Lift{Expr: intc("1")}}}
	if err := CheckSurface(lifted); err == nil {
		t.Errorf("tree containing a lift passed CheckSurface")
	}
}

func TestOpenCloseFunction(t *testing.T) {
	// fun a -> fun b -> body collapses to ([a b], body)
	body := &Apply{Fn: v("a"), Arg: v("b")}
	chain := &Lambda{Param: NewName("a"), Body: &Lambda{Param: NewName("b"), Body: body}}

	names, got := OpenFunction(chain)
	if len(names) != 2 || names[0].Key() != "a" || names[1].Key() != "b" {
		t.Fatalf("OpenFunction names = %v", names)
	}
	if !Equal(got, body) {
		t.Errorf("OpenFunction body mismatch")
	}

	rebuilt := CloseFunction(names, got)
	if !Equal(rebuilt, chain) {
		t.Errorf("CloseFunction did not invert OpenFunction")
	}

	// A non-lambda opens to zero names and itself.
	names, got = OpenFunction(body)
	if len(names) != 0 || !Equal(got, body) {
		t.Errorf("non-lambda should open to itself")
	}
}

func TestStructuralEqual(t *testing.T) {
	a := &Let{Name: NewName("x"), Value: intc("1"), Body: v("x")}
	b := &Let{Name: NewName("x"), Value: intc("1"), Body: v("x")}
	c := &Let{Name: NewName("y"), Value: intc("1"), Body: v("y")}

	if !Equal(a, b) {
		t.Errorf("identical structures should be equal")
	}
	if Equal(a, c) {
		t.Errorf("different bound names should not be equal")
	}
	if !Equal(nil, nil) {
		t.Errorf("nil should equal nil")
	}
	if Equal(a, nil) {
		t.Errorf("expr should not equal nil")
	}
}
