package emitter

import (
	"bytes"
	"strings"

	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/ir"
)

// Emitter prints rewritten expressions as target proof-language text.
// It is purely structural: every decision about binds and lifts was
// made upstream, the emitter only spells them.
type Emitter struct {
	buf    bytes.Buffer
	indent int
}

func New() *Emitter {
	return &Emitter{}
}

// Emit renders the expression and returns the accumulated text with a
// trailing newline.
func Emit(e ir.Expr) string {
	em := New()
	em.expr(e, false)
	em.writeln()
	return em.String()
}

func (em *Emitter) String() string {
	return em.buf.String()
}

func (em *Emitter) write(s string) {
	em.buf.WriteString(s)
}

func (em *Emitter) writeln() {
	em.buf.WriteString("\n")
}

func (em *Emitter) writeIndent() {
	for i := 0; i < em.indent; i++ {
		em.buf.WriteString("  ")
	}
}

// expr prints one expression. atom requests a form that can stand as an
// application argument; compound forms get wrapped in parentheses.
func (em *Emitter) expr(e ir.Expr, atom bool) {
	switch n := e.(type) {
	case *ir.Const:
		em.write(n.Value.String())

	case *ir.Var:
		em.write(n.Name.Key())

	case *ir.Tuple:
		em.write("(")
		for i, el := range n.Elements {
			if i > 0 {
				em.write(", ")
			}
			em.expr(el, false)
		}
		em.write(")")

	case *ir.Ctor:
		if len(n.Args) == 0 {
			em.write(n.Tag.Key())
			return
		}
		em.paren(atom, func() {
			em.write(n.Tag.Key())
			for _, a := range n.Args {
				em.write(" ")
				em.expr(a, true)
			}
		})

	case *ir.Apply:
		em.paren(atom, func() {
			em.application(n)
		})

	case *ir.Lambda:
		em.paren(atom, func() {
			em.write("fun " + n.Param.Key() + " => ")
			em.expr(n.Body, false)
		})

	case *ir.Let:
		em.paren(atom, func() {
			em.write("let " + n.Name.Key() + " := ")
			em.expr(n.Value, false)
			em.write(" in")
			em.line(n.Body)
		})

	case *ir.Function:
		em.paren(atom, func() {
			em.functionExpr(n)
		})

	case *ir.Match:
		em.matchExpr(n)

	case *ir.Record:
		em.write("{| ")
		for i, f := range n.Fields {
			if i > 0 {
				em.write("; ")
			}
			em.write(f.Name.Key() + " := ")
			em.expr(f.Value, false)
		}
		em.write(" |}")

	case *ir.Field:
		em.expr(n.Base, true)
		em.write(".(" + n.Name.Key() + ")")

	case *ir.If:
		em.paren(atom, func() {
			em.write("if ")
			em.expr(n.Cond, false)
			em.write(" then ")
			em.expr(n.Then, false)
			em.write(" else ")
			em.expr(n.Else, false)
		})

	case *ir.Seq:
		em.paren(atom, func() {
			em.write("let _ := ")
			em.expr(n.First, false)
			em.write(" in")
			em.line(n.Second)
		})

	case *ir.Lift:
		em.paren(atom, func() {
			if n.From.IsPure() {
				em.write("ret ")
				em.expr(n.Expr, true)
				return
			}
			em.write("lift " + descText(n.From) + " " + descText(n.To) + " ")
			em.expr(n.Expr, true)
		})

	case *ir.Bind:
		em.paren(atom, func() {
			em.write("let! " + n.Name.Key() + " := ")
			em.expr(n.Value, false)
			em.write(" in")
			em.line(n.Body)
		})

	default:
		em.write("<?>")
	}
}

// application flattens a curried call chain so `((f a) b)` prints as
// `f a b`.
func (em *Emitter) application(a *ir.Apply) {
	var args []ir.Expr
	fn := ir.Expr(a)
	for {
		app, ok := fn.(*ir.Apply)
		if !ok {
			break
		}
		args = append([]ir.Expr{app.Arg}, args...)
		fn = app.Fn
	}
	em.expr(fn, true)
	for _, arg := range args {
		em.write(" ")
		em.expr(arg, true)
	}
}

func (em *Emitter) functionExpr(f *ir.Function) {
	em.write("let ")
	if f.Rec {
		em.write("fix ")
	}
	em.write(f.Name.Key())
	for _, tp := range f.TypeParams {
		em.write(" {" + tp.Key() + " : Type}")
	}
	for _, p := range f.Params {
		if p.Type == nil {
			em.write(" " + p.Name.Key())
			continue
		}
		em.write(" (" + p.Name.Key() + " : " + typeText(p.Type, false) + ")")
	}
	if f.Result != nil {
		em.write(" : " + typeText(f.Result, false))
	}
	em.write(" :=")
	em.line(f.Body)
	em.writeln()
	em.writeIndent()
	em.write("in")
	em.line(f.In)
}

func (em *Emitter) matchExpr(m *ir.Match) {
	em.write("match ")
	em.expr(m.Scrutinee, false)
	em.write(" with")
	em.indent++
	for _, arm := range m.Arms {
		em.writeln()
		em.writeIndent()
		em.write("| " + arm.Pattern.String() + " => ")
		em.expr(arm.Body, false)
	}
	em.indent--
	em.writeln()
	em.writeIndent()
	em.write("end")
}

// line prints e on the next line, one level deeper.
func (em *Emitter) line(e ir.Expr) {
	em.indent++
	em.writeln()
	em.writeIndent()
	em.expr(e, false)
	em.indent--
}

func (em *Emitter) paren(needed bool, body func()) {
	if needed {
		em.write("(")
	}
	body()
	if needed {
		em.write(")")
	}
}

func descText(d effects.Descriptor) string {
	return "[" + strings.Join(d.Labels(), ", ") + "]"
}

// typeText spells a type annotation in the target syntax: bare type
// variables, `->` arrows, `*` products.
func typeText(t ir.TypeExpr, atom bool) string {
	switch tt := t.(type) {
	case *ir.TName:
		if len(tt.Args) == 0 {
			return tt.Name.Key()
		}
		parts := make([]string, 0, len(tt.Args)+1)
		parts = append(parts, tt.Name.Key())
		for _, a := range tt.Args {
			parts = append(parts, typeText(a, true))
		}
		s := strings.Join(parts, " ")
		if atom {
			return "(" + s + ")"
		}
		return s
	case *ir.TVar:
		return tt.Name
	case *ir.TArrowType:
		s := typeText(tt.From, true) + " -> " + typeText(tt.To, false)
		if atom {
			return "(" + s + ")"
		}
		return s
	case *ir.TTupleType:
		parts := make([]string, len(tt.Elements))
		for i, el := range tt.Elements {
			parts[i] = typeText(el, true)
		}
		s := strings.Join(parts, " * ")
		if atom {
			return "(" + s + ")"
		}
		return s
	}
	return "_"
}
