package adapter

import (
	"fmt"

	"github.com/funvibe/purelift/internal/ast"
	"github.com/funvibe/purelift/internal/config"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/ir"
	"github.com/funvibe/purelift/internal/token"
)

// Adapter converts the elaborated source tree into the simplified
// expression tree. It is a structural pass: every supported construct
// maps one-to-one, every unsupported construct is a terminal rejection.
type Adapter struct {
	errors      []*diagnostics.DiagnosticError
	synthSerial int
}

func New() *Adapter {
	return &Adapter{}
}

// Errors returns diagnostics recorded during adaptation.
func (a *Adapter) Errors() []*diagnostics.DiagnosticError {
	return a.errors
}

func (a *Adapter) fail(err *diagnostics.DiagnosticError) ir.Expr {
	a.errors = append(a.errors, err)
	return nil
}

// synthName mints a scrutinee name for a non-variable parameter. The
// serial is adapter-local: synthesized names only need to be unique
// within one translation unit, and the rewriter's fresh names use a
// different prefix.
func (a *Adapter) synthName() ir.Name {
	a.synthSerial++
	return ir.NewName(fmt.Sprintf("%s%d", config.SynthScrutineePrefix, a.synthSerial))
}

// Adapt converts the whole unit. On failure it returns nil and the
// diagnostics are available via Errors.
func (a *Adapter) Adapt(root ast.Expression) ir.Expr {
	out := a.expr(root)
	if out == nil {
		return nil
	}
	if err := ir.CheckSurface(out); err != nil {
		return a.fail(diagnostics.NewError(diagnostics.ErrX002, root.GetToken(), err.Error()))
	}
	return out
}

func (a *Adapter) expr(e ast.Expression) ir.Expr {
	switch n := e.(type) {
	case *ast.Identifier:
		return &ir.Var{Token: n.Token, Name: ir.NewQualified(n.Value, n.Path...)}

	case *ast.IntegerLiteral:
		return &ir.Const{Token: n.Token, Value: ir.Constant{Kind: ir.ConstInt, Text: n.Token.Lexeme}}
	case *ast.FloatLiteral:
		return &ir.Const{Token: n.Token, Value: ir.Constant{Kind: ir.ConstFloat, Text: n.Token.Lexeme}}
	case *ast.BooleanLiteral:
		text := "false"
		if n.Value {
			text = "true"
		}
		return &ir.Const{Token: n.Token, Value: ir.Constant{Kind: ir.ConstBool, Text: text}}
	case *ast.StringLiteral:
		return &ir.Const{Token: n.Token, Value: ir.Constant{Kind: ir.ConstString, Text: n.Value}}
	case *ast.CharLiteral:
		return &ir.Const{Token: n.Token, Value: ir.Constant{Kind: ir.ConstChar, Text: n.Value}}
	case *ast.UnitLiteral:
		return &ir.Const{Token: n.Token, Value: ir.UnitConstant}

	case *ast.TupleLiteral:
		elements := make([]ir.Expr, len(n.Elements))
		for i, el := range n.Elements {
			if elements[i] = a.expr(el); elements[i] == nil {
				return nil
			}
		}
		return &ir.Tuple{Token: n.Token, Elements: elements}

	case *ast.RecordLiteral:
		fields := make([]ir.FieldInit, len(n.Fields))
		for i, f := range n.Fields {
			value := a.expr(f.Value)
			if value == nil {
				return nil
			}
			fields[i] = ir.FieldInit{Name: ir.NewName(f.Name), Value: value}
		}
		return &ir.Record{Token: n.Token, Fields: fields}

	case *ast.FieldAccess:
		base := a.expr(n.Base)
		if base == nil {
			return nil
		}
		return &ir.Field{Token: n.Token, Base: base, Name: ir.NewName(n.Name)}

	case *ast.CallExpression:
		fn := a.expr(n.Fn)
		if fn == nil {
			return nil
		}
		for _, arg := range n.Args {
			adapted := a.expr(arg)
			if adapted == nil {
				return nil
			}
			fn = &ir.Apply{Token: n.Token, Fn: fn, Arg: adapted}
		}
		return fn

	case *ast.ConstructorExpression:
		args := make([]ir.Expr, len(n.Args))
		for i, arg := range n.Args {
			if args[i] = a.expr(arg); args[i] == nil {
				return nil
			}
		}
		return &ir.Ctor{Token: n.Token, Tag: ir.NewQualified(n.Tag, n.Path...), Args: args}

	case *ast.FunExpression:
		body := a.expr(n.Body)
		if body == nil {
			return nil
		}
		return a.curry(n.Token, n.Params, body)

	case *ast.LetExpression:
		return a.letExpr(n)

	case *ast.MatchExpression:
		scrutinee := a.expr(n.Scrutinee)
		if scrutinee == nil {
			return nil
		}
		arms := make([]ir.Arm, len(n.Arms))
		for i, arm := range n.Arms {
			pat := a.pattern(arm.Pattern)
			if pat == nil {
				return nil
			}
			body := a.expr(arm.Body)
			if body == nil {
				return nil
			}
			arms[i] = ir.Arm{Pattern: pat, Body: body}
		}
		return &ir.Match{Token: n.Token, Scrutinee: scrutinee, Arms: arms}

	case *ast.IfExpression:
		cond := a.expr(n.Cond)
		if cond == nil {
			return nil
		}
		then := a.expr(n.Then)
		if then == nil {
			return nil
		}
		var els ir.Expr
		if n.Else != nil {
			if els = a.expr(n.Else); els == nil {
				return nil
			}
		} else {
			els = &ir.Const{Token: n.Token, Value: ir.UnitConstant}
		}
		return &ir.If{Token: n.Token, Cond: cond, Then: then, Else: els}

	case *ast.SeqExpression:
		first := a.expr(n.First)
		if first == nil {
			return nil
		}
		second := a.expr(n.Second)
		if second == nil {
			return nil
		}
		return &ir.Seq{Token: n.Token, First: first, Second: second}

	case *ast.WhileExpression:
		return a.fail(diagnostics.NewError(diagnostics.ErrS002, n.Token, "while"))
	case *ast.ForExpression:
		return a.fail(diagnostics.NewError(diagnostics.ErrS002, n.Token, "for"))
	case *ast.AssignExpression:
		return a.fail(diagnostics.NewError(diagnostics.ErrS002, n.Token, "<-"))
	case *ast.ArrayLiteral:
		return a.fail(diagnostics.NewError(diagnostics.ErrS002, n.Token, "array"))
	case *ast.TryExpression:
		return a.fail(diagnostics.NewError(diagnostics.ErrS002, n.Token, "try"))
	}
	return a.fail(diagnostics.NewError(diagnostics.ErrS003, e.GetToken(), e.TokenLiteral()))
}

// letExpr converts let / let rec. A binding with parameters becomes a
// Function node carrying a flat parameter list; a bare binding becomes
// Let (or a parameterless recursive Function for let rec).
func (a *Adapter) letExpr(n *ast.LetExpression) ir.Expr {
	value := a.expr(n.Value)
	if value == nil {
		return nil
	}
	in := a.expr(n.In)
	if in == nil {
		return nil
	}
	if len(n.Params) == 0 && !n.Rec {
		return &ir.Let{Token: n.Token, Name: ir.NewName(n.Name), Value: value, Body: in}
	}

	params, body := a.openParams(n.Params, value)
	if body == nil {
		return nil
	}
	return &ir.Function{
		Token:      n.Token,
		Rec:        n.Rec,
		Name:       ir.NewName(n.Name),
		TypeParams: collectTypeParams(n),
		Params:     params,
		Result:     a.typeExpr(n.ResultType),
		Body:       body,
		In:         in,
	}
}

// openParams flattens the declared parameters to plain names, inserting
// a match on a synthesized scrutinee for every non-variable pattern (the
// producer contract forbids passing such parameters through).
func (a *Adapter) openParams(params []ast.FunParam, body ir.Expr) ([]ir.Param, ir.Expr) {
	out := make([]ir.Param, len(params))
	// Walk right-to-left so synthesized matches nest in declaration order.
	for i := len(params) - 1; i >= 0; i-- {
		p := params[i]
		typ := a.typeExpr(p.Type)
		switch pat := p.Pattern.(type) {
		case *ast.IdentPattern:
			out[i] = ir.Param{Name: ir.NewName(pat.Value), Type: typ}
		case *ast.WildcardPattern:
			out[i] = ir.Param{Name: a.synthName(), Type: typ}
		default:
			converted := a.pattern(p.Pattern)
			if converted == nil {
				return nil, nil
			}
			scrutinee := a.synthName()
			out[i] = ir.Param{Name: scrutinee, Type: typ}
			body = &ir.Match{
				Token:     p.Token,
				Scrutinee: &ir.Var{Token: p.Token, Name: scrutinee},
				Arms:      []ir.Arm{{Pattern: converted, Body: body}},
			}
		}
	}
	return out, body
}

// curry builds the lambda chain for an anonymous function.
func (a *Adapter) curry(tok token.Token, params []ast.FunParam, body ir.Expr) ir.Expr {
	flat, body := a.openParams(params, body)
	if body == nil {
		return nil
	}
	for i := len(flat) - 1; i >= 0; i-- {
		body = &ir.Lambda{Token: tok, Param: flat[i].Name, Body: body}
	}
	return body
}

func (a *Adapter) pattern(p ast.Pattern) ir.Pattern {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		return &ir.PWildcard{}
	case *ast.IdentPattern:
		return &ir.PVar{Name: ir.NewName(n.Value)}
	case *ast.LiteralPattern:
		c, ok := constantOf(n.Value)
		if !ok {
			a.errors = append(a.errors, diagnostics.NewError(diagnostics.ErrS003, n.Token, n.TokenLiteral()))
			return nil
		}
		return &ir.PConst{Value: c}
	case *ast.TuplePattern:
		elements := make([]ir.Pattern, len(n.Elements))
		for i, el := range n.Elements {
			if elements[i] = a.pattern(el); elements[i] == nil {
				return nil
			}
		}
		return &ir.PTuple{Elements: elements}
	case *ast.CtorPattern:
		args := make([]ir.Pattern, len(n.Args))
		for i, arg := range n.Args {
			if args[i] = a.pattern(arg); args[i] == nil {
				return nil
			}
		}
		return &ir.PCtor{Tag: ir.NewQualified(n.Tag, n.Path...), Args: args}
	}
	a.errors = append(a.errors, diagnostics.NewError(diagnostics.ErrS003, p.GetToken(), p.TokenLiteral()))
	return nil
}

func constantOf(e ast.Expression) (ir.Constant, bool) {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return ir.Constant{Kind: ir.ConstInt, Text: n.Token.Lexeme}, true
	case *ast.FloatLiteral:
		return ir.Constant{Kind: ir.ConstFloat, Text: n.Token.Lexeme}, true
	case *ast.BooleanLiteral:
		if n.Value {
			return ir.Constant{Kind: ir.ConstBool, Text: "true"}, true
		}
		return ir.Constant{Kind: ir.ConstBool, Text: "false"}, true
	case *ast.StringLiteral:
		return ir.Constant{Kind: ir.ConstString, Text: n.Value}, true
	case *ast.CharLiteral:
		return ir.Constant{Kind: ir.ConstChar, Text: n.Value}, true
	case *ast.UnitLiteral:
		return ir.UnitConstant, true
	}
	return ir.Constant{}, false
}

func (a *Adapter) typeExpr(t ast.Type) ir.TypeExpr {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case *ast.NamedType:
		args := make([]ir.TypeExpr, len(n.Args))
		for i, arg := range n.Args {
			args[i] = a.typeExpr(arg)
		}
		return &ir.TName{Name: ir.NewQualified(n.Name, n.Path...), Args: args}
	case *ast.VarType:
		return &ir.TVar{Name: n.Name}
	case *ast.ArrowType:
		return &ir.TArrowType{From: a.typeExpr(n.From), To: a.typeExpr(n.To)}
	case *ast.TupleType:
		elements := make([]ir.TypeExpr, len(n.Elements))
		for i, el := range n.Elements {
			elements[i] = a.typeExpr(el)
		}
		return &ir.TTupleType{Elements: elements}
	}
	return nil
}

// collectTypeParams gathers the distinct type variables mentioned in a
// binding's parameter and result annotations, in first-occurrence order.
func collectTypeParams(n *ast.LetExpression) []ir.Name {
	seen := map[string]bool{}
	var out []ir.Name
	var walk func(t ast.Type)
	walk = func(t ast.Type) {
		switch tt := t.(type) {
		case *ast.VarType:
			if !seen[tt.Name] {
				seen[tt.Name] = true
				out = append(out, ir.NewName(tt.Name))
			}
		case *ast.NamedType:
			for _, arg := range tt.Args {
				walk(arg)
			}
		case *ast.ArrowType:
			walk(tt.From)
			walk(tt.To)
		case *ast.TupleType:
			for _, el := range tt.Elements {
				walk(el)
			}
		}
	}
	for _, p := range n.Params {
		walk(p.Type)
	}
	walk(n.ResultType)
	return out
}
