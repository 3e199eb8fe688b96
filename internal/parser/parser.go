package parser

import (
	"github.com/funvibe/purelift/internal/ast"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/lexer"
	"github.com/funvibe/purelift/internal/pipeline"
	"github.com/funvibe/purelift/internal/token"
)

// MaxRecursionDepth bounds expression nesting to keep malformed input
// from blowing the stack.
const MaxRecursionDepth = 500

// Parser is a recursive-descent parser for the core-ML input surface.
// Every parse function fully consumes its construct: on return,
// p.curToken is the first unconsumed token.
type Parser struct {
	l   *lexer.Lexer
	ctx *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token

	depth int
}

func New(l *lexer.Lexer, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{l: l, ctx: ctx}
	// Fill curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expect consumes and returns the current token when it has the wanted
// type; otherwise it records a diagnostic and returns false.
func (p *Parser) expect(t token.Type) (token.Token, bool) {
	if p.curTokenIs(t) {
		tok := p.curToken
		p.nextToken()
		return tok, true
	}
	p.addError(diagnostics.NewError(diagnostics.ErrP002, p.curToken, string(t), string(p.curToken.Type)))
	return p.curToken, false
}

func (p *Parser) addError(err *diagnostics.DiagnosticError) {
	p.ctx.Errors = append(p.ctx.Errors, err)
}

// ParseUnit parses one translation unit: a single expression followed by
// end of input.
func (p *Parser) ParseUnit() ast.Expression {
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	if !p.curTokenIs(token.EOF) {
		p.addError(diagnostics.NewError(diagnostics.ErrP002, p.curToken, string(token.EOF), string(p.curToken.Type)))
		return nil
	}
	return expr
}

// parseExpression parses at sequence level: branch (';' branch)*.
func (p *Parser) parseExpression() ast.Expression {
	first := p.parseBranch()
	if first == nil {
		return nil
	}
	if !p.curTokenIs(token.SEMICOLON) {
		return first
	}
	tok := p.curToken
	p.nextToken()
	second := p.parseExpression()
	if second == nil {
		return nil
	}
	return &ast.SeqExpression{Token: tok, First: first, Second: second}
}

// parseBranch parses the keyword-introduced forms and falls through to
// application.
func (p *Parser) parseBranch() ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.NewError(diagnostics.ErrP001, p.curToken, "expression too deeply nested"))
		return nil
	}

	switch p.curToken.Type {
	case token.LET:
		return p.parseLet()
	case token.FUN:
		return p.parseFun()
	case token.MATCH:
		return p.parseMatch()
	case token.TRY:
		return p.parseTry()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	}
	return p.parseAssign()
}

// parseAssign parses application with an optional '<-' mutation.
func (p *Parser) parseAssign() ast.Expression {
	left := p.parseApplication()
	if left == nil {
		return nil
	}
	if !p.curTokenIs(token.LARROW) {
		return left
	}
	tok := p.curToken
	p.nextToken()
	value := p.parseBranch()
	if value == nil {
		return nil
	}
	return &ast.AssignExpression{Token: tok, Target: left, Value: value}
}

// parseApplication parses juxtaposed atoms: f x y.
func (p *Parser) parseApplication() ast.Expression {
	fn := p.parseAtom()
	if fn == nil {
		return nil
	}
	var args []ast.Expression
	for p.atomStart() {
		arg := p.parseAtom()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return fn
	}
	if ctor, ok := fn.(*ast.ConstructorExpression); ok && len(ctor.Args) == 0 {
		ctor.Args = args
		return ctor
	}
	return &ast.CallExpression{Token: fn.GetToken(), Fn: fn, Args: args}
}

func (p *Parser) atomStart() bool {
	switch p.curToken.Type {
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE,
		token.UNIT, token.IDENT, token.UIDENT, token.LPAREN, token.LBRACE,
		token.LBRACKET, token.BEGIN:
		return true
	}
	return false
}

func (p *Parser) parseAtom() ast.Expression {
	var base ast.Expression
	switch p.curToken.Type {
	case token.INT:
		base = p.parseIntegerLiteral()
	case token.FLOAT:
		base = p.parseFloatLiteral()
	case token.STRING:
		tok := p.curToken
		p.nextToken()
		base = &ast.StringLiteral{Token: tok, Value: tok.Lexeme}
	case token.CHAR:
		tok := p.curToken
		p.nextToken()
		base = &ast.CharLiteral{Token: tok, Value: tok.Lexeme}
	case token.TRUE, token.FALSE:
		tok := p.curToken
		p.nextToken()
		base = &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
	case token.UNIT:
		tok := p.curToken
		p.nextToken()
		base = &ast.UnitLiteral{Token: tok}
	case token.IDENT:
		tok := p.curToken
		p.nextToken()
		base = &ast.Identifier{Token: tok, Value: tok.Lexeme}
	case token.UIDENT:
		base = p.parseQualified()
	case token.LPAREN:
		base = p.parseParenGroup()
	case token.LBRACE:
		base = p.parseRecordLiteral()
	case token.LBRACKET:
		base = p.parseArrayLiteral()
	case token.BEGIN:
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if _, ok := p.expect(token.END); !ok {
			return nil
		}
		base = inner
	default:
		p.addError(diagnostics.NewError(diagnostics.ErrP001, p.curToken, "unexpected token '"+p.curToken.Lexeme+"'"))
		return nil
	}
	if base == nil {
		return nil
	}
	// Postfix field access: r.x.y
	for p.curTokenIs(token.DOT) && p.peekTokenIs(token.IDENT) {
		tok := p.curToken
		p.nextToken()
		name := p.curToken.Lexeme
		p.nextToken()
		base = &ast.FieldAccess{Token: tok, Base: base, Name: name}
	}
	return base
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	var value int64
	sign := int64(1)
	text := tok.Lexeme
	if len(text) > 0 && text[0] == '-' {
		sign = -1
		text = text[1:]
	}
	for i := 0; i < len(text); i++ {
		value = value*10 + int64(text[i]-'0')
	}
	return &ast.IntegerLiteral{Token: tok, Value: sign * value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	// The lexeme is re-emitted verbatim; the numeric value is only kept
	// for completeness.
	return &ast.FloatLiteral{Token: tok}
}

// parseQualified parses Stdlib.Sub.name into an identifier, or a
// capitalized path into a constructor.
func (p *Parser) parseQualified() ast.Expression {
	tok := p.curToken
	segments := []string{p.curToken.Lexeme}
	p.nextToken()
	for p.curTokenIs(token.DOT) {
		switch p.peekToken.Type {
		case token.IDENT:
			p.nextToken()
			name := p.curToken.Lexeme
			p.nextToken()
			return &ast.Identifier{Token: tok, Path: segments, Value: name}
		case token.UIDENT:
			p.nextToken()
			segments = append(segments, p.curToken.Lexeme)
			p.nextToken()
		default:
			// trailing dot belongs to a field access on the constructor
			path, tag := segments[:len(segments)-1], segments[len(segments)-1]
			return &ast.ConstructorExpression{Token: tok, Path: path, Tag: tag}
		}
	}
	path, tag := segments[:len(segments)-1], segments[len(segments)-1]
	return &ast.ConstructorExpression{Token: tok, Path: path, Tag: tag}
}

// parseParenGroup parses a parenthesized expression or a tuple.
func (p *Parser) parseParenGroup() ast.Expression {
	tok, ok := p.expect(token.LPAREN)
	if !ok {
		return nil
	}
	first := p.parseExpression()
	if first == nil {
		return nil
	}
	if !p.curTokenIs(token.COMMA) {
		if _, ok := p.expect(token.RPAREN); !ok {
			return nil
		}
		return first
	}
	elements := []ast.Expression{first}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		next := p.parseExpression()
		if next == nil {
			return nil
		}
		elements = append(elements, next)
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	return &ast.TupleLiteral{Token: tok, Elements: elements}
}

// parseRecordLiteral parses { f = e; g = e }.
func (p *Parser) parseRecordLiteral() ast.Expression {
	tok, ok := p.expect(token.LBRACE)
	if !ok {
		return nil
	}
	var fields []ast.RecordField
	for {
		nameTok, ok := p.expect(token.IDENT)
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.ASSIGN); !ok {
			return nil
		}
		value := p.parseBranch()
		if value == nil {
			return nil
		}
		fields = append(fields, ast.RecordField{Name: nameTok.Lexeme, Value: value})
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	return &ast.RecordLiteral{Token: tok, Fields: fields}
}

// parseArrayLiteral parses [ e; e ], the mutable array construct kept
// only so it can be rejected with its own diagnostic.
func (p *Parser) parseArrayLiteral() ast.Expression {
	tok, ok := p.expect(token.LBRACKET)
	if !ok {
		return nil
	}
	var elements []ast.Expression
	if !p.curTokenIs(token.RBRACKET) {
		for {
			e := p.parseBranch()
			if e == nil {
				return nil
			}
			elements = append(elements, e)
			if p.curTokenIs(token.SEMICOLON) {
				p.nextToken()
				continue
			}
			break
		}
	}
	if _, ok := p.expect(token.RBRACKET); !ok {
		return nil
	}
	return &ast.ArrayLiteral{Token: tok, Elements: elements}
}

// parseLet parses let / let rec bindings with their continuation.
func (p *Parser) parseLet() ast.Expression {
	tok, ok := p.expect(token.LET)
	if !ok {
		return nil
	}
	rec := false
	if p.curTokenIs(token.REC) {
		rec = true
		p.nextToken()
	}
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	params := p.parseParams()
	var resultType ast.Type
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		resultType = p.parseType()
		if resultType == nil {
			return nil
		}
	}
	if _, ok := p.expect(token.ASSIGN); !ok {
		return nil
	}
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	if _, ok := p.expect(token.IN); !ok {
		return nil
	}
	in := p.parseExpression()
	if in == nil {
		return nil
	}
	return &ast.LetExpression{
		Token:      tok,
		Rec:        rec,
		Name:       nameTok.Lexeme,
		Params:     params,
		ResultType: resultType,
		Value:      value,
		In:         in,
	}
}

// parseFun parses fun p1 p2 -> body.
func (p *Parser) parseFun() ast.Expression {
	tok, ok := p.expect(token.FUN)
	if !ok {
		return nil
	}
	params := p.parseParams()
	if len(params) == 0 {
		p.addError(diagnostics.NewError(diagnostics.ErrP001, p.curToken, "fun requires at least one parameter"))
		return nil
	}
	if _, ok := p.expect(token.ARROW); !ok {
		return nil
	}
	body := p.parseExpression()
	if body == nil {
		return nil
	}
	return &ast.FunExpression{Token: tok, Params: params, Body: body}
}

func (p *Parser) parseMatch() ast.Expression {
	tok, ok := p.expect(token.MATCH)
	if !ok {
		return nil
	}
	scrutinee := p.parseExpression()
	if scrutinee == nil {
		return nil
	}
	if _, ok := p.expect(token.WITH); !ok {
		return nil
	}
	arms := p.parseArms()
	if arms == nil {
		return nil
	}
	return &ast.MatchExpression{Token: tok, Scrutinee: scrutinee, Arms: arms}
}

func (p *Parser) parseTry() ast.Expression {
	tok, ok := p.expect(token.TRY)
	if !ok {
		return nil
	}
	body := p.parseExpression()
	if body == nil {
		return nil
	}
	if _, ok := p.expect(token.WITH); !ok {
		return nil
	}
	arms := p.parseArms()
	if arms == nil {
		return nil
	}
	return &ast.TryExpression{Token: tok, Body: body, Arms: arms}
}

func (p *Parser) parseArms() []ast.MatchArm {
	if p.curTokenIs(token.PIPE) {
		p.nextToken()
	}
	var arms []ast.MatchArm
	for {
		pat := p.parsePattern()
		if pat == nil {
			return nil
		}
		if _, ok := p.expect(token.ARROW); !ok {
			return nil
		}
		body := p.parseExpression()
		if body == nil {
			return nil
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
		if p.curTokenIs(token.PIPE) {
			p.nextToken()
			continue
		}
		return arms
	}
}

func (p *Parser) parseIf() ast.Expression {
	tok, ok := p.expect(token.IF)
	if !ok {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(token.THEN); !ok {
		return nil
	}
	then := p.parseBranch()
	if then == nil {
		return nil
	}
	var els ast.Expression
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		els = p.parseBranch()
		if els == nil {
			return nil
		}
	}
	return &ast.IfExpression{Token: tok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Expression {
	tok, ok := p.expect(token.WHILE)
	if !ok {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(token.DO); !ok {
		return nil
	}
	body := p.parseExpression()
	if body == nil {
		return nil
	}
	if _, ok := p.expect(token.DONE); !ok {
		return nil
	}
	return &ast.WhileExpression{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseFor() ast.Expression {
	tok, ok := p.expect(token.FOR)
	if !ok {
		return nil
	}
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.ASSIGN); !ok {
		return nil
	}
	from := p.parseExpression()
	if from == nil {
		return nil
	}
	if _, ok := p.expect(token.TO); !ok {
		return nil
	}
	to := p.parseExpression()
	if to == nil {
		return nil
	}
	if _, ok := p.expect(token.DO); !ok {
		return nil
	}
	body := p.parseExpression()
	if body == nil {
		return nil
	}
	if _, ok := p.expect(token.DONE); !ok {
		return nil
	}
	return &ast.ForExpression{Token: tok, Var: nameTok.Lexeme, From: from, To: to, Body: body}
}
