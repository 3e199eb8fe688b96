package parser

import (
	"github.com/funvibe/purelift/internal/ast"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/token"
)

// parseType parses a full type: tuple ('->' type)?  (arrow is
// right-associative).
func (p *Parser) parseType() ast.Type {
	left := p.parseTypeTuple()
	if left == nil {
		return nil
	}
	if !p.curTokenIs(token.ARROW) {
		return left
	}
	tok := p.curToken
	p.nextToken()
	right := p.parseType()
	if right == nil {
		return nil
	}
	return &ast.ArrowType{Token: tok, From: left, To: right}
}

// parseTypeTuple parses app ('*' app)*.
func (p *Parser) parseTypeTuple() ast.Type {
	first := p.parseTypeApp()
	if first == nil {
		return nil
	}
	if !p.curTokenIs(token.STAR) {
		return first
	}
	tok := p.curToken
	elements := []ast.Type{first}
	for p.curTokenIs(token.STAR) {
		p.nextToken()
		next := p.parseTypeApp()
		if next == nil {
			return nil
		}
		elements = append(elements, next)
	}
	return &ast.TupleType{Token: tok, Elements: elements}
}

// parseTypeApp parses application by juxtaposition: option int.
func (p *Parser) parseTypeApp() ast.Type {
	base := p.parseTypeAtom()
	if base == nil {
		return nil
	}
	named, ok := base.(*ast.NamedType)
	if !ok {
		return base
	}
	for p.typeAtomStart() {
		arg := p.parseTypeAtom()
		if arg == nil {
			return nil
		}
		named.Args = append(named.Args, arg)
	}
	return named
}

func (p *Parser) typeAtomStart() bool {
	switch p.curToken.Type {
	case token.IDENT, token.UIDENT, token.TYVAR, token.LPAREN:
		return true
	}
	return false
}

func (p *Parser) parseTypeAtom() ast.Type {
	switch p.curToken.Type {
	case token.IDENT:
		tok := p.curToken
		p.nextToken()
		return &ast.NamedType{Token: tok, Name: tok.Lexeme}
	case token.UIDENT:
		tok := p.curToken
		segments := []string{p.curToken.Lexeme}
		p.nextToken()
		for p.curTokenIs(token.DOT) {
			switch p.peekToken.Type {
			case token.IDENT:
				p.nextToken()
				name := p.curToken.Lexeme
				p.nextToken()
				return &ast.NamedType{Token: tok, Path: segments, Name: name}
			case token.UIDENT:
				p.nextToken()
				segments = append(segments, p.curToken.Lexeme)
				p.nextToken()
			default:
				p.addError(diagnostics.NewError(diagnostics.ErrP002, p.peekToken, "type name", string(p.peekToken.Type)))
				return nil
			}
		}
		path, name := segments[:len(segments)-1], segments[len(segments)-1]
		return &ast.NamedType{Token: tok, Path: path, Name: name}
	case token.TYVAR:
		tok := p.curToken
		p.nextToken()
		return &ast.VarType{Token: tok, Name: tok.Lexeme}
	case token.LPAREN:
		p.nextToken()
		inner := p.parseType()
		if inner == nil {
			return nil
		}
		if _, ok := p.expect(token.RPAREN); !ok {
			return nil
		}
		return inner
	}
	p.addError(diagnostics.NewError(diagnostics.ErrP001, p.curToken, "unexpected token '"+p.curToken.Lexeme+"' in type"))
	return nil
}
