package parser

import (
	"github.com/funvibe/purelift/internal/ast"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/token"
)

// parseParams parses the declared parameter list of a binding:
// x, _, (), (p : t), (a, b). Stops before ':' (result type), '=' and '->'.
func (p *Parser) parseParams() []ast.FunParam {
	var params []ast.FunParam
	for {
		switch p.curToken.Type {
		case token.IDENT:
			params = append(params, ast.FunParam{
				Token:   p.curToken,
				Pattern: &ast.IdentPattern{Token: p.curToken, Value: p.curToken.Lexeme},
			})
			p.nextToken()
		case token.WILDCARD:
			params = append(params, ast.FunParam{
				Token:   p.curToken,
				Pattern: &ast.WildcardPattern{Token: p.curToken},
			})
			p.nextToken()
		case token.UNIT:
			params = append(params, ast.FunParam{
				Token:   p.curToken,
				Pattern: &ast.LiteralPattern{Token: p.curToken, Value: &ast.UnitLiteral{Token: p.curToken}},
			})
			p.nextToken()
		case token.LPAREN:
			tok := p.curToken
			p.nextToken()
			pat := p.parsePatternTuple()
			if pat == nil {
				return nil
			}
			var typ ast.Type
			if p.curTokenIs(token.COLON) {
				p.nextToken()
				typ = p.parseType()
				if typ == nil {
					return nil
				}
			}
			if _, ok := p.expect(token.RPAREN); !ok {
				return nil
			}
			params = append(params, ast.FunParam{Token: tok, Pattern: pat, Type: typ})
		default:
			return params
		}
	}
}

// parsePattern parses a full pattern, including constructor arguments.
func (p *Parser) parsePattern() ast.Pattern {
	if p.curTokenIs(token.UIDENT) {
		tok := p.curToken
		path, tag := p.parseCtorPath()
		var args []ast.Pattern
		for p.patternAtomStart() {
			arg := p.parsePatternAtom()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
		}
		return &ast.CtorPattern{Token: tok, Path: path, Tag: tag, Args: args}
	}
	return p.parsePatternAtom()
}

func (p *Parser) patternAtomStart() bool {
	switch p.curToken.Type {
	case token.WILDCARD, token.IDENT, token.UIDENT, token.UNIT, token.LPAREN,
		token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE:
		return true
	}
	return false
}

func (p *Parser) parsePatternAtom() ast.Pattern {
	switch p.curToken.Type {
	case token.WILDCARD:
		tok := p.curToken
		p.nextToken()
		return &ast.WildcardPattern{Token: tok}
	case token.IDENT:
		tok := p.curToken
		p.nextToken()
		return &ast.IdentPattern{Token: tok, Value: tok.Lexeme}
	case token.UIDENT:
		tok := p.curToken
		path, tag := p.parseCtorPath()
		return &ast.CtorPattern{Token: tok, Path: path, Tag: tag}
	case token.UNIT:
		tok := p.curToken
		p.nextToken()
		return &ast.LiteralPattern{Token: tok, Value: &ast.UnitLiteral{Token: tok}}
	case token.INT:
		tok := p.curToken
		lit := p.parseIntegerLiteral()
		return &ast.LiteralPattern{Token: tok, Value: lit}
	case token.FLOAT:
		tok := p.curToken
		lit := p.parseFloatLiteral()
		return &ast.LiteralPattern{Token: tok, Value: lit}
	case token.STRING:
		tok := p.curToken
		p.nextToken()
		return &ast.LiteralPattern{Token: tok, Value: &ast.StringLiteral{Token: tok, Value: tok.Lexeme}}
	case token.CHAR:
		tok := p.curToken
		p.nextToken()
		return &ast.LiteralPattern{Token: tok, Value: &ast.CharLiteral{Token: tok, Value: tok.Lexeme}}
	case token.TRUE, token.FALSE:
		tok := p.curToken
		p.nextToken()
		return &ast.LiteralPattern{Token: tok, Value: &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}}
	case token.LPAREN:
		p.nextToken()
		pat := p.parsePatternTuple()
		if pat == nil {
			return nil
		}
		if _, ok := p.expect(token.RPAREN); !ok {
			return nil
		}
		return pat
	}
	p.addError(diagnostics.NewError(diagnostics.ErrP001, p.curToken, "unexpected token '"+p.curToken.Lexeme+"' in pattern"))
	return nil
}

// parsePatternTuple parses the inside of a parenthesized pattern:
// p or p, p, p.
func (p *Parser) parsePatternTuple() ast.Pattern {
	first := p.parsePattern()
	if first == nil {
		return nil
	}
	if !p.curTokenIs(token.COMMA) {
		return first
	}
	tok := p.curToken
	elements := []ast.Pattern{first}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		next := p.parsePattern()
		if next == nil {
			return nil
		}
		elements = append(elements, next)
	}
	return &ast.TuplePattern{Token: tok, Elements: elements}
}

// parseCtorPath consumes a capitalized path: Some, Stdlib.Result.Ok.
func (p *Parser) parseCtorPath() ([]string, string) {
	segments := []string{p.curToken.Lexeme}
	p.nextToken()
	for p.curTokenIs(token.DOT) && p.peekTokenIs(token.UIDENT) {
		p.nextToken()
		segments = append(segments, p.curToken.Lexeme)
		p.nextToken()
	}
	return segments[:len(segments)-1], segments[len(segments)-1]
}
