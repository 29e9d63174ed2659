package parser

import (
	"github.com/funvibe/substructural/internal/diagnostics"
	"github.com/funvibe/substructural/internal/token"
	"github.com/funvibe/substructural/internal/typesystem"
)

// parseType parses a (possibly qualified) Type. Arrows are right
// associative: "A -> B -> C" is Function(A, Function(B, C)).
func (p *Parser) parseType() (typesystem.Type, *diagnostics.Error) {
	left, err := p.parseQualifiedPretype()
	if err != nil {
		return typesystem.Type{}, err
	}
	if p.cur.Kind == token.ARROW {
		p.advance()
		right, err := p.parseType()
		if err != nil {
			return typesystem.Type{}, err
		}
		return typesystem.NewType(typesystem.Unrestricted, typesystem.Function(left, right)), nil
	}
	return left, nil
}

// parseQualifiedPretype parses a single type atom — bool, int, a compound
// <T, T>, or a parenthesized type — with an optional leading qualifier
// prefix. A prefix on a parenthesized type that itself already carries a
// qualifier is a parse error (qualifiers don't nest on the same pretype).
func (p *Parser) parseQualifiedPretype() (typesystem.Type, *diagnostics.Error) {
	q := typesystem.Unrestricted
	hasQ := false
	if p.cur.Kind == token.DOLLAR {
		hasQ = true
		q = typesystem.Linear
		p.advance()
	}

	switch p.cur.Kind {
	case token.BOOL:
		p.advance()
		return typesystem.NewType(q, typesystem.Bool()), nil
	case token.INTTY:
		p.advance()
		return typesystem.NewType(q, typesystem.Int()), nil
	case token.LANGLE:
		p.advance()
		first, err := p.parseType()
		if err != nil {
			return typesystem.Type{}, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return typesystem.Type{}, err
		}
		second, err := p.parseType()
		if err != nil {
			return typesystem.Type{}, err
		}
		if _, err := p.expect(token.RANGLE); err != nil {
			return typesystem.Type{}, err
		}
		return typesystem.NewType(q, typesystem.CompoundOf(first, second)), nil
	case token.LPAREN:
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return typesystem.Type{}, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return typesystem.Type{}, err
		}
		if hasQ && inner.Qualifier == typesystem.Linear {
			return typesystem.Type{}, diagnostics.NewParseError(spanOf(p.cur), "nested qualifier on the same pretype")
		}
		finalQ := q
		if !hasQ {
			finalQ = inner.Qualifier
		}
		return typesystem.NewType(finalQ, inner.Pretype), nil
	default:
		return typesystem.Type{}, diagnostics.NewParseError(spanOf(p.cur), "expected a type, got %s %q", p.cur.Kind, p.cur.Lexeme)
	}
}
