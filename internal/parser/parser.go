// Package parser turns a token stream into an ast.Term tree, stamping every
// node with the byte span it was parsed from.
package parser

import (
	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/diagnostics"
	"github.com/funvibe/substructural/internal/lexer"
	"github.com/funvibe/substructural/internal/token"
	"github.com/funvibe/substructural/internal/typesystem"
)

// Parser is a hand-written recursive-descent parser over a single token
// lookahead.
type Parser struct {
	l    *lexer.Lexer
	cur  token.Token
	peek token.Token
}

// New returns a Parser ready to parse source.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source)}
	p.cur = p.l.NextToken()
	p.peek = p.l.NextToken()
	return p
}

// Parse parses source as a single program term and requires it to consume
// the whole input. It is the sole entry point hosts should use; Parser
// itself is exported for tests that want to inspect partial parses.
func Parse(source string) (ast.Term, *diagnostics.Error) {
	p := New(source)
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.EOF {
		return nil, diagnostics.NewParseError(spanOf(p.cur), "unexpected trailing input: %q", p.cur.Lexeme)
	}
	return term, nil
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func spanOf(t token.Token) ast.Span {
	return ast.Span{Start: t.Start, End: t.End}
}

func (p *Parser) expect(kind token.Kind) (token.Token, *diagnostics.Error) {
	if p.cur.Kind != kind {
		return token.Token{}, diagnostics.NewParseError(spanOf(p.cur), "expected %s, got %s %q", kind, p.cur.Kind, p.cur.Lexeme)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// parseTerm parses one full term: an atom, optionally followed by a chain
// of parenthesized-argument applications (left-associative juxtaposition).
func (p *Parser) parseTerm() (ast.Term, *diagnostics.Error) {
	term, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.LPAREN {
		start := term.Span().Start
		p.advance()
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		closeTok, err := p.expect(token.RPAREN)
		if err != nil {
			return nil, err
		}
		term = ast.NewApplication(ast.Span{Start: start, End: closeTok.End}, term, arg)
	}
	return term, nil
}

func (p *Parser) parseAtom() (ast.Term, *diagnostics.Error) {
	switch p.cur.Kind {
	case token.DOLLAR:
		start := p.cur.Start
		p.advance()
		return p.parseQualifiedValue(typesystem.Linear, start)
	case token.TRUE, token.FALSE, token.INT, token.MINUS, token.PIPE, token.LANGLE, token.DIFF, token.ISZERO:
		return p.parseQualifiedValue(typesystem.Unrestricted, p.cur.Start)
	case token.IDENT:
		tok := p.cur
		p.advance()
		return ast.NewVariable(spanOf(tok), tok.Lexeme), nil
	case token.LPAREN:
		p.advance()
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case token.IF:
		return p.parseConditional()
	case token.FIX:
		start := p.cur.Start
		p.advance()
		// fix takes a single atom, so "fix f (x)" applies the fixed point
		// of f to x rather than taking the fixed point of f(x).
		operand, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return ast.NewFix(ast.Span{Start: start, End: operand.Span().End}, operand), nil
	case token.LET:
		return p.parseLet()
	default:
		return nil, diagnostics.NewParseError(spanOf(p.cur), "unexpected token %s %q", p.cur.Kind, p.cur.Lexeme)
	}
}

// parseQualifiedValue parses the constructs that carry a qualifier: a
// boolean or integer literal, an abstraction, a compound, or a primitive
// arithmetic call. start is the byte offset the qualifier prefix (if any)
// began at.
func (p *Parser) parseQualifiedValue(q typesystem.Qualifier, start int) (ast.Term, *diagnostics.Error) {
	switch p.cur.Kind {
	case token.TRUE:
		end := p.cur.End
		p.advance()
		return ast.NewBoolean(ast.Span{Start: start, End: end}, q, true), nil
	case token.FALSE:
		end := p.cur.End
		p.advance()
		return ast.NewBoolean(ast.Span{Start: start, End: end}, q, false), nil
	case token.INT:
		n := p.cur.Literal.(int64)
		end := p.cur.End
		p.advance()
		return ast.NewInteger(ast.Span{Start: start, End: end}, q, n), nil
	case token.MINUS:
		p.advance()
		numTok, err := p.expect(token.INT)
		if err != nil {
			return nil, err
		}
		n := numTok.Literal.(int64)
		return ast.NewInteger(ast.Span{Start: start, End: numTok.End}, q, -n), nil
	case token.PIPE:
		return p.parseAbstraction(q, start)
	case token.LANGLE:
		return p.parseCompound(q, start)
	case token.DIFF:
		return p.parseArith2(q, start)
	case token.ISZERO:
		return p.parseArith1(q, start)
	default:
		return nil, diagnostics.NewParseError(spanOf(p.cur), "expected literal, abstraction, compound, or primitive, got %s %q", p.cur.Kind, p.cur.Lexeme)
	}
}

func (p *Parser) parseAbstraction(q typesystem.Qualifier, start int) (ast.Term, *diagnostics.Error) {
	if _, err := p.expect(token.PIPE); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}

	var paramType typesystem.Type
	hasType := false
	if p.cur.Kind == token.COLON {
		p.advance()
		paramType, err = p.parseType()
		if err != nil {
			return nil, err
		}
		hasType = true
	}

	if _, err := p.expect(token.PIPE); err != nil {
		return nil, err
	}

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return ast.NewAbstraction(ast.Span{Start: start, End: body.Span().End}, q, nameTok.Lexeme, paramType, hasType, body), nil
}

func (p *Parser) parseCompound(q typesystem.Qualifier, start int) (ast.Term, *diagnostics.Error) {
	if _, err := p.expect(token.LANGLE); err != nil {
		return nil, err
	}
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	second, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect(token.RANGLE)
	if err != nil {
		return nil, err
	}
	return ast.NewCompound(ast.Span{Start: start, End: closeTok.End}, q, first, second), nil
}

func (p *Parser) parseArith1(q typesystem.Qualifier, start int) (ast.Term, *diagnostics.Error) {
	p.advance() // consume 'iszero'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	operand, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.NewArith1(ast.Span{Start: start, End: closeTok.End}, q, ast.IsZero, operand), nil
}

func (p *Parser) parseArith2(q typesystem.Qualifier, start int) (ast.Term, *diagnostics.Error) {
	p.advance() // consume 'diff'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	right, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.NewArith2(ast.Span{Start: start, End: closeTok.End}, q, ast.Diff, left, right), nil
}

func (p *Parser) parseConditional() (ast.Term, *diagnostics.Error) {
	start := p.cur.Start
	p.advance() // consume 'if'
	cond, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	then, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	els, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return ast.NewConditional(ast.Span{Start: start, End: closeTok.End}, cond, then, els), nil
}

func (p *Parser) parseLet() (ast.Term, *diagnostics.Error) {
	start := p.cur.Start
	p.advance() // consume 'let'

	if p.cur.Kind == token.LANGLE {
		p.advance()
		name1Tok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		name2Tok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RANGLE); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ASSIGN); err != nil {
			return nil, err
		}
		value, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.IN); err != nil {
			return nil, err
		}
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.NewLetc(ast.Span{Start: start, End: body.Span().End}, name1Tok.Lexeme, name2Tok.Lexeme, value, body), nil
	}

	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return ast.NewLet(ast.Span{Start: start, End: body.Span().End}, nameTok.Lexeme, value, body), nil
}
