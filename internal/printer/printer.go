// Package printer renders an ast.Term back to source text. It closes the
// round-trip invariant the core relies on for testing: parse, print, and
// reparse must yield a structurally equal term. Concrete layout
// (indentation, when to break a line) is not dictated by the language, so
// this package uses a width-triggered, indent-tracking style: a construct
// stays on one line as long as it fits, and only breaks across multiple
// lines once it would overflow the target width.
package printer

import (
	"fmt"
	"strings"

	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/config"
	"github.com/funvibe/substructural/internal/typesystem"
)

const indentUnit = "  "

// printer tracks the nesting depth used for continuation lines and the
// target width a rendered construct must fit within before it is broken
// across multiple lines.
type printer struct {
	depth     int
	lineWidth int
}

// Print renders term as canonical source text at the default line width.
func Print(term ast.Term) string {
	return PrintWidth(term, config.DefaultLineWidth)
}

// PrintWidth renders term as canonical source text, breaking constructs
// that would otherwise exceed lineWidth columns onto multiple lines.
func PrintWidth(term ast.Term, lineWidth int) string {
	p := &printer{lineWidth: lineWidth}
	return p.term(term)
}

func (p *printer) indentAt(extra int) string {
	return strings.Repeat(indentUnit, p.depth+extra)
}

func qualifierPrefix(q typesystem.Qualifier) string {
	if q == typesystem.Linear {
		return "$"
	}
	return ""
}

func (p *printer) typ(t typesystem.Type) string {
	return p.pretype(t.Qualifier, t.Pretype)
}

func (p *printer) pretype(q typesystem.Qualifier, pt typesystem.Pretype) string {
	prefix := qualifierPrefix(q)
	switch pt.Kind {
	case typesystem.KindBool:
		return prefix + "bool"
	case typesystem.KindInt:
		return prefix + "int"
	case typesystem.KindCompound:
		return fmt.Sprintf("%s<%s, %s>", prefix, p.typ(pt.First), p.typ(pt.Second))
	case typesystem.KindFunction:
		in := p.typ(pt.In)
		if pt.In.Pretype.Kind == typesystem.KindFunction {
			in = "(" + in + ")"
		}
		arrow := fmt.Sprintf("%s -> %s", in, p.typ(pt.Out))
		if prefix != "" {
			// A bare prefix would attach to the domain when reparsed.
			return prefix + "(" + arrow + ")"
		}
		return arrow
	default:
		return prefix + "?"
	}
}

func (p *printer) term(t ast.Term) string {
	switch n := t.(type) {
	case *ast.Variable:
		return n.Name

	case *ast.Boolean:
		return fmt.Sprintf("%s%t", qualifierPrefix(n.Qualifier), n.Value)

	case *ast.Integer:
		return fmt.Sprintf("%s%d", qualifierPrefix(n.Qualifier), n.Value)

	case *ast.Compound:
		return p.compound(n)

	case *ast.Arith1:
		return fmt.Sprintf("%siszero(%s)", qualifierPrefix(n.Qualifier), p.term(n.Operand))

	case *ast.Arith2:
		return fmt.Sprintf("%sdiff(%s, %s)", qualifierPrefix(n.Qualifier), p.term(n.Left), p.term(n.Right))

	case *ast.Abstraction:
		return p.abstraction(n)

	case *ast.Application:
		return p.application(n)

	case *ast.Conditional:
		return p.conditional(n)

	case *ast.Fix:
		return fmt.Sprintf("fix %s", p.wrapIfApplication(n.Operand))

	case *ast.Let:
		return p.let(n)

	case *ast.Letc:
		return p.letc(n)

	default:
		return fmt.Sprintf("<unknown term %T>", t)
	}
}

// wrapIfApplication parenthesizes an operand of fix when it is itself an
// application, so reparsing doesn't attach the application's argument to
// the wrong node. Abstractions and variables never need this.
func (p *printer) wrapIfApplication(t ast.Term) string {
	s := p.term(t)
	if _, ok := t.(*ast.Application); ok {
		return "(" + s + ")"
	}
	return s
}

func (p *printer) compound(n *ast.Compound) string {
	s1 := p.term(n.First)
	s2 := p.term(n.Second)
	prefix := qualifierPrefix(n.Qualifier)
	oneline := fmt.Sprintf("%s<%s, %s>", prefix, s1, s2)
	if strings.Contains(oneline, "\n") || len(oneline) > p.lineWidth {
		p.depth++
		s1 = p.term(n.First)
		s2 = p.term(n.Second)
		p.depth--
		return fmt.Sprintf("%s<\n%s%s,\n%s%s\n%s>", prefix, p.indentAt(1), s1, p.indentAt(1), s2, p.indentAt(0))
	}
	return oneline
}

func (p *printer) abstraction(n *ast.Abstraction) string {
	prefix := qualifierPrefix(n.Qualifier)
	header := n.Param
	if n.HasType {
		header = fmt.Sprintf("%s: %s", n.Param, p.typ(n.ParamType))
	}

	p.depth++
	body := p.term(n.Body)
	p.depth--

	oneline := fmt.Sprintf("%s|%s| %s", prefix, header, body)
	if strings.Contains(body, "\n") || len(oneline) > p.lineWidth {
		return fmt.Sprintf("%s|%s|\n%s%s", prefix, header, p.indentAt(1), body)
	}
	return oneline
}

func (p *printer) application(n *ast.Application) string {
	s1 := p.term(n.Fun)
	switch n.Fun.(type) {
	case *ast.Abstraction, *ast.Fix, *ast.Let, *ast.Letc:
		// These extend as far right as they can when reparsed, so without
		// parentheses the argument would be read as part of their body.
		s1 = "(" + s1 + ")"
	}
	s2 := p.term(n.Arg)
	oneline := fmt.Sprintf("%s (%s)", s1, s2)
	if strings.Contains(s1, "\n") || strings.Contains(s2, "\n") || len(oneline) > p.lineWidth {
		return fmt.Sprintf("%s\n%s(%s)", s1, p.indentAt(0), s2)
	}
	return oneline
}

func (p *printer) conditional(n *ast.Conditional) string {
	p.depth++
	s1 := p.term(n.Cond)
	s2 := p.term(n.Then)
	s3 := p.term(n.Else)
	p.depth--

	oneline := fmt.Sprintf("if %s { %s } else { %s }", s1, s2, s3)
	if strings.Contains(oneline, "\n") || len(oneline) > p.lineWidth {
		return fmt.Sprintf("if %s {\n%s%s\n%s} else {\n%s%s\n%s}",
			s1, p.indentAt(1), s2, p.indentAt(0), p.indentAt(1), s3, p.indentAt(0))
	}
	return oneline
}

func (p *printer) let(n *ast.Let) string {
	s1 := p.term(n.Value)
	p.depth++
	s2 := p.term(n.Body)
	p.depth--
	oneline := fmt.Sprintf("let %s = %s in %s", n.Name, s1, s2)
	if strings.Contains(oneline, "\n") || len(oneline) > p.lineWidth {
		return fmt.Sprintf("let %s = %s in\n%s%s", n.Name, s1, p.indentAt(1), s2)
	}
	return oneline
}

func (p *printer) letc(n *ast.Letc) string {
	s1 := p.term(n.Value)
	p.depth++
	s2 := p.term(n.Body)
	p.depth--
	oneline := fmt.Sprintf("let <%s, %s> = %s in %s", n.Name1, n.Name2, s1, s2)
	if strings.Contains(oneline, "\n") || len(oneline) > p.lineWidth {
		return fmt.Sprintf("let <%s, %s> = %s in\n%s%s", n.Name1, n.Name2, s1, p.indentAt(1), s2)
	}
	return oneline
}
