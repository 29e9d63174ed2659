// Package ast defines the immutable term algebra of the language: a tagged
// union of term constructors, each stamped with the source span it came
// from. Terms are built once by the parser and never mutated afterward;
// the checker and the evaluator both read the same tree.
package ast

// Span is a half-open byte interval [Start, End) into the original source.
// It is the stable identity the checker uses to key its per-node type map,
// and the evaluator threads a node's span into any derived node that
// corresponds to the same source position.
type Span struct {
	Start int
	End   int
}
