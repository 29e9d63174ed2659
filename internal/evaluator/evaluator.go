package evaluator

import (
	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/config"
	"github.com/funvibe/substructural/internal/diagnostics"
)

// Config carries the fresh-name prefixes a Store is built with. New
// replaces an empty prefix with the default one, so the zero value
// behaves like DefaultConfig().
type Config struct {
	ValuePrefix   string
	ClosurePrefix string
}

// DefaultConfig returns the default "%x"/"%f" fresh-name prefixes.
func DefaultConfig() Config {
	return Config{
		ValuePrefix:   config.DefaultValuePrefix,
		ClosurePrefix: config.DefaultClosurePrefix,
	}
}

// Configuration is the (store, term) pair the evaluator steps. It is the
// unit a host round-trips across calls: start one from a checked term,
// call Step repeatedly, and inspect Store/Term between calls.
type Configuration struct {
	Store *Store
	Term  ast.Term
}

// New builds the initial configuration for term: an empty store under
// cfg's fresh-name prefixes.
func New(term ast.Term, cfg Config) Configuration {
	store := NewStore()
	if cfg.ValuePrefix != "" {
		store.ValuePrefix = cfg.ValuePrefix
	}
	if cfg.ClosurePrefix != "" {
		store.ClosurePrefix = cfg.ClosurePrefix
	}
	return Configuration{Store: store, Term: term}
}

// Step advances c by exactly one reduction rule, returning the next
// configuration. c itself is left untouched; Store is shared, mutable
// state, so callers that want to keep c around across a Step call should
// not assume its Term is still meaningful afterward.
func (c Configuration) Step() (Configuration, *diagnostics.Error) {
	next, err := Step(c.Store, c.Term)
	if err != nil {
		return Configuration{}, err
	}
	return Configuration{Store: c.Store, Term: next}, nil
}

// IsValue reports whether c.Term is in value form (see the package-level
// IsValue).
func (c Configuration) IsValue() bool {
	return IsValue(c.Term)
}

// Run drives c forward by repeated Step calls until either the term
// reaches value form, an error occurs, or maxSteps transitions have been
// made without reaching one — the step budget a host imposes to bound
// non-terminating programs, such as an unguarded Fix. It returns the
// final configuration reached, the number of steps actually taken, and
// whether the budget was exhausted before a value was reached.
func Run(c Configuration, maxSteps int) (final Configuration, steps int, budgetExhausted bool, err *diagnostics.Error) {
	current := c
	for steps = 0; steps < maxSteps; steps++ {
		if current.IsValue() {
			return current, steps, false, nil
		}
		current, err = current.Step()
		if err != nil {
			return Configuration{}, steps, false, err
		}
	}
	return current, steps, !current.IsValue(), nil
}
