package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
)

// Production is one alternative A -> alpha. Symbols is the ordered sequence
// of right-hand-side symbols; a nil or empty Symbols represents A -> epsilon.
type Production struct {
	NonTerminal string
	Symbols     []string
}

// IsEpsilon reports whether this production's right-hand side is empty.
func (p Production) IsEpsilon() bool {
	return len(p.Symbols) == 0
}

// String renders the production in "A -> X Y Z" form, or "A -> e" for an
// epsilon production.
func (p Production) String() string {
	if p.IsEpsilon() {
		return fmt.Sprintf("%s -> %s", p.NonTerminal, Epsilon)
	}
	return fmt.Sprintf("%s -> %s", p.NonTerminal, strings.Join(p.Symbols, " "))
}

// Equal compares two productions structurally.
func (p Production) Equal(o Production) bool {
	if p.NonTerminal != o.NonTerminal || len(p.Symbols) != len(o.Symbols) {
		return false
	}
	for i := range p.Symbols {
		if p.Symbols[i] != o.Symbols[i] {
			return false
		}
	}
	return true
}

// Grammar is the tuple (N, T, P, S) of spec.md section 3. It is built once
// by NewGrammar and is immutable afterward; every analysis in this module
// is a pure function of a Grammar value.
type Grammar struct {
	productions  []Production
	terminals    *hashset.Set
	nonTerminals *hashset.Set
}

// NewGrammar derives a Grammar from an ordered list of productions. The
// first production's left-hand side becomes the start symbol. Returns an
// error if productions is empty, if any non-terminal ends in the augmenting
// marker "'" (which NewGrammar reserves for LR(0) augmentation), or if a
// terminal or non-terminal collides with the reserved symbols "$"/"e".
func NewGrammar(productions []Production) (*Grammar, error) {
	if len(productions) == 0 {
		return nil, fmt.Errorf("grammar has no productions")
	}

	g := &Grammar{
		productions:  append([]Production(nil), productions...),
		terminals:    hashset.New(),
		nonTerminals: hashset.New(),
	}

	for _, p := range g.productions {
		if p.NonTerminal == "" {
			return nil, fmt.Errorf("production has empty left-hand side")
		}
		if !IsNonTerminal(p.NonTerminal) {
			return nil, fmt.Errorf("left-hand side %q is not an uppercase non-terminal", p.NonTerminal)
		}
		if strings.HasSuffix(p.NonTerminal, "'") {
			return nil, fmt.Errorf("non-terminal %q uses the reserved augmentation suffix \"'\"", p.NonTerminal)
		}
		g.nonTerminals.Add(p.NonTerminal)

		for _, sym := range p.Symbols {
			if sym == Epsilon {
				return nil, fmt.Errorf("production %s uses %q mid-production; epsilon must be the entire right-hand side", p, Epsilon)
			}
			if IsNonTerminal(sym) {
				g.nonTerminals.Add(sym)
			} else {
				if sym == EndMarker {
					return nil, fmt.Errorf("production %s uses the reserved end-marker %q", p, EndMarker)
				}
				g.terminals.Add(sym)
			}
		}
	}

	g.terminals.Add(EndMarker)

	return g, nil
}

// Productions returns the ordered production list, indexable by position as
// spec.md section 3 requires.
func (g *Grammar) Productions() []Production {
	return append([]Production(nil), g.productions...)
}

// Production returns the production at the given declaration index.
func (g *Grammar) Production(i int) Production {
	return g.productions[i]
}

// NumProductions returns the number of declared productions.
func (g *Grammar) NumProductions() int {
	return len(g.productions)
}

// StartSymbol returns S, the left-hand side of the first declared production.
func (g *Grammar) StartSymbol() string {
	return g.productions[0].NonTerminal
}

// IsTerminal reports whether sym is in the terminal alphabet (including "$").
func (g *Grammar) IsTerminal(sym string) bool {
	return g.terminals.Contains(sym)
}

// IsNonTerminal reports whether sym is in the non-terminal alphabet.
func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.nonTerminals.Contains(sym)
}

// Terminals returns the terminal alphabet, sorted for deterministic output.
// "$" is always included.
func (g *Grammar) Terminals() []string {
	return sortedStrings(g.terminals.Values())
}

// NonTerminals returns the non-terminal alphabet, sorted for deterministic
// output.
func (g *Grammar) NonTerminals() []string {
	return sortedStrings(g.nonTerminals.Values())
}

// ProductionsFor returns, in declaration order, every production whose
// left-hand side is nt.
func (g *Grammar) ProductionsFor(nt string) []Production {
	var out []Production
	for _, p := range g.productions {
		if p.NonTerminal == nt {
			out = append(out, p)
		}
	}
	return out
}

func sortedStrings(vals []interface{}) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.(string))
	}
	sort.Strings(out)
	return out
}

// Augmented is the augmented grammar S' -> S used for LR(0) construction
// (spec.md section 3, "Augmented production"). The fresh start symbol is S
// suffixed with a quote character; NewGrammar rejects input grammars that
// already declare such a symbol, so disjointness is guaranteed.
type Augmented struct {
	StartSymbol string // S', the synthetic start symbol
	// Productions holds the augmented production at index 0, followed by
	// the original grammar's productions at indices 1..N, matching
	// spec.md section 4.6's indexing.
	Productions []Production
	g           *Grammar
}

// Augment builds the augmented grammar for g.
func (g *Grammar) Augment() Augmented {
	augStart := g.StartSymbol() + "'"
	prods := make([]Production, 0, len(g.productions)+1)
	prods = append(prods, Production{NonTerminal: augStart, Symbols: []string{g.StartSymbol()}})
	prods = append(prods, g.productions...)
	return Augmented{StartSymbol: augStart, Productions: prods, g: g}
}

// Grammar returns the original (non-augmented) grammar this was built from.
func (a Augmented) Grammar() *Grammar {
	return a.g
}
