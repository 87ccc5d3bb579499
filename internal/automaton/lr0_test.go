package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/predikt/internal/grammar"
)

func p(nt string, syms ...string) grammar.Production {
	if len(syms) == 1 && syms[0] == grammar.Epsilon {
		return grammar.Production{NonTerminal: nt}
	}
	return grammar.Production{NonTerminal: nt, Symbols: syms}
}

// Grammar A from spec.md section 8.
func exprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.NewGrammar([]grammar.Production{
		p("S", "S", "+", "T"),
		p("S", "T"),
		p("T", "T", "*", "F"),
		p("T", "F"),
		p("F", "(", "S", ")"),
		p("F", "1"),
	})
	if err != nil {
		t.Fatalf("build grammar: %v", err)
	}
	return g
}

func Test_Build_startStateIsClosureOfAugmentedStart(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar(t)
	ag := g.Augment()
	c := Build(ag)

	assert.NotEmpty(c.States)
	start := c.States[0]

	// closure({S' -> . S}) must also contain S -> . S + T and S -> . T,
	// and transitively T -> . T * F | . F and F -> . ( S ) | . 1
	foundAugStart := false
	for _, it := range start.Items() {
		if it.NonTerminal == "S'" {
			foundAugStart = true
		}
	}
	assert.True(foundAugStart)
	assert.GreaterOrEqual(len(start), 6)
}

func Test_Build_canonicalCollectionDedupesBySetContent(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar(t)
	c := Build(g.Augment())

	seen := map[string]bool{}
	for _, s := range c.States {
		sig := s.signature()
		assert.False(seen[sig], "duplicate state signature in canonical collection")
		seen[sig] = true
	}
}

func Test_Build_gotoIsDeterministic(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar(t)
	c := Build(g.Augment())

	j1, ok1 := c.Goto(0, "T")
	j2, ok2 := c.Goto(0, "T")
	assert.True(ok1)
	assert.True(ok2)
	assert.Equal(j1, j2)
}

func Test_Set_Fingerprint_stableAcrossInsertOrder(t *testing.T) {
	assert := assert.New(t)

	a := newSet(Item{NonTerminal: "S", Right: []string{"A", "B"}}, Item{NonTerminal: "T", Right: []string{"c"}})
	b := newSet(Item{NonTerminal: "T", Right: []string{"c"}}, Item{NonTerminal: "S", Right: []string{"A", "B"}})

	assert.Equal(a.signature(), b.signature())
	assert.Equal(a.Fingerprint(), b.Fingerprint())
}
