package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/predikt/internal/grammar"
	"github.com/dekarrin/predikt/internal/toolkit"
)

func p(nt string, syms ...string) grammar.Production {
	if len(syms) == 1 && syms[0] == grammar.Epsilon {
		return grammar.Production{NonTerminal: nt}
	}
	return grammar.Production{NonTerminal: nt, Symbols: syms}
}

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

func Test_FirstFollowTable_containsEveryNonTerminal(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar(t)
	first, follow := g.First(), g.Follow(g.First())

	out := FirstFollowTable(g, first, follow)
	for _, nt := range g.NonTerminals() {
		assert.Contains(out, nt)
	}
}

func Test_LL1Table_rendersConflictingGrammar(t *testing.T) {
	g := exprGrammar(t)
	table := grammar.BuildLL1Table(g, g.First(), g.Follow(g.First()))

	out := LL1Table(g, table)
	assert.NotEmpty(t, out)
}

func Test_Verdicts_reportsSLR1OnlyGrammar(t *testing.T) {
	assert := assert.New(t)
	tk := toolkit.Build(exprGrammar(t))

	out := Verdicts(tk)
	assert.Contains(out, "not LL(1)")
	assert.Contains(out, "is SLR(1)")
}

func Test_BatchSummary_countsAcceptedAndRejected(t *testing.T) {
	assert := assert.New(t)
	tk := toolkit.Build(exprGrammar(t))
	entries := tk.RecognizeBatch(toolkit.SLR1, []string{"1+1", "1+"})

	out := BatchSummary(toolkit.SLR1, entries)
	assert.Contains(out, "1 of 2 accepted")
}
