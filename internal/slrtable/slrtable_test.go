package slrtable

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

// Grammar A from spec.md section 8: not LL(1) but is SLR(1).
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

func Test_Build_exprGrammarIsSLR1(t *testing.T) {
	g := exprGrammar(t)
	table := Build(g, g.Follow(g.First()))
	assert.True(t, table.IsSLR1())
	assert.Empty(t, table.Conflicts)
}

func Test_IsSLR1_agreesWithBuild(t *testing.T) {
	g := exprGrammar(t)
	follow := g.Follow(g.First())
	table := Build(g, follow)
	assert.Equal(t, table.IsSLR1(), IsSLR1(g, follow))
}

// Grammar F from spec.md section 8: S -> S S | a, ambiguous, reduce-reduce
// (and shift-reduce) conflicts expected.
func Test_Build_ambiguousGrammarHasConflicts(t *testing.T) {
	g, err := grammar.NewGrammar([]grammar.Production{
		p("S", "S", "S"),
		p("S", "a"),
	})
	assert.NoError(t, err)

	table := Build(g, g.Follow(g.First()))
	assert.False(t, table.IsSLR1())
	assert.NotEmpty(t, table.Conflicts)
}

func Test_Build_acceptActionOnEndMarkerAfterGotoOnStartSymbol(t *testing.T) {
	assert := assert.New(t)
	g, err := grammar.NewGrammar([]grammar.Production{p("S", "a")})
	assert.NoError(err)

	table := Build(g, g.Follow(g.First()))

	// the start state shifts 'a'; the state reached from it by GOTO on S
	// holds S' -> S . and accepts on "$"
	shiftAct := table.Action(0, "a")
	assert.Equal(Shift, shiftAct.Type)

	acceptState, ok := table.Goto(0, "S")
	assert.True(ok)
	acceptAct := table.Action(acceptState, "$")
	assert.Equal(Accept, acceptAct.Type)
}
