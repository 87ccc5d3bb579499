package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func p(nt string, syms ...string) Production {
	if len(syms) == 1 && syms[0] == Epsilon {
		return Production{NonTerminal: nt}
	}
	return Production{NonTerminal: nt, Symbols: syms}
}

func Test_NewGrammar_rejectsEmpty(t *testing.T) {
	_, err := NewGrammar(nil)
	assert.Error(t, err)
}

func Test_NewGrammar_rejectsReservedAugmentSuffix(t *testing.T) {
	_, err := NewGrammar([]Production{p("S", "a")})
	assert.NoError(t, err)

	_, err = NewGrammar([]Production{p("S'", "a")})
	assert.Error(t, err)
}

func Test_NewGrammar_alphabets(t *testing.T) {
	assert := assert.New(t)

	// S -> ( S ) S | e
	g, err := NewGrammar([]Production{
		p("S", "(", "S", ")", "S"),
		p("S", Epsilon),
	})
	assert.NoError(err)

	assert.Equal([]string{"S"}, g.NonTerminals())
	assert.Equal([]string{"$", "(", ")"}, g.Terminals())
	assert.Equal("S", g.StartSymbol())
}

func Test_NewGrammar_unseenUppercaseStaysNonTerminal(t *testing.T) {
	assert := assert.New(t)

	// B is used on a right-hand side but never declared as a left-hand side.
	g, err := NewGrammar([]Production{
		p("S", "B", "a"),
	})
	assert.NoError(err)
	assert.True(g.IsNonTerminal("B"))
	assert.False(g.IsTerminal("B"))

	first := g.First()
	assert.Empty(first["B"])
}

// grammar C from spec.md section 8: classic expression grammar.
func exprGrammar(t *testing.T) *Grammar {
	t.Helper()
	g, err := NewGrammar([]Production{
		p("E", "T", "A"),
		p("A", "+", "T", "A"),
		p("A", Epsilon),
		p("T", "F", "B"),
		p("B", "*", "F", "B"),
		p("B", Epsilon),
		p("F", "(", "E", ")"),
		p("F", "1"),
	})
	if err != nil {
		t.Fatalf("build grammar: %v", err)
	}
	return g
}

func Test_First_exprGrammar(t *testing.T) {
	g := exprGrammar(t)
	first := g.First()

	assertSet(t, first["E"], "(", "1")
	assertSet(t, first["T"], "(", "1")
	assertSet(t, first["F"], "(", "1")
	assertSet(t, first["A"], "+", epsilonSet)
	assertSet(t, first["B"], "*", epsilonSet)
}

func Test_Follow_exprGrammar(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar(t)
	first := g.First()
	follow := g.Follow(first)

	assertSet(t, follow["E"], "$", ")")
	assert.NotContains(follow["E"], epsilonSet)
	for _, nt := range g.NonTerminals() {
		assert.NotContains(follow[nt], epsilonSet, "FOLLOW(%s) must never contain epsilon", nt)
	}
}

func Test_Follow_startAlwaysHasEndMarker(t *testing.T) {
	g := exprGrammar(t)
	follow := g.Follow(g.First())
	assert.True(t, follow[g.StartSymbol()][EndMarker])
}

func Test_BuildLL1Table_exprGrammarIsLL1(t *testing.T) {
	g := exprGrammar(t)
	first := g.First()
	follow := g.Follow(first)
	table := BuildLL1Table(g, first, follow)

	assert.True(t, table.IsLL1())

	prod, ok := table.Get("A", "+")
	assert.True(t, ok)
	assert.Equal(t, "A -> + T A", prod.String())

	_, ok = table.Get("A", "1")
	assert.False(t, ok)
}

// grammar F from spec.md section 8: ambiguous, reduce-reduce at the LL(1)
// layer manifests as a first/first conflict since both alternatives of S
// can start with 'a'-derived strings.
func Test_BuildLL1Table_ambiguousGrammarConflicts(t *testing.T) {
	g, err := NewGrammar([]Production{
		p("S", "S", "S"),
		p("S", "a"),
	})
	assert.NoError(t, err)

	first := g.First()
	follow := g.Follow(first)
	table := BuildLL1Table(g, first, follow)

	assert.False(t, table.IsLL1())
	assert.NotEmpty(t, table.Conflicts)
}

// left-recursive grammar A from spec.md section 8: not LL(1).
func Test_BuildLL1Table_leftRecursiveGrammarConflicts(t *testing.T) {
	g, err := NewGrammar([]Production{
		p("S", "S", "+", "T"),
		p("S", "T"),
		p("T", "T", "*", "F"),
		p("T", "F"),
		p("F", "(", "S", ")"),
		p("F", "1"),
	})
	assert.NoError(t, err)

	first := g.First()
	follow := g.Follow(first)
	table := BuildLL1Table(g, first, follow)

	assert.False(t, table.IsLL1())
}

func assertSet(t *testing.T, got map[string]bool, want ...string) {
	t.Helper()
	assert.Len(t, got, len(want), "set %v", got)
	for _, w := range want {
		assert.True(t, got[w], "expected %q in %v", w, got)
	}
}
