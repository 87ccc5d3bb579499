package toolkit

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

// Grammar A from spec.md section 8: not LL(1), is SLR(1).
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

func Test_Build_verdictSLR1Only(t *testing.T) {
	assert := assert.New(t)
	tk := Build(exprGrammar(t))

	assert.False(tk.IsLL1())
	assert.True(tk.IsSLR1())
	assert.Equal(VerdictSLR1Only, tk.Verdict())
	assert.NotEqual("00000000-0000-0000-0000-000000000000", tk.RunID.String())
}

func Test_Build_verdictBoth(t *testing.T) {
	g, err := grammar.NewGrammar([]grammar.Production{
		p("S", "(", "S", ")", "S"),
		p("S", grammar.Epsilon),
	})
	assert.NoError(t, err)

	tk := Build(g)
	assert.Equal(VerdictBoth, tk.Verdict())
}

func Test_Recognize_SLR1(t *testing.T) {
	assert := assert.New(t)
	tk := Build(exprGrammar(t))

	assert.True(tk.Recognize(SLR1, "1 + 1 * ( 1 )").Accepted)
	assert.False(tk.Recognize(SLR1, "1 +").Accepted)
}

func Test_RecognizeBatch_preservesOrder(t *testing.T) {
	assert := assert.New(t)
	tk := Build(exprGrammar(t))

	results := tk.RecognizeBatch(SLR1, []string{"1", "1+1", "1+"})
	assert.Len(results, 3)
	assert.Equal("1", results[0].Input)
	assert.True(results[0].Result.Accepted)
	assert.True(results[1].Result.Accepted)
	assert.False(results[2].Result.Accepted)
}

func Test_Tokenize_stripsWhitespace(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"1", "+", "1"}, Tokenize("1 + 1"))
	assert.Nil(Tokenize("   "))
}
