package recognize

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/dekarrin/predikt/internal/grammar"
)

// LL1 drives the single-stack predictive parser of spec.md section 4.5.
// input must already end with the end-marker "$" (spec.md section 6: the
// core appends it before recognition).
func LL1(g *grammar.Grammar, table *grammar.LL1Table, input []string) Result {
	stack := arraystack.New()
	stack.Push(grammar.EndMarker)
	stack.Push(g.StartSymbol())

	i := 0

	for {
		topVal, ok := stack.Peek()
		if !ok {
			return reject(CauseStackExhaustion, "parser stack emptied before input was consumed")
		}
		x := topVal.(string)

		if i >= len(input) {
			return reject(CauseStackExhaustion, "input exhausted before reaching the end marker")
		}
		a := input[i]

		if x == grammar.EndMarker && a == grammar.EndMarker {
			return accepted
		}

		if g.IsTerminal(x) {
			if x == a {
				stack.Pop()
				i++
				continue
			}
			return reject(CauseUnexpectedSymbol, "expected %q but found %q", x, a)
		}

		// x is a non-terminal: consult the LL(1) table.
		prod, found := table.Get(x, a)
		if !found {
			return reject(CauseMissingTableEntry, "no LL(1) entry for (%s, %s)", x, a)
		}

		stack.Pop()
		for j := len(prod.Symbols) - 1; j >= 0; j-- {
			stack.Push(prod.Symbols[j])
		}
	}
}
