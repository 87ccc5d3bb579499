package recognize

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/dekarrin/predikt/internal/grammar"
	"github.com/dekarrin/predikt/internal/slrtable"
)

// SLR1 drives the two-stack shift-reduce parser of spec.md section 4.8.
// input must already end with the end-marker "$".
func SLR1(table *slrtable.Table, input []string) Result {
	states := arraystack.New()
	states.Push(0)
	symbols := arraystack.New()

	i := 0
	nextLookahead := func() string {
		if i >= len(input) {
			return grammar.EndMarker
		}
		return input[i]
	}

	for {
		a := nextLookahead()
		topVal, ok := states.Peek()
		if !ok {
			return reject(CauseStackExhaustion, "parser state stack emptied before input was consumed")
		}
		s := topVal.(int)

		act := table.Action(s, a)
		switch act.Type {
		case slrtable.Shift:
			symbols.Push(a)
			states.Push(act.State)
			i++

		case slrtable.Reduce:
			n := len(act.Production.Symbols)
			for k := 0; k < n; k++ {
				if _, ok := states.Pop(); !ok {
					return reject(CauseStackExhaustion, "state stack underflow during reduce")
				}
				symbols.Pop()
			}
			topVal, ok := states.Peek()
			if !ok {
				return reject(CauseStackExhaustion, "state stack emptied during reduce")
			}
			top := topVal.(int)
			j, ok := table.Goto(top, act.Production.NonTerminal)
			if !ok {
				return reject(CauseMissingTableEntry, "no GOTO entry for (%d, %s)", top, act.Production.NonTerminal)
			}
			symbols.Push(act.Production.NonTerminal)
			states.Push(j)

		case slrtable.Accept:
			return accepted

		default:
			return reject(CauseUnknownAction, "no ACTION entry for (%d, %s)", s, a)
		}
	}
}
