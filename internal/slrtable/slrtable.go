// Package slrtable constructs the SLR(1) ACTION/GOTO tables from a
// grammar's LR(0) canonical collection and FOLLOW sets, per spec.md
// section 4.7, and reports shift-reduce and reduce-reduce conflicts.
package slrtable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/predikt/internal/automaton"
	"github.com/dekarrin/predikt/internal/grammar"
)

// ActionType is the kind of ACTION table entry.
type ActionType int

const (
	// Error is the zero value: no action is defined for (state, terminal).
	Error ActionType = iota
	Shift
	Reduce
	Accept
)

func (t ActionType) String() string {
	switch t {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION[state, terminal] cell.
type Action struct {
	Type ActionType

	// State is the target state for Shift.
	State int

	// ProductionIndex indexes into the augmented production list (index 0
	// is the synthetic S' -> S production, 1..N are the original grammar's
	// productions); meaningful only for Reduce.
	ProductionIndex int
	Production      grammar.Production
}

func (a Action) String() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %s", a.Production)
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

func (a Action) equal(o Action) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case Shift:
		return a.State == o.State
	case Reduce:
		return a.ProductionIndex == o.ProductionIndex
	default:
		return true
	}
}

// ConflictKind distinguishes the two ways an ACTION cell can be
// overdetermined, per spec.md's glossary.
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict records a state/lookahead pair where two different actions were
// both applicable, per spec.md section 4.7.
type Conflict struct {
	Kind      ConflictKind
	State     int
	Terminal  string
	Existing  Action
	Attempted Action
}

func (c Conflict) Error() string {
	return fmt.Sprintf("%s conflict in state %d on %q: %s vs %s", c.Kind, c.State, c.Terminal, c.Existing, c.Attempted)
}

// Table is the SLR(1) ACTION/GOTO table plus its conflicts, built over the
// LR(0) canonical collection of the augmented grammar.
type Table struct {
	Collection *automaton.Collection
	action     map[int]map[string]Action
	goTo       map[int]map[string]int
	Conflicts  []Conflict
}

// Action returns ACTION[state, terminal]; the zero Action (type Error) if
// undefined.
func (t *Table) Action(state int, terminal string) Action {
	return t.action[state][terminal]
}

// Goto returns GOTO[state, nonTerminal] and whether it is defined.
func (t *Table) Goto(state int, nonTerminal string) (int, bool) {
	j, ok := t.goTo[state][nonTerminal]
	return j, ok
}

// IsSLR1 reports whether the table is conflict-free.
func (t *Table) IsSLR1() bool {
	return len(t.Conflicts) == 0
}

// Build constructs the SLR(1) table for g, per spec.md section 4.7.
func Build(g *grammar.Grammar, follow grammar.FollowSet) *Table {
	ag := g.Augment()
	coll := automaton.Build(ag)
	action, goTo, conflicts := analyze(g, ag, coll, follow)
	return &Table{Collection: coll, action: action, goTo: goTo, Conflicts: conflicts}
}

// IsSLR1 performs the same enumeration as Build purely to answer the
// validity question, without requiring the caller to hold onto a Table.
// It shares analyze with Build per spec.md section 9's "shared subroutine"
// design note, so the two can never drift.
func IsSLR1(g *grammar.Grammar, follow grammar.FollowSet) bool {
	ag := g.Augment()
	coll := automaton.Build(ag)
	_, _, conflicts := analyze(g, ag, coll, follow)
	return len(conflicts) == 0
}

// analyze enumerates every state of the canonical collection, populating
// ACTION and GOTO and recording conflicts, per spec.md section 4.7's three
// population rules. It is the single subroutine shared by Build and IsSLR1.
func analyze(g *grammar.Grammar, ag grammar.Augmented, coll *automaton.Collection, follow grammar.FollowSet) (map[int]map[string]Action, map[int]map[string]int, []Conflict) {
	prodIndex := indexAugmentedProductions(ag)

	action := make(map[int]map[string]Action, len(coll.States))
	goTo := make(map[int]map[string]int, len(coll.States))
	var conflicts []Conflict

	set := func(state int, terminal string, a Action) {
		if existing, ok := action[state][terminal]; ok {
			if !existing.equal(a) {
				kind := ReduceReduce
				if existing.Type == Shift || a.Type == Shift {
					kind = ShiftReduce
				}
				conflicts = append(conflicts, Conflict{
					Kind: kind, State: state, Terminal: terminal, Existing: existing, Attempted: a,
				})
			}
			return
		}
		action[state][terminal] = a
	}

	for i, state := range coll.States {
		action[i] = map[string]Action{}
		goTo[i] = map[string]int{}

		for _, it := range state.Items() {
			hasNext := len(it.Right) > 0
			var sym string
			if hasNext {
				sym = it.Right[0]
			}

			if hasNext && g.IsTerminal(sym) {
				j, ok := coll.Goto(i, sym)
				if ok {
					set(i, sym, Action{Type: Shift, State: j})
				}
			}

			if hasNext && g.IsNonTerminal(sym) {
				j, ok := coll.Goto(i, sym)
				if ok {
					goTo[i][sym] = j
				}
			}

			if !hasNext {
				if it.NonTerminal == ag.StartSymbol {
					// S' -> S . : accept on "$"
					set(i, grammar.EndMarker, Action{Type: Accept})
					continue
				}
				idx := prodIndex[productionKey(it.NonTerminal, it.Left)]
				prod := ag.Productions[idx]
				for _, a := range sortedTerminals(follow[it.NonTerminal]) {
					set(i, a, Action{Type: Reduce, ProductionIndex: idx, Production: prod})
				}
			}
		}
	}

	return action, goTo, conflicts
}

func indexAugmentedProductions(ag grammar.Augmented) map[string]int {
	idx := make(map[string]int, len(ag.Productions))
	for i, p := range ag.Productions {
		key := productionKey(p.NonTerminal, p.Symbols)
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

func productionKey(nt string, symbols []string) string {
	return nt + "\x1f" + strings.Join(symbols, "\x1f")
}

func sortedTerminals(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
