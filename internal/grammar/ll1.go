package grammar

import (
	"fmt"
	"sort"
)

// LL1Conflict records an attempt to populate an already-occupied LL(1)
// table cell with a different production, per spec.md section 4.4.
type LL1Conflict struct {
	NonTerminal string
	Terminal    string
	Existing    Production
	Attempted   Production
}

func (c LL1Conflict) Error() string {
	return fmt.Sprintf("LL(1) conflict at (%s, %s): both %s and %s predict here",
		c.NonTerminal, c.Terminal, c.Existing, c.Attempted)
}

// LL1Table is the partial mapping (A, a) -> alpha of spec.md section 3. At
// most one production occupies any cell; Conflicts records every attempt to
// set an occupied cell to a different production, in production-declaration
// order (spec.md section 5).
type LL1Table struct {
	cells     map[string]map[string]Production
	Conflicts []LL1Conflict
}

// Get looks up the production predicted for (nonTerminal, terminal). The
// second return value is false if the cell is empty.
func (t *LL1Table) Get(nonTerminal, terminal string) (Production, bool) {
	row, ok := t.cells[nonTerminal]
	if !ok {
		return Production{}, false
	}
	p, ok := row[terminal]
	return p, ok
}

// IsLL1 reports whether the grammar this table was built from is LL(1),
// i.e. whether no conflict was recorded (spec.md section 4.4, testable
// property 4).
func (t *LL1Table) IsLL1() bool {
	return len(t.Conflicts) == 0
}

// Cells returns every non-empty cell, for reporting purposes. Order is not
// guaranteed; callers that need deterministic output should sort the
// result.
func (t *LL1Table) Cells() []LL1Cell {
	var out []LL1Cell
	for nt, row := range t.cells {
		for term, p := range row {
			out = append(out, LL1Cell{NonTerminal: nt, Terminal: term, Production: p})
		}
	}
	return out
}

// LL1Cell is one populated (A, a) -> alpha entry.
type LL1Cell struct {
	NonTerminal string
	Terminal    string
	Production  Production
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BuildLL1Table populates an LL(1) predictive table from g's FIRST and
// FOLLOW sets, per spec.md section 4.4. Productions are processed in
// declaration order so conflicts are reported deterministically.
func BuildLL1Table(g *Grammar, first FirstSet, follow FollowSet) *LL1Table {
	t := &LL1Table{cells: map[string]map[string]Production{}}
	for _, nt := range g.NonTerminals() {
		t.cells[nt] = map[string]Production{}
	}

	set := func(nt, term string, p Production) {
		if existing, ok := t.cells[nt][term]; ok {
			if !existing.Equal(p) {
				t.Conflicts = append(t.Conflicts, LL1Conflict{
					NonTerminal: nt, Terminal: term, Existing: existing, Attempted: p,
				})
			}
			return
		}
		t.cells[nt][term] = p
	}

	for _, p := range g.productions {
		f := g.FirstOfString(p.Symbols, first)
		for _, a := range sortedKeys(f) {
			if a == epsilonSet {
				continue
			}
			set(p.NonTerminal, a, p)
		}
		if f[epsilonSet] {
			for _, b := range sortedKeys(follow[p.NonTerminal]) {
				set(p.NonTerminal, b, p)
			}
		}
	}

	return t
}
