// Package automaton builds the canonical collection of LR(0) item sets for
// a grammar: the augmentation, closure, and goto operations of spec.md
// section 4.6.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"

	"github.com/dekarrin/predikt/internal/grammar"
)

// Item is an LR(0) item (production, dot-position), spec.md section 3.
// Left holds the symbols already before the dot; Right holds the symbols
// still to come.
type Item struct {
	NonTerminal string
	Left        []string
	Right       []string
}

// String renders the item as "A -> alpha . beta", matching the textual
// form used for structural equality throughout this package.
func (it Item) String() string {
	left := strings.Join(it.Left, " ")
	right := strings.Join(it.Right, " ")
	switch {
	case left != "" && right != "":
		return fmt.Sprintf("%s -> %s . %s", it.NonTerminal, left, right)
	case left != "":
		return fmt.Sprintf("%s -> %s .", it.NonTerminal, left)
	case right != "":
		return fmt.Sprintf("%s -> . %s", it.NonTerminal, right)
	default:
		return fmt.Sprintf("%s -> .", it.NonTerminal)
	}
}

// nextSymbol returns the symbol immediately after the dot, and whether one
// exists (false for a completed item A -> alpha .).
func (it Item) nextSymbol() (string, bool) {
	if len(it.Right) == 0 {
		return "", false
	}
	return it.Right[0], true
}

// advanced returns the item with the dot moved one position to the right.
func (it Item) advanced() Item {
	return Item{
		NonTerminal: it.NonTerminal,
		Left:        append(append([]string(nil), it.Left...), it.Right[0]),
		Right:       append([]string(nil), it.Right[1:]...),
	}
}

// itemFor builds the initial (dot-at-left) item for a production.
func itemFor(p grammar.Production) Item {
	return Item{NonTerminal: p.NonTerminal, Right: append([]string(nil), p.Symbols...)}
}

// Set is a set of LR(0) items, keyed by their structural string form so
// that equality is set equality over item content, never insertion order
// (spec.md section 9's canonical-equality design note).
type Set map[string]Item

func newSet(items ...Item) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it.String()] = it
	}
	return s
}

// Items returns the set's items in deterministic (string-sorted) order.
func (s Set) Items() []Item {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Item, 0, len(keys))
	for _, k := range keys {
		out = append(out, s[k])
	}
	return out
}

// signature is the canonical, order-independent representation of the set:
// its items' string forms, sorted and joined. Two sets are equal iff their
// signatures are equal.
func (s Set) signature() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x1f")
}

// Fingerprint returns a short structural hash of the set, suitable for use
// as a diagnostic identifier (e.g. the run-history fingerprint column); it is not used for
// the canonical-collection equality check itself, which compares the full
// signature to avoid hash-collision risk.
func (s Set) Fingerprint() string {
	h, err := structhash.Hash(s.signature(), 1)
	if err != nil {
		// structhash.Hash only fails to marshal; a string always marshals.
		panic(fmt.Sprintf("fingerprint a string: %v", err))
	}
	return h
}

func (s Set) add(it Item) bool {
	key := it.String()
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = it
	return true
}

// closure computes the closure of item set i over augmented grammar ag, per
// spec.md section 4.6: repeatedly, for every item A -> alpha . B beta with B
// a non-terminal, add every item B -> . gamma for each production B -> gamma.
func closure(i Set, ag grammar.Augmented) Set {
	result := make(Set, len(i))
	for k, v := range i {
		result[k] = v
	}

	for {
		grew := false
		for _, it := range result.Items() {
			sym, ok := it.nextSymbol()
			if !ok || !isNonTerminal(ag, sym) {
				continue
			}
			for _, p := range ag.Productions {
				if p.NonTerminal != sym {
					continue
				}
				if result.add(itemFor(p)) {
					grew = true
				}
			}
		}
		if !grew {
			break
		}
	}

	return result
}

func isNonTerminal(ag grammar.Augmented, sym string) bool {
	if sym == ag.StartSymbol {
		return true
	}
	return ag.Grammar().IsNonTerminal(sym)
}

// goTo computes Goto(i, x): the closure of every item advanced over x, per
// spec.md section 4.6.
func goTo(i Set, x string, ag grammar.Augmented) Set {
	moved := Set{}
	for _, it := range i.Items() {
		sym, ok := it.nextSymbol()
		if !ok || sym != x {
			continue
		}
		moved.add(it.advanced())
	}
	if len(moved) == 0 {
		return nil
	}
	return closure(moved, ag)
}

// Collection is the canonical collection of LR(0) item sets, ordered and
// indexed by position (the state identifiers of spec.md section 3).
type Collection struct {
	States      []Set
	Augmented   grammar.Augmented
	transitions []map[string]int // transitions[state][symbol] = next state
}

// Goto returns the state reached from state i on symbol x, and whether a
// transition is defined.
func (c *Collection) Goto(i int, x string) (int, bool) {
	j, ok := c.transitions[i][x]
	return j, ok
}

// Build enumerates the canonical collection of LR(0) item sets for ag,
// per spec.md section 4.6. State 0 is closure({S' -> . S}).
func Build(ag grammar.Augmented) *Collection {
	start := closure(newSet(itemFor(ag.Productions[0])), ag)

	c := &Collection{Augmented: ag}
	bySignature := map[string]int{}

	addState := func(s Set) int {
		if idx, ok := bySignature[s.signature()]; ok {
			return idx
		}
		idx := len(c.States)
		c.States = append(c.States, s)
		c.transitions = append(c.transitions, map[string]int{})
		bySignature[s.signature()] = idx
		return idx
	}

	addState(start)

	for i := 0; i < len(c.States); i++ {
		state := c.States[i]
		for _, sym := range symbolsAfterDot(state) {
			next := goTo(state, sym, ag)
			if len(next) == 0 {
				continue
			}
			j := addState(next)
			c.transitions[i][sym] = j
		}
	}

	return c
}

// symbolsAfterDot returns, in deterministic order, every distinct symbol
// that appears immediately after a dot in some item of the set.
func symbolsAfterDot(s Set) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range s.Items() {
		sym, ok := it.nextSymbol()
		if !ok || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
