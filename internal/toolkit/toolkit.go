// Package toolkit is the orchestrator: it sequences grammar analysis (the
// alphabets, FIRST, FOLLOW, LL(1) table, LR(0) collection, SLR(1) table),
// reports which of LL(1)/SLR(1)/both/neither a grammar is, and dispatches a
// batch of input strings to whichever recognizer the caller selects.
package toolkit

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/predikt/internal/automaton"
	"github.com/dekarrin/predikt/internal/grammar"
	"github.com/dekarrin/predikt/internal/recognize"
	"github.com/dekarrin/predikt/internal/slrtable"
)

// Method selects which recognizer drives Toolkit.Recognize.
type Method int

const (
	LL1 Method = iota
	SLR1
)

func (m Method) String() string {
	if m == SLR1 {
		return "SLR(1)"
	}
	return "LL(1)"
}

// Toolkit holds every analysis artifact derived from a single grammar load,
// per spec.md section 3's Lifecycle (one grammar load produces one set of
// tables; a fresh load replaces it entirely). RunID distinguishes one load
// from another for reporting and history purposes.
type Toolkit struct {
	RunID   uuid.UUID
	Grammar *grammar.Grammar

	First  grammar.FirstSet
	Follow grammar.FollowSet

	LL1Table   *grammar.LL1Table
	Collection *automaton.Collection
	SLR1Table  *slrtable.Table
}

// Build runs the full analysis pipeline of spec.md section 4 over g: FIRST,
// FOLLOW, the LL(1) table, the LR(0) canonical collection, and the SLR(1)
// table. It never fails — every stage is a total function of g.
func Build(g *grammar.Grammar) *Toolkit {
	first := g.First()
	follow := g.Follow(first)
	ll1 := grammar.BuildLL1Table(g, first, follow)
	slr := slrtable.Build(g, follow)

	return &Toolkit{
		RunID:      uuid.New(),
		Grammar:    g,
		First:      first,
		Follow:     follow,
		LL1Table:   ll1,
		Collection: slr.Collection,
		SLR1Table:  slr,
	}
}

// IsLL1 reports whether the loaded grammar is LL(1) (spec.md testable
// property 4: no conflict was recorded while building the table).
func (tk *Toolkit) IsLL1() bool {
	return tk.LL1Table.IsLL1()
}

// IsSLR1 reports whether the loaded grammar is SLR(1) (spec.md testable
// property 9: no shift-reduce or reduce-reduce conflict).
func (tk *Toolkit) IsSLR1() bool {
	return tk.SLR1Table.IsSLR1()
}

// Verdict summarizes which recognizer(s) the loaded grammar supports.
type Verdict int

const (
	VerdictNeither Verdict = iota
	VerdictLL1Only
	VerdictSLR1Only
	VerdictBoth
)

func (v Verdict) String() string {
	switch v {
	case VerdictLL1Only:
		return "LL(1) only"
	case VerdictSLR1Only:
		return "SLR(1) only"
	case VerdictBoth:
		return "both LL(1) and SLR(1)"
	default:
		return "neither LL(1) nor SLR(1)"
	}
}

// Verdict classifies the grammar per spec.md section 4.4/4.7's combined
// reporting requirement.
func (tk *Toolkit) Verdict() Verdict {
	ll1, slr1 := tk.IsLL1(), tk.IsSLR1()
	switch {
	case ll1 && slr1:
		return VerdictBoth
	case ll1:
		return VerdictLL1Only
	case slr1:
		return VerdictSLR1Only
	default:
		return VerdictNeither
	}
}

// Tokenize splits a raw input line into the single-character symbol
// sequence the core operates on (spec.md's Non-goals exclude multi-character
// terminals), discarding whitespace so grammar files may be visually
// aligned. It does not append the end-marker; callers needing a terminated
// symbol string should use Recognize or append grammar.EndMarker themselves.
func Tokenize(line string) []string {
	fields := strings.Fields(line)
	joined := strings.Join(fields, "")
	if joined == "" {
		return nil
	}
	out := make([]string, 0, len(joined))
	for _, r := range joined {
		out = append(out, string(r))
	}
	return out
}

// Recognize tokenizes line, appends the end-marker (spec.md section 6: "each
// remaining line is suffixed by the core with the end-marker $ before
// recognition"), and drives the selected recognizer over it.
func (tk *Toolkit) Recognize(method Method, line string) recognize.Result {
	symbols := append(Tokenize(line), grammar.EndMarker)

	switch method {
	case SLR1:
		return recognize.SLR1(tk.SLR1Table, symbols)
	default:
		return recognize.LL1(tk.Grammar, tk.LL1Table, symbols)
	}
}

// BatchEntry pairs one input line with its recognition outcome.
type BatchEntry struct {
	Input  string
	Result recognize.Result
}

// RecognizeBatch dispatches every line in lines to the selected recognizer,
// in order, per spec.md section 6's "dispatches a batch of input strings"
// responsibility.
func (tk *Toolkit) RecognizeBatch(method Method, lines []string) []BatchEntry {
	out := make([]BatchEntry, 0, len(lines))
	for _, line := range lines {
		out = append(out, BatchEntry{Input: line, Result: tk.Recognize(method, line)})
	}
	return out
}
