// Package report renders the observable output spec.md section 6 requires:
// the start symbol, FIRST/FOLLOW sets, populated LL(1) cells, the LL(1) and
// SLR(1) validity verdicts, and per-string accept/reject results with cause
// classes. Tables are rendered with rosed, status lines with pterm, exactly
// as the teacher's parse package and its sibling repos do.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/predikt/internal/grammar"
	"github.com/dekarrin/predikt/internal/toolkit"
)

// FirstFollowTable renders FIRST and FOLLOW for every non-terminal as two
// side-by-side columns, in alphabet order.
func FirstFollowTable(g *grammar.Grammar, first grammar.FirstSet, follow grammar.FollowSet) string {
	data := [][]string{{"NT", "FIRST", "FOLLOW"}}
	for _, nt := range g.NonTerminals() {
		data = append(data, []string{nt, formatSet(first[nt]), formatSet(follow[nt])})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 20, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func formatSet(set map[string]bool) string {
	terms := make([]string, 0, len(set))
	for t := range set {
		if t == "" {
			terms = append(terms, grammar.Epsilon)
			continue
		}
		terms = append(terms, t)
	}
	sortStrings(terms)
	return "{ " + strings.Join(terms, ", ") + " }"
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// LL1Table renders every populated (A, a) -> alpha cell, in non-terminal
// then terminal order.
func LL1Table(g *grammar.Grammar, table *grammar.LL1Table) string {
	data := [][]string{{"NT", "Terminal", "Production"}}
	for _, nt := range g.NonTerminals() {
		for _, term := range g.Terminals() {
			if p, ok := table.Get(nt, term); ok {
				data = append(data, []string{nt, term, p.String()})
			}
		}
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 20, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Verdicts prints whether the grammar is LL(1), SLR(1), both, or neither,
// colorized with pterm, mirroring the teacher's REPL status messages.
func Verdicts(tk *toolkit.Toolkit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", pterm.Info.Sprintf("start symbol: %s", tk.Grammar.StartSymbol()))

	if tk.IsLL1() {
		fmt.Fprintln(&b, pterm.Success.Sprint("grammar is LL(1)"))
	} else {
		fmt.Fprintln(&b, pterm.Warning.Sprintf("grammar is not LL(1): %d conflict(s)", len(tk.LL1Table.Conflicts)))
	}

	if tk.IsSLR1() {
		fmt.Fprintln(&b, pterm.Success.Sprint("grammar is SLR(1)"))
	} else {
		fmt.Fprintln(&b, pterm.Warning.Sprintf("grammar is not SLR(1): %d conflict(s)", len(tk.SLR1Table.Conflicts)))
	}

	fmt.Fprintln(&b, pterm.Info.Sprintf("verdict: %s", tk.Verdict()))
	return b.String()
}

// BatchSummary renders a humanized count of accepted vs. rejected strings
// followed by one line per string.
func BatchSummary(method toolkit.Method, entries []toolkit.BatchEntry) string {
	var accepted int
	for _, e := range entries {
		if e.Result.Accepted {
			accepted++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s recognizer: %s of %s accepted\n",
		method, humanize.Comma(int64(accepted)), humanize.Comma(int64(len(entries))))

	for _, e := range entries {
		if e.Result.Accepted {
			fmt.Fprintf(&b, "  %s accept\n", pterm.FgGreen.Sprint(e.Input))
			continue
		}
		fmt.Fprintf(&b, "  %s reject (%s): %s\n", pterm.FgRed.Sprint(e.Input), e.Result.Cause, e.Result.Message)
	}
	return b.String()
}
