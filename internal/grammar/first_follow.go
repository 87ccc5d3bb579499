package grammar

// FirstSet maps a non-terminal to the set of terminals (plus, possibly, the
// epsilon marker) that can begin some string it derives. It is returned by
// First and is safe to share; callers must not mutate the inner sets.
type FirstSet map[string]map[string]bool

// FollowSet maps a non-terminal to the set of terminals that can
// immediately follow it in some sentential form. It never contains epsilon.
type FollowSet map[string]map[string]bool

// First computes FIRST(A) for every non-terminal in g to a least fixpoint,
// per spec.md section 4.2. The computation is monotone growth over a finite
// lattice (one set per non-terminal, bounded by the terminal alphabet plus
// epsilon), so it always terminates.
func (g *Grammar) First() FirstSet {
	first := make(FirstSet, len(g.nonTerminals.Values()))
	for _, nt := range g.NonTerminals() {
		first[nt] = map[string]bool{}
	}

	for {
		grew := false
		for _, p := range g.productions {
			before := len(first[p.NonTerminal])
			g.growFirstFor(p, first)
			if len(first[p.NonTerminal]) != before {
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	return first
}

func (g *Grammar) growFirstFor(p Production, first FirstSet) {
	if p.IsEpsilon() {
		first[p.NonTerminal][epsilonSet] = true
		return
	}

	for _, sym := range p.Symbols {
		if g.IsTerminal(sym) {
			first[p.NonTerminal][sym] = true
			return
		}

		// non-terminal: add FIRST(sym) \ {epsilon}
		nullable := false
		for t := range first[sym] {
			if t == epsilonSet {
				nullable = true
				continue
			}
			first[p.NonTerminal][t] = true
		}
		if !nullable {
			return
		}
		// sym was nullable; continue the walk to the next symbol
	}

	// every symbol in the production was nullable
	first[p.NonTerminal][epsilonSet] = true
}

// FirstOfString computes FIRST(alpha) for an arbitrary symbol sequence
// (terminals and/or non-terminals), using an already-computed FirstSet. This
// is the derived helper used by the LL(1) and SLR(1) table builders.
func (g *Grammar) FirstOfString(alpha []string, first FirstSet) map[string]bool {
	result := map[string]bool{}
	if len(alpha) == 0 {
		result[epsilonSet] = true
		return result
	}

	for _, sym := range alpha {
		if g.IsTerminal(sym) {
			result[sym] = true
			return result
		}

		nullable := false
		for t := range first[sym] {
			if t == epsilonSet {
				nullable = true
				continue
			}
			result[t] = true
		}
		if !nullable {
			return result
		}
	}

	result[epsilonSet] = true
	return result
}

// Follow computes FOLLOW(A) for every non-terminal in g to a least fixpoint,
// per spec.md section 4.3. FOLLOW(S) is seeded with "$"; the fixpoint never
// inserts epsilon into any set.
func (g *Grammar) Follow(first FirstSet) FollowSet {
	follow := make(FollowSet, len(g.nonTerminals.Values()))
	for _, nt := range g.NonTerminals() {
		follow[nt] = map[string]bool{}
	}
	follow[g.StartSymbol()][EndMarker] = true

	for {
		grew := false
		for _, p := range g.productions {
			for i, sym := range p.Symbols {
				if !g.IsNonTerminal(sym) {
					continue
				}
				before := len(follow[sym])

				beta := p.Symbols[i+1:]
				firstBeta := g.FirstOfString(beta, first)
				for t := range firstBeta {
					if t == epsilonSet {
						continue
					}
					follow[sym][t] = true
				}
				if len(beta) == 0 || firstBeta[epsilonSet] {
					for t := range follow[p.NonTerminal] {
						follow[sym][t] = true
					}
				}

				if len(follow[sym]) != before {
					grew = true
				}
			}
		}
		if !grew {
			break
		}
	}

	return follow
}
