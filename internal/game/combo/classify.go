package combo

import (
	"sort"

	"doudizhu/internal/game/card"
)

// rankGroups is the by-rank view classification and enumeration work over.
type rankGroups struct {
	ranks  []card.Rank              // ascending, distinct
	counts map[card.Rank]int        // rank -> multiplicity
	cards  map[card.Rank][]card.Card
}

func groupByRank(cards []card.Card) rankGroups {
	g := rankGroups{
		counts: make(map[card.Rank]int),
		cards:  make(map[card.Rank][]card.Card),
	}
	for _, c := range cards {
		if g.counts[c.Rank] == 0 {
			g.ranks = append(g.ranks, c.Rank)
		}
		g.counts[c.Rank]++
		g.cards[c.Rank] = append(g.cards[c.Rank], c)
	}
	sort.Slice(g.ranks, func(i, j int) bool { return g.ranks[i] < g.ranks[j] })
	return g
}

// consecutive reports whether the distinct ranks form one unbroken run kept
// entirely below Two.
func (g rankGroups) consecutive() bool {
	for i, r := range g.ranks {
		if r >= card.Two {
			return false
		}
		if i > 0 && r != g.ranks[i-1]+1 {
			return false
		}
	}
	return len(g.ranks) > 0
}

// uniformCount reports whether every rank occurs exactly n times.
func (g rankGroups) uniformCount(n int) bool {
	for _, r := range g.ranks {
		if g.counts[r] != n {
			return false
		}
	}
	return true
}

func (g rankGroups) ranksWithCount(n int) []card.Rank {
	var out []card.Rank
	for _, r := range g.ranks {
		if g.counts[r] == n {
			out = append(out, r)
		}
	}
	return out
}

// Classify determines the unique shape an exact card set forms. ok is false
// for an empty set or a set matching no legal shape under the rule set.
// Recognition runs rocket, bombs, plain shapes, then the advanced composites;
// give a shape's size and rank pattern there is never more than one match.
func Classify(cards []card.Card, rules RuleSet) (Combination, bool) {
	if len(cards) == 0 {
		return Combination{}, false
	}
	sorted := make([]card.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank < sorted[j].Rank
		}
		return sorted[i].Suit < sorted[j].Suit
	})
	g := groupByRank(sorted)

	if len(sorted) == 2 && sorted[0].IsJoker() && sorted[1].IsJoker() && sorted[0].Suit != sorted[1].Suit {
		return Combination{Kind: Rocket, Rank: card.Joker, Cards: sorted}, true
	}

	if c, ok := classifyBomb(sorted, g, rules); ok {
		return c, true
	}

	switch len(sorted) {
	case 1:
		return Combination{Kind: Single, Rank: sorted[0].Rank, Cards: sorted}, true
	case 2:
		if len(g.ranks) == 1 {
			return Combination{Kind: Pair, Rank: g.ranks[0], Cards: sorted}, true
		}
	case 3:
		if len(g.ranks) == 1 {
			return Combination{Kind: Triple, Rank: g.ranks[0], Cards: sorted}, true
		}
	}

	if rules != Advanced {
		return Combination{}, false
	}
	return classifyComposite(sorted, g)
}

func classifyBomb(sorted []card.Card, g rankGroups, rules RuleSet) (Combination, bool) {
	if len(sorted) == 4 && len(g.ranks) == 1 {
		return Combination{Kind: Bomb, Rank: g.ranks[0], Cards: sorted}, true
	}
	if rules != Advanced {
		return Combination{}, false
	}

	// Consecutive runs of four-of-a-kinds, two to five groups, below Two.
	if len(g.ranks) >= 2 && len(g.ranks) <= 5 && g.uniformCount(4) && g.consecutive() {
		kinds := map[int]Kind{2: DoubleBomb, 3: TripleBomb, 4: QuadBomb, 5: MaxBomb}
		top := g.ranks[len(g.ranks)-1]
		return Combination{Kind: kinds[len(g.ranks)], Rank: top, Cards: sorted}, true
	}

	quads := g.ranksWithCount(4)
	if len(quads) != 1 {
		return Combination{}, false
	}
	switch len(sorted) {
	case 5:
		// Four of a kind plus any one extra card.
		return Combination{Kind: BombWithOne, Rank: quads[0], Cards: sorted}, true
	case 8:
		// Four of a kind plus two disjoint pairs of different ranks.
		if len(g.ranksWithCount(2)) == 2 {
			return Combination{Kind: BombWithTwoPairs, Rank: quads[0], Cards: sorted}, true
		}
	}
	return Combination{}, false
}

func classifyComposite(sorted []card.Card, g rankGroups) (Combination, bool) {
	triples := g.ranksWithCount(3)
	pairs := g.ranksWithCount(2)
	singles := g.ranksWithCount(1)
	top := func() card.Rank { return g.ranks[len(g.ranks)-1] }

	switch len(sorted) {
	case 4:
		if len(triples) == 1 && len(singles) == 1 {
			return Combination{Kind: ThreeWithOne, Rank: triples[0], Cards: sorted}, true
		}
	case 5:
		if len(triples) == 1 && len(pairs) == 1 {
			return Combination{Kind: ThreeWithPair, Rank: triples[0], Cards: sorted}, true
		}
	}

	if len(sorted) >= 5 && g.uniformCount(1) && g.consecutive() {
		return Combination{Kind: Straight, Rank: top(), Cards: sorted}, true
	}
	if len(sorted) >= 6 && len(sorted)%2 == 0 && g.uniformCount(2) && g.consecutive() {
		return Combination{Kind: SequenceOfPairs, Rank: top(), Cards: sorted}, true
	}
	if len(sorted) >= 6 && len(sorted)%3 == 0 && g.uniformCount(3) && g.consecutive() {
		return Combination{Kind: SequenceOfTriples, Rank: top(), Cards: sorted}, true
	}

	// Airplane shapes: two triples at adjacent ranks below Two carrying wings.
	if len(triples) == 2 && triples[1] == triples[0]+1 && triples[1] < card.Two {
		switch len(sorted) {
		case 8:
			// Wings are two loose cards; a pair counts as two singles here.
			return Combination{Kind: TriplesWithSingles, Rank: triples[1], Cards: sorted}, true
		case 10:
			if len(pairs) == 2 {
				return Combination{Kind: TriplesWithPairs, Rank: triples[1], Cards: sorted}, true
			}
		}
	}
	return Combination{}, false
}
