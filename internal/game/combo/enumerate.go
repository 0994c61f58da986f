package combo

import (
	"strconv"
	"sync"

	"doudizhu/internal/game/card"
)

// EnumerateAll produces every combination a hand can form under the rule set.
// A physical card is never repeated inside one result, but the same card may
// back many different results (the same triple shows up in every
// three-with-one it can carry). Results are memoized per physical hand
// composition; callers must treat the returned slice as read only.
func EnumerateAll(hand []card.Card, rules RuleSet) []Combination {
	if len(hand) == 0 {
		return nil
	}
	key := strconv.Itoa(int(rules)) + "|" + fingerprint(hand)
	if cached, ok := defaultCache.get(key); ok {
		return cached
	}
	out := enumerate(hand, rules)
	defaultCache.put(key, out)
	return out
}

// enumCache memoizes enumeration results. Purely an optimization: a hint
// request and the timer loop's "can this player act" check hit the same hand
// composition over and over. Hand compositions repeat within a game but not
// across games, so once the map fills up it resets instead of evicting.
type enumCache struct {
	mu      sync.RWMutex
	entries map[string][]Combination
}

const cacheLimit = 4096

var defaultCache = &enumCache{entries: make(map[string][]Combination)}

func (c *enumCache) get(key string) ([]Combination, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *enumCache) put(key string, v []Combination) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= cacheLimit {
		c.entries = make(map[string][]Combination, cacheLimit)
	}
	c.entries[key] = v
}

func enumerate(hand []card.Card, rules RuleSet) []Combination {
	g := groupByRank(hand)
	var out []Combination

	// Singles: every physical card stands alone.
	for _, r := range g.ranks {
		for _, c := range g.cards[r] {
			out = append(out, Combination{Kind: Single, Rank: r, Cards: []card.Card{c}})
		}
	}

	// Same-rank groups: every k-subset for pairs, triples, bombs. The two
	// jokers are not a pair, they only ever stand alone or form the rocket.
	for _, r := range g.ranks {
		if r == card.Joker {
			continue
		}
		group := g.cards[r]
		for _, set := range choose(group, 2) {
			out = append(out, Combination{Kind: Pair, Rank: r, Cards: set})
		}
		for _, set := range choose(group, 3) {
			out = append(out, Combination{Kind: Triple, Rank: r, Cards: set})
		}
		if len(group) == 4 {
			out = append(out, Combination{Kind: Bomb, Rank: r, Cards: append([]card.Card(nil), group...)})
		}
	}

	if rocket, ok := findRocket(g); ok {
		out = append(out, rocket)
	}

	if rules == Advanced {
		out = append(out, enumerateAttachments(g)...)
		out = append(out, enumerateRuns(g)...)
	}
	return out
}

func findRocket(g rankGroups) (Combination, bool) {
	jokers := g.cards[card.Joker]
	if len(jokers) == 2 && jokers[0].Suit != jokers[1].Suit {
		return Combination{Kind: Rocket, Rank: card.Joker, Cards: append([]card.Card(nil), jokers...)}, true
	}
	return Combination{}, false
}

// enumerateAttachments builds the triple and bomb shapes that carry extra
// cards: 3+1, 3+2, bomb+1, bomb+two-pairs, and the two-triple airplanes.
func enumerateAttachments(g rankGroups) []Combination {
	var out []Combination

	for _, r := range g.ranks {
		for _, triple := range choose(g.cards[r], 3) {
			for _, or := range g.ranks {
				if or == r {
					continue
				}
				for _, extra := range g.cards[or] {
					out = append(out, combine(ThreeWithOne, r, triple, []card.Card{extra}))
				}
				for _, pair := range choose(g.cards[or], 2) {
					out = append(out, combine(ThreeWithPair, r, triple, pair))
				}
			}
		}
		if len(g.cards[r]) != 4 {
			continue
		}
		quad := g.cards[r]
		for _, or := range g.ranks {
			if or == r {
				continue
			}
			for _, extra := range g.cards[or] {
				out = append(out, combine(BombWithOne, r, quad, []card.Card{extra}))
			}
		}
		out = append(out, quadWithPairs(g, r, quad)...)
	}

	out = append(out, enumerateAirplanes(g)...)
	return out
}

func quadWithPairs(g rankGroups, quadRank card.Rank, quad []card.Card) []Combination {
	var out []Combination
	pairRanks := pairCapableRanks(g, quadRank)
	for i := 0; i < len(pairRanks); i++ {
		for j := i + 1; j < len(pairRanks); j++ {
			for _, p1 := range choose(g.cards[pairRanks[i]], 2) {
				for _, p2 := range choose(g.cards[pairRanks[j]], 2) {
					cards := append(append([]card.Card(nil), quad...), p1...)
					cards = append(cards, p2...)
					out = append(out, Combination{Kind: BombWithTwoPairs, Rank: quadRank, Cards: cards})
				}
			}
		}
	}
	return out
}

func pairCapableRanks(g rankGroups, exclude card.Rank) []card.Rank {
	var out []card.Rank
	for _, r := range g.ranks {
		if r != exclude && g.counts[r] >= 2 {
			out = append(out, r)
		}
	}
	return out
}

// enumerateAirplanes pairs each adjacent two-triple run with representative
// wings: two singles of distinct other ranks, or two pairs of distinct other
// ranks. Wing variants within a rank reuse the lowest cards, which is all a
// suggestion ever needs.
func enumerateAirplanes(g rankGroups) []Combination {
	var out []Combination
	for _, lo := range g.ranks {
		hi := lo + 1
		if hi >= card.Two || g.counts[lo] < 3 || g.counts[hi] < 3 {
			continue
		}
		body := append(append([]card.Card(nil), g.cards[lo][:3]...), g.cards[hi][:3]...)

		var wingRanks []card.Rank
		for _, r := range g.ranks {
			if r != lo && r != hi {
				wingRanks = append(wingRanks, r)
			}
		}
		for i := 0; i < len(wingRanks); i++ {
			// a pair counts as two single wings in the 8-card shape
			if g.counts[wingRanks[i]] >= 2 {
				out = append(out, combine(TriplesWithSingles, hi, body, g.cards[wingRanks[i]][:2]))
			}
			for j := i + 1; j < len(wingRanks); j++ {
				ri, rj := wingRanks[i], wingRanks[j]
				single := []card.Card{g.cards[ri][0], g.cards[rj][0]}
				out = append(out, combine(TriplesWithSingles, hi, body, single))
				if g.counts[ri] >= 2 && g.counts[rj] >= 2 {
					wings := append(append([]card.Card(nil), g.cards[ri][:2]...), g.cards[rj][:2]...)
					out = append(out, combine(TriplesWithPairs, hi, body, wings))
				}
			}
		}
	}
	return out
}

// enumerateRuns builds every contiguous rank window shape: straights,
// sequences of pairs, sequences of triples, and consecutive bomb runs.
// Triple sequences backtrack over each rank's 3-subsets so every physical
// variant is produced; a chosen card colliding with one picked for an earlier
// rank aborts that branch.
func enumerateRuns(g rankGroups) []Combination {
	var out []Combination
	for lo := 0; lo < len(g.ranks); lo++ {
		for hi := lo; hi < len(g.ranks); hi++ {
			if g.ranks[hi] >= card.Two {
				break
			}
			if hi > lo && g.ranks[hi] != g.ranks[hi-1]+1 {
				break
			}
			window := g.ranks[lo : hi+1]
			n := len(window)
			top := window[n-1]

			if n >= 5 {
				cards := make([]card.Card, 0, n)
				for _, r := range window {
					cards = append(cards, g.cards[r][0])
				}
				out = append(out, Combination{Kind: Straight, Rank: top, Cards: cards})
			}
			if n >= 3 && minCount(g, window) >= 2 {
				cards := make([]card.Card, 0, 2*n)
				for _, r := range window {
					cards = append(cards, g.cards[r][:2]...)
				}
				out = append(out, Combination{Kind: SequenceOfPairs, Rank: top, Cards: cards})
			}
			if n >= 2 && minCount(g, window) >= 3 {
				out = append(out, tripleRuns(g, window, top)...)
			}
			if n >= 2 && n <= 5 && minCount(g, window) == 4 && g.counts[window[0]] == 4 {
				if allCount(g, window, 4) {
					kinds := map[int]Kind{2: DoubleBomb, 3: TripleBomb, 4: QuadBomb, 5: MaxBomb}
					cards := make([]card.Card, 0, 4*n)
					for _, r := range window {
						cards = append(cards, g.cards[r]...)
					}
					out = append(out, Combination{Kind: kinds[n], Rank: top, Cards: cards})
				}
			}
		}
	}
	return out
}

func tripleRuns(g rankGroups, window []card.Rank, top card.Rank) []Combination {
	var out []Combination
	used := make(map[card.Card]bool)
	var chosen []card.Card

	var walk func(i int)
	walk = func(i int) {
		if i == len(window) {
			out = append(out, Combination{
				Kind:  SequenceOfTriples,
				Rank:  top,
				Cards: append([]card.Card(nil), chosen...),
			})
			return
		}
		for _, triple := range choose(g.cards[window[i]], 3) {
			if collides(triple, used) {
				continue
			}
			for _, c := range triple {
				used[c] = true
			}
			chosen = append(chosen, triple...)
			walk(i + 1)
			chosen = chosen[:len(chosen)-3]
			for _, c := range triple {
				delete(used, c)
			}
		}
	}
	walk(0)
	return out
}

func collides(cards []card.Card, used map[card.Card]bool) bool {
	for _, c := range cards {
		if used[c] {
			return true
		}
	}
	return false
}

func minCount(g rankGroups, window []card.Rank) int {
	min := g.counts[window[0]]
	for _, r := range window[1:] {
		if g.counts[r] < min {
			min = g.counts[r]
		}
	}
	return min
}

func allCount(g rankGroups, window []card.Rank, n int) bool {
	for _, r := range window {
		if g.counts[r] != n {
			return false
		}
	}
	return true
}

func combine(kind Kind, rank card.Rank, body, wings []card.Card) Combination {
	cards := append(append([]card.Card(nil), body...), wings...)
	return Combination{Kind: kind, Rank: rank, Cards: cards}
}

// choose yields every k-subset of one rank group. Group sizes never exceed
// four, so this stays tiny.
func choose(cards []card.Card, k int) [][]card.Card {
	if k > len(cards) || k <= 0 {
		return nil
	}
	var out [][]card.Card
	var pick func(start int, cur []card.Card)
	pick = func(start int, cur []card.Card) {
		if len(cur) == k {
			out = append(out, append([]card.Card(nil), cur...))
			return
		}
		for i := start; i < len(cards); i++ {
			pick(i+1, append(cur, cards[i]))
		}
	}
	pick(0, nil)
	return out
}
