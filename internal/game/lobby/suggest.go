package lobby

import (
	"doudizhu/internal/game/card"
	"doudizhu/internal/game/combo"
)

// Suggestion cycling walks categories of plays rather than a flat list, so
// repeated hint requests feel varied: first the cheapest legal anything, then
// the triple family, then bombs, then the rocket, wrapping around. The
// per-player cursor resets whenever the hand changes.
type suggestCategory int

const (
	catAny suggestCategory = iota
	catTriple
	catBomb
	catRocket
	catCount
)

func categoryOf(k combo.Kind) suggestCategory {
	switch {
	case k == combo.Rocket:
		return catRocket
	case k.IsBomb():
		return catBomb
	case k == combo.Triple, k == combo.ThreeWithOne, k == combo.ThreeWithPair,
		k == combo.SequenceOfTriples, k == combo.TriplesWithSingles, k == combo.TriplesWithPairs:
		return catTriple
	}
	return catAny
}

// Suggest returns cards for the player's next hint, or nil when the hand has
// no legal play at all. Each call advances the category cursor; an empty
// category falls through to the next one in cyclic order.
func (l *Lobby) Suggest(playerID string) []card.Card {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.seatOf(playerID)
	if idx < 0 || l.state != Playing {
		return nil
	}
	p := l.players[idx]

	start := suggestCategory(p.suggestIdx) % catCount
	p.suggestIdx = (p.suggestIdx + 1) % int(catCount)

	all := combo.EnumerateAll(p.hand, l.rules)
	for i := suggestCategory(0); i < catCount; i++ {
		cat := (start + i) % catCount
		if best, ok := l.lowestLegalLocked(p, all, cat); ok {
			return best.Cards
		}
	}
	return nil
}

// lowestLegalLocked picks the weakest legal combination inside one category:
// lowest rank first, then fewest cards.
func (l *Lobby) lowestLegalLocked(p *Player, all []combo.Combination, cat suggestCategory) (combo.Combination, bool) {
	var best combo.Combination
	found := false
	for _, c := range all {
		// catAny considers every shape; the named families filter.
		if cat != catAny && categoryOf(c.Kind) != cat {
			continue
		}
		if _, ok := l.tbl.CanAccept(p.ID, c.Cards); !ok {
			continue
		}
		if !found || c.Rank < best.Rank || (c.Rank == best.Rank && len(c.Cards) < len(best.Cards)) {
			best = c
			found = true
		}
	}
	return best, found
}
