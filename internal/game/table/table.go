package table

import (
	"doudizhu/internal/game/card"
	"doudizhu/internal/game/combo"
)

// Table remembers each seated player's most recent accepted play. A play
// stays live until that player passes or the whole round clears, so a new
// play has to out-rank every opponent's live combination, not just the last
// one. Owned by one lobby; the lobby's lock serializes access.
type Table struct {
	rules combo.RuleSet
	plays map[string]combo.Combination // playerID -> last accepted play
}

func New(rules combo.RuleSet) *Table {
	return &Table{rules: rules, plays: make(map[string]combo.Combination)}
}

// CanAccept reports whether cards classify under the rule set and beat every
// other player's live play. The first play of a round is always acceptable.
func (t *Table) CanAccept(playerID string, cards []card.Card) (combo.Combination, bool) {
	c, ok := combo.Classify(cards, t.rules)
	if !ok {
		return combo.Combination{}, false
	}
	for id, existing := range t.plays {
		if id == playerID {
			continue
		}
		if !combo.Stronger(c, existing) {
			return combo.Combination{}, false
		}
	}
	return c, true
}

// RecordPlay stores or overwrites the player's live play.
func (t *Table) RecordPlay(playerID string, c combo.Combination) {
	t.plays[playerID] = c
}

// ClearPlayer drops one player's live play, the effect of a pass.
func (t *Table) ClearPlayer(playerID string) {
	delete(t.plays, playerID)
}

// ClearAll wipes the table for a fresh round.
func (t *Table) ClearAll() {
	t.plays = make(map[string]combo.Combination)
}

// HasPlay reports whether the player has a live play on the table.
func (t *Table) HasPlay(playerID string) bool {
	_, ok := t.plays[playerID]
	return ok
}

// LiveCount returns how many players currently have a play on the table.
func (t *Table) LiveCount() int {
	return len(t.plays)
}

// Strongest returns the live play no other live play beats, ignoring the
// given player's own contribution. ok is false on an empty table.
func (t *Table) Strongest(excludePlayerID string) (combo.Combination, bool) {
	var best combo.Combination
	found := false
	for id, c := range t.plays {
		if id == excludePlayerID {
			continue
		}
		if !found || combo.Stronger(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

// Snapshot is the read-only view the status API serves.
type Snapshot struct {
	Plays map[string]combo.Combination `json:"plays"`
}

func (t *Table) Snapshot() Snapshot {
	out := Snapshot{Plays: make(map[string]combo.Combination, len(t.plays))}
	for id, c := range t.plays {
		cc := c
		cc.Cards = append([]card.Card(nil), c.Cards...)
		out.Plays[id] = cc
	}
	return out
}
