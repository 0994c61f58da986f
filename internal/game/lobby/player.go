package lobby

import (
	"doudizhu/internal/game/card"
	"doudizhu/internal/utils"
)

// Player is one seated session. Exactly one exists per connected player
// across the whole directory. The owning lobby's lock guards every field.
type Player struct {
	ID   string
	Name string
	Skin int

	hand       []card.Card
	bid        int
	isLandlord bool

	// suggestion category cursor, reset whenever the hand changes
	suggestIdx int
}

func (p *Player) Hand() []card.Card {
	return append([]card.Card(nil), p.hand...)
}

func (p *Player) HandSize() int {
	return len(p.hand)
}

func (p *Player) IsLandlord() bool {
	return p.isLandlord
}

func (p *Player) addCards(cards []card.Card) {
	p.hand = append(p.hand, cards...)
	p.suggestIdx = 0
}

// removeCards drops the played cards from the hand by physical identity.
// A card that is not actually held is a recoverable inconsistency: logged
// and skipped, never propagated.
func (p *Player) removeCards(cards []card.Card) {
	for _, c := range cards {
		found := false
		for i, h := range p.hand {
			if h == c {
				p.hand = append(p.hand[:i], p.hand[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			utils.Error.Printf("player %s asked to remove %s which is not in hand", p.ID, c)
		}
	}
	p.suggestIdx = 0
}

func (p *Player) holds(cards []card.Card) bool {
	remaining := append([]card.Card(nil), p.hand...)
	for _, c := range cards {
		found := false
		for i, h := range remaining {
			if h == c {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
