package card

import "math/rand"

// Deck owns the undealt portion of one lobby's 54-card universe. It only
// shuffles and hands out cards, rule knowledge lives elsewhere.
type Deck struct {
	cards []Card
	rnd   *rand.Rand
}

func NewDeck(seed int64) *Deck {
	d := &Deck{rnd: rand.New(rand.NewSource(seed))}
	d.Reset()
	return d
}

// Reset refills the deck with the full 54-card set and shuffles it.
func (d *Deck) Reset() {
	d.cards = make([]Card, 0, 54)
	for r := Three; r <= Two; r++ {
		for s := Hearts; s <= Clubs; s++ {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	d.cards = append(d.cards, Card{Rank: Joker, Suit: Black})
	d.cards = append(d.cards, Card{Rank: Joker, Suit: Red})
	d.shuffle()
}

func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rnd.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

func (d *Deck) Add(c Card) {
	d.cards = append(d.cards, c)
}

// DrawOne removes and returns a random card. ok is false on an empty deck.
func (d *Deck) DrawOne() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	i := d.rnd.Intn(len(d.cards))
	c := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return c, true
}

// Draw removes count random cards. pairBias is the probability that each card
// after the first repeats the previous card's rank when such a card is still
// undealt, which is how hands are tuned to be pair-friendly per rule set.
// Asking for more cards than remain returns what is left.
func (d *Deck) Draw(count int, pairBias float64) []Card {
	if count > len(d.cards) {
		count = len(d.cards)
	}
	out := make([]Card, 0, count)
	for len(out) < count {
		if len(out) > 0 && len(out) < count && d.rnd.Float64() < pairBias {
			if c, ok := d.takeByRank(out[len(out)-1].Rank); ok {
				out = append(out, c)
				continue
			}
		}
		c, ok := d.DrawOne()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}

func (d *Deck) takeByRank(r Rank) (Card, bool) {
	for i, c := range d.cards {
		if c.Rank == r {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}
