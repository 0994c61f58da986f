package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Deck_FullUniverse(t *testing.T) {
	d := NewDeck(1)
	assert.Equal(t, 54, d.Remaining())

	seen := make(map[Card]bool)
	for {
		c, ok := d.DrawOne()
		if !ok {
			break
		}
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	assert.Len(t, seen, 54)

	jokers := 0
	for c := range seen {
		if c.IsJoker() {
			jokers++
			assert.Contains(t, []Suit{Black, Red}, c.Suit)
		}
	}
	assert.Equal(t, 2, jokers)
}

func Test_Deck_DrawCount(t *testing.T) {
	d := NewDeck(7)
	hand := d.Draw(17, 0)
	assert.Len(t, hand, 17)
	assert.Equal(t, 37, d.Remaining())

	// over-draw empties the deck and returns what was left
	rest := d.Draw(100, 0)
	assert.Len(t, rest, 37)
	assert.Equal(t, 0, d.Remaining())

	_, ok := d.DrawOne()
	assert.False(t, ok)
	assert.Empty(t, d.Draw(5, 0))
}

func Test_Deck_Reset(t *testing.T) {
	d := NewDeck(3)
	d.Draw(30, 0)
	d.Reset()
	assert.Equal(t, 54, d.Remaining())
}

func Test_Deck_Add(t *testing.T) {
	d := NewDeck(3)
	d.Draw(54, 0)
	d.Add(Card{Rank: Ace, Suit: Hearts})
	assert.Equal(t, 1, d.Remaining())
	c, ok := d.DrawOne()
	assert.True(t, ok)
	assert.Equal(t, Ace, c.Rank)
}

func pairCount(hand []Card) int {
	counts := make(map[Rank]int)
	for _, c := range hand {
		counts[c.Rank]++
	}
	pairs := 0
	for _, n := range counts {
		pairs += n / 2
	}
	return pairs
}

func Test_Deck_PairBias(t *testing.T) {
	biased, plain := 0, 0
	for seed := int64(0); seed < 40; seed++ {
		biased += pairCount(NewDeck(seed).Draw(17, 0.95))
		plain += pairCount(NewDeck(seed + 1000).Draw(17, 0))
	}
	// a heavy bias has to produce pair-richer hands than none at all
	assert.Greater(t, biased, plain)
}

func Test_Card_String(t *testing.T) {
	assert.Equal(t, "3♥", Card{Rank: Three, Suit: Hearts}.String())
	assert.Equal(t, "10♣", Card{Rank: Ten, Suit: Clubs}.String())
	assert.Equal(t, "Joker(R)", Card{Rank: Joker, Suit: Red}.String())
	assert.Equal(t, "?", Card{Rank: Rank(99), Suit: Suit(99)}.String()[:1])
}

func Test_Card_Predicates(t *testing.T) {
	assert.True(t, Card{Rank: Joker, Suit: Black}.IsJoker())
	assert.True(t, Card{Rank: Two, Suit: Spades}.IsTwo())
	assert.False(t, Card{Rank: Ace, Suit: Spades}.IsTwo())
}
