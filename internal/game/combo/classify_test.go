package combo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"doudizhu/internal/game/card"
)

func c(r card.Rank, s card.Suit) card.Card {
	return card.Card{Rank: r, Suit: s}
}

func ofRank(r card.Rank, n int) []card.Card {
	out := make([]card.Card, 0, n)
	for s := card.Hearts; s < card.Suit(int(card.Hearts)+n); s++ {
		out = append(out, c(r, s))
	}
	return out
}

func Test_Classify_PlainShapes(t *testing.T) {
	for _, rules := range []RuleSet{Simple, Advanced} {
		comb, ok := Classify([]card.Card{c(card.Seven, card.Hearts)}, rules)
		assert.True(t, ok)
		assert.Equal(t, Single, comb.Kind)
		assert.Equal(t, card.Seven, comb.Rank)

		comb, ok = Classify(ofRank(card.Queen, 2), rules)
		assert.True(t, ok)
		assert.Equal(t, Pair, comb.Kind)
		assert.Equal(t, card.Queen, comb.Rank)

		comb, ok = Classify(ofRank(card.Four, 3), rules)
		assert.True(t, ok)
		assert.Equal(t, Triple, comb.Kind)

		comb, ok = Classify(ofRank(card.Nine, 4), rules)
		assert.True(t, ok)
		assert.Equal(t, Bomb, comb.Kind)

		comb, ok = Classify([]card.Card{c(card.Joker, card.Black), c(card.Joker, card.Red)}, rules)
		assert.True(t, ok)
		assert.Equal(t, Rocket, comb.Kind)
	}
}

func Test_Classify_ThreeWithOne(t *testing.T) {
	// 3♥ 3♦ 3♠ 4♣ is a three-with-one ranked at Three
	cards := []card.Card{
		c(card.Three, card.Hearts),
		c(card.Three, card.Diamonds),
		c(card.Three, card.Spades),
		c(card.Four, card.Clubs),
	}
	comb, ok := Classify(cards, Advanced)
	assert.True(t, ok)
	assert.Equal(t, ThreeWithOne, comb.Kind)
	assert.Equal(t, card.Three, comb.Rank)

	// the simple rule set does not know attachment shapes
	_, ok = Classify(cards, Simple)
	assert.False(t, ok)
}

func Test_Classify_ThreeWithPair(t *testing.T) {
	cards := append(ofRank(card.King, 3), ofRank(card.Five, 2)...)
	comb, ok := Classify(cards, Advanced)
	assert.True(t, ok)
	assert.Equal(t, ThreeWithPair, comb.Kind)
	assert.Equal(t, card.King, comb.Rank)
}

func Test_Classify_Straight(t *testing.T) {
	cards := []card.Card{
		c(card.Three, card.Hearts),
		c(card.Four, card.Diamonds),
		c(card.Five, card.Spades),
		c(card.Six, card.Clubs),
		c(card.Seven, card.Hearts),
	}
	comb, ok := Classify(cards, Advanced)
	assert.True(t, ok)
	assert.Equal(t, Straight, comb.Kind)
	assert.Equal(t, card.Seven, comb.Rank)

	// four cards are never a straight
	_, ok = Classify(cards[:4], Advanced)
	assert.False(t, ok)

	// a straight may not reach Two
	cards = []card.Card{
		c(card.Jack, card.Hearts),
		c(card.Queen, card.Diamonds),
		c(card.King, card.Spades),
		c(card.Ace, card.Clubs),
		c(card.Two, card.Hearts),
	}
	_, ok = Classify(cards, Advanced)
	assert.False(t, ok)
}

func Test_Classify_SequenceOfPairs(t *testing.T) {
	cards := append(append(ofRank(card.Seven, 2), ofRank(card.Eight, 2)...), ofRank(card.Nine, 2)...)
	comb, ok := Classify(cards, Advanced)
	assert.True(t, ok)
	assert.Equal(t, SequenceOfPairs, comb.Kind)
	assert.Equal(t, card.Nine, comb.Rank)

	// two pairs are too short
	_, ok = Classify(append(ofRank(card.Seven, 2), ofRank(card.Eight, 2)...), Advanced)
	assert.False(t, ok)
}

func Test_Classify_SequenceOfTriples(t *testing.T) {
	cards := append(ofRank(card.Five, 3), ofRank(card.Six, 3)...)
	comb, ok := Classify(cards, Advanced)
	assert.True(t, ok)
	assert.Equal(t, SequenceOfTriples, comb.Kind)
	assert.Equal(t, card.Six, comb.Rank)
}

func Test_Classify_Airplanes(t *testing.T) {
	body := append(ofRank(card.Ten, 3), ofRank(card.Jack, 3)...)

	wings := []card.Card{c(card.Three, card.Hearts), c(card.Eight, card.Clubs)}
	comb, ok := Classify(append(append([]card.Card(nil), body...), wings...), Advanced)
	assert.True(t, ok)
	assert.Equal(t, TriplesWithSingles, comb.Kind)
	assert.Equal(t, card.Jack, comb.Rank)

	pairWings := append(ofRank(card.Three, 2), ofRank(card.Eight, 2)...)
	comb, ok = Classify(append(append([]card.Card(nil), body...), pairWings...), Advanced)
	assert.True(t, ok)
	assert.Equal(t, TriplesWithPairs, comb.Kind)

	// non-adjacent triples carry nothing
	gap := append(ofRank(card.Ten, 3), ofRank(card.Queen, 3)...)
	_, ok = Classify(append(append([]card.Card(nil), gap...), wings...), Advanced)
	assert.False(t, ok)
}

func Test_Classify_BombVariants(t *testing.T) {
	quad := ofRank(card.Eight, 4)

	comb, ok := Classify(append(append([]card.Card(nil), quad...), c(card.Three, card.Hearts)), Advanced)
	assert.True(t, ok)
	assert.Equal(t, BombWithOne, comb.Kind)
	assert.Equal(t, card.Eight, comb.Rank)

	withPairs := append(append([]card.Card(nil), quad...), ofRank(card.Four, 2)...)
	withPairs = append(withPairs, ofRank(card.Jack, 2)...)
	comb, ok = Classify(withPairs, Advanced)
	assert.True(t, ok)
	assert.Equal(t, BombWithTwoPairs, comb.Kind)

	double := append(ofRank(card.Eight, 4), ofRank(card.Nine, 4)...)
	comb, ok = Classify(double, Advanced)
	assert.True(t, ok)
	assert.Equal(t, DoubleBomb, comb.Kind)
	assert.Equal(t, card.Nine, comb.Rank)

	triple := append(double, ofRank(card.Ten, 4)...)
	comb, ok = Classify(triple, Advanced)
	assert.True(t, ok)
	assert.Equal(t, TripleBomb, comb.Kind)

	// extended bombs are advanced only
	_, ok = Classify(double, Simple)
	assert.False(t, ok)

	// a quad run may not cross into Two
	cross := append(ofRank(card.Ace, 4), ofRank(card.Two, 4)...)
	_, ok = Classify(cross, Advanced)
	assert.False(t, ok)
}

func Test_Classify_Garbage(t *testing.T) {
	_, ok := Classify(nil, Advanced)
	assert.False(t, ok)

	_, ok = Classify([]card.Card{c(card.Three, card.Hearts), c(card.Nine, card.Clubs)}, Advanced)
	assert.False(t, ok)

	_, ok = Classify([]card.Card{
		c(card.Three, card.Hearts), c(card.Three, card.Diamonds),
		c(card.Nine, card.Clubs), c(card.Ten, card.Clubs),
	}, Advanced)
	assert.False(t, ok)
}

// Classification must be total: any multiset out of the 54-card universe
// yields one shape or none, never a panic, and the shape's size always
// matches the input size.
func Test_Classify_Totality(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	universe := fullUniverse()
	for trial := 0; trial < 2000; trial++ {
		n := 1 + rnd.Intn(20)
		rnd.Shuffle(len(universe), func(i, j int) { universe[i], universe[j] = universe[j], universe[i] })
		cards := universe[:n]
		for _, rules := range []RuleSet{Simple, Advanced} {
			comb, ok := Classify(cards, rules)
			if ok {
				assert.Len(t, comb.Cards, n)
			}
		}
	}
}

func fullUniverse() []card.Card {
	var out []card.Card
	for r := card.Three; r <= card.Two; r++ {
		for s := card.Hearts; s <= card.Clubs; s++ {
			out = append(out, c(r, s))
		}
	}
	out = append(out, c(card.Joker, card.Black), c(card.Joker, card.Red))
	return out
}
