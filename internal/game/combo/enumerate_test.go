package combo

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"doudizhu/internal/game/card"
)

func kindsOf(combos []Combination) map[Kind]int {
	out := make(map[Kind]int)
	for _, comb := range combos {
		out[comb.Kind]++
	}
	return out
}

func Test_EnumerateAll_Simple(t *testing.T) {
	hand := []card.Card{
		c(card.Three, card.Hearts), c(card.Three, card.Diamonds), c(card.Three, card.Spades),
		c(card.Four, card.Clubs),
		c(card.Joker, card.Black), c(card.Joker, card.Red),
	}
	combos := EnumerateAll(hand, Simple)
	kinds := kindsOf(combos)

	assert.Equal(t, 6, kinds[Single])
	assert.Equal(t, 3, kinds[Pair], "three 3-subsets of two out of a triple")
	assert.Equal(t, 1, kinds[Triple])
	assert.Equal(t, 1, kinds[Rocket])

	// the simple rule set never yields attachment shapes
	assert.Zero(t, kinds[ThreeWithOne])
	assert.Zero(t, kinds[Straight])
}

func Test_EnumerateAll_Attachments(t *testing.T) {
	hand := []card.Card{
		c(card.Three, card.Hearts), c(card.Three, card.Diamonds), c(card.Three, card.Spades),
		c(card.Four, card.Clubs), c(card.Four, card.Hearts),
	}
	kinds := kindsOf(EnumerateAll(hand, Advanced))

	// the one triple carries each four once
	assert.Equal(t, 2, kinds[ThreeWithOne])
	assert.Equal(t, 1, kinds[ThreeWithPair])
}

func Test_EnumerateAll_Runs(t *testing.T) {
	hand := []card.Card{
		c(card.Three, card.Hearts), c(card.Four, card.Hearts), c(card.Five, card.Hearts),
		c(card.Six, card.Hearts), c(card.Seven, card.Hearts), c(card.Eight, card.Hearts),
	}
	kinds := kindsOf(EnumerateAll(hand, Advanced))

	// windows 3..7, 3..8, 4..8
	assert.Equal(t, 3, kinds[Straight])
}

func Test_EnumerateAll_TripleRunVariants(t *testing.T) {
	hand := append(ofRank(card.Five, 4), ofRank(card.Six, 3)...)
	combos := EnumerateAll(hand, Advanced)
	var runs []Combination
	for _, comb := range combos {
		if comb.Kind == SequenceOfTriples {
			runs = append(runs, comb)
		}
	}
	// four ways to pick three fives, one way to pick three sixes
	assert.Len(t, runs, 4)
	for _, run := range runs {
		assert.Equal(t, card.Six, run.Rank)
		assert.Len(t, run.Cards, 6)
	}
}

func Test_EnumerateAll_AirplanePairWings(t *testing.T) {
	// only one wing rank, but its pair serves as two single wings
	hand := append(append(ofRank(card.Ten, 3), ofRank(card.Jack, 3)...), ofRank(card.Three, 2)...)
	combos := EnumerateAll(hand, Advanced)

	var airplane *Combination
	for i := range combos {
		if combos[i].Kind == TriplesWithSingles {
			airplane = &combos[i]
			break
		}
	}
	assert.NotNil(t, airplane, "the pair-winged airplane must be offered")
	assert.Len(t, airplane.Cards, 8)
	assert.Equal(t, card.Jack, airplane.Rank)

	reclassified, ok := Classify(airplane.Cards, Advanced)
	assert.True(t, ok)
	assert.Equal(t, TriplesWithSingles, reclassified.Kind)
}

func Test_EnumerateAll_BombRun(t *testing.T) {
	hand := append(ofRank(card.Nine, 4), ofRank(card.Ten, 4)...)
	kinds := kindsOf(EnumerateAll(hand, Advanced))
	assert.Equal(t, 1, kinds[DoubleBomb])
	assert.Equal(t, 2, kinds[Bomb])
}

// Every enumerated combination must be built from the hand's physical cards
// with no card repeated inside one combination.
func Test_EnumerateAll_Soundness(t *testing.T) {
	hand := []card.Card{
		c(card.Three, card.Hearts), c(card.Three, card.Diamonds), c(card.Three, card.Spades),
		c(card.Four, card.Clubs), c(card.Four, card.Hearts),
		c(card.Five, card.Spades), c(card.Six, card.Diamonds), c(card.Seven, card.Hearts),
		c(card.King, card.Hearts), c(card.King, card.Clubs),
		c(card.Joker, card.Black), c(card.Joker, card.Red),
	}
	held := make(map[card.Card]bool, len(hand))
	for _, cd := range hand {
		held[cd] = true
	}

	combos := EnumerateAll(hand, Advanced)
	assert.NotEmpty(t, combos)
	for _, comb := range combos {
		seen := make(map[card.Card]bool)
		for _, cd := range comb.Cards {
			assert.True(t, held[cd], "%v not in hand (%v)", cd, comb)
			assert.False(t, seen[cd], "%v repeated inside %v", cd, comb)
			seen[cd] = true
		}
		reclassified, ok := Classify(comb.Cards, Advanced)
		assert.True(t, ok)
		assert.Equal(t, comb.Kind, reclassified.Kind)
		assert.Equal(t, comb.Rank, reclassified.Rank)
	}
}

func Test_EnumerateAll_Memoized(t *testing.T) {
	hand := []card.Card{c(card.Ten, card.Hearts), c(card.Ten, card.Clubs)}
	first := EnumerateAll(hand, Advanced)
	shuffled := []card.Card{hand[1], hand[0]}
	second := EnumerateAll(shuffled, Advanced)

	// same physical composition hits the same cache entry regardless of order
	assert.Equal(t, len(first), len(second))
	if len(first) > 0 && len(second) > 0 {
		assert.Same(t, &first[0], &second[0])
	}

	// rule sets cache separately
	simple := EnumerateAll(hand, Simple)
	assert.NotEqual(t, len(first), 0)
	assert.Len(t, simple, 3)
}

func Test_EnumerateAll_Empty(t *testing.T) {
	assert.Nil(t, EnumerateAll(nil, Advanced))
}

func Test_EnumCache_ResetsAtLimit(t *testing.T) {
	c := &enumCache{entries: make(map[string][]Combination)}
	for i := 0; i < cacheLimit; i++ {
		c.put(strconv.Itoa(i), nil)
	}
	assert.Len(t, c.entries, cacheLimit)

	// one more insert flips the full map instead of growing without bound
	c.put("overflow", nil)
	assert.Len(t, c.entries, 1)
	_, ok := c.get("overflow")
	assert.True(t, ok)
}
