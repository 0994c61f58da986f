package combo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"doudizhu/internal/game/card"
)

func mustClassify(t *testing.T, cards []card.Card, rules RuleSet) Combination {
	t.Helper()
	comb, ok := Classify(cards, rules)
	assert.True(t, ok, "expected %v to classify", cards)
	return comb
}

func Test_Stronger_SameKind(t *testing.T) {
	low := mustClassify(t, ofRank(card.Five, 2), Simple)
	high := mustClassify(t, ofRank(card.Nine, 2), Simple)
	assert.True(t, Stronger(high, low))
	assert.False(t, Stronger(low, high))

	// a pair never answers a single
	single := mustClassify(t, []card.Card{c(card.Ace, card.Hearts)}, Simple)
	assert.False(t, Stronger(high, single))
	assert.False(t, Stronger(single, high))
}

func Test_Stronger_Irreflexive(t *testing.T) {
	comb := mustClassify(t, ofRank(card.Eight, 3), Simple)
	assert.False(t, Stronger(comb, comb))
}

func Test_Stronger_RocketDominates(t *testing.T) {
	rocket := mustClassify(t, []card.Card{c(card.Joker, card.Black), c(card.Joker, card.Red)}, Advanced)
	quadRun := mustClassify(t, append(ofRank(card.Ten, 4), ofRank(card.Jack, 4)...), Advanced)
	single := mustClassify(t, []card.Card{c(card.Two, card.Hearts)}, Advanced)

	assert.True(t, Stronger(rocket, quadRun))
	assert.True(t, Stronger(rocket, single))
	assert.False(t, Stronger(quadRun, rocket))
	assert.False(t, Stronger(rocket, rocket))
}

func Test_Stronger_BombTiers(t *testing.T) {
	bomb := mustClassify(t, ofRank(card.Ace, 4), Advanced)
	bombLow := mustClassify(t, ofRank(card.Three, 4), Advanced)
	double := mustClassify(t, append(ofRank(card.Three, 4), ofRank(card.Four, 4)...), Advanced)
	pair := mustClassify(t, ofRank(card.Two, 2), Advanced)

	// any bomb beats any non-bomb
	assert.True(t, Stronger(bombLow, pair))
	assert.False(t, Stronger(pair, bombLow))

	// same tier compares by rank
	assert.True(t, Stronger(bomb, bombLow))

	// a higher tier beats a higher rank of a lower tier
	assert.True(t, Stronger(double, bomb))
	assert.False(t, Stronger(bomb, double))
}

func Test_Stronger_BombAttachmentsShareTier(t *testing.T) {
	plain := mustClassify(t, ofRank(card.Seven, 4), Advanced)
	withOne := mustClassify(t, append(ofRank(card.Nine, 4), c(card.Three, card.Hearts)), Advanced)
	assert.Equal(t, plain.Kind.BombTier(), withOne.Kind.BombTier())
	assert.True(t, Stronger(withOne, plain))
}

func Test_Stronger_SequenceLength(t *testing.T) {
	five := mustClassify(t, []card.Card{
		c(card.Three, card.Hearts), c(card.Four, card.Hearts), c(card.Five, card.Hearts),
		c(card.Six, card.Hearts), c(card.Seven, card.Hearts),
	}, Advanced)
	six := mustClassify(t, []card.Card{
		c(card.Four, card.Clubs), c(card.Five, card.Clubs), c(card.Six, card.Clubs),
		c(card.Seven, card.Clubs), c(card.Eight, card.Clubs), c(card.Nine, card.Clubs),
	}, Advanced)
	fiveHigher := mustClassify(t, []card.Card{
		c(card.Eight, card.Spades), c(card.Nine, card.Spades), c(card.Ten, card.Spades),
		c(card.Jack, card.Spades), c(card.Queen, card.Spades),
	}, Advanced)

	// different lengths never interact, a higher top rank wins at equal length
	assert.False(t, Stronger(six, five))
	assert.False(t, Stronger(five, six))
	assert.True(t, Stronger(fiveHigher, five))
}

func Test_Stronger_Transitive(t *testing.T) {
	a := mustClassify(t, []card.Card{c(card.Five, card.Hearts)}, Simple)
	b := mustClassify(t, []card.Card{c(card.Ten, card.Hearts)}, Simple)
	d := mustClassify(t, []card.Card{c(card.Two, card.Hearts)}, Simple)
	assert.True(t, Stronger(b, a))
	assert.True(t, Stronger(d, b))
	assert.True(t, Stronger(d, a))
}
