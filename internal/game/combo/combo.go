package combo

import (
	"sort"
	"strconv"
	"strings"

	"doudizhu/internal/game/card"
)

// RuleSet selects which shapes are legal. Simple games only know singles,
// pairs, triples, the plain bomb and the rocket; advanced games get the full
// sequence and attachment shapes.
type RuleSet int

const (
	Simple RuleSet = iota
	Advanced
)

func (r RuleSet) String() string {
	if r == Advanced {
		return "advanced"
	}
	return "simple"
}

// ParseRuleSet maps a wire value to a rule set, defaulting to simple.
func ParseRuleSet(s string) RuleSet {
	if strings.EqualFold(s, "advanced") {
		return Advanced
	}
	return Simple
}

// Kind is the closed set of combination shapes.
type Kind int

const (
	Single Kind = iota + 1
	Pair
	Triple
	ThreeWithOne
	ThreeWithPair
	Straight
	SequenceOfPairs
	SequenceOfTriples
	TriplesWithSingles
	TriplesWithPairs
	Bomb
	BombWithOne
	BombWithTwoPairs
	DoubleBomb
	TripleBomb
	QuadBomb
	MaxBomb
	Rocket
)

var kindNames = map[Kind]string{
	Single:             "single",
	Pair:               "pair",
	Triple:             "triple",
	ThreeWithOne:       "three_with_one",
	ThreeWithPair:      "three_with_pair",
	Straight:           "straight",
	SequenceOfPairs:    "sequence_of_pairs",
	SequenceOfTriples:  "sequence_of_triples",
	TriplesWithSingles: "triples_with_singles",
	TriplesWithPairs:   "triples_with_pairs",
	Bomb:               "bomb",
	BombWithOne:        "bomb_with_one",
	BombWithTwoPairs:   "bomb_with_two_pairs",
	DoubleBomb:         "double_bomb",
	TripleBomb:         "triple_bomb",
	QuadBomb:           "quad_bomb",
	MaxBomb:            "max_bomb",
	Rocket:             "rocket",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// BombTier returns the strength tier of a bomb shape, 0 for non-bombs.
// Plain bombs and their attachment variants share tier 1; consecutive runs
// climb one tier per extra four-of-a-kind.
func (k Kind) BombTier() int {
	switch k {
	case Bomb, BombWithOne, BombWithTwoPairs:
		return 1
	case DoubleBomb:
		return 2
	case TripleBomb:
		return 3
	case QuadBomb:
		return 4
	case MaxBomb:
		return 5
	}
	return 0
}

func (k Kind) IsBomb() bool {
	return k.BombTier() > 0
}

// IsSequence reports whether two combinations of this kind must also match
// in card count to be comparable.
func (k Kind) IsSequence() bool {
	switch k {
	case Straight, SequenceOfPairs, SequenceOfTriples:
		return true
	}
	return false
}

// Combination is a classified set of cards. Rank is the comparison value for
// same-kind matchups: the single's value, the triple's value, the top rank of
// a run. Value object, never mutated after construction.
type Combination struct {
	Kind  Kind        `json:"kind"`
	Rank  card.Rank   `json:"rank"`
	Cards []card.Card `json:"cards"`
}

// Stronger reports whether a beats b on the table.
//
// Rocket beats everything. Any bomb beats any non-bomb; bombs compare by tier
// then rank. Everything else only compares within the same kind, and sequence
// kinds additionally require equal length: a five-card straight and a
// six-card straight simply do not interact.
func Stronger(a, b Combination) bool {
	if a.Kind == Rocket {
		return b.Kind != Rocket
	}
	if b.Kind == Rocket {
		return false
	}
	at, bt := a.Kind.BombTier(), b.Kind.BombTier()
	if at > 0 || bt > 0 {
		if at != bt {
			return at > bt
		}
		return a.Rank > b.Rank
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind.IsSequence() && len(a.Cards) != len(b.Cards) {
		return false
	}
	return a.Rank > b.Rank
}

// fingerprint is the cache key material: the physical identity of a card set,
// order independent.
func fingerprint(cards []card.Card) string {
	keys := make([]string, len(cards))
	for i, c := range cards {
		keys[i] = strconv.Itoa(int(c.Rank)*8 + int(c.Suit))
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
