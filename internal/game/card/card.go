package card

import "fmt"

// Rank runs in gameplay order: Three is the weakest card, Two sits above
// Ace, jokers are above everything. The numeric value is the comparison
// value, no remapping happens anywhere else.
type Rank int

const (
	Three Rank = iota
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	Two
	Joker
)

// Suit covers the four standard suits plus the two joker colors. The colors
// only exist so the two jokers stay distinct physical cards (rocket detection
// needs them to differ).
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs
	Black
	Red
)

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) IsJoker() bool {
	return c.Rank == Joker
}

func (c Card) IsTwo() bool {
	return c.Rank == Two
}

var rankNames = []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2", "Joker"}
var suitNames = []string{"♥", "♦", "♠", "♣", "B", "R"}

func (c Card) String() string {
	r, s := "?", "?"
	if c.Rank >= Three && c.Rank <= Joker {
		r = rankNames[c.Rank]
	}
	if c.Suit >= Hearts && c.Suit <= Red {
		s = suitNames[c.Suit]
	}
	if c.Rank == Joker {
		return fmt.Sprintf("%s(%s)", r, s)
	}
	return r + s
}
