package card

import (
	"fmt"
	"strings"
)

// Suit is one of the four French suits
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Rank is the face value token of a card ("2".."10", "J", "Q", "K", "A")
type Rank string

// Suits lists the suits in canonical enumeration order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Ranks lists the ranks from lowest to highest
var Ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var numericRanks = map[Rank]int{
	"2":  2,
	"3":  3,
	"4":  4,
	"5":  5,
	"6":  6,
	"7":  7,
	"8":  8,
	"9":  9,
	"10": 10,
	"J":  11,
	"Q":  12,
	"K":  13,
	"A":  14,
}

var suitLetters = map[string]Suit{
	"S": Spades,
	"H": Hearts,
	"D": Diamonds,
	"C": Clubs,
}

// Card represents a playing card. The zero value is not a valid card.
type Card struct {
	suit    Suit
	rank    Rank
	numeric int
}

// New constructs a card. An unknown suit or rank is a programming error and panics.
func New(suit Suit, rank Rank) Card {
	n, ok := numericRanks[rank]
	if !ok {
		panic(fmt.Sprintf("card: invalid rank %q", rank))
	}
	if !validSuit(suit) {
		panic(fmt.Sprintf("card: invalid suit %q", suit))
	}
	return Card{suit: suit, rank: rank, numeric: n}
}

func validSuit(s Suit) bool {
	for _, v := range Suits {
		if v == s {
			return true
		}
	}
	return false
}

// Suit returns the card's suit
func (c Card) Suit() Suit { return c.suit }

// Rank returns the card's rank token
func (c Card) Rank() Rank { return c.rank }

// NumericRank returns the comparison value, 2 through 14 with the ace high
func (c Card) NumericRank() int { return c.numeric }

// IsZero reports whether c is the zero value rather than a constructed card
func (c Card) IsZero() bool { return c.numeric == 0 }

// Red reports whether the card belongs to a red suit
func (c Card) Red() bool {
	return c.suit == Hearts || c.suit == Diamonds
}

func (c Card) String() string {
	if c.IsZero() {
		return "??"
	}
	return string(c.rank) + string(c.suit)
}

// Compare returns 1 if a outranks b, -1 if b outranks a and 0 on a tie.
// Suits never break ties.
func Compare(a, b Card) int {
	switch {
	case a.numeric > b.numeric:
		return 1
	case a.numeric < b.numeric:
		return -1
	default:
		return 0
	}
}

// Parse reads a card token such as "K♠", "KS", "10h" or "ah".
func Parse(token string) (Card, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return Card{}, fmt.Errorf("empty card token")
	}

	var suit Suit
	found := false
	for _, s := range Suits {
		if strings.HasSuffix(t, string(s)) {
			suit = s
			t = strings.TrimSuffix(t, string(s))
			found = true
			break
		}
	}
	if !found {
		last := strings.ToUpper(t[len(t)-1:])
		s, ok := suitLetters[last]
		if !ok {
			return Card{}, fmt.Errorf("invalid suit in card token %q", token)
		}
		suit = s
		t = t[:len(t)-1]
	}

	rank := Rank(strings.ToUpper(t))
	if rank == "T" {
		rank = "10"
	}
	if _, ok := numericRanks[rank]; !ok {
		return Card{}, fmt.Errorf("invalid rank in card token %q", token)
	}

	return New(suit, rank), nil
}

// Duplicates returns every card that appears more than once across the
// stacks, in the order the second copy is found.
func Duplicates(stacks ...[]Card) []Card {
	seen := make(map[Card]int)
	var dups []Card
	for _, stack := range stacks {
		for _, c := range stack {
			seen[c]++
			if seen[c] == 2 {
				dups = append(dups, c)
			}
		}
	}
	return dups
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(token string) Card {
	c, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseAll parses a list of card tokens, stopping at the first error
func ParseAll(tokens []string) ([]Card, error) {
	cards := make([]Card, 0, len(tokens))
	for i, tok := range tokens {
		c, err := Parse(tok)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}
