package deck

import (
	"github.com/arcanaland/war/internal/card"
)

// FullSize is the number of cards in a standard deck
const FullSize = 52

// Rand is the random source a shuffle draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n)
	IntN(n int) int
}

// Deck is an ordered pile of cards. The front is the draw end and the
// back is the append end.
type Deck struct {
	cards []card.Card
}

// New creates a deck holding the given cards, front first
func New(cards ...card.Card) *Deck {
	d := &Deck{cards: make([]card.Card, 0, len(cards))}
	d.cards = append(d.cards, cards...)
	return d
}

// NewFull creates the 52 card deck in canonical order: suits outer, ranks inner.
func NewFull() *Deck {
	d := &Deck{cards: make([]card.Card, 0, FullSize)}
	for _, suit := range card.Suits {
		for _, rank := range card.Ranks {
			d.cards = append(d.cards, card.New(suit, rank))
		}
	}
	return d
}

// Shuffle permutes the deck in place with Fisher-Yates.
func (d *Deck) Shuffle(r Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the front card. ok is false when the deck is empty.
func (d *Deck) Draw() (c card.Card, ok bool) {
	if len(d.cards) == 0 {
		return card.Card{}, false
	}
	c = d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// DrawN draws up to n cards from the front, in draw order
func (d *Deck) DrawN(n int) []card.Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := make([]card.Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// Append adds cards to the back, preserving their order
func (d *Deck) Append(cards ...card.Card) {
	d.cards = append(d.cards, cards...)
}

// Return puts cards back on the front so that cards[0] is drawn next.
func (d *Deck) Return(cards ...card.Card) {
	if len(cards) == 0 {
		return
	}
	merged := make([]card.Card, 0, len(cards)+len(d.cards))
	merged = append(merged, cards...)
	merged = append(merged, d.cards...)
	d.cards = merged
}

// Size returns the number of cards left
func (d *Deck) Size() int {
	return len(d.cards)
}

// Cards returns a copy of the deck, front first
func (d *Deck) Cards() []card.Card {
	out := make([]card.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Split cuts the deck at n. The receiver keeps nothing; the first n cards go
// to the first returned deck and the rest to the second.
func (d *Deck) Split(n int) (*Deck, *Deck) {
	if n < 0 {
		n = 0
	}
	if n > len(d.cards) {
		n = len(d.cards)
	}
	front := New(d.cards[:n]...)
	back := New(d.cards[n:]...)
	d.cards = nil
	return front, back
}
