package render

import (
	"github.com/arcanaland/war/internal/card"
	"github.com/arcanaland/war/internal/deck"
)

func stackOf(tokens ...string) *deck.Deck {
	d := deck.New()
	for _, tok := range tokens {
		d.Append(card.MustParse(tok))
	}
	return d
}
