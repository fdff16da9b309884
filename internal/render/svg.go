package render

import (
	"fmt"
	"html"

	"github.com/arcanaland/war/internal/card"
)

// SVG returns a 120x170 SVG drawing of c, or of a card back when back is set.
func SVG(c card.Card, back bool) string {
	if back {
		return `<svg width="120" height="170" viewBox="0 0 120 170" xmlns="http://www.w3.org/2000/svg">
  <rect x="2" y="2" width="116" height="166" rx="10" ry="10" fill="white" stroke="black" stroke-width="2"/>
  <rect x="10" y="10" width="100" height="150" fill="none" stroke="black" stroke-width="2" stroke-dasharray="5,5"/>
  <text x="60" y="90" font-size="32" text-anchor="middle" font-family="serif" fill="black">⚜</text>
</svg>
`
	}

	fill := blackHex
	if c.Red() {
		fill = redHex
	}
	rank := html.EscapeString(string(c.Rank()))
	suit := html.EscapeString(string(c.Suit()))

	return fmt.Sprintf(`<svg width="120" height="170" viewBox="0 0 120 170" xmlns="http://www.w3.org/2000/svg">
  <rect x="2" y="2" width="116" height="166" rx="10" ry="10" fill="white" stroke="black" stroke-width="2"/>
  <text x="12" y="28" font-size="22" font-family="serif" fill="%[1]s">%[2]s</text>
  <text x="60" y="95" font-size="48" text-anchor="middle" font-family="serif" fill="%[1]s">%[3]s</text>
  <text x="108" y="152" font-size="22" font-family="serif" fill="%[1]s" transform="rotate(180 108 152)">%[2]s</text>
</svg>
`, fill, rank, suit)
}
