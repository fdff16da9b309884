package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arcanaland/war/internal/card"
)

const (
	cardInner  = 9
	cardWidth  = cardInner + 2
	cardHeight = 7
)

// Face draws a face-up card as boxed text, one string per line
func (p *Palette) Face(c card.Card) []string {
	rank := string(c.Rank())
	suit := string(c.Suit())

	tint := p.black
	if c.Red() {
		tint = p.red
	}

	lines := []string{
		"┌" + strings.Repeat("─", cardInner) + "┐",
		"│" + tint(fmt.Sprintf("%-*s", cardInner, rank)) + "│",
		"│" + strings.Repeat(" ", cardInner) + "│",
		"│" + tint(center(suit, cardInner)) + "│",
		"│" + strings.Repeat(" ", cardInner) + "│",
		"│" + tint(fmt.Sprintf("%*s", cardInner, rank)) + "│",
		"└" + strings.Repeat("─", cardInner) + "┘",
	}
	return lines
}

// Back draws a face-down card
func (p *Palette) Back() []string {
	fill := strings.Repeat("░", cardInner)
	return []string{
		"┌" + strings.Repeat("─", cardInner) + "┐",
		"│" + p.back(fill) + "│",
		"│" + p.back(fill) + "│",
		"│" + p.back(center("⚜", cardInner)) + "│",
		"│" + p.back(fill) + "│",
		"│" + p.back(fill) + "│",
		"└" + strings.Repeat("─", cardInner) + "┘",
	}
}

// Slot draws an empty place on the table
func (p *Palette) Slot() []string {
	blank := strings.Repeat(" ", cardInner)
	lines := []string{"╭" + strings.Repeat("╌", cardInner) + "╮"}
	for i := 0; i < cardHeight-2; i++ {
		lines = append(lines, "╎"+blank+"╎")
	}
	lines = append(lines, "╰"+strings.Repeat("╌", cardInner)+"╯")
	for i := range lines {
		lines[i] = p.dim(lines[i])
	}
	return lines
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// sideBySide lays out blocks of lines left to right with gap columns between them
func sideBySide(gap int, blocks ...[]string) []string {
	height := 0
	widths := make([]int, len(blocks))
	for i, b := range blocks {
		if len(b) > height {
			height = len(b)
		}
		for _, line := range b {
			if w := visibleWidth(line); w > widths[i] {
				widths[i] = w
			}
		}
	}

	out := make([]string, height)
	for row := 0; row < height; row++ {
		var sb strings.Builder
		for i, b := range blocks {
			line := ""
			if row < len(b) {
				line = b[row]
			}
			sb.WriteString(line)
			if i < len(blocks)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-visibleWidth(line)+gap))
			}
		}
		out[row] = sb.String()
	}
	return out
}

// visibleWidth counts runes outside ANSI escape sequences
func visibleWidth(s string) int {
	return utf8.RuneCountInString(stripAnsi(s))
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
