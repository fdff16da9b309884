package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/arcanaland/war/internal/card"
	"github.com/arcanaland/war/internal/game"
)

const (
	defaultWidth = 80
	columnGap    = 6
)

// Options configures a Display
type Options struct {
	PlayerName string
	// Color is nil for automatic detection
	Color     *bool
	TrueColor bool
	// Width overrides terminal detection when positive
	Width int
}

// Display writes game outcomes to a terminal. It only sees outcome values,
// never the game state itself.
type Display struct {
	out  io.Writer
	opts Options
	pal  *Palette
}

// NewDisplay creates a display writing to out
func NewDisplay(out io.Writer, opts Options) *Display {
	if opts.PlayerName == "" {
		opts.PlayerName = "You"
	}
	return &Display{
		out:  out,
		opts: opts,
		pal:  NewPalette(opts.Color, opts.TrueColor),
	}
}

// width returns the terminal width, or a default when out is not a terminal
func (d *Display) width() int {
	if d.opts.Width > 0 {
		return d.opts.Width
	}
	if f, ok := d.out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func (d *Display) you() bool {
	return d.opts.PlayerName == "You"
}

// RoundMessage is the status line for a round or game result
func (d *Display) RoundMessage(o game.Outcome) string {
	if o.Status == game.GameOver {
		if o.Winner == game.Player {
			if d.you() {
				return "You WIN!"
			}
			return d.opts.PlayerName + " WINS!"
		}
		return "Computer WINS!"
	}

	if o.RoundWinner == game.Player {
		if d.you() {
			return "You win the round!"
		}
		return d.opts.PlayerName + " wins the round!"
	}
	return "Computer wins!"
}

// Welcome prints the opening table for a fresh deal
func (d *Display) Welcome(id string, playerCards, computerCards int) {
	fmt.Fprintln(d.out, d.pal.Title("WAR")+"  "+d.pal.Label("game %s", shortID(id)))
	d.Clear(playerCards, computerCards, 0)
	d.Status(`Press Enter to draw a card ("n" new game, "r" clear table, "q" quit).`)
}

// Clear shows an empty table with the current counts
func (d *Display) Clear(playerCards, computerCards, round int) {
	d.table(d.pal.Slot(), d.pal.Slot())
	d.counts(playerCards, computerCards, round)
}

// Outcome prints one round: the cards played, any war, the result and the counts
func (d *Display) Outcome(o game.Outcome) {
	if o.Played {
		d.table(d.pal.Face(o.PlayerCard), d.pal.Face(o.ComputerCard))
	}

	if o.Wars > 0 {
		msg := "WAR!"
		if o.Wars > 1 {
			msg = fmt.Sprintf("WAR! x%d", o.Wars)
		}
		d.Status(d.pal.Notice(msg))
		if len(o.Pot) > 0 {
			d.Status(d.pal.Label("Pot: ") + d.potLine(o.Pot))
		}
	}

	msg := d.RoundMessage(o)
	switch {
	case o.Status == game.GameOver && o.Winner == game.Player:
		d.Status(d.pal.Win(msg))
	case o.Status == game.GameOver:
		d.Status(d.pal.Lose(msg))
	default:
		d.Status(d.pal.Value(msg))
	}
	if o.Status == game.GameOver && o.Reason != game.NotOver {
		d.Status(d.pal.Label("(%s)", o.Reason))
	}

	d.counts(o.PlayerCardsRemaining, o.ComputerCardsRemaining, o.Round)
}

// Cards prints cards in a row, wrapping to the terminal width
func (d *Display) Cards(cards []card.Card, faceDown bool) {
	perRow := (d.width() - 2) / (cardWidth + 1)
	if perRow < 1 {
		perRow = 1
	}

	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		blocks := make([][]string, 0, end-start)
		for _, c := range cards[start:end] {
			if faceDown {
				blocks = append(blocks, d.pal.Back())
			} else {
				blocks = append(blocks, d.pal.Face(c))
			}
		}
		for _, line := range sideBySide(1, blocks...) {
			fmt.Fprintln(d.out, "  "+line)
		}
	}
}

func (d *Display) table(player, computer []string) {
	left := append([]string{d.pal.Label("%s", d.opts.PlayerName)}, player...)
	right := append([]string{d.pal.Label("Computer")}, computer...)

	fmt.Fprintln(d.out)
	if d.width() < 2*cardWidth+columnGap+2 {
		for _, line := range append(left, right...) {
			fmt.Fprintln(d.out, "  "+line)
		}
		return
	}
	for _, line := range sideBySide(columnGap, left, right) {
		fmt.Fprintln(d.out, "  "+line)
	}
}

func (d *Display) counts(playerCards, computerCards, round int) {
	fmt.Fprintf(d.out, "  %s %s   %s %s\n",
		d.pal.Label("%s:", d.opts.PlayerName), d.pal.Value("%d cards", playerCards),
		d.pal.Label("Computer:"), d.pal.Value("%d cards", computerCards))
	fmt.Fprintf(d.out, "  %s\n", d.pal.Label("Round %d | Total Cards: %d", round, playerCards+computerCards))
}

// Status prints an indented status line
func (d *Display) Status(msg string) {
	fmt.Fprintln(d.out, "  "+msg)
}

func (d *Display) potLine(pot []card.Card) string {
	parts := make([]string, len(pot))
	for i, c := range pot {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
