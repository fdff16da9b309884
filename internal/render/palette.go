package render

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
)

// suit colours from the original card faces
const (
	redHex   = "#E31E24"
	blackHex = "#000000"
)

// Palette holds the colour functions used for card faces and status text
type Palette struct {
	red   func(string) string
	black func(string) string
	back  func(string) string
	dim   func(string) string

	Title  func(format string, a ...interface{}) string
	Label  func(format string, a ...interface{}) string
	Value  func(format string, a ...interface{}) string
	Win    func(format string, a ...interface{}) string
	Lose   func(format string, a ...interface{}) string
	Notice func(format string, a ...interface{}) string
}

// NewPalette builds a palette. enabled nil leaves the decision to fatih/color,
// which checks for a terminal and NO_COLOR. trueColor emits 24-bit suit colours.
func NewPalette(enabled *bool, trueColor bool) *Palette {
	mk := func(attrs ...colorize.Attribute) *colorize.Color {
		c := colorize.New(attrs...)
		if enabled != nil {
			if *enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
		return c
	}

	on := !colorize.NoColor
	if enabled != nil {
		on = *enabled
	}

	p := &Palette{
		red:    sprint(mk(colorize.FgHiRed)),
		black:  sprint(mk(colorize.FgHiWhite)),
		back:   sprint(mk(colorize.FgBlue)),
		dim:    sprint(mk(colorize.Faint)),
		Title:  mk(colorize.FgHiWhite, colorize.Bold).SprintfFunc(),
		Label:  mk(colorize.FgCyan).SprintfFunc(),
		Value:  mk(colorize.FgHiWhite).SprintfFunc(),
		Win:    mk(colorize.FgHiGreen, colorize.Bold).SprintfFunc(),
		Lose:   mk(colorize.FgHiRed, colorize.Bold).SprintfFunc(),
		Notice: mk(colorize.FgHiYellow, colorize.Bold).SprintfFunc(),
	}

	if on && trueColor {
		p.red = rgb(redHex)
	}
	return p
}

func sprint(c *colorize.Color) func(string) string {
	return func(s string) string { return c.Sprint(s) }
}

// rgb returns a 24-bit foreground colour function for a hex colour
func rgb(hex string) func(string) string {
	col, err := colorful.Hex(hex)
	if err != nil {
		col, _ = colorful.Hex(blackHex)
	}
	r, g, b := col.RGB255()
	return func(s string) string {
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
	}
}
