package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/war/internal/card"
	"github.com/arcanaland/war/internal/deck"
	"github.com/arcanaland/war/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show [card...]",
	Short: "Draw cards in the terminal or as SVG",
	Long: `Show draws the given cards. Cards are written as rank then suit, with the
suit as a symbol or a letter: K♠, KS, 10h, Td, ac.

Examples:
  war show AS KH 10d
  war show --svg QH > queen.svg
  war show --full`,
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("full")
		back, _ := cmd.Flags().GetBool("back")
		svg, _ := cmd.Flags().GetBool("svg")

		var cards []card.Card
		if full {
			cards = deck.NewFull().Cards()
		} else {
			if len(args) == 0 && !back {
				return fmt.Errorf("no cards given (try 'war show AS' or 'war show --full')")
			}
			parsed, err := card.ParseAll(args)
			if err != nil {
				return err
			}
			cards = parsed
		}
		if back && len(cards) == 0 {
			cards = []card.Card{{}}
		}

		out := cmd.OutOrStdout()
		if svg {
			for _, c := range cards {
				fmt.Fprint(out, render.SVG(c, back))
			}
			return nil
		}

		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		render.NewDisplay(out, displayOptions(cfg)).Cards(cards, back)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("svg", false, "Print SVG markup instead of terminal art")
	showCmd.Flags().Bool("back", false, "Draw the card back instead of the face")
	showCmd.Flags().Bool("full", false, "Show the full deck in canonical order")
}
