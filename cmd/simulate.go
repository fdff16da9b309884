package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/war/internal/game"
	"github.com/arcanaland/war/internal/scenario"
	"github.com/arcanaland/war/internal/validator"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play many computer-vs-computer games and report the results",
	Long: `Simulate plays independent seeded games in parallel and prints win counts,
round statistics and the longest game. The same --seed always gives the same totals.

Examples:
  war simulate -n 10000 --seed 7
  war simulate --check --dump-longest longest.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		games, _ := cmd.Flags().GetInt("games")
		workers, _ := cmd.Flags().GetInt("workers")
		check, _ := cmd.Flags().GetBool("check")
		dump, _ := cmd.Flags().GetString("dump-longest")

		if games <= 0 {
			return fmt.Errorf("--games must be positive")
		}
		if cfg.MaxRounds <= 0 {
			return fmt.Errorf("simulation needs a round cap; set --max-rounds or max_rounds")
		}

		_, seed := newRand(cfg.Seed)
		logger.Printf("[SIM] %d games, seed %d, cap %d rounds", games, seed, cfg.MaxRounds)

		var checkFn func(*game.State) error
		if check {
			checkFn = validator.CheckState
		}
		st := game.Simulate(games, seed, cfg.MaxRounds, workers, checkFn)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Simulation Results:")
		fmt.Fprintln(out, "-------------------")
		fmt.Fprintf(out, "%s %d (seed %d)\n", colorize.CyanString("Games:        "), st.Games, seed)
		fmt.Fprintf(out, "%s %d (%.1f%%)\n", colorize.CyanString("Player wins:  "), st.PlayerWins, percent(st.PlayerWins, st.Games))
		fmt.Fprintf(out, "%s %d (%.1f%%)\n", colorize.CyanString("Computer wins:"), st.ComputerWins, percent(st.ComputerWins, st.Games))
		fmt.Fprintf(out, "%s %d\n", colorize.CyanString("Capped:       "), st.Capped)
		fmt.Fprintf(out, "%s %d\n", colorize.CyanString("Starved wars: "), st.Starved)
		fmt.Fprintf(out, "%s %.1f\n", colorize.CyanString("Mean rounds:  "), st.MeanRounds())
		fmt.Fprintf(out, "%s %d\n", colorize.CyanString("Total wars:   "), st.TotalWars)
		fmt.Fprintf(out, "%s %d rounds (seed %d)\n", colorize.CyanString("Longest game: "), st.Longest.Rounds, st.Longest.Seed)

		if dump != "" && st.Games > 0 {
			text, err := scenario.Encode(fmt.Sprintf("seed %d", st.Longest.Seed), game.NewSeeded(st.Longest.Seed))
			if err != nil {
				return err
			}
			if err := os.WriteFile(dump, []byte(text), 0644); err != nil {
				return fmt.Errorf("error writing %s: %w", dump, err)
			}
			fmt.Fprintf(out, "Longest game's deal written to %s\n", dump)
		}

		if len(st.Errors) > 0 {
			fmt.Fprintf(out, "\n❌ %d games failed the state check:\n", len(st.Errors))
			for i, err := range st.Errors {
				fmt.Fprintf(out, "%d. %v\n", i+1, err)
			}
			return fmt.Errorf("simulation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntP("games", "n", 1000, "Number of games to play")
	simulateCmd.Flags().Uint64("seed", 0, "Seed for the game seeds (0 picks one from the clock)")
	simulateCmd.Flags().Int("max-rounds", 0, "Abandon a game after this many rounds")
	simulateCmd.Flags().Int("workers", 0, "Parallel workers (0 uses every CPU)")
	simulateCmd.Flags().Bool("check", false, "Verify the 52-card partition after every round")
	simulateCmd.Flags().String("dump-longest", "", "Write the longest game's opening deal as a scenario file")
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
