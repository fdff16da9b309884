package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/war/internal/config"
	"github.com/arcanaland/war/internal/game"
	"github.com/arcanaland/war/internal/render"
	"github.com/arcanaland/war/internal/scenario"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game of War in the terminal",
	Long: `Play deals a new game and waits for you to press Enter before each round.

Type "n" for a new game, "r" to clear the table or "q" to quit.
Use --auto to let the game play itself to the end.

Examples:
  war play
  war play --seed 42 --name Ada
  war play --auto --delay 0
  war play --scenario starve`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		deal, err := dealer(cmd, cfg)
		if err != nil {
			return err
		}

		d := render.NewDisplay(cmd.OutOrStdout(), displayOptions(cfg))
		st := deal()
		d.Welcome(st.ID().String(), st.CardsRemaining(game.Player), st.CardsRemaining(game.Computer))

		if auto, _ := cmd.Flags().GetBool("auto"); auto {
			return autoplay(d, st, cfg)
		}

		in := bufio.NewScanner(cmd.InOrStdin())
		for in.Scan() {
			switch strings.ToLower(strings.TrimSpace(in.Text())) {
			case "q", "quit", "exit":
				return nil
			case "n", "new":
				st = deal()
				d.Welcome(st.ID().String(), st.CardsRemaining(game.Player), st.CardsRemaining(game.Computer))
			case "r", "reset":
				d.Clear(st.CardsRemaining(game.Player), st.CardsRemaining(game.Computer), st.Round())
				d.Status("Press Enter to continue!")
			default:
				if st.IsTerminal() {
					d.Status(`The game is over. Type "n" for a new game or "q" to quit.`)
					continue
				}
				showRound(d, st, game.PlayRound(st), cfg)
			}
		}
		return in.Err()
	},
}

func init() {
	RootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("auto", false, "Play every round without waiting for input")
	playCmd.Flags().Uint64("seed", 0, "Shuffle seed (0 picks one from the clock)")
	playCmd.Flags().String("name", "", "Your name on the table")
	playCmd.Flags().Int("delay", 0, "Milliseconds to pause before showing each round")
	playCmd.Flags().Int("max-rounds", 0, "Stop autoplay after this many rounds (0 for no limit)")
	playCmd.Flags().StringP("scenario", "s", "", "Start from a scenario file or a scenario in your library")
}

// dealer returns the function that starts each new game
func dealer(cmd *cobra.Command, cfg *config.Config) (func() *game.State, error) {
	name, _ := cmd.Flags().GetString("scenario")
	if name != "" {
		path, err := config.GetScenarioPath(name)
		if err != nil {
			return nil, err
		}
		sc, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Printf("[GAME] scenario %q from %s", sc.Name, sc.Path)
		return sc.NewGame, nil
	}

	rng, seed := newRand(cfg.Seed)
	logger.Printf("[GAME] shuffle seed %d", seed)
	return func() *game.State { return game.New(rng) }, nil
}

func showRound(d *render.Display, st *game.State, o game.Outcome, cfg *config.Config) {
	if o.Wars > 0 {
		logger.Printf("[WAR] game %s round %d: %d war(s), %d cards in the pot", st.ID(), o.Round, o.Wars, len(o.Pot))
	}
	if o.Status == game.GameOver {
		logger.Printf("[GAME] game %s over after %d rounds: %s wins (%s)", st.ID(), o.Round, o.Winner, o.Reason)
	}
	time.Sleep(cfg.Delay())
	d.Outcome(o)
}

func autoplay(d *render.Display, st *game.State, cfg *config.Config) error {
	last := game.Play(st, cfg.MaxRounds, func(o game.Outcome) {
		showRound(d, st, o, cfg)
	})
	if last.Status != game.GameOver {
		d.Status(fmt.Sprintf("Stopped after %d rounds without a winner.", last.Round))
	}
	return nil
}
