package cmd

import (
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/war/internal/config"
	"github.com/arcanaland/war/internal/render"
)

// logger carries [TAG] diagnostics to stderr when --verbose is set
var logger = log.New(io.Discard, "", log.LstdFlags)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "war",
	Short: "Play the card game War against the computer",
	Long: `War deals a shuffled 52-card deck between you and the computer. Each round
both sides turn over their top card and the higher rank takes both. Ties go to
war: three cards face down, one face up, until someone wins or runs short.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetOutput(os.Stderr)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log game events to stderr")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")
	RootCmd.AddCommand(validateCmd)
}

// loadSettings reads the config and applies the flags a command defines
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Lookup("name") != nil && flags.Changed("name") {
		cfg.PlayerName, _ = flags.GetString("name")
	}
	if flags.Lookup("delay") != nil && flags.Changed("delay") {
		cfg.DelayMs, _ = flags.GetInt("delay")
	}
	if flags.Lookup("max-rounds") != nil && flags.Changed("max-rounds") {
		cfg.MaxRounds, _ = flags.GetInt("max-rounds")
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		cfg.Color = config.ColorNever
	}
	switch cfg.Color {
	case config.ColorAlways:
		colorize.NoColor = false
	case config.ColorNever:
		colorize.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// displayOptions maps config onto the display adapter
func displayOptions(cfg *config.Config) render.Options {
	opts := render.Options{
		PlayerName: cfg.PlayerName,
		TrueColor:  cfg.TrueColor,
	}
	switch cfg.Color {
	case config.ColorAlways:
		on := true
		opts.Color = &on
	case config.ColorNever:
		off := false
		opts.Color = &off
	}
	return opts
}

// newRand returns a PCG source for seed, picking a clock seed when seed is 0
func newRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed)), seed
}
