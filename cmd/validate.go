package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/war/internal/config"
	"github.com/arcanaland/war/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [scenario]",
	Short: "Validate a scenario file",
	Long: `Validate checks that a scenario file parses, that every card token is a real
card and that no card is dealt twice. Layouts that leave cards out are reported
as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetScenarioPath(args[0])
		if err != nil {
			return err
		}

		v := validator.NewValidator(path)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ Scenario '%s' is valid.\n", path)
		} else {
			fmt.Fprintf(out, "❌ Scenario '%s' has %d validation errors:\n", path, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
