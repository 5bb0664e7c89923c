package cli

import (
	"strings"

	"github.com/spf13/cobra"

	apperrors "tradelight/internal/errors"
)

// addModelCommands adds trade model list commands.
func addModelCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Trade model management",
		Long:  "Maintain the list of trade model names used when logging trades.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [query]",
		Short: "List saved trade models",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			names := app.Models.Filter(query)

			if output.IsJSON() {
				if names == nil {
					names = []string{}
				}
				return output.JSON(names)
			}
			if len(names) == 0 {
				output.Info("No trade models saved.")
				return nil
			}
			for _, name := range names {
				output.Println("  " + name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a trade model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			name := strings.Join(args, " ")
			if err := app.Models.Add(name); err != nil {
				if apperrors.Is(err, apperrors.ErrModelExists) {
					output.Warning("Model %q already exists", name)
					return nil
				}
				return err
			}
			output.Success("Added model %q", name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a trade model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			name := strings.Join(args, " ")
			if err := app.Models.Remove(name); err != nil {
				if apperrors.Is(err, apperrors.ErrModelNotFound) {
					output.Warning("Model %q not found", name)
					return nil
				}
				return err
			}
			output.Success("Removed model %q", name)
			return nil
		},
	})

	rootCmd.AddCommand(cmd)
}
