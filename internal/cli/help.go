// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExamplesCmd(app))
}

func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflows",
		Long:  "Display example invocations for everyday journaling tasks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Common Workflows")
			output.Println()

			examples := []struct {
				title string
				lines []string
			}{
				{
					"Log today's trade",
					[]string{
						"tradelight log edit --points 25 --contracts 2",
						"tradelight log edit --model \"Silver Bullet\" --entry 09:45 --exit 10:20",
					},
				},
				{
					"Override the derived P&L",
					[]string{
						"tradelight log edit --pnl 375.50",
						"tradelight log edit --pnl 0   # back to derived",
					},
				},
				{
					"Mark session behavior",
					[]string{
						"tradelight log edit --session \"New York=displacement:up:low\"",
						"tradelight log edit --session \"London=consolidation\"",
					},
				},
				{
					"Attach chart analysis",
					[]string{
						"tradelight log edit --image ./nq-0612.png --analysis \"clean sweep of the low\"",
					},
				},
				{
					"Review performance",
					[]string{
						"tradelight dashboard",
						"tradelight dashboard --month 2025-05",
						"tradelight dashboard recent --limit 10",
					},
				},
				{
					"Maintain trade models",
					[]string{
						"tradelight models add \"Silver Bullet\"",
						"tradelight models list silver",
					},
				},
			}

			for _, ex := range examples {
				output.Info("%s", ex.title)
				for _, line := range ex.lines {
					output.Printf("  %s\n", line)
				}
				output.Println()
			}
			return nil
		},
	}
}
