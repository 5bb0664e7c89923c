package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tradelight/internal/settings"
)

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive number, got %q", s)
	}
	return n, nil
}

// addSettingsCommands adds preference commands.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "User preferences",
		Long:  "View and change appearance and journaling preferences.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			values := app.Settings.Snapshot()
			if output.IsJSON() {
				return output.JSON(values)
			}
			output.Bold("Preferences")
			output.Printf("  Theme:             %s\n", values.Theme)
			output.Printf("  Font:              %s\n", values.Font)
			output.Printf("  Particles:         %v\n", values.Particles)
			output.Printf("  Particles Density: %d\n", values.ParticlesDensity)
			output.Printf("  Monthly Log Goal:  %d\n", values.LogGoal)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "theme <name>",
		Short: "Set the color theme",
		Long:  "Set the color theme. Available: " + strings.Join(settings.Themes, ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Settings.SetTheme(args[0]); err != nil {
				return err
			}
			output.Success("Theme set to %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "font <name>",
		Short: "Set the font stack",
		Long:  "Set the font stack. Available: " + strings.Join(settings.Fonts, ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Settings.SetFont(args[0]); err != nil {
				return err
			}
			output.Success("Font set to %s", args[0])
			return nil
		},
	})

	particlesCmd := &cobra.Command{
		Use:   "particles <on|off>",
		Short: "Toggle the background particle effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			enabled := args[0] == "on" || args[0] == "true"
			if err := app.Settings.SetParticles(enabled); err != nil {
				return err
			}
			if density, _ := cmd.Flags().GetInt("density"); cmd.Flags().Changed("density") {
				if err := app.Settings.SetParticlesDensity(density); err != nil {
					return err
				}
			}
			if enabled {
				output.Success("Particles enabled")
			} else {
				output.Success("Particles disabled")
			}
			return nil
		},
	}
	particlesCmd.Flags().Int("density", settings.DefaultParticlesDensity, "particle density (0-200)")
	cmd.AddCommand(particlesCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "goal <days>",
		Short: "Set the monthly logged-day goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			goal, err := parsePositiveInt(args[0])
			if err != nil {
				return err
			}
			if err := app.Settings.SetLogGoal(goal); err != nil {
				return err
			}
			output.Success("Monthly goal set to %d days", goal)
			return nil
		},
	})

	rootCmd.AddCommand(cmd)
}
