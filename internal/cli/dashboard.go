package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradelight/internal/dashboard"
	"tradelight/internal/models"
	"tradelight/pkg/utils"
)

// addDashboardCommands adds dashboard commands.
func addDashboardCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Trading dashboard",
		Long:  "Calendar view, aggregate stats, and monthly logging progress.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, app)
		},
	}
	cmd.Flags().String("month", "", "month to display as YYYY-MM (default: current)")

	cmd.AddCommand(newDashboardStatsCmd(app))
	cmd.AddCommand(newDashboardRecentCmd(app))

	rootCmd.AddCommand(cmd)
}

func resolveMonth(cmd *cobra.Command) (time.Time, error) {
	monthFlag, _ := cmd.Flags().GetString("month")
	if monthFlag == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	anchor, err := time.Parse("2006-01", monthFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM)", monthFlag)
	}
	return anchor, nil
}

func runDashboard(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	anchor, err := resolveMonth(cmd)
	if err != nil {
		return err
	}
	userID, err := app.userID(ctx)
	if err != nil {
		return err
	}

	logs, err := app.Journal.LoadAll(ctx, userID)
	if err != nil {
		output.Error("Failed to load day logs: %v", err)
		return err
	}

	goal := app.Settings.Snapshot().LogGoal
	summaries := dashboard.Summarize(logs)
	stats := dashboard.ComputeStats(logs)
	progress := dashboard.TrackProgress(dashboard.FilterMonth(logs, anchor), goal)

	if output.IsJSON() {
		return output.JSON(map[string]interface{}{
			"month":    anchor.Format("2006-01"),
			"days":     summaries,
			"stats":    stats,
			"progress": progress,
		})
	}

	renderCalendar(output, anchor, summaries)
	output.Println()
	renderStats(output, stats)
	output.Println()
	renderProgress(output, progress)
	return nil
}

// renderCalendar prints a month grid. Green days ended positive, red days
// negative, and a dot marks days logged without a P&L outcome.
func renderCalendar(output *Output, anchor time.Time, summaries map[string]dashboard.DaySummary) {
	output.Bold("%s", anchor.Format("January 2006"))
	output.Println(output.DimText(" Su  Mo  Tu  We  Th  Fr  Sa"))

	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var line strings.Builder
	line.WriteString(strings.Repeat("    ", int(first.Weekday())))
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, time.UTC)
		cell := fmt.Sprintf("%3d", day)
		if s, ok := summaries[models.DayKey(date)]; ok && s.IsLogged {
			switch {
			case s.NetPnL > 0:
				cell = output.Green(cell)
			case s.NetPnL < 0:
				cell = output.Red(cell)
			default:
				cell = output.Cyan(cell)
			}
		} else {
			cell = output.DimText(cell)
		}
		line.WriteString(cell + " ")
		if date.Weekday() == time.Saturday {
			output.Println(line.String())
			line.Reset()
		}
	}
	if line.Len() > 0 {
		output.Println(line.String())
	}

	var trades, logged int
	monthPrefix := anchor.Format("2006-01")
	for key, s := range summaries {
		if !strings.HasPrefix(key, monthPrefix) {
			continue
		}
		trades += s.TradeCount
		if s.IsLogged {
			logged++
		}
	}
	output.Println(output.DimText(fmt.Sprintf("  %d trades across %d logged days", trades, logged)))
}

func renderStats(output *Output, stats dashboard.Stats) {
	output.Bold("Stats")
	output.Printf("  Net P&L:      %s\n", output.FormatPnL(stats.NetPnL))
	output.Printf("  Trades:       %d (%d wins / %d losses)\n", stats.TradeCount, stats.WinCount, stats.LossCount)
	output.Printf("  Win Rate:     %s\n", utils.FormatPercent(stats.WinRate))
	output.Printf("  Avg Win:      %s\n", utils.FormatCurrency(stats.AvgWin))
	output.Printf("  Avg Loss:     %s\n", utils.FormatCurrency(stats.AvgLoss))
	output.Printf("  Best Day:     %s\n", output.FormatPnL(stats.BestDay))
	output.Printf("  Worst Day:    %s\n", output.FormatPnL(stats.WorstDay))
	output.Printf("  Green/Red:    %d/%d days\n", stats.GreenDays, stats.RedDays)
	if stats.ProfitRatio > 0 {
		output.Printf("  Profit Ratio: %.2f\n", stats.ProfitRatio)
	}
}

func renderProgress(output *Output, progress dashboard.Progress) {
	output.Bold("Monthly Goal")
	bar := output.ProgressBar(progress.Logged, progress.Goal, 30)
	output.Printf("  [%s] %d/%d days (%.0f%%)\n", bar, progress.Logged, progress.Goal, progress.Percent)
}

func newDashboardStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := app.userID(ctx)
			if err != nil {
				return err
			}
			logs, err := app.Journal.LoadAll(ctx, userID)
			if err != nil {
				output.Error("Failed to load day logs: %v", err)
				return err
			}

			stats := dashboard.ComputeStats(logs)
			if output.IsJSON() {
				return output.JSON(stats)
			}
			renderStats(output, stats)
			return nil
		},
	}
}

func newDashboardRecentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the recent trade feed",
		Long:  "List recent trades across all days, newest day first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			limit, _ := cmd.Flags().GetInt("limit")
			userID, err := app.userID(ctx)
			if err != nil {
				return err
			}
			logs, err := app.Journal.LoadAll(ctx, userID)
			if err != nil {
				output.Error("Failed to load day logs: %v", err)
				return err
			}

			feed := dashboard.Flatten(logs)
			if limit > 0 && len(feed) > limit {
				feed = feed[:limit]
			}

			if output.IsJSON() {
				return output.JSON(feed)
			}

			if len(feed) == 0 {
				output.Info("No trades recorded yet.")
				return nil
			}

			table := NewTable(output, "Date", "Instrument", "Model", "P&L", "Chart")
			for _, entry := range feed {
				pnl := output.FormatPnL(entry.PnL)
				if entry.IsNoTrade {
					pnl = output.DimText("No Trade")
				}
				table.AddRow(
					utils.FormatShortDate(entry.Date),
					entry.Instrument,
					utils.TruncateString(entry.Model, 18),
					pnl,
					utils.TruncateString(entry.ChartPerformance, 18),
				)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum trades to show")
	return cmd
}
