package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradelight/internal/journal"
	"tradelight/internal/models"
	"tradelight/pkg/utils"
)

// addLogCommands adds day-log commands.
func addLogCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Day log management",
		Long:  "Record and review per-day trading logs.",
	}

	cmd.AddCommand(newLogShowCmd(app))
	cmd.AddCommand(newLogEditCmd(app))
	cmd.AddCommand(newLogListCmd(app))

	rootCmd.AddCommand(cmd)
}

// resolveDate parses an optional YYYY-MM-DD argument, defaulting to today.
func resolveDate(args []string) (time.Time, error) {
	if len(args) == 0 {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return models.ParseDayKey(args[0])
}

func newLogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show a day's log",
		Long:  "Display the trades and notes recorded for a day. Defaults to today.",
		Example: `  tradelight log show
  tradelight log show 2025-06-12`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, err := resolveDate(args)
			if err != nil {
				return err
			}
			userID, err := app.userID(ctx)
			if err != nil {
				return err
			}

			log, err := app.Journal.Load(ctx, userID, date)
			if err != nil {
				output.Error("Failed to load day log: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(log)
			}
			renderDayLog(output, log)
			return nil
		},
	}
}

func renderDayLog(output *Output, log models.DayLog) {
	output.Bold("Day Log - %s", utils.FormatDate(log.Date))
	output.Println()

	table := NewTable(output, "#", "Instrument", "Model", "Entry", "Exit", "Points", "Contracts", "P&L", "Chart")
	for i, t := range log.Trades {
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			t.Instrument,
			utils.TruncateString(t.Model, 15),
			clockWithSession(t.EntryTime),
			t.ExitTime,
			fmt.Sprintf("%.2f", t.TotalPoints),
			fmt.Sprintf("%.0f", t.Contracts),
			output.FormatPnL(t.PnL),
			utils.TruncateString(t.ChartPerformance, 18),
		)
	}
	table.Render()

	output.Println()
	output.Printf("  Net P&L: %s\n", output.FormatPnL(log.TotalPnL()))
	if log.IsLogged() {
		output.Printf("  Status:  %s\n", output.Green("logged"))
	} else {
		output.Printf("  Status:  %s\n", output.DimText("not logged"))
	}

	for i, t := range log.Trades {
		if len(t.Sessions) == 0 {
			continue
		}
		marked := sessionSummary(t.Sessions)
		if marked != "" {
			output.Printf("  Trade %d sessions: %s\n", i+1, marked)
		}
	}

	if log.Notes != "" {
		output.Println()
		output.Bold("Notes")
		output.Printf("  %s\n", log.Notes)
	}
}

// sessionSummary renders only the sessions that carry a marked action.
func sessionSummary(sessions []models.SessionEntry) string {
	var parts []string
	for _, s := range sessions {
		if s.Action == models.ActionNone || s.Action == "" {
			continue
		}
		part := fmt.Sprintf("%s=%s", s.SessionName, s.Action)
		if s.Direction != models.DirectionNone && s.Direction != "" {
			part += ":" + string(s.Direction)
		}
		if s.Sweep != models.SweepNone && s.Sweep != "" {
			part += ":" + string(s.Sweep)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func newLogEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [date]",
		Short: "Edit a day's log",
		Long: `Edit the log for a day. Defaults to today.

P&L is derived from points, contracts, and the instrument point value.
Passing --pnl with a non-zero value overrides the derived figure; --pnl 0
clears the override and rederives.`,
		Example: `  tradelight log edit --points 25 --contracts 2
  tradelight log edit 2025-06-12 --trade 2 --model "Silver Bullet" --pnl 500
  tradelight log edit --session "New York=displacement:up:low"
  tradelight log edit --image ./analysis.png --notes "clean session"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			date, err := resolveDate(args)
			if err != nil {
				return err
			}
			userID, err := app.userID(ctx)
			if err != nil {
				return err
			}

			log, err := app.Journal.Load(ctx, userID, date)
			if err != nil {
				output.Error("Failed to load day log: %v", err)
				return err
			}

			saver := journal.NewAutoSaver(app.Journal, userID, app.Config.Debounce(), app.Logger, nil)
			form := journal.NewForm(log, saver.Queue)

			if err := applyEditFlags(cmd, form); err != nil {
				return err
			}

			if err := saver.Flush(ctx); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(form.Log())
			}
			output.Success("Saved %s", models.DayKey(date))
			return nil
		},
	}

	cmd.Flags().Int("trade", 1, "trade number to edit (1-based)")
	cmd.Flags().Bool("add-trade", false, "append a new trade and edit it")
	cmd.Flags().Int("remove-trade", 0, "remove the given trade number")
	cmd.Flags().String("notes", "", "day notes")
	cmd.Flags().Float64("pnl", 0, "manual P&L override (0 clears the override)")
	cmd.Flags().String("instrument", "", "instrument symbol (MNQ, NQ, ES, MES)")
	cmd.Flags().Float64("contracts", 0, "contract count")
	cmd.Flags().Float64("points", 0, "total points captured")
	cmd.Flags().String("model", "", "trade model name")
	cmd.Flags().String("entry", "", "entry time (HH:MM)")
	cmd.Flags().String("exit", "", "exit time (HH:MM)")
	cmd.Flags().Float64("tp", 0, "take-profit level")
	cmd.Flags().Float64("sl", 0, "stop-loss level")
	cmd.Flags().String("chart", "", "chart performance after the trade")
	cmd.Flags().String("image", "", "attach an analysis image file")
	cmd.Flags().String("analysis", "", "analysis text for the attached image")
	cmd.Flags().Bool("clear-image", false, "remove the analysis image")
	cmd.Flags().StringArray("session", nil, "session entry as name=action[:direction[:sweep]], repeatable")

	return cmd
}

func applyEditFlags(cmd *cobra.Command, form *journal.Form) error {
	flags := cmd.Flags()

	if removeIdx, _ := flags.GetInt("remove-trade"); removeIdx > 0 {
		form.RemoveTrade(removeIdx - 1)
	}
	if addTrade, _ := flags.GetBool("add-trade"); addTrade {
		form.AddTrade()
	} else if flags.Changed("trade") {
		tradeIdx, _ := flags.GetInt("trade")
		if tradeIdx < 1 || tradeIdx > len(form.Log().Trades) {
			return fmt.Errorf("trade %d out of range (day has %d)", tradeIdx, len(form.Log().Trades))
		}
		form.SelectTrade(tradeIdx - 1)
	}

	if flags.Changed("instrument") {
		instrument, _ := flags.GetString("instrument")
		instrument = strings.ToUpper(instrument)
		if !models.ValidInstrument(instrument) {
			return fmt.Errorf("unknown instrument %q (valid: %s)", instrument, strings.Join(models.InstrumentOptions, ", "))
		}
		form.SetInstrument(instrument)
	}
	if flags.Changed("contracts") {
		contracts, _ := flags.GetFloat64("contracts")
		form.SetContracts(contracts)
	}
	if flags.Changed("points") {
		points, _ := flags.GetFloat64("points")
		form.SetTotalPoints(points)
	}
	if flags.Changed("pnl") {
		pnl, _ := flags.GetFloat64("pnl")
		form.SetPnL(pnl)
	}
	if flags.Changed("model") {
		model, _ := flags.GetString("model")
		form.SetModel(model)
	}
	if flags.Changed("entry") {
		entry, _ := flags.GetString("entry")
		form.SetEntryTime(entry)
	}
	if flags.Changed("exit") {
		exit, _ := flags.GetString("exit")
		form.SetExitTime(exit)
	}
	if flags.Changed("tp") {
		tp, _ := flags.GetFloat64("tp")
		form.SetTP(tp)
	}
	if flags.Changed("sl") {
		sl, _ := flags.GetFloat64("sl")
		form.SetSL(sl)
	}
	if flags.Changed("chart") {
		chart, _ := flags.GetString("chart")
		if chart != "" && !validChartLabel(chart) {
			return fmt.Errorf("unknown chart performance %q (one of: %s)",
				chart, strings.Join(models.ChartPerformanceOptions, ", "))
		}
		form.SetChartPerformance(chart)
	}
	if flags.Changed("notes") {
		notes, _ := flags.GetString("notes")
		form.SetNotes(notes)
	}

	if clearImage, _ := flags.GetBool("clear-image"); clearImage {
		form.ClearImage()
	}
	if flags.Changed("image") {
		path, _ := flags.GetString("image")
		analysis, _ := flags.GetString("analysis")
		dataURL, err := imageDataURL(path)
		if err != nil {
			return err
		}
		form.AttachImage(dataURL, analysis)
	}

	sessionSpecs, _ := flags.GetStringArray("session")
	for _, spec := range sessionSpecs {
		name, action, direction, sweep, err := parseSessionSpec(spec)
		if err != nil {
			return err
		}
		form.SetSession(name, action, direction, sweep)
	}

	return nil
}

// imageDataURL reads an image file into a data URL, the format day records
// store analysis images in.
func imageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, mimeType)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// parseSessionSpec parses name=action[:direction[:sweep]].
// clockWithSession annotates an entry clock with the canonical session
// window it falls in, e.g. "09:45 (New York)".
func clockWithSession(clock string) string {
	if name, ok := utils.SessionForClock(clock); ok {
		return fmt.Sprintf("%s (%s)", clock, name)
	}
	return clock
}

func validChartLabel(label string) bool {
	for _, opt := range models.ChartPerformanceOptions {
		if opt == label {
			return true
		}
	}
	return false
}

func parseSessionSpec(spec string) (string, models.SessionAction, models.Direction, models.Sweep, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok {
		return "", "", "", "", fmt.Errorf("invalid session spec %q (want name=action[:direction[:sweep]])", spec)
	}
	if !validSessionName(name) {
		return "", "", "", "", fmt.Errorf("unknown session %q (valid: %s)", name, strings.Join(models.SessionNames, ", "))
	}

	parts := strings.Split(rest, ":")
	action := models.SessionAction(parts[0])
	direction := models.DirectionNone
	sweep := models.SweepNone
	if len(parts) > 1 {
		direction = models.Direction(parts[1])
	}
	if len(parts) > 2 {
		sweep = models.Sweep(parts[2])
	}

	if !validAction(action) {
		return "", "", "", "", fmt.Errorf("unknown session action %q", parts[0])
	}
	if !validDirection(direction) {
		return "", "", "", "", fmt.Errorf("unknown direction %q", string(direction))
	}
	if !validSweep(sweep) {
		return "", "", "", "", fmt.Errorf("unknown sweep %q", string(sweep))
	}
	return name, action, direction, sweep, nil
}

func validSessionName(name string) bool {
	for _, s := range models.SessionNames {
		if s == name {
			return true
		}
	}
	return false
}

func validAction(a models.SessionAction) bool {
	switch a {
	case models.ActionNone, models.ActionConsolidation, models.ActionDisplacement,
		models.ActionRetracement, models.ActionReversal:
		return true
	}
	return false
}

func validDirection(d models.Direction) bool {
	switch d {
	case models.DirectionNone, models.DirectionUp, models.DirectionDown:
		return true
	}
	return false
}

func validSweep(s models.Sweep) bool {
	switch s {
	case models.SweepNone, models.SweepHigh, models.SweepLow, models.SweepBoth:
		return true
	}
	return false
}

func newLogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all day logs",
		Long:  "List every recorded day with its net P&L, newest first.",
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

			if output.IsJSON() {
				return output.JSON(logs)
			}

			if len(logs) == 0 {
				output.Info("No day logs recorded yet.")
				return nil
			}

			sortLogsDesc(logs)
			table := NewTable(output, "Date", "Trades", "P&L", "Logged")
			for _, log := range logs {
				logged := ""
				if log.IsLogged() {
					logged = output.Green("yes")
				}
				table.AddRow(
					log.Key(),
					fmt.Sprintf("%d", len(log.Trades)),
					output.FormatPnL(log.TotalPnL()),
					logged,
				)
			}
			table.Render()
			return nil
		},
	}
}

func sortLogsDesc(logs []models.DayLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
}
