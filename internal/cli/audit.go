// Package cli provides the command-line interface for the journal.
package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"crypto-journal/internal/errors"
	"crypto-journal/internal/logging"
)

// addAuditCommands adds AI audit commands.
func addAuditCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "AI trading audits",
		Long:  "Run AI audits over your trade history and browse past results.",
	}

	cmd.AddCommand(newAuditRunCmd(app))
	cmd.AddCommand(newAuditHistoryCmd(app))
	cmd.AddCommand(newAuditShowCmd(app))

	rootCmd.AddCommand(cmd)
}

func newAuditRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an AI audit of your trade history",
		Long: `Send the full trade history to the configured LLM for an outside
assessment. The active strategy, when set, is included as context.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			timeout, _ := cmd.Flags().GetDuration("timeout")
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if !output.IsJSON() {
				output.Info("Running audit, this can take a moment...")
			}

			strategyName := "Default"
			if st := app.Service.ActiveStrategy(); st != nil {
				strategyName = st.Name
			}

			started := time.Now()
			entry, err := app.Service.RunAudit(ctx)
			logging.LogAudit(app.Logger, len(app.Service.Trades()), strategyName, time.Since(started), err)
			if err != nil {
				switch {
				case errors.Is(err, errors.ErrNoAuditProvider):
					output.Error("No OpenAI API key configured. Add one to credentials.toml or set OPENAI_API_KEY.")
				case errors.Is(err, errors.ErrNoTrades):
					output.Error("No trades to audit yet.")
				default:
					output.Error("Audit failed: %v", err)
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}

			output.Println()
			output.Bold("Audit Result")
			output.Dim("%d trades  strategy: %s  %s", entry.Parameters.TradeCount, entry.Parameters.StrategyName, entry.Parameters.DateRange)
			output.Println()
			output.Println(entry.Result)
			return nil
		},
	}
	cmd.Flags().Duration("timeout", 2*time.Minute, "audit request timeout")
	return cmd
}

func newAuditHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past audits",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			audits := app.Service.Audits()
			if output.IsJSON() {
				return output.JSON(audits)
			}

			if len(audits) == 0 {
				output.Info("No audits recorded yet.")
				return nil
			}

			table := NewTable(output, "#", "Date", "Trades", "Strategy", "Range")
			for i, a := range audits {
				table.AddRow(
					PadLeft(strconv.Itoa(i+1), 2),
					a.Date,
					strconv.Itoa(a.Parameters.TradeCount),
					TruncateString(a.Parameters.StrategyName, 20),
					a.Parameters.DateRange,
				)
			}
			table.Render()
			output.Println()
			output.Dim("Use 'journal audit show <#>' to read a result.")
			return nil
		},
	}
}

func newAuditShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <#>",
		Short: "Show a past audit result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			audits := app.Service.Audits()
			index, err := parseAuditIndex(args[0], len(audits))
			if err != nil {
				output.Error("%v", err)
				return err
			}
			entry := audits[index]

			if output.IsJSON() {
				return output.JSON(entry)
			}

			output.Bold("Audit from %s", entry.Date)
			output.Dim("%d trades  strategy: %s  %s", entry.Parameters.TradeCount, entry.Parameters.StrategyName, entry.Parameters.DateRange)
			output.Println()
			output.Println(entry.Result)
			return nil
		},
	}
}

func parseAuditIndex(text string, count int) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > count {
		return 0, errors.NewValidationError("audit", text, "no audit with that number")
	}
	return n - 1, nil
}
