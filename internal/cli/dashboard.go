// Package cli provides the command-line interface for the journal.
package cli

import (
	"github.com/spf13/cobra"
)

// addDashboardCommand adds the dashboard command.
func addDashboardCommand(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Show performance dashboard",
		Long:  "Show performance metrics over the whole trade history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			m := app.Service.Dashboard()

			if output.IsJSON() {
				return output.JSON(m)
			}

			output.Bold("Performance Dashboard")
			output.Println()

			output.Printf("  Total P&L:        %s\n", output.FormatPnL(m.TotalPnL))
			output.Printf("  Current Capital:  %s\n", FormatCurrency(m.CurrentCapital))
			output.Printf("  Win Rate:         %s\n", FormatPercent(m.WinRate))
			output.Printf("  Profit Factor:    %s\n", FormatRatio(m.ProfitFactor))
			output.Println()

			output.Bold("Closed Trades")
			output.Printf("  Count:            %d (%d wins / %d losses)\n", m.ClosedCount, m.Wins, m.Losses)
			output.Printf("  Gross Profit:     %s\n", output.Green(FormatCurrency(m.GrossProfit)))
			output.Printf("  Gross Loss:       %s\n", output.Red(FormatCurrency(m.GrossLoss)))
			output.Printf("  Avg Win:          %s\n", FormatCurrency(m.AvgWin))
			output.Printf("  Avg Loss:         %s\n", FormatCurrency(m.AvgLoss))
			output.Printf("  Largest Win:      %s\n", FormatCurrency(m.LargestWin))
			output.Printf("  Largest Loss:     %s\n", FormatCurrency(m.LargestLoss))
			output.Printf("  Expectancy:       %s\n", FormatCurrency(m.Expectancy))

			if m.ClosedCount == 0 {
				output.Println()
				output.Dim("Metrics cover closed trades only. Open positions are excluded.")
			}
			return nil
		},
	})
}
