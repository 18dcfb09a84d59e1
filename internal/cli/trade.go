// Package cli provides the command-line interface for the journal.
package cli

import (
	"bufio"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crypto-journal/internal/ledger"
	"crypto-journal/internal/models"
	"crypto-journal/internal/query"
	"crypto-journal/internal/review"
)

// addTradeCommands adds trade ledger commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade ledger management",
		Long:  "Record, edit, and list trades in the journal.",
	}

	cmd.AddCommand(newTradeOpenCmd(app))
	cmd.AddCommand(newTradeCloseCmd(app))
	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeUpdateCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))
	cmd.AddCommand(newTradeListCmd(app))

	rootCmd.AddCommand(cmd)
}

func tradeDraftFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "trade date (YYYY-MM-DD or RFC3339, default now)")
	cmd.Flags().String("direction", "LONG", "position direction (LONG or SHORT)")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("size", 0, "position size")
	cmd.Flags().String("leverage", "1x", "leverage, e.g. 10x")
}

func draftFromFlags(cmd *cobra.Command, asset string) (models.Trade, error) {
	dateText, _ := cmd.Flags().GetString("date")
	directionText, _ := cmd.Flags().GetString("direction")
	entry, _ := cmd.Flags().GetFloat64("entry")
	size, _ := cmd.Flags().GetFloat64("size")
	leverage, _ := cmd.Flags().GetString("leverage")

	date := time.Now().UTC()
	if dateText != "" {
		parsed, err := parseFlexibleDate(dateText)
		if err != nil {
			return models.Trade{}, err
		}
		date = parsed
	}

	direction, err := models.ParseDirection(directionText)
	if err != nil {
		return models.Trade{}, err
	}

	return models.Trade{
		Date:       date,
		Asset:      asset,
		Direction:  direction,
		EntryPrice: entry,
		Size:       size,
		Leverage:   leverage,
	}, nil
}

func parseFlexibleDate(text string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", text, time.UTC)
}

func newTradeOpenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <asset>",
		Short: "Record a new open position",
		Example: `  journal trade open BTC --direction LONG --entry 64000 --size 0.5 --leverage 10x
  journal trade open ETH --direction SHORT --entry 3400 --size 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			draft, err := draftFromFlags(cmd, args[0])
			if err != nil {
				output.Error("Invalid trade: %v", err)
				return err
			}

			prompt := app.Service.OpenTrade(draft)
			output.Success("✓ Opened %s %s @ %s", draft.Asset, draft.Direction, FormatPrice(draft.EntryPrice))
			renderPrompt(cmd, output, app, prompt)
			return nil
		},
	}
	tradeDraftFlags(cmd)
	return cmd
}

func newTradeCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "close <trade-id>",
		Short:   "Close an open position",
		Example: `  journal trade close 7 --exit 66500`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			id, err := strconv.Atoi(args[0])
			if err != nil {
				output.Error("Invalid trade id: %s", args[0])
				return err
			}
			exit, _ := cmd.Flags().GetFloat64("exit")

			closed, err := app.Service.CloseTrade(id, exit)
			if err != nil {
				output.Error("Failed to close trade: %v", err)
				return err
			}
			output.Success("✓ Closed %s with %s", closed.Asset, output.FormatPnL(*closed.PnL))
			return nil
		},
	}
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.MarkFlagRequired("exit")
	return cmd
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <asset>",
		Short: "Record a completed trade",
		Long:  "Record a trade whose entry and exit are both known. PnL is derived.",
		Example: `  journal trade add BTC --direction LONG --entry 64000 --exit 66000 --size 0.5
  journal trade add SOL --direction SHORT --entry 180 --exit 150 --size 10 --date 2024-05-12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			draft, err := draftFromFlags(cmd, args[0])
			if err != nil {
				output.Error("Invalid trade: %v", err)
				return err
			}
			exit, _ := cmd.Flags().GetFloat64("exit")
			draft.ExitPrice = &exit

			prompt := app.Service.CompleteTrade(draft)
			output.Success("✓ Recorded %s trade", draft.Asset)
			renderPrompt(cmd, output, app, prompt)
			return nil
		},
	}
	tradeDraftFlags(cmd)
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.MarkFlagRequired("exit")
	return cmd
}

func newTradeUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <trade-id>",
		Short: "Edit a recorded trade",
		Long: `Edit fields of a recorded trade. Unset flags keep their current value.

Changing a trade's date re-sorts the ledger, so ids of other trades can
shift.`,
		Example: `  journal trade update 3 --entry 64100
  journal trade update 3 --date 2024-05-02 --size 1.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			id, err := strconv.Atoi(args[0])
			if err != nil {
				output.Error("Invalid trade id: %s", args[0])
				return err
			}
			trade, err := app.Service.FindTrade(id)
			if err != nil {
				output.Error("Trade not found: %v", err)
				return err
			}

			if cmd.Flags().Changed("date") {
				text, _ := cmd.Flags().GetString("date")
				parsed, err := parseFlexibleDate(text)
				if err != nil {
					output.Error("Invalid date: %v", err)
					return err
				}
				trade.Date = parsed
			}
			if cmd.Flags().Changed("asset") {
				trade.Asset, _ = cmd.Flags().GetString("asset")
			}
			if cmd.Flags().Changed("direction") {
				text, _ := cmd.Flags().GetString("direction")
				direction, err := models.ParseDirection(text)
				if err != nil {
					output.Error("Invalid direction: %v", err)
					return err
				}
				trade.Direction = direction
			}
			if cmd.Flags().Changed("entry") {
				trade.EntryPrice, _ = cmd.Flags().GetFloat64("entry")
			}
			if cmd.Flags().Changed("exit") {
				exit, _ := cmd.Flags().GetFloat64("exit")
				trade.ExitPrice = &exit
			}
			if cmd.Flags().Changed("size") {
				trade.Size, _ = cmd.Flags().GetFloat64("size")
			}
			if cmd.Flags().Changed("leverage") {
				trade.Leverage, _ = cmd.Flags().GetString("leverage")
			}

			// Re-derive pnl when a closed trade's pricing changed.
			if trade.Status == models.StatusClosed && trade.ExitPrice != nil {
				pnl := ledger.DerivePnL(trade.Direction, trade.EntryPrice, *trade.ExitPrice, trade.Size)
				trade.PnL = &pnl
			}

			if err := app.Service.UpdateTrade(trade); err != nil {
				output.Error("Failed to update trade: %v", err)
				return err
			}
			output.Success("✓ Trade updated")
			return nil
		},
	}
	tradeDraftFlags(cmd)
	cmd.Flags().String("asset", "", "asset symbol")
	cmd.Flags().Float64("exit", 0, "exit price")
	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			id, err := strconv.Atoi(args[0])
			if err != nil {
				output.Error("Invalid trade id: %s", args[0])
				return err
			}
			if err := app.Service.DeleteTrade(id); err != nil {
				output.Error("Failed to delete trade: %v", err)
				return err
			}
			output.Success("✓ Trade %d deleted", id)
			return nil
		},
	}
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		Long: `List trades with filtering, sorting and pagination.

The --id selector ("5" or "3-10") overrides every other filter. A
malformed selector matches nothing.`,
		Example: `  journal trade list
  journal trade list --asset BTC --outcome win
  journal trade list --from 2024-05-01 --to 2024-05-31 --sort pnl --desc
  journal trade list --id 3-10 --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			asset, _ := cmd.Flags().GetString("asset")
			outcomeText, _ := cmd.Flags().GetString("outcome")
			idSelector, _ := cmd.Flags().GetString("id")
			sortText, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")
			page, _ := cmd.Flags().GetInt("page")

			app.Service.SetFilter(query.Filter{
				StartDate: from,
				EndDate:   to,
				Asset:     asset,
				Outcome:   query.Outcome(outcomeText),
				TradeID:   idSelector,
			})

			if sortText != "" {
				key, err := query.ParseSortKey(sortText)
				if err != nil {
					output.Error("Invalid sort: %v", err)
					return err
				}
				direction := query.Ascending
				if desc {
					direction = query.Descending
				}
				app.Service.SetSort(query.Sort{Key: key, Direction: direction})
			}
			app.Service.SetPage(page)

			view := app.Service.TradeView()

			if output.IsJSON() {
				return output.JSON(view)
			}

			if view.FilteredCount == 0 {
				if view.FilterActive {
					output.Info("No trades match the active filter.")
				} else {
					output.Info("No trades recorded yet.")
					output.Dim("Tip: record one with 'journal trade add' or 'journal trade open'.")
				}
				return nil
			}

			table := NewTable(output, "ID", "Date", "Asset", "Dir", "Entry", "Exit", "Size", "Lev", "Status", "P&L")
			for _, t := range view.Trades {
				exit := "-"
				if t.ExitPrice != nil {
					exit = FormatPrice(*t.ExitPrice)
				}
				pnl := "-"
				if t.PnL != nil {
					pnl = output.FormatPnL(*t.PnL)
				}
				table.AddRow(
					strconv.Itoa(t.ID),
					FormatDate(t.Date),
					TruncateString(t.Asset, 12),
					string(t.Direction),
					FormatPrice(t.EntryPrice),
					exit,
					strconv.FormatFloat(t.Size, 'f', -1, 64),
					t.Leverage,
					string(t.Status),
					pnl,
				)
			}
			table.Render()

			output.Println()
			output.Printf("Page %d/%d  showing %d of %d trades", view.Page, view.TotalPages, len(view.Trades), view.FilteredCount)
			if view.FilterActive {
				output.Printf("  (filtered from %d)", view.TotalCount)
			}
			output.Println()
			output.Printf("Filtered P&L: %s  Win Rate: %s  Profit Factor: %s\n",
				output.FormatPnL(view.Metrics.TotalPnL),
				FormatPercent(view.Metrics.WinRate),
				FormatRatio(view.Metrics.ProfitFactor),
			)
			return nil
		},
	}

	cmd.Flags().String("from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("asset", "", "asset substring, case-insensitive")
	cmd.Flags().String("outcome", "all", "outcome filter (all, win, loss)")
	cmd.Flags().String("id", "", "trade id selector, e.g. 5 or 3-10")
	cmd.Flags().String("sort", "", "sort key (id, date, asset, direction, entryPrice, exitPrice, size, leverage, status, pnl)")
	cmd.Flags().Bool("desc", false, "sort descending")
	cmd.Flags().Int("page", 1, "page number")

	return cmd
}

// renderPrompt shows a review suggestion after a ledger mutation. Streak
// prompts offer a dismissal that silences them for the next ten trades.
func renderPrompt(cmd *cobra.Command, output *Output, app *App, prompt *review.Prompt) {
	if prompt == nil || output.IsJSON() {
		return
	}
	output.Println()
	switch prompt.Kind {
	case review.PromptStreak:
		output.Warning("You are on a %d-trade losing streak. Consider running 'journal audit run' for an outside review.", prompt.StreakLength)
		if confirmDismiss(cmd, output) {
			app.Service.DismissPrompt(prompt)
			output.Dim("Streak reminders silenced for the next 10 trades.")
		}
	case review.PromptMilestone:
		output.Info("Milestone: %d trades logged. A periodic audit can surface drift in your process.", prompt.TradeCount)
	}
}

// confirmDismiss reads a y/N answer from stdin. EOF counts as no, so piped
// invocations keep the reminder active.
func confirmDismiss(cmd *cobra.Command, output *Output) bool {
	output.Printf("Silence streak reminders for the next 10 trades? [y/N]: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
