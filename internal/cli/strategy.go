// Package cli provides the command-line interface for the journal.
package cli

import (
	"github.com/spf13/cobra"

	"crypto-journal/internal/models"
)

// addStrategyCommands adds strategy management commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Trading strategy management",
		Long:  "Save trading strategies and pick the one used as audit context.",
	}

	cmd.AddCommand(newStrategySaveCmd(app))
	cmd.AddCommand(newStrategyListCmd(app))
	cmd.AddCommand(newStrategyUseCmd(app))
	cmd.AddCommand(newStrategyDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newStrategySaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a strategy and make it active",
		Example: `  journal strategy save "Breakout" --rules "Only A+ setups, 1% risk per trade"
  journal strategy save "Breakout" --id 4f3c... --rules "updated rules"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			id, _ := cmd.Flags().GetString("id")
			rules, _ := cmd.Flags().GetString("rules")

			saved := app.Service.SaveStrategy(models.Strategy{
				ID:    id,
				Name:  args[0],
				Rules: rules,
			})

			if output.IsJSON() {
				return output.JSON(saved)
			}
			output.Success("✓ Strategy %q saved and activated", saved.Name)
			return nil
		},
	}
	cmd.Flags().String("id", "", "strategy id to update (omit to create)")
	cmd.Flags().String("rules", "", "strategy rules text")
	return cmd
}

func newStrategyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			strategies := app.Service.Strategies()
			active := app.Service.ActiveStrategy()

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"strategies": strategies,
					"active":     active,
				})
			}

			if len(strategies) == 0 {
				output.Info("No strategies saved yet.")
				return nil
			}

			table := NewTable(output, "", "Name", "Rules", "ID")
			for _, st := range strategies {
				marker := " "
				if active != nil && st.ID == active.ID {
					marker = output.Green("●")
				}
				table.AddRow(marker, st.Name, TruncateString(st.Rules, 50), st.ID)
			}
			table.Render()
			return nil
		},
	}
}

func newStrategyUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <strategy-id>",
		Short: "Select the active strategy",
		Long:  "Select the strategy included as context in AI audits. Pass '-' to clear.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			id := args[0]
			if id == "-" {
				id = ""
			}
			if err := app.Service.SetActiveStrategy(id); err != nil {
				output.Error("Failed to select strategy: %v", err)
				return err
			}
			if id == "" {
				output.Success("✓ Active strategy cleared")
			} else {
				output.Success("✓ Active strategy set")
			}
			return nil
		},
	}
}

func newStrategyDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <strategy-id>",
		Short: "Delete a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if err := app.Service.DeleteStrategy(args[0]); err != nil {
				output.Error("Failed to delete strategy: %v", err)
				return err
			}
			output.Success("✓ Strategy deleted")
			return nil
		},
	}
}
