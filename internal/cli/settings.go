// Package cli provides the command-line interface for the journal.
package cli

import (
	"github.com/spf13/cobra"

	"crypto-journal/internal/errors"
)

// addSettingsCommands adds journal settings commands.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Journal settings",
		Long:  "View and change review reminder settings and starting capital.",
	}

	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			settings := app.Service.Settings()
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"settings":       settings,
					"initialCapital": app.Service.InitialCapital(),
				})
			}

			output.Bold("Settings")
			output.Printf("  Audit Reminders:      %v\n", settings.AuditRemindersEnabled)
			output.Printf("  Milestone Frequency:  every %d trades\n", settings.AuditMilestoneFrequency)
			output.Printf("  Initial Capital:      %s\n", FormatCurrency(app.Service.InitialCapital()))
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Example: `  journal settings set --capital 10000
  journal settings set --reminders=false
  journal settings set --milestone 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			changed := false
			settings := app.Service.Settings()

			if cmd.Flags().Changed("reminders") {
				settings.AuditRemindersEnabled, _ = cmd.Flags().GetBool("reminders")
				changed = true
			}
			if cmd.Flags().Changed("milestone") {
				freq, _ := cmd.Flags().GetInt("milestone")
				if freq < 0 {
					output.Error("Milestone frequency must be non-negative (0 disables milestones).")
					return errors.NewValidationError("milestone", freq, "must be non-negative")
				}
				settings.AuditMilestoneFrequency = freq
				changed = true
			}
			if changed {
				app.Service.UpdateSettings(settings)
			}

			if cmd.Flags().Changed("capital") {
				capital, _ := cmd.Flags().GetFloat64("capital")
				app.Service.SetInitialCapital(capital)
				changed = true
			}

			if !changed {
				output.Info("Nothing to change. See 'journal settings set --help'.")
				return nil
			}
			output.Success("✓ Settings updated")
			return nil
		},
	}
	cmd.Flags().Bool("reminders", true, "enable audit reminder prompts")
	cmd.Flags().Int("milestone", 10, "prompt for an audit every N trades (0 disables)")
	cmd.Flags().Float64("capital", 0, "starting capital")
	return cmd
}
