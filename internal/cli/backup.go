// Package cli provides the command-line interface for the journal.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"crypto-journal/internal/backup"
)

// addBackupCommands adds backup, restore and import commands.
func addBackupCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Backup and restore",
		Long:  "Export the journal to a file, restore from a backup, or import trades from CSV.",
	}

	cmd.AddCommand(newBackupExportCmd(app))
	cmd.AddCommand(newBackupRestoreCmd(app))
	cmd.AddCommand(newBackupImportCSVCmd(app))
	cmd.AddCommand(newBackupWipeCmd(app))

	rootCmd.AddCommand(cmd)
}

func newBackupExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export the journal to a JSON file",
		Example: `  journal backup export --out journal-backup.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				path = fmt.Sprintf("journal-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
			}

			data, err := app.Service.ExportBackup()
			if err != nil {
				output.Error("Failed to build backup: %v", err)
				return err
			}
			if err := os.WriteFile(path, data, 0600); err != nil {
				output.Error("Failed to write backup: %v", err)
				return err
			}

			output.Success("✓ Backup written to %s", path)
			return nil
		},
	}
	cmd.Flags().String("out", "", "output file (default journal-backup-<date>.json)")
	return cmd
}

func newBackupRestoreCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the journal from a backup file",
		Long: `Replace all journal data with the contents of a backup file.

The file is validated before anything is touched; a malformed backup
leaves the current journal unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				output.Warning("Restoring replaces ALL current journal data. Re-run with --yes to confirm.")
				return nil
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				output.Error("Failed to read backup: %v", err)
				return err
			}

			prompt, err := app.Service.RestoreBackup(data)
			if err != nil {
				output.Error("Restore failed: %v", err)
				return err
			}

			output.Success("✓ Restored %d trades", len(app.Service.Trades()))
			renderPrompt(cmd, output, app, prompt)
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "confirm replacing all current data")
	return cmd
}

func newBackupImportCSVCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import-csv <file>",
		Short: "Import closed trades from a CSV file",
		Long: `Import trades from a CSV export with columns:
date, asset, direction, entryPrice, exitPrice, size, leverage.

Imported rows are recorded as closed trades; pnl is derived from the
prices when the file carries none.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			f, err := os.Open(args[0])
			if err != nil {
				output.Error("Failed to open file: %v", err)
				return err
			}
			defer f.Close()

			trades, err := backup.ParseCSV(f)
			if err != nil {
				output.Error("Failed to parse CSV: %v", err)
				return err
			}

			added, prompt := app.Service.ImportTrades(trades)
			output.Success("✓ Imported %d trades", added)
			renderPrompt(cmd, output, app, prompt)
			return nil
		},
	}
}

func newBackupWipeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all journal data",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				output.Warning("This deletes ALL trades, audits and strategies. Re-run with --yes to confirm.")
				return nil
			}

			app.Service.WipeAll()
			output.Success("✓ Journal wiped")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "confirm deleting all data")
	return cmd
}
