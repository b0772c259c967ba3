// Package backup exposes the archiver and restore engine to operators.
package backup

import (
	"fmt"

	"github.com/spf13/cobra"

	appbackup "hungrylist/internal/application/backup"
	domainbackup "hungrylist/internal/domain/backup"
	"hungrylist/internal/interfaces/cli/runtime"
)

var (
	opts         runtime.Options
	outputFormat string
	safetyBackup bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list, restore and delete backups",
	}

	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "", "Gin mode override (debug, release, test)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newCreateCommand(),
		newListCommand(),
		newRestoreCommand(),
		newDeleteCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Take a manual backup now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, func(rt *runtime.Runtime) error {
				record, err := rt.Container.Archiver.Create(cmd.Context(), domainbackup.ReasonManual)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created backup %s (%s)\n", record.ID, record.Filename)
				return nil
			})
		},
	}
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(rt *runtime.Runtime) error {
				records, err := rt.Container.Archiver.List(cmd.Context())
				if err != nil {
					return err
				}
				return Render(cmd.OutOrStdout(), format, records)
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", string(FormatTable), "Output format (table, json, yaml)")
	return cmd
}

func newRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace the current data with a backup",
		Long: `Replace all sections, items and history with the contents of a backup.
Every session is revoked, so household members must enter the PIN again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime.Runtime) error {
				result, err := rt.Container.Restorer.Restore(cmd.Context(), args[0], appbackup.RestoreOptions{
					CreateCurrentBackup: safetyBackup,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored backup %s\n", result.RestoredBackupID)
				if result.CreatedSafetyBackupID != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "safety backup %s\n", result.CreatedSafetyBackupID)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&safetyBackup, "safety", true, "Back up the current data before restoring")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a backup and its file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime.Runtime) error {
				if err := rt.Container.Archiver.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted backup %s\n", args[0])
				return nil
			})
		},
	}
}

func withRuntime(cmd *cobra.Command, fn func(rt *runtime.Runtime) error) error {
	rt, err := runtime.Open(cmd.Context(), opts, false)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt)
}
