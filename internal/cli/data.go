package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/interchange"
)

func newBackupCmd(a *App) *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a full backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dest == "-" {
				_, err := a.svc.Backup(out(cmd))
				return err
			}

			path := dest
			if path == "" || strings.HasSuffix(path, string(os.PathSeparator)) {
				path = filepath.Join(path, interchange.BackupFileName(a.now()))
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if _, err := a.svc.Backup(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "สำรองข้อมูลเรียบร้อย: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dest, "out", "o", "", `file or directory/ to write ("-" for stdout)`)
	return cmd
}

func newRestoreCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace data with the collections in a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			restored, err := a.svc.Restore(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "กู้คืนข้อมูลเรียบร้อย: %s\n", strings.Join(restored, ", "))
			return nil
		},
	}
}

func newClearCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all data and start over with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.svc.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "ลบข้อมูลทั้งหมดเรียบร้อย")
			return nil
		},
	}
}

func newStatsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals across farms and bills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printStats(out(cmd), a.svc.Stats())
			return nil
		},
	}
}
