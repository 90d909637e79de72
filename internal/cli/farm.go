package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

func parseIndex(kind, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &model.NotFoundError{Kind: kind, ID: s}
	}
	return n, nil
}

func newFarmCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "farm",
		Short: "Manage farms and ponds",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List farms and their ponds",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				printFarms(out(cmd), a.svc.Farms())
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a farm with one pond",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := a.svc.AddFarm(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "เพิ่มฟาร์ม %s (ID %s)\n", f.Name, f.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <farm-id> <name>",
			Short: "Rename a farm",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.svc.RenameFarm(cmd.Context(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "pond-add <farm-id>",
			Short: "Add the next numbered pond to a farm",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, err := a.svc.AddPond(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "เพิ่ม %s\n", name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "pond-rename <farm-id> <pond-index> <name>",
			Short: "Rename a pond",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("pond", args[1])
				if err != nil {
					return err
				}
				return a.svc.RenamePond(cmd.Context(), args[0], idx, args[2])
			},
		},
		&cobra.Command{
			Use:   "pond-remove <farm-id> <pond-index>",
			Short: "Remove a pond (a farm keeps at least one)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("pond", args[1])
				if err != nil {
					return err
				}
				return a.svc.RemovePond(cmd.Context(), args[0], idx)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default four farms with four ponds each",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := a.svc.ResetFarms(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out(cmd), "รีเซ็ตฟาร์มเรียบร้อย")
				return nil
			},
		},
	)
	return cmd
}
