package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

func newAssetCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage the asset catalog",
	}

	var (
		withHeader = true
		exportOut  string
	)
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as type,name,price lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := out(cmd)
			if exportOut != "" {
				f, err := os.Create(exportOut)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return a.svc.ExportAssets(w, withHeader)
		},
	}
	export.Flags().BoolVar(&withHeader, "header", true, "include the column header line")
	export.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List assets by type",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				printAssets(out(cmd), a.svc.Catalog())
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <type> <name> <price>",
			Short: "Add an asset",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				price, err := strconv.ParseFloat(args[2], 64)
				if err != nil {
					return model.NewValidationError("", model.FieldPrice, fmt.Sprintf("invalid price %q", args[2]))
				}
				added, err := a.svc.AddAsset(cmd.Context(), args[0], args[1], price)
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "เพิ่ม: %s | %s | %s\n", added.Type, added.Name, strconv.FormatFloat(added.Price, 'f', -1, 64))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <type> <index>",
			Short: "Remove an asset",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex("asset", args[1])
				if err != nil {
					return err
				}
				removed, err := a.svc.RemoveAsset(cmd.Context(), args[0], idx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "ลบ: %s | %s\n", removed.Type, removed.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "import <file>",
			Short: "Append assets from a type,name,price file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				res, err := a.svc.ImportAssets(cmd.Context(), f)
				if err != nil {
					return err
				}
				printImport(out(cmd), res)
				return nil
			},
		},
		export,
	)
	return cmd
}
