package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/history"
)

func newBillCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Create, browse and print bills",
	}
	cmd.AddCommand(
		newBillCreateCmd(a),
		newBillListCmd(a),
		newBillShowCmd(a),
		&cobra.Command{
			Use:   "delete <bill-id>",
			Short: "Delete a bill",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.svc.DeleteBill(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(out(cmd), "ลบบิลเรียบร้อย")
				return nil
			},
		},
		newBillPrintCmd(a),
	)
	return cmd
}

func newBillCreateCmd(a *App) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create --file draft.yaml",
		Short: "Finalize a bill from a YAML draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			df, err := LoadDraftFile(file)
			if err != nil {
				return err
			}
			draft, warnings, err := df.Build(a.svc)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), warnings)

			bill, err := a.svc.CreateBill(cmd.Context(), draft)
			if err != nil {
				return err
			}
			printBill(out(cmd), bill)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "draft file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newBillListCmd(a *App) *cobra.Command {
	var (
		q    history.Query
		sort string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bills, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := history.ParseSort(sort)
			if err != nil {
				return err
			}
			q.Sort = s
			bills := a.svc.Bills(q)
			if len(bills) == 0 {
				fmt.Fprintln(out(cmd), "ไม่พบบิล")
				return nil
			}
			printBills(out(cmd), bills)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "match farm name, date or bill id")
	cmd.Flags().StringVar(&q.FarmID, "farm", "", "only bills of this farm id")
	cmd.Flags().StringVar(&sort, "sort", string(history.SortDateDesc), "date-desc, date-asc, total-desc or total-asc")
	return cmd
}

func newBillShowCmd(a *App) *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "show <bill-id>",
		Short: "Show one bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asHTML {
				doc, err := a.svc.RenderBill(args[0])
				if err != nil {
					return err
				}
				_, err = out(cmd).Write(doc)
				return err
			}
			bill, err := a.svc.GetBill(args[0])
			if err != nil {
				return err
			}
			printBill(out(cmd), bill)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "write the printable HTML snapshot instead")
	return cmd
}

func newBillPrintCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print <bill-id>",
		Short: "Write the bill as an HTML or A4 PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.svc.PrintBill(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&a.printFormat, "format", "", "html or pdf (default from config)")
	cmd.Flags().StringVarP(&a.printDir, "out", "o", "", "output directory (default from config)")
	return cmd
}
