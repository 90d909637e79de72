package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/assetfile"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/config"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/logging"
)

type editor struct {
	path   string
	yes    bool
	file   *assetfile.File
	logger *slog.Logger
}

func (e *editor) load() error {
	f, err := assetfile.Load(e.path)
	if err != nil {
		return err
	}
	e.file = f
	e.logger.Debug("asset file loaded", "path", e.path, "rows", len(f.Rows))
	return nil
}

func (e *editor) save(cmd *cobra.Command) error {
	if err := e.file.Save(); err != nil {
		e.logger.Error("asset file save failed", "path", e.path, "error", err)
		return err
	}
	e.logger.Info("asset file saved", "path", e.path, "rows", len(e.file.Rows))
	fmt.Fprintf(cmd.ErrOrStderr(), "บันทึก %d รายการเรียบร้อย\n", len(e.file.Rows))
	return nil
}

func printMatches(w io.Writer, matches []assetfile.Match) {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{strconv.Itoa(m.ID), m.Row.Type, m.Row.Name, m.Row.Price})
	}
	fmt.Fprintln(w, newTable([]string{"ID", "ประเภท", "ชื่อสินค้า", "ราคา"}, rows, 0, 3).String())
}

func parseRowID(s string) (int, error) {
	return parseIndex("asset", s)
}

// NewAssetEditorCmd builds the standalone editor for the asset seed file.
func NewAssetEditorCmd() *cobra.Command {
	cfg := config.LoadOrEnv()
	e := &editor{logger: logging.NewLoggerWithSystem(cfg.Logging, "asset-editor")}
	root := &cobra.Command{
		Use:           "asset-editor",
		Short:         "Edit the Asset.txt price list",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return e.load()
		},
	}
	root.PersistentFlags().StringVar(&e.path, "file", cfg.Assets.SeedFile, "asset file to edit")
	root.PersistentFlags().BoolVarP(&e.yes, "yes", "y", false, "delete without asking")

	var upd struct{ typ, name, price string }
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of one row; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRowID(args[0])
			if err != nil {
				return err
			}
			var u assetfile.Update
			if cmd.Flags().Changed("type") {
				u.Type = &upd.typ
			}
			if cmd.Flags().Changed("name") {
				u.Name = &upd.name
			}
			if cmd.Flags().Changed("price") {
				u.Price = &upd.price
			}
			before, after, err := e.file.Update(id, u)
			if err != nil {
				return err
			}
			if err := e.save(cmd); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "แก้ไข ID %d:\n   เดิม: %s | %s | %s\n   ใหม่: %s | %s | %s\n",
				id, before.Type, before.Name, before.Price, after.Type, after.Name, after.Price)
			return nil
		},
	}
	update.Flags().StringVar(&upd.typ, "type", "", "new type")
	update.Flags().StringVar(&upd.name, "name", "", "new name")
	update.Flags().StringVar(&upd.price, "price", "", "new price")

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show every row",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				printMatches(out(cmd), e.file.All())
				fmt.Fprintf(out(cmd), "รวม: %d รายการ\n", len(e.file.Rows))
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <type> <name> <price>",
			Short: "Append a row",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := e.file.Add(args[0], args[1], args[2])
				if err != nil {
					return err
				}
				if err := e.save(cmd); err != nil {
					return err
				}
				r := e.file.Rows[id]
				fmt.Fprintf(out(cmd), "เพิ่ม ID %d: %s | %s | %s\n", id, r.Type, r.Name, r.Price)
				return nil
			},
		},
		update,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a row",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseRowID(args[0])
				if err != nil {
					return err
				}
				if id < 0 || id >= len(e.file.Rows) {
					_, err := e.file.Delete(id)
					return err
				}
				c := &Confirmer{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr(), AutoYes: e.yes}
				if !c.Confirm(fmt.Sprintf("ยืนยันลบ ID %d?", id)) {
					fmt.Fprintln(out(cmd), "ยกเลิก")
					return nil
				}
				row, err := e.file.Delete(id)
				if err != nil {
					return err
				}
				if err := e.save(cmd); err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "ลบ: %s | %s | %s\n", row.Type, row.Name, row.Price)
				return nil
			},
		},
		&cobra.Command{
			Use:   "search <keyword>",
			Short: "Find rows whose name contains keyword",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				matches := e.file.Search(args[0])
				if len(matches) == 0 {
					fmt.Fprintf(out(cmd), "ไม่พบ '%s'\n", args[0])
					return nil
				}
				fmt.Fprintf(out(cmd), "พบ %d รายการ:\n", len(matches))
				printMatches(out(cmd), matches)
				return nil
			},
		},
		&cobra.Command{
			Use:   "filter <type>",
			Short: "Show rows of one type",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				matches := e.file.FilterByType(args[0])
				if len(matches) == 0 {
					fmt.Fprintf(out(cmd), "ไม่พบประเภท %s\n", args[0])
					return nil
				}
				fmt.Fprintf(out(cmd), "ประเภท %s: %d รายการ\n", args[0], len(matches))
				for _, m := range matches {
					fmt.Fprintf(out(cmd), "  %d: %s - %s บาท\n", m.ID, m.Row.Name, m.Row.Price)
				}
				return nil
			},
		},
	)
	return root
}
