package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/interchange"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/render"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/allocator"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/history"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// newTable builds a bordered table. Columns listed in numeric are right
// aligned.
func newTable(headers []string, rows [][]string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case right[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func printFarms(w io.Writer, farms []model.Farm) {
	rows := make([][]string, 0, len(farms))
	for _, f := range farms {
		for i, p := range f.Ponds {
			id, name := "", ""
			if i == 0 {
				id, name = f.ID, f.Name
			}
			rows = append(rows, []string{id, name, strconv.Itoa(i), p})
		}
	}
	fmt.Fprintln(w, newTable([]string{"ID", "ฟาร์ม", "#", "บ่อ"}, rows, 2).String())
}

func printAssets(w io.Writer, cat model.Catalog) {
	var rows [][]string
	for _, typ := range cat.Types() {
		for i, a := range cat[typ] {
			rows = append(rows, []string{typ, strconv.Itoa(i), a.Name, render.Money(a.Price)})
		}
	}
	fmt.Fprintln(w, newTable([]string{"ประเภท", "#", "ชื่อสินค้า", "ราคา"}, rows, 1, 3).String())
	fmt.Fprintf(w, "รวม: %d รายการ\n", cat.Count())
}

func printBills(w io.Writer, bills []model.Bill) {
	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, []string{
			b.ID,
			b.FarmName,
			render.ThaiDate(b.Date),
			fmt.Sprintf("%d บ่อ", len(b.Ponds)),
			fmt.Sprintf("%d รายการ", b.ItemCount()),
			render.Money(b.GrandTotal) + " ฿",
		})
	}
	fmt.Fprintln(w, newTable([]string{"เลขที่บิล", "ฟาร์ม", "วันที่", "บ่อ", "สินค้า", "ยอดรวม"}, rows, 5).String())
}

func printBill(w io.Writer, b model.Bill) {
	fmt.Fprintln(w, titleStyle.Render(b.FarmName))
	fmt.Fprintf(w, "วันที่: %s  เลขที่บิล: %s\n", render.BuddhistDate(b.Date), b.ID)
	for _, p := range b.Ponds {
		rows := make([][]string, 0, len(p.Items))
		for _, it := range p.Items {
			rows = append(rows, []string{it.Type, it.Name, render.Qty(it.Qty), render.Money(it.Price), render.Money(it.Total)})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render(p.Name))
		fmt.Fprintln(w, newTable([]string{"ประเภท", "รายการ", "จำนวน", "ราคา/หน่วย", "รวม"}, rows, 2, 3, 4).String())
		fmt.Fprintf(w, "รวม %s : %s บาท\n", p.Name, render.Money(p.Total))
	}
	fmt.Fprintf(w, "\nยอดรวมทั้งหมด : %s บาท\n", render.Money(b.GrandTotal))
}

func printStats(w io.Writer, s history.Stats) {
	summary := [][]string{
		{"ฟาร์ม", strconv.Itoa(s.Farms)},
		{"บ่อ", strconv.Itoa(s.Ponds)},
		{"สินค้า", strconv.Itoa(s.Assets)},
		{"บิล", strconv.Itoa(s.Bills)},
		{"ยอดรวม", render.Money(s.TotalBilled.InexactFloat64())},
		{"เฉลี่ยต่อบิล", render.Money(s.AverageBill.InexactFloat64())},
	}
	fmt.Fprintln(w, newTable([]string{"รายการ", "ค่า"}, summary, 1).String())

	if len(s.ByFarm) == 0 {
		return
	}
	rows := make([][]string, 0, len(s.ByFarm))
	for _, ft := range s.ByFarm {
		rows = append(rows, []string{ft.FarmID, ft.FarmName, strconv.Itoa(ft.Bills), render.Money(ft.Total.InexactFloat64())})
	}
	fmt.Fprintln(w, newTable([]string{"ID", "ฟาร์ม", "บิล", "ยอดรวม"}, rows, 2, 3).String())
}

func printImport(w io.Writer, res interchange.ImportResult) {
	fmt.Fprintf(w, "นำเข้า %d รายการ", res.Imported)
	if res.Skipped > 0 {
		fmt.Fprintf(w, " (ข้าม %d บรรทัด: %v)", res.Skipped, res.SkippedLines)
	}
	fmt.Fprintln(w)
}

func printWarnings(w io.Writer, warnings []allocator.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warn.String())
	}
}

// FormatError renders err for the terminal.
func FormatError(err error) string {
	var ve *model.ValidationError
	switch {
	case errors.Is(err, model.ErrNotConfirmed):
		return "cancelled"
	case errors.As(err, &ve) && ve.Pond != "":
		return fmt.Sprintf("error: %s: %s (%s)", ve.Pond, ve.Message, ve.Field)
	default:
		return "error: " + err.Error()
	}
}
