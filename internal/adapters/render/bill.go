// Package render produces the printable snapshot of a finalized bill.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

//go:embed bill.html.tmpl
var billTemplate string

var billTmpl = template.Must(template.New("bill").Funcs(template.FuncMap{
	"money": Money,
	"qty":   Qty,
}).Parse(billTemplate))

type billView struct {
	Bill      model.Bill
	Date      string
	PrintedAt string
}

// BillHTML renders bill as a standalone A4 HTML document. printedAt is the
// time shown next to the bill date.
func BillHTML(bill model.Bill, printedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	view := billView{
		Bill:      bill,
		Date:      BuddhistDate(bill.Date),
		PrintedAt: ClockTime(printedAt),
	}
	if err := billTmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render bill %s: %w", bill.ID, err)
	}
	return buf.Bytes(), nil
}
