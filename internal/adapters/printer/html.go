package printer

import (
	"context"
	"time"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/render"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// HTMLPrinter writes the bill snapshot as an HTML file for the browser's
// own print dialog.
type HTMLPrinter struct {
	Dir string
}

var _ Printer = (*HTMLPrinter)(nil)

func (p *HTMLPrinter) Print(_ context.Context, bill model.Bill, at time.Time) (string, error) {
	doc, err := render.BillHTML(bill, at)
	if err != nil {
		return "", err
	}
	return writeOutput(p.Dir, FileName(bill, at, "html"), doc)
}
