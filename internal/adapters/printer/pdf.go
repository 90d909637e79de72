package printer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/render"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// A4 portrait in inches, margins top/right/bottom/left in millimetres.
const (
	a4Width  = 8.27
	a4Height = 11.69
	mmPerIn  = 25.4
)

var pdfMargins = [4]float64{5, 10, 5, 10}

// PDFPrinter renders the bill snapshot in headless Chrome and saves it as an
// A4 PDF. ChromeBin may be empty, in which case rod locates or downloads a
// browser.
type PDFPrinter struct {
	Dir       string
	ChromeBin string
}

var _ Printer = (*PDFPrinter)(nil)

func (p *PDFPrinter) Print(ctx context.Context, bill model.Bill, at time.Time) (string, error) {
	doc, err := render.BillHTML(bill, at)
	if err != nil {
		return "", err
	}

	pdf, err := p.printPDF(ctx, string(doc))
	if err != nil {
		return "", fmt.Errorf("print bill %s: %w", bill.ID, err)
	}
	return writeOutput(p.Dir, FileName(bill, at, "pdf"), pdf)
}

func (p *PDFPrinter) printPDF(ctx context.Context, doc string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := launcher.New().Context(ctx).Headless(true)
	if p.ChromeBin != "" {
		l = l.Bin(p.ChromeBin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}
	defer l.Cleanup()
	defer l.Kill()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.SetDocumentContent(doc); err != nil {
		return nil, fmt.Errorf("load bill: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("load bill: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      inches(a4Width),
		PaperHeight:     inches(a4Height),
		MarginTop:       inches(pdfMargins[0] / mmPerIn),
		MarginRight:     inches(pdfMargins[1] / mmPerIn),
		MarginBottom:    inches(pdfMargins[2] / mmPerIn),
		MarginLeft:      inches(pdfMargins[3] / mmPerIn),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return io.ReadAll(stream)
}

func inches(v float64) *float64 { return &v }
