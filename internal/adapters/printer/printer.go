// Package printer hands a finalized bill to an output device: a standalone
// HTML file or an A4 PDF printed by headless Chrome.
package printer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/config"
)

// Printer writes a bill snapshot and returns the path of the written file.
type Printer interface {
	Print(ctx context.Context, bill model.Bill, at time.Time) (string, error)
}

// New returns the printer selected by cfg.Format.
func New(cfg config.PrinterConfig) (Printer, error) {
	switch cfg.Format {
	case config.PrintHTML, "":
		return &HTMLPrinter{Dir: cfg.OutputDir}, nil
	case config.PrintPDF:
		return &PDFPrinter{Dir: cfg.OutputDir, ChromeBin: cfg.ChromeBin}, nil
	default:
		return nil, fmt.Errorf("unknown print format %q", cfg.Format)
	}
}

var unsafeNameChars = regexp.MustCompile(`[^\x{0E00}-\x{0E7F}a-zA-Z0-9\s]`)

// FileName builds the output name for bill printed at at:
// บิล{farm}_วันที่_{dd-mm-yyyy}_เวลา_{HH-MM}.{ext}
// The farm name keeps only Thai letters, ASCII letters and digits, and
// whitespace.
func FileName(bill model.Bill, at time.Time, ext string) string {
	farm := strings.TrimSpace(unsafeNameChars.ReplaceAllString(bill.FarmName, ""))

	date := strings.ReplaceAll(bill.Date, "/", "-")
	if t, err := time.Parse("2006-01-02", bill.Date); err == nil {
		date = t.Format("02-01-2006")
	}
	return fmt.Sprintf("บิล%s_วันที่_%s_เวลา_%s.%s", farm, date, at.Format("15-04"), ext)
}

func writeOutput(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
