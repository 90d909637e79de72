// Package interchange reads and writes the files users move in and out of
// the system: the asset price list and the full backup document.
package interchange

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// AssetHeader is the first line of a user-facing asset export.
const AssetHeader = "ประเภท,ชื่อสินค้า,ราคา"

// ImportResult counts what an asset import accepted and skipped.
type ImportResult struct {
	Imported int
	Skipped  int

	// SkippedLines are 1-based line numbers of the skipped lines
	SkippedLines []int
}

// ReadAssets parses asset lines of the form "type,name,price". A first line
// equal to AssetHeader is ignored. Blank lines are ignored. Any other line
// that does not split into exactly three non-empty fields with a
// non-negative price is skipped and counted; it never fails the import.
func ReadAssets(r io.Reader) ([]model.Asset, ImportResult, error) {
	var (
		assets []model.Asset
		res    ImportResult
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
			if line == AssetHeader {
				continue
			}
		}
		if line == "" {
			continue
		}

		a, ok := parseAssetLine(line)
		if !ok {
			res.Skipped++
			res.SkippedLines = append(res.SkippedLines, lineNo)
			continue
		}
		assets = append(assets, a)
		res.Imported++
	}
	if err := sc.Err(); err != nil {
		return nil, res, fmt.Errorf("read assets: %w", err)
	}
	return assets, res, nil
}

func parseAssetLine(line string) (model.Asset, bool) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return model.Asset{}, false
	}
	typ := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	priceText := strings.TrimSpace(parts[2])
	if typ == "" || name == "" || priceText == "" {
		return model.Asset{}, false
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return model.Asset{}, false
	}
	return model.Asset{Type: typ, Name: name, Price: price}, true
}

// WriteAssets writes the catalog one asset per line, types sorted and
// catalog order within a type. withHeader prefixes AssetHeader, as in the
// user-facing export; the seed file form has no header.
func WriteAssets(w io.Writer, cat model.Catalog, withHeader bool) error {
	bw := bufio.NewWriter(w)
	if withHeader {
		if _, err := fmt.Fprintln(bw, AssetHeader); err != nil {
			return err
		}
	}
	for _, a := range cat.All() {
		if _, err := fmt.Fprintf(bw, "%s,%s,%s\n", a.Type, a.Name, FormatPrice(a.Price)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatPrice renders a price in its shortest decimal form (150, 12.5).
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
