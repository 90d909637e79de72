package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/allocator"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/composer"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// DraftFile describes a bill draft in YAML:
//
//	farm: "1"
//	date: 2024-01-15
//	ponds:
//	  - rows:
//	      - {type: "001", name: อาหารกุ้ง, qty: 2, price: 850}
//	      - {asset: {type: "002", index: 0}, qty: 3}
//	  - rows:
//	      - {other: true, name: ค่าแรง, qty: 1, price: 300}
//	splits:
//	  - {description: ค่าไฟ, qty: 1, price: 900, source: 0, ponds: [0, 1]}
//
// Ponds are listed in farm order; trailing ponds may be omitted.
type DraftFile struct {
	Farm   string       `yaml:"farm"`
	Date   string       `yaml:"date"`
	Ponds  []DraftPond  `yaml:"ponds"`
	Splits []DraftSplit `yaml:"splits"`
}

type DraftPond struct {
	Rows []DraftRow `yaml:"rows"`
}

type DraftRow struct {
	Type  string    `yaml:"type"`
	Name  string    `yaml:"name"`
	Qty   *int      `yaml:"qty"`
	Price float64   `yaml:"price"`
	Other bool      `yaml:"other"`
	Asset *AssetRef `yaml:"asset"`
}

// AssetRef points at a catalog entry by type and position.
type AssetRef struct {
	Type  string `yaml:"type"`
	Index int    `yaml:"index"`
}

type DraftSplit struct {
	Description string  `yaml:"description"`
	Qty         *int    `yaml:"qty"`
	Price       float64 `yaml:"price"`
	Source      int     `yaml:"source"`
	Ponds       []int   `yaml:"ponds"`
}

// LoadDraftFile parses a YAML draft description.
func LoadDraftFile(path string) (*DraftFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	var f DraftFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &model.FormatError{Source: path, Err: err}
	}
	return &f, nil
}

// DraftSource supplies what Build needs from the session.
type DraftSource interface {
	NewDraft(farmID, date string) (*composer.Draft, error)
	Catalog() model.Catalog
}

// Build replays the file onto a new draft. Warnings from single-pond splits
// are returned alongside the draft.
func (f *DraftFile) Build(src DraftSource) (*composer.Draft, []allocator.Warning, error) {
	d, err := src.NewDraft(f.Farm, f.Date)
	if err != nil {
		return nil, nil, err
	}
	if len(f.Ponds) > len(d.Ponds) {
		return nil, nil, model.NewValidationError("", model.FieldPonds,
			fmt.Sprintf("draft lists %d ponds, farm has %d", len(f.Ponds), len(d.Ponds)))
	}

	cat := src.Catalog()
	for p, pond := range f.Ponds {
		for i, row := range pond.Rows {
			idx := 0
			if i > 0 {
				if idx, err = d.AddRow(p); err != nil {
					return nil, nil, err
				}
			}
			if err := applyRow(d, cat, p, idx, row); err != nil {
				return nil, nil, err
			}
		}
	}

	var warnings []allocator.Warning
	for _, s := range f.Splits {
		id, err := d.AddSplit(s.Source)
		if err != nil {
			return nil, nil, err
		}
		if err := d.SetSplit(id, composer.SplitInput{
			Description: s.Description,
			Quantity:    qtyOrOne(s.Qty),
			TotalPrice:  s.Price,
		}); err != nil {
			return nil, nil, err
		}
		warn, err := d.SetParticipants(id, s.Ponds)
		if err != nil {
			return nil, nil, err
		}
		if warn != nil {
			warnings = append(warnings, *warn)
		}
	}
	return d, warnings, nil
}

func applyRow(d *composer.Draft, cat model.Catalog, pond, row int, r DraftRow) error {
	qty := qtyOrOne(r.Qty)
	if r.Asset != nil {
		if err := d.PickAsset(pond, row, cat, r.Asset.Type, r.Asset.Index); err != nil {
			return err
		}
		picked := d.Ponds[pond].Rows[row]
		return d.SetRow(pond, row, composer.RowInput{Type: picked.Type, Name: picked.Name, Quantity: qty, Price: picked.Price})
	}
	typ := r.Type
	if r.Other {
		typ = composer.OtherType
	}
	return d.SetRow(pond, row, composer.RowInput{Type: typ, Name: r.Name, Quantity: qty, Price: r.Price})
}

func qtyOrOne(q *int) int {
	if q == nil {
		return 1
	}
	return *q
}
