package composer

import (
	"strings"
	"time"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/allocator"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/validator"
)

// DateLayout is the bill date format.
const DateLayout = "2006-01-02"

// Finalize validates the draft and builds the bill with id.
func (d *Draft) Finalize(id string) (*model.Bill, error) {
	farm := model.Farm{ID: d.FarmID, Name: d.FarmName}
	return Finalize(farm, d.Ponds, d.Splits(), d.Date, id)
}

// Finalize validates the pond rows and split entries of a draft and builds a
// bill.
//
// Rows are checked pond by pond in row order and the first incomplete row
// aborts with a ValidationError naming its pond. Untouched rows are skipped.
// Only ponds that end up with at least one item are included; if none do,
// the draft is rejected with a "no items" ValidationError.
func Finalize(farm model.Farm, ponds []PondDraft, splits []allocator.Split, date, id string) (*model.Bill, error) {
	if strings.TrimSpace(farm.ID) == "" {
		return nil, model.NewValidationError("", model.FieldFarm, "farm is required")
	}
	if strings.TrimSpace(date) == "" {
		return nil, model.NewValidationError("", model.FieldDate, "date is required")
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, model.NewValidationError("", model.FieldDate, "date must be YYYY-MM-DD")
	}

	if err := validate(ponds, splits); err != nil {
		return nil, err
	}

	bill := &model.Bill{
		ID:       id,
		FarmID:   farm.ID,
		FarmName: farm.Name,
		Date:     date,
		Ponds:    []model.BillPond{},
	}

	for i, p := range ponds {
		var items []model.BillItem
		for _, r := range p.Rows {
			if r.Kind != RowRegular {
				continue
			}
			if !validator.CheckRegular(regularRow(r)).Valid {
				continue
			}
			items = append(items, model.BillItem{
				Type:  r.Type,
				Name:  r.Name,
				Qty:   r.Quantity,
				Price: r.Price,
				Total: r.LineTotal(),
			})
		}
		items = append(items, derivedItems(splits, i, true)...)
		if len(items) == 0 {
			continue
		}

		var total float64
		for _, it := range items {
			total += it.Total
		}
		bill.Ponds = append(bill.Ponds, model.BillPond{Name: p.Name, Items: items, Total: total})
		bill.GrandTotal += total
	}

	if len(bill.Ponds) == 0 {
		return nil, model.NewValidationError("", model.FieldItems, "no items")
	}
	return bill, nil
}

// validate runs the fail-fast row checks. Split rows are checked where they
// sit; splits without a row are checked afterwards against their source pond.
func validate(ponds []PondDraft, splits []allocator.Split) error {
	byID := make(map[string]allocator.Split, len(splits))
	for _, s := range splits {
		byID[s.ID] = s
	}
	seen := make(map[string]bool, len(splits))

	for _, p := range ponds {
		for _, r := range p.Rows {
			var res validator.Result
			switch r.Kind {
			case RowRegular:
				res = validator.CheckRegular(regularRow(r))
			case RowSplit:
				s, ok := byID[r.SplitID]
				if !ok {
					continue
				}
				seen[s.ID] = true
				res = validator.CheckSplit(splitRow(s))
			}
			if err := res.Err(p.Name); err != nil {
				return err
			}
		}
	}

	for _, s := range splits {
		if seen[s.ID] {
			continue
		}
		pond := ""
		if s.SourcePond >= 0 && s.SourcePond < len(ponds) {
			pond = ponds[s.SourcePond].Name
		}
		if err := validator.CheckSplit(splitRow(s)).Err(pond); err != nil {
			return err
		}
	}
	return nil
}

func regularRow(r Row) validator.RegularRow {
	return validator.RegularRow{Type: r.Type, Name: r.Name, Quantity: r.Quantity, Price: r.Price}
}

func splitRow(s allocator.Split) validator.SplitRow {
	return validator.SplitRow{
		Description:  s.Description,
		Quantity:     s.Quantity,
		Participants: len(s.Participants),
		TotalPrice:   s.TotalPrice,
	}
}
