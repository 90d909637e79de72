package composer

import (
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/allocator"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// Totals is a snapshot of every pond total and the grand total.
type Totals struct {
	Ponds []float64
	Grand float64
}

// DerivedItems returns the read-only split shares shown inside pond, one per
// split entry that has the pond among two or more participants.
func (d *Draft) DerivedItems(pond int) []model.BillItem {
	return derivedItems(d.Splits(), pond, false)
}

func derivedItems(splits []allocator.Split, pond int, billableOnly bool) []model.BillItem {
	var items []model.BillItem
	for _, s := range splits {
		if len(s.Participants) < allocator.MinParticipants || !allocator.Includes(s, pond) {
			continue
		}
		if billableOnly && !allocator.Billable(s) {
			continue
		}
		amount := allocator.PerPondAmount(s)
		items = append(items, model.BillItem{
			Type:  model.SplitItemType,
			Name:  s.Description,
			Qty:   s.Quantity,
			Price: amount,
			Total: amount,
		})
	}
	return items
}

// PondTotal returns the sum of the pond's regular line totals and its split
// shares.
func (d *Draft) PondTotal(pond int) float64 {
	if pond < 0 || pond >= len(d.Ponds) {
		return 0
	}
	var total float64
	for _, r := range d.Ponds[pond].Rows {
		total += r.LineTotal()
	}
	for _, it := range d.DerivedItems(pond) {
		total += it.Total
	}
	return total
}

// GrandTotal returns the sum of all pond totals.
func (d *Draft) GrandTotal() float64 {
	var total float64
	for i := range d.Ponds {
		total += d.PondTotal(i)
	}
	return total
}

// Totals recomputes every pond total and the grand total.
func (d *Draft) Totals() Totals {
	t := Totals{Ponds: make([]float64, len(d.Ponds))}
	for i := range d.Ponds {
		t.Ponds[i] = d.PondTotal(i)
		t.Grand += t.Ponds[i]
	}
	return t
}
