// Package model defines the records the billing engine works with: farms and
// their ponds, the asset catalog, and finalized bills.
//
// The JSON shapes match the three persisted documents:
//
//	farms:  {"<farm-id>": {"name": "...", "ponds": ["...", ...]}}
//	assets: {"<type>": [{"name": "...", "price": 0}, ...]}
//	bills:  [{"id": "...", "farmId": "...", ...}, ...]  (most recent first)
package model

import (
	"encoding/json"
	"sort"
	"strconv"
)

// SplitItemType is the item type written for a pond's share of a split entry.
const SplitItemType = "หาร"

// Farm is a facility with an ordered list of pond names.
type Farm struct {
	ID    string   `json:"-"`
	Name  string   `json:"name"`
	Ponds []string `json:"ponds"`
}

// Farms maps farm id to farm.
type Farms map[string]*Farm

// UnmarshalJSON fills each Farm.ID from its key.
func (fs *Farms) UnmarshalJSON(data []byte) error {
	var raw map[string]*Farm
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for id, f := range raw {
		if f == nil {
			f = &Farm{}
			raw[id] = f
		}
		f.ID = id
		if f.Ponds == nil {
			f.Ponds = []string{}
		}
	}
	*fs = raw
	return nil
}

// IDs returns the farm ids in display order: numeric ids ascending, then the
// rest lexically.
func (fs Farms) IDs() []string {
	ids := make([]string, 0, len(fs))
	for id := range fs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}

// Sorted returns the farms in IDs order.
func (fs Farms) Sorted() []*Farm {
	out := make([]*Farm, 0, len(fs))
	for _, id := range fs.IDs() {
		out = append(out, fs[id])
	}
	return out
}

// Clone returns a deep copy.
func (fs Farms) Clone() Farms {
	if fs == nil {
		return nil
	}
	out := make(Farms, len(fs))
	for id, f := range fs {
		c := *f
		c.Ponds = append([]string(nil), f.Ponds...)
		out[id] = &c
	}
	return out
}

// Asset is a catalog entry. Type is the key of the bucket it lives in and is
// not part of the persisted entry.
type Asset struct {
	Type  string  `json:"-"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog groups assets by type code. Names are not deduplicated.
type Catalog map[string][]Asset

// UnmarshalJSON fills each Asset.Type from its bucket key.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var raw map[string][]Asset
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for typ, list := range raw {
		for i := range list {
			list[i].Type = typ
		}
	}
	*c = raw
	return nil
}

// Types returns the type codes sorted.
func (c Catalog) Types() []string {
	types := make([]string, 0, len(c))
	for t := range c {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Count returns the number of assets across all types.
func (c Catalog) Count() int {
	n := 0
	for _, list := range c {
		n += len(list)
	}
	return n
}

// All returns every asset, types sorted, catalog order within a type.
func (c Catalog) All() []Asset {
	out := make([]Asset, 0, c.Count())
	for _, t := range c.Types() {
		out = append(out, c[t]...)
	}
	return out
}

// Add appends an asset to its type bucket.
func (c Catalog) Add(a Asset) {
	c[a.Type] = append(c[a.Type], a)
}

// Clone returns a deep copy.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for t, list := range c {
		out[t] = append([]Asset(nil), list...)
	}
	return out
}

// BillItem is one line of a finalized pond.
type BillItem struct {
	Type  string  `json:"type"`
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
	Total float64 `json:"total"`
}

// BillPond is a pond section of a finalized bill.
type BillPond struct {
	Name  string     `json:"name"`
	Items []BillItem `json:"items"`
	Total float64    `json:"total"`
}

// Bill is a finalized, immutable cost record for one farm and date.
type Bill struct {
	ID         string     `json:"id"`
	FarmID     string     `json:"farmId"`
	FarmName   string     `json:"farmName"`
	Date       string     `json:"date"`
	Ponds      []BillPond `json:"ponds"`
	GrandTotal float64    `json:"grandTotal"`
}

// UnmarshalJSON accepts bills written with the older "total" key.
func (b *Bill) UnmarshalJSON(data []byte) error {
	type plain Bill
	aux := struct {
		*plain
		LegacyTotal *float64 `json:"total"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if b.GrandTotal == 0 && aux.LegacyTotal != nil {
		b.GrandTotal = *aux.LegacyTotal
	}
	return nil
}

// ItemCount returns the number of items across all ponds.
func (b Bill) ItemCount() int {
	n := 0
	for _, p := range b.Ponds {
		n += len(p.Items)
	}
	return n
}

// Clone returns a deep copy.
func (b Bill) Clone() Bill {
	c := b
	c.Ponds = make([]BillPond, len(b.Ponds))
	for i, p := range b.Ponds {
		p.Items = append([]BillItem(nil), p.Items...)
		c.Ponds[i] = p
	}
	return c
}

// State is the whole application state: the unit of persistence.
// A nil collection means the document was absent from the store.
type State struct {
	Farms  Farms   `json:"farms"`
	Assets Catalog `json:"assets"`
	Bills  []Bill  `json:"bills"`
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		Farms:  s.Farms.Clone(),
		Assets: s.Assets.Clone(),
	}
	if s.Bills != nil {
		c.Bills = make([]Bill, len(s.Bills))
		for i, b := range s.Bills {
			c.Bills[i] = b.Clone()
		}
	}
	return c
}

// FindBill returns the index of the bill with id, or -1.
func (s *State) FindBill(id string) int {
	for i, b := range s.Bills {
		if b.ID == id {
			return i
		}
	}
	return -1
}
