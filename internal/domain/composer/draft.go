// Package composer builds bills from a per-pond entry draft.
//
// A Draft holds only authoritative data: regular rows per pond and the list of
// split entries. The split shares shown inside each participant pond, the pond
// totals and the grand total are computed from that data on every read, so
// they always reflect the latest edit.
package composer

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/allocator"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// OtherType is the type preset on a free-text row.
const OtherType = "อื่นๆ"

// RowKind distinguishes regular rows from split rows.
type RowKind int

const (
	RowRegular RowKind = iota
	RowSplit
)

// Row is one entry row of a pond. Split rows carry only SplitID; the split
// itself lives on the draft.
type Row struct {
	Kind     RowKind
	Type     string
	Name     string
	Quantity int
	Price    float64
	SplitID  string
}

// LineTotal returns quantity times price for a regular row, zero otherwise.
func (r Row) LineTotal() float64 {
	if r.Kind != RowRegular {
		return 0
	}
	return float64(r.Quantity) * r.Price
}

// PondDraft is one pond's rows.
type PondDraft struct {
	Name string
	Rows []Row
}

// RowInput sets the fields of a regular row.
type RowInput struct {
	Type     string
	Name     string
	Quantity int
	Price    float64
}

// SplitInput sets the fields of a split entry.
type SplitInput struct {
	Description string
	Quantity    int
	TotalPrice  float64
}

// Draft is a bill under construction for one farm and date.
type Draft struct {
	FarmID   string
	FarmName string
	Date     string
	Ponds    []PondDraft

	splits     map[string]*allocator.Split
	splitOrder []string
	newSplitID func() string
}

// Option configures a Draft.
type Option func(*Draft)

// WithSplitIDs overrides the split id generator.
func WithSplitIDs(gen func() string) Option {
	return func(d *Draft) { d.newSplitID = gen }
}

// NewDraft starts a draft with one empty row per pond, mirroring the entry
// form.
func NewDraft(farm model.Farm, date string, opts ...Option) *Draft {
	d := &Draft{
		FarmID:     farm.ID,
		FarmName:   farm.Name,
		Date:       date,
		Ponds:      make([]PondDraft, len(farm.Ponds)),
		splits:     make(map[string]*allocator.Split),
		newSplitID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	for i, name := range farm.Ponds {
		d.Ponds[i] = PondDraft{Name: name, Rows: []Row{newRegularRow()}}
	}
	return d
}

func newRegularRow() Row {
	return Row{Kind: RowRegular, Quantity: 1}
}

func (d *Draft) pond(index int) (*PondDraft, error) {
	if index < 0 || index >= len(d.Ponds) {
		return nil, &model.NotFoundError{Kind: "pond", ID: fmt.Sprint(index)}
	}
	return &d.Ponds[index], nil
}

func (d *Draft) row(pond, row int) (*PondDraft, *Row, error) {
	p, err := d.pond(pond)
	if err != nil {
		return nil, nil, err
	}
	if row < 0 || row >= len(p.Rows) {
		return nil, nil, &model.NotFoundError{Kind: "row", ID: fmt.Sprintf("%d/%d", pond, row)}
	}
	return p, &p.Rows[row], nil
}

// AddRow appends an empty regular row to pond and returns its index.
func (d *Draft) AddRow(pond int) (int, error) {
	p, err := d.pond(pond)
	if err != nil {
		return 0, err
	}
	p.Rows = append(p.Rows, newRegularRow())
	return len(p.Rows) - 1, nil
}

// AddOtherRow appends a free-text row typed OtherType.
func (d *Draft) AddOtherRow(pond int) (int, error) {
	p, err := d.pond(pond)
	if err != nil {
		return 0, err
	}
	r := newRegularRow()
	r.Type = OtherType
	p.Rows = append(p.Rows, r)
	return len(p.Rows) - 1, nil
}

// SetRow replaces the fields of a regular row.
func (d *Draft) SetRow(pond, row int, in RowInput) error {
	p, r, err := d.row(pond, row)
	if err != nil {
		return err
	}
	if r.Kind != RowRegular {
		return model.NewValidationError(p.Name, model.FieldRows, "row is a split entry")
	}
	if in.Quantity < 0 {
		return model.NewValidationError(p.Name, model.FieldQuantity, "quantity cannot be negative")
	}
	if err := checkPrice(p.Name, in.Price); err != nil {
		return err
	}
	r.Type = strings.TrimSpace(in.Type)
	r.Name = strings.TrimSpace(in.Name)
	r.Quantity = in.Quantity
	r.Price = in.Price
	return nil
}

func checkPrice(pond string, price float64) error {
	switch {
	case math.IsNaN(price) || math.IsInf(price, 0):
		return model.NewValidationError(pond, model.FieldPrice, "price must be a number")
	case price < 0:
		return model.NewValidationError(pond, model.FieldPrice, "price cannot be negative")
	}
	return nil
}

// PickAsset fills a regular row from the catalog entry at index within typ,
// keeping the row's quantity.
func (d *Draft) PickAsset(pond, row int, catalog model.Catalog, typ string, index int) error {
	_, r, err := d.row(pond, row)
	if err != nil {
		return err
	}
	list := catalog[typ]
	if index < 0 || index >= len(list) {
		return &model.NotFoundError{Kind: "asset", ID: fmt.Sprintf("%s/%d", typ, index)}
	}
	a := list[index]
	return d.SetRow(pond, row, RowInput{Type: typ, Name: a.Name, Quantity: r.Quantity, Price: a.Price})
}

// RemoveRow deletes a row. The last row of a pond cannot be removed.
// Removing a split row removes its split entry.
func (d *Draft) RemoveRow(pond, row int) error {
	p, r, err := d.row(pond, row)
	if err != nil {
		return err
	}
	if len(p.Rows) <= 1 {
		return model.NewValidationError(p.Name, model.FieldRows, "each pond needs at least one row")
	}
	if r.Kind == RowSplit {
		delete(d.splits, r.SplitID)
		d.dropSplitOrder(r.SplitID)
	}
	p.Rows = append(p.Rows[:row], p.Rows[row+1:]...)
	return nil
}

// AddSplit adds a split entry whose row sits in sourcePond and returns its id.
// The entry starts with quantity 1 and no participants.
func (d *Draft) AddSplit(sourcePond int) (string, error) {
	p, err := d.pond(sourcePond)
	if err != nil {
		return "", err
	}
	id := d.newSplitID()
	d.splits[id] = &allocator.Split{ID: id, Quantity: 1, SourcePond: sourcePond}
	d.splitOrder = append(d.splitOrder, id)
	p.Rows = append(p.Rows, Row{Kind: RowSplit, SplitID: id})
	return id, nil
}

func (d *Draft) split(id string) (*allocator.Split, error) {
	s, ok := d.splits[id]
	if !ok {
		return nil, &model.NotFoundError{Kind: "split", ID: id}
	}
	return s, nil
}

// SetSplit replaces the description, quantity and price of a split entry.
func (d *Draft) SetSplit(id string, in SplitInput) error {
	s, err := d.split(id)
	if err != nil {
		return err
	}
	pondName := d.Ponds[s.SourcePond].Name
	if in.Quantity < 0 {
		return model.NewValidationError(pondName, model.FieldQuantity, "quantity cannot be negative")
	}
	if err := checkPrice(pondName, in.TotalPrice); err != nil {
		return err
	}
	s.Description = strings.TrimSpace(in.Description)
	s.Quantity = in.Quantity
	s.TotalPrice = in.TotalPrice
	return nil
}

// SetParticipants replaces the ponds a split is divided across. A warning is
// returned, not an error, when exactly one pond is selected for a priced
// split.
func (d *Draft) SetParticipants(id string, ponds []int) (*allocator.Warning, error) {
	s, err := d.split(id)
	if err != nil {
		return nil, err
	}
	warn, err := allocator.SetParticipants(s, ponds, len(d.Ponds))
	if err != nil {
		return nil, model.NewValidationError(d.Ponds[s.SourcePond].Name, model.FieldParticipants, err.Error())
	}
	return warn, nil
}

// RemoveSplit deletes a split entry and its row.
func (d *Draft) RemoveSplit(id string) error {
	s, err := d.split(id)
	if err != nil {
		return err
	}
	p := &d.Ponds[s.SourcePond]
	for i, r := range p.Rows {
		if r.Kind == RowSplit && r.SplitID == id {
			return d.RemoveRow(s.SourcePond, i)
		}
	}
	return &model.NotFoundError{Kind: "split row", ID: id}
}

func (d *Draft) dropSplitOrder(id string) {
	for i, sid := range d.splitOrder {
		if sid == id {
			d.splitOrder = append(d.splitOrder[:i], d.splitOrder[i+1:]...)
			return
		}
	}
}

// Split returns a copy of the split entry with id.
func (d *Draft) Split(id string) (allocator.Split, bool) {
	s, ok := d.splits[id]
	if !ok {
		return allocator.Split{}, false
	}
	c := *s
	c.Participants = append([]int(nil), s.Participants...)
	return c, true
}

// Splits returns copies of all split entries in creation order.
func (d *Draft) Splits() []allocator.Split {
	out := make([]allocator.Split, 0, len(d.splitOrder))
	for _, id := range d.splitOrder {
		s, _ := d.Split(id)
		out = append(out, s)
	}
	return out
}
