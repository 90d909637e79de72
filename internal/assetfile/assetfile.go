// Package assetfile edits the Asset.txt seed file in place: a headerless
// three-column CSV of type, name, price. Rows are addressed by their
// 0-based position in the file.
package assetfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// Row is one line of the file, kept as text.
type Row struct {
	Type  string
	Name  string
	Price string
}

// Match is a row together with its id.
type Match struct {
	ID  int
	Row Row
}

// Update carries optional replacements; nil fields are kept.
type Update struct {
	Type  *string
	Name  *string
	Price *string
}

// File is an in-memory copy of an asset file.
type File struct {
	Path string
	Rows []Row
}

// Load reads path. A missing file loads as empty. Lines that do not have
// exactly three fields are dropped.
func Load(path string) (*File, error) {
	f := &File{Path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &model.FormatError{Source: path, Err: err}
		}
		if len(rec) != 3 {
			continue
		}
		f.Rows = append(f.Rows, Row{Type: rec[0], Name: rec[1], Price: rec[2]})
	}
	return f, nil
}

// Save writes every row back to Path.
func (f *File) Save() error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range f.Rows {
		if err := w.Write([]string{row.Type, row.Name, row.Price}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := os.WriteFile(f.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

func checkPrice(price string) error {
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return model.NewValidationError("", model.FieldPrice, fmt.Sprintf("invalid price %q", price))
	}
	return nil
}

func (f *File) check(id int) error {
	if id < 0 || id >= len(f.Rows) {
		return &model.NotFoundError{Kind: "asset", ID: strconv.Itoa(id)}
	}
	return nil
}

// Add appends a row and returns its id.
func (f *File) Add(typ, name, price string) (int, error) {
	row := Row{Type: strings.TrimSpace(typ), Name: strings.TrimSpace(name), Price: strings.TrimSpace(price)}
	switch {
	case row.Type == "":
		return 0, model.NewValidationError("", model.FieldType, "type is required")
	case row.Name == "":
		return 0, model.NewValidationError("", model.FieldName, "name is required")
	}
	if err := checkPrice(row.Price); err != nil {
		return 0, err
	}
	f.Rows = append(f.Rows, row)
	return len(f.Rows) - 1, nil
}

// Update changes the row at id and returns the previous and new values.
func (f *File) Update(id int, u Update) (before, after Row, err error) {
	if err := f.check(id); err != nil {
		return Row{}, Row{}, err
	}
	if u.Price != nil {
		if err := checkPrice(*u.Price); err != nil {
			return Row{}, Row{}, err
		}
	}

	before = f.Rows[id]
	row := before
	if u.Type != nil && strings.TrimSpace(*u.Type) != "" {
		row.Type = strings.TrimSpace(*u.Type)
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) != "" {
		row.Name = strings.TrimSpace(*u.Name)
	}
	if u.Price != nil {
		row.Price = strings.TrimSpace(*u.Price)
	}
	f.Rows[id] = row
	return before, row, nil
}

// Delete removes the row at id. Later rows shift down by one.
func (f *File) Delete(id int) (Row, error) {
	if err := f.check(id); err != nil {
		return Row{}, err
	}
	row := f.Rows[id]
	f.Rows = append(f.Rows[:id], f.Rows[id+1:]...)
	return row, nil
}

// All returns every row with its id.
func (f *File) All() []Match {
	out := make([]Match, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = Match{ID: i, Row: row}
	}
	return out
}

// Search returns the rows whose name contains keyword, ignoring case.
func (f *File) Search(keyword string) []Match {
	kw := strings.ToLower(keyword)
	var out []Match
	for i, row := range f.Rows {
		if strings.Contains(strings.ToLower(row.Name), kw) {
			out = append(out, Match{ID: i, Row: row})
		}
	}
	return out
}

// FilterByType returns the rows whose type equals typ.
func (f *File) FilterByType(typ string) []Match {
	var out []Match
	for i, row := range f.Rows {
		if row.Type == typ {
			out = append(out, Match{ID: i, Row: row})
		}
	}
	return out
}
