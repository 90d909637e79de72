package interchange

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// BackupVersion is written into every backup document.
const BackupVersion = "1.0"

// Backup is the full-state backup document. On read, a nil collection
// means the key was absent (or null) in the file.
type Backup struct {
	Farms      *model.Farms   `json:"farms,omitempty"`
	Assets     *model.Catalog `json:"assets,omitempty"`
	Bills      *[]model.Bill  `json:"bills,omitempty"`
	Version    string         `json:"version"`
	ExportDate time.Time      `json:"exportDate"`
}

// NewBackup snapshots st.
func NewBackup(st *model.State, now time.Time) *Backup {
	c := st.Clone()
	if c.Farms == nil {
		c.Farms = model.Farms{}
	}
	if c.Assets == nil {
		c.Assets = model.Catalog{}
	}
	if c.Bills == nil {
		c.Bills = []model.Bill{}
	}
	return &Backup{
		Farms:      &c.Farms,
		Assets:     &c.Assets,
		Bills:      &c.Bills,
		Version:    BackupVersion,
		ExportDate: now.UTC(),
	}
}

// WriteBackup writes b as indented JSON.
func WriteBackup(w io.Writer, b *Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(b)
}

// ReadBackup parses a backup document. Anything that is not a JSON object
// of the backup shape is a FormatError.
func ReadBackup(r io.Reader) (*Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, &model.FormatError{Source: "backup", Err: err}
	}
	return &b, nil
}

// Apply replaces the collections present in the backup and leaves the
// others untouched. It returns the names of the replaced collections.
func (b *Backup) Apply(st *model.State) []string {
	var restored []string
	if b.Farms != nil {
		st.Farms = b.Farms.Clone()
		if st.Farms == nil {
			st.Farms = model.Farms{}
		}
		restored = append(restored, "farms")
	}
	if b.Assets != nil {
		st.Assets = b.Assets.Clone()
		if st.Assets == nil {
			st.Assets = model.Catalog{}
		}
		restored = append(restored, "assets")
	}
	if b.Bills != nil {
		bills := make([]model.Bill, len(*b.Bills))
		for i, bill := range *b.Bills {
			bills[i] = bill.Clone()
		}
		st.Bills = bills
		restored = append(restored, "bills")
	}
	return restored
}

// BackupFileName is the default file name for a backup taken at now.
func BackupFileName(now time.Time) string {
	return fmt.Sprintf("farm-bill-backup-%s.json", now.Format("2006-01-02"))
}
