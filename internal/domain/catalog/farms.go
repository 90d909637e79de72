// Package catalog holds the farm, pond and asset management rules.
//
// Functions mutate the collections they are given; callers that need
// all-or-nothing behaviour pass a copy and keep it only on success.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

const (
	// DefaultFarmCount and DefaultPondCount size the factory farm layout.
	DefaultFarmCount = 4
	DefaultPondCount = 4

	farmNamePrefix = "ฟาร์มที่ "
	pondNamePrefix = "บ่อที่ "
)

var (
	pondNumberPattern = regexp.MustCompile(`บ่อที่ (\d+)`)
	firstNumber       = regexp.MustCompile(`\d+`)
)

// DefaultFarms returns the factory layout: four farms with four ponds each.
func DefaultFarms() model.Farms {
	farms := make(model.Farms, DefaultFarmCount)
	for i := 1; i <= DefaultFarmCount; i++ {
		id := strconv.Itoa(i)
		ponds := make([]string, DefaultPondCount)
		for p := range ponds {
			ponds[p] = PondName(p + 1)
		}
		farms[id] = &model.Farm{ID: id, Name: farmNamePrefix + id, Ponds: ponds}
	}
	return farms
}

// PondName returns the default name of pond number n.
func PondName(n int) string {
	return pondNamePrefix + strconv.Itoa(n)
}

// FindFarm returns the farm with id.
func FindFarm(farms model.Farms, id string) (*model.Farm, error) {
	f, ok := farms[id]
	if !ok {
		return nil, &model.NotFoundError{Kind: "farm", ID: id}
	}
	return f, nil
}

func checkPond(f *model.Farm, index int) error {
	if index < 0 || index >= len(f.Ponds) {
		return &model.NotFoundError{Kind: "pond", ID: fmt.Sprintf("%s/%d", f.ID, index)}
	}
	return nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.NewValidationError("", model.FieldName, "name is required")
	}
	return name, nil
}

// AddFarm creates a farm with one default pond. Its id is one past the
// highest numeric id in use.
func AddFarm(farms model.Farms, name string) (*model.Farm, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	next := 1
	for id := range farms {
		if n, err := strconv.Atoi(id); err == nil && n >= next {
			next = n + 1
		}
	}
	id := strconv.Itoa(next)
	f := &model.Farm{ID: id, Name: name, Ponds: []string{PondName(1)}}
	farms[id] = f
	return f, nil
}

// RenameFarm sets a farm's display name.
func RenameFarm(farms model.Farms, id, name string) error {
	f, err := FindFarm(farms, id)
	if err != nil {
		return err
	}
	name, err = cleanName(name)
	if err != nil {
		return err
	}
	f.Name = name
	return nil
}

// AddPond appends "บ่อที่ N" using the smallest N not already taken, then
// orders the ponds by their first number. It returns the new pond's name.
func AddPond(farms model.Farms, id string) (string, error) {
	f, err := FindFarm(farms, id)
	if err != nil {
		return "", err
	}

	taken := make(map[int]bool, len(f.Ponds))
	for _, p := range f.Ponds {
		if m := pondNumberPattern.FindStringSubmatch(p); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				taken[n] = true
			}
		}
	}
	n := 1
	for taken[n] {
		n++
	}

	name := PondName(n)
	f.Ponds = append(f.Ponds, name)
	sort.SliceStable(f.Ponds, func(i, j int) bool {
		return leadingNumber(f.Ponds[i]) < leadingNumber(f.Ponds[j])
	})
	return name, nil
}

func leadingNumber(s string) int {
	n, err := strconv.Atoi(firstNumber.FindString(s))
	if err != nil {
		return 0
	}
	return n
}

// RenamePond sets the name of the pond at index.
func RenamePond(farms model.Farms, id string, index int, name string) error {
	f, err := FindFarm(farms, id)
	if err != nil {
		return err
	}
	if err := checkPond(f, index); err != nil {
		return err
	}
	name, err = cleanName(name)
	if err != nil {
		return err
	}
	f.Ponds[index] = name
	return nil
}

// CanRemovePond reports the error RemovePond would return, without changing
// anything.
func CanRemovePond(farms model.Farms, id string, index int) error {
	f, err := FindFarm(farms, id)
	if err != nil {
		return err
	}
	if err := checkPond(f, index); err != nil {
		return err
	}
	if len(f.Ponds) <= 1 {
		return model.NewValidationError(f.Ponds[index], model.FieldPonds, "a farm needs at least one pond")
	}
	return nil
}

// RemovePond deletes the pond at index and returns its name. The last pond
// of a farm cannot be removed.
func RemovePond(farms model.Farms, id string, index int) (string, error) {
	if err := CanRemovePond(farms, id, index); err != nil {
		return "", err
	}
	f := farms[id]
	name := f.Ponds[index]
	f.Ponds = append(f.Ponds[:index], f.Ponds[index+1:]...)
	return name, nil
}

// Rename is a farm name and pond names to apply together. Empty entries keep
// the current value.
type Rename struct {
	Name  string
	Ponds map[int]string
}

// BulkRename applies several renames. Every reference is checked before
// anything changes.
func BulkRename(farms model.Farms, renames map[string]Rename) error {
	for id, r := range renames {
		f, err := FindFarm(farms, id)
		if err != nil {
			return err
		}
		for idx := range r.Ponds {
			if err := checkPond(f, idx); err != nil {
				return err
			}
		}
	}
	for id, r := range renames {
		f := farms[id]
		if name := strings.TrimSpace(r.Name); name != "" {
			f.Name = name
		}
		for idx, name := range r.Ponds {
			if name = strings.TrimSpace(name); name != "" {
				f.Ponds[idx] = name
			}
		}
	}
	return nil
}
