package assetfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Asset.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "001,อาหารกุ้ง,850\n002,ปูนขาว\n003,\"ยา, ชนิดน้ำ\",120.5\n004,a,b,c\n")
	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []Row{
		{Type: "001", Name: "อาหารกุ้ง", Price: "850"},
		{Type: "003", Name: "ยา, ชนิดน้ำ", Price: "120.5"},
	}, f.Rows)
}

func TestLoad_MissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "none.txt"))
	require.NoError(t, err)
	assert.Empty(t, f.Rows)
}

func TestEditAndSave(t *testing.T) {
	path := writeFile(t, "001,อาหารกุ้ง,850\n002,ปูนขาว,120\n")
	f, err := Load(path)
	require.NoError(t, err)

	id, err := f.Add("003", "Probiotic", "450")
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	newPrice := "900"
	empty := ""
	before, after, err := f.Update(0, Update{Price: &newPrice, Name: &empty})
	require.NoError(t, err)
	assert.Equal(t, "850", before.Price)
	assert.Equal(t, Row{Type: "001", Name: "อาหารกุ้ง", Price: "900"}, after)

	deleted, err := f.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, "ปูนขาว", deleted.Name)

	require.NoError(t, f.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "001,อาหารกุ้ง,900\n003,Probiotic,450\n", string(data))
}

func TestValidation(t *testing.T) {
	f := &File{Rows: []Row{{Type: "001", Name: "A", Price: "1"}}}

	_, err := f.Add("001", "B", "abc")
	assert.True(t, model.IsValidation(err))
	_, err = f.Add("", "B", "1")
	assert.True(t, model.IsValidation(err))

	for _, price := range []string{"NaN", "Inf", "-Infinity", "+inf"} {
		_, err = f.Add("001", "B", price)
		assert.True(t, model.IsValidation(err), price)
	}
	assert.Len(t, f.Rows, 1)

	bad := "-5"
	_, _, err = f.Update(0, Update{Price: &bad})
	assert.True(t, model.IsValidation(err))
	assert.Equal(t, "1", f.Rows[0].Price)
	nan := "nan"
	_, _, err = f.Update(0, Update{Price: &nan})
	assert.True(t, model.IsValidation(err))
	assert.Equal(t, "1", f.Rows[0].Price)

	_, err = f.Delete(5)
	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "5", nf.ID)

	_, _, err = f.Update(-1, Update{})
	assert.True(t, model.IsNotFound(err))
}

func TestSearchAndFilter(t *testing.T) {
	f := &File{Rows: []Row{
		{Type: "001", Name: "Shrimp Feed", Price: "850"},
		{Type: "002", Name: "lime", Price: "120"},
		{Type: "001", Name: "feed additive", Price: "300"},
	}}

	assert.Equal(t, []Match{
		{ID: 0, Row: f.Rows[0]},
		{ID: 2, Row: f.Rows[2]},
	}, f.Search("FEED"))
	assert.Empty(t, f.Search("salt"))

	assert.Equal(t, []Match{{ID: 1, Row: f.Rows[1]}}, f.FilterByType("002"))
	assert.Len(t, f.All(), 3)
}
