package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

func TestDefaultFarms(t *testing.T) {
	farms := DefaultFarms()

	require.Len(t, farms, 4)
	assert.Equal(t, []string{"1", "2", "3", "4"}, farms.IDs())
	for _, id := range farms.IDs() {
		f := farms[id]
		assert.Equal(t, id, f.ID)
		assert.Equal(t, "ฟาร์มที่ "+id, f.Name)
		assert.Equal(t, []string{"บ่อที่ 1", "บ่อที่ 2", "บ่อที่ 3", "บ่อที่ 4"}, f.Ponds)
	}
}

func TestAddFarm(t *testing.T) {
	farms := DefaultFarms()
	f, err := AddFarm(farms, "  ฟาร์มใหม่ ")
	require.NoError(t, err)
	assert.Equal(t, "5", f.ID)
	assert.Equal(t, "ฟาร์มใหม่", f.Name)
	assert.Equal(t, []string{"บ่อที่ 1"}, f.Ponds)

	_, err = AddFarm(farms, " ")
	assert.True(t, model.IsValidation(err))
}

func TestRenameFarm(t *testing.T) {
	farms := DefaultFarms()
	require.NoError(t, RenameFarm(farms, "2", " บางปะกง "))
	assert.Equal(t, "บางปะกง", farms["2"].Name)

	assert.True(t, model.IsNotFound(RenameFarm(farms, "9", "x")))
	assert.True(t, model.IsValidation(RenameFarm(farms, "2", "")))
	assert.Equal(t, "บางปะกง", farms["2"].Name)
}

func TestAddPond_FillsSmallestGap(t *testing.T) {
	farms := model.Farms{"1": {ID: "1", Name: "F", Ponds: []string{"บ่อที่ 1", "บ่อที่ 3", "บ่อพิเศษ"}}}

	name, err := AddPond(farms, "1")
	require.NoError(t, err)
	assert.Equal(t, "บ่อที่ 2", name)
	assert.Equal(t, []string{"บ่อพิเศษ", "บ่อที่ 1", "บ่อที่ 2", "บ่อที่ 3"}, farms["1"].Ponds)

	name, err = AddPond(farms, "1")
	require.NoError(t, err)
	assert.Equal(t, "บ่อที่ 4", name)

	_, err = AddPond(farms, "7")
	assert.True(t, model.IsNotFound(err))
}

func TestRenamePond(t *testing.T) {
	farms := DefaultFarms()
	require.NoError(t, RenamePond(farms, "1", 2, "บ่ออนุบาล"))
	assert.Equal(t, "บ่ออนุบาล", farms["1"].Ponds[2])

	assert.True(t, model.IsNotFound(RenamePond(farms, "1", 4, "x")))
	assert.True(t, model.IsValidation(RenamePond(farms, "1", 0, "  ")))
}

func TestRemovePond_LastPondGuard(t *testing.T) {
	farms := model.Farms{"1": {ID: "1", Name: "F", Ponds: []string{"บ่อที่ 1", "บ่อที่ 2"}}}

	name, err := RemovePond(farms, "1", 0)
	require.NoError(t, err)
	assert.Equal(t, "บ่อที่ 1", name)
	assert.Equal(t, []string{"บ่อที่ 2"}, farms["1"].Ponds)

	_, err = RemovePond(farms, "1", 0)
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, model.FieldPonds, ve.Field)
	assert.Equal(t, []string{"บ่อที่ 2"}, farms["1"].Ponds, "no state change")

	_, err = RemovePond(farms, "1", 3)
	assert.True(t, model.IsNotFound(err))
}

func TestBulkRename_AllOrNothing(t *testing.T) {
	farms := DefaultFarms()
	err := BulkRename(farms, map[string]Rename{
		"1": {Name: "A", Ponds: map[int]string{0: "a0"}},
		"2": {Ponds: map[int]string{9: "bad"}},
	})
	assert.True(t, model.IsNotFound(err))
	assert.Equal(t, "ฟาร์มที่ 1", farms["1"].Name)

	require.NoError(t, BulkRename(farms, map[string]Rename{
		"1": {Name: "A", Ponds: map[int]string{0: "a0", 1: " "}},
	}))
	assert.Equal(t, "A", farms["1"].Name)
	assert.Equal(t, []string{"a0", "บ่อที่ 2", "บ่อที่ 3", "บ่อที่ 4"}, farms["1"].Ponds)
}

func TestAddAsset(t *testing.T) {
	cat := model.Catalog{}
	a, err := AddAsset(cat, " 001 ", " อาหารกุ้ง ", 850)
	require.NoError(t, err)
	assert.Equal(t, model.Asset{Type: "001", Name: "อาหารกุ้ง", Price: 850}, a)

	_, err = AddAsset(cat, "001", "อาหารกุ้ง", 850)
	require.NoError(t, err, "duplicates are allowed")
	assert.Len(t, cat["001"], 2)

	_, err = AddAsset(cat, "", "x", 1)
	assert.True(t, model.IsValidation(err))
	_, err = AddAsset(cat, "001", "x", -1)
	assert.True(t, model.IsValidation(err))
	_, err = AddAsset(cat, "001", "x", 0)
	assert.NoError(t, err, "free items are allowed")
}

func TestRemoveAsset_DropsEmptyType(t *testing.T) {
	cat := model.Catalog{}
	_, _ = AddAsset(cat, "001", "a", 1)
	_, _ = AddAsset(cat, "001", "b", 2)
	_, _ = AddAsset(cat, "002", "c", 3)

	removed, err := RemoveAsset(cat, "001", 0)
	require.NoError(t, err)
	assert.Equal(t, "a", removed.Name)
	assert.Equal(t, []model.Asset{{Type: "001", Name: "b", Price: 2}}, cat["001"])

	_, err = RemoveAsset(cat, "002", 0)
	require.NoError(t, err)
	_, ok := cat["002"]
	assert.False(t, ok)

	_, err = RemoveAsset(cat, "002", 0)
	assert.True(t, model.IsNotFound(err))
	_, err = RemoveAsset(cat, "001", 5)
	assert.True(t, model.IsNotFound(err))
}
