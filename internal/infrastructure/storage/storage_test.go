package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/config"
)

func sampleState() *model.State {
	return &model.State{
		Farms: model.Farms{
			"1": {ID: "1", Name: "ฟาร์มที่ 1", Ponds: []string{"บ่อที่ 1", "บ่อที่ 2"}},
		},
		Assets: model.Catalog{
			"001": {{Type: "001", Name: "อาหารกุ้ง", Price: 850}},
		},
		Bills: []model.Bill{{
			ID: "b1", FarmID: "1", FarmName: "ฟาร์มที่ 1", Date: "2024-01-15",
			Ponds:      []model.BillPond{{Name: "บ่อที่ 1", Items: []model.BillItem{{Type: "001", Name: "อาหารกุ้ง", Qty: 2, Price: 850, Total: 1700}}, Total: 1700}},
			GrandTotal: 1700,
		}},
	}
}

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_EmptyLoad(t *testing.T) {
	store := newTestSQLite(t)

	st, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st.Farms)
	assert.Nil(t, st.Assets)
	assert.Nil(t, st.Bills)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	want := sampleState()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	// Overwrite replaces rather than appends
	want.Bills = nil
	require.NoError(t, store.Save(ctx, want))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got.Bills)
	assert.Empty(t, got.Bills)

	updated, err := store.UpdatedAt(ctx, KeyBills)
	require.NoError(t, err)
	assert.False(t, updated.IsZero())
}

func TestSQLiteStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	require.NoError(t, store.Save(ctx, sampleState()))

	require.NoError(t, store.Clear(ctx))
	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.Farms)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "farm.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleState()))
	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ฟาร์มที่ 1", st.Farms["1"].Name)
	assert.Equal(t, "001", st.Assets["001"][0].Type)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	require.NoError(t, m.Save(ctx, sampleState()))
	assert.Equal(t, 1, m.SaveCalls)
	require.NotNil(t, m.LastSaved)

	st, err := m.Load(ctx)
	require.NoError(t, err)
	st.Farms["1"].Name = "changed"

	again, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ฟาร์มที่ 1", again.Farms["1"].Name, "loads are independent copies")

	require.NoError(t, m.Clear(ctx))
	_, ok := m.Raw(KeyFarms)
	assert.False(t, ok)
}

func TestMemoryStore_LegacyAndBrokenDocuments(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	m.Put(KeyBills, []byte(`[{"id":"1","farmId":"1","farmName":"F","date":"2024-01-01","ponds":[],"total":99}]`))
	st, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99.0, st.Bills[0].GrandTotal)
	assert.Nil(t, st.Farms)

	m.Put(KeyFarms, []byte(`{not json`))
	_, err = m.Load(ctx)
	var fe *model.FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestOpen(t *testing.T) {
	s, err := Open(config.StorageConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(config.StorageConfig{Driver: config.DriverSQLite, DatabasePath: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(config.StorageConfig{Driver: "mongo"})
	assert.Error(t, err)
}
