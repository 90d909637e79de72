package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/printer"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/catalog"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/composer"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/history"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/storage"
)

var fixedNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

// confirmer answers prompts from a script and records what was asked.
type confirmer struct {
	answers []bool
	asked   []string
}

func (c *confirmer) confirm(prompt string) bool {
	c.asked = append(c.asked, prompt)
	if len(c.answers) == 0 {
		return false
	}
	a := c.answers[0]
	c.answers = c.answers[1:]
	return a
}

func seqBillIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("bill-%d", n), nil
	}
}

func newTestService(t *testing.T, store *storage.MemoryStore, c *confirmer) *Service {
	t.Helper()
	opts := Options{
		Store: store,
		Now:   func() time.Time { return fixedNow },
		NewID: seqBillIDs(),
	}
	if c != nil {
		opts.Confirm = c.confirm
	}
	svc, err := New(context.Background(), opts)
	require.NoError(t, err)
	return svc
}

func simpleDraft(t *testing.T, svc *Service) *composer.Draft {
	t.Helper()
	d, err := svc.NewDraft("1", "2024-01-15")
	require.NoError(t, err)
	require.NoError(t, d.SetRow(0, 0, composer.RowInput{Type: "001", Name: "อาหาร", Quantity: 2, Price: 10}))
	return d
}

func TestNew_InitialisesDefaults(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, nil)

	farms := svc.Farms()
	require.Len(t, farms, 4)
	assert.Equal(t, "ฟาร์มที่ 1", farms[0].Name)
	assert.Equal(t, []string{"บ่อที่ 1", "บ่อที่ 2", "บ่อที่ 3", "บ่อที่ 4"}, farms[0].Ponds)
	assert.Empty(t, svc.Catalog())

	assert.Equal(t, 1, store.SaveCalls, "defaults are persisted")
	_, ok := store.Raw(storage.KeyBills)
	assert.True(t, ok)
}

func TestNew_SeedsCatalogFromFile(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "Asset.txt")
	require.NoError(t, os.WriteFile(seed, []byte("001,อาหาร,850\n002,ปูน,120\nbroken\n"), 0o644))

	svc, err := New(context.Background(), Options{Store: storage.NewMemoryStore(), SeedFile: seed})
	require.NoError(t, err)
	assert.Equal(t, 2, svc.Catalog().Count())
}

func TestNew_SeedWithNonFinitePrices(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "Asset.txt")
	require.NoError(t, os.WriteFile(seed, []byte("001,อาหาร,850\n002,bad,NaN\n003,inf,Inf\n"), 0o644))

	store := storage.NewMemoryStore()
	svc, err := New(context.Background(), Options{Store: store, SeedFile: seed})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Catalog().Count())
	assert.Equal(t, 1, store.SaveCalls)
}

func TestNew_KeepsStoredState(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Put(storage.KeyFarms, []byte(`{"7":{"name":"Seven","ponds":["p"]}}`))
	store.Put(storage.KeyAssets, []byte(`{}`))
	store.Put(storage.KeyBills, []byte(`[]`))

	svc := newTestService(t, store, nil)
	require.Len(t, svc.Farms(), 1)
	assert.Equal(t, 0, store.SaveCalls)
}

func TestNew_LoadError(t *testing.T) {
	store := storage.NewMemoryStore()
	store.LoadErr = errors.New("disk on fire")
	_, err := New(context.Background(), Options{Store: store})
	assert.ErrorContains(t, err, "disk on fire")
}

func TestCreateBill(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, nil)

	bill, err := svc.CreateBill(context.Background(), simpleDraft(t, svc))
	require.NoError(t, err)
	assert.Equal(t, "bill-1", bill.ID)
	assert.Equal(t, 20.0, bill.GrandTotal)

	second, err := svc.CreateBill(context.Background(), simpleDraft(t, svc))
	require.NoError(t, err)

	bills := svc.Bills(history.Query{})
	require.Len(t, bills, 2)
	assert.Equal(t, second.ID, bills[0].ID, "newest bill first")
	assert.Len(t, store.LastSaved.Bills, 2)
}

func TestCreateBill_RejectedDraftLeavesHistory(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, nil)
	_, err := svc.CreateBill(context.Background(), simpleDraft(t, svc))
	require.NoError(t, err)
	saves := store.SaveCalls

	d := simpleDraft(t, svc)
	_, err = d.AddRow(1)
	require.NoError(t, err)
	require.NoError(t, d.SetRow(1, 1, composer.RowInput{Type: "001", Name: "อาหาร", Quantity: 1, Price: 0}))

	_, err = svc.CreateBill(context.Background(), d)
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "บ่อที่ 2", ve.Pond)
	assert.Equal(t, model.FieldPrice, ve.Field)

	assert.Len(t, svc.Bills(history.Query{}), 1)
	assert.Equal(t, saves, store.SaveCalls, "nothing saved")
}

func TestCreateBill_EmptyDraft(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore(), nil)
	d, err := svc.NewDraft("1", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", d.Date)

	_, err = svc.CreateBill(context.Background(), d)
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, model.FieldItems, ve.Field)
}

func TestCreateBill_IDCollisionRetries(t *testing.T) {
	ids := []string{"same", "same", "other"}
	svc, err := New(context.Background(), Options{
		Store: storage.NewMemoryStore(),
		NewID: func() (string, error) {
			id := ids[0]
			ids = ids[1:]
			return id, nil
		},
	})
	require.NoError(t, err)

	first, err := svc.CreateBill(context.Background(), simpleDraft(t, svc))
	require.NoError(t, err)
	second, err := svc.CreateBill(context.Background(), simpleDraft(t, svc))
	require.NoError(t, err)
	assert.Equal(t, "same", first.ID)
	assert.Equal(t, "other", second.ID)
}

func TestSaveFailureRollsBack(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, nil)

	store.SaveErr = errors.New("read-only filesystem")
	_, err := svc.AddFarm(context.Background(), "ฟาร์มใหม่")
	require.ErrorContains(t, err, "save state")
	assert.Len(t, svc.Farms(), 4)

	_, err = svc.CreateBill(context.Background(), simpleDraft(t, svc))
	require.Error(t, err)
	assert.Empty(t, svc.Bills(history.Query{}))

	store.SaveErr = nil
	f, err := svc.AddFarm(context.Background(), "ฟาร์มใหม่")
	require.NoError(t, err)
	assert.Equal(t, "5", f.ID)
}

func TestFarmOperations(t *testing.T) {
	ctx := context.Background()
	c := &confirmer{answers: []bool{true}}
	svc := newTestService(t, storage.NewMemoryStore(), c)

	require.NoError(t, svc.RenameFarm(ctx, "1", "  ฟาร์มหลัก "))
	name, err := svc.AddPond(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "บ่อที่ 5", name)
	require.NoError(t, svc.RenamePond(ctx, "1", 0, "บ่อเลี้ยง 1"))

	require.NoError(t, svc.RemovePond(ctx, "1", 4))
	assert.Equal(t, []string{PromptRemovePond("บ่อที่ 5")}, c.asked)

	f, err := svc.Farm("1")
	require.NoError(t, err)
	assert.Equal(t, "ฟาร์มหลัก", f.Name)
	assert.Equal(t, []string{"บ่อเลี้ยง 1", "บ่อที่ 2", "บ่อที่ 3", "บ่อที่ 4"}, f.Ponds)

	err = svc.RenameFarm(ctx, "99", "x")
	assert.True(t, model.IsNotFound(err))
}

func TestRemovePond_LastPondGuard(t *testing.T) {
	ctx := context.Background()
	c := &confirmer{answers: []bool{true, true, true}}
	store := storage.NewMemoryStore()
	store.Put(storage.KeyFarms, []byte(`{"1":{"name":"F","ponds":["only"]}}`))
	store.Put(storage.KeyAssets, []byte(`{}`))
	store.Put(storage.KeyBills, []byte(`[]`))
	svc := newTestService(t, store, c)

	err := svc.RemovePond(ctx, "1", 0)
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, model.FieldPonds, ve.Field)
	assert.Empty(t, c.asked, "guard runs before the prompt")
}

func TestDeclinedConfirmation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, &confirmer{})
	_, err := svc.AddAsset(ctx, "001", "อาหาร", 850)
	require.NoError(t, err)
	bill, err := svc.CreateBill(ctx, simpleDraft(t, svc))
	require.NoError(t, err)
	saves := store.SaveCalls

	assert.ErrorIs(t, svc.RemovePond(ctx, "1", 0), model.ErrNotConfirmed)
	assert.ErrorIs(t, svc.ResetFarms(ctx), model.ErrNotConfirmed)
	assert.ErrorIs(t, svc.DeleteBill(ctx, bill.ID), model.ErrNotConfirmed)
	_, err = svc.RemoveAsset(ctx, "001", 0)
	assert.ErrorIs(t, err, model.ErrNotConfirmed)
	_, err = svc.Restore(ctx, strings.NewReader(`{}`))
	assert.ErrorIs(t, err, model.ErrNotConfirmed)
	assert.ErrorIs(t, svc.ClearAll(ctx), model.ErrNotConfirmed)

	assert.Equal(t, saves, store.SaveCalls)
	assert.Equal(t, 0, store.ClearCalls)
	assert.Len(t, svc.Bills(history.Query{}), 1)
}

func TestDeleteBill(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStore(), &confirmer{answers: []bool{true}})
	bill, err := svc.CreateBill(ctx, simpleDraft(t, svc))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBill(ctx, bill.ID))
	_, err = svc.GetBill(bill.ID)
	assert.True(t, model.IsNotFound(err))

	assert.True(t, model.IsNotFound(svc.DeleteBill(ctx, "missing")))
}

func TestAssets(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStore(), &confirmer{answers: []bool{true}})

	_, err := svc.AddAsset(ctx, "001", "อาหาร", 850)
	require.NoError(t, err)
	_, err = svc.AddAsset(ctx, " ", "x", 1)
	assert.True(t, model.IsValidation(err))

	res, err := svc.ImportAssets(ctx, strings.NewReader("ประเภท,ชื่อสินค้า,ราคา\n002,ปูน,120\n003,bad\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 2, svc.Catalog().Count())

	var out bytes.Buffer
	require.NoError(t, svc.ExportAssets(&out, true))
	assert.Equal(t, "ประเภท,ชื่อสินค้า,ราคา\n001,อาหาร,850\n002,ปูน,120\n", out.String())

	removed, err := svc.RemoveAsset(ctx, "002", 0)
	require.NoError(t, err)
	assert.Equal(t, "ปูน", removed.Name)
	_, ok := svc.Catalog()["002"]
	assert.False(t, ok)

	_, err = svc.RemoveAsset(ctx, "002", 0)
	assert.True(t, model.IsNotFound(err))
}

func TestImportAssets_NonFinitePricesSkipped(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, nil)

	res, err := svc.ImportAssets(context.Background(), strings.NewReader("001,feed,100\n002,bad,NaN\n003,inf,Inf\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, []int{2, 3}, res.SkippedLines)
	assert.Equal(t, 1, store.LastSaved.Assets.Count())
}

func TestCreateBill_NonFinitePriceIsValidationError(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, nil)
	saves := store.SaveCalls

	d, err := svc.NewDraft("1", "2024-01-15")
	require.NoError(t, err)
	d.Ponds[1].Rows[0] = composer.Row{Kind: composer.RowRegular, Type: "001", Name: "x", Quantity: 1, Price: math.NaN()}

	_, err = svc.CreateBill(context.Background(), d)
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "บ่อที่ 2", ve.Pond)
	assert.Equal(t, model.FieldPrice, ve.Field)
	assert.Equal(t, saves, store.SaveCalls)
	assert.Empty(t, svc.Bills(history.Query{}))
}

func TestBackupRestore(t *testing.T) {
	ctx := context.Background()
	src := newTestService(t, storage.NewMemoryStore(), nil)
	_, err := src.AddAsset(ctx, "001", "อาหาร", 850)
	require.NoError(t, err)
	_, err = src.CreateBill(ctx, simpleDraft(t, src))
	require.NoError(t, err)

	var buf bytes.Buffer
	name, err := src.Backup(&buf)
	require.NoError(t, err)
	assert.Equal(t, "farm-bill-backup-2024-01-15.json", name)

	c := &confirmer{answers: []bool{true}}
	dst := newTestService(t, storage.NewMemoryStore(), c)
	restored, err := dst.Restore(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"farms", "assets", "bills"}, restored)
	assert.Equal(t, src.State(), dst.State())
	assert.Equal(t, []string{PromptRestore}, c.asked)
}

func TestRestore_FormatError(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, &confirmer{answers: []bool{true}})
	before := svc.State()

	_, err := svc.Restore(ctx, strings.NewReader("{not json"))
	var fe *model.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, before, svc.State())
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c := &confirmer{answers: []bool{true, true}}
	svc := newTestService(t, store, c)
	_, err := svc.AddFarm(ctx, "extra")
	require.NoError(t, err)
	_, err = svc.CreateBill(ctx, simpleDraft(t, svc))
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(ctx))
	assert.Equal(t, []string{PromptClearAll, PromptClearAgain}, c.asked)
	assert.Equal(t, 1, store.ClearCalls)
	assert.Len(t, svc.Farms(), 4)
	assert.Empty(t, svc.Bills(history.Query{}))
}

func TestClearAll_SecondPromptDeclined(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, &confirmer{answers: []bool{true, false}})
	assert.ErrorIs(t, svc.ClearAll(context.Background()), model.ErrNotConfirmed)
	assert.Equal(t, 0, store.ClearCalls)
}

func TestBulkRename(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStore(), nil)

	err := svc.BulkRename(ctx, map[string]catalog.Rename{
		"1": {Name: "A"},
		"9": {Name: "missing"},
	})
	assert.True(t, model.IsNotFound(err))
	f, _ := svc.Farm("1")
	assert.Equal(t, "ฟาร์มที่ 1", f.Name, "nothing applied")

	require.NoError(t, svc.BulkRename(ctx, map[string]catalog.Rename{
		"1": {Name: "A", Ponds: map[int]string{1: "B2"}},
		"2": {Name: "B"},
	}))
	f, _ = svc.Farm("1")
	assert.Equal(t, "A", f.Name)
	assert.Equal(t, "B2", f.Ponds[1])
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStore(), nil)
	_, err := svc.CreateBill(ctx, simpleDraft(t, svc))
	require.NoError(t, err)

	st := svc.Stats()
	assert.Equal(t, 4, st.Farms)
	assert.Equal(t, 16, st.Ponds)
	assert.Equal(t, 1, st.Bills)
	assert.Equal(t, "20", st.TotalBilled.String())
}

func TestRenderAndPrint(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	svc, err := New(ctx, Options{
		Store:   storage.NewMemoryStore(),
		Printer: &printer.HTMLPrinter{Dir: dir},
		Now:     func() time.Time { return fixedNow },
		NewID:   seqBillIDs(),
	})
	require.NoError(t, err)
	bill, err := svc.CreateBill(ctx, simpleDraft(t, svc))
	require.NoError(t, err)

	html, err := svc.RenderBill(bill.ID)
	require.NoError(t, err)
	assert.Contains(t, string(html), "เวลา: 09:30 น.")

	path, err := svc.PrintBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "บิลฟาร์มที่ 1_วันที่_15-01-2024_เวลา_09-30.html"), path)

	_, err = svc.PrintBill(ctx, "missing")
	assert.True(t, model.IsNotFound(err))
}
