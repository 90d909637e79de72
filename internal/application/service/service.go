// Package service is the session controller: it owns the application state,
// applies every change through the domain packages and persists the result.
//
// A change is applied to a copy of the state. The copy replaces the live
// state only after the store has saved it, so a failed save leaves the
// session exactly as it was.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/interchange"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/printer"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/catalog"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/logging"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/storage"
)

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) bool

// Confirmation prompts.
const (
	PromptDeleteBill  = "ต้องการลบบิลนี้ใช่หรือไม่?"
	PromptDeleteAsset = "ต้องการลบสินค้านี้ใช่หรือไม่?"
	PromptResetFarms  = "⚠️ ต้องการรีเซ็ตฟาร์มและบ่อทั้งหมดเป็นค่าเริ่มต้นใช่หรือไม่?\n\nการกระทำนี้ไม่สามารถยกเลิกได้"
	PromptRestore     = "⚠️ การกู้คืนข้อมูลจะเขียนทับข้อมูลปัจจุบัน\nต้องการดำเนินการต่อใช่หรือไม่?"
	PromptClearAll    = "⚠️ ต้องการลบข้อมูลทั้งหมดใช่หรือไม่?\n\nการกระทำนี้ไม่สามารถยกเลิกได้\n\n(แนะนำให้สำรองข้อมูลก่อน)"
	PromptClearAgain  = "⚠️⚠️⚠️ ยืนยันอีกครั้ง: ลบข้อมูลทั้งหมด?"
)

// PromptRemovePond returns the prompt for removing pondName.
func PromptRemovePond(pondName string) string {
	return fmt.Sprintf("ต้องการลบ %s ใช่หรือไม่?", pondName)
}

// Options configures a Service. Store is required.
type Options struct {
	Store   storage.Store
	Logger  *slog.Logger
	Confirm ConfirmFunc
	Printer printer.Printer

	// SeedFile is read when the store holds no asset catalog yet.
	SeedFile string

	Now   func() time.Time
	NewID func() (string, error)
}

// Service serialises all access to the state.
type Service struct {
	store    storage.Store
	logger   *slog.Logger
	confirm  ConfirmFunc
	printer  printer.Printer
	seedFile string
	now      func() time.Time
	newID    func() (string, error)

	mu    sync.RWMutex
	state *model.State
}

// New loads the persisted state and fills in defaults for missing
// collections.
func New(ctx context.Context, opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("service: store is required")
	}
	s := &Service{
		store:    opts.Store,
		logger:   opts.Logger,
		confirm:  opts.Confirm,
		printer:  opts.Printer,
		seedFile: opts.SeedFile,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.confirm == nil {
		s.confirm = func(string) bool { return false }
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = newBillID
	}

	st, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	s.state = st
	if err := s.initDefaults(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func newBillID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// initDefaults fills absent collections and persists them.
func (s *Service) initDefaults(ctx context.Context) error {
	st := s.state.Clone()
	changed := false

	if st.Farms == nil {
		st.Farms = catalog.DefaultFarms()
		changed = true
		s.logger.Info("initialised default farms", "farms", len(st.Farms))
	}
	if st.Assets == nil {
		st.Assets = s.seedCatalog()
		changed = true
	}
	if st.Bills == nil {
		st.Bills = []model.Bill{}
		changed = true
	}
	if !changed {
		return nil
	}
	if err := s.store.Save(ctx, st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	s.state = st
	return nil
}

func (s *Service) seedCatalog() model.Catalog {
	cat := model.Catalog{}
	if s.seedFile == "" {
		return cat
	}
	f, err := os.Open(s.seedFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("asset seed file unreadable", "path", s.seedFile, "error", err)
		} else {
			s.logger.Debug("no asset seed file", "path", s.seedFile)
		}
		return cat
	}
	defer f.Close()

	assets, res, err := interchange.ReadAssets(f)
	if err != nil {
		s.logger.Warn("asset seed file unreadable", "path", s.seedFile, "error", err)
		return cat
	}
	for _, a := range assets {
		cat.Add(a)
	}
	s.logger.Info("seeded asset catalog", "path", s.seedFile, "imported", res.Imported, "skipped", res.Skipped)
	return cat
}

// mutate applies fn to a copy of the state and commits the copy once it is
// saved.
func (s *Service) mutate(ctx context.Context, op string, fn func(st *model.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateLocked(ctx, op, fn)
}

func (s *Service) mutateLocked(ctx context.Context, op string, fn func(st *model.State) error) error {
	next := s.state.Clone()
	if err := fn(next); err != nil {
		s.logger.Warn("change rejected", "op", op, "error", err)
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Error("save failed, state unchanged", "op", op, "error", err)
		return fmt.Errorf("save state: %w", err)
	}
	s.state = next
	return nil
}

// ask runs each prompt in order and stops at the first refusal.
func (s *Service) ask(op string, prompts ...string) error {
	for _, p := range prompts {
		if !s.confirm(p) {
			s.logger.Info("change declined", "op", op)
			return model.ErrNotConfirmed
		}
	}
	return nil
}

// State returns a copy of the whole state.
func (s *Service) State() *model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}
