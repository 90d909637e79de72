package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/render"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/composer"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/history"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

const maxIDAttempts = 5

// NewDraft starts a bill draft for farmID on date.
func (s *Service) NewDraft(farmID, date string) (*composer.Draft, error) {
	farm, err := s.Farm(farmID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = s.now().Format(composer.DateLayout)
	}
	return composer.NewDraft(farm, date), nil
}

// CreateBill finalizes d and stores the bill as the most recent one. A
// rejected draft leaves the bill history untouched.
func (s *Service) CreateBill(ctx context.Context, d *composer.Draft) (model.Bill, error) {
	var created model.Bill
	err := s.mutate(ctx, "create bill", func(st *model.State) error {
		if _, ok := st.Farms[d.FarmID]; !ok {
			return &model.NotFoundError{Kind: "farm", ID: d.FarmID}
		}
		id, err := s.uniqueBillID(st)
		if err != nil {
			return err
		}
		bill, err := d.Finalize(id)
		if err != nil {
			return err
		}
		st.Bills = append([]model.Bill{*bill}, st.Bills...)
		created = *bill
		return nil
	})
	if err != nil {
		return model.Bill{}, err
	}
	s.logger.Info("bill created",
		"bill_id", created.ID,
		"farm_id", created.FarmID,
		"ponds", len(created.Ponds),
		"items", created.ItemCount(),
		"grand_total", created.GrandTotal,
	)
	return created, nil
}

func (s *Service) uniqueBillID(st *model.State) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate bill id: %w", err)
		}
		if st.FindBill(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate bill id: %d collisions", maxIDAttempts)
}

// GetBill returns the bill with id.
func (s *Service) GetBill(id string) (model.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := history.Find(s.state.Bills, id)
	if err != nil {
		return model.Bill{}, err
	}
	return b.Clone(), nil
}

// Bills returns the bills matching q.
func (s *Service) Bills(q history.Query) []model.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := history.Filter(s.state.Bills, q)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// DeleteBill removes a bill after confirmation.
func (s *Service) DeleteBill(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.FindBill(id) < 0 {
		err := &model.NotFoundError{Kind: "bill", ID: id}
		s.logger.Warn("change rejected", "op", "delete bill", "error", err)
		return err
	}
	if err := s.ask("delete bill", PromptDeleteBill); err != nil {
		return err
	}
	err := s.mutateLocked(ctx, "delete bill", func(st *model.State) error {
		i := st.FindBill(id)
		st.Bills = append(st.Bills[:i], st.Bills[i+1:]...)
		return nil
	})
	if err == nil {
		s.logger.Info("bill deleted", "bill_id", id)
	}
	return err
}

// RenderBill returns the printable HTML snapshot of a bill.
func (s *Service) RenderBill(id string) ([]byte, error) {
	b, err := s.GetBill(id)
	if err != nil {
		return nil, err
	}
	return render.BillHTML(b, s.now())
}

// PrintBill hands a bill to the configured printer and returns the written
// file's path.
func (s *Service) PrintBill(ctx context.Context, id string) (string, error) {
	if s.printer == nil {
		return "", fmt.Errorf("no printer configured")
	}
	b, err := s.GetBill(id)
	if err != nil {
		return "", err
	}
	start := time.Now()
	path, err := s.printer.Print(ctx, b, s.now())
	if err != nil {
		s.logger.Error("print failed", "bill_id", id, "error", err)
		return "", err
	}
	s.logger.Info("bill printed", "bill_id", id, "path", path, "duration", time.Since(start))
	return path, nil
}
