package service

import (
	"context"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/catalog"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// Farms returns copies of all farms in display order.
func (s *Service) Farms() []model.Farm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Farm, 0, len(s.state.Farms))
	for _, f := range s.state.Farms.Sorted() {
		c := *f
		c.Ponds = append([]string(nil), f.Ponds...)
		out = append(out, c)
	}
	return out
}

// Farm returns a copy of the farm with id.
func (s *Service) Farm(id string) (model.Farm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, err := catalog.FindFarm(s.state.Farms, id)
	if err != nil {
		return model.Farm{}, err
	}
	c := *f
	c.Ponds = append([]string(nil), f.Ponds...)
	return c, nil
}

func (s *Service) AddFarm(ctx context.Context, name string) (model.Farm, error) {
	var added model.Farm
	err := s.mutate(ctx, "add farm", func(st *model.State) error {
		f, err := catalog.AddFarm(st.Farms, name)
		if err != nil {
			return err
		}
		added = *f
		return nil
	})
	if err != nil {
		return model.Farm{}, err
	}
	s.logger.Info("farm added", "farm_id", added.ID, "name", added.Name)
	return added, nil
}

func (s *Service) RenameFarm(ctx context.Context, id, name string) error {
	err := s.mutate(ctx, "rename farm", func(st *model.State) error {
		return catalog.RenameFarm(st.Farms, id, name)
	})
	if err == nil {
		s.logger.Info("farm renamed", "farm_id", id)
	}
	return err
}

// AddPond appends the next default-named pond and returns its name.
func (s *Service) AddPond(ctx context.Context, farmID string) (string, error) {
	var name string
	err := s.mutate(ctx, "add pond", func(st *model.State) (err error) {
		name, err = catalog.AddPond(st.Farms, farmID)
		return err
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("pond added", "farm_id", farmID, "pond", name)
	return name, nil
}

func (s *Service) RenamePond(ctx context.Context, farmID string, index int, name string) error {
	err := s.mutate(ctx, "rename pond", func(st *model.State) error {
		return catalog.RenamePond(st.Farms, farmID, index, name)
	})
	if err == nil {
		s.logger.Info("pond renamed", "farm_id", farmID, "index", index)
	}
	return err
}

// RemovePond deletes a pond after confirmation. The last pond of a farm
// cannot be removed.
func (s *Service) RemovePond(ctx context.Context, farmID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := catalog.CanRemovePond(s.state.Farms, farmID, index); err != nil {
		s.logger.Warn("change rejected", "op", "remove pond", "error", err)
		return err
	}
	pond := s.state.Farms[farmID].Ponds[index]
	if err := s.ask("remove pond", PromptRemovePond(pond)); err != nil {
		return err
	}
	err := s.mutateLocked(ctx, "remove pond", func(st *model.State) error {
		_, err := catalog.RemovePond(st.Farms, farmID, index)
		return err
	})
	if err == nil {
		s.logger.Info("pond removed", "farm_id", farmID, "pond", pond)
	}
	return err
}

// ResetFarms restores the default farm layout after confirmation.
func (s *Service) ResetFarms(ctx context.Context) error {
	if err := s.ask("reset farms", PromptResetFarms); err != nil {
		return err
	}
	err := s.mutate(ctx, "reset farms", func(st *model.State) error {
		st.Farms = catalog.DefaultFarms()
		return nil
	})
	if err == nil {
		s.logger.Info("farms reset to defaults")
	}
	return err
}

// BulkRename applies several farm and pond renames in one save.
func (s *Service) BulkRename(ctx context.Context, renames map[string]catalog.Rename) error {
	err := s.mutate(ctx, "bulk rename", func(st *model.State) error {
		return catalog.BulkRename(st.Farms, renames)
	})
	if err == nil {
		s.logger.Info("farms renamed", "farms", len(renames))
	}
	return err
}
