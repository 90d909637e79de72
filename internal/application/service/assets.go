package service

import (
	"context"
	"io"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/interchange"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/catalog"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// Catalog returns a copy of the asset catalog.
func (s *Service) Catalog() model.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Assets.Clone()
}

func (s *Service) AddAsset(ctx context.Context, typ, name string, price float64) (model.Asset, error) {
	var added model.Asset
	err := s.mutate(ctx, "add asset", func(st *model.State) (err error) {
		added, err = catalog.AddAsset(st.Assets, typ, name, price)
		return err
	})
	if err != nil {
		return model.Asset{}, err
	}
	s.logger.Info("asset added", "type", added.Type, "name", added.Name)
	return added, nil
}

// RemoveAsset deletes the asset at index within typ after confirmation.
func (s *Service) RemoveAsset(ctx context.Context, typ string, index int) (model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := catalog.FindAsset(s.state.Assets, typ, index); err != nil {
		s.logger.Warn("change rejected", "op", "remove asset", "error", err)
		return model.Asset{}, err
	}
	if err := s.ask("remove asset", PromptDeleteAsset); err != nil {
		return model.Asset{}, err
	}
	var removed model.Asset
	err := s.mutateLocked(ctx, "remove asset", func(st *model.State) (err error) {
		removed, err = catalog.RemoveAsset(st.Assets, typ, index)
		return err
	})
	if err != nil {
		return model.Asset{}, err
	}
	s.logger.Info("asset removed", "type", removed.Type, "name", removed.Name)
	return removed, nil
}

// ImportAssets appends every valid line of r to the catalog. Invalid lines
// are counted in the result, not reported as errors.
func (s *Service) ImportAssets(ctx context.Context, r io.Reader) (interchange.ImportResult, error) {
	assets, res, err := interchange.ReadAssets(r)
	if err != nil {
		return res, err
	}
	if len(assets) > 0 {
		err = s.mutate(ctx, "import assets", func(st *model.State) error {
			for _, a := range assets {
				st.Assets.Add(a)
			}
			return nil
		})
		if err != nil {
			return interchange.ImportResult{}, err
		}
	}
	s.logger.Info("assets imported", "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}

// ExportAssets writes the catalog in the interchange format.
func (s *Service) ExportAssets(w io.Writer, withHeader bool) error {
	return interchange.WriteAssets(w, s.Catalog(), withHeader)
}
