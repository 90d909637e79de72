package service

import (
	"context"
	"fmt"
	"io"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/interchange"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/history"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// Backup writes the whole state as a backup document and returns the
// suggested file name.
func (s *Service) Backup(w io.Writer) (string, error) {
	now := s.now()
	b := interchange.NewBackup(s.State(), now)
	if err := interchange.WriteBackup(w, b); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	s.logger.Info("backup written", "bills", len(*b.Bills), "assets", b.Assets.Count())
	return interchange.BackupFileName(now), nil
}

// Restore replaces the collections present in a backup document. It asks
// for confirmation before reading r.
func (s *Service) Restore(ctx context.Context, r io.Reader) ([]string, error) {
	if err := s.ask("restore", PromptRestore); err != nil {
		return nil, err
	}
	b, err := interchange.ReadBackup(r)
	if err != nil {
		s.logger.Warn("change rejected", "op", "restore", "error", err)
		return nil, err
	}

	var restored []string
	err = s.mutate(ctx, "restore", func(st *model.State) error {
		restored = b.Apply(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("backup restored", "collections", restored, "version", b.Version)
	return restored, nil
}

// ClearAll wipes the store after two confirmations and starts over with
// the defaults.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.ask("clear all", PromptClearAll, PromptClearAgain); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("clear failed", "error", err)
		return fmt.Errorf("clear store: %w", err)
	}
	s.state = &model.State{}
	if err := s.initDefaults(ctx); err != nil {
		return err
	}
	s.logger.Info("all data cleared")
	return nil
}

// Stats summarises the current state.
func (s *Service) Stats() history.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return history.Summarize(s.state)
}
