package storage

import (
	"context"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// Document keys. Each holds one JSON document.
const (
	KeyFarms  = "farms"
	KeyAssets = "assets"
	KeyBills  = "bills"
)

// Keys lists the documents in save order.
var Keys = []string{KeyFarms, KeyAssets, KeyBills}

// Store persists the application state as three JSON documents.
// This interface allows swapping implementations (SQLite, in-memory)
// and makes testing the session controller straightforward.
type Store interface {
	// Load returns the stored state. A document that was never saved is
	// returned as a nil collection so callers can seed defaults.
	Load(ctx context.Context) (*model.State, error)

	// Save writes all three documents. Either all are written or none.
	Save(ctx context.Context, st *model.State) error

	// Clear removes every document.
	Clear(ctx context.Context) error

	Close() error
}
