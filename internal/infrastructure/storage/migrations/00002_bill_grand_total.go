package migrations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/pressly/goose/v3"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

func init() {
	goose.AddMigrationContext(upBillGrandTotal, downBillGrandTotal)
}

// upBillGrandTotal rewrites a stored bills document that still uses the
// "total" key for the bill total so it carries "grandTotal" instead.
func upBillGrandTotal(ctx context.Context, tx *sql.Tx) error {
	var raw string
	err := tx.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = 'bills'`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	var bills []model.Bill
	if err := json.Unmarshal([]byte(raw), &bills); err != nil {
		// Leave unreadable documents for the application to report.
		return nil
	}
	data, err := json.Marshal(bills)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE documents SET value = ? WHERE key = 'bills'`, string(data))
	return err
}

func downBillGrandTotal(context.Context, *sql.Tx) error {
	return nil
}
