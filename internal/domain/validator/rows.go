// Package validator decides whether a draft row is filled in and, if so,
// whether it is complete enough to be billed.
//
// A row that nobody touched is skipped. A row that was started must be
// finished: the first missing field is reported and nothing else is checked.
package validator

import (
	"math"
	"strings"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// RegularRow is the part of a regular entry row that validation reads.
type RegularRow struct {
	Type     string
	Name     string
	Quantity int
	Price    float64
}

// SplitRow is the part of a split entry row that validation reads.
type SplitRow struct {
	Description  string
	Quantity     int
	Participants int
	TotalPrice   float64
}

// Result contains the outcome of checking one row.
type Result struct {
	// Engaged is true if the row carries any user input
	Engaged bool

	// Valid is true if the row is engaged and complete
	Valid bool

	// Field names the first missing field (empty if valid or not engaged)
	Field string

	// Reason explains why validation failed (empty if valid)
	Reason string
}

// Err returns the failure as a ValidationError for pond, or nil when the row
// is valid or was skipped.
func (r Result) Err(pond string) error {
	if !r.Engaged || r.Valid {
		return nil
	}
	return model.NewValidationError(pond, r.Field, r.Reason)
}

// CheckRegular validates a regular row. The row is engaged when it has a
// type, a name, or a positive price; an engaged row needs, in order, a
// positive quantity, a type or name, and a positive price.
func CheckRegular(row RegularRow) Result {
	hasType := strings.TrimSpace(row.Type) != ""
	hasName := strings.TrimSpace(row.Name) != ""

	hasPrice := positive(row.Price)

	if !hasType && !hasName && !hasPrice {
		return Result{}
	}

	switch {
	case row.Quantity <= 0:
		return failed(model.FieldQuantity, "quantity is required")
	case !hasType && !hasName:
		return failed(model.FieldItem, "select an asset or enter a description")
	case !hasPrice:
		return failed(model.FieldPrice, "price is required")
	}
	return Result{Engaged: true, Valid: true}
}

// CheckSplit validates a split row. The row is engaged when its quantity is
// positive; an engaged row needs, in order, a description, at least two
// participant ponds, and a positive price.
func CheckSplit(row SplitRow) Result {
	if row.Quantity <= 0 {
		return Result{}
	}

	switch {
	case strings.TrimSpace(row.Description) == "":
		return failed(model.FieldDescription, "description is required for a split entry")
	case row.Participants < 2:
		return failed(model.FieldParticipants, "select at least 2 ponds to split")
	case !positive(row.TotalPrice):
		return failed(model.FieldPrice, "price is required for a split entry")
	}
	return Result{Engaged: true, Valid: true}
}

// positive reports whether p is a usable price. NaN and infinities count as
// missing.
func positive(p float64) bool {
	return p > 0 && !math.IsInf(p, 0)
}

func failed(field, reason string) Result {
	return Result{Engaged: true, Field: field, Reason: reason}
}
