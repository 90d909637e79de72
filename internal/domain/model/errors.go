package model

import (
	"errors"
	"fmt"
)

// Field names carried by ValidationError.
const (
	FieldQuantity     = "quantity"
	FieldItem         = "item"
	FieldPrice        = "price"
	FieldDescription  = "description"
	FieldParticipants = "participants"
	FieldItems        = "items"
	FieldDate         = "date"
	FieldName         = "name"
	FieldType         = "type"
	FieldPonds        = "ponds"
	FieldRows         = "rows"
	FieldFarm         = "farm"
)

// ErrNotConfirmed is returned when a destructive operation was declined.
var ErrNotConfirmed = errors.New("operation not confirmed")

// ValidationError is a user-correctable problem with input. Pond is empty
// when the problem is not tied to a pond.
type ValidationError struct {
	Pond    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Pond != "" {
		return fmt.Sprintf("%s: %s", e.Pond, e.Message)
	}
	return e.Message
}

// NewValidationError builds a ValidationError.
func NewValidationError(pond, field, message string) *ValidationError {
	return &ValidationError{Pond: pond, Field: field, Message: message}
}

// NotFoundError reports a reference to a farm, pond, asset, bill or row that
// does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// FormatError reports an unparsable document.
type FormatError struct {
	Source string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Source, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
