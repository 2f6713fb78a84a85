package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactNotFound signals that the model artifact file is missing.
	ErrArtifactNotFound = errors.New("model artifact not found")
	// ErrInvalidArtifact signals a malformed or inconsistent model artifact.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrShapeMismatch signals a feature vector width the model was not trained on.
	ErrShapeMismatch = errors.New("feature shape mismatch")
	// ErrMissingField signals an absent form field.
	ErrMissingField = errors.New("missing field")
	// ErrFieldOutOfRange signals a numeric value outside its declared bounds.
	ErrFieldOutOfRange = errors.New("field out of range")
	// ErrMalformedValue signals a value that cannot be parsed as the field's type.
	ErrMalformedValue = errors.New("malformed field value")
	// ErrUnknownChoice signals a choice label or code that is not in the field's table.
	ErrUnknownChoice = errors.New("unknown choice")
	// ErrUnknownCategory signals a category the fitted encoder has never seen.
	ErrUnknownCategory = errors.New("unknown category")
)

// FieldError ties a validation failure to the column that caused it.
type FieldError struct {
	Column string
	Err    error
	Detail string
}

func (e *FieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Column, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s: %s", e.Column, e.Err.Error(), e.Detail)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewFieldError creates a FieldError for the given column.
func NewFieldError(column string, err error, detail string) error {
	return &FieldError{Column: column, Err: err, Detail: detail}
}

// ShapeMismatchError reports the expected and actual feature widths.
type ShapeMismatchError struct {
	Expected int
	Got      int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: model expects %d features, got %d", ErrShapeMismatch.Error(), e.Expected, e.Got)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// NewShapeMismatch creates a shape mismatch error.
func NewShapeMismatch(expected, got int) error {
	return &ShapeMismatchError{Expected: expected, Got: got}
}
