package clinical

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/heartcheck/internal/domain"
)

// Kind is the input widget type of a field.
type Kind string

// Field kind constants.
const (
	Integer Kind = "integer"
	Decimal Kind = "decimal"
	Choice  Kind = "choice"
)

// Option is one entry of a choice field: a display label and the code the model was trained on.
type Option struct {
	Label string
	Code  int
}

// FieldSpec is an immutable description of one clinical attribute.
type FieldSpec struct {
	column  string
	name    string
	label   string
	kind    Kind
	min     float64
	max     float64
	step    float64
	options []Option
}

// NewNumeric creates an integer or decimal field bounded by [min, max].
func NewNumeric(column, name, label string, kind Kind, minVal, maxVal, step float64) (FieldSpec, error) {
	if column == "" {
		return FieldSpec{}, fmt.Errorf("field column is required")
	}
	if kind != Integer && kind != Decimal {
		return FieldSpec{}, fmt.Errorf("invalid numeric kind %q for %q", kind, column)
	}
	if minVal > maxVal {
		return FieldSpec{}, fmt.Errorf("field %q: min %v greater than max %v", column, minVal, maxVal)
	}
	if step <= 0 {
		return FieldSpec{}, fmt.Errorf("field %q: step must be positive", column)
	}
	return FieldSpec{
		column: column, name: name, label: label, kind: kind,
		min: minVal, max: maxVal, step: step,
	}, nil
}

// NewChoice creates a choice field. Labels and codes must both be unique.
func NewChoice(column, name, label string, options ...Option) (FieldSpec, error) {
	if column == "" {
		return FieldSpec{}, fmt.Errorf("field column is required")
	}
	if len(options) == 0 {
		return FieldSpec{}, fmt.Errorf("choice field %q has no options", column)
	}
	labels := make(map[string]struct{}, len(options))
	codes := make(map[int]struct{}, len(options))
	for _, o := range options {
		if o.Label == "" {
			return FieldSpec{}, fmt.Errorf("choice field %q has an empty label", column)
		}
		if _, dup := labels[o.Label]; dup {
			return FieldSpec{}, fmt.Errorf("choice field %q: duplicate label %q", column, o.Label)
		}
		if _, dup := codes[o.Code]; dup {
			return FieldSpec{}, fmt.Errorf("choice field %q: duplicate code %d", column, o.Code)
		}
		labels[o.Label] = struct{}{}
		codes[o.Code] = struct{}{}
	}
	opts := make([]Option, len(options))
	copy(opts, options)

	minCode, maxCode := opts[0].Code, opts[0].Code
	for _, o := range opts[1:] {
		minCode = min(minCode, o.Code)
		maxCode = max(maxCode, o.Code)
	}
	return FieldSpec{
		column: column, name: name, label: label, kind: Choice,
		min: float64(minCode), max: float64(maxCode), step: 1,
		options: opts,
	}, nil
}

// Column returns the training-schema column name.
func (f FieldSpec) Column() string { return f.column }

// Name returns the human-readable attribute name.
func (f FieldSpec) Name() string { return f.name }

// Label returns the form label.
func (f FieldSpec) Label() string { return f.label }

// Kind returns the widget kind.
func (f FieldSpec) Kind() Kind { return f.kind }

// Min returns the lower bound (smallest code for choice fields).
func (f FieldSpec) Min() float64 { return f.min }

// Max returns the upper bound (largest code for choice fields).
func (f FieldSpec) Max() float64 { return f.max }

// Step returns the widget step.
func (f FieldSpec) Step() float64 { return f.step }

// Categorical reports whether the field is one-hot encoded downstream.
func (f FieldSpec) Categorical() bool { return f.kind == Choice }

// Options returns a copy of the choice table in display order.
func (f FieldSpec) Options() []Option {
	out := make([]Option, len(f.options))
	copy(out, f.options)
	return out
}

// Code maps a display label to its model code.
func (f FieldSpec) Code(label string) (int, bool) {
	for _, o := range f.options {
		if o.Label == label {
			return o.Code, true
		}
	}
	return 0, false
}

// OptionLabel maps a model code back to its display label.
func (f FieldSpec) OptionLabel(code int) (string, bool) {
	for _, o := range f.options {
		if o.Code == code {
			return o.Label, true
		}
	}
	return "", false
}

// CheckNumber validates a numeric value against the field bounds.
func (f FieldSpec) CheckNumber(v float64) error {
	if f.kind == Choice {
		if _, ok := f.OptionLabel(int(v)); !ok || v != math.Trunc(v) {
			return domain.NewFieldError(f.column, domain.ErrUnknownChoice, strconv.FormatFloat(v, 'f', -1, 64))
		}
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.NewFieldError(f.column, domain.ErrFieldOutOfRange, "not a finite number")
	}
	if v < f.min || v > f.max {
		return domain.NewFieldError(f.column, domain.ErrFieldOutOfRange,
			fmt.Sprintf("%v not in [%v, %v]", v, f.min, f.max))
	}
	if f.kind == Integer && v != math.Trunc(v) {
		return domain.NewFieldError(f.column, domain.ErrFieldOutOfRange, fmt.Sprintf("%v is not a whole number", v))
	}
	return nil
}

// ResolveChoice maps a display label, or a code written as digits, to the model code.
func (f FieldSpec) ResolveChoice(raw string) (int, error) {
	if f.kind != Choice {
		return 0, fmt.Errorf("field %q is not a choice field", f.column)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.NewFieldError(f.column, domain.ErrMissingField, "")
	}
	if code, ok := f.Code(raw); ok {
		return code, nil
	}
	if code, err := strconv.Atoi(raw); err == nil {
		if _, ok := f.OptionLabel(code); ok {
			return code, nil
		}
	}
	return 0, domain.NewFieldError(f.column, domain.ErrUnknownChoice, strconv.Quote(raw))
}
