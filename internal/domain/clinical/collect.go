package clinical

import (
	"errors"

	"github.com/kailas-cloud/heartcheck/internal/domain"
)

// Input holds unvalidated values keyed by column.
// Numeric fields read Numbers; choice fields read Choices (display label or code digits).
type Input struct {
	Numbers map[string]float64
	Choices map[string]string
}

// NewInput creates an empty Input.
func NewInput() Input {
	return Input{Numbers: map[string]float64{}, Choices: map[string]string{}}
}

// Collected is a complete set of in-domain values. Only Collect produces one.
type Collected struct {
	values map[string]float64
}

// Value returns the collected value for a column.
func (c Collected) Value(column string) (float64, bool) {
	v, ok := c.values[column]
	return v, ok
}

// Collect validates every field of the schema and maps choices to model codes.
// All field errors are reported together.
func (s *Schema) Collect(in Input) (Collected, error) {
	values := make(map[string]float64, len(s.fields))
	var errs []error

	for _, f := range s.fields {
		if f.Categorical() {
			raw, ok := in.Choices[f.Column()]
			if !ok {
				errs = append(errs, domain.NewFieldError(f.Column(), domain.ErrMissingField, ""))
				continue
			}
			code, err := f.ResolveChoice(raw)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			values[f.Column()] = float64(code)
			continue
		}

		v, ok := in.Numbers[f.Column()]
		if !ok {
			errs = append(errs, domain.NewFieldError(f.Column(), domain.ErrMissingField, ""))
			continue
		}
		if err := f.CheckNumber(v); err != nil {
			errs = append(errs, err)
			continue
		}
		values[f.Column()] = v
	}

	if len(errs) > 0 {
		return Collected{}, errors.Join(errs...)
	}
	return Collected{values: values}, nil
}
