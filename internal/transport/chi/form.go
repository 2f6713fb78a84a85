package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/heartcheck/internal/domain"
	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
)

// inputFromForm binds posted form values into an Input.
// Absent fields are left out so the collector reports them as missing.
func inputFromForm(schema *clinical.Schema, values url.Values) (clinical.Input, error) {
	in := clinical.NewInput()
	var errs []error

	for _, f := range schema.Fields() {
		col := f.Column()
		if strings.TrimSpace(values.Get(col)) == "" {
			continue
		}

		if f.Categorical() {
			var raw string
			if err := runtime.BindQueryParameter("form", true, false, col, values, &raw); err != nil {
				errs = append(errs, domain.NewFieldError(col, domain.ErrMalformedValue, err.Error()))
				continue
			}
			in.Choices[col] = raw
			continue
		}

		var v float64
		if err := runtime.BindQueryParameter("form", true, false, col, values, &v); err != nil {
			errs = append(errs, domain.NewFieldError(col, domain.ErrMalformedValue, strconv.Quote(values.Get(col))))
			continue
		}
		in.Numbers[col] = v
	}

	return in, errors.Join(errs...)
}

// inputFromJSON maps a JSON object of column -> value into an Input.
// Numeric fields take numbers or numeric strings; choice fields take a label or an integer code.
func inputFromJSON(schema *clinical.Schema, body map[string]json.RawMessage) (clinical.Input, error) {
	in := clinical.NewInput()
	var errs []error

	for key := range body {
		if _, ok := schema.Field(key); !ok {
			errs = append(errs, domain.NewFieldError(key, domain.ErrMalformedValue, "unknown field"))
		}
	}

	for _, f := range schema.Fields() {
		col := f.Column()
		raw, ok := body[col]
		if !ok || string(raw) == "null" {
			continue
		}

		if f.Categorical() {
			s, err := choiceString(raw)
			if err != nil {
				errs = append(errs, domain.NewFieldError(col, domain.ErrMalformedValue, err.Error()))
				continue
			}
			in.Choices[col] = s
			continue
		}

		v, err := numberValue(raw)
		if err != nil {
			errs = append(errs, domain.NewFieldError(col, domain.ErrMalformedValue, err.Error()))
			continue
		}
		in.Numbers[col] = v
	}

	return in, errors.Join(errs...)
}

func choiceString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("expected a label or an integer code, got %s", raw)
	}
	code, err := n.Int64()
	if err != nil {
		return "", fmt.Errorf("expected an integer code, got %s", n)
	}
	return strconv.FormatInt(code, 10), nil
}

func numberValue(raw json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("expected a number, got %s", raw)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", s)
	}
	return v, nil
}
