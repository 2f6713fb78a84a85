package preprocess

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/kailas-cloud/heartcheck/internal/domain"
	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
)

// Mode selects how transform state is obtained.
type Mode string

const (
	// ModeFitted applies parameters persisted at training time.
	ModeFitted Mode = "fitted"
	// ModeRefit fits the transformer on the incoming batch and transforms it in the same call.
	ModeRefit Mode = "refit"
)

// Pipeline converts records into feature vectors.
type Pipeline interface {
	Transform(records []clinical.Record) ([][]float64, error)
	// Width is the output width, or 0 when it depends on the batch.
	Width() int
	Mode() Mode
}

// Fitted applies persisted training-time parameters and never refits.
type Fitted struct {
	params Params
}

// NewFitted validates params and creates a Fitted pipeline.
func NewFitted(params Params) (*Fitted, error) {
	params.ApplyDefaults()
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("preprocess params: %w", err)
	}
	return &Fitted{params: params}, nil
}

// Transform standardizes and encodes each record.
func (f *Fitted) Transform(records []clinical.Record) ([][]float64, error) {
	return transform(&f.params, records)
}

// Width returns the fixed output width.
func (f *Fitted) Width() int { return f.params.Width() }

// Mode returns ModeFitted.
func (f *Fitted) Mode() Mode { return ModeFitted }

// Params returns the fit state.
func (f *Fitted) Params() Params { return f.params }

// Refit reproduces per-request fit_transform: scaler and encoder state come from the batch itself.
// A single record standardizes to zeros and every categorical block has width one,
// so the output is not compatible with a model trained on the full category domain.
type Refit struct {
	numeric     []string
	categorical []string
	drop        string
}

// NewRefit creates a Refit pipeline over the given column groups.
func NewRefit(numeric, categorical []string) *Refit {
	return &Refit{numeric: numeric, categorical: categorical, drop: DropNone}
}

// Transform fits on records and transforms them.
func (r *Refit) Transform(records []clinical.Record) ([][]float64, error) {
	params, err := Fit(records, r.numeric, r.categorical, r.drop)
	if err != nil {
		return nil, err
	}
	return transform(&params, records)
}

// Width is unknown until the batch is seen.
func (r *Refit) Width() int { return 0 }

// Mode returns ModeRefit.
func (r *Refit) Mode() Mode { return ModeRefit }

// New builds the pipeline for mode. params is ignored for ModeRefit.
func New(mode Mode, params Params, schema *clinical.Schema) (Pipeline, error) {
	switch mode {
	case ModeFitted, "":
		return NewFitted(params)
	case ModeRefit:
		return NewRefit(schema.NumericColumns(), schema.CategoricalColumns()), nil
	default:
		return nil, fmt.Errorf("unknown preprocessing mode %q", mode)
	}
}

func transform(p *Params, records []clinical.Record) ([][]float64, error) {
	width := p.Width()
	means := make([]float64, len(p.Numeric))
	scales := make([]float64, len(p.Numeric))
	for i, n := range p.Numeric {
		means[i] = n.Mean
		scales[i] = n.Scale
	}

	out := make([][]float64, len(records))
	for i, rec := range records {
		row := make([]float64, len(p.Numeric), width)
		for j, n := range p.Numeric {
			v, ok := rec.Get(n.Column)
			if !ok {
				return nil, fmt.Errorf("record %d: missing column %q", i, n.Column)
			}
			row[j] = v
		}
		floats.Sub(row, means)
		floats.Div(row, scales)

		for _, c := range p.Categorical {
			v, ok := rec.Get(c.Column)
			if !ok {
				return nil, fmt.Errorf("record %d: missing column %q", i, c.Column)
			}
			block, err := oneHot(c, int(v), p.Drop, p.HandleUnknown)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			row = append(row, block...)
		}
		out[i] = row
	}
	return out, nil
}

func oneHot(c CategoricalParam, v int, drop, handleUnknown string) ([]float64, error) {
	block := make([]float64, len(c.Categories))
	found := false
	for k, cat := range c.Categories {
		if cat == v {
			block[k] = 1
			found = true
			break
		}
	}
	if !found && handleUnknown == UnknownError {
		return nil, domain.NewFieldError(c.Column, domain.ErrUnknownCategory, fmt.Sprintf("%d", v))
	}
	if drop == DropFirst {
		block = block[1:]
	}
	return block, nil
}
