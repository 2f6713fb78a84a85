// Package preprocess turns assembled clinical records into model feature vectors:
// standardization of numeric columns followed by one-hot blocks for categorical columns.
package preprocess

import (
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
)

// Drop policies for one-hot encoding.
const (
	DropNone  = "none"
	DropFirst = "first"
)

// Unknown-category policies.
const (
	UnknownError  = "error"
	UnknownIgnore = "ignore"
)

// NumericParam is the standardization state of one column.
type NumericParam struct {
	Column string  `yaml:"column"`
	Mean   float64 `yaml:"mean"`
	Scale  float64 `yaml:"scale"`
}

// CategoricalParam is the ordered category list of one column.
type CategoricalParam struct {
	Column     string `yaml:"column"`
	Categories []int  `yaml:"categories"`
}

// Params is the complete fit state of the column transformer.
type Params struct {
	Numeric       []NumericParam     `yaml:"numeric"`
	Categorical   []CategoricalParam `yaml:"categorical"`
	Drop          string             `yaml:"drop"`
	HandleUnknown string             `yaml:"handle_unknown"`
}

// ApplyDefaults fills empty policies.
func (p *Params) ApplyDefaults() {
	if p.Drop == "" {
		p.Drop = DropNone
	}
	if p.HandleUnknown == "" {
		p.HandleUnknown = UnknownError
	}
}

// Validate checks the parameters for internal consistency.
func (p *Params) Validate() error {
	switch p.Drop {
	case DropNone, DropFirst:
	default:
		return fmt.Errorf("drop must be %q or %q, got %q", DropNone, DropFirst, p.Drop)
	}
	switch p.HandleUnknown {
	case UnknownError, UnknownIgnore:
	default:
		return fmt.Errorf("handle_unknown must be %q or %q, got %q", UnknownError, UnknownIgnore, p.HandleUnknown)
	}
	if len(p.Numeric)+len(p.Categorical) == 0 {
		return fmt.Errorf("no columns")
	}

	seen := make(map[string]struct{})
	for _, n := range p.Numeric {
		if n.Column == "" {
			return fmt.Errorf("numeric column name is required")
		}
		if _, dup := seen[n.Column]; dup {
			return fmt.Errorf("duplicate column %q", n.Column)
		}
		seen[n.Column] = struct{}{}
		if n.Scale == 0 {
			return fmt.Errorf("column %q: scale must be non-zero", n.Column)
		}
	}
	for _, c := range p.Categorical {
		if c.Column == "" {
			return fmt.Errorf("categorical column name is required")
		}
		if _, dup := seen[c.Column]; dup {
			return fmt.Errorf("duplicate column %q", c.Column)
		}
		seen[c.Column] = struct{}{}
		if len(c.Categories) == 0 {
			return fmt.Errorf("column %q: categories are required", c.Column)
		}
		sorted := slices.Clone(c.Categories)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != len(c.Categories) {
			return fmt.Errorf("column %q: duplicate categories", c.Column)
		}
	}
	return nil
}

// Width returns the number of features a transform produces.
func (p *Params) Width() int {
	w := len(p.Numeric)
	for _, c := range p.Categorical {
		w += len(c.Categories)
		if p.Drop == DropFirst {
			w--
		}
	}
	return w
}

// FeatureNames returns the output column names, e.g. "age", "sex_1".
func (p *Params) FeatureNames() []string {
	names := make([]string, 0, p.Width())
	for _, n := range p.Numeric {
		names = append(names, n.Column)
	}
	for _, c := range p.Categorical {
		for i, cat := range c.Categories {
			if p.Drop == DropFirst && i == 0 {
				continue
			}
			names = append(names, fmt.Sprintf("%s_%d", c.Column, cat))
		}
	}
	return names
}

// Fit computes standardization and category state from a batch of records.
// Variance is the population variance; zero variance yields scale 1.
// Categories are the sorted distinct values present in the batch.
func Fit(records []clinical.Record, numeric, categorical []string, drop string) (Params, error) {
	if len(records) == 0 {
		return Params{}, fmt.Errorf("fit: no records")
	}

	p := Params{Drop: drop, HandleUnknown: UnknownError}
	p.ApplyDefaults()

	col := make([]float64, len(records))
	for _, name := range numeric {
		if err := column(records, name, col); err != nil {
			return Params{}, fmt.Errorf("fit: %w", err)
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		p.Numeric = append(p.Numeric, NumericParam{Column: name, Mean: mean, Scale: std})
	}

	for _, name := range categorical {
		if err := column(records, name, col); err != nil {
			return Params{}, fmt.Errorf("fit: %w", err)
		}
		set := make(map[int]struct{})
		for _, v := range col {
			set[int(v)] = struct{}{}
		}
		cats := make([]int, 0, len(set))
		for v := range set {
			cats = append(cats, v)
		}
		sort.Ints(cats)
		p.Categorical = append(p.Categorical, CategoricalParam{Column: name, Categories: cats})
	}

	return p, nil
}

func column(records []clinical.Record, name string, dst []float64) error {
	for i, r := range records {
		v, ok := r.Get(name)
		if !ok {
			return fmt.Errorf("record %d: missing column %q", i, name)
		}
		dst[i] = v
	}
	return nil
}
