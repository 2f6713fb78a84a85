package preprocess

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr string
	}{
		{"bad drop", func(p *Params) { p.Drop = "last" }, "drop must be"},
		{"bad unknown", func(p *Params) { p.HandleUnknown = "skip" }, "handle_unknown must be"},
		{"zero scale", func(p *Params) { p.Numeric[0].Scale = 0 }, "scale must be non-zero"},
		{"duplicate column", func(p *Params) { p.Categorical[0].Column = "age" }, "duplicate column"},
		{"duplicate category", func(p *Params) { p.Categorical[0].Categories = []int{1, 1} }, "duplicate categories"},
		{"empty categories", func(p *Params) { p.Categorical[0].Categories = nil }, "categories are required"},
		{"no columns", func(p *Params) { p.Numeric, p.Categorical = nil, nil }, "no columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			p.ApplyDefaults()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestParams_ApplyDefaults(t *testing.T) {
	p := Params{}
	p.ApplyDefaults()
	if p.Drop != DropNone || p.HandleUnknown != UnknownError {
		t.Errorf("defaults = %q/%q", p.Drop, p.HandleUnknown)
	}

	p = Params{Drop: DropFirst, HandleUnknown: UnknownIgnore}
	p.ApplyDefaults()
	if p.Drop != DropFirst || p.HandleUnknown != UnknownIgnore {
		t.Errorf("overrode explicit values: %q/%q", p.Drop, p.HandleUnknown)
	}
}

func TestParams_FeatureNames(t *testing.T) {
	p := testParams()
	p.ApplyDefaults()
	names := p.FeatureNames()
	if len(names) != p.Width() {
		t.Fatalf("len(names) = %d, want %d", len(names), p.Width())
	}
	if names[0] != "age" || names[6] != "sex_0" || names[24] != "thal_2" {
		t.Errorf("unexpected names: %v", names)
	}

	p.Drop = DropFirst
	names = p.FeatureNames()
	if names[6] != "sex_1" {
		t.Errorf("drop first: names[6] = %q, want sex_1", names[6])
	}
}

func TestFit_ZeroVarianceScaleIsOne(t *testing.T) {
	records := []clinical.Record{
		clinical.NewRecord([]string{"age"}, []float64{50}),
		clinical.NewRecord([]string{"age"}, []float64{50}),
	}
	p, err := Fit(records, []string{"age"}, nil, DropNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Numeric[0].Mean != 50 || p.Numeric[0].Scale != 1 {
		t.Errorf("fit = %+v, want mean 50 scale 1", p.Numeric[0])
	}
}

func TestFit_SortedCategories(t *testing.T) {
	records := []clinical.Record{
		clinical.NewRecord([]string{"cp"}, []float64{3}),
		clinical.NewRecord([]string{"cp"}, []float64{1}),
		clinical.NewRecord([]string{"cp"}, []float64{3}),
	}
	p, err := Fit(records, nil, []string{"cp"}, DropNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := p.Categorical[0].Categories
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("categories = %v, want [1 3]", got)
	}
}

func TestFit_Errors(t *testing.T) {
	if _, err := Fit(nil, []string{"age"}, nil, DropNone); err == nil {
		t.Error("expected error for empty batch")
	}
	records := []clinical.Record{clinical.NewRecord([]string{"age"}, []float64{1})}
	if _, err := Fit(records, []string{"chol"}, nil, DropNone); err == nil {
		t.Error("expected error for missing column")
	}
}
