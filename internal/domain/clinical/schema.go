package clinical

import "fmt"

// Training-schema column names.
const (
	ColAge      = "age"
	ColSex      = "sex"
	ColCP       = "cp"
	ColTrestbps = "trestbps"
	ColChol     = "chol"
	ColFBS      = "fbs"
	ColRestECG  = "restecg"
	ColThalach  = "thalach"
	ColExang    = "exang"
	ColOldpeak  = "oldpeak"
	ColSlope    = "slope"
	ColCA       = "ca"
	ColThal     = "thal"
)

// Schema is the ordered set of fields a record is assembled from.
type Schema struct {
	fields []FieldSpec
	index  map[string]int
}

// NewSchema creates a Schema. Field order is the column order of assembled records.
func NewSchema(fields ...FieldSpec) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema has no fields")
	}
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := index[f.Column()]; dup {
			return nil, fmt.Errorf("duplicate column %q", f.Column())
		}
		index[f.Column()] = i
	}
	fs := make([]FieldSpec, len(fields))
	copy(fs, fields)
	return &Schema{fields: fs, index: index}, nil
}

// Fields returns the field specs in column order.
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by column.
func (s *Schema) Field(column string) (FieldSpec, bool) {
	i, ok := s.index[column]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[i], true
}

// Columns returns the column names in order.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Column()
	}
	return out
}

// NumericColumns returns the standardized columns in schema order.
func (s *Schema) NumericColumns() []string {
	var out []string
	for _, f := range s.fields {
		if !f.Categorical() {
			out = append(out, f.Column())
		}
	}
	return out
}

// CategoricalColumns returns the one-hot encoded columns in schema order.
func (s *Schema) CategoricalColumns() []string {
	var out []string
	for _, f := range s.fields {
		if f.Categorical() {
			out = append(out, f.Column())
		}
	}
	return out
}

// HeartDisease returns the 13-field heart disease schema.
func HeartDisease() *Schema {
	s, err := NewSchema(
		mustNumeric(ColAge, "age", "Age", Integer, 1, 120, 1),
		mustChoice(ColSex, "sex", "Sex",
			Option{"Male", 1}, Option{"Female", 0}),
		mustChoice(ColCP, "chest_pain_type", "Chest Pain Type",
			Option{"Type 1", 1}, Option{"Type 2", 2}, Option{"Type 3", 3}, Option{"Type 4", 4}),
		mustNumeric(ColTrestbps, "resting_blood_pressure", "Resting Blood Pressure", Integer, 80, 200, 1),
		mustNumeric(ColChol, "cholesterol", "Serum Cholesterol", Integer, 100, 600, 1),
		mustChoice(ColFBS, "fasting_blood_sugar_flag", "Fasting Blood Sugar > 120 mg/dl",
			Option{"True", 1}, Option{"False", 0}),
		mustChoice(ColRestECG, "resting_ecg_result", "Resting Electrocardiographic Results",
			Option{"Normal", 0},
			Option{"Having ST-T wave abnormality", 1},
			Option{"Showing probable or definite left ventricular hypertrophy", 2}),
		mustNumeric(ColThalach, "max_heart_rate", "Maximum Heart Rate Achieved", Integer, 60, 220, 1),
		mustChoice(ColExang, "exercise_induced_angina_flag", "Exercise Induced Angina",
			Option{"Yes", 1}, Option{"No", 0}),
		mustNumeric(ColOldpeak, "st_depression", "ST Depression Induced by Exercise", Decimal, 0, 10, 0.1),
		mustChoice(ColSlope, "st_slope", "Slope of the Peak Exercise ST Segment",
			Option{"Upsloping", 0}, Option{"Flat", 1}, Option{"Downsloping", 2}),
		mustNumeric(ColCA, "vessel_count", "Number of Major Vessels Colored by Fluoroscopy", Integer, 0, 3, 1),
		mustChoice(ColThal, "thalassemia_type", "Thalassemia",
			Option{"Normal", 0}, Option{"Fixed Defect", 1}, Option{"Reversible Defect", 2}),
	)
	if err != nil {
		panic(err)
	}
	return s
}

func mustNumeric(column, name, label string, kind Kind, minVal, maxVal, step float64) FieldSpec {
	f, err := NewNumeric(column, name, label, kind, minVal, maxVal, step)
	if err != nil {
		panic(err)
	}
	return f
}

func mustChoice(column, name, label string, options ...Option) FieldSpec {
	f, err := NewChoice(column, name, label, options...)
	if err != nil {
		panic(err)
	}
	return f
}
