package heartcheck

import (
	"time"

	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
)

// Input is one patient's form values. Choice fields take the display label
// (for example "Male" or "Fixed Defect") or the model code written as digits.
type Input struct {
	Age                  float64
	Sex                  string
	ChestPainType        string
	RestingBloodPressure float64
	Cholesterol          float64
	FastingBloodSugar    string
	RestingECG           string
	MaxHeartRate         float64
	ExerciseAngina       string
	STDepression         float64
	STSlope              string
	MajorVessels         float64
	Thalassemia          string
}

func (in Input) toDomain() clinical.Input {
	out := clinical.NewInput()
	out.Numbers[clinical.ColAge] = in.Age
	out.Numbers[clinical.ColTrestbps] = in.RestingBloodPressure
	out.Numbers[clinical.ColChol] = in.Cholesterol
	out.Numbers[clinical.ColThalach] = in.MaxHeartRate
	out.Numbers[clinical.ColOldpeak] = in.STDepression
	out.Numbers[clinical.ColCA] = in.MajorVessels

	choices := map[string]string{
		clinical.ColSex:     in.Sex,
		clinical.ColCP:      in.ChestPainType,
		clinical.ColFBS:     in.FastingBloodSugar,
		clinical.ColRestECG: in.RestingECG,
		clinical.ColExang:   in.ExerciseAngina,
		clinical.ColSlope:   in.STSlope,
		clinical.ColThal:    in.Thalassemia,
	}
	for col, v := range choices {
		// Empty stays absent so validation reports the field as missing.
		if v != "" {
			out.Choices[col] = v
		}
	}
	return out
}

// Prediction is a classifier result.
type Prediction struct {
	ID              string
	Class           int // 1 = heart disease
	Label           string
	Probability     float64 // probability of heart disease
	ProbabilityText string  // two decimals
}

// FieldKind is the input type of a field.
type FieldKind string

// Field kinds.
const (
	KindInteger FieldKind = "integer"
	KindDecimal FieldKind = "decimal"
	KindChoice  FieldKind = "choice"
)

// Field describes one input in training column order.
type Field struct {
	Column  string
	Label   string
	Kind    FieldKind
	Min     float64
	Max     float64
	Step    float64
	Options []Choice
}

// Choice is one option of a categorical field.
type Choice struct {
	Label string
	Code  int
}

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
	PeriodTotal UsagePeriod = "total"
)

// UsageReport counts successful predictions made through this client.
type UsageReport struct {
	Period      UsagePeriod
	PeriodStart time.Time // zero for PeriodTotal
	PeriodEnd   time.Time // zero for PeriodTotal
	Predictions int64
	Persisted   bool
}

// HealthStatus represents the aggregated client health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
