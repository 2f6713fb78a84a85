package chi

import "time"

// ErrorCode is a machine-readable error identifier in JSON responses.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeShapeMismatch    ErrorCode = "shape_mismatch"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldIssue `json:"fields,omitempty"`
}

// FieldIssue describes one rejected field.
type FieldIssue struct {
	Column string `json:"column"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// OptionDTO is one choice of a categorical field.
type OptionDTO struct {
	Label string `json:"label"`
	Code  int    `json:"code"`
}

// FieldDTO describes one input field.
type FieldDTO struct {
	Column  string      `json:"column"`
	Label   string      `json:"label"`
	Kind    string      `json:"kind"`
	Min     *float64    `json:"min,omitempty"`
	Max     *float64    `json:"max,omitempty"`
	Step    *float64    `json:"step,omitempty"`
	Options []OptionDTO `json:"options,omitempty"`
}

// SchemaResponse lists the input fields in training column order.
type SchemaResponse struct {
	Fields        []FieldDTO `json:"fields"`
	Preprocessing string     `json:"preprocessing"`
	Features      int        `json:"features"`
}

// PredictResponse is the JSON prediction result.
type PredictResponse struct {
	ID              string  `json:"id"`
	Class           int     `json:"class"`
	Label           string  `json:"label"`
	Probability     float64 `json:"probability"`
	ProbabilityText string  `json:"probability_text"`
	Preprocessing   string  `json:"preprocessing"`
}

// UsageResponse reports prediction counts for a period.
type UsageResponse struct {
	Period        string     `json:"period"`
	PeriodStartAt *time.Time `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time `json:"period_end_at,omitempty"`
	Predictions   int64      `json:"predictions"`
	Persisted     bool       `json:"persisted"`
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
