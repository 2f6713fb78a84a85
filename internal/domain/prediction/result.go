// Package prediction holds the ephemeral outcome of one inference.
package prediction

import "strconv"

// Display labels for the two classes.
const (
	LabelPositive = "Heart Disease"
	LabelNegative = "No Heart Disease"
)

// Result is a predicted class with the positive-class probability. Never persisted.
type Result struct {
	id          string
	class       int
	probability float64
}

// New creates a Result. probability is the positive-class probability.
func New(id string, class int, probability float64) Result {
	return Result{id: id, class: class, probability: probability}
}

// ID returns the prediction identifier used for log correlation.
func (r Result) ID() string { return r.id }

// Class returns the predicted class (0 or 1).
func (r Result) Class() int { return r.class }

// Positive reports whether the positive class was predicted.
func (r Result) Positive() bool { return r.class != 0 }

// Probability returns the positive-class probability in [0, 1].
func (r Result) Probability() float64 { return r.probability }

// Label maps the class to its display string.
func (r Result) Label() string {
	if r.Positive() {
		return LabelPositive
	}
	return LabelNegative
}

// ProbabilityText formats the probability with two decimals.
func (r Result) ProbabilityText() string {
	return strconv.FormatFloat(r.probability, 'f', 2, 64)
}
