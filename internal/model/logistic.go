package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kailas-cloud/heartcheck/internal/domain"
)

// DefaultThreshold is the positive-class probability above which Predict returns the positive class.
const DefaultThreshold = 0.5

// Logistic is a binary logistic regression: p = sigmoid(w·x + b).
type Logistic struct {
	coef      []float64
	intercept float64
	classes   [2]int
	threshold float64
}

// NewLogistic creates a logistic regression classifier.
// classes[0] is the negative class, classes[1] the positive one.
func NewLogistic(coef []float64, intercept float64, classes [2]int, threshold float64) (*Logistic, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("%w: no coefficients", domain.ErrInvalidArtifact)
	}
	if classes[0] == classes[1] {
		return nil, fmt.Errorf("%w: classes must differ", domain.ErrInvalidArtifact)
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("%w: threshold %v not in (0, 1)", domain.ErrInvalidArtifact, threshold)
	}
	for i, c := range coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: coefficient %d is not finite", domain.ErrInvalidArtifact, i)
		}
	}
	w := make([]float64, len(coef))
	copy(w, coef)
	return &Logistic{coef: w, intercept: intercept, classes: classes, threshold: threshold}, nil
}

// NumFeatures returns the number of coefficients.
func (m *Logistic) NumFeatures() int { return len(m.coef) }

// Classes returns the negative and positive class labels.
func (m *Logistic) Classes() []int { return []int{m.classes[0], m.classes[1]} }

// DecisionFunction returns w·x + b.
func (m *Logistic) DecisionFunction(x []float64) (float64, error) {
	if len(x) != len(m.coef) {
		return 0, domain.NewShapeMismatch(len(m.coef), len(x))
	}
	return floats.Dot(m.coef, x) + m.intercept, nil
}

// PredictProba returns [P(negative), P(positive)].
func (m *Logistic) PredictProba(x []float64) ([]float64, error) {
	z, err := m.DecisionFunction(x)
	if err != nil {
		return nil, err
	}
	p := sigmoid(z)
	return []float64{1 - p, p}, nil
}

// Predict returns the positive class when its probability exceeds the threshold.
func (m *Logistic) Predict(x []float64) (int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if proba[1] > m.threshold {
		return m.classes[1], nil
	}
	return m.classes[0], nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
