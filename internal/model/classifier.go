// Package model loads the pre-trained classifier artifact and runs inference on feature vectors.
package model

// Classifier is a binary classifier over fixed-width feature vectors. Implementations are read-only.
type Classifier interface {
	// Predict returns the predicted class label.
	Predict(x []float64) (int, error)
	// PredictProba returns the probability of each class, aligned with Classes.
	PredictProba(x []float64) ([]float64, error)
	// NumFeatures is the width the model was trained on.
	NumFeatures() int
	// Classes returns the class labels in probability order.
	Classes() []int
}
