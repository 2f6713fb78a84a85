package predict

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/heartcheck/internal/metrics"
	"github.com/kailas-cloud/heartcheck/internal/model"
)

// InstrumentedClassifier wraps a Classifier with latency metrics and error logging.
type InstrumentedClassifier struct {
	inner  model.Classifier
	name   string
	logger *zap.Logger
}

var _ model.Classifier = (*InstrumentedClassifier)(nil)

// NewInstrumentedClassifier wraps a classifier. name labels the inference histogram.
func NewInstrumentedClassifier(inner model.Classifier, name string, logger *zap.Logger) *InstrumentedClassifier {
	return &InstrumentedClassifier{inner: inner, name: name, logger: logger}
}

// Predict delegates to the inner classifier and records its latency.
func (c *InstrumentedClassifier) Predict(x []float64) (int, error) {
	start := time.Now()
	class, err := c.inner.Predict(x)
	c.observe("predict", start, len(x), err)
	return class, err
}

// PredictProba delegates to the inner classifier and records its latency.
func (c *InstrumentedClassifier) PredictProba(x []float64) ([]float64, error) {
	start := time.Now()
	proba, err := c.inner.PredictProba(x)
	c.observe("predict_proba", start, len(x), err)
	return proba, err
}

// NumFeatures returns the inner classifier's width.
func (c *InstrumentedClassifier) NumFeatures() int { return c.inner.NumFeatures() }

// Classes returns the inner classifier's class labels.
func (c *InstrumentedClassifier) Classes() []int { return c.inner.Classes() }

func (c *InstrumentedClassifier) observe(op string, start time.Time, width int, err error) {
	duration := time.Since(start)
	metrics.InferenceDuration.WithLabelValues(c.name).Observe(duration.Seconds())

	if err != nil {
		c.logger.Error("Inference failed",
			zap.String("model", c.name),
			zap.String("op", op),
			zap.Int("features", width),
			zap.Int("expected_features", c.inner.NumFeatures()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}
}
