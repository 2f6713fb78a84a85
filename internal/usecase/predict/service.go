package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/heartcheck/internal/domain"
	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
	"github.com/kailas-cloud/heartcheck/internal/domain/prediction"
	logpkg "github.com/kailas-cloud/heartcheck/internal/logger"
	"github.com/kailas-cloud/heartcheck/internal/metrics"
	"github.com/kailas-cloud/heartcheck/internal/model"
	"github.com/kailas-cloud/heartcheck/internal/preprocess"
)

// Service runs collect -> assemble -> preprocess -> inference for one submission.
// The classifier and pipeline are shared read-only across requests.
type Service struct {
	schema     *clinical.Schema
	pipeline   preprocess.Pipeline
	classifier model.Classifier
	usage      UsageRecorder
	logger     *zap.Logger
}

// New creates a Service.
func New(
	schema *clinical.Schema,
	pipeline preprocess.Pipeline,
	classifier model.Classifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		schema:     schema,
		pipeline:   pipeline,
		classifier: classifier,
		logger:     logger,
	}
}

// WithUsage attaches a usage recorder.
func (s *Service) WithUsage(u UsageRecorder) *Service {
	s.usage = u
	return s
}

// Schema returns the field schema the form is built from.
func (s *Service) Schema() *clinical.Schema { return s.schema }

// Mode returns the preprocessing mode.
func (s *Service) Mode() preprocess.Mode { return s.pipeline.Mode() }

// NumFeatures returns the width the classifier expects.
func (s *Service) NumFeatures() int { return s.classifier.NumFeatures() }

// Predict validates the input and returns the predicted class with its positive probability.
// Failures are returned as-is; there is no retry or fallback.
func (s *Service) Predict(ctx context.Context, in clinical.Input) (prediction.Result, error) {
	log := logpkg.FromContextOr(ctx, s.logger)
	mode := string(s.pipeline.Mode())
	start := time.Now()

	collected, err := s.schema.Collect(in)
	if err != nil {
		s.fail(mode, "collect")
		return prediction.Result{}, fmt.Errorf("collect: %w", err)
	}
	record := s.schema.Assemble(collected)

	features, err := s.pipeline.Transform([]clinical.Record{record})
	if err != nil {
		s.fail(mode, "preprocess")
		return prediction.Result{}, fmt.Errorf("preprocess: %w", err)
	}
	x := features[0]

	class, err := s.classifier.Predict(x)
	if err != nil {
		s.fail(mode, "inference")
		return prediction.Result{}, fmt.Errorf("predict: %w", err)
	}
	proba, err := s.classifier.PredictProba(x)
	if err != nil {
		s.fail(mode, "inference")
		return prediction.Result{}, fmt.Errorf("predict proba: %w", err)
	}

	result := prediction.New(uuid.NewString(), class, proba[positiveIndex(s.classifier.Classes())])

	outcome := "negative"
	if result.Positive() {
		outcome = "positive"
	}
	metrics.PredictionsTotal.WithLabelValues(mode, outcome).Inc()
	metrics.PositiveProbability.Observe(result.Probability())

	if s.usage != nil {
		s.usage.Record(ctx)
	}

	log.Debug("Prediction completed",
		zap.String("prediction_id", result.ID()),
		zap.String("mode", mode),
		zap.Int("features", len(x)),
		zap.Int("class", result.Class()),
		zap.String("probability", result.ProbabilityText()),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (s *Service) fail(mode, stage string) {
	metrics.PredictionsTotal.WithLabelValues(mode, "error").Inc()
	metrics.PredictionErrorsTotal.WithLabelValues(stage).Inc()
}

// positiveIndex is the probability column of the positive class (the larger label).
func positiveIndex(classes []int) int {
	if len(classes) == 2 && classes[0] > classes[1] {
		return 0
	}
	return 1
}

// HealthCheck verifies the classifier answers a probe of its own width and,
// for fitted preprocessing, that the pipeline emits that width.
func (s *Service) HealthCheck(_ context.Context) error {
	want := s.classifier.NumFeatures()
	if w := s.pipeline.Width(); w > 0 && w != want {
		return domain.NewShapeMismatch(want, w)
	}
	if _, err := s.classifier.PredictProba(make([]float64, want)); err != nil {
		return fmt.Errorf("model probe: %w", err)
	}
	return nil
}
