package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prediction Prometheus metrics.
var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "heartcheck",
			Name:      "predictions_total",
			Help:      "Total number of predictions by outcome",
		},
		[]string{"mode", "outcome"}, // outcome: positive / negative / error
	)

	InferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "heartcheck",
			Name:      "inference_duration_seconds",
			Help:      "Classifier inference duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"model"},
	)

	PredictionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "heartcheck",
			Name:      "prediction_errors_total",
			Help:      "Total prediction failures by stage",
		},
		[]string{"stage"}, // collect / preprocess / inference
	)

	PositiveProbability = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "heartcheck",
			Name:      "positive_probability",
			Help:      "Distribution of predicted positive-class probabilities",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 9),
		},
	)

	ModelInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "heartcheck",
			Name:      "model_info",
			Help:      "Loaded model artifact (value is always 1)",
		},
		[]string{"name", "preprocessing", "features"},
	)
)

var predMetricsRegistered bool

// RegisterPredictionMetrics registers Prometheus prediction metrics. Must be called once from main.
func RegisterPredictionMetrics() {
	if predMetricsRegistered {
		return
	}
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(InferenceDuration)
	prometheus.MustRegister(PredictionErrorsTotal)
	prometheus.MustRegister(PositiveProbability)
	prometheus.MustRegister(ModelInfo)
	predMetricsRegistered = true
}
