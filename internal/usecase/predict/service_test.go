package predict

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/heartcheck/internal/domain"
	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
	"github.com/kailas-cloud/heartcheck/internal/metrics"
	"github.com/kailas-cloud/heartcheck/internal/model"
	"github.com/kailas-cloud/heartcheck/internal/preprocess"
)

func TestMain(m *testing.M) {
	metrics.RegisterPredictionMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockClassifier struct {
	width     int
	class     int
	proba     []float64
	err       error
	lastInput []float64
}

func (m *mockClassifier) Predict(x []float64) (int, error) {
	m.lastInput = x
	if m.err != nil {
		return 0, m.err
	}
	if len(x) != m.width {
		return 0, domain.NewShapeMismatch(m.width, len(x))
	}
	return m.class, nil
}

func (m *mockClassifier) PredictProba(x []float64) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.proba, nil
}

func (m *mockClassifier) NumFeatures() int { return m.width }
func (m *mockClassifier) Classes() []int   { return []int{0, 1} }

type mockUsage struct {
	calls int
}

func (m *mockUsage) Record(_ context.Context) { m.calls++ }

// --- Helpers ---

func loadBundle(t *testing.T) *model.Bundle {
	t.Helper()
	b, err := model.LoadBundle(filepath.Join("..", "..", "..", "artifacts", "heart_model.yaml"))
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return b
}

func scenarioInput() clinical.Input {
	in := clinical.NewInput()
	in.Numbers["age"] = 63
	in.Choices["sex"] = "Male"
	in.Choices["cp"] = "Type 1"
	in.Numbers["trestbps"] = 145
	in.Numbers["chol"] = 233
	in.Choices["fbs"] = "True"
	in.Choices["restecg"] = "Normal"
	in.Numbers["thalach"] = 150
	in.Choices["exang"] = "No"
	in.Numbers["oldpeak"] = 2.3
	in.Choices["slope"] = "Downsloping"
	in.Numbers["ca"] = 0
	in.Choices["thal"] = "Fixed Defect"
	return in
}

func newFittedService(t *testing.T, c model.Classifier) *Service {
	t.Helper()
	b := loadBundle(t)
	p, err := preprocess.NewFitted(b.Preprocessing)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	return New(clinical.HeartDisease(), p, c, zap.NewNop())
}

// --- Tests ---

func TestPredict_EndToEnd(t *testing.T) {
	b := loadBundle(t)
	clf, err := b.Classifier()
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}
	usage := &mockUsage{}
	svc := newFittedService(t, NewInstrumentedClassifier(clf, b.Name, zap.NewNop())).WithUsage(usage)

	res, err := svc.Predict(context.Background(), scenarioInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Class() != 0 && res.Class() != 1 {
		t.Errorf("class = %d, want 0 or 1", res.Class())
	}
	if res.Probability() < 0 || res.Probability() > 1 {
		t.Errorf("probability = %v out of [0, 1]", res.Probability())
	}
	if res.Label() != "Heart Disease" && res.Label() != "No Heart Disease" {
		t.Errorf("label = %q", res.Label())
	}
	if len(res.ProbabilityText()) != 4 {
		t.Errorf("probability text = %q, want two decimals", res.ProbabilityText())
	}
	if res.Positive() != (res.Probability() > 0.5) {
		t.Errorf("class %d inconsistent with probability %v", res.Class(), res.Probability())
	}
	if res.ID() == "" {
		t.Error("expected prediction id")
	}
	if usage.calls != 1 {
		t.Errorf("usage calls = %d, want 1", usage.calls)
	}
}

func TestPredict_PassesFixedWidthVector(t *testing.T) {
	clf := &mockClassifier{width: 25, class: 1, proba: []float64{0.3, 0.7}}
	svc := newFittedService(t, clf)

	res, err := svc.Predict(context.Background(), scenarioInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clf.lastInput) != 25 {
		t.Errorf("classifier got %d features, want 25", len(clf.lastInput))
	}
	if res.Label() != "Heart Disease" || res.ProbabilityText() != "0.70" {
		t.Errorf("result = %q %q", res.Label(), res.ProbabilityText())
	}
}

func TestPredict_RefitShapeMismatch(t *testing.T) {
	b := loadBundle(t)
	clf, _ := b.Classifier()
	s := clinical.HeartDisease()
	p, err := preprocess.New(preprocess.ModeRefit, b.Preprocessing, s)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	usage := &mockUsage{}
	svc := New(s, p, clf, zap.NewNop()).WithUsage(usage)

	_, err = svc.Predict(context.Background(), scenarioInput())
	if !errors.Is(err, domain.ErrShapeMismatch) {
		t.Fatalf("error = %v, want ErrShapeMismatch", err)
	}
	if !strings.Contains(err.Error(), "expects 25 features, got 13") {
		t.Errorf("error = %q", err)
	}
	if usage.calls != 0 {
		t.Error("failed prediction must not be counted")
	}
}

func TestPredict_ValidationError(t *testing.T) {
	clf := &mockClassifier{width: 25}
	svc := newFittedService(t, clf)

	in := scenarioInput()
	in.Numbers["age"] = 121

	_, err := svc.Predict(context.Background(), in)
	if !errors.Is(err, domain.ErrFieldOutOfRange) {
		t.Fatalf("error = %v, want ErrFieldOutOfRange", err)
	}
	if clf.lastInput != nil {
		t.Error("classifier must not run on invalid input")
	}
}

func TestPredict_ClassifierError(t *testing.T) {
	clf := &mockClassifier{width: 25, err: errors.New("boom")}
	svc := newFittedService(t, clf)

	_, err := svc.Predict(context.Background(), scenarioInput())
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected classifier error, got %v", err)
	}
}

func TestService_Accessors(t *testing.T) {
	svc := newFittedService(t, &mockClassifier{width: 25})
	if svc.Mode() != preprocess.ModeFitted {
		t.Errorf("Mode() = %q", svc.Mode())
	}
	if svc.NumFeatures() != 25 {
		t.Errorf("NumFeatures() = %d", svc.NumFeatures())
	}
	if len(svc.Schema().Columns()) != 13 {
		t.Errorf("schema columns = %d", len(svc.Schema().Columns()))
	}
}

func TestPositiveIndex(t *testing.T) {
	if positiveIndex([]int{0, 1}) != 1 {
		t.Error("[0 1] -> 1")
	}
	if positiveIndex([]int{1, 0}) != 0 {
		t.Error("[1 0] -> 0")
	}
}

func TestHealthCheck(t *testing.T) {
	b := loadBundle(t)
	clf, _ := b.Classifier()

	svc := newFittedService(t, clf)
	if err := svc.HealthCheck(context.Background()); err != nil {
		t.Fatalf("fitted service unhealthy: %v", err)
	}

	narrow := newFittedService(t, &mockClassifier{width: 13, proba: []float64{0.5, 0.5}})
	if err := narrow.HealthCheck(context.Background()); !errors.Is(err, domain.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}
