package heartcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/heartcheck/internal/db"
	dbRedis "github.com/kailas-cloud/heartcheck/internal/db/redis"
	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
	"github.com/kailas-cloud/heartcheck/internal/domain/prediction"
	"github.com/kailas-cloud/heartcheck/internal/model"
	"github.com/kailas-cloud/heartcheck/internal/preprocess"
	usagerepo "github.com/kailas-cloud/heartcheck/internal/repository/usage"
	healthuc "github.com/kailas-cloud/heartcheck/internal/usecase/health"
	predictuc "github.com/kailas-cloud/heartcheck/internal/usecase/predict"
	usageuc "github.com/kailas-cloud/heartcheck/internal/usecase/usage"
)

const (
	defaultArtifactPath     = "artifacts/heart_model.yaml"
	defaultReadinessTimeout = 10 * time.Second

	dailyTTL   = 48 * time.Hour
	monthlyTTL = 62 * 24 * time.Hour
)

// Internal interfaces, swapped out in tests.
type predictUseCase interface {
	Predict(ctx context.Context, in clinical.Input) (prediction.Result, error)
	Schema() *clinical.Schema
}

// Client is the heartcheck SDK entry point. It is safe for concurrent use.
type Client struct {
	store      db.Store
	predictSvc predictUseCase
	healthSvc  healthUseCase
	usageSvc   usageUseCase
	obs        *observer
}

// New loads the model artifact and builds a Client.
// The provided context is used for the initial database readiness check
// when WithValkey or WithRedis is set.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{artifactPath: defaultArtifactPath}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("heartcheck: database not ready: %w", err)
		}
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case dbRedis.DriverValkey, dbRedis.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("heartcheck: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("heartcheck: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	bundle, err := model.LoadBundle(cfg.artifactPath)
	if err != nil {
		return nil, fmt.Errorf("heartcheck: load artifact: %w", err)
	}
	classifier, err := bundle.Classifier()
	if err != nil {
		return nil, fmt.Errorf("heartcheck: build classifier: %w", err)
	}

	mode := preprocess.ModeFitted
	if cfg.refit {
		mode = preprocess.ModeRefit
	}
	schema := clinical.HeartDisease()
	pipeline, err := preprocess.New(mode, bundle.Preprocessing, schema)
	if err != nil {
		return nil, fmt.Errorf("heartcheck: build pipeline: %w", err)
	}

	// The SDK logs through slog; internal services get a no-op zap logger.
	counter := usageuc.NewCounter(zap.NewNop())
	var pinger healthuc.DBPinger
	if store != nil {
		counter.WithStore(ctx, usagerepo.New(store, dailyTTL, monthlyTTL))
		pinger = store
	}

	predictSvc := predictuc.New(schema, pipeline, classifier, zap.NewNop()).WithUsage(counter)

	return &Client{
		store:      store,
		predictSvc: predictSvc,
		healthSvc:  healthuc.New(predictSvc, pinger),
		usageSvc:   usageuc.New(counter),
		obs:        obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Predict validates the input, encodes it and runs the classifier.
// Validation failures wrap ErrMissingField, ErrFieldOutOfRange or ErrUnknownChoice;
// a vector of the wrong width wraps ErrShapeMismatch.
func (c *Client) Predict(ctx context.Context, in Input) (_ Prediction, err error) {
	start := time.Now()
	defer func() { c.obs.observe("predict", start, err) }()

	res, err := c.predictSvc.Predict(ctx, in.toDomain())
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	return Prediction{
		ID:              res.ID(),
		Class:           res.Class(),
		Label:           res.Label(),
		Probability:     res.Probability(),
		ProbabilityText: res.ProbabilityText(),
	}, nil
}

// Schema returns the input fields in training column order.
func (c *Client) Schema() []Field {
	specs := c.predictSvc.Schema().Fields()
	out := make([]Field, 0, len(specs))
	for _, f := range specs {
		field := Field{
			Column: f.Column(),
			Label:  f.Label(),
			Kind:   FieldKind(f.Kind()),
		}
		if f.Categorical() {
			for _, o := range f.Options() {
				field.Options = append(field.Options, Choice{Label: o.Label, Code: o.Code})
			}
		} else {
			field.Min, field.Max, field.Step = f.Min(), f.Max(), f.Step()
		}
		out = append(out, field)
	}
	return out
}

// IsValidationError reports whether err is a rejected form value.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrFieldOutOfRange) ||
		errors.Is(err, ErrMalformedValue) ||
		errors.Is(err, ErrUnknownChoice)
}
