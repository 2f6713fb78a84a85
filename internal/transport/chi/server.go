package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
	domusage "github.com/kailas-cloud/heartcheck/internal/domain/usage"
	"github.com/kailas-cloud/heartcheck/internal/metrics"
	healthuc "github.com/kailas-cloud/heartcheck/internal/usecase/health"
	predictuc "github.com/kailas-cloud/heartcheck/internal/usecase/predict"
	usageuc "github.com/kailas-cloud/heartcheck/internal/usecase/usage"
)

// maxBodyBytes bounds JSON and form bodies.
const maxBodyBytes = 64 << 10

// Server serves the prediction form, the JSON API and operational endpoints.
type Server struct {
	predict       *predictuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP server.
func NewServer(
	predict *predictuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		predict: predict,
		usage:   usage,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		shapeMismatchHandler,
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Form)
	r.Post("/predict", s.SubmitForm)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/schema", s.GetSchema)
		r.Post("/predict", s.Predict)
		r.Get("/usage", s.GetUsage)
	})
}

// Form handles GET /.
func (s *Server) Form(w http.ResponseWriter, _ *http.Request) {
	s.renderForm(w, http.StatusOK, newFormView(s.predict.Schema(), nil))
}

// SubmitForm handles POST /predict and re-renders the form with the result.
func (s *Server) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		view := newFormView(s.predict.Schema(), nil)
		view.Errors = []string{"invalid form submission"}
		s.renderForm(w, http.StatusBadRequest, view)
		return
	}

	schema := s.predict.Schema()
	view := newFormView(schema, r.PostForm)

	in, err := inputFromForm(schema, r.PostForm)
	if err != nil {
		view.Errors = formErrors(err)
		s.renderForm(w, http.StatusBadRequest, view)
		return
	}

	result, err := s.predict.Predict(r.Context(), in)
	if err != nil {
		s.logger.Warn("form prediction failed", zap.Error(err))
		view.Errors = formErrors(err)
		status := http.StatusInternalServerError
		if len(fieldIssues(err)) > 0 {
			status = http.StatusBadRequest
		}
		s.renderForm(w, status, view)
		return
	}

	view.Result = resultToView(result)
	s.renderForm(w, http.StatusOK, view)
}

// GetSchema handles GET /api/v1/schema.
func (s *Server) GetSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SchemaResponse{
		Fields:        schemaToDTO(s.predict.Schema()),
		Preprocessing: string(s.predict.Mode()),
		Features:      s.predict.NumFeatures(),
	})
}

// Predict handles POST /api/v1/predict.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	in, err := inputFromJSON(s.predict.Schema(), body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	result, err := s.predict.Predict(r.Context(), in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PredictResponse{
		ID:              result.ID(),
		Class:           result.Class(),
		Label:           result.Label(),
		Probability:     result.Probability(),
		ProbabilityText: result.ProbabilityText(),
		Preprocessing:   string(s.predict.Mode()),
	})
}

// GetUsage handles GET /api/v1/usage?period=day|month|total.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period, err := domusage.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	report := s.usage.GetReport(r.Context(), period)
	resp := UsageResponse{
		Period:      string(report.Period()),
		Predictions: report.Predictions(),
		Persisted:   report.Persisted(),
	}
	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func schemaToDTO(schema *clinical.Schema) []FieldDTO {
	fields := schema.Fields()
	out := make([]FieldDTO, len(fields))
	for i, f := range fields {
		d := FieldDTO{Column: f.Column(), Label: f.Label(), Kind: string(f.Kind())}
		if f.Categorical() {
			for _, o := range f.Options() {
				d.Options = append(d.Options, OptionDTO{Label: o.Label, Code: o.Code})
			}
		} else {
			lo, hi, step := f.Min(), f.Max(), f.Step()
			d.Min, d.Max, d.Step = &lo, &hi, &step
		}
		out[i] = d
	}
	return out
}
