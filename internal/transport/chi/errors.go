package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/heartcheck/internal/domain"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// fieldIssues flattens every FieldError in err, including joined ones.
func fieldIssues(err error) []FieldIssue {
	var out []FieldIssue
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if fe, ok := e.(*domain.FieldError); ok {
			out = append(out, FieldIssue{Column: fe.Column, Error: fe.Err.Error(), Detail: fe.Detail})
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}

// validationHandler answers collector and encoder errors with the offending fields.
func validationHandler(w http.ResponseWriter, err error) bool {
	issues := fieldIssues(err)
	if len(issues) == 0 {
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidationFailed,
		Message: "invalid input",
		Fields:  issues,
	})
	return true
}

// shapeMismatchHandler reports a model that cannot accept the preprocessed vector.
func shapeMismatchHandler(w http.ResponseWriter, err error) bool {
	var sm *domain.ShapeMismatchError
	if !errors.As(err, &sm) {
		return false
	}
	writeError(w, http.StatusInternalServerError, CodeShapeMismatch, sm.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
