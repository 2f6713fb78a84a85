package chi

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/heartcheck/internal/domain"
	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
	"github.com/kailas-cloud/heartcheck/internal/domain/prediction"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pages = template.Must(template.New("").ParseFS(templateFiles, "templates/*.html"))

type formView struct {
	Fields []fieldView
	Errors []string
	Result *resultView
}

type fieldView struct {
	Column  string
	Label   string
	Min     string
	Max     string
	Step    string
	Value   string
	Options []optionView
}

type optionView struct {
	Label    string
	Selected bool
}

type resultView struct {
	Label       string
	Probability string
}

// newFormView builds the page model. Numeric inputs default to their minimum
// and choices to their first option unless values holds a submission.
func newFormView(schema *clinical.Schema, values url.Values) formView {
	fields := make([]fieldView, 0, len(schema.Fields()))
	for _, f := range schema.Fields() {
		submitted := values.Get(f.Column())
		fv := fieldView{Column: f.Column(), Label: f.Label()}

		if f.Categorical() {
			opts := f.Options()
			selected := opts[0].Label
			if submitted != "" {
				selected = submitted
			}
			for _, o := range opts {
				fv.Options = append(fv.Options, optionView{Label: o.Label, Selected: o.Label == selected})
			}
			fields = append(fields, fv)
			continue
		}

		fv.Min = formatNumber(f.Min())
		fv.Max = formatNumber(f.Max())
		fv.Step = formatNumber(f.Step())
		fv.Value = fv.Min
		if submitted != "" {
			fv.Value = submitted
		}
		fields = append(fields, fv)
	}
	return formView{Fields: fields}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func resultToView(r prediction.Result) *resultView {
	return &resultView{Label: r.Label(), Probability: r.ProbabilityText()}
}

// formErrors turns a failed submission into lines shown above the form.
func formErrors(err error) []string {
	if issues := fieldIssues(err); len(issues) > 0 {
		lines := make([]string, len(issues))
		for i, is := range issues {
			lines[i] = is.Column + ": " + is.Error
			if is.Detail != "" {
				lines[i] += " (" + is.Detail + ")"
			}
		}
		return lines
	}
	var sm *domain.ShapeMismatchError
	if errors.As(err, &sm) {
		return []string{sm.Error()}
	}
	return []string{"internal error"}
}

func (s *Server) renderForm(w http.ResponseWriter, status int, view formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, "form.html", view); err != nil {
		s.logger.Error("render form", zap.Error(err))
	}
}
