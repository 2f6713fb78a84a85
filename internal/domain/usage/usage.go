package usage

import "fmt"

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodTotal Period = "total"
)

// ParsePeriod validates a period name. Empty means day.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodMonth, PeriodTotal:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown usage period %q", s)
	}
}

// Report is a prediction count for a time period.
type Report struct {
	period      Period
	periodStart int64
	periodEnd   int64
	predictions int64
	persisted   bool
}

// NewReport creates a usage report.
func NewReport(period Period, start, end, predictions int64, persisted bool) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		predictions: predictions,
		persisted:   persisted,
	}
}

// Period returns the aggregation granularity.
func (r *Report) Period() Period { return r.period }

// PeriodStart returns the period start timestamp (unix millis). Zero for total.
func (r *Report) PeriodStart() int64 { return r.periodStart }

// PeriodEnd returns the period end timestamp (unix millis). Zero for total.
func (r *Report) PeriodEnd() int64 { return r.periodEnd }

// Predictions returns the number of successful predictions in the period.
func (r *Report) Predictions() int64 { return r.predictions }

// Persisted reports whether counts survive restarts.
func (r *Report) Persisted() bool { return r.persisted }
