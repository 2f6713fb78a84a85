package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/heartcheck/internal/domain/usage"
)

// CountReader provides read-only access to prediction counters.
type CountReader interface {
	DailyCount() int64
	MonthlyCount() int64
	TotalCount() int64
	Persisted() bool
}

// Service handles usage reporting.
type Service struct {
	cr  CountReader
	now func() time.Time
}

// New creates a Service. cr can be nil (counting disabled).
func New(cr CountReader) *Service {
	return &Service{cr: cr, now: func() time.Time { return time.Now().UTC() }}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now()
	var start, end, count int64
	persisted := s.cr != nil && s.cr.Persisted()

	switch period {
	case domusage.PeriodDay:
		dayStart := truncateToDay(now)
		start = dayStart.UnixMilli()
		end = dayStart.Add(24 * time.Hour).UnixMilli()
		if s.cr != nil {
			count = s.cr.DailyCount()
		}
	case domusage.PeriodMonth:
		monthStart := truncateToMonth(now)
		start = monthStart.UnixMilli()
		end = monthStart.AddDate(0, 1, 0).UnixMilli()
		if s.cr != nil {
			count = s.cr.MonthlyCount()
		}
	default:
		// total: no period boundaries
		if s.cr != nil {
			count = s.cr.TotalCount()
		}
	}

	return domusage.NewReport(period, start, end, count, persisted)
}
