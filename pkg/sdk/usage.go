package heartcheck

import (
	"context"
	"fmt"
	"time"

	domusage "github.com/kailas-cloud/heartcheck/internal/domain/usage"
)

// Usage returns the prediction count for the given period.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) (_ UsageReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, err) }()

	p, err := domusage.ParsePeriod(string(period))
	if err != nil {
		return UsageReport{}, fmt.Errorf("usage: %w", err)
	}
	r := c.usageSvc.GetReport(ctx, p)

	report := UsageReport{
		Period:      UsagePeriod(r.Period()),
		Predictions: r.Predictions(),
		Persisted:   r.Persisted(),
	}
	if r.PeriodStart() > 0 {
		report.PeriodStart = time.UnixMilli(r.PeriodStart()).UTC()
		report.PeriodEnd = time.UnixMilli(r.PeriodEnd()).UTC()
	}
	return report, nil
}

// usageUseCase is the internal interface for usage reporting.
type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
