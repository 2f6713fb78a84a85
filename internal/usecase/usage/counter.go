package usage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/heartcheck/internal/domain"
)

// CounterStore is the persistence interface for prediction counters.
// Implementations must be additive (IncrBy can be called repeatedly).
type CounterStore interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

// Counter counts successful predictions per day, per month and in total.
// Reads are in-memory only. Record updates memory first, then writes behind to the store.
type Counter struct {
	mu             sync.Mutex
	dailyCount     int64
	monthlyCount   int64
	totalCount     int64
	lastDayReset   time.Time
	lastMonthReset time.Time
	store          CounterStore
	now            func() time.Time
	logger         *zap.Logger
}

// NewCounter creates an in-memory prediction counter.
func NewCounter(logger *zap.Logger) *Counter {
	return newCounterAt(func() time.Time { return time.Now().UTC() }, logger)
}

func newCounterAt(now func() time.Time, logger *zap.Logger) *Counter {
	t := now()
	return &Counter{
		lastDayReset:   truncateToDay(t),
		lastMonthReset: truncateToMonth(t),
		now:            now,
		logger:         logger,
	}
}

// WithStore attaches a persistence store and loads current counters.
func (c *Counter) WithStore(ctx context.Context, store CounterStore) *Counter {
	c.store = store
	c.loadFromStore(ctx)
	return c
}

// Persisted reports whether a store is attached.
func (c *Counter) Persisted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store != nil
}

func (c *Counter) loadFromStore(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	load := func(key string, dst *int64) {
		val, err := c.store.Get(ctx, key)
		if err != nil {
			c.logger.Warn("Failed to load usage counter from store", zap.String("key", key), zap.Error(err))
			return
		}
		*dst = val
	}
	load(DailyKey(now), &c.dailyCount)
	load(MonthlyKey(now), &c.monthlyCount)
	load(TotalKey(), &c.totalCount)

	c.logger.Info("Usage counters loaded from store",
		zap.Int64("daily", c.dailyCount),
		zap.Int64("monthly", c.monthlyCount),
		zap.Int64("total", c.totalCount),
	)
}

// DailyKey is the store key for the day containing t.
func DailyKey(t time.Time) string {
	return fmt.Sprintf("%susage:predictions:daily:%s", domain.KeyPrefix, t.Format("2006-01-02"))
}

// MonthlyKey is the store key for the month containing t.
func MonthlyKey(t time.Time) string {
	return fmt.Sprintf("%susage:predictions:monthly:%s", domain.KeyPrefix, t.Format("2006-01"))
}

// TotalKey is the store key for the all-time count.
func TotalKey() string {
	return domain.KeyPrefix + "usage:predictions:total"
}

// Record counts one successful prediction.
func (c *Counter) Record(_ context.Context) {
	c.mu.Lock()
	c.resetIfNeeded()
	c.dailyCount++
	c.monthlyCount++
	c.totalCount++
	store := c.store
	now := c.now()
	c.mu.Unlock()

	if store == nil {
		return
	}

	// Write-behind with its own deadline so a slow store never fails a prediction.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for _, key := range []string{DailyKey(now), MonthlyKey(now), TotalKey()} {
		if err := store.IncrBy(ctx, key, 1); err != nil {
			c.logger.Warn("Failed to persist usage counter", zap.String("key", key), zap.Error(err))
		}
	}
}

// DailyCount returns predictions made today (UTC).
func (c *Counter) DailyCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetIfNeeded()
	return c.dailyCount
}

// MonthlyCount returns predictions made this month (UTC).
func (c *Counter) MonthlyCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetIfNeeded()
	return c.monthlyCount
}

// TotalCount returns all predictions counted so far.
func (c *Counter) TotalCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCount
}

// resetIfNeeded zeroes counters when the day or month rolls over.
func (c *Counter) resetIfNeeded() {
	now := c.now()
	today := truncateToDay(now)
	thisMonth := truncateToMonth(now)

	if today.After(c.lastDayReset) {
		c.dailyCount = 0
		c.lastDayReset = today
	}
	if thisMonth.After(c.lastMonthReset) {
		c.monthlyCount = 0
		c.lastMonthReset = thisMonth
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
