package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	dbRedis "github.com/kailas-cloud/heartcheck/internal/db/redis"
	ucusage "github.com/kailas-cloud/heartcheck/internal/usecase/usage"
)

var _ ucusage.CounterStore = (*Store)(nil)

func newTestStore(t *testing.T) (*Store, *mock.Client) {
	t.Helper()
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	return New(dbRedis.NewStoreForTest(c), 48*time.Hour, 62*24*time.Hour), c
}

func TestIncrBy_DailyKeySetsTTL(t *testing.T) {
	s, c := newTestStore(t)
	key := "heartcheck:usage:predictions:daily:2026-03-14"

	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("INCRBY", key, "1")).
			Return(mock.Result(mock.RedisInt64(1))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("EXPIRE", key, "172800", "NX")).
			Return(mock.Result(mock.RedisInt64(1))),
	)

	if err := s.IncrBy(context.Background(), key, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncrBy_MonthlyKeySetsTTL(t *testing.T) {
	s, c := newTestStore(t)
	key := "heartcheck:usage:predictions:monthly:2026-03"

	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("INCRBY", key, "1")).
			Return(mock.Result(mock.RedisInt64(1))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("EXPIRE", key, "5356800", "NX")).
			Return(mock.Result(mock.RedisInt64(1))),
	)

	if err := s.IncrBy(context.Background(), key, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncrBy_TotalKeyNoTTL(t *testing.T) {
	s, c := newTestStore(t)
	key := "heartcheck:usage:predictions:total"

	c.EXPECT().
		Do(gomock.Any(), mock.Match("INCRBY", key, "1")).
		Return(mock.Result(mock.RedisInt64(7)))

	if err := s.IncrBy(context.Background(), key, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncrBy_Error(t *testing.T) {
	s, c := newTestStore(t)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(errors.New("connection refused")))

	if err := s.IncrBy(context.Background(), "heartcheck:usage:predictions:total", 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestGet_Value(t *testing.T) {
	s, c := newTestStore(t)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k")).
		Return(mock.Result(mock.RedisBlobString("42")))

	v, err := s.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("Get = %d, want 42", v)
	}
}

func TestGet_MissingKeyIsZero(t *testing.T) {
	s, c := newTestStore(t)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k")).
		Return(mock.Result(mock.RedisNil()))

	v, err := s.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0 {
		t.Errorf("Get = %d, want 0", v)
	}
}

func TestGet_ParseError(t *testing.T) {
	s, c := newTestStore(t)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k")).
		Return(mock.Result(mock.RedisBlobString("not-a-number")))

	if _, err := s.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected parse error")
	}
}
