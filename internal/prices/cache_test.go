package prices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	rows  []Row
	err   error
	calls int
}

func (f *fakeQuerier) ListLatestPrices(_ context.Context, _ []string) ([]Row, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSourceCachesLookups(t *testing.T) {
	q := &fakeQuerier{rows: []Row{
		{ProductCode: "A", StoreName: "Konzum", UnitPrice: 129},
		{ProductCode: "A", StoreName: "Lidl", UnitPrice: 119},
	}}
	src := NewSource(q, newTestRedis(t), time.Minute)

	first, err := src.ListLatestPrices(context.Background(), []string{"A"})
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := src.ListLatestPrices(context.Background(), []string{"A"})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, q.calls)
}

func TestSourceKeyIgnoresCodeOrder(t *testing.T) {
	q := &fakeQuerier{rows: []Row{{ProductCode: "A", StoreName: "Konzum", UnitPrice: 100}}}
	src := NewSource(q, newTestRedis(t), time.Minute)

	_, err := src.ListLatestPrices(context.Background(), []string{"B", "A"})
	require.NoError(t, err)
	_, err = src.ListLatestPrices(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	require.Equal(t, 1, q.calls)
}

func TestSourceInvalidateForcesRefetch(t *testing.T) {
	q := &fakeQuerier{rows: []Row{{ProductCode: "A", StoreName: "Konzum", UnitPrice: 100}}}
	src := NewSource(q, newTestRedis(t), time.Minute)

	_, err := src.ListLatestPrices(context.Background(), []string{"A"})
	require.NoError(t, err)
	src.Invalidate(context.Background(), []string{"A"})
	_, err = src.ListLatestPrices(context.Background(), []string{"A"})
	require.NoError(t, err)
	require.Equal(t, 2, q.calls)
}

func TestSourcePropagatesQueryError(t *testing.T) {
	q := &fakeQuerier{err: errors.New("connection refused")}
	src := NewSource(q, newTestRedis(t), time.Minute)

	_, err := src.ListLatestPrices(context.Background(), []string{"A"})
	require.Error(t, err)
}

func TestSourceEmptyCodes(t *testing.T) {
	q := &fakeQuerier{}
	src := NewSource(q, newTestRedis(t), time.Minute)

	rows, err := src.ListLatestPrices(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, rows)
	require.Zero(t, q.calls)
}

func TestSourceWithoutRedisStillServes(t *testing.T) {
	q := &fakeQuerier{rows: []Row{{ProductCode: "A", StoreName: "Konzum", UnitPrice: 100}}}
	src := NewSource(q, nil, time.Minute)

	rows, err := src.ListLatestPrices(context.Background(), []string{"A"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
