package store

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/domain"
)

func TestRedisStorePutFeatures(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client)

	fs := sampleFeatures(day("2026-03-10"), 4200)
	payload, err := json.Marshal(fs)
	require.NoError(t, err)

	mock.ExpectSet("retailpulse:features:2026-03-10", payload, 0).SetVal("OK")
	mock.ExpectZAdd("retailpulse:feature_dates", &redis.Z{
		Score:  float64(domain.Day(fs.Date).Unix()),
		Member: "2026-03-10",
	}).SetVal(1)

	require.NoError(t, s.PutFeatures(context.Background(), fs))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreGetFeatures(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client)

	fs := sampleFeatures(day("2026-03-10"), 4200)
	payload, err := json.Marshal(fs)
	require.NoError(t, err)

	mock.ExpectGet("retailpulse:features:2026-03-10").SetVal(string(payload))

	got, err := s.GetFeatures(context.Background(), day("2026-03-10"))
	require.NoError(t, err)
	assert.Equal(t, 4200.0, got.Totals.Revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreGetFeaturesMissing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client)

	mock.ExpectGet("retailpulse:features:2026-03-11").RedisNil()

	_, err := s.GetFeatures(context.Background(), day("2026-03-11"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreLatestDate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client)

	mock.ExpectZRevRange("retailpulse:feature_dates", 0, 0).SetVal([]string{"2026-03-12"})

	latest, ok, err := s.LatestDate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, day("2026-03-12"), latest)
}

func TestRedisStoreLatestDateEmpty(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client)

	mock.ExpectZRevRange("retailpulse:feature_dates", 0, 0).SetVal([]string{})

	_, ok, err := s.LatestDate(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStorePrune(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client)

	cutoff := domain.Day(day("2026-02-01")).Unix()
	max := "(" + strconv.FormatInt(cutoff, 10)

	mock.ExpectZRangeByScore("retailpulse:feature_dates", &redis.ZRangeBy{
		Min: "-inf",
		Max: max,
	}).SetVal([]string{"2026-01-05", "2026-01-06"})
	mock.ExpectDel(
		"retailpulse:features:2026-01-05",
		"retailpulse:features:2026-01-06",
	).SetVal(2)
	mock.ExpectZRemRangeByScore("retailpulse:feature_dates", "-inf", max).SetVal(2)

	deleted, err := s.Prune(context.Background(), day("2026-02-01"))
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStorePruneNothingToDo(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client)

	cutoff := domain.Day(day("2026-02-01")).Unix()
	mock.ExpectZRangeByScore("retailpulse:feature_dates", &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff, 10),
	}).SetVal([]string{})

	deleted, err := s.Prune(context.Background(), day("2026-02-01"))
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRedisStoreBaselineRoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client)

	b := domain.Baseline{
		ComputedThrough: day("2026-03-10"),
		WindowDays:      30,
		TotalRevenue:    domain.BaselineStats{Mean: 4100, Std: 300, PopulatedDays: 28},
	}
	payload, err := json.Marshal(b)
	require.NoError(t, err)

	mock.ExpectSet("retailpulse:baseline", payload, 0).SetVal("OK")
	mock.ExpectGet("retailpulse:baseline").SetVal(string(payload))

	ctx := context.Background()
	require.NoError(t, s.PutBaseline(ctx, b))

	got, err := s.GetBaseline(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, got.WindowDays)
	assert.Equal(t, 4100.0, got.TotalRevenue.Mean)
}
