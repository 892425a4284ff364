package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/retailpulse/retailpulse/internal/domain"
)

const (
	redisFeaturePrefix = "retailpulse:features:"
	redisBaselineKey   = "retailpulse:baseline"
	redisDateIndexKey  = "retailpulse:feature_dates"
)

// RedisStore is a Redis-backed FeatureStore. Feature sets live under one key
// per date with a sorted-set index (scored by unix day) supporting latest,
// listing and pruning. Values are JSON; keys never expire. Retention is the
// explicit Prune call only.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a store over an existing client. The caller owns
// connection configuration; tests inject a redismock client here.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreAddr dials Redis with the production pool settings.
func NewRedisStoreAddr(addr, password string, db int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		PoolSize:     10,
		MinIdleConns: 2,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &RedisStore{client: client}
}

func featureKey(date time.Time) string {
	return redisFeaturePrefix + domain.DayKey(date)
}

func dayScore(date time.Time) float64 {
	return float64(domain.Day(date).Unix())
}

func (r *RedisStore) PutFeatures(ctx context.Context, fs domain.DailyFeatureSet) error {
	payload, err := json.Marshal(fs)
	if err != nil {
		return fmt.Errorf("marshal feature set: %w", err)
	}

	key := featureKey(fs.Date)
	if err := r.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := r.client.ZAdd(ctx, redisDateIndexKey, &redis.Z{
		Score:  dayScore(fs.Date),
		Member: domain.DayKey(fs.Date),
	}).Err(); err != nil {
		return fmt.Errorf("index %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) GetFeatures(ctx context.Context, date time.Time) (*domain.DailyFeatureSet, error) {
	raw, err := r.client.Get(ctx, featureKey(date)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", featureKey(date), err)
	}

	var fs domain.DailyFeatureSet
	if err := json.Unmarshal([]byte(raw), &fs); err != nil {
		return nil, fmt.Errorf("unmarshal feature set %s: %w", domain.DayKey(date), err)
	}
	return &fs, nil
}

func (r *RedisStore) HasFeatures(ctx context.Context, date time.Time) (bool, error) {
	n, err := r.client.Exists(ctx, featureKey(date)).Result()
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", featureKey(date), err)
	}
	return n > 0, nil
}

func (r *RedisStore) LatestDate(ctx context.Context) (time.Time, bool, error) {
	members, err := r.client.ZRevRange(ctx, redisDateIndexKey, 0, 0).Result()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("latest date: %w", err)
	}
	if len(members) == 0 {
		return time.Time{}, false, nil
	}
	date, err := time.Parse("2006-01-02", members[0])
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse date index entry %q: %w", members[0], err)
	}
	return date, true, nil
}

func (r *RedisStore) ListDates(ctx context.Context) ([]time.Time, error) {
	members, err := r.client.ZRange(ctx, redisDateIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}

	dates := make([]time.Time, 0, len(members))
	for _, m := range members {
		date, err := time.Parse("2006-01-02", m)
		if err != nil {
			return nil, fmt.Errorf("parse date index entry %q: %w", m, err)
		}
		dates = append(dates, date)
	}
	return dates, nil
}

func (r *RedisStore) PutBaseline(ctx context.Context, b domain.Baseline) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	if err := r.client.Set(ctx, redisBaselineKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("set baseline: %w", err)
	}
	return nil
}

func (r *RedisStore) GetBaseline(ctx context.Context) (*domain.Baseline, error) {
	raw, err := r.client.Get(ctx, redisBaselineKey).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get baseline: %w", err)
	}

	var b domain.Baseline
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return nil, fmt.Errorf("unmarshal baseline: %w", err)
	}
	return &b, nil
}

func (r *RedisStore) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	cutoff := dayScore(olderThan)
	max := fmt.Sprintf("(%d", int64(cutoff))

	members, err := r.client.ZRangeByScore(ctx, redisDateIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: max,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("prune scan: %w", err)
	}
	if len(members) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, redisFeaturePrefix+m)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("prune delete: %w", err)
	}
	if err := r.client.ZRemRangeByScore(ctx, redisDateIndexKey, "-inf", max).Err(); err != nil {
		return 0, fmt.Errorf("prune index: %w", err)
	}
	return len(members), nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
