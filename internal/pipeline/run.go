// Package pipeline orchestrates the daily batch: aggregate raw records into
// per-date feature sets, recompute the trailing baseline, score each new date
// for anomalies, and persist everything through the feature store.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/retailpulse/retailpulse/internal/aggregate"
	"github.com/retailpulse/retailpulse/internal/anomaly"
	"github.com/retailpulse/retailpulse/internal/baseline"
	"github.com/retailpulse/retailpulse/internal/config"
	"github.com/retailpulse/retailpulse/internal/domain"
	"github.com/retailpulse/retailpulse/internal/metrics"
	"github.com/retailpulse/retailpulse/internal/store"
)

// DateError ties a per-date failure to its date. One bad date never aborts
// the rest of the run.
type DateError struct {
	Date time.Time
	Err  error
}

func (e DateError) Error() string {
	return fmt.Sprintf("%s: %v", domain.DayKey(e.Date), e.Err)
}

func (e DateError) Unwrap() error { return e.Err }

// Result reports which dates made it into the store and which did not.
type Result struct {
	Succeeded []time.Time
	Failed    []DateError

	// TrueAnomalies lists the newly scored dates the multidimensional rule
	// confirmed as anomalous.
	TrueAnomalies []time.Time
}

// Pipeline wires the aggregation, baseline and anomaly stages around one
// feature store. Construct once, Run per batch.
type Pipeline struct {
	store    store.FeatureStore
	baseline *baseline.Calculator
	detector *anomaly.Detector
	aggCfg   aggregate.Config
	limiter  *rate.Limiter
	metrics  *metrics.Metrics
}

// New builds a pipeline from the batch configuration. A nil metrics set is
// replaced with a private one, so callers without a monitoring surface need
// not care.
func New(fs store.FeatureStore, cfg config.PipelineConfig, m *metrics.Metrics) *Pipeline {
	if m == nil {
		m = metrics.New()
	}

	limit := rate.Inf
	if cfg.WriteRatePerSec > 0 {
		limit = rate.Limit(cfg.WriteRatePerSec)
	}

	return &Pipeline{
		store:    fs,
		baseline: baseline.NewCalculator(cfg.BaselineWindowDays, cfg.MinHistoryDays),
		detector: anomaly.NewDetector(),
		aggCfg:   aggregate.Config{SupplierShareFloorPct: cfg.SupplierShareFloorPct},
		limiter:  rate.NewLimiter(limit, cfg.WriteBurst),
		metrics:  m,
	}
}

// Run executes one batch over the given target dates. Stages run in order:
// every date is aggregated and persisted first, then the baseline is
// recomputed over everything in the store, then each date that survived
// aggregation is scored against that baseline and rewritten with its flags.
// The baseline singleton is replaced last, so concurrent readers never see
// scored features referencing a baseline that is not yet stored.
func (p *Pipeline) Run(ctx context.Context, records []domain.TransactionRecord, snapshots []domain.InventorySnapshot, dates []time.Time) (*Result, error) {
	start := time.Now()
	defer func() {
		p.metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}()

	agg := aggregate.New(records, snapshots, p.aggCfg)
	res := &Result{}

	for _, date := range dates {
		day := domain.Day(date)
		fs, err := agg.AggregateDay(day)
		if err != nil {
			p.metrics.AggregationFailures.Inc()
			res.Failed = append(res.Failed, DateError{Date: day, Err: err})
			log.Warn().Str("date", domain.DayKey(day)).Err(err).Msg("date failed aggregation")
			continue
		}
		if err := p.put(ctx, *fs); err != nil {
			res.Failed = append(res.Failed, DateError{Date: day, Err: err})
			continue
		}
		p.metrics.DatesAggregated.Inc()
		res.Succeeded = append(res.Succeeded, day)
	}

	if len(res.Succeeded) == 0 {
		log.Warn().Int("failed", len(res.Failed)).Msg("pipeline run produced no feature sets")
		return res, nil
	}

	cached, latest, err := p.loadAll(ctx)
	if err != nil {
		return res, err
	}

	b := p.baseline.Compute(latest, BaselineInput(cached))

	for _, day := range res.Succeeded {
		fs, ok := cached[domain.DayKey(day)]
		if !ok {
			continue
		}
		fs.Anomalies = p.detector.Detect(&fs, b)
		if fs.Anomalies.HasAnomaly {
			p.metrics.AnomalousDays.Inc()
		}
		if fs.Anomalies.IsTrueAnomaly {
			p.metrics.TrueAnomalies.Inc()
			res.TrueAnomalies = append(res.TrueAnomalies, day)
		}
		if err := p.put(ctx, fs); err != nil {
			res.Failed = append(res.Failed, DateError{Date: day, Err: err})
		}
	}

	if err := p.store.PutBaseline(ctx, *b); err != nil {
		p.metrics.StoreErrors.Inc()
		return res, fmt.Errorf("store baseline: %w", err)
	}

	log.Info().
		Int("succeeded", len(res.Succeeded)).
		Int("failed", len(res.Failed)).
		Int("true_anomalies", len(res.TrueAnomalies)).
		Str("baseline_through", domain.DayKey(b.ComputedThrough)).
		Msg("pipeline run complete")

	return res, nil
}

// put writes one feature set through the rate limiter.
func (p *Pipeline) put(ctx context.Context, fs domain.DailyFeatureSet) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := p.store.PutFeatures(ctx, fs); err != nil {
		p.metrics.StoreErrors.Inc()
		return fmt.Errorf("store features %s: %w", domain.DayKey(fs.Date), err)
	}
	return nil
}

// loadAll reads every cached feature set. The baseline window wants the full
// history, not just the dates this run touched.
func (p *Pipeline) loadAll(ctx context.Context) (map[string]domain.DailyFeatureSet, time.Time, error) {
	dates, err := p.store.ListDates(ctx)
	if err != nil {
		p.metrics.StoreErrors.Inc()
		return nil, time.Time{}, fmt.Errorf("list dates: %w", err)
	}

	sets := make(map[string]domain.DailyFeatureSet, len(dates))
	var latest time.Time
	for _, d := range dates {
		fs, err := p.store.GetFeatures(ctx, d)
		if err != nil {
			p.metrics.StoreErrors.Inc()
			return nil, time.Time{}, fmt.Errorf("load features %s: %w", domain.DayKey(d), err)
		}
		sets[domain.DayKey(d)] = *fs
		if d.After(latest) {
			latest = d
		}
	}
	return sets, latest, nil
}

// BaselineInput flattens the cached sets for the calculator, date-ascending.
func BaselineInput(sets map[string]domain.DailyFeatureSet) []domain.DailyFeatureSet {
	out := make([]domain.DailyFeatureSet, 0, len(sets))
	for _, fs := range sets {
		out = append(out, fs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// DatesIn returns the distinct UTC days covered by the records, ascending.
// Hosts usually run the pipeline over exactly the days present in an export.
func DatesIn(records []domain.TransactionRecord) []time.Time {
	seen := make(map[string]time.Time)
	for _, r := range records {
		day := domain.Day(r.Timestamp)
		seen[domain.DayKey(day)] = day
	}
	out := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
