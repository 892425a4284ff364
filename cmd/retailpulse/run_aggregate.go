package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/retailpulse/retailpulse/internal/domain"
	"github.com/retailpulse/retailpulse/internal/ingest"
	"github.com/retailpulse/retailpulse/internal/pipeline"
)

func runAggregate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	txPath, _ := cmd.Flags().GetString("transactions")
	txFile, err := os.Open(txPath)
	if err != nil {
		return fmt.Errorf("open transactions: %w", err)
	}
	defer txFile.Close()

	records, rowErrs, err := ingest.ReadTransactions(txFile)
	if err != nil {
		return err
	}
	for _, re := range rowErrs {
		log.Warn().Int("line", re.Line).Err(re.Err).Msg("skipped malformed transaction row")
	}

	var snapshots []domain.InventorySnapshot
	if invPath, _ := cmd.Flags().GetString("inventory"); invPath != "" {
		invFile, err := os.Open(invPath)
		if err != nil {
			return fmt.Errorf("open inventory: %w", err)
		}
		defer invFile.Close()

		snapshots, rowErrs, err = ingest.ReadInventory(invFile)
		if err != nil {
			return err
		}
		for _, re := range rowErrs {
			log.Warn().Int("line", re.Line).Err(re.Err).Msg("skipped malformed inventory row")
		}
	}

	dates, err := targetDates(cmd, records)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		return fmt.Errorf("no target dates: export is empty and --dates not given")
	}

	fs, _, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer fs.Close()

	res, err := pipeline.New(fs, cfg.Pipeline, nil).Run(ctx, records, snapshots, dates)
	if err != nil {
		return err
	}

	for _, f := range res.Failed {
		log.Error().Str("date", domain.DayKey(f.Date)).Err(f.Err).Msg("date failed")
	}
	if len(res.Succeeded) == 0 {
		return fmt.Errorf("aggregation failed for all %d dates", len(res.Failed))
	}
	return nil
}

// targetDates honors an explicit --dates list, falling back to every
// distinct day present in the export.
func targetDates(cmd *cobra.Command, records []domain.TransactionRecord) ([]time.Time, error) {
	raw, _ := cmd.Flags().GetString("dates")
	if raw == "" {
		return pipeline.DatesIn(records), nil
	}

	var dates []time.Time
	for _, s := range strings.Split(raw, ",") {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("parse --dates entry %q: want YYYY-MM-DD", s)
		}
		dates = append(dates, d)
	}
	return dates, nil
}
