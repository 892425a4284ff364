package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/retailpulse/retailpulse/internal/domain"
	"github.com/retailpulse/retailpulse/internal/store"
)

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	fs, _, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer fs.Close()

	dates, err := fs.ListDates(ctx)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		return fmt.Errorf("feature store is empty, nothing to export")
	}

	sets := make([]domain.DailyFeatureSet, 0, len(dates))
	for _, d := range dates {
		set, err := fs.GetFeatures(ctx, d)
		if err != nil {
			return fmt.Errorf("load features %s: %w", domain.DayKey(d), err)
		}
		sets = append(sets, *set)
	}

	out := io.Writer(os.Stdout)
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	return store.ExportCSV(out, sets)
}
