package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/retailpulse/retailpulse/internal/domain"
)

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	raw, _ := cmd.Flags().GetString("older-than")
	cutoff, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fmt.Errorf("parse --older-than %q: want YYYY-MM-DD", raw)
	}

	fs, _, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer fs.Close()

	removed, err := fs.Prune(ctx, cutoff)
	if err != nil {
		return err
	}

	log.Info().
		Str("older_than", domain.DayKey(cutoff)).
		Int("removed", removed).
		Msg("pruned feature store")
	return nil
}
