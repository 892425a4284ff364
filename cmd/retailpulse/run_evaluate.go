package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/retailpulse/retailpulse/internal/config"
	"github.com/retailpulse/retailpulse/internal/ingest"
	"github.com/retailpulse/retailpulse/internal/match"
)

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	bc, err := config.LoadContext(cfg.ContextPath)
	if err != nil {
		return err
	}
	keywords, err := config.LoadKeywords(cfg.KeywordsPath)
	if err != nil {
		return err
	}
	bc.Keywords = keywords

	eventsPath, _ := cmd.Flags().GetString("events")
	eventsFile, err := os.Open(eventsPath)
	if err != nil {
		return fmt.Errorf("open events: %w", err)
	}
	defer eventsFile.Close()

	events, err := ingest.ReadEvents(eventsFile)
	if err != nil {
		return err
	}

	date := time.Now().UTC()
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("parse --date %q: want YYYY-MM-DD", raw)
		}
	}

	fs, _, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer fs.Close()

	matcher := match.New(bc, fs)

	if invPath, _ := cmd.Flags().GetString("inventory"); invPath != "" {
		invFile, err := os.Open(invPath)
		if err != nil {
			return fmt.Errorf("open inventory: %w", err)
		}
		defer invFile.Close()

		snapshots, rowErrs, err := ingest.ReadInventory(invFile)
		if err != nil {
			return err
		}
		for _, re := range rowErrs {
			log.Warn().Int("line", re.Line).Err(re.Err).Msg("skipped malformed inventory row")
		}
		matcher.SetStock(match.StockByCategory(snapshots))
	}

	report, err := matcher.EvaluateAll(ctx, date, events)
	if err != nil {
		return err
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

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
