// Command retailpulse runs the feature and context matching engine: daily
// aggregation batches, event evaluation, exports, retention, and the
// monitoring server.
package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "RetailPulse"
	version = "v1.3.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	// Local development convenience only; production uses real env vars.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	rootCmd := &cobra.Command{
		Use:     "retailpulse",
		Short:   appName + " turns raw sales exports into anomaly-scored features and event-driven alerts",
		Version: version,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (defaults apply when omitted)")

	aggregateCmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Run the daily aggregation and anomaly pipeline over a transaction export",
		RunE:  runAggregate,
	}
	aggregateCmd.Flags().String("transactions", "", "Transaction export CSV (required)")
	aggregateCmd.Flags().String("inventory", "", "Inventory snapshot CSV (optional)")
	aggregateCmd.Flags().String("dates", "", "Comma-separated target dates YYYY-MM-DD (default: every date in the export)")
	_ = aggregateCmd.MarkFlagRequired("transactions")

	evaluateCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate detected events against the business context and cached features",
		RunE:  runEvaluate,
	}
	evaluateCmd.Flags().String("events", "", "Detected events JSON array (required)")
	evaluateCmd.Flags().String("inventory", "", "Inventory snapshot CSV for days-of-supply evidence (optional)")
	evaluateCmd.Flags().String("date", "", "Report date YYYY-MM-DD (default: today)")
	evaluateCmd.Flags().String("output", "", "Write the alert report here instead of stdout")
	_ = evaluateCmd.MarkFlagRequired("events")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export every cached feature set as flat CSV",
		RunE:  runExport,
	}
	exportCmd.Flags().String("output", "", "Write CSV here instead of stdout")

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete cached feature sets older than a cutoff date",
		RunE:  runPrune,
	}
	pruneCmd.Flags().String("older-than", "", "Cutoff date YYYY-MM-DD, exclusive (required)")
	_ = pruneCmd.MarkFlagRequired("older-than")

	monitorCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Start the monitoring HTTP server with /health, /metrics and feature endpoints",
		RunE:  runMonitor,
	}

	rootCmd.AddCommand(aggregateCmd, evaluateCmd, exportCmd, pruneCmd, monitorCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
