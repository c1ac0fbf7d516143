// Command sondeqc converts raw ground-receiver sounding files into
// quality-controlled analysis CSVs, driven by the observation field book.
//
// Usage:
//
//	sondeqc --field-book data/field_book.csv --raw-dir data/raw --out-dir data/anl
//
// Configuration comes from environment variables (FIELD_BOOK_PATH,
// RAW_DATA_DIR, OUTPUT_DIR, WORKERS, HTTP_ADDR, KAFKA_BROKERS, ...); flags
// override the environment.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/sonde-data-etl/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/sonde-data-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/sonde-data-etl/internal/adapter/kafka"
	"github.com/couchcryptid/sonde-data-etl/internal/config"
	"github.com/couchcryptid/sonde-data-etl/internal/manifest"
	"github.com/couchcryptid/sonde-data-etl/internal/observability"
	"github.com/couchcryptid/sonde-data-etl/internal/pipeline"
)

var (
	flagFieldBook string
	flagRawDir    string
	flagOutDir    string
	flagWorkers   int
	flagHTTPAddr  string
)

var rootCmd = &cobra.Command{
	Use:   "sondeqc",
	Short: "Quality-control radiosonde sounding telemetry",
	Long: `Reads the observation field book, locates each station's raw receiver
file, applies quality control (receiver-state filtering, numeric casting,
dewpoint derivation, timestamp reconstruction), and writes one analysis CSV
per sounding. Stations are processed concurrently.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagFieldBook, "field-book", "", "field book CSV path (overrides FIELD_BOOK_PATH)")
	rootCmd.Flags().StringVar(&flagRawDir, "raw-dir", "", "raw receiver file directory (overrides RAW_DATA_DIR)")
	rootCmd.Flags().StringVar(&flagOutDir, "out-dir", "", "analysis output directory (overrides OUTPUT_DIR)")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0, "concurrent stations (overrides WORKERS)")
	rootCmd.Flags().StringVar(&flagHTTPAddr, "http-addr", "", "health/metrics listen address (overrides HTTP_ADDR)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	entries, err := manifest.Load(cfg.FieldBookPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	store := csvfile.Store{RawDir: cfg.RawDataDir, OutDir: cfg.OutputDir}

	var publisher pipeline.Publisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		publisher = kafkaWriter
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	}

	batch := pipeline.New(store, store, publisher, logger, metrics, cfg.Workers)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, batch, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	summary, runErr := batch.Run(ctx, entries)

	shutdown(srv, kafkaWriter, cfg, logger)

	if runErr != nil {
		return fmt.Errorf("batch interrupted: %w", runErr)
	}
	if failed := summary.Failed.Load(); failed > 0 {
		return fmt.Errorf("%d sounding(s) failed, see log", failed)
	}
	return nil
}

// applyFlags overlays explicitly set CLI flags onto the env-derived config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("field-book") {
		cfg.FieldBookPath = flagFieldBook
	}
	if cmd.Flags().Changed("raw-dir") {
		cfg.RawDataDir = flagRawDir
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutputDir = flagOutDir
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if cmd.Flags().Changed("http-addr") {
		cfg.HTTPAddr = flagHTTPAddr
	}
}

func shutdown(srv *httpadapter.Server, kafkaWriter *kafkaadapter.Writer, cfg *config.Config, logger *slog.Logger) {
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
}
