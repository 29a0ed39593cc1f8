package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/hupe1980/nslscan"
	"github.com/hupe1980/nslscan/internal/config"
	"github.com/hupe1980/nslscan/metric"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	flags      config.Config

	cfg     config.Config
	runID   string
	logger  *nslscan.Logger
	tp      *sdktrace.TracerProvider
	metrics *metric.PrometheusCollector
	closers []io.Closer
}

func newApp() *app {
	return &app{flags: config.Default()}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "nslscan",
		Short:         "Haplotype-based selection scans (nSL and iHS) on ms output",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.flags.LogLevel, "log-level", a.flags.LogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&a.flags.Trace, "trace", false, "print OpenTelemetry spans to stderr")
	pf.StringVar(&a.flags.MetricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")
	pf.StringVar(&a.flags.S3.Region, "s3-region", "", "AWS region for s3:// inputs")
	pf.StringVar(&a.flags.MinIO.Endpoint, "minio-endpoint", "", "endpoint for minio:// inputs")
	pf.StringVar(&a.flags.MinIO.AccessKey, "minio-access-key", "", "access key for minio:// inputs")
	pf.StringVar(&a.flags.MinIO.SecretKey, "minio-secret-key", "", "secret key for minio:// inputs")
	pf.BoolVar(&a.flags.MinIO.Secure, "minio-secure", a.flags.MinIO.Secure, "use TLS for minio:// inputs")
	pf.StringVar(&a.flags.GCS.CredentialsFile, "gcs-credentials", "", "service account key for gs:// inputs")

	root.AddCommand(a.siteCommand(), a.sitesCommand(), a.scanCommand())
	return root
}

// flagOverrides maps flag names to the config field they override.
func (a *app) flagOverrides() map[string]func(*config.Config) {
	f := a.flags
	return map[string]func(*config.Config){
		"workers":          func(c *config.Config) { c.Workers = f.Workers },
		"min-freq":         func(c *config.Config) { c.MinFreq = f.MinFreq },
		"bin-size":         func(c *config.Config) { c.BinSize = f.BinSize },
		"length":           func(c *config.Config) { c.Length = f.Length },
		"map":              func(c *config.Config) { c.GeneticMap = f.GeneticMap },
		"format":           func(c *config.Config) { c.Format = f.Format },
		"log-level":        func(c *config.Config) { c.LogLevel = f.LogLevel },
		"trace":            func(c *config.Config) { c.Trace = f.Trace },
		"metrics-file":     func(c *config.Config) { c.MetricsFile = f.MetricsFile },
		"s3-region":        func(c *config.Config) { c.S3.Region = f.S3.Region },
		"minio-endpoint":   func(c *config.Config) { c.MinIO.Endpoint = f.MinIO.Endpoint },
		"minio-access-key": func(c *config.Config) { c.MinIO.AccessKey = f.MinIO.AccessKey },
		"minio-secret-key": func(c *config.Config) { c.MinIO.SecretKey = f.MinIO.SecretKey },
		"minio-secure":     func(c *config.Config) { c.MinIO.Secure = f.MinIO.Secure },
		"gcs-credentials":  func(c *config.Config) { c.GCS.CredentialsFile = f.GCS.CredentialsFile },
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	for name, apply := range a.flagOverrides() {
		if cmd.Flags().Changed(name) {
			apply(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	a.runID = uuid.NewString()
	a.logger = newLogger(cmd.ErrOrStderr(), level, a.runID)

	if cfg.Trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(cmd.ErrOrStderr()), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("create trace exporter: %w", err)
		}
		a.tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
	}
	if cfg.MetricsFile != "" {
		a.metrics = metric.NewPrometheusCollector()
	}

	a.logger.Debug("configuration loaded",
		"workers", cfg.Workers,
		"min_freq", cfg.MinFreq,
		"bin_size", cfg.BinSize,
		"format", cfg.Format,
	)
	return nil
}

// newLogger logs text to terminals and JSON otherwise.
func newLogger(w io.Writer, level slog.Level, runID string) *nslscan.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		h = slog.NewTextHandler(w, opts)
	}
	return nslscan.NewLogger(h.WithAttrs([]slog.Attr{slog.String("run_id", runID)}))
}

// scanner builds a Scanner from the loaded configuration.
func (a *app) scanner(gmap nslscan.GeneticMap) *nslscan.Scanner {
	opts := []nslscan.Option{
		nslscan.WithWorkers(a.cfg.Workers),
		nslscan.WithLogger(a.logger),
	}
	if gmap != nil {
		opts = append(opts, nslscan.WithGeneticMap(gmap))
	}
	if a.tp != nil {
		opts = append(opts, nslscan.WithTracerProvider(a.tp))
	}
	if a.metrics != nil {
		opts = append(opts, nslscan.WithMetricsCollector(a.metrics))
	}
	return nslscan.New(opts...)
}

// shutdown flushes traces and metrics and releases storage clients.
func (a *app) shutdown(ctx context.Context) error {
	var errs []error
	if a.tp != nil {
		errs = append(errs, a.tp.Shutdown(ctx))
	}
	if a.metrics != nil {
		errs = append(errs, a.metrics.WriteTextfile(a.cfg.MetricsFile))
	}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
