package nslscan

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hupe1980/nslscan/haplotype"
)

const tracerName = "github.com/hupe1980/nslscan"

// Scanner computes nSL and iHS-analog statistics over haplotype matrices.
//
// A Scanner holds only configuration and is safe for concurrent use.
type Scanner struct {
	opts   options
	tracer trace.Tracer
}

// New creates a Scanner with the given options.
func New(optFns ...Option) *Scanner {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Scanner{
		opts:   opts,
		tracer: opts.tracerProvider.Tracer(tracerName),
	}
}

// Site computes the statistic for one core site.
func (s *Scanner) Site(ctx context.Context, m HaplotypeMatrix, core int) (Statistic, error) {
	ctx, span := s.tracer.Start(ctx, "nslscan.Site", trace.WithAttributes(
		attribute.Int("core", core),
		attribute.Int("samples", m.Size()),
	))
	defer span.End()

	if core < 0 || core >= m.NumSites() {
		err := &ErrCoreSiteOutOfRange{Core: core, NumSites: m.NumSites()}
		recordError(span, err)
		return Statistic{}, err
	}

	start := time.Now()
	sums, err := pairwiseExtension(m, s.opts.geneticMap, core)
	if err != nil {
		recordError(span, err)
		s.opts.logger.LogSite(ctx, core, Statistic{}, err)
		return Statistic{}, err
	}
	s.opts.metricsCollector.RecordSite(time.Since(start), sums.total())

	stat := sums.statistic()
	s.opts.logger.LogSite(ctx, core, stat, nil)
	return stat, nil
}

// Sites computes the statistic for every site of m, ordered by site index.
// The result is identical for every worker count.
func (s *Scanner) Sites(ctx context.Context, m HaplotypeMatrix) ([]Statistic, error) {
	ctx, span := s.tracer.Start(ctx, "nslscan.Sites", trace.WithAttributes(
		attribute.Int("sites", m.NumSites()),
		attribute.Int("samples", m.Size()),
		attribute.Int("workers", s.opts.workers),
	))
	defer span.End()

	start := time.Now()
	stats, err := s.sites(ctx, m)
	s.opts.metricsCollector.RecordSites(m.NumSites(), time.Since(start), err)
	s.opts.logger.LogSites(ctx, m.NumSites(), s.opts.workers, err)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return stats, nil
}

func (s *Scanner) sites(ctx context.Context, m HaplotypeMatrix) ([]Statistic, error) {
	if s.opts.workers < 1 {
		return nil, ErrInvalidWorkers
	}
	return s.dispatch(ctx, m)
}

// Standardized filters sites by minor allele frequency, standardizes the
// statistics within derived allele frequency bins, and returns the
// standardized values of largest magnitude.
//
// An empty matrix, or one without a site passing the filter, yields NaN for
// both values without error.
func (s *Scanner) Standardized(ctx context.Context, m HaplotypeMatrix, minFreq, binSize float64) (Extremes, error) {
	ctx, span := s.tracer.Start(ctx, "nslscan.Standardized", trace.WithAttributes(
		attribute.Float64("min_freq", minFreq),
		attribute.Float64("bin_size", binSize),
		attribute.Int("workers", s.opts.workers),
	))
	defer span.End()

	start := time.Now()
	scores, bins, err := s.standardizedScores(ctx, m, minFreq, binSize)
	ext := Extremes{NSL: nan(), IHS: nan()}
	if err == nil {
		ext = extremes(scores)
	}

	s.opts.metricsCollector.RecordScan(len(scores), len(bins), time.Since(start), err)
	s.opts.logger.LogScan(ctx, len(scores), len(bins), ext, err)
	if err != nil {
		recordError(span, err)
		return Extremes{NSL: nan(), IHS: nan()}, err
	}
	return ext, nil
}

// StandardizedScores runs the same filter, bin and standardize pipeline as
// Standardized and returns every filtered site in frequency order.
func (s *Scanner) StandardizedScores(ctx context.Context, m HaplotypeMatrix, minFreq, binSize float64) ([]Score, error) {
	ctx, span := s.tracer.Start(ctx, "nslscan.StandardizedScores")
	defer span.End()

	scores, _, err := s.standardizedScores(ctx, m, minFreq, binSize)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return scores, nil
}

func (s *Scanner) standardizedScores(ctx context.Context, m HaplotypeMatrix, minFreq, binSize float64) ([]Score, []FrequencyBin, error) {
	if !(minFreq > 0 && minFreq <= 0.5) {
		return nil, nil, ErrInvalidMinFreq
	}
	if !(binSize > 0 && binSize <= 1) {
		return nil, nil, ErrInvalidBinSize
	}
	if m.Size() == 0 {
		return nil, nil, nil
	}

	sites, freqs := frequencyFilter(m, minFreq)
	if len(sites) == 0 {
		return nil, nil, nil
	}

	filtered, err := haplotype.Copy(m, sites)
	if err != nil {
		return nil, nil, fmt.Errorf("build filtered matrix: %w", err)
	}

	stats, err := s.sites(ctx, filtered)
	if err != nil {
		return nil, nil, err
	}

	scores := make([]Score, len(sites))
	for i, site := range sites {
		scores[i] = Score{
			Site:      site,
			Position:  m.Position(site),
			Frequency: freqs[i],
			Statistic: stats[i],
		}
	}
	sortByFrequency(scores)

	bins, err := binByFrequency(scores, minFreq, binSize)
	if err != nil {
		return nil, nil, err
	}
	for _, b := range bins {
		b.standardize()
	}
	return scores, bins, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// NSL computes the statistic of one core site with default settings.
func NSL(m HaplotypeMatrix, core int, optFns ...Option) (Statistic, error) {
	return New(optFns...).Site(context.Background(), m, core)
}

// NSLAll computes the statistic of every site with default settings.
func NSLAll(ctx context.Context, m HaplotypeMatrix, optFns ...Option) ([]Statistic, error) {
	return New(optFns...).Sites(ctx, m)
}

// StandardizedNSL returns the largest-magnitude standardized nSL and iHS
// values with default settings.
func StandardizedNSL(ctx context.Context, m HaplotypeMatrix, minFreq, binSize float64, optFns ...Option) (Extremes, error) {
	return New(optFns...).Standardized(ctx, m, minFreq, binSize)
}
