package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/hupe1980/nslscan"
	"github.com/hupe1980/nslscan/codec"
	"github.com/hupe1980/nslscan/haplotype"
)

var errNoInput = errors.New("--input is required")

// inputFlags registers the flags shared by every subcommand.
func (a *app) inputFlags(cmd *cobra.Command, input *string) {
	f := cmd.Flags()
	f.StringVarP(input, "input", "i", "", "ms output file (local path, s3://, minio:// or gs://; .gz/.zst/.lz4 are decompressed)")
	f.StringVar(&a.flags.GeneticMap, "map", "", "genetic map table (physical<TAB>genetic); physical distances when empty")
	f.Float64Var(&a.flags.Length, "length", 0, "scale ms positions by this sequence length")
	f.StringVar(&a.flags.Format, "format", a.flags.Format, "output format (tsv, jsonl)")
}

func workersFlag(a *app, cmd *cobra.Command) {
	cmd.Flags().IntVarP(&a.flags.Workers, "workers", "w", a.flags.Workers, "number of goroutines computing sites")
}

// each loads the input and genetic map, then calls fn once per replicate
// with a shared encoder.
func (a *app) each(cmd *cobra.Command, input string, standardized bool, fn func(ctx context.Context, s *nslscan.Scanner, enc codec.Encoder, rep int, m *haplotype.Matrix) error) error {
	if input == "" {
		return errNoInput
	}
	ctx := cmd.Context()

	reps, err := a.replicates(ctx, input)
	if err != nil {
		return err
	}
	gmap, err := a.geneticMap(ctx)
	if err != nil {
		return err
	}

	enc, err := codec.NewEncoder(codec.Format(a.cfg.Format), cmd.OutOrStdout(), standardized)
	if err != nil {
		return err
	}

	var g nslscan.GeneticMap
	if gmap != nil {
		g = gmap
	}
	s := a.scanner(g)

	for i, m := range reps {
		if err := fn(ctx, s, enc, i+1, m); err != nil {
			_ = enc.Flush()
			return err
		}
	}
	return enc.Flush()
}

func frequency(m *haplotype.Matrix, site int) float64 {
	if m.Size() == 0 {
		return 0
	}
	return float64(m.DerivedCount(site)) / float64(m.Size())
}

func siteRecord(rep int, m *haplotype.Matrix, site int, st nslscan.Statistic) codec.SiteRecord {
	return codec.SiteRecord{
		Replicate: rep,
		Site:      site,
		Position:  m.Position(site),
		Frequency: frequency(m, site),
		NSL:       codec.Float(st.NSL),
		IHS:       codec.Float(st.IHS),
	}
}

func (a *app) siteCommand() *cobra.Command {
	var (
		input string
		core  int
	)
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Compute nSL and iHS at one core site of every replicate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.each(cmd, input, false, func(ctx context.Context, s *nslscan.Scanner, enc codec.Encoder, rep int, m *haplotype.Matrix) error {
				st, err := s.Site(ctx, m, core)
				if err != nil {
					return err
				}
				return enc.EncodeSite(siteRecord(rep, m, core, st))
			})
		},
	}
	a.inputFlags(cmd, &input)
	cmd.Flags().IntVarP(&core, "core", "c", 0, "core site index")
	_ = cmd.MarkFlagRequired("core")
	return cmd
}

func (a *app) sitesCommand() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Compute nSL and iHS at every site of every replicate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.each(cmd, input, false, func(ctx context.Context, s *nslscan.Scanner, enc codec.Encoder, rep int, m *haplotype.Matrix) error {
				stats, err := s.Sites(ctx, m)
				if err != nil {
					return err
				}
				for site, st := range stats {
					if err := enc.EncodeSite(siteRecord(rep, m, site, st)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	a.inputFlags(cmd, &input)
	workersFlag(a, cmd)
	return cmd
}

func (a *app) scanCommand() *cobra.Command {
	var (
		input  string
		scores bool
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Standardize nSL and iHS in frequency bins and report the extremes",
		Long: `Filters sites by minor allele frequency, standardizes nSL and iHS within
derived-frequency bins and prints the standardized values of largest
magnitude per replicate. With --scores every standardized site is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minFreq, binSize := a.cfg.MinFreq, a.cfg.BinSize

			if !scores {
				return a.each(cmd, input, false, func(ctx context.Context, s *nslscan.Scanner, enc codec.Encoder, rep int, m *haplotype.Matrix) error {
					ext, err := s.Standardized(ctx, m, minFreq, binSize)
					if err != nil {
						return err
					}
					return enc.EncodeSummary(codec.Summary{
						Replicate: rep,
						Sites:     m.NumSites(),
						NSL:       codec.Float(ext.NSL),
						IHS:       codec.Float(ext.IHS),
					})
				})
			}

			return a.each(cmd, input, true, func(ctx context.Context, s *nslscan.Scanner, enc codec.Encoder, rep int, m *haplotype.Matrix) error {
				scored, err := s.StandardizedScores(ctx, m, minFreq, binSize)
				if err != nil {
					return err
				}
				for _, sc := range scored {
					r := siteRecord(rep, m, sc.Site, sc.Statistic)
					zn, zi := codec.Float(sc.Z.NSL), codec.Float(sc.Z.IHS)
					r.ZNSL, r.ZIHS = &zn, &zi
					if err := enc.EncodeSite(r); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	a.inputFlags(cmd, &input)
	workersFlag(a, cmd)
	cmd.Flags().Float64Var(&a.flags.MinFreq, "min-freq", a.flags.MinFreq, "minimum minor allele frequency")
	cmd.Flags().Float64Var(&a.flags.BinSize, "bin-size", a.flags.BinSize, "derived frequency bin width")
	cmd.Flags().BoolVar(&scores, "scores", false, "print every standardized site instead of the extremes")
	return cmd
}
