package nslscan

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nslscan/haplotype"
	"github.com/hupe1980/nslscan/testutil"
)

func requireSameBits(t *testing.T, want, got []Statistic) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, math.Float64bits(want[i].NSL), math.Float64bits(got[i].NSL), "nsl at site %d", i)
		require.Equal(t, math.Float64bits(want[i].IHS), math.Float64bits(got[i].IHS), "ihs at site %d", i)
	}
}

func TestScannerSite(t *testing.T) {
	m := mustMatrix(t, []float64{1, 2, 3, 4, 5},
		"00000",
		"10001",
		"01110",
		"11101",
	)

	t.Run("Value", func(t *testing.T) {
		st, err := New().Site(context.Background(), m, 2)
		require.NoError(t, err)
		assert.InDelta(t, math.Log(4)-math.Log(3), st.NSL, 1e-12)
		assert.InDelta(t, math.Log(2), st.IHS, 1e-12)
	})

	t.Run("ZeroDistanceGivesInfiniteIHS", func(t *testing.T) {
		m := mustMatrix(t, []float64{1, 2, 3, 4, 5},
			"00000",
			"10001",
			"10100",
			"01110",
		)

		st, err := New().Site(context.Background(), m, 2)
		require.NoError(t, err)
		assert.True(t, isFinite(st.NSL))
		assert.True(t, math.IsInf(st.IHS, 1))
	})

	t.Run("PackageHelper", func(t *testing.T) {
		st, err := NSL(m, 2)
		require.NoError(t, err)
		assert.InDelta(t, math.Log(4)-math.Log(3), st.NSL, 1e-12)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := New().Site(context.Background(), m, 5)
		var oor *ErrCoreSiteOutOfRange
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, 5, oor.Core)

		_, err = New().Site(context.Background(), m, -1)
		require.ErrorAs(t, err, &oor)
	})

	t.Run("MetricsRecorded", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		_, err := New(WithMetricsCollector(mc)).Site(context.Background(), m, 2)
		require.NoError(t, err)

		stats := mc.GetStats()
		assert.Equal(t, int64(1), stats.SiteCount)
		assert.Equal(t, int64(2), stats.Comparisons)
	})
}

func TestScannerSites(t *testing.T) {
	ctx := context.Background()

	t.Run("NoVariation", func(t *testing.T) {
		m := testutil.UniformMatrix(6, 10)

		stats, err := New(WithWorkers(3)).Sites(ctx, m)
		require.NoError(t, err)
		require.Len(t, stats, 10)
		for _, st := range stats {
			assert.True(t, math.IsNaN(st.NSL))
			assert.True(t, math.IsNaN(st.IHS))
		}
	})

	t.Run("MatchesSite", func(t *testing.T) {
		m := testutil.NewRNG(7).Matrix(20, 30)
		s := New(WithWorkers(2))

		stats, err := s.Sites(ctx, m)
		require.NoError(t, err)

		for core := 0; core < m.NumSites(); core++ {
			st, err := s.Site(ctx, m, core)
			require.NoError(t, err)
			requireSameBits(t, []Statistic{st}, stats[core:core+1])
		}
	})

	t.Run("DeterministicAcrossWorkers", func(t *testing.T) {
		m := testutil.NewRNG(4711).Matrix(40, 120)
		gmap := testutil.LinearGeneticMap(m, 1e-3)

		for _, opts := range [][]Option{
			nil,
			{WithGeneticMap(gmap)},
		} {
			seq, err := New(append(opts, WithWorkers(1))...).Sites(ctx, m)
			require.NoError(t, err)
			par, err := New(append(opts, WithWorkers(4))...).Sites(ctx, m)
			require.NoError(t, err)

			requireSameBits(t, seq, par)
		}
	})

	t.Run("GeneticMapFailureAbortsScan", func(t *testing.T) {
		m := testutil.NewRNG(11).Matrix(30, 60)
		gmap := testutil.LinearGeneticMap(m, 1e-3)
		delete(gmap, m.Position(30))

		for _, workers := range []int{1, 4} {
			stats, err := New(WithWorkers(workers), WithGeneticMap(gmap)).Sites(ctx, m)
			var missing *ErrMissingGeneticMapEntry
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, m.Position(30), missing.Position)
			assert.Nil(t, stats)
		}
	})

	t.Run("InvalidWorkers", func(t *testing.T) {
		_, err := New(WithWorkers(0)).Sites(ctx, testutil.UniformMatrix(2, 2))
		require.ErrorIs(t, err, ErrInvalidWorkers)
	})

	t.Run("Canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := New(WithWorkers(2)).Sites(cctx, testutil.NewRNG(1).Matrix(10, 10))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("EmptyMatrix", func(t *testing.T) {
		m, err := haplotype.New(nil, nil)
		require.NoError(t, err)

		stats, err := NSLAll(ctx, m)
		require.NoError(t, err)
		assert.Empty(t, stats)
	})
}

func TestScannerStandardized(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyInput", func(t *testing.T) {
		m, err := haplotype.New([]float64{1, 2, 3}, nil)
		require.NoError(t, err)

		ext, err := New().Standardized(ctx, m, 0.05, 0.1)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(ext.NSL))
		assert.True(t, math.IsNaN(ext.IHS))
	})

	t.Run("NoSiteQualifies", func(t *testing.T) {
		ext, err := New().Standardized(ctx, testutil.UniformMatrix(8, 12), 0.05, 0.1)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(ext.NSL))
		assert.True(t, math.IsNaN(ext.IHS))
	})

	t.Run("InvalidParameters", func(t *testing.T) {
		m := testutil.UniformMatrix(4, 4)

		_, err := New().Standardized(ctx, m, 0, 0.1)
		require.ErrorIs(t, err, ErrInvalidMinFreq)
		_, err = New().Standardized(ctx, m, 0.6, 0.1)
		require.ErrorIs(t, err, ErrInvalidMinFreq)
		_, err = New().Standardized(ctx, m, 0.05, 0)
		require.ErrorIs(t, err, ErrInvalidBinSize)
		_, err = New().Standardized(ctx, m, 0.05, 1.5)
		require.ErrorIs(t, err, ErrInvalidBinSize)
	})

	t.Run("MatchesScores", func(t *testing.T) {
		m := testutil.NewRNG(99).Matrix(50, 200)
		s := New(WithWorkers(4))

		ext, err := s.Standardized(ctx, m, 0.05, 0.1)
		require.NoError(t, err)
		require.False(t, math.IsNaN(ext.NSL))
		require.False(t, math.IsNaN(ext.IHS))

		scores, err := s.StandardizedScores(ctx, m, 0.05, 0.1)
		require.NoError(t, err)
		require.NotEmpty(t, scores)

		var maxNSL, maxIHS float64
		for i, sc := range scores {
			if i > 0 {
				assert.LessOrEqual(t, scores[i-1].Frequency, sc.Frequency)
			}
			assert.Equal(t, m.Position(sc.Site), sc.Position)
			if isFinite(sc.Z.NSL) {
				maxNSL = math.Max(maxNSL, math.Abs(sc.Z.NSL))
			}
			if isFinite(sc.Z.IHS) {
				maxIHS = math.Max(maxIHS, math.Abs(sc.Z.IHS))
			}
		}
		assert.Equal(t, maxNSL, math.Abs(ext.NSL))
		assert.Equal(t, maxIHS, math.Abs(ext.IHS))
	})

	t.Run("DeterministicAcrossWorkers", func(t *testing.T) {
		m := testutil.NewRNG(5).Matrix(40, 150)

		a, err := StandardizedNSL(ctx, m, 0.1, 0.05, WithWorkers(1))
		require.NoError(t, err)
		b, err := StandardizedNSL(ctx, m, 0.1, 0.05, WithWorkers(4))
		require.NoError(t, err)

		assert.Equal(t, math.Float64bits(a.NSL), math.Float64bits(b.NSL))
		assert.Equal(t, math.Float64bits(a.IHS), math.Float64bits(b.IHS))
	})

	t.Run("MissingGeneticMapEntry", func(t *testing.T) {
		m := testutil.NewRNG(12).Matrix(40, 100)
		gmap := haplotype.GeneticMap{m.Position(0): 0}

		ext, err := New(WithGeneticMap(gmap), WithWorkers(3)).Standardized(ctx, m, 0.05, 0.1)
		var missing *ErrMissingGeneticMapEntry
		require.ErrorAs(t, err, &missing)
		assert.True(t, math.IsNaN(ext.NSL))

		mc := &BasicMetricsCollector{}
		_, err = New(WithGeneticMap(gmap), WithMetricsCollector(mc)).Standardized(ctx, m, 0.05, 0.1)
		require.Error(t, err)
		assert.Equal(t, int64(1), mc.GetStats().ScanErrors)
	})

	t.Run("FilterKeepsOnlyFrequentSites", func(t *testing.T) {
		m := testutil.NewRNG(3).Matrix(20, 80)

		scores, err := New().StandardizedScores(ctx, m, 0.2, 0.1)
		require.NoError(t, err)
		for _, sc := range scores {
			assert.GreaterOrEqual(t, math.Min(sc.Frequency, 1-sc.Frequency), 0.2)
		}
	})
}

func TestErrors(t *testing.T) {
	err := error(&ErrBinningConsistency{Binned: 3, Expected: 4})
	assert.True(t, errors.Is(err, ErrBinning))
	assert.Contains(t, err.Error(), "got 3, want 4")

	err = &ErrBinningConsistency{Frequency: 0.3, Low: 0.1, High: 0.2}
	assert.True(t, errors.Is(err, ErrBinning))
	assert.Contains(t, err.Error(), "outside bin")

	err = &ErrMissingGeneticMapEntry{Position: 12.5}
	assert.Contains(t, err.Error(), "12.5")
}
