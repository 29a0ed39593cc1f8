package nslscan

import (
	"math"
	"slices"
	"sort"
)

// Score is one frequency-filtered site with its raw and standardized
// statistics.
type Score struct {
	// Site is the index of the site in the scanned matrix.
	Site int
	// Position is the physical position of the site.
	Position float64
	// Frequency is the derived allele frequency.
	Frequency float64
	// Statistic holds the raw nSL and iHS values.
	Statistic Statistic
	// Z holds the values standardized within the frequency bin. Entries of
	// bins with fewer than two sites are NaN.
	Z Statistic
}

// FrequencyBin is the half-open derived allele frequency interval
// [Low, High) and the scores that fall into it.
type FrequencyBin struct {
	Low     float64
	High    float64
	Entries []Score
}

// frequencyFilter returns the polymorphic sites whose minor allele frequency
// is at least minFreq, with their derived allele frequencies.
func frequencyFilter(m HaplotypeMatrix, minFreq float64) (sites []int, freqs []float64) {
	n := m.Size()
	for site := 0; site < m.NumSites(); site++ {
		dc := derivedCount(m, site)
		if dc == 0 || dc >= n {
			continue
		}
		f := float64(dc) / float64(n)
		if math.Min(f, 1-f) >= minFreq {
			sites = append(sites, site)
			freqs = append(freqs, f)
		}
	}
	return sites, freqs
}

// sortByFrequency orders scores by ascending frequency. Ties keep site order.
func sortByFrequency(scores []Score) {
	slices.SortStableFunc(scores, func(a, b Score) int {
		switch {
		case a.Frequency < b.Frequency:
			return -1
		case a.Frequency > b.Frequency:
			return 1
		}
		return 0
	})
}

// binByFrequency partitions frequency-sorted scores into contiguous bins of
// width binSize starting at minFreq. Only bins holding at least one score are
// returned. Bins alias the scores slice.
//
// Bin bounds are accumulated by repeated addition so that the upper bound of
// one bin is bit-identical to the lower bound of the next.
func binByFrequency(scores []Score, minFreq, binSize float64) ([]FrequencyBin, error) {
	var bins []FrequencyBin

	cursor, binned := 0, 0
	for low := minFreq; low < 1; low += binSize {
		high := low + binSize
		if high <= low {
			return nil, ErrInvalidBinSize
		}

		rest := scores[cursor:]
		first := cursor + sort.Search(len(rest), func(i int) bool {
			return rest[i].Frequency >= low
		})
		tail := scores[first:]
		last := first + sort.Search(len(tail), func(i int) bool {
			return tail[i].Frequency >= high
		})

		for _, sc := range scores[first:last] {
			if sc.Frequency < low || sc.Frequency >= high {
				return nil, &ErrBinningConsistency{Frequency: sc.Frequency, Low: low, High: high}
			}
		}

		if last > first {
			bins = append(bins, FrequencyBin{Low: low, High: high, Entries: scores[first:last]})
		}
		binned += last - first
		cursor = last
	}

	if binned != len(scores) {
		return nil, &ErrBinningConsistency{Binned: binned, Expected: len(scores)}
	}
	return bins, nil
}

// standardize z-scores each statistic of the bin in place.
func (b FrequencyBin) standardize() {
	if len(b.Entries) < 2 {
		for i := range b.Entries {
			b.Entries[i].Z = Statistic{NSL: nan(), IHS: nan()}
		}
		return
	}

	nslFinite := func(s Statistic) bool { return isFinite(s.NSL) }
	nslMean, nslSD := binMoments(b.Entries, func(s Statistic) float64 { return s.NSL }, nslFinite)
	ihsMean, ihsSD := binMoments(b.Entries, func(s Statistic) float64 { return s.IHS }, nslFinite)

	for i := range b.Entries {
		st := b.Entries[i].Statistic
		b.Entries[i].Z = Statistic{
			NSL: zscore(st.NSL, nslMean, nslSD),
			IHS: zscore(st.IHS, ihsMean, ihsSD),
		}
	}
}

// binMoments returns the mean and sample standard deviation of one statistic
// over the bin. The mean sums the finite values of the statistic. The
// variance sums the squared deviations of every entry accepted by counted,
// so a non-finite value of an accepted entry makes the deviation non-finite.
// Both denominators count every entry of the bin (n for the mean, n-1 for
// the variance).
//
// The iHS variance is gated on nSL finiteness. A site whose iHS is infinite
// while its nSL is finite leaves the whole bin without iHS z-scores.
func binMoments(entries []Score, value func(Statistic) float64, counted func(Statistic) bool) (mean, sd float64) {
	n := float64(len(entries))

	var sum float64
	for _, e := range entries {
		if v := value(e.Statistic); isFinite(v) {
			sum += v
		}
	}
	mean = sum / n

	var ss float64
	for _, e := range entries {
		if counted(e.Statistic) {
			v := value(e.Statistic)
			ss += (v - mean) * (v - mean)
		}
	}
	return mean, math.Sqrt(ss / (n - 1))
}

func zscore(v, mean, sd float64) float64 {
	if !isFinite(sd) {
		return nan()
	}
	return (v - mean) / sd
}

// extremes returns the finite standardized value of largest magnitude per
// statistic. The first one encountered wins a tie.
func extremes(scores []Score) Extremes {
	ext := Extremes{NSL: nan(), IHS: nan()}
	for _, sc := range scores {
		if z := sc.Z.NSL; isFinite(z) && (!isFinite(ext.NSL) || math.Abs(z) > math.Abs(ext.NSL)) {
			ext.NSL = z
		}
		if z := sc.Z.IHS; isFinite(z) && (!isFinite(ext.IHS) || math.Abs(z) > math.Abs(ext.IHS)) {
			ext.IHS = z
		}
	}
	return ext
}
