// Package nslscan computes haplotype-based selection scan statistics.
//
// For every core site of a haplotype matrix, nslscan compares all pairs of
// samples that carry the same allele at the core and measures how far their
// shared haplotype extends on both sides. The mean extension of ancestral
// and derived carriers is reduced to two log ratios: nSL (extension counted
// in sites) and an iHS analog (extension measured along the genetic map, or
// in physical units when no map is given).
//
// # Quick Start
//
//	m, _ := haplotype.New(positions, haplotypes)
//
//	// One core site
//	st, _ := nslscan.NSL(m, 42)
//
//	// Every site, on 8 workers
//	s := nslscan.New(nslscan.WithWorkers(8))
//	stats, _ := s.Sites(ctx, m)
//
//	// Frequency-binned standardization, reduced to the extreme values
//	ext, _ := s.Standardized(ctx, m, 0.05, 0.05)
//	fmt.Println(ext.NSL, ext.IHS)
//
// # Valid Comparisons
//
// A pair contributes only when its shared run ends in a mismatch on both
// sides. Runs that reach either end of the matrix have unknown length and
// are skipped. A group (ancestral or derived) without valid comparisons
// yields NaN.
//
// # Undefined Values
//
// NaN marks a statistic that is undefined for the data (no valid
// comparisons, zero variance within a bin, no site passing the frequency
// filter). It is never an error. Errors are reserved for data integrity
// problems: *ErrMissingGeneticMapEntry and *ErrBinningConsistency abort the
// whole call and no partial result is returned.
//
// # Concurrency
//
// Per-site work is independent and runs on a bounded pool of goroutines
// (see WithWorkers). Results are written to a slot per site index, so the
// output is identical for every worker count.
package nslscan
