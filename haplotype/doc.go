// Package haplotype provides an in-memory, read-only haplotype matrix and a
// map-backed genetic map.
//
// # Layout
//
// A Matrix stores one row of alleles per haploid sample (0 = ancestral,
// 1 = derived) together with a roaring bitmap per site holding the samples
// that carry the derived allele. Rows serve the pairwise extension scans;
// the per-site bitmaps answer frequency queries without touching rows.
//
// # Usage
//
//	m, err := haplotype.New([]float64{0.1, 0.2, 0.3}, []string{"010", "011", "110"})
//	if err != nil { ... }
//
//	m.DerivedCount(1) // 3
//
//	sub, _ := m.Subset([]int{0, 2}) // independent copy of sites 0 and 2
//
// A Matrix is never mutated after construction and is safe for concurrent
// readers.
package haplotype
