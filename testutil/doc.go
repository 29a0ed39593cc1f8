// Package testutil provides testing utilities for nslscan.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for random
// haplotype matrices and genetic maps.
//
// # Random Matrices
//
//	rng := testutil.NewRNG(seed)
//	m := rng.Matrix(50, 200)          // 50 samples, 200 sites
//	gmap := testutil.LinearGeneticMap(m, 1e-2)
package testutil
