package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/nslscan/haplotype"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Positions returns n strictly increasing positions with gaps in [1, 101).
func (r *RNG) Positions(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := make([]float64, n)
	cur := 0.0
	for i := range pos {
		cur += 1 + 100*r.rand.Float64()
		pos[i] = cur
	}
	return pos
}

// Haplotypes returns samples '0'/'1' strings of length sites. Each site
// draws its own derived allele frequency uniformly from (0, 1).
func (r *RNG) Haplotypes(samples, sites int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([][]byte, samples)
	for i := range rows {
		rows[i] = make([]byte, sites)
	}
	for j := 0; j < sites; j++ {
		p := r.rand.Float64()
		for i := range rows {
			if r.rand.Float64() < p {
				rows[i][j] = haplotype.Derived
			} else {
				rows[i][j] = haplotype.Ancestral
			}
		}
	}

	out := make([]string, samples)
	for i, row := range rows {
		out[i] = string(row)
	}
	return out
}

// Matrix returns a random haplotype matrix.
func (r *RNG) Matrix(samples, sites int) *haplotype.Matrix {
	m, err := haplotype.New(r.Positions(sites), r.Haplotypes(samples, sites))
	if err != nil {
		panic(err)
	}
	return m
}

// UniformMatrix returns a matrix in which every sample carries the same
// alleles at every site.
func UniformMatrix(samples, sites int) *haplotype.Matrix {
	row := make([]byte, sites)
	positions := make([]float64, sites)
	for j := range row {
		row[j] = haplotype.Ancestral
		if j%2 == 1 {
			row[j] = haplotype.Derived
		}
		positions[j] = float64(j + 1)
	}
	haps := make([]string, samples)
	for i := range haps {
		haps[i] = string(row)
	}
	m, err := haplotype.New(positions, haps)
	if err != nil {
		panic(err)
	}
	return m
}

// LinearGeneticMap maps every position of m to position*rate.
func LinearGeneticMap(m *haplotype.Matrix, rate float64) haplotype.GeneticMap {
	g := make(haplotype.GeneticMap, m.NumSites())
	for _, p := range m.Positions() {
		g[p] = p * rate
	}
	return g
}
