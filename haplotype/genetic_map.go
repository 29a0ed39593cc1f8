package haplotype

// GeneticMap maps physical positions to genetic positions by exact key.
// The zero value is an empty map, which selects physical distances.
type GeneticMap map[float64]float64

// NewGeneticMap pairs physical and genetic positions.
func NewGeneticMap(physical, genetic []float64) (GeneticMap, error) {
	if len(physical) != len(genetic) {
		return nil, ErrLengthMismatch
	}
	g := make(GeneticMap, len(physical))
	for i, p := range physical {
		g[p] = genetic[i]
	}
	return g, nil
}

// Lookup returns the genetic position of a physical position.
func (g GeneticMap) Lookup(position float64) (float64, bool) {
	v, ok := g[position]
	return v, ok
}

// Len returns the number of mapped positions.
func (g GeneticMap) Len() int { return len(g) }
