package nslscan

// HaplotypeMatrix is a read-only matrix of haploid samples (rows) by
// polymorphic sites (columns).
//
// Implementations must be safe for concurrent readers: the dispatcher calls
// Derived from many goroutines at once. Positions must be strictly increasing.
type HaplotypeMatrix interface {
	// Size returns the number of samples.
	Size() int
	// NumSites returns the number of sites.
	NumSites() int
	// Position returns the physical position of a site.
	Position(site int) float64
	// Derived reports whether sample carries the derived allele at site.
	Derived(sample, site int) bool
}

// GeneticMap maps physical positions to genetic positions.
//
// A nil map, or one with Len() == 0, selects physical distance for the
// whole call.
type GeneticMap interface {
	Lookup(position float64) (float64, bool)
	Len() int
}

// DerivedCounter is an optional fast path for counting derived alleles per site.
type DerivedCounter interface {
	DerivedCount(site int) int
}

func derivedCount(m HaplotypeMatrix, site int) int {
	if dc, ok := m.(DerivedCounter); ok {
		return dc.DerivedCount(site)
	}
	n := 0
	for i := 0; i < m.Size(); i++ {
		if m.Derived(i, site) {
			n++
		}
	}
	return n
}

func physicalMode(gmap GeneticMap) bool {
	return gmap == nil || gmap.Len() == 0
}
