package haplotype

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

const (
	// Ancestral is the allele symbol of the ancestral state.
	Ancestral = '0'
	// Derived is the allele symbol of the derived state.
	Derived = '1'
)

// Source is the read-only view Copy needs from a matrix.
type Source interface {
	Size() int
	NumSites() int
	Position(site int) float64
	Derived(sample, site int) bool
}

// Matrix is an immutable samples-by-sites matrix of biallelic haplotypes.
type Matrix struct {
	positions []float64
	rows      [][]bool
	carriers  []*roaring.Bitmap
}

// New builds a Matrix from site positions and one '0'/'1' string per sample.
func New(positions []float64, haplotypes []string) (*Matrix, error) {
	if err := checkPositions(positions); err != nil {
		return nil, err
	}

	rows := make([][]bool, len(haplotypes))
	for i, h := range haplotypes {
		if len(h) != len(positions) {
			return nil, ErrRaggedMatrix
		}
		row := make([]bool, len(h))
		for j := 0; j < len(h); j++ {
			switch h[j] {
			case Ancestral:
			case Derived:
				row[j] = true
			default:
				return nil, &ErrInvalidAllele{Sample: i, Site: j, Symbol: h[j]}
			}
		}
		rows[i] = row
	}

	return build(append([]float64(nil), positions...), rows), nil
}

// NewFromRows builds a Matrix from site positions and boolean rows, where
// true marks the derived allele. The rows are copied.
func NewFromRows(positions []float64, rows [][]bool) (*Matrix, error) {
	if err := checkPositions(positions); err != nil {
		return nil, err
	}
	cp := make([][]bool, len(rows))
	for i, r := range rows {
		if len(r) != len(positions) {
			return nil, ErrRaggedMatrix
		}
		cp[i] = append([]bool(nil), r...)
	}
	return build(append([]float64(nil), positions...), cp), nil
}

func build(positions []float64, rows [][]bool) *Matrix {
	carriers := make([]*roaring.Bitmap, len(positions))
	for j := range carriers {
		carriers[j] = roaring.New()
	}
	for i, row := range rows {
		for j, d := range row {
			if d {
				carriers[j].Add(uint32(i))
			}
		}
	}
	for _, c := range carriers {
		c.RunOptimize()
	}
	return &Matrix{positions: positions, rows: rows, carriers: carriers}
}

func checkPositions(positions []float64) error {
	for i := 1; i < len(positions); i++ {
		if !(positions[i] > positions[i-1]) {
			return ErrUnsortedPositions
		}
	}
	return nil
}

// Size returns the number of samples.
func (m *Matrix) Size() int { return len(m.rows) }

// NumSites returns the number of sites.
func (m *Matrix) NumSites() int { return len(m.positions) }

// Position returns the physical position of site.
func (m *Matrix) Position(site int) float64 { return m.positions[site] }

// Positions returns a copy of all site positions.
func (m *Matrix) Positions() []float64 {
	return append([]float64(nil), m.positions...)
}

// Derived reports whether sample carries the derived allele at site.
func (m *Matrix) Derived(sample, site int) bool { return m.rows[sample][site] }

// DerivedCount returns the number of samples carrying the derived allele at site.
func (m *Matrix) DerivedCount(site int) int {
	return int(m.carriers[site].GetCardinality())
}

// Polymorphic reports whether site carries both alleles.
func (m *Matrix) Polymorphic(site int) bool {
	dc := m.DerivedCount(site)
	return dc > 0 && dc < m.Size()
}

// Carriers returns a copy of the set of samples carrying the derived allele at site.
func (m *Matrix) Carriers(site int) *roaring.Bitmap {
	return m.carriers[site].Clone()
}

// Haplotype returns the alleles of sample as a '0'/'1' string.
func (m *Matrix) Haplotype(sample int) string {
	var b strings.Builder
	b.Grow(len(m.rows[sample]))
	for _, d := range m.rows[sample] {
		if d {
			b.WriteByte(Derived)
		} else {
			b.WriteByte(Ancestral)
		}
	}
	return b.String()
}

// Subset returns an independent Matrix holding only the given sites, in the
// given order. Sites must be strictly increasing.
func (m *Matrix) Subset(sites []int) (*Matrix, error) {
	if err := checkSites(sites, m.NumSites()); err != nil {
		return nil, err
	}

	positions := make([]float64, len(sites))
	carriers := make([]*roaring.Bitmap, len(sites))
	for k, s := range sites {
		positions[k] = m.positions[s]
		carriers[k] = m.carriers[s].Clone()
	}

	rows := make([][]bool, len(m.rows))
	for i, row := range m.rows {
		r := make([]bool, len(sites))
		for k, s := range sites {
			r[k] = row[s]
		}
		rows[i] = r
	}

	return &Matrix{positions: positions, rows: rows, carriers: carriers}, nil
}

// Copy materializes the given sites of src into a new Matrix.
// A *Matrix source takes the Subset path.
func Copy(src Source, sites []int) (*Matrix, error) {
	if m, ok := src.(*Matrix); ok {
		return m.Subset(sites)
	}
	if err := checkSites(sites, src.NumSites()); err != nil {
		return nil, err
	}

	positions := make([]float64, len(sites))
	for k, s := range sites {
		positions[k] = src.Position(s)
	}
	if err := checkPositions(positions); err != nil {
		return nil, err
	}

	rows := make([][]bool, src.Size())
	for i := range rows {
		r := make([]bool, len(sites))
		for k, s := range sites {
			r[k] = src.Derived(i, s)
		}
		rows[i] = r
	}
	return build(positions, rows), nil
}

func checkSites(sites []int, numSites int) error {
	for k, s := range sites {
		if s < 0 || s >= numSites {
			return &ErrSiteOutOfRange{Site: s, NumSites: numSites}
		}
		if k > 0 && s <= sites[k-1] {
			return ErrUnsortedPositions
		}
	}
	return nil
}
