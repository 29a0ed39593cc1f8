package haplotype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m, err := New([]float64{1, 2, 3}, []string{"010", "011", "110"})
		require.NoError(t, err)

		assert.Equal(t, 3, m.Size())
		assert.Equal(t, 3, m.NumSites())
		assert.Equal(t, 2.0, m.Position(1))
		assert.True(t, m.Derived(2, 0))
		assert.False(t, m.Derived(0, 0))
		assert.Equal(t, "011", m.Haplotype(1))
	})

	t.Run("Ragged", func(t *testing.T) {
		_, err := New([]float64{1, 2, 3}, []string{"010", "01"})
		require.ErrorIs(t, err, ErrRaggedMatrix)
	})

	t.Run("UnsortedPositions", func(t *testing.T) {
		_, err := New([]float64{1, 1, 3}, []string{"010"})
		require.ErrorIs(t, err, ErrUnsortedPositions)
	})

	t.Run("InvalidAllele", func(t *testing.T) {
		_, err := New([]float64{1, 2}, []string{"01", "0x"})
		var ia *ErrInvalidAllele
		require.ErrorAs(t, err, &ia)
		assert.Equal(t, 1, ia.Sample)
		assert.Equal(t, 1, ia.Site)
		assert.Equal(t, byte('x'), ia.Symbol)
	})

	t.Run("NoSamples", func(t *testing.T) {
		m, err := New([]float64{1, 2}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Size())
		assert.Equal(t, 2, m.NumSites())
		assert.Equal(t, 0, m.DerivedCount(0))
	})
}

func TestDerivedCount(t *testing.T) {
	m, err := New([]float64{1, 2, 3, 4}, []string{
		"0101",
		"0111",
		"0100",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, m.DerivedCount(0))
	assert.Equal(t, 3, m.DerivedCount(1))
	assert.Equal(t, 1, m.DerivedCount(2))
	assert.Equal(t, 2, m.DerivedCount(3))

	assert.False(t, m.Polymorphic(0))
	assert.False(t, m.Polymorphic(1))
	assert.True(t, m.Polymorphic(2))

	c := m.Carriers(3)
	assert.Equal(t, []uint32{0, 1}, c.ToArray())

	// Carriers hands out a copy.
	c.Add(2)
	assert.Equal(t, 2, m.DerivedCount(3))
}

func TestSubset(t *testing.T) {
	m, err := New([]float64{10, 20, 30, 40}, []string{
		"0101",
		"1110",
	})
	require.NoError(t, err)

	t.Run("SelectsSites", func(t *testing.T) {
		sub, err := m.Subset([]int{1, 3})
		require.NoError(t, err)

		assert.Equal(t, 2, sub.Size())
		assert.Equal(t, []float64{20, 40}, sub.Positions())
		assert.Equal(t, "11", sub.Haplotype(0))
		assert.Equal(t, "10", sub.Haplotype(1))
		assert.Equal(t, 2, sub.DerivedCount(0))
		assert.Equal(t, 1, sub.DerivedCount(1))
	})

	t.Run("Empty", func(t *testing.T) {
		sub, err := m.Subset(nil)
		require.NoError(t, err)
		assert.Equal(t, 2, sub.Size())
		assert.Equal(t, 0, sub.NumSites())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := m.Subset([]int{0, 4})
		var oor *ErrSiteOutOfRange
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, 4, oor.Site)
	})

	t.Run("Unsorted", func(t *testing.T) {
		_, err := m.Subset([]int{2, 1})
		require.ErrorIs(t, err, ErrUnsortedPositions)
	})
}

// rowSource is a minimal Source that is not a *Matrix.
type rowSource struct {
	positions []float64
	rows      [][]bool
}

func (r rowSource) Size() int                     { return len(r.rows) }
func (r rowSource) NumSites() int                 { return len(r.positions) }
func (r rowSource) Position(site int) float64     { return r.positions[site] }
func (r rowSource) Derived(sample, site int) bool { return r.rows[sample][site] }

func TestCopy(t *testing.T) {
	src := rowSource{
		positions: []float64{1, 2, 3},
		rows: [][]bool{
			{true, false, true},
			{false, false, true},
		},
	}

	m, err := Copy(src, []int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, m.Positions())
	assert.Equal(t, "11", m.Haplotype(0))
	assert.Equal(t, "01", m.Haplotype(1))
	assert.Equal(t, 2, m.DerivedCount(1))

	// The copy does not alias the source rows.
	src.rows[0][0] = false
	assert.True(t, m.Derived(0, 0))
}

func TestGeneticMap(t *testing.T) {
	g, err := NewGeneticMap([]float64{1, 2}, []float64{0.5, 0.75})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())

	v, ok := g.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, 0.75, v)

	_, ok = g.Lookup(3)
	assert.False(t, ok)

	_, err = NewGeneticMap([]float64{1}, nil)
	require.ErrorIs(t, err, ErrLengthMismatch)

	var empty GeneticMap
	assert.Equal(t, 0, empty.Len())
}
