package msio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nslscan/haplotype"
)

const twoReplicates = `ms 4 2 -t 5
1234 5678 9012

//
segsites: 3
positions: 0.1000 0.5000 0.9000
010
110
001
000

//
segsites: 2
positions: 0.2500 0.7500
01
10
11
00
`

func TestReadAll(t *testing.T) {
	reps, err := ReadAll(strings.NewReader(twoReplicates), 0)
	require.NoError(t, err)
	require.Len(t, reps, 2)

	m := reps[0]
	assert.Equal(t, 4, m.Size())
	assert.Equal(t, 3, m.NumSites())
	assert.Equal(t, []float64{0.1, 0.5, 0.9}, m.Positions())
	assert.Equal(t, "110", m.Haplotype(1))
	assert.Equal(t, 2, m.DerivedCount(1))

	assert.Equal(t, 2, reps[1].NumSites())
	assert.Equal(t, "11", reps[1].Haplotype(2))
}

func TestReadAllScalesPositions(t *testing.T) {
	reps, err := ReadAll(strings.NewReader(twoReplicates), 1000)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100, 500, 900}, reps[0].Positions(), 1e-9)
}

func TestReaderNoBlankLineBetweenBlocks(t *testing.T) {
	in := "//\nsegsites: 1\npositions: 0.5\n1\n0\n//\nsegsites: 1\npositions: 0.3\n0\n1\n"

	r := NewReader(strings.NewReader(in), 0)
	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, first.Size())

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3}, second.Positions())

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderZeroSegsites(t *testing.T) {
	reps, err := ReadAll(strings.NewReader("//\nsegsites: 0\n\n"), 0)
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, 0, reps[0].NumSites())
}

func TestReadAllErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"Empty", "ms 4 1\n", ErrNoReplicates},
		{"MissingSegsites", "//\npositions: 0.1\n", ErrMalformed},
		{"BadSegsites", "//\nsegsites: x\n", ErrMalformed},
		{"PositionCount", "//\nsegsites: 2\npositions: 0.1\n01\n", ErrMalformed},
		{"BadPosition", "//\nsegsites: 1\npositions: abc\n0\n", ErrMalformed},
		{"RaggedRows", "//\nsegsites: 2\npositions: 0.1 0.2\n01\n1\n", haplotype.ErrRaggedMatrix},
		{"TiedPositions", "//\nsegsites: 2\npositions: 0.1 0.1\n01\n10\n", haplotype.ErrUnsortedPositions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAll(strings.NewReader(tt.in), 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	t.Run("InvalidAllele", func(t *testing.T) {
		_, err := ReadAll(strings.NewReader("//\nsegsites: 1\npositions: 0.1\n2\n"), 0)
		var bad *haplotype.ErrInvalidAllele
		require.ErrorAs(t, err, &bad)
		assert.Equal(t, byte('2'), bad.Symbol)
	})
}
