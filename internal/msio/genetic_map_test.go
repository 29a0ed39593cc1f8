package msio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadGeneticMap(t *testing.T) {
	in := "# position\tcM\n100\t0.01\n\n250 0.04\n100\t0.02\n"

	gmap, err := ReadGeneticMap(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, gmap.Len())

	v, ok := gmap.Lookup(100)
	require.True(t, ok)
	assert.Equal(t, 0.02, v)

	_, ok = gmap.Lookup(101)
	assert.False(t, ok)
}

func TestReadGeneticMapErrors(t *testing.T) {
	for _, in := range []string{"100\n", "100 0.1 7\n", "abc 0.1\n", "100 x\n"} {
		_, err := ReadGeneticMap(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrMalformed, in)
	}

	gmap, err := ReadGeneticMap(strings.NewReader("# only comments\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, gmap.Len())
}
