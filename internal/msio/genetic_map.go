package msio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/nslscan/haplotype"
)

// ReadGeneticMap parses a two-column table of physical and genetic
// positions. Columns are separated by tabs or spaces; blank lines and lines
// starting with '#' are skipped. A later row for the same physical position
// replaces an earlier one.
func ReadGeneticMap(r io.Reader) (haplotype.GeneticMap, error) {
	gmap := make(haplotype.GeneticMap)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		fields := strings.Fields(s)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: genetic map line %d: want 2 columns, got %d", ErrMalformed, line, len(fields))
		}
		physical, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: genetic map line %d: %v", ErrMalformed, line, err)
		}
		genetic, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: genetic map line %d: %v", ErrMalformed, line, err)
		}
		gmap[physical] = genetic
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return gmap, nil
}
