package msio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/nslscan/haplotype"
)

var (
	// ErrMalformed is returned when the input does not follow the ms block layout.
	ErrMalformed = errors.New("msio: malformed ms output")
	// ErrNoReplicates is returned by ReadAll when the input holds no "//" block.
	ErrNoReplicates = errors.New("msio: no replicates found")
)

// Reader iterates over the replicates of an ms output stream.
type Reader struct {
	sc *bufio.Scanner
	// length scales ms positions from [0, 1] to physical units; 0 keeps them.
	length float64
	line   int
	index  int
	peeked *string
}

// NewReader returns a Reader over r. A positive length multiplies every
// position, turning relative ms coordinates into physical ones.
func NewReader(r io.Reader, length float64) *Reader {
	sc := bufio.NewScanner(r)
	// Haplotype rows grow with the number of segregating sites.
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	return &Reader{sc: sc, length: length}
}

func (r *Reader) next() (string, bool) {
	if r.peeked != nil {
		s := *r.peeked
		r.peeked = nil
		return s, true
	}
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return strings.TrimSpace(r.sc.Text()), true
}

func (r *Reader) unread(s string) { r.peeked = &s }

func (r *Reader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, r.line, fmt.Sprintf(format, args...))
}

// Next parses the next replicate. It returns io.EOF after the last one.
func (r *Reader) Next() (*haplotype.Matrix, error) {
	// Skip the command line, seeds and anything else up to the block marker.
	for {
		s, ok := r.next()
		if !ok {
			if err := r.sc.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		if strings.HasPrefix(s, "//") {
			break
		}
	}
	r.index++

	s, ok := r.next()
	if !ok || !strings.HasPrefix(s, "segsites:") {
		return nil, r.errorf("replicate %d: expected segsites", r.index)
	}
	segsites, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(s, "segsites:")))
	if err != nil || segsites < 0 {
		return nil, r.errorf("replicate %d: bad segsites %q", r.index, s)
	}
	if segsites == 0 {
		return haplotype.New(nil, nil)
	}

	s, ok = r.next()
	if !ok || !strings.HasPrefix(s, "positions:") {
		return nil, r.errorf("replicate %d: expected positions", r.index)
	}
	fields := strings.Fields(strings.TrimPrefix(s, "positions:"))
	if len(fields) != segsites {
		return nil, r.errorf("replicate %d: %d positions for %d segregating sites", r.index, len(fields), segsites)
	}
	positions := make([]float64, segsites)
	for i, f := range fields {
		p, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, r.errorf("replicate %d: bad position %q", r.index, f)
		}
		if r.length > 0 {
			p *= r.length
		}
		positions[i] = p
	}

	var rows []string
	for {
		s, ok := r.next()
		if !ok || s == "" {
			break
		}
		if strings.HasPrefix(s, "//") {
			r.unread(s)
			break
		}
		rows = append(rows, s)
	}
	if err := r.sc.Err(); err != nil {
		return nil, err
	}

	m, err := haplotype.New(positions, rows)
	if err != nil {
		return nil, fmt.Errorf("replicate %d: %w", r.index, err)
	}
	return m, nil
}

// ReadAll parses every replicate of r.
func ReadAll(r io.Reader, length float64) ([]*haplotype.Matrix, error) {
	mr := NewReader(r, length)

	var out []*haplotype.Matrix
	for {
		m, err := mr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, ErrNoReplicates
	}
	return out, nil
}
