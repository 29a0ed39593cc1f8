package haplotype

import (
	"errors"
	"fmt"
)

var (
	// ErrRaggedMatrix is returned when haplotypes differ in length from the
	// number of positions.
	ErrRaggedMatrix = errors.New("haplotype: all haplotypes must have one allele per site")

	// ErrUnsortedPositions is returned when positions are not strictly increasing.
	ErrUnsortedPositions = errors.New("haplotype: positions must be strictly increasing")

	// ErrLengthMismatch is returned when paired slices differ in length.
	ErrLengthMismatch = errors.New("haplotype: length mismatch")
)

// ErrInvalidAllele indicates an allele symbol other than '0' or '1'.
type ErrInvalidAllele struct {
	Sample int
	Site   int
	Symbol byte
}

func (e *ErrInvalidAllele) Error() string {
	return fmt.Sprintf("haplotype: invalid allele %q at sample %d, site %d", e.Symbol, e.Sample, e.Site)
}

// ErrSiteOutOfRange indicates a site index outside [0, NumSites).
type ErrSiteOutOfRange struct {
	Site     int
	NumSites int
}

func (e *ErrSiteOutOfRange) Error() string {
	return fmt.Sprintf("haplotype: site %d out of range [0, %d)", e.Site, e.NumSites)
}
