package nslscan

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMinFreq is returned when the minimum frequency is outside (0, 0.5].
	ErrInvalidMinFreq = errors.New("minimum frequency must be in (0, 0.5]")

	// ErrInvalidBinSize is returned when the bin size is outside (0, 1].
	ErrInvalidBinSize = errors.New("bin size must be in (0, 1]")

	// ErrInvalidWorkers is returned when the worker count is less than one.
	ErrInvalidWorkers = errors.New("worker count must be positive")

	// ErrBinning is the sentinel matched by every *ErrBinningConsistency.
	ErrBinning = errors.New("frequency binning inconsistency")
)

// ErrMissingGeneticMapEntry indicates that a physical position needed for a
// genetic distance is absent from the genetic map. It aborts the whole scan.
type ErrMissingGeneticMapEntry struct {
	Position float64
}

func (e *ErrMissingGeneticMapEntry) Error() string {
	return fmt.Sprintf("position %g could not be found in genetic map", e.Position)
}

// ErrBinningConsistency indicates a logic fault in frequency bin construction.
//
// Either an entry landed outside its bin (Frequency, Low and High are set),
// or the number of binned entries differs from the number of filtered sites
// (Binned and Expected are set).
type ErrBinningConsistency struct {
	Frequency float64
	Low       float64
	High      float64
	Binned    int
	Expected  int
}

func (e *ErrBinningConsistency) Error() string {
	if e.Expected > 0 || e.Binned > 0 {
		return fmt.Sprintf("incorrect number of sites binned: got %d, want %d", e.Binned, e.Expected)
	}
	return fmt.Sprintf("frequency %g outside bin [%g, %g)", e.Frequency, e.Low, e.High)
}

func (e *ErrBinningConsistency) Unwrap() error { return ErrBinning }

// ErrCoreSiteOutOfRange indicates a core site index outside [0, NumSites).
type ErrCoreSiteOutOfRange struct {
	Core     int
	NumSites int
}

func (e *ErrCoreSiteOutOfRange) Error() string {
	return fmt.Sprintf("core site %d out of range [0, %d)", e.Core, e.NumSites)
}
