package nslscan

import "math"

// Statistic holds the nSL value and the iHS analog for one core site.
// Either value may be NaN when it is undefined for the site.
type Statistic struct {
	NSL float64
	IHS float64
}

// Extremes holds the standardized value of largest magnitude per statistic,
// with its sign. A value is NaN when no finite standardized value exists.
type Extremes struct {
	NSL float64
	IHS float64
}

// statistic reduces the per-group means to log ratios. NaN and infinities
// from empty groups or zero means propagate unchanged.
func (e extensionSums) statistic() Statistic {
	m := e.means()
	return Statistic{
		NSL: math.Log(m[0]) - math.Log(m[2]),
		IHS: math.Log(m[1]) - math.Log(m[3]),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nan() float64 { return math.NaN() }
