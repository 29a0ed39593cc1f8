package nslscan

import (
	"math"
)

const (
	ancestral = 0
	derived   = 1
)

// haplotypeView is a one-directional walk over one sample's alleles.
// Offset k maps to site start + k*step.
type haplotypeView struct {
	m      HaplotypeMatrix
	sample int
	start  int
	step   int
	n      int
}

// forwardView walks from core (inclusive) to the last site.
func forwardView(m HaplotypeMatrix, sample, core int) haplotypeView {
	return haplotypeView{m: m, sample: sample, start: core, step: 1, n: m.NumSites() - core}
}

// reverseView walks from core-1 down to site 0.
func reverseView(m HaplotypeMatrix, sample, core int) haplotypeView {
	return haplotypeView{m: m, sample: sample, start: core - 1, step: -1, n: core}
}

func (v haplotypeView) at(k int) bool {
	return v.m.Derived(v.sample, v.start+k*v.step)
}

func (v haplotypeView) site(k int) int {
	return v.start + k*v.step
}

// mismatch returns the offset of the first site at which a and b differ.
// ok is false when a runs out of sites first.
func mismatch(a, b haplotypeView) (offset int, ok bool) {
	for k := 0; k < a.n; k++ {
		if a.at(k) != b.at(k) {
			return k, true
		}
	}
	return a.n, false
}

// extensionSums accumulates shared haplotype lengths per allele group at one
// core site. Index 0 is the ancestral group, 1 the derived group.
type extensionSums struct {
	length      [2]float64
	distance    [2]float64
	comparisons [2]int
}

// means returns the mean site length and mean distance per group in the
// order (ancestral length, ancestral distance, derived length, derived
// distance). A group without valid comparisons yields NaN.
func (e extensionSums) means() [4]float64 {
	return [4]float64{
		e.length[ancestral] / float64(e.comparisons[ancestral]),
		e.distance[ancestral] / float64(e.comparisons[ancestral]),
		e.length[derived] / float64(e.comparisons[derived]),
		e.distance[derived] / float64(e.comparisons[derived]),
	}
}

func (e extensionSums) total() int {
	return e.comparisons[ancestral] + e.comparisons[derived]
}

// pairwiseExtension compares every pair of samples that share the allele at
// core and sums the extent of their shared haplotype. Pairs whose shared run
// reaches either end of the matrix are skipped because their length is
// unknown.
func pairwiseExtension(m HaplotypeMatrix, gmap GeneticMap, core int) (extensionSums, error) {
	var sums extensionSums

	n := m.Size()
	group := make([]int, n)
	for i := 0; i < n; i++ {
		if m.Derived(i, core) {
			group[i] = derived
		}
	}

	for i := 0; i < n; i++ {
		ri, li := forwardView(m, i, core), reverseView(m, i, core)
		for j := i + 1; j < n; j++ {
			if group[i] != group[j] {
				continue
			}

			roff, rok := mismatch(ri, forwardView(m, j, core))
			if !rok {
				continue
			}
			loff, lok := mismatch(li, reverseView(m, j, core))
			if !lok {
				continue
			}

			right, left := ri.site(roff), li.site(loff)
			dist, err := segmentDistance(m, gmap, left, right)
			if err != nil {
				return extensionSums{}, err
			}

			g := group[i]
			sums.length[g] += float64(right - left)
			sums.distance[g] += dist
			sums.comparisons[g]++
		}
	}

	return sums, nil
}

// segmentDistance returns the length of the shared run strictly between the
// mismatching sites left and right, measured on the genetic map when one is
// present and in physical units otherwise.
func segmentDistance(m HaplotypeMatrix, gmap GeneticMap, left, right int) (float64, error) {
	p1 := m.Position(right - 1)
	p2 := m.Position(left + 1)
	if physicalMode(gmap) {
		return math.Abs(p1 - p2), nil
	}

	g1, ok := gmap.Lookup(p1)
	if !ok {
		return 0, &ErrMissingGeneticMapEntry{Position: p1}
	}
	g2, ok := gmap.Lookup(p2)
	if !ok {
		return 0, &ErrMissingGeneticMapEntry{Position: p2}
	}
	return math.Abs(g1 - g2), nil
}
