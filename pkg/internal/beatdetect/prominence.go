package beatdetect

import (
	"math"
	"sort"
)

type candidate struct {
	index      int
	prominence float64
}

// localMaxima returns plateau-aware local maxima in index order. A plateau
// counts once, at its middle sample. NaN samples never qualify and comparisons
// against them fail, which naturally breaks candidate runs at invalid data.
func localMaxima(samples []float64) []candidate {
	var out []candidate
	n := len(samples)
	i := 1
	for i < n-1 {
		if samples[i-1] < samples[i] {
			ahead := i + 1
			for ahead < n-1 && samples[ahead] == samples[i] {
				ahead++
			}
			if samples[ahead] < samples[i] {
				out = append(out, candidate{index: (i + ahead - 1) / 2})
				i = ahead
				continue
			}
		}
		i++
	}
	return out
}

// prominence measures how far a peak rises above its surroundings: scan each
// direction until a strictly higher sample (or the signal edge), track the
// lowest finite sample seen, and subtract the higher of the two bases.
func prominence(samples []float64, idx int) float64 {
	peak := samples[idx]

	scan := func(step int) float64 {
		low := peak
		for j := idx + step; j >= 0 && j < len(samples); j += step {
			v := samples[j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v > peak {
				break
			}
			if v < low {
				low = v
			}
		}
		return low
	}

	leftBase := scan(-1)
	rightBase := scan(+1)
	return peak - math.Max(leftBase, rightBase)
}

// enforceMinDistance keeps candidates greedily by descending prominence
// (exact ties resolved toward the earlier index) and discards any candidate
// within minDistance samples of one already kept. Returns kept indices in
// ascending order.
func enforceMinDistance(candidates []candidate, minDistance int) []int {
	if len(candidates) == 0 {
		return nil
	}

	order := make([]candidate, len(candidates))
	copy(order, candidates)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].prominence != order[j].prominence {
			return order[i].prominence > order[j].prominence
		}
		return order[i].index < order[j].index
	})

	kept := make([]int, 0, len(order))
	for _, c := range order {
		tooClose := false
		for _, k := range kept {
			if abs(c.index-k) < minDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c.index)
		}
	}

	sort.Ints(kept)
	return kept
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
