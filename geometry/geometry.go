// Package geometry validates hexagonal frequency-reuse cluster sizes and
// derives the reuse figures that follow from them.
package geometry

import "math"

// Shift is the (i, j) pair of hexagonal shift parameters for which
// N = i² + j² + i·j.
type Shift struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Solve searches i, j in [0, sqrt(N)] in increasing i then increasing j and
// returns the first pair satisfying N = i² + j² + i·j.
func Solve(n int) (Shift, bool) {
	if n <= 0 {
		return Shift{}, false
	}
	for i := 0; i*i <= n; i++ {
		for j := 0; j*j <= n; j++ {
			if i*i+j*j+i*j == n {
				return Shift{I: i, J: j}, true
			}
		}
	}
	return Shift{}, false
}

// IsValidClusterSize reports whether n is a valid hexagonal cluster size.
func IsValidClusterSize(n int) bool {
	_, ok := Solve(n)
	return ok
}

// ValidSizes lists every valid cluster size in [1, limit], ascending.
func ValidSizes(limit int) []int {
	var sizes []int
	for n := 1; n <= limit; n++ {
		if IsValidClusterSize(n) {
			sizes = append(sizes, n)
		}
	}
	return sizes
}

// Reuse holds frequency-reuse figures for a cluster size.
type Reuse struct {
	ClusterSize   int     `json:"cluster_size"`
	Factor        float64 `json:"factor"`
	DistanceRatio float64 `json:"distance_ratio"`
	SIRdB         float64 `json:"sir_db"`
}

// AnalyzeReuse computes the reuse factor 1/N, the co-channel reuse ratio
// D/R = sqrt(3N) and the signal-to-interference ratio for six first-tier
// interferers with a path-loss exponent of 3.
func AnalyzeReuse(n int) Reuse {
	if n <= 0 {
		return Reuse{ClusterSize: n}
	}
	q := math.Sqrt(3 * float64(n))
	return Reuse{
		ClusterSize:   n,
		Factor:        1 / float64(n),
		DistanceRatio: q,
		SIRdB:         10 * math.Log10(math.Pow(q, 3)/6),
	}
}
