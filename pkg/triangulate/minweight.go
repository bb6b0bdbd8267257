package triangulate

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// minWeight computes the minimum total edge length triangulation of a
// simple ring by dynamic programming over index ranges: cost[i][j] is
// the cheapest triangulation of the sub-polygon i..j, with the apex k
// of triangle (i,k,j) recorded for traceback. O(n^3) time, O(n^2)
// space. Diagonals that leave the polygon are masked out up front, so
// the recurrence also handles concave rings.
func minWeight(pts []v2.Vec) ([]Triangle, error) {
	n := len(pts)
	if n < 3 {
		return nil, ErrTooFewVertices
	}
	if n == 3 {
		return []Triangle{{0, 1, 2}}, nil
	}

	valid := diagonalMask(pts)
	cost := make([][]float64, n)
	split := make([][]int, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		split[i] = make([]int, n)
		for j := range cost[i] {
			cost[i][j] = math.Inf(1)
			split[i][j] = -1
		}
		if i+1 < n {
			cost[i][i+1] = 0
		}
	}

	for l := 2; l < n; l++ {
		for i := 0; i+l < n; i++ {
			j := i + l
			for k := i + 1; k < j; k++ {
				if !valid[i][k] || !valid[k][j] {
					continue
				}
				// A flat apex would emit a zero-area triangle.
				if cross(pts[i], pts[k], pts[j]) <= eps {
					continue
				}
				if c := cost[i][k] + cost[k][j] + triangleWeight(pts[i], pts[k], pts[j]); c < cost[i][j] {
					cost[i][j] = c
					split[i][j] = k
				}
			}
		}
	}

	if math.IsInf(cost[0][n-1], 1) {
		return nil, ErrNumerical
	}
	tris := make([]Triangle, 0, n-2)
	return appendTraceback(tris, split, 0, n-1), nil
}

// diagonalMask marks each index pair whose connecting segment may be
// used by a triangulation: ring edges always, diagonals only when they
// stay inside the polygon.
func diagonalMask(pts []v2.Vec) [][]bool {
	n := len(pts)
	valid := make([][]bool, n)
	for i := range valid {
		valid[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		valid[i][(i+1)%n] = true
		valid[(i+1)%n][i] = true
	}
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if valid[i][j] {
				continue
			}
			if validDiagonal(pts, i, j) {
				valid[i][j] = true
				valid[j][i] = true
			}
		}
	}
	return valid
}

// appendTraceback emits the triangles chosen by the dynamic program for
// the range i..j, pre-order.
func appendTraceback(tris []Triangle, split [][]int, i, j int) []Triangle {
	if j-i < 2 {
		return tris
	}
	k := split[i][j]
	tris = append(tris, Triangle{i, k, j})
	tris = appendTraceback(tris, split, i, k)
	return appendTraceback(tris, split, k, j)
}
