package triangulate

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// collinearTol rejects ears whose tip is nearly on the line between its
// neighbors. Clipping such an ear first can strand points that the
// emptiness test then blocks forever.
const collinearTol = 1e-9

// earClipping triangulates a simple counter-clockwise ring by
// repeatedly clipping convex empty ears. The fast path walks the ring
// and skips near-collinear candidates; when a full lap finds no ear it
// switches to an exhaustive search that accepts any strictly positive
// area ear, so near-degenerate input still terminates.
func earClipping(pts []v2.Vec) ([]Triangle, error) {
	n0 := len(pts)
	clipped := make([]bool, n0)
	tris := make([]Triangle, 0, n0-2)

	next := func(i int) int {
		for {
			i = (i + 1) % n0
			if !clipped[i] {
				return i
			}
		}
	}

	iA := 0
	n := n0
	failsSinceAdvance := 0
	successSinceFail := 0
	for n > 2 {
		iB := next(iA)
		iC := next(iB)

		ok := convexAt(pts[iA], pts[iB], pts[iC]) &&
			earEmpty(pts, clipped, iA, iB, iC) &&
			!(successSinceFail >= 2 && collinear(pts[iA], pts[iB], pts[iC], collinearTol))
		if !ok {
			failsSinceAdvance++
			if failsSinceAdvance <= n {
				iA = iB
				continue
			}
			// A full lap found nothing; the stability rejection may be
			// blocking every remaining candidate.
			var found bool
			iA, iB, iC, found = findEarExhaustive(pts, clipped, n0)
			if !found {
				return nil, ErrNoEar
			}
			successSinceFail = 0
		}

		tris = append(tris, Triangle{iA, iB, iC})
		clipped[iB] = true
		n--
		failsSinceAdvance = 0
		successSinceFail++
	}
	return tris, nil
}

// earEmpty reports whether no remaining ring vertex lies strictly
// inside the candidate ear.
func earEmpty(pts []v2.Vec, clipped []bool, a, b, c int) bool {
	for i := range pts {
		if clipped[i] || i == a || i == b || i == c {
			continue
		}
		if pointInTriangle(pts[i], pts[a], pts[b], pts[c]) {
			return false
		}
	}
	return true
}

// findEarExhaustive scans every remaining corner for an empty ear with
// strictly positive area, without the collinearity rejection of the
// fast path. Zero-area candidates stay rejected; emitting them would
// corrupt downstream meshes.
func findEarExhaustive(pts []v2.Vec, clipped []bool, n0 int) (a, b, c int, found bool) {
	prev := func(i int) int {
		for {
			i = (i - 1 + n0) % n0
			if !clipped[i] {
				return i
			}
		}
	}
	next := func(i int) int {
		for {
			i = (i + 1) % n0
			if !clipped[i] {
				return i
			}
		}
	}
	for b := 0; b < n0; b++ {
		if clipped[b] {
			continue
		}
		a, c := prev(b), next(b)
		if cross(pts[a], pts[b], pts[c]) <= 0 {
			continue
		}
		if earEmpty(pts, clipped, a, b, c) {
			return a, b, c, true
		}
	}
	return 0, 0, 0, false
}
