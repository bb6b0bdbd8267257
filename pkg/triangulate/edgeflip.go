package triangulate

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// edgeFlip reaches a Delaunay triangulation without an external solver:
// seed with ear clipping, then flip any interior edge whose opposite
// vertex lies inside the circumcircle of its neighbor triangle. Each
// flip strictly increases the minimum angle, so the loop terminates.
func edgeFlip(pts []v2.Vec) ([]Triangle, error) {
	tris, err := earClipping(pts)
	if err != nil {
		return nil, err
	}
	flipWhile(pts, tris, func(u, v, p, q int) bool {
		return inCircle(pts[u], pts[v], pts[p], pts[q]) > eps
	})
	return tris, nil
}

// heuristic approximates the min-weight triangulation: seed with the
// fast sweep, then greedily flip any interior edge whose replacement
// diagonal is shorter. Each flip strictly shrinks total edge length, so
// the loop terminates; the result is a local optimum, not the global
// one.
func heuristic(pts []v2.Vec) ([]Triangle, error) {
	tris, err := sweepTriangulation(pts)
	if err != nil {
		return nil, err
	}
	flipWhile(pts, tris, func(u, v, p, q int) bool {
		return pts[p].Sub(pts[q]).Length() < pts[u].Sub(pts[v]).Length()-eps
	})
	return tris, nil
}

// flipWhile repeatedly flips interior edges for which shouldFlip holds.
// For the shared edge u-v, p is the opposite vertex of the first
// triangle and q of the second; a flip replaces diagonal u-v with p-q.
// Only strictly convex quads are flipped, so triangles stay valid. An
// iteration cap bounds runaway oscillation on degenerate input.
func flipWhile(pts []v2.Vec, tris []Triangle, shouldFlip func(u, v, p, q int) bool) {
	maxFlips := len(tris)*len(tris) + 16
	for flips := 0; flips < maxFlips; {
		changed := false

		type ekey [2]int
		type owner struct {
			tri int // index into tris
			opp int // vertex opposite the edge
		}
		owners := make(map[ekey][]owner, 3*len(tris))
		for ti, t := range tris {
			for k := 0; k < 3; k++ {
				u, v := t[k], t[(k+1)%3]
				opp := t[(k+2)%3]
				key := ekey{u, v}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				owners[key] = append(owners[key], owner{tri: ti, opp: opp})
			}
		}

		dirty := make(map[int]bool)
		for key, os := range owners {
			if len(os) != 2 || dirty[os[0].tri] || dirty[os[1].tri] {
				continue
			}
			u, v := key[0], key[1]
			p, q := os[0].opp, os[1].opp
			if !shouldFlip(u, v, p, q) {
				continue
			}
			// The new diagonal must actually cross the old one.
			if !segmentsCross(pts[p], pts[q], pts[u], pts[v]) {
				continue
			}
			tris[os[0].tri] = orient(pts, Triangle{u, p, q})
			tris[os[1].tri] = orient(pts, Triangle{v, q, p})
			dirty[os[0].tri] = true
			dirty[os[1].tri] = true
			changed = true
			flips++
			if flips >= maxFlips {
				break
			}
		}
		if !changed {
			break
		}
	}
}

func orient(pts []v2.Vec, t Triangle) Triangle {
	if cross(pts[t[0]], pts[t[1]], pts[t[2]]) < 0 {
		t[1], t[2] = t[2], t[1]
	}
	return t
}

// inCircle is the incircle determinant: positive when d lies strictly
// inside the circumcircle of the counter-clockwise triangle abc.
func inCircle(a, b, c, d v2.Vec) float64 {
	if cross(a, b, c) < 0 {
		b, c = c, b
	}
	ax, ay := a.X-d.X, a.Y-d.Y
	bx, by := b.X-d.X, b.Y-d.Y
	cx, cy := c.X-d.X, c.Y-d.Y
	return (ax*ax+ay*ay)*(bx*cy-cx*by) +
		(bx*bx+by*by)*(cx*ay-ax*cy) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)
}
