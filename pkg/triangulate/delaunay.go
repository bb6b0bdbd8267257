package triangulate

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/fogleman/delaunay"
)

// delaunayTriangulation triangulates the ring by running an
// unconstrained Delaunay triangulation over its vertices, recovering
// any boundary edge the triangulation dropped, and clipping triangles
// outside the polygon. Degenerate input (duplicate or all-collinear
// points, unrecoverable constraints) fails with ErrNumerical rather
// than returning a partial cover.
func delaunayTriangulation(pts []v2.Vec) ([]Triangle, error) {
	n := len(pts)
	dpts := make([]delaunay.Point, n)
	for i, p := range pts {
		dpts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	dt, err := delaunay.Triangulate(dpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNumerical, err)
	}

	tris := make([]Triangle, 0, len(dt.Triangles)/3)
	for i := 0; i+2 < len(dt.Triangles); i += 3 {
		t := Triangle{dt.Triangles[i], dt.Triangles[i+1], dt.Triangles[i+2]}
		if cross(pts[t[0]], pts[t[1]], pts[t[2]]) < 0 {
			t[1], t[2] = t[2], t[1]
		}
		tris = append(tris, t)
	}

	// The boundary must appear in the triangulation; concave rings can
	// lose edges to the convex hull and need them carved back in.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if hasEdge(tris, i, j) {
			continue
		}
		tris, err = recoverEdge(tris, pts, i, j)
		if err != nil {
			return nil, fmt.Errorf("boundary edge %d-%d: %w", i, j, err)
		}
	}

	// Drop hull triangles outside the polygon.
	inside := tris[:0]
	for _, t := range tris {
		centroid := pts[t[0]].Add(pts[t[1]]).Add(pts[t[2]]).MulScalar(1.0 / 3.0)
		if pointInPolygon(centroid, pts) {
			inside = append(inside, t)
		}
	}
	if len(inside) != n-2 {
		return nil, fmt.Errorf("%w: clipped to %d triangles, want %d", ErrNumerical, len(inside), n-2)
	}
	return inside, nil
}

func hasEdge(tris []Triangle, a, b int) bool {
	for _, t := range tris {
		for k := 0; k < 3; k++ {
			u, v := t[k], t[(k+1)%3]
			if (u == a && v == b) || (u == b && v == a) {
				return true
			}
		}
	}
	return false
}

// recoverEdge removes the triangles crossed by the segment a-b and
// retriangulates the two halves of the resulting cavity so the segment
// becomes a triangulation edge.
func recoverEdge(tris []Triangle, pts []v2.Vec, a, b int) ([]Triangle, error) {
	kept := make([]Triangle, 0, len(tris))
	var removed []Triangle
	for _, t := range tris {
		if triangleBlocksSegment(pts, t, a, b) {
			removed = append(removed, t)
		} else {
			kept = append(kept, t)
		}
	}
	if len(removed) == 0 {
		return nil, fmt.Errorf("%w: segment crosses no triangle", ErrNumerical)
	}

	// The cavity boundary is the set of directed triangle edges whose
	// reverse is not part of the cavity; for a simply connected cavity
	// it forms one counter-clockwise cycle through a and b.
	succ := make(map[int]int)
	dir := make(map[[2]int]bool)
	for _, t := range removed {
		for k := 0; k < 3; k++ {
			dir[[2]int{t[k], t[(k+1)%3]}] = true
		}
	}
	for e := range dir {
		if !dir[[2]int{e[1], e[0]}] {
			succ[e[0]] = e[1]
		}
	}

	for _, half := range [][2]int{{a, b}, {b, a}} {
		ring, err := walkCavity(succ, half[0], half[1], len(succ))
		if err != nil {
			return nil, err
		}
		sub := make([]v2.Vec, len(ring))
		for i, idx := range ring {
			sub[i] = pts[idx]
		}
		var local []Triangle
		if len(ring) == 3 {
			local = []Triangle{{0, 1, 2}}
		} else {
			local, err = earClipping(sub)
			if err != nil {
				return nil, err
			}
		}
		for _, t := range local {
			kept = append(kept, Triangle{ring[t[0]], ring[t[1]], ring[t[2]]})
		}
	}
	return kept, nil
}

// walkCavity follows the cavity cycle from a to b and returns the ring
// closed by the chord b-a.
func walkCavity(succ map[int]int, a, b, limit int) ([]int, error) {
	ring := []int{a}
	v := a
	for v != b {
		nxt, ok := succ[v]
		if !ok || len(ring) > limit {
			return nil, fmt.Errorf("%w: cavity boundary does not close", ErrNumerical)
		}
		v = nxt
		ring = append(ring, v)
	}
	return ring, nil
}

// triangleBlocksSegment reports whether the open segment a-b properly
// crosses any edge of the triangle.
func triangleBlocksSegment(pts []v2.Vec, t Triangle, a, b int) bool {
	for k := 0; k < 3; k++ {
		u, v := t[k], t[(k+1)%3]
		if u == a || u == b || v == a || v == b {
			continue
		}
		if segmentsCross(pts[a], pts[b], pts[u], pts[v]) {
			return true
		}
	}
	return false
}
