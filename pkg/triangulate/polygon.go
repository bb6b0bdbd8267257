package triangulate

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// epsilon for orientation and collinearity tests. Inputs are assumed to
// be in "model units" of roughly unit scale; callers with very large or
// tiny coordinates should normalize first.
const eps = 1e-12

// Triangle is a counter-clockwise triple of indices into the polygon
// ring that produced it.
type Triangle [3]int

// cross returns the z component of (a-o) x (b-o). Positive means the
// turn o->a->b is counter-clockwise.
func cross(o, a, b v2.Vec) float64 {
	return a.Sub(o).Cross(b.Sub(o))
}

// SignedArea returns the shoelace area of the ring: positive for
// counter-clockwise orientation.
func SignedArea(pts []v2.Vec) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := range pts {
		j := (i + 1) % n
		area += pts[i].Cross(pts[j])
	}
	return area / 2
}

// IsCCW reports whether the ring is counter-clockwise.
func IsCCW(pts []v2.Vec) bool { return SignedArea(pts) > 0 }

// IsConvex reports whether the counter-clockwise ring is convex.
// Collinear runs count as convex.
func IsConvex(pts []v2.Vec) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	for i := range pts {
		if cross(pts[i], pts[(i+1)%n], pts[(i+2)%n]) < -eps {
			return false
		}
	}
	return true
}

// IsSimple reports whether no two non-adjacent boundary edges properly
// intersect. Quadratic; used for precondition checks on direct
// algorithm invocation, not in inner loops.
func IsSimple(pts []v2.Vec) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			if segmentsCross(pts[i], pts[(i+1)%n], pts[j], pts[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

// segmentsCross reports proper intersection of the open segments ab and
// cd. Shared endpoints and mere touching do not count.
func segmentsCross(a, b, c, d v2.Vec) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	return ((d1 > eps && d2 < -eps) || (d1 < -eps && d2 > eps)) &&
		((d3 > eps && d4 < -eps) || (d3 < -eps && d4 > eps))
}

// convexAt reports whether b is a convex corner of the counter-clockwise
// turn a -> b -> c.
func convexAt(a, b, c v2.Vec) bool {
	return cross(a, b, c) > eps
}

// collinear reports whether the three points are within tol of a common
// line, scaled by the segment lengths involved.
func collinear(a, b, c v2.Vec, tol float64) bool {
	area2 := cross(a, b, c)
	if area2 < 0 {
		area2 = -area2
	}
	scale := b.Sub(a).Length() * c.Sub(b).Length()
	if scale < 1 {
		scale = 1
	}
	return area2 <= tol*scale
}

// pointInTriangle reports whether p lies inside (not on the boundary
// of) the counter-clockwise triangle abc.
func pointInTriangle(p, a, b, c v2.Vec) bool {
	return cross(a, b, p) > eps && cross(b, c, p) > eps && cross(c, a, p) > eps
}

// pointInPolygon reports whether p lies strictly inside the ring, by
// crossing count.
func pointInPolygon(p v2.Vec, pts []v2.Vec) bool {
	n := len(pts)
	inside := false
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// validDiagonal reports whether the open segment between ring vertices
// i and j stays inside the polygon, crosses no boundary edge, and
// passes through no other ring vertex. Edges incident to i or j only
// disqualify the diagonal on proper crossing.
func validDiagonal(pts []v2.Vec, i, j int) bool {
	n := len(pts)
	if i == j || (i+1)%n == j || (j+1)%n == i {
		return false
	}
	for k := 0; k < n; k++ {
		if k != i && k != j && onOpenSegment(pts[k], pts[i], pts[j]) {
			return false
		}
		k1 := (k + 1) % n
		if k == i || k == j || k1 == i || k1 == j {
			continue
		}
		if segmentsCross(pts[i], pts[j], pts[k], pts[k1]) {
			return false
		}
	}
	mid := pts[i].Add(pts[j]).MulScalar(0.5)
	return pointInPolygon(mid, pts)
}

// onOpenSegment reports whether p lies on the segment ab, endpoints
// excluded. A diagonal grazing a vertex this way would split the ring
// into pieces no triangle fan can cover.
func onOpenSegment(p, a, b v2.Vec) bool {
	if c := cross(a, b, p); c > eps || c < -eps {
		return false
	}
	d := b.Sub(a)
	t := p.Sub(a).Dot(d)
	return t > eps && t < d.Dot(d)-eps
}

// above is the lexicographic sweep order: higher y first, ties broken
// by smaller x. Simulates a slightly rotated sweep line so no two
// distinct points are ever "level".
func above(a, b v2.Vec) bool {
	if a.Y != b.Y {
		return a.Y > b.Y
	}
	return a.X < b.X
}

// triangleWeight is the perimeter of the triangle, the cost unit of the
// min-weight algorithms.
func triangleWeight(a, b, c v2.Vec) float64 {
	return a.Sub(b).Length() + b.Sub(c).Length() + c.Sub(a).Length()
}

// TotalEdgeWeight sums the edge lengths of a triangulation, counting
// each undirected edge once. Lower is better for rendering-oriented
// triangulations.
func TotalEdgeWeight(tris []Triangle, pts []v2.Vec) float64 {
	type edge struct{ a, b int }
	seen := make(map[edge]bool)
	total := 0.0
	for _, t := range tris {
		for k := 0; k < 3; k++ {
			a, b := t[k], t[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			e := edge{a, b}
			if seen[e] {
				continue
			}
			seen[e] = true
			total += pts[a].Sub(pts[b]).Length()
		}
	}
	return total
}

// TotalArea sums the unsigned areas of the triangles.
func TotalArea(tris []Triangle, pts []v2.Vec) float64 {
	total := 0.0
	for _, t := range tris {
		a := cross(pts[t[0]], pts[t[1]], pts[t[2]]) / 2
		if a < 0 {
			a = -a
		}
		total += a
	}
	return total
}
