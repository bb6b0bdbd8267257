package triangulate

import (
	"fmt"
	"sort"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Sweep-line monotone decomposition. The sweep moves top to bottom in
// the lexicographic above order; split and merge vertices get helper
// diagonals, after which every piece of the subdivision is y-monotone.
// See the CMSC 754 lecture notes on polygon triangulation for the
// classification and helper rules.

type vertexClass int

const (
	classStart vertexClass = iota
	classEnd
	classSplit
	classMerge
	classRegular
)

func (c vertexClass) String() string {
	switch c {
	case classStart:
		return "start"
	case classEnd:
		return "end"
	case classSplit:
		return "split"
	case classMerge:
		return "merge"
	default:
		return "regular"
	}
}

// classifyVertex decides the sweep event type of c from its ring
// neighbors. Collinear corners at local extrema count as start/end
// rather than split/merge so they do not demand a helper diagonal.
func classifyVertex(p, c, nx v2.Vec) vertexClass {
	turn := cross(p, c, nx)
	switch {
	case above(c, p) && above(c, nx):
		if turn >= -eps {
			return classStart
		}
		return classSplit
	case above(p, c) && above(nx, c):
		if turn >= -eps {
			return classEnd
		}
		return classMerge
	default:
		return classRegular
	}
}

// activeEdge is one downward boundary edge currently crossing the sweep
// line, with the helper vertex diagonals attach to. Edge i runs from
// ring vertex i to i+1.
type activeEdge struct {
	edge   int
	helper int
}

// sweepStatus is the set of active edges. Lookup is a linear scan;
// rings large enough for that to matter route to this algorithm through
// Auto only above the Delaunay threshold, where decomposition cost is
// still dwarfed by downstream work.
type sweepStatus struct {
	pts    []v2.Vec
	active []activeEdge
}

func (s *sweepStatus) insert(edge, helper int) {
	s.active = append(s.active, activeEdge{edge: edge, helper: helper})
}

func (s *sweepStatus) remove(edge int) {
	for i := range s.active {
		if s.active[i].edge == edge {
			s.active[i] = s.active[len(s.active)-1]
			s.active = s.active[:len(s.active)-1]
			return
		}
	}
}

func (s *sweepStatus) find(edge int) *activeEdge {
	for i := range s.active {
		if s.active[i].edge == edge {
			return &s.active[i]
		}
	}
	return nil
}

// leftOf returns the active edge immediately left of p, or nil.
func (s *sweepStatus) leftOf(p v2.Vec) *activeEdge {
	var best *activeEdge
	bestX := 0.0
	for i := range s.active {
		x := s.xAt(s.active[i].edge, p.Y)
		if x <= p.X && (best == nil || x > bestX) {
			best = &s.active[i]
			bestX = x
		}
	}
	return best
}

// xAt interpolates the x coordinate where the edge crosses the sweep
// line at height y.
func (s *sweepStatus) xAt(edge int, y float64) float64 {
	a := s.pts[edge]
	b := s.pts[(edge+1)%len(s.pts)]
	if a.Y == b.Y {
		if a.X < b.X {
			return a.X
		}
		return b.X
	}
	return a.X + (y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
}

// monotonePieces splits the ring into y-monotone sub-rings by inserting
// helper diagonals at split and merge vertices, then extracting the
// faces of the resulting subdivision.
func monotonePieces(pts []v2.Vec) ([][]int, error) {
	n := len(pts)
	prev := func(i int) int { return (i - 1 + n) % n }
	next := func(i int) int { return (i + 1) % n }

	class := make([]vertexClass, n)
	for i := range pts {
		class[i] = classifyVertex(pts[prev(i)], pts[i], pts[next(i)])
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return above(pts[order[a]], pts[order[b]])
	})

	status := &sweepStatus{pts: pts}
	var diagonals [][2]int
	addDiagonal := func(a, b int) {
		diagonals = append(diagonals, [2]int{a, b})
	}
	// connectIfMerge drains a pending merge helper before an edge leaves
	// the status or its interval is passed.
	connectIfMerge := func(v int, e *activeEdge) {
		if e != nil && class[e.helper] == classMerge {
			addDiagonal(v, e.helper)
		}
	}

	for _, v := range order {
		switch class[v] {
		case classStart:
			status.insert(v, v)

		case classEnd:
			e := status.find(prev(v))
			connectIfMerge(v, e)
			status.remove(prev(v))

		case classSplit:
			e := status.leftOf(pts[v])
			if e == nil {
				return nil, fmt.Errorf("%w: split vertex %d has no edge to its left", ErrNumerical, v)
			}
			addDiagonal(v, e.helper)
			e.helper = v
			status.insert(v, v)

		case classMerge:
			connectIfMerge(v, status.find(prev(v)))
			status.remove(prev(v))
			if e := status.leftOf(pts[v]); e != nil {
				connectIfMerge(v, e)
				e.helper = v
			}

		case classRegular:
			if above(pts[prev(v)], pts[v]) {
				// Descending chain, interior to the right.
				connectIfMerge(v, status.find(prev(v)))
				status.remove(prev(v))
				status.insert(v, v)
			} else if e := status.leftOf(pts[v]); e != nil {
				connectIfMerge(v, e)
				e.helper = v
			}
		}
	}

	if len(diagonals) == 0 {
		ring := make([]int, n)
		for i := range ring {
			ring[i] = i
		}
		return [][]int{ring}, nil
	}
	return splitByDiagonals(pts, diagonals), nil
}

// splitByDiagonals extracts the counter-clockwise interior faces of the
// ring plus diagonals. Each directed edge is walked once; at each
// vertex the walk takes the tightest counter-clockwise predecessor of
// the arrival direction, which traces interior faces in
// counter-clockwise order and the outer face clockwise.
func splitByDiagonals(pts []v2.Vec, diagonals [][2]int) [][]int {
	n := len(pts)

	type dedge struct{ u, v int }
	undirected := make(map[dedge]bool, n+len(diagonals))
	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		undirected[dedge{a, b}] = true
	}
	for i := 0; i < n; i++ {
		addEdge(i, (i+1)%n)
	}
	for _, d := range diagonals {
		addEdge(d[0], d[1])
	}

	adj := make(map[int][]int, n)
	for e := range undirected {
		adj[e.u] = append(adj[e.u], e.v)
		adj[e.v] = append(adj[e.v], e.u)
	}
	angle := func(from, to int) float64 {
		d := pts[to].Sub(pts[from])
		return pseudoAngle(d)
	}
	slot := make(map[dedge]int, 2*len(undirected))
	for u, nbrs := range adj {
		sort.Slice(nbrs, func(a, b int) bool {
			return angle(u, nbrs[a]) < angle(u, nbrs[b])
		})
		for i, v := range nbrs {
			slot[dedge{u, v}] = i
		}
	}

	used := make(map[dedge]bool, 2*len(undirected))
	var pieces [][]int
	for start := range slot {
		if used[start] {
			continue
		}
		var ring []int
		e := start
		for !used[e] {
			used[e] = true
			ring = append(ring, e.u)
			// Predecessor of the reverse edge in CCW neighbor order.
			nbrs := adj[e.v]
			i := slot[dedge{e.v, e.u}]
			w := nbrs[(i-1+len(nbrs))%len(nbrs)]
			e = dedge{e.v, w}
		}
		ringPts := make([]v2.Vec, len(ring))
		for i, idx := range ring {
			ringPts[i] = pts[idx]
		}
		if SignedArea(ringPts) > 0 {
			pieces = append(pieces, ring)
		}
	}
	return pieces
}

// pseudoAngle maps a direction to a value that sorts like atan2 without
// trigonometry.
func pseudoAngle(d v2.Vec) float64 {
	ax := d.X
	if ax < 0 {
		ax = -ax
	}
	ay := d.Y
	if ay < 0 {
		ay = -ay
	}
	if ax+ay == 0 {
		return 0
	}
	p := d.X / (ax + ay)
	if d.Y < 0 {
		return p - 1 // [-2, 0)
	}
	return 1 - p // [0, 2)
}

// sweepTriangulation decomposes the ring into monotone pieces and
// triangulates each in linear time.
func sweepTriangulation(pts []v2.Vec) ([]Triangle, error) {
	pieces, err := monotonePieces(pts)
	if err != nil {
		return nil, err
	}
	tris := make([]Triangle, 0, len(pts)-2)
	for _, ring := range pieces {
		tris = append(tris, triangulateMonotone(pts, ring)...)
	}
	return tris, nil
}

// sweepDynamic runs the min-weight dynamic program inside each monotone
// piece. Optimality is local to a piece; diagonals between pieces are
// fixed by the decomposition.
func sweepDynamic(pts []v2.Vec) ([]Triangle, error) {
	pieces, err := monotonePieces(pts)
	if err != nil {
		return nil, err
	}
	tris := make([]Triangle, 0, len(pts)-2)
	for _, ring := range pieces {
		sub := make([]v2.Vec, len(ring))
		for i, idx := range ring {
			sub[i] = pts[idx]
		}
		local, err := minWeight(sub)
		if err != nil {
			return nil, fmt.Errorf("piece of %d vertices: %w", len(ring), err)
		}
		for _, t := range local {
			tris = append(tris, Triangle{ring[t[0]], ring[t[1]], ring[t[2]]})
		}
	}
	return tris, nil
}
