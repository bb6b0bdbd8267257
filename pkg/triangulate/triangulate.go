package triangulate

import (
	"errors"
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Errors reported by the dispatcher and the individual algorithms.
var (
	// ErrTooFewVertices is returned for rings with fewer than 3 points.
	ErrTooFewVertices = errors.New("triangulate: polygon needs at least 3 vertices")

	// ErrNotConvex is returned by Fan on non-convex input.
	ErrNotConvex = errors.New("triangulate: polygon is not convex")

	// ErrNotSimple is returned by algorithms that require a simple
	// polygon when boundary edges intersect.
	ErrNotSimple = errors.New("triangulate: polygon is self-intersecting")

	// ErrNoEar is returned when ear clipping cannot make progress even
	// in recovery mode, which indicates degenerate geometry.
	ErrNoEar = errors.New("triangulate: no valid ear found")

	// ErrNumerical is returned when an algorithm fails on degenerate
	// input (duplicate points, zero-area regions) beyond local recovery.
	ErrNumerical = errors.New("triangulate: numerical degeneracy")

	// ErrUnknownAlgorithm is returned for an Algorithm value outside the
	// defined set.
	ErrUnknownAlgorithm = errors.New("triangulate: unknown algorithm")
)

// Algorithm selects the triangulation strategy.
type Algorithm int

const (
	// Auto picks an algorithm based on input size; see Options.
	Auto Algorithm = iota

	// Fan emits triangles from a fixed apex. O(n), convex input only,
	// numerically fragile near collinear runs.
	Fan

	// EarClipping is the textbook O(n^2) algorithm with an exhaustive
	// recovery fallback for near-degenerate ears.
	EarClipping

	// Sweep decomposes into monotone pieces with a sweep line and
	// triangulates each piece in linear time. Handles arbitrary, even
	// self-intersecting, rings but may emit long thin triangles.
	Sweep

	// SweepDynamic runs the min-weight dynamic program on each monotone
	// piece found by Sweep, trading cross-piece optimality for speed.
	SweepDynamic

	// Delaunay delegates to a Delaunay triangulation with the boundary
	// recovered as constraints, maximizing the minimum angle.
	Delaunay

	// EdgeFlip reaches the Delaunay condition by repeated local flips on
	// a seed triangulation. O(n^3), no external dependency on the path.
	EdgeFlip

	// MinWeight minimizes total edge length exactly via dynamic
	// programming over index ranges. O(n^3) time, O(n^2) space.
	MinWeight

	// Heuristic approximates MinWeight quality with greedy flips on a
	// Sweep seed.
	Heuristic
)

func (a Algorithm) String() string {
	switch a {
	case Auto:
		return "auto"
	case Fan:
		return "fan"
	case EarClipping:
		return "earclipping"
	case Sweep:
		return "sweep"
	case SweepDynamic:
		return "sweepdynamic"
	case Delaunay:
		return "delaunay"
	case EdgeFlip:
		return "edgeflip"
	case MinWeight:
		return "minweight"
	case Heuristic:
		return "heuristic"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Options holds the size thresholds steering Auto. They are explicit
// configuration so the selection policy is testable.
type Options struct {
	// ExactLimit is the largest ring size routed to MinWeight.
	ExactLimit int

	// DelaunayLimit is the largest ring size routed to Delaunay; larger
	// rings go to SweepDynamic.
	DelaunayLimit int

	// SweepLimit is the largest ring size routed to SweepDynamic;
	// anything larger falls back to plain Sweep.
	SweepLimit int
}

// DefaultOptions returns the thresholds used by Auto when the caller
// passes the zero Options.
func DefaultOptions() Options {
	return Options{
		ExactLimit:    12,
		DelaunayLimit: 1024,
		SweepLimit:    8192,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ExactLimit <= 0 {
		o.ExactLimit = d.ExactLimit
	}
	if o.DelaunayLimit <= 0 {
		o.DelaunayLimit = d.DelaunayLimit
	}
	if o.SweepLimit <= 0 {
		o.SweepLimit = d.SweepLimit
	}
	return o
}

// Triangulate converts a counter-clockwise polygon ring into triangles
// using the requested algorithm. A clockwise ring is reversed
// internally; indices in the result always refer to the caller's ring.
// Precondition violations (non-convex input to Fan, self-intersecting
// input to algorithms that need simplicity) are reported as errors, not
// silently mis-triangulated.
func Triangulate(pts []v2.Vec, algo Algorithm, opts Options) ([]Triangle, error) {
	n := len(pts)
	if n < 3 {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewVertices, n)
	}

	if SignedArea(pts) < 0 {
		tris, err := Triangulate(reversed(pts), algo, opts)
		if err != nil {
			return nil, err
		}
		// Relabeling into the caller's ring preserves the geometric
		// orientation, so the triangles stay counter-clockwise.
		for i := range tris {
			tris[i] = Triangle{n - 1 - tris[i][0], n - 1 - tris[i][1], n - 1 - tris[i][2]}
		}
		return tris, nil
	}

	if algo == Auto {
		algo = pick(n, opts.withDefaults())
	}

	// The gate runs before the tiny-ring shortcut so that a direct call
	// with a self-intersecting quad fails instead of splitting it.
	if requiresSimple(algo) && !IsSimple(pts) {
		return nil, ErrNotSimple
	}

	// Tiny rings have one or two possible triangulations; skip the
	// machinery entirely.
	switch n {
	case 3:
		return []Triangle{{0, 1, 2}}, nil
	case 4:
		return quadSplit(pts), nil
	}

	switch algo {
	case Fan:
		return fanTriangulation(pts)
	case EarClipping:
		return earClipping(pts)
	case Sweep:
		return sweepTriangulation(pts)
	case SweepDynamic:
		return sweepDynamic(pts)
	case Delaunay:
		return delaunayTriangulation(pts)
	case EdgeFlip:
		return edgeFlip(pts)
	case MinWeight:
		return minWeight(pts)
	case Heuristic:
		return heuristic(pts)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(algo))
	}
}

// requiresSimple reports whether the algorithm's precondition includes
// a simple (non-self-intersecting) ring. Fan has its own convexity
// check and Sweep is documented as best-effort on arbitrary rings.
func requiresSimple(algo Algorithm) bool {
	switch algo {
	case EarClipping, SweepDynamic, Delaunay, EdgeFlip, MinWeight, Heuristic:
		return true
	}
	return false
}

// pick is the Auto selection policy: exact methods while they are
// cheap, Delaunay quality for mid-size rings, sweep variants beyond.
func pick(n int, opts Options) Algorithm {
	switch {
	case n <= opts.ExactLimit:
		return MinWeight
	case n <= opts.DelaunayLimit:
		return Delaunay
	case n <= opts.SweepLimit:
		return SweepDynamic
	default:
		return Sweep
	}
}

// quadSplit triangulates a quadrilateral along the shorter of the two
// diagonals that keep both triangles counter-clockwise. A reflex
// corner leaves only the diagonal from that corner.
func quadSplit(pts []v2.Vec) []Triangle {
	d02ok := convexAt(pts[0], pts[1], pts[2]) && convexAt(pts[2], pts[3], pts[0])
	d13ok := convexAt(pts[1], pts[2], pts[3]) && convexAt(pts[3], pts[0], pts[1])
	if d02ok && (!d13ok || pts[0].Sub(pts[2]).Length() <= pts[1].Sub(pts[3]).Length()) {
		return []Triangle{{0, 1, 2}, {0, 2, 3}}
	}
	return []Triangle{{1, 2, 3}, {1, 3, 0}}
}

func reversed(pts []v2.Vec) []v2.Vec {
	out := make([]v2.Vec, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
