package triangulate

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// fanTriangulation emits triangles (0, i, i+1) from the first vertex.
// Only valid for convex rings; checked up front so callers never get a
// silently self-overlapping result.
func fanTriangulation(pts []v2.Vec) ([]Triangle, error) {
	if !IsConvex(pts) {
		return nil, ErrNotConvex
	}
	tris := make([]Triangle, 0, len(pts)-2)
	for i := 1; i < len(pts)-1; i++ {
		tris = append(tris, Triangle{0, i, i + 1})
	}
	return tris, nil
}
