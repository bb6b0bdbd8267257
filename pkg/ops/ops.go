package ops

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/hedra/pkg/hemesh"
	"github.com/chazu/hedra/pkg/triangulate"
)

// InsertPolygon builds a closed boundary ring from the payloads in
// order and binds a face to it. The ring direction is the face's
// counter-clockwise loop. Failures (fewer than three payloads, a mesh
// in a bad state) stick to the builder.
func InsertPolygon[VP any](b *hemesh.Builder[VP], payloads ...VP) hemesh.FaceID {
	verts := make([]hemesh.VertexID, len(payloads))
	for i, p := range payloads {
		verts[i] = b.InsertVertex(p)
	}
	first := hemesh.UndefinedEdge
	for i := range verts {
		e := b.InsertEdge(verts[i], verts[(i+1)%len(verts)])
		if i == 0 {
			first = e
		}
	}
	return b.CloseFace(first)
}

// TriangulateFace replaces the face f with a triangle fan-out computed
// by pkg/triangulate: the face's boundary is projected to 2D through
// proj, triangulated with the requested algorithm, and the resulting
// diagonals are spliced back into the mesh, closing one face per
// triangle. The boundary ring itself is untouched.
//
// If the algorithm fails the mesh is not modified at all and the error
// is returned without sticking to the builder. Returns the ids of the
// triangle faces.
func TriangulateFace[VP any](
	b *hemesh.Builder[VP],
	f hemesh.FaceID,
	proj func(VP) v2.Vec,
	algo triangulate.Algorithm,
	opts triangulate.Options,
) ([]hemesh.FaceID, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	m := b.Mesh()

	var ring []hemesh.EdgeID
	var pts []v2.Vec
	for e := range m.FaceEdges(f) {
		p, ok := m.EdgeAt(e).Source().Payload()
		if !ok {
			return nil, fmt.Errorf("ops: triangulate face %s: %w", f, hemesh.ErrDeleted)
		}
		ring = append(ring, e)
		pts = append(pts, proj(p))
	}
	if len(ring) == 0 {
		return nil, fmt.Errorf("ops: triangulate face %s: %w", f, hemesh.ErrDeleted)
	}
	if len(ring) == 3 {
		return []hemesh.FaceID{f}, nil
	}

	tris, err := triangulate.Triangulate(pts, algo, opts)
	if err != nil {
		return nil, fmt.Errorf("ops: triangulate face %s: %w", f, err)
	}
	// Triangles are counter-clockwise in the projected plane. If the
	// projection mirrors the face loop, flip them so their directed
	// edges follow the mesh ring.
	if triangulate.SignedArea(pts) < 0 {
		for i, tr := range tris {
			tris[i] = triangulate.Triangle{tr[0], tr[2], tr[1]}
		}
	}

	b.DeleteFace(f)

	// cavity maps directed local index pairs to the live half-edge
	// between them. It starts as the ring and shrinks as ears close.
	n := len(ring)
	cavity := make(map[[2]int]hemesh.EdgeID, n)
	for i, e := range ring {
		cavity[[2]int{i, (i + 1) % n}] = e
	}

	faces := make([]hemesh.FaceID, 0, len(tris))
	pending := append([]triangulate.Triangle(nil), tris...)
	for len(pending) > 0 {
		progressed := false
		for idx := 0; idx < len(pending); idx++ {
			tri := pending[idx]
			closed := false
			for r := 0; r < 3; r++ {
				ia, ib, ic := tri[r], tri[(r+1)%3], tri[(r+2)%3]
				eAB, okAB := cavity[[2]int{ia, ib}]
				eBC, okBC := cavity[[2]int{ib, ic}]
				if !okAB || !okBC {
					continue
				}
				if _, okCA := cavity[[2]int{ic, ia}]; !okCA {
					// New diagonal ic->ia arrives after the cavity
					// edges ending at ic and ia.
					inA := m.EdgeAt(eAB).Prev().ID()
					eCA := b.InsertEdgeAfter(eBC, inA)
					if err := b.Err(); err != nil {
						return nil, err
					}
					cavity[[2]int{ia, ic}] = m.EdgeAt(eCA).Twin().ID()
				}
				fid := b.CloseFace(eAB)
				if err := b.Err(); err != nil {
					return nil, err
				}
				faces = append(faces, fid)
				delete(cavity, [2]int{ia, ib})
				delete(cavity, [2]int{ib, ic})
				delete(cavity, [2]int{ic, ia})
				closed = true
				break
			}
			if closed {
				pending = append(pending[:idx], pending[idx+1:]...)
				idx--
				progressed = true
			}
		}
		if !progressed {
			return faces, fmt.Errorf("ops: triangulate face %s: triangle splice stalled with %d triangles left", f, len(pending))
		}
	}
	return faces, nil
}

// boundaryEdgeBetween returns the face-less half-edge from a to b, or
// UndefinedEdge.
func boundaryEdgeBetween[VP any](m *hemesh.Mesh[VP], a, b hemesh.VertexID) hemesh.EdgeID {
	for e := range m.OutgoingEdges(a) {
		c := m.EdgeAt(e)
		if c.Target().ID() == b && c.OnBoundary() {
			return e
		}
	}
	return hemesh.UndefinedEdge
}
