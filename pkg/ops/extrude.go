package ops

import (
	"fmt"

	"github.com/chazu/hedra/pkg/hemesh"
)

// Extrude removes the face f and pulls its boundary along the lift
// transform: every boundary vertex gets a lifted copy, one quad face
// connects each boundary edge to its lifted counterpart, and a cap
// face closes the lifted ring. Returns the cap face; structural
// failures stick to the builder.
func Extrude[VP any](b *hemesh.Builder[VP], f hemesh.FaceID, lift func(VP) VP) hemesh.FaceID {
	if b.Err() != nil {
		return hemesh.UndefinedFace
	}
	m := b.Mesh()

	var ring []hemesh.EdgeID
	var tops []VP
	for e := range m.FaceEdges(f) {
		// A live face's boundary origins are live, so the payload is
		// always present.
		p, _ := m.EdgeAt(e).Source().Payload()
		ring = append(ring, e)
		tops = append(tops, lift(p))
	}
	n := len(ring)

	b.DeleteFace(f) // fails through the builder if f does not exist
	if n == 0 {
		return hemesh.UndefinedFace
	}

	// Lifted ring, built in the same direction as the face loop.
	lifted := make([]hemesh.VertexID, n)
	for i, p := range tops {
		lifted[i] = b.InsertVertex(p)
	}
	top := make([]hemesh.EdgeID, n)
	for i := range lifted {
		top[i] = b.InsertEdge(lifted[i], lifted[(i+1)%n])
	}

	// Vertical edges splice after the ring edge arriving below and the
	// reversed top edge arriving above, which threads each side quad's
	// loop as ring -> up -> top-reversed -> down.
	for i := range ring {
		below := ring[(i+n-1)%n]
		above := m.EdgeAt(top[i]).Twin().ID()
		b.InsertEdgeAfter(below, above)
	}
	for _, e := range ring {
		b.CloseFace(e)
	}
	return b.CloseFace(top[0])
}

// Loft connects an open boundary chain to a lifted copy of itself with
// quad faces. bottom lists consecutive chain vertices; the half-edges
// between them must exist and bound no face on the walked side.
// payloads supplies one payload per new top vertex. Returns the new
// top vertices in chain order.
func Loft[VP any](b *hemesh.Builder[VP], bottom []hemesh.VertexID, payloads []VP) ([]hemesh.VertexID, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	if len(bottom) < 2 {
		return nil, fmt.Errorf("ops: loft needs at least 2 chain vertices, got %d", len(bottom))
	}
	if len(payloads) != len(bottom) {
		return nil, fmt.Errorf("ops: loft got %d payloads for %d chain vertices", len(payloads), len(bottom))
	}
	m := b.Mesh()

	k := len(bottom)
	chain := make([]hemesh.EdgeID, k-1)
	for i := 0; i < k-1; i++ {
		e := boundaryEdgeBetween(m, bottom[i], bottom[i+1])
		if !e.Defined() {
			return nil, fmt.Errorf("ops: loft chain %s-%s: no free boundary edge", bottom[i], bottom[i+1])
		}
		chain[i] = e
	}

	tops := make([]hemesh.VertexID, k)
	for i, p := range payloads {
		tops[i] = b.InsertVertex(p)
	}
	upper := make([]hemesh.EdgeID, k-1)
	for i := 0; i < k-1; i++ {
		upper[i] = b.InsertEdge(tops[i], tops[i+1])
	}

	// Verticals: the first one splices after the edge arriving ahead of
	// the chain, the rest after the chain edges themselves; on top, the
	// last one splices after the forward upper edge, the rest after the
	// reversed ones.
	for i := 0; i < k; i++ {
		var below hemesh.EdgeID
		if i == 0 {
			below = m.EdgeAt(chain[0]).Prev().ID()
		} else {
			below = chain[i-1]
		}
		var above hemesh.EdgeID
		if i == k-1 {
			above = upper[k-2]
		} else {
			above = m.EdgeAt(upper[i]).Twin().ID()
		}
		b.InsertEdgeAfter(below, above)
	}
	for _, e := range chain {
		b.CloseFace(e)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return tops, nil
}
