package hemesh

import "iter"

// Neighborhood queries are pull-based sequences driven by repeated
// next/twin stepping. They are finite (bounded by mesh size) and
// restartable: ranging twice over the same sequence yields the same
// ids as long as the mesh is unchanged in between. Mutating the mesh
// while a sequence is live is a caller error.

// Vertices yields every live vertex id in ascending order.
func (m *Mesh[VP]) Vertices() iter.Seq[VertexID] {
	return func(yield func(VertexID) bool) {
		for i := range m.vertices {
			if !m.vertices[i].deleted && !yield(VertexID(i)) {
				return
			}
		}
	}
}

// HalfEdges yields every live half-edge id in ascending order.
func (m *Mesh[VP]) HalfEdges() iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		for i := range m.halfedges {
			if !m.halfedges[i].deleted && !yield(EdgeID(i)) {
				return
			}
		}
	}
}

// Faces yields every live face id in ascending order.
func (m *Mesh[VP]) Faces() iter.Seq[FaceID] {
	return func(yield func(FaceID) bool) {
		for i := range m.faces {
			if !m.faces[i].deleted && !yield(FaceID(i)) {
				return
			}
		}
	}
}

// OutgoingEdges yields the half-edges leaving v, most recently created
// first, by stepping next(twin(e)) around the fan. Empty for absent or
// isolated vertices.
func (m *Mesh[VP]) OutgoingEdges(v VertexID) iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		if !m.hasVertex(v) {
			return
		}
		start := m.vertices[v].edge
		if !start.Defined() {
			return
		}
		e := start
		for {
			if !yield(e) {
				return
			}
			e = m.halfedges[m.halfedges[e].twin].next
			if e == start {
				return
			}
		}
	}
}

// FaceEdges yields the boundary loop of f in counter-clockwise order,
// starting at the representative half-edge.
func (m *Mesh[VP]) FaceEdges(f FaceID) iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		if !m.hasFace(f) {
			return
		}
		start := m.faces[f].edge
		e := start
		for {
			if !yield(e) {
				return
			}
			e = m.halfedges[e].next
			if e == start {
				return
			}
		}
	}
}

// FaceVertices yields the vertex ids around f in counter-clockwise
// order.
func (m *Mesh[VP]) FaceVertices(f FaceID) iter.Seq[VertexID] {
	return func(yield func(VertexID) bool) {
		for e := range m.FaceEdges(f) {
			if !yield(m.halfedges[e].origin) {
				return
			}
		}
	}
}

// BoundaryChains yields one starting half-edge per face-less loop of
// the mesh. Walking Next from a yielded edge traverses its chain.
func (m *Mesh[VP]) BoundaryChains() iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		seen := make(map[EdgeID]bool)
		for i := range m.halfedges {
			e := EdgeID(i)
			if m.halfedges[e].deleted || m.halfedges[e].face.Defined() || seen[e] {
				continue
			}
			w := e
			for {
				seen[w] = true
				w = m.halfedges[w].next
				if w == e {
					break
				}
			}
			if !yield(e) {
				return
			}
		}
	}
}
