package hemesh

import "fmt"

// Cursors are shared, copyable (mesh, id) handles. Every navigation
// returns a new cursor; if the destination does not exist the result is
// void, and navigating from a void cursor stays void, so chains of
// navigations never have to branch. Ensure converts voidness into an
// explicit error at the end of a chain.
//
// Cursors never mutate the mesh; mutation requires the exclusive
// Builder obtained from Mesh.Edit.

// EdgeCursor is a shared cursor positioned at a half-edge.
type EdgeCursor[VP any] struct {
	m  *Mesh[VP]
	id EdgeID
}

// VertexCursor is a shared cursor positioned at a vertex.
type VertexCursor[VP any] struct {
	m  *Mesh[VP]
	id VertexID
}

// FaceCursor is a shared cursor positioned at a face.
type FaceCursor[VP any] struct {
	m  *Mesh[VP]
	id FaceID
}

// EdgeAt loads a cursor for the given id. The cursor is void if the
// half-edge does not (or no longer) exist; no error is raised.
func (m *Mesh[VP]) EdgeAt(id EdgeID) EdgeCursor[VP] {
	if !m.hasEdge(id) {
		return EdgeCursor[VP]{m: m, id: UndefinedEdge}
	}
	return EdgeCursor[VP]{m: m, id: id}
}

// VertexAt loads a cursor for the given id, void if absent.
func (m *Mesh[VP]) VertexAt(id VertexID) VertexCursor[VP] {
	if !m.hasVertex(id) {
		return VertexCursor[VP]{m: m, id: UndefinedVertex}
	}
	return VertexCursor[VP]{m: m, id: id}
}

// FaceAt loads a cursor for the given id, void if absent.
func (m *Mesh[VP]) FaceAt(id FaceID) FaceCursor[VP] {
	if !m.hasFace(id) {
		return FaceCursor[VP]{m: m, id: UndefinedFace}
	}
	return FaceCursor[VP]{m: m, id: id}
}

// --- EdgeCursor -----------------------------------------------------

// Valid reports whether the cursor points at a live half-edge.
func (c EdgeCursor[VP]) Valid() bool { return c.m != nil && c.m.hasEdge(c.id) }

// ID returns the half-edge id, UndefinedEdge for a void cursor.
func (c EdgeCursor[VP]) ID() EdgeID {
	if !c.Valid() {
		return UndefinedEdge
	}
	return c.id
}

// Ensure returns nil for a valid cursor and ErrVoid otherwise.
func (c EdgeCursor[VP]) Ensure() error {
	if !c.Valid() {
		return fmt.Errorf("edge cursor: %w", ErrVoid)
	}
	return nil
}

// Stay runs fn for its side effects and returns the cursor unchanged,
// allowing read-only inspection in the middle of a chain.
func (c EdgeCursor[VP]) Stay(fn func(EdgeCursor[VP])) EdgeCursor[VP] {
	fn(c)
	return c
}

// Next moves to the successor in the face loop or boundary chain.
func (c EdgeCursor[VP]) Next() EdgeCursor[VP] {
	if !c.Valid() {
		return c
	}
	return c.m.EdgeAt(c.m.halfedges[c.id].next)
}

// Prev moves to the predecessor in the face loop or boundary chain.
func (c EdgeCursor[VP]) Prev() EdgeCursor[VP] {
	if !c.Valid() {
		return c
	}
	return c.m.EdgeAt(c.m.halfedges[c.id].prev)
}

// Twin moves to the opposite half-edge of the same undirected edge.
func (c EdgeCursor[VP]) Twin() EdgeCursor[VP] {
	if !c.Valid() {
		return c
	}
	return c.m.EdgeAt(c.m.halfedges[c.id].twin)
}

// Face moves to the bounded face; void on a boundary half-edge.
func (c EdgeCursor[VP]) Face() FaceCursor[VP] {
	if !c.Valid() {
		return FaceCursor[VP]{m: c.m, id: UndefinedFace}
	}
	return c.m.FaceAt(c.m.halfedges[c.id].face)
}

// Source moves to the origin vertex.
func (c EdgeCursor[VP]) Source() VertexCursor[VP] {
	if !c.Valid() {
		return VertexCursor[VP]{m: c.m, id: UndefinedVertex}
	}
	return c.m.VertexAt(c.m.halfedges[c.id].origin)
}

// Target moves to the destination vertex (the twin's origin).
func (c EdgeCursor[VP]) Target() VertexCursor[VP] {
	return c.Twin().Source()
}

// OnBoundary reports whether the half-edge bounds no face. False for a
// void cursor.
func (c EdgeCursor[VP]) OnBoundary() bool {
	return c.Valid() && !c.m.halfedges[c.id].face.Defined()
}

// --- VertexCursor ---------------------------------------------------

// Valid reports whether the cursor points at a live vertex.
func (c VertexCursor[VP]) Valid() bool { return c.m != nil && c.m.hasVertex(c.id) }

// ID returns the vertex id, UndefinedVertex for a void cursor.
func (c VertexCursor[VP]) ID() VertexID {
	if !c.Valid() {
		return UndefinedVertex
	}
	return c.id
}

// Ensure returns nil for a valid cursor and ErrVoid otherwise.
func (c VertexCursor[VP]) Ensure() error {
	if !c.Valid() {
		return fmt.Errorf("vertex cursor: %w", ErrVoid)
	}
	return nil
}

// Stay runs fn for its side effects and returns the cursor unchanged.
func (c VertexCursor[VP]) Stay(fn func(VertexCursor[VP])) VertexCursor[VP] {
	fn(c)
	return c
}

// Outgoing moves to the representative outgoing half-edge; void for an
// isolated vertex.
func (c VertexCursor[VP]) Outgoing() EdgeCursor[VP] {
	if !c.Valid() {
		return EdgeCursor[VP]{m: c.m, id: UndefinedEdge}
	}
	return c.m.EdgeAt(c.m.vertices[c.id].edge)
}

// Payload returns the vertex payload; the second result is false for a
// void cursor.
func (c VertexCursor[VP]) Payload() (VP, bool) {
	if !c.Valid() {
		var zero VP
		return zero, false
	}
	return c.m.vertices[c.id].payload, true
}

// Degree counts the incident undirected edges.
func (c VertexCursor[VP]) Degree() int {
	if !c.Valid() {
		return 0
	}
	n := 0
	for range c.m.OutgoingEdges(c.id) {
		n++
	}
	return n
}

// --- FaceCursor -----------------------------------------------------

// Valid reports whether the cursor points at a live face.
func (c FaceCursor[VP]) Valid() bool { return c.m != nil && c.m.hasFace(c.id) }

// ID returns the face id, UndefinedFace for a void cursor.
func (c FaceCursor[VP]) ID() FaceID {
	if !c.Valid() {
		return UndefinedFace
	}
	return c.id
}

// Ensure returns nil for a valid cursor and ErrVoid otherwise.
func (c FaceCursor[VP]) Ensure() error {
	if !c.Valid() {
		return fmt.Errorf("face cursor: %w", ErrVoid)
	}
	return nil
}

// Stay runs fn for its side effects and returns the cursor unchanged.
func (c FaceCursor[VP]) Stay(fn func(FaceCursor[VP])) FaceCursor[VP] {
	fn(c)
	return c
}

// Edge moves to the representative half-edge of the face loop.
func (c FaceCursor[VP]) Edge() EdgeCursor[VP] {
	if !c.Valid() {
		return EdgeCursor[VP]{m: c.m, id: UndefinedEdge}
	}
	return c.m.EdgeAt(c.m.faces[c.id].edge)
}

// Sides counts the half-edges bounding the face.
func (c FaceCursor[VP]) Sides() int {
	if !c.Valid() {
		return 0
	}
	n := 0
	for range c.m.FaceEdges(c.id) {
		n++
	}
	return n
}
