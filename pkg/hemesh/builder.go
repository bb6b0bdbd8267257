package hemesh

import "fmt"

// Builder is the exclusive cursor of a mesh: the only handle through
// which mutation is possible. At most one Builder is live per mesh at a
// time (Edit fails while one exists); shared cursors may coexist
// freely. Errors are sticky: after the first failure every further
// operation is a no-op returning sentinel ids, the mesh stays in its
// last consistent state, and Err reports the first failure.
//
// Every successful mutation repositions the builder at a successor
// element (the newly created edge, the representative edge of a new
// face, a surviving neighbor after deletion) so that edits can chain.
type Builder[VP any] struct {
	m    *Mesh[VP]
	pos  EdgeID
	err  error
	done bool
}

// Edit acquires the exclusive editor for the mesh. It fails with
// ErrExclusive while another Builder is live. Release it with Done.
func (m *Mesh[VP]) Edit() (*Builder[VP], error) {
	if m.editing {
		return nil, ErrExclusive
	}
	m.editing = true
	return &Builder[VP]{m: m, pos: UndefinedEdge}, nil
}

// Done releases the exclusive editor. The builder must not be used
// afterwards.
func (b *Builder[VP]) Done() {
	if !b.done {
		b.done = true
		b.m.editing = false
	}
}

// Err returns the first error recorded by any operation, or nil.
func (b *Builder[VP]) Err() error { return b.err }

// Cursor returns a shared cursor at the builder's current position,
// void if no mutation has positioned it yet.
func (b *Builder[VP]) Cursor() EdgeCursor[VP] { return b.m.EdgeAt(b.pos) }

// MoveTo repositions the builder at the given half-edge.
func (b *Builder[VP]) MoveTo(e EdgeID) *Builder[VP] {
	if b.guard("MoveTo") {
		return b
	}
	if !b.m.hasEdge(e) {
		b.fail("MoveTo", fmt.Errorf("half-edge %s: %w", e, ErrDeleted))
		return b
	}
	b.pos = e
	return b
}

// guard returns true if the builder must refuse to operate.
func (b *Builder[VP]) guard(op string) bool {
	if b.done {
		b.fail(op, ErrReleased)
		return true
	}
	return b.err != nil
}

func (b *Builder[VP]) fail(op string, err error) {
	if b.err == nil {
		b.err = fmt.Errorf("hemesh: %s: %w", op, err)
	}
}

// InsertVertex creates an isolated vertex carrying the payload.
func (b *Builder[VP]) InsertVertex(payload VP) VertexID {
	if b.guard("InsertVertex") {
		return UndefinedVertex
	}
	return b.m.insertVertex(payload)
}

// InsertEdge connects two existing vertices with a twin pair and
// positions the builder at the source-to-target half.
func (b *Builder[VP]) InsertEdge(source, target VertexID) EdgeID {
	if b.guard("InsertEdge") {
		return UndefinedEdge
	}
	e, err := b.m.insertEdge(source, target)
	if err != nil {
		b.fail("InsertEdge", err)
		return UndefinedEdge
	}
	b.pos = e
	return e
}

// InsertEdgeAfter connects the targets of two face-less half-edges,
// splicing the new twin pair directly after each slot: the chain
// arriving via inSource continues through the new edge, and likewise
// at inTarget. Use it where a vertex lies on several boundary chains
// and InsertEdge's slot scan would be ambiguous. Positions the builder
// at the new source-to-target half.
func (b *Builder[VP]) InsertEdgeAfter(inSource, inTarget EdgeID) EdgeID {
	if b.guard("InsertEdgeAfter") {
		return UndefinedEdge
	}
	e, err := b.m.insertEdgeAt(inSource, inTarget)
	if err != nil {
		b.fail("InsertEdgeAfter", err)
		return UndefinedEdge
	}
	b.pos = e
	return e
}

// CloseFace walks the cyclic chain from loopStart and binds a new face
// to it, positioning the builder at the face's representative edge.
func (b *Builder[VP]) CloseFace(loopStart EdgeID) FaceID {
	if b.guard("CloseFace") {
		return UndefinedFace
	}
	f, err := b.m.closeFace(loopStart)
	if err != nil {
		b.fail("CloseFace", err)
		return UndefinedFace
	}
	b.pos = loopStart
	return f
}

// DeleteEdge removes an undirected edge (both halves), dissolving any
// face it bounds. The builder moves to a surviving neighbor of the
// source fan, or void.
func (b *Builder[VP]) DeleteEdge(e EdgeID) *Builder[VP] {
	if b.guard("DeleteEdge") {
		return b
	}
	var succ EdgeID = UndefinedEdge
	if b.m.hasEdge(e) {
		if v := b.m.halfedges[e].origin; b.m.hasVertex(v) {
			succ = b.m.vertices[v].edge
			if succ == e {
				succ = UndefinedEdge
			}
		}
	}
	if err := b.m.deleteEdge(e); err != nil {
		b.fail("DeleteEdge", err)
		return b
	}
	if !b.m.hasEdge(succ) {
		succ = UndefinedEdge
	}
	b.pos = succ
	return b
}

// DeleteVertex removes a vertex together with all incident edges.
func (b *Builder[VP]) DeleteVertex(v VertexID) *Builder[VP] {
	if b.guard("DeleteVertex") {
		return b
	}
	if err := b.m.deleteVertex(v); err != nil {
		b.fail("DeleteVertex", err)
		return b
	}
	if !b.m.hasEdge(b.pos) {
		b.pos = UndefinedEdge
	}
	return b
}

// DeleteFace dissolves a face, leaving its boundary chain intact, and
// positions the builder at the surviving chain.
func (b *Builder[VP]) DeleteFace(f FaceID) *Builder[VP] {
	if b.guard("DeleteFace") {
		return b
	}
	var succ EdgeID = UndefinedEdge
	if b.m.hasFace(f) {
		succ = b.m.faces[f].edge
	}
	if err := b.m.dissolveFace(f); err != nil {
		b.fail("DeleteFace", err)
		return b
	}
	b.pos = succ
	return b
}

// Mesh returns the mesh being edited, for read access mid-edit.
func (b *Builder[VP]) Mesh() *Mesh[VP] { return b.m }
