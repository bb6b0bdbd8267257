package hemesh

import "fmt"

// All relinking of next/prev/twin/representative references is
// centralized in this file. Nothing outside it hand-edits connectivity,
// and everything in it is reached only through a Builder.

func (m *Mesh[VP]) insertVertex(payload VP) VertexID {
	id := VertexID(len(m.vertices))
	m.vertices = append(m.vertices, vertexRecord[VP]{edge: UndefinedEdge, payload: payload})
	m.liveVertices++
	return id
}

// sharedEdge returns the half-edge from a to b, or UndefinedEdge.
func (m *Mesh[VP]) sharedEdge(a, b VertexID) EdgeID {
	if !m.hasVertex(a) {
		return UndefinedEdge
	}
	start := m.vertices[a].edge
	if !start.Defined() {
		return UndefinedEdge
	}
	e := start
	for {
		t := m.halfedges[e].twin
		if m.halfedges[t].origin == b {
			return e
		}
		e = m.halfedges[t].next
		if e == start {
			return UndefinedEdge
		}
	}
}

// ingoingBoundary returns a face-less half-edge arriving at v, scanning
// the fan starting from the most recently created outgoing edge. This
// gives a consistent (not angularly sorted) splice order; geometric
// ordering is the caller's concern.
func (m *Mesh[VP]) ingoingBoundary(v VertexID) EdgeID {
	start := m.vertices[v].edge
	if !start.Defined() {
		return UndefinedEdge
	}
	e := start
	for {
		t := m.halfedges[e].twin
		if !m.halfedges[t].face.Defined() {
			return t
		}
		e = m.halfedges[t].next
		if e == start {
			return UndefinedEdge
		}
	}
}

// insertEdge creates the twin pair a->b / b->a and splices both ends
// into the existing boundary chains of their vertex fans. The returned
// id is the a->b half.
func (m *Mesh[VP]) insertEdge(a, b VertexID) (EdgeID, error) {
	if !m.hasVertex(a) {
		return UndefinedEdge, fmt.Errorf("source %s: %w", a, ErrDeleted)
	}
	if !m.hasVertex(b) {
		return UndefinedEdge, fmt.Errorf("target %s: %w", b, ErrDeleted)
	}
	if a == b {
		return UndefinedEdge, fmt.Errorf("source equals target %s: %w", a, ErrNonManifold)
	}
	if m.sharedEdge(a, b).Defined() || m.sharedEdge(b, a).Defined() {
		return UndefinedEdge, fmt.Errorf("%s-%s: %w", a, b, ErrEdgeExists)
	}

	inA := UndefinedEdge
	if m.vertices[a].edge.Defined() {
		if inA = m.ingoingBoundary(a); !inA.Defined() {
			return UndefinedEdge, fmt.Errorf("vertex %s: %w", a, ErrNonManifold)
		}
	}
	inB := UndefinedEdge
	if m.vertices[b].edge.Defined() {
		if inB = m.ingoingBoundary(b); !inB.Defined() {
			return UndefinedEdge, fmt.Errorf("vertex %s: %w", b, ErrNonManifold)
		}
	}

	return m.linkEdgePair(a, b, inA, inB), nil
}

// insertEdgeAt creates a twin pair between the targets of inA and inB,
// splicing directly after each. Both slots must be face-less
// half-edges. Callers reach for it when a vertex sits on more than one
// boundary chain, where insertEdge's free-slot scan is ambiguous.
func (m *Mesh[VP]) insertEdgeAt(inA, inB EdgeID) (EdgeID, error) {
	if !m.hasEdge(inA) {
		return UndefinedEdge, fmt.Errorf("source slot %s: %w", inA, ErrDeleted)
	}
	if !m.hasEdge(inB) {
		return UndefinedEdge, fmt.Errorf("target slot %s: %w", inB, ErrDeleted)
	}
	if m.halfedges[inA].face.Defined() {
		return UndefinedEdge, fmt.Errorf("source slot %s: %w", inA, ErrFaceClosed)
	}
	if m.halfedges[inB].face.Defined() {
		return UndefinedEdge, fmt.Errorf("target slot %s: %w", inB, ErrFaceClosed)
	}
	a := m.halfedges[m.halfedges[inA].twin].origin
	b := m.halfedges[m.halfedges[inB].twin].origin
	if a == b {
		return UndefinedEdge, fmt.Errorf("source equals target %s: %w", a, ErrNonManifold)
	}
	if m.sharedEdge(a, b).Defined() || m.sharedEdge(b, a).Defined() {
		return UndefinedEdge, fmt.Errorf("%s-%s: %w", a, b, ErrEdgeExists)
	}
	return m.linkEdgePair(a, b, inA, inB), nil
}

// linkEdgePair appends the twin pair a->b / b->a and splices it into
// the chains arriving via inA (at a) and inB (at b). Undefined slots
// leave that end a self-loop, for isolated vertices.
func (m *Mesh[VP]) linkEdgePair(a, b VertexID, inA, inB EdgeID) EdgeID {
	e1 := EdgeID(len(m.halfedges)) // a -> b
	e2 := e1 + 1                   // b -> a
	m.halfedges = append(m.halfedges,
		halfEdgeRecord{next: e2, prev: e2, twin: e2, origin: a, face: UndefinedFace},
		halfEdgeRecord{next: e1, prev: e1, twin: e1, origin: b, face: UndefinedFace},
	)
	m.liveHalfEdges += 2

	// Splice at a: the chain arriving via inA continues through e1,
	// and e2 arrives at a just before the old continuation.
	if inA.Defined() {
		outA := m.halfedges[inA].next
		m.halfedges[inA].next = e1
		m.halfedges[e1].prev = inA
		m.halfedges[e2].next = outA
		m.halfedges[outA].prev = e2
	}
	if inB.Defined() {
		outB := m.halfedges[inB].next
		m.halfedges[inB].next = e2
		m.halfedges[e2].prev = inB
		m.halfedges[e1].next = outB
		m.halfedges[outB].prev = e1
	}

	// Most-recently-created edge becomes the representative.
	m.vertices[a].edge = e1
	m.vertices[b].edge = e2
	return e1
}

// closeFace walks the next-chain from start and assigns a new face to
// the loop. It fails without touching the mesh if the chain revisits
// fewer than three half-edges, leaves the mesh, or already bounds a
// face.
func (m *Mesh[VP]) closeFace(start EdgeID) (FaceID, error) {
	if !m.hasEdge(start) {
		return UndefinedFace, fmt.Errorf("loop start %s: %w", start, ErrDeleted)
	}
	count := 0
	e := start
	for {
		if m.halfedges[e].face.Defined() {
			return UndefinedFace, fmt.Errorf("half-edge %s: %w", e, ErrFaceClosed)
		}
		count++
		if count > m.liveHalfEdges {
			return UndefinedFace, fmt.Errorf("loop from %s: %w", start, ErrOpenChain)
		}
		e = m.halfedges[e].next
		if e == start {
			break
		}
	}
	if count < 3 {
		return UndefinedFace, fmt.Errorf("loop from %s has %d edges: %w", start, count, ErrOpenChain)
	}

	f := FaceID(len(m.faces))
	m.faces = append(m.faces, faceRecord{edge: start})
	m.liveFaces++
	e = start
	for {
		m.halfedges[e].face = f
		e = m.halfedges[e].next
		if e == start {
			break
		}
	}
	return f, nil
}

// dissolveFace clears the face references of f's loop and tombstones
// the face record. The boundary chain itself survives.
func (m *Mesh[VP]) dissolveFace(f FaceID) error {
	if !m.hasFace(f) {
		return fmt.Errorf("face %s: %w", f, ErrDeleted)
	}
	start := m.faces[f].edge
	e := start
	for {
		m.halfedges[e].face = UndefinedFace
		e = m.halfedges[e].next
		if e == start {
			break
		}
	}
	m.faces[f].edge = UndefinedEdge
	m.faces[f].deleted = true
	m.liveFaces--
	return nil
}

// deleteEdge removes the twin pair of e, dissolving any face bounded by
// either half, relinking the surrounding chains and re-electing vertex
// representatives. Endpoint vertices survive, possibly isolated.
func (m *Mesh[VP]) deleteEdge(e EdgeID) error {
	if !m.hasEdge(e) {
		return fmt.Errorf("half-edge %s: %w", e, ErrDeleted)
	}
	t := m.halfedges[e].twin
	if f := m.halfedges[e].face; f.Defined() {
		if err := m.dissolveFace(f); err != nil {
			return err
		}
	}
	if f := m.halfedges[t].face; f.Defined() {
		if err := m.dissolveFace(f); err != nil {
			return err
		}
	}

	m.unlinkEnd(e, t) // origin of e
	m.unlinkEnd(t, e) // origin of t

	m.tombstone(e)
	m.tombstone(t)
	m.liveHalfEdges -= 2
	return nil
}

// unlinkEnd detaches the half-edge pair at the origin of out, where in
// is the twin arriving there.
func (m *Mesh[VP]) unlinkEnd(out, in EdgeID) {
	v := m.halfedges[out].origin
	p := m.halfedges[out].prev // arrives at v
	n := m.halfedges[in].next  // leaves v
	if p == in {
		// The pair was v's only incident edge.
		m.vertices[v].edge = UndefinedEdge
		return
	}
	m.halfedges[p].next = n
	m.halfedges[n].prev = p
	if m.vertices[v].edge == out {
		m.vertices[v].edge = n
	}
}

func (m *Mesh[VP]) tombstone(e EdgeID) {
	m.halfedges[e] = halfEdgeRecord{
		next: UndefinedEdge, prev: UndefinedEdge, twin: UndefinedEdge,
		origin: UndefinedVertex, face: UndefinedFace, deleted: true,
	}
}

// deleteVertex removes v and every edge incident to it.
func (m *Mesh[VP]) deleteVertex(v VertexID) error {
	if !m.hasVertex(v) {
		return fmt.Errorf("vertex %s: %w", v, ErrDeleted)
	}
	// Collect first: deleting edges rewires the fan under iteration.
	var incident []EdgeID
	start := m.vertices[v].edge
	if start.Defined() {
		e := start
		for {
			incident = append(incident, e)
			e = m.halfedges[m.halfedges[e].twin].next
			if e == start {
				break
			}
		}
	}
	for _, e := range incident {
		if err := m.deleteEdge(e); err != nil {
			return err
		}
	}
	m.vertices[v].edge = UndefinedEdge
	m.vertices[v].deleted = true
	m.liveVertices--
	return nil
}
