package hemesh

import "errors"

// Structural errors surfaced by mutating operations. Callers match them
// with errors.Is; the builder wraps them with operation context.
var (
	// ErrDeleted is returned when an operation dereferences an id whose
	// element no longer exists (or never did).
	ErrDeleted = errors.New("hemesh: element does not exist")

	// ErrVoid is returned by Ensure on a cursor that points nowhere.
	ErrVoid = errors.New("hemesh: cursor is void")

	// ErrOpenChain is returned when closing a face over a chain that is
	// not a closed cycle of at least three half-edges.
	ErrOpenChain = errors.New("hemesh: chain does not close into a face loop")

	// ErrFaceClosed is returned when closing a face over a chain that
	// already bounds one.
	ErrFaceClosed = errors.New("hemesh: half-edge already bounds a face")

	// ErrEdgeExists is returned when inserting an edge between vertices
	// that are already connected.
	ErrEdgeExists = errors.New("hemesh: vertices are already connected")

	// ErrNonManifold is returned when an edge insertion would have to
	// splice into a vertex fan with no free boundary slot.
	ErrNonManifold = errors.New("hemesh: vertex fan has no boundary slot")

	// ErrExclusive is returned by Edit while another Builder is live.
	ErrExclusive = errors.New("hemesh: mesh already has an exclusive editor")

	// ErrReleased is returned when a Builder is used after Done.
	ErrReleased = errors.New("hemesh: builder already released")
)

// vertexRecord stores one incident outgoing half-edge (the most
// recently created one) and the caller-defined payload.
type vertexRecord[VP any] struct {
	edge    EdgeID
	payload VP
	deleted bool
}

// halfEdgeRecord stores the connectivity of one directed half-edge.
// next continues the face loop (or boundary chain) at the target
// vertex; prev is its inverse; twin is the opposite direction of the
// same undirected edge; face is the bounded face, if any.
type halfEdgeRecord struct {
	next, prev, twin EdgeID
	origin           VertexID
	face             FaceID
	deleted          bool
}

type faceRecord struct {
	edge    EdgeID
	deleted bool
}

// Mesh is a half-edge mesh with vertex payloads of type VP. The zero
// value is not usable; create meshes with New. A Mesh is not safe for
// concurrent use.
type Mesh[VP any] struct {
	vertices  []vertexRecord[VP]
	halfedges []halfEdgeRecord
	faces     []faceRecord

	liveVertices  int
	liveHalfEdges int
	liveFaces     int

	// editing is the borrow flag backing the single-writer discipline:
	// set by Edit, cleared by Builder.Done.
	editing bool
}

// New creates an empty mesh.
func New[VP any]() *Mesh[VP] {
	return &Mesh[VP]{}
}

// VertexCount returns the number of live vertices.
func (m *Mesh[VP]) VertexCount() int { return m.liveVertices }

// HalfEdgeCount returns the number of live half-edges.
func (m *Mesh[VP]) HalfEdgeCount() int { return m.liveHalfEdges }

// EdgeCount returns the number of live undirected edges.
func (m *Mesh[VP]) EdgeCount() int { return m.liveHalfEdges / 2 }

// FaceCount returns the number of live faces.
func (m *Mesh[VP]) FaceCount() int { return m.liveFaces }

// IsEmpty returns true if the mesh has no live elements.
func (m *Mesh[VP]) IsEmpty() bool {
	return m.liveVertices == 0 && m.liveHalfEdges == 0 && m.liveFaces == 0
}

// EulerCharacteristic returns |V| - |E| + |F| over the live elements.
// For a closed, connected, manifold mesh this is 2.
func (m *Mesh[VP]) EulerCharacteristic() int {
	return m.liveVertices - m.EdgeCount() + m.liveFaces
}

func (m *Mesh[VP]) hasVertex(v VertexID) bool {
	return v.Defined() && int(v) < len(m.vertices) && !m.vertices[v].deleted
}

func (m *Mesh[VP]) hasEdge(e EdgeID) bool {
	return e.Defined() && int(e) < len(m.halfedges) && !m.halfedges[e].deleted
}

func (m *Mesh[VP]) hasFace(f FaceID) bool {
	return f.Defined() && int(f) < len(m.faces) && !m.faces[f].deleted
}

// Payload returns the payload of a vertex. The second result is false
// if the vertex does not exist.
func (m *Mesh[VP]) Payload(v VertexID) (VP, bool) {
	if !m.hasVertex(v) {
		var zero VP
		return zero, false
	}
	return m.vertices[v].payload, true
}
