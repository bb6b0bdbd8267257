package hemesh

import (
	"errors"
	"testing"
)

// buildTriangle connects three vertices into a single triangular face
// and returns the mesh, the vertex ids, and the inner loop's half-edges
// in order.
func buildTriangle(t *testing.T) (*Mesh[string], [3]VertexID, [3]EdgeID, FaceID) {
	t.Helper()
	m := New[string]()
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	defer b.Done()

	v0 := b.InsertVertex("a")
	v1 := b.InsertVertex("b")
	v2 := b.InsertVertex("c")
	e0 := b.InsertEdge(v0, v1)
	e1 := b.InsertEdge(v1, v2)
	e2 := b.InsertEdge(v2, v0)
	f := b.CloseFace(e0)
	if b.Err() != nil {
		t.Fatalf("building triangle: %v", b.Err())
	}
	return m, [3]VertexID{v0, v1, v2}, [3]EdgeID{e0, e1, e2}, f
}

func TestBuilderTriangle(t *testing.T) {
	m, vs, es, f := buildTriangle(t)

	if got := m.VertexCount(); got != 3 {
		t.Errorf("VertexCount() = %d, want 3", got)
	}
	if got := m.HalfEdgeCount(); got != 6 {
		t.Errorf("HalfEdgeCount() = %d, want 6", got)
	}
	if got := m.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
	if got := m.FaceCount(); got != 1 {
		t.Errorf("FaceCount() = %d, want 1", got)
	}

	// The inner loop visits the three inserted half-edges in order.
	var loop []EdgeID
	for e := range m.FaceEdges(f) {
		loop = append(loop, e)
	}
	if len(loop) != 3 {
		t.Fatalf("face loop has %d edges, want 3", len(loop))
	}
	want := []EdgeID{es[0], es[1], es[2]}
	for i := range want {
		if loop[i] != want[i] {
			t.Errorf("face loop[%d] = %s, want %s", i, loop[i], want[i])
		}
	}

	// The twin halves form the outer boundary chain and bound no face.
	for _, e := range es {
		tw := m.EdgeAt(e).Twin()
		if !tw.OnBoundary() {
			t.Errorf("twin of %s should be on the boundary", e)
		}
	}

	// Vertex order around the face matches insertion order.
	var around []VertexID
	for v := range m.FaceVertices(f) {
		around = append(around, v)
	}
	for i := range vs {
		if around[i] != vs[i] {
			t.Errorf("face vertex[%d] = %s, want %s", i, around[i], vs[i])
		}
	}

	if findings := Check(m); len(findings) != 0 {
		t.Errorf("Check() reported %d findings: %v", len(findings), findings)
	}
}

func TestBuilderDihedron(t *testing.T) {
	// Two faces sharing the same three edges form a closed surface with
	// Euler characteristic 2.
	m, _, es, _ := buildTriangle(t)
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	defer b.Done()

	outer := m.EdgeAt(es[0]).Twin().ID()
	if b.CloseFace(outer); b.Err() != nil {
		t.Fatalf("closing outer loop: %v", b.Err())
	}
	if got := m.FaceCount(); got != 2 {
		t.Errorf("FaceCount() = %d, want 2", got)
	}
	if got := m.EulerCharacteristic(); got != 2 {
		t.Errorf("EulerCharacteristic() = %d, want 2", got)
	}
	if findings := Check(m); len(findings) != 0 {
		t.Errorf("Check() reported %d findings: %v", len(findings), findings)
	}
}

func TestDeleteLeafVertex(t *testing.T) {
	// Deleting a degree-1 vertex removes exactly the vertex and its one
	// edge pair, leaving the rest of the path intact.
	m := New[string]()
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	defer b.Done()

	v0 := b.InsertVertex("a")
	v1 := b.InsertVertex("b")
	v2 := b.InsertVertex("c")
	b.InsertEdge(v0, v1)
	b.InsertEdge(v1, v2)
	if b.Err() != nil {
		t.Fatalf("building path: %v", b.Err())
	}

	b.DeleteVertex(v2)
	if b.Err() != nil {
		t.Fatalf("DeleteVertex(%s): %v", v2, b.Err())
	}
	if got := m.VertexCount(); got != 2 {
		t.Errorf("VertexCount() = %d, want 2", got)
	}
	if got := m.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}
	if got := m.VertexAt(v1).Degree(); got != 1 {
		t.Errorf("Degree(%s) = %d, want 1", v1, got)
	}
	if findings := Check(m); len(findings) != 0 {
		t.Errorf("Check() reported %d findings: %v", len(findings), findings)
	}
}

func TestDeleteEdgeDissolvesFace(t *testing.T) {
	m, _, es, f := buildTriangle(t)
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	defer b.Done()

	b.DeleteEdge(es[1])
	if b.Err() != nil {
		t.Fatalf("DeleteEdge(%s): %v", es[1], b.Err())
	}
	if m.FaceAt(f).Valid() {
		t.Errorf("face %s should dissolve with its edge", f)
	}
	if got := m.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got)
	}
	if got := m.VertexCount(); got != 3 {
		t.Errorf("VertexCount() = %d, want 3", got)
	}
	if findings := Check(m); len(findings) != 0 {
		t.Errorf("Check() reported %d findings: %v", len(findings), findings)
	}
}

func TestDeleteFaceKeepsChain(t *testing.T) {
	m, _, es, f := buildTriangle(t)
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	defer b.Done()

	b.DeleteFace(f)
	if b.Err() != nil {
		t.Fatalf("DeleteFace(%s): %v", f, b.Err())
	}
	if got := m.FaceCount(); got != 0 {
		t.Errorf("FaceCount() = %d, want 0", got)
	}
	if got := m.HalfEdgeCount(); got != 6 {
		t.Errorf("HalfEdgeCount() = %d, want 6", got)
	}
	if !m.EdgeAt(es[0]).OnBoundary() {
		t.Errorf("%s should be on the boundary after its face dissolved", es[0])
	}
}

func TestInsertEdgeErrors(t *testing.T) {
	m, vs, _, _ := buildTriangle(t)

	tests := []struct {
		name    string
		run     func(*Builder[string])
		wantErr error
	}{
		{"duplicate edge", func(b *Builder[string]) { b.InsertEdge(vs[0], vs[1]) }, ErrEdgeExists},
		{"reversed duplicate", func(b *Builder[string]) { b.InsertEdge(vs[1], vs[0]) }, ErrEdgeExists},
		{"self loop", func(b *Builder[string]) { b.InsertEdge(vs[0], vs[0]) }, ErrNonManifold},
		{"missing vertex", func(b *Builder[string]) { b.InsertEdge(vs[0], VertexID(99)) }, ErrDeleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := m.Edit()
			if err != nil {
				t.Fatalf("Edit() error: %v", err)
			}
			defer b.Done()
			tt.run(b)
			if !errors.Is(b.Err(), tt.wantErr) {
				t.Errorf("Err() = %v, want %v", b.Err(), tt.wantErr)
			}
		})
	}
}

func TestCloseFaceErrors(t *testing.T) {
	t.Run("already closed", func(t *testing.T) {
		m, _, es, _ := buildTriangle(t)
		b, err := m.Edit()
		if err != nil {
			t.Fatalf("Edit() error: %v", err)
		}
		defer b.Done()
		b.CloseFace(es[0])
		if !errors.Is(b.Err(), ErrFaceClosed) {
			t.Errorf("Err() = %v, want %v", b.Err(), ErrFaceClosed)
		}
	})

	t.Run("loop too short", func(t *testing.T) {
		m := New[string]()
		b, err := m.Edit()
		if err != nil {
			t.Fatalf("Edit() error: %v", err)
		}
		defer b.Done()
		v0 := b.InsertVertex("a")
		v1 := b.InsertVertex("b")
		e := b.InsertEdge(v0, v1)
		b.CloseFace(e)
		if !errors.Is(b.Err(), ErrOpenChain) {
			t.Errorf("Err() = %v, want %v", b.Err(), ErrOpenChain)
		}
	})
}

func TestEditExclusive(t *testing.T) {
	m := New[string]()
	b1, err := m.Edit()
	if err != nil {
		t.Fatalf("first Edit() error: %v", err)
	}
	if _, err := m.Edit(); !errors.Is(err, ErrExclusive) {
		t.Errorf("second Edit() error = %v, want %v", err, ErrExclusive)
	}
	b1.Done()
	b2, err := m.Edit()
	if err != nil {
		t.Errorf("Edit() after Done error: %v", err)
	}
	b2.Done()
}

func TestBuilderStickyError(t *testing.T) {
	m := New[string]()
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	defer b.Done()

	v0 := b.InsertVertex("a")
	b.InsertEdge(v0, VertexID(42)) // fails
	first := b.Err()
	if !errors.Is(first, ErrDeleted) {
		t.Fatalf("Err() = %v, want %v", first, ErrDeleted)
	}

	// Everything after the failure is a no-op.
	if got := b.InsertVertex("b"); got != UndefinedVertex {
		t.Errorf("InsertVertex() after failure = %s, want %s", got, UndefinedVertex)
	}
	if got := m.VertexCount(); got != 1 {
		t.Errorf("VertexCount() = %d, want 1 (no mutation after failure)", got)
	}
	if b.Err() != first {
		t.Errorf("Err() changed after failure: %v", b.Err())
	}
}

func TestBuilderUseAfterDone(t *testing.T) {
	m := New[string]()
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	b.Done()
	if got := b.InsertVertex("a"); got != UndefinedVertex {
		t.Errorf("InsertVertex() after Done = %s, want %s", got, UndefinedVertex)
	}
	if !errors.Is(b.Err(), ErrReleased) {
		t.Errorf("Err() = %v, want %v", b.Err(), ErrReleased)
	}
}

func TestInsertEdgeAfter(t *testing.T) {
	// Split a square cavity with an explicit diagonal. The slot form
	// pins the splice to the inner chain even though the outer boundary
	// chain is face-less too.
	m := New[string]()
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	defer b.Done()

	var vs [4]VertexID
	var es [4]EdgeID
	for i, name := range []string{"a", "b", "c", "d"} {
		vs[i] = b.InsertVertex(name)
	}
	for i := range es {
		es[i] = b.InsertEdge(vs[i], vs[(i+1)%4])
	}
	f := b.CloseFace(es[0])
	b.DeleteFace(f)

	// Diagonal from vs[2] to vs[0]: arrives after es[1] and es[3].
	d := b.InsertEdgeAfter(es[1], es[3])
	b.CloseFace(es[0])
	b.CloseFace(es[2])
	if b.Err() != nil {
		t.Fatalf("splitting square: %v", b.Err())
	}

	if got := m.FaceCount(); got != 2 {
		t.Errorf("FaceCount() = %d, want 2", got)
	}
	if got := m.EdgeAt(d).Source().ID(); got != vs[2] {
		t.Errorf("diagonal source = %s, want %s", got, vs[2])
	}
	if got := m.EdgeAt(d).Target().ID(); got != vs[0] {
		t.Errorf("diagonal target = %s, want %s", got, vs[0])
	}
	for _, f := range []FaceID{m.EdgeAt(es[0]).Face().ID(), m.EdgeAt(es[2]).Face().ID()} {
		if got := m.FaceAt(f).Sides(); got != 3 {
			t.Errorf("face %s has %d sides, want 3", f, got)
		}
	}
	if findings := Check(m); len(findings) != 0 {
		t.Errorf("Check() reported %d findings: %v", len(findings), findings)
	}
}

func TestInsertEdgeAfterRejectsClosedSlot(t *testing.T) {
	m, _, es, _ := buildTriangle(t)
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	defer b.Done()

	b.InsertEdgeAfter(es[0], es[1])
	if !errors.Is(b.Err(), ErrFaceClosed) {
		t.Errorf("Err() = %v, want %v", b.Err(), ErrFaceClosed)
	}
}

func TestBuilderRepositioning(t *testing.T) {
	m := New[string]()
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	defer b.Done()

	if b.Cursor().Valid() {
		t.Error("fresh builder cursor should be void")
	}
	v0 := b.InsertVertex("a")
	v1 := b.InsertVertex("b")
	e := b.InsertEdge(v0, v1)
	if got := b.Cursor().ID(); got != e {
		t.Errorf("cursor after InsertEdge = %s, want %s", got, e)
	}
	b.DeleteEdge(e)
	if b.Cursor().Valid() {
		t.Error("cursor should be void after deleting the only edge")
	}
}
