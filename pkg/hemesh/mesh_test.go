package hemesh

import (
	"slices"
	"testing"
)

func TestNewMeshIsEmpty(t *testing.T) {
	m := New[int]()
	if !m.IsEmpty() {
		t.Error("new mesh should be empty")
	}
	if got := m.VertexCount() + m.HalfEdgeCount() + m.FaceCount(); got != 0 {
		t.Errorf("counts on empty mesh sum to %d, want 0", got)
	}
	if _, ok := m.Payload(VertexID(0)); ok {
		t.Error("Payload() on an empty mesh should report false")
	}
}

func TestIDStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{VertexID(7).String(), "v7"},
		{EdgeID(0).String(), "e0"},
		{FaceID(12).String(), "f12"},
		{UndefinedVertex.String(), "v(-)"},
		{UndefinedEdge.String(), "e(-)"},
		{UndefinedFace.String(), "f(-)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestIteratorsSkipDeleted(t *testing.T) {
	m, vs, es, _ := buildTriangle(t)
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	b.DeleteVertex(vs[2])
	b.Done()

	var vids []VertexID
	for v := range m.Vertices() {
		vids = append(vids, v)
	}
	if !slices.Equal(vids, []VertexID{vs[0], vs[1]}) {
		t.Errorf("Vertices() = %v, want [%s %s]", vids, vs[0], vs[1])
	}

	for e := range m.HalfEdges() {
		if e != es[0] && e != m.halfedges[es[0]].twin {
			t.Errorf("HalfEdges() yielded deleted edge %s", e)
		}
	}
	if got := m.FaceCount(); got != 0 {
		t.Errorf("FaceCount() = %d, want 0 after vertex deletion", got)
	}
}

func TestOutgoingEdgesOrder(t *testing.T) {
	// The fan yields the most recently created edge first.
	m := New[int]()
	b, err := m.Edit()
	if err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	hub := b.InsertVertex(0)
	s1 := b.InsertVertex(1)
	s2 := b.InsertVertex(2)
	s3 := b.InsertVertex(3)
	e1 := b.InsertEdge(hub, s1)
	e2 := b.InsertEdge(hub, s2)
	e3 := b.InsertEdge(hub, s3)
	b.Done()

	var fan []EdgeID
	for e := range m.OutgoingEdges(hub) {
		fan = append(fan, e)
	}
	if !slices.Equal(fan, []EdgeID{e3, e2, e1}) {
		t.Errorf("OutgoingEdges() = %v, want [%s %s %s]", fan, e3, e2, e1)
	}
	if got := m.VertexAt(hub).Degree(); got != 3 {
		t.Errorf("Degree() = %d, want 3", got)
	}
}

func TestBoundaryChains(t *testing.T) {
	t.Run("triangle has one chain", func(t *testing.T) {
		m, _, _, _ := buildTriangle(t)
		n := 0
		for start := range m.BoundaryChains() {
			n++
			e := start
			edges := 0
			for {
				if m.halfedges[e].face.Defined() {
					t.Errorf("boundary chain edge %s bounds a face", e)
				}
				edges++
				e = m.halfedges[e].next
				if e == start {
					break
				}
			}
			if edges != 3 {
				t.Errorf("boundary chain has %d edges, want 3", edges)
			}
		}
		if n != 1 {
			t.Errorf("BoundaryChains() yielded %d chains, want 1", n)
		}
	})

	t.Run("dihedron has none", func(t *testing.T) {
		m, _, es, _ := buildTriangle(t)
		b, err := m.Edit()
		if err != nil {
			t.Fatalf("Edit() error: %v", err)
		}
		b.CloseFace(m.halfedges[es[0]].twin)
		b.Done()

		for range m.BoundaryChains() {
			t.Error("closed mesh should have no boundary chains")
		}
	})
}
