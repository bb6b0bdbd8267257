package hemesh

import "fmt"

// VertexID identifies a vertex in a mesh. The zero-value of a mesh
// assigns ids densely starting at 0; ids of deleted elements are never
// reused.
type VertexID int32

// EdgeID identifies a half-edge in a mesh. The two half-edges of an
// undirected edge are allocated together and point at each other via
// Twin.
type EdgeID int32

// FaceID identifies a face in a mesh.
type FaceID int32

// Sentinel ids meaning "absent". Navigating to an absent element is not
// an error; dereferencing one is.
const (
	UndefinedVertex VertexID = -1
	UndefinedEdge   EdgeID   = -1
	UndefinedFace   FaceID   = -1
)

// Defined reports whether the id refers to an element (which may still
// have been deleted since the id was obtained).
func (v VertexID) Defined() bool { return v >= 0 }

// Defined reports whether the id refers to an element.
func (e EdgeID) Defined() bool { return e >= 0 }

// Defined reports whether the id refers to an element.
func (f FaceID) Defined() bool { return f >= 0 }

func (v VertexID) String() string {
	if !v.Defined() {
		return "v(-)"
	}
	return fmt.Sprintf("v%d", int32(v))
}

func (e EdgeID) String() string {
	if !e.Defined() {
		return "e(-)"
	}
	return fmt.Sprintf("e%d", int32(e))
}

func (f FaceID) String() string {
	if !f.Defined() {
		return "f(-)"
	}
	return fmt.Sprintf("f%d", int32(f))
}
