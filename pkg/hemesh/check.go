package hemesh

import "fmt"

// CheckSeverity indicates whether a finding is a broken invariant or
// merely advisory.
type CheckSeverity int

const (
	CheckError   CheckSeverity = iota // broken topological invariant
	CheckWarning                      // advisory
)

func (s CheckSeverity) String() string {
	switch s {
	case CheckError:
		return "error"
	case CheckWarning:
		return "warning"
	default:
		return fmt.Sprintf("CheckSeverity(%d)", int(s))
	}
}

// CheckFinding describes one invariant violation discovered by Check.
type CheckFinding struct {
	Element  string // which element has the problem, e.g. "e12"
	Message  string
	Severity CheckSeverity
}

func (f CheckFinding) Error() string {
	if f.Element == "" {
		return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Element, f.Message)
}

// Check runs the full topological invariant suite over the mesh and
// returns all findings. An empty slice means the mesh is consistent.
// Check is read-only and never mutates the mesh.
func Check[VP any](m *Mesh[VP]) []CheckFinding {
	var out []CheckFinding
	out = append(out, checkTwins(m)...)
	out = append(out, checkChains(m)...)
	out = append(out, checkFaceLoops(m)...)
	out = append(out, checkVertexFans(m)...)
	return out
}

// checkTwins verifies twin(twin(e)) == e and e != twin(e) for every
// live half-edge, and that twins connect live vertices head-to-tail.
func checkTwins[VP any](m *Mesh[VP]) []CheckFinding {
	var out []CheckFinding
	for e := range m.HalfEdges() {
		rec := m.halfedges[e]
		if !m.hasEdge(rec.twin) {
			out = append(out, CheckFinding{e.String(), "twin is dangling", CheckError})
			continue
		}
		if rec.twin == e {
			out = append(out, CheckFinding{e.String(), "half-edge is its own twin", CheckError})
		}
		if m.halfedges[rec.twin].twin != e {
			out = append(out, CheckFinding{e.String(), "twin(twin(e)) != e", CheckError})
		}
		if !m.hasVertex(rec.origin) {
			out = append(out, CheckFinding{e.String(), "origin is dangling", CheckError})
		}
	}
	return out
}

// checkChains verifies that next and prev are mutual inverses.
func checkChains[VP any](m *Mesh[VP]) []CheckFinding {
	var out []CheckFinding
	for e := range m.HalfEdges() {
		rec := m.halfedges[e]
		if !m.hasEdge(rec.next) || !m.hasEdge(rec.prev) {
			out = append(out, CheckFinding{e.String(), "next or prev is dangling", CheckError})
			continue
		}
		if m.halfedges[rec.next].prev != e {
			out = append(out, CheckFinding{e.String(), "prev(next(e)) != e", CheckError})
		}
		if m.halfedges[rec.prev].next != e {
			out = append(out, CheckFinding{e.String(), "next(prev(e)) != e", CheckError})
		}
		// Chains are tail-to-head connected.
		if m.halfedges[rec.next].origin != m.halfedges[rec.twin].origin {
			out = append(out, CheckFinding{e.String(), "next does not start at target", CheckError})
		}
	}
	return out
}

// checkFaceLoops verifies that each face's representative walks back to
// itself and that every edge on the loop reports the face.
func checkFaceLoops[VP any](m *Mesh[VP]) []CheckFinding {
	var out []CheckFinding
	for f := range m.Faces() {
		start := m.faces[f].edge
		if !m.hasEdge(start) {
			out = append(out, CheckFinding{f.String(), "representative edge is dangling", CheckError})
			continue
		}
		count := 0
		e := start
		ok := true
		for {
			if m.halfedges[e].face != f {
				out = append(out, CheckFinding{e.String(),
					fmt.Sprintf("on loop of %s but reports %s", f, m.halfedges[e].face), CheckError})
				ok = false
				break
			}
			count++
			if count > m.liveHalfEdges {
				out = append(out, CheckFinding{f.String(), "face loop does not close", CheckError})
				ok = false
				break
			}
			e = m.halfedges[e].next
			if e == start {
				break
			}
		}
		if ok && count < 3 {
			out = append(out, CheckFinding{f.String(),
				fmt.Sprintf("face loop has only %d edges", count), CheckError})
		}
	}
	return out
}

// checkVertexFans verifies that every outgoing edge of a vertex
// actually originates there and that the fan closes into a single
// cycle (vertex-manifold, no branching union).
func checkVertexFans[VP any](m *Mesh[VP]) []CheckFinding {
	var out []CheckFinding
	for v := range m.Vertices() {
		start := m.vertices[v].edge
		if !start.Defined() {
			continue // isolated vertex
		}
		if !m.hasEdge(start) {
			out = append(out, CheckFinding{v.String(), "representative edge is dangling", CheckError})
			continue
		}
		count := 0
		for e := range m.OutgoingEdges(v) {
			if m.halfedges[e].origin != v {
				out = append(out, CheckFinding{e.String(),
					fmt.Sprintf("in fan of %s but originates at %s", v, m.halfedges[e].origin), CheckError})
			}
			count++
			if count > m.liveHalfEdges {
				out = append(out, CheckFinding{v.String(), "vertex fan does not close", CheckError})
				break
			}
		}
	}
	return out
}
