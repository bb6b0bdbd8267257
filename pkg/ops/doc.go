// Package ops implements mesh-level operations on top of the hemesh
// builder: polygon construction, face triangulation via the 2D
// triangulation algorithms, extrusion and lofting, and payload
// transform helpers for the common 3D-point payload.
//
// All mutating operations go through an exclusive hemesh.Builder and
// inherit its error discipline: structural failures stick to the
// builder, geometric failures (a triangulation that cannot be
// computed) are reported before the mesh is touched.
package ops
