package ops

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

// Payload transforms for the common 3D-point payload, shaped to plug
// into Extrude's lift parameter.

// Translate returns a transform shifting points by d.
func Translate(d v3.Vec) func(v3.Vec) v3.Vec {
	return func(p v3.Vec) v3.Vec { return p.Add(d) }
}

// Scale returns a transform scaling points about the origin.
func Scale(k float64) func(v3.Vec) v3.Vec {
	return func(p v3.Vec) v3.Vec { return p.MulScalar(k) }
}

// RotateAxis returns a transform rotating points by angle radians
// around the axis through the origin.
func RotateAxis(axis v3.Vec, angle float64) func(v3.Vec) v3.Vec {
	q := mgl64.QuatRotate(angle, mgl64.Vec3{axis.X, axis.Y, axis.Z}.Normalize())
	return func(p v3.Vec) v3.Vec {
		r := q.Rotate(mgl64.Vec3{p.X, p.Y, p.Z})
		return v3.Vec{X: r.X(), Y: r.Y(), Z: r.Z()}
	}
}

// ProjectXY drops the Z coordinate, the right projection for faces in
// any plane parallel to XY.
func ProjectXY(p v3.Vec) v2.Vec {
	return v2.Vec{X: p.X, Y: p.Y}
}

// ProjectPlane returns the projection onto the plane through origin
// spanned by the unit vectors u and v. TriangulateFace accepts either
// handedness, so u and v only need to span the face's plane.
func ProjectPlane(origin, u, v v3.Vec) func(v3.Vec) v2.Vec {
	return func(p v3.Vec) v2.Vec {
		d := p.Sub(origin)
		return v2.Vec{X: d.Dot(u), Y: d.Dot(v)}
	}
}
