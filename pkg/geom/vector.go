package geom

import (
	"math"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
)

// Vector is a directed segment from Start to End.
// Deltas, length and angle are always derived, never stored.
type Vector struct {
	Start, End Point
}

// Vec is shorthand for Vector{Start: start, End: end}.
func Vec(start, end Point) Vector {
	return Vector{Start: start, End: end}
}

// DX returns End.X - Start.X.
func (v Vector) DX() float64 { return v.End.X - v.Start.X }

// DY returns End.Y - Start.Y.
func (v Vector) DY() float64 { return v.End.Y - v.Start.Y }

// Deltas returns (DX, DY).
func (v Vector) Deltas() (float64, float64) { return v.DX(), v.DY() }

// XLength returns |DX|.
func (v Vector) XLength() float64 { return math.Abs(v.DX()) }

// YLength returns |DY|.
func (v Vector) YLength() float64 { return math.Abs(v.DY()) }

// Length returns sqrt(DX² + DY²).
func (v Vector) Length() float64 {
	return math.Sqrt(v.DX()*v.DX() + v.DY()*v.DY())
}

// IsDegenerate reports whether Start and End coincide.
func (v Vector) IsDegenerate() bool {
	return v.DX() == 0 && v.DY() == 0
}

// Angle returns the direction of v in degrees, in [-90, 270).
//
// A vertical vector yields +90 or -90 depending on the sign of DY. A
// zero-length vector yields 0.
func (v Vector) Angle() float64 {
	return DeltasToAngle(v.DX(), v.DY())
}

// AngleChecked is like Angle but reports a zero-length vector as
// DEGENERATE_GEOMETRY.
func (v Vector) AngleChecked() (float64, error) {
	if v.IsDegenerate() {
		return 0, errs.New(errs.ErrCodeDegenerateGeometry,
			"angle of zero-length vector at %v", v.Start).WithOp("angle")
	}
	return v.Angle(), nil
}

// DeltasToAngle converts a displacement into an angle in degrees.
func DeltasToAngle(dx, dy float64) float64 {
	switch {
	case dx == 0 && dy == 0:
		return 0
	case dx == 0 && dy > 0:
		return 90
	case dx == 0:
		return -90
	}
	angle := RadToDeg(math.Atan(dy / dx))
	if dx < 0 {
		angle += 180
	}
	return angle
}

// Rotate rotates both endpoints about axis.
func (v Vector) Rotate(axis Point, deg float64) Vector {
	return Vector{Start: v.Start.Rotate(axis, deg), End: v.End.Rotate(axis, deg)}
}

// Orthogonal returns v rotated 90° about its start.
func (v Vector) Orthogonal() Vector {
	return Vector{Start: v.Start, End: v.End.Rotate(v.Start, 90)}
}

// ReflectX mirrors both endpoints across x = axisX.
func (v Vector) ReflectX(axisX float64) Vector {
	return Vector{Start: v.Start.ReflectX(axisX), End: v.End.ReflectX(axisX)}
}

// ReflectY mirrors both endpoints across y = axisY.
func (v Vector) ReflectY(axisY float64) Vector {
	return Vector{Start: v.Start.ReflectY(axisY), End: v.End.ReflectY(axisY)}
}

// Midpoint returns the midpoint of the segment.
func (v Vector) Midpoint() Point {
	return Midpoint(v.Start, v.End)
}
