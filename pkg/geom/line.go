package geom

import (
	"math"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
)

// lineEpsilon is the slope threshold below which a line is treated as
// exactly vertical or horizontal.
const lineEpsilon = 1e-6

// OnSegment returns the point at parameter t on the segment from a to b.
func OnSegment(a, b Point, t float64) Point {
	return Lerp(a, b, t)
}

// OnLineAtX returns the point with the given x on the line through a and b.
// A vertical line has no unique such point and yields DEGENERATE_GEOMETRY.
func OnLineAtX(a, b Point, x float64) (Point, error) {
	if math.Abs(a.X-b.X) < lineEpsilon {
		return Point{}, errs.New(errs.ErrCodeDegenerateGeometry,
			"line through %v and %v is vertical", a, b).WithOp("line-at-x")
	}
	m := (a.Y - b.Y) / (a.X - b.X)
	c := a.Y - m*a.X
	return Point{X: x, Y: m*x + c}, nil
}

// OnLineAtY returns the point with the given y on the line through a and b.
// A horizontal line yields DEGENERATE_GEOMETRY.
func OnLineAtY(a, b Point, y float64) (Point, error) {
	if math.Abs(a.Y-b.Y) < lineEpsilon {
		return Point{}, errs.New(errs.ErrCodeDegenerateGeometry,
			"line through %v and %v is horizontal", a, b).WithOp("line-at-y")
	}
	m := (a.X - b.X) / (a.Y - b.Y)
	c := a.X - m*a.Y
	return Point{X: m*y + c, Y: y}, nil
}

// AxisToCanvas maps a data-axis value to a canvas coordinate, given two
// calibration pairs (canvas, axis) and (otherCanvas, otherAxis).
// Apply a log transform to the data first for logarithmic axes.
func AxisToCanvas(canvas, axis, otherCanvas, otherAxis, v float64) (float64, error) {
	if otherAxis == axis {
		return 0, errs.New(errs.ErrCodeDegenerateGeometry,
			"axis calibration values coincide at %g", axis).WithOp("axis-to-canvas")
	}
	m := (otherCanvas - canvas) / (otherAxis - axis)
	return m*v + canvas - m*axis, nil
}

// CanvasToAxis is the inverse of AxisToCanvas.
func CanvasToAxis(canvas, axis, otherCanvas, otherAxis, v float64) (float64, error) {
	if otherCanvas == canvas {
		return 0, errs.New(errs.ErrCodeDegenerateGeometry,
			"canvas calibration values coincide at %g", canvas).WithOp("canvas-to-axis")
	}
	m := (otherAxis - axis) / (otherCanvas - canvas)
	return m*v + axis - m*canvas, nil
}
