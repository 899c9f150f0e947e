package shape

import (
	"math"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
)

// NewCircle returns a circle.
func NewCircle(center geom.Point, radius float64, style string) *Circle {
	return &Circle{center: center, radius: radius, style: style}
}

// NewEllipse returns an axis-aligned ellipse with radii rx and ry.
func NewEllipse(center geom.Point, rx, ry float64, style string) *Ellipse {
	return &Ellipse{center: center, rx: rx, ry: ry, style: style}
}

// EllipseRatio returns an ellipse with vertical radius ry and horizontal
// radius ratio*ry.
func EllipseRatio(center geom.Point, ry, ratio float64, style string) *Ellipse {
	return NewEllipse(center, ry*ratio, ry, style)
}

// NewCircularArc returns the arc of the circle around center swept from
// startDeg to endDeg.
func NewCircularArc(center geom.Point, radius, startDeg, endDeg float64, style string) *CircularArc {
	return &CircularArc{center: center, radius: radius, start: startDeg, end: endDeg, style: style}
}

// NewEllipticalArc returns the arc of the ellipse around center swept from
// startDeg to endDeg.
func NewEllipticalArc(center geom.Point, rx, ry, startDeg, endDeg float64, style string) *EllipticalArc {
	return &EllipticalArc{center: center, rx: rx, ry: ry, start: startDeg, end: endDeg, style: style}
}

// =============================================================================
// Bezier Curves
// =============================================================================

// NewBezier returns the cubic curve from from to to with controls c1 and c2.
func NewBezier(from, to, c1, c2 geom.Point, style string) *Bezier {
	return &Bezier{from: from, to: to, c1: c1, c2: c2, style: style}
}

// BezierRelative places each control at an angle relative to the direction
// from from to to. c1 hangs off from and c2 hangs off to.
func BezierRelative(from, to geom.Point, c1Deg, c1Len, c2Deg, c2Len float64, style string) *Bezier {
	ref := geom.Vec(from, to).Angle()
	return NewBezier(from, to,
		geom.OnCircle(from, c1Len, ref+c1Deg),
		geom.OnCircle(to, c2Len, ref+c2Deg),
		style,
	)
}

// BezierSymmetric mirrors the control at from onto to, producing a curve
// symmetric about the perpendicular bisector of from and to.
func BezierSymmetric(from, to geom.Point, deg, length float64, style string) *Bezier {
	ref := geom.Vec(from, to).Angle()
	return NewBezier(from, to,
		geom.OnCircle(from, length, ref+deg),
		geom.OnCircle(to, length, ref+180-deg),
		style,
	)
}

// BezierSymmetricRelative is BezierSymmetric with the control length given
// as a multiple of the distance between the endpoints.
func BezierSymmetricRelative(from, to geom.Point, deg, multiplier float64, style string) *Bezier {
	return BezierSymmetric(from, to, deg, multiplier*from.Distance(to), style)
}

// BezierSymmetricMidway uses a single control point on the perpendicular
// bisector of from and to, reached by leaving from at deg degrees.
//
// The angle must normalize to below 90 or above 270 degrees, otherwise the
// ray never meets the bisector and DEGENERATE_GEOMETRY is returned.
func BezierSymmetricMidway(from, to geom.Point, deg float64, style string) (*Bezier, error) {
	a := geom.NormalizeAngle(deg)
	if a >= 90 && a <= 270 {
		return nil, errs.New(errs.ErrCodeDegenerateGeometry,
			"control angle %g does not meet the bisector", deg).WithOp("bezier-midway")
	}
	length := from.Distance(to) / 2 / math.Cos(geom.DegToRad(deg))
	c := geom.OnCircle(from, length, geom.Vec(from, to).Angle()+deg)
	return NewBezier(from, to, c, c, style), nil
}

// BezierMidwayX pulls the curve horizontally through the midpoint.
func BezierMidwayX(from, to geom.Point, style string) *Bezier {
	m := geom.Midpoint(from, to)
	dx := geom.Vec(m, to).DX()
	return NewBezier(from, to, m.TranslateX(dx), m.TranslateX(-dx), style)
}

// BezierMidwayY pulls the curve vertically through the midpoint.
func BezierMidwayY(from, to geom.Point, style string) *Bezier {
	m := geom.Midpoint(from, to)
	dy := geom.Vec(m, to).DY()
	return NewBezier(from, to, m.TranslateY(dy), m.TranslateY(-dy), style)
}

// BezierTopLeft bends the curve towards the top-left corner of the box
// spanned by from and to.
func BezierTopLeft(from, to geom.Point, style string) *Bezier {
	c := geom.TopLeftOf(from, to)
	return NewBezier(from, to, c, c, style)
}

// BezierBottomRight bends the curve towards the bottom-right corner of the
// box spanned by from and to.
func BezierBottomRight(from, to geom.Point, style string) *Bezier {
	c := geom.BottomRightOf(from, to)
	return NewBezier(from, to, c, c, style)
}

// NewText returns a label at the given point.
func NewText(at geom.Point, content, style string) *Text {
	return &Text{at: at, content: content, style: style}
}

// ceilTol is math.Ceil that ignores floating point noise just above an
// integer.
func ceilTol(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		return r
	}
	return math.Ceil(v)
}
