package geom

import (
	"fmt"
	"math"
)

// Point is a 2D position in centimetres.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// String returns the point formatted as (x, y).
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both coordinates by alpha (scaling about the origin).
func (p Point) Scale(alpha float64) Point {
	return Point{X: alpha * p.X, Y: alpha * p.Y}
}

// Translate returns p moved by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// TranslateX returns p moved horizontally by d.
func (p Point) TranslateX(d float64) Point {
	return Point{X: p.X + d, Y: p.Y}
}

// TranslateY returns p moved vertically by d.
func (p Point) TranslateY(d float64) Point {
	return Point{X: p.X, Y: p.Y + d}
}

// TranslateDiagonal returns p moved by (d, d).
func (p Point) TranslateDiagonal(d float64) Point {
	return Point{X: p.X + d, Y: p.Y + d}
}

// TranslateAntidiagonal returns p moved by (d, -d).
func (p Point) TranslateAntidiagonal(d float64) Point {
	return Point{X: p.X + d, Y: p.Y - d}
}

// Rotate rotates p about axis by deg degrees, counter-clockwise.
func (p Point) Rotate(axis Point, deg float64) Point {
	s, c := math.Sincos(DegToRad(deg))
	x := p.X - axis.X
	y := p.Y - axis.Y
	return Point{
		X: axis.X + c*x - s*y,
		Y: axis.Y + s*x + c*y,
	}
}

// ReflectX mirrors p across the vertical line x = axisX.
func (p Point) ReflectX(axisX float64) Point {
	return Point{X: 2*axisX - p.X, Y: p.Y}
}

// ReflectY mirrors p across the horizontal line y = axisY.
func (p Point) ReflectY(axisY float64) Point {
	return Point{X: p.X, Y: 2*axisY - p.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// ApproxEqual reports whether p and q agree within tol on both axes.
func (p Point) ApproxEqual(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: a.X/2 + b.X/2, Y: a.Y/2 + b.Y/2}
}

// OneThird returns the point one third of the way from a to b.
func OneThird(a, b Point) Point {
	return Point{X: 2*a.X/3 + b.X/3, Y: 2*a.Y/3 + b.Y/3}
}

// TwoThirds returns the point two thirds of the way from a to b.
func TwoThirds(a, b Point) Point {
	return Point{X: a.X/3 + 2*b.X/3, Y: a.Y/3 + 2*b.Y/3}
}

// Lerp returns the convex combination (1-alpha)*from + alpha*to.
// Values of alpha outside [0, 1] extrapolate along the line.
func Lerp(from, to Point, alpha float64) Point {
	return Point{
		X: (1-alpha)*from.X + alpha*to.X,
		Y: (1-alpha)*from.Y + alpha*to.Y,
	}
}

// OnCircle returns the point at angle deg and distance radius from center.
func OnCircle(center Point, radius, deg float64) Point {
	return center.TranslateX(radius).Rotate(center, deg)
}

// Antipodal returns the two points on the circle at deg and deg+180.
func Antipodal(center Point, radius, deg float64) (Point, Point) {
	return OnCircle(center, radius, deg), OnCircle(center, radius, deg+180)
}

// Equispaced returns n points evenly spaced on the circle, starting at 0°.
func Equispaced(center Point, radius float64, n int) []Point {
	if n <= 0 {
		return nil
	}
	delta := 360.0 / float64(n)
	out := make([]Point, n)
	for i := range out {
		out[i] = OnCircle(center, radius, float64(i)*delta)
	}
	return out
}

// TopLeftOf returns the top-left corner of the box spanned by a and b.
func TopLeftOf(a, b Point) Point {
	return Point{X: math.Min(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// TopRightOf returns the top-right corner of the box spanned by a and b.
func TopRightOf(a, b Point) Point {
	return Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// BottomLeftOf returns the bottom-left corner of the box spanned by a and b.
func BottomLeftOf(a, b Point) Point {
	return Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// BottomRightOf returns the bottom-right corner of the box spanned by a and b.
func BottomRightOf(a, b Point) Point {
	return Point{X: math.Max(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}
