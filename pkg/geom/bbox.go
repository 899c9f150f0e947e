package geom

import "math"

// BBox is an axis-aligned bounding box on a y-up canvas.
//
// TopLeft holds the minimal x and maximal y; BottomRight holds the maximal
// x and minimal y. A box around a single point has TopLeft == BottomRight.
type BBox struct {
	TopLeft     Point
	BottomRight Point
}

// Box returns the box spanned by two arbitrary corner points.
func Box(a, b Point) BBox {
	return BBox{TopLeft: TopLeftOf(a, b), BottomRight: BottomRightOf(a, b)}
}

// PointBox returns the zero-area box at p.
func PointBox(p Point) BBox {
	return BBox{TopLeft: p, BottomRight: p}
}

// BoxOf returns the tightest box containing all points.
// It returns false when pts is empty.
func BoxOf(pts []Point) (BBox, bool) {
	if len(pts) == 0 {
		return BBox{}, false
	}
	b := PointBox(pts[0])
	for _, p := range pts[1:] {
		b = b.Union(PointBox(p))
	}
	return b, true
}

// Left returns the minimal x.
func (b BBox) Left() float64 { return b.TopLeft.X }

// Right returns the maximal x.
func (b BBox) Right() float64 { return b.BottomRight.X }

// Top returns the maximal y.
func (b BBox) Top() float64 { return b.TopLeft.Y }

// Bottom returns the minimal y.
func (b BBox) Bottom() float64 { return b.BottomRight.Y }

// Width returns Right - Left.
func (b BBox) Width() float64 { return b.BottomRight.X - b.TopLeft.X }

// Height returns Top - Bottom.
func (b BBox) Height() float64 { return b.TopLeft.Y - b.BottomRight.Y }

// TopRight returns the top-right corner.
func (b BBox) TopRight() Point { return Point{X: b.BottomRight.X, Y: b.TopLeft.Y} }

// BottomLeft returns the bottom-left corner.
func (b BBox) BottomLeft() Point { return Point{X: b.TopLeft.X, Y: b.BottomRight.Y} }

// Center returns the midpoint of the two corners.
func (b BBox) Center() Point { return Midpoint(b.TopLeft, b.BottomRight) }

// WellFormed reports whether TopLeft is left of and above BottomRight.
func (b BBox) WellFormed() bool {
	return b.TopLeft.X <= b.BottomRight.X && b.TopLeft.Y >= b.BottomRight.Y
}

// Union returns the component-wise extremal combination of b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		TopLeft: Point{
			X: math.Min(b.TopLeft.X, o.TopLeft.X),
			Y: math.Max(b.TopLeft.Y, o.TopLeft.Y),
		},
		BottomRight: Point{
			X: math.Max(b.BottomRight.X, o.BottomRight.X),
			Y: math.Min(b.BottomRight.Y, o.BottomRight.Y),
		},
	}
}

// Translate returns b moved by (dx, dy).
func (b BBox) Translate(dx, dy float64) BBox {
	return BBox{TopLeft: b.TopLeft.Translate(dx, dy), BottomRight: b.BottomRight.Translate(dx, dy)}
}

// Grow returns b enlarged by margin on every side.
func (b BBox) Grow(margin float64) BBox {
	return BBox{
		TopLeft:     b.TopLeft.Translate(-margin, margin),
		BottomRight: b.BottomRight.Translate(margin, -margin),
	}
}

// Contains reports whether p lies inside b or on its boundary.
func (b BBox) Contains(p Point) bool {
	return b.TopLeft.X <= p.X && p.X <= b.BottomRight.X &&
		b.BottomRight.Y <= p.Y && p.Y <= b.TopLeft.Y
}

// ApproxEqual reports whether both corners agree within tol.
func (b BBox) ApproxEqual(o BBox, tol float64) bool {
	return b.TopLeft.ApproxEqual(o.TopLeft, tol) && b.BottomRight.ApproxEqual(o.BottomRight, tol)
}

// OnTopEdge returns the point at fraction alpha from the top-left to the top-right corner.
func (b BBox) OnTopEdge(alpha float64) Point {
	return Lerp(b.TopLeft, b.TopRight(), alpha)
}

// OnBottomEdge returns the point at fraction alpha from the bottom-left to the bottom-right corner.
func (b BBox) OnBottomEdge(alpha float64) Point {
	return Lerp(b.BottomLeft(), b.BottomRight, alpha)
}

// OnLeftEdge returns the point at fraction alpha from the bottom-left to the top-left corner.
func (b BBox) OnLeftEdge(alpha float64) Point {
	return Lerp(b.BottomLeft(), b.TopLeft, alpha)
}

// OnRightEdge returns the point at fraction alpha from the bottom-right to the top-right corner.
func (b BBox) OnRightEdge(alpha float64) Point {
	return Lerp(b.BottomRight, b.TopRight(), alpha)
}

// OnBoundary returns where the ray from the center at angle deg leaves the box.
// A zero-width or zero-height box reports DEGENERATE_GEOMETRY for rays that
// would have to hit a collapsed side.
func (b BBox) OnBoundary(deg float64) (Point, error) {
	deg = NormalizeAngle(deg)
	c := b.Center()
	end := OnCircle(c, 1, deg)
	corner := Vec(c, b.TopRight()).Angle()

	switch {
	case deg <= corner || deg >= 360-corner:
		return OnLineAtX(c, end, b.Right())
	case deg <= 180-corner:
		return OnLineAtY(c, end, b.Top())
	case deg <= 180+corner:
		return OnLineAtX(c, end, b.Left())
	default:
		return OnLineAtY(c, end, b.Bottom())
	}
}
