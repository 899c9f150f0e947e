package shape

import (
	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
)

// NewOpenPath returns a polyline through pts. At least one point is required.
func NewOpenPath(pts []geom.Point, style string) (*OpenPath, error) {
	if len(pts) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "open path needs at least one point").WithOp("open-path")
	}
	return openPath(style, pts...), nil
}

// NewClosedPath returns a polygon through pts. At least one point is required.
func NewClosedPath(pts []geom.Point, style string) (*ClosedPath, error) {
	if len(pts) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "closed path needs at least one point").WithOp("closed-path")
	}
	return closedPath(style, pts...), nil
}

func openPath(style string, pts ...geom.Point) *OpenPath {
	return &OpenPath{points: append([]geom.Point(nil), pts...), style: style}
}

func closedPath(style string, pts ...geom.Point) *ClosedPath {
	return &ClosedPath{points: append([]geom.Point(nil), pts...), style: style}
}

// =============================================================================
// Segments
// =============================================================================

// LineSegment returns the segment from start to end.
func LineSegment(start, end geom.Point, style string) *OpenPath {
	return openPath(style, start, end)
}

// HorizontalSegment returns a segment of signed length delta starting at start.
func HorizontalSegment(start geom.Point, delta float64, style string) *OpenPath {
	return LineSegment(start, start.TranslateX(delta), style)
}

// VerticalSegment returns a segment of signed length delta starting at start.
func VerticalSegment(start geom.Point, delta float64, style string) *OpenPath {
	return LineSegment(start, start.TranslateY(delta), style)
}

// CenteredHorizontalSegment returns a horizontal segment of the given length
// whose midpoint is center.
func CenteredHorizontalSegment(center geom.Point, length float64, style string) *OpenPath {
	d := length / 2
	return LineSegment(center.TranslateX(d), center.TranslateX(-d), style)
}

// CenteredVerticalSegment returns a vertical segment of the given length
// whose midpoint is center.
func CenteredVerticalSegment(center geom.Point, length float64, style string) *OpenPath {
	d := length / 2
	return LineSegment(center.TranslateY(d), center.TranslateY(-d), style)
}

// SegmentFromAngle returns the segment leaving start at deg degrees.
func SegmentFromAngle(start geom.Point, deg, length float64, style string) *OpenPath {
	return LineSegment(start, geom.OnCircle(start, length, deg), style)
}

// CenteredSegmentFromAngle returns a segment of the given length through
// center at deg degrees.
func CenteredSegmentFromAngle(center geom.Point, deg, length float64, style string) *OpenPath {
	r := length / 2
	return LineSegment(geom.OnCircle(center, r, deg), geom.OnCircle(center, r, deg+180), style)
}

// SegmentBetweenCircles joins the point at fromDeg on the first circle to
// the point at toDeg on the second.
func SegmentBetweenCircles(fromCenter geom.Point, fromRadius, fromDeg float64,
	toCenter geom.Point, toRadius, toDeg float64, style string) *OpenPath {
	return LineSegment(
		geom.OnCircle(fromCenter, fromRadius, fromDeg),
		geom.OnCircle(toCenter, toRadius, toDeg),
		style,
	)
}

// =============================================================================
// Connectors
// =============================================================================

// OrthogonalConnectorH joins from and to with a horizontal-vertical-horizontal
// path. The vertical leg sits at the convex combination alpha of the two x
// coordinates.
func OrthogonalConnectorH(from, to geom.Point, alpha float64, style string) *OpenPath {
	x := (1-alpha)*from.X + alpha*to.X
	return openPath(style, from, geom.Pt(x, from.Y), geom.Pt(x, to.Y), to)
}

// OrthogonalConnectorV joins from and to with a vertical-horizontal-vertical
// path. The horizontal leg sits at the convex combination alpha of the two y
// coordinates.
func OrthogonalConnectorV(from, to geom.Point, alpha float64, style string) *OpenPath {
	y := (1-alpha)*from.Y + alpha*to.Y
	return openPath(style, from, geom.Pt(from.X, y), geom.Pt(to.X, y), to)
}

// OrthogonalConnectorHMidway switches halfway between from and to.
func OrthogonalConnectorHMidway(from, to geom.Point, style string) *OpenPath {
	return OrthogonalConnectorH(from, to, 0.5, style)
}

// OrthogonalConnectorVMidway switches halfway between from and to.
func OrthogonalConnectorVMidway(from, to geom.Point, style string) *OpenPath {
	return OrthogonalConnectorV(from, to, 0.5, style)
}

// =============================================================================
// Rectangles and Polygons
// =============================================================================

// Rectangle returns the closed path through the four corners, clockwise from
// the top-left.
func Rectangle(topLeft, bottomRight geom.Point, style string) *ClosedPath {
	return closedPath(style,
		topLeft,
		geom.TopRightOf(topLeft, bottomRight),
		bottomRight,
		geom.BottomLeftOf(topLeft, bottomRight),
	)
}

// RectangleFromBox returns the rectangle covering b.
func RectangleFromBox(b geom.BBox, style string) *ClosedPath {
	return Rectangle(b.TopLeft, b.BottomRight, style)
}

// Square returns a square hanging from topLeft.
func Square(topLeft geom.Point, side float64, style string) *ClosedPath {
	return Rectangle(topLeft, topLeft.Translate(side, -side), style)
}

// RectangleWH returns a width x height rectangle hanging from topLeft.
func RectangleWH(topLeft geom.Point, width, height float64, style string) *ClosedPath {
	return Rectangle(topLeft, topLeft.Translate(width, -height), style)
}

// RectangleRatio returns a rectangle of the given height whose width is
// ratio times the height.
func RectangleRatio(topLeft geom.Point, height, ratio float64, style string) *ClosedPath {
	return RectangleWH(topLeft, ratio*height, height, style)
}

// GoldenRectangle returns a rectangle with golden-ratio proportions.
func GoldenRectangle(topLeft geom.Point, height float64, style string) *ClosedPath {
	return RectangleRatio(topLeft, height, geom.GoldenRatio, style)
}

// RectangleGrow returns the rectangle grown by dx in width and dy in height,
// keeping its center.
func RectangleGrow(topLeft, bottomRight geom.Point, dx, dy float64, style string) *ClosedPath {
	return Rectangle(
		topLeft.Translate(-dx/2, dy/2),
		bottomRight.Translate(dx/2, -dy/2),
		style,
	)
}

// RectangleScale returns the rectangle with its width scaled by ax and its
// height by ay about its center.
func RectangleScale(topLeft, bottomRight geom.Point, ax, ay float64, style string) *ClosedPath {
	c := geom.Midpoint(topLeft, bottomRight)
	tl := geom.Pt(c.X+ax*(topLeft.X-c.X), c.Y+ay*(topLeft.Y-c.Y))
	br := geom.Pt(c.X+ax*(bottomRight.X-c.X), c.Y+ay*(bottomRight.Y-c.Y))
	return Rectangle(tl, br, style)
}

// EquilateralTriangle returns the triangle inscribed in the circle of the
// given radius, with its first vertex at startDeg.
func EquilateralTriangle(center geom.Point, radius, startDeg float64, style string) *ClosedPath {
	pts := geom.Equispaced(center, radius, 3)
	for i := range pts {
		pts[i] = pts[i].Rotate(center, startDeg)
	}
	return closedPath(style, pts...)
}

// Polygon returns the regular polygon with sides vertices on the circle of
// the given radius, the first at angle 0.
func Polygon(center geom.Point, radius float64, sides int, style string) (*ClosedPath, error) {
	if sides < 3 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "polygon needs at least 3 sides, got %d", sides).WithOp("polygon")
	}
	return closedPath(style, geom.Equispaced(center, radius, sides)...), nil
}

// Arrow returns a right-pointing block arrow whose shaft starts at the
// origin. Place it with the layout package.
func Arrow(shaftWidth, shaftHeight, headWidth, headHeight float64, style string) *ClosedPath {
	return closedPath(style,
		geom.Pt(0, shaftHeight/2),
		geom.Pt(shaftWidth, shaftHeight/2),
		geom.Pt(shaftWidth, headHeight/2),
		geom.Pt(shaftWidth+headWidth, 0),
		geom.Pt(shaftWidth, -headHeight/2),
		geom.Pt(shaftWidth, -shaftHeight/2),
		geom.Pt(0, -shaftHeight/2),
	)
}

// =============================================================================
// Guides
// =============================================================================

// HorizontalGuidelines returns horizontal lines every spacing units from the
// top of the box down, enough to cover its full height.
func HorizontalGuidelines(topLeft, bottomRight geom.Point, spacing float64, style string) (Group, error) {
	if spacing <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "guideline spacing must be positive").WithOp("guidelines")
	}
	v := geom.Vec(topLeft, bottomRight)
	n := guideCount(v.YLength(), spacing)
	out := make(Group, n)
	for i := range out {
		out[i] = HorizontalSegment(topLeft.TranslateY(-float64(i)*spacing), v.XLength(), style)
	}
	return out, nil
}

// VerticalGuidelines returns vertical lines every spacing units from the
// left of the box rightwards, enough to cover its full width.
func VerticalGuidelines(topLeft, bottomRight geom.Point, spacing float64, style string) (Group, error) {
	if spacing <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "guideline spacing must be positive").WithOp("guidelines")
	}
	v := geom.Vec(topLeft, bottomRight)
	n := guideCount(v.XLength(), spacing)
	out := make(Group, n)
	for i := range out {
		out[i] = VerticalSegment(topLeft.TranslateX(float64(i)*spacing), -v.YLength(), style)
	}
	return out, nil
}

// Guidelines returns a group holding the horizontal and the vertical
// guidelines, in that order.
func Guidelines(topLeft, bottomRight geom.Point, spacing float64, style string) (Group, error) {
	h, err := HorizontalGuidelines(topLeft, bottomRight, spacing, style)
	if err != nil {
		return nil, err
	}
	v, err := VerticalGuidelines(topLeft, bottomRight, spacing, style)
	if err != nil {
		return nil, err
	}
	return Group{h, v}, nil
}

// HorizontalTicks returns n vertical marks of length delta spaced along a
// horizontal axis starting at start.
func HorizontalTicks(start geom.Point, n int, spacing, delta float64, style string) Group {
	out := make(Group, max(n, 0))
	for i := range out {
		out[i] = VerticalSegment(start.TranslateX(float64(i)*spacing), delta, style)
	}
	return out
}

// VerticalTicks returns n horizontal marks of length delta spaced along a
// vertical axis starting at start.
func VerticalTicks(start geom.Point, n int, spacing, delta float64, style string) Group {
	out := make(Group, max(n, 0))
	for i := range out {
		out[i] = HorizontalSegment(start.TranslateY(float64(i)*spacing), delta, style)
	}
	return out
}

func guideCount(extent, spacing float64) int {
	return int(ceilTol(extent/spacing)) + 1
}
