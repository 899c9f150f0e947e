package shape

import (
	"github.com/matzehuels/tikzlayout/pkg/geom"
)

// Node is either a Group or a Leaf.
type Node interface {
	node()
}

// Leaf is a drawable shape.
type Leaf interface {
	Node

	// Kind identifies the variant.
	Kind() Kind

	// Style returns the opaque style token.
	Style() string

	// Bounds returns the leaf's axis-aligned bounding box.
	Bounds() geom.BBox

	translate(dx, dy float64)
	scale(alpha float64)
	clone() Leaf
}

// Group is an ordered composite of nodes. Order is preserved by every
// operation so callers can address children by index.
type Group []Node

func (Group) node() {}

// Kind enumerates the leaf variants.
type Kind int

const (
	KindOpenPath Kind = iota
	KindClosedPath
	KindCircle
	KindCircularArc
	KindEllipse
	KindEllipticalArc
	KindBezier
	KindText
	KindImage
)

var kindNames = [...]string{
	KindOpenPath:      "open-path",
	KindClosedPath:    "closed-path",
	KindCircle:        "circle",
	KindCircularArc:   "circular-arc",
	KindEllipse:       "ellipse",
	KindEllipticalArc: "elliptical-arc",
	KindBezier:        "bezier",
	KindText:          "text",
	KindImage:         "image",
}

// String returns the kebab-case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// =============================================================================
// Paths
// =============================================================================

// OpenPath is a polyline through its points.
type OpenPath struct {
	points []geom.Point
	style  string
}

func (*OpenPath) node() {}

// Kind returns KindOpenPath.
func (*OpenPath) Kind() Kind { return KindOpenPath }

// Style returns the style token.
func (p *OpenPath) Style() string { return p.style }

// Points returns a copy of the vertices.
func (p *OpenPath) Points() []geom.Point { return append([]geom.Point(nil), p.points...) }

// Bounds returns the box of the vertices.
func (p *OpenPath) Bounds() geom.BBox {
	b, _ := geom.BoxOf(p.points)
	return b
}

func (p *OpenPath) translate(dx, dy float64) { translatePoints(p.points, dx, dy) }
func (p *OpenPath) scale(alpha float64)      { scalePoints(p.points, alpha) }
func (p *OpenPath) clone() Leaf              { return &OpenPath{points: p.Points(), style: p.style} }

// ClosedPath is a polygon; the last point connects back to the first.
type ClosedPath struct {
	points []geom.Point
	style  string
}

func (*ClosedPath) node() {}

// Kind returns KindClosedPath.
func (*ClosedPath) Kind() Kind { return KindClosedPath }

// Style returns the style token.
func (p *ClosedPath) Style() string { return p.style }

// Points returns a copy of the vertices.
func (p *ClosedPath) Points() []geom.Point { return append([]geom.Point(nil), p.points...) }

// Bounds returns the box of the vertices.
func (p *ClosedPath) Bounds() geom.BBox {
	b, _ := geom.BoxOf(p.points)
	return b
}

func (p *ClosedPath) translate(dx, dy float64) { translatePoints(p.points, dx, dy) }
func (p *ClosedPath) scale(alpha float64)      { scalePoints(p.points, alpha) }
func (p *ClosedPath) clone() Leaf              { return &ClosedPath{points: p.Points(), style: p.style} }

// =============================================================================
// Circles and Ellipses
// =============================================================================

// Circle is a full circle.
type Circle struct {
	center geom.Point
	radius float64
	style  string
}

func (*Circle) node() {}

// Kind returns KindCircle.
func (*Circle) Kind() Kind { return KindCircle }

// Style returns the style token.
func (c *Circle) Style() string { return c.style }

// Center returns the center point.
func (c *Circle) Center() geom.Point { return c.center }

// Radius returns the radius.
func (c *Circle) Radius() float64 { return c.radius }

// Bounds returns center ± radius.
func (c *Circle) Bounds() geom.BBox { return radialBox(c.center, c.radius, c.radius) }

func (c *Circle) translate(dx, dy float64) { c.center = c.center.Translate(dx, dy) }
func (c *Circle) scale(alpha float64) {
	c.center = c.center.Scale(alpha)
	c.radius *= alpha
}
func (c *Circle) clone() Leaf { cp := *c; return &cp }

// CircularArc is the part of a circle swept counter-clockwise from Start to
// End degrees.
type CircularArc struct {
	center     geom.Point
	radius     float64
	start, end float64
	style      string
}

func (*CircularArc) node() {}

// Kind returns KindCircularArc.
func (*CircularArc) Kind() Kind { return KindCircularArc }

// Style returns the style token.
func (a *CircularArc) Style() string { return a.style }

// Center returns the center of the underlying circle.
func (a *CircularArc) Center() geom.Point { return a.center }

// Radius returns the radius.
func (a *CircularArc) Radius() float64 { return a.radius }

// Angles returns the start and end angles in degrees.
func (a *CircularArc) Angles() (start, end float64) { return a.start, a.end }

// StartPoint returns the point where the arc begins.
func (a *CircularArc) StartPoint() geom.Point { return geom.OnCircle(a.center, a.radius, a.start) }

// Bounds returns the box of the full circle.
func (a *CircularArc) Bounds() geom.BBox { return radialBox(a.center, a.radius, a.radius) }

func (a *CircularArc) translate(dx, dy float64) { a.center = a.center.Translate(dx, dy) }
func (a *CircularArc) scale(alpha float64) {
	a.center = a.center.Scale(alpha)
	a.radius *= alpha
}
func (a *CircularArc) clone() Leaf { cp := *a; return &cp }

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	center geom.Point
	rx, ry float64
	style  string
}

func (*Ellipse) node() {}

// Kind returns KindEllipse.
func (*Ellipse) Kind() Kind { return KindEllipse }

// Style returns the style token.
func (e *Ellipse) Style() string { return e.style }

// Center returns the center point.
func (e *Ellipse) Center() geom.Point { return e.center }

// Radii returns the horizontal and vertical radii.
func (e *Ellipse) Radii() (rx, ry float64) { return e.rx, e.ry }

// Bounds returns center ± (rx, ry).
func (e *Ellipse) Bounds() geom.BBox { return radialBox(e.center, e.rx, e.ry) }

func (e *Ellipse) translate(dx, dy float64) { e.center = e.center.Translate(dx, dy) }
func (e *Ellipse) scale(alpha float64) {
	e.center = e.center.Scale(alpha)
	e.rx *= alpha
	e.ry *= alpha
}
func (e *Ellipse) clone() Leaf { cp := *e; return &cp }

// EllipticalArc is the part of an axis-aligned ellipse swept from Start to
// End degrees.
type EllipticalArc struct {
	center     geom.Point
	rx, ry     float64
	start, end float64
	style      string
}

func (*EllipticalArc) node() {}

// Kind returns KindEllipticalArc.
func (*EllipticalArc) Kind() Kind { return KindEllipticalArc }

// Style returns the style token.
func (a *EllipticalArc) Style() string { return a.style }

// Center returns the center of the underlying ellipse.
func (a *EllipticalArc) Center() geom.Point { return a.center }

// Radii returns the horizontal and vertical radii.
func (a *EllipticalArc) Radii() (rx, ry float64) { return a.rx, a.ry }

// Angles returns the start and end angles in degrees.
func (a *EllipticalArc) Angles() (start, end float64) { return a.start, a.end }

// StartPoint returns the point where the arc begins.
func (a *EllipticalArc) StartPoint() geom.Point {
	s, c := sincosDeg(a.start)
	return a.center.Translate(a.rx*c, a.ry*s)
}

// Bounds returns the box of the full ellipse.
func (a *EllipticalArc) Bounds() geom.BBox { return radialBox(a.center, a.rx, a.ry) }

func (a *EllipticalArc) translate(dx, dy float64) { a.center = a.center.Translate(dx, dy) }
func (a *EllipticalArc) scale(alpha float64) {
	a.center = a.center.Scale(alpha)
	a.rx *= alpha
	a.ry *= alpha
}
func (a *EllipticalArc) clone() Leaf { cp := *a; return &cp }

// =============================================================================
// Curves, Text and Images
// =============================================================================

// Bezier is a cubic curve from From to To pulled towards C1 and C2.
type Bezier struct {
	from, to, c1, c2 geom.Point
	style            string
}

func (*Bezier) node() {}

// Kind returns KindBezier.
func (*Bezier) Kind() Kind { return KindBezier }

// Style returns the style token.
func (b *Bezier) Style() string { return b.style }

// Endpoints returns the start and end points.
func (b *Bezier) Endpoints() (from, to geom.Point) { return b.from, b.to }

// Controls returns the two control points.
func (b *Bezier) Controls() (c1, c2 geom.Point) { return b.c1, b.c2 }

// Bounds returns the box of the endpoints; control points are ignored.
func (b *Bezier) Bounds() geom.BBox { return geom.Box(b.from, b.to) }

func (b *Bezier) translate(dx, dy float64) {
	b.from = b.from.Translate(dx, dy)
	b.to = b.to.Translate(dx, dy)
	b.c1 = b.c1.Translate(dx, dy)
	b.c2 = b.c2.Translate(dx, dy)
}
func (b *Bezier) scale(alpha float64) {
	b.from = b.from.Scale(alpha)
	b.to = b.to.Scale(alpha)
	b.c1 = b.c1.Scale(alpha)
	b.c2 = b.c2.Scale(alpha)
}
func (b *Bezier) clone() Leaf { cp := *b; return &cp }

// Text is a label drawn at a point. Its content is passed through to the
// output unchanged (it may contain TeX markup).
type Text struct {
	at      geom.Point
	content string
	style   string
}

func (*Text) node() {}

// Kind returns KindText.
func (*Text) Kind() Kind { return KindText }

// Style returns the style token.
func (t *Text) Style() string { return t.style }

// At returns the anchor point.
func (t *Text) At() geom.Point { return t.at }

// Content returns the label payload.
func (t *Text) Content() string { return t.content }

// Bounds returns the zero-area box at the anchor point.
func (t *Text) Bounds() geom.BBox { return geom.PointBox(t.at) }

func (t *Text) translate(dx, dy float64) { t.at = t.at.Translate(dx, dy) }
func (t *Text) scale(alpha float64)      { t.at = t.at.Scale(alpha) }
func (t *Text) clone() Leaf              { cp := *t; return &cp }

// Image is an external graphic placed by its top-left corner.
type Image struct {
	path          string
	topLeft       geom.Point
	width, height float64
	style         string
}

func (*Image) node() {}

// Kind returns KindImage.
func (*Image) Kind() Kind { return KindImage }

// Style returns the style token.
func (im *Image) Style() string { return im.style }

// Path returns the file reference.
func (im *Image) Path() string { return im.path }

// TopLeft returns the top-left corner.
func (im *Image) TopLeft() geom.Point { return im.topLeft }

// Size returns the width and height.
func (im *Image) Size() (width, height float64) { return im.width, im.height }

// Bounds extends width to the right and height down from the top-left corner.
func (im *Image) Bounds() geom.BBox {
	return geom.BBox{TopLeft: im.topLeft, BottomRight: im.topLeft.Translate(im.width, -im.height)}
}

func (im *Image) translate(dx, dy float64) { im.topLeft = im.topLeft.Translate(dx, dy) }
func (im *Image) scale(alpha float64) {
	im.topLeft = im.topLeft.Scale(alpha)
	im.width *= alpha
	im.height *= alpha
}
func (im *Image) clone() Leaf { cp := *im; return &cp }

// =============================================================================
// Helpers
// =============================================================================

func translatePoints(pts []geom.Point, dx, dy float64) {
	for i := range pts {
		pts[i] = pts[i].Translate(dx, dy)
	}
}

func scalePoints(pts []geom.Point, alpha float64) {
	for i := range pts {
		pts[i] = pts[i].Scale(alpha)
	}
}

func radialBox(c geom.Point, rx, ry float64) geom.BBox {
	return geom.Box(c.Translate(-rx, ry), c.Translate(rx, -ry))
}
