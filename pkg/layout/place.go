package layout

import (
	"strconv"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// Direction is the side of the reference a node is placed on.
type Direction int

const (
	Above Direction = iota
	Below
	Left
	Right
)

var directionNames = [...]string{"above", "below", "left", "right"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
	return directionNames[d]
}

// ParseDirection parses "above", "below", "left" or "right".
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if s == name {
			return Direction(i), nil
		}
	}
	return 0, errs.New(errs.ErrCodeInvalidInput, "unknown direction %q", s)
}

// Alignment selects which edge of the perpendicular axis is shared with the
// reference. Start is the left edge when placing above or below and the top
// edge when placing left or right.
type Alignment int

const (
	Start Alignment = iota
	Middle
	End
)

var alignmentNames = [...]string{"start", "center", "end"}

func (a Alignment) String() string {
	if a < 0 || int(a) >= len(alignmentNames) {
		return "Alignment(" + strconv.Itoa(int(a)) + ")"
	}
	return alignmentNames[a]
}

// ParseAlignment parses "start", "center" or "end". The aliases "left",
// "top", "right" and "bottom" map to start and end.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "start", "left", "top":
		return Start, nil
	case "center", "middle":
		return Middle, nil
	case "end", "right", "bottom":
		return End, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidInput, "unknown alignment %q", s)
}

// placement pairs the reference anchor with the node anchor moved onto it.
type placement struct {
	ref, node geom.Anchor
}

var placements = [4][3]placement{
	Above: {
		{geom.TopLeft, geom.BottomLeft},
		{geom.TopCenter, geom.BottomCenter},
		{geom.TopRight, geom.BottomRight},
	},
	Below: {
		{geom.BottomLeft, geom.TopLeft},
		{geom.BottomCenter, geom.TopCenter},
		{geom.BottomRight, geom.TopRight},
	},
	Left: {
		{geom.TopLeft, geom.TopRight},
		{geom.LeftCenter, geom.RightCenter},
		{geom.BottomLeft, geom.BottomRight},
	},
	Right: {
		{geom.TopRight, geom.TopLeft},
		{geom.RightCenter, geom.LeftCenter},
		{geom.BottomRight, geom.BottomLeft},
	},
}

// offset returns the spacing displacement along the placement axis.
func (d Direction) offset(spacing float64) (dx, dy float64) {
	switch d {
	case Above:
		return 0, spacing
	case Below:
		return 0, -spacing
	case Left:
		return -spacing, 0
	default:
		return spacing, 0
	}
}

// Place moves n next to ref on side dir, separated by spacing, with the
// perpendicular axis aligned according to align.
func Place(n, ref shape.Node, dir Direction, spacing float64, align Alignment) error {
	if dir < Above || dir > Right {
		return errs.New(errs.ErrCodeInvalidInput, "unknown direction %v", dir).WithOp("place")
	}
	if align < Start || align > End {
		return errs.New(errs.ErrCodeInvalidInput, "unknown alignment %v", align).WithOp("place")
	}
	p := placements[dir][align]

	target, err := AnchorPoint(ref, p.ref)
	if err != nil {
		return annotate(err, "place", 1)
	}
	target = target.Translate(dir.offset(spacing))

	from, err := AnchorPoint(n, p.node)
	if err != nil {
		return annotate(err, "place", 0)
	}
	return annotate(TranslateTo(n, from, target), "place", 0)
}

// PlaceAbove moves n vertically so that its bottom sits spacing above the
// top of ref. The horizontal position is unchanged.
func PlaceAbove(n, ref shape.Node, spacing float64) error {
	return placeAxis(n, ref, Above, spacing)
}

// PlaceBelow moves n vertically so that its top sits spacing below the
// bottom of ref.
func PlaceBelow(n, ref shape.Node, spacing float64) error {
	return placeAxis(n, ref, Below, spacing)
}

// PlaceLeft moves n horizontally so that its right edge sits spacing left
// of ref.
func PlaceLeft(n, ref shape.Node, spacing float64) error {
	return placeAxis(n, ref, Left, spacing)
}

// PlaceRight moves n horizontally so that its left edge sits spacing right
// of ref.
func PlaceRight(n, ref shape.Node, spacing float64) error {
	return placeAxis(n, ref, Right, spacing)
}

func placeAxis(n, ref shape.Node, dir Direction, spacing float64) error {
	rb, err := shape.BoundingBox(ref)
	if err != nil {
		return annotate(err, "place", 1)
	}
	nb, err := shape.BoundingBox(n)
	if err != nil {
		return annotate(err, "place", 0)
	}
	var dx, dy float64
	switch dir {
	case Above:
		dy = rb.Top() - nb.Bottom() + spacing
	case Below:
		dy = rb.Bottom() - nb.Top() - spacing
	case Left:
		dx = rb.Left() - nb.Right() - spacing
	case Right:
		dx = rb.Right() - nb.Left() + spacing
	}
	return annotate(shape.Translate(n, dx, dy), "place", 0)
}

// PlaceAtAngle moves n so that its anchor nAnchor sits spacing away from
// ref's anchor refAnchor in direction deg.
func PlaceAtAngle(n shape.Node, nAnchor geom.Anchor, ref shape.Node, refAnchor geom.Anchor, deg, spacing float64) error {
	rp, err := AnchorPoint(ref, refAnchor)
	if err != nil {
		return annotate(err, "place-at-angle", 1)
	}
	from, err := AnchorPoint(n, nAnchor)
	if err != nil {
		return annotate(err, "place-at-angle", 0)
	}
	return annotate(TranslateTo(n, from, geom.OnCircle(rp, spacing, deg)), "place-at-angle", 0)
}

// Frame returns a rectangle around n's bounding box grown by margin on
// every side.
func Frame(n shape.Node, margin float64, style string) (*shape.ClosedPath, error) {
	b, err := shape.BoundingBox(n)
	if err != nil {
		return nil, annotate(err, "frame")
	}
	return shape.RectangleFromBox(b.Grow(margin), style), nil
}
