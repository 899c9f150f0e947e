package layout

import (
	"strconv"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// Axis is the direction of a sequence layout or alignment.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "Axis(" + strconv.Itoa(int(a)) + ")"
}

// ParseAxis parses "horizontal" (or "x") and "vertical" (or "y").
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal", "x":
		return Horizontal, nil
	case "vertical", "y":
		return Vertical, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidInput, "unknown axis %q", s)
}

// Distribute lays out nodes along axis so that neighbouring bounding boxes
// are exactly spacing apart. Horizontal runs left to right and vertical runs
// bottom to top. The first node stays put and every other node moves
// relative to its predecessor.
//
// An empty list fails with EMPTY_COMPOSITE; a single node is left alone.
func Distribute(nodes []shape.Node, spacing float64, axis Axis) error {
	return distribute("distribute", nodes, spacing, axis, func(prev, cur geom.BBox) (float64, float64) {
		if axis == Horizontal {
			return prev.Right() - cur.Left() + spacing, 0
		}
		return 0, prev.Top() - cur.Bottom() + spacing
	})
}

// DistributeCenters is like Distribute but spaces the centers of the boxes,
// ignoring their sizes.
func DistributeCenters(nodes []shape.Node, spacing float64, axis Axis) error {
	return distribute("distribute-centers", nodes, spacing, axis, func(prev, cur geom.BBox) (float64, float64) {
		pc, cc := prev.Center(), cur.Center()
		if axis == Horizontal {
			return pc.X - cc.X + spacing, 0
		}
		return 0, pc.Y - cc.Y + spacing
	})
}

type stepFunc func(prev, cur geom.BBox) (dx, dy float64)

func distribute(op string, nodes []shape.Node, spacing float64, axis Axis, step stepFunc) error {
	if len(nodes) == 0 {
		return errs.New(errs.ErrCodeEmptyComposite, "nothing to distribute").WithOp(op)
	}
	if axis != Horizontal && axis != Vertical {
		return errs.New(errs.ErrCodeInvalidInput, "unknown axis %v", axis).WithOp(op)
	}
	prev, err := shape.BoundingBox(nodes[0])
	if err != nil {
		return annotate(err, op, 0)
	}
	for i := 1; i < len(nodes); i++ {
		cur, err := shape.BoundingBox(nodes[i])
		if err != nil {
			return annotate(err, op, i)
		}
		dx, dy := step(prev, cur)
		if err := shape.Translate(nodes[i], dx, dy); err != nil {
			return annotate(err, op, i)
		}
		prev = cur.Translate(dx, dy)
	}
	return nil
}
