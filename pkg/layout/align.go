package layout

import (
	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// Align moves every node along axis so that the chosen side of its bounding
// box equals value. On the horizontal axis Start is the left edge and End
// the right edge; on the vertical axis Start is the top and End the bottom.
// Middle aligns centers.
//
// Nodes move independently. An empty list is a no-op.
func Align(nodes []shape.Node, axis Axis, side Alignment, value float64) error {
	if axis != Horizontal && axis != Vertical {
		return errs.New(errs.ErrCodeInvalidInput, "unknown axis %v", axis).WithOp("align")
	}
	if side < Start || side > End {
		return errs.New(errs.ErrCodeInvalidInput, "unknown alignment %v", side).WithOp("align")
	}
	for i, n := range nodes {
		b, err := shape.BoundingBox(n)
		if err != nil {
			return annotate(err, "align", i)
		}
		var cur float64
		switch {
		case axis == Horizontal && side == Start:
			cur = b.Left()
		case axis == Horizontal && side == Middle:
			cur = b.Center().X
		case axis == Horizontal:
			cur = b.Right()
		case side == Start:
			cur = b.Top()
		case side == Middle:
			cur = b.Center().Y
		default:
			cur = b.Bottom()
		}
		dx, dy := value-cur, 0.0
		if axis == Vertical {
			dx, dy = 0, value-cur
		}
		if err := shape.Translate(n, dx, dy); err != nil {
			return annotate(err, "align", i)
		}
	}
	return nil
}

// AlignCenters moves every node so that its center is (x, y).
func AlignCenters(nodes []shape.Node, x, y float64) error {
	if err := Align(nodes, Horizontal, Middle, x); err != nil {
		return annotate(err, "align-centers")
	}
	return annotate(Align(nodes, Vertical, Middle, y), "align-centers")
}
