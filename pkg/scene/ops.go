package scene

import (
	"github.com/matzehuels/tikzlayout/pkg/geom"
	"github.com/matzehuels/tikzlayout/pkg/layout"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// Ops lists the accepted operations with the fields each one reads.
var Ops = map[string]string{
	"translate":          "target(s), dx, dy",
	"move":               "target, anchor, to or ref and ref_anchor",
	"place":              "target, ref, direction, spacing, optional align",
	"place-at-angle":     "target, anchor, ref, ref_anchor, angle, spacing",
	"distribute":         "targets, axis, spacing",
	"distribute-centers": "targets, axis, spacing",
	"align":              "targets, axis, side, optional value (defaults to the first target)",
	"align-centers":      "targets, optional x and y (default to the first target)",
	"scale":              "target(s), factor",
	"frame":              "target(s), id, margin, style",
	"connect":            "from, anchor, target, ref_anchor, mode (straight, horizontal, vertical), alpha, id, style",
}

func (d *Diagram) apply(op Op) error {
	switch op.Op {
	case "translate":
		n, err := d.targetNode(op)
		if err != nil {
			return err
		}
		return shape.Translate(n, op.DX, op.DY)

	case "move":
		n, err := d.node(op.Target)
		if err != nil {
			return err
		}
		a, err := anchorOr(op.Anchor, geom.Center)
		if err != nil {
			return err
		}
		to, err := d.destination(op)
		if err != nil {
			return err
		}
		return layout.TranslateAnchorTo(n, a, to)

	case "place":
		n, ref, err := d.pair(op.Target, op.Ref)
		if err != nil {
			return err
		}
		dir, err := layout.ParseDirection(op.Direction)
		if err != nil {
			return err
		}
		if op.Align == "" {
			return placeAxis(n, ref, dir, op.Spacing)
		}
		align, err := layout.ParseAlignment(op.Align)
		if err != nil {
			return err
		}
		return layout.Place(n, ref, dir, op.Spacing, align)

	case "place-at-angle":
		n, ref, err := d.pair(op.Target, op.Ref)
		if err != nil {
			return err
		}
		a, err := anchorOr(op.Anchor, geom.Center)
		if err != nil {
			return err
		}
		ra, err := anchorOr(op.RefAnchor, geom.Center)
		if err != nil {
			return err
		}
		return layout.PlaceAtAngle(n, a, ref, ra, op.Angle, op.Spacing)

	case "distribute", "distribute-centers":
		nodes, err := d.nodeList(op.Targets)
		if err != nil {
			return err
		}
		axis, err := layout.ParseAxis(op.Axis)
		if err != nil {
			return err
		}
		if op.Op == "distribute" {
			return layout.Distribute(nodes, op.Spacing, axis)
		}
		return layout.DistributeCenters(nodes, op.Spacing, axis)

	case "align":
		nodes, err := d.nodeList(op.Targets)
		if err != nil {
			return err
		}
		axis, err := layout.ParseAxis(op.Axis)
		if err != nil {
			return err
		}
		side, err := layout.ParseAlignment(op.Side)
		if err != nil {
			return err
		}
		value, err := valueOr(op.Value, nodes, func(b geom.BBox) float64 { return sideOf(b, axis, side) })
		if err != nil {
			return err
		}
		return layout.Align(nodes, axis, side, value)

	case "align-centers":
		nodes, err := d.nodeList(op.Targets)
		if err != nil {
			return err
		}
		x, err := valueOr(op.X, nodes, func(b geom.BBox) float64 { return b.Center().X })
		if err != nil {
			return err
		}
		y, err := valueOr(op.Y, nodes, func(b geom.BBox) float64 { return b.Center().Y })
		if err != nil {
			return err
		}
		return layout.AlignCenters(nodes, x, y)

	case "scale":
		if op.Factor == 0 {
			return invalid("scale needs a non-zero factor")
		}
		n, err := d.targetNode(op)
		if err != nil {
			return err
		}
		return shape.Scale(n, op.Factor)

	case "frame":
		n, err := d.targetNode(op)
		if err != nil {
			return err
		}
		f, err := layout.Frame(n, op.Margin, op.Style)
		if err != nil {
			return err
		}
		return d.addDerived(op.ID, f)

	case "connect":
		return d.connect(op)

	case "":
		return invalid("missing op")
	default:
		return invalid("unknown op %q", op.Op)
	}
}

func (d *Diagram) connect(op Op) error {
	from, to, err := d.pair(op.From, op.Target)
	if err != nil {
		return err
	}
	fa, err := anchorOr(op.Anchor, geom.Center)
	if err != nil {
		return err
	}
	ta, err := anchorOr(op.RefAnchor, geom.Center)
	if err != nil {
		return err
	}
	p, err := layout.AnchorPoint(from, fa)
	if err != nil {
		return err
	}
	q, err := layout.AnchorPoint(to, ta)
	if err != nil {
		return err
	}
	alpha := 0.5
	if op.Alpha != nil {
		alpha = *op.Alpha
	}
	var line *shape.OpenPath
	switch op.Mode {
	case "", "straight":
		line = shape.LineSegment(p, q, op.Style)
	case "horizontal":
		line = shape.OrthogonalConnectorH(p, q, alpha, op.Style)
	case "vertical":
		line = shape.OrthogonalConnectorV(p, q, alpha, op.Style)
	default:
		return invalid("unknown connector mode %q", op.Mode)
	}
	return d.addDerived(op.ID, line)
}

// addDerived registers a shape created by an operation and draws it last.
func (d *Diagram) addDerived(id string, n shape.Node) error {
	if id != "" {
		if err := d.declare(id); err != nil {
			return err
		}
		d.nodes[id] = n
	}
	d.Root = append(d.Root, n)
	return nil
}

func (d *Diagram) node(id string) (shape.Node, error) {
	if id == "" {
		return nil, invalid("missing target")
	}
	n, ok := d.nodes[id]
	if !ok {
		return nil, invalid("unknown id %q", id)
	}
	return n, nil
}

func (d *Diagram) pair(a, b string) (shape.Node, shape.Node, error) {
	na, err := d.node(a)
	if err != nil {
		return nil, nil, err
	}
	nb, err := d.node(b)
	if err != nil {
		return nil, nil, err
	}
	return na, nb, nil
}

func (d *Diagram) nodeList(ids []string) ([]shape.Node, error) {
	out := make([]shape.Node, len(ids))
	for i, id := range ids {
		n, err := d.node(id)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// targetNode resolves target, or targets as a transient group.
func (d *Diagram) targetNode(op Op) (shape.Node, error) {
	if op.Target != "" {
		if len(op.Targets) > 0 {
			return nil, invalid("set target or targets, not both")
		}
		return d.node(op.Target)
	}
	nodes, err := d.nodeList(op.Targets)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, invalid("missing target")
	}
	return shape.Group(nodes), nil
}

func (d *Diagram) destination(op Op) (geom.Point, error) {
	if op.To != nil {
		return point(op.To, "to", false)
	}
	if op.Ref == "" {
		return geom.Point{}, invalid("move needs to or ref")
	}
	ref, err := d.node(op.Ref)
	if err != nil {
		return geom.Point{}, err
	}
	ra, err := anchorOr(op.RefAnchor, geom.Center)
	if err != nil {
		return geom.Point{}, err
	}
	return layout.AnchorPoint(ref, ra)
}

func placeAxis(n, ref shape.Node, dir layout.Direction, spacing float64) error {
	switch dir {
	case layout.Above:
		return layout.PlaceAbove(n, ref, spacing)
	case layout.Below:
		return layout.PlaceBelow(n, ref, spacing)
	case layout.Left:
		return layout.PlaceLeft(n, ref, spacing)
	default:
		return layout.PlaceRight(n, ref, spacing)
	}
}

func anchorOr(s string, def geom.Anchor) (geom.Anchor, error) {
	if s == "" {
		return def, nil
	}
	return geom.ParseAnchor(s)
}

// valueOr returns *v, or f applied to the first node's box when v is nil.
func valueOr(v *float64, nodes []shape.Node, f func(geom.BBox) float64) (float64, error) {
	if v != nil {
		return *v, nil
	}
	if len(nodes) == 0 {
		return 0, nil
	}
	b, err := shape.BoundingBox(nodes[0])
	if err != nil {
		return 0, err
	}
	return f(b), nil
}

func sideOf(b geom.BBox, axis layout.Axis, side layout.Alignment) float64 {
	switch {
	case axis == layout.Horizontal && side == layout.Start:
		return b.Left()
	case axis == layout.Horizontal && side == layout.End:
		return b.Right()
	case axis == layout.Horizontal:
		return b.Center().X
	case side == layout.Start:
		return b.Top()
	case side == layout.End:
		return b.Bottom()
	default:
		return b.Center().Y
	}
}

