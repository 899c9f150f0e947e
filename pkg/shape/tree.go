package shape

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
)

// BoundingBox returns the axis-aligned box enclosing n.
//
// Groups aggregate the boxes of their children; an empty group anywhere in
// the tree fails with EMPTY_COMPOSITE and the index path to that group.
// A nil node fails with UNSUPPORTED_SHAPE.
func BoundingBox(n Node) (geom.BBox, error) {
	return boundingBox(n, nil)
}

func boundingBox(n Node, path []int) (geom.BBox, error) {
	switch v := n.(type) {
	case Group:
		if len(v) == 0 {
			return geom.BBox{}, errs.New(errs.ErrCodeEmptyComposite, "group has no children").
				WithOp("bbox").WithPath(path)
		}
		var box geom.BBox
		for i, child := range v {
			b, err := boundingBox(child, append(path, i))
			if err != nil {
				return geom.BBox{}, err
			}
			if i == 0 {
				box = b
			} else {
				box = box.Union(b)
			}
		}
		return box, nil
	case Leaf:
		if isNil(v) {
			return geom.BBox{}, unsupported("bbox", n, path)
		}
		return v.Bounds(), nil
	default:
		return geom.BBox{}, unsupported("bbox", n, path)
	}
}

// Translate shifts every leaf reachable from n by (dx, dy) in place.
// Structure, order and styles are preserved. Empty groups are skipped.
func Translate(n Node, dx, dy float64) error {
	return visit(n, nil, "translate", func(l Leaf, _ []int) error {
		l.translate(dx, dy)
		return nil
	})
}

// Scale multiplies every coordinate and length reachable from n by alpha,
// scaling about the origin.
func Scale(n Node, alpha float64) error {
	return visit(n, nil, "scale", func(l Leaf, _ []int) error {
		l.scale(alpha)
		return nil
	})
}

// Clone returns a deep copy of n. Nil nodes are returned unchanged.
func Clone(n Node) Node {
	switch v := n.(type) {
	case Group:
		if v == nil {
			return Group(nil)
		}
		out := make(Group, len(v))
		for i, child := range v {
			out[i] = Clone(child)
		}
		return out
	case Leaf:
		if isNil(v) {
			return n
		}
		return v.clone()
	default:
		return n
	}
}

// WalkFunc is called for every leaf in pre-order with the index path from
// the root. The path slice is reused between calls.
type WalkFunc func(l Leaf, path []int) error

// Walk calls fn for every leaf reachable from n in order, stopping at the
// first error.
func Walk(n Node, fn WalkFunc) error {
	return visit(n, nil, "walk", fn)
}

// Leaves returns the leaves of n in draw order.
func Leaves(n Node) ([]Leaf, error) {
	var out []Leaf
	err := Walk(n, func(l Leaf, _ []int) error {
		out = append(out, l)
		return nil
	})
	return out, err
}

// Count returns the number of leaves and groups in n, including n itself.
func Count(n Node) (leaves, groups int) {
	switch v := n.(type) {
	case Group:
		groups++
		for _, child := range v {
			l, g := Count(child)
			leaves += l
			groups += g
		}
	case Leaf:
		if !isNil(v) {
			leaves++
		}
	}
	return leaves, groups
}

func visit(n Node, path []int, op string, fn WalkFunc) error {
	switch v := n.(type) {
	case Group:
		for i, child := range v {
			if err := visit(child, append(path, i), op, fn); err != nil {
				return err
			}
		}
		return nil
	case Leaf:
		if isNil(v) {
			return unsupported(op, n, path)
		}
		return fn(v, path)
	default:
		return unsupported(op, n, path)
	}
}

func unsupported(op string, n Node, path []int) *errs.Error {
	return errs.New(errs.ErrCodeUnsupportedShape, "unsupported node %s", describe(n)).
		WithOp(op).WithPath(path)
}

func describe(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T(nil)", n)
}

// isNil reports whether l is a typed nil pointer.
func isNil(l Leaf) bool {
	switch v := l.(type) {
	case *OpenPath:
		return v == nil
	case *ClosedPath:
		return v == nil
	case *Circle:
		return v == nil
	case *CircularArc:
		return v == nil
	case *Ellipse:
		return v == nil
	case *EllipticalArc:
		return v == nil
	case *Bezier:
		return v == nil
	case *Text:
		return v == nil
	case *Image:
		return v == nil
	default:
		return l == nil
	}
}

func sincosDeg(deg float64) (sin, cos float64) {
	return math.Sincos(geom.DegToRad(deg))
}
