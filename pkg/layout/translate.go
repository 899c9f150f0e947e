package layout

import (
	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// AnchorPoint returns anchor a of n's bounding box.
func AnchorPoint(n shape.Node, a geom.Anchor) (geom.Point, error) {
	b, err := shape.BoundingBox(n)
	if err != nil {
		return geom.Point{}, err
	}
	return a.Of(b), nil
}

// Center returns the center of n's bounding box.
func Center(n shape.Node) (geom.Point, error) {
	return AnchorPoint(n, geom.Center)
}

// TranslateTo moves n by the displacement from from to to.
func TranslateTo(n shape.Node, from, to geom.Point) error {
	dx, dy := geom.Vec(from, to).Deltas()
	return annotate(shape.Translate(n, dx, dy), "translate")
}

// TranslateAnchorTo moves n so that its anchor a lands on p.
func TranslateAnchorTo(n shape.Node, a geom.Anchor, p geom.Point) error {
	from, err := AnchorPoint(n, a)
	if err != nil {
		return annotate(err, "move")
	}
	return TranslateTo(n, from, p)
}

// TranslateX moves n horizontally by d.
func TranslateX(n shape.Node, d float64) error {
	return annotate(shape.Translate(n, d, 0), "translate")
}

// TranslateY moves n vertically by d.
func TranslateY(n shape.Node, d float64) error {
	return annotate(shape.Translate(n, 0, d), "translate")
}

// annotate renames the failing operation of a coded error and prefixes the
// node path with idx. Other errors pass through unchanged.
func annotate(err error, op string, idx ...int) error {
	if err == nil {
		return nil
	}
	e, ok := err.(*errs.Error)
	if !ok {
		return err
	}
	if e.Op != "" && e.Op != op {
		e.Message = e.Op + ": " + e.Message
	}
	e.Op = op
	if len(idx) > 0 {
		e.Path = append(append([]int{}, idx...), e.Path...)
	}
	return e
}
