package tikz

import (
	"fmt"
	"strings"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// Commands returns one draw command per leaf of n, in draw order.
func Commands(n shape.Node) ([]string, error) {
	var out []string
	err := shape.Walk(n, func(l shape.Leaf, path []int) error {
		cmd, err := Command(l)
		if err != nil {
			if e, ok := err.(*errs.Error); ok {
				return e.WithPath(path)
			}
			return err
		}
		out = append(out, cmd)
		return nil
	})
	if err != nil {
		if e, ok := err.(*errs.Error); ok && e.Op == "walk" {
			e.Op = "emit"
		}
		return nil, err
	}
	return out, nil
}

// Command formats a single leaf.
func Command(l shape.Leaf) (string, error) {
	switch v := l.(type) {
	case *shape.OpenPath:
		return fmt.Sprintf(`\draw[%s] `, v.Style()) + joinPoints(v) + ";", nil
	case *shape.ClosedPath:
		return fmt.Sprintf(`\draw[%s] `, v.Style()) + joinPoints(v) + " -- cycle;", nil
	case *shape.Circle:
		c := v.Center()
		return fmt.Sprintf(`\draw[%s] (%f, %f) circle (%f);`, v.Style(), c.X, c.Y, v.Radius()), nil
	case *shape.Ellipse:
		c := v.Center()
		rx, ry := v.Radii()
		return fmt.Sprintf(`\draw[%s] (%f, %f) ellipse (%f and %f);`, v.Style(), c.X, c.Y, rx, ry), nil
	case *shape.Bezier:
		from, to := v.Endpoints()
		c1, c2 := v.Controls()
		return fmt.Sprintf(`\draw[%s] (%f, %f) .. controls (%f, %f) and (%f, %f) .. (%f, %f);`,
			v.Style(), from.X, from.Y, c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y), nil
	case *shape.CircularArc:
		p := v.StartPoint()
		a, b := v.Angles()
		return fmt.Sprintf(`\draw[%s] (%f,%f) arc (%f:%f:%f);`, v.Style(), p.X, p.Y, a, b, v.Radius()), nil
	case *shape.EllipticalArc:
		p := v.StartPoint()
		a, b := v.Angles()
		rx, ry := v.Radii()
		return fmt.Sprintf(`\draw[%s] (%f,%f) arc (%f:%f:%f and %f);`, v.Style(), p.X, p.Y, a, b, rx, ry), nil
	case *shape.Text:
		p := v.At()
		return fmt.Sprintf(`\node[%s] at (%f,%f) {%s};`, v.Style(), p.X, p.Y, v.Content()), nil
	case *shape.Image:
		w, h := v.Size()
		c := v.TopLeft().Translate(w/2, -h/2)
		return fmt.Sprintf(`\node[inner sep=0pt, %s] at (%f,%f) {\includegraphics[height=%f, width=%f]{%s}};`,
			v.Style(), c.X, c.Y, h, w, v.Path()), nil
	default:
		return "", errs.New(errs.ErrCodeUnsupportedShape, "no command for %T", l).WithOp("emit")
	}
}

func joinPoints(p interface{ Points() []geom.Point }) string {
	pts := p.Points()
	parts := make([]string, len(pts))
	for i, q := range pts {
		parts[i] = fmt.Sprintf("(%f, %f)", q.X, q.Y)
	}
	return strings.Join(parts, " -- ")
}
