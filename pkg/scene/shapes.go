package scene

import (
	"path/filepath"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
	"github.com/matzehuels/tikzlayout/pkg/shape"
	"github.com/matzehuels/tikzlayout/pkg/style"
)

// Kinds lists the accepted shape kinds with the fields each one reads.
var Kinds = map[string]string{
	"line":        "at, to",
	"path":        "points",
	"closed-path": "points",
	"rectangle":   "at (top-left), width and height, or at and to",
	"square":      "at (top-left), size",
	"circle":      "at (center), radius",
	"ellipse":     "at (center), rx, ry",
	"arc":         "at (center), radius or rx and ry, start, end",
	"bezier":      "at (from), to, controls or bend (midway-x, midway-y, top-left, bottom-right, symmetric with angle and length)",
	"text":        "at, text",
	"image":       "path, at (top-left), height, optional width",
	"polygon":     "at (center), radius, sides",
	"triangle":    "at (center), radius, angle",
	"arrow":       "at (shaft start), width, height, head_width, head_height",
	"guidelines":  "at (top-left), to (bottom-right), spacing",
}

// shapeBuilder resolves file references and builds shapes.
type shapeBuilder struct {
	baseDir      string
	relativeOnly bool
	probeImages  bool
}

func (b *shapeBuilder) build(s Shape) (shape.Node, error) {
	st, err := resolveStyle(s)
	if err != nil {
		return nil, err
	}
	at, err := point(s.At, "at", true)
	if err != nil {
		return nil, err
	}

	switch s.Kind {
	case "line":
		to, err := point(s.To, "to", false)
		if err != nil {
			return nil, err
		}
		return shape.LineSegment(at, to, st), nil
	case "path", "closed-path":
		pts, err := points(s.Points)
		if err != nil {
			return nil, err
		}
		if s.Kind == "path" {
			return shape.NewOpenPath(pts, st)
		}
		return shape.NewClosedPath(pts, st)
	case "rectangle":
		if s.To != nil {
			to, err := point(s.To, "to", false)
			if err != nil {
				return nil, err
			}
			return shape.Rectangle(geom.TopLeftOf(at, to), geom.BottomRightOf(at, to), st), nil
		}
		if err := positive(s.Width, "width"); err != nil {
			return nil, err
		}
		if err := positive(s.Height, "height"); err != nil {
			return nil, err
		}
		return shape.RectangleWH(at, s.Width, s.Height, st), nil
	case "square":
		if err := positive(s.Size, "size"); err != nil {
			return nil, err
		}
		return shape.Square(at, s.Size, st), nil
	case "circle":
		if err := positive(s.Radius, "radius"); err != nil {
			return nil, err
		}
		return shape.NewCircle(at, s.Radius, st), nil
	case "ellipse":
		if err := positive(s.RX, "rx"); err != nil {
			return nil, err
		}
		if err := positive(s.RY, "ry"); err != nil {
			return nil, err
		}
		return shape.NewEllipse(at, s.RX, s.RY, st), nil
	case "arc":
		if s.Radius > 0 {
			return shape.NewCircularArc(at, s.Radius, s.Start, s.End, st), nil
		}
		if s.RX <= 0 || s.RY <= 0 {
			return nil, invalid("arc needs radius or rx and ry")
		}
		return shape.NewEllipticalArc(at, s.RX, s.RY, s.Start, s.End, st), nil
	case "bezier":
		return buildBezier(s, at, st)
	case "text":
		return shape.NewText(at, s.Text, st), nil
	case "image":
		return b.buildImage(s, at, st)
	case "polygon":
		return shape.Polygon(at, s.Radius, s.Sides, st)
	case "triangle":
		if err := positive(s.Radius, "radius"); err != nil {
			return nil, err
		}
		return shape.EquilateralTriangle(at, s.Radius, s.Angle, st), nil
	case "arrow":
		a := shape.Arrow(s.Width, s.Height, s.HeadWidth, s.HeadHeight, st)
		if err := shape.Translate(a, at.X, at.Y); err != nil {
			return nil, err
		}
		return a, nil
	case "guidelines":
		to, err := point(s.To, "to", false)
		if err != nil {
			return nil, err
		}
		return shape.Guidelines(at, to, s.Spacing, st)
	case "":
		return nil, invalid("missing kind")
	default:
		return nil, invalid("unknown kind %q", s.Kind)
	}
}

func buildBezier(s Shape, from geom.Point, st string) (shape.Node, error) {
	to, err := point(s.To, "to", false)
	if err != nil {
		return nil, err
	}
	if len(s.Controls) > 0 {
		cs, err := points(s.Controls)
		if err != nil {
			return nil, err
		}
		if len(cs) != 2 {
			return nil, invalid("bezier needs exactly 2 controls, got %d", len(cs))
		}
		return shape.NewBezier(from, to, cs[0], cs[1], st), nil
	}
	switch s.Bend {
	case "midway-x", "":
		return shape.BezierMidwayX(from, to, st), nil
	case "midway-y":
		return shape.BezierMidwayY(from, to, st), nil
	case "top-left":
		return shape.BezierTopLeft(from, to, st), nil
	case "bottom-right":
		return shape.BezierBottomRight(from, to, st), nil
	case "symmetric":
		if s.Length > 0 {
			return shape.BezierSymmetric(from, to, s.Angle, s.Length, st), nil
		}
		return shape.BezierSymmetricMidway(from, to, s.Angle, st)
	}
	return nil, invalid("unknown bend %q", s.Bend)
}

func (b *shapeBuilder) buildImage(s Shape, at geom.Point, st string) (shape.Node, error) {
	validate := errs.ValidatePath
	if b.relativeOnly {
		validate = errs.ValidateRelativePath
	}
	if err := validate(s.Path); err != nil {
		return nil, err
	}
	if err := positive(s.Height, "height"); err != nil {
		return nil, err
	}
	if s.Width > 0 || !b.probeImages {
		w := s.Width
		if w <= 0 {
			w = s.Height
		}
		return shape.NewImage(s.Path, at, w, s.Height, st), nil
	}
	im, err := shape.ImageFromFile(b.resolve(s.Path), at, s.Height, st)
	if err != nil {
		return nil, err
	}
	w, h := im.Size()
	return shape.NewImage(s.Path, at, w, h, st), nil
}

func (b *shapeBuilder) resolve(path string) string {
	if filepath.IsAbs(path) || b.baseDir == "" {
		return path
	}
	return filepath.Join(b.baseDir, path)
}

func resolveStyle(s Shape) (string, error) {
	if s.Look == nil {
		return s.Style, nil
	}
	l := s.Look
	tokens := []string{s.Style}
	if l.LineWidth > 0 {
		tokens = append(tokens, style.LineWidth(l.LineWidth))
	}
	switch {
	case l.NoLine && l.Fill != "":
		tokens = append(tokens, style.FillNoLine(l.Fill))
	case l.Draw != "" && l.Fill != "":
		tokens = append(tokens, style.LineAndFill(l.Draw, l.Fill))
	case l.Draw != "":
		tokens = append(tokens, style.LineColor(l.Draw))
	case l.Fill != "":
		tokens = append(tokens, style.FillColor(l.Fill))
	}
	if l.Text != "" {
		tokens = append(tokens, style.TextColor(l.Text))
	}
	if l.Rounded > 0 {
		tokens = append(tokens, style.RoundedCorners(l.Rounded))
	}
	if l.Dash != "" {
		t, err := style.LineStyle(l.Dash)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, t)
	}
	if l.Arrows != "" {
		t, err := style.ArrowHeads(l.Arrows)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, t)
	}
	if l.Anchor != "" {
		a, err := geom.ParseAnchor(l.Anchor)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, style.Anchor(a))
	}
	if l.TextWidth > 0 {
		tokens = append(tokens, style.TextWidth(l.TextWidth))
	}
	if l.Align != "" {
		tokens = append(tokens, style.Alignment(l.Align))
	}
	if l.FontSize != "" {
		t, err := style.FontSize(l.FontSize)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, t)
	}
	if l.Opacity > 0 {
		tokens = append(tokens, style.Opacity(l.Opacity))
	}
	return style.Combine(tokens...), nil
}

// point converts a two-element coordinate. A missing optional point is the
// origin.
func point(v []float64, field string, optional bool) (geom.Point, error) {
	if v == nil && optional {
		return geom.Point{}, nil
	}
	if len(v) != 2 {
		return geom.Point{}, invalid("%s must be [x, y]", field)
	}
	return geom.Pt(v[0], v[1]), nil
}

func points(vs [][]float64) ([]geom.Point, error) {
	if len(vs) == 0 {
		return nil, invalid("points cannot be empty")
	}
	out := make([]geom.Point, len(vs))
	for i, v := range vs {
		p, err := point(v, "points", false)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func positive(v float64, field string) error {
	if v <= 0 {
		return invalid("%s must be positive", field)
	}
	return nil
}

func invalid(format string, args ...any) *errs.Error {
	return errs.New(errs.ErrCodeInvalidScene, format, args...)
}
