package shape

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
)

const tol = 1e-9

func box(l, t, r, b float64) geom.BBox {
	return geom.BBox{TopLeft: geom.Pt(l, t), BottomRight: geom.Pt(r, b)}
}

func mustBox(t *testing.T, n Node) geom.BBox {
	t.Helper()
	b, err := BoundingBox(n)
	if err != nil {
		t.Fatalf("BoundingBox() error: %v", err)
	}
	return b
}

func TestLeafBounds(t *testing.T) {
	tests := []struct {
		name string
		leaf Leaf
		want geom.BBox
	}{
		{"open path", LineSegment(geom.Pt(1, 2), geom.Pt(-1, 0), ""), box(-1, 2, 1, 0)},
		{"rectangle", Rectangle(geom.Pt(0, 2), geom.Pt(3, 0), ""), box(0, 2, 3, 0)},
		{"circle", NewCircle(geom.Pt(1, 1), 2, ""), box(-1, 3, 3, -1)},
		{"ellipse", NewEllipse(geom.Pt(0, 0), 3, 1, ""), box(-3, 1, 3, -1)},
		{"circular arc", NewCircularArc(geom.Pt(0, 0), 1, 0, 90, ""), box(-1, 1, 1, -1)},
		{"elliptical arc", NewEllipticalArc(geom.Pt(0, 0), 2, 1, 0, 45, ""), box(-2, 1, 2, -1)},
		{"bezier ignores controls", NewBezier(geom.Pt(0, 0), geom.Pt(2, 1), geom.Pt(10, 10), geom.Pt(-5, -5), ""), box(0, 1, 2, 0)},
		{"text", NewText(geom.Pt(4, 5), "$x$", ""), box(4, 5, 4, 5)},
		{"image", NewImage("a.png", geom.Pt(1, 1), 4, 2, ""), box(1, 1, 5, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustBox(t, tt.leaf)
			if !got.ApproxEqual(tt.want, tol) {
				t.Errorf("BoundingBox() = %v, want %v", got, tt.want)
			}
			if !got.WellFormed() {
				t.Errorf("BoundingBox() = %v is not well formed", got)
			}
		})
	}
}

func TestGroupAggregation(t *testing.T) {
	g := Group{
		Rectangle(geom.Pt(0, 0), geom.Pt(1, -1), ""),
		Rectangle(geom.Pt(2, 2), geom.Pt(3, 1), ""),
		Group{Rectangle(geom.Pt(-1, -1), geom.Pt(0, -2), "")},
	}
	got := mustBox(t, g)
	want := box(-1, 2, 3, -2)
	if !got.ApproxEqual(want, tol) {
		t.Errorf("BoundingBox() = %v, want %v", got, want)
	}
}

func TestEmptyGroup(t *testing.T) {
	tests := []struct {
		name string
		node Node
		path string
	}{
		{"root", Group{}, "root"},
		{"nested", Group{NewCircle(geom.Pt(0, 0), 1, ""), Group{Group{}}}, "root[1][0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BoundingBox(tt.node)
			if !errs.Is(err, errs.ErrCodeEmptyComposite) {
				t.Fatalf("BoundingBox() error = %v, want EMPTY_COMPOSITE", err)
			}
			var e *errs.Error
			e, _ = err.(*errs.Error)
			if got := errs.FormatPath(e.Path); got != tt.path {
				t.Errorf("error path = %s, want %s", got, tt.path)
			}
			if e.Op != "bbox" {
				t.Errorf("error op = %q, want bbox", e.Op)
			}
		})
	}
}

func TestUnsupportedNodes(t *testing.T) {
	var nilCircle *Circle
	tests := []struct {
		name string
		node Node
	}{
		{"nil interface", nil},
		{"typed nil leaf", nilCircle},
		{"nil inside group", Group{NewCircle(geom.Pt(0, 0), 1, ""), nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BoundingBox(tt.node); !errs.Is(err, errs.ErrCodeUnsupportedShape) {
				t.Errorf("BoundingBox() error = %v, want UNSUPPORTED_SHAPE", err)
			}
			if err := Translate(tt.node, 1, 1); !errs.Is(err, errs.ErrCodeUnsupportedShape) {
				t.Errorf("Translate() error = %v, want UNSUPPORTED_SHAPE", err)
			}
		})
	}
}

func TestTranslateGroupAction(t *testing.T) {
	build := func() Node {
		return Group{
			NewCircle(geom.Pt(0, 0), 1, "red"),
			Group{
				NewBezier(geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(0, 1), geom.Pt(1, 0), ""),
				NewCircularArc(geom.Pt(2, 2), 1, 0, 180, ""),
				NewImage("x.png", geom.Pt(0, 0), 1, 1, ""),
			},
			NewText(geom.Pt(5, 5), "hi", ""),
		}
	}
	a, b := build(), build()
	if err := Translate(a, 1.5, -2); err != nil {
		t.Fatal(err)
	}
	if err := Translate(a, -0.25, 3); err != nil {
		t.Fatal(err)
	}
	if err := Translate(b, 1.25, 1); err != nil {
		t.Fatal(err)
	}
	if ga, gb := mustBox(t, a), mustBox(t, b); !ga.ApproxEqual(gb, tol) {
		t.Errorf("two translations = %v, single translation = %v", ga, gb)
	}

	leaves, _ := Leaves(a)
	if len(leaves) != 5 {
		t.Fatalf("Leaves() = %d, want 5", len(leaves))
	}
	if leaves[0].Style() != "red" {
		t.Errorf("Style() = %q, want red", leaves[0].Style())
	}
	arc := leaves[2].(*CircularArc)
	if c := arc.Center(); !c.ApproxEqual(geom.Pt(3.25, 3), tol) {
		t.Errorf("arc center = %v, want (3.25, 3)", c)
	}
}

func TestTranslateEmptyGroupIsNoop(t *testing.T) {
	if err := Translate(Group{}, 1, 1); err != nil {
		t.Errorf("Translate(empty) error = %v", err)
	}
}

func TestScale(t *testing.T) {
	e := NewEllipse(geom.Pt(1, 1), 2, 1, "")
	im := NewImage("x.png", geom.Pt(1, 1), 2, 3, "")
	if err := Scale(Group{e, im}, 2); err != nil {
		t.Fatal(err)
	}
	if rx, ry := e.Radii(); rx != 4 || ry != 2 {
		t.Errorf("Radii() = (%v, %v), want (4, 2)", rx, ry)
	}
	if c := e.Center(); !c.ApproxEqual(geom.Pt(2, 2), tol) {
		t.Errorf("Center() = %v, want (2, 2)", c)
	}
	if w, h := im.Size(); w != 4 || h != 6 {
		t.Errorf("Size() = (%v, %v), want (4, 6)", w, h)
	}
}

func TestClone(t *testing.T) {
	orig := Group{Rectangle(geom.Pt(0, 1), geom.Pt(1, 0), "s"), Group{NewCircle(geom.Pt(0, 0), 1, "")}}
	cp := Clone(orig).(Group)
	if err := Translate(cp, 10, 10); err != nil {
		t.Fatal(err)
	}
	if got, want := mustBox(t, orig), box(-1, 1, 1, -1); !got.ApproxEqual(want, tol) {
		t.Errorf("original moved: BoundingBox() = %v, want %v", got, want)
	}
	if got := cp[0].(*ClosedPath).Style(); got != "s" {
		t.Errorf("clone Style() = %q, want s", got)
	}
	if len(cp[1].(Group)) != 1 {
		t.Error("clone lost nesting")
	}
}

func TestWalkPaths(t *testing.T) {
	g := Group{NewCircle(geom.Pt(0, 0), 1, ""), Group{NewText(geom.Pt(0, 0), "a", ""), NewText(geom.Pt(0, 0), "b", "")}}
	var got []string
	err := Walk(g, func(l Leaf, path []int) error {
		got = append(got, l.Kind().String()+"@"+errs.FormatPath(path))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"circle@root[0]", "text@root[1][0]", "text@root[1][1]"}
	if len(got) != len(want) {
		t.Fatalf("Walk() visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Walk()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if leaves, groups := Count(g); leaves != 3 || groups != 2 {
		t.Errorf("Count() = (%d, %d), want (3, 2)", leaves, groups)
	}
}

func TestArcStartPoints(t *testing.T) {
	a := NewCircularArc(geom.Pt(1, 1), 2, 90, 180, "")
	if p := a.StartPoint(); !p.ApproxEqual(geom.Pt(1, 3), tol) {
		t.Errorf("StartPoint() = %v, want (1, 3)", p)
	}
	e := NewEllipticalArc(geom.Pt(0, 0), 3, 1, 0, 90, "")
	if p := e.StartPoint(); !p.ApproxEqual(geom.Pt(3, 0), tol) {
		t.Errorf("StartPoint() = %v, want (3, 0)", p)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		leaf Leaf
		want geom.BBox
	}{
		{"square", Square(geom.Pt(0, 0), 2, ""), box(0, 0, 2, -2)},
		{"rectangle wh", RectangleWH(geom.Pt(1, 1), 3, 2, ""), box(1, 1, 4, -1)},
		{"rectangle ratio", RectangleRatio(geom.Pt(0, 0), 2, 1.5, ""), box(0, 0, 3, -2)},
		{"rectangle grow", RectangleGrow(geom.Pt(0, 0), geom.Pt(2, -2), 2, 4, ""), box(-1, 2, 3, -4)},
		{"rectangle scale", RectangleScale(geom.Pt(0, 0), geom.Pt(2, -2), 2, 0.5, ""), box(-1, -0.5, 3, -1.5)},
		{"centered horizontal", CenteredHorizontalSegment(geom.Pt(1, 1), 4, ""), box(-1, 1, 3, 1)},
		{"centered vertical", CenteredVerticalSegment(geom.Pt(1, 1), 4, ""), box(1, 3, 1, -1)},
		{"segment from angle", SegmentFromAngle(geom.Pt(0, 0), 90, 2, ""), box(0, 2, 0, 0)},
		{"centered from angle", CenteredSegmentFromAngle(geom.Pt(0, 0), 0, 2, ""), box(-1, 0, 1, 0)},
		{"between circles", SegmentBetweenCircles(geom.Pt(0, 0), 1, 0, geom.Pt(5, 0), 1, 180, ""), box(1, 0, 4, 0)},
		{"ellipse ratio", EllipseRatio(geom.Pt(0, 0), 1, 2, ""), box(-2, 1, 2, -1)},
		{"arrow", Arrow(2, 1, 1, 2, ""), box(0, 1, 3, -1)},
		{"triangle", EquilateralTriangle(geom.Pt(0, 0), 1, 90, ""), box(-math.Sqrt(3)/2, 1, math.Sqrt(3)/2, -0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustBox(t, tt.leaf); !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("BoundingBox() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrthogonalConnectors(t *testing.T) {
	h := OrthogonalConnectorHMidway(geom.Pt(0, 0), geom.Pt(4, 2), "")
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(4, 2)}
	for i, p := range h.Points() {
		if !p.ApproxEqual(want[i], tol) {
			t.Errorf("H point %d = %v, want %v", i, p, want[i])
		}
	}
	v := OrthogonalConnectorV(geom.Pt(0, 0), geom.Pt(4, 2), 0.25, "")
	want = []geom.Point{geom.Pt(0, 0), geom.Pt(0, 0.5), geom.Pt(4, 0.5), geom.Pt(4, 2)}
	for i, p := range v.Points() {
		if !p.ApproxEqual(want[i], tol) {
			t.Errorf("V point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestPathConstructorsCopyInput(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}
	p, err := NewOpenPath(pts, "")
	if err != nil {
		t.Fatal(err)
	}
	pts[0] = geom.Pt(100, 100)
	if got := p.Points()[0]; got != geom.Pt(0, 0) {
		t.Errorf("Points()[0] = %v, want (0, 0)", got)
	}
	if _, err := NewClosedPath(nil, ""); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("NewClosedPath(nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestPolygon(t *testing.T) {
	p, err := Polygon(geom.Pt(0, 0), 1, 4, "")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := mustBox(t, p), box(-1, 1, 1, -1); !got.ApproxEqual(want, tol) {
		t.Errorf("BoundingBox() = %v, want %v", got, want)
	}
	if _, err := Polygon(geom.Pt(0, 0), 1, 2, ""); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Polygon(2) error = %v, want INVALID_INPUT", err)
	}
}

func TestBezierVariants(t *testing.T) {
	from, to := geom.Pt(0, 0), geom.Pt(2, 0)

	b, err := BezierSymmetricMidway(from, to, 45, "")
	if err != nil {
		t.Fatal(err)
	}
	c1, c2 := b.Controls()
	if !c1.ApproxEqual(geom.Pt(1, 1), tol) || c1 != c2 {
		t.Errorf("Controls() = %v, %v, want (1, 1) twice", c1, c2)
	}
	for _, deg := range []float64{90, 180, 270, -90} {
		if _, err := BezierSymmetricMidway(from, to, deg, ""); !errs.Is(err, errs.ErrCodeDegenerateGeometry) {
			t.Errorf("BezierSymmetricMidway(%v) error = %v, want DEGENERATE_GEOMETRY", deg, err)
		}
	}

	s := BezierSymmetric(from, to, 90, 1, "")
	c1, c2 = s.Controls()
	if !c1.ApproxEqual(geom.Pt(0, 1), tol) || !c2.ApproxEqual(geom.Pt(2, 1), tol) {
		t.Errorf("BezierSymmetric controls = %v, %v", c1, c2)
	}

	r := BezierSymmetricRelative(from, to, 90, 0.5, "")
	c1, _ = r.Controls()
	if !c1.ApproxEqual(geom.Pt(0, 1), tol) {
		t.Errorf("BezierSymmetricRelative c1 = %v, want (0, 1)", c1)
	}

	mx := BezierMidwayX(geom.Pt(0, 0), geom.Pt(2, 2), "")
	c1, c2 = mx.Controls()
	if !c1.ApproxEqual(geom.Pt(2, 1), tol) || !c2.ApproxEqual(geom.Pt(0, 1), tol) {
		t.Errorf("BezierMidwayX controls = %v, %v", c1, c2)
	}

	tl := BezierTopLeft(geom.Pt(0, 0), geom.Pt(2, 2), "")
	c1, _ = tl.Controls()
	if !c1.ApproxEqual(geom.Pt(0, 2), tol) {
		t.Errorf("BezierTopLeft control = %v, want (0, 2)", c1)
	}
	br := BezierBottomRight(geom.Pt(0, 0), geom.Pt(2, 2), "")
	c1, _ = br.Controls()
	if !c1.ApproxEqual(geom.Pt(2, 0), tol) {
		t.Errorf("BezierBottomRight control = %v, want (2, 0)", c1)
	}
}

func TestGuidelines(t *testing.T) {
	h, err := HorizontalGuidelines(geom.Pt(0, 2), geom.Pt(3, 0), 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 3 {
		t.Errorf("HorizontalGuidelines() = %d lines, want 3", len(h))
	}
	v, err := VerticalGuidelines(geom.Pt(0, 2), geom.Pt(3, 0), 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 4 {
		t.Errorf("VerticalGuidelines() = %d lines, want 4", len(v))
	}
	g, err := Guidelines(geom.Pt(0, 2), geom.Pt(3, 0), 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := mustBox(t, g), box(0, 2, 3, 0); !got.ApproxEqual(want, tol) {
		t.Errorf("Guidelines box = %v, want %v", got, want)
	}
	if _, err := Guidelines(geom.Pt(0, 0), geom.Pt(1, -1), 0, ""); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Guidelines(spacing 0) error = %v, want INVALID_INPUT", err)
	}
}

func TestTicks(t *testing.T) {
	h := HorizontalTicks(geom.Pt(0, 0), 3, 1, 0.2, "")
	if got, want := mustBox(t, h), box(0, 0.2, 2, 0); !got.ApproxEqual(want, tol) {
		t.Errorf("HorizontalTicks box = %v, want %v", got, want)
	}
	v := VerticalTicks(geom.Pt(0, 0), 3, 1, 0.2, "")
	if got, want := mustBox(t, v), box(0, 2, 0.2, 0); !got.ApproxEqual(want, tol) {
		t.Errorf("VerticalTicks box = %v, want %v", got, want)
	}
	if len(HorizontalTicks(geom.Pt(0, 0), -1, 1, 1, "")) != 0 {
		t.Error("HorizontalTicks(-1) should be empty")
	}
}

func TestImageFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 40, 20))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	im, err := ImageFromFile(path, geom.Pt(0, 0), 1.5, "")
	if err != nil {
		t.Fatalf("ImageFromFile() error: %v", err)
	}
	if w, h := im.Size(); math.Abs(w-3) > tol || h != 1.5 {
		t.Errorf("Size() = (%v, %v), want (3, 1.5)", w, h)
	}

	if _, err := ImageFromFile(filepath.Join(dir, "missing.png"), geom.Pt(0, 0), 1, ""); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImageFromFile(junk, geom.Pt(0, 0), 1, ""); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("junk file error = %v, want INVALID_INPUT", err)
	}
}

func TestKindString(t *testing.T) {
	if got := KindEllipticalArc.String(); got != "elliptical-arc" {
		t.Errorf("String() = %q, want elliptical-arc", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}
