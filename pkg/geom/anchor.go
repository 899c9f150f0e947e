package geom

import (
	"strconv"
	"strings"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
)

// Anchor names a reference point of a bounding box.
type Anchor int

// The eight compass anchors plus the center.
const (
	TopLeft Anchor = iota
	TopCenter
	TopRight
	LeftCenter
	Center
	RightCenter
	BottomLeft
	BottomCenter
	BottomRight
)

// Anchors lists every anchor in row-major order.
var Anchors = []Anchor{
	TopLeft, TopCenter, TopRight,
	LeftCenter, Center, RightCenter,
	BottomLeft, BottomCenter, BottomRight,
}

var anchorNames = [...]string{
	TopLeft:      "top-left",
	TopCenter:    "top-center",
	TopRight:     "top-right",
	LeftCenter:   "left-center",
	Center:       "center",
	RightCenter:  "right-center",
	BottomLeft:   "bottom-left",
	BottomCenter: "bottom-center",
	BottomRight:  "bottom-right",
}

// anchorAliases maps TikZ compass names to anchors.
var anchorAliases = map[string]Anchor{
	"north-west": TopLeft, "nw": TopLeft,
	"north": TopCenter, "n": TopCenter, "top": TopCenter,
	"north-east": TopRight, "ne": TopRight,
	"west": LeftCenter, "w": LeftCenter, "left": LeftCenter,
	"c": Center, "middle": Center,
	"east": RightCenter, "e": RightCenter, "right": RightCenter,
	"south-west": BottomLeft, "sw": BottomLeft,
	"south": BottomCenter, "s": BottomCenter, "bottom": BottomCenter,
	"south-east": BottomRight, "se": BottomRight,
}

// String returns the canonical kebab-case name, e.g. "top-center".
func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return "anchor(" + strconv.Itoa(int(a)) + ")"
	}
	return anchorNames[a]
}

// Of returns the anchor's point on b. Edge centers and the center are
// midpoints of the corners they lie between.
func (a Anchor) Of(b BBox) Point {
	switch a {
	case TopLeft:
		return b.TopLeft
	case TopCenter:
		return Midpoint(b.TopLeft, b.TopRight())
	case TopRight:
		return b.TopRight()
	case LeftCenter:
		return Midpoint(b.TopLeft, b.BottomLeft())
	case RightCenter:
		return Midpoint(b.TopRight(), b.BottomRight)
	case BottomLeft:
		return b.BottomLeft()
	case BottomCenter:
		return Midpoint(b.BottomLeft(), b.BottomRight)
	case BottomRight:
		return b.BottomRight
	default:
		return b.Center()
	}
}

// Opposite returns the anchor mirrored through the center.
func (a Anchor) Opposite() Anchor {
	if a < TopLeft || a > BottomRight {
		return Center
	}
	return BottomRight - a
}

// ParseAnchor accepts canonical names ("bottom-center"), underscore or
// space separated variants, and TikZ compass names ("south", "ne").
func ParseAnchor(s string) (Anchor, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	for i, name := range anchorNames {
		if name == key {
			return Anchor(i), nil
		}
	}
	if a, ok := anchorAliases[key]; ok {
		return a, nil
	}
	return Center, errs.New(errs.ErrCodeInvalidInput, "unknown anchor: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Anchor) UnmarshalText(text []byte) error {
	v, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
