// Package style builds the TikZ option strings attached to shapes.
//
// Style tokens are opaque to the geometry engine: a shape stores the string
// it was constructed with and the serializer pastes it verbatim into the
// option list of the emitted command. The helpers here exist so callers do
// not have to remember TikZ option syntax.
//
//	s := style.Combine(
//	    style.LineWidth(2*style.StandardLineWidth),
//	    style.FillColor("accent"),
//	    style.RoundedCorners(0.1),
//	)
//	// "line width=0.8pt, fill=accent, rounded corners=0.1cm"
package style

import (
	"strconv"
	"strings"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
)

// StandardLineWidth is TikZ's default ("thin") line width in points.
const StandardLineWidth = 0.4

// Combine joins non-empty tokens with ", ".
func Combine(tokens ...string) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ", ")
}

// LineWidth sets the stroke width in points.
func LineWidth(pt float64) string {
	return "line width=" + num(pt) + "pt"
}

// LineColor sets the stroke color.
func LineColor(color string) string { return "draw=" + color }

// FillColor sets the fill color.
func FillColor(color string) string { return "fill=" + color }

// LineAndFill sets both stroke and fill colors.
func LineAndFill(line, fill string) string {
	return Combine(LineColor(line), FillColor(fill))
}

// FillNoLine fills without drawing an outline.
func FillNoLine(color string) string {
	return Combine(FillColor(color), "draw=none")
}

// TextColor sets the color of node text.
func TextColor(color string) string { return "text=" + color }

// Opacity sets fill and stroke opacity.
func Opacity(alpha float64) string { return "opacity=" + num(alpha) }

// RoundedCorners rounds path corners with the given radius in cm.
func RoundedCorners(cm float64) string {
	return "rounded corners=" + num(cm) + "cm"
}

// TextWidth fixes the width of a text node in cm, enabling line breaks.
func TextWidth(cm float64) string {
	return "text width=" + num(cm) + "cm"
}

// Alignment sets text alignment inside a node: left, center, right or
// justify.
func Alignment(align string) string { return "align=" + align }

// lineStyles are the dash patterns predefined by TikZ.
var lineStyles = map[string]bool{
	"solid": true, "dotted": true, "densely dotted": true, "loosely dotted": true,
	"dashed": true, "densely dashed": true, "loosely dashed": true,
	"dashdotted": true, "densely dashdotted": true, "loosely dashdotted": true,
}

// LineStyle returns a predefined dash pattern such as "dashed".
func LineStyle(name string) (string, error) {
	if !lineStyles[name] {
		return "", errs.New(errs.ErrCodeInvalidInput, "unknown line style %q", name).WithOp("style")
	}
	return name, nil
}

// ArrowHeads adds arrow tips from the arrows.meta library at the "start",
// "end" or "both" ends of a path.
func ArrowHeads(which string) (string, error) {
	switch which {
	case "start":
		return "{Latex}-", nil
	case "end":
		return "-{Latex}", nil
	case "both":
		return "{Latex}-{Latex}", nil
	}
	return "", errs.New(errs.ErrCodeInvalidInput, "unknown arrow head position %q", which).WithOp("style")
}

var tikzAnchors = map[geom.Anchor]string{
	geom.TopLeft:      "north west",
	geom.TopCenter:    "north",
	geom.TopRight:     "north east",
	geom.LeftCenter:   "west",
	geom.Center:       "center",
	geom.RightCenter:  "east",
	geom.BottomLeft:   "south west",
	geom.BottomCenter: "south",
	geom.BottomRight:  "south east",
}

// Anchor sets which point of a text node sits at its coordinate.
func Anchor(a geom.Anchor) string {
	if name, ok := tikzAnchors[a]; ok {
		return "anchor=" + name
	}
	return ""
}

var fontSizes = map[string]bool{
	"tiny": true, "scriptsize": true, "footnotesize": true, "small": true,
	"normalsize": true, "large": true, "Large": true, "LARGE": true,
	"huge": true, "Huge": true,
}

// FontSize selects a LaTeX size command such as "small" or "Large".
func FontSize(size string) (string, error) {
	if !fontSizes[size] {
		return "", errs.New(errs.ErrCodeInvalidInput, "unknown font size %q", size).WithOp("style")
	}
	return `font=\` + size, nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
