package scene

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
)

// Scene is the decoded form of a scene file.
type Scene struct {
	Colors    map[string][]int `toml:"colors" json:"colors,omitempty"`
	Palette   bool             `toml:"palette" json:"palette,omitempty"`
	Packages  []string         `toml:"packages" json:"packages,omitempty"`
	Libraries []string         `toml:"libraries" json:"libraries,omitempty"`
	Shapes    []Shape          `toml:"shapes" json:"shapes,omitempty"`
	Groups    []Group          `toml:"groups" json:"groups,omitempty"`
	Ops       []Op             `toml:"ops" json:"ops,omitempty"`
	Draw      []string         `toml:"draw" json:"draw,omitempty"`
}

// Shape declares one leaf shape (or, for guidelines, a group of lines).
//
// Which fields are read depends on Kind; see [Kinds].
type Shape struct {
	ID     string      `toml:"id" json:"id"`
	Kind   string      `toml:"kind" json:"kind"`
	At     []float64   `toml:"at" json:"at,omitempty"`
	To     []float64   `toml:"to" json:"to,omitempty"`
	Points [][]float64 `toml:"points" json:"points,omitempty"`

	Width  float64 `toml:"width" json:"width,omitempty"`
	Height float64 `toml:"height" json:"height,omitempty"`
	Size   float64 `toml:"size" json:"size,omitempty"`
	Radius float64 `toml:"radius" json:"radius,omitempty"`
	RX     float64 `toml:"rx" json:"rx,omitempty"`
	RY     float64 `toml:"ry" json:"ry,omitempty"`
	Start  float64 `toml:"start" json:"start,omitempty"`
	End    float64 `toml:"end" json:"end,omitempty"`
	Angle  float64 `toml:"angle" json:"angle,omitempty"`
	Sides  int     `toml:"sides" json:"sides,omitempty"`

	HeadWidth  float64 `toml:"head_width" json:"head_width,omitempty"`
	HeadHeight float64 `toml:"head_height" json:"head_height,omitempty"`
	Spacing    float64 `toml:"spacing" json:"spacing,omitempty"`

	Controls [][]float64 `toml:"controls" json:"controls,omitempty"`
	Bend     string      `toml:"bend" json:"bend,omitempty"`
	Length   float64     `toml:"length" json:"length,omitempty"`

	Text string `toml:"text" json:"text,omitempty"`
	Path string `toml:"path" json:"path,omitempty"`

	Style string     `toml:"style" json:"style,omitempty"`
	Look  *StyleSpec `toml:"look" json:"look,omitempty"`
}

// StyleSpec is a structured alternative to a raw style string. Set fields
// are rendered with the style package and appended to Shape.Style.
type StyleSpec struct {
	LineWidth float64 `toml:"line_width" json:"line_width,omitempty"`
	Draw      string  `toml:"draw" json:"draw,omitempty"`
	Fill      string  `toml:"fill" json:"fill,omitempty"`
	NoLine    bool    `toml:"no_line" json:"no_line,omitempty"`
	Text      string  `toml:"text" json:"text,omitempty"`
	Rounded   float64 `toml:"rounded" json:"rounded,omitempty"`
	Dash      string  `toml:"dash" json:"dash,omitempty"`
	Arrows    string  `toml:"arrows" json:"arrows,omitempty"`
	Anchor    string  `toml:"anchor" json:"anchor,omitempty"`
	TextWidth float64 `toml:"text_width" json:"text_width,omitempty"`
	Align     string  `toml:"align" json:"align,omitempty"`
	FontSize  string  `toml:"font_size" json:"font_size,omitempty"`
	Opacity   float64 `toml:"opacity" json:"opacity,omitempty"`
}

// Group declares a composite of previously declared shapes or groups.
type Group struct {
	ID      string   `toml:"id" json:"id"`
	Members []string `toml:"members" json:"members"`
}

// Op is one layout operation. Which fields are read depends on Op; see
// [Ops].
type Op struct {
	Op      string   `toml:"op" json:"op"`
	Target  string   `toml:"target" json:"target,omitempty"`
	Targets []string `toml:"targets" json:"targets,omitempty"`
	Ref     string   `toml:"ref" json:"ref,omitempty"`

	Anchor    string    `toml:"anchor" json:"anchor,omitempty"`
	RefAnchor string    `toml:"ref_anchor" json:"ref_anchor,omitempty"`
	To        []float64 `toml:"to" json:"to,omitempty"`

	Direction string `toml:"direction" json:"direction,omitempty"`
	Align     string `toml:"align" json:"align,omitempty"`
	Axis      string `toml:"axis" json:"axis,omitempty"`
	Side      string `toml:"side" json:"side,omitempty"`

	DX      float64  `toml:"dx" json:"dx,omitempty"`
	DY      float64  `toml:"dy" json:"dy,omitempty"`
	Spacing float64  `toml:"spacing" json:"spacing,omitempty"`
	Angle   float64  `toml:"angle" json:"angle,omitempty"`
	Factor  float64  `toml:"factor" json:"factor,omitempty"`
	Margin  float64  `toml:"margin" json:"margin,omitempty"`
	Value   *float64 `toml:"value" json:"value,omitempty"`
	X       *float64 `toml:"x" json:"x,omitempty"`
	Y       *float64 `toml:"y" json:"y,omitempty"`

	// frame and connect create a new shape.
	ID    string   `toml:"id" json:"id,omitempty"`
	Style string   `toml:"style" json:"style,omitempty"`
	From  string   `toml:"from" json:"from,omitempty"`
	Mode  string   `toml:"mode" json:"mode,omitempty"`
	Alpha *float64 `toml:"alpha" json:"alpha,omitempty"`
}

// Format identifies a scene encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension. Anything other
// than .json is treated as TOML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Sniff guesses the format of raw scene data: JSON documents start with '{'.
func Sniff(data []byte) Format {
	if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
		return FormatJSON
	}
	return FormatTOML
}

// Decode parses data in the given format. Unknown keys are rejected.
func Decode(data []byte, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "decode JSON scene").WithOp("decode")
		}
	case FormatTOML, "":
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "decode TOML scene").WithOp("decode")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errs.New(errs.ErrCodeInvalidScene, "unknown key %q", undecoded[0].String()).WithOp("decode")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown scene format %q", format).WithOp("decode")
	}
	return &s, nil
}

// Encode serializes s in the given format.
func Encode(s *Scene, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode JSON scene")
		}
	case FormatTOML, "":
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode TOML scene")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	return buf.Bytes(), nil
}
