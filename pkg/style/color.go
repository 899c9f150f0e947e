package style

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
)

// Color is an 8-bit RGB triple, as used by \definecolor{...}{RGB}{...}.
type Color struct {
	R, G, B uint8
}

// RGB returns the color with the given components.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, errs.New(errs.ErrCodeInvalidColor, "invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, errs.Wrap(errs.ErrCodeInvalidColor, err, "invalid hex color %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// FromInts converts a validated component list to a Color.
func FromInts(name string, rgb []int) (Color, error) {
	if err := errs.ValidateRGB(name, rgb); err != nil {
		return Color{}, err
	}
	return Color{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2])}, nil
}

// Palette returns the named colors of the Google Slides color picker.
// Names are valid TeX color names.
func Palette() map[string]Color {
	return map[string]Color{
		"black":           {0, 0, 0},
		"dark_gray_4":     {67, 67, 67},
		"dark_gray_3":     {102, 102, 102},
		"dark_gray_2":     {153, 153, 153},
		"dark_gray_1":     {183, 183, 183},
		"gray":            {204, 204, 204},
		"light_gray_1":    {217, 217, 217},
		"light_gray_2":    {239, 239, 239},
		"light_gray_3":    {243, 243, 243},
		"white":           {255, 255, 255},
		"red_berry":       {152, 0, 0},
		"red":             {255, 0, 0},
		"orange":          {255, 153, 0},
		"yellow":          {255, 255, 0},
		"green":           {0, 255, 0},
		"cyan":            {0, 255, 255},
		"cornflower_blue": {74, 134, 232},
		"blue":            {0, 0, 255},
		"purple":          {153, 0, 255},
		"magenta":         {255, 0, 255},
	}
}
