package flechtwerk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Color is a terminal color, either a named color or a 24-bit RGB triple.
// The zero value is the terminal default.
type Color struct {
	Name    string
	R, G, B int32
	RGB     bool
}

// NamedColor returns a color referring to one of tcell's named colors.
func NamedColor(name string) Color {
	return Color{Name: name}
}

// RGBColor returns a 24-bit color.
func RGBColor(r, g, b int32) Color {
	return Color{R: r, G: g, B: b, RGB: true}
}

// Tcell converts the color to its tcell representation.
func (c Color) Tcell() tcell.Color {
	if c.RGB {
		return tcell.NewRGBColor(c.R, c.G, c.B)
	}
	if c.Name == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(c.Name)
}

func (c Color) String() string {
	if c.RGB {
		return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
	}
	return c.Name
}

// ParseColor parses a color value from a declarative file. Accepted forms
// are a color name ("red") or an "r,g,b" triple with components in 0-255.
func ParseColor(raw string) (Color, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("rgb color needs 3 components, got %d", len(parts))
		}
		rgb := make([]int32, 3)
		for i, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 0 || n > 255 {
				return Color{}, fmt.Errorf("rgb component %q out of range", part)
			}
			rgb[i] = int32(n)
		}
		return RGBColor(rgb[0], rgb[1], rgb[2]), nil
	}
	if tcell.GetColor(raw) == tcell.ColorDefault && raw != "default" {
		return Color{}, fmt.Errorf("unknown color name %q", raw)
	}
	return NamedColor(raw), nil
}

// ParseBool parses a bool value ("true" or "false", case-insensitive).
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("bool must be true or false, got %q", raw)
}

// SizeHint is a fractional size relative to the parent. None means the
// widget is sized explicitly or by auto scaling.
type SizeHint struct {
	None     bool
	Fraction float64
}

// DefaultSizeHint is the hint every widget starts with: fill the parent.
func DefaultSizeHint() SizeHint {
	return SizeHint{Fraction: 1.0}
}

// NoSizeHint disables fractional sizing.
func NoSizeHint() SizeHint {
	return SizeHint{None: true}
}

func (h SizeHint) String() string {
	if h.None {
		return "none"
	}
	return strconv.FormatFloat(h.Fraction, 'g', -1, 64)
}

// ParseSizeHint parses "none", a decimal fraction, or a "p/q" ratio.
func ParseSizeHint(raw string) (SizeHint, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "none") {
		return NoSizeHint(), nil
	}
	if num, den, found := strings.Cut(raw, "/"); found {
		p, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		q, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil || q == 0 {
			return SizeHint{}, fmt.Errorf("invalid ratio %q", raw)
		}
		return SizeHint{Fraction: p / q}, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f > 1 {
		return SizeHint{}, fmt.Errorf("size hint must be in [0,1], got %q", raw)
	}
	return SizeHint{Fraction: f}, nil
}

// HAlign and VAlign are the horizontal and vertical alignment anchors.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// ParseHAlign parses "left", "center" or "right".
func ParseHAlign(raw string) (HAlign, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("invalid horizontal alignment %q", raw)
}

type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

func (a VAlign) String() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	}
	return "top"
}

// ParseVAlign parses "top", "middle" or "bottom".
func ParseVAlign(raw string) (VAlign, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "top":
		return AlignTop, nil
	case "middle":
		return AlignMiddle, nil
	case "bottom":
		return AlignBottom, nil
	}
	return AlignTop, fmt.Errorf("invalid vertical alignment %q", raw)
}

// HPosHint positions a widget horizontally relative to its parent: the
// anchor gives the base position, the fraction scales it. (center, 1.0)
// means the exact center, (right, 0.5) half way towards the right edge.
type HPosHint struct {
	None     bool
	Anchor   HAlign
	Fraction float64
}

func (h HPosHint) String() string {
	if h.None {
		return "none"
	}
	return fmt.Sprintf("%s:%s", h.Anchor, strconv.FormatFloat(h.Fraction, 'g', -1, 64))
}

// ParseHPosHint parses "none", an anchor keyword, or "anchor:fraction".
func ParseHPosHint(raw string) (HPosHint, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "none") {
		return HPosHint{None: true}, nil
	}
	keyword, fraction := raw, 1.0
	if k, f, found := strings.Cut(raw, ":"); found {
		keyword = k
		parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return HPosHint{}, fmt.Errorf("invalid pos hint fraction %q", f)
		}
		fraction = parsed
	}
	anchor, err := ParseHAlign(keyword)
	if err != nil {
		return HPosHint{}, err
	}
	return HPosHint{Anchor: anchor, Fraction: fraction}, nil
}

// VPosHint is the vertical counterpart of HPosHint.
type VPosHint struct {
	None     bool
	Anchor   VAlign
	Fraction float64
}

func (h VPosHint) String() string {
	if h.None {
		return "none"
	}
	return fmt.Sprintf("%s:%s", h.Anchor, strconv.FormatFloat(h.Fraction, 'g', -1, 64))
}

// ParseVPosHint parses "none", an anchor keyword, or "anchor:fraction".
func ParseVPosHint(raw string) (VPosHint, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "none") {
		return VPosHint{None: true}, nil
	}
	keyword, fraction := raw, 1.0
	if k, f, found := strings.Cut(raw, ":"); found {
		keyword = k
		parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return VPosHint{}, fmt.Errorf("invalid pos hint fraction %q", f)
		}
		fraction = parsed
	}
	anchor, err := ParseVAlign(keyword)
	if err != nil {
		return VPosHint{}, err
	}
	return VPosHint{Anchor: anchor, Fraction: fraction}, nil
}

// ParseIntPair parses a "W,H" style pair value.
func ParseIntPair(raw string) (int, int, error) {
	first, second, found := strings.Cut(raw, ",")
	if !found {
		return 0, 0, fmt.Errorf("pair value needs two comma separated parts, got %q", raw)
	}
	a, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
