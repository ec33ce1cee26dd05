package scale

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an sRGB color.
type Color struct {
	R, G, B uint8
}

// ParseHex parses "#rgb" or "#rrggbb".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Darker returns c darkened by k steps, each step scaling every channel by 0.7.
func (c Color) Darker(k float64) Color {
	f := math.Pow(0.7, k)
	return Color{
		R: channel(float64(c.R) * f),
		G: channel(float64(c.G) * f),
		B: channel(float64(c.B) * f),
	}
}

// ColorScale interpolates linearly in RGB between two colors over a domain.
type ColorScale struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]Color   `json:"range"`
}

// NewColorScale returns a color scale over domain.
func NewColorScale(domain [2]float64, from, to Color) ColorScale {
	return ColorScale{Domain: domain, Range: [2]Color{from, to}}
}

// Map returns the interpolated color for x. Channels saturate outside the domain.
func (s ColorScale) Map(x float64) Color {
	t := Linear{Domain: s.Domain, Range: [2]float64{0, 1}}.Normalize(x)
	a, b := s.Range[0], s.Range[1]
	return Color{
		R: channel(lerp(float64(a.R), float64(b.R), t)),
		G: channel(lerp(float64(a.G), float64(b.G), t)),
		B: channel(lerp(float64(a.B), float64(b.B), t)),
	}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
