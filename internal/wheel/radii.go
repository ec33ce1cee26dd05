package wheel

import "math"

// Radii are the concentric bands of the wheel, derived from the chart size.
//
//	Max     half of the smaller chart dimension
//	Inner   28% of Max, the summary area
//	Bubble  12% of Max, the largest precipitation bubble
//	Outer   Max minus two bubbles and the label band
type Radii struct {
	Max    float64 `json:"max"`
	Inner  float64 `json:"inner"`
	Outer  float64 `json:"outer"`
	Bubble float64 `json:"bubble"`
	Label  float64 `json:"label"`
}

// NewRadii derives the radii for a width × height chart with a label band of the given width.
func NewRadii(width, height, label float64) Radii {
	m := math.Min(width, height) / 2
	bubble := m * 0.12
	return Radii{
		Max:    m,
		Inner:  m * 0.28,
		Outer:  m - bubble*2 - label,
		Bubble: bubble,
		Label:  label,
	}
}

// PackSide is the side of the square the condition summary is packed into.
func (r Radii) PackSide() float64 {
	return 2 * r.Inner
}
