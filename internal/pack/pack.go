package pack

import (
	"errors"
	"math"
)

var (
	// ErrInvalidBounds is returned for a non-positive side or a negative padding.
	ErrInvalidBounds = errors.New("pack: side must be positive and padding non-negative")

	// ErrPaddingTooLarge is returned when the padding leaves no room for the circles.
	ErrPaddingTooLarge = errors.New("pack: padding too large for bounding square")
)

const maxPaddingIterations = 64

// Circle is a placed circle in the coordinate system of the bounding square,
// whose top-left corner is the origin.
type Circle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Pack returns one circle per weight, in input order, inside a side × side square.
// Circle areas are proportional to the weights. Neighbouring circles are at least
// padding apart and every circle keeps padding from the inscribed circle of the
// square. The result depends only on the arguments.
func Pack(weights []float64, side, padding float64) ([]Circle, error) {
	if !(side > 0) || !(padding >= 0) || math.IsInf(side, 0) {
		return nil, ErrInvalidBounds
	}

	half := side / 2
	switch len(weights) {
	case 0:
		return []Circle{}, nil
	case 1:
		r := half - padding
		if r <= 0 {
			return nil, ErrPaddingTooLarge
		}
		if !(weights[0] > 0) {
			r = 0
		}
		return []Circle{{X: half, Y: half, R: r}}, nil
	}

	radii := make([]float64, len(weights))
	for i, w := range weights {
		radii[i] = math.Sqrt(math.Max(w, 0))
	}

	cs, e, err := layout(radii, 0)
	if err != nil {
		return nil, err
	}
	if padding == 0 {
		return fit(cs, radii, half/e, half), nil
	}
	if padding >= half {
		return nil, ErrPaddingTooLarge
	}

	// Inflate every circle by h before packing. After scaling by s the gap
	// between neighbours is 2hs; grow h until that gap reaches the padding.
	target := padding * (1 + 1e-9)
	h := padding * e / (side - padding)
	for range maxPaddingIterations {
		cs, e, err = layout(radii, h)
		if err != nil {
			return nil, err
		}
		s := half / (e + h)
		gap := 2 * h * s
		if gap >= padding {
			return fit(cs, radii, s, half), nil
		}
		h *= target / gap
	}
	return nil, ErrPaddingTooLarge
}

// layout packs circles of radius r+inflate around the origin and returns them
// with the radius of their enclosing circle.
func layout(radii []float64, inflate float64) ([]*circle, float64, error) {
	cs := make([]*circle, len(radii))
	for i, r := range radii {
		cs[i] = &circle{r: r + inflate}
	}
	e, err := packSiblings(cs, lcg())
	if err != nil {
		return nil, 0, err
	}
	return cs, e, nil
}

func fit(cs []*circle, radii []float64, s, half float64) []Circle {
	out := make([]Circle, len(cs))
	for i, c := range cs {
		out[i] = Circle{X: half + c.x*s, Y: half + c.y*s, R: radii[i] * s}
	}
	return out
}
