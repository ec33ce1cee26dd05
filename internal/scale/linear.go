package scale

import "math"

// Linear maps a continuous domain onto a continuous range.
// Values outside the domain are extrapolated unless Clamp is set.
type Linear struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
	Clamp  bool       `json:"clamp,omitempty"`
}

// NewLinear returns an unclamped linear scale.
func NewLinear(domain, rng [2]float64) Linear {
	return Linear{Domain: domain, Range: rng}
}

// Normalize returns the position of x within the domain, 0 at Domain[0] and 1 at Domain[1].
// A degenerate domain maps everything to 0.5.
func (s Linear) Normalize(x float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	span := d1 - d0
	if math.IsNaN(span) {
		return math.NaN()
	}
	if span == 0 {
		return 0.5
	}
	t := (x - d0) / span
	if s.Clamp {
		t = clamp01(t)
	}
	return t
}

// Map converts a domain value into the range.
func (s Linear) Map(x float64) float64 {
	return lerp(s.Range[0], s.Range[1], s.Normalize(x))
}

// Invert converts a range value back into the domain.
func (s Linear) Invert(y float64) float64 {
	inv := Linear{Domain: s.Range, Range: s.Domain, Clamp: s.Clamp}
	return inv.Map(y)
}

// Nice widens the domain to round values and returns the new scale.
func (s Linear) Nice(count int) Linear {
	s.Domain = Nice(s.Domain, count)
	return s
}

// Ticks returns roughly count round values spanning the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

// Extent returns the minimum and maximum of values. ok is false for an empty slice.
func Extent(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
