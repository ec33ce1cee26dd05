package scale

import "math"

// Radial is an area-true radius scale: equal domain steps cover equal ring
// areas rather than equal radius steps. Internally the range is squared,
// interpolated linearly and the square root taken again.
type Radial struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

// NewRadial returns a radial scale over domain and range.
func NewRadial(domain, rng [2]float64) Radial {
	return Radial{Domain: domain, Range: rng}
}

func (s Radial) squared() Linear {
	return Linear{
		Domain: s.Domain,
		Range:  [2]float64{square(s.Range[0]), square(s.Range[1])},
	}
}

// Map returns the radius for x.
func (s Radial) Map(x float64) float64 {
	return signedSqrt(s.squared().Map(x))
}

// Invert returns the domain value at radius r.
func (s Radial) Invert(r float64) float64 {
	return s.squared().Invert(square(r))
}

// Nice widens the domain to round values and returns the new scale.
func (s Radial) Nice(count int) Radial {
	s.Domain = Nice(s.Domain, count)
	return s
}

// Ticks returns roughly count round values spanning the domain.
func (s Radial) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

func square(x float64) float64 {
	return math.Copysign(x*x, x)
}

func signedSqrt(x float64) float64 {
	return math.Copysign(math.Sqrt(math.Abs(x)), x)
}
