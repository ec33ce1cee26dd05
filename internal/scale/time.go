package scale

import "time"

// Time maps instants onto a continuous range.
type Time struct {
	Domain [2]time.Time `json:"domain"`
	Range  [2]float64   `json:"range"`
}

// NewTime returns a time scale over domain and range.
func NewTime(domain [2]time.Time, rng [2]float64) Time {
	return Time{Domain: domain, Range: rng}
}

func (s Time) linear() Linear {
	return Linear{
		Domain: [2]float64{unixMilli(s.Domain[0]), unixMilli(s.Domain[1])},
		Range:  s.Range,
	}
}

// Map returns the range position of t.
func (s Time) Map(t time.Time) float64 {
	return s.linear().Map(unixMilli(t))
}

// Invert returns the instant at range position y, truncated to the millisecond.
func (s Time) Invert(y float64) time.Time {
	ms := s.linear().Invert(y)
	return time.UnixMilli(int64(ms)).UTC()
}

func unixMilli(t time.Time) float64 {
	return float64(t.UnixMilli())
}
