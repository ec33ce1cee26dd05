package pack

import (
	"errors"
	"math"
)

var errNoBasis = errors.New("pack: no enclosing basis")

// lcg returns a deterministic generator in [0, 1).
func lcg() func() float64 {
	const (
		a = 1664525
		c = 1013904223
		m = 4294967296
	)
	s := uint64(1)
	return func() float64 {
		s = (a*s + c) % m
		return float64(s) / m
	}
}

func shuffle(cs []circle, rnd func() float64) {
	for m := len(cs); m > 0; {
		i := int(rnd() * float64(m))
		m--
		cs[m], cs[i] = cs[i], cs[m]
	}
}

// enclose returns the smallest circle enclosing all of cs.
func enclose(cs []circle, rnd func() float64) (circle, error) {
	cs = append([]circle(nil), cs...)
	shuffle(cs, rnd)

	var (
		basis []circle
		e     circle
		have  bool
	)
	for i := 0; i < len(cs); {
		p := cs[i]
		if have && enclosesWeak(e, p) {
			i++
			continue
		}
		next, err := extendBasis(basis, p)
		if err != nil {
			return circle{}, err
		}
		basis = next
		e = encloseBasis(basis)
		have = true
		i = 0
	}
	return e, nil
}

func extendBasis(basis []circle, p circle) ([]circle, error) {
	if enclosesWeakAll(p, basis) {
		return []circle{p}, nil
	}

	for _, b := range basis {
		if enclosesNot(p, b) && enclosesWeakAll(encloseBasis2(b, p), basis) {
			return []circle{b, p}, nil
		}
	}

	for i := 0; i < len(basis)-1; i++ {
		for j := i + 1; j < len(basis); j++ {
			bi, bj := basis[i], basis[j]
			if enclosesNot(encloseBasis2(bi, bj), p) &&
				enclosesNot(encloseBasis2(bi, p), bj) &&
				enclosesNot(encloseBasis2(bj, p), bi) &&
				enclosesWeakAll(encloseBasis3(bi, bj, p), basis) {
				return []circle{bi, bj, p}, nil
			}
		}
	}
	return nil, errNoBasis
}

func enclosesNot(a, b circle) bool {
	dr := a.r - b.r
	dx, dy := b.x-a.x, b.y-a.y
	return dr < 0 || dr*dr < dx*dx+dy*dy
}

func enclosesWeak(a, b circle) bool {
	dr := a.r - b.r + math.Max(math.Max(a.r, b.r), 1)*1e-9
	dx, dy := b.x-a.x, b.y-a.y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

func enclosesWeakAll(a circle, basis []circle) bool {
	for _, b := range basis {
		if !enclosesWeak(a, b) {
			return false
		}
	}
	return true
}

func encloseBasis(basis []circle) circle {
	switch len(basis) {
	case 1:
		return basis[0]
	case 2:
		return encloseBasis2(basis[0], basis[1])
	default:
		return encloseBasis3(basis[0], basis[1], basis[2])
	}
}

func encloseBasis2(a, b circle) circle {
	x21, y21, r21 := b.x-a.x, b.y-a.y, b.r-a.r
	l := math.Sqrt(x21*x21 + y21*y21)
	return circle{
		x: (a.x + b.x + x21/l*r21) / 2,
		y: (a.y + b.y + y21/l*r21) / 2,
		r: (l + a.r + b.r) / 2,
	}
}

func encloseBasis3(a, b, c circle) circle {
	x1, y1, r1 := a.x, a.y, a.r
	x2, y2, r2 := b.x, b.y, b.r
	x3, y3, r3 := c.x, c.y, c.r

	a2, a3 := x1-x2, x1-x3
	b2, b3 := y1-y2, y1-y3
	c2, c3 := r2-r1, r3-r1
	d1 := x1*x1 + y1*y1 - r1*r1
	d2 := d1 - x2*x2 - y2*y2 + r2*r2
	d3 := d1 - x3*x3 - y3*y3 + r3*r3
	ab := a3*b2 - a2*b3
	xa := (b2*d3-b3*d2)/(ab*2) - x1
	xb := (b3*c2 - b2*c3) / ab
	ya := (a3*d2-a2*d3)/(ab*2) - y1
	yb := (a2*c3 - a3*c2) / ab
	qa := xb*xb + yb*yb - 1
	qb := 2 * (r1 + xa*xb + ya*yb)
	qc := xa*xa + ya*ya - r1*r1

	var r float64
	if math.Abs(qa) > 1e-6 {
		r = -(qb + math.Sqrt(qb*qb-4*qa*qc)) / (2 * qa)
	} else {
		r = -qc / qb
	}
	return circle{x: x1 + xa + xb*r, y: y1 + ya + yb*r, r: r}
}
