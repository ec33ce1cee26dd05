package pack

import "math"

type circle struct {
	x, y, r float64
}

type chainNode struct {
	c          *circle
	next, prev *chainNode
}

// place positions c tangent to both a and b.
func place(b, a, c *circle) {
	dx, dy := b.x-a.x, b.y-a.y
	d2 := dx*dx + dy*dy
	if d2 == 0 {
		c.x = a.x + c.r
		c.y = a.y
		return
	}

	a2 := a.r + c.r
	a2 *= a2
	b2 := b.r + c.r
	b2 *= b2
	if a2 > b2 {
		x := (d2 + b2 - a2) / (2 * d2)
		y := math.Sqrt(math.Max(0, b2/d2-x*x))
		c.x = b.x - x*dx - y*dy
		c.y = b.y - x*dy + y*dx
		return
	}
	x := (d2 + a2 - b2) / (2 * d2)
	y := math.Sqrt(math.Max(0, a2/d2-x*x))
	c.x = a.x + x*dx - y*dy
	c.y = a.y + x*dy + y*dx
}

func intersects(a, b *circle) bool {
	dr := a.r + b.r - 1e-6
	dx, dy := b.x-a.x, b.y-a.y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

// score is the squared distance from the origin to the weighted midpoint of a node and its successor.
func score(n *chainNode) float64 {
	a, b := n.c, n.next.c
	ab := a.r + b.r
	dx := (a.x*b.r + b.x*a.r) / ab
	dy := (a.y*b.r + b.y*a.r) / ab
	return dx*dx + dy*dy
}

// packSiblings places circles tangentially around the origin and returns the
// radius of their enclosing circle. Circles are translated so that enclosing
// circle is centered on the origin.
func packSiblings(circles []*circle, rnd func() float64) (float64, error) {
	n := len(circles)
	if n == 0 {
		return 0, nil
	}

	a := circles[0]
	a.x, a.y = 0, 0
	if n == 1 {
		return a.r, nil
	}

	b := circles[1]
	a.x = -b.r
	b.x, b.y = a.r, 0
	if n == 2 {
		return a.r + b.r, nil
	}

	place(b, a, circles[2])

	na := &chainNode{c: a}
	nb := &chainNode{c: b}
	nc := &chainNode{c: circles[2]}
	na.next, nc.prev = nb, nb
	nb.next, na.prev = nc, nc
	nc.next, nb.prev = na, na

pack:
	for i := 3; i < n; i++ {
		place(na.c, nb.c, circles[i])
		nc = &chainNode{c: circles[i]}

		// Find the closest intersecting circle on the front chain, measuring
		// closeness by distance along the chain in both directions.
		j, k := nb.next, na.prev
		sj, sk := nb.c.r, na.c.r
		for {
			if sj <= sk {
				if intersects(j.c, nc.c) {
					nb = j
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sj += j.c.r
				j = j.next
			} else {
				if intersects(k.c, nc.c) {
					na = k
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sk += k.c.r
				k = k.prev
			}
			if j == k.next {
				break
			}
		}

		nc.prev, nc.next = na, nb
		na.next = nc
		nb.prev = nc
		nb = nc

		// Pick the pair closest to the centroid as the next insertion point.
		best := score(na)
		for c := nc.next; c != nb; c = c.next {
			if s := score(c); s < best {
				na, best = c, s
			}
		}
		nb = na.next
	}

	chain := []circle{*nb.c}
	for c := nb.next; c != nb; c = c.next {
		chain = append(chain, *c.c)
	}
	e, err := enclose(chain, rnd)
	if err != nil {
		return 0, err
	}

	for _, c := range circles {
		c.x -= e.x
		c.y -= e.y
	}
	return e.r, nil
}
