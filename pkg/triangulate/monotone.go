package triangulate

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// triangulateMonotone triangulates a y-monotone counter-clockwise ring
// of indices into pts in linear time, by merging the two descending
// chains and emitting triangles off a stack. The lexicographic above
// order stands in for a slightly rotated sweep line, so horizontal
// runs do not break strict monotonicity.
func triangulateMonotone(pts []v2.Vec, ring []int) []Triangle {
	m := len(ring)
	if m < 3 {
		return nil
	}
	if m == 3 {
		return []Triangle{{ring[0], ring[1], ring[2]}}
	}

	top := 0
	for i := 1; i < m; i++ {
		if above(pts[ring[i]], pts[ring[top]]) {
			top = i
		}
	}

	// Merge the two chains from the top downward. Walking forward from
	// the top descends the left chain of a counter-clockwise ring. The
	// bottom vertex is handled after the main loop.
	sorted := make([]int, 0, m)
	isLeft := make(map[int]bool, m)
	sorted = append(sorted, ring[top])
	lo, ro := 1, 1
	var bottom int
	for {
		l := ring[(top+lo)%m]
		r := ring[(top-ro+m)%m]
		if l == r {
			bottom = l
			break
		}
		if above(pts[l], pts[r]) {
			isLeft[l] = true
			sorted = append(sorted, l)
			lo++
		} else {
			sorted = append(sorted, r)
			ro++
		}
	}

	tris := make([]Triangle, 0, m-2)
	stack := []int{sorted[0], sorted[1]}
	pop := func() int {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	for i := 2; i < len(sorted); i++ {
		p := sorted[i]
		left := isLeft[p]
		if left != isLeft[stack[len(stack)-1]] {
			// Opposite chain: every stacked vertex is visible from p.
			for len(stack) > 0 {
				a := pop()
				if len(stack) > 0 {
					b := stack[len(stack)-1]
					if left {
						tris = append(tris, Triangle{p, a, b})
					} else {
						tris = append(tris, Triangle{a, p, b})
					}
				}
			}
			stack = append(stack, sorted[i-1], p)
			continue
		}

		// Same chain: emit while the diagonal to the stack top stays
		// inside, which the triangle orientation test decides.
		v := pop()
		for len(stack) > 0 {
			topOfStack := stack[len(stack)-1]
			var cand Triangle
			if left {
				cand = Triangle{p, topOfStack, v}
			} else {
				cand = Triangle{p, v, topOfStack}
			}
			if cross(pts[cand[0]], pts[cand[1]], pts[cand[2]]) <= eps {
				break
			}
			tris = append(tris, cand)
			v = pop()
		}
		stack = append(stack, v, p)
	}

	// Connect the bottom vertex to whatever remains on the stack.
	l := pop()
	for len(stack) > 0 {
		p := pop()
		if isLeft[l] {
			tris = append(tris, Triangle{bottom, p, l})
		} else {
			tris = append(tris, Triangle{bottom, l, p})
		}
		l = p
	}
	return tris
}
