package bubble

import "math"

// Boolean union of filled paths. Paths are flattened to polygons, edges are
// split at pairwise intersections, fragments strictly inside the other
// region are discarded and the survivors are stitched back into closed
// contours. The result traces the outer boundary of the combined region,
// so two overlapping shapes merge into one seamless outline.

// unionTolerance is the flattening tolerance used for boolean operations.
// A quarter pixel keeps the polygonal approximation invisible at 1:1 scale.
const unionTolerance = 0.25

// Union returns a path tracing the boundary of the union of a and b.
// Disjoint inputs yield a path with one contour per input.
func Union(a, b *Path) *Path {
	if a == nil || a.IsEmpty() {
		if b == nil {
			return NewPath()
		}
		return b.Clone()
	}
	if b == nil || b.IsEmpty() {
		return a.Clone()
	}

	ra := newPolyRegion(a)
	rb := newPolyRegion(b)

	frags := ra.fragmentsOutside(rb)
	frags = append(frags, rb.fragmentsOutside(ra)...)

	return stitchFragments(frags)
}

// UnionAll folds Union over all paths from left to right.
func UnionAll(paths ...*Path) *Path {
	result := NewPath()
	for _, p := range paths {
		result = Union(result, p)
	}
	return result
}

// polyRegion is a filled area described by flattened polygon rings.
// Rings are normalized to positive (counter-clockwise in y-down
// coordinates) orientation so fragment direction is consistent.
type polyRegion struct {
	rings [][]Point
}

func newPolyRegion(p *Path) polyRegion {
	rings := p.Polygons(unionTolerance)
	for i, ring := range rings {
		if ringArea(ring) < 0 {
			reversePoints(ring)
			rings[i] = ring
		}
	}
	return polyRegion{rings: rings}
}

// contains tests pt against all rings with the non-zero winding rule.
func (r polyRegion) contains(pt Point) bool {
	var winding int
	for _, ring := range r.rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			winding += lineWinding(ring[i], ring[(i+1)%n], pt)
		}
	}
	return winding != 0
}

// fragment is a directed boundary piece that survives the clip.
type fragment struct {
	a, b Point
}

// fragmentsOutside splits every edge of r at its intersections with other
// and keeps the pieces whose midpoint lies outside other.
func (r polyRegion) fragmentsOutside(other polyRegion) []fragment {
	var frags []fragment
	for _, ring := range r.rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			p0 := ring[i]
			p1 := ring[(i+1)%n]

			ts := []float64{0, 1}
			for _, oring := range other.rings {
				m := len(oring)
				for j := 0; j < m; j++ {
					if t, ok := segmentIntersection(p0, p1, oring[j], oring[(j+1)%m]); ok {
						ts = append(ts, t)
					}
				}
			}
			sortFloats(ts)

			for k := 0; k+1 < len(ts); k++ {
				t0, t1 := ts[k], ts[k+1]
				if t1-t0 < 1e-9 {
					continue
				}
				a := p0.Lerp(p1, t0)
				b := p0.Lerp(p1, t1)
				if !other.contains(a.Lerp(b, 0.5)) {
					frags = append(frags, fragment{a: a, b: b})
				}
			}
		}
	}
	return frags
}

// segmentIntersection returns the parameter on (p0, p1) where it crosses
// (q0, q1), if the segments properly intersect.
func segmentIntersection(p0, p1, q0, q1 Point) (float64, bool) {
	r := p1.Sub(p0)
	s := q1.Sub(q0)
	den := r.Cross(s)
	if math.Abs(den) < 1e-12 {
		return 0, false // parallel or degenerate
	}
	qp := q0.Sub(p0)
	t := qp.Cross(s) / den
	u := qp.Cross(r) / den
	const eps = 1e-9
	if t <= eps || t >= 1-eps || u < -eps || u > 1+eps {
		return 0, false
	}
	return t, true
}

// stitchFragments chains directed fragments end to start into closed
// contours. Both input regions share the same orientation, so each
// fragment's end point meets exactly one other fragment's start point.
func stitchFragments(frags []fragment) *Path {
	const eps = 1e-6

	result := NewPath()
	used := make([]bool, len(frags))

	for i := range frags {
		if used[i] {
			continue
		}
		used[i] = true
		start := frags[i].a
		result.MoveTo(start.X, start.Y)
		cursor := frags[i].b

		for cursor.Distance(start) > eps {
			result.LineTo(cursor.X, cursor.Y)

			next := -1
			best := eps
			for j := range frags {
				if used[j] {
					continue
				}
				if d := frags[j].a.Distance(cursor); d <= best {
					next = j
					best = d
				}
			}
			if next < 0 {
				break // open chain, close what we have
			}
			used[next] = true
			cursor = frags[next].b
		}
		result.Close()
	}

	return result
}

// ringArea returns the signed shoelace area of a polygon ring.
func ringArea(ring []Point) float64 {
	var area float64
	n := len(ring)
	for i := 0; i < n; i++ {
		area += lineArea(ring[i], ring[(i+1)%n])
	}
	return area
}

func reversePoints(pts []Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func sortFloats(xs []float64) {
	// Insertion sort; intersection lists are tiny.
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
