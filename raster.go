package bubble

import (
	"math"
	"sort"
)

// Scanline rasterizer with vertical supersampling and fractional
// horizontal span coverage. Paths are flattened to polygon edges and
// filled with the non-zero winding rule.

// subSamples is the number of sub-rows sampled per pixel row.
const subSamples = 4

// rasterEdge is a flattened polygon edge prepared for scanline tests.
type rasterEdge struct {
	x0, y0 float64
	x1, y1 float64
	dir    int // +1 edge goes down, -1 edge goes up
}

// pathEdges flattens a path into scanline edges, dropping horizontals.
func pathEdges(p *Path, tolerance float64) []rasterEdge {
	var edges []rasterEdge
	for _, ring := range p.Polygons(tolerance) {
		n := len(ring)
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			dir := 1
			if a.Y > b.Y {
				a, b = b, a
				dir = -1
			}
			edges = append(edges, rasterEdge{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, dir: dir})
		}
	}
	return edges
}

// crossing is one intersection of a sub-scanline with an edge.
type crossing struct {
	x   float64
	dir int
}

// fillEdges rasterizes prepared edges into pm with color c.
func fillEdges(pm *Pixmap, edges []rasterEdge, bbox Rect, c RGBA) {
	if len(edges) == 0 || c.A <= 0 {
		return
	}

	y0 := int(math.Floor(bbox.Min.Y))
	y1 := int(math.Ceil(bbox.Max.Y))
	x0 := int(math.Floor(bbox.Min.X))
	x1 := int(math.Ceil(bbox.Max.X))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > pm.Height() {
		y1 = pm.Height()
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > pm.Width() {
		x1 = pm.Width()
	}
	if y0 >= y1 || x0 >= x1 {
		return
	}

	cover := make([]float64, x1-x0)
	var cross []crossing

	for y := y0; y < y1; y++ {
		for i := range cover {
			cover[i] = 0
		}

		for s := 0; s < subSamples; s++ {
			sy := float64(y) + (float64(s)+0.5)/subSamples

			cross = cross[:0]
			for _, e := range edges {
				if sy < e.y0 || sy >= e.y1 {
					continue
				}
				t := (sy - e.y0) / (e.y1 - e.y0)
				cross = append(cross, crossing{x: e.x0 + t*(e.x1-e.x0), dir: e.dir})
			}
			if len(cross) == 0 {
				continue
			}
			sort.Slice(cross, func(i, j int) bool { return cross[i].x < cross[j].x })

			winding := 0
			var spanStart float64
			for _, cr := range cross {
				prev := winding
				winding += cr.dir
				if prev == 0 && winding != 0 {
					spanStart = cr.x
				} else if prev != 0 && winding == 0 {
					addSpanCoverage(cover, x0, x1, spanStart, cr.x, 1.0/subSamples)
				}
			}
		}

		for i, cv := range cover {
			if cv > 0 {
				if cv > 1 {
					cv = 1
				}
				pm.BlendPixel(x0+i, y, c, cv)
			}
		}
	}
}

// addSpanCoverage accumulates coverage for the horizontal span [xs, xe),
// handling fractional pixel boundaries.
func addSpanCoverage(cover []float64, x0, x1 int, xs, xe, weight float64) {
	if xs < float64(x0) {
		xs = float64(x0)
	}
	if xe > float64(x1) {
		xe = float64(x1)
	}
	if xs >= xe {
		return
	}

	first := int(math.Floor(xs))
	last := int(math.Floor(xe))
	if first == last {
		cover[first-x0] += (xe - xs) * weight
		return
	}

	cover[first-x0] += (float64(first+1) - xs) * weight
	for x := first + 1; x < last; x++ {
		cover[x-x0] += weight
	}
	if last < x1 {
		cover[last-x0] += (xe - float64(last)) * weight
	}
}
