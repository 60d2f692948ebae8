package bubble

import (
	"fmt"
	"math"
)

// Style selects the bubble silhouette and its paint behavior.
type Style uint8

const (
	// StyleOval is the classic speech bubble: an organic cubic-Bezier oval
	// with a wedge tail.
	StyleOval Style = iota
	// StyleCloud is a thought bubble: nine circles merged into one
	// silhouette, with a separate chain of thought dots toward the tail tip.
	StyleCloud
	// StyleRect is a rounded-corner caption box without a tail.
	StyleRect
	// StyleSpiky is a shout/explosion starburst with a wedge tail.
	StyleSpiky
	// StyleText is free-floating text with no background shape.
	StyleText
	// StyleScrim is a full-width semi-transparent strip with sharp corners.
	StyleScrim
	// StyleCaption is stroke-outlined overlay text with no background shape.
	StyleCaption
)

var styleNames = [...]string{"oval", "cloud", "rect", "spiky", "text", "scrim", "caption"}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle converts a style name to its Style value.
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("bubble: unknown style %q", name)
}

// HasTail reports whether the style renders a tail (wedge or thought dots).
func (s Style) HasTail() bool {
	switch s {
	case StyleText, StyleRect, StyleScrim, StyleCaption:
		return false
	}
	return true
}

// rectCornerRadius is the corner radius of the rounded caption box.
const rectCornerRadius = 16

// tailHalfWidth is half the wedge width at the bubble centre; the wedge
// tapers to a point at the tip.
const tailHalfWidth = 13

// BodyPath builds the closed body outline for a style within r.
// StyleText and StyleCaption have no painted background; their body path is
// the plain ellipse used for hit testing.
func BodyPath(style Style, r Rect) *Path {
	p := NewPath()
	switch style {
	case StyleOval:
		return organicOvalPath(r)
	case StyleCloud:
		return CloudPath(r)
	case StyleSpiky:
		return spikyPath(r)
	case StyleRect:
		p.RoundedRectangle(r.Min.X, r.Min.Y, r.Width(), r.Height(), rectCornerRadius)
	case StyleScrim:
		// Sharp corners for the full-width strip.
		p.Rectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
	default:
		c := r.Center()
		p.Ellipse(c.X, c.Y, r.Width()/2, r.Height()/2)
	}
	return p
}

// OutlinePath builds the renderable outline: for tailed wedge styles the
// body and tail are united into one path so the border traces a single
// seamless boundary. Cloud bodies exclude the dots; use ThoughtDots.
func OutlinePath(style Style, r Rect, tip Point) *Path {
	body := BodyPath(style, r)
	switch style {
	case StyleOval, StyleSpiky:
		return Union(body, TailWedge(r, tip))
	}
	return body
}

// organicOvalPath builds a smooth oval from four cubic Beziers. More
// organic than a mathematically exact ellipse.
func organicOvalPath(r Rect) *Path {
	c := r.Center()
	cx, cy := c.X, c.Y
	w2, h2 := r.Width()/2, r.Height()/2
	const k = 0.5523

	p := NewPath()
	p.MoveTo(cx, cy-h2) // top centre
	p.CubicTo(cx+w2*k, cy-h2, cx+w2, cy-h2*k, cx+w2, cy)
	p.CubicTo(cx+w2, cy+h2*k, cx+w2*k, cy+h2, cx, cy+h2)
	p.CubicTo(cx-w2*k, cy+h2, cx-w2, cy+h2*k, cx-w2, cy)
	p.CubicTo(cx-w2, cy-h2*k, cx-w2*k, cy-h2, cx, cy-h2)
	p.Close()
	return p
}

// TailWedge builds the triangular wedge from the body centre to tip.
// United with the body, only the exterior part remains visible, giving a
// narrow manga-style tail emerging from the bubble edge. A tip on the
// centre degenerates to direction (1, 0).
func TailWedge(r Rect, tip Point) *Path {
	c := r.Center()
	d := tip.Sub(c)
	dist := d.Length()
	if dist == 0 {
		dist = 1
	}
	// Perpendicular unit vector
	nx, ny := d.Y/dist, -d.X/dist

	p := NewPath()
	p.MoveTo(c.X+nx*tailHalfWidth, c.Y+ny*tailHalfWidth)
	p.LineTo(tip.X, tip.Y)
	p.LineTo(c.X-nx*tailHalfWidth, c.Y-ny*tailHalfWidth)
	p.Close()
	return p
}

// cloudBumps is the fixed cloud layout: fraction-x, fraction-y and
// radius as a fraction of the smaller body dimension.
var cloudBumps = [9][3]float64{
	{0.14, 0.62, 0.22},
	{0.28, 0.42, 0.28},
	{0.48, 0.34, 0.31},
	{0.68, 0.42, 0.28},
	{0.84, 0.62, 0.22},
	{0.80, 0.78, 0.23},
	{0.62, 0.84, 0.26},
	{0.38, 0.84, 0.26},
	{0.18, 0.78, 0.21},
}

// CloudPath builds the thought-cloud silhouette: nine circles united
// progressively into one path so the border traces the outer edge only,
// with no internal rings.
func CloudPath(r Rect) *Path {
	w, h := r.Width(), r.Height()
	minDim := math.Min(w, h)

	path := NewPath()
	for _, b := range cloudBumps {
		bump := NewPath()
		bump.Circle(r.Min.X+b[0]*w, r.Min.Y+b[1]*h, b[2]*minDim)
		path = Union(path, bump)
	}
	return path
}

// spikyPath builds a starburst with 18 spikes of varying height.
func spikyPath(r Rect) *Path {
	c := r.Center()
	rx, ry := r.Width()/2, r.Height()/2
	const spikes = 18

	p := NewPath()
	for i := 0; i < spikes*2; i++ {
		angle := math.Pi*float64(i)/spikes - math.Pi/2
		var px, py float64
		if i%2 == 0 {
			// Spike tip, outer radius varies for an organic look
			variation := 1.0 + 0.22*math.Sin(float64(i)*1.9+0.8)
			px = c.X + math.Cos(angle)*rx*variation
			py = c.Y + math.Sin(angle)*ry*variation
		} else {
			// Valley between spikes
			px = c.X + math.Cos(angle)*rx*0.64
			py = c.Y + math.Sin(angle)*ry*0.64
		}
		if i == 0 {
			p.MoveTo(px, py)
		} else {
			p.LineTo(px, py)
		}
	}
	p.Close()
	return p
}

// CloudEdgeDistance binary-searches the distance from the body centre at
// which the ray toward tip exits the cloud silhouette. Direction-aware, so
// thought dots start just outside the cloud for any tail angle.
func CloudEdgeDistance(r Rect, tip Point) float64 {
	c := r.Center()
	d := tip.Sub(c)
	dist := d.Length()
	if dist == 0 {
		dist = 1
	}
	u := d.Mul(1 / dist)

	cloud := CloudPath(r)
	maxSearch := math.Min(dist, math.Max(r.Width(), r.Height()))

	lo, hi := 0.0, maxSearch
	for i := 0; i < 20; i++ { // 20 iterations, sub-pixel precision
		mid := (lo + hi) / 2
		if cloud.Contains(c.Add(u.Mul(mid))) {
			lo = mid // still inside cloud
		} else {
			hi = mid // already outside
		}
	}
	return hi + 6 // gap so the first dot is clearly outside
}

// ThoughtDot is one circle of the thought-bubble dot chain.
type ThoughtDot struct {
	Center Point
	Radius float64
}

// ThoughtDots places the dot chain from the cloud edge toward tip. Dots
// scale in size and spacing with the available tail length: a short tail
// shows a couple of small dots, a long tail up to five larger ones.
func ThoughtDots(r Rect, tip Point) []ThoughtDot {
	c := r.Center()
	d := tip.Sub(c)
	dist := d.Length()
	if dist == 0 {
		dist = 1
	}
	u := d.Mul(1 / dist)

	edge := CloudEdgeDistance(r, tip)
	available := math.Max(0, dist-edge-8) // margin before the tip

	if available < 10 {
		return nil // tail too short for any dots
	}

	// 1.0 at 60 px of tail, up to 2.2 at >= 240 px
	scale := math.Min(2.2, math.Max(0.7, available/60))

	// (fraction of available length, base radius); radii shrink toward tip
	specs := [][2]float64{{0.12, 11}, {0.38, 8}, {0.60, 6}}
	if available > 80 {
		specs = append(specs, [2]float64{0.75, 4})
	}
	if available > 140 {
		specs = append(specs, [2]float64{0.87, 3})
	}

	var dots []ThoughtDot
	for _, s := range specs {
		rad := math.Max(2, math.Trunc(s[1]*scale))
		dd := edge + s[0]*available
		if dd+rad > dist-5 { // don't overlap the tip
			break
		}
		dots = append(dots, ThoughtDot{Center: c.Add(u.Mul(dd)), Radius: rad})
	}
	return dots
}
