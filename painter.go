package bubble

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Painter draws vector shapes and images into a Pixmap.
type Painter struct {
	pm *Pixmap
}

// NewPainter creates a painter targeting pm.
func NewPainter(pm *Pixmap) *Painter {
	return &Painter{pm: pm}
}

// Pixmap returns the painter's target buffer.
func (pt *Painter) Pixmap() *Pixmap {
	return pt.pm
}

// rasterTolerance is the curve flattening tolerance for drawing.
const rasterTolerance = 0.25

// FillPath fills a path with the non-zero winding rule.
func (pt *Painter) FillPath(p *Path, c RGBA) {
	if p == nil || p.IsEmpty() {
		return
	}
	edges := pathEdges(p, rasterTolerance)
	fillEdges(pt.pm, edges, p.BoundingBox(), c)
}

// StrokePath strokes a path's outline with the given width and round
// caps/joins. The stroke cover is built as one path (a quad per segment
// plus a disc per vertex) and filled in a single pass, so overlapping
// pieces of translucent strokes do not double-blend.
func (pt *Painter) StrokePath(p *Path, c RGBA, width float64) {
	if p == nil || p.IsEmpty() || width <= 0 {
		return
	}
	half := width / 2

	outline := NewPath()
	for _, ring := range p.Polygons(rasterTolerance) {
		n := len(ring)
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[(i+1)%n]
			d := b.Sub(a)
			if d.LengthSquared() == 0 {
				continue
			}
			nrm := d.Normalize().Perp().Mul(half)
			outline.MoveTo(a.X+nrm.X, a.Y+nrm.Y)
			outline.LineTo(b.X+nrm.X, b.Y+nrm.Y)
			outline.LineTo(b.X-nrm.X, b.Y-nrm.Y)
			outline.LineTo(a.X-nrm.X, a.Y-nrm.Y)
			outline.Close()
			outline.Circle(b.X, b.Y, half)
		}
	}

	edges := pathEdges(outline, rasterTolerance)
	fillEdges(pt.pm, edges, outline.BoundingBox(), c)
}

// FillCircle fills a circle, used for thought dots and tail handles.
func (pt *Painter) FillCircle(center Point, r float64, c RGBA) {
	p := NewPath()
	p.Circle(center.X, center.Y, r)
	pt.FillPath(p, c)
}

// StrokeCircle strokes a circle outline.
func (pt *Painter) StrokeCircle(center Point, r float64, c RGBA, width float64) {
	p := NewPath()
	p.Circle(center.X, center.Y, r)
	pt.StrokePath(p, c, width)
}

// DrawImage scales src into the destination rectangle using bilinear
// filtering. Intended for opaque media frames; the destination alpha is
// set fully opaque over the covered area.
func (pt *Painter) DrawImage(src image.Image, dst Rect) {
	if src == nil || dst.IsEmpty() {
		return
	}
	target := &image.RGBA{
		Pix:    pt.pm.data,
		Stride: pt.pm.width * 4,
		Rect:   image.Rect(0, 0, pt.pm.width, pt.pm.height),
	}
	dr := image.Rect(int(dst.Min.X), int(dst.Min.Y), int(dst.Max.X), int(dst.Max.Y))
	xdraw.ApproxBiLinear.Scale(target, dr, src, src.Bounds(), xdraw.Src, nil)
}
