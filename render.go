package bubble

import (
	"math"

	"github.com/inklet/bubble/text"
)

// Scene rendering. RenderOverlay produces the transparent bubble layer
// that video export composites onto every frame; Render produces the
// full live scene for photo export.

// renderTransform maps scene coordinates into pixmap pixels.
type renderTransform struct {
	origin Point
	sx, sy float64
}

func newRenderTransform(bounds Rect, outW, outH int) renderTransform {
	t := renderTransform{origin: bounds.Min, sx: 1, sy: 1}
	if bounds.Width() > 0 {
		t.sx = float64(outW) / bounds.Width()
	}
	if bounds.Height() > 0 {
		t.sy = float64(outH) / bounds.Height()
	}
	return t
}

func (t renderTransform) point(p Point) Point {
	return Pt((p.X-t.origin.X)*t.sx, (p.Y-t.origin.Y)*t.sy)
}

// scale returns the uniform factor applied to stroke widths and radii.
func (t renderTransform) scale() float64 {
	return math.Min(t.sx, t.sy)
}

func (t renderTransform) rect(r Rect) Rect {
	return NewRect(t.point(r.Min), t.point(r.Max))
}

// path rebuilds a path with every control point mapped.
func (t renderTransform) path(p *Path) *Path {
	out := NewPath()
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case MoveTo:
			q := t.point(e.Point)
			out.MoveTo(q.X, q.Y)
		case LineTo:
			q := t.point(e.Point)
			out.LineTo(q.X, q.Y)
		case QuadTo:
			c := t.point(e.Control)
			q := t.point(e.Point)
			out.QuadraticTo(c.X, c.Y, q.X, q.Y)
		case CubicTo:
			c1 := t.point(e.Control1)
			c2 := t.point(e.Control2)
			q := t.point(e.Point)
			out.CubicTo(c1.X, c1.Y, c2.X, c2.Y, q.X, q.Y)
		case Close:
			out.Close()
		}
	}
	return out
}

// RenderOverlay renders the bubbles and caption bars, and nothing else,
// into a transparent pixmap of the given size. The media stays hidden:
// export composites this buffer over decoded frames, so rendering it
// once covers the whole video.
func (s *Scene) RenderOverlay(outW, outH int) *Pixmap {
	pm := NewPixmap(outW, outH)
	t := newRenderTransform(s.Bounds(), outW, outH)
	s.drawOverlay(pm, t)
	return pm
}

// Render renders the live scene (media, caption bars, bubbles) at
// display resolution.
func (s *Scene) Render() (*Pixmap, error) {
	bounds := s.Bounds()
	outW := int(math.Ceil(bounds.Width()))
	outH := int(math.Ceil(bounds.Height()))
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	pm := NewPixmap(outW, outH)
	t := newRenderTransform(bounds, outW, outH)
	p := NewPainter(pm)

	if s.left != nil {
		if frame, err := s.left.Frame(); err == nil {
			p.DrawImage(frame, t.rect(s.left.DisplayRect()))
		} else {
			return nil, err
		}
	}
	if s.dual {
		if s.right != nil {
			frame, err := s.right.Frame()
			if err != nil {
				return nil, err
			}
			p.DrawImage(frame, t.rect(s.right.DisplayRect()))
		} else if s.left != nil {
			// Empty right panel renders as a neutral placeholder.
			lr := s.left.DisplayRect()
			ph := NewPath()
			r := t.rect(RectXYWH(lr.Max.X+dualGap, lr.Min.Y, s.left.displayW, s.left.displayH))
			ph.Rectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
			p.FillPath(ph, RGB8(55, 55, 55))
		}
	}

	s.drawOverlay(pm, t)
	return pm, nil
}

func (s *Scene) drawOverlay(pm *Pixmap, t renderTransform) {
	p := NewPainter(pm)

	for _, b := range s.Bubbles() {
		s.drawBubble(p, b, t)
	}
	if s.memeTop != nil {
		s.drawCaptionBar(p, s.memeTop, t)
		s.drawCaptionBar(p, s.memeBottom, t)
	}
}

// drawBubble paints one bubble: outline fill and border, thought dots
// for clouds, then the wrapped text.
func (s *Scene) drawBubble(p *Painter, b *Bubble, t renderTransform) {
	body := b.SceneBodyRect()
	tip := b.tail.Add(b.pos)

	outline := t.path(OutlinePath(b.style, body, tip))
	if b.fill.A > 0 {
		p.FillPath(outline, b.fill)
	}
	if b.borderWidth > 0 && b.style != StyleCaption {
		p.StrokePath(outline, b.border, b.borderWidth*t.scale())
	}

	if b.style == StyleCloud {
		for _, dot := range ThoughtDots(body, tip) {
			c := t.point(dot.Center)
			r := dot.Radius * t.scale()
			p.FillCircle(c, r, b.fill)
			if b.borderWidth > 0 {
				p.StrokeCircle(c, r, b.border, b.borderWidth*t.scale())
			}
		}
	}

	s.drawBubbleText(p, b, t)
}

// drawBubbleText renders the wrapped lines. Caption style paints a
// black offset ring under the white fill, approximating stroked text.
func (s *Scene) drawBubbleText(p *Painter, b *Bubble, t renderTransform) {
	face := b.resolveFace(b.effectiveSize * t.scale())
	of, ok := face.(text.OutlineFace)
	if !ok {
		return // no outline-capable font installed
	}

	m := of.Metrics()
	origin := t.point(b.textOffset.Add(b.pos))
	wrapW := b.wrapWidth * t.sx

	y := origin.Y + m.Ascent
	for _, line := range b.lines {
		lineW := text.LineWidth(of, line)
		x := origin.X + (wrapW-lineW)/2

		path := lineOutline(of, line, x, y)
		if b.style == StyleCaption {
			d := math.Max(1, b.borderWidth*t.scale())
			for _, off := range [8][2]float64{
				{-d, -d}, {0, -d}, {d, -d},
				{-d, 0}, {d, 0},
				{-d, d}, {0, d}, {d, d},
			} {
				p.FillPath(path.Offset(off[0], off[1]), b.border)
			}
		}
		p.FillPath(path, b.textColor)
		y += m.LineHeight()
	}
}

// lineOutline traces one line of text as a filled path with the
// baseline origin at (x, y).
func lineOutline(of text.OutlineFace, line string, x, y float64) *Path {
	path := NewPath()
	pen := x
	for _, r := range line {
		adv, ok := of.AppendGlyph(r, pen, y, path)
		if !ok {
			adv = of.Advance(string(r))
		}
		pen += adv
	}
	return path
}

// drawCaptionBar paints one meme bar: a dark strip with centered
// uppercase text, shrunk until it fits, over a one pixel drop shadow.
func (s *Scene) drawCaptionBar(p *Painter, cb *CaptionBar, t renderTransform) {
	r := t.rect(cb.rect)

	bg := NewPath()
	bg.Rectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
	p.FillPath(bg, RGBA8(0, 0, 0, 205))

	display := cb.DisplayText()
	if display == "" {
		return
	}

	inner := r.Inset(20)
	if inner.IsEmpty() {
		return
	}

	// Start near the bar height and shrink until the wrapped text fits.
	size := math.Max(14, r.Height()*0.62)
	minSize := math.Max(10, size/4)
	face := s.barFace(size)
	_, th, lines := text.Measure(display, face, inner.Width())
	for size > minSize && th > inner.Height() {
		size -= 2
		face = s.barFace(size)
		_, th, lines = text.Measure(display, face, inner.Width())
	}

	of, ok := face.(text.OutlineFace)
	if !ok {
		return
	}

	m := of.Metrics()
	y := inner.Center().Y - th/2 + m.Ascent
	for _, line := range lines {
		lineW := text.LineWidth(of, line)
		x := inner.Min.X + (inner.Width()-lineW)/2
		path := lineOutline(of, line, x, y)
		p.FillPath(path.Offset(1, 1), RGBA8(0, 0, 0, 160))
		p.FillPath(path, White)
		y += m.LineHeight()
	}
}

// barFace resolves a bold face for meme bar text.
func (s *Scene) barFace(size float64) text.Face {
	if s.resolver != nil {
		if face := s.resolver(FontSpec{Size: size, Bold: true}); face != nil {
			return face
		}
	}
	return text.NewFixedFace(size)
}
