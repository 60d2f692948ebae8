package bubble

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Bubble geometry and style defaults.
const (
	// DefaultWidth and DefaultHeight are the body size of a freshly
	// created bubble, centered on its creation point.
	DefaultWidth  = 220.0
	DefaultHeight = 130.0

	// MinBodySize is the smallest body width/height a resize may produce.
	MinBodySize = 60.0

	// DefaultFontSize is the preferred point size of a new bubble.
	DefaultFontSize = 20.0

	// DefaultText is the placeholder text of a new bubble.
	DefaultText = "Type here..."

	// minFontSize is the auto-shrink floor.
	minFontSize = 7.0

	// scrimFontSize and captionFontSize are applied when entering the
	// respective styles.
	scrimFontSize   = 24.0
	captionFontSize = 40.0
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// Bubble is one annotation shape: a styled body, optional tail, and text
// that the body grows to fit. Coordinates are local, centered on the
// bubble's scene position; the scene owns the bubble and assigns identity.
type Bubble struct {
	id    int
	scene *Scene // non-owning back-reference, set on insertion

	style Style
	pos   Point // local origin, in scene coordinates
	body  Rect  // local coordinates
	tail  Point // tail tip, local coordinates

	fill        RGBA
	border      RGBA
	borderWidth float64

	text          string
	font          FontSpec // Size is the user's preferred point size
	effectiveSize float64  // rendered size, auto-shrink may lower it
	textColor     RGBA

	z        int
	selected bool

	// Layout results, recomputed by layoutText.
	lines      []string
	wrapWidth  float64
	textOffset Point // local position of the wrapped text block
}

// newBubble builds a bubble with default geometry centered at (x, y).
func newBubble(id int, x, y float64, style Style) *Bubble {
	b := &Bubble{
		id:          id,
		style:       style,
		pos:         Pt(x, y),
		body:        RectCentered(Point{}, DefaultWidth, DefaultHeight),
		tail:        Pt(0, DefaultHeight/2+70),
		fill:        RGBA8(255, 255, 255, 240),
		border:      RGB8(20, 20, 20),
		borderWidth: 2.0,
		text:        DefaultText,
		font:        FontSpec{Size: DefaultFontSize, Bold: true},
		textColor:   RGB8(15, 15, 15),
	}
	b.effectiveSize = b.font.Size
	return b
}

// ID returns the bubble's scene-assigned identity.
func (b *Bubble) ID() int { return b.id }

// Style returns the current style.
func (b *Bubble) Style() Style { return b.style }

// Pos returns the bubble's origin in scene coordinates.
func (b *Bubble) Pos() Point { return b.pos }

// BodyRect returns the body rectangle in local coordinates.
func (b *Bubble) BodyRect() Rect { return b.body }

// SceneBodyRect returns the body rectangle in scene coordinates.
func (b *Bubble) SceneBodyRect() Rect {
	return b.body.Translated(b.pos.X, b.pos.Y)
}

// TailTip returns the tail anchor in local coordinates.
func (b *Bubble) TailTip() Point { return b.tail }

// FillColor returns the body fill color.
func (b *Bubble) FillColor() RGBA { return b.fill }

// BorderColor returns the outline color.
func (b *Bubble) BorderColor() RGBA { return b.border }

// BorderWidth returns the outline width.
func (b *Bubble) BorderWidth() float64 { return b.borderWidth }

// Text returns the raw bubble text.
func (b *Bubble) Text() string { return b.text }

// Font returns the preferred font spec.
func (b *Bubble) Font() FontSpec { return b.font }

// EffectiveFontSize returns the rendered size after auto-shrink.
func (b *Bubble) EffectiveFontSize() float64 { return b.effectiveSize }

// TextColor returns the text fill color.
func (b *Bubble) TextColor() RGBA { return b.textColor }

// Z returns the render order value; higher draws on top.
func (b *Bubble) Z() int { return b.z }

// Selected reports the transient selection state.
func (b *Bubble) Selected() bool { return b.selected }

// TailVisible reports whether the tail handle and tail geometry apply:
// the bubble must be selected and the style must have a tail.
func (b *Bubble) TailVisible() bool {
	return b.selected && b.style.HasTail()
}

var upperCaser = cases.Upper(language.Und)

// DisplayText returns the text as rendered: caption style is forced to
// upper case.
func (b *Bubble) DisplayText() string {
	if b.style == StyleCaption {
		return upperCaser.String(b.text)
	}
	return b.text
}

// Lines returns the wrapped lines from the last layout pass.
func (b *Bubble) Lines() []string { return b.lines }

// notifyChanged forwards a change notification through the scene.
func (b *Bubble) notifyChanged() {
	if b.scene != nil {
		b.scene.bubbleChanged(b)
	}
}

// SetSelected updates the transient selection state.
func (b *Bubble) SetSelected(sel bool) {
	b.selected = sel
}

// SetStyle switches the bubble's style and applies the transition side
// effects. Order matters: leaving scrim resets the body rectangle before
// the new style's defaults apply, because scrim's full-width flattened
// rect is invalid geometry for the other shapes.
func (b *Bubble) SetStyle(style Style) {
	prev := b.style
	b.style = style

	if prev == StyleScrim && style != StyleScrim {
		b.body = RectCentered(Point{}, DefaultWidth, DefaultHeight)
	}

	if style == StyleScrim && prev != StyleScrim {
		b.fill = RGBA8(0, 0, 0, 200)
		b.borderWidth = 0
		b.textColor = White
		b.font.Size = scrimFontSize
		b.font.Bold = true
		b.effectiveSize = scrimFontSize

		// Compact strip height relative to the photo.
		compactH := 60.0
		if b.scene != nil && b.scene.HasMedia() {
			if h := b.scene.Bounds().Height() * 0.07; h > 44 {
				compactH = h
			} else {
				compactH = 44
			}
		}
		b.body = RectCentered(Point{}, b.body.Width(), compactH)
		b.snapToFullWidth()
	}

	if style == StyleCaption && prev != StyleCaption {
		b.fill = Transparent
		b.border = Black // stroke-outline color, not a drawn border
		b.borderWidth = 2.0
		b.textColor = White
		b.font.Size = captionFontSize
		b.effectiveSize = captionFontSize
	}

	if prev == StyleCaption && style != StyleCaption {
		b.textColor = RGB8(15, 15, 15)
	}

	b.layoutText()
	b.notifyChanged()
}

// SetFillColor updates the body fill.
func (b *Bubble) SetFillColor(c RGBA) {
	b.fill = c
	b.notifyChanged()
}

// SetBorderColor updates the outline color.
func (b *Bubble) SetBorderColor(c RGBA) {
	b.border = c
	b.notifyChanged()
}

// SetBorderWidth updates the outline width. Negative values clamp to 0.
func (b *Bubble) SetBorderWidth(w float64) {
	if w < 0 {
		w = 0
	}
	b.borderWidth = w
	b.notifyChanged()
}

// SetBodyRect replaces the body rectangle, restoring the preferred font
// size when the auto-shrunk size is below it; the new rect may have room.
func (b *Bubble) SetBodyRect(r Rect) {
	b.body = r
	if b.effectiveSize > 0 && b.effectiveSize < b.font.Size {
		b.effectiveSize = b.font.Size
	}
	b.layoutText()
	b.notifyChanged()
}

// SetFont replaces the font spec; the size becomes the new preferred size.
func (b *Bubble) SetFont(f FontSpec) {
	if f.Size <= 0 {
		f.Size = b.font.Size
	}
	b.font = f
	b.effectiveSize = f.Size
	b.layoutText()
	b.notifyChanged()
}

// SetTextColor updates the text fill color.
func (b *Bubble) SetTextColor(c RGBA) {
	b.textColor = c
	b.notifyChanged()
}

// SetText replaces the bubble text and relayouts. Called on every text
// mutation so the bubble grows or shrinks font in real time.
func (b *Bubble) SetText(s string) {
	b.text = s
	b.layoutText()
	b.notifyChanged()
}

// SetTailTip moves the tail anchor in local coordinates.
func (b *Bubble) SetTailTip(p Point) {
	b.tail = p
	b.notifyChanged()
}

// SetPos moves the bubble, clamped so the body stays inside the scene.
func (b *Bubble) SetPos(p Point) {
	if b.scene != nil && b.scene.HasMedia() {
		sr := b.scene.Bounds()
		p.X = clampFloat(p.X, sr.Min.X-b.body.Min.X, sr.Max.X-b.body.Max.X)
		p.Y = clampFloat(p.Y, sr.Min.Y-b.body.Min.Y, sr.Max.Y-b.body.Max.Y)
	}
	b.pos = p
}

// Raise bumps the bubble above its current render order.
func (b *Bubble) Raise() {
	b.z++
	b.notifyChanged()
}

// Lower drops the bubble one step, never below zero.
func (b *Bubble) Lower() {
	if b.z > 0 {
		b.z--
	}
	b.notifyChanged()
}

// SnapToEdge snaps a rect or scrim bubble to span the full photo width,
// flush against the top or bottom edge.
func (b *Bubble) SnapToEdge(top bool) {
	if b.scene == nil || !b.scene.HasMedia() {
		return
	}
	sr := b.scene.Bounds()
	h := b.body.Height()

	b.SetBodyRect(RectCentered(Point{}, sr.Width(), h))
	if top {
		b.pos = Pt(sr.Center().X, sr.Min.Y+h/2)
	} else {
		b.pos = Pt(sr.Center().X, sr.Max.Y-h/2)
	}
	b.notifyChanged()
}

// snapToFullWidth expands to full scene width at the current vertical
// position.
func (b *Bubble) snapToFullWidth() {
	if b.scene == nil || !b.scene.HasMedia() {
		return
	}
	sr := b.scene.Bounds()
	b.SetBodyRect(RectCentered(Point{}, sr.Width(), b.body.Height()))
	b.pos = Pt(sr.Center().X, b.pos.Y)
}

// cloneInto copies all visual attributes and text into a new bubble with
// fresh identity, offset by (25, 25).
func (b *Bubble) cloneInto(id int) *Bubble {
	nb := newBubble(id, b.pos.X+25, b.pos.Y+25, b.style)
	nb.body = b.body
	nb.tail = b.tail
	nb.fill = b.fill
	nb.border = b.border
	nb.borderWidth = b.borderWidth
	nb.text = b.text
	nb.font = b.font
	nb.effectiveSize = b.font.Size
	nb.textColor = b.textColor
	nb.z = b.z
	return nb
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		// Body larger than the scene: pin to the low bound.
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
