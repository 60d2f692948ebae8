package bubble

import "github.com/inklet/bubble/text"

// Text-fit layout: wrap the bubble text at a style-dependent width, shrink
// the font toward a floor when the text would push the body past its
// height cap, then grow the body symmetrically to contain the text.
// Bubbles grow to fit text; they never clip it.

// FontResolver produces a measuring face for a font spec. Scenes fall
// back to a deterministic fixed-advance face when none is installed.
type FontResolver func(spec FontSpec) text.Face

// minWrapWidth is the narrowest wrap width any style may produce.
const minWrapWidth = 40.0

// layoutPolicy returns the wrap width, vertical padding and height cap
// for the bubble's current style and body.
func (b *Bubble) layoutPolicy() (wrapWidth, vPad, capH float64) {
	r := b.body
	if b.style == StyleOval {
		// Ovals narrow sharply at top and bottom; wrapping at 55% of the
		// width keeps every line inside the inscribed ellipse, and the
		// 1.1x width cap keeps the oval from elongating past the point
		// where that guarantee holds.
		wrapWidth = r.Width() * 0.55
		vPad = 40
		capH = r.Width() * 1.1
	} else {
		wrapWidth = r.Width() - 24
		vPad = 24
		capH = DefaultHeight * 5
	}
	if wrapWidth < minWrapWidth {
		wrapWidth = minWrapWidth
	}
	if r.Height() > capH {
		capH = r.Height()
	}
	return wrapWidth, vPad, capH
}

// resolveFace returns a measuring face at the given size.
func (b *Bubble) resolveFace(size float64) text.Face {
	spec := b.font
	spec.Size = size
	if b.scene != nil && b.scene.resolver != nil {
		if face := b.scene.resolver(spec); face != nil {
			return face
		}
	}
	return text.NewFixedFace(size)
}

// layoutText re-runs text-fit layout. Idempotent: with unchanged text,
// style and body it leaves the bubble as is.
func (b *Bubble) layoutText() {
	wrapWidth, vPad, capH := b.layoutPolicy()

	size := b.effectiveSize
	if size <= 0 {
		size = b.font.Size
	}

	display := b.DisplayText()
	face := b.resolveFace(size)
	_, th, lines := text.Measure(display, face, wrapWidth)
	needed := th + vPad

	// Font shrink: only fires when text would push the body past its cap.
	for size > minFontSize && needed > capH {
		size--
		face = b.resolveFace(size)
		_, th, lines = text.Measure(display, face, wrapWidth)
		needed = th + vPad
	}
	b.effectiveSize = size

	// Primary behavior: grow the body around its vertical centre to fit.
	if b.body.Height() < needed {
		c := b.body.Center()
		b.body = NewRect(
			Pt(b.body.Min.X, c.Y-needed/2),
			Pt(b.body.Max.X, c.Y+needed/2),
		)
	}

	// Centre the text block within the (possibly grown) body.
	b.lines = lines
	b.wrapWidth = wrapWidth
	b.textOffset = Pt(
		b.body.Min.X+(b.body.Width()-wrapWidth)/2,
		b.body.Min.Y+(b.body.Height()-th)/2,
	)
}
