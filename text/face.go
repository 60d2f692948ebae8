// Package text provides font parsing, measurement, word wrapping and glyph
// outline extraction for bubble text layout and rendering.
package text

// Metrics describes the vertical extents of a face at its size.
// All values are positive distances in pixels.
type Metrics struct {
	Ascent  float64 // baseline to top
	Descent float64 // baseline to bottom
	LineGap float64 // extra space between consecutive lines
}

// LineHeight returns the baseline-to-baseline distance.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Face is a font at a fixed size, able to measure text.
type Face interface {
	// Size returns the point size the face was created at.
	Size() float64

	// Metrics returns the face's vertical metrics.
	Metrics() Metrics

	// Advance returns the width of a single-line string without shaping.
	Advance(s string) float64

	// Source returns the backing font source, or nil for synthetic faces.
	Source() *FontSource
}

// PathBuilder receives glyph outline segments. The root bubble package's
// Path satisfies this interface.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// OutlineFace is a Face whose glyphs can be traced as vector outlines.
type OutlineFace interface {
	Face

	// AppendGlyph appends the outline of r, positioned with its baseline
	// origin at (x, y), to pb. It returns the glyph advance and whether an
	// outline was available.
	AppendGlyph(r rune, x, y float64, pb PathBuilder) (advance float64, ok bool)
}

// FixedFace is a synthetic face with constant per-rune advance. It needs
// no font file, which makes layout deterministic in tests and keeps the
// engine usable headless.
type FixedFace struct {
	size float64
}

// NewFixedFace creates a fixed-advance face at the given size.
func NewFixedFace(size float64) *FixedFace {
	return &FixedFace{size: size}
}

// Size returns the face size.
func (f *FixedFace) Size() float64 { return f.size }

// Metrics returns proportional synthetic metrics.
func (f *FixedFace) Metrics() Metrics {
	return Metrics{
		Ascent:  0.8 * f.size,
		Descent: 0.2 * f.size,
		LineGap: 0.2 * f.size,
	}
}

// Advance returns 0.6 em per rune.
func (f *FixedFace) Advance(s string) float64 {
	n := 0
	for range s {
		n++
	}
	return float64(n) * 0.6 * f.size
}

// Source returns nil; FixedFace has no font data.
func (f *FixedFace) Source() *FontSource { return nil }
