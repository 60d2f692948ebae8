package text

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontSource is a parsed TrueType/OpenType font from which faces at
// different sizes are derived. The raw data is retained so optional
// shapers can re-parse it with their own engines.
type FontSource struct {
	font *opentype.Font
	data []byte
	name string
}

// NewFontSource parses font data (TTF or OTF).
func NewFontSource(data []byte) (*FontSource, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}

	src := &FontSource{font: f, data: data}
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		src.name = name
	}
	return src, nil
}

// LoadFontSource reads and parses a font file.
func LoadFontSource(path string) (*FontSource, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("text: read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name, if the font declares one.
func (s *FontSource) Name() string { return s.name }

// Data returns the raw font file bytes.
func (s *FontSource) Data() []byte { return s.data }

// Face creates a face at the given size in pixels per em.
func (s *FontSource) Face(size float64) *SourceFace {
	return &SourceFace{source: s, size: size}
}

// SourceFace measures and outlines glyphs of a FontSource at one size.
//
// SourceFace is not safe for concurrent use: it reuses an internal
// sfnt.Buffer across calls.
type SourceFace struct {
	source *FontSource
	size   float64
	buf    sfnt.Buffer
}

// Size returns the face size.
func (f *SourceFace) Size() float64 { return f.size }

// Source returns the backing font source.
func (f *SourceFace) Source() *FontSource { return f.source }

// ppem returns the face size in 26.6 fixed point.
func (f *SourceFace) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.size * 64)
}

// Metrics returns the face's vertical metrics.
func (f *SourceFace) Metrics() Metrics {
	m, err := f.source.font.Metrics(&f.buf, f.ppem(), font.HintingFull)
	if err != nil {
		// Fall back to proportional metrics on malformed tables.
		return NewFixedFace(f.size).Metrics()
	}
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	return Metrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: fixedToFloat(m.Height) - ascent - descent,
	}
}

// Advance sums per-glyph advances for a single-line string. Missing
// glyphs fall back to the .notdef advance.
func (f *SourceFace) Advance(s string) float64 {
	var total float64
	for _, r := range s {
		idx, err := f.source.font.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		adv, err := f.source.font.GlyphAdvance(&f.buf, idx, f.ppem(), font.HintingFull)
		if err != nil {
			continue
		}
		total += fixedToFloat(adv)
	}
	return total
}

// AppendGlyph implements OutlineFace. Segment coordinates from sfnt are
// already scaled to the face size with y growing downward from the
// baseline, so they translate directly into raster space.
func (f *SourceFace) AppendGlyph(r rune, x, y float64, pb PathBuilder) (float64, bool) {
	idx, err := f.source.font.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}

	segments, err := f.source.font.LoadGlyph(&f.buf, idx, f.ppem(), nil)
	if err != nil {
		return 0, false
	}

	adv, err := f.source.font.GlyphAdvance(&f.buf, idx, f.ppem(), font.HintingFull)
	if err != nil {
		return 0, false
	}

	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				pb.Close()
			}
			pb.MoveTo(x+fixedToFloat(seg.Args[0].X), y+fixedToFloat(seg.Args[0].Y))
			open = true
		case sfnt.SegmentOpLineTo:
			pb.LineTo(x+fixedToFloat(seg.Args[0].X), y+fixedToFloat(seg.Args[0].Y))
		case sfnt.SegmentOpQuadTo:
			pb.QuadraticTo(
				x+fixedToFloat(seg.Args[0].X), y+fixedToFloat(seg.Args[0].Y),
				x+fixedToFloat(seg.Args[1].X), y+fixedToFloat(seg.Args[1].Y))
		case sfnt.SegmentOpCubeTo:
			pb.CubicTo(
				x+fixedToFloat(seg.Args[0].X), y+fixedToFloat(seg.Args[0].Y),
				x+fixedToFloat(seg.Args[1].X), y+fixedToFloat(seg.Args[1].Y),
				x+fixedToFloat(seg.Args[2].X), y+fixedToFloat(seg.Args[2].Y))
		}
	}
	if open {
		pb.Close()
	}

	return fixedToFloat(adv), true
}

// fixedToFloat converts fixed.Int26_6 to float64.
func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
