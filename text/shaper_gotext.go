package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// GoTextShaper measures text through go-text/typesetting's HarfBuzz
// implementation, picking up kerning pairs, ligatures and complex-script
// shaping that plain advance summing misses.
//
// It is opt-in:
//
//	text.SetShaper(text.NewGoTextShaper())
//	defer text.SetShaper(nil)
//
// GoTextShaper is safe for concurrent use. Parsed font.Font objects are
// cached per FontSource (font.Font is read-only and thread-safe); a
// lightweight font.Face is created per call since font.Face is not.
// HarfbuzzShaper instances carry mutable buffers and are pooled.
type GoTextShaper struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[*FontSource]*font.Font
}

// NewGoTextShaper creates a HarfBuzz-backed shaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fontCache: make(map[*FontSource]*font.Font),
	}
}

// LineWidth implements Shaper by summing shaped glyph advances.
func (s *GoTextShaper) LineWidth(str string, face Face) (float64, bool) {
	if str == "" {
		return 0, true
	}
	source := face.Source()
	if source == nil {
		return 0, false
	}

	goTextFont, err := s.getOrCreateFont(source)
	if err != nil {
		return 0, false
	}

	runes := []rune(str)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(goTextFont),
		Size:      fixed.Int26_6(face.Size() * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	var width fixed.Int26_6
	for _, g := range output.Glyphs {
		width += g.XAdvance
	}
	return fixedToFloat(width), true
}

// getOrCreateFont returns a cached go-text font.Font for the source, or
// parses the raw font data and caches the result.
func (s *GoTextShaper) getOrCreateFont(source *FontSource) (*font.Font, error) {
	s.mu.RLock()
	if f, ok := s.fontCache[source]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.fontCache[source]; ok {
		return f, nil
	}

	goTextFace, err := font.ParseTTF(bytes.NewReader(source.Data()))
	if err != nil {
		return nil, err
	}

	// Cache the Font (thread-safe), not the Face.
	s.fontCache[source] = goTextFace.Font
	return goTextFace.Font, nil
}

// ClearCache removes all cached parsed fonts.
func (s *GoTextShaper) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fontCache = make(map[*FontSource]*font.Font)
}

// detectScript returns the script of the first non-space rune. A simple
// heuristic; mixed-script text should be split into runs by the caller.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
