package text

import "sync/atomic"

// Shaper measures text with a full shaping engine (kerning, ligatures,
// complex scripts). The default measurement path sums per-glyph advances;
// installing a shaper upgrades wrap and layout decisions without changing
// any caller code.
type Shaper interface {
	// LineWidth returns the shaped width of a single-line string, or
	// ok=false when the face cannot be shaped (synthetic faces).
	LineWidth(s string, face Face) (width float64, ok bool)
}

// shaperBox wraps the interface so atomic.Pointer has a concrete type.
type shaperBox struct {
	shaper Shaper
}

var activeShaper atomic.Pointer[shaperBox]

// SetShaper installs a shaping engine for all measurement in this
// package. Pass nil to restore plain advance summing.
//
// SetShaper is safe for concurrent use.
func SetShaper(s Shaper) {
	if s == nil {
		activeShaper.Store(nil)
		return
	}
	activeShaper.Store(&shaperBox{shaper: s})
}

// ActiveShaper returns the installed shaper, or nil.
func ActiveShaper() Shaper {
	box := activeShaper.Load()
	if box == nil {
		return nil
	}
	return box.shaper
}
