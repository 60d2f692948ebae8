package text

import "strings"

// Word wrapping and measurement. Widths come from Advance (or the active
// shaper when one is installed), so wrap decisions and rendering agree.

// LineWidth returns the rendered width of a single-line string,
// preferring the active shaper for kerning-aware measurement.
func LineWidth(face Face, s string) float64 {
	if sh := ActiveShaper(); sh != nil {
		if w, ok := sh.LineWidth(s, face); ok {
			return w
		}
	}
	return face.Advance(s)
}

// Wrap breaks text into lines no wider than maxWidth. Words are kept
// whole when possible; a word wider than maxWidth is broken mid-word.
// Explicit newlines are preserved.
func Wrap(text string, face Face, maxWidth float64) []string {
	if text == "" {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, face, maxWidth)...)
	}
	return lines
}

func wrapParagraph(para string, face Face, maxWidth float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var line string

	flush := func() {
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
	}

	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if LineWidth(face, candidate) <= maxWidth {
			line = candidate
			continue
		}

		flush()
		if LineWidth(face, word) <= maxWidth {
			line = word
			continue
		}

		// Word alone exceeds the width: break it rune by rune.
		for _, r := range word {
			next := line + string(r)
			if line != "" && LineWidth(face, next) > maxWidth {
				flush()
				next = string(r)
			}
			line = next
		}
	}
	flush()

	return lines
}

// Measure returns the bounding size of text wrapped at maxWidth, plus
// the wrapped lines themselves. The height is lines times the face line
// height.
func Measure(text string, face Face, maxWidth float64) (w, h float64, lines []string) {
	lines = Wrap(text, face, maxWidth)
	for _, line := range lines {
		if lw := LineWidth(face, line); lw > w {
			w = lw
		}
	}
	h = float64(len(lines)) * face.Metrics().LineHeight()
	return w, h, lines
}
