package media

// Edits is the non-destructive edit state of a video source: a trim
// window, removed cut ranges inside it, and an optional reversal. The
// source's frames are never touched; ExportFrames resolves the state
// into the final playback order.
type Edits struct {
	frameCount int
	trimIn     int
	trimOut    int
	cuts       [][2]int
	reversed   bool
}

// NewEdits creates a pass-through edit state covering all frames.
func NewEdits(frameCount int) *Edits {
	if frameCount < 1 {
		frameCount = 1
	}
	return &Edits{
		frameCount: frameCount,
		trimOut:    frameCount - 1,
	}
}

// TrimIn returns the first included frame.
func (e *Edits) TrimIn() int { return e.trimIn }

// TrimOut returns the last included frame.
func (e *Edits) TrimOut() int { return e.trimOut }

// Reversed reports whether playback order is reversed.
func (e *Edits) Reversed() bool { return e.reversed }

// Cuts returns the removed ranges, inclusive on both ends.
func (e *Edits) Cuts() [][2]int {
	out := make([][2]int, len(e.cuts))
	copy(out, e.cuts)
	return out
}

// SetTrimIn moves the in point, clamped to [0, trimOut].
func (e *Edits) SetTrimIn(frame int) {
	e.trimIn = clampInt(frame, 0, e.trimOut)
}

// SetTrimOut moves the out point, clamped to [trimIn, frameCount-1].
func (e *Edits) SetTrimOut(frame int) {
	e.trimOut = clampInt(frame, e.trimIn, e.frameCount-1)
}

// AddCut removes an inclusive frame range. Endpoints may arrive in
// either order and are clamped to the source.
func (e *Edits) AddCut(start, end int) {
	if start > end {
		start, end = end, start
	}
	start = clampInt(start, 0, e.frameCount-1)
	end = clampInt(end, 0, e.frameCount-1)
	e.cuts = append(e.cuts, [2]int{start, end})
}

// ClearCuts removes all cut ranges.
func (e *Edits) ClearCuts() {
	e.cuts = nil
}

// ToggleReverse flips the playback direction.
func (e *Edits) ToggleReverse() {
	e.reversed = !e.reversed
}

// Reset restores the pass-through state.
func (e *Edits) Reset() {
	e.trimIn = 0
	e.trimOut = e.frameCount - 1
	e.cuts = nil
	e.reversed = false
}

// ExportFrames resolves the edit state into the ordered frame indices
// of the final video: the trim window minus cut frames, reversed when
// requested. A cut that swallows the whole window is ignored rather
// than producing an empty video.
func (e *Edits) ExportFrames() []int {
	frames := make([]int, 0, e.trimOut-e.trimIn+1)
	for i := e.trimIn; i <= e.trimOut; i++ {
		if !e.cutCovers(i) {
			frames = append(frames, i)
		}
	}

	if len(frames) == 0 {
		// All frames cut away; fall back to the plain trim window.
		for i := e.trimIn; i <= e.trimOut; i++ {
			frames = append(frames, i)
		}
	}

	if e.reversed {
		for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
			frames[i], frames[j] = frames[j], frames[i]
		}
	}
	return frames
}

func (e *Edits) cutCovers(frame int) bool {
	for _, c := range e.cuts {
		if frame >= c[0] && frame <= c[1] {
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
