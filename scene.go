package bubble

import (
	"image"
	"sort"

	"github.com/inklet/bubble/media"
)

const (
	// MinDisplaySize is the smallest media display width/height a resize
	// may produce.
	MinDisplaySize = 40.0

	// dualGap is the horizontal gap between the two media panels.
	dualGap = 4.0

	// captionBarFraction sizes a meme caption bar relative to the photo
	// height.
	captionBarFraction = 0.065
)

// MediaSlot places one frame source on the canvas: a display rectangle
// the media is stretched into, plus the current playback frame. The
// display size is independent of the native size; video frames swap
// without touching geometry.
type MediaSlot struct {
	scene  *Scene
	source media.FrameSource

	pos        Point // top-left, scene coordinates
	displayW   float64
	displayH   float64
	lockAspect bool

	currentFrame int
}

func newMediaSlot(scene *Scene, source media.FrameSource) *MediaSlot {
	w, h := source.Size()
	return &MediaSlot{
		scene:      scene,
		source:     source,
		displayW:   float64(w),
		displayH:   float64(h),
		lockAspect: true,
	}
}

// Source returns the underlying frame source.
func (m *MediaSlot) Source() media.FrameSource { return m.source }

// DisplayRect returns the on-canvas rectangle the media fills.
func (m *MediaSlot) DisplayRect() Rect {
	return RectXYWH(m.pos.X, m.pos.Y, m.displayW, m.displayH)
}

// LockAspect reports whether corner resizes keep the aspect ratio.
func (m *MediaSlot) LockAspect() bool { return m.lockAspect }

// SetLockAspect toggles aspect-ratio locking for resizes.
func (m *MediaSlot) SetLockAspect(lock bool) { m.lockAspect = lock }

// CurrentFrame returns the displayed frame index.
func (m *MediaSlot) CurrentFrame() int { return m.currentFrame }

// Frame decodes the currently displayed frame.
func (m *MediaSlot) Frame() (*image.RGBA, error) {
	return m.source.Frame(m.currentFrame)
}

// RestoreNativeSize resets the display rect to the media's pixel
// dimensions at the origin.
func (m *MediaSlot) RestoreNativeSize() {
	w, h := m.source.Size()
	m.pos = Point{}
	m.displayW = float64(w)
	m.displayH = float64(h)
	m.scene.fitToMedia()
}

// moveTo repositions the slot; the scene re-derives its bounds.
func (m *MediaSlot) moveTo(p Point) {
	m.pos = p
	m.scene.fitToMedia()
}

// setDisplayRect replaces position and size, clamping below the display
// minimum. With the aspect lock active the height follows from the width
// and the native ratio, whatever rect the caller dragged out.
func (m *MediaSlot) setDisplayRect(r Rect) {
	m.pos = r.Min
	m.displayW = r.Width()
	if m.displayW < MinDisplaySize {
		m.displayW = MinDisplaySize
	}
	m.displayH = r.Height()
	if m.lockAspect {
		if nw, nh := m.source.Size(); nw > 0 && nh > 0 {
			m.displayH = m.displayW * float64(nh) / float64(nw)
		}
	}
	if m.displayH < MinDisplaySize {
		m.displayH = MinDisplaySize
	}
	m.scene.fitToMedia()
}

func (m *MediaSlot) release() {
	if m.source != nil {
		m.source.Release()
	}
}

// CaptionBar is one full-width meme bar: a dark strip with centered
// uppercase text, rendered above or below the photo.
type CaptionBar struct {
	rect Rect
	text string
}

// Rect returns the bar's scene rectangle.
func (cb *CaptionBar) Rect() Rect { return cb.rect }

// Text returns the raw bar text; rendering upper-cases it.
func (cb *CaptionBar) Text() string { return cb.text }

// SetText replaces the bar text.
func (cb *CaptionBar) SetText(s string) { cb.text = s }

// DisplayText returns the text as rendered.
func (cb *CaptionBar) DisplayText() string {
	return upperCaser.String(cb.text)
}

// Scene owns the bubbles, up to two media slots, the meme caption bars
// and the undo history. Scene bounds derive from the media geometry and
// are never stored independently.
type Scene struct {
	bubbles []*Bubble
	nextID  int

	left  *MediaSlot
	right *MediaSlot
	dual  bool

	memeTop    *CaptionBar
	memeBottom *CaptionBar

	history  *History
	resolver FontResolver

	// OnBubbleChanged, when set, fires after any bubble attribute
	// mutation.
	OnBubbleChanged func(*Bubble)
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		nextID:  1,
		history: NewHistory(),
	}
}

// History returns the undo/redo stack.
func (s *Scene) History() *History { return s.history }

// SetFontResolver installs the face lookup used for text layout.
// Bubbles fall back to a fixed-advance face when none is installed.
func (s *Scene) SetFontResolver(r FontResolver) {
	s.resolver = r
	for _, b := range s.bubbles {
		b.layoutText()
	}
}

// HasMedia reports whether a background photo or video is loaded.
func (s *Scene) HasMedia() bool { return s.left != nil }

// Left returns the primary media slot, nil when no media is loaded.
func (s *Scene) Left() *MediaSlot { return s.left }

// Right returns the secondary media slot, nil outside dual mode or
// before right media is loaded.
func (s *Scene) Right() *MediaSlot { return s.right }

// DualMode reports whether the side-by-side layout is active.
func (s *Scene) DualMode() bool { return s.dual }

// MemeMode reports whether the caption bar pair is present.
func (s *Scene) MemeMode() bool { return s.memeTop != nil }

// MemeBars returns the top and bottom caption bars, nil outside meme
// mode.
func (s *Scene) MemeBars() (top, bottom *CaptionBar) {
	return s.memeTop, s.memeBottom
}

// Bounds returns the scene rectangle: the media display rects, extended
// vertically by the caption bars in meme mode. Empty without media.
func (s *Scene) Bounds() Rect {
	if s.left == nil {
		return Rect{}
	}
	r := s.left.DisplayRect()
	if s.dual {
		if s.right != nil {
			r = r.Union(s.right.DisplayRect())
		} else {
			// Placeholder panel mirrors the left panel's size.
			r.Max.X += dualGap + s.left.displayW
		}
	}
	if s.memeTop != nil {
		barH := s.left.displayH * captionBarFraction
		if barH < 1 {
			barH = 1
		}
		r.Min.Y -= barH
		r.Max.Y += barH
	}
	return r
}

// SetMedia installs src as the background, replacing any previous media
// and resetting dual and meme modes. The caller opens the source first,
// so a load failure never mutates the scene.
func (s *Scene) SetMedia(src media.FrameSource) {
	s.clearMemeBars()
	s.clearDual()
	if s.left != nil {
		s.left.release()
	}
	s.left = newMediaSlot(s, src)
	s.fitToMedia()
}

// SetCurrentFrame scrubs both panels to the given frame index; the
// right panel clamps to its own length.
func (s *Scene) SetCurrentFrame(i int) {
	if s.left != nil {
		s.left.currentFrame = i
	}
	if s.right != nil {
		n := s.right.source.FrameCount()
		if i >= n {
			i = n - 1
		}
		s.right.currentFrame = i
	}
}

// EnableDual opens the side-by-side layout; right media arrives later
// through SetRightMedia. No-op without a left photo.
func (s *Scene) EnableDual() {
	if s.dual || s.left == nil {
		return
	}
	s.dual = true
	s.fitToMedia()
}

// DisableDual releases the right media and collapses back to single
// mode.
func (s *Scene) DisableDual() {
	if !s.dual {
		return
	}
	s.clearDual()
	s.fitToMedia()
}

func (s *Scene) clearDual() {
	s.dual = false
	if s.right != nil {
		s.right.release()
		s.right = nil
	}
}

// SetRightMedia installs the right panel, scaled so its height matches
// the left panel. Matching heights means no letterboxing on either
// side. No-op outside dual mode.
func (s *Scene) SetRightMedia(src media.FrameSource) {
	if !s.dual || s.left == nil {
		return
	}
	if s.right != nil {
		s.right.release()
	}

	slot := newMediaSlot(s, src)
	nw, nh := src.Size()
	scale := s.left.displayH / float64(max(nh, 1))
	slot.displayW = float64(nw) * scale
	if slot.displayW < 1 {
		slot.displayW = 1
	}
	slot.displayH = s.left.displayH
	s.right = slot
	s.fitToMedia()
}

// EnableMemeMode adds the TOP TEXT / BOTTOM TEXT caption bars. No-op
// without media or when already active.
func (s *Scene) EnableMemeMode() {
	if s.memeTop != nil || s.left == nil {
		return
	}
	s.memeTop = &CaptionBar{text: "TOP TEXT"}
	s.memeBottom = &CaptionBar{text: "BOTTOM TEXT"}
	s.layoutMemeBars()
}

// DisableMemeMode removes the caption bars.
func (s *Scene) DisableMemeMode() {
	s.clearMemeBars()
}

// ToggleMemeMode flips meme mode.
func (s *Scene) ToggleMemeMode() {
	if s.MemeMode() {
		s.DisableMemeMode()
	} else {
		s.EnableMemeMode()
	}
}

func (s *Scene) clearMemeBars() {
	s.memeTop = nil
	s.memeBottom = nil
}

// layoutMemeBars spans the bars across the full canvas width, flush
// above and below the photo. Runs after every geometry change.
func (s *Scene) layoutMemeBars() {
	if s.memeTop == nil || s.left == nil {
		return
	}
	lr := s.left.DisplayRect()
	w := lr.Width()
	if s.dual {
		if s.right != nil {
			w += dualGap + s.right.displayW
		} else {
			w += dualGap + s.left.displayW
		}
	}
	barH := lr.Height() * captionBarFraction
	if barH < 1 {
		barH = 1
	}
	s.memeTop.rect = RectXYWH(lr.Min.X, lr.Min.Y-barH, w, barH)
	s.memeBottom.rect = RectXYWH(lr.Min.X, lr.Max.Y, w, barH)
}

// fitToMedia re-derives the dependent layout after a media geometry
// change: the right panel snaps flush to the left panel's right edge,
// and the meme bars stretch to the new width.
func (s *Scene) fitToMedia() {
	if s.left == nil {
		return
	}
	if s.dual && s.right != nil {
		lr := s.left.DisplayRect()
		s.right.pos = Pt(lr.Max.X+dualGap, lr.Min.Y)
	}
	s.layoutMemeBars()
}

// Bubbles returns the bubbles in render order: ascending z, insertion
// order as tiebreak.
func (s *Scene) Bubbles() []*Bubble {
	out := make([]*Bubble, len(s.bubbles))
	copy(out, s.bubbles)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].z < out[j].z
	})
	return out
}

// Len returns the number of bubbles.
func (s *Scene) Len() int { return len(s.bubbles) }

// bubbleChanged forwards a bubble mutation to the observer.
func (s *Scene) bubbleChanged(b *Bubble) {
	if s.OnBubbleChanged != nil {
		s.OnBubbleChanged(b)
	}
}

// attach inserts a bubble and runs its first layout. Used directly by
// add/delete commands so undo and redo share one code path.
func (s *Scene) attach(b *Bubble) {
	b.scene = s
	s.bubbles = append(s.bubbles, b)
	b.layoutText()
	s.bubbleChanged(b)
}

// detach removes a bubble, keeping the bubble intact for a later
// re-attach on undo.
func (s *Scene) detach(b *Bubble) {
	for i, x := range s.bubbles {
		if x == b {
			s.bubbles = append(s.bubbles[:i], s.bubbles[i+1:]...)
			break
		}
	}
	b.scene = nil
}

// AddBubbleAt creates a bubble with default geometry centered at (x, y)
// and records the addition as an undoable step.
func (s *Scene) AddBubbleAt(x, y float64, style Style) *Bubble {
	b := newBubble(s.nextID, x, y, style)
	s.nextID++
	s.history.Push(&AddBubbleCommand{Scene: s, Bubble: b})
	return b
}

// DeleteBubble removes a bubble as an undoable step.
func (s *Scene) DeleteBubble(b *Bubble) {
	s.history.Push(&DeleteBubbleCommand{Scene: s, Bubble: b})
}

// DuplicateBubble deep-copies a bubble at a (25, 25) offset with fresh
// identity.
func (s *Scene) DuplicateBubble(b *Bubble) *Bubble {
	clone := b.cloneInto(s.nextID)
	s.nextID++
	s.history.Push(&AddBubbleCommand{Scene: s, Bubble: clone})
	return clone
}

// MoveBubble records a bubble move; consecutive moves of the same
// bubble collapse into one undo step.
func (s *Scene) MoveBubble(b *Bubble, to Point) {
	s.history.Push(&MoveBubbleCommand{Bubble: b, From: b.pos, To: to})
}

// ResizeBubble records a body resize, clamped to the minimum body size.
func (s *Scene) ResizeBubble(b *Bubble, to Rect) {
	if to.Width() < MinBodySize {
		to.Max.X = to.Min.X + MinBodySize
	}
	if to.Height() < MinBodySize {
		to.Max.Y = to.Min.Y + MinBodySize
	}
	s.history.Push(&ResizeBubbleCommand{Bubble: b, From: b.body, To: to})
}

// SetBubbleText records a text change.
func (s *Scene) SetBubbleText(b *Bubble, text string) {
	s.history.Push(&TextCommand{Bubble: b, Before: b.text, After: text})
}

// MoveMedia records a media slot move; consecutive moves of the same
// slot collapse into one undo step.
func (s *Scene) MoveMedia(m *MediaSlot, to Point) {
	s.history.Push(&MoveMediaCommand{Slot: m, From: m.pos, To: to})
}

// ResizeMedia records a media display-rect change.
func (s *Scene) ResizeMedia(m *MediaSlot, to Rect) {
	s.history.Push(&ResizeMediaCommand{Slot: m, From: m.DisplayRect(), To: to})
}

// Release frees all media decoders. The scene stays usable for
// bubble-only editing.
func (s *Scene) Release() {
	if s.left != nil {
		s.left.release()
		s.left = nil
	}
	s.clearDual()
	s.clearMemeBars()
}
