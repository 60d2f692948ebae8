package bubble

import (
	"image"
	"math"
	"testing"

	"github.com/inklet/bubble/media"
)

// stillSource is a fixed-size one-frame source for scene tests that
// need media geometry without touching the filesystem.
type stillSource struct {
	w, h  int
	frame *image.RGBA
}

func newStillSource(w, h int) *stillSource {
	return &stillSource{w: w, h: h, frame: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (s *stillSource) Path() string                    { return "still.png" }
func (s *stillSource) FrameCount() int                 { return 1 }
func (s *stillSource) FPS() float64                    { return 0 }
func (s *stillSource) Size() (int, int)                { return s.w, s.h }
func (s *stillSource) Frame(int) (*image.RGBA, error)  { return s.frame, nil }
func (s *stillSource) Release()                        {}

func TestBubble_Defaults(t *testing.T) {
	b := newBubble(1, 50, 60, StyleOval)

	if b.BodyRect().Width() != DefaultWidth || b.BodyRect().Height() != DefaultHeight {
		t.Errorf("body = %v, want %vx%v", b.BodyRect(), DefaultWidth, DefaultHeight)
	}
	if !pointsEqual(b.Pos(), Pt(50, 60), epsilon) {
		t.Errorf("pos = %v, want (50, 60)", b.Pos())
	}
	if !pointsEqual(b.TailTip(), Pt(0, DefaultHeight/2+70), epsilon) {
		t.Errorf("tail = %v, want (0, %v)", b.TailTip(), DefaultHeight/2+70)
	}
	if !colorsEqual(b.FillColor(), RGBA8(255, 255, 255, 240), 0.01) {
		t.Errorf("fill = %v", b.FillColor())
	}
	if b.BorderWidth() != 2.0 {
		t.Errorf("borderWidth = %v, want 2", b.BorderWidth())
	}
	if b.Text() != DefaultText {
		t.Errorf("text = %q, want %q", b.Text(), DefaultText)
	}
	if b.Font().Size != DefaultFontSize || !b.Font().Bold {
		t.Errorf("font = %+v, want 20pt bold", b.Font())
	}
	if !colorsEqual(b.TextColor(), RGB8(15, 15, 15), 0.01) {
		t.Errorf("textColor = %v", b.TextColor())
	}
}

func TestBubble_ScrimTransition(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(1000, 800))
	b := scene.AddBubbleAt(500, 400, StyleOval)

	b.SetStyle(StyleScrim)

	if !colorsEqual(b.FillColor(), RGBA8(0, 0, 0, 200), 0.01) {
		t.Errorf("scrim fill = %v", b.FillColor())
	}
	if b.BorderWidth() != 0 {
		t.Errorf("scrim borderWidth = %v, want 0", b.BorderWidth())
	}
	if !colorsEqual(b.TextColor(), White, 0.01) {
		t.Errorf("scrim textColor = %v, want white", b.TextColor())
	}
	if b.Font().Size != scrimFontSize {
		t.Errorf("scrim font size = %v, want %v", b.Font().Size, scrimFontSize)
	}
	// 7% of an 800px photo beats the 44 floor.
	if math.Abs(b.BodyRect().Height()-56) > epsilon {
		t.Errorf("scrim height = %v, want 56", b.BodyRect().Height())
	}
	if b.BodyRect().Width() != 1000 {
		t.Errorf("scrim width = %v, want full photo width", b.BodyRect().Width())
	}

	// Leaving scrim restores default body geometry.
	b.SetStyle(StyleRect)
	if b.BodyRect().Width() != DefaultWidth || b.BodyRect().Height() != DefaultHeight {
		t.Errorf("post-scrim body = %v, want default", b.BodyRect())
	}
}

func TestBubble_ScrimWithoutMediaUsesCompactDefault(t *testing.T) {
	b := newBubble(1, 0, 0, StyleOval)
	b.SetStyle(StyleScrim)
	if b.BodyRect().Height() != 60 {
		t.Errorf("height = %v, want 60", b.BodyRect().Height())
	}
}

func TestBubble_CaptionTransition(t *testing.T) {
	b := newBubble(1, 0, 0, StyleOval)
	b.SetText("hello World")

	b.SetStyle(StyleCaption)
	if b.FillColor() != Transparent {
		t.Errorf("caption fill = %v, want transparent", b.FillColor())
	}
	if !colorsEqual(b.TextColor(), White, 0.01) {
		t.Errorf("caption textColor = %v, want white", b.TextColor())
	}
	if b.Font().Size != captionFontSize {
		t.Errorf("caption font size = %v, want %v", b.Font().Size, captionFontSize)
	}
	if b.DisplayText() != "HELLO WORLD" {
		t.Errorf("DisplayText = %q, want upper case", b.DisplayText())
	}

	b.SetStyle(StyleOval)
	if !colorsEqual(b.TextColor(), RGB8(15, 15, 15), 0.01) {
		t.Errorf("post-caption textColor = %v, want default", b.TextColor())
	}
	if b.DisplayText() != "hello World" {
		t.Errorf("DisplayText = %q, want raw text", b.DisplayText())
	}
}

func TestBubble_TailVisible(t *testing.T) {
	b := newBubble(1, 0, 0, StyleOval)
	if b.TailVisible() {
		t.Error("tail handle visible while unselected")
	}
	b.SetSelected(true)
	if !b.TailVisible() {
		t.Error("tail handle hidden while selected")
	}
	b.SetStyle(StyleRect)
	if b.TailVisible() {
		t.Error("tail handle visible for tailless style")
	}
}

func TestBubble_SetBodyRectRestoresPreferredSize(t *testing.T) {
	b := newBubble(1, 0, 0, StyleRect)
	b.effectiveSize = 9 // simulate prior auto-shrink

	b.SetBodyRect(RectCentered(Point{}, 400, 400))
	if b.EffectiveFontSize() != b.Font().Size {
		t.Errorf("effective = %v, want preferred %v", b.EffectiveFontSize(), b.Font().Size)
	}
}

func TestBubble_MoveClampedToScene(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(500, 400))
	b := scene.AddBubbleAt(250, 200, StyleOval)

	b.SetPos(Pt(-1000, -1000))
	r := b.SceneBodyRect()
	if r.Min.X < -epsilon || r.Min.Y < -epsilon {
		t.Errorf("body %v escapes the scene top-left", r)
	}

	b.SetPos(Pt(1000, 1000))
	r = b.SceneBodyRect()
	if r.Max.X > 500+epsilon || r.Max.Y > 400+epsilon {
		t.Errorf("body %v escapes the scene bottom-right", r)
	}
}

func TestBubble_MoveUnclampedWithoutMedia(t *testing.T) {
	scene := NewScene()
	b := scene.AddBubbleAt(0, 0, StyleOval)
	b.SetPos(Pt(-5000, 9000))
	if !pointsEqual(b.Pos(), Pt(-5000, 9000), epsilon) {
		t.Errorf("pos = %v, want unclamped", b.Pos())
	}
}

func TestBubble_RaiseLower(t *testing.T) {
	b := newBubble(1, 0, 0, StyleOval)
	b.Raise()
	b.Raise()
	if b.Z() != 2 {
		t.Errorf("z = %v, want 2", b.Z())
	}
	b.Lower()
	b.Lower()
	b.Lower() // already at the floor
	if b.Z() != 0 {
		t.Errorf("z = %v, want floor 0", b.Z())
	}
}

func TestBubble_SnapToEdge(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(600, 400))
	b := scene.AddBubbleAt(300, 200, StyleScrim)
	h := b.BodyRect().Height()

	b.SnapToEdge(true)
	top := b.SceneBodyRect()
	if math.Abs(top.Min.Y) > epsilon || math.Abs(top.Width()-600) > epsilon {
		t.Errorf("top snap rect = %v", top)
	}

	b.SnapToEdge(false)
	bottom := b.SceneBodyRect()
	if math.Abs(bottom.Max.Y-400) > epsilon {
		t.Errorf("bottom snap rect = %v", bottom)
	}
	if math.Abs(bottom.Height()-h) > epsilon {
		t.Errorf("snap changed height: %v, want %v", bottom.Height(), h)
	}
}

func TestScene_DuplicateBubble(t *testing.T) {
	scene := NewScene()
	b := scene.AddBubbleAt(100, 100, StyleCloud)
	b.SetText("original")
	b.SetFillColor(RGB8(200, 10, 10))
	b.Raise()

	d := scene.DuplicateBubble(b)
	if d.ID() == b.ID() {
		t.Error("duplicate shares identity")
	}
	if !pointsEqual(d.Pos(), Pt(125, 125), epsilon) {
		t.Errorf("duplicate pos = %v, want +25 offset", d.Pos())
	}
	if d.Text() != "original" || !colorsEqual(d.FillColor(), b.FillColor(), 0.001) {
		t.Error("duplicate lost visual attributes")
	}
	if d.Z() != b.Z() {
		t.Errorf("duplicate z = %v, want %v", d.Z(), b.Z())
	}
	if scene.Len() != 2 {
		t.Errorf("scene has %d bubbles, want 2", scene.Len())
	}
}

var _ media.FrameSource = (*stillSource)(nil)
