package bubble

import (
	"math"
	"testing"
)

func TestScene_BoundsWithoutMedia(t *testing.T) {
	scene := NewScene()
	if !scene.Bounds().IsEmpty() {
		t.Errorf("empty scene bounds = %v", scene.Bounds())
	}
	if scene.HasMedia() {
		t.Error("HasMedia true on empty scene")
	}
}

func TestScene_BoundsSingle(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(640, 480))

	want := RectXYWH(0, 0, 640, 480)
	if scene.Bounds() != want {
		t.Errorf("bounds = %v, want %v", scene.Bounds(), want)
	}
}

func TestScene_SetMediaReplacesAndResetsModes(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(640, 480))
	scene.EnableDual()
	scene.EnableMemeMode()

	scene.SetMedia(newStillSource(100, 100))
	if scene.DualMode() || scene.MemeMode() {
		t.Error("loading new media kept old modes")
	}
	if scene.Bounds() != RectXYWH(0, 0, 100, 100) {
		t.Errorf("bounds = %v", scene.Bounds())
	}
}

func TestScene_DualRightScaledToLeftHeight(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(400, 200))
	scene.EnableDual()

	// 300x600 native: height-matched scale halves... scales to 200 high.
	scene.SetRightMedia(newStillSource(300, 600))

	right := scene.Right()
	if right == nil {
		t.Fatal("right slot missing")
	}
	rr := right.DisplayRect()
	if math.Abs(rr.Height()-200) > epsilon {
		t.Errorf("right height = %v, want 200 (left height)", rr.Height())
	}
	if math.Abs(rr.Width()-100) > epsilon {
		t.Errorf("right width = %v, want 100 (aspect preserved)", rr.Width())
	}
	// Snapped flush to the left panel plus the gap.
	if math.Abs(rr.Min.X-(400+dualGap)) > epsilon {
		t.Errorf("right x = %v, want %v", rr.Min.X, 400+dualGap)
	}

	want := RectXYWH(0, 0, 400+dualGap+100, 200)
	if scene.Bounds() != want {
		t.Errorf("bounds = %v, want %v", scene.Bounds(), want)
	}
}

func TestScene_DualRightResnapsAfterLeftResize(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(400, 200))
	scene.EnableDual()
	scene.SetRightMedia(newStillSource(400, 200))

	scene.ResizeMedia(scene.Left(), RectXYWH(0, 0, 500, 200))

	rr := scene.Right().DisplayRect()
	if math.Abs(rr.Min.X-(500+dualGap)) > epsilon {
		t.Errorf("right x = %v, want snapped at %v", rr.Min.X, 500+dualGap)
	}
}

func TestScene_ResizeMediaHonorsAspectLock(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(400, 200))
	m := scene.Left()
	if !m.LockAspect() {
		t.Fatal("aspect lock not on by default")
	}

	// Locked: height re-derives from the width at the native 2:1 ratio.
	scene.ResizeMedia(m, RectXYWH(0, 0, 300, 300))
	r := m.DisplayRect()
	if math.Abs(r.Width()-300) > epsilon || math.Abs(r.Height()-150) > epsilon {
		t.Errorf("locked resize = %vx%v, want 300x150", r.Width(), r.Height())
	}

	// Unlocked: the dragged rect applies as-is.
	m.SetLockAspect(false)
	scene.ResizeMedia(m, RectXYWH(0, 0, 300, 300))
	r = m.DisplayRect()
	if math.Abs(r.Width()-300) > epsilon || math.Abs(r.Height()-300) > epsilon {
		t.Errorf("free resize = %vx%v, want 300x300", r.Width(), r.Height())
	}
}

func TestScene_DisableDualReleasesRight(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(400, 200))
	scene.EnableDual()
	scene.SetRightMedia(newStillSource(400, 200))

	scene.DisableDual()
	if scene.Right() != nil || scene.DualMode() {
		t.Error("dual state not cleared")
	}
	if scene.Bounds() != RectXYWH(0, 0, 400, 200) {
		t.Errorf("bounds = %v", scene.Bounds())
	}
}

func TestScene_MemeBars(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(800, 600))

	scene.EnableMemeMode()
	top, bottom := scene.MemeBars()
	if top == nil || bottom == nil {
		t.Fatal("meme bars missing")
	}
	if top.Text() != "TOP TEXT" || bottom.Text() != "BOTTOM TEXT" {
		t.Errorf("default texts = %q / %q", top.Text(), bottom.Text())
	}

	barH := 600 * captionBarFraction
	if math.Abs(top.Rect().Height()-barH) > epsilon {
		t.Errorf("bar height = %v, want %v", top.Rect().Height(), barH)
	}
	if math.Abs(top.Rect().Max.Y-0) > epsilon {
		t.Errorf("top bar bottom = %v, want flush with photo top", top.Rect().Max.Y)
	}
	if math.Abs(bottom.Rect().Min.Y-600) > epsilon {
		t.Errorf("bottom bar top = %v, want flush with photo bottom", bottom.Rect().Min.Y)
	}

	// Bounds extend vertically to include both bars.
	b := scene.Bounds()
	if math.Abs(b.Height()-(600+2*barH)) > epsilon {
		t.Errorf("bounds height = %v, want %v", b.Height(), 600+2*barH)
	}

	t.Run("lowercase text renders upper", func(t *testing.T) {
		top.SetText("when it compiles")
		if top.DisplayText() != "WHEN IT COMPILES" {
			t.Errorf("DisplayText = %q", top.DisplayText())
		}
	})

	t.Run("bars span both panels in dual mode", func(t *testing.T) {
		scene.EnableDual()
		scene.SetRightMedia(newStillSource(800, 600))
		if math.Abs(top.Rect().Width()-(800+dualGap+800)) > epsilon {
			t.Errorf("bar width = %v, want both panels", top.Rect().Width())
		}
	})

	scene.DisableMemeMode()
	if scene.MemeMode() {
		t.Error("meme mode still active")
	}
}

func TestScene_MemeModeRequiresMedia(t *testing.T) {
	scene := NewScene()
	scene.EnableMemeMode()
	if scene.MemeMode() {
		t.Error("meme mode enabled without media")
	}
}

func TestScene_BubblesRenderOrder(t *testing.T) {
	scene := NewScene()
	a := scene.AddBubbleAt(0, 0, StyleOval)
	b := scene.AddBubbleAt(0, 0, StyleOval)
	c := scene.AddBubbleAt(0, 0, StyleOval)
	a.Raise()
	a.Raise()
	b.Raise()

	got := scene.Bubbles()
	want := []*Bubble{c, b, a}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d] = bubble %d, want bubble %d", i, got[i].ID(), want[i].ID())
		}
	}
}

func TestScene_CurrentFrameClampsRight(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(100, 100))
	scene.EnableDual()
	scene.SetRightMedia(newStillSource(100, 100))

	scene.SetCurrentFrame(42)
	if scene.Left().CurrentFrame() != 42 {
		t.Errorf("left frame = %d", scene.Left().CurrentFrame())
	}
	// A one-frame right source clamps to its own last frame.
	if scene.Right().CurrentFrame() != 0 {
		t.Errorf("right frame = %d, want 0", scene.Right().CurrentFrame())
	}
}
