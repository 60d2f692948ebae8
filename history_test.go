package bubble

import "testing"

func TestHistory_PushExecutesImmediately(t *testing.T) {
	scene := NewScene()
	b := newBubble(1, 0, 0, StyleOval)

	scene.History().Push(&AddBubbleCommand{Scene: scene, Bubble: b})
	if scene.Len() != 1 {
		t.Fatal("add command did not apply on push")
	}

	scene.History().Undo()
	if scene.Len() != 0 {
		t.Error("undo did not detach the bubble")
	}
	scene.History().Redo()
	if scene.Len() != 1 {
		t.Error("redo did not re-attach the bubble")
	}
}

func TestHistory_MoveMergesSameBubble(t *testing.T) {
	scene := NewScene()
	b := scene.AddBubbleAt(0, 0, StyleOval)
	h := scene.History()
	start := h.Len()

	// A drag arrives as many small moves; they collapse into one step.
	scene.MoveBubble(b, Pt(10, 0))
	scene.MoveBubble(b, Pt(20, 0))
	scene.MoveBubble(b, Pt(30, 0))

	if h.Len() != start+1 {
		t.Fatalf("history grew by %d, want 1", h.Len()-start)
	}
	if !pointsEqual(b.Pos(), Pt(30, 0), epsilon) {
		t.Errorf("pos = %v, want (30, 0)", b.Pos())
	}

	// One undo restores the original start position.
	h.Undo()
	if !pointsEqual(b.Pos(), Pt(0, 0), epsilon) {
		t.Errorf("undo pos = %v, want (0, 0)", b.Pos())
	}
}

func TestHistory_MoveDoesNotMergeAcrossBubbles(t *testing.T) {
	scene := NewScene()
	a := scene.AddBubbleAt(0, 0, StyleOval)
	b := scene.AddBubbleAt(100, 0, StyleOval)
	h := scene.History()
	start := h.Len()

	scene.MoveBubble(a, Pt(10, 0))
	scene.MoveBubble(b, Pt(110, 0))

	if h.Len() != start+2 {
		t.Errorf("history grew by %d, want 2", h.Len()-start)
	}
}

func TestHistory_ResizeBreaksMoveMergeChain(t *testing.T) {
	scene := NewScene()
	b := scene.AddBubbleAt(0, 0, StyleOval)
	h := scene.History()
	start := h.Len()

	scene.MoveBubble(b, Pt(10, 0))
	scene.ResizeBubble(b, RectCentered(Point{}, 300, 200))
	scene.MoveBubble(b, Pt(20, 0))

	if h.Len() != start+3 {
		t.Errorf("history grew by %d, want 3", h.Len()-start)
	}
}

func TestHistory_PushClearsRedo(t *testing.T) {
	scene := NewScene()
	b := scene.AddBubbleAt(0, 0, StyleOval)
	h := scene.History()

	scene.MoveBubble(b, Pt(10, 0))
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	scene.MoveBubble(b, Pt(50, 50))
	if h.CanRedo() {
		t.Error("push did not clear the redo stack")
	}
}

func TestHistory_TextCommand(t *testing.T) {
	scene := NewScene()
	b := scene.AddBubbleAt(0, 0, StyleOval)

	scene.SetBubbleText(b, "first")
	scene.SetBubbleText(b, "second")

	if b.Text() != "second" {
		t.Fatalf("text = %q", b.Text())
	}
	// Text commands never merge.
	scene.History().Undo()
	if b.Text() != "first" {
		t.Errorf("after undo text = %q, want %q", b.Text(), "first")
	}
	scene.History().Undo()
	if b.Text() != DefaultText {
		t.Errorf("after second undo text = %q, want default", b.Text())
	}
}

func TestHistory_DeleteUndoRestores(t *testing.T) {
	scene := NewScene()
	b := scene.AddBubbleAt(0, 0, StyleOval)
	b.SetText("keep me")

	scene.DeleteBubble(b)
	if scene.Len() != 0 {
		t.Fatal("delete did not remove the bubble")
	}
	scene.History().Undo()
	if scene.Len() != 1 || scene.Bubbles()[0].Text() != "keep me" {
		t.Error("undo did not restore the deleted bubble intact")
	}
}

func TestHistory_MediaMoveMergesSameSlot(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(400, 300))
	slot := scene.Left()
	h := scene.History()
	start := h.Len()

	scene.MoveMedia(slot, Pt(5, 5))
	scene.MoveMedia(slot, Pt(10, 10))

	if h.Len() != start+1 {
		t.Fatalf("history grew by %d, want 1", h.Len()-start)
	}
	if !pointsEqual(slot.DisplayRect().Min, Pt(10, 10), epsilon) {
		t.Errorf("slot at %v, want (10, 10)", slot.DisplayRect().Min)
	}
	h.Undo()
	if !pointsEqual(slot.DisplayRect().Min, Pt(0, 0), epsilon) {
		t.Errorf("undo slot at %v, want origin", slot.DisplayRect().Min)
	}
}

func TestHistory_MediaResizeClampsToMinimum(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(400, 300))
	slot := scene.Left()

	scene.ResizeMedia(slot, RectXYWH(0, 0, 10, 10))
	r := slot.DisplayRect()
	if r.Width() != MinDisplaySize || r.Height() != MinDisplaySize {
		t.Errorf("display = %vx%v, want clamped to %v", r.Width(), r.Height(), MinDisplaySize)
	}
}

func TestHistory_Clear(t *testing.T) {
	scene := NewScene()
	b := scene.AddBubbleAt(0, 0, StyleOval)
	scene.MoveBubble(b, Pt(10, 10))

	h := scene.History()
	h.Clear()
	if h.CanUndo() || h.CanRedo() || h.Len() != 0 {
		t.Error("clear left history state behind")
	}
}
