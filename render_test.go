package bubble

import "testing"

func TestRenderOverlay_TransparentBackground(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(200, 100))

	pm := scene.RenderOverlay(200, 100)
	if pm.Width() != 200 || pm.Height() != 100 {
		t.Fatalf("overlay size = %dx%d", pm.Width(), pm.Height())
	}
	// No bubbles: every pixel stays fully transparent.
	data := pm.Data()
	for i := 3; i < len(data); i += 4 {
		if data[i] != 0 {
			t.Fatalf("pixel %d has alpha %d on an empty overlay", i/4, data[i])
		}
	}
}

func TestRenderOverlay_PaintsBubble(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(400, 300))
	b := scene.AddBubbleAt(200, 150, StyleRect)
	b.SetFillColor(RGB8(255, 0, 0))

	pm := scene.RenderOverlay(400, 300)

	centre := pm.GetPixel(200, 150)
	if centre.A < 0.9 || centre.R < 0.9 {
		t.Errorf("bubble centre = %v, want opaque red", centre)
	}
	corner := pm.GetPixel(2, 2)
	if corner.A > 0.01 {
		t.Errorf("far corner = %v, want transparent", corner)
	}
}

func TestRenderOverlay_ScalesWithOutputSize(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(400, 300))
	b := scene.AddBubbleAt(200, 150, StyleRect)
	b.SetFillColor(Black)

	// Rendering at double resolution keeps the bubble centred.
	pm := scene.RenderOverlay(800, 600)
	if got := pm.GetPixel(400, 300); got.A < 0.9 {
		t.Errorf("scaled centre = %v, want painted", got)
	}
	// The default 220-wide body maps to 440 pixels; just outside is clear.
	if got := pm.GetPixel(400+230, 300); got.A > 0.01 {
		t.Errorf("outside scaled body = %v, want transparent", got)
	}
}

func TestRenderOverlay_MemeBars(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(400, 400))
	scene.EnableMemeMode()

	b := scene.Bounds()
	outW, outH := 400, int(b.Height())
	pm := scene.RenderOverlay(outW, outH)

	// Top bar row is dark and mostly opaque.
	if got := pm.GetPixel(200, 2); got.A < 0.7 || got.R > 0.1 {
		t.Errorf("top bar pixel = %v, want dark", got)
	}
	// Photo area (no bubbles) stays transparent.
	if got := pm.GetPixel(200, outH/2); got.A > 0.01 {
		t.Errorf("photo area pixel = %v, want transparent", got)
	}
}

func TestRender_PhotoComposite(t *testing.T) {
	scene := NewScene()
	scene.SetMedia(newStillSource(120, 80))
	b := scene.AddBubbleAt(60, 40, StyleRect)
	b.SetBodyRect(RectCentered(Point{}, 70, 70))
	b.SetFillColor(RGB8(0, 255, 0))

	pm, err := scene.Render()
	if err != nil {
		t.Fatal(err)
	}
	if pm.Width() != 120 || pm.Height() != 80 {
		t.Fatalf("render size = %dx%d", pm.Width(), pm.Height())
	}
	if got := pm.GetPixel(60, 40); got.G < 0.9 {
		t.Errorf("bubble pixel = %v, want green", got)
	}
	// Media pixel outside the bubble: the blank still decodes as
	// transparent black, composited over the cleared pixmap.
	if got := pm.GetPixel(5, 40); got.G > 0.1 {
		t.Errorf("media pixel = %v, want background", got)
	}
}
