package media

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestExtensionDetection(t *testing.T) {
	tests := []struct {
		path  string
		image bool
		video bool
	}{
		{"photo.JPG", true, false},
		{"photo.webp", true, false},
		{"clip.mp4", false, true},
		{"clip.MKV", false, true},
		{"notes.txt", false, false},
		{"noext", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsImagePath(tt.path); got != tt.image {
				t.Errorf("IsImagePath = %v, want %v", got, tt.image)
			}
			if got := IsVideoPath(tt.path); got != tt.video {
				t.Errorf("IsVideoPath = %v, want %v", got, tt.video)
			}
		})
	}
}

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.White)

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImageSource(t *testing.T) {
	path := writeTestPNG(t, 8, 6)
	src, err := OpenImage(path)
	if err != nil {
		t.Fatal(err)
	}

	if src.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", src.FrameCount())
	}
	if src.FPS() != 0 {
		t.Errorf("FPS = %v, want 0", src.FPS())
	}
	w, h := src.Size()
	if w != 8 || h != 6 {
		t.Errorf("Size = %dx%d, want 8x6", w, h)
	}

	// Any frame index returns the single decoded frame.
	f0, err := src.Frame(0)
	if err != nil {
		t.Fatal(err)
	}
	f9, err := src.Frame(99)
	if err != nil {
		t.Fatal(err)
	}
	if f0 != f9 {
		t.Error("different frame objects for a still image")
	}

	src.Release()
	if _, err := src.Frame(0); !errors.Is(err, ErrReleased) {
		t.Errorf("Frame after release = %v, want ErrReleased", err)
	}
}

func TestOpenImage_MissingFile(t *testing.T) {
	if _, err := OpenImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	if _, err := Open("document.pdf"); err == nil {
		t.Error("expected error for unsupported type")
	}
}
