// Package media loads background photos and videos as frame sources:
// random-access decoded RGBA frames plus the edit state (trim, cuts,
// reverse) that shapes playback and export.
package media

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	// Stdlib and x/image decoders for the accepted photo formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrReleased reports a frame request on a released source.
var ErrReleased = errors.New("media: source released")

// ImageExtensions lists the accepted photo file extensions.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".webp"}

// VideoExtensions lists the accepted video file extensions.
var VideoExtensions = []string{
	".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v",
	".flv", ".wmv", ".ts", ".mts",
}

// IsImagePath reports whether the path has a photo extension.
func IsImagePath(path string) bool {
	return hasExtension(path, ImageExtensions)
}

// IsVideoPath reports whether the path has a video extension.
func IsVideoPath(path string) bool {
	return hasExtension(path, VideoExtensions)
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// FrameSource is random access to the decoded frames of a media file.
// A static image is a one-frame source, which lets photo and video flow
// through the same rendering and export paths.
type FrameSource interface {
	// Path returns the originating file path.
	Path() string

	// FrameCount returns the number of frames; 1 for images.
	FrameCount() int

	// FPS returns the native frame rate; 0 for images.
	FPS() float64

	// Size returns the pixel dimensions.
	Size() (w, h int)

	// Frame returns the decoded frame at index i. Indices clamp to the
	// valid range. Returns ErrReleased after Release.
	Frame(i int) (*image.RGBA, error)

	// Release frees decoder processes and cached frames. The source is
	// unusable afterwards.
	Release()
}

// Open loads a path as the matching source kind by extension.
func Open(path string) (FrameSource, error) {
	switch {
	case IsImagePath(path):
		return OpenImage(path)
	case IsVideoPath(path):
		return OpenVideo(path)
	default:
		return nil, fmt.Errorf("media: unsupported file type %q", filepath.Ext(path))
	}
}

// ImageSource is a single decoded photo exposed as a one-frame source.
type ImageSource struct {
	path     string
	frame    *image.RGBA
	released bool
}

// OpenImage decodes a photo file.
func OpenImage(path string) (*ImageSource, error) {
	f, err := os.Open(path) //nolint:gosec // user-chosen media path by design
	if err != nil {
		return nil, fmt.Errorf("media: open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("media: decode %s: %w", path, err)
	}

	return &ImageSource{path: path, frame: toRGBA(img)}, nil
}

// Path returns the originating file path.
func (s *ImageSource) Path() string { return s.path }

// FrameCount returns 1.
func (s *ImageSource) FrameCount() int { return 1 }

// FPS returns 0; images have no frame rate.
func (s *ImageSource) FPS() float64 { return 0 }

// Size returns the photo dimensions.
func (s *ImageSource) Size() (int, int) {
	b := s.frame.Bounds()
	return b.Dx(), b.Dy()
}

// Frame returns the photo for any index.
func (s *ImageSource) Frame(int) (*image.RGBA, error) {
	if s.released {
		return nil, ErrReleased
	}
	return s.frame, nil
}

// Release frees the decoded pixels.
func (s *ImageSource) Release() {
	s.frame = nil
	s.released = true
}

// toRGBA converts any decoded image to RGBA, reusing it when already in
// that format with a zero origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
