package media

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/inklet/bubble/internal/ffmpeg"
)

// VideoSource decodes a video file through an external ffmpeg process.
// Sequential access rides a single long-lived decoder; any other index
// restarts the decoder with a seek. Decoded frames land in an LRU cache
// so scrubbing near the playhead stays cheap.
//
// VideoSource is not safe for concurrent use.
type VideoSource struct {
	path  string
	info  ffmpeg.Info
	cache *FrameCache
	edits *Edits

	reader   *ffmpeg.FrameReader
	lastRead int // index the reader last produced, -1 when fresh
	released bool
}

// OpenVideo probes a video file and prepares a decoder for it. No
// frames are decoded until the first Frame call.
func OpenVideo(path string) (*VideoSource, error) {
	info, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, err
	}
	if info.FrameCount <= 0 {
		return nil, fmt.Errorf("media: %s has no frames", path)
	}

	return &VideoSource{
		path:     path,
		info:     info,
		cache:    NewFrameCache(info.Width, info.Height),
		edits:    NewEdits(info.FrameCount),
		lastRead: -1,
	}, nil
}

// Path returns the originating file path.
func (s *VideoSource) Path() string { return s.path }

// FrameCount returns the probed frame count.
func (s *VideoSource) FrameCount() int { return s.info.FrameCount }

// FPS returns the native frame rate.
func (s *VideoSource) FPS() float64 { return s.info.FPS }

// Size returns the pixel dimensions.
func (s *VideoSource) Size() (int, int) { return s.info.Width, s.info.Height }

// Duration returns the probed duration in seconds.
func (s *VideoSource) Duration() float64 { return s.info.Duration }

// HasAudio reports whether the container carries an audio stream.
func (s *VideoSource) HasAudio() bool { return s.info.HasAudio }

// Edits returns the mutable edit state.
func (s *VideoSource) Edits() *Edits { return s.edits }

// Frame returns the decoded frame at index i, serving from cache when
// possible. Out-of-range indices clamp.
func (s *VideoSource) Frame(i int) (*image.RGBA, error) {
	if s.released {
		return nil, ErrReleased
	}
	i = clampInt(i, 0, s.info.FrameCount-1)

	if f, ok := s.cache.Get(i); ok {
		return f, nil
	}

	// Anything but the next sequential frame means a fresh seek.
	if s.reader == nil || i != s.lastRead+1 {
		if err := s.restartAt(i); err != nil {
			return nil, err
		}
	}

	raw, err := s.reader.Next()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("media: frame %d past end of %s: %w", i, s.path, err)
		}
		return nil, fmt.Errorf("media: decode frame %d of %s: %w", i, s.path, err)
	}

	frame := rgb24ToRGBA(raw, s.info.Width, s.info.Height)
	s.cache.Put(i, frame)
	s.lastRead = i
	return frame, nil
}

// restartAt replaces the decoder with one seeked to frame i.
func (s *VideoSource) restartAt(i int) error {
	if s.reader != nil {
		_ = s.reader.Close()
		s.reader = nil
	}
	r, err := ffmpeg.OpenReader(s.path, i, s.info.FPS, s.info.Width, s.info.Height)
	if err != nil {
		return err
	}
	s.reader = r
	s.lastRead = i - 1
	return nil
}

// Release kills the decoder process and drops cached frames.
func (s *VideoSource) Release() {
	if s.reader != nil {
		_ = s.reader.Close()
		s.reader = nil
	}
	s.cache.Clear()
	s.released = true
}

// rgb24ToRGBA expands a packed RGB24 frame into an image.RGBA.
func rgb24ToRGBA(raw []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	n := width * height
	for i := 0; i < n; i++ {
		si := i * 3
		di := i * 4
		img.Pix[di] = raw[si]
		img.Pix[di+1] = raw[si+1]
		img.Pix[di+2] = raw[si+2]
		img.Pix[di+3] = 0xFF
	}
	return img
}
