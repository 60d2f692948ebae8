package export

import (
	"image"

	"github.com/inklet/bubble/internal/ffmpeg"
)

// FrameWriter receives the composited frames of a video export. The
// production implementation feeds an encoding ffmpeg process; tests use
// MemoryWriter.
type FrameWriter interface {
	// WriteFrame appends one frame. The writer must copy anything it
	// keeps; the export loop reuses the frame buffer.
	WriteFrame(frame *image.RGBA) error

	// Close flushes and finalizes the output.
	Close() error

	// Abort discards the output without flushing.
	Abort()
}

// WriterFactory opens a FrameWriter for an output path and format.
type WriterFactory func(path string, width, height int, fps float64) (FrameWriter, error)

// encoderWriter adapts the ffmpeg raw-frame encoder to FrameWriter.
type encoderWriter struct {
	enc *ffmpeg.FrameWriter
	buf []byte
}

// newEncoderWriter is the default WriterFactory.
func newEncoderWriter(crf int, preset string) WriterFactory {
	return func(path string, width, height int, fps float64) (FrameWriter, error) {
		enc, err := ffmpeg.OpenWriter(path, width, height, fps, crf, preset)
		if err != nil {
			return nil, err
		}
		return &encoderWriter{enc: enc}, nil
	}
}

func (w *encoderWriter) WriteFrame(frame *image.RGBA) error {
	w.buf = rgbaToRGB24(frame, w.buf)
	return w.enc.WriteFrame(w.buf)
}

func (w *encoderWriter) Close() error { return w.enc.Close() }
func (w *encoderWriter) Abort()       { w.enc.Abort() }

// MemoryWriter collects frames in memory. It exists for tests and for
// callers that post-process frames themselves.
type MemoryWriter struct {
	Frames  []*image.RGBA
	Closed  bool
	Aborted bool
}

// WriteFrame stores a deep copy of the frame.
func (w *MemoryWriter) WriteFrame(frame *image.RGBA) error {
	cp := image.NewRGBA(frame.Bounds())
	copy(cp.Pix, frame.Pix)
	w.Frames = append(w.Frames, cp)
	return nil
}

// Close marks the writer finished.
func (w *MemoryWriter) Close() error {
	w.Closed = true
	return nil
}

// Abort marks the writer cancelled.
func (w *MemoryWriter) Abort() {
	w.Aborted = true
}
