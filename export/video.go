package export

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/inklet/bubble"
	"github.com/inklet/bubble/internal/ffmpeg"
	"github.com/inklet/bubble/media"
)

// ErrCanceled reports a user-initiated export cancellation. Partial
// output has been removed.
var ErrCanceled = errors.New("export: canceled")

// ErrNoMedia reports an export attempt on a scene without media.
var ErrNoMedia = errors.New("export: scene has no media")

// VideoOptions tunes a video export. The zero value is usable.
type VideoOptions struct {
	// CRF is the x264 quality factor; 0 means 18.
	CRF int

	// Preset is the x264 speed preset; empty means "veryfast".
	Preset string

	// Progress, when set, is called after every written frame.
	Progress func(done, total int)

	// Cancel, when set, is polled before every frame; returning true
	// aborts the export and removes partial output.
	Cancel func() bool

	// NewWriter overrides the ffmpeg-backed frame writer, mainly for
	// tests.
	NewWriter WriterFactory
}

// editedSource is a frame source carrying video edit state; the ffmpeg
// VideoSource satisfies it.
type editedSource interface {
	media.FrameSource
	Edits() *media.Edits
}

// Video exports the scene as a video file. The bubble overlay is
// rendered once; every exported frame is the decoded media composited
// under that overlay. Audio from the source is remuxed in a best-effort
// final pass, offset by the first exported frame's time.
func Video(scene *bubble.Scene, output string, opts VideoOptions) error {
	left := scene.Left()
	if left == nil {
		return ErrNoMedia
	}
	src := left.Source()

	frames, fps, err := exportSequence(src)
	if err != nil {
		return err
	}

	bounds := scene.Bounds()
	outW := evenDim(bounds.Width())
	outH := evenDim(bounds.Height())

	sx := float64(outW) / bounds.Width()
	sy := float64(outH) / bounds.Height()
	toPixels := func(r bubble.Rect) image.Rectangle {
		return image.Rect(
			int((r.Min.X-bounds.Min.X)*sx),
			int((r.Min.Y-bounds.Min.Y)*sy),
			int((r.Max.X-bounds.Min.X)*sx),
			int((r.Max.Y-bounds.Min.Y)*sy),
		)
	}

	leftRect := toPixels(left.DisplayRect())
	var rightRect image.Rectangle
	var rightSrc media.FrameSource
	if scene.DualMode() && scene.Right() != nil {
		rightRect = toPixels(scene.Right().DisplayRect())
		rightSrc = scene.Right().Source()
	}

	// Bubbles are static across the video, so the vector overlay is
	// rasterized exactly once.
	overlay := scene.RenderOverlay(outW, outH)
	overlayMaxX := outW
	clipMinY, clipMaxY := 0, outH
	if rightSrc != nil || scene.DualMode() {
		// Dual exports carry the bubble overlay on the left panel only;
		// the clip spares the meme bar rows above and below the photo.
		overlayMaxX = leftRect.Max.X
		clipMinY = leftRect.Min.Y
		clipMaxY = leftRect.Max.Y
	}

	newWriter := opts.NewWriter
	if newWriter == nil {
		crf := opts.CRF
		if crf <= 0 {
			crf = 18
		}
		newWriter = newEncoderWriter(crf, opts.Preset)
	}

	tmp := output + ".noaudio.mp4"
	writer, err := newWriter(tmp, outW, outH, fps)
	if err != nil {
		return err
	}

	base := image.NewRGBA(image.Rect(0, 0, outW, outH))
	for i, idx := range frames {
		if opts.Cancel != nil && opts.Cancel() {
			writer.Abort()
			_ = os.Remove(tmp)
			return ErrCanceled
		}

		clearRGBA(base)
		drawSourceFrame(base, leftRect, src, idx)
		if rightSrc != nil {
			ri := idx
			if n := rightSrc.FrameCount(); ri >= n {
				ri = n - 1
			}
			drawSourceFrame(base, rightRect, rightSrc, ri)
		}
		compositeOverClipped(base, overlay, overlayMaxX, clipMinY, clipMaxY)

		if err := writer.WriteFrame(base); err != nil {
			writer.Abort()
			_ = os.Remove(tmp)
			return fmt.Errorf("export: write frame %d: %w", i, err)
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(frames))
		}
	}

	if err := writer.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("export: finalize video: %w", err)
	}

	return finishWithAudio(tmp, output, src, frames, fps)
}

// exportSequence resolves the frame order and rate for the primary
// source: edited videos honor trim/cuts/reverse, plain videos export
// every frame.
func exportSequence(src media.FrameSource) ([]int, float64, error) {
	fps := src.FPS()
	if fps <= 0 {
		fps = 25
	}
	if es, ok := src.(editedSource); ok {
		return es.Edits().ExportFrames(), fps, nil
	}
	n := src.FrameCount()
	if n < 1 {
		return nil, 0, fmt.Errorf("export: %s has no frames", src.Path())
	}
	frames := make([]int, n)
	for i := range frames {
		frames[i] = i
	}
	return frames, fps, nil
}

// drawSourceFrame decodes and scales one frame into the base canvas.
// Decode failures leave the region blank rather than aborting.
func drawSourceFrame(base *image.RGBA, r image.Rectangle, src media.FrameSource, idx int) {
	frame, err := src.Frame(idx)
	if err != nil {
		bubble.Logger().Warn("frame unavailable, writing blank",
			"path", src.Path(), "frame", idx, "error", err)
		return
	}
	drawScaled(base, r, frame)
}

// finishWithAudio attempts to mux the source audio into the final
// output; on any failure the silent temp file becomes the output.
func finishWithAudio(tmp, output string, src media.FrameSource, frames []int, fps float64) error {
	hasAudio := false
	if a, ok := src.(interface{ HasAudio() bool }); ok {
		hasAudio = a.HasAudio()
	}
	if hasAudio && len(frames) > 0 {
		offset := float64(frames[0]) / fps
		if err := ffmpeg.MuxAudio(tmp, src.Path(), output, offset); err == nil {
			_ = os.Remove(tmp)
			return nil
		} else {
			bubble.Logger().Warn("audio mux failed, keeping video-only output",
				"error", err)
		}
	}
	if err := os.Rename(tmp, output); err != nil {
		return fmt.Errorf("export: move output into place: %w", err)
	}
	return nil
}

// clearRGBA resets the canvas to opaque black.
func clearRGBA(img *image.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0
		img.Pix[i+1] = 0
		img.Pix[i+2] = 0
		img.Pix[i+3] = 0xFF
	}
}
