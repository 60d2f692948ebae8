// Package export renders scenes to image and video files: photo export
// at display resolution, and a frame-by-frame video export loop that
// alpha-composites a pre-rendered bubble overlay onto decoded frames.
package export

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/inklet/bubble"
)

// evenDim rounds a dimension up to the next even value; most codecs
// require even frame sizes.
func evenDim(v float64) int {
	n := int(v)
	if float64(n) < v {
		n++
	}
	if n%2 != 0 {
		n++
	}
	if n < 2 {
		n = 2
	}
	return n
}

// drawScaled scales src into the dst sub-rectangle.
func drawScaled(dst *image.RGBA, r image.Rectangle, src image.Image) {
	xdraw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), xdraw.Src, nil)
}

// compositeOverClipped blends the overlay onto base in place using the
// overlay's own alpha channel, out = base*(1-a) + overlay*a. Rows in
// [clipMinY, clipMaxY) take columns left of maxX only; rows outside
// composite the full width. Dual exports pass the left panel's edge and
// vertical extent, so bubbles land on the left panel while the meme
// bars above and below the photo keep their full span.
func compositeOverClipped(base *image.RGBA, overlay *bubble.Pixmap, maxX, clipMinY, clipMaxY int) {
	fullW := overlay.Width()
	if bw := base.Bounds().Dx(); bw < fullW {
		fullW = bw
	}
	clippedW := fullW
	if maxX < clippedW {
		clippedW = maxX
	}
	h := overlay.Height()
	if bh := base.Bounds().Dy(); bh < h {
		h = bh
	}

	data := overlay.Data()
	for y := 0; y < h; y++ {
		w := fullW
		if y >= clipMinY && y < clipMaxY {
			w = clippedW
		}
		si := y * overlay.Width() * 4
		di := base.PixOffset(0, y)
		for x := 0; x < w; x++ {
			a := uint32(data[si+3])
			if a != 0 {
				inv := 255 - a
				base.Pix[di] = uint8((uint32(base.Pix[di])*inv + uint32(data[si])*a) / 255)
				base.Pix[di+1] = uint8((uint32(base.Pix[di+1])*inv + uint32(data[si+1])*a) / 255)
				base.Pix[di+2] = uint8((uint32(base.Pix[di+2])*inv + uint32(data[si+2])*a) / 255)
				base.Pix[di+3] = 0xFF
			}
			si += 4
			di += 4
		}
	}
}

// rgbaToRGB24 packs an RGBA frame into the RGB24 layout ffmpeg expects,
// reusing buf when it has the right size.
func rgbaToRGB24(frame *image.RGBA, buf []byte) []byte {
	b := frame.Bounds()
	n := b.Dx() * b.Dy()
	if len(buf) != n*3 {
		buf = make([]byte, n*3)
	}
	for i := 0; i < n; i++ {
		si := i * 4
		di := i * 3
		buf[di] = frame.Pix[si]
		buf[di+1] = frame.Pix[si+1]
		buf[di+2] = frame.Pix[si+2]
	}
	return buf
}
