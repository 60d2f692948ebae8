package export

import (
	"image"
	"testing"

	"github.com/inklet/bubble"
)

func TestEvenDim(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 4},
		{119.5, 120},
		{120, 120},
		{121, 122},
	}
	for _, tt := range tests {
		if got := evenDim(tt.in); got != tt.want {
			t.Errorf("evenDim(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCompositeOverClipped(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 4, 1))
	for i := 0; i < len(base.Pix); i += 4 {
		base.Pix[i] = 100
		base.Pix[i+1] = 100
		base.Pix[i+2] = 100
		base.Pix[i+3] = 255
	}

	overlay := bubble.NewPixmap(4, 1)
	data := overlay.Data()
	// Opaque red, half-transparent red, opaque red, opaque red.
	for x := 0; x < 4; x++ {
		data[x*4] = 255
		data[x*4+3] = 255
	}
	data[1*4+3] = 127

	compositeOverClipped(base, overlay, 3, 0, 1)

	if got := base.RGBAAt(0, 0); got.R != 255 || got.G != 0 {
		t.Errorf("opaque pixel = %v, want pure red", got)
	}
	// (100*128 + 255*127) / 255 and (100*128) / 255.
	if got := base.RGBAAt(1, 0); got.R != 177 || got.G != 50 {
		t.Errorf("blended pixel = %v, want (177, 50, 50)", got)
	}
	if got := base.RGBAAt(3, 0); got.R != 100 {
		t.Errorf("clipped pixel = %v, want untouched base", got)
	}
}

func TestCompositeOverClipped_ClipsPhotoRowsOnly(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 4, 3))
	overlay := bubble.NewPixmap(4, 3)
	data := overlay.Data()
	for i := 0; i < len(data); i += 4 {
		data[i] = 255
		data[i+3] = 255
	}

	// Clip columns at x=2 for the middle row only.
	compositeOverClipped(base, overlay, 2, 1, 2)

	for _, y := range []int{0, 2} {
		if got := base.RGBAAt(3, y); got.R != 255 {
			t.Errorf("row %d outside clip range = %v, want full-width red", y, got)
		}
	}
	if got := base.RGBAAt(3, 1); got.R != 0 {
		t.Errorf("clipped row pixel = %v, want untouched base", got)
	}
	if got := base.RGBAAt(1, 1); got.R != 255 {
		t.Errorf("clipped row left of maxX = %v, want red", got)
	}
}

func TestCompositeOverClipped_SkipsTransparent(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range base.Pix {
		base.Pix[i] = 42
	}
	overlay := bubble.NewPixmap(2, 2)

	compositeOverClipped(base, overlay, 2, 0, 2)
	for i := range base.Pix {
		if base.Pix[i] != 42 {
			t.Fatalf("transparent overlay modified base at %d", i)
		}
	}
}

func TestRGBAToRGB24(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 2, 1))
	copy(frame.Pix, []byte{1, 2, 3, 255, 4, 5, 6, 128})

	buf := rgbaToRGB24(frame, nil)
	want := []byte{1, 2, 3, 4, 5, 6}
	if len(buf) != len(want) {
		t.Fatalf("len = %d, want %d", len(buf), len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf = %v, want %v", buf, want)
		}
	}

	// A correctly sized buffer is reused, not reallocated.
	again := rgbaToRGB24(frame, buf)
	if &again[0] != &buf[0] {
		t.Error("buffer was reallocated despite matching size")
	}
}
