package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/kayn/internal/pixel"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	img := createPatternImage(4, 4)

	buf, w, h := FromImage(img)
	if w != 4 || h != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", w, h)
	}

	tests := []struct {
		name string
		x, y int
		want pixel.Packed
	}{
		{"red top-left", 0, 0, 0xFF0000},
		{"green top-right", 3, 0, 0x00FF00},
		{"blue bottom-left", 0, 3, 0x0000FF},
		{"white bottom-right", 3, 3, 0xFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pixel.Pack(buf[tt.y*w+tt.x]); got != tt.want {
				t.Errorf("got %#06x, want %#06x", got, tt.want)
			}
		})
	}

	// Stored order is B, G, R.
	if p := buf[0]; p[pixel.Red] != 255 || p[pixel.Blue] != 0 {
		t.Errorf("red pixel stored as %v", p)
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	img.Set(12, 21, color.RGBA{1, 2, 3, 255})

	buf, w, h := FromImage(img)
	if w != 3 || h != 2 {
		t.Fatalf("dimensions: got %dx%d, want 3x2", w, h)
	}
	if got := pixel.Pack(buf[len(buf)-1]); got != pixel.RGB(1, 2, 3) {
		t.Errorf("last pixel: got %#06x", got)
	}
}

func TestToImage_RoundTrip(t *testing.T) {
	buf, w, h := FromImage(createPatternImage(6, 4))

	img, err := ToImage(pixel.PackAll(buf), w, h)
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}

	back, w2, h2 := FromImage(img)
	if w2 != w || h2 != h {
		t.Fatalf("dimensions: got %dx%d, want %dx%d", w2, h2, w, h)
	}
	for i := range buf {
		if back[i] != buf[i] {
			t.Fatalf("pixel %d: got %v, want %v", i, back[i], buf[i])
		}
	}
	if a := img.NRGBAAt(0, 0).A; a != 255 {
		t.Errorf("alpha: got %d, want 255", a)
	}
}

func TestToImage_InvalidDimensions(t *testing.T) {
	_, err := ToImage(make([]pixel.Packed, 5), 2, 2)
	if !errors.Is(err, pixel.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestResizeNearest(t *testing.T) {
	buf, w, h := FromImage(createPatternImage(2, 2))

	out, err := ResizeNearest(buf, w, h, 4, 4)
	if err != nil {
		t.Fatalf("ResizeNearest failed: %v", err)
	}
	if len(out) != 16 {
		t.Fatalf("length: got %d, want 16", len(out))
	}

	// Each source pixel becomes a 2x2 block.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := pixel.Pack(buf[(y/2)*w+x/2])
			if got := out[y*4+x]; got != want {
				t.Errorf("(%d,%d): got %#06x, want %#06x", x, y, got, want)
			}
		}
	}
}

func TestResizeNearest_Downscale(t *testing.T) {
	buf, w, h := FromImage(createInMemoryImage(8, 6, color.RGBA{10, 20, 30, 255}))

	out, err := ResizeNearest(buf, w, h, 3, 2)
	if err != nil {
		t.Fatalf("ResizeNearest failed: %v", err)
	}
	if len(out) != 6 {
		t.Fatalf("length: got %d, want 6", len(out))
	}
	for i, c := range out {
		if c != pixel.RGB(10, 20, 30) {
			t.Errorf("pixel %d: got %#06x", i, c)
		}
	}
}

func TestResizeNearest_Errors(t *testing.T) {
	buf := make([]pixel.Pixel, 4)

	tests := []struct {
		name       string
		w, h       int
		newW, newH int
	}{
		{"buffer mismatch", 3, 2, 4, 4},
		{"zero target width", 2, 2, 0, 4},
		{"negative target height", 2, 2, 4, -1},
		{"target buffer overflows", 2, 2, 1 << 32, 1 << 32},
		{"huge input grid", 1 << 32, 1 << 32, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResizeNearest(buf, tt.w, tt.h, tt.newW, tt.newH)
			if !errors.Is(err, pixel.ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}
