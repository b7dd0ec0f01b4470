package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/kayn/internal/pixel"
)

// FromImage copies an image into a row-major pixel buffer.
//
// Parameters:
//   - img: Any image.Image. Its bounds need not start at (0,0).
//
// Returns:
//   - []pixel.Pixel: width*height pixels in B, G, R storage order.
//   - int, int: The width and height of img.
//
// The image is first flattened to RGBA, so translucent pixels come back
// premultiplied by their alpha and the alpha itself is dropped.
func FromImage(img image.Image) ([]pixel.Pixel, int, int) {
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	out := make([]pixel.Pixel, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := rgba.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)
			out[y*width+x] = pixel.Pixel{rgba.Pix[i+2], rgba.Pix[i+1], rgba.Pix[i]}
		}
	}
	return out, width, height
}

// ToImage renders packed colors as an opaque image anchored at (0,0).
//
// Returns pixel.ErrInvalidDimensions when len(colors) != width*height.
func ToImage(colors []pixel.Packed, width, height int) (*image.NRGBA, error) {
	if err := pixel.CheckDimensions(len(colors), width, height); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, c := range colors {
		r, g, b := c.Channels()
		img.SetNRGBA(i%width, i/width, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return img, nil
}

// toNRGBA renders stored pixels as an opaque image.
func toNRGBA(img []pixel.Pixel, width, height int) (*image.NRGBA, error) {
	return ToImage(pixel.PackAll(img), width, height)
}

// checkSize rejects target sizes that are not positive or whose four-byte
// pixel buffer would not fit in an int.
func checkSize(width, height int) error {
	if width <= 0 || height <= 0 || width > math.MaxInt/4/height {
		return fmt.Errorf("%w: target size %dx%d", pixel.ErrInvalidDimensions, width, height)
	}
	return nil
}
