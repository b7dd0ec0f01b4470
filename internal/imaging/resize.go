package imaging

import (
	"github.com/disintegration/imaging"

	"github.com/ironsheep/kayn/internal/pixel"
)

// ResizeNearest scales an image to newWidth×newHeight by nearest-neighbour
// sampling. Every output pixel is a copy of one input pixel.
//
// Returns pixel.ErrInvalidDimensions when the buffer does not match
// width×height or the target size is not positive.
func ResizeNearest(img []pixel.Pixel, width, height, newWidth, newHeight int) ([]pixel.Packed, error) {
	src, err := toNRGBA(img, width, height)
	if err != nil {
		return nil, err
	}
	if err := checkSize(newWidth, newHeight); err != nil {
		return nil, err
	}

	resized := imaging.Resize(src, newWidth, newHeight, imaging.NearestNeighbor)
	out, _, _ := FromImage(resized)
	return pixel.PackAll(out), nil
}
