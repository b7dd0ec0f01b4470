package pointops

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/kayn/internal/pixel"
)

// ErrInvalidChannel is returned by SplitChannel for an index outside 0..2.
var ErrInvalidChannel = errors.New("invalid channel")

// Grayscale replaces every pixel with its luminance.
func Grayscale(img []pixel.Pixel) []pixel.Packed {
	out := make([]pixel.Packed, len(img))
	for i, p := range img {
		out[i] = pixel.Gray(pixel.Luminance(p))
	}
	return out
}

// Negative inverts every channel.
func Negative(img []pixel.Pixel) []pixel.Packed {
	out := make([]pixel.Packed, len(img))
	for i, p := range img {
		out[i] = pixel.RGB(255-p[pixel.Red], 255-p[pixel.Green], 255-p[pixel.Blue])
	}
	return out
}

// Normalize stretches each channel independently so its darkest sample
// becomes 0 and its brightest 255. A channel holding a single value is left
// unchanged.
func Normalize(img []pixel.Pixel) []pixel.Packed {
	lo := pixel.Pixel{255, 255, 255}
	var hi pixel.Pixel
	for _, p := range img {
		for ch := range p {
			lo[ch] = min(lo[ch], p[ch])
			hi[ch] = max(hi[ch], p[ch])
		}
	}

	var lut [3][256]uint8
	for ch := range lut {
		for v := range lut[ch] {
			lut[ch][v] = uint8(v)
			if hi[ch] > lo[ch] && v >= int(lo[ch]) && v <= int(hi[ch]) {
				scaled := float64(v-int(lo[ch])) * 255 / float64(hi[ch]-lo[ch])
				lut[ch][v] = uint8(math.Round(scaled))
			}
		}
	}

	out := make([]pixel.Packed, len(img))
	for i, p := range img {
		out[i] = pixel.Pack(pixel.Pixel{
			lut[pixel.Blue][p[pixel.Blue]],
			lut[pixel.Green][p[pixel.Green]],
			lut[pixel.Red][p[pixel.Red]],
		})
	}
	return out
}

// DynamicCompression applies the power law s = c * r^gamma to every channel,
// with r and s on the unit interval. Results are rounded and clamped.
func DynamicCompression(img []pixel.Pixel, constant, gamma float32) []pixel.Packed {
	var lut [256]uint8
	for v := range lut {
		s := float64(constant) * math.Pow(float64(v)/255, float64(gamma)) * 255
		lut[v] = clampRound(s)
	}

	out := make([]pixel.Packed, len(img))
	for i, p := range img {
		out[i] = pixel.RGB(lut[p[pixel.Red]], lut[p[pixel.Green]], lut[p[pixel.Blue]])
	}
	return out
}

// Equalize performs histogram equalization on the luminance and returns a
// gray image.
func Equalize(img []pixel.Pixel) []pixel.Packed {
	levels := make([]uint8, len(img))
	for i, p := range img {
		levels[i] = pixel.Luminance(p)
	}
	lut := equalizeLevels(levels)

	out := make([]pixel.Packed, len(img))
	for i, l := range levels {
		out[i] = pixel.Gray(lut[l])
	}
	return out
}

// EqualizeHSL equalizes the HSL lightness of every pixel while keeping its
// hue and saturation.
func EqualizeHSL(img []pixel.Pixel) []pixel.Packed {
	type hsl struct{ h, s, l float64 }
	colors := make([]hsl, len(img))
	levels := make([]uint8, len(img))
	for i, p := range img {
		c := toColorful(p)
		h, s, l := c.Hsl()
		colors[i] = hsl{h, s, l}
		levels[i] = clampRound(l * 255)
	}
	lut := equalizeLevels(levels)

	out := make([]pixel.Packed, len(img))
	for i, c := range colors {
		l := float64(lut[levels[i]]) / 255
		r, g, b := colorful.Hsl(c.h, c.s, l).Clamped().RGB255()
		out[i] = pixel.RGB(r, g, b)
	}
	return out
}

// GrayToColorScale maps luminance onto a hue ramp running from blue for
// black to red for white at full saturation and value.
func GrayToColorScale(img []pixel.Pixel) []pixel.Packed {
	var lut [256]pixel.Packed
	for v := range lut {
		hue := 240 * (1 - float64(v)/255)
		r, g, b := colorful.Hsv(hue, 1, 1).Clamped().RGB255()
		lut[v] = pixel.RGB(r, g, b)
	}

	out := make([]pixel.Packed, len(img))
	for i, p := range img {
		out[i] = lut[pixel.Luminance(p)]
	}
	return out
}

// SplitChannel keeps the channel at storage index ch (pixel.Blue,
// pixel.Green or pixel.Red) and zeroes the other two.
func SplitChannel(img []pixel.Pixel, ch int) ([]pixel.Packed, error) {
	if ch < 0 || ch > 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}
	out := make([]pixel.Packed, len(img))
	for i, p := range img {
		var only pixel.Pixel
		only[ch] = p[ch]
		out[i] = pixel.Pack(only)
	}
	return out, nil
}

// equalizeLevels builds the histogram-equalization table for levels. The
// lowest occupied level maps to 0 and the highest to 255; a single occupied
// level maps to itself.
func equalizeLevels(levels []uint8) [256]uint8 {
	var hist [256]int
	for _, l := range levels {
		hist[l]++
	}

	var lut [256]uint8
	for v := range lut {
		lut[v] = uint8(v)
	}

	cdfMin := 0
	for _, n := range hist {
		if n > 0 {
			cdfMin = n
			break
		}
	}
	total := len(levels)
	if total == cdfMin {
		return lut
	}

	cdf := 0
	for v, n := range hist {
		cdf += n
		if n == 0 {
			continue
		}
		lut[v] = uint8(math.Round(float64(cdf-cdfMin) * 255 / float64(total-cdfMin)))
	}
	return lut
}

func toColorful(p pixel.Pixel) colorful.Color {
	return colorful.Color{
		R: float64(p[pixel.Red]) / 255,
		G: float64(p[pixel.Green]) / 255,
		B: float64(p[pixel.Blue]) / 255,
	}
}

func clampRound(v float64) uint8 {
	v = math.Round(v)
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
