package filter

import (
	"fmt"
	"slices"

	"github.com/ironsheep/kayn/internal/pixel"
)

// Statistic selects the rank statistic taken from each window.
type Statistic int

const (
	Median Statistic = iota
	Min
	Max
	Midpoint
)

func (s Statistic) String() string {
	switch s {
	case Median:
		return "median"
	case Min:
		return "min"
	case Max:
		return "max"
	case Midpoint:
		return "midpoint"
	default:
		return fmt.Sprintf("Statistic(%d)", int(s))
	}
}

// ParseStatistic maps a statistic name back to its value.
func ParseStatistic(name string) (Statistic, error) {
	for _, s := range []Statistic{Median, Min, Max, Midpoint} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown statistic: %s", name)
}

// pick reads the statistic from a sorted window.
func (s Statistic) pick(sorted []pixel.Packed) pixel.Packed {
	switch s {
	case Min:
		return sorted[0]
	case Max:
		return sorted[len(sorted)-1]
	case Midpoint:
		return midpoint(sorted[0], sorted[len(sorted)-1])
	default:
		return sorted[len(sorted)/2]
	}
}

// midpoint averages two colors per channel, rounding halves up.
func midpoint(a, b pixel.Packed) pixel.Packed {
	ar, ag, ab := a.Channels()
	br, bg, bb := b.Channels()
	avg := func(x, y uint8) uint8 {
		return uint8((int(x) + int(y) + 1) / 2)
	}
	return pixel.RGB(avg(ar, br), avg(ag, bg), avg(ab, bb))
}

// OrderStat replaces every pixel of the valid region with a rank statistic
// of its (2*distance+1)² neighborhood.
//
// Window samples are compared by their packed value, built from the stored
// channels in reverse order, and sorted ascending. Median takes element
// area/2, Min and Max the ends, and Midpoint the per-channel rounded mean of
// the two ends. Samples with equal packed values are identical colors, so
// the order among them cannot change the result.
//
// A distance of 0 returns pixel.Pack of every input pixel.
func OrderStat(img []pixel.Pixel, distance, width, height int, stat Statistic) ([]pixel.Packed, error) {
	if err := pixel.CheckDimensions(len(img), width, height); err != nil {
		return nil, err
	}
	if distance < 0 {
		return nil, fmt.Errorf("%w: negative distance %d", ErrInvalidKernel, distance)
	}
	// Bounding distance first keeps 2*distance+1 from overflowing.
	if distance > (min(width, height)-1)/2 {
		return nil, fmt.Errorf("%w: distance %d leaves no valid region in a %dx%d image",
			ErrInvalidKernel, distance, width, height)
	}
	if stat < Median || stat > Midpoint {
		return nil, fmt.Errorf("unknown statistic: %v", stat)
	}
	w, err := newWindow(2*distance+1, width, height)
	if err != nil {
		return nil, err
	}

	values := make([]pixel.Packed, w.side*w.side)
	out := make([]pixel.Packed, 0, w.size())
	for y := w.y0; y < w.y1; y++ {
		for x := w.x0; x < w.x1; x++ {
			for i := range values {
				values[i] = pixel.Pack(img[w.offset(i, x, y, width)])
			}
			slices.Sort(values)
			out = append(out, stat.pick(values))
		}
	}
	return out, nil
}

// MedianFilter is OrderStat with the Median statistic.
func MedianFilter(img []pixel.Pixel, distance, width, height int) ([]pixel.Packed, error) {
	return OrderStat(img, distance, width, height, Median)
}

// NoiseReductionMin is OrderStat with the Min statistic.
func NoiseReductionMin(img []pixel.Pixel, distance, width, height int) ([]pixel.Packed, error) {
	return OrderStat(img, distance, width, height, Min)
}

// NoiseReductionMax is OrderStat with the Max statistic.
func NoiseReductionMax(img []pixel.Pixel, distance, width, height int) ([]pixel.Packed, error) {
	return OrderStat(img, distance, width, height, Max)
}

// NoiseReductionMidpoint is OrderStat with the Midpoint statistic.
func NoiseReductionMidpoint(img []pixel.Pixel, distance, width, height int) ([]pixel.Packed, error) {
	return OrderStat(img, distance, width, height, Midpoint)
}
