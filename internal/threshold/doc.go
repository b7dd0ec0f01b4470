// Package threshold selects and applies binarization thresholds over the
// luminance of a pixel buffer.
//
// Luminance is pixel.Luminance, the rounded mean of the three channels, the
// same mapping the grayscale point operation uses. A pixel belongs to the
// foreground when its luminance is strictly greater than the threshold.
package threshold
